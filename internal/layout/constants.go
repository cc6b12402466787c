/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package layout

import "github.com/jongalloway/thumbnail-generator/internal/domain"

// Reference design constants. All absolute values are authored against the
// 1920x1080 reference canvas and multiplied by the uniform scale factor at
// composition time. The numbers are tuned against the bundled example
// assets, not derived; treat the table as opaque.
const (
	refWidth = 1920.0

	refMarginLeft  = 96.0
	refMarginRight = 96.0

	// Badge ("pill") above the title.
	refPillTop            = 72.0
	refPillHeight         = 72.0
	refPillPadX           = 28.0
	refPillFontSize       = 36.0
	pillBaselineFactor    = 0.35 // baseline shift below vertical center, in font sizes
	refTitleBaseline      = 320.0
	refTitleFontSize      = 96.0
	refTitleLineHeight    = 1.12
	refSubtitleFontSize   = 44.0
	refSubtitleLineHeight = 1.3
	refSubtitleBottom     = 96.0

	// Logo circle stack on the right half.
	refLogoRadius       = 150.0
	refLogoGap          = 48.0
	refLogoSpanTop      = 120.0
	refLogoSpanBottom   = 120.0
	refLogoCenterX      = 1568.0
	refLogoRightMargin  = 96.0
	logoStaggerFraction = 0.6  // middle-of-three horizontal offset, in radii
	logoClipFactor      = 0.9  // clip radius as a fraction of the circle radius
	logoImageFit        = 0.98 // safety factor for the inscribed logo square

	// Single-image layout modes.
	refCircleLayoutCX = 1440.0
	refCircleLayoutR  = 320.0
	refDiagonalTopX   = 1150.0
	refDiagonalBotX   = 950.0
	refOverlayX       = 1120.0
	refOverlayY       = 160.0
	refOverlayW       = 680.0
	refOverlayH       = 760.0
	refOverlayRx      = 24.0

	refShadowDY   = 8.0
	refShadowBlur = 24.0
)

// Color table per text variant.
const (
	colorTextLight     = "#ffffff"
	colorTextDark      = "#111827"
	colorSubtitleLight = "#e2e8f0"
	colorSubtitleDark  = "#334155"
	colorPillFill      = "#7c3aed"
	colorPillText      = "#ffffff"
	colorBackdropDark  = "#0f172a"
	colorBackdropLight = "#f1f5f9"
	colorLogoChip      = "#ffffff"
)

// TextColors returns the title and subtitle fill colors of a text variant,
// for callers that paint text outside the composition engine.
func TextColors(v domain.TextVariant) (title, subtitle string) {
	if v == domain.TextDark {
		return colorTextDark, colorSubtitleDark
	}
	return colorTextLight, colorSubtitleLight
}

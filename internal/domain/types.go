/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import "strings"

// This file defines the core data model for thumbnail composition: image and
// logo assets, color variants, and the right-side content selection that
// drives the procedural layout.

// ImageAsset references a bitmap used in a composition. Source is either a
// URL (absolute or relative to the catalog base) or a data: URI for assets
// read from local files.
type ImageAsset struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Source   string `json:"source"`
	Uploaded bool   `json:"uploaded,omitempty"` // true when read from a local file
}

// SourceIsData reports whether the asset source is an inline data: URI.
func (a ImageAsset) SourceIsData() bool { return strings.HasPrefix(a.Source, "data:") }

// LogoAsset references a logo bitmap shown inside a clipped circle.
type LogoAsset struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Source string `json:"source"`
}

// SourceIsData reports whether the logo source is an inline data: URI.
func (a LogoAsset) SourceIsData() bool { return strings.HasPrefix(a.Source, "data:") }

// BackgroundVariant classifies a background image as dark or light so text
// colors can be chosen for contrast.
type BackgroundVariant string

const (
	BackgroundDark  BackgroundVariant = "dark"
	BackgroundLight BackgroundVariant = "light"
)

// TextVariant selects the text color scheme of a composition.
type TextVariant string

const (
	TextLight TextVariant = "light" // light text on dark backgrounds
	TextDark  TextVariant = "dark"  // dark text on light backgrounds
)

// TextVariantFor returns the text scheme that contrasts with the given
// background variant.
func TextVariantFor(bg BackgroundVariant) TextVariant {
	if bg == BackgroundLight {
		return TextDark
	}
	return TextLight
}

// ImageLayoutKind identifies one of the large-image presentation modes on
// the right half of a composition.
type ImageLayoutKind string

const (
	LayoutCircle   ImageLayoutKind = "circle"   // image clipped to a large circle
	LayoutDiagonal ImageLayoutKind = "diagonal" // image behind a slanted divider
	LayoutOverlay  ImageLayoutKind = "overlay"  // image in a rounded rectangle card
)

// ParseImageLayoutKind maps a string to an ImageLayoutKind.
func ParseImageLayoutKind(s string) (ImageLayoutKind, bool) {
	switch ImageLayoutKind(strings.ToLower(strings.TrimSpace(s))) {
	case LayoutCircle:
		return LayoutCircle, true
	case LayoutDiagonal:
		return LayoutDiagonal, true
	case LayoutOverlay:
		return LayoutOverlay, true
	}
	return "", false
}

// RightKind discriminates the right-side content union.
type RightKind int

const (
	RightNone RightKind = iota
	RightLogos
	RightImage
)

// RightSideContent is the mutually exclusive choice of what occupies the
// right half of a composition: nothing, a row of logo circles, or a single
// large image in one of the layout modes. Construct values through
// NoRightContent, LogosContent or ImageLayoutContent; the zero value means
// no right-side content.
type RightSideContent struct {
	kind   RightKind
	logos  []LogoAsset
	layout ImageLayoutKind
	image  ImageAsset
}

// NoRightContent leaves the right half empty, letting text span full width.
func NoRightContent() RightSideContent { return RightSideContent{} }

// LogosContent shows the given logos as clipped circles. An empty slice is
// equivalent to NoRightContent.
func LogosContent(logos []LogoAsset) RightSideContent {
	if len(logos) == 0 {
		return RightSideContent{}
	}
	return RightSideContent{kind: RightLogos, logos: logos}
}

// ImageLayoutContent shows one large image in the given layout mode.
func ImageLayoutContent(kind ImageLayoutKind, img ImageAsset) RightSideContent {
	return RightSideContent{kind: RightImage, layout: kind, image: img}
}

// Kind returns the discriminator of the union.
func (r RightSideContent) Kind() RightKind { return r.kind }

// Logos returns the logo list; valid only when Kind is RightLogos.
func (r RightSideContent) Logos() []LogoAsset { return r.logos }

// Layout returns the image layout mode and asset; valid only when Kind is
// RightImage.
func (r RightSideContent) Layout() (ImageLayoutKind, ImageAsset) { return r.layout, r.image }

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package layout turns resolved field values into an absolute vector
// composition. All geometry is computed against the 1920x1080 reference and
// scaled uniformly by width; there are no error paths, only safe defaults.
package layout

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"sync/atomic"

	"github.com/jongalloway/thumbnail-generator/internal/domain"
	"github.com/jongalloway/thumbnail-generator/internal/geom"
	"github.com/jongalloway/thumbnail-generator/internal/textlayout"
)

// Request carries the resolved field values and selections for one render.
// Zero values are all legal: absent text omits the element, an empty
// background URL falls back to a solid fill, the zero Resolution falls back
// to the 1920x1080 default.
type Request struct {
	Badge    string
	Title    string
	Subtitle string

	BackgroundURL string
	Variant       domain.BackgroundVariant
	Text          domain.TextVariant // empty derives from Variant
	Right         domain.RightSideContent
	Resolution    domain.Resolution
}

// Engine computes composition geometry. Safe for concurrent use as long as
// its measurer is.
type Engine struct {
	metrics textlayout.Measurer
}

type Option func(*Engine)

// WithMeasurer overrides the text metrics backend.
func WithMeasurer(m textlayout.Measurer) Option { return func(e *Engine) { e.metrics = m } }

// NewEngine builds an engine with the precise measurer, falling back to the
// character heuristic when the embedded fonts cannot be parsed.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, o := range opts {
		o(e)
	}
	if e.metrics == nil {
		if m, err := textlayout.NewGoFontMeasurer(); err == nil {
			e.metrics = m
		} else {
			e.metrics = textlayout.HeuristicMeasurer{}
		}
	}
	return e
}

// idSeq makes generated ids (clips, filters) unique per process so
// concurrently rendered documents never collide when embedded side by side.
var idSeq atomic.Uint64

// Render emits the vector document for the request.
func (e *Engine) Render(req Request) string {
	var buf bytes.Buffer
	_ = EmitSVG(&buf, e.Compose(req)) // buffer writes cannot fail
	return buf.String()
}

// Compose resolves the request into absolute geometry.
func (e *Engine) Compose(req Request) Scene {
	res := req.Resolution
	if res.Width <= 0 || res.Height <= 0 {
		res = domain.DefaultResolution
	}
	scale := res.Scale()
	w := float64(res.Width)
	h := float64(res.Height)

	text := req.Text
	if text == "" {
		text = domain.TextVariantFor(req.Variant)
	}
	titleFill, subtitleFill, backdrop := colorTextLight, colorSubtitleLight, colorBackdropDark
	if text == domain.TextDark {
		titleFill, subtitleFill, backdrop = colorTextDark, colorSubtitleDark, colorBackdropLight
	}

	s := Scene{
		Width:      res.Width,
		Height:     res.Height,
		Scale:      scale,
		IDPrefix:   fmt.Sprintf("tg%d", idSeq.Add(1)),
		Background: Background{Source: req.BackgroundURL, Fill: backdrop},
		Shadow:     Shadow{DY: refShadowDY * scale, Blur: refShadowBlur * scale},
	}

	hasRight := req.Right.Kind() != domain.RightNone
	maxTextW := w - (refMarginLeft+refMarginRight)*scale
	if hasRight {
		maxTextW = w/2 - refMarginLeft*scale
	}

	if badge := strings.TrimSpace(req.Badge); badge != "" {
		s.Pill = e.composePill(badge, scale, maxTextW)
	}

	titleFont := textlayout.Font{Size: refTitleFontSize * scale, Weight: textlayout.WeightBold}
	titleLineH := titleFont.Size * refTitleLineHeight
	titleBase := refTitleBaseline * scale
	for i, line := range textlayout.WrapWidth(req.Title, maxTextW, titleFont, e.metrics) {
		s.Title = append(s.Title, TextLine{
			Text: line,
			X:    refMarginLeft * scale,
			Y:    titleBase + float64(i)*titleLineH,
			Font: titleFont,
			Fill: titleFill,
		})
	}

	subFont := textlayout.Font{Size: refSubtitleFontSize * scale, Weight: textlayout.WeightRegular}
	subLines := textlayout.WrapWidth(req.Subtitle, maxTextW, subFont, e.metrics)
	subLineH := subFont.Size * refSubtitleLineHeight
	lastBase := h - refSubtitleBottom*scale
	for i, line := range subLines {
		s.Subtitle = append(s.Subtitle, TextLine{
			Text: line,
			X:    refMarginLeft * scale,
			Y:    lastBase - float64(len(subLines)-1-i)*subLineH,
			Font: subFont,
			Fill: subtitleFill,
		})
	}

	switch req.Right.Kind() {
	case domain.RightLogos:
		s.Logos = e.composeLogos(req.Right.Logos(), scale, w, h)
	case domain.RightImage:
		kind, img := req.Right.Layout()
		s.Image = composeImageLayout(kind, img, scale, w, h)
	}
	return s
}

// composePill sizes the badge from its measured label width plus symmetric
// padding. Labels that would not fit the text column are truncated.
func (e *Engine) composePill(label string, scale, maxW float64) *Pill {
	font := textlayout.Font{Size: refPillFontSize * scale, Weight: textlayout.WeightMedium}
	padX := refPillPadX * scale
	textW := e.metrics.Width(label, font)
	if maxW > 0 && textW+2*padX > maxW {
		label = textlayout.TruncateEllipsis(label, maxW-2*padX, font, e.metrics)
		textW = e.metrics.Width(label, font)
	}
	rect := geom.R(refMarginLeft*scale, refPillTop*scale, textW+2*padX, refPillHeight*scale)
	return &Pill{
		Rect: rect,
		Rx:   rect.H / 2,
		Fill: colorPillFill,
		Label: TextLine{
			Text: label,
			X:    rect.X + padX,
			Y:    rect.Y + rect.H/2 + font.Size*pillBaselineFactor,
			Font: font,
			Fill: colorPillText,
		},
	}
}

// composeLogos stacks N circles vertically, centered in the span between the
// top and bottom logo margins. The radius shrinks below the reference radius
// only when the stack would not fit. Exactly three logos stagger the middle
// circle to the right; the whole stack shifts left so the overhang stays
// inside the right margin.
func (e *Engine) composeLogos(logos []domain.LogoAsset, scale, w, h float64) []LogoCircle {
	n := len(logos)
	if n == 0 {
		return nil
	}
	spanTop := refLogoSpanTop * scale
	span := h - refLogoSpanBottom*scale - spanTop
	gap := refLogoGap * scale

	r := refLogoRadius * scale
	if fit := (span - float64(n-1)*gap) / float64(2*n); fit < r {
		r = fit
	}
	if r <= 0 {
		return nil
	}

	stagger := 0.0
	baseX := refLogoCenterX * scale
	if n == 3 {
		stagger = logoStaggerFraction * r
		baseX -= stagger / 2
	}
	if maxCX := w - refLogoRightMargin*scale - r; baseX+stagger > maxCX {
		baseX -= baseX + stagger - maxCX
	}

	total := float64(2*n)*r + float64(n-1)*gap
	y := spanTop + (span-total)/2 + r

	out := make([]LogoCircle, 0, n)
	for i, lg := range logos {
		cx := baseX
		if n == 3 && i == 1 {
			cx += stagger
		}
		c := geom.Circle{Center: geom.Pt{X: cx, Y: y}, R: r}
		clipR := r * logoClipFactor
		out = append(out, LogoCircle{
			Circle: c,
			ClipR:  clipR,
			Image:  geom.Circle{Center: c.Center, R: clipR}.InscribedSquare(logoImageFit),
			Source: lg.Source,
		})
		y += 2*r + gap
	}
	return out
}

// composeImageLayout places the single large image of an image-layout mode.
func composeImageLayout(kind domain.ImageLayoutKind, img domain.ImageAsset, scale, w, h float64) *ImagePlacement {
	switch kind {
	case domain.LayoutCircle:
		c := geom.Circle{Center: geom.Pt{X: refCircleLayoutCX * scale, Y: h / 2}, R: refCircleLayoutR * scale}
		return &ImagePlacement{
			Kind:   kind,
			Source: img.Source,
			Circle: c,
			Frame:  geom.R(c.Center.X-c.R, c.Center.Y-c.R, 2*c.R, 2*c.R),
		}
	case domain.LayoutDiagonal:
		topX := refDiagonalTopX * scale
		botX := refDiagonalBotX * scale
		minX := math.Min(topX, botX)
		return &ImagePlacement{
			Kind:    kind,
			Source:  img.Source,
			Polygon: []geom.Pt{{X: topX, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: botX, Y: h}},
			Frame:   geom.R(minX, 0, w-minX, h),
		}
	case domain.LayoutOverlay:
		card := geom.R(refOverlayX*scale, refOverlayY*scale, refOverlayW*scale, refOverlayH*scale)
		return &ImagePlacement{
			Kind:   kind,
			Source: img.Source,
			Card:   card,
			CardRx: refOverlayRx * scale,
			Frame:  card,
		}
	}
	return nil
}

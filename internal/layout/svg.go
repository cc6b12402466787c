/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package layout

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jongalloway/thumbnail-generator/internal/domain"
	"github.com/jongalloway/thumbnail-generator/internal/geom"
	"github.com/jongalloway/thumbnail-generator/internal/textlayout"
)

// EmitSVG serializes a composed scene as a well-formed SVG document. Element
// order is fixed: defs, the single background element, badge and text under
// the shadow filter, then the logo stack or image layout.
func EmitSVG(w io.Writer, s Scene) error {
	var werr error
	wf := func(format string, args ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(w, format, args...)
	}

	wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	wf("<svg xmlns=\"http://www.w3.org/2000/svg\" xmlns:xlink=\"http://www.w3.org/1999/xlink\" width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\">\n",
		s.Width, s.Height, s.Width, s.Height)

	wf("  <defs>\n")
	wf("    <filter id=\"%s-shadow\" x=\"-20%%\" y=\"-20%%\" width=\"140%%\" height=\"140%%\">\n", s.IDPrefix)
	wf("      <feDropShadow dx=\"0\" dy=\"%s\" stdDeviation=\"%s\" flood-color=\"#000000\" flood-opacity=\"0.35\"/>\n",
		num(s.Shadow.DY), num(s.Shadow.Blur))
	wf("    </filter>\n")
	for i, lc := range s.Logos {
		wf("    <clipPath id=\"%s-logo-%d\"><circle cx=\"%s\" cy=\"%s\" r=\"%s\"/></clipPath>\n",
			s.IDPrefix, i, num(lc.Circle.Center.X), num(lc.Circle.Center.Y), num(lc.ClipR))
	}
	if s.Image != nil {
		switch s.Image.Kind {
		case domain.LayoutCircle:
			wf("    <clipPath id=\"%s-image\"><circle cx=\"%s\" cy=\"%s\" r=\"%s\"/></clipPath>\n",
				s.IDPrefix, num(s.Image.Circle.Center.X), num(s.Image.Circle.Center.Y), num(s.Image.Circle.R))
		case domain.LayoutDiagonal:
			wf("    <clipPath id=\"%s-image\"><polygon points=\"%s\"/></clipPath>\n",
				s.IDPrefix, polyPoints(s.Image.Polygon))
		case domain.LayoutOverlay:
			wf("    <clipPath id=\"%s-image\"><rect x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\" rx=\"%s\"/></clipPath>\n",
				s.IDPrefix, num(s.Image.Card.X), num(s.Image.Card.Y), num(s.Image.Card.W), num(s.Image.Card.H), num(s.Image.CardRx))
		}
	}
	wf("  </defs>\n")

	if s.Background.Source != "" {
		wf("  <image x=\"0\" y=\"0\" width=\"%d\" height=\"%d\" preserveAspectRatio=\"xMidYMid slice\" href=\"%s\" xlink:href=\"%s\"/>\n",
			s.Width, s.Height, escAttr(s.Background.Source), escAttr(s.Background.Source))
	} else {
		wf("  <rect x=\"0\" y=\"0\" width=\"%d\" height=\"%d\" fill=\"%s\"/>\n", s.Width, s.Height, s.Background.Fill)
	}

	wf("  <g filter=\"url(#%s-shadow)\">\n", s.IDPrefix)
	if p := s.Pill; p != nil {
		wf("    <rect x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\" rx=\"%s\" fill=\"%s\"/>\n",
			num(p.Rect.X), num(p.Rect.Y), num(p.Rect.W), num(p.Rect.H), num(p.Rx), p.Fill)
		emitText(wf, "    ", p.Label)
	}
	for _, ln := range s.Title {
		emitText(wf, "    ", ln)
	}
	for _, ln := range s.Subtitle {
		emitText(wf, "    ", ln)
	}
	wf("  </g>\n")

	for i, lc := range s.Logos {
		wf("  <circle cx=\"%s\" cy=\"%s\" r=\"%s\" fill=\"%s\"/>\n",
			num(lc.Circle.Center.X), num(lc.Circle.Center.Y), num(lc.Circle.R), colorLogoChip)
		wf("  <image x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\" preserveAspectRatio=\"xMidYMid meet\" clip-path=\"url(#%s-logo-%d)\" href=\"%s\" xlink:href=\"%s\"/>\n",
			num(lc.Image.X), num(lc.Image.Y), num(lc.Image.W), num(lc.Image.H), s.IDPrefix, i, escAttr(lc.Source), escAttr(lc.Source))
	}
	if im := s.Image; im != nil {
		wf("  <image x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\" preserveAspectRatio=\"xMidYMid slice\" clip-path=\"url(#%s-image)\" href=\"%s\" xlink:href=\"%s\"/>\n",
			num(im.Frame.X), num(im.Frame.Y), num(im.Frame.W), num(im.Frame.H), s.IDPrefix, escAttr(im.Source), escAttr(im.Source))
	}

	wf("</svg>\n")
	return werr
}

func emitText(wf func(string, ...any), indent string, ln TextLine) {
	wf("%s<text x=\"%s\" y=\"%s\" font-family=\"Go\" font-size=\"%s\" font-weight=\"%d\" fill=\"%s\">%s</text>\n",
		indent, num(ln.X), num(ln.Y), num(ln.Font.Size), weightNumber(ln.Font.Weight), ln.Fill, escText(ln.Text))
}

func weightNumber(w textlayout.Weight) int {
	if w == 0 {
		return int(textlayout.WeightRegular)
	}
	return int(w)
}

func polyPoints(pts []geom.Pt) string {
	out := make([]byte, 0, len(pts)*12)
	for i, p := range pts {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, num(p.X)...)
		out = append(out, ',')
		out = append(out, num(p.Y)...)
	}
	return string(out)
}

// num renders a coordinate rounded to two decimals without an exponent.
func num(v float64) string {
	return strconv.FormatFloat(geom.FloatRound(v, 2), 'f', -1, 64)
}

func escAttr(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; ch {
		case '&':
			out = append(out, "&amp;"...)
		case '<':
			out = append(out, "&lt;"...)
		case '"':
			out = append(out, "&quot;"...)
		case '\n', '\r':
			// skip
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}

func escText(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; ch {
		case '&':
			out = append(out, "&amp;"...)
		case '<':
			out = append(out, "&lt;"...)
		case '>':
			out = append(out, "&gt;"...)
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}

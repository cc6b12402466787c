/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package svgrender

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"github.com/beevik/etree"
	"github.com/disintegration/imaging"
	"github.com/tdewolff/canvas"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

type clipKind int

const (
	clipCircle clipKind = iota
	clipPolygon
	clipRect
)

// clipShape is stored in document coordinates and converted to device space
// when a mask is built.
type clipShape struct {
	kind       clipKind
	cx, cy, r  float64
	pts        [][2]float64
	x, y, w, h float64
	rx         float64
}

func collectClips(root *etree.Element) map[string]clipShape {
	clips := make(map[string]clipShape)
	for _, cp := range root.FindElements("//clipPath") {
		id := cp.SelectAttrValue("id", "")
		if id == "" {
			continue
		}
		for _, shape := range cp.ChildElements() {
			switch shape.Tag {
			case "circle":
				clips[id] = clipShape{
					kind: clipCircle,
					cx:   attrF(shape, "cx", 0),
					cy:   attrF(shape, "cy", 0),
					r:    attrF(shape, "r", 0),
				}
			case "polygon":
				clips[id] = clipShape{kind: clipPolygon, pts: parsePoints(shape.SelectAttrValue("points", ""))}
			case "rect":
				clips[id] = clipShape{
					kind: clipRect,
					x:    attrF(shape, "x", 0),
					y:    attrF(shape, "y", 0),
					w:    attrF(shape, "width", 0),
					h:    attrF(shape, "height", 0),
					rx:   attrF(shape, "rx", 0),
				}
			default:
				continue
			}
			break
		}
	}
	return clips
}

func (st *state) drawImage(el *etree.Element) {
	src := el.SelectAttrValue("href", "")
	if src == "" {
		src = el.SelectAttrValue("xlink:href", "")
	}
	if src == "" {
		return
	}
	if !strings.HasPrefix(src, "data:") {
		st.lg.Warn("skipping image that is not embedded", "src", refForLog(src))
		return
	}
	img, err := decodeDataURI(src)
	if err != nil {
		st.lg.Warn("skipping undecodable image", "err", err)
		return
	}

	x, y := attrF(el, "x", 0), attrF(el, "y", 0)
	w, h := attrF(el, "width", 0), attrF(el, "height", 0)
	pxW := int(math.Round(w * st.sx))
	pxH := int(math.Round(h * st.sy))
	if pxW <= 0 || pxH <= 0 {
		return
	}

	slice := strings.Contains(el.SelectAttrValue("preserveAspectRatio", "slice"), "slice")
	composed := frameImage(img, pxW, pxH, slice)

	var drawn image.Image = composed
	if ref := clipRef(el.SelectAttrValue("clip-path", "")); ref != "" {
		if shape, ok := st.clips[ref]; ok {
			drawn = applyClip(composed, shape, x*st.sx, y*st.sy, st.sx, st.sy)
		}
	}

	st.ctx.DrawImage(x*st.sx, y*st.sy, drawn, canvas.DPMM(float64(pxW)/(w*st.sx)))
}

// frameImage sizes src to exactly w x h pixels. Slice crops to cover the
// frame; otherwise the image is letterboxed inside it.
func frameImage(src image.Image, w, h int, slice bool) *image.NRGBA {
	if slice {
		return imaging.Fill(src, w, h, imaging.Center, imaging.Lanczos)
	}
	fitted := imaging.Fit(src, w, h, imaging.Lanczos)
	return imaging.PasteCenter(imaging.New(w, h, color.NRGBA{}), fitted)
}

// applyClip zeroes every pixel whose device-space center falls outside the
// clip shape. ox, oy is the device origin of the image frame.
func applyClip(img *image.NRGBA, shape clipShape, ox, oy, sx, sy float64) *image.NRGBA {
	b := img.Bounds()
	m := &shapeMask{shape: shape, ox: ox, oy: oy, sx: sx, sy: sy, w: b.Dx(), h: b.Dy()}
	out := image.NewNRGBA(b)
	draw.DrawMask(out, b, img, b.Min, m, image.Point{}, draw.Src)
	return out
}

type shapeMask struct {
	shape  clipShape
	ox, oy float64
	sx, sy float64
	w, h   int
}

func (m *shapeMask) ColorModel() color.Model { return color.AlphaModel }

func (m *shapeMask) Bounds() image.Rectangle { return image.Rect(0, 0, m.w, m.h) }

func (m *shapeMask) At(px, py int) color.Color {
	x := m.ox + float64(px) + 0.5
	y := m.oy + float64(py) + 0.5
	if m.contains(x, y) {
		return color.Alpha{A: 0xff}
	}
	return color.Alpha{}
}

func (m *shapeMask) contains(x, y float64) bool {
	s := m.shape
	switch s.kind {
	case clipCircle:
		dx := x - s.cx*m.sx
		dy := y - s.cy*m.sy
		r := s.r * m.sx
		return dx*dx+dy*dy <= r*r
	case clipPolygon:
		return pointInPolygon(s.pts, x/m.sx, y/m.sy)
	case clipRect:
		rx0, ry0 := s.x*m.sx, s.y*m.sy
		rx1, ry1 := rx0+s.w*m.sx, ry0+s.h*m.sy
		if x < rx0 || x > rx1 || y < ry0 || y > ry1 {
			return false
		}
		rr := s.rx * m.sx
		if rr <= 0 {
			return true
		}
		// Corner regions require the point inside the corner circle.
		cx := math.Min(math.Max(x, rx0+rr), rx1-rr)
		cy := math.Min(math.Max(y, ry0+rr), ry1-rr)
		dx, dy := x-cx, y-cy
		return dx*dx+dy*dy <= rr*rr
	}
	return false
}

func pointInPolygon(pts [][2]float64, x, y float64) bool {
	in := false
	j := len(pts) - 1
	for i := range pts {
		xi, yi := pts[i][0], pts[i][1]
		xj, yj := pts[j][0], pts[j][1]
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			in = !in
		}
		j = i
	}
	return in
}

func decodeDataURI(uri string) (image.Image, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("malformed data uri")
	}
	if !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("unsupported data uri encoding %q", meta)
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode data uri payload: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode embedded image: %w", err)
	}
	return img, nil
}

func clipRef(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "url(#") || !strings.HasSuffix(s, ")") {
		return ""
	}
	return strings.TrimSuffix(strings.TrimPrefix(s, "url(#"), ")")
}

func refForLog(src string) string {
	if len(src) > 120 {
		return src[:120] + "..."
	}
	return src
}

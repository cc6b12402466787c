/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package svgrender rasterizes the vector documents this tool produces. It
// understands the element subset the composition stages emit (rect, circle,
// polygon, text, clipped images) and draws them onto a canvas at the target
// pixel size. Filter effects are ignored by the raster backend; remote image
// references are skipped, callers inline them first.
package svgrender

import (
	"fmt"
	"image"
	"log/slog"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/jongalloway/thumbnail-generator/internal/log"
)

// Canvas units are interpreted as pixels, so point sizes for font faces are
// derived with the usual 72 pt per 25.4 mm.
const mmToPt = 72.0 / 25.4

// Renderer rasterizes documents with the Go font family. Safe for reuse
// across documents.
type Renderer struct {
	family *canvas.FontFamily
}

func New() (*Renderer, error) {
	family := canvas.NewFontFamily("Go")
	if err := family.LoadFont(goregular.TTF, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("load regular font: %w", err)
	}
	if err := family.LoadFont(gomedium.TTF, 0, canvas.FontMedium); err != nil {
		return nil, fmt.Errorf("load medium font: %w", err)
	}
	if err := family.LoadFont(gobold.TTF, 0, canvas.FontBold); err != nil {
		return nil, fmt.Errorf("load bold font: %w", err)
	}
	return &Renderer{family: family}, nil
}

// Rasterize draws doc at exactly width x height pixels. Document coordinates
// are scaled from the viewBox to the target size.
func (r *Renderer) Rasterize(doc string, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid raster size %dx%d", width, height)
	}
	d := etree.NewDocument()
	if err := d.ReadFromString(doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	root := d.SelectElement("svg")
	if root == nil {
		return nil, fmt.Errorf("document has no svg root")
	}

	vbW, vbH := viewBoxSize(root)
	if vbW <= 0 || vbH <= 0 {
		return nil, fmt.Errorf("document has no usable viewBox")
	}

	c := canvas.New(float64(width), float64(height))
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)

	st := &state{
		ctx:    ctx,
		family: r.family,
		sx:     float64(width) / vbW,
		sy:     float64(height) / vbH,
		clips:  collectClips(root),
		lg:     log.WithComponent("svgrender"),
	}
	st.drawChildren(root)

	return rasterizer.Draw(c, canvas.DPMM(1.0), canvas.DefaultColorSpace), nil
}

type state struct {
	ctx    *canvas.Context
	family *canvas.FontFamily
	sx, sy float64
	clips  map[string]clipShape
	lg     *slog.Logger
}

func (st *state) drawChildren(parent *etree.Element) {
	for _, el := range parent.ChildElements() {
		switch el.Tag {
		case "defs":
			// Clip shapes were collected up front; filters have no raster
			// equivalent here.
		case "g":
			st.drawChildren(el)
		case "rect":
			st.drawRect(el)
		case "circle":
			st.drawCircle(el)
		case "polygon":
			st.drawPolygon(el)
		case "text":
			st.drawText(el)
		case "image":
			st.drawImage(el)
		}
	}
}

func (st *state) drawRect(el *etree.Element) {
	x, y := attrF(el, "x", 0)*st.sx, attrF(el, "y", 0)*st.sy
	w, h := attrF(el, "width", 0)*st.sx, attrF(el, "height", 0)*st.sy
	if w <= 0 || h <= 0 {
		return
	}
	st.setFill(el.SelectAttrValue("fill", "#000000"))
	rx := attrF(el, "rx", 0) * st.sx
	if rx > 0 {
		st.ctx.DrawPath(x, y, canvas.RoundedRectangle(w, h, rx))
		return
	}
	st.ctx.DrawPath(x, y, canvas.Rectangle(w, h))
}

func (st *state) drawCircle(el *etree.Element) {
	cx, cy := attrF(el, "cx", 0)*st.sx, attrF(el, "cy", 0)*st.sy
	rad := attrF(el, "r", 0) * st.sx
	if rad <= 0 {
		return
	}
	st.setFill(el.SelectAttrValue("fill", "#000000"))
	st.ctx.DrawPath(cx, cy, canvas.Circle(rad))
}

func (st *state) drawPolygon(el *etree.Element) {
	pts := parsePoints(el.SelectAttrValue("points", ""))
	if len(pts) < 3 {
		return
	}
	st.setFill(el.SelectAttrValue("fill", "#000000"))
	p := &canvas.Path{}
	p.MoveTo(pts[0][0]*st.sx, pts[0][1]*st.sy)
	for _, pt := range pts[1:] {
		p.LineTo(pt[0]*st.sx, pt[1]*st.sy)
	}
	p.Close()
	st.ctx.DrawPath(0, 0, p)
}

func (st *state) drawText(el *etree.Element) {
	content := el.Text()
	if strings.TrimSpace(content) == "" {
		return
	}
	size := attrF(el, "font-size", 16) * st.sx
	if size <= 0 {
		return
	}
	col := canvas.Hex(el.SelectAttrValue("fill", "#000000"))
	face := st.family.Face(size*mmToPt, col, fontStyle(el.SelectAttrValue("font-weight", "")), canvas.FontNormal)

	align := canvas.Left
	switch el.SelectAttrValue("text-anchor", "") {
	case "middle":
		align = canvas.Center
	case "end":
		align = canvas.Right
	}
	x, y := attrF(el, "x", 0)*st.sx, attrF(el, "y", 0)*st.sy
	st.ctx.DrawText(x, y, canvas.NewTextLine(face, content, align))
}

func (st *state) setFill(fill string) {
	st.ctx.SetFillColor(canvas.Hex(fill))
	st.ctx.SetStrokeWidth(0)
}

func fontStyle(weight string) canvas.FontStyle {
	switch weight {
	case "bold":
		return canvas.FontBold
	case "normal", "":
		return canvas.FontRegular
	}
	n, err := strconv.Atoi(weight)
	if err != nil {
		return canvas.FontRegular
	}
	switch {
	case n >= 600:
		return canvas.FontBold
	case n >= 500:
		return canvas.FontMedium
	default:
		return canvas.FontRegular
	}
}

func viewBoxSize(root *etree.Element) (float64, float64) {
	if vb := root.SelectAttrValue("viewBox", ""); vb != "" {
		parts := strings.Fields(vb)
		if len(parts) == 4 {
			w, errW := strconv.ParseFloat(parts[2], 64)
			h, errH := strconv.ParseFloat(parts[3], 64)
			if errW == nil && errH == nil {
				return w, h
			}
		}
	}
	return attrF(root, "width", 0), attrF(root, "height", 0)
}

func attrF(el *etree.Element, name string, def float64) float64 {
	s := el.SelectAttrValue(name, "")
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	return v
}

func parsePoints(s string) [][2]float64 {
	var pts [][2]float64
	for _, pair := range strings.Fields(s) {
		xy := strings.Split(pair, ",")
		if len(xy) != 2 {
			continue
		}
		x, errX := strconv.ParseFloat(xy[0], 64)
		y, errY := strconv.ParseFloat(xy[1], 64)
		if errX != nil || errY != nil {
			continue
		}
		pts = append(pts, [2]float64{x, y})
	}
	return pts
}

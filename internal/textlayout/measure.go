/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Weight selects one of the bundled font weights.
type Weight int

const (
	WeightRegular Weight = 400
	WeightMedium  Weight = 500
	WeightBold    Weight = 700
)

// Font describes the typesetting of a text element. Size is in pixels of the
// reference coordinate space (1pt = 1px at 72 DPI).
type Font struct {
	Size   float64
	Weight Weight
}

// Measurer reports the advance width of a string in pixels. Implementations
// always return a finite, non-negative number; empty text measures 0.
type Measurer interface {
	Width(text string, f Font) float64
}

// HeuristicWidthFactor approximates the average glyph advance as a fraction
// of the font size when no font backend is available.
const HeuristicWidthFactor = 0.6

// HeuristicMeasurer estimates width from the character count alone. It keeps
// layout deterministic in headless contexts where no face can be resolved,
// and in tests.
type HeuristicMeasurer struct{}

func (HeuristicMeasurer) Width(text string, f Font) float64 {
	if f.Size <= 0 {
		return 0
	}
	return float64(utf8.RuneCountInString(text)) * f.Size * HeuristicWidthFactor
}

// GoFontMeasurer measures with the bundled Go typefaces through opentype
// faces. Faces are built lazily per (size, weight) and cached; all access is
// serialized because opentype faces reuse internal buffers.
type GoFontMeasurer struct {
	mu    sync.Mutex
	fonts map[Weight]*opentype.Font
	faces map[faceKey]font.Face
}

type faceKey struct {
	weight Weight
	size   float64
}

// NewGoFontMeasurer parses the embedded Go fonts once.
func NewGoFontMeasurer() (*GoFontMeasurer, error) {
	m := &GoFontMeasurer{
		fonts: make(map[Weight]*opentype.Font, 3),
		faces: make(map[faceKey]font.Face),
	}
	for w, data := range map[Weight][]byte{
		WeightRegular: goregular.TTF,
		WeightMedium:  gomedium.TTF,
		WeightBold:    gobold.TTF,
	} {
		f, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse embedded font (weight %d): %w", w, err)
		}
		m.fonts[w] = f
	}
	return m, nil
}

func (m *GoFontMeasurer) Width(text string, f Font) float64 {
	if text == "" || f.Size <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	face, err := m.faceLocked(f)
	if err != nil {
		return HeuristicMeasurer{}.Width(text, f)
	}
	d := &font.Drawer{Face: face}
	return float64(d.MeasureString(text) >> 6)
}

func (m *GoFontMeasurer) faceLocked(f Font) (font.Face, error) {
	key := faceKey{weight: nearestWeight(f.Weight), size: f.Size}
	if face, ok := m.faces[key]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(m.fonts[key.weight], &opentype.FaceOptions{
		Size:    f.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	m.faces[key] = face
	return face, nil
}

// nearestWeight buckets arbitrary weights onto the loaded faces.
func nearestWeight(w Weight) Weight {
	switch {
	case w >= 600:
		return WeightBold
	case w >= 500:
		return WeightMedium
	default:
		return WeightRegular
	}
}

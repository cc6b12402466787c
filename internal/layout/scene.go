/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package layout

import (
	"github.com/jongalloway/thumbnail-generator/internal/domain"
	"github.com/jongalloway/thumbnail-generator/internal/geom"
	"github.com/jongalloway/thumbnail-generator/internal/textlayout"
)

// Scene is the fully resolved geometry of one composition: every coordinate
// absolute, every color final. It is the intermediate between Compose and
// the document emitter so tests can assert geometry without parsing XML.
type Scene struct {
	Width, Height int
	Scale         float64
	IDPrefix      string

	Background Background
	Pill       *Pill
	Title      []TextLine
	Subtitle   []TextLine
	Logos      []LogoCircle
	Image      *ImagePlacement
	Shadow     Shadow
}

// Background is the single mandatory backdrop: an image stretched to cover
// the canvas, or a solid fill when no asset is selected.
type Background struct {
	Source string // empty means solid fill
	Fill   string
}

// TextLine is one laid out line. Y is the baseline.
type TextLine struct {
	Text string
	X, Y float64
	Font textlayout.Font
	Fill string
}

// Pill is the rounded badge above the title.
type Pill struct {
	Rect  geom.Rect
	Rx    float64
	Fill  string
	Label TextLine
}

// LogoCircle is one chip of the logo stack: a filled circle, a circular
// clip slightly inside it, and the logo image inscribed in the clip.
type LogoCircle struct {
	Circle geom.Circle
	ClipR  float64
	Image  geom.Rect
	Source string
}

// ImagePlacement is the single large image of an image-layout mode. Frame is
// the rectangle the bitmap is drawn into (cover-fit); the clip shape depends
// on Kind: Circle, Polygon or Card.
type ImagePlacement struct {
	Kind    domain.ImageLayoutKind
	Source  string
	Frame   geom.Rect
	Circle  geom.Circle // kind circle
	Polygon []geom.Pt   // kind diagonal
	Card    geom.Rect   // kind overlay
	CardRx  float64
}

// Shadow parameterizes the drop-shadow filter definition.
type Shadow struct {
	DY, Blur float64
}

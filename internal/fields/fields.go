/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package fields declares the form schemas of the built-in layouts and the
// resolved value snapshots the composition engines consume. The engines only
// ever see a Values map; the schema drives data entry and visibility.
package fields

import (
	"github.com/jongalloway/thumbnail-generator/internal/domain"
)

// FieldType classifies how a field is entered and which Value member it
// fills.
type FieldType string

const (
	TypeText       FieldType = "text"
	TypeTextarea   FieldType = "textarea"
	TypeSelect     FieldType = "select"
	TypeImage      FieldType = "image"
	TypeImageArray FieldType = "image_array"
	TypeLogoArray  FieldType = "logo_array"
)

// Option is one choice of a select field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label,omitempty"`
}

// Condition gates a field on another field's current text value.
type Condition struct {
	Field  string `json:"field"`
	Equals string `json:"equals"`
}

// FieldDef declares one entry of a layout's form schema.
type FieldDef struct {
	ID          string     `json:"id"`
	Type        FieldType  `json:"type"`
	Label       string     `json:"label"`
	Placeholder string     `json:"placeholder,omitempty"`
	Default     string     `json:"default,omitempty"`
	MaxLen      int        `json:"maxLen,omitempty"`
	Options     []Option   `json:"options,omitempty"`
	VisibleWhen *Condition `json:"visibleWhen,omitempty"`
}

// Schema is the ordered field list of one layout.
type Schema struct {
	Layout string     `json:"layout"`
	Fields []FieldDef `json:"fields"`
}

// Value is one resolved field value. Which member is set follows the field
// type: Text for text/textarea/select, Image for image, Images and Logos
// for the array types.
type Value struct {
	Text   string
	Image  *domain.ImageAsset
	Images []domain.ImageAsset
	Logos  []domain.LogoAsset
}

// Values is the field-id keyed snapshot passed by value into the engines.
// It carries no schema knowledge beyond the visibility predicate.
type Values map[string]Value

// Text returns the text value of id, or "" when unset.
func (v Values) Text(id string) string { return v[id].Text }

// Image returns the image value of id, or nil when unset.
func (v Values) Image(id string) *domain.ImageAsset { return v[id].Image }

// Images returns the image list of id.
func (v Values) Images(id string) []domain.ImageAsset { return v[id].Images }

// Logos returns the logo list of id.
func (v Values) Logos(id string) []domain.LogoAsset { return v[id].Logos }

// SetText stores a text value, allocating the map key.
func (v Values) SetText(id, text string) { v[id] = Value{Text: text} }

// Visible evaluates def's visibility predicate against the snapshot.
// Fields without a predicate are always visible.
func (v Values) Visible(def FieldDef) bool {
	if def.VisibleWhen == nil {
		return true
	}
	return v.Text(def.VisibleWhen.Field) == def.VisibleWhen.Equals
}

// Clone copies the snapshot one level deep; asset slices are shared, which
// is safe because assets are never mutated once created.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for id, val := range v {
		out[id] = val
	}
	return out
}

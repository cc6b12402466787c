/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package fields

// LayoutStandard is the procedural composition; the episode layouts are the
// fixed token templates keyed by guest count.
const (
	LayoutStandard = "standard"
	LayoutEpisode1 = "episode-1"
	LayoutEpisode2 = "episode-2"
	LayoutEpisode3 = "episode-3"
)

// RightNone etc. are the select values of the standard layout's
// right-side-content field.
const (
	RightNone  = "none"
	RightLogos = "logos"
	RightImage = "image"
)

// Registry holds layout schemas in presentation order.
type Registry struct {
	schemas []Schema
}

// Builtin returns the registry of shipped layouts.
func Builtin() *Registry {
	return &Registry{schemas: []Schema{
		standardSchema(),
		episodeSchema(LayoutEpisode1, 1),
		episodeSchema(LayoutEpisode2, 2),
		episodeSchema(LayoutEpisode3, 3),
	}}
}

// Names lists the layouts in order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.schemas))
	for i, s := range r.schemas {
		names[i] = s.Layout
	}
	return names
}

// Schema returns the schema of the named layout.
func (r *Registry) Schema(name string) (Schema, bool) {
	for _, s := range r.schemas {
		if s.Layout == name {
			return s, true
		}
	}
	return Schema{}, false
}

// Defaults builds the initial snapshot for a layout from the schema's
// default values. Unknown layouts yield an empty snapshot.
func (r *Registry) Defaults(name string) Values {
	v := make(Values)
	s, ok := r.Schema(name)
	if !ok {
		return v
	}
	for _, def := range s.Fields {
		if def.Default != "" {
			v.SetText(def.ID, def.Default)
		}
	}
	return v
}

func standardSchema() Schema {
	return Schema{Layout: LayoutStandard, Fields: []FieldDef{
		{ID: "episode", Type: TypeText, Label: "Episode badge", Placeholder: "EPISODE 42", MaxLen: 24},
		{ID: "title", Type: TypeTextarea, Label: "Title", Placeholder: "What the show is about", MaxLen: 120},
		{ID: "subtitle", Type: TypeTextarea, Label: "Subtitle", Placeholder: "Guests, date or tagline", MaxLen: 200},
		{ID: "background", Type: TypeImage, Label: "Background"},
		{ID: "text-variant", Type: TypeSelect, Label: "Text colors", Default: "auto", Options: []Option{
			{Value: "auto", Label: "Follow background"},
			{Value: "light", Label: "Light text"},
			{Value: "dark", Label: "Dark text"},
		}},
		{ID: "right", Type: TypeSelect, Label: "Right side content", Default: RightNone, Options: []Option{
			{Value: RightNone, Label: "Nothing"},
			{Value: RightLogos, Label: "Logo circles"},
			{Value: RightImage, Label: "Large image"},
		}},
		{ID: "logos", Type: TypeLogoArray, Label: "Logos", VisibleWhen: &Condition{Field: "right", Equals: RightLogos}},
		{ID: "image", Type: TypeImage, Label: "Image", VisibleWhen: &Condition{Field: "right", Equals: RightImage}},
		{ID: "image-layout", Type: TypeSelect, Label: "Image layout", Default: "circle",
			VisibleWhen: &Condition{Field: "right", Equals: RightImage}, Options: []Option{
				{Value: "circle", Label: "Circle"},
				{Value: "diagonal", Label: "Diagonal"},
				{Value: "overlay", Label: "Overlay card"},
			}},
	}}
}

func episodeSchema(layout string, guests int) Schema {
	fields := []FieldDef{
		{ID: "episode", Type: TypeText, Label: "Episode badge", Placeholder: "EP 42", MaxLen: 24},
		{ID: "title", Type: TypeText, Label: "Title", MaxLen: 80},
		{ID: "subtitle", Type: TypeText, Label: "Subtitle", MaxLen: 120},
		{ID: "background-url", Type: TypeImage, Label: "Background"},
		{ID: "date", Type: TypeText, Label: "Air date", Placeholder: "2025-01-31"},
	}
	guestNames := []string{"guest1", "guest2", "guest3"}
	for i := 0; i < guests; i++ {
		fields = append(fields,
			FieldDef{ID: guestNames[i] + "-name", Type: TypeText, Label: "Guest name", MaxLen: 40},
			FieldDef{ID: guestNames[i] + "-image", Type: TypeImage, Label: "Guest photo"},
		)
	}
	return Schema{Layout: layout, Fields: fields}
}

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package fields

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jongalloway/thumbnail-generator/internal/domain"
)

func TestBuiltinRegistryNames(t *testing.T) {
	got := Builtin().Names()
	want := []string{"standard", "episode-1", "episode-2", "episode-3"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestSchemaLookup(t *testing.T) {
	r := Builtin()
	s, ok := r.Schema(LayoutStandard)
	if !ok {
		t.Fatalf("standard schema missing")
	}
	if got, want := s.Fields[0].ID, "episode"; got != want {
		t.Fatalf("first field = %q, want %q", got, want)
	}
	if _, ok := r.Schema("postcard"); ok {
		t.Fatalf("unknown layout should miss")
	}
}

func TestSchemaFieldIDsUnique(t *testing.T) {
	r := Builtin()
	for _, name := range r.Names() {
		s, _ := r.Schema(name)
		seen := map[string]bool{}
		for _, def := range s.Fields {
			if def.ID == "" {
				t.Fatalf("%s: field with empty id", name)
			}
			if seen[def.ID] {
				t.Fatalf("%s: duplicate field id %q", name, def.ID)
			}
			seen[def.ID] = true
		}
	}
}

func TestDefaultsFollowSchema(t *testing.T) {
	r := Builtin()
	v := r.Defaults(LayoutStandard)
	if got, want := v.Text("text-variant"), "auto"; got != want {
		t.Fatalf("text-variant default = %q, want %q", got, want)
	}
	if got, want := v.Text("right"), RightNone; got != want {
		t.Fatalf("right default = %q, want %q", got, want)
	}
	if _, ok := v["title"]; ok {
		t.Fatalf("title has no default, should be absent")
	}
	if got := r.Defaults("postcard"); len(got) != 0 {
		t.Fatalf("unknown layout defaults = %v, want empty", got)
	}
}

func TestVisibilityPredicate(t *testing.T) {
	def := FieldDef{ID: "logos", Type: TypeLogoArray,
		VisibleWhen: &Condition{Field: "right", Equals: RightLogos}}

	v := make(Values)
	if v.Visible(def) {
		t.Fatalf("field should be hidden while right is unset")
	}
	v.SetText("right", RightLogos)
	if !v.Visible(def) {
		t.Fatalf("field should be visible once right=logos")
	}
	v.SetText("right", RightImage)
	if v.Visible(def) {
		t.Fatalf("field should hide again when right changes")
	}

	always := FieldDef{ID: "title", Type: TypeText}
	if !v.Visible(always) {
		t.Fatalf("fields without predicate are always visible")
	}
}

func TestEpisodeSchemasScaleWithGuestCount(t *testing.T) {
	r := Builtin()
	for _, tc := range []struct {
		layout string
		guests int
	}{
		{LayoutEpisode1, 1},
		{LayoutEpisode2, 2},
		{LayoutEpisode3, 3},
	} {
		s, ok := r.Schema(tc.layout)
		if !ok {
			t.Fatalf("%s schema missing", tc.layout)
		}
		names, images := 0, 0
		for _, def := range s.Fields {
			switch {
			case def.Type == TypeText && len(def.ID) > 5 && def.ID[:5] == "guest":
				names++
			case def.Type == TypeImage && len(def.ID) > 5 && def.ID[:5] == "guest":
				images++
			}
		}
		if names != tc.guests || images != tc.guests {
			t.Fatalf("%s: %d name / %d image guest fields, want %d each", tc.layout, names, images, tc.guests)
		}
	}
}

func TestValuesAccessors(t *testing.T) {
	v := make(Values)
	v.SetText("title", "Hello")
	if got, want := v.Text("title"), "Hello"; got != want {
		t.Fatalf("Text = %q, want %q", got, want)
	}
	if v.Image("background") != nil {
		t.Fatalf("unset image should be nil")
	}

	img := &domain.ImageAsset{ID: "bg", Source: "https://example.com/bg.jpg"}
	v["background"] = Value{Image: img}
	if got := v.Image("background"); got != img {
		t.Fatalf("Image = %+v, want stored pointer", got)
	}

	clone := v.Clone()
	clone.SetText("title", "Changed")
	if got, want := v.Text("title"), "Hello"; got != want {
		t.Fatalf("clone mutation leaked into original: %q", got)
	}
}

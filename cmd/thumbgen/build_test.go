/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/jongalloway/thumbnail-generator/internal/catalog"
	"github.com/jongalloway/thumbnail-generator/internal/domain"
	"github.com/jongalloway/thumbnail-generator/internal/export"
	"github.com/jongalloway/thumbnail-generator/internal/fields"
)

var testBackgrounds = []catalog.Background{
	{ID: "studio-dark", Name: "Studio dark", URL: "https://assets.test/dark.png", Variant: domain.BackgroundDark},
	{ID: "studio-light", Name: "Studio light", URL: "https://assets.test/light.png", Variant: domain.BackgroundLight},
}

var testLogos = []catalog.Logo{
	{ID: "go-gopher", Name: "Go gopher", URL: "https://assets.test/gopher.png"},
	{ID: "rustacean", Name: "Rustacean", URL: "https://assets.test/rustacean.png"},
}

func mustSchema(t *testing.T, name string) fields.Schema {
	t.Helper()
	schema, ok := fields.Builtin().Schema(name)
	if !ok {
		t.Fatalf("schema %s missing", name)
	}
	return schema
}

func TestBuildRequestStandardLayout(t *testing.T) {
	vals := make(fields.Values)
	vals.SetText(fieldEpisode, "EP 12")
	vals.SetText(fieldTitle, "Profiling Go services")
	vals.SetText(fieldSubtitle, "with flame graphs")
	bg := testBackgrounds[1].Asset()
	vals[fieldBackground] = fields.Value{Image: &bg}
	vals.SetText(fieldTextVariant, "auto")
	vals.SetText(fieldRight, fields.RightLogos)
	vals[fieldLogos] = fields.Value{Logos: []domain.LogoAsset{testLogos[0].Asset(), testLogos[1].Asset()}}

	res := domain.Resolution{Width: 1280, Height: 720}
	req := buildRequest(vals, res, testBackgrounds)

	if got, want := req.Badge, "EP 12"; got != want {
		t.Fatalf("Badge = %q, want %q", got, want)
	}
	if got, want := req.BackgroundURL, testBackgrounds[1].URL; got != want {
		t.Fatalf("BackgroundURL = %q, want %q", got, want)
	}
	if got, want := req.Variant, domain.BackgroundLight; got != want {
		t.Fatalf("Variant = %q, want %q", got, want)
	}
	if req.Text != "" {
		t.Fatalf("Text = %q, want empty for auto", req.Text)
	}
	if got, want := req.Resolution, res; got != want {
		t.Fatalf("Resolution = %v, want %v", got, want)
	}
	if got, want := req.Right.Kind(), domain.RightLogos; got != want {
		t.Fatalf("Right.Kind = %v, want %v", got, want)
	}
	if got := req.Right.Logos(); len(got) != 2 || got[0].ID != "go-gopher" {
		t.Fatalf("Right.Logos = %+v, want both test logos", got)
	}
}

func TestBuildRequestImageRight(t *testing.T) {
	vals := make(fields.Values)
	vals.SetText(fieldRight, fields.RightImage)
	img := testBackgrounds[0].Asset()
	vals[fieldImage] = fields.Value{Image: &img}
	vals.SetText(fieldImageLayout, "diagonal")

	req := buildRequest(vals, domain.DefaultResolution, testBackgrounds)
	if got, want := req.Right.Kind(), domain.RightImage; got != want {
		t.Fatalf("Right.Kind = %v, want %v", got, want)
	}
	kind, asset := req.Right.Layout()
	if got, want := kind, domain.LayoutDiagonal; got != want {
		t.Fatalf("layout kind = %q, want %q", got, want)
	}
	if got, want := asset.ID, "studio-dark"; got != want {
		t.Fatalf("layout asset = %q, want %q", got, want)
	}

	// Unknown mode falls back to the circle layout.
	vals.SetText(fieldImageLayout, "hexagon")
	vals[fieldImage] = fields.Value{Image: &img}
	req = buildRequest(vals, domain.DefaultResolution, testBackgrounds)
	kind, _ = req.Right.Layout()
	if got, want := kind, domain.LayoutCircle; got != want {
		t.Fatalf("fallback kind = %q, want %q", got, want)
	}

	// Image mode without an image leaves the right side empty.
	delete(vals, fieldImage)
	req = buildRequest(vals, domain.DefaultResolution, testBackgrounds)
	if got, want := req.Right.Kind(), domain.RightNone; got != want {
		t.Fatalf("Right.Kind without image = %v, want %v", got, want)
	}
}

func TestBuildRequestTextVariantOverride(t *testing.T) {
	vals := make(fields.Values)
	vals.SetText(fieldTextVariant, "dark")
	req := buildRequest(vals, domain.DefaultResolution, nil)
	if got, want := req.Text, domain.TextDark; got != want {
		t.Fatalf("Text = %q, want %q", got, want)
	}
}

func TestTokenValuesDerivesColorsAndDate(t *testing.T) {
	schema := mustSchema(t, fields.LayoutEpisode1)
	vals := make(fields.Values)
	vals.SetText("episode", "42")
	vals.SetText("title", "Iterators")
	bg := testBackgrounds[0].Asset()
	vals["background-url"] = fields.Value{Image: &bg}
	guest := testBackgrounds[1].Asset()
	vals["guest1-image"] = fields.Value{Image: &guest}
	vals.SetText("guest1-name", "J. Doe")

	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	m := tokenValues(schema, vals, testBackgrounds, now)

	want := map[string]string{
		"episode":        "42",
		"title":          "Iterators",
		"subtitle":       "",
		"background-url": testBackgrounds[0].URL,
		"date":           "Mar 1, 2025",
		"guest1-name":    "J. Doe",
		"guest1-image":   testBackgrounds[1].URL,
		"text-color":     "#ffffff",
		"subtitle-color": "#e2e8f0",
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Fatalf("token values mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenValuesLightBackgroundDarkText(t *testing.T) {
	schema := mustSchema(t, fields.LayoutEpisode1)
	vals := make(fields.Values)
	bg := testBackgrounds[1].Asset()
	vals["background-url"] = fields.Value{Image: &bg}
	vals.SetText("date", "2025-06-01")

	m := tokenValues(schema, vals, testBackgrounds, time.Now())
	if got, want := m["text-color"], "#111827"; got != want {
		t.Fatalf("text-color = %q, want %q", got, want)
	}
	if got, want := m["date"], "2025-06-01"; got != want {
		t.Fatalf("date = %q, want %q (explicit value kept)", got, want)
	}
}

func TestBackgroundFieldID(t *testing.T) {
	if got, want := backgroundFieldID(mustSchema(t, fields.LayoutStandard)), "background"; got != want {
		t.Fatalf("standard background field = %q, want %q", got, want)
	}
	if got, want := backgroundFieldID(mustSchema(t, fields.LayoutEpisode1)), "background-url"; got != want {
		t.Fatalf("episode background field = %q, want %q", got, want)
	}
}

func TestApplySet(t *testing.T) {
	schema := mustSchema(t, fields.LayoutStandard)

	t.Run("text", func(t *testing.T) {
		vals := make(fields.Values)
		if err := applySet(vals, schema, "title=Hello, Go", testBackgrounds, testLogos); err != nil {
			t.Fatalf("applySet: %v", err)
		}
		if got, want := vals.Text("title"), "Hello, Go"; got != want {
			t.Fatalf("title = %q, want %q", got, want)
		}
	})

	t.Run("text over limit", func(t *testing.T) {
		vals := make(fields.Values)
		err := applySet(vals, schema, "episode="+strings.Repeat("x", 25), testBackgrounds, testLogos)
		if err == nil || !strings.Contains(err.Error(), "at most 24 characters") {
			t.Fatalf("err = %v, want length violation", err)
		}
	})

	t.Run("select", func(t *testing.T) {
		vals := make(fields.Values)
		if err := applySet(vals, schema, "right=logos", testBackgrounds, testLogos); err != nil {
			t.Fatalf("applySet: %v", err)
		}
		if got, want := vals.Text("right"), fields.RightLogos; got != want {
			t.Fatalf("right = %q, want %q", got, want)
		}
		if err := applySet(vals, schema, "right=sideways", testBackgrounds, testLogos); err == nil {
			t.Fatalf("invalid option accepted")
		}
	})

	t.Run("image from catalog", func(t *testing.T) {
		vals := make(fields.Values)
		if err := applySet(vals, schema, "background=studio-dark", testBackgrounds, testLogos); err != nil {
			t.Fatalf("applySet: %v", err)
		}
		img := vals.Image("background")
		if img == nil || img.Source != testBackgrounds[0].URL {
			t.Fatalf("background = %+v, want catalog asset", img)
		}
	})

	t.Run("logo list", func(t *testing.T) {
		vals := make(fields.Values)
		if err := applySet(vals, schema, "logos=go-gopher, rustacean", testBackgrounds, testLogos); err != nil {
			t.Fatalf("applySet: %v", err)
		}
		logos := vals.Logos("logos")
		if len(logos) != 2 || logos[1].ID != "rustacean" {
			t.Fatalf("logos = %+v, want both entries", logos)
		}
		if err := applySet(vals, schema, "logos=ferris", testBackgrounds, testLogos); err == nil {
			t.Fatalf("unknown logo accepted")
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		vals := make(fields.Values)
		if err := applySet(vals, schema, "caption=hi", testBackgrounds, testLogos); err == nil {
			t.Fatalf("unknown field accepted")
		}
	})

	t.Run("malformed pair", func(t *testing.T) {
		vals := make(fields.Values)
		if err := applySet(vals, schema, "title", testBackgrounds, testLogos); err == nil {
			t.Fatalf("pair without = accepted")
		}
	})
}

func TestResolveImage(t *testing.T) {
	asset, err := resolveImage("studio-light", testBackgrounds)
	if err != nil {
		t.Fatalf("catalog id: %v", err)
	}
	if got, want := asset.Source, testBackgrounds[1].URL; got != want {
		t.Fatalf("catalog source = %q, want %q", got, want)
	}

	asset, err = resolveImage("https://example.com/pic.png", testBackgrounds)
	if err != nil {
		t.Fatalf("url: %v", err)
	}
	if got, want := asset.Source, "https://example.com/pic.png"; got != want {
		t.Fatalf("url source = %q, want %q", got, want)
	}

	path := filepath.Join(t.TempDir(), "local.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	asset, err = resolveImage(path, testBackgrounds)
	if err != nil {
		t.Fatalf("local file: %v", err)
	}
	if !asset.Uploaded || !strings.HasPrefix(asset.Source, "data:image/png;base64,") {
		t.Fatalf("local asset = %+v, want uploaded data URI", asset)
	}

	if _, err := resolveImage("no-such-thing", testBackgrounds); err == nil {
		t.Fatalf("garbage reference accepted")
	}
}

func TestParseFormats(t *testing.T) {
	fmts, err := parseFormats("png, jpeg,png,svg")
	if err != nil {
		t.Fatalf("parseFormats: %v", err)
	}
	want := []export.Format{export.FormatPNG, export.FormatJPEG, export.FormatSVG}
	if diff := cmp.Diff(want, fmts); diff != "" {
		t.Fatalf("formats mismatch (-want +got):\n%s", diff)
	}

	fmts, err = parseFormats("web,jpeg,png")
	if err != nil {
		t.Fatalf("parseFormats preset: %v", err)
	}
	want = []export.Format{export.FormatSVG, export.FormatPNG, export.FormatJPEG}
	if diff := cmp.Diff(want, fmts); diff != "" {
		t.Fatalf("preset expansion mismatch (-want +got):\n%s", diff)
	}

	if _, err := parseFormats("gif"); err == nil {
		t.Fatalf("unknown format accepted")
	}
	if _, err := parseFormats(" , "); err == nil {
		t.Fatalf("empty list accepted")
	}
}

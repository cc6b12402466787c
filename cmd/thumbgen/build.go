/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jongalloway/thumbnail-generator/internal/catalog"
	"github.com/jongalloway/thumbnail-generator/internal/domain"
	"github.com/jongalloway/thumbnail-generator/internal/export"
	"github.com/jongalloway/thumbnail-generator/internal/fields"
	"github.com/jongalloway/thumbnail-generator/internal/layout"
)

// Well-known field ids of the standard layout. The fixed-layout templates
// use their own ids and reach the substitution engine generically.
const (
	fieldEpisode     = "episode"
	fieldTitle       = "title"
	fieldSubtitle    = "subtitle"
	fieldBackground  = "background"
	fieldTextVariant = "text-variant"
	fieldRight       = "right"
	fieldLogos       = "logos"
	fieldImage       = "image"
	fieldImageLayout = "image-layout"
	fieldDate        = "date"
)

// repeatedFlag collects every occurrence of a repeatable string flag.
type repeatedFlag []string

func (f *repeatedFlag) String() string { return strings.Join(*f, ",") }

func (f *repeatedFlag) Set(v string) error {
	*f = append(*f, v)
	return nil
}

// buildRequest maps the standard layout's field values onto a composition
// request.
func buildRequest(vals fields.Values, res domain.Resolution, bgs []catalog.Background) layout.Request {
	req := layout.Request{
		Badge:      vals.Text(fieldEpisode),
		Title:      vals.Text(fieldTitle),
		Subtitle:   vals.Text(fieldSubtitle),
		Resolution: res,
	}
	if bg := vals.Image(fieldBackground); bg != nil {
		req.BackgroundURL = bg.Source
		if entry, ok := catalog.FindBackground(bgs, bg.ID); ok {
			req.Variant = entry.Variant
		}
	}
	switch vals.Text(fieldTextVariant) {
	case "light":
		req.Text = domain.TextLight
	case "dark":
		req.Text = domain.TextDark
	}
	switch vals.Text(fieldRight) {
	case fields.RightLogos:
		req.Right = domain.LogosContent(vals.Logos(fieldLogos))
	case fields.RightImage:
		if img := vals.Image(fieldImage); img != nil {
			kind, ok := domain.ParseImageLayoutKind(vals.Text(fieldImageLayout))
			if !ok {
				kind = domain.LayoutCircle
			}
			req.Right = domain.ImageLayoutContent(kind, *img)
		}
	}
	return req
}

// tokenValues flattens field values into the string map consumed by the
// substitution engine. Image fields contribute their source URI; the text
// color pair and the date are derived here so fixed-layout templates carry
// no logic of their own.
func tokenValues(schema fields.Schema, vals fields.Values, bgs []catalog.Background, now time.Time) map[string]string {
	m := make(map[string]string, len(schema.Fields)+3)
	bgField := backgroundFieldID(schema)
	variant := domain.BackgroundDark
	for _, def := range schema.Fields {
		switch def.Type {
		case fields.TypeText, fields.TypeTextarea, fields.TypeSelect:
			m[def.ID] = vals.Text(def.ID)
		case fields.TypeImage:
			img := vals.Image(def.ID)
			if img == nil {
				m[def.ID] = ""
				continue
			}
			m[def.ID] = img.Source
			if def.ID == bgField {
				if entry, ok := catalog.FindBackground(bgs, img.ID); ok {
					variant = entry.Variant
				}
			}
		}
	}
	if m[fieldDate] == "" {
		m[fieldDate] = now.Format("Jan 2, 2006")
	}
	title, subtitle := layout.TextColors(domain.TextVariantFor(variant))
	m["text-color"] = title
	m["subtitle-color"] = subtitle
	return m
}

// backgroundFieldID returns the id of the schema's background image field,
// by convention the first unconditional image field.
func backgroundFieldID(schema fields.Schema) string {
	for _, def := range schema.Fields {
		if def.Type == fields.TypeImage && def.VisibleWhen == nil {
			return def.ID
		}
	}
	return ""
}

func fieldByID(schema fields.Schema, id string) (fields.FieldDef, bool) {
	for _, def := range schema.Fields {
		if def.ID == id {
			return def, true
		}
	}
	return fields.FieldDef{}, false
}

// applySet stores one -set id=value pair, resolving asset references for
// image and logo fields against the catalog.
func applySet(vals fields.Values, schema fields.Schema, pair string, bgs []catalog.Background, logos []catalog.Logo) error {
	id, value, ok := strings.Cut(pair, "=")
	if !ok {
		return fmt.Errorf("set %q: want id=value", pair)
	}
	id = strings.TrimSpace(id)
	def, ok := fieldByID(schema, id)
	if !ok {
		return fmt.Errorf("set %q: template %s has no field %s", pair, schema.Layout, id)
	}
	switch def.Type {
	case fields.TypeText, fields.TypeTextarea:
		if def.MaxLen > 0 && utf8.RuneCountInString(value) > def.MaxLen {
			return fmt.Errorf("set %s: at most %d characters", id, def.MaxLen)
		}
		vals.SetText(id, value)
	case fields.TypeSelect:
		if !hasOption(def, value) {
			return fmt.Errorf("set %s: no option %q (have %s)", id, value, strings.Join(optionValues(def), ", "))
		}
		vals.SetText(id, value)
	case fields.TypeImage:
		asset, err := resolveImage(value, bgs)
		if err != nil {
			return fmt.Errorf("set %s: %w", id, err)
		}
		vals[id] = fields.Value{Image: &asset}
	case fields.TypeImageArray:
		var images []domain.ImageAsset
		for _, ref := range splitList(value) {
			asset, err := resolveImage(ref, bgs)
			if err != nil {
				return fmt.Errorf("set %s: %w", id, err)
			}
			images = append(images, asset)
		}
		vals[id] = fields.Value{Images: images}
	case fields.TypeLogoArray:
		var picked []domain.LogoAsset
		for _, ref := range splitList(value) {
			l, ok := catalog.FindLogo(logos, ref)
			if !ok {
				return fmt.Errorf("set %s: no logo %q in the catalog", id, ref)
			}
			picked = append(picked, l.Asset())
		}
		vals[id] = fields.Value{Logos: picked}
	default:
		return fmt.Errorf("set %s: unsupported field type %s", id, def.Type)
	}
	return nil
}

// resolveImage turns a catalog id, direct URI or local file path into an
// image asset.
func resolveImage(ref string, bgs []catalog.Background) (domain.ImageAsset, error) {
	if b, ok := catalog.FindBackground(bgs, ref); ok {
		return b.Asset(), nil
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "data:") {
		return domain.ImageAsset{ID: ref, Source: ref}, nil
	}
	if _, err := os.Stat(ref); err == nil {
		return catalog.ReadFile(ref)
	}
	return domain.ImageAsset{}, fmt.Errorf("%q is not a catalog id, URI or local file", ref)
}

func parseFormats(csv string) ([]export.Format, error) {
	var out []export.Format
	seen := make(map[export.Format]struct{})
	add := func(f export.Format) {
		if _, ok := seen[f]; ok {
			return
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	for _, name := range splitList(csv) {
		if fmts, ok := export.ExpandPreset(name); ok {
			for _, f := range fmts {
				add(f)
			}
			continue
		}
		f, err := export.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		add(f)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no export formats given")
	}
	return out, nil
}

func splitList(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func hasOption(def fields.FieldDef, value string) bool {
	for _, o := range def.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

func optionValues(def fields.FieldDef) []string {
	out := make([]string, len(def.Options))
	for i, o := range def.Options {
		out[i] = o.Value
	}
	return out
}

func indexOfString(list []string, value string) int {
	for i, s := range list {
		if s == value {
			return i
		}
	}
	return -1
}

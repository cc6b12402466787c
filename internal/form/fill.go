/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package form fills a layout's field schema interactively. It is a thin
// data-entry front end: prompts walk the schema in order, honoring
// visibility conditions, and produce the same field values the flag-driven
// path builds.
package form

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jongalloway/thumbnail-generator/internal/catalog"
	"github.com/jongalloway/thumbnail-generator/internal/domain"
	"github.com/jongalloway/thumbnail-generator/internal/fields"
)

// Choices lists the catalog assets offered for image and logo fields.
type Choices struct {
	Backgrounds []catalog.Background
	Logos       []catalog.Logo
}

// Image fields offer the catalog entries plus these two escapes.
const (
	pickLocalFile = "Local file"
	pickNone      = "None"
)

// Fill prompts for every visible field of schema and returns the collected
// values. Defaults seed the prompts. Visibility is evaluated against the
// values entered so far, so answering a controlling field reveals its
// dependents immediately.
func Fill(ctx context.Context, d Driver, schema fields.Schema, defaults fields.Values, choices Choices) (fields.Values, error) {
	vals := defaults.Clone()
	for _, def := range schema.Fields {
		if !vals.Visible(def) {
			continue
		}
		var err error
		switch def.Type {
		case fields.TypeText, fields.TypeTextarea:
			err = fillText(ctx, d, def, vals)
		case fields.TypeSelect:
			err = fillSelect(ctx, d, def, vals)
		case fields.TypeImage:
			err = fillImage(ctx, d, def, vals, choices.Backgrounds)
		case fields.TypeImageArray:
			err = fillImageArray(ctx, d, def, vals, choices.Backgrounds)
		case fields.TypeLogoArray:
			err = fillLogos(ctx, d, def, vals, choices.Logos)
		default:
			err = fmt.Errorf("field %s has unsupported type %s", def.ID, def.Type)
		}
		if err != nil {
			return nil, err
		}
	}
	return vals, nil
}

func fillText(ctx context.Context, d Driver, def fields.FieldDef, vals fields.Values) error {
	text, err := d.Input(ctx, InputConfig{
		Message:  def.Label,
		Default:  vals.Text(def.ID),
		Help:     def.Placeholder,
		Validate: maxLenValidator(def.MaxLen),
	})
	if err != nil {
		return err
	}
	vals.SetText(def.ID, text)
	return nil
}

func fillSelect(ctx context.Context, d Driver, def fields.FieldDef, vals fields.Values) error {
	labels := make([]string, len(def.Options))
	for i, o := range def.Options {
		labels[i] = optionLabel(o)
	}
	cur := vals.Text(def.ID)
	if cur == "" {
		cur = def.Default
	}
	idx, err := d.Select(ctx, SelectConfig{
		Message:      def.Label,
		Options:      labels,
		DefaultIndex: optionIndex(def.Options, cur),
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(def.Options) {
		return fmt.Errorf("field %s: selection %d out of range", def.ID, idx)
	}
	vals.SetText(def.ID, def.Options[idx].Value)
	return nil
}

func fillImage(ctx context.Context, d Driver, def fields.FieldDef, vals fields.Values, backgrounds []catalog.Background) error {
	options := make([]string, 0, len(backgrounds)+2)
	for _, b := range backgrounds {
		options = append(options, b.Name)
	}
	options = append(options, pickLocalFile, pickNone)

	defaultIdx := len(options) - 1
	if cur := vals.Image(def.ID); cur != nil {
		for i, b := range backgrounds {
			if b.ID == cur.ID {
				defaultIdx = i
				break
			}
		}
	} else if len(backgrounds) > 0 {
		defaultIdx = 0
	}

	idx, err := d.Select(ctx, SelectConfig{
		Message:      def.Label,
		Options:      options,
		DefaultIndex: defaultIdx,
	})
	if err != nil {
		return err
	}
	switch {
	case idx >= 0 && idx < len(backgrounds):
		asset := backgrounds[idx].Asset()
		vals[def.ID] = fields.Value{Image: &asset}
	case idx == len(backgrounds):
		path, err := d.Input(ctx, InputConfig{
			Message:  def.Label + " file",
			Help:     "path to a local image",
			Validate: requireNonEmpty,
		})
		if err != nil {
			return err
		}
		asset, err := catalog.ReadFile(strings.TrimSpace(path))
		if err != nil {
			return err
		}
		vals[def.ID] = fields.Value{Image: &asset}
	case idx == len(backgrounds)+1:
		delete(vals, def.ID)
	default:
		return fmt.Errorf("field %s: selection %d out of range", def.ID, idx)
	}
	return nil
}

func fillImageArray(ctx context.Context, d Driver, def fields.FieldDef, vals fields.Values, backgrounds []catalog.Background) error {
	if len(backgrounds) == 0 {
		return nil
	}
	options := make([]string, len(backgrounds))
	for i, b := range backgrounds {
		options[i] = b.Name
	}
	cur := make(map[string]struct{})
	for _, img := range vals.Images(def.ID) {
		cur[img.ID] = struct{}{}
	}
	var defaults []int
	for i, b := range backgrounds {
		if _, ok := cur[b.ID]; ok {
			defaults = append(defaults, i)
		}
	}
	picked, err := d.MultiSelect(ctx, SelectConfig{
		Message:  def.Label,
		Options:  options,
		Defaults: defaults,
	})
	if err != nil {
		return err
	}
	images := make([]domain.ImageAsset, 0, len(picked))
	for _, idx := range picked {
		if idx < 0 || idx >= len(backgrounds) {
			return fmt.Errorf("field %s: selection %d out of range", def.ID, idx)
		}
		images = append(images, backgrounds[idx].Asset())
	}
	vals[def.ID] = fields.Value{Images: images}
	return nil
}

func fillLogos(ctx context.Context, d Driver, def fields.FieldDef, vals fields.Values, logos []catalog.Logo) error {
	if len(logos) == 0 {
		return nil
	}
	options := make([]string, len(logos))
	for i, l := range logos {
		options[i] = l.Name
	}
	cur := make(map[string]struct{})
	for _, l := range vals.Logos(def.ID) {
		cur[l.ID] = struct{}{}
	}
	var defaults []int
	for i, l := range logos {
		if _, ok := cur[l.ID]; ok {
			defaults = append(defaults, i)
		}
	}
	picked, err := d.MultiSelect(ctx, SelectConfig{
		Message:  def.Label,
		Options:  options,
		Defaults: defaults,
	})
	if err != nil {
		return err
	}
	selected := make([]domain.LogoAsset, 0, len(picked))
	for _, idx := range picked {
		if idx < 0 || idx >= len(logos) {
			return fmt.Errorf("field %s: selection %d out of range", def.ID, idx)
		}
		selected = append(selected, logos[idx].Asset())
	}
	vals[def.ID] = fields.Value{Logos: selected}
	return nil
}

func maxLenValidator(limit int) func(string) error {
	if limit <= 0 {
		return nil
	}
	return func(s string) error {
		if utf8.RuneCountInString(s) > limit {
			return fmt.Errorf("at most %d characters", limit)
		}
		return nil
	}
}

func requireNonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("a value is required")
	}
	return nil
}

func optionLabel(o fields.Option) string {
	if o.Label != "" {
		return o.Label
	}
	return o.Value
}

func optionIndex(opts []fields.Option, value string) int {
	for i, o := range opts {
		if o.Value == value {
			return i
		}
	}
	return -1
}

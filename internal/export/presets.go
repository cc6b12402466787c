/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import "strings"

// Preset names a set of formats exported together. Presets are accepted
// wherever a format name is, so "thumbgen export -format web" writes the
// whole set in one run.
type Preset struct {
	Name    string
	Formats []Format
}

// Presets returns the named format sets.
func Presets() []Preset {
	return []Preset{
		{Name: "web", Formats: []Format{FormatSVG, FormatPNG}},
		{Name: "social", Formats: []Format{FormatPNG, FormatJPEG}},
		{Name: "print", Formats: []Format{FormatPDF}},
		{Name: "archive", Formats: []Format{FormatBundle}},
	}
}

// ExpandPreset resolves a preset name to its format list. The bool reports
// whether the name is a preset at all.
func ExpandPreset(name string) ([]Format, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range Presets() {
		if p.Name == name {
			return append([]Format(nil), p.Formats...), true
		}
	}
	return nil, false
}

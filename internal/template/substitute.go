/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package template renders fixed-layout thumbnail variants by substituting
// named tokens in prebuilt vector documents. Templates are loaded once per
// variant and cached for the lifetime of the process.
package template

import (
	"regexp"
	"strings"
)

// Markers come in two shapes: __NAME__ is the current form, {{NAME}} is kept
// for templates authored against the old syntax.
var tokenPattern = regexp.MustCompile(`__([A-Za-z0-9_]+?)__|\{\{([A-Za-z0-9_]+?)\}\}`)

// Substitute replaces every token marker whose name appears in tokens with
// its value. Markers with unknown names are left in place. Replacement values
// are emitted verbatim and never re-scanned, so a value containing marker
// syntax cannot trigger further expansion.
func Substitute(text string, tokens map[string]string) string {
	if len(tokens) == 0 || text == "" {
		return text
	}
	return tokenPattern.ReplaceAllStringFunc(text, func(m string) string {
		name := markerName(m)
		if v, ok := tokens[name]; ok {
			return v
		}
		return m
	})
}

func markerName(marker string) string {
	if strings.HasPrefix(marker, "__") {
		return strings.TrimSuffix(strings.TrimPrefix(marker, "__"), "__")
	}
	return strings.TrimSuffix(strings.TrimPrefix(marker, "{{"), "}}")
}

// TokenName derives the marker name for a form field identifier.
// "guest1_name" maps to "GUEST1_NAME".
func TokenName(fieldID string) string {
	s := strings.TrimSpace(fieldID)
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return strings.ToUpper(s)
}

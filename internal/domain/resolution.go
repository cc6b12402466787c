/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Resolution is the pixel size of an exported composition.
type Resolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DefaultResolution is the reference size all layout constants are authored
// against. Unparseable resolution strings fall back to it.
var DefaultResolution = Resolution{Width: 1920, Height: 1080}

// ParseResolution parses a "WIDTHxHEIGHT" string (case-insensitive separator,
// surrounding whitespace tolerated). Anything that does not yield two
// positive integers returns DefaultResolution; sizing must never fail.
func ParseResolution(s string) Resolution {
	s = strings.TrimSpace(s)
	sep := strings.IndexAny(s, "xX")
	if sep <= 0 {
		return DefaultResolution
	}
	w, errW := strconv.Atoi(strings.TrimSpace(s[:sep]))
	h, errH := strconv.Atoi(strings.TrimSpace(s[sep+1:]))
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return DefaultResolution
	}
	return Resolution{Width: w, Height: h}
}

// Scale returns the uniform scale factor relative to the 1920px reference
// width. Height never participates; compositions keep the reference aspect.
func (r Resolution) Scale() float64 {
	if r.Width <= 0 {
		return 1
	}
	return float64(r.Width) / float64(DefaultResolution.Width)
}

// String renders the resolution in the same WIDTHxHEIGHT form ParseResolution
// accepts.
func (r Resolution) String() string { return fmt.Sprintf("%dx%d", r.Width, r.Height) }

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"strings"
	"unicode/utf8"
)

// DefaultCharBudget is the per-line character budget used when no usable
// width or font is available.
const DefaultCharBudget = 22

// Ellipsis is appended to truncated text.
const Ellipsis = "…"

// WrapChars greedily wraps whitespace-normalized text by character count: a
// word joins the current line while len(line)+1+len(word) stays within
// maxChars, otherwise it starts a new line. Words are never split, so a
// single over-long word occupies its own line. Empty input yields no lines.
func WrapChars(text string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = DefaultCharBudget
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	lines := make([]string, 0, 2)
	cur := words[0]
	curLen := utf8.RuneCountInString(cur)
	for _, w := range words[1:] {
		wl := utf8.RuneCountInString(w)
		if curLen+1+wl <= maxChars {
			cur += " " + w
			curLen += 1 + wl
		} else {
			lines = append(lines, cur)
			cur, curLen = w, wl
		}
	}
	return append(lines, cur)
}

// WrapWidth wraps like WrapChars but accepts a word while the measured
// candidate line stays within maxWidth. A non-positive width, zero-size font
// or nil measurer degrades to the default character budget so layout keeps
// working headless.
func WrapWidth(text string, maxWidth float64, f Font, m Measurer) []string {
	if m == nil || maxWidth <= 0 || f.Size <= 0 {
		return WrapChars(text, DefaultCharBudget)
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	lines := make([]string, 0, 2)
	cur := words[0]
	for _, w := range words[1:] {
		if m.Width(cur+" "+w, f) <= maxWidth {
			cur += " " + w
		} else {
			lines = append(lines, cur)
			cur = w
		}
	}
	return append(lines, cur)
}

// TruncateEllipsis shortens text to the widest prefix that, with the
// ellipsis appended, measures within maxWidth. Text that already fits is
// returned unchanged. The prefix length is found by binary search over the
// rune count, so the measurer is consulted O(log n) times. When not even
// the ellipsis alone fits, the ellipsis is returned.
func TruncateEllipsis(text string, maxWidth float64, f Font, m Measurer) string {
	if m == nil || maxWidth <= 0 {
		return text
	}
	if m.Width(text, f) <= maxWidth {
		return text
	}
	runes := []rune(text)
	fits := func(k int) bool { return m.Width(string(runes[:k])+Ellipsis, f) <= maxWidth }
	lo, hi := 0, len(runes)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if fits(mid) {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return strings.TrimRight(string(runes[:lo]), " ") + Ellipsis
}

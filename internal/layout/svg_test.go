/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package layout

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/jongalloway/thumbnail-generator/internal/domain"
)

func fullRequest() Request {
	return Request{
		Badge:         "EPISODE 7",
		Title:         "Observability on a budget",
		Subtitle:      "Traces, logs and metrics without the bill shock",
		BackgroundURL: "https://cdn.test/bg.png",
		Variant:       domain.BackgroundDark,
		Right: domain.LogosContent([]domain.LogoAsset{
			{ID: "l1", Source: "https://cdn.test/l1.png"},
			{ID: "l2", Source: "https://cdn.test/l2.png"},
			{ID: "l3", Source: "https://cdn.test/l3.png"},
		}),
		Resolution: domain.DefaultResolution,
	}
}

func emit(t *testing.T, s Scene) string {
	t.Helper()
	var buf bytes.Buffer
	if err := EmitSVG(&buf, s); err != nil {
		t.Fatalf("EmitSVG: %v", err)
	}
	return buf.String()
}

func TestEmitSVGDocumentShape(t *testing.T) {
	doc := emit(t, testEngine().Compose(fullRequest()))
	if !strings.HasPrefix(doc, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Fatalf("missing XML prolog: %q", doc[:40])
	}
	if !strings.HasSuffix(strings.TrimSpace(doc), "</svg>") {
		t.Fatalf("document not closed")
	}
	for _, want := range []string{
		`xmlns="http://www.w3.org/2000/svg"`,
		`xmlns:xlink="http://www.w3.org/1999/xlink"`,
		`viewBox="0 0 1920 1080"`,
		`width="1920" height="1080"`,
		`font-family="Go"`,
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("document missing %q", want)
		}
	}
}

func TestEmitSVGWellFormed(t *testing.T) {
	req := fullRequest()
	req.Title = "Ampersands & <angles> survive"
	req.BackgroundURL = "https://cdn.test/bg.png?size=big&v=2"
	doc := emit(t, testEngine().Compose(req))

	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("document is not well formed: %v", err)
		}
	}
	if !strings.Contains(doc, "&amp;v=2") {
		t.Fatalf("query string ampersand not escaped")
	}
	if !strings.Contains(doc, "&lt;angles&gt;") {
		t.Fatalf("text content not escaped")
	}
}

func TestEmitSVGSingleBackgroundElement(t *testing.T) {
	e := testEngine()

	withURL := emit(t, e.Compose(fullRequest()))
	if got := strings.Count(withURL, `<image x="0" y="0"`); got != 1 {
		t.Fatalf("background images = %d, want 1", got)
	}
	if strings.Contains(withURL, `<rect x="0" y="0"`) {
		t.Fatalf("fallback rect emitted alongside background image")
	}

	req := fullRequest()
	req.BackgroundURL = ""
	withoutURL := emit(t, e.Compose(req))
	if got := strings.Count(withoutURL, `<rect x="0" y="0"`); got != 1 {
		t.Fatalf("fallback rects = %d, want 1", got)
	}
	if strings.Contains(withoutURL, `<image x="0" y="0"`) {
		t.Fatalf("background image emitted without a source")
	}
}

func TestEmitSVGImagesCarryBothHrefForms(t *testing.T) {
	doc := emit(t, testEngine().Compose(fullRequest()))
	// Background plus three logo images.
	if got, want := strings.Count(doc, `<image `), 4; got != want {
		t.Fatalf("image elements = %d, want %d", got, want)
	}
	if got, want := strings.Count(doc, ` href="`), 4; got != want {
		t.Fatalf("href attributes = %d, want %d", got, want)
	}
	if got, want := strings.Count(doc, ` xlink:href="`), 4; got != want {
		t.Fatalf("xlink:href attributes = %d, want %d", got, want)
	}
}

func TestEmitSVGClipAndFilterIDsUsePrefix(t *testing.T) {
	s := testEngine().Compose(fullRequest())
	doc := emit(t, s)
	if s.IDPrefix == "" {
		t.Fatalf("scene has no id prefix")
	}
	for _, want := range []string{
		fmt.Sprintf(`<filter id="%s-shadow"`, s.IDPrefix),
		fmt.Sprintf(`filter="url(#%s-shadow)"`, s.IDPrefix),
		fmt.Sprintf(`<clipPath id="%s-logo-0"`, s.IDPrefix),
		fmt.Sprintf(`clip-path="url(#%s-logo-2)"`, s.IDPrefix),
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("document missing %q", want)
		}
	}
	if got, want := strings.Count(doc, "<clipPath "), 3; got != want {
		t.Fatalf("clip paths = %d, want %d", got, want)
	}
}

func TestEmitSVGDistinctIDsAcrossRenders(t *testing.T) {
	e := testEngine()
	s1 := e.Compose(fullRequest())
	s2 := e.Compose(fullRequest())
	doc2 := emit(t, s2)
	if strings.Contains(doc2, fmt.Sprintf(`id="%s-shadow"`, s1.IDPrefix)) {
		t.Fatalf("second render reused ids from the first")
	}
	if !strings.Contains(doc2, fmt.Sprintf(`id="%s-shadow"`, s2.IDPrefix)) {
		t.Fatalf("second render missing its own ids")
	}
}

func TestEmitSVGOmitsAbsentElements(t *testing.T) {
	s := testEngine().Compose(Request{Title: "Just a title", Resolution: domain.DefaultResolution})
	doc := emit(t, s)
	if strings.Contains(doc, "<clipPath ") {
		t.Fatalf("clip path emitted without logos or image layout")
	}
	if strings.Contains(doc, "<image ") {
		t.Fatalf("image emitted without sources")
	}
	if strings.Contains(doc, "<circle ") {
		t.Fatalf("circle emitted without logos")
	}
	// Only the background fallback rect, no badge pill.
	if got, want := strings.Count(doc, "<rect "), 1; got != want {
		t.Fatalf("rect elements = %d, want %d", got, want)
	}
	if got, want := strings.Count(doc, "<text "), 1; got != want {
		t.Fatalf("text elements = %d, want %d", got, want)
	}
}

func TestEmitSVGImageLayoutClipShapes(t *testing.T) {
	e := testEngine()
	img := domain.ImageAsset{Source: "https://cdn.test/speaker.jpg"}

	circle := emit(t, e.Compose(Request{Right: domain.ImageLayoutContent(domain.LayoutCircle, img), Resolution: domain.DefaultResolution}))
	if !strings.Contains(circle, `-image"><circle `) {
		t.Fatalf("circle layout clip missing: %s", clipLine(circle))
	}

	diagonal := emit(t, e.Compose(Request{Right: domain.ImageLayoutContent(domain.LayoutDiagonal, img), Resolution: domain.DefaultResolution}))
	if !strings.Contains(diagonal, `-image"><polygon points="`) {
		t.Fatalf("diagonal layout clip missing: %s", clipLine(diagonal))
	}

	overlay := emit(t, e.Compose(Request{Right: domain.ImageLayoutContent(domain.LayoutOverlay, img), Resolution: domain.DefaultResolution}))
	if !strings.Contains(overlay, `-image"><rect `) || !strings.Contains(overlay, `rx="24"`) {
		t.Fatalf("overlay layout clip missing: %s", clipLine(overlay))
	}
}

func clipLine(doc string) string {
	for _, line := range strings.Split(doc, "\n") {
		if strings.Contains(line, "clipPath") {
			return line
		}
	}
	return "(no clipPath line)"
}

func TestRenderReturnsDocument(t *testing.T) {
	out := testEngine().Render(fullRequest())
	if !strings.Contains(out, "<svg ") || !strings.Contains(out, "</svg>") {
		t.Fatalf("render output is not an svg document")
	}
}

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package template

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuiltinLoadsShippedVariants(t *testing.T) {
	for variant, marker := range map[string]string{
		"episode-1": "__GUEST1_IMAGE__",
		"episode-2": "__GUEST2_IMAGE__",
		"episode-3": "__GUEST3_IMAGE__",
	} {
		content, err := Builtin().Load(context.Background(), variant)
		if err != nil {
			t.Fatalf("Load(%s): %v", variant, err)
		}
		if !strings.Contains(content, "__TITLE__") || !strings.Contains(content, marker) {
			t.Fatalf("%s missing expected tokens", variant)
		}
	}
}

func TestBuiltinRejectsUnknownVariant(t *testing.T) {
	if _, err := Builtin().Load(context.Background(), "episode-9"); err == nil {
		t.Fatalf("expected error for unknown variant")
	}
}

func TestBuiltinRejectsPathEscapes(t *testing.T) {
	for _, variant := range []string{"../loader", "a/b", ""} {
		if _, err := Builtin().Load(context.Background(), variant); err == nil {
			t.Fatalf("variant %q must be rejected", variant)
		}
	}
}

func TestVariantsListsShippedTemplates(t *testing.T) {
	want := []string{"episode-1", "episode-2", "episode-3"}
	if diff := cmp.Diff(want, Variants()); diff != "" {
		t.Fatalf("Variants() mismatch (-want +got):\n%s", diff)
	}
}

func TestHTTPLoaderFetchesVariantPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte("<svg>__TITLE__</svg>"))
	}))
	defer srv.Close()

	l := HTTPLoader{BaseURL: srv.URL + "/templates/"}
	content, err := l.Load(context.Background(), "episode-2")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := gotPath, "/templates/episode-2.svg"; got != want {
		t.Fatalf("request path = %q, want %q", got, want)
	}
	if !strings.Contains(content, "__TITLE__") {
		t.Fatalf("content = %q", content)
	}
}

func TestHTTPLoaderPropagatesFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := (HTTPLoader{BaseURL: srv.URL}).Load(context.Background(), "episode-1"); err == nil {
		t.Fatalf("expected error for server failure")
	}
}

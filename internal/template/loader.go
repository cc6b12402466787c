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
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/jongalloway/thumbnail-generator/internal/fetch"
)

//go:embed templates/*.svg
var builtinFS embed.FS

//go:embed templates/fallback.svg
var fallbackTemplate string

// DefaultVariant is used when the caller does not pick a template.
const DefaultVariant = "episode-1"

// Fallback returns the built-in document used when a variant cannot be
// loaded. It carries the same token set as the shipped variants.
func Fallback() string { return fallbackTemplate }

// Loader retrieves the raw text of a template variant.
type Loader interface {
	Load(ctx context.Context, variant string) (string, error)
}

type fsLoader struct {
	fsys fs.FS
}

// Builtin loads the variants compiled into the binary.
func Builtin() Loader { return fsLoader{fsys: builtinFS} }

func (l fsLoader) Load(_ context.Context, variant string) (string, error) {
	name := "templates/" + variant + ".svg"
	if !fs.ValidPath(name) || strings.Contains(variant, "/") {
		return "", fmt.Errorf("invalid template variant %q", variant)
	}
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return "", fmt.Errorf("read template %s: %w", variant, err)
	}
	return string(data), nil
}

// HTTPLoader retrieves variants from a remote base URL, one document per
// variant at <base>/<variant>.svg.
type HTTPLoader struct {
	Client  *fetch.Client
	BaseURL string
}

func (l HTTPLoader) Load(ctx context.Context, variant string) (string, error) {
	c := l.Client
	if c == nil {
		c = fetch.New()
	}
	url := strings.TrimSuffix(l.BaseURL, "/") + "/" + variant + ".svg"
	body, _, err := c.Get(ctx, url)
	if err != nil {
		return "", fmt.Errorf("load template %s: %w", variant, err)
	}
	return string(body), nil
}

// Variants lists the built-in template variants in stable order.
func Variants() []string {
	entries, err := fs.ReadDir(builtinFS, "templates")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".svg")
		if name == "fallback" {
			continue
		}
		names = append(names, name)
	}
	return names
}

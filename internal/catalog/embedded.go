/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	gojsonschema "github.com/xeipuuv/gojsonschema"
)

//go:embed assets/catalog.json
var builtinCatalog []byte

//go:embed assets/catalog.schema.json
var catalogSchema []byte

// document is the wire shape of a catalog payload.
type document struct {
	Backgrounds []Background `json:"backgrounds"`
	Logos       []Logo       `json:"logos"`
}

// parseCatalog checks data against the catalog schema and decodes it.
// A payload that fails validation is an error; asset lists are load-bearing
// and must not degrade silently.
func parseCatalog(data []byte) (*document, error) {
	schemaLoader := gojsonschema.NewBytesLoader(catalogSchema)
	docLoader := gojsonschema.NewBytesLoader(data)
	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("catalog does not conform to schema: %s", strings.Join(msgs, "; "))
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return &doc, nil
}

var (
	builtinOnce sync.Once
	builtinDoc  *document
	builtinErr  error
)

func builtin() (*document, error) {
	builtinOnce.Do(func() {
		builtinDoc, builtinErr = parseCatalog(builtinCatalog)
	})
	return builtinDoc, builtinErr
}

type embeddedSource struct{}

// Embedded returns the source backed by the catalog shipped in the binary.
func Embedded() Source { return embeddedSource{} }

func (embeddedSource) Backgrounds(ctx context.Context) ([]Background, error) {
	doc, err := builtin()
	if err != nil {
		return nil, err
	}
	return doc.Backgrounds, nil
}

func (embeddedSource) Logos(ctx context.Context) ([]Logo, error) {
	doc, err := builtin()
	if err != nil {
		return nil, err
	}
	return doc.Logos, nil
}

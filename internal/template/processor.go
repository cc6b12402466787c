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

	"github.com/jongalloway/thumbnail-generator/internal/log"
	"github.com/jongalloway/thumbnail-generator/internal/textlayout"
)

// Limit bounds the rendered width of a single token's value. Values that
// measure wider are shortened with a trailing ellipsis before substitution.
type Limit struct {
	MaxWidth float64
	Font     textlayout.Font
}

// Processor renders fixed-layout variants. A variant that cannot be loaded is
// silently replaced by the built-in fallback document so that a render request
// always yields a usable result.
type Processor struct {
	store   *Store
	metrics textlayout.Measurer
	limits  map[string]Limit
}

type ProcessorOption func(*Processor)

// WithProcessorMeasurer overrides the width measurer used for token limits.
func WithProcessorMeasurer(m textlayout.Measurer) ProcessorOption {
	return func(p *Processor) { p.metrics = m }
}

// WithLimit registers a width limit for the named token.
func WithLimit(token string, l Limit) ProcessorOption {
	return func(p *Processor) { p.limits[token] = l }
}

func NewProcessor(store *Store, opts ...ProcessorOption) *Processor {
	p := &Processor{
		store:   store,
		metrics: textlayout.HeuristicMeasurer{},
		limits:  make(map[string]Limit),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Render loads the variant, applies token limits and substitutes values.
// values is keyed by form field id; keys are mapped to token names via
// TokenName.
func (p *Processor) Render(ctx context.Context, variant string, values map[string]string) string {
	if variant == "" {
		variant = DefaultVariant
	}
	content, err := p.store.Get(ctx, variant)
	if err != nil {
		log.WithComponent("template").Warn("template unavailable, using fallback", "variant", variant, "err", err)
		content = Fallback()
	}
	tokens := make(map[string]string, len(values))
	for id, v := range values {
		name := TokenName(id)
		if lim, ok := p.limits[name]; ok {
			v = textlayout.TruncateEllipsis(v, lim.MaxWidth, lim.Font, p.metrics)
		}
		tokens[name] = v
	}
	return Substitute(content, tokens)
}

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
	"fmt"
	"strings"
	"sync"

	"github.com/jongalloway/thumbnail-generator/internal/fetch"
)

// RemoteSource reads the catalog from a static host. The payload is fetched
// and validated once, then served from memory for the process lifetime.
type RemoteSource struct {
	client *fetch.Client
	base   string

	mu  sync.Mutex
	doc *document
}

// Remote returns a source serving <baseURL>/catalog.json. A nil client uses
// the default bounded-timeout fetcher.
func Remote(baseURL string, client *fetch.Client) *RemoteSource {
	if client == nil {
		client = fetch.New()
	}
	return &RemoteSource{client: client, base: strings.TrimRight(baseURL, "/")}
}

func (s *RemoteSource) load(ctx context.Context) (*document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc != nil {
		return s.doc, nil
	}
	data, _, err := s.client.Get(ctx, s.base+"/catalog.json")
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	doc, err := parseCatalog(data)
	if err != nil {
		return nil, err
	}
	s.doc = doc
	return doc, nil
}

func (s *RemoteSource) Backgrounds(ctx context.Context) ([]Background, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Backgrounds, nil
}

func (s *RemoteSource) Logos(ctx context.Context) ([]Logo, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Logos, nil
}

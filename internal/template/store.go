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
	"sync"
)

// Store caches template content per variant for the lifetime of the process.
// The cache is append-only: each variant is fetched at most once, concurrent
// requests for the same variant share the single in-flight load, and a failed
// load is cached like a successful one. A caller that gives up waiting does
// not abort the load for everyone else.
type Store struct {
	loader Loader

	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	ready   chan struct{}
	content string
	err     error
}

func NewStore(l Loader) *Store {
	return &Store{loader: l, entries: make(map[string]*entry)}
}

// Get returns the cached content for variant, loading it on first use.
func (s *Store) Get(ctx context.Context, variant string) (string, error) {
	s.mu.Lock()
	e, ok := s.entries[variant]
	if !ok {
		e = &entry{ready: make(chan struct{})}
		s.entries[variant] = e
		go s.load(e, variant)
	}
	s.mu.Unlock()

	select {
	case <-e.ready:
		return e.content, e.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// load runs detached from any single caller's context so that one cancelled
// request cannot poison the cache entry for later callers.
func (s *Store) load(e *entry, variant string) {
	e.content, e.err = s.loader.Load(context.Background(), variant)
	close(e.ready)
}

// Cached reports whether variant has a settled cache entry.
func (s *Store) Cached(variant string) bool {
	s.mu.Lock()
	e, ok := s.entries[variant]
	s.mu.Unlock()
	if !ok {
		return false
	}
	select {
	case <-e.ready:
		return true
	default:
		return false
	}
}

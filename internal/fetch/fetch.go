/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package fetch is the single HTTP download path used for remote assets and
// templates. Every request is bounded by a per-call timeout.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single download.
const DefaultTimeout = 10 * time.Second

// Client wraps an http.Client with a per-request timeout. The zero value is
// usable and behaves like New().
type Client struct {
	HTTP    *http.Client
	Timeout time.Duration
}

func New() *Client {
	return &Client{HTTP: &http.Client{}, Timeout: DefaultTimeout}
}

// Get downloads rawURL and returns the body together with the response
// Content-Type. Non-2xx responses are errors. The request is cancelled when
// ctx is done or the timeout expires, whichever comes first.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, string, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}
	httpc := c.HTTP
	if httpc == nil {
		httpc = http.DefaultClient
	}
	resp, err := httpc.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, "", fmt.Errorf("fetch %s: unexpected status %s", rawURL, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read response body: %w", err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package catalog supplies the background and logo assets available to
// compositions. The built-in catalog ships with the binary; a remote source
// can serve an updated one from a static host. Both are validated against
// the same JSON schema before use.
package catalog

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/jongalloway/thumbnail-generator/internal/domain"
)

// Background is a catalog entry for a full-bleed backdrop image. Variant
// tells the layout which text scheme keeps contrast.
type Background struct {
	ID      string                   `json:"id"`
	Name    string                   `json:"name"`
	URL     string                   `json:"url"`
	Variant domain.BackgroundVariant `json:"variant"`
}

// Asset converts the entry into the image asset used by render requests.
func (b Background) Asset() domain.ImageAsset {
	return domain.ImageAsset{ID: b.ID, Name: b.Name, Source: b.URL}
}

// Logo is a catalog entry for a logo bitmap.
type Logo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Asset converts the entry into the logo asset used by render requests.
func (l Logo) Asset() domain.LogoAsset {
	return domain.LogoAsset{ID: l.ID, Name: l.Name, Source: l.URL}
}

// Source lists the assets available to compositions.
type Source interface {
	Backgrounds(ctx context.Context) ([]Background, error)
	Logos(ctx context.Context) ([]Logo, error)
}

// FindBackground returns the entry with the given id.
func FindBackground(list []Background, id string) (Background, bool) {
	for _, b := range list {
		if b.ID == id {
			return b, true
		}
	}
	return Background{}, false
}

// FindLogo returns the entry with the given id.
func FindLogo(list []Logo, id string) (Logo, bool) {
	for _, l := range list {
		if l.ID == id {
			return l, true
		}
	}
	return Logo{}, false
}

// ReadFile ingests a local image file as an uploaded asset. The returned
// asset carries the pixels as a data: URI, so it needs no network access
// during inlining.
func ReadFile(path string) (domain.ImageAsset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ImageAsset{}, fmt.Errorf("read asset: %w", err)
	}
	mime := http.DetectContentType(data)
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	if !strings.HasPrefix(mime, "image/") {
		return domain.ImageAsset{}, fmt.Errorf("read asset %s: %s is not an image", path, mime)
	}
	base := filepath.Base(path)
	return domain.ImageAsset{
		ID:       "upload-" + strings.TrimSuffix(base, filepath.Ext(base)),
		Name:     base,
		Source:   "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
		Uploaded: true,
	}, nil
}

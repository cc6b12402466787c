/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package inline turns external image references in a vector document into
// embedded data URIs. Inlining is best effort per image: a fetch that fails
// or times out leaves that one reference untouched and never aborts the rest.
package inline

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/beevik/etree"

	"github.com/jongalloway/thumbnail-generator/internal/fetch"
	"github.com/jongalloway/thumbnail-generator/internal/log"
)

// Inliner embeds remote images into documents. The zero value fetches with
// default settings and resolves only absolute references.
type Inliner struct {
	// Fetch performs the downloads. Each image gets its own timeout window.
	Fetch *fetch.Client
	// Base resolves relative references when set.
	Base *url.URL
}

// Report summarizes one inlining run.
type Report struct {
	// Total counts references that needed embedding.
	Total int
	// Inlined counts references replaced with data URIs.
	Inlined int
	// Failed counts references left untouched after a fetch failure.
	Failed int
}

type candidate struct {
	el   *etree.Element
	src  string
	data []byte
	mime string
	err  error
}

// Inline fetches every external image reference in doc and substitutes data
// URIs for the ones that resolve. All fetches run concurrently; the document
// is mutated and serialized only after every fetch has settled. A document
// that cannot be parsed is returned unchanged together with the parse error.
func (in *Inliner) Inline(ctx context.Context, doc string) (string, Report, error) {
	lg := log.WithComponent("inline")

	d := etree.NewDocument()
	if err := d.ReadFromString(doc); err != nil {
		return doc, Report{}, fmt.Errorf("parse document: %w", err)
	}

	var work []*candidate
	for _, el := range d.FindElements("//image") {
		src := el.SelectAttrValue("href", "")
		if src == "" {
			src = el.SelectAttrValue("xlink:href", "")
		}
		if src == "" || strings.HasPrefix(src, "data:") {
			continue
		}
		work = append(work, &candidate{el: el, src: src})
	}
	report := Report{Total: len(work)}
	if len(work) == 0 {
		return doc, report, nil
	}

	client := in.Fetch
	if client == nil {
		client = fetch.New()
	}

	var wg sync.WaitGroup
	for _, c := range work {
		wg.Add(1)
		go func(c *candidate) {
			defer wg.Done()
			abs, err := in.resolve(c.src)
			if err != nil {
				c.err = err
				return
			}
			data, contentType, err := client.Get(ctx, abs)
			if err != nil {
				c.err = err
				return
			}
			c.data = data
			c.mime = mimeType(contentType, data)
		}(c)
	}
	wg.Wait()

	for _, c := range work {
		if c.err != nil {
			report.Failed++
			lg.Warn("image not inlined", "src", c.src, "err", c.err)
			continue
		}
		uri := "data:" + c.mime + ";base64," + base64.StdEncoding.EncodeToString(c.data)
		c.el.CreateAttr("href", uri)
		if c.el.SelectAttr("xlink:href") != nil {
			c.el.CreateAttr("xlink:href", uri)
		}
		report.Inlined++
	}

	out, err := d.WriteToString()
	if err != nil {
		return doc, report, fmt.Errorf("serialize document: %w", err)
	}
	return out, report, nil
}

func (in *Inliner) resolve(src string) (string, error) {
	u, err := url.Parse(src)
	if err != nil {
		return "", fmt.Errorf("parse reference %q: %w", src, err)
	}
	if u.IsAbs() {
		return src, nil
	}
	if in.Base == nil {
		return "", fmt.Errorf("relative reference %q without base", src)
	}
	return in.Base.ResolveReference(u).String(), nil
}

// mimeType prefers the server's media type and falls back to content
// sniffing when the server did not declare an image type.
func mimeType(contentType string, data []byte) string {
	ct := strings.TrimSpace(contentType)
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if strings.HasPrefix(ct, "image/") {
		return ct
	}
	return http.DetectContentType(data)
}

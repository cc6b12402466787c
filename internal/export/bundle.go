/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"image"
	"path/filepath"
	"time"

	"github.com/jongalloway/thumbnail-generator/internal/domain"
	"github.com/jongalloway/thumbnail-generator/internal/notify"
)

// ExportBundle packages the vector document and one rendering per requested
// format into a single zip archive with a manifest. The vector entry is
// always present, so passing svg in formats is a no-op; nesting bundle is an
// error. Any format that cannot be produced fails the whole bundle, and the
// archive is assembled in memory so a failure leaves no file behind.
func (e *Exporter) ExportBundle(ctx context.Context, doc string, res domain.Resolution, formats []Format) (string, error) {
	wrap := func(stage string, err error) (string, error) {
		return "", &ExportError{Format: FormatBundle, Stage: stage, Err: err}
	}
	if doc == "" {
		return wrap("probe", fmt.Errorf("empty document"))
	}

	want := make([]Format, 0, len(formats))
	seen := make(map[Format]bool, len(formats))
	for _, f := range formats {
		switch f {
		case FormatSVG:
			continue
		case FormatBundle:
			return wrap("probe", fmt.Errorf("a bundle cannot contain another bundle"))
		case FormatPDF:
			// Always encodable; probing would reject it as non-raster.
		default:
			if err := Probe(f); err != nil {
				return wrap("probe", err)
			}
		}
		if seen[f] {
			continue
		}
		seen[f] = true
		want = append(want, f)
	}

	// All pixel entries share one inline pass and one rasterization.
	var img *image.RGBA
	if len(want) > 0 {
		inlined, err := e.inlineDoc(ctx, doc)
		if err != nil {
			return wrap("inline", err)
		}
		r, err := e.renderer()
		if err != nil {
			return wrap("rasterize", err)
		}
		img, err = r.Rasterize(inlined, res.Width, res.Height)
		if err != nil {
			return wrap("rasterize", err)
		}
	}

	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	entries := []string{"thumbnail.svg"}
	if err := addZipEntry(zw, "thumbnail.svg", []byte(doc)); err != nil {
		return wrap("write", err)
	}
	for _, f := range want {
		var data []byte
		var err error
		if f == FormatPDF {
			data, err = pdfDocument(img, res)
		} else {
			data, err = e.encode(img, f)
		}
		if err != nil {
			return wrap("encode", err)
		}
		name := "thumbnail" + f.Ext()
		if err := addZipEntry(zw, name, data); err != nil {
			return wrap("write", err)
		}
		entries = append(entries, name)
	}
	manifest, err := buildBundleManifest(res, entries, e.timestamp())
	if err != nil {
		return wrap("write", err)
	}
	if err := addZipEntry(zw, "manifest.txt", []byte(manifest)); err != nil {
		return wrap("write", err)
	}
	if err := zw.Close(); err != nil {
		return wrap("write", fmt.Errorf("close zip: %w", err))
	}

	path := filepath.Join(e.OutDir, e.FileName(FormatBundle))
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return wrap("write", err)
	}
	e.notify("exported "+filepath.Base(path), notify.Success)
	return path, nil
}

func addZipEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("zip add %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("zip add %s: %w", name, err)
	}
	return nil
}

func buildBundleManifest(res domain.Resolution, entries []string, at time.Time) (string, error) {
	buf := &bytes.Buffer{}
	var werr error
	wf := func(format string, args ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(buf, format, args...)
	}
	wf("thumbnail bundle\n")
	wf("generated: %s\n", at.UTC().Format(time.RFC3339))
	wf("resolution: %dx%d\n", res.Width, res.Height)
	wf("entries:\n")
	for _, name := range entries {
		wf("  %s\n", name)
	}
	if werr != nil {
		return "", fmt.Errorf("build manifest: %w", werr)
	}
	return buf.String(), nil
}

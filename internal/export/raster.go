/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"path/filepath"

	"github.com/jongalloway/thumbnail-generator/internal/domain"
	"github.com/jongalloway/thumbnail-generator/internal/notify"
)

// ExportRaster renders doc to pixels at the exact target resolution and
// encodes it as f. The pipeline is probe, inline, rasterize, encode, write;
// a failure at any stage returns an ExportError naming the stage and leaves
// no file behind.
func (e *Exporter) ExportRaster(ctx context.Context, doc string, res domain.Resolution, f Format) (string, error) {
	if err := Probe(f); err != nil {
		return "", &ExportError{Format: f, Stage: "probe", Err: err}
	}
	inlined, err := e.inlineDoc(ctx, doc)
	if err != nil {
		return "", &ExportError{Format: f, Stage: "inline", Err: err}
	}
	r, err := e.renderer()
	if err != nil {
		return "", &ExportError{Format: f, Stage: "rasterize", Err: err}
	}
	img, err := r.Rasterize(inlined, res.Width, res.Height)
	if err != nil {
		return "", &ExportError{Format: f, Stage: "rasterize", Err: err}
	}
	data, err := e.encode(img, f)
	if err != nil {
		return "", &ExportError{Format: f, Stage: "encode", Err: err}
	}
	path := filepath.Join(e.OutDir, e.FileName(f))
	if err := writeFileAtomic(path, data); err != nil {
		return "", &ExportError{Format: f, Stage: "write", Err: err}
	}
	e.notify("exported "+filepath.Base(path), notify.Success)
	return path, nil
}

// encode serializes img in the requested format. PNG is lossless; jpeg and
// webp use the exporter's fixed quality setting.
func (e *Exporter) encode(img image.Image, f Format) ([]byte, error) {
	var buf bytes.Buffer
	switch f {
	case FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	case FormatJPEG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: e.quality()}); err != nil {
			return nil, err
		}
	case FormatWebP:
		enc := webpEncoder()
		if enc == nil {
			return nil, fmt.Errorf("no webp encoder available in this build")
		}
		if err := enc(&buf, img, e.quality()); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("format %s is not a raster encoding", f)
	}
	return buf.Bytes(), nil
}

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
	"image"
	"image/png"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"github.com/jongalloway/thumbnail-generator/internal/domain"
	"github.com/jongalloway/thumbnail-generator/internal/notify"
)

// ExportPDF rasterizes doc and embeds the pixels as a single-page PDF.
// The page uses points at one point per pixel so the media box matches the
// target resolution exactly. The whole document is buffered before anything
// touches disk; a failed export leaves no file behind.
func (e *Exporter) ExportPDF(ctx context.Context, doc string, res domain.Resolution) (string, error) {
	inlined, err := e.inlineDoc(ctx, doc)
	if err != nil {
		return "", &ExportError{Format: FormatPDF, Stage: "inline", Err: err}
	}
	r, err := e.renderer()
	if err != nil {
		return "", &ExportError{Format: FormatPDF, Stage: "rasterize", Err: err}
	}
	img, err := r.Rasterize(inlined, res.Width, res.Height)
	if err != nil {
		return "", &ExportError{Format: FormatPDF, Stage: "rasterize", Err: err}
	}
	data, err := pdfDocument(img, res)
	if err != nil {
		return "", &ExportError{Format: FormatPDF, Stage: "encode", Err: err}
	}
	path := filepath.Join(e.OutDir, e.FileName(FormatPDF))
	if err := writeFileAtomic(path, data); err != nil {
		return "", &ExportError{Format: FormatPDF, Stage: "write", Err: err}
	}
	e.notify("exported "+filepath.Base(path), notify.Success)
	return path, nil
}

// pdfDocument builds a one-page PDF with img filling the media box.
func pdfDocument(img image.Image, res domain.Resolution) ([]byte, error) {
	var pixels bytes.Buffer
	if err := png.Encode(&pixels, img); err != nil {
		return nil, err
	}

	mediaW := float64(res.Width)
	mediaH := float64(res.Height)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: mediaW, Ht: mediaH},
		OrientationStr: "",
	})
	pdf.SetTitle("Thumbnail", false)
	pdf.SetAuthor("thumbnail-generator", false)
	pdf.AddPageFormat("", gofpdf.SizeType{Wd: mediaW, Ht: mediaH})
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("thumbnail", opts, &pixels)
	pdf.ImageOptions("thumbnail", 0, 0, mediaW, mediaH, false, opts, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export writes composed documents to files: the vector document
// verbatim, rasterized png/jpeg/webp at the target resolution, a single-page
// pdf, or a zip bundle of several outputs. Raster and pdf exports inline
// remote images first. Files are written via a temp file and rename so a
// failed export never leaves a partial file behind.
package export

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/jongalloway/thumbnail-generator/internal/domain"
	"github.com/jongalloway/thumbnail-generator/internal/inline"
	"github.com/jongalloway/thumbnail-generator/internal/log"
	"github.com/jongalloway/thumbnail-generator/internal/notify"
	"github.com/jongalloway/thumbnail-generator/internal/svgrender"
)

// DefaultQuality is the fixed quality factor for the lossy encodings.
const DefaultQuality = 92

// Exporter writes export files into OutDir.
type Exporter struct {
	OutDir   string
	Inliner  *inline.Inliner
	Renderer *svgrender.Renderer
	Notifier notify.Notifier
	Quality  int

	now func() time.Time
}

func NewExporter(outDir string) *Exporter {
	return &Exporter{OutDir: outDir, Quality: DefaultQuality, now: time.Now}
}

// notify reports an outcome event. A nil Notifier falls back to the log.
func (e *Exporter) notify(msg string, sev notify.Severity) {
	n := e.Notifier
	if n == nil {
		n = notify.Log(log.WithComponent("export"))
	}
	n.Notify(msg, sev)
}

// Export dispatches doc to the path matching f and returns the written file.
func (e *Exporter) Export(ctx context.Context, doc string, res domain.Resolution, f Format) (string, error) {
	switch f {
	case FormatSVG:
		return e.ExportVector(doc)
	case FormatPDF:
		return e.ExportPDF(ctx, doc, res)
	case FormatPNG, FormatJPEG, FormatWebP:
		return e.ExportRaster(ctx, doc, res, f)
	case FormatBundle:
		return e.ExportBundle(ctx, doc, res, []Format{FormatPNG})
	}
	return "", &ExportError{Format: f, Stage: "probe", Err: fmt.Errorf("unknown format %q", string(f))}
}

// FileName builds the timestamped output name for f.
func (e *Exporter) FileName(f Format) string {
	return fmt.Sprintf("thumbnail-%d%s", e.timestamp().UnixMilli(), f.Ext())
}

func (e *Exporter) timestamp() time.Time {
	if e.now != nil {
		return e.now()
	}
	return time.Now()
}

func (e *Exporter) inliner() *inline.Inliner {
	if e.Inliner != nil {
		return e.Inliner
	}
	return &inline.Inliner{}
}

func (e *Exporter) renderer() (*svgrender.Renderer, error) {
	if e.Renderer == nil {
		r, err := svgrender.New()
		if err != nil {
			return nil, err
		}
		e.Renderer = r
	}
	return e.Renderer, nil
}

func (e *Exporter) quality() int {
	if e.Quality > 0 {
		return e.Quality
	}
	return DefaultQuality
}

// inlineDoc runs the inliner and logs its outcome. Per-image failures are
// best effort and do not fail the export; an unparseable document does.
func (e *Exporter) inlineDoc(ctx context.Context, doc string) (string, error) {
	inlined, report, err := e.inliner().Inline(ctx, doc)
	if err != nil {
		return "", err
	}
	log.WithComponent("export").Info("inlined document images",
		"total", report.Total, "inlined", report.Inlined, "failed", report.Failed)
	if report.Failed > 0 {
		e.notify(fmt.Sprintf("%d of %d images could not be inlined and stay as remote references", report.Failed, report.Total), notify.Warning)
	}
	return inlined, nil
}

// writeFileAtomic writes data next to path and renames it into place.
func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	temp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d-%d", filepath.Base(path), os.Getpid(), rand.Int()))
	f, err := os.OpenFile(temp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(temp)
		}
	}()
	if _, werr := f.Write(data); werr != nil {
		_ = f.Close()
		return fmt.Errorf("write temp file: %w", werr)
	}
	if serr := f.Sync(); serr != nil {
		_ = f.Close()
		return fmt.Errorf("sync temp file: %w", serr)
	}
	if cerr := f.Close(); cerr != nil {
		return fmt.Errorf("close temp file: %w", cerr)
	}
	// On Windows rename does not replace an existing destination.
	if _, serr := os.Stat(path); serr == nil {
		_ = os.Remove(path)
	}
	if rerr := os.Rename(temp, path); rerr != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), rerr)
	}
	return nil
}

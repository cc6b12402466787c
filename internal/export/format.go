/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"image"
	"io"
	"strings"
	"sync"
)

// Format selects the export encoding.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatWebP Format = "webp"
	FormatPDF  Format = "pdf"

	// FormatBundle is a pseudo-format: a zip carrying the vector document
	// plus a set of raster renderings.
	FormatBundle Format = "bundle"
)

// ParseFormat maps a user-supplied name to a Format. "jpg" is accepted as an
// alias for jpeg.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "webp":
		return FormatWebP, nil
	case "pdf":
		return FormatPDF, nil
	case "bundle", "zip":
		return FormatBundle, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatBundle:
		return ".zip"
	}
	return "." + string(f)
}

// WebPEncoder encodes img with the given lossy quality. The core ships
// without one; builds that bundle an encoder register it at startup.
type WebPEncoder func(w io.Writer, img image.Image, quality int) error

var (
	webpMu  sync.RWMutex
	webpEnc WebPEncoder
)

// RegisterWebPEncoder installs the encoder used for webp exports.
func RegisterWebPEncoder(enc WebPEncoder) {
	webpMu.Lock()
	webpEnc = enc
	webpMu.Unlock()
}

func webpEncoder() WebPEncoder {
	webpMu.RLock()
	defer webpMu.RUnlock()
	return webpEnc
}

// Probe reports whether f can be raster-encoded in this build. It runs before
// any work so an unsupported format is rejected immediately.
func Probe(f Format) error {
	switch f {
	case FormatPNG, FormatJPEG:
		return nil
	case FormatWebP:
		if webpEncoder() == nil {
			return fmt.Errorf("no webp encoder available in this build")
		}
		return nil
	}
	return fmt.Errorf("format %s is not a raster encoding", f)
}

// ExportError wraps a failure in the raster or document export pipeline. The
// vector path does not share any of these failure modes, so the message
// points the user there.
type ExportError struct {
	Format Format
	Stage  string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s failed (%s): %v; the vector svg export is still available", e.Format, e.Stage, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

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
	"path/filepath"

	"github.com/jongalloway/thumbnail-generator/internal/notify"
)

// ExportVector writes the SVG document verbatim to the output directory and
// returns the path of the written file. The document keeps its remote asset
// references; inlining only happens for the raster formats, where the
// rasterizer cannot follow URLs.
func (e *Exporter) ExportVector(doc string) (string, error) {
	if doc == "" {
		return "", fmt.Errorf("export svg: empty document")
	}
	path := filepath.Join(e.OutDir, e.FileName(FormatSVG))
	if err := writeFileAtomic(path, []byte(doc)); err != nil {
		return "", fmt.Errorf("export svg: %w", err)
	}
	e.notify("exported "+filepath.Base(path), notify.Success)
	return path, nil
}

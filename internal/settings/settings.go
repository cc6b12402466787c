/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package settings persists operator preferences between runs: the chosen
// layout, the background per layout, resolution and export format. The store
// is one JSON blob; reading it never fails, a corrupt or missing file just
// yields the defaults.
package settings

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/jongalloway/thumbnail-generator/internal/config"
	"github.com/jongalloway/thumbnail-generator/internal/log"
)

// Settings is the persisted preference blob.
type Settings struct {
	Template    string            `json:"template,omitempty"`
	Backgrounds map[string]string `json:"backgrounds,omitempty"` // layout → background id
	Resolution  string            `json:"resolution,omitempty"`
	Format      string            `json:"format,omitempty"`
}

// Defaults returns the settings used when nothing has been persisted yet.
func Defaults() Settings {
	return Settings{
		Template:    "standard",
		Backgrounds: map[string]string{},
		Resolution:  "1920x1080",
		Format:      "png",
	}
}

// BackgroundFor returns the remembered background id for a layout, or "".
func (s Settings) BackgroundFor(layout string) string {
	return s.Backgrounds[layout]
}

// SetBackground remembers the background choice for a layout.
func (s *Settings) SetBackground(layout, backgroundID string) {
	if s.Backgrounds == nil {
		s.Backgrounds = map[string]string{}
	}
	s.Backgrounds[layout] = backgroundID
}

// Store reads and writes the settings file. The zero value uses the per-user
// default path next to the config file.
type Store struct {
	Path string
}

// DefaultPath returns settings.json in the per-user config directory.
func DefaultPath() (string, error) {
	cfgPath, err := config.ConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(cfgPath), "settings.json"), nil
}

func (st Store) path() (string, error) {
	if st.Path != "" {
		return st.Path, nil
	}
	return DefaultPath()
}

// Load returns the persisted settings. It never fails: an unreadable path,
// missing file or corrupt blob all degrade to Defaults, logged at debug.
func (st Store) Load() Settings {
	s := Defaults()
	path, err := st.path()
	if err != nil {
		log.WithComponent("settings").Debug("settings path unavailable, using defaults", "err", err)
		return s
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WithComponent("settings").Debug("settings unreadable, using defaults", "path", path, "err", err)
		}
		return s
	}
	var loaded Settings
	if err := json.Unmarshal(data, &loaded); err != nil {
		log.WithComponent("settings").Debug("settings corrupt, using defaults", "path", path, "err", err)
		return s
	}
	if loaded.Template != "" {
		s.Template = loaded.Template
	}
	if loaded.Resolution != "" {
		s.Resolution = loaded.Resolution
	}
	if loaded.Format != "" {
		s.Format = loaded.Format
	}
	for layout, bg := range loaded.Backgrounds {
		s.Backgrounds[layout] = bg
	}
	return s
}

// Save writes the blob transactionally: temp file next to the target, then
// rename. A failed save never corrupts the previous file.
func (st Store) Save(s Settings) error {
	path, err := st.path()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure settings dir: %w", err)
	}
	temp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d-%d", filepath.Base(path), os.Getpid(), rand.Int()))
	if err := os.WriteFile(temp, data, 0o600); err != nil {
		return fmt.Errorf("write temp settings: %w", err)
	}
	// On Windows, replace by removing destination first if needed
	if _, err := os.Stat(path); err == nil {
		_ = os.Remove(path)
	}
	if err := os.Rename(temp, path); err != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}

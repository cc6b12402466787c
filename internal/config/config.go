/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in
// the user scope. Environment variables are treated as read-only overrides
// at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.

type OutputConfig struct {
	Dir string `yaml:"dir"`
}

type CatalogConfig struct {
	BaseURL   string `yaml:"base_url"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

type TemplateConfig struct {
	BaseURL string `yaml:"base_url"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int            `yaml:"config_version"`
	Output        OutputConfig   `yaml:"output"`
	Catalog       CatalogConfig  `yaml:"catalog"`
	Templates     TemplateConfig `yaml:"templates"`
	Logging       LoggingConfig  `yaml:"logging"`
}

// Defaults returns the application defaults. An empty catalog base URL means
// only the embedded catalog is consulted; likewise for templates.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Output:        OutputConfig{Dir: "."},
		Catalog:       CatalogConfig{BaseURL: "", TimeoutMs: 10000},
		Templates:     TemplateConfig{BaseURL: ""},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvOutputDir        = "TG_OUTPUT_DIR"
	EnvCatalogURL       = "TG_CATALOG_URL"
	EnvCatalogTimeoutMs = "TG_CATALOG_TIMEOUT_MS"
	EnvTemplateURL      = "TG_TEMPLATE_URL"
	// Logging envs, shared with internal/log.
	EnvLogLevel  = "TG_LOG_LEVEL"
	EnvLogFormat = "TG_LOG_FORMAT"
	EnvLogSource = "TG_LOG_SOURCE"
	EnvLogFile   = "TG_LOG_FILE"
)

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "ThumbnailGenerator")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "ThumbnailGenerator")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "thumbgen")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges
// environment overrides. A missing or malformed file falls back to defaults.
func Load() (AppConfig, error) {
	cfg, err := LoadFile()
	if err != nil {
		return cfg, err
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// LoadFile reads the user config file merged over defaults, without the
// environment overrides. Edits that are saved back start from this view so
// transient environment settings never end up in the file.
func LoadFile() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if strings.TrimSpace(src.Output.Dir) != "" {
		dst.Output.Dir = strings.TrimSpace(src.Output.Dir)
	}
	if strings.TrimSpace(src.Catalog.BaseURL) != "" {
		dst.Catalog.BaseURL = strings.TrimSpace(src.Catalog.BaseURL)
	}
	if src.Catalog.TimeoutMs != 0 {
		dst.Catalog.TimeoutMs = src.Catalog.TimeoutMs
	}
	if strings.TrimSpace(src.Templates.BaseURL) != "" {
		dst.Templates.BaseURL = strings.TrimSpace(src.Templates.BaseURL)
	}
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvOutputDir)); v != "" {
		cfg.Output.Dir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvCatalogURL)); v != "" {
		cfg.Catalog.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvCatalogTimeoutMs)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Catalog.TimeoutMs = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvTemplateURL)); v != "" {
		cfg.Templates.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	switch key {
	case "output.dir":
		if os.Getenv(EnvOutputDir) != "" {
			return EnvOutputDir, true
		}
	case "catalog.base_url":
		if os.Getenv(EnvCatalogURL) != "" {
			return EnvCatalogURL, true
		}
	case "catalog.timeout_ms":
		if os.Getenv(EnvCatalogTimeoutMs) != "" {
			return EnvCatalogTimeoutMs, true
		}
	case "templates.base_url":
		if os.Getenv(EnvTemplateURL) != "" {
			return EnvTemplateURL, true
		}
	case "logging.level":
		if os.Getenv(EnvLogLevel) != "" {
			return EnvLogLevel, true
		}
	case "logging.format":
		if os.Getenv(EnvLogFormat) != "" {
			return EnvLogFormat, true
		}
	case "logging.source":
		if os.Getenv(EnvLogSource) != "" {
			return EnvLogSource, true
		}
	case "logging.file":
		if os.Getenv(EnvLogFile) != "" {
			return EnvLogFile, true
		}
	}
	return "", false
}

// EffectiveTimeout returns the catalog request timeout, falling back to the
// default when the configured value is missing or nonsensical.
func (c CatalogConfig) EffectiveTimeout() time.Duration {
	if c.TimeoutMs <= 0 {
		return time.Duration(Defaults().Catalog.TimeoutMs) * time.Millisecond
	}
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// Keys lists the settable configuration keys in display order.
func Keys() []string {
	return []string{
		"output.dir",
		"catalog.base_url",
		"catalog.timeout_ms",
		"templates.base_url",
		"logging.level",
		"logging.format",
		"logging.source",
		"logging.file",
	}
}

// Value returns the display string for a dotted key.
func Value(cfg AppConfig, key string) (string, bool) {
	switch key {
	case "output.dir":
		return cfg.Output.Dir, true
	case "catalog.base_url":
		return cfg.Catalog.BaseURL, true
	case "catalog.timeout_ms":
		return strconv.Itoa(cfg.Catalog.TimeoutMs), true
	case "templates.base_url":
		return cfg.Templates.BaseURL, true
	case "logging.level":
		return cfg.Logging.Level, true
	case "logging.format":
		return cfg.Logging.Format, true
	case "logging.source":
		return strconv.FormatBool(cfg.Logging.Source), true
	case "logging.file":
		return cfg.Logging.File, true
	}
	return "", false
}

// Set assigns the value addressed by a dotted key, parsing numbers and
// booleans. Unknown keys and unparseable values are errors.
func Set(cfg *AppConfig, key, value string) error {
	v := strings.TrimSpace(value)
	switch key {
	case "output.dir":
		cfg.Output.Dir = v
	case "catalog.base_url":
		cfg.Catalog.BaseURL = v
	case "catalog.timeout_ms":
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("%s wants a non-negative integer, got %q", key, value)
		}
		cfg.Catalog.TimeoutMs = n
	case "templates.base_url":
		cfg.Templates.BaseURL = v
	case "logging.level":
		cfg.Logging.Level = strings.ToLower(v)
	case "logging.format":
		cfg.Logging.Format = strings.ToLower(v)
	case "logging.source":
		switch strings.ToLower(v) {
		case "1", "true", "on", "yes":
			cfg.Logging.Source = true
		case "0", "false", "off", "no":
			cfg.Logging.Source = false
		default:
			return fmt.Errorf("%s wants a boolean, got %q", key, value)
		}
	case "logging.file":
		cfg.Logging.File = v
	default:
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(Keys(), ", "))
	}
	return nil
}

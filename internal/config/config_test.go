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
	"os"
	"testing"
	"time"
)

func TestEnvOverridesCatalogURL(t *testing.T) {
	old := os.Getenv(EnvCatalogURL)
	_ = os.Setenv(EnvCatalogURL, "https://assets.example.test:8443")
	t.Cleanup(func() { _ = os.Setenv(EnvCatalogURL, old) })
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got, want := cfg.Catalog.BaseURL, "https://assets.example.test:8443"; got != want {
		t.Fatalf("Catalog.BaseURL = %q, want %q", got, want)
	}
}

func TestEnvOverridesOutputDir(t *testing.T) {
	old := os.Getenv(EnvOutputDir)
	_ = os.Setenv(EnvOutputDir, "/tmp/thumbs")
	t.Cleanup(func() { _ = os.Setenv(EnvOutputDir, old) })
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got, want := cfg.Output.Dir, "/tmp/thumbs"; got != want {
		t.Fatalf("Output.Dir = %q, want %q", got, want)
	}
}

func TestMergeIncludesCatalog(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Catalog.BaseURL = "https://cdn.example.test"
	src.Catalog.TimeoutMs = 2500
	mergeInto(&dst, &src)
	if dst.Catalog.BaseURL != "https://cdn.example.test" || dst.Catalog.TimeoutMs != 2500 {
		t.Fatalf("catalog fields not merged correctly: %#v", dst.Catalog)
	}
}

func TestMergeIncludesLogging(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Logging.Level = "debug"
	src.Logging.Format = "json"
	src.Logging.Source = true
	src.Logging.File = "C:/tmp/tg.log"
	mergeInto(&dst, &src)
	if dst.Logging.Level != "debug" || dst.Logging.Format != "json" || !dst.Logging.Source || dst.Logging.File != "C:/tmp/tg.log" {
		t.Fatalf("logging fields not merged correctly: %#v", dst.Logging)
	}
}

func TestEnvOverridesLogging(t *testing.T) {
	oldLevel := os.Getenv(EnvLogLevel)
	oldFmt := os.Getenv(EnvLogFormat)
	oldSrc := os.Getenv(EnvLogSource)
	oldFile := os.Getenv(EnvLogFile)
	_ = os.Setenv(EnvLogLevel, "error")
	_ = os.Setenv(EnvLogFormat, "json")
	_ = os.Setenv(EnvLogSource, "1")
	_ = os.Setenv(EnvLogFile, "X:/tg.log")
	t.Cleanup(func() {
		_ = os.Setenv(EnvLogLevel, oldLevel)
		_ = os.Setenv(EnvLogFormat, oldFmt)
		_ = os.Setenv(EnvLogSource, oldSrc)
		_ = os.Setenv(EnvLogFile, oldFile)
	})
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Logging.Level != "error" || cfg.Logging.Format != "json" || !cfg.Logging.Source || cfg.Logging.File != "X:/tg.log" {
		t.Fatalf("env overrides not applied to logging: %#v", cfg.Logging)
	}
}

func TestEffectiveTimeoutFallsBack(t *testing.T) {
	c := CatalogConfig{TimeoutMs: 0}
	if got, want := c.EffectiveTimeout(), 10*time.Second; got != want {
		t.Fatalf("EffectiveTimeout() = %v, want %v", got, want)
	}
	c.TimeoutMs = 1500
	if got, want := c.EffectiveTimeout(), 1500*time.Millisecond; got != want {
		t.Fatalf("EffectiveTimeout() = %v, want %v", got, want)
	}
}

func TestSetParsesTypedValues(t *testing.T) {
	cfg := Defaults()
	if err := Set(&cfg, "output.dir", " /out "); err != nil {
		t.Fatalf("Set(output.dir): %v", err)
	}
	if cfg.Output.Dir != "/out" {
		t.Fatalf("Output.Dir = %q, want trimmed value", cfg.Output.Dir)
	}
	if err := Set(&cfg, "catalog.timeout_ms", "2500"); err != nil {
		t.Fatalf("Set(catalog.timeout_ms): %v", err)
	}
	if cfg.Catalog.TimeoutMs != 2500 {
		t.Fatalf("Catalog.TimeoutMs = %d, want 2500", cfg.Catalog.TimeoutMs)
	}
	if err := Set(&cfg, "logging.source", "yes"); err != nil {
		t.Fatalf("Set(logging.source): %v", err)
	}
	if !cfg.Logging.Source {
		t.Fatalf("Logging.Source not set from %q", "yes")
	}
	if err := Set(&cfg, "logging.level", "DEBUG"); err != nil {
		t.Fatalf("Set(logging.level): %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("Logging.Level = %q, want lowercased", cfg.Logging.Level)
	}
}

func TestSetRejectsBadInput(t *testing.T) {
	cfg := Defaults()
	if err := Set(&cfg, "catalog.timeout_ms", "soon"); err == nil {
		t.Fatalf("non-numeric timeout accepted")
	}
	if err := Set(&cfg, "logging.source", "maybe"); err == nil {
		t.Fatalf("non-boolean source accepted")
	}
	if err := Set(&cfg, "no.such.key", "x"); err == nil {
		t.Fatalf("unknown key accepted")
	}
}

func TestKeysAndValueCoverEachOther(t *testing.T) {
	cfg := Defaults()
	for _, key := range Keys() {
		cur, ok := Value(cfg, key)
		if !ok {
			t.Fatalf("Value does not know key %q", key)
		}
		// A value the tool displays must round-trip through Set.
		if err := Set(&cfg, key, cur); err != nil {
			t.Fatalf("Set(%q, %q): %v", key, cur, err)
		}
	}
	if _, ok := Value(cfg, "no.such.key"); ok {
		t.Fatalf("Value accepted unknown key")
	}
}

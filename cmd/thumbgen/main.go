/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jongalloway/thumbnail-generator/internal/catalog"
	"github.com/jongalloway/thumbnail-generator/internal/config"
	"github.com/jongalloway/thumbnail-generator/internal/crash"
	"github.com/jongalloway/thumbnail-generator/internal/domain"
	"github.com/jongalloway/thumbnail-generator/internal/export"
	"github.com/jongalloway/thumbnail-generator/internal/fetch"
	"github.com/jongalloway/thumbnail-generator/internal/fields"
	"github.com/jongalloway/thumbnail-generator/internal/form"
	"github.com/jongalloway/thumbnail-generator/internal/layout"
	"github.com/jongalloway/thumbnail-generator/internal/log"
	"github.com/jongalloway/thumbnail-generator/internal/notify"
	"github.com/jongalloway/thumbnail-generator/internal/settings"
	"github.com/jongalloway/thumbnail-generator/internal/template"
	"github.com/jongalloway/thumbnail-generator/internal/textlayout"
	"github.com/jongalloway/thumbnail-generator/internal/version"
)

const usageText = `thumbgen composes parameterized video thumbnails and exports them.

Usage:

  thumbgen <command> [flags]

Commands:

  render       compose a vector document and print or save it
  export       compose and export to one or more formats
  prompt       fill the fields interactively, then export
  fields       list the fields of a template
  backgrounds  list the background catalog
  logos        list the logo catalog
  config       show or edit the configuration
  version      print the version

Run "thumbgen <command> -h" for command flags.
`

// Title values wider than this are shortened before substitution. The fixed
// templates reserve the right third for guest portraits.
const titleTokenWidth = 1080.0

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "thumbgen: %v\n", err)
		os.Exit(1)
	}
	log.Init(log.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})
	defer crash.Recover()

	a := &app{cfg: cfg, registry: fields.Builtin()}

	var runErr error
	switch cmd := args[0]; cmd {
	case "render":
		runErr = a.runRender(args[1:])
	case "export":
		runErr = a.runExport(args[1:])
	case "prompt":
		runErr = a.runPrompt(args[1:])
	case "fields":
		runErr = a.runFields(args[1:])
	case "backgrounds":
		runErr = a.runBackgrounds(args[1:])
	case "logos":
		runErr = a.runLogos(args[1:])
	case "config":
		runErr = a.runConfig(args[1:])
	case "version", "--version", "-v":
		fmt.Println(version.String())
	case "help", "-h", "--help":
		fmt.Print(usageText)
	default:
		fmt.Fprintf(os.Stderr, "thumbgen: unknown command %q\n\n%s", cmd, usageText)
		os.Exit(2)
	}
	if runErr != nil {
		if errors.Is(runErr, form.ErrAborted) {
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "thumbgen: %v\n", runErr)
		os.Exit(1)
	}
}

// app bundles the pieces every command needs.
type app struct {
	cfg      config.AppConfig
	registry *fields.Registry
	store    settings.Store
}

// composeFlags are the flags shared by render, export and prompt.
type composeFlags struct {
	template   string
	background string
	resolution string
	sets       repeatedFlag
}

func bindComposeFlags(fs *flag.FlagSet) *composeFlags {
	var o composeFlags
	fs.StringVar(&o.template, "template", "", "template name (settings default when empty)")
	fs.StringVar(&o.background, "background", "", "background: catalog id, URI or local image path")
	fs.StringVar(&o.resolution, "resolution", "", "output size as WIDTHxHEIGHT")
	fs.Var(&o.sets, "set", "field value as id=value (repeatable)")
	return &o
}

// composition is one rendered document together with the inputs that shaped
// it, kept for export and for remembering the selection.
type composition struct {
	doc          string
	res          domain.Resolution
	template     string
	backgroundID string // catalog id, empty for uploads and direct URIs
}

func (a *app) runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	o := bindComposeFlags(fs)
	out := fs.String("out", "", "write the document to this file instead of stdout")
	fs.Parse(args)
	comp, err := a.compose(context.Background(), *o)
	if err != nil {
		return err
	}
	if *out == "" {
		_, err := os.Stdout.WriteString(comp.doc)
		return err
	}
	if err := os.WriteFile(*out, []byte(comp.doc), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}
	return nil
}

func (a *app) runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	o := bindComposeFlags(fs)
	formats := fs.String("format", "", "comma-separated formats (svg, png, jpeg, webp, pdf, bundle) or presets (web, social, print, archive)")
	outDir := fs.String("out", "", "output directory (config default when empty)")
	quality := fs.Int("quality", export.DefaultQuality, "jpeg and webp quality, 1..100")
	fs.Parse(args)
	ctx := context.Background()
	comp, err := a.compose(ctx, *o)
	if err != nil {
		return err
	}
	return a.exportDocument(ctx, comp, *formats, *outDir, *quality)
}

func (a *app) runPrompt(args []string) error {
	fs := flag.NewFlagSet("prompt", flag.ExitOnError)
	templateFlag := fs.String("template", "", "template name (prompted when empty)")
	formats := fs.String("format", "", "comma-separated export formats or presets")
	outDir := fs.String("out", "", "output directory (config default when empty)")
	fs.Parse(args)
	ctx := context.Background()
	driver := form.Survey()
	st := a.store.Load()

	name := *templateFlag
	if name == "" {
		names := a.registry.Names()
		idx, err := driver.Select(ctx, form.SelectConfig{
			Message:      "Template",
			Options:      names,
			DefaultIndex: indexOfString(names, st.Template),
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(names) {
			return fmt.Errorf("template selection out of range")
		}
		name = names[idx]
	}
	schema, ok := a.registry.Schema(name)
	if !ok {
		return fmt.Errorf("unknown template %q (available: %s)", name, strings.Join(a.registry.Names(), ", "))
	}
	bgs, logos, err := a.loadCatalog(ctx)
	if err != nil {
		return err
	}

	defaults := a.registry.Defaults(name)
	if id := st.BackgroundFor(name); id != "" {
		if b, ok := catalog.FindBackground(bgs, id); ok {
			if fid := backgroundFieldID(schema); fid != "" {
				asset := b.Asset()
				defaults[fid] = fields.Value{Image: &asset}
			}
		}
	}

	vals, err := form.Fill(ctx, driver, schema, defaults, form.Choices{Backgrounds: bgs, Logos: logos})
	if err != nil {
		return err
	}
	res := domain.ParseResolution(st.Resolution)
	comp := a.renderDocument(ctx, name, schema, vals, res, bgs)

	doExport, err := driver.Confirm(ctx, form.ConfirmConfig{Message: "Export now?", Default: true})
	if err != nil {
		return err
	}
	if !doExport {
		_, err := os.Stdout.WriteString(comp.doc)
		return err
	}
	return a.exportDocument(ctx, comp, *formats, *outDir, export.DefaultQuality)
}

func (a *app) runFields(args []string) error {
	fs := flag.NewFlagSet("fields", flag.ExitOnError)
	name := fs.String("template", fields.LayoutStandard, "template name")
	asJSON := fs.Bool("json", false, "emit the schema as JSON")
	fs.Parse(args)
	schema, ok := a.registry.Schema(*name)
	if !ok {
		return fmt.Errorf("unknown template %q (available: %s)", *name, strings.Join(a.registry.Names(), ", "))
	}
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(schema)
	}
	for _, def := range schema.Fields {
		line := fmt.Sprintf("%-16s %-12s %s", def.ID, def.Type, def.Label)
		if def.VisibleWhen != nil {
			line += fmt.Sprintf(" (when %s=%s)", def.VisibleWhen.Field, def.VisibleWhen.Equals)
		}
		fmt.Println(line)
	}
	return nil
}

func (a *app) runBackgrounds(args []string) error {
	fs := flag.NewFlagSet("backgrounds", flag.ExitOnError)
	fs.Parse(args)
	bgs, _, err := a.loadCatalog(context.Background())
	if err != nil {
		return err
	}
	for _, b := range bgs {
		fmt.Printf("%-18s %-6s %s\n", b.ID, b.Variant, b.Name)
	}
	return nil
}

func (a *app) runLogos(args []string) error {
	fs := flag.NewFlagSet("logos", flag.ExitOnError)
	fs.Parse(args)
	_, logos, err := a.loadCatalog(context.Background())
	if err != nil {
		return err
	}
	for _, l := range logos {
		fmt.Printf("%-18s %s\n", l.ID, l.Name)
	}
	return nil
}

// runConfig shows the effective configuration, edits the config file, or
// prints its location. Values coming from the environment are annotated on
// show, and set always edits the file view so env overrides are not
// persisted by accident.
func (a *app) runConfig(args []string) error {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	fs.Parse(args)
	rest := fs.Args()
	if len(rest) == 0 {
		rest = []string{"show"}
	}
	switch rest[0] {
	case "show":
		for _, key := range config.Keys() {
			val, _ := config.Value(a.cfg, key)
			line := fmt.Sprintf("%-20s %s", key, val)
			if env, ok := config.EnvOverrideFor(key); ok {
				line += fmt.Sprintf("  (from %s)", env)
			}
			fmt.Println(strings.TrimRight(line, " "))
		}
		return nil
	case "path":
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	case "set":
		if len(rest) != 3 {
			return fmt.Errorf("usage: thumbgen config set <key> <value>")
		}
		cfg, err := config.LoadFile()
		if err != nil {
			return err
		}
		if err := config.Set(&cfg, rest[1], rest[2]); err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		if env, ok := config.EnvOverrideFor(rest[1]); ok {
			fmt.Fprintf(os.Stderr, "note: %s stays overridden by %s in this environment\n", rest[1], env)
		}
		return nil
	}
	return fmt.Errorf("unknown config action %q (show, set, path)", rest[0])
}

// compose resolves the template, fills values from settings, flags and -set
// pairs, and renders the vector document.
func (a *app) compose(ctx context.Context, o composeFlags) (composition, error) {
	st := a.store.Load()
	name := o.template
	if name == "" {
		name = st.Template
	}
	if name == "" {
		name = fields.LayoutStandard
	}
	schema, ok := a.registry.Schema(name)
	if !ok {
		return composition{}, fmt.Errorf("unknown template %q (available: %s)", name, strings.Join(a.registry.Names(), ", "))
	}
	bgs, logos, err := a.loadCatalog(ctx)
	if err != nil {
		return composition{}, err
	}

	vals := a.registry.Defaults(name)
	background := o.background
	if background == "" {
		background = st.BackgroundFor(name)
	}
	if background != "" {
		asset, err := resolveImage(background, bgs)
		switch {
		case err != nil && o.background != "":
			return composition{}, fmt.Errorf("background: %w", err)
		case err != nil:
			log.WithComponent("cli").Warn("remembered background unavailable", "id", background, "err", err)
		default:
			if fid := backgroundFieldID(schema); fid != "" {
				vals[fid] = fields.Value{Image: &asset}
			}
		}
	}
	for _, pair := range o.sets {
		if err := applySet(vals, schema, pair, bgs, logos); err != nil {
			return composition{}, err
		}
	}

	resText := o.resolution
	if resText == "" {
		resText = st.Resolution
	}
	res := domain.ParseResolution(resText)
	return a.renderDocument(ctx, name, schema, vals, res, bgs), nil
}

func (a *app) renderDocument(ctx context.Context, name string, schema fields.Schema, vals fields.Values, res domain.Resolution, bgs []catalog.Background) composition {
	comp := composition{res: res, template: name}
	if fid := backgroundFieldID(schema); fid != "" {
		if img := vals.Image(fid); img != nil {
			if _, ok := catalog.FindBackground(bgs, img.ID); ok {
				comp.backgroundID = img.ID
			}
		}
	}
	if name == fields.LayoutStandard {
		comp.doc = layout.NewEngine().Render(buildRequest(vals, res, bgs))
		return comp
	}
	proc := template.NewProcessor(a.templateStore(), template.WithLimit("TITLE", template.Limit{
		MaxWidth: titleTokenWidth,
		Font:     textlayout.Font{Size: 96, Weight: textlayout.WeightBold},
	}))
	comp.doc = proc.Render(ctx, name, tokenValues(schema, vals, bgs, time.Now()))
	return comp
}

// exportDocument runs every requested format, printing each written path.
// A failed format does not stop the remaining ones.
func (a *app) exportDocument(ctx context.Context, comp composition, formatsCSV, outDir string, quality int) error {
	st := a.store.Load()
	names := formatsCSV
	if names == "" {
		names = st.Format
	}
	if names == "" {
		names = "png"
	}
	fmts, err := parseFormats(names)
	if err != nil {
		return err
	}
	dir := outDir
	if dir == "" {
		dir = a.cfg.Output.Dir
	}
	exp := export.NewExporter(dir)
	exp.Quality = quality
	exp.Notifier = consoleNotifier()

	var errs []error
	for _, f := range fmts {
		path, err := exp.Export(ctx, comp.doc, comp.res, f)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		fmt.Println(path)
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	a.remember(comp, names)
	return nil
}

// remember persists the successful selection as the next run's defaults.
func (a *app) remember(comp composition, formats string) {
	st := a.store.Load()
	st.Template = comp.template
	st.Resolution = comp.res.String()
	if formats != "" {
		st.Format = formats
	}
	if comp.backgroundID != "" {
		st.SetBackground(comp.template, comp.backgroundID)
	}
	if err := a.store.Save(st); err != nil {
		log.WithComponent("cli").Warn("settings not saved", "err", err)
	}
}

// loadCatalog resolves the configured catalog source, falling back to the
// built-in entries when a remote catalog is unreachable.
func (a *app) loadCatalog(ctx context.Context) ([]catalog.Background, []catalog.Logo, error) {
	src := a.catalogSource()
	bgs, err := src.Backgrounds(ctx)
	if err == nil {
		var logos []catalog.Logo
		if logos, err = src.Logos(ctx); err == nil {
			return bgs, logos, nil
		}
	}
	if _, remote := src.(*catalog.RemoteSource); !remote {
		return nil, nil, err
	}
	log.WithComponent("cli").Warn("remote catalog unavailable, using built-in entries", "err", err)
	emb := catalog.Embedded()
	bgs, err = emb.Backgrounds(ctx)
	if err != nil {
		return nil, nil, err
	}
	logos, err := emb.Logos(ctx)
	if err != nil {
		return nil, nil, err
	}
	return bgs, logos, nil
}

func (a *app) catalogSource() catalog.Source {
	if base := a.cfg.Catalog.BaseURL; base != "" {
		client := &fetch.Client{HTTP: &http.Client{}, Timeout: a.cfg.Catalog.EffectiveTimeout()}
		return catalog.Remote(base, client)
	}
	return catalog.Embedded()
}

func (a *app) templateStore() *template.Store {
	if base := a.cfg.Templates.BaseURL; base != "" {
		return template.NewStore(template.HTTPLoader{BaseURL: base, Client: fetch.New()})
	}
	return template.NewStore(template.Builtin())
}

// consoleNotifier surfaces outcome messages on stderr, keeping stdout clean
// for documents and written paths.
func consoleNotifier() notify.Notifier {
	return notify.Func(func(msg string, sev notify.Severity) {
		fmt.Fprintf(os.Stderr, "%s: %s\n", sev, msg)
	})
}

// Copyright 2020-2023 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package generate drives the code generator core (§4.5): per-definition
// type declaration emission, plus dispatch to a fixed set of codec
// Emitters that inject each definition's UPER and/or PBF method bodies.
package generate

import (
	"fmt"
	"go/format"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/kralicky/asn1gen/internal/names"
	"github.com/kralicky/asn1gen/model"
)

// Options configures a Generate call. It can be loaded from a YAML file
// with LoadOptions, the way vippsas-sqlcode's CLI layer loads its own
// option structs.
type Options struct {
	// PackageName overrides the generated package name. Empty uses the
	// module's normalized name.
	PackageName string `yaml:"package_name,omitempty"`
	// EmitUPER controls whether asn1gen.Compiler registers the UPER
	// Emitter. Unset means true. Generate itself does not read it.
	EmitUPER *bool `yaml:"emit_uper,omitempty"`
	// EmitPBF controls whether asn1gen.Compiler registers the PBF
	// Emitter. Unset means true. Generate itself does not read it.
	EmitPBF *bool `yaml:"emit_pbf,omitempty"`

	logger *logrus.Logger
}

// WithLogger routes the generator's per-file emission trace to log
// instead of the default no-op sink.
func (o Options) WithLogger(log *logrus.Logger) Options {
	o.logger = log
	return o
}

// LoadOptions reads Options from a YAML file at path. Fields absent from
// the file keep Options' zero values, so a config needs to set only what
// it wants to override.
func LoadOptions(path string) (Options, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("reading options file: %w", err)
	}
	var opts Options
	if err := yaml.Unmarshal(raw, &opts); err != nil {
		return Options{}, fmt.Errorf("parsing options file %s: %w", path, err)
	}
	return opts, nil
}

// BoolOr returns *p, or def if p is nil. Options' feature-toggle fields
// are *bool so "unset" and "explicitly false" are distinguishable; this
// is where that distinction collapses back to a plain bool.
func BoolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// File is one generated output: a file name plus its Go source.
type File struct {
	Name     string
	Contents string
}

// Generate implements the generator contract of §4.5/§6: one output File
// per module, containing every definition's type declaration plus the
// codec bodies the configured Emitters inject. Output is deterministic
// for fixed input: definitions are emitted in schema order, and the Go
// import block is sorted lexically.
func Generate(mods []*model.Module, opts Options, emitters ...Emitter) ([]File, error) {
	log := opts.logger
	if log == nil {
		log = logrus.New()
		log.SetOutput(discardWriter{})
	}

	files := make([]File, 0, len(mods))
	for _, mod := range mods {
		log.WithField("module", mod.Name).Debug("generating module")
		src, err := generateModule(mod, opts, emitters)
		if err != nil {
			return nil, fmt.Errorf("module %s: %w", mod.Name, err)
		}
		files = append(files, File{
			Name:     names.Module(mod.Name) + ".go",
			Contents: src,
		})
	}
	return files, nil
}

func generateModule(mod *model.Module, opts Options, emitters []Emitter) (string, error) {
	pkgName := opts.PackageName
	if pkgName == "" {
		pkgName = names.Module(mod.Name)
	}

	imports := NewImportSet()
	for _, def := range mod.Definitions {
		for _, em := range emitters {
			em.AddImports(imports, def)
		}
	}

	w := NewCodeWriter()
	w.Printf("// Code generated from schema module %q. DO NOT EDIT.", mod.Name)
	w.Blank()
	w.Printf("package %s", pkgName)
	w.Blank()
	imports.Render(w)

	for _, def := range mod.Definitions {
		emitType(w, def)
		for _, em := range emitters {
			if err := em.EmitCodecForDefinition(w, def); err != nil {
				return "", fmt.Errorf("definition %s: %w", def.DefinitionName(), err)
			}
		}
	}

	formatted, err := format.Source([]byte(w.String()))
	if err != nil {
		// A malformed emission is a generator bug, not a user-facing
		// error; surface the raw source so it can be diagnosed.
		return w.String(), fmt.Errorf("formatting generated source: %w", err)
	}
	return string(formatted), nil
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

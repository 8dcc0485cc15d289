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

// Package asn1gen is the top-level driver (§2, §5, §6): a pure,
// synchronous function from schema module source text to generated Go
// files, wiring the lexer, parser, and code generator core together.
package asn1gen

import (
	"fmt"

	"github.com/kralicky/asn1gen/generate"
	"github.com/kralicky/asn1gen/generate/empbf"
	"github.com/kralicky/asn1gen/generate/emituper"
	"github.com/kralicky/asn1gen/internal/names"
	"github.com/kralicky/asn1gen/lexer"
	"github.com/kralicky/asn1gen/model"
	"github.com/kralicky/asn1gen/parser"
	"github.com/kralicky/asn1gen/reporter"
)

// Compiler turns schema module sources into generated Go files. Per §5,
// it holds no mutable state across calls: Compile is a pure function of
// its arguments, and a Compiler may be reused or shared freely.
type Compiler struct {
	// Reporter receives informational diagnostics raised while lexing
	// (currently: dropped control bytes). A nil Reporter discards them.
	Reporter *reporter.Handler
	// Options configures the code generator core. The zero value emits
	// both codecs under each module's normalized name.
	Options generate.Options
}

// Compile parses each element of srcs as one schema module's source text
// and generates one output file per module, in input order. The first
// parse or validation failure aborts the run; no partial results are
// returned.
func (c *Compiler) Compile(srcs [][]byte) ([]generate.File, error) {
	mods := make([]*model.Module, 0, len(srcs))
	for i, src := range srcs {
		toks := lexer.Tokenize(src, lexer.WithHandler(c.Reporter))
		mod, err := parser.Parse(toks)
		if err != nil {
			return nil, fmt.Errorf("module %d: %w", i, err)
		}
		if err := mod.Validate(names.Field); err != nil {
			return nil, fmt.Errorf("module %d: %w", i, err)
		}
		mods = append(mods, mod)
	}

	return generate.Generate(mods, c.Options, c.emitters()...)
}

func (c *Compiler) emitters() []generate.Emitter {
	emitters := make([]generate.Emitter, 0, 2)
	if generate.BoolOr(c.Options.EmitUPER, true) {
		emitters = append(emitters, emituper.New())
	}
	if generate.BoolOr(c.Options.EmitPBF, true) {
		emitters = append(emitters, empbf.New())
	}
	return emitters
}

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

package generate

import (
	"sort"
	"strings"

	"github.com/kralicky/asn1gen/model"
)

// ImportSet accumulates the distinct import paths a module's generated
// file needs, keyed by path so repeated registrations collapse.
type ImportSet struct {
	paths map[string]struct{}
}

// NewImportSet returns an empty set.
func NewImportSet() *ImportSet { return &ImportSet{paths: map[string]struct{}{}} }

// Add registers an import path.
func (s *ImportSet) Add(path string) { s.paths[path] = struct{}{} }

// Sorted returns the registered import paths in lexical order, for
// deterministic output (§5).
func (s *ImportSet) Sorted() []string {
	out := make([]string, 0, len(s.paths))
	for p := range s.paths {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Render writes a parenthesized import block, or nothing if the set is
// empty.
func (s *ImportSet) Render(w *CodeWriter) {
	paths := s.Sorted()
	if len(paths) == 0 {
		return
	}
	w.Line("import (")
	w.Indent()
	for _, p := range paths {
		w.Printf("%q", p)
	}
	w.Dedent()
	w.Line(")")
	w.Blank()
}

// Emitter is the capability §4.5/§9 describe: a codec knows how to
// declare its own imports and inject read/write (and, for PBF,
// format/equality) method bodies for one definition at a time. Emitters
// are independent and must not share state — the generator core never
// passes one Emitter's output to another.
type Emitter interface {
	// AddImports registers any import paths def's generated codec bodies
	// will reference.
	AddImports(set *ImportSet, def model.Definition)
	// EmitCodecForDefinition writes this codec's method bodies for def
	// into w.
	EmitCodecForDefinition(w *CodeWriter, def model.Definition) error
}

// goTypeName returns the exported Go identifier used for a module-level
// definition name.
func goTypeName(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

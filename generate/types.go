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
	"fmt"

	"github.com/kralicky/asn1gen/internal/names"
	"github.com/kralicky/asn1gen/model"
)

// emitType writes the core type declaration and accessors for def (§4.5).
// Codec bodies are injected separately, by the registered Emitters.
func emitType(w *CodeWriter, def model.Definition) {
	switch d := def.(type) {
	case *model.SequenceOf:
		emitSequenceOf(w, d)
	case *model.Sequence:
		emitSequence(w, d)
	case *model.Enumerated:
		emitEnumerated(w, d)
	}
}

func emitSequenceOf(w *CodeWriter, d *model.SequenceOf) {
	typeName := goTypeName(names.Field(d.Name))
	elemType := GoType(d.Element)

	w.Printf("// %s is a SEQUENCE OF %s.", typeName, elemType)
	w.Block(fmt.Sprintf("type %s struct {", typeName), func() {
		w.Printf("values []%s", elemType)
	})
	w.Blank()

	w.Block(fmt.Sprintf("func (m *%s) Values() []%s {", typeName, elemType), func() {
		w.Line("return m.values")
	})
	w.Blank()
	w.Block(fmt.Sprintf("func (m *%s) ValuesMut() *[]%s {", typeName, elemType), func() {
		w.Line("return &m.values")
	})
	w.Blank()
	w.Block(fmt.Sprintf("func (m *%s) SetValues(v []%s) {", typeName, elemType), func() {
		w.Line("m.values = v")
	})
	w.Blank()

	if ci, ok := isIntegerConstrained(d.Element); ok {
		w.Block(fmt.Sprintf("func (m *%s) ValueMin() int64 {", typeName), func() {
			w.Printf("return %d", ci.Min)
		})
		w.Blank()
		w.Block(fmt.Sprintf("func (m *%s) ValueMax() int64 {", typeName), func() {
			w.Printf("return %d", ci.Max)
		})
		w.Blank()
	}
}

func emitSequence(w *CodeWriter, d *model.Sequence) {
	typeName := goTypeName(names.Field(d.Name))

	w.Block(fmt.Sprintf("type %s struct {", typeName), func() {
		for _, f := range d.Fields {
			goField := goTypeName(names.Field(f.Name))
			goType := GoType(f.Role)
			if f.Optional {
				goType = "*" + goType
			}
			w.Printf("%s %s", goField, goType)
		}
	})
	w.Blank()

	for _, f := range d.Fields {
		goField := goTypeName(names.Field(f.Name))
		goType := GoType(f.Role)
		fieldType := goType
		if f.Optional {
			fieldType = "*" + goType
		}

		w.Block(fmt.Sprintf("func (m *%s) Get%s() %s {", typeName, goField, fieldType), func() {
			w.Printf("return m.%s", goField)
		})
		w.Blank()
		w.Block(fmt.Sprintf("func (m *%s) %sMut() *%s {", typeName, goField, fieldType), func() {
			w.Printf("return &m.%s", goField)
		})
		w.Blank()
		w.Block(fmt.Sprintf("func (m *%s) Set%s(v %s) {", typeName, goField, fieldType), func() {
			w.Printf("m.%s = v", goField)
		})
		w.Blank()

		if ci, ok := isIntegerConstrained(f.Role); ok {
			w.Block(fmt.Sprintf("func (m *%s) %sMin() int64 {", typeName, goField), func() {
				w.Printf("return %d", ci.Min)
			})
			w.Blank()
			w.Block(fmt.Sprintf("func (m *%s) %sMax() int64 {", typeName, goField), func() {
				w.Printf("return %d", ci.Max)
			})
			w.Blank()
		}
	}
}

func emitEnumerated(w *CodeWriter, d *model.Enumerated) {
	typeName := goTypeName(names.Field(d.Name))

	w.Printf("type %s int", typeName)
	w.Blank()

	w.Line("const (")
	w.Indent()
	for i, v := range d.Variants {
		variantName := typeName + names.Variant(v)
		if i == 0 {
			w.Printf("%s %s = iota", variantName, typeName)
		} else {
			w.Printf("%s", variantName)
		}
	}
	w.Dedent()
	w.Line(")")
	w.Blank()

	firstVariant := typeName + names.Variant(d.Variants[0])
	w.Block(fmt.Sprintf("func New%s() %s {", typeName, typeName), func() {
		w.Printf("return %s", firstVariant)
	})
	w.Blank()

	w.Block(fmt.Sprintf("func %sVariants() []%s {", typeName, typeName), func() {
		w.Line("return []" + typeName + "{")
		w.Indent()
		for _, v := range d.Variants {
			w.Printf("%s,", typeName+names.Variant(v))
		}
		w.Dedent()
		w.Line("}")
	})
	w.Blank()

	w.Block(fmt.Sprintf("func (m %s) String() string {", typeName), func() {
		w.Line("switch m {")
		for _, v := range d.Variants {
			w.Printf("case %s:", typeName+names.Variant(v))
			w.Indent()
			w.Printf("return %q", v)
			w.Dedent()
		}
		w.Line("default:")
		w.Indent()
		w.Line(`return "unknown"`)
		w.Dedent()
		w.Line("}")
	})
	w.Blank()
}

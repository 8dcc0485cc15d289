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

// Package emituper is the UPER Emitter (§4.6): it injects the paired
// ReadUPER/WriteUPER method bodies whose composition is the identity on
// valid inputs, for every definition kind.
package emituper

import (
	"fmt"
	"strings"

	"github.com/kralicky/asn1gen/generate"
	"github.com/kralicky/asn1gen/internal/names"
	"github.com/kralicky/asn1gen/model"
)

// Emitter is the UPER codec Emitter.
type Emitter struct{}

// New returns a UPER Emitter. It carries no state, per the
// Emitters-must-not-share-state requirement in §4.5/§9.
func New() *Emitter { return &Emitter{} }

var _ generate.Emitter = (*Emitter)(nil)

// AddImports registers the bitio import every UPER method body needs.
func (*Emitter) AddImports(set *generate.ImportSet, _ model.Definition) {
	set.Add("github.com/kralicky/asn1gen/bitio")
}

// EmitCodecForDefinition injects this definition's ReadUPER/WriteUPER
// method pair.
func (e *Emitter) EmitCodecForDefinition(w *generate.CodeWriter, def model.Definition) error {
	switch d := def.(type) {
	case *model.SequenceOf:
		e.emitSequenceOf(w, d)
	case *model.Sequence:
		e.emitSequence(w, d)
	case *model.Enumerated:
		e.emitEnumerated(w, d)
	default:
		return fmt.Errorf("emituper: unsupported definition kind %T", def)
	}
	return nil
}

func typeName(n string) string {
	s := names.Field(n)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// writeValue emits the statement that writes the Go value held by expr,
// of role r, through writer variable w, returning on error.
func writeValue(w *generate.CodeWriter, expr string, r model.Role) {
	switch rr := r.(type) {
	case model.Boolean:
		w.Printf("if err := w.WriteBit(bool(%s)); err != nil {", expr)
		w.Indent()
		w.Line("return err")
		w.Dedent()
		w.Line("}")
	case model.Integer:
		w.Printf("if err := w.WriteInt(int64(%s), %d, %d); err != nil {", expr, rr.Min, rr.Max)
		w.Indent()
		w.Line("return err")
		w.Dedent()
		w.Line("}")
	case model.UnsignedMaxInteger:
		w.Printf("if err := w.WriteIntMax(uint64(%s)); err != nil {", expr)
		w.Indent()
		w.Line("return err")
		w.Dedent()
		w.Line("}")
	case model.UTF8String:
		w.Printf("if err := w.WriteUTF8String(string(%s)); err != nil {", expr)
		w.Indent()
		w.Line("return err")
		w.Dedent()
		w.Line("}")
	case model.Custom:
		w.Printf("if err := %s.WriteUPER(w); err != nil {", expr)
		w.Indent()
		w.Line("return err")
		w.Dedent()
		w.Line("}")
	}
}

// readInto emits the statement that reads a value of role r through
// reader variable r, assigning it to the lvalue dest. For Custom roles,
// dest must already be zero-valued and addressable.
func readInto(w *generate.CodeWriter, dest string, role model.Role) {
	switch rr := role.(type) {
	case model.Boolean:
		w.Line("{")
		w.Indent()
		w.Line("v, err := r.ReadBit()")
		w.Line("if err != nil {")
		w.Indent()
		w.Line("return err")
		w.Dedent()
		w.Line("}")
		w.Printf("%s = v", dest)
		w.Dedent()
		w.Line("}")
	case model.Integer:
		w.Line("{")
		w.Indent()
		w.Printf("v, err := r.ReadInt(%d, %d)", rr.Min, rr.Max)
		w.Line("if err != nil {")
		w.Indent()
		w.Line("return err")
		w.Dedent()
		w.Line("}")
		w.Printf("%s = %s(v)", dest, generate.GoType(role))
		w.Dedent()
		w.Line("}")
	case model.UnsignedMaxInteger:
		w.Line("{")
		w.Indent()
		w.Line("v, err := r.ReadIntMax()")
		w.Line("if err != nil {")
		w.Indent()
		w.Line("return err")
		w.Dedent()
		w.Line("}")
		w.Printf("%s = v", dest)
		w.Dedent()
		w.Line("}")
	case model.UTF8String:
		w.Line("{")
		w.Indent()
		w.Line("v, err := r.ReadUTF8String()")
		w.Line("if err != nil {")
		w.Indent()
		w.Line("return err")
		w.Dedent()
		w.Line("}")
		w.Printf("%s = v", dest)
		w.Dedent()
		w.Line("}")
	case model.Custom:
		w.Printf("if err := %s.ReadUPER(r); err != nil {", dest)
		w.Indent()
		w.Line("return err")
		w.Dedent()
		w.Line("}")
	}
}

func (e *Emitter) emitSequence(w *generate.CodeWriter, d *model.Sequence) {
	tn := typeName(d.Name)

	optCount := 0
	for _, f := range d.Fields {
		if f.Optional {
			optCount++
		}
	}

	w.Block(fmt.Sprintf("func (m *%s) WriteUPER(w *bitio.Writer) error {", tn), func() {
		// Preamble bitmap: one bit per optional field, in declaration order.
		for _, f := range d.Fields {
			if !f.Optional {
				continue
			}
			gf := typeName(f.Name)
			w.Printf("if err := w.WriteBit(m.%s != nil); err != nil {", gf)
			w.Indent()
			w.Line("return err")
			w.Dedent()
			w.Line("}")
		}
		for _, f := range d.Fields {
			gf := typeName(f.Name)
			_, custom := isCustomRole(f.Role)
			if !f.Optional {
				writeValue(w, "m."+gf, f.Role)
				continue
			}
			w.Printf("if m.%s != nil {", gf)
			w.Indent()
			if custom {
				writeValue(w, "m."+gf, f.Role)
			} else {
				writeValue(w, "*m."+gf, f.Role)
			}
			w.Dedent()
			w.Line("}")
		}
		w.Line("return nil")
	})
	w.Blank()

	w.Block(fmt.Sprintf("func (m *%s) ReadUPER(r *bitio.Reader) error {", tn), func() {
		if optCount > 0 {
			w.Printf("var present [%d]bool", optCount)
			w.Line("for i := range present {")
			w.Indent()
			w.Line("v, err := r.ReadBit()")
			w.Line("if err != nil {")
			w.Indent()
			w.Line("return err")
			w.Dedent()
			w.Line("}")
			w.Line("present[i] = v")
			w.Dedent()
			w.Line("}")
		}
		optIdx := 0
		for _, f := range d.Fields {
			gf := typeName(f.Name)
			goType := generate.GoType(f.Role)
			if !f.Optional {
				readInto(w, "m."+gf, f.Role)
				continue
			}
			w.Printf("if present[%d] {", optIdx)
			w.Indent()
			w.Printf("m.%s = new(%s)", gf, goType)
			if _, custom := isCustomRole(f.Role); custom {
				readInto(w, "m."+gf, f.Role)
			} else {
				readInto(w, "*m."+gf, f.Role)
			}
			w.Dedent()
			w.Line("}")
			optIdx++
		}
		w.Line("return nil")
	})
	w.Blank()
}

func (e *Emitter) emitSequenceOf(w *generate.CodeWriter, d *model.SequenceOf) {
	tn := typeName(d.Name)
	elemType := generate.GoType(d.Element)

	w.Block(fmt.Sprintf("func (m *%s) WriteUPER(w *bitio.Writer) error {", tn), func() {
		w.Line("return w.WriteElements(len(m.values), func(i int) error {")
		w.Indent()
		writeValue(w, "m.values[i]", d.Element)
		w.Line("return nil")
		w.Dedent()
		w.Line("})")
	})
	w.Blank()

	w.Block(fmt.Sprintf("func (m *%s) ReadUPER(r *bitio.Reader) error {", tn), func() {
		w.Printf("var values []%s", elemType)
		w.Line("_, err := r.ReadElements(func() error {")
		w.Indent()
		w.Printf("var elem %s", elemType)
		readInto(w, "elem", d.Element)
		w.Line("values = append(values, elem)")
		w.Line("return nil")
		w.Dedent()
		w.Line("})")
		w.Line("if err != nil {")
		w.Indent()
		w.Line("return err")
		w.Dedent()
		w.Line("}")
		w.Line("m.values = values")
		w.Line("return nil")
	})
	w.Blank()
}

func (e *Emitter) emitEnumerated(w *generate.CodeWriter, d *model.Enumerated) {
	tn := typeName(d.Name)
	n := len(d.Variants)

	w.Block(fmt.Sprintf("func (m %s) WriteUPER(w *bitio.Writer) error {", tn), func() {
		w.Printf("return w.WriteInt(int64(m), 0, %d)", n-1)
	})
	w.Blank()

	w.Block(fmt.Sprintf("func (m *%s) ReadUPER(r *bitio.Reader) error {", tn), func() {
		w.Printf("v, err := r.ReadInt(0, %d)", n-1)
		w.Line("if err != nil {")
		w.Indent()
		w.Line("return err")
		w.Dedent()
		w.Line("}")
		w.Printf("*m = %s(v)", tn)
		w.Line("return nil")
	})
	w.Blank()
}

func isCustomRole(r model.Role) (model.Custom, bool) {
	c, ok := r.(model.Custom)
	return c, ok
}

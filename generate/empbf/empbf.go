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

// Package empbf is the PBF Emitter (§4.7): it injects the
// ReadPBF/WritePBF/PBFFormat/PBFEqual method set for every definition
// kind, on top of the protobuf-wire-compatible pbfio substrate.
package empbf

import (
	"fmt"
	"strings"

	"github.com/kralicky/asn1gen/generate"
	"github.com/kralicky/asn1gen/internal/names"
	"github.com/kralicky/asn1gen/model"
)

// Emitter is the PBF codec Emitter.
type Emitter struct{}

// New returns a PBF Emitter. It carries no state.
func New() *Emitter { return &Emitter{} }

var _ generate.Emitter = (*Emitter)(nil)

// AddImports registers the pbfio import every PBF method body needs.
func (*Emitter) AddImports(set *generate.ImportSet, _ model.Definition) {
	set.Add("github.com/kralicky/asn1gen/pbfio")
}

// EmitCodecForDefinition injects this definition's ReadPBF/WritePBF/
// PBFFormat/PBFEqual method set.
func (e *Emitter) EmitCodecForDefinition(w *generate.CodeWriter, def model.Definition) error {
	switch d := def.(type) {
	case *model.SequenceOf:
		e.emitSequenceOf(w, d)
	case *model.Sequence:
		e.emitSequence(w, d)
	case *model.Enumerated:
		e.emitEnumerated(w, d)
	default:
		return fmt.Errorf("empbf: unsupported definition kind %T", def)
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

// wireTypeLiteral returns the Go source expression for role's static PBF
// wire category, and false when the category can only be known at
// runtime (a Custom reference, via the referent's own PBFFormat()).
func wireTypeLiteral(role model.Role) (string, bool) {
	switch rr := role.(type) {
	case model.Boolean:
		return "pbfio.VarInt", true
	case model.Integer:
		switch {
		case rr.Min >= 0:
			return "pbfio.VarInt", true
		case rr.Min >= -2147483648 && rr.Max <= 2147483647:
			return "pbfio.Fixed32", true
		default:
			return "pbfio.Fixed64", true
		}
	case model.UnsignedMaxInteger:
		return "pbfio.VarInt", true
	case model.UTF8String:
		return "pbfio.LengthDelimited", true
	default:
		return "", false
	}
}

// writeScalar emits the unconditional write of a primitive (non-Custom)
// role's wire value, no tag. pbfio.Writer's write side never errors.
func writeScalar(w *generate.CodeWriter, expr string, role model.Role) {
	switch rr := role.(type) {
	case model.Boolean:
		w.Printf("w.WriteBool(bool(%s))", expr)
	case model.Integer:
		switch {
		case rr.Min >= 0:
			w.Printf("w.WriteVarint(uint64(%s))", expr)
		case rr.Min >= -2147483648 && rr.Max <= 2147483647:
			w.Printf("w.WriteSfixed32(int32(%s))", expr)
		default:
			w.Printf("w.WriteUint64(uint64(int64(%s)))", expr)
		}
	case model.UnsignedMaxInteger:
		w.Printf("w.WriteVarint(%s)", expr)
	case model.UTF8String:
		w.Printf("w.WriteString(string(%s))", expr)
	}
}

// readScalar emits the read of a primitive (non-Custom) role's wire
// value into the lvalue dest.
func readScalar(w *generate.CodeWriter, dest string, role model.Role) {
	switch rr := role.(type) {
	case model.Boolean:
		w.Line("{")
		w.Indent()
		w.Line("v, err := r.ReadBool()")
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
		switch {
		case rr.Min >= 0:
			w.Line("v, err := r.ReadVarint()")
			w.Line("if err != nil {")
			w.Indent()
			w.Line("return err")
			w.Dedent()
			w.Line("}")
			w.Printf("%s = %s(v)", dest, generate.GoType(role))
		case rr.Min >= -2147483648 && rr.Max <= 2147483647:
			w.Line("v, err := r.ReadSfixed32()")
			w.Line("if err != nil {")
			w.Indent()
			w.Line("return err")
			w.Dedent()
			w.Line("}")
			w.Printf("%s = %s(v)", dest, generate.GoType(role))
		default:
			w.Line("v, err := r.ReadUint64()")
			w.Line("if err != nil {")
			w.Indent()
			w.Line("return err")
			w.Dedent()
			w.Line("}")
			w.Printf("%s = %s(int64(v))", dest, generate.GoType(role))
		}
		w.Dedent()
		w.Line("}")
	case model.UnsignedMaxInteger:
		w.Line("{")
		w.Indent()
		w.Line("v, err := r.ReadVarint()")
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
		w.Line("v, err := r.ReadString()")
		w.Line("if err != nil {")
		w.Indent()
		w.Line("return err")
		w.Dedent()
		w.Line("}")
		w.Printf("%s = v", dest)
		w.Dedent()
		w.Line("}")
	}
}

// writeTagged emits a full tagged-field write: the tag, then the value,
// dispatching to a runtime PBFFormat() lookup for Custom references (the
// sub-type's own serialization decides whether it is buffered as a
// length-delimited sub-message or written inline).
func writeTagged(w *generate.CodeWriter, expr string, fieldNum int, role model.Role) {
	if lit, ok := wireTypeLiteral(role); ok {
		w.Printf("w.WriteTag(%d, %s)", fieldNum, lit)
		writeScalar(w, expr, role)
		return
	}
	w.Line("{")
	w.Indent()
	w.Printf("wt := %s.PBFFormat()", expr)
	w.Printf("w.WriteTag(%d, wt)", fieldNum)
	w.Line("if wt == pbfio.LengthDelimited {")
	w.Indent()
	w.Line("sub := pbfio.NewWriter()")
	w.Printf("if err := %s.WritePBF(sub); err != nil {", expr)
	w.Indent()
	w.Line("return err")
	w.Dedent()
	w.Line("}")
	w.Line("w.WriteBytes(sub.Bytes())")
	w.Dedent()
	w.Line("} else {")
	w.Indent()
	w.Printf("if err := %s.WritePBF(w); err != nil {", expr)
	w.Indent()
	w.Line("return err")
	w.Dedent()
	w.Line("}")
	w.Dedent()
	w.Line("}")
	w.Dedent()
	w.Line("}")
}

// readTagged emits the value-read for a field whose tag has already been
// consumed (wt holds its wire category), assigning into dest.
func readTagged(w *generate.CodeWriter, dest string, role model.Role, goType string) {
	if _, ok := wireTypeLiteral(role); ok {
		readScalar(w, dest, role)
		return
	}
	w.Line("{")
	w.Indent()
	w.Printf("var tmp %s", goType)
	w.Line("if wt == pbfio.LengthDelimited {")
	w.Indent()
	w.Line("b, err := r.ReadBytes()")
	w.Line("if err != nil {")
	w.Indent()
	w.Line("return err")
	w.Dedent()
	w.Line("}")
	w.Line("if err := tmp.ReadPBF(pbfio.NewReader(b)); err != nil {")
	w.Indent()
	w.Line("return err")
	w.Dedent()
	w.Line("}")
	w.Dedent()
	w.Line("} else {")
	w.Indent()
	w.Line("if err := tmp.ReadPBF(r); err != nil {")
	w.Indent()
	w.Line("return err")
	w.Dedent()
	w.Line("}")
	w.Dedent()
	w.Line("}")
	w.Printf("%s = tmp", dest)
	w.Dedent()
	w.Line("}")
}

func (e *Emitter) emitSequence(w *generate.CodeWriter, d *model.Sequence) {
	tn := typeName(d.Name)

	w.Block(fmt.Sprintf("func (m *%s) PBFFormat() pbfio.WireType {", tn), func() {
		w.Line("return pbfio.LengthDelimited")
	})
	w.Blank()

	w.Block(fmt.Sprintf("func (m *%s) WritePBF(w *pbfio.Writer) error {", tn), func() {
		for i, f := range d.Fields {
			gf := typeName(f.Name)
			_, custom := f.Role.(model.Custom)
			expr := "m." + gf
			if !f.Optional {
				writeTagged(w, expr, i+1, f.Role)
				continue
			}
			w.Printf("if m.%s != nil {", gf)
			w.Indent()
			if custom {
				writeTagged(w, expr, i+1, f.Role)
			} else {
				writeTagged(w, "*"+expr, i+1, f.Role)
			}
			w.Dedent()
			w.Line("}")
		}
		w.Line("return nil")
	})
	w.Blank()

	w.Block(fmt.Sprintf("func (m *%s) ReadPBF(r *pbfio.Reader) error {", tn), func() {
		w.Line("for r.Len() > 0 {")
		w.Indent()
		w.Line("num, wt, err := r.ReadTag()")
		w.Line("if err != nil {")
		w.Indent()
		w.Line("return err")
		w.Dedent()
		w.Line("}")
		w.Line("switch num {")
		w.Line("case 0:")
		w.Indent()
		w.Line("return nil")
		w.Dedent()
		for i, f := range d.Fields {
			gf := typeName(f.Name)
			goType := generate.GoType(f.Role)
			w.Printf("case %d:", i+1)
			w.Indent()
			if f.Optional {
				w.Printf("m.%s = new(%s)", gf, goType)
				readTagged(w, "*m."+gf, f.Role, goType)
			} else {
				readTagged(w, "m."+gf, f.Role, goType)
			}
			w.Dedent()
		}
		w.Line("default:")
		w.Indent()
		w.Line("_ = wt")
		w.Line("return &pbfio.InvalidTagReceivedError{FieldNumber: num}")
		w.Dedent()
		w.Line("}")
		w.Dedent()
		w.Line("}")
		w.Line("return nil")
	})
	w.Blank()

	w.Block(fmt.Sprintf("func (m *%s) PBFEqual(other *%s) bool {", tn, tn), func() {
		w.Line("if m == other {")
		w.Indent()
		w.Line("return true")
		w.Dedent()
		w.Line("}")
		w.Line("if m == nil || other == nil {")
		w.Indent()
		w.Line("return false")
		w.Dedent()
		w.Line("}")
		for _, f := range d.Fields {
			gf := typeName(f.Name)
			_, custom := f.Role.(model.Custom)
			if f.Optional {
				w.Printf("if (m.%s == nil) != (other.%s == nil) {", gf, gf)
				w.Indent()
				w.Line("return false")
				w.Dedent()
				w.Line("}")
				w.Printf("if m.%s != nil {", gf)
				w.Indent()
				if custom {
					w.Printf("if !m.%s.PBFEqual(other.%s) {", gf, gf)
				} else {
					w.Printf("if *m.%s != *other.%s {", gf, gf)
				}
				w.Indent()
				w.Line("return false")
				w.Dedent()
				w.Line("}")
				w.Dedent()
				w.Line("}")
				continue
			}
			if custom {
				w.Printf("if !m.%s.PBFEqual(&other.%s) {", gf, gf)
			} else {
				w.Printf("if m.%s != other.%s {", gf, gf)
			}
			w.Indent()
			w.Line("return false")
			w.Dedent()
			w.Line("}")
		}
		w.Line("return true")
	})
	w.Blank()
}

func (e *Emitter) emitSequenceOf(w *generate.CodeWriter, d *model.SequenceOf) {
	tn := typeName(d.Name)
	elemType := generate.GoType(d.Element)
	_, custom := d.Element.(model.Custom)

	w.Block(fmt.Sprintf("func (m *%s) PBFFormat() pbfio.WireType {", tn), func() {
		w.Line("return pbfio.LengthDelimited")
	})
	w.Blank()

	w.Block(fmt.Sprintf("func (m *%s) WritePBF(w *pbfio.Writer) error {", tn), func() {
		w.Line("for i := range m.values {")
		w.Indent()
		writeTagged(w, "m.values[i]", 1, d.Element)
		w.Dedent()
		w.Line("}")
		w.Line("return nil")
	})
	w.Blank()

	w.Block(fmt.Sprintf("func (m *%s) ReadPBF(r *pbfio.Reader) error {", tn), func() {
		w.Line("var values []" + elemType)
		w.Line("for r.Len() > 0 {")
		w.Indent()
		w.Line("num, wt, err := r.ReadTag()")
		w.Line("if err != nil {")
		w.Indent()
		w.Line("return err")
		w.Dedent()
		w.Line("}")
		w.Line("if num == 0 {")
		w.Indent()
		w.Line("break")
		w.Dedent()
		w.Line("}")
		w.Line("if num != 1 {")
		w.Indent()
		w.Line("return &pbfio.InvalidTagReceivedError{FieldNumber: num}")
		w.Dedent()
		w.Line("}")
		w.Line("_ = wt")
		w.Printf("var elem %s", elemType)
		readTagged(w, "elem", d.Element, elemType)
		w.Line("values = append(values, elem)")
		w.Dedent()
		w.Line("}")
		w.Line("m.values = values")
		w.Line("return nil")
	})
	w.Blank()

	w.Block(fmt.Sprintf("func (m *%s) PBFEqual(other *%s) bool {", tn, tn), func() {
		w.Line("if m == other {")
		w.Indent()
		w.Line("return true")
		w.Dedent()
		w.Line("}")
		w.Line("if m == nil || other == nil || len(m.values) != len(other.values) {")
		w.Indent()
		w.Line("return false")
		w.Dedent()
		w.Line("}")
		w.Line("for i := range m.values {")
		w.Indent()
		if custom {
			w.Line("if !m.values[i].PBFEqual(&other.values[i]) {")
		} else {
			w.Line("if m.values[i] != other.values[i] {")
		}
		w.Indent()
		w.Line("return false")
		w.Dedent()
		w.Line("}")
		w.Dedent()
		w.Line("}")
		w.Line("return true")
	})
	w.Blank()
}

func (e *Emitter) emitEnumerated(w *generate.CodeWriter, d *model.Enumerated) {
	tn := typeName(d.Name)
	n := len(d.Variants)

	w.Block(fmt.Sprintf("func (m %s) PBFFormat() pbfio.WireType {", tn), func() {
		w.Line("return pbfio.VarInt")
	})
	w.Blank()

	w.Block(fmt.Sprintf("func (m %s) WritePBF(w *pbfio.Writer) error {", tn), func() {
		w.Line("w.WriteEnumVariant(uint32(m))")
		w.Line("return nil")
	})
	w.Blank()

	w.Block(fmt.Sprintf("func (m *%s) ReadPBF(r *pbfio.Reader) error {", tn), func() {
		w.Line("v, err := r.ReadEnumVariant()")
		w.Line("if err != nil {")
		w.Indent()
		w.Line("return err")
		w.Dedent()
		w.Line("}")
		w.Printf("if v >= %d {", n)
		w.Indent()
		w.Line("return &pbfio.InvalidVariantError{Ordinal: uint64(v)}")
		w.Dedent()
		w.Line("}")
		w.Printf("*m = %s(v)", tn)
		w.Line("return nil")
	})
	w.Blank()

	w.Block(fmt.Sprintf("func (m %s) PBFEqual(other %s) bool {", tn, tn), func() {
		w.Line("return m == other")
	})
	w.Blank()
}

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

package empbf_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kralicky/asn1gen/generate"
	"github.com/kralicky/asn1gen/generate/empbf"
	"github.com/kralicky/asn1gen/model"
)

func TestAddImportsRegistersPbfio(t *testing.T) {
	set := generate.NewImportSet()
	empbf.New().AddImports(set, &model.Sequence{})
	assert.Equal(t, []string{"github.com/kralicky/asn1gen/pbfio"}, set.Sorted())
}

func TestEmitSequencePointExample(t *testing.T) {
	// §8 end-to-end scenario 2: field numbers are 1-based declaration
	// order, unsigned INTEGER(0..255) is VarInt.
	d := &model.Sequence{
		Name: "Point",
		Fields: []model.Field{
			{Name: "x", Role: model.Integer{Min: 0, Max: 255}},
			{Name: "y", Role: model.Integer{Min: 0, Max: 255}},
		},
	}
	w := generate.NewCodeWriter()
	require.NoError(t, empbf.New().EmitCodecForDefinition(w, d))
	src := w.String()

	assert.Contains(t, src, "func (m *Point) PBFFormat() pbfio.WireType {")
	assert.Contains(t, src, "return pbfio.LengthDelimited")
	assert.Contains(t, src, "func (m *Point) WritePBF(w *pbfio.Writer) error {")
	assert.Contains(t, src, "w.WriteTag(1, pbfio.VarInt)")
	assert.Contains(t, src, "w.WriteVarint(uint64(m.X))")
	assert.Contains(t, src, "w.WriteTag(2, pbfio.VarInt)")
	assert.Contains(t, src, "w.WriteVarint(uint64(m.Y))")
	assert.Contains(t, src, "func (m *Point) ReadPBF(r *pbfio.Reader) error {")
	assert.Contains(t, src, "case 0:")
	assert.Contains(t, src, "case 1:")
	assert.Contains(t, src, "case 2:")
	assert.Contains(t, src, "_ = wt")
	assert.Contains(t, src, "func (m *Point) PBFEqual(other *Point) bool {")
	assert.Contains(t, src, "if m.X != other.X {")
}

func TestEmitSequenceSignedIntegerWireCategories(t *testing.T) {
	d := &model.Sequence{
		Name: "Signed",
		Fields: []model.Field{
			{Name: "a", Role: model.Integer{Min: -100, Max: 100}},
			{Name: "b", Role: model.Integer{Min: -1, Max: 1 << 40}},
		},
	}
	w := generate.NewCodeWriter()
	require.NoError(t, empbf.New().EmitCodecForDefinition(w, d))
	src := w.String()

	assert.Contains(t, src, "w.WriteTag(1, pbfio.Fixed32)")
	assert.Contains(t, src, "w.WriteSfixed32(int32(m.A))")
	assert.Contains(t, src, "w.WriteTag(2, pbfio.Fixed64)")
	assert.Contains(t, src, "w.WriteUint64(uint64(int64(m.B)))")
	assert.Contains(t, src, "r.ReadUint64()")
	assert.Contains(t, src, "m.B = int64(int64(v))")
}

func TestEmitSequenceOptionalFieldSkipsWhenNil(t *testing.T) {
	d := &model.Sequence{
		Name: "S",
		Fields: []model.Field{
			{Name: "v", Role: model.Integer{Min: 0, Max: 3}, Optional: true},
		},
	}
	w := generate.NewCodeWriter()
	require.NoError(t, empbf.New().EmitCodecForDefinition(w, d))
	src := w.String()

	assert.Contains(t, src, "if m.V != nil {")
	assert.Contains(t, src, "w.WriteVarint(uint64(*m.V))")
	assert.Contains(t, src, "m.V = new(uint8)")
}

func TestEmitSequenceOfExample(t *testing.T) {
	// §8 end-to-end scenario 4: SequenceOf always uses field number 1.
	d := &model.SequenceOf{Name: "L", Element: model.Integer{Min: 0, Max: 15}}
	w := generate.NewCodeWriter()
	require.NoError(t, empbf.New().EmitCodecForDefinition(w, d))
	src := w.String()

	assert.Contains(t, src, "w.WriteTag(1, pbfio.VarInt)")
	assert.Contains(t, src, "w.WriteVarint(uint64(m.values[i]))")
	assert.Contains(t, src, "if num == 0 {")
	assert.Contains(t, src, "if num != 1 {")
	assert.Contains(t, src, "return &pbfio.InvalidTagReceivedError{FieldNumber: num}")
}

func TestEmitSequenceReadPBFTreatsZeroTagAsEOF(t *testing.T) {
	// spec §4.7: a tag value of 0 terminates the read loop gracefully,
	// distinct from an unrecognized nonzero tag.
	d := &model.Sequence{
		Name: "Point",
		Fields: []model.Field{
			{Name: "x", Role: model.Integer{Min: 0, Max: 255}},
		},
	}
	w := generate.NewCodeWriter()
	require.NoError(t, empbf.New().EmitCodecForDefinition(w, d))
	src := w.String()

	assert.Contains(t, src, "switch num {")
	assert.Contains(t, src, "case 0:")
	caseIdx := strings.Index(src, "case 0:")
	defaultIdx := strings.Index(src, "default:")
	require.Greater(t, caseIdx, 0)
	require.Greater(t, defaultIdx, caseIdx)
}

func TestEmitSequenceOfReadPBFTreatsZeroTagAsEOF(t *testing.T) {
	d := &model.SequenceOf{Name: "L", Element: model.Integer{Min: 0, Max: 15}}
	w := generate.NewCodeWriter()
	require.NoError(t, empbf.New().EmitCodecForDefinition(w, d))
	src := w.String()

	assert.Contains(t, src, "if num == 0 {")
	breakIdx := strings.Index(src, "if num == 0 {")
	notOneIdx := strings.Index(src, "if num != 1 {")
	require.Greater(t, breakIdx, 0)
	require.Greater(t, notOneIdx, breakIdx)
}

func TestEmitEnumeratedExample(t *testing.T) {
	// §8 end-to-end scenario 1.
	d := &model.Enumerated{Name: "Flag", Variants: []string{"on", "off"}}
	w := generate.NewCodeWriter()
	require.NoError(t, empbf.New().EmitCodecForDefinition(w, d))
	src := w.String()

	assert.Contains(t, src, "func (m Flag) PBFFormat() pbfio.WireType {")
	assert.Contains(t, src, "return pbfio.VarInt")
	assert.Contains(t, src, "w.WriteEnumVariant(uint32(m))")
	assert.Contains(t, src, "if v >= 2 {")
	assert.Contains(t, src, "return &pbfio.InvalidVariantError{Ordinal: uint64(v)}")
	assert.Contains(t, src, "*m = Flag(v)")
	assert.Contains(t, src, "func (m Flag) PBFEqual(other Flag) bool {")
	assert.Contains(t, src, "return m == other")
}

func TestEmitSequenceCustomFieldDispatchesAtRuntime(t *testing.T) {
	d := &model.Sequence{
		Name: "Wrapper",
		Fields: []model.Field{
			{Name: "p", Role: model.Custom{Name: "Point"}},
		},
	}
	w := generate.NewCodeWriter()
	require.NoError(t, empbf.New().EmitCodecForDefinition(w, d))
	src := w.String()

	assert.Contains(t, src, "wt := m.P.PBFFormat()")
	assert.Contains(t, src, "w.WriteTag(1, wt)")
	assert.Contains(t, src, "if wt == pbfio.LengthDelimited {")
	assert.Contains(t, src, "sub := pbfio.NewWriter()")
	assert.Contains(t, src, "m.P.WritePBF(sub)")
	assert.Contains(t, src, "w.WriteBytes(sub.Bytes())")
	assert.Contains(t, src, "m.P.WritePBF(w)")
	assert.Contains(t, src, "if !m.P.PBFEqual(&other.P) {")
}

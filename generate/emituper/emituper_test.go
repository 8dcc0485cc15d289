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

package emituper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kralicky/asn1gen/generate"
	"github.com/kralicky/asn1gen/generate/emituper"
	"github.com/kralicky/asn1gen/model"
)

func TestAddImportsRegistersBitio(t *testing.T) {
	set := generate.NewImportSet()
	emituper.New().AddImports(set, &model.Sequence{})
	assert.Equal(t, []string{"github.com/kralicky/asn1gen/bitio"}, set.Sorted())
}

func TestEmitSequencePointExample(t *testing.T) {
	// §8 end-to-end scenario 2: two required INTEGER(0..255) fields.
	d := &model.Sequence{
		Name: "Point",
		Fields: []model.Field{
			{Name: "x", Role: model.Integer{Min: 0, Max: 255}},
			{Name: "y", Role: model.Integer{Min: 0, Max: 255}},
		},
	}
	w := generate.NewCodeWriter()
	require.NoError(t, emituper.New().EmitCodecForDefinition(w, d))
	src := w.String()

	assert.Contains(t, src, "func (m *Point) WriteUPER(w *bitio.Writer) error {")
	assert.Contains(t, src, "w.WriteInt(int64(m.X), 0, 255)")
	assert.Contains(t, src, "w.WriteInt(int64(m.Y), 0, 255)")
	assert.Contains(t, src, "func (m *Point) ReadUPER(r *bitio.Reader) error {")
	assert.Contains(t, src, "r.ReadInt(0, 255)")
	// No preamble bitmap: neither field is optional.
	assert.NotContains(t, src, "present")
}

func TestEmitSequenceOptionalField(t *testing.T) {
	// §8 end-to-end scenario 3.
	d := &model.Sequence{
		Name: "S",
		Fields: []model.Field{
			{Name: "v", Role: model.Integer{Min: 0, Max: 3}, Optional: true},
		},
	}
	w := generate.NewCodeWriter()
	require.NoError(t, emituper.New().EmitCodecForDefinition(w, d))
	src := w.String()

	assert.Contains(t, src, "w.WriteBit(m.V != nil)")
	assert.Contains(t, src, "if m.V != nil {")
	assert.Contains(t, src, "var present [1]bool")
	assert.Contains(t, src, "if present[0] {")
	assert.Contains(t, src, "m.V = new(uint8)")
}

func TestEmitSequenceOfExample(t *testing.T) {
	// §8 end-to-end scenario 4.
	d := &model.SequenceOf{Name: "L", Element: model.Integer{Min: 0, Max: 15}}
	w := generate.NewCodeWriter()
	require.NoError(t, emituper.New().EmitCodecForDefinition(w, d))
	src := w.String()

	assert.Contains(t, src, "func (m *L) WriteUPER(w *bitio.Writer) error {")
	assert.Contains(t, src, "w.WriteElements(len(m.values), func(i int) error {")
	assert.Contains(t, src, "w.WriteInt(int64(m.values[i]), 0, 15)")
	assert.Contains(t, src, "r.ReadElements(func() error {")
	assert.Contains(t, src, "var elem uint8")
}

func TestEmitEnumeratedExample(t *testing.T) {
	// §8 end-to-end scenario 1.
	d := &model.Enumerated{Name: "Flag", Variants: []string{"on", "off"}}
	w := generate.NewCodeWriter()
	require.NoError(t, emituper.New().EmitCodecForDefinition(w, d))
	src := w.String()

	assert.Contains(t, src, "func (m Flag) WriteUPER(w *bitio.Writer) error {")
	assert.Contains(t, src, "return w.WriteInt(int64(m), 0, 1)")
	assert.Contains(t, src, "func (m *Flag) ReadUPER(r *bitio.Reader) error {")
	assert.Contains(t, src, "v, err := r.ReadInt(0, 1)")
	assert.Contains(t, src, "*m = Flag(v)")
}

func TestEmitSequenceCustomFieldDelegatesToReferent(t *testing.T) {
	d := &model.Sequence{
		Name: "Wrapper",
		Fields: []model.Field{
			{Name: "p", Role: model.Custom{Name: "Point"}},
		},
	}
	w := generate.NewCodeWriter()
	require.NoError(t, emituper.New().EmitCodecForDefinition(w, d))
	src := w.String()

	assert.Contains(t, src, "m.P.WriteUPER(w)")
	assert.Contains(t, src, "m.P.ReadUPER(r)")
}

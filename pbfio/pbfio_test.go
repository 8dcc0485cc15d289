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

package pbfio_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kralicky/asn1gen/pbfio"
)

func TestPointExample(t *testing.T) {
	// §8 end-to-end scenario 2: Point{x:1,y:2} PBF-encodes as
	// 0x08 0x01 0x10 0x02.
	w := pbfio.NewWriter()
	w.WriteTag(1, pbfio.VarInt)
	w.WriteVarint(1)
	w.WriteTag(2, pbfio.VarInt)
	w.WriteVarint(2)
	assert.Equal(t, []byte{0x08, 0x01, 0x10, 0x02}, w.Bytes())
}

func TestEnumeratedOffExample(t *testing.T) {
	// §8 end-to-end scenario 1: PBF encoding of Off (ordinal 1) is the
	// single byte 0x01.
	w := pbfio.NewWriter()
	w.WriteEnumVariant(1)
	assert.Equal(t, []byte{0x01}, w.Bytes())
}

func TestTagRoundTrip(t *testing.T) {
	w := pbfio.NewWriter()
	w.WriteTag(5, pbfio.LengthDelimited)
	r := pbfio.NewReader(w.Bytes())
	num, wt, err := r.ReadTag()
	require.NoError(t, err)
	assert.EqualValues(t, 5, num)
	assert.Equal(t, pbfio.LengthDelimited, wt)
}

func TestStringRoundTrip(t *testing.T) {
	w := pbfio.NewWriter()
	w.WriteString("hello")
	r := pbfio.NewReader(w.Bytes())
	got, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestBoolRoundTrip(t *testing.T) {
	w := pbfio.NewWriter()
	w.WriteBool(true)
	r := pbfio.NewReader(w.Bytes())
	got, err := r.ReadBool()
	require.NoError(t, err)
	assert.True(t, got)
}

func TestSfixed32RoundTrip(t *testing.T) {
	w := pbfio.NewWriter()
	w.WriteSfixed32(-42)
	r := pbfio.NewReader(w.Bytes())
	got, err := r.ReadSfixed32()
	require.NoError(t, err)
	assert.EqualValues(t, -42, got)
}

func TestUint64RoundTrip(t *testing.T) {
	w := pbfio.NewWriter()
	w.WriteUint64(1 << 40)
	r := pbfio.NewReader(w.Bytes())
	got, err := r.ReadUint64()
	require.NoError(t, err)
	assert.EqualValues(t, 1<<40, got)
}

func TestLenIsEOFSentinel(t *testing.T) {
	r := pbfio.NewReader(nil)
	assert.Equal(t, 0, r.Len())

	w := pbfio.NewWriter()
	w.WriteVarint(1)
	r = pbfio.NewReader(w.Bytes())
	assert.NotZero(t, r.Len())
	_, err := r.ReadVarint()
	require.NoError(t, err)
	assert.Zero(t, r.Len())
}

func TestSkipValue(t *testing.T) {
	w := pbfio.NewWriter()
	w.WriteVarint(123)
	w.WriteBytes([]byte("trailing"))
	r := pbfio.NewReader(w.Bytes())
	require.NoError(t, r.SkipValue(pbfio.VarInt))
	got, err := r.ReadBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("trailing"), got)
}

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

// Package pbfio implements the PBF byte-level substrate (§4.4): a
// varint-and-tag stream built directly on
// google.golang.org/protobuf/encoding/protowire, since the PBF wire
// format this tool targets is the protobuf wire format.
package pbfio

import (
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protowire"
)

// WireType is the wire-format category the PBF emitter dispatches on
// (§4.4).
type WireType int

const (
	VarInt WireType = iota
	Fixed32
	Fixed64
	LengthDelimited
)

func (w WireType) String() string {
	switch w {
	case VarInt:
		return "varint"
	case Fixed32:
		return "fixed32"
	case Fixed64:
		return "fixed64"
	case LengthDelimited:
		return "length_delimited"
	default:
		return "unknown"
	}
}

func (w WireType) protowireType() protowire.Type {
	switch w {
	case VarInt:
		return protowire.VarintType
	case Fixed32:
		return protowire.Fixed32Type
	case Fixed64:
		return protowire.Fixed64Type
	default:
		return protowire.BytesType
	}
}

func fromProtowireType(t protowire.Type) (WireType, bool) {
	switch t {
	case protowire.VarintType:
		return VarInt, true
	case protowire.Fixed32Type:
		return Fixed32, true
	case protowire.Fixed64Type:
		return Fixed64, true
	case protowire.BytesType:
		return LengthDelimited, true
	default:
		return 0, false
	}
}

// Writer accumulates a PBF byte stream.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty PBF writer.
func NewWriter() *Writer { return &Writer{} }

// Bytes returns the accumulated bytes.
func (w *Writer) Bytes() []byte { return w.buf }

// WriteTag writes a field tag: (fieldNumber << 3) | wireType.
func (w *Writer) WriteTag(fieldNumber uint32, wt WireType) {
	w.buf = protowire.AppendTag(w.buf, protowire.Number(fieldNumber), wt.protowireType())
}

// WriteVarint writes an unsigned varint.
func (w *Writer) WriteVarint(v uint64) {
	w.buf = protowire.AppendVarint(w.buf, v)
}

// WriteBool writes a boolean as a varint (§4.7 type coercion).
func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteVarint(1)
	} else {
		w.WriteVarint(0)
	}
}

// WriteEnumVariant writes an enum ordinal as a varint.
func (w *Writer) WriteEnumVariant(ordinal uint32) {
	w.WriteVarint(uint64(ordinal))
}

// WriteBytes writes a length-delimited byte string: a varint length
// followed by the raw bytes.
func (w *Writer) WriteBytes(v []byte) {
	w.buf = protowire.AppendBytes(w.buf, v)
}

// WriteString writes a length-delimited UTF-8 string.
func (w *Writer) WriteString(s string) {
	w.WriteBytes([]byte(s))
}

// WriteSfixed32 writes a little-endian 32-bit signed integer.
func (w *Writer) WriteSfixed32(v int32) {
	w.buf = protowire.AppendFixed32(w.buf, uint32(v))
}

// WriteUint64 writes a little-endian 64-bit unsigned integer.
func (w *Writer) WriteUint64(v uint64) {
	w.buf = protowire.AppendFixed64(w.buf, v)
}

// Reader consumes a PBF byte stream sequentially.
type Reader struct {
	data []byte
}

// NewReader wraps data for sequential PBF decoding.
func NewReader(data []byte) *Reader { return &Reader{data: data} }

// Len reports the number of unconsumed bytes. A generated read loop's
// EOF sentinel is Len() == 0.
func (r *Reader) Len() int { return len(r.data) }

func (r *Reader) advance(n int) {
	r.data = r.data[n:]
}

// ReadTag reads a field tag and decodes it into a field number and wire
// category. An unrecognized wire type on the stream is reported as an
// IoError, since it indicates malformed input. The returned category is
// not compared against any expected format here or in the generated
// read bodies.
func (r *Reader) ReadTag() (fieldNumber uint32, wt WireType, err error) {
	num, typ, n := protowire.ConsumeTag(r.data)
	if n < 0 {
		return 0, 0, &IoError{Err: protowire.ParseError(n)}
	}
	r.advance(n)
	w, ok := fromProtowireType(typ)
	if !ok {
		return 0, 0, &IoError{Err: protowire.ParseError(n)}
	}
	return uint32(num), w, nil
}

// ReadVarint reads an unsigned varint.
func (r *Reader) ReadVarint() (uint64, error) {
	v, n := protowire.ConsumeVarint(r.data)
	if n < 0 {
		return 0, &IoError{Err: protowire.ParseError(n)}
	}
	r.advance(n)
	return v, nil
}

// ReadBool reads a varint-encoded boolean.
func (r *Reader) ReadBool() (bool, error) {
	v, err := r.ReadVarint()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// ReadEnumVariant reads a varint-encoded enum ordinal.
func (r *Reader) ReadEnumVariant() (uint32, error) {
	v, err := r.ReadVarint()
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// ReadBytes reads a length-delimited byte string.
func (r *Reader) ReadBytes() ([]byte, error) {
	v, n := protowire.ConsumeBytes(r.data)
	if n < 0 {
		return nil, &IoError{Err: protowire.ParseError(n)}
	}
	r.advance(n)
	return v, nil
}

// ReadString reads a length-delimited UTF-8 string.
func (r *Reader) ReadString() (string, error) {
	b, err := r.ReadBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", &InvalidUtf8Error{}
	}
	return string(b), nil
}

// ReadSfixed32 reads a little-endian 32-bit signed integer.
func (r *Reader) ReadSfixed32() (int32, error) {
	v, n := protowire.ConsumeFixed32(r.data)
	if n < 0 {
		return 0, &IoError{Err: protowire.ParseError(n)}
	}
	r.advance(n)
	return int32(v), nil
}

// ReadUint64 reads a little-endian 64-bit unsigned integer.
func (r *Reader) ReadUint64() (uint64, error) {
	v, n := protowire.ConsumeFixed64(r.data)
	if n < 0 {
		return 0, &IoError{Err: protowire.ParseError(n)}
	}
	r.advance(n)
	return v, nil
}

// SkipValue consumes and discards a value of the given wire type,
// without interpreting it. The generated read loops do not call it: an
// unknown field number fails with InvalidTagReceivedError at once.
func (r *Reader) SkipValue(wt WireType) error {
	switch wt {
	case VarInt:
		_, err := r.ReadVarint()
		return err
	case Fixed32:
		_, err := r.ReadSfixed32()
		return err
	case Fixed64:
		_, err := r.ReadUint64()
		return err
	default:
		_, err := r.ReadBytes()
		return err
	}
}

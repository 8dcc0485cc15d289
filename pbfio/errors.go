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

package pbfio

import "fmt"

// Error is the closed PBF runtime error taxonomy (§7.3).
type Error interface {
	error
	isPbfError()
}

// IoError wraps an underlying I/O failure.
type IoError struct{ Err error }

func (e *IoError) Error() string { return fmt.Sprintf("pbf: io error: %v", e.Err) }
func (e *IoError) Unwrap() error { return e.Err }
func (*IoError) isPbfError()     {}

// InvalidUtf8Error is returned when a decoded string's bytes are not
// valid UTF-8.
type InvalidUtf8Error struct{}

func (*InvalidUtf8Error) Error() string { return "pbf: invalid utf-8" }
func (*InvalidUtf8Error) isPbfError()   {}

// MissingRequiredFieldError is never itself a decode failure: per §8,
// omitting a required field from the wire yields the type's default
// value. Generated code that wants to surface the distinction anyway can
// construct this explicitly.
type MissingRequiredFieldError struct{ Name string }

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("pbf: missing required field %q", e.Name)
}
func (*MissingRequiredFieldError) isPbfError() {}

// InvalidTagReceivedError is returned when a reader encounters a field
// number it does not recognize.
type InvalidTagReceivedError struct{ FieldNumber uint32 }

func (e *InvalidTagReceivedError) Error() string {
	return fmt.Sprintf("pbf: invalid tag received: field %d", e.FieldNumber)
}
func (*InvalidTagReceivedError) isPbfError() {}

// UnexpectedFormatError describes a nested value whose pbf_format() does
// not match what the reader expected at that position. Neither pbfio nor
// the generated read bodies construct it.
type UnexpectedFormatError struct{ Format WireType }

func (e *UnexpectedFormatError) Error() string {
	return fmt.Sprintf("pbf: unexpected wire format %v", e.Format)
}
func (*UnexpectedFormatError) isPbfError() {}

// InvalidVariantError is returned when a decoded enum ordinal is
// out-of-range for the type's variant count.
type InvalidVariantError struct{ Ordinal uint64 }

func (e *InvalidVariantError) Error() string {
	return fmt.Sprintf("pbf: invalid enum ordinal %d", e.Ordinal)
}
func (*InvalidVariantError) isPbfError() {}

var (
	_ Error = (*IoError)(nil)
	_ Error = (*InvalidUtf8Error)(nil)
	_ Error = (*MissingRequiredFieldError)(nil)
	_ Error = (*InvalidTagReceivedError)(nil)
	_ Error = (*UnexpectedFormatError)(nil)
	_ Error = (*InvalidVariantError)(nil)
)

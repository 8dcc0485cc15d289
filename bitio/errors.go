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

package bitio

import "fmt"

// Error is the closed UPER runtime error taxonomy (§7.2): Io,
// ValueNotInRange, InvalidVariant, InvalidUtf8.
type Error interface {
	error
	isBitioError()
}

// IoError wraps an underlying I/O failure (e.g. a short read).
type IoError struct {
	Err error
}

func (e *IoError) Error() string { return fmt.Sprintf("uper: io error: %v", e.Err) }
func (e *IoError) Unwrap() error { return e.Err }
func (*IoError) isBitioError()   {}

// ValueNotInRangeError is returned when a constrained integer value falls
// outside [Lo, Hi].
type ValueNotInRangeError struct {
	Value, Lo, Hi int64
}

func (e *ValueNotInRangeError) Error() string {
	return fmt.Sprintf("uper: value %d not in range [%d, %d]", e.Value, e.Lo, e.Hi)
}
func (*ValueNotInRangeError) isBitioError() {}

// InvalidVariantError describes a decoded enum ordinal that is
// out-of-range for the type's variant count. The generated UPER enum
// reads go through ReadInt, so an out-of-range ordinal surfaces as
// ValueNotInRangeError instead.
type InvalidVariantError struct {
	Ordinal uint64
}

func (e *InvalidVariantError) Error() string {
	return fmt.Sprintf("uper: invalid enum ordinal %d", e.Ordinal)
}
func (*InvalidVariantError) isBitioError() {}

// InvalidUtf8Error is returned when a decoded UTF8String's bytes are not
// valid UTF-8.
type InvalidUtf8Error struct{}

func (*InvalidUtf8Error) Error() string   { return "uper: invalid utf-8" }
func (*InvalidUtf8Error) isBitioError() {}

var (
	_ Error = (*IoError)(nil)
	_ Error = (*ValueNotInRangeError)(nil)
	_ Error = (*InvalidVariantError)(nil)
	_ Error = (*InvalidUtf8Error)(nil)
)

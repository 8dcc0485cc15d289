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

package parser

import (
	"fmt"

	"github.com/kralicky/asn1gen/token"
)

// Error is the closed parse error taxonomy §4.2 names. Every
// implementation carries the location of the offending token, where one
// was available.
type Error interface {
	error
	Position() token.Location
	isParseError()
}

type baseError struct {
	pos token.Location
	msg string
}

func (e *baseError) Error() string             { return fmt.Sprintf("%s: %s", e.pos, e.msg) }
func (e *baseError) Position() token.Location { return e.pos }
func (*baseError) isParseError()              {}

// ExpectedTextError is raised when the grammar required a specific Text
// token (typically a case-insensitive keyword) and found something else.
type ExpectedTextError struct {
	*baseError
	Expected, Got string
}

func newExpectedText(pos token.Location, expected, got string) *ExpectedTextError {
	return &ExpectedTextError{
		baseError: &baseError{pos: pos, msg: fmt.Sprintf("expected %q, got %q", expected, got)},
		Expected:  expected,
		Got:       got,
	}
}

// ExpectedSeparatorError is raised when the grammar required a specific
// separator character and found something else.
type ExpectedSeparatorError struct {
	*baseError
	Expected, Got byte
}

func newExpectedSeparator(pos token.Location, expected, got byte) *ExpectedSeparatorError {
	return &ExpectedSeparatorError{
		baseError: &baseError{pos: pos, msg: fmt.Sprintf("expected %q, got %q", expected, got)},
		Expected:  expected,
		Got:       got,
	}
}

// UnexpectedTokenError is raised when no production in the grammar
// accepts the current token.
type UnexpectedTokenError struct {
	*baseError
	Token token.Token
}

func newUnexpectedToken(t token.Token) *UnexpectedTokenError {
	return &UnexpectedTokenError{
		baseError: &baseError{pos: t.Pos, msg: fmt.Sprintf("unexpected token %s", t)},
		Token:     t,
	}
}

// MissingModuleNameError is raised when the token stream is empty or does
// not begin with an identifier.
type MissingModuleNameError struct{ *baseError }

func newMissingModuleName() *MissingModuleNameError {
	return &MissingModuleNameError{baseError: &baseError{msg: "missing module name"}}
}

// UnexpectedEndOfStreamError is raised when the token stream ends before
// a production completes.
type UnexpectedEndOfStreamError struct{ *baseError }

func newUnexpectedEOF(last token.Location) *UnexpectedEndOfStreamError {
	return &UnexpectedEndOfStreamError{baseError: &baseError{pos: last, msg: "unexpected end of stream"}}
}

// InvalidRangeValueError is raised when a range bound (INTEGER or size
// constraint) could not be parsed as an integer, or when an INTEGER range
// violated lo <= hi. Size constraints are not checked for lo <= hi.
type InvalidRangeValueError struct {
	*baseError
	Value string
}

func newInvalidRangeValue(pos token.Location, value string) *InvalidRangeValueError {
	return &InvalidRangeValueError{
		baseError: &baseError{pos: pos, msg: fmt.Sprintf("invalid range value %q", value)},
		Value:     value,
	}
}

// ValidationError is raised when a fully-parsed module violates one of
// §3's model invariants (duplicate normalized field names, an empty
// Enumerated).
type ValidationError struct {
	*baseError
}

func newValidation(pos token.Location, msg string) *ValidationError {
	return &ValidationError{baseError: &baseError{pos: pos, msg: msg}}
}

var (
	_ Error = (*ValidationError)(nil)
	_ Error = (*ExpectedTextError)(nil)
	_ Error = (*ExpectedSeparatorError)(nil)
	_ Error = (*UnexpectedTokenError)(nil)
	_ Error = (*MissingModuleNameError)(nil)
	_ Error = (*UnexpectedEndOfStreamError)(nil)
	_ Error = (*InvalidRangeValueError)(nil)
)

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
	"github.com/kralicky/asn1gen/model"
)

// GoType returns the Go language type used to hold a value of role r.
// Where the wire type differs from the language type (§4.7 "Type
// coercion"), the emitters insert an explicit cast at the I/O boundary
// rather than changing this mapping.
func GoType(r model.Role) string {
	switch rr := r.(type) {
	case model.Boolean:
		return "bool"
	case model.Integer:
		return integerGoType(rr)
	case model.UnsignedMaxInteger:
		return "uint64"
	case model.UTF8String:
		return "string"
	case model.Custom:
		return goTypeName(rr.Name)
	default:
		return "interface{}"
	}
}

// integerGoType picks the narrowest Go integer type that holds [Min, Max]:
// an unsigned type when Min >= 0, a signed one otherwise.
func integerGoType(r model.Integer) string {
	switch {
	case r.Min >= 0 && r.Max <= 255:
		return "uint8"
	case r.Min >= -128 && r.Max <= 127:
		return "int8"
	case r.Min >= 0 && r.Max <= 65535:
		return "uint16"
	case r.Min >= -32768 && r.Max <= 32767:
		return "int16"
	case r.Min >= 0 && r.Max <= 4294967295:
		return "uint32"
	case r.Min >= -2147483648 && r.Max <= 2147483647:
		return "int32"
	case r.Min >= 0:
		return "uint64"
	default:
		return "int64"
	}
}

// isIntegerConstrained reports whether r is a range-constrained integer,
// returning its bounds.
func isIntegerConstrained(r model.Role) (model.Integer, bool) {
	i, ok := r.(model.Integer)
	return i, ok
}

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

package model

import "fmt"

// Role is the schema-level type of a field or list element: a primitive
// type, or a reference to another definition by name.
type Role interface {
	role()
}

// Boolean is the BOOLEAN primitive.
type Boolean struct{}

// Integer is a range-constrained INTEGER(lo..hi).
type Integer struct {
	Min int64
	Max int64
}

// UnsignedMaxInteger is the open-upper-bound INTEGER(0..MAX) case.
type UnsignedMaxInteger struct{}

// UTF8String is the UTF8String primitive.
type UTF8String struct{}

// Custom is a reference to another definition by name. It need not
// resolve within the same module; the generator emits it verbatim modulo
// name normalization.
type Custom struct {
	Name string
}

func (Boolean) role()            {}
func (Integer) role()            {}
func (UnsignedMaxInteger) role() {}
func (UTF8String) role()         {}
func (Custom) role()             {}

var (
	_ Role = Boolean{}
	_ Role = Integer{}
	_ Role = UnsignedMaxInteger{}
	_ Role = UTF8String{}
	_ Role = Custom{}
)

// NewInteger builds an Integer role, enforcing lo <= hi (§3 invariant).
// Callers that parsed a "MAX" upper bound should construct
// UnsignedMaxInteger directly instead of calling this constructor.
func NewInteger(lo, hi int64) (Integer, error) {
	if lo > hi {
		return Integer{}, fmt.Errorf("invalid integer range: %d..%d", lo, hi)
	}
	return Integer{Min: lo, Max: hi}, nil
}

func (r Integer) String() string {
	return fmt.Sprintf("INTEGER(%d..%d)", r.Min, r.Max)
}

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

// Package model holds the in-memory schema model the parser builds and
// the generator consumes: modules, imports, and the three closed
// definition kinds a module may declare.
package model

import "fmt"

// Module is one parsed schema module. Imports and Definitions preserve
// the order they appeared in source; that order is significant for
// emitted output (§5).
type Module struct {
	Name        string
	Imports     []Import
	Definitions []Definition
}

// Import is a single IMPORTS clause: a list of identifiers imported from
// another module.
type Import struct {
	What []string
	From string
}

// Definition is a top-level named entity in a module: a record, a
// list-valued alias, or a closed enum. The interface is sealed to these
// three implementations.
type Definition interface {
	DefinitionName() string
	definition()
}

// SequenceOf is a list-valued alias: "Name ::= SEQUENCE (min..max) OF role".
// SizeMin/SizeMax are zero-value (0, 0) with HasSize false when no size
// constraint was present in source.
type SequenceOf struct {
	Name     string
	HasSize  bool
	SizeMin  uint64
	SizeMax  uint64
	HasUpper bool // false when the parsed range had no upper bound (MAX)
	Element  Role
}

// Field is one member of a Sequence. Order within the Sequence is the
// wire order for both UPER and PBF.
type Field struct {
	Name     string
	Role     Role
	Optional bool
}

// Sequence is a record type: an ordered list of fields.
type Sequence struct {
	Name   string
	Fields []Field
}

// Enumerated is a closed set of named values. Variant order is the wire
// identity: variant 0 is the default value of the type.
type Enumerated struct {
	Name     string
	Variants []string
}

func (d *SequenceOf) DefinitionName() string { return d.Name }
func (d *Sequence) DefinitionName() string   { return d.Name }
func (d *Enumerated) DefinitionName() string { return d.Name }

func (*SequenceOf) definition() {}
func (*Sequence) definition()   {}
func (*Enumerated) definition() {}

var (
	_ Definition = (*SequenceOf)(nil)
	_ Definition = (*Sequence)(nil)
	_ Definition = (*Enumerated)(nil)
)

// Validate checks the invariants §3 places on a Module's definitions:
// unique (normalized) field names per Sequence, and non-empty Enumerated
// variant lists.
func (m *Module) Validate(normalizeField func(string) string) error {
	for _, def := range m.Definitions {
		switch d := def.(type) {
		case *Sequence:
			seen := make(map[string]struct{}, len(d.Fields))
			for _, f := range d.Fields {
				n := normalizeField(f.Name)
				if _, dup := seen[n]; dup {
					return fmt.Errorf("sequence %s: duplicate field name %q after normalization", d.Name, f.Name)
				}
				seen[n] = struct{}{}
			}
		case *Enumerated:
			if len(d.Variants) == 0 {
				return fmt.Errorf("enumerated %s: must declare at least one variant", d.Name)
			}
		}
	}
	return nil
}

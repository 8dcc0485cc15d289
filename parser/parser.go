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

// Package parser implements the §4.2 grammar: a single-pass,
// one-token-lookahead recursive descent parser turning a token stream
// into a *model.Module.
package parser

import (
	"strconv"

	"github.com/kralicky/asn1gen/internal/names"
	"github.com/kralicky/asn1gen/model"
	"github.com/kralicky/asn1gen/token"
)

type parser struct {
	toks []token.Token
	pos  int
}

// Parse consumes tokens and builds a *model.Module per §4.2's grammar.
func Parse(toks []token.Token) (*model.Module, error) {
	p := &parser{toks: toks}
	return p.parseModule()
}

func (p *parser) lastLoc() token.Location {
	if len(p.toks) == 0 {
		return token.Location{}
	}
	if p.pos > 0 && p.pos-1 < len(p.toks) {
		return p.toks[p.pos-1].Pos
	}
	return p.toks[0].Pos
}

func (p *parser) peek() (token.Token, bool) {
	if p.pos >= len(p.toks) {
		return token.Token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) next() (token.Token, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

func (p *parser) expectEOF() error {
	if t, ok := p.peek(); ok {
		return newUnexpectedToken(t)
	}
	return nil
}

// expectText consumes a Text token and requires it to equal want under
// ASCII case-insensitive comparison (grammar keywords are
// case-insensitive; §4.2).
func (p *parser) expectText(want string) error {
	t, ok := p.next()
	if !ok {
		return newUnexpectedEOF(p.lastLoc())
	}
	if !t.EqualFoldText(want) {
		return newExpectedText(t.Pos, want, t.Value)
	}
	return nil
}

func (p *parser) expectSeparator(want byte) error {
	t, ok := p.next()
	if !ok {
		return newUnexpectedEOF(p.lastLoc())
	}
	if !t.IsSeparator(want) {
		got := byte(0)
		if t.Kind == token.Separator && len(t.Value) == 1 {
			got = t.Value[0]
		}
		return newExpectedSeparator(t.Pos, want, got)
	}
	return nil
}

// expectIdentifier consumes any Text token and returns it verbatim
// (identifiers are case-preserving, unlike keywords).
func (p *parser) expectIdentifier() (string, error) {
	t, ok := p.next()
	if !ok {
		return "", newUnexpectedEOF(p.lastLoc())
	}
	if t.Kind != token.Text {
		return "", newUnexpectedToken(t)
	}
	return t.Value, nil
}

func (p *parser) peekIsSeparator(ch byte) bool {
	t, ok := p.peek()
	return ok && t.IsSeparator(ch)
}

func (p *parser) peekEqualFoldText(want string) bool {
	t, ok := p.peek()
	return ok && t.EqualFoldText(want)
}

func (p *parser) parseModule() (*model.Module, error) {
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, newMissingModuleName()
	}

	// Supplemented tolerance (SPEC_FULL.md): everything between the
	// module name and BEGIN — typically "DEFINITIONS ::=" — is filler and
	// is discarded.
	if err := p.skipUntilText("BEGIN"); err != nil {
		return nil, err
	}

	mod := &model.Module{Name: name}
	for {
		t, ok := p.peek()
		if !ok {
			return nil, newUnexpectedEOF(p.lastLoc())
		}
		if t.Kind == token.Separator {
			return nil, newUnexpectedToken(t)
		}
		if t.EqualFoldText("END") {
			p.next()
			break
		}
		if t.EqualFoldText("IMPORTS") {
			p.next()
			imp, err := p.parseImport()
			if err != nil {
				return nil, err
			}
			mod.Imports = append(mod.Imports, imp)
			continue
		}
		def, err := p.parseDefinition()
		if err != nil {
			return nil, err
		}
		mod.Definitions = append(mod.Definitions, def)
	}

	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	if err := mod.Validate(names.Field); err != nil {
		return nil, newValidation(p.lastLoc(), err.Error())
	}
	return mod, nil
}

func (p *parser) skipUntilText(want string) error {
	for {
		t, ok := p.next()
		if !ok {
			return newUnexpectedEOF(p.lastLoc())
		}
		if t.EqualFoldText(want) {
			return nil
		}
	}
}

// parseImport implements: Identifier ("," Identifier)* "FROM" Identifier ";"
// The grammar's stray-comma dead branch (§9 open questions) is
// intentionally not reimplemented: a comma here is only ever a list
// separator.
func (p *parser) parseImport() (model.Import, error) {
	var imp model.Import
	for {
		id, err := p.expectIdentifier()
		if err != nil {
			return imp, err
		}
		imp.What = append(imp.What, id)

		t, ok := p.next()
		if !ok {
			return imp, newUnexpectedEOF(p.lastLoc())
		}
		if t.IsSeparator(',') {
			continue
		}
		if t.Kind == token.Text && t.EqualFoldText("FROM") {
			from, err := p.expectIdentifier()
			if err != nil {
				return imp, err
			}
			imp.From = from
			if err := p.expectSeparator(';'); err != nil {
				return imp, err
			}
			return imp, nil
		}
		return imp, newUnexpectedToken(t)
	}
}

func (p *parser) parseDefinition() (model.Definition, error) {
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expectSeparator(':'); err != nil {
		return nil, err
	}
	if err := p.expectSeparator(':'); err != nil {
		return nil, err
	}
	if err := p.expectSeparator('='); err != nil {
		return nil, err
	}

	t, ok := p.next()
	if !ok {
		return nil, newUnexpectedEOF(p.lastLoc())
	}
	switch {
	case t.Kind == token.Text && t.EqualFoldText("SEQUENCE"):
		return p.parseSequenceOrSequenceOf(name)
	case t.Kind == token.Text && t.EqualFoldText("ENUMERATED"):
		variants, err := p.parseEnumerated()
		if err != nil {
			return nil, err
		}
		return &model.Enumerated{Name: name, Variants: variants}, nil
	default:
		return nil, newUnexpectedToken(t)
	}
}

func (p *parser) parseSequenceOrSequenceOf(name string) (model.Definition, error) {
	if p.peekIsSeparator('{') {
		p.next()
		fields, err := p.parseFieldList()
		if err != nil {
			return nil, err
		}
		return &model.Sequence{Name: name, Fields: fields}, nil
	}

	so := &model.SequenceOf{Name: name}
	if p.peekIsSeparator('(') {
		p.next()
		lo, hi, hasUpper, err := p.parseRange()
		if err != nil {
			return nil, err
		}
		if err := p.expectSeparator(')'); err != nil {
			return nil, err
		}
		so.HasSize = true
		so.SizeMin = lo
		so.SizeMax = hi
		so.HasUpper = hasUpper
	}
	if err := p.expectText("OF"); err != nil {
		return nil, err
	}
	role, err := p.parseRole()
	if err != nil {
		return nil, err
	}
	so.Element = role
	return so, nil
}

func (p *parser) parseFieldList() ([]model.Field, error) {
	var fields []model.Field
	for {
		f, err := p.parseField()
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)

		t, ok := p.next()
		if !ok {
			return nil, newUnexpectedEOF(p.lastLoc())
		}
		if t.IsSeparator(',') {
			continue
		}
		if t.IsSeparator('}') {
			return fields, nil
		}
		return nil, newUnexpectedToken(t)
	}
}

func (p *parser) parseField() (model.Field, error) {
	name, err := p.expectIdentifier()
	if err != nil {
		return model.Field{}, err
	}
	role, err := p.parseRole()
	if err != nil {
		return model.Field{}, err
	}
	f := model.Field{Name: name, Role: role}
	if p.peekEqualFoldText("OPTIONAL") {
		p.next()
		f.Optional = true
	}
	return f, nil
}

func (p *parser) parseRole() (model.Role, error) {
	t, ok := p.next()
	if !ok {
		return nil, newUnexpectedEOF(p.lastLoc())
	}
	if t.Kind != token.Text {
		return nil, newUnexpectedToken(t)
	}
	switch {
	case t.EqualFoldText("BOOLEAN"):
		return model.Boolean{}, nil
	case t.EqualFoldText("UTF8STRING"):
		return model.UTF8String{}, nil
	case t.EqualFoldText("INTEGER"):
		return p.parseIntegerRole()
	default:
		return model.Custom{Name: t.Value}, nil
	}
}

func (p *parser) parseIntegerRole() (model.Role, error) {
	if err := p.expectSeparator('('); err != nil {
		return nil, err
	}
	startTok, ok := p.next()
	if !ok {
		return nil, newUnexpectedEOF(p.lastLoc())
	}
	lo, err := parseInt(startTok)
	if err != nil {
		return nil, err
	}
	if err := p.expectSeparator('.'); err != nil {
		return nil, err
	}
	if err := p.expectSeparator('.'); err != nil {
		return nil, err
	}
	endTok, ok := p.next()
	if !ok {
		return nil, newUnexpectedEOF(p.lastLoc())
	}
	if err := p.expectSeparator(')'); err != nil {
		return nil, err
	}

	if endTok.Kind == token.Text && endTok.EqualFoldText("MAX") {
		if lo == 0 {
			return model.UnsignedMaxInteger{}, nil
		}
		return nil, newUnexpectedToken(endTok)
	}
	hi, err := parseInt(endTok)
	if err != nil {
		return nil, err
	}
	role, rerr := model.NewInteger(lo, hi)
	if rerr != nil {
		return nil, newInvalidRangeValue(startTok.Pos, startTok.Value)
	}
	return role, nil
}

// parseRange implements size_range := int ".." (int | "MAX"). A MAX upper
// bound is accepted and discarded (§4.2).
func (p *parser) parseRange() (lo, hi uint64, hasUpper bool, err error) {
	loTok, ok := p.next()
	if !ok {
		return 0, 0, false, newUnexpectedEOF(p.lastLoc())
	}
	lo, err = parseUint(loTok)
	if err != nil {
		return 0, 0, false, err
	}
	if err := p.expectSeparator('.'); err != nil {
		return 0, 0, false, err
	}
	if err := p.expectSeparator('.'); err != nil {
		return 0, 0, false, err
	}
	hiTok, ok := p.next()
	if !ok {
		return 0, 0, false, newUnexpectedEOF(p.lastLoc())
	}
	if hiTok.Kind == token.Text && hiTok.EqualFoldText("MAX") {
		return lo, 0, false, nil
	}
	hi, err = parseUint(hiTok)
	if err != nil {
		return 0, 0, false, err
	}
	return lo, hi, true, nil
}

func (p *parser) parseEnumerated() ([]string, error) {
	if err := p.expectSeparator('{'); err != nil {
		return nil, err
	}
	var variants []string
	for {
		id, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		variants = append(variants, id)

		t, ok := p.next()
		if !ok {
			return nil, newUnexpectedEOF(p.lastLoc())
		}
		if t.IsSeparator(',') {
			continue
		}
		if t.IsSeparator('}') {
			return variants, nil
		}
		return nil, newUnexpectedToken(t)
	}
}

func parseInt(t token.Token) (int64, error) {
	if t.Kind != token.Text {
		return 0, newUnexpectedToken(t)
	}
	v, err := strconv.ParseInt(t.Value, 10, 64)
	if err != nil {
		return 0, newInvalidRangeValue(t.Pos, t.Value)
	}
	return v, nil
}

func parseUint(t token.Token) (uint64, error) {
	if t.Kind != token.Text {
		return 0, newUnexpectedToken(t)
	}
	v, err := strconv.ParseUint(t.Value, 10, 64)
	if err != nil {
		return 0, newInvalidRangeValue(t.Pos, t.Value)
	}
	return v, nil
}

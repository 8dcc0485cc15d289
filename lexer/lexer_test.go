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

package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kralicky/asn1gen/lexer"
	"github.com/kralicky/asn1gen/token"
)

func text(v string) token.Token     { return token.Token{Kind: token.Text, Value: v} }
func sep(v byte) token.Token        { return token.Token{Kind: token.Separator, Value: string(v)} }

func values(toks []token.Token) []token.Token {
	out := make([]token.Token, len(toks))
	for i, t := range toks {
		out[i] = token.Token{Kind: t.Kind, Value: t.Value}
	}
	return out
}

func TestTokenizeSeparatorsNoMerge(t *testing.T) {
	got := values(lexer.Tokenize([]byte(":;=(){}.,[]")))
	want := []token.Token{
		sep(':'), sep(';'), sep('='), sep('('), sep(')'), sep('{'), sep('}'),
		sep('.'), sep(','), sep('['), sep(']'),
	}
	assert.Equal(t, want, got)
}

func TestTokenizeColonColonEquals(t *testing.T) {
	got := values(lexer.Tokenize([]byte("::=ASN{")))
	want := []token.Token{sep(':'), sep(':'), sep('='), text("ASN"), sep('{')}
	assert.Equal(t, want, got)
}

func TestTokenizeWhitespaceClasses(t *testing.T) {
	got := values(lexer.Tokenize([]byte("a b\rc\nd\te")))
	want := []token.Token{text("a"), text("b"), text("c"), text("d"), text("e")}
	assert.Equal(t, want, got)
}

func TestTokenizeLineComment(t *testing.T) {
	got := values(lexer.Tokenize([]byte("Some ::= None -- tail\n")))
	want := []token.Token{
		text("Some"), sep(':'), sep(':'), sep('='), text("None"),
	}
	assert.Equal(t, want, got)
}

func TestTokenizeBlockCommentMergesSurroundingText(t *testing.T) {
	got := values(lexer.Tokenize([]byte("Some ::= No/* */ne")))
	want := []token.Token{
		text("Some"), sep(':'), sep(':'), sep('='), text("None"),
	}
	assert.Equal(t, want, got)
}

func TestTokenizeDropsStrayControlByte(t *testing.T) {
	got := values(lexer.Tokenize([]byte("AS\x00N")))
	want := []token.Token{text("ASN")}
	assert.Equal(t, want, got)
}

func TestTokenizeEmpty(t *testing.T) {
	assert.Empty(t, lexer.Tokenize([]byte("")))
	assert.Empty(t, lexer.Tokenize([]byte("   \t\n")))
}

func TestTokenizeLocationsAdvancePastComment(t *testing.T) {
	toks := lexer.Tokenize([]byte("No/* */ne"))
	assert.Len(t, toks, 1)
	assert.Equal(t, "None", toks[0].Value)
	assert.Equal(t, token.Location{Line: 1, Column: 1}, toks[0].Pos)
}

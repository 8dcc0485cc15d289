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

// Package lexer converts raw schema text into the token stream §4.1
// describes: source locations attached to a flat stream of Text and
// Separator tokens, with comments stripped and malformed control bytes
// dropped rather than failing the run.
package lexer

import (
	"github.com/kralicky/asn1gen/reporter"
	"github.com/kralicky/asn1gen/token"
)

// separators is the fixed one-character punctuation set §4.1 rule 3
// names. Separators are atomic: they never merge with an adjacent token.
const separators = ":;=(){}.,[]'\""

// Option configures a Tokenize call.
type Option func(*config)

type config struct {
	handler *reporter.Handler
}

// WithHandler routes diagnostics (dropped control bytes) to handler
// instead of the default no-op sink.
func WithHandler(h *reporter.Handler) Option {
	return func(c *config) { c.handler = h }
}

// runeScanner walks src one byte at a time, tracking 1-based line/column
// the way the grammar's diagnostics need. Modeled on the teacher's
// runeReader mark/save/restore bookkeeping, narrowed to the one-byte
// lookahead this grammar's rules actually need.
type runeScanner struct {
	src       []byte
	pos       int
	line, col int
}

func newRuneScanner(src []byte) *runeScanner {
	return &runeScanner{src: src, line: 1, col: 1}
}

func (s *runeScanner) peek() (byte, bool) {
	if s.pos >= len(s.src) {
		return 0, false
	}
	return s.src[s.pos], true
}

func (s *runeScanner) peekAt(offset int) (byte, bool) {
	if s.pos+offset >= len(s.src) {
		return 0, false
	}
	return s.src[s.pos+offset], true
}

func (s *runeScanner) loc() token.Location {
	return token.Location{Line: s.line, Column: s.col}
}

func (s *runeScanner) advance() byte {
	c := s.src[s.pos]
	s.pos++
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return c
}

func isControl(c byte) bool {
	return c < 0x20 && c != ' ' && c != '\t' && c != '\r' && c != '\n'
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isSeparator(c byte) bool {
	for i := 0; i < len(separators); i++ {
		if separators[i] == c {
			return true
		}
	}
	return false
}

// Tokenize implements §4.1: it never fails. Unrecognized control bytes
// are dropped, with a diagnostic logged through the configured handler
// (or discarded, if none was given).
func Tokenize(src []byte, opts ...Option) []token.Token {
	cfg := config{}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.handler == nil {
		cfg.handler = reporter.NewHandler(nil)
	}

	s := newRuneScanner(src)
	var tokens []token.Token

	// pending holds an in-progress Text token (start location + bytes so
	// far), or is nil when no Text token is open.
	var pending *token.Token

	flush := func() {
		if pending != nil {
			tokens = append(tokens, *pending)
			pending = nil
		}
	}

	for {
		c, ok := s.peek()
		if !ok {
			break
		}
		loc := s.loc()

		// Rule 1: line comments "-- ... \n".
		if c == '-' {
			if next, ok2 := s.peekAt(1); ok2 && next == '-' {
				s.advance()
				s.advance()
				for {
					c2, ok3 := s.peek()
					if !ok3 || c2 == '\n' {
						break
					}
					s.advance()
				}
				continue
			}
		}

		// Rule 2: block comments "/* ... */", non-nesting.
		if c == '/' {
			if next, ok2 := s.peekAt(1); ok2 && next == '*' {
				s.advance()
				s.advance()
				for {
					c2, ok3 := s.peek()
					if !ok3 {
						break
					}
					if c2 == '*' {
						if n2, ok4 := s.peekAt(1); ok4 && n2 == '/' {
							s.advance()
							s.advance()
							break
						}
					}
					s.advance()
				}
				continue
			}
		}

		// Rule 3: separators are atomic single-character tokens.
		if isSeparator(c) {
			flush()
			s.advance()
			tokens = append(tokens, token.Token{Kind: token.Separator, Value: string(c), Pos: loc})
			continue
		}

		// Rule 4: whitespace flushes any pending Text token.
		if isWhitespace(c) {
			flush()
			s.advance()
			continue
		}

		// Dropped control byte: diagnostic, no token produced.
		if isControl(c) {
			s.advance()
			cfg.handler.Warnf(loc, "dropped unrecognized control byte 0x%02x", c)
			continue
		}

		// Rule 5: extend (or start) the pending Text token; back-to-back
		// Text runs merge by construction since nothing flushes between
		// them here.
		s.advance()
		if pending == nil {
			pending = &token.Token{Kind: token.Text, Value: string(c), Pos: loc}
		} else {
			pending.Value += string(c)
		}
	}
	flush()

	return tokens
}

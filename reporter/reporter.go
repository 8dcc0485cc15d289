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

// Package reporter carries diagnostics produced while lexing or parsing a
// schema module: errors that must abort the run, plus informational
// messages (such as a dropped control byte) that must not.
package reporter

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/kralicky/asn1gen/token"
)

// ErrorWithPos is an error annotated with the source location that caused
// it.
type ErrorWithPos interface {
	error
	Position() token.Location
	Unwrap() error
}

// Error wraps err with pos. If err already implements ErrorWithPos, it is
// returned unchanged.
func Error(pos token.Location, err error) ErrorWithPos {
	if ewp, ok := err.(ErrorWithPos); ok {
		return ewp
	}
	return errorWithPos{pos: pos, underlying: err}
}

// Errorf is like Error, but builds the underlying error from a format
// string the way fmt.Errorf does.
func Errorf(pos token.Location, format string, args ...interface{}) ErrorWithPos {
	return errorWithPos{pos: pos, underlying: fmt.Errorf(format, args...)}
}

type errorWithPos struct {
	underlying error
	pos        token.Location
}

func (e errorWithPos) Error() string       { return fmt.Sprintf("%s: %v", e.pos, e.underlying) }
func (e errorWithPos) Position() token.Location { return e.pos }
func (e errorWithPos) Unwrap() error       { return e.underlying }

var _ ErrorWithPos = errorWithPos{}

// Handler is a sink for informational diagnostics: messages logged
// through it (lexer control-byte drops) never abort the caller. It has
// no error-reporting method.
type Handler struct {
	log *logrus.Logger
}

// NewHandler builds a Handler that logs informational diagnostics to log.
// A nil log is replaced with a logger discarding all output, so library
// use stays silent unless a caller opts in.
func NewHandler(log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.New()
		log.SetOutput(discard{})
	}
	return &Handler{log: log}
}

// Warnf logs an informational diagnostic at the given location. It never
// returns an error and never aborts the caller.
func (h *Handler) Warnf(pos token.Location, format string, args ...interface{}) {
	h.log.WithField("pos", pos.String()).Warnf(format, args...)
}

// Logger returns the underlying structured logger for callers that want to
// emit their own fields.
func (h *Handler) Logger() *logrus.Logger {
	return h.log
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

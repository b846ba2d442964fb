// Copyright 2018 The CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package errors defines the single diagnostic type surfaced by the
// scanner and parser. There is no error hierarchy: lexical, grammar
// and shallow-semantic failures are all reported as an *Error,
// distinguished only by their message text.
package errors

import (
	"fmt"

	"github.com/protolang/protoschema/token"
)

// Error is the diagnostic produced when a schema fails to parse. The
// parser never recovers from one: the first Error aborts the parse.
type Error struct {
	Position token.Position
	Msg      string
}

// New creates an Error positioned at pos with a formatted message.
func New(pos token.Position, format string, args ...interface{}) *Error {
	return &Error{Position: pos, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Position.IsValid() {
		return fmt.Sprintf("%s: %s", e.Position, e.Msg)
	}
	return e.Msg
}

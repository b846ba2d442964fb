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

// Package scanner implements the lexical layer of the proto schema
// reader. It does not produce a token stream: the parser pulls
// specific lexical shapes (a word, a number, a quoted string, a
// terminator) on demand. The scanner also owns pendingDoc, the
// accumulated documentation text waiting to be attached to the next
// declaration.
package scanner

import (
	"strings"

	"github.com/protolang/protoschema/errors"
	"github.com/protolang/protoschema/literal"
	"github.com/protolang/protoschema/token"
)

// Scanner holds the lexer's state over an immutable source string.
type Scanner struct {
	filename string
	src      string

	offset    int // index of the next unread byte
	line      int // 1-based
	lineStart int // offset of the first byte of the current line

	pendingDoc string
}

// New returns a scanner positioned at the start of src.
func New(filename, src string) *Scanner {
	return &Scanner{filename: filename, src: src, line: 1}
}

// Pos returns the current source position.
func (s *Scanner) Pos() token.Position {
	return token.Position{
		Filename: s.filename,
		Offset:   s.offset,
		Line:     s.line,
		Column:   s.offset - s.lineStart + 1,
	}
}

// AtEOF reports whether the scanner has consumed the whole source.
func (s *Scanner) AtEOF() bool { return s.offset >= len(s.src) }

// Cur returns the current byte, or 0 at end of file.
func (s *Scanner) Cur() byte {
	if s.AtEOF() {
		return 0
	}
	return s.src[s.offset]
}

func (s *Scanner) advance() {
	if s.AtEOF() {
		return
	}
	c := s.src[s.offset]
	s.offset++
	if c == '\n' {
		s.line++
		s.lineStart = s.offset
	}
}

func (s *Scanner) errorf(format string, args ...interface{}) error {
	return errors.New(s.Pos(), format, args...)
}

// SkipSpaceAndComments advances past whitespace and comments,
// accumulating documentation text from line comments and "/**" block
// comments into pendingDoc as it goes.
func (s *Scanner) SkipSpaceAndComments() error {
	for {
		switch {
		case !s.AtEOF() && isSpace(s.Cur()):
			s.advance()
		case s.hasPrefix("//"):
			s.consumeLineComment()
		case s.hasPrefix("/*"):
			if err := s.consumeBlockComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (s *Scanner) hasPrefix(p string) bool {
	return strings.HasPrefix(s.src[s.offset:], p)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func (s *Scanner) skipWhitespaceOnly() {
	for !s.AtEOF() && isSpace(s.Cur()) {
		s.advance()
	}
}

func (s *Scanner) appendDoc(text string) {
	if s.pendingDoc == "" {
		s.pendingDoc = text
	} else {
		s.pendingDoc = s.pendingDoc + "\n" + text
	}
}

func (s *Scanner) consumeLineComment() {
	s.advance()
	s.advance()
	start := s.offset
	for !s.AtEOF() && s.Cur() != '\n' {
		s.advance()
	}
	body := strings.TrimSuffix(s.src[start:s.offset], "\r")
	body = strings.TrimPrefix(body, " ")
	s.appendDoc(body)
}

func (s *Scanner) consumeBlockComment() error {
	s.advance()
	s.advance()
	start := s.offset
	for {
		if s.AtEOF() {
			return s.errorf("unterminated block comment")
		}
		if s.Cur() == '*' && s.offset+1 < len(s.src) && s.src[s.offset+1] == '/' {
			content := s.src[start:s.offset]
			s.advance()
			s.advance()
			if strings.HasPrefix(content, "*") {
				s.appendDoc(processDocBlock(content[1:]))
			}
			return nil
		}
		s.advance()
	}
}

// processDocBlock implements the "/**...*/" documentation-stripping
// rule: strip a common leading "* " from every line if every
// non-blank line has one, otherwise just trim leading whitespace from
// every line; then drop trailing blank lines.
func processDocBlock(content string) string {
	lines := strings.Split(content, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], "\r")
	}
	asteriskMode := true
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(trimmed, "*") {
			asteriskMode = false
			break
		}
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if !asteriskMode {
			out[i] = trimmed
			continue
		}
		if trimmed == "" {
			out[i] = ""
			continue
		}
		out[i] = strings.TrimPrefix(trimmed[1:], " ")
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	for len(out) > 0 && out[0] == "" {
		out = out[1:]
	}
	return strings.Join(out, "\n")
}

// ConsumePendingDoc returns and clears the accumulated documentation.
func (s *Scanner) ConsumePendingDoc() string {
	d := s.pendingDoc
	s.pendingDoc = ""
	return d
}

// TrailingComment looks, on the current physical line only, for a
// "//" comment and — if found — consumes and returns its body. It
// never crosses a newline and never touches pendingDoc: a caller that
// finds nothing here leaves the scanner exactly as it was.
func (s *Scanner) TrailingComment() string {
	i := s.offset
	for i < len(s.src) && (s.src[i] == ' ' || s.src[i] == '\t') {
		i++
	}
	if i+1 >= len(s.src) || s.src[i] != '/' || s.src[i+1] != '/' {
		return ""
	}
	s.offset = i
	s.advance()
	s.advance()
	start := s.offset
	for !s.AtEOF() && s.Cur() != '\n' {
		s.advance()
	}
	body := strings.TrimSuffix(s.src[start:s.offset], "\r")
	return strings.TrimPrefix(body, " ")
}

func isIdentStart(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c) || c == '.'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Word reads an identifier-like token: ASCII letters, digits, '_' and
// '.'. It is used for keywords, type names, option names and field
// names.
func (s *Scanner) Word() (string, error) {
	if s.AtEOF() || !isIdentStart(s.Cur()) {
		return "", s.errorf("expected an identifier")
	}
	start := s.offset
	for !s.AtEOF() && isIdentPart(s.Cur()) {
		s.advance()
	}
	return s.src[start:s.offset], nil
}

// RawNumber reads a decimal, hexadecimal (0x/0X) or octal (leading 0)
// integer literal and returns its exact source spelling, unevaluated.
func (s *Scanner) RawNumber() (string, error) {
	if s.AtEOF() || !isDigit(s.Cur()) {
		return "", s.errorf("expected a number")
	}
	start := s.offset
	if s.Cur() == '0' {
		s.advance()
		if !s.AtEOF() && (s.Cur() == 'x' || s.Cur() == 'X') {
			s.advance()
			for !s.AtEOF() && literal.IsHexDigit(s.Cur()) {
				s.advance()
			}
		} else {
			for !s.AtEOF() && s.Cur() >= '0' && s.Cur() <= '7' {
				s.advance()
			}
		}
	} else {
		for !s.AtEOF() && isDigit(s.Cur()) {
			s.advance()
		}
	}
	return s.src[start:s.offset], nil
}

// Number reads an integer literal and returns its value.
func (s *Scanner) Number() (int64, error) {
	text, err := s.RawNumber()
	if err != nil {
		return 0, err
	}
	v, err := literal.ParseTag(text)
	if err != nil {
		return 0, s.errorf("%v", err)
	}
	return v, nil
}

// QuotedString consumes a double-quoted string literal, decoding
// escapes, and transparently concatenates adjacent quoted runs
// separated only by whitespace.
func (s *Scanner) QuotedString() (string, error) {
	var sb strings.Builder
	for {
		if s.AtEOF() || s.Cur() != '"' {
			return "", s.errorf("expected a string literal")
		}
		s.advance()
		for {
			if s.AtEOF() || s.Cur() == '\n' {
				return "", s.errorf("unterminated string literal")
			}
			c := s.Cur()
			if c == '"' {
				s.advance()
				break
			}
			if c == '\\' {
				s.advance()
				if s.AtEOF() {
					return "", s.errorf("unterminated escape sequence")
				}
				b, n, err := literal.DecodeEscape(s.src[s.offset:])
				if err != nil {
					return "", s.errorf("%v", err)
				}
				sb.WriteByte(b)
				for i := 0; i < n; i++ {
					s.advance()
				}
				continue
			}
			sb.WriteByte(c)
			s.advance()
		}

		saveOffset, saveLine, saveLineStart := s.offset, s.line, s.lineStart
		s.skipWhitespaceOnly()
		if s.AtEOF() || s.Cur() != '"' {
			s.offset, s.line, s.lineStart = saveOffset, saveLine, saveLineStart
			break
		}
	}
	return sb.String(), nil
}

// Expect consumes ch if it is the current byte, failing otherwise.
func (s *Scanner) Expect(ch byte) error {
	if s.AtEOF() || s.Cur() != ch {
		return s.errorf("expected %q", string(ch))
	}
	s.advance()
	return nil
}

// Peek reports whether ch is the current byte, without consuming it.
func (s *Scanner) Peek(ch byte) bool {
	return !s.AtEOF() && s.Cur() == ch
}

// mark is an opaque checkpoint of the scanner's position, used to back
// out of a tentative keyword lookahead (e.g. "to", "max", "public").
type mark struct {
	offset, line, lineStart int
}

func (s *Scanner) mark() mark {
	return mark{s.offset, s.line, s.lineStart}
}

func (s *Scanner) reset(m mark) {
	s.offset, s.line, s.lineStart = m.offset, m.line, m.lineStart
}

// TryWord reports whether the next word read from the scanner equals
// want, consuming it if so and rewinding the scanner otherwise.
func (s *Scanner) TryWord(want string) bool {
	m := s.mark()
	w, err := s.Word()
	if err == nil && w == want {
		return true
	}
	s.reset(m)
	return false
}

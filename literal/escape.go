// Copyright 2019 CUE Authors
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

// Package literal decodes the scalar lexical forms of a proto schema:
// the backslash escapes inside quoted strings and the decimal, hex and
// octal spellings of an integer tag.
package literal

import (
	"fmt"
	"strconv"
)

// ErrNoHexDigit is returned by DecodeEscape when \x or \X is not
// followed by at least one hexadecimal digit.
var ErrNoHexDigit = fmt.Errorf("expected a digit after \\x or \\X")

// DecodeEscape decodes a single backslash escape. s holds the text
// immediately following the backslash (s[0] is the escape-introducing
// character, e.g. 'n', 'x', '1', '\\'). It returns the decoded byte and
// the number of bytes of s consumed.
//
// Supported forms: the named control escapes (\a \b \f \n \r \t \v),
// the literal escapes (\\ \' \"), 1-3 octal digits, \x or \X followed
// by 1-2 hex digits, and — as a fallback — any other \c which decodes
// to c itself.
func DecodeEscape(s string) (b byte, n int, err error) {
	if len(s) == 0 {
		return 0, 0, fmt.Errorf("unterminated escape sequence")
	}
	switch c := s[0]; c {
	case 'a':
		return '\a', 1, nil
	case 'b':
		return '\b', 1, nil
	case 'f':
		return '\f', 1, nil
	case 'n':
		return '\n', 1, nil
	case 'r':
		return '\r', 1, nil
	case 't':
		return '\t', 1, nil
	case 'v':
		return '\v', 1, nil
	case '\\', '\'', '"':
		return c, 1, nil
	case 'x', 'X':
		j := 1
		for j <= 2 && j < len(s) && isHexDigit(s[j]) {
			j++
		}
		if j == 1 {
			return 0, 0, ErrNoHexDigit
		}
		v, perr := strconv.ParseUint(s[1:j], 16, 8)
		if perr != nil {
			return 0, 0, perr
		}
		return byte(v), j, nil
	default:
		if c >= '0' && c <= '7' {
			j := 1
			for j < 3 && j < len(s) && s[j] >= '0' && s[j] <= '7' {
				j++
			}
			v, perr := strconv.ParseUint(s[:j], 8, 8)
			if perr != nil {
				return 0, 0, perr
			}
			return byte(v), j, nil
		}
		// Any other escaped character stands for itself.
		return c, 1, nil
	}
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

// IsHexDigit reports whether c is an ASCII hexadecimal digit.
func IsHexDigit(c byte) bool { return isHexDigit(c) }

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

package literal

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestDecodeEscape(t *testing.T) {
	testCases := []struct {
		in      string
		wantB   byte
		wantN   int
		wantErr bool
	}{
		{"a", '\a', 1, false},
		{"b", '\b', 1, false},
		{"f", '\f', 1, false},
		{"n", '\n', 1, false},
		{"r", '\r', 1, false},
		{"t", '\t', 1, false},
		{"v", '\v', 1, false},
		{`\`, '\\', 1, false},
		{`'`, '\'', 1, false},
		{`"`, '"', 1, false},
		{"061", 0o61, 3, false},
		{"1", 1, 1, false},
		{"377", 0o377, 3, false},
		{"x61", 0x61, 3, false},
		{"X6", 0x6, 2, false},
		{"q", 'q', 1, false}, // any other \c stands for itself
		{"x", 0, 0, true},
		{"xZZ", 0, 0, true},
	}
	for _, tc := range testCases {
		b, n, err := DecodeEscape(tc.in)
		if tc.wantErr {
			qt.Assert(t, qt.IsNotNil(err))
			continue
		}
		qt.Assert(t, qt.IsNil(err))
		qt.Assert(t, qt.Equals(b, tc.wantB))
		qt.Assert(t, qt.Equals(n, tc.wantN))
	}
}

func TestDecodeEscapeErrorMessage(t *testing.T) {
	_, _, err := DecodeEscape("x")
	qt.Assert(t, qt.ErrorMatches(err, `expected a digit after \\x or \\X`))
}

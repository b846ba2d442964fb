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

package scanner

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestSkipSpaceAndCommentsLineDoc(t *testing.T) {
	s := New("f.proto", "// Hello\nmessage")
	qt.Assert(t, qt.IsNil(s.SkipSpaceAndComments()))
	qt.Assert(t, qt.Equals(s.ConsumePendingDoc(), "Hello"))
}

func TestConsecutiveLineCommentsAccumulate(t *testing.T) {
	s := New("f.proto", "// one\n// two\nmessage")
	qt.Assert(t, qt.IsNil(s.SkipSpaceAndComments()))
	qt.Assert(t, qt.Equals(s.ConsumePendingDoc(), "one\ntwo"))
}

func TestDocBlockWithAsteriskGutter(t *testing.T) {
	src := "/**\n * Hello\n * World\n */\nmessage"
	s := New("f.proto", src)
	qt.Assert(t, qt.IsNil(s.SkipSpaceAndComments()))
	qt.Assert(t, qt.Equals(s.ConsumePendingDoc(), "Hello\nWorld"))
}

func TestDocBlockWithoutGutterTrimsWholesale(t *testing.T) {
	src := "/**\n   Hello\n     World\n */\nmessage"
	s := New("f.proto", src)
	qt.Assert(t, qt.IsNil(s.SkipSpaceAndComments()))
	qt.Assert(t, qt.Equals(s.ConsumePendingDoc(), "Hello\nWorld"))
}

func TestOrdinaryBlockCommentIsNotDoc(t *testing.T) {
	src := "/* not doc */\nmessage"
	s := New("f.proto", src)
	qt.Assert(t, qt.IsNil(s.SkipSpaceAndComments()))
	qt.Assert(t, qt.Equals(s.ConsumePendingDoc(), ""))
}

func TestTrailingCommentSameLineOnly(t *testing.T) {
	s := New("f.proto", "; // trail\nnext")
	qt.Assert(t, qt.IsNil(s.Expect(';')))
	qt.Assert(t, qt.Equals(s.TrailingComment(), "trail"))

	s2 := New("f.proto", ";\n// not trailing\nnext")
	qt.Assert(t, qt.IsNil(s2.Expect(';')))
	qt.Assert(t, qt.Equals(s2.TrailingComment(), ""))
	// The probe must not have consumed anything or polluted pendingDoc.
	qt.Assert(t, qt.IsNil(s2.SkipSpaceAndComments()))
	qt.Assert(t, qt.Equals(s2.ConsumePendingDoc(), "not trailing"))
}

func TestWord(t *testing.T) {
	s := New("f.proto", "foo.Bar_1 ")
	w, err := s.Word()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(w, "foo.Bar_1"))
}

func TestNumberBases(t *testing.T) {
	for _, tc := range []struct {
		src  string
		want int64
	}{
		{"16", 16},
		{"0x10", 16},
		{"0X10", 16},
		{"020", 16},
		{"0", 0},
	} {
		s := New("f.proto", tc.src)
		v, err := s.Number()
		qt.Assert(t, qt.IsNil(err))
		qt.Assert(t, qt.Equals(v, tc.want))
	}
}

func TestQuotedStringEscapes(t *testing.T) {
	s := New("f.proto", `"\a\b\f\n\r\t\v"`)
	got, err := s.QuotedString()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got, "\a\b\f\n\r\t\v"))
}

func TestQuotedStringHexEscapeError(t *testing.T) {
	s := New("f.proto", `"\xW"`)
	_, err := s.QuotedString()
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.ErrorMatches(err, `.*expected a digit after \\x or \\X.*`))
}

func TestQuotedStringConcatenation(t *testing.T) {
	s := New("f.proto", `"foo" "bar"`)
	got, err := s.QuotedString()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got, "foobar"))
}

func TestCRLFIsTreatedAsSingleNewline(t *testing.T) {
	s := New("f.proto", "a\r\nb")
	qt.Assert(t, qt.IsNil(s.Expect('a')))
	qt.Assert(t, qt.Equals(s.Pos().Line, 1))
	qt.Assert(t, qt.IsNil(s.SkipSpaceAndComments()))
	qt.Assert(t, qt.Equals(s.Pos().Line, 2))
	qt.Assert(t, qt.IsNil(s.Expect('b')))
}

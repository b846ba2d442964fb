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

func TestParseTag(t *testing.T) {
	testCases := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"1", 1},
		{"16", 16},
		{"0x10", 16},
		{"0X10", 16},
		{"020", 16},
	}
	for _, tc := range testCases {
		got, err := ParseTag(tc.in)
		qt.Assert(t, qt.IsNil(err))
		qt.Assert(t, qt.Equals(got, tc.want))
	}
}

func TestParseTagInvalid(t *testing.T) {
	_, err := ParseTag("0x")
	qt.Assert(t, qt.IsNotNil(err))
}

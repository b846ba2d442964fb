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

package ast

// Kind discriminates the three shapes an option Value can take.
type Kind int

const (
	// KindScalar holds a bare identifier, a number in its original
	// textual form, an escape-decoded string, or true/false.
	KindScalar Kind = iota
	// KindList holds an ordered sequence of values.
	KindList
	// KindMap holds an ordered mapping from name to value.
	KindMap
)

// Value is a recursive option value: a scalar, an ordered list of
// values, or an ordered map from string to value. Exactly one of
// Scalar, List or Map is meaningful, selected by Kind.
type Value struct {
	Kind   Kind
	Scalar string
	List   []Value
	Map    *OrderedMap
}

// String returns the scalar value and reports whether v is a scalar.
func (v Value) String() (string, bool) {
	if v.Kind != KindScalar {
		return "", false
	}
	return v.Scalar, true
}

// Equal reports whether v and other are structurally equal. List
// comparison is order-sensitive (it models a sequence); map comparison
// is order-insensitive (it models a mapping), per OrderedMap.Equal.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindScalar:
		return v.Scalar == other.Scalar
	case KindList:
		if len(v.List) != len(other.List) {
			return false
		}
		for i, e := range v.List {
			if !e.Equal(other.List[i]) {
				return false
			}
		}
		return true
	case KindMap:
		return v.Map.Equal(other.Map)
	}
	return false
}

// ScalarValue constructs a scalar Value.
func ScalarValue(s string) Value { return Value{Kind: KindScalar, Scalar: s} }

// ListValue constructs a list Value.
func ListValue(items ...Value) Value { return Value{Kind: KindList, List: items} }

// MapValue constructs a map Value from an existing OrderedMap.
func MapValue(m *OrderedMap) Value { return Value{Kind: KindMap, Map: m} }

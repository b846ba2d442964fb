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

// OrderedMap is a string-keyed map that remembers the order in which
// keys were first inserted. It backs every option mapping in the
// model: callers that iterate see source order, callers that compare
// two maps for equality get set semantics.
type OrderedMap struct {
	keys []string
	vals map[string]Value
}

// NewOrderedMap returns an empty ordered map.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{vals: map[string]Value{}}
}

// Get returns the value stored under key, if any.
func (m *OrderedMap) Get(key string) (Value, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Set stores value under key, appending key to the iteration order the
// first time it is seen.
func (m *OrderedMap) Set(key string, value Value) {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = value
}

// Keys returns the keys in insertion order.
func (m *OrderedMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of entries.
func (m *OrderedMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Clone returns a deep copy of m.
func (m *OrderedMap) Clone() *OrderedMap {
	out := NewOrderedMap()
	if m == nil {
		return out
	}
	for _, k := range m.keys {
		out.Set(k, m.vals[k])
	}
	return out
}

// Equal reports whether m and other hold the same keys and, for every
// key, structurally equal values. Comparison is order-insensitive:
// two maps built from the same entries in different orders are equal.
func (m *OrderedMap) Equal(other *OrderedMap) bool {
	if m.Len() != other.Len() {
		return false
	}
	for _, k := range m.Keys() {
		v1, _ := m.Get(k)
		v2, ok := other.Get(k)
		if !ok || !v1.Equal(v2) {
			return false
		}
	}
	return true
}

// MergeValue inserts value under key, folding it into any value
// already stored under that key rather than clobbering it:
//
//   - if neither the existing nor the new value is absent, and both
//     are maps, the maps are merged recursively (matching keys fold,
//     non-matching keys are appended in the order they are seen);
//   - otherwise a second occurrence turns the slot into a list, and a
//     third or later occurrence appends to that list.
//
// This single rule implements both the aggregate-literal merging
// ("{k: 1 k: 2}" folds to a list) and the option-list merging
// ("(x).a = 1, (x).b = 2" folds into x: {a: 1, b: 2}") described for
// structured options: the latter is just the former applied one path
// segment at a time via MergePath.
func (m *OrderedMap) MergeValue(key string, value Value) {
	existing, ok := m.Get(key)
	if !ok {
		m.Set(key, value)
		return
	}
	if existing.Kind == KindMap && value.Kind == KindMap {
		merged := existing.Map.Clone()
		for _, k := range value.Map.Keys() {
			v, _ := value.Map.Get(k)
			merged.MergeValue(k, v)
		}
		m.Set(key, Value{Kind: KindMap, Map: merged})
		return
	}
	if existing.Kind == KindList {
		m.Set(key, Value{Kind: KindList, List: append(append([]Value{}, existing.List...), value)})
		return
	}
	m.Set(key, Value{Kind: KindList, List: []Value{existing, value}})
}

// MergePath inserts value at the end of the dotted path, creating
// intermediate maps as needed, and merges the top-level key into m
// using MergeValue. A single-element path is equivalent to calling
// MergeValue directly.
func (m *OrderedMap) MergePath(path []string, value Value) {
	if len(path) == 0 {
		return
	}
	wrapped := wrapPath(path[1:], value)
	m.MergeValue(path[0], wrapped)
}

func wrapPath(path []string, value Value) Value {
	if len(path) == 0 {
		return value
	}
	sub := NewOrderedMap()
	sub.Set(path[0], wrapPath(path[1:], value))
	return Value{Kind: KindMap, Map: sub}
}

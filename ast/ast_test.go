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

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestQualifiedName(t *testing.T) {
	qt.Assert(t, qt.Equals(QualifiedName("", "M"), "M"))
	qt.Assert(t, qt.Equals(QualifiedName("pkg", "M"), "pkg.M"))
	qt.Assert(t, qt.Equals(QualifiedName("pkg.Outer", "Inner"), "pkg.Outer.Inner"))
}

func TestFieldOptionMapMergesSubPaths(t *testing.T) {
	f := &Field{
		Name: "n",
		Options: []Option{
			{Name: "validation.range.min", Value: ScalarValue("1")},
			{Name: "validation.range.max", Value: ScalarValue("2")},
		},
	}
	got := f.OptionMap()
	want := NewOrderedMap()
	sub := NewOrderedMap()
	sub.Set("min", ScalarValue("1"))
	sub.Set("max", ScalarValue("2"))
	rng := NewOrderedMap()
	rng.Set("range", MapValue(sub))
	want.Set("validation", MapValue(rng))

	gotSub, ok := got.Get("validation")
	qt.Assert(t, qt.IsTrue(ok))
	wantSub, _ := want.Get("validation")
	qt.Assert(t, qt.IsTrue(gotSub.Equal(wantSub)))
}

func TestOptionMapAssociativity(t *testing.T) {
	// (a.b = 1, a.c = 2)
	dotted := optionsMap([]Option{
		{Name: "a.b", Value: ScalarValue("1")},
		{Name: "a.c", Value: ScalarValue("2")},
	})

	// (a = {b: 1, c: 2})
	single := NewOrderedMap()
	single.Set("b", ScalarValue("1"))
	single.Set("c", ScalarValue("2"))
	combined := optionsMap([]Option{{Name: "a", Value: MapValue(single)}})

	// (a = {b: 1}, a = {c: 2})
	m1 := NewOrderedMap()
	m1.Set("b", ScalarValue("1"))
	m2 := NewOrderedMap()
	m2.Set("c", ScalarValue("2"))
	split := optionsMap([]Option{
		{Name: "a", Value: MapValue(m1)},
		{Name: "a", Value: MapValue(m2)},
	})

	va, _ := dotted.Get("a")
	vb, _ := combined.Get("a")
	vc, _ := split.Get("a")
	qt.Assert(t, qt.IsTrue(va.Equal(vb)))
	qt.Assert(t, qt.IsTrue(vb.Equal(vc)))
}

func TestGetDefaultAndIsDeprecated(t *testing.T) {
	f := &Field{Options: []Option{
		{Name: "default", Value: ScalarValue("x")},
		{Name: "deprecated", Value: ScalarValue("true")},
	}}
	v, ok := f.GetDefault()
	qt.Assert(t, qt.IsTrue(ok))
	s, _ := v.String()
	qt.Assert(t, qt.Equals(s, "x"))
	qt.Assert(t, qt.IsTrue(f.IsDeprecated()))

	f2 := &Field{}
	_, ok = f2.GetDefault()
	qt.Assert(t, qt.IsFalse(ok))
	qt.Assert(t, qt.IsFalse(f2.IsDeprecated()))
}

func TestMessageTypeEqualRecurses(t *testing.T) {
	inner := &MessageType{Name: "Inner", QualifiedName: "Outer.Inner"}
	m1 := &MessageType{
		Name:          "Outer",
		QualifiedName: "Outer",
		Fields:        []*Field{{Name: "f", Tag: 1}},
		Nested:        []Type{inner},
	}
	m2 := &MessageType{
		Name:          "Outer",
		QualifiedName: "Outer",
		Fields:        []*Field{{Name: "f", Tag: 1}},
		Nested:        []Type{&MessageType{Name: "Inner", QualifiedName: "Outer.Inner"}},
	}
	qt.Assert(t, qt.IsTrue(m1.Equal(m2)))

	m2.Fields[0].Tag = 2
	qt.Assert(t, qt.IsFalse(m1.Equal(m2)))
}

func TestOrderedMapEqualIsOrderInsensitive(t *testing.T) {
	a := NewOrderedMap()
	a.Set("x", ScalarValue("1"))
	a.Set("y", ScalarValue("2"))

	b := NewOrderedMap()
	b.Set("y", ScalarValue("2"))
	b.Set("x", ScalarValue("1"))

	qt.Assert(t, qt.IsTrue(a.Equal(b)))
	qt.Assert(t, qt.DeepEquals(a.Keys(), []string{"x", "y"}))
	qt.Assert(t, qt.DeepEquals(b.Keys(), []string{"y", "x"}))
}

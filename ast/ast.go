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

// Package ast defines the abstract syntax tree for a parsed Protocol
// Buffers (proto2-era) schema. Every value here is built bottom-up by
// the parser during a single pass and is immutable once returned: a
// ProtoFile transitively owns everything reachable from it.
package ast

// Label is the proto2 field label.
type Label int

const (
	Required Label = iota
	Optional
	Repeated
)

func (l Label) String() string {
	switch l {
	case Required:
		return "required"
	case Optional:
		return "optional"
	case Repeated:
		return "repeated"
	}
	return "unknown"
}

// MaxTag is the sentinel value an "extensions N to max;" range resolves
// to: the largest tag number the wire format can carry.
const MaxTag = 1<<29 - 1

// Option is a single `name = value` option as it appeared in source.
// Name is the fully dotted form: parentheses around an extension name
// are stripped and any trailing ".sub.path" is appended, so
// "(validation.range).min" is stored as "validation.range.min".
type Option struct {
	Name string
	Value
	Doc string
}

// Equal reports whether two options are structurally equal.
func (o Option) Equal(other Option) bool {
	return o.Name == other.Name && o.Value.Equal(other.Value) && o.Doc == other.Doc
}

func optionsEqual(a, b []Option) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// optionsMap folds a list of options into the merged mapping view
// described for option-list and aggregate merging: repeated names
// (after the dotted path is split) fold together rather than
// overwrite.
func optionsMap(opts []Option) *OrderedMap {
	m := NewOrderedMap()
	for _, o := range opts {
		m.MergePath(splitDotted(o.Name), o.Value)
	}
	return m
}

func splitDotted(name string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(name); i++ {
		if name[i] == '.' {
			parts = append(parts, name[start:i])
			start = i + 1
		}
	}
	parts = append(parts, name[start:])
	return parts
}

// ExtensionsRange reserves [Start, End] for external extenders. End is
// MaxTag when the source said "max".
type ExtensionsRange struct {
	Start int64
	End   int64
	Doc   string
}

func (e ExtensionsRange) Equal(other ExtensionsRange) bool {
	return e.Start == other.Start && e.End == other.End && e.Doc == other.Doc
}

// Field is a single field declaration inside a message or extend
// block.
type Field struct {
	Label   Label
	Type    string // unresolved, textual type name
	Name    string
	Tag     int64
	Doc     string
	Options []Option
}

// Equal reports structural equality.
func (f *Field) Equal(other *Field) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.Label == other.Label && f.Type == other.Type && f.Name == other.Name &&
		f.Tag == other.Tag && f.Doc == other.Doc && optionsEqual(f.Options, other.Options)
}

// OptionMap returns the field's options as a merged, ordered mapping.
func (f *Field) OptionMap() *OrderedMap { return optionsMap(f.Options) }

// GetDefault returns the value of the option named exactly "default",
// if present.
func (f *Field) GetDefault() (Value, bool) {
	for _, o := range f.Options {
		if o.Name == "default" {
			return o.Value, true
		}
	}
	return Value{}, false
}

// IsDeprecated reports whether the field carries `[deprecated = true]`.
func (f *Field) IsDeprecated() bool {
	for _, o := range f.Options {
		if o.Name == "deprecated" {
			if s, ok := o.Value.String(); ok && s == "true" {
				return true
			}
		}
	}
	return false
}

// EnumValue is one `NAME = TAG [options];` entry inside an enum body.
type EnumValue struct {
	Name    string
	Tag     int64
	Doc     string
	Options []Option
}

func (e *EnumValue) Equal(other *EnumValue) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.Name == other.Name && e.Tag == other.Tag && e.Doc == other.Doc &&
		optionsEqual(e.Options, other.Options)
}

// OptionMap returns the enum value's options as a merged mapping.
func (e *EnumValue) OptionMap() *OrderedMap { return optionsMap(e.Options) }

// Type is the closed sum of declarations that can appear wherever a
// message or enum is legal: at file scope or nested inside a message.
// The only dispatch site in this package is TypeEqual; consumers write
// their own type switches over it, so a tagged interface is preferred
// over a class hierarchy.
type Type interface {
	typeName() string
	qualifiedName() string
	isType()
}

// MessageType is a `message NAME { ... }` declaration.
type MessageType struct {
	Name            string
	QualifiedName   string
	Doc             string
	Fields          []*Field
	Nested          []Type
	ExtensionRanges []ExtensionsRange
	Options         []Option
}

func (m *MessageType) isType()               {}
func (m *MessageType) typeName() string      { return m.Name }
func (m *MessageType) qualifiedName() string { return m.QualifiedName }

// OptionMap returns the message's own options as a merged mapping.
func (m *MessageType) OptionMap() *OrderedMap { return optionsMap(m.Options) }

// Equal reports deep structural equality, recursing into nested types.
func (m *MessageType) Equal(other *MessageType) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.Name != other.Name || m.QualifiedName != other.QualifiedName || m.Doc != other.Doc {
		return false
	}
	if len(m.Fields) != len(other.Fields) || len(m.Nested) != len(other.Nested) ||
		len(m.ExtensionRanges) != len(other.ExtensionRanges) || !optionsEqual(m.Options, other.Options) {
		return false
	}
	for i, f := range m.Fields {
		if !f.Equal(other.Fields[i]) {
			return false
		}
	}
	for i, r := range m.ExtensionRanges {
		if !r.Equal(other.ExtensionRanges[i]) {
			return false
		}
	}
	for i, t := range m.Nested {
		if !TypeEqual(t, other.Nested[i]) {
			return false
		}
	}
	return true
}

// EnumType is an `enum NAME { ... }` declaration.
type EnumType struct {
	Name          string
	QualifiedName string
	Doc           string
	Values        []*EnumValue
}

func (e *EnumType) isType()               {}
func (e *EnumType) typeName() string      { return e.Name }
func (e *EnumType) qualifiedName() string { return e.QualifiedName }

func (e *EnumType) Equal(other *EnumType) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.Name != other.Name || e.QualifiedName != other.QualifiedName || e.Doc != other.Doc {
		return false
	}
	if len(e.Values) != len(other.Values) {
		return false
	}
	for i, v := range e.Values {
		if !v.Equal(other.Values[i]) {
			return false
		}
	}
	return true
}

// TypeEqual compares two Type values of possibly different dynamic
// kinds; dispatch site for the Message|Enum sum.
func TypeEqual(a, b Type) bool {
	switch x := a.(type) {
	case *MessageType:
		y, ok := b.(*MessageType)
		return ok && x.Equal(y)
	case *EnumType:
		y, ok := b.(*EnumType)
		return ok && x.Equal(y)
	default:
		return a == b
	}
}

// ExtendDeclaration is an `extend TYPENAME { ... }` block adding fields
// to a message declared elsewhere.
type ExtendDeclaration struct {
	Name          string
	QualifiedName string
	Doc           string
	Fields        []*Field
}

func (e *ExtendDeclaration) Equal(other *ExtendDeclaration) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.Name != other.Name || e.QualifiedName != other.QualifiedName || e.Doc != other.Doc {
		return false
	}
	if len(e.Fields) != len(other.Fields) {
		return false
	}
	for i, f := range e.Fields {
		if !f.Equal(other.Fields[i]) {
			return false
		}
	}
	return true
}

// Method is a single `rpc NAME (REQ) returns (RESP);` entry.
type Method struct {
	Name         string
	Doc          string
	RequestType  string
	ResponseType string
	Options      []Option
}

func (me *Method) Equal(other *Method) bool {
	if me == nil || other == nil {
		return me == other
	}
	return me.Name == other.Name && me.Doc == other.Doc &&
		me.RequestType == other.RequestType && me.ResponseType == other.ResponseType &&
		optionsEqual(me.Options, other.Options)
}

// OptionMap returns the method's options as a merged mapping.
func (me *Method) OptionMap() *OrderedMap { return optionsMap(me.Options) }

// Service is a `service NAME { ... }` declaration.
type Service struct {
	Name          string
	QualifiedName string
	Doc           string
	Methods       []*Method
}

func (s *Service) Equal(other *Service) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.Name != other.Name || s.QualifiedName != other.QualifiedName || s.Doc != other.Doc {
		return false
	}
	if len(s.Methods) != len(other.Methods) {
		return false
	}
	for i, me := range s.Methods {
		if !me.Equal(other.Methods[i]) {
			return false
		}
	}
	return true
}

// ProtoFile is the root of the tree returned by a successful parse.
type ProtoFile struct {
	Filename      string
	Package       string
	Imports       []string
	PublicImports []string
	Types         []Type
	Services      []*Service
	Options       []Option
	ExtendDecls   []*ExtendDeclaration
}

// OptionMap returns the file-level options as a merged mapping.
func (p *ProtoFile) OptionMap() *OrderedMap { return optionsMap(p.Options) }

// Equal reports deep structural equality between two proto files.
func (p *ProtoFile) Equal(other *ProtoFile) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.Filename != other.Filename || p.Package != other.Package {
		return false
	}
	if !stringsEqual(p.Imports, other.Imports) || !stringsEqual(p.PublicImports, other.PublicImports) {
		return false
	}
	if len(p.Types) != len(other.Types) || len(p.Services) != len(other.Services) ||
		len(p.ExtendDecls) != len(other.ExtendDecls) || !optionsEqual(p.Options, other.Options) {
		return false
	}
	for i, t := range p.Types {
		if !TypeEqual(t, other.Types[i]) {
			return false
		}
	}
	for i, s := range p.Services {
		if !s.Equal(other.Services[i]) {
			return false
		}
	}
	for i, e := range p.ExtendDecls {
		if !e.Equal(other.ExtendDecls[i]) {
			return false
		}
	}
	return true
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// QualifiedName composes a child's fully-qualified name from its
// lexical scope prefix: "" at file scope with no package, "pkg" at
// file scope with a package, or "pkg.Outer" / "Outer" when nested.
func QualifiedName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

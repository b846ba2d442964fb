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

// Package protoyaml renders a parsed schema to YAML: a plain,
// language-agnostic view of the same tree held by package ast, for
// tools that would rather read a document than link against Go types.
package protoyaml

import (
	"gopkg.in/yaml.v3"

	"github.com/protolang/protoschema/ast"
)

type file struct {
	Package       string     `yaml:"package,omitempty"`
	Imports       []string   `yaml:"imports,omitempty"`
	PublicImports []string   `yaml:"publicImports,omitempty"`
	Options       yaml.Node  `yaml:"options,omitempty"`
	Messages      []*message `yaml:"messages,omitempty"`
	Enums         []*enum    `yaml:"enums,omitempty"`
	Services      []*service `yaml:"services,omitempty"`
	Extends       []*extend  `yaml:"extends,omitempty"`
}

type message struct {
	Name       string     `yaml:"name"`
	Doc        string     `yaml:"doc,omitempty"`
	Fields     []*field   `yaml:"fields,omitempty"`
	Messages   []*message `yaml:"messages,omitempty"`
	Enums      []*enum    `yaml:"enums,omitempty"`
	Extensions []extRange `yaml:"extensions,omitempty"`
	Options    yaml.Node  `yaml:"options,omitempty"`
}

type extRange struct {
	Start int64 `yaml:"start"`
	End   int64 `yaml:"end"`
}

type field struct {
	Label   string    `yaml:"label"`
	Type    string    `yaml:"type"`
	Name    string    `yaml:"name"`
	Tag     int64     `yaml:"tag"`
	Doc     string    `yaml:"doc,omitempty"`
	Options yaml.Node `yaml:"options,omitempty"`
}

type enum struct {
	Name   string       `yaml:"name"`
	Doc    string       `yaml:"doc,omitempty"`
	Values []*enumValue `yaml:"values,omitempty"`
}

type enumValue struct {
	Name    string    `yaml:"name"`
	Tag     int64     `yaml:"tag"`
	Doc     string    `yaml:"doc,omitempty"`
	Options yaml.Node `yaml:"options,omitempty"`
}

type service struct {
	Name    string    `yaml:"name"`
	Doc     string    `yaml:"doc,omitempty"`
	Methods []*method `yaml:"methods,omitempty"`
}

type method struct {
	Name     string    `yaml:"name"`
	Doc      string    `yaml:"doc,omitempty"`
	Request  string    `yaml:"request"`
	Response string    `yaml:"response"`
	Options  yaml.Node `yaml:"options,omitempty"`
}

type extend struct {
	Name   string   `yaml:"name"`
	Doc    string   `yaml:"doc,omitempty"`
	Fields []*field `yaml:"fields,omitempty"`
}

// Marshal renders pf as a YAML document.
func Marshal(pf *ast.ProtoFile) ([]byte, error) {
	return yaml.Marshal(toFile(pf))
}

func toFile(pf *ast.ProtoFile) *file {
	f := &file{
		Package:       pf.Package,
		Imports:       pf.Imports,
		PublicImports: pf.PublicImports,
		Options:       optionMapNode(pf.OptionMap()),
	}
	for _, t := range pf.Types {
		switch x := t.(type) {
		case *ast.MessageType:
			f.Messages = append(f.Messages, toMessage(x))
		case *ast.EnumType:
			f.Enums = append(f.Enums, toEnum(x))
		}
	}
	for _, s := range pf.Services {
		f.Services = append(f.Services, toService(s))
	}
	for _, e := range pf.ExtendDecls {
		f.Extends = append(f.Extends, toExtend(e))
	}
	return f
}

func toMessage(m *ast.MessageType) *message {
	out := &message{Name: m.Name, Doc: m.Doc, Options: optionMapNode(m.OptionMap())}
	for _, f := range m.Fields {
		out.Fields = append(out.Fields, toField(f))
	}
	for _, r := range m.ExtensionRanges {
		out.Extensions = append(out.Extensions, extRange{Start: r.Start, End: r.End})
	}
	for _, n := range m.Nested {
		switch x := n.(type) {
		case *ast.MessageType:
			out.Messages = append(out.Messages, toMessage(x))
		case *ast.EnumType:
			out.Enums = append(out.Enums, toEnum(x))
		}
	}
	return out
}

func toField(f *ast.Field) *field {
	return &field{
		Label:   f.Label.String(),
		Type:    f.Type,
		Name:    f.Name,
		Tag:     f.Tag,
		Doc:     f.Doc,
		Options: optionMapNode(f.OptionMap()),
	}
}

func toEnum(e *ast.EnumType) *enum {
	out := &enum{Name: e.Name, Doc: e.Doc}
	for _, v := range e.Values {
		out.Values = append(out.Values, &enumValue{
			Name: v.Name, Tag: v.Tag, Doc: v.Doc, Options: optionMapNode(v.OptionMap()),
		})
	}
	return out
}

func toService(s *ast.Service) *service {
	out := &service{Name: s.Name, Doc: s.Doc}
	for _, m := range s.Methods {
		out.Methods = append(out.Methods, &method{
			Name: m.Name, Doc: m.Doc, Request: m.RequestType, Response: m.ResponseType,
			Options: optionMapNode(m.OptionMap()),
		})
	}
	return out
}

func toExtend(e *ast.ExtendDeclaration) *extend {
	out := &extend{Name: e.Name, Doc: e.Doc}
	for _, f := range e.Fields {
		out.Fields = append(out.Fields, toField(f))
	}
	return out
}

// optionMapNode renders a merged option mapping as a yaml.Node so that
// key order matches the order options were first seen in source,
// rather than whatever order a plain map would pick.
func optionMapNode(m *ast.OrderedMap) yaml.Node {
	n := yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: k}, valueNode(v))
	}
	return n
}

func valueNode(v ast.Value) *yaml.Node {
	switch v.Kind {
	case ast.KindList:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range v.List {
			n.Content = append(n.Content, valueNode(e))
		}
		return n
	case ast.KindMap:
		sub := optionMapNode(v.Map)
		return &sub
	default:
		s, _ := v.String()
		return &yaml.Node{Kind: yaml.ScalarNode, Value: s}
	}
}

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

// Package parser implements a recursive-descent reader for Protocol
// Buffers (proto2-era) schema source, building the tree defined in
// package ast. Parsing is single-pass: the parser pulls lexical shapes
// from the scanner on demand and never looks more than one optional
// keyword ahead. There is no error recovery — the first diagnostic
// aborts the parse.
package parser

import (
	"io"
	"strings"

	"github.com/protolang/protoschema/ast"
	"github.com/protolang/protoschema/errors"
	"github.com/protolang/protoschema/scanner"
)

// parser holds the state threaded through a single parse.
type parser struct {
	sc   *scanner.Scanner
	file *ast.ProtoFile
}

// fail aborts the parse with a diagnostic positioned at the scanner's
// current offset. It is only ever called from within the defer/recover
// harness installed by Parse.
func (p *parser) fail(format string, args ...interface{}) {
	panic(errors.New(p.sc.Pos(), format, args...))
}

func (p *parser) check(err error) {
	if err != nil {
		panic(err)
	}
}

// skip advances past whitespace and comments without preserving any
// documentation comment found along the way: it is used between
// tokens inside a declaration, where an interposed comment has no
// declaration left to attach to.
func (p *parser) skip() {
	p.check(p.sc.SkipSpaceAndComments())
	p.sc.ConsumePendingDoc()
}

// startDoc advances past whitespace and comments and returns whatever
// documentation comment immediately precedes the current position. It
// must be called exactly once, at the very start of parsing each
// declaration.
func (p *parser) startDoc() string {
	p.check(p.sc.SkipSpaceAndComments())
	return p.sc.ConsumePendingDoc()
}

func joinDoc(lead, trailing string) string {
	switch {
	case lead == "":
		return trailing
	case trailing == "":
		return lead
	default:
		return lead + "\n" + trailing
	}
}

func lastSegment(s string) string {
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// Parse reads a single proto schema file and returns its AST. filename
// is used only for diagnostics and in the returned tree's Filename
// field.
func Parse(filename, src string) (pf *ast.ProtoFile, err error) {
	p := &parser{sc: scanner.New(filename, src)}
	defer func() {
		switch r := recover().(type) {
		case nil:
		case *errors.Error:
			err = r
		default:
			panic(r)
		}
	}()
	p.file = &ast.ProtoFile{Filename: filename}
	p.parseFile()
	return p.file, nil
}

// ParseFile is a convenience wrapper that reads src to completion
// before parsing it.
func ParseFile(filename string, src io.Reader) (*ast.ProtoFile, error) {
	b, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	return Parse(filename, string(b))
}

func (p *parser) parseFile() {
	for {
		doc := p.startDoc()
		if p.sc.AtEOF() {
			return
		}
		word, err := p.sc.Word()
		p.check(err)
		switch word {
		case "syntax":
			p.parseSyntax()
		case "package":
			p.parsePackage(doc)
		case "import":
			p.parseImport()
		case "option":
			p.file.Options = append(p.file.Options, p.parseOptionStatement(doc))
		case "message":
			p.file.Types = append(p.file.Types, p.parseMessage(doc, p.file.Package))
		case "enum":
			p.file.Types = append(p.file.Types, p.parseEnum(doc, p.file.Package))
		case "service":
			p.file.Services = append(p.file.Services, p.parseService(doc, p.file.Package))
		case "extend":
			p.parseExtend(doc, p.file.Package)
		default:
			p.fail("unexpected top-level keyword %q", word)
		}
	}
}

func (p *parser) parseSyntax() {
	p.skip()
	p.check(p.sc.Expect('='))
	p.skip()
	_, err := p.sc.QuotedString()
	p.check(err)
	p.skip()
	p.check(p.sc.Expect(';'))
}

func (p *parser) parsePackage(doc string) {
	if p.file.Package != "" {
		p.fail("duplicate package declaration")
	}
	p.skip()
	name, err := p.sc.Word()
	p.check(err)
	p.file.Package = name
	p.skip()
	p.check(p.sc.Expect(';'))
}

func (p *parser) parseImport() {
	p.skip()
	public := p.sc.TryWord("public")
	p.skip()
	path, err := p.sc.QuotedString()
	p.check(err)
	p.skip()
	p.check(p.sc.Expect(';'))
	if public {
		p.file.PublicImports = append(p.file.PublicImports, path)
	} else {
		p.file.Imports = append(p.file.Imports, path)
	}
}

// parseOptionName reads a dotted option name, stripping parentheses
// around a leading extension reference: "(validation.range).min" and
// "validation.range.min" both yield "validation.range.min".
func (p *parser) parseOptionName() string {
	p.skip()
	if p.sc.Peek('(') {
		p.check(p.sc.Expect('('))
		inner, err := p.sc.Word()
		p.check(err)
		p.check(p.sc.Expect(')'))
		p.skip()
		if p.sc.Peek('.') {
			p.check(p.sc.Expect('.'))
			suffix, err := p.sc.Word()
			p.check(err)
			return inner + "." + suffix
		}
		return inner
	}
	name, err := p.sc.Word()
	p.check(err)
	return name
}

// parseOptionValue reads a scalar, list or aggregate option value.
// Quoted strings are escape-decoded; numbers and bare identifiers
// (including true/false) are kept as their exact source spelling.
func (p *parser) parseOptionValue() ast.Value {
	p.skip()
	switch {
	case p.sc.Peek('"'):
		s, err := p.sc.QuotedString()
		p.check(err)
		return ast.ScalarValue(s)
	case p.sc.Peek('['):
		return p.parseValueList()
	case p.sc.Peek('{'):
		return p.parseAggregate()
	case !p.sc.AtEOF() && p.sc.Cur() >= '0' && p.sc.Cur() <= '9':
		n, err := p.sc.RawNumber()
		p.check(err)
		return ast.ScalarValue(n)
	default:
		w, err := p.sc.Word()
		if err != nil {
			p.fail("expected an option value")
		}
		return ast.ScalarValue(w)
	}
}

func (p *parser) parseValueList() ast.Value {
	p.check(p.sc.Expect('['))
	var items []ast.Value
	p.skip()
	for !p.sc.Peek(']') {
		items = append(items, p.parseOptionValue())
		p.skip()
		if p.sc.Peek(',') {
			p.check(p.sc.Expect(','))
			p.skip()
			continue
		}
		break
	}
	p.check(p.sc.Expect(']'))
	return ast.ListValue(items...)
}

// parseAggregate reads a "{ key: value ... }" literal. Repeated keys
// fold together via OrderedMap.MergeValue rather than overwrite, the
// same rule dotted option paths use, so both forms of repetition
// agree.
func (p *parser) parseAggregate() ast.Value {
	p.check(p.sc.Expect('{'))
	m := ast.NewOrderedMap()
	p.skip()
	for !p.sc.Peek('}') {
		key := p.parseAggregateKey()
		p.skip()
		p.check(p.sc.Expect(':'))
		p.skip()
		val := p.parseOptionValue()
		m.MergeValue(key, val)
		p.skip()
		if p.sc.Peek(',') {
			p.check(p.sc.Expect(','))
		}
		p.skip()
	}
	p.check(p.sc.Expect('}'))
	return ast.MapValue(m)
}

func (p *parser) parseAggregateKey() string {
	p.skip()
	if p.sc.Peek('[') {
		p.check(p.sc.Expect('['))
		inner, err := p.sc.Word()
		p.check(err)
		p.check(p.sc.Expect(']'))
		return "[" + inner + "]"
	}
	name, err := p.sc.Word()
	p.check(err)
	return name
}

// parseBracketOptions reads an optional trailing "[name = value, ...]"
// list, as found after a field or enum value declaration. It returns
// nil if no '[' follows.
func (p *parser) parseBracketOptions() []ast.Option {
	p.skip()
	if !p.sc.Peek('[') {
		return nil
	}
	p.check(p.sc.Expect('['))
	var opts []ast.Option
	p.skip()
	for !p.sc.Peek(']') {
		name := p.parseOptionName()
		p.skip()
		p.check(p.sc.Expect('='))
		val := p.parseOptionValue()
		opts = append(opts, ast.Option{Name: name, Value: val})
		p.skip()
		if p.sc.Peek(',') {
			p.check(p.sc.Expect(','))
			p.skip()
			continue
		}
		break
	}
	p.check(p.sc.Expect(']'))
	return opts
}

// parseOptionStatement reads "NAME = VALUE;" as found at file or message
// scope, and inside an rpc method's brace body.
func (p *parser) parseOptionStatement(doc string) ast.Option {
	name := p.parseOptionName()
	p.skip()
	p.check(p.sc.Expect('='))
	val := p.parseOptionValue()
	p.skip()
	p.check(p.sc.Expect(';'))
	trailing := p.sc.TrailingComment()
	return ast.Option{Name: name, Value: val, Doc: joinDoc(doc, trailing)}
}

func (p *parser) parseExtensionsRange(doc string) ast.ExtensionsRange {
	p.skip()
	start, err := p.sc.Number()
	p.check(err)
	end := start
	p.skip()
	if p.sc.TryWord("to") {
		p.skip()
		if p.sc.TryWord("max") {
			end = ast.MaxTag
		} else {
			e, err := p.sc.Number()
			p.check(err)
			end = e
		}
	}
	p.skip()
	p.check(p.sc.Expect(';'))
	trailing := p.sc.TrailingComment()
	return ast.ExtensionsRange{Start: start, End: end, Doc: joinDoc(doc, trailing)}
}

func (p *parser) parseField(label ast.Label, doc string) *ast.Field {
	p.skip()
	typ, err := p.sc.Word()
	p.check(err)
	p.skip()
	name, err := p.sc.Word()
	p.check(err)
	p.skip()
	p.check(p.sc.Expect('='))
	p.skip()
	tag, err := p.sc.Number()
	p.check(err)
	if tag <= 0 {
		p.fail("expected tag > 0, got %d", tag)
	}
	opts := p.parseBracketOptions()
	p.skip()
	p.check(p.sc.Expect(';'))
	trailing := p.sc.TrailingComment()
	return &ast.Field{
		Label: label, Type: typ, Name: name, Tag: tag,
		Doc: joinDoc(doc, trailing), Options: opts,
	}
}

func (p *parser) labelFor(word string) (ast.Label, bool) {
	switch word {
	case "required":
		return ast.Required, true
	case "optional":
		return ast.Optional, true
	case "repeated":
		return ast.Repeated, true
	}
	return 0, false
}

func (p *parser) parseMessage(doc, prefix string) *ast.MessageType {
	p.skip()
	name, err := p.sc.Word()
	p.check(err)
	msg := &ast.MessageType{Name: name, QualifiedName: ast.QualifiedName(prefix, name), Doc: doc}
	p.skip()
	p.check(p.sc.Expect('{'))
	for {
		itemDoc := p.startDoc()
		if p.sc.Peek('}') {
			break
		}
		word, err := p.sc.Word()
		p.check(err)
		if label, ok := p.labelFor(word); ok {
			msg.Fields = append(msg.Fields, p.parseField(label, itemDoc))
			continue
		}
		switch word {
		case "message":
			msg.Nested = append(msg.Nested, p.parseMessage(itemDoc, msg.QualifiedName))
		case "enum":
			msg.Nested = append(msg.Nested, p.parseEnum(itemDoc, msg.QualifiedName))
		case "extend":
			p.parseExtend(itemDoc, msg.QualifiedName)
		case "extensions":
			msg.ExtensionRanges = append(msg.ExtensionRanges, p.parseExtensionsRange(itemDoc))
		case "option":
			msg.Options = append(msg.Options, p.parseOptionStatement(itemDoc))
		default:
			p.fail("unexpected keyword %q in message body", word)
		}
	}
	p.check(p.sc.Expect('}'))
	return msg
}

func (p *parser) parseEnum(doc, prefix string) *ast.EnumType {
	p.skip()
	name, err := p.sc.Word()
	p.check(err)
	en := &ast.EnumType{Name: name, QualifiedName: ast.QualifiedName(prefix, name), Doc: doc}
	p.skip()
	p.check(p.sc.Expect('{'))
	for {
		itemDoc := p.startDoc()
		if p.sc.Peek('}') {
			break
		}
		en.Values = append(en.Values, p.parseEnumValue(itemDoc))
	}
	p.check(p.sc.Expect('}'))
	return en
}

func (p *parser) parseEnumValue(doc string) *ast.EnumValue {
	name, err := p.sc.Word()
	p.check(err)
	p.skip()
	p.check(p.sc.Expect('='))
	p.skip()
	tag, err := p.sc.Number()
	p.check(err)
	opts := p.parseBracketOptions()
	p.skip()
	p.check(p.sc.Expect(';'))
	trailing := p.sc.TrailingComment()
	return &ast.EnumValue{Name: name, Tag: tag, Doc: joinDoc(doc, trailing), Options: opts}
}

func (p *parser) parseExtend(doc, prefix string) *ast.ExtendDeclaration {
	p.skip()
	typeName, err := p.sc.Word()
	p.check(err)
	_ = prefix // extend references an existing type by its own already-qualified name
	ext := &ast.ExtendDeclaration{Name: lastSegment(typeName), QualifiedName: typeName, Doc: doc}
	p.skip()
	p.check(p.sc.Expect('{'))
	for {
		itemDoc := p.startDoc()
		if p.sc.Peek('}') {
			break
		}
		word, err := p.sc.Word()
		p.check(err)
		label, ok := p.labelFor(word)
		if !ok {
			p.fail("unexpected keyword %q in extend body", word)
		}
		ext.Fields = append(ext.Fields, p.parseField(label, itemDoc))
	}
	p.check(p.sc.Expect('}'))
	p.file.ExtendDecls = append(p.file.ExtendDecls, ext)
	return ext
}

func (p *parser) parseService(doc, prefix string) *ast.Service {
	p.skip()
	name, err := p.sc.Word()
	p.check(err)
	svc := &ast.Service{Name: name, QualifiedName: ast.QualifiedName(prefix, name), Doc: doc}
	p.skip()
	p.check(p.sc.Expect('{'))
	for {
		itemDoc := p.startDoc()
		if p.sc.Peek('}') {
			break
		}
		word, err := p.sc.Word()
		p.check(err)
		if word != "rpc" {
			p.fail("expected rpc, got %q", word)
		}
		svc.Methods = append(svc.Methods, p.parseMethod(itemDoc))
	}
	p.check(p.sc.Expect('}'))
	return svc
}

func (p *parser) parseMethod(doc string) *ast.Method {
	p.skip()
	name, err := p.sc.Word()
	p.check(err)
	p.skip()
	p.check(p.sc.Expect('('))
	p.skip()
	reqType, err := p.sc.Word()
	p.check(err)
	p.skip()
	p.check(p.sc.Expect(')'))
	p.skip()
	w, err := p.sc.Word()
	p.check(err)
	if w != "returns" {
		p.fail("expected 'returns', got %q", w)
	}
	p.skip()
	p.check(p.sc.Expect('('))
	p.skip()
	respType, err := p.sc.Word()
	p.check(err)
	p.skip()
	p.check(p.sc.Expect(')'))
	p.skip()

	me := &ast.Method{Name: name, RequestType: reqType, ResponseType: respType}
	if p.sc.Peek(';') {
		p.check(p.sc.Expect(';'))
		trailing := p.sc.TrailingComment()
		me.Doc = joinDoc(doc, trailing)
		return me
	}
	p.check(p.sc.Expect('{'))
	for {
		innerDoc := p.startDoc()
		if p.sc.Peek('}') {
			break
		}
		word, err := p.sc.Word()
		p.check(err)
		if word != "option" {
			p.fail("expected option, got %q", word)
		}
		me.Options = append(me.Options, p.parseOptionStatement(innerDoc))
	}
	p.check(p.sc.Expect('}'))
	me.Doc = doc
	return me
}

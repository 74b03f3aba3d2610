package syntax

import (
	"fmt"
	"strings"

	"github.com/mark3labs/ridl/internal/diag"
)

// Parse reads a whole source file. Syntax errors are fatal: the returned
// error is a diag.Logs holding one ReadError.
func Parse(src string) (*File, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &Parser{toks: toks}
	return p.ParseFile()
}

// Parser is a recursive-descent parser over a token slice. Internally it
// reports errors by panicking with a *syntaxError, which the exported
// entry points recover into a diag.Logs.
type Parser struct {
	toks []Token
	pos  int
	last Token
}

func NewParser(toks []Token) *Parser {
	return &Parser{toks: toks}
}

type syntaxError struct {
	span diag.Span
	msg  string
}

func (p *Parser) fail(span diag.Span, format string, args ...any) {
	panic(&syntaxError{span: span, msg: fmt.Sprintf(format, args...)})
}

func recoverSyntax(err *error) {
	if r := recover(); r != nil {
		se, ok := r.(*syntaxError)
		if !ok {
			panic(r)
		}
		*err = diag.Errorf(se.span, diag.ReadError, "%s", se.msg)
	}
}

// ParseFile parses inner attributes followed by items up to end of input.
func (p *Parser) ParseFile() (f *File, err error) {
	defer recoverSyntax(&err)
	f = &File{Attrs: p.innerAttrs()}
	for !p.at(TokEOF, "") {
		if p.accept(TokPunct, ";") {
			continue
		}
		f.Items = append(f.Items, p.item())
	}
	return f, nil
}

func (p *Parser) peek() Token { return p.peekN(0) }

func (p *Parser) peekN(n int) Token {
	if p.pos+n < len(p.toks) {
		return p.toks[p.pos+n]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) next() Token {
	tok := p.peek()
	if tok.Kind != TokEOF {
		p.pos++
	}
	p.last = tok
	return tok
}

// at matches the next token; an empty val matches any value of kind.
func (p *Parser) at(kind TokenKind, val string) bool {
	tok := p.peek()
	return tok.Kind == kind && (val == "" || tok.is(kind, val))
}

func (p *Parser) atIdent(val string) bool { return p.at(TokIdent, val) }

func (p *Parser) accept(kind TokenKind, val string) bool {
	if p.at(kind, val) {
		p.next()
		return true
	}
	return false
}

func (p *Parser) expect(kind TokenKind, val string) Token {
	tok := p.peek()
	if tok.Kind != kind || (val != "" && !tok.is(kind, val)) {
		want := kind.String()
		if val != "" {
			want = fmt.Sprintf("`%s`", val)
		}
		p.fail(tok.Span, "expected %s, found %s", want, describe(tok))
	}
	return p.next()
}

func describe(tok Token) string {
	switch tok.Kind {
	case TokEOF:
		return "end of input"
	case TokIdent, TokPunct:
		if tok.Raw {
			return fmt.Sprintf("`r#%s`", tok.Val)
		}
		return fmt.Sprintf("`%s`", tok.Val)
	default:
		return tok.Kind.String()
	}
}

// spanFrom covers start through the last consumed token.
func (p *Parser) spanFrom(start diag.LineColumn) diag.Span {
	return diag.Span{Start: start, End: p.last.Span.End}
}

// Attributes.

func docAttr(tok Token, inner bool) Attribute {
	return Attribute{
		Span:  tok.Span,
		Inner: inner,
		Meta: &Meta{
			Span: tok.Span,
			Kind: MetaNameValue,
			Path: Path{Span: tok.Span, Segments: []PathSegment{{Span: tok.Span, Name: "doc"}}},
			Lit:  Lit{Span: tok.Span, Kind: LitStr, Value: tok.Val},
		},
	}
}

func (p *Parser) innerAttrs() []Attribute {
	var out []Attribute
	for {
		switch {
		case p.at(TokInnerDoc, ""):
			out = append(out, docAttr(p.next(), true))
		case p.at(TokPunct, "#") && p.peekN(1).is(TokPunct, "!") && p.peekN(2).is(TokPunct, "["):
			start := p.next().Span.Start
			p.next()
			out = append(out, p.attrBody(start, true))
		default:
			return out
		}
	}
}

func (p *Parser) outerAttrs() []Attribute {
	var out []Attribute
	for {
		switch {
		case p.at(TokOuterDoc, ""):
			out = append(out, docAttr(p.next(), false))
		case p.at(TokPunct, "#") && p.peekN(1).is(TokPunct, "["):
			start := p.next().Span.Start
			out = append(out, p.attrBody(start, false))
		default:
			return out
		}
	}
}

// attrBody consumes `[ ... ]` and tries to read the content as a meta.
func (p *Parser) attrBody(start diag.LineColumn, inner bool) Attribute {
	p.expect(TokPunct, "[")
	body := p.group("[", "]")
	attr := Attribute{Span: p.spanFrom(start), Inner: inner}
	meta, err := parseMeta(body)
	if err != nil {
		attr.Malformed = err.Error()
	} else {
		attr.Meta = meta
	}
	return attr
}

// group consumes tokens up to the delimiter matching an already consumed
// opening one and returns them, excluding the closing delimiter.
func (p *Parser) group(open, close string) []Token {
	opening := p.last
	begin := p.pos
	depth := 1
	for {
		tok := p.next()
		switch {
		case tok.Kind == TokEOF:
			p.fail(opening.Span, "unclosed delimiter `%s`", open)
		case tok.Kind != TokPunct:
		case tok.Val == "(" || tok.Val == "[" || tok.Val == "{":
			depth++
		case tok.Val == ")" || tok.Val == "]" || tok.Val == "}":
			depth--
			if depth == 0 {
				if tok.Val != close {
					p.fail(tok.Span, "mismatched closing delimiter `%s`", tok.Val)
				}
				return p.toks[begin : p.pos-1]
			}
		}
	}
}

func parseMeta(body []Token) (m *Meta, err error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("empty attribute")
	}
	end := body[len(body)-1].Span.End
	toks := append(append([]Token(nil), body...), Token{Kind: TokEOF, Span: diag.Span{Start: end, End: end}})
	sub := NewParser(toks)
	defer func() {
		if r := recover(); r != nil {
			se, ok := r.(*syntaxError)
			if !ok {
				panic(r)
			}
			m, err = nil, fmt.Errorf("%s", se.msg)
		}
	}()
	m = sub.meta()
	if !sub.at(TokEOF, "") {
		sub.fail(sub.peek().Span, "unexpected %s in attribute", describe(sub.peek()))
	}
	return m, nil
}

func (p *Parser) meta() *Meta {
	start := p.peek().Span.Start
	m := &Meta{Kind: MetaPath, Path: p.path(false)}
	switch {
	case p.accept(TokPunct, "("):
		m.Kind = MetaList
		for !p.accept(TokPunct, ")") {
			m.Nested = append(m.Nested, p.nested())
			if !p.at(TokPunct, ")") {
				p.expect(TokPunct, ",")
			}
		}
	case p.accept(TokPunct, "="):
		m.Kind = MetaNameValue
		lit, ok := p.lit()
		if !ok {
			p.fail(p.peek().Span, "expected literal, found %s", describe(p.peek()))
		}
		m.Lit = lit
	}
	m.Span = p.spanFrom(start)
	return m
}

func (p *Parser) nested() Nested {
	if lit, ok := p.lit(); ok {
		return Nested{Lit: &lit}
	}
	return Nested{Meta: p.meta()}
}

func (p *Parser) lit() (Lit, bool) {
	tok := p.peek()
	var kind LitKind
	switch {
	case tok.Kind == TokStr:
		kind = LitStr
	case tok.Kind == TokInt:
		kind = LitInt
	case tok.Kind == TokFloat:
		kind = LitFloat
	case tok.Kind == TokChar:
		kind = LitChar
	case tok.is(TokIdent, "true"), tok.is(TokIdent, "false"):
		kind = LitBool
	case tok.is(TokPunct, "-") && (p.peekN(1).Kind == TokInt || p.peekN(1).Kind == TokFloat):
		p.next()
		num, _ := p.lit()
		num.Span.Start = tok.Span.Start
		num.Value = "-" + num.Value
		return num, true
	default:
		return Lit{}, false
	}
	p.next()
	return Lit{Span: tok.Span, Kind: kind, Value: tok.Val}, true
}

// Paths and types.

// path reads a `::`-separated path. In type position a segment may carry
// `Fn(A) -> B` sugar; elsewhere a `(` ends the path.
func (p *Parser) path(inType bool) Path {
	start := p.peek().Span.Start
	var out Path
	out.Leading = p.accept(TokPunct, "::")
	for {
		name := p.expect(TokIdent, "")
		seg := PathSegment{Name: name.Val}
		if p.at(TokPunct, "<") || (p.at(TokPunct, "::") && p.peekN(1).is(TokPunct, "<")) {
			p.accept(TokPunct, "::")
			p.next()
			seg.Angle = true
			p.angleArgs(&seg)
		} else if inType && p.at(TokPunct, "(") && isFnTrait(name.Val) {
			p.next()
			sig := p.fnSig()
			seg.Fn = &sig
		}
		seg.Span = p.spanFrom(name.Span.Start)
		out.Segments = append(out.Segments, seg)
		if !(p.at(TokPunct, "::") && p.peekN(1).Kind == TokIdent) {
			break
		}
		p.next()
	}
	out.Span = p.spanFrom(start)
	return out
}

func isFnTrait(name string) bool {
	return name == "Fn" || name == "FnMut" || name == "FnOnce"
}

// angleArgs reads generic arguments after a consumed `<`.
func (p *Parser) angleArgs(seg *PathSegment) {
	for !p.accept(TokPunct, ">") {
		switch {
		case p.at(TokLifetime, ""):
			p.next()
		case p.at(TokIdent, "") && (p.peekN(1).is(TokPunct, "=") || p.peekN(1).is(TokPunct, ":")):
			p.next()
			p.next()
			p.boundsOrType()
			seg.Bindings++
		case p.at(TokPunct, "{"):
			p.next()
			p.group("{", "}")
			seg.Bindings++
		default:
			if _, ok := p.lit(); ok {
				seg.Bindings++
			} else {
				seg.Args = append(seg.Args, p.typ())
			}
		}
		if !p.at(TokPunct, ">") {
			p.expect(TokPunct, ",")
		}
	}
}

// boundsOrType skips a type or a `+`-joined bound list.
func (p *Parser) boundsOrType() {
	for {
		if !p.accept(TokLifetime, "") {
			p.accept(TokPunct, "?")
			p.typ()
		}
		if !p.accept(TokPunct, "+") {
			return
		}
	}
}

// fnSig reads `A, B) -> C` after a consumed `(`.
func (p *Parser) fnSig() FnSig {
	var sig FnSig
	for !p.accept(TokPunct, ")") {
		// named parameters appear in `fn(name: T)` pointer types
		if p.at(TokIdent, "") && p.peekN(1).is(TokPunct, ":") {
			p.next()
			p.next()
		}
		sig.Inputs = append(sig.Inputs, p.typ())
		if !p.at(TokPunct, ")") {
			p.expect(TokPunct, ",")
		}
	}
	if p.accept(TokPunct, "->") {
		sig.Output = p.typ()
	}
	return sig
}

func (p *Parser) typ() TypeExpr {
	tok := p.peek()
	start := tok.Span.Start
	switch {
	case tok.is(TokPunct, "("):
		p.next()
		if p.accept(TokPunct, ")") {
			return &TypeTuple{Span: p.spanFrom(start)}
		}
		first := p.typ()
		if p.accept(TokPunct, ")") {
			return &TypeParen{Span: p.spanFrom(start), Elem: first}
		}
		elems := []TypeExpr{first}
		for p.accept(TokPunct, ",") && !p.at(TokPunct, ")") {
			elems = append(elems, p.typ())
		}
		p.expect(TokPunct, ")")
		return &TypeTuple{Span: p.spanFrom(start), Elems: elems}
	case tok.is(TokPunct, "["):
		p.next()
		elem := p.typ()
		if p.accept(TokPunct, ";") {
			var n []string
			for !p.at(TokPunct, "]") && !p.at(TokEOF, "") {
				n = append(n, p.next().Val)
			}
			p.expect(TokPunct, "]")
			return &TypeArray{Span: p.spanFrom(start), Elem: elem, Len: strings.Join(n, "")}
		}
		p.expect(TokPunct, "]")
		return &TypeSlice{Span: p.spanFrom(start), Elem: elem}
	case tok.is(TokPunct, "&"), tok.is(TokPunct, "&&"):
		p.next()
		p.accept(TokLifetime, "")
		mut := p.accept(TokIdent, "mut")
		elem := p.typ()
		ref := &TypeRef{Span: p.spanFrom(start), Mut: mut, Elem: elem}
		if tok.Val == "&&" {
			return &TypeRef{Span: ref.Span, Elem: ref}
		}
		return ref
	case tok.is(TokPunct, "*"):
		p.next()
		mut := p.atIdent("mut")
		if !p.accept(TokIdent, "const") && !p.accept(TokIdent, "mut") {
			p.fail(p.peek().Span, "expected `const` or `mut` after `*`")
		}
		elem := p.typ()
		return &TypePtr{Span: p.spanFrom(start), Mut: mut, Elem: elem}
	case tok.is(TokPunct, "!"):
		p.next()
		return &TypeNever{Span: tok.Span}
	case tok.is(TokIdent, "_"):
		p.next()
		return &TypeOpaque{Span: tok.Span, Desc: "inferred type"}
	case tok.is(TokIdent, "fn"), tok.is(TokIdent, "unsafe"), tok.is(TokIdent, "extern"):
		p.accept(TokIdent, "unsafe")
		if p.accept(TokIdent, "extern") {
			p.accept(TokStr, "")
		}
		p.expect(TokIdent, "fn")
		p.expect(TokPunct, "(")
		sig := p.fnSig()
		return &TypeFn{Span: p.spanFrom(start), Sig: sig}
	case tok.is(TokIdent, "dyn"), tok.is(TokIdent, "impl"):
		p.next()
		return p.traitBounds(start)
	case tok.is(TokIdent, "for") && p.peekN(1).is(TokPunct, "<"):
		return p.traitBounds(start)
	case tok.is(TokPunct, "<"):
		// qualified path such as <T as Trait>::Item
		p.next()
		p.typ()
		if p.accept(TokIdent, "as") {
			p.typ()
		}
		p.expect(TokPunct, ">")
		for p.accept(TokPunct, "::") {
			p.expect(TokIdent, "")
		}
		return &TypeOpaque{Span: p.spanFrom(start), Desc: "qualified path"}
	case tok.Kind == TokIdent, tok.is(TokPunct, "::"):
		path := p.path(true)
		if p.at(TokPunct, "!") {
			p.next()
			p.macroGroup()
			return &TypeOpaque{Span: p.spanFrom(start), Desc: "macro invocation"}
		}
		if last := path.Last(); last.Fn != nil && len(path.Segments) == 1 {
			// bare `Fn(A) -> B` trait object
			return &TypeFn{Span: p.spanFrom(start), Sig: *last.Fn}
		}
		return &TypePath{Span: p.spanFrom(start), Path: path}
	}
	p.fail(tok.Span, "expected type, found %s", describe(tok))
	return nil
}

// traitBounds reads the bound list of a `dyn`/`impl` type. A bound list
// led by `Fn(A) -> B` sugar becomes a function type.
func (p *Parser) traitBounds(start diag.LineColumn) TypeExpr {
	var fn *FnSig
	first := true
	for {
		switch {
		case p.accept(TokLifetime, ""):
		default:
			if p.accept(TokIdent, "for") {
				p.expect(TokPunct, "<")
				for !p.accept(TokPunct, ">") {
					p.next()
				}
			}
			p.accept(TokPunct, "?")
			path := p.path(true)
			if first && len(path.Segments) > 0 && path.Last().Fn != nil {
				fn = path.Last().Fn
			}
		}
		first = false
		if !p.accept(TokPunct, "+") {
			break
		}
	}
	if fn != nil {
		return &TypeFn{Span: p.spanFrom(start), Sig: *fn}
	}
	return &TypeOpaque{Span: p.spanFrom(start), Desc: "trait object"}
}

func (p *Parser) macroGroup() {
	switch {
	case p.accept(TokPunct, "("):
		p.group("(", ")")
	case p.accept(TokPunct, "["):
		p.group("[", "]")
	case p.accept(TokPunct, "{"):
		p.group("{", "}")
	default:
		p.fail(p.peek().Span, "expected macro delimiter, found %s", describe(p.peek()))
	}
}

// Items.

func (p *Parser) visibility() {
	if p.accept(TokIdent, "pub") {
		if p.at(TokPunct, "(") {
			switch t := p.peekN(1); {
			case t.is(TokIdent, "crate") || t.is(TokIdent, "self") || t.is(TokIdent, "super"):
				if p.peekN(2).is(TokPunct, ")") {
					p.next()
					p.next()
					p.next()
				}
			case t.is(TokIdent, "in"):
				p.next()
				p.group("(", ")")
			}
		}
		return
	}
	if p.atIdent("crate") && !p.peekN(1).is(TokPunct, "::") {
		p.next()
	}
}

func (p *Parser) item() Item {
	start := p.peek().Span.Start
	attrs := p.outerAttrs()
	p.visibility()
	kw := p.peek()
	if kw.Kind != TokIdent || kw.Raw {
		p.fail(kw.Span, "expected item, found %s", describe(kw))
	}
	switch kw.Val {
	case "mod":
		return p.itemMod(start, attrs)
	case "type":
		return p.itemType(start, attrs)
	case "enum":
		return p.itemEnum(start, attrs)
	case "struct":
		return p.itemStruct(start, attrs)
	case "use":
		p.next()
		p.skipTo(";")
		return &ItemUse{Span: p.spanFrom(start), Attrs: attrs}
	case "extern":
		if p.peekN(1).is(TokIdent, "crate") {
			p.next()
			p.skipTo(";")
			return &ItemUse{Span: p.spanFrom(start), Attrs: attrs}
		}
	}
	return p.itemOpaque(start, attrs)
}

func (p *Parser) itemMod(start diag.LineColumn, attrs []Attribute) Item {
	p.expect(TokIdent, "mod")
	name := p.expect(TokIdent, "")
	m := &ItemMod{NameSpan: name.Span, Name: name.Val}
	if p.accept(TokPunct, "{") {
		m.Inline = true
		attrs = append(attrs, p.innerAttrs()...)
		for !p.accept(TokPunct, "}") {
			if p.at(TokEOF, "") {
				p.fail(p.peek().Span, "unclosed module `%s`", name.Val)
			}
			if p.accept(TokPunct, ";") {
				continue
			}
			m.Items = append(m.Items, p.item())
		}
	} else {
		p.expect(TokPunct, ";")
	}
	m.Attrs = attrs
	m.Span = p.spanFrom(start)
	return m
}

func (p *Parser) itemType(start diag.LineColumn, attrs []Attribute) Item {
	p.expect(TokIdent, "type")
	name := p.expect(TokIdent, "")
	it := &ItemType{Attrs: attrs, Name: name.Val, Generics: p.generics()}
	p.whereClause()
	p.expect(TokPunct, "=")
	it.Type = p.typ()
	p.expect(TokPunct, ";")
	it.Span = p.spanFrom(start)
	return it
}

func (p *Parser) itemEnum(start diag.LineColumn, attrs []Attribute) Item {
	p.expect(TokIdent, "enum")
	name := p.expect(TokIdent, "")
	it := &ItemEnum{Attrs: attrs, Name: name.Val, Generics: p.generics()}
	p.whereClause()
	p.expect(TokPunct, "{")
	for !p.accept(TokPunct, "}") {
		it.Variants = append(it.Variants, p.variant())
		if !p.at(TokPunct, "}") {
			p.expect(TokPunct, ",")
		}
	}
	it.Span = p.spanFrom(start)
	return it
}

func (p *Parser) variant() Variant {
	start := p.peek().Span.Start
	attrs := p.outerAttrs()
	p.visibility()
	name := p.expect(TokIdent, "")
	v := Variant{Attrs: attrs, Name: name.Val, Fields: p.fields()}
	if p.accept(TokPunct, "=") {
		// explicit discriminant
		for !p.at(TokPunct, ",") && !p.at(TokPunct, "}") {
			switch tok := p.next(); {
			case tok.Kind == TokEOF:
				p.fail(tok.Span, "unterminated enum discriminant")
			case tok.is(TokPunct, "("):
				p.group("(", ")")
			case tok.is(TokPunct, "["):
				p.group("[", "]")
			case tok.is(TokPunct, "{"):
				p.group("{", "}")
			}
		}
	}
	v.Span = p.spanFrom(start)
	return v
}

func (p *Parser) itemStruct(start diag.LineColumn, attrs []Attribute) Item {
	p.expect(TokIdent, "struct")
	name := p.expect(TokIdent, "")
	it := &ItemStruct{Attrs: attrs, Name: name.Val, Generics: p.generics()}
	p.whereClause()
	it.Fields = p.fields()
	if it.Fields.Kind != FieldsNamed {
		p.whereClause()
		p.expect(TokPunct, ";")
	}
	it.Span = p.spanFrom(start)
	return it
}

func (p *Parser) fields() Fields {
	start := p.peek().Span.Start
	switch {
	case p.accept(TokPunct, "{"):
		f := Fields{Kind: FieldsNamed}
		for !p.accept(TokPunct, "}") {
			fstart := p.peek().Span.Start
			attrs := p.outerAttrs()
			p.visibility()
			name := p.expect(TokIdent, "")
			p.expect(TokPunct, ":")
			ty := p.typ()
			f.List = append(f.List, Field{Span: p.spanFrom(fstart), Attrs: attrs, Name: name.Val, Type: ty})
			if !p.at(TokPunct, "}") {
				p.expect(TokPunct, ",")
			}
		}
		f.Span = p.spanFrom(start)
		return f
	case p.accept(TokPunct, "("):
		f := Fields{Kind: FieldsUnnamed}
		for !p.accept(TokPunct, ")") {
			fstart := p.peek().Span.Start
			attrs := p.outerAttrs()
			p.visibility()
			ty := p.typ()
			f.List = append(f.List, Field{Span: p.spanFrom(fstart), Attrs: attrs, Type: ty})
			if !p.at(TokPunct, ")") {
				p.expect(TokPunct, ",")
			}
		}
		f.Span = p.spanFrom(start)
		return f
	}
	return Fields{Kind: FieldsUnit}
}

// generics reads an optional `<...>` parameter list and counts its
// top-level parameters.
func (p *Parser) generics() Generics {
	if !p.at(TokPunct, "<") {
		return Generics{}
	}
	start := p.next().Span.Start
	depth, params, pending := 1, 0, false
	for depth > 0 {
		tok := p.next()
		switch {
		case tok.Kind == TokEOF:
			p.fail(tok.Span, "unclosed generic parameter list")
		case tok.is(TokPunct, "<"):
			depth++
		case tok.is(TokPunct, ">"):
			depth--
		case tok.is(TokPunct, ",") && depth == 1:
			if pending {
				params++
			}
			pending = false
			continue
		case tok.is(TokPunct, "("):
			p.group("(", ")")
		}
		if depth > 0 {
			pending = true
		}
	}
	if pending {
		params++
	}
	return Generics{Span: p.spanFrom(start), Params: params}
}

// whereClause skips `where ...` up to the body or the terminating `;`.
func (p *Parser) whereClause() {
	if !p.accept(TokIdent, "where") {
		return
	}
	depth := 0
	for {
		tok := p.peek()
		switch {
		case tok.Kind == TokEOF:
			return
		case tok.is(TokPunct, "<"):
			depth++
		case tok.is(TokPunct, ">"):
			depth--
		case depth == 0 && (tok.is(TokPunct, "{") || tok.is(TokPunct, ";") || tok.is(TokPunct, "=")):
			return
		case tok.is(TokPunct, "("):
			p.next()
			p.group("(", ")")
			continue
		}
		p.next()
	}
}

// itemOpaque skips a declaration the reader does not model. It ends at a
// top-level `;` or at the close of the first top-level brace block.
func (p *Parser) itemOpaque(start diag.LineColumn, attrs []Attribute) Item {
	it := &ItemOpaque{Attrs: attrs}
	for _, q := range []string{"unsafe", "async", "default"} {
		if p.atIdent(q) && p.peekN(1).Kind == TokIdent {
			p.next()
		}
	}
	kw := p.next()
	it.Keyword = kw.Val
	if p.at(TokPunct, "!") {
		it.Keyword = "macro"
		it.Name = kw.Val
	} else if kw.Val == "const" && p.atIdent("fn") {
		it.Keyword = "fn"
		p.next()
	} else if kw.Val == "extern" {
		p.accept(TokStr, "")
		if p.at(TokIdent, "") {
			it.Keyword = p.next().Val
		}
	}
	if it.Name == "" && p.at(TokIdent, "") {
		it.Name = p.peek().Val
	}
	untilSemi := it.Keyword == "const" || it.Keyword == "static"
	for {
		tok := p.next()
		switch {
		case tok.Kind == TokEOF:
			p.fail(tok.Span, "unexpected end of input in `%s` item", it.Keyword)
		case tok.is(TokPunct, ";"):
			it.Span = p.spanFrom(start)
			return it
		case tok.is(TokPunct, "("):
			p.group("(", ")")
		case tok.is(TokPunct, "["):
			p.group("[", "]")
		case tok.is(TokPunct, "{"):
			p.group("{", "}")
			if !untilSemi {
				p.accept(TokPunct, ";")
				it.Span = p.spanFrom(start)
				return it
			}
		}
	}
}

// skipTo consumes tokens through the next top-level occurrence of punct.
func (p *Parser) skipTo(punct string) {
	for {
		tok := p.next()
		switch {
		case tok.Kind == TokEOF:
			p.fail(tok.Span, "expected `%s`", punct)
		case tok.is(TokPunct, punct):
			return
		case tok.is(TokPunct, "{"):
			p.group("{", "}")
		case tok.is(TokPunct, "("):
			p.group("(", ")")
		}
	}
}

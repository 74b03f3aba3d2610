// Package syntax reads the restricted declaration language ridl consumes:
// modules, type aliases, enums, structs, `use` imports, `#[...]` attributes
// and doc comments. Everything else parses into an opaque node so callers
// can report it instead of failing the whole file.
package syntax

import "github.com/mark3labs/ridl/internal/diag"

// File is a parsed source file. Attrs holds the inner attributes, with
// `//!` lines represented as `doc = "..."` attributes.
type File struct {
	Attrs []Attribute
	Items []Item
}

// Attribute is one `#[...]` or doc comment. Doc comments are desugared into
// a name-value meta with the path `doc`. When the body is not a well-formed
// meta, Meta is nil and Malformed describes the problem.
type Attribute struct {
	Span      diag.Span
	Inner     bool
	Meta      *Meta
	Malformed string
}

// IsDoc reports whether a is a doc comment or an explicit `doc = "..."`.
func (a Attribute) IsDoc() bool {
	return a.Meta != nil && a.Meta.Kind == MetaNameValue && a.Meta.Path.Is("doc")
}

type MetaKind int

const (
	MetaPath      MetaKind = iota // #[name]
	MetaList                      // #[name(a, b = 1, "c")]
	MetaNameValue                 // #[name = "v"]
)

type Meta struct {
	Span   diag.Span
	Kind   MetaKind
	Path   Path
	Nested []Nested // MetaList
	Lit    Lit      // MetaNameValue
}

// Nested is one element of a meta list: either a meta or a bare literal.
type Nested struct {
	Meta *Meta
	Lit  *Lit
}

type LitKind int

const (
	LitStr LitKind = iota
	LitInt
	LitFloat
	LitBool
	LitChar
)

func (k LitKind) String() string {
	switch k {
	case LitStr:
		return "string"
	case LitInt:
		return "integer"
	case LitFloat:
		return "float"
	case LitBool:
		return "bool"
	case LitChar:
		return "char"
	default:
		return "literal"
	}
}

// Lit is a literal. Value holds the unescaped text for strings and chars,
// and the source spelling otherwise.
type Lit struct {
	Span  diag.Span
	Kind  LitKind
	Value string
}

// Path is a `::`-separated name such as `std::vec::Vec<T>`.
type Path struct {
	Span     diag.Span
	Leading  bool
	Segments []PathSegment
}

// Is reports whether p is the single plain identifier name.
func (p Path) Is(name string) bool {
	ident, ok := p.Ident()
	return ok && ident == name
}

// Ident returns the identifier of a one-segment path without arguments.
func (p Path) Ident() (string, bool) {
	if p.Leading || len(p.Segments) != 1 || p.Segments[0].HasArgs() {
		return "", false
	}
	return p.Segments[0].Name, true
}

// Last returns the final segment. It panics on an empty path.
func (p Path) Last() PathSegment {
	return p.Segments[len(p.Segments)-1]
}

// PathSegment is one name of a path with its optional arguments. Angle
// holds `<...>` type arguments (lifetimes omitted); Fn holds the
// parenthesized sugar of `Fn(A) -> B`.
type PathSegment struct {
	Span     diag.Span
	Name     string
	Angle    bool
	Args     []TypeExpr
	Bindings int // `Item = T` and const arguments, which are kept only as a count
	Fn       *FnSig
}

func (s PathSegment) HasArgs() bool {
	return s.Angle || s.Fn != nil
}

// FnSig is a parameter list and an optional result type. A nil Output is
// the unit type.
type FnSig struct {
	Inputs []TypeExpr
	Output TypeExpr
}

// TypeExpr is a type expression node. Implementations are the Type* structs
// of this package.
type TypeExpr interface {
	TypeSpan() diag.Span
	typeExpr()
}

type (
	// TypePath is a named type, possibly generic.
	TypePath struct {
		Span diag.Span
		Path Path
	}
	// TypeRef is `&T`, `&'a T` or `&mut T`.
	TypeRef struct {
		Span diag.Span
		Mut  bool
		Elem TypeExpr
	}
	// TypePtr is `*const T` or `*mut T`.
	TypePtr struct {
		Span diag.Span
		Mut  bool
		Elem TypeExpr
	}
	TypeParen struct {
		Span diag.Span
		Elem TypeExpr
	}
	// TypeArray is `[T; N]`. Len is the source spelling of N.
	TypeArray struct {
		Span diag.Span
		Elem TypeExpr
		Len  string
	}
	TypeSlice struct {
		Span diag.Span
		Elem TypeExpr
	}
	// TypeTuple is `(A, B)`. The empty tuple is the unit type.
	TypeTuple struct {
		Span  diag.Span
		Elems []TypeExpr
	}
	TypeNever struct {
		Span diag.Span
	}
	// TypeFn is a function type: `fn(A) -> B`, `dyn Fn(A) -> B` or
	// `impl Fn(A) -> B`, with any extra `+ Send` style bounds dropped.
	TypeFn struct {
		Span diag.Span
		Sig  FnSig
	}
	// TypeOpaque is any other type form, such as a trait object without
	// `Fn` sugar, `_` or a macro invocation.
	TypeOpaque struct {
		Span diag.Span
		Desc string
	}
)

func (t *TypePath) TypeSpan() diag.Span   { return t.Span }
func (t *TypeRef) TypeSpan() diag.Span    { return t.Span }
func (t *TypePtr) TypeSpan() diag.Span    { return t.Span }
func (t *TypeParen) TypeSpan() diag.Span  { return t.Span }
func (t *TypeArray) TypeSpan() diag.Span  { return t.Span }
func (t *TypeSlice) TypeSpan() diag.Span  { return t.Span }
func (t *TypeTuple) TypeSpan() diag.Span  { return t.Span }
func (t *TypeNever) TypeSpan() diag.Span  { return t.Span }
func (t *TypeFn) TypeSpan() diag.Span     { return t.Span }
func (t *TypeOpaque) TypeSpan() diag.Span { return t.Span }

func (*TypePath) typeExpr()   {}
func (*TypeRef) typeExpr()    {}
func (*TypePtr) typeExpr()    {}
func (*TypeParen) typeExpr()  {}
func (*TypeArray) typeExpr()  {}
func (*TypeSlice) typeExpr()  {}
func (*TypeTuple) typeExpr()  {}
func (*TypeNever) typeExpr()  {}
func (*TypeFn) typeExpr()     {}
func (*TypeOpaque) typeExpr() {}

// Item is a top-level or module-level declaration.
type Item interface {
	ItemSpan() diag.Span
	ItemAttrs() []Attribute
	item()
}

// Generics records a `<...>` parameter list. Only the span and the
// parameter count are kept.
type Generics struct {
	Span   diag.Span
	Params int
}

func (g Generics) IsEmpty() bool { return g.Params == 0 }

type (
	// ItemMod is `mod name { ... }` or the out-of-line `mod name;`, which
	// has Inline == false and no items.
	ItemMod struct {
		Span     diag.Span
		NameSpan diag.Span
		Attrs    []Attribute
		Name     string
		Inline   bool
		Items    []Item
	}
	// ItemType is `type Name<G> = T;`.
	ItemType struct {
		Span     diag.Span
		Attrs    []Attribute
		Name     string
		Generics Generics
		Type     TypeExpr
	}
	ItemEnum struct {
		Span     diag.Span
		Attrs    []Attribute
		Name     string
		Generics Generics
		Variants []Variant
	}
	ItemStruct struct {
		Span     diag.Span
		Attrs    []Attribute
		Name     string
		Generics Generics
		Fields   Fields
	}
	// ItemUse is a `use` or `extern crate` declaration.
	ItemUse struct {
		Span  diag.Span
		Attrs []Attribute
	}
	// ItemOpaque is any declaration the reader does not model, identified
	// by its leading keyword (fn, trait, impl, union, const, ...).
	ItemOpaque struct {
		Span    diag.Span
		Attrs   []Attribute
		Keyword string
		Name    string
	}
)

func (x *ItemMod) ItemSpan() diag.Span    { return x.Span }
func (x *ItemType) ItemSpan() diag.Span   { return x.Span }
func (x *ItemEnum) ItemSpan() diag.Span   { return x.Span }
func (x *ItemStruct) ItemSpan() diag.Span { return x.Span }
func (x *ItemUse) ItemSpan() diag.Span    { return x.Span }
func (x *ItemOpaque) ItemSpan() diag.Span { return x.Span }

func (x *ItemMod) ItemAttrs() []Attribute    { return x.Attrs }
func (x *ItemType) ItemAttrs() []Attribute   { return x.Attrs }
func (x *ItemEnum) ItemAttrs() []Attribute   { return x.Attrs }
func (x *ItemStruct) ItemAttrs() []Attribute { return x.Attrs }
func (x *ItemUse) ItemAttrs() []Attribute    { return x.Attrs }
func (x *ItemOpaque) ItemAttrs() []Attribute { return x.Attrs }

func (*ItemMod) item()    {}
func (*ItemType) item()   {}
func (*ItemEnum) item()   {}
func (*ItemStruct) item() {}
func (*ItemUse) item()    {}
func (*ItemOpaque) item() {}

type Variant struct {
	Span   diag.Span
	Attrs  []Attribute
	Name   string
	Fields Fields
}

type FieldsKind int

const (
	FieldsUnit    FieldsKind = iota // no field list
	FieldsNamed                     // { a: A, b: B }
	FieldsUnnamed                   // (A, B)
)

type Fields struct {
	Span diag.Span
	Kind FieldsKind
	List []Field
}

// Field is a struct or variant field. Name is empty for unnamed fields.
type Field struct {
	Span  diag.Span
	Attrs []Attribute
	Name  string
	Type  TypeExpr
}

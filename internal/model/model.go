// Package model defines the canonical schema model every emitter consumes.
//
// The scanner builds it once per run; the skip and rename passes rewrite it
// in place; an emitter then reads it.
package model

import "github.com/mark3labs/ridl/internal/diag"

// Item is one declaration. The set of implementations is closed:
// *Module, *Alias, *Enum, *Union, *Record and *Func.
type Item interface {
	ItemName() string
	ItemSpan() diag.Span
	item()
}

// Module is a named scope of items. The root module has an empty name.
type Module struct {
	Span    diag.Span
	Name    string
	Comment string
	Items   []Item
}

// Alias gives a new name to an existing type.
type Alias struct {
	Span    diag.Span
	Name    string
	Attrs   Attrs
	Comment string
	Origin  Type
}

// Enum is a finite set of constant names.
type Enum struct {
	Span    diag.Span
	Name    string
	Comment string
	Cases   []EnumCase
}

type EnumCase struct {
	Span    diag.Span
	Name    string
	Comment string
}

// Serialization selects how a union's discriminant is encoded.
// An empty Discriminant means name-based: each variant is a single-key
// wrapper object. Otherwise the discriminant is a field named Discriminant
// embedded in the variant's own content.
type Serialization struct {
	Discriminant string
}

func NameBased() Serialization                  { return Serialization{} }
func TypeBased(discriminant string) Serialization { return Serialization{Discriminant: discriminant} }

func (s Serialization) IsNameBased() bool { return s.Discriminant == "" }

// Union is a discriminated union; every variant carries exactly one value.
type Union struct {
	Span          diag.Span
	Name          string
	Comment       string
	Serialization Serialization
	Attrs         Attrs
	Variants      []Variant
}

type Variant struct {
	Span    diag.Span
	Name    string
	Comment string
	Attrs   Attrs
	Content Type
}

// Record is a product type with named fields.
type Record struct {
	Span    diag.Span
	Name    string
	Comment string
	Attrs   Attrs
	Fields  []Field
}

type Field struct {
	Span    diag.Span
	Name    string
	Comment string
	Attrs   Attrs
	Content Type
}

// Func is a single-argument function type alias.
type Func struct {
	Span    diag.Span
	Name    string
	Comment string
	Attrs   Attrs
	Input   Type
	Output  Type
}

func (x *Module) ItemName() string { return x.Name }
func (x *Alias) ItemName() string  { return x.Name }
func (x *Enum) ItemName() string   { return x.Name }
func (x *Union) ItemName() string  { return x.Name }
func (x *Record) ItemName() string { return x.Name }
func (x *Func) ItemName() string   { return x.Name }

func (x *Module) ItemSpan() diag.Span { return x.Span }
func (x *Alias) ItemSpan() diag.Span  { return x.Span }
func (x *Enum) ItemSpan() diag.Span   { return x.Span }
func (x *Union) ItemSpan() diag.Span  { return x.Span }
func (x *Record) ItemSpan() diag.Span { return x.Span }
func (x *Func) ItemSpan() diag.Span   { return x.Span }

func (*Module) item() {}
func (*Alias) item()  {}
func (*Enum) item()   {}
func (*Union) item()  {}
func (*Record) item() {}
func (*Func) item()   {}

// Walk calls fn for every item under m in declaration order, depth first.
// Children of a module are visited after the module itself.
func (m *Module) Walk(fn func(Item)) {
	for _, it := range m.Items {
		fn(it)
		if sub, ok := it.(*Module); ok {
			sub.Walk(fn)
		}
	}
}

// Count returns the number of items under m, at any depth.
func (m *Module) Count() int {
	n := 0
	m.Walk(func(Item) { n++ })
	return n
}

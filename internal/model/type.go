package model

import "fmt"

// PrimKind enumerates the built-in primitive types.
type PrimKind int

const (
	Bool PrimKind = iota + 1
	Int32
	Int64
	Float32
	Float64
	Text
)

var primNames = map[PrimKind]string{
	Bool:    "Bool",
	Int32:   "I32",
	Int64:   "I64",
	Float32: "F32",
	Float64: "F64",
	Text:    "String",
}

func (k PrimKind) String() string {
	if s, ok := primNames[k]; ok {
		return s
	}
	return fmt.Sprintf("PrimKind(%d)", int(k))
}

// ParsePrimKind is the inverse of PrimKind.String.
func ParsePrimKind(s string) (PrimKind, bool) {
	for k, name := range primNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// ScalarKind tags a Scalar. The zero value is ScalarUnit.
type ScalarKind int

const (
	ScalarUnit ScalarKind = iota
	ScalarPrim
	ScalarRef
)

// Scalar is a single, unwrapped value type: a named reference, a primitive,
// or unit.
type Scalar struct {
	Kind ScalarKind
	Prim PrimKind // set when Kind == ScalarPrim
	Name string   // set when Kind == ScalarRef
}

// Unit returns the unit scalar.
func Unit() Scalar { return Scalar{} }

// Prim returns a primitive scalar.
func Prim(k PrimKind) Scalar { return Scalar{Kind: ScalarPrim, Prim: k} }

// Ref returns a reference to a declared type name.
func Ref(name string) Scalar { return Scalar{Kind: ScalarRef, Name: name} }

func (s Scalar) String() string {
	switch s.Kind {
	case ScalarUnit:
		return "()"
	case ScalarPrim:
		return s.Prim.String()
	case ScalarRef:
		return s.Name
	default:
		return fmt.Sprintf("Scalar(%d)", int(s.Kind))
	}
}

// TypeKind tags a Type. The zero value is TypeUnrecognized.
type TypeKind int

const (
	TypeUnrecognized TypeKind = iota
	TypeSequence
	TypeOptional
	TypeScalar
	TypeNever
)

// Type is the shape of a value position. Only one level of wrapping is
// representable: a Sequence or Optional always holds a Scalar.
type Type struct {
	Kind TypeKind
	Elem Scalar
}

// Sequence returns a 0..N type of s.
func Sequence(s Scalar) Type { return Type{Kind: TypeSequence, Elem: s} }

// Optional returns a 0..1 type of s.
func Optional(s Scalar) Type { return Type{Kind: TypeOptional, Elem: s} }

// One returns an exactly-one type of s.
func One(s Scalar) Type { return Type{Kind: TypeScalar, Elem: s} }

// Never returns the uninhabited type.
func Never() Type { return Type{Kind: TypeNever} }

func (t Type) IsSequence() bool { return t.Kind == TypeSequence }
func (t Type) IsOptional() bool { return t.Kind == TypeOptional }

func (t Type) String() string {
	switch t.Kind {
	case TypeSequence:
		return "[" + t.Elem.String() + "]"
	case TypeOptional:
		return t.Elem.String() + "?"
	case TypeScalar:
		return t.Elem.String()
	case TypeNever:
		return "!"
	default:
		return "<unrecognized>"
	}
}

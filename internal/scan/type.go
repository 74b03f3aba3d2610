package scan

import (
	"github.com/mark3labs/ridl/internal/diag"
	"github.com/mark3labs/ridl/internal/model"
	"github.com/mark3labs/ridl/internal/syntax"
)

var primitives = map[string]model.PrimKind{
	"bool":   model.Bool,
	"i32":    model.Int32,
	"i64":    model.Int64,
	"f32":    model.Float32,
	"f64":    model.Float64,
	"str":    model.Text,
	"String": model.Text,
}

const unsupportedTypeMsg = "unsupported type pattern (supported shapes are T, Vec<T>, [T], [T; N], Option<T>, () and !)"

// Recognize resolves a type expression to one of the supported shapes.
// References, pointers and parentheses are stripped first. Anything else
// yields an unrecognized type and an UnsupportedConstruct diagnostic.
func Recognize(t syntax.TypeExpr) (model.Type, error) {
	t = strip(t)
	if _, ok := t.(*syntax.TypeNever); ok {
		return model.Never(), nil
	}
	if elem, ok := sequenceElem(t); ok {
		if s, err := Scalar(elem); err == nil {
			return model.Sequence(s), nil
		}
	}
	if elem, ok := genericElem(t, "Option"); ok {
		if s, err := Scalar(elem); err == nil {
			return model.Optional(s), nil
		}
	}
	if s, err := Scalar(t); err == nil {
		return model.One(s), nil
	}
	return model.Type{}, diag.Errorf(t.TypeSpan(), diag.UnsupportedConstruct, unsupportedTypeMsg)
}

// Scalar resolves an unwrapped type: a primitive, unit, or a name without
// generic arguments. Qualified paths resolve by their last segment.
func Scalar(t syntax.TypeExpr) (model.Scalar, error) {
	t = strip(t)
	switch x := t.(type) {
	case *syntax.TypeTuple:
		if len(x.Elems) == 0 {
			return model.Unit(), nil
		}
	case *syntax.TypePath:
		if seg, ok := lastSegment(x.Path); ok && !seg.HasArgs() {
			if k, ok := primitives[seg.Name]; ok {
				return model.Prim(k), nil
			}
			return model.Ref(seg.Name), nil
		}
	}
	return model.Scalar{}, diag.Errorf(t.TypeSpan(), diag.UnsupportedConstruct, "not a reference to an explicit name")
}

func strip(t syntax.TypeExpr) syntax.TypeExpr {
	for {
		switch x := t.(type) {
		case *syntax.TypeRef:
			t = x.Elem
		case *syntax.TypePtr:
			t = x.Elem
		case *syntax.TypeParen:
			t = x.Elem
		default:
			return t
		}
	}
}

func sequenceElem(t syntax.TypeExpr) (syntax.TypeExpr, bool) {
	switch x := t.(type) {
	case *syntax.TypeArray:
		return x.Elem, true
	case *syntax.TypeSlice:
		return x.Elem, true
	}
	return genericElem(t, "Vec")
}

// genericElem matches a path ending in `name<T, ...>` and returns its first
// type argument.
func genericElem(t syntax.TypeExpr, name string) (syntax.TypeExpr, bool) {
	p, ok := t.(*syntax.TypePath)
	if !ok {
		return nil, false
	}
	seg, ok := lastSegment(p.Path)
	if !ok || seg.Name != name || !seg.Angle || len(seg.Args) == 0 {
		return nil, false
	}
	return seg.Args[0], true
}

// lastSegment returns the final segment of p. Arguments are only allowed
// there, so `a<T>::B` does not resolve.
func lastSegment(p syntax.Path) (syntax.PathSegment, bool) {
	if len(p.Segments) == 0 {
		return syntax.PathSegment{}, false
	}
	for _, seg := range p.Segments[:len(p.Segments)-1] {
		if seg.HasArgs() {
			return syntax.PathSegment{}, false
		}
	}
	return p.Last(), true
}

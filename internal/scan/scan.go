// Package scan builds the canonical schema model from a parsed source file.
//
// Scanning never stops at the first problem: every declaration is visited
// and the diagnostics of all failing declarations are returned together, in
// source order.
package scan

import (
	"context"
	"strings"

	"github.com/mark3labs/ridl/internal/diag"
	"github.com/mark3labs/ridl/internal/model"
	"github.com/mark3labs/ridl/internal/syntax"
)

// Options controls a scan.
type Options struct {
	// Jobs bounds how many top-level declarations are scanned at once.
	// Values below 2 scan sequentially. Output does not depend on it.
	Jobs int
}

// Scan converts f into a root module with an empty name.
func Scan(ctx context.Context, f *syntax.File, opts Options) (*model.Module, error) {
	var c diag.Collector
	comment, err := DocComment(f.Attrs)
	c.Add(err)
	items, err := diag.MapOptionalConcurrent(ctx, opts.Jobs, f.Items, scanItem)
	c.Add(err)
	if err := c.Err(); err != nil {
		return nil, err
	}
	return &model.Module{Comment: comment, Items: items}, nil
}

func scanItem(it syntax.Item) (model.Item, bool, error) {
	switch x := it.(type) {
	case *syntax.ItemMod:
		m, err := scanMod(x)
		return m, err == nil, err
	case *syntax.ItemType:
		a, err := scanAlias(x)
		return a, err == nil, err
	case *syntax.ItemEnum:
		e, err := scanEnum(x)
		return e, err == nil, err
	case *syntax.ItemStruct:
		r, err := scanRecord(x)
		return r, err == nil, err
	case *syntax.ItemUse:
		return nil, false, nil
	case *syntax.ItemOpaque:
		return nil, false, diag.Errorf(x.Span, diag.UnsupportedConstruct, "unsupported item `%s`", x.Keyword)
	default:
		return nil, false, diag.Errorf(it.ItemSpan(), diag.UnsupportedConstruct, "unsupported item")
	}
}

func scanMod(x *syntax.ItemMod) (*model.Module, error) {
	var c diag.Collector
	comment, err := DocComment(x.Attrs)
	c.Add(err)
	items, err := diag.MapOptional(x.Items, scanItem)
	c.Add(err)
	if err := c.Err(); err != nil {
		return nil, err
	}
	return &model.Module{Span: x.NameSpan, Name: x.Name, Comment: comment, Items: items}, nil
}

func genericsError(g syntax.Generics) error {
	if g.IsEmpty() {
		return nil
	}
	return diag.Errorf(g.Span, diag.UnsupportedConstruct, "generic parameter is not supported")
}

func scanAlias(x *syntax.ItemType) (model.Item, error) {
	var c diag.Collector
	c.Add(genericsError(x.Generics))
	comment, err := DocComment(x.Attrs)
	c.Add(err)
	attrs, err := Facets(x.Attrs)
	c.Add(err)

	if fn, ok := x.Type.(*syntax.TypeFn); ok {
		in, out := model.One(model.Unit()), model.One(model.Unit())
		if len(fn.Sig.Inputs) != 1 {
			c.Addf(fn.Span, diag.UnsupportedConstruct, "function alias must take exactly one input, found %d", len(fn.Sig.Inputs))
		} else if s, err := Scalar(fn.Sig.Inputs[0]); err != nil {
			c.Add(err)
		} else {
			in = model.One(s)
		}
		if fn.Sig.Output != nil {
			if s, err := Scalar(fn.Sig.Output); err != nil {
				c.Add(err)
			} else {
				out = model.One(s)
			}
		}
		if err := c.Err(); err != nil {
			return nil, err
		}
		return &model.Func{Span: x.Span, Name: x.Name, Comment: comment, Attrs: attrs, Input: in, Output: out}, nil
	}

	origin, err := Recognize(x.Type)
	c.Add(err)
	if err := c.Err(); err != nil {
		return nil, err
	}
	return &model.Alias{Span: x.Span, Name: x.Name, Comment: comment, Attrs: attrs, Origin: origin}, nil
}

// scanEnum yields an Enum when no variant carries data and a Union
// otherwise.
func scanEnum(x *syntax.ItemEnum) (model.Item, error) {
	var c diag.Collector
	c.Add(genericsError(x.Generics))
	comment, err := DocComment(x.Attrs)
	c.Add(err)

	if !hasPayload(x.Variants) {
		cases, err := diag.Map(x.Variants, scanCase)
		c.Add(err)
		if err := c.Err(); err != nil {
			return nil, err
		}
		return &model.Enum{Span: x.Span, Name: x.Name, Comment: comment, Cases: cases}, nil
	}

	ser, err := Serialization(x.Attrs)
	c.Add(err)
	attrs, err := Facets(x.Attrs)
	c.Add(err)
	variants, err := diag.Map(x.Variants, scanVariant)
	c.Add(err)
	if err := c.Err(); err != nil {
		return nil, err
	}
	return &model.Union{
		Span:          x.Span,
		Name:          x.Name,
		Comment:       comment,
		Serialization: ser,
		Attrs:         attrs,
		Variants:      variants,
	}, nil
}

func hasPayload(vs []syntax.Variant) bool {
	for _, v := range vs {
		if len(v.Fields.List) > 0 {
			return true
		}
	}
	return false
}

func scanCase(v syntax.Variant) (model.EnumCase, error) {
	comment, err := DocComment(v.Attrs)
	if err != nil {
		return model.EnumCase{}, err
	}
	return model.EnumCase{Span: v.Span, Name: v.Name, Comment: comment}, nil
}

func scanVariant(v syntax.Variant) (model.Variant, error) {
	switch {
	case v.Fields.Kind == syntax.FieldsNamed:
		return model.Variant{}, diag.Errorf(v.Fields.Span, diag.UnsupportedConstruct,
			"only unnamed field is supported (no support for named field)")
	case len(v.Fields.List) == 0:
		return model.Variant{}, diag.Errorf(v.Span, diag.UnsupportedConstruct, "all sum-type variant must have a data")
	case len(v.Fields.List) != 1:
		return model.Variant{}, diag.Errorf(v.Fields.Span, diag.UnsupportedConstruct,
			"only single field is supported in sum-type variant (make an explicitly named struct to store multiple fields)")
	}

	var c diag.Collector
	comment, err := DocComment(v.Attrs)
	c.Add(err)
	attrs, err := Facets(v.Attrs)
	c.Add(err)
	content, err := Recognize(v.Fields.List[0].Type)
	c.Add(err)
	if err := c.Err(); err != nil {
		return model.Variant{}, err
	}
	return model.Variant{Span: v.Span, Name: v.Name, Comment: comment, Attrs: attrs, Content: content}, nil
}

func scanRecord(x *syntax.ItemStruct) (model.Item, error) {
	var c diag.Collector
	c.Add(genericsError(x.Generics))
	if x.Fields.Kind == syntax.FieldsUnnamed {
		c.Addf(x.Fields.Span, diag.UnsupportedConstruct,
			"only named fields are supported in struct (no support for unnamed fields)")
		return nil, c.Err()
	}
	comment, err := DocComment(x.Attrs)
	c.Add(err)
	attrs, err := Facets(x.Attrs)
	c.Add(err)
	fields, err := diag.Map(x.Fields.List, scanField)
	c.Add(err)
	if err := c.Err(); err != nil {
		return nil, err
	}
	return &model.Record{Span: x.Span, Name: x.Name, Comment: comment, Attrs: attrs, Fields: fields}, nil
}

func scanField(f syntax.Field) (model.Field, error) {
	var c diag.Collector
	comment, err := DocComment(f.Attrs)
	c.Add(err)
	attrs, err := Facets(f.Attrs)
	c.Add(err)
	content, err := Recognize(f.Type)
	c.Add(err)
	if err := c.Err(); err != nil {
		return model.Field{}, err
	}
	return model.Field{Span: f.Span, Name: f.Name, Comment: comment, Attrs: attrs, Content: content}, nil
}

// DocComment joins the trimmed lines of every doc attribute with "\n".
// A `doc` attribute that is not a string name-value is malformed.
func DocComment(attrs []syntax.Attribute) (string, error) {
	var (
		lines []string
		c     diag.Collector
	)
	for _, a := range attrs {
		if a.IsDoc() {
			if a.Meta.Lit.Kind != syntax.LitStr {
				c.Addf(a.Span, diag.MalformedAttribute, "unexpected comment form")
				continue
			}
			lines = append(lines, strings.TrimSpace(a.Meta.Lit.Value))
			continue
		}
		if a.Meta != nil && a.Meta.Path.Is("doc") {
			c.Addf(a.Span, diag.MalformedAttribute, "unexpected comment form")
		}
	}
	if err := c.Err(); err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

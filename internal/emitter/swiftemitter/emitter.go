// Package swiftemitter renders the canonical model as Swift 5 declarations.
//
// Records become structs, enumerations become String-backed enums and
// unions become enums with one associated value per case. Every generated
// type conforms to Equatable and Codable.
package swiftemitter

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/ridl/internal/diag"
	"github.com/mark3labs/ridl/internal/emitter"
	"github.com/mark3labs/ridl/internal/model"
)

// Options controls layout of the generated source.
type Options struct {
	Indent string // member indentation; four spaces when empty
}

// Emit renders m as one Swift source file.
func Emit(_ context.Context, m *model.Module, opts Options) (*emitter.Result, error) {
	if m == nil {
		return nil, fmt.Errorf("swiftemitter: nil module")
	}
	r := renderer{indent: opts.Indent}
	if r.indent == "" {
		r.indent = "    "
	}
	code, err := r.module(m)
	if err != nil {
		return nil, err
	}
	return &emitter.Result{Target: emitter.TargetSwift5, Content: []byte(code + "\n"), Items: len(m.Items)}, nil
}

type renderer struct {
	indent string
}

func (r renderer) module(m *model.Module) (string, error) {
	items, err := diag.Map(m.Items, r.item)
	if err != nil {
		return "", err
	}
	var parts []string
	for _, it := range items {
		if it != "" {
			parts = append(parts, it)
		}
	}
	return emitter.Block(m.Comment, strings.Join(parts, "\n\n")), nil
}

func (r renderer) item(it model.Item) (string, error) {
	switch x := it.(type) {
	case *model.Module:
		return r.module(x)
	case *model.Alias:
		origin, err := typeName(x.Origin, x.Span)
		if err != nil {
			return "", err
		}
		return emitter.Block(x.Comment, fmt.Sprintf("typealias %s = %s", x.Name, origin)), nil
	case *model.Enum:
		cases := make([]string, 0, len(x.Cases))
		for _, c := range x.Cases {
			cases = append(cases, emitter.Block(c.Comment, fmt.Sprintf("case %s = %q", c.Name, c.Name)))
		}
		return emitter.Block(x.Comment, r.body(fmt.Sprintf("enum %s: String, Equatable, Codable", x.Name), cases)), nil
	case *model.Union:
		cases, err := diag.Map(x.Variants, func(v model.Variant) (string, error) {
			payload, err := typeName(v.Content, v.Span)
			if err != nil {
				return "", err
			}
			return emitter.Block(v.Comment, fmt.Sprintf("case %s(%s)", v.Name, payload)), nil
		})
		if err != nil {
			return "", err
		}
		return emitter.Block(x.Comment, r.body(fmt.Sprintf("enum %s: Equatable, Codable", x.Name), cases)), nil
	case *model.Record:
		fields, err := diag.Map(x.Fields, func(f model.Field) (string, error) {
			ty, err := typeName(f.Content, f.Span)
			if err != nil {
				return "", err
			}
			return emitter.Block(f.Comment, fmt.Sprintf("var %s: %s", f.Name, ty)), nil
		})
		if err != nil {
			return "", err
		}
		return emitter.Block(x.Comment, r.body(fmt.Sprintf("struct %s: Equatable, Codable", x.Name), fields)), nil
	case *model.Func:
		var c diag.Collector
		in, err := typeName(x.Input, x.Span)
		c.Add(err)
		out, err := typeName(x.Output, x.Span)
		c.Add(err)
		if err := c.Err(); err != nil {
			return "", err
		}
		return emitter.Block(x.Comment, fmt.Sprintf("typealias %s = (%s) -> (%s)", x.Name, in, out)), nil
	default:
		panic(fmt.Sprintf("swiftemitter: unhandled item %T", it))
	}
}

// body renders a braced declaration with one member per line.
func (r renderer) body(head string, members []string) string {
	if len(members) == 0 {
		return head + " {\n}"
	}
	return head + " {\n" + emitter.Indent(strings.Join(members, "\n"), r.indent) + "\n}"
}

func typeName(t model.Type, span diag.Span) (string, error) {
	switch t.Kind {
	case model.TypeSequence:
		return "[" + scalarName(t.Elem) + "]", nil
	case model.TypeOptional:
		return scalarName(t.Elem) + "?", nil
	case model.TypeScalar:
		return scalarName(t.Elem), nil
	case model.TypeNever:
		return "", diag.Errorf(span, diag.UnrenderableConstruct, "never-type is not supported")
	default:
		return "", diag.Errorf(span, diag.UnrenderableConstruct, "unsupported type pattern")
	}
}

// scalarName maps unit to Void, which Swift spells as the empty tuple.
func scalarName(s model.Scalar) string {
	switch s.Kind {
	case model.ScalarRef:
		return s.Name
	case model.ScalarPrim:
		return primNames[s.Prim]
	default:
		return "Void"
	}
}

var primNames = map[model.PrimKind]string{
	model.Bool:    "Bool",
	model.Int32:   "Int32",
	model.Int64:   "Int64",
	model.Float32: "Float",
	model.Float64: "Double",
	model.Text:    "String",
}

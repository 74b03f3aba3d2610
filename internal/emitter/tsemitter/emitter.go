// Package tsemitter renders the canonical model as TypeScript 4
// declarations.
//
// Records become object types, enumerations become string enums and unions
// become unions of single-key object types. Optionality is only expressible
// on record fields, as a `name?:` marker.
package tsemitter

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

// Emit renders m as one TypeScript source file.
func Emit(_ context.Context, m *model.Module, opts Options) (*emitter.Result, error) {
	if m == nil {
		return nil, fmt.Errorf("tsemitter: nil module")
	}
	r := renderer{indent: opts.Indent}
	if r.indent == "" {
		r.indent = "    "
	}
	code, err := r.module(m)
	if err != nil {
		return nil, err
	}
	return &emitter.Result{Target: emitter.TargetTypeScript4, Content: []byte(code + "\n"), Items: len(m.Items)}, nil
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
		return emitter.Block(x.Comment, fmt.Sprintf("type %s = %s", x.Name, origin)), nil
	case *model.Enum:
		cases := make([]string, 0, len(x.Cases))
		for _, c := range x.Cases {
			cases = append(cases, emitter.Block(c.Comment, fmt.Sprintf("%s = %q", c.Name, c.Name)))
		}
		return emitter.Block(x.Comment, r.body("enum "+x.Name, cases, ",\n")), nil
	case *model.Union:
		shapes, err := diag.Map(x.Variants, func(v model.Variant) (string, error) {
			payload, err := typeName(v.Content, v.Span)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("{ %s: %s }", v.Name, payload), nil
		})
		if err != nil {
			return "", err
		}
		if len(shapes) == 0 {
			shapes = []string{"never"}
		}
		return emitter.Block(x.Comment, fmt.Sprintf("type %s = %s", x.Name, strings.Join(shapes, " | "))), nil
	case *model.Record:
		fields, err := diag.Map(x.Fields, func(f model.Field) (string, error) {
			ty, err := typeName(f.Content, f.Span)
			if err != nil {
				return "", err
			}
			name := f.Name
			if f.Content.IsOptional() {
				name += "?"
			}
			return emitter.Block(f.Comment, fmt.Sprintf("%s: %s", name, ty)), nil
		})
		if err != nil {
			return "", err
		}
		return emitter.Block(x.Comment, r.body(fmt.Sprintf("type %s =", x.Name), fields, "\n")), nil
	case *model.Func:
		var c diag.Collector
		in, err := typeName(x.Input, x.Span)
		c.Add(err)
		out := "void"
		if x.Output != model.One(model.Unit()) {
			out, err = typeName(x.Output, x.Span)
			c.Add(err)
		}
		if err := c.Err(); err != nil {
			return "", err
		}
		return emitter.Block(x.Comment, fmt.Sprintf("declare function %s(input: %s): %s", x.Name, in, out)), nil
	default:
		panic(fmt.Sprintf("tsemitter: unhandled item %T", it))
	}
}

func (r renderer) body(head string, members []string, sep string) string {
	if len(members) == 0 {
		return head + " {\n}"
	}
	return head + " {\n" + emitter.Indent(strings.Join(members, sep), r.indent) + "\n}"
}

// typeName renders a value position. An Optional renders as its element;
// the enclosing record field carries the marker.
func typeName(t model.Type, span diag.Span) (string, error) {
	switch t.Kind {
	case model.TypeSequence:
		elem, err := scalarName(t.Elem, span)
		return elem + "[]", err
	case model.TypeOptional, model.TypeScalar:
		return scalarName(t.Elem, span)
	case model.TypeNever:
		return "", diag.Errorf(span, diag.UnrenderableConstruct, "never-type is not supported")
	default:
		return "", diag.Errorf(span, diag.UnrenderableConstruct, "unsupported type pattern")
	}
}

func scalarName(s model.Scalar, span diag.Span) (string, error) {
	switch s.Kind {
	case model.ScalarRef:
		return s.Name, nil
	case model.ScalarPrim:
		switch s.Prim {
		case model.Bool:
			return "boolean", nil
		case model.Int32, model.Float64:
			return "number", nil
		case model.Int64:
			return "", diag.Errorf(span, diag.UnrenderableConstruct, "64-bit integer unsupported (`i64` does not fit a TypeScript number)")
		case model.Float32:
			return "", diag.Errorf(span, diag.UnrenderableConstruct, "32-bit float unsupported (`f32` does not round-trip through a TypeScript number)")
		default:
			return "string", nil
		}
	default:
		return "", diag.Errorf(span, diag.UnrenderableConstruct, "unit-type (`()`) is not supported")
	}
}

// Package ridlemitter renders the canonical model as a ridl1 document and
// reads such documents back. Every model can be rendered; decoding the
// output yields an equal model.
package ridlemitter

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/mark3labs/ridl/internal/diag"
	"github.com/mark3labs/ridl/internal/emitter"
	"github.com/mark3labs/ridl/internal/model"
)

// Options controls how the model is serialized.
type Options struct {
	Encoding emitter.Encoding // yaml (default) or json
}

// Emit renders m. The only failure is an EncodeError from the serializer.
func Emit(_ context.Context, m *model.Module, opts Options) (*emitter.Result, error) {
	if m == nil {
		return nil, fmt.Errorf("ridlemitter: nil module")
	}
	doc := document{File: encodeModule(m)}
	content, err := emitter.Encode(doc, opts.Encoding, false)
	if err != nil {
		return nil, diag.Errorf(diag.Span{}, diag.EncodeError, "encode ridl1 document: %v", err)
	}
	return &emitter.Result{Target: emitter.TargetRIDL1, Content: content, Items: len(m.Items)}, nil
}

// Decode parses a ridl1 document in either encoding. Problems are
// reported as ReadError diagnostics.
func Decode(content []byte) (*model.Module, error) {
	var doc document
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, diag.Errorf(diag.Span{}, diag.ReadError, "parse ridl1 document: %v", err)
	}
	if doc.File == nil {
		return nil, diag.Errorf(diag.Span{}, diag.ReadError, "ridl1 document has no `file` entry")
	}
	d := &decoder{}
	m := d.module(doc.File)
	if err := d.c.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// Encoding.

func spanText(s diag.Span) string {
	if s.IsZero() {
		return ""
	}
	return s.String()
}

func encodeModule(m *model.Module) *moduleWire {
	w := &moduleWire{Span: spanText(m.Span), Name: m.Name, Comment: m.Comment}
	for _, it := range m.Items {
		w.Items = append(w.Items, encodeItem(it))
	}
	return w
}

func encodeItem(it model.Item) itemWire {
	switch x := it.(type) {
	case *model.Module:
		return itemWire{Mod: encodeModule(x)}
	case *model.Alias:
		return itemWire{New: &aliasWire{
			Span: spanText(x.Span), Name: x.Name, Comment: x.Comment,
			Attrs: encodeAttrs(x.Attrs), Origin: encodeType(x.Origin),
		}}
	case *model.Enum:
		w := &enumWire{Span: spanText(x.Span), Name: x.Name, Comment: x.Comment}
		for _, c := range x.Cases {
			w.Cases = append(w.Cases, caseWire{Span: spanText(c.Span), Name: c.Name, Comment: c.Comment})
		}
		return itemWire{Enum: w}
	case *model.Union:
		w := &unionWire{
			Span: spanText(x.Span), Name: x.Name, Comment: x.Comment,
			Serialization: encodeSerialization(x.Serialization),
			Attrs:         encodeAttrs(x.Attrs),
		}
		for _, v := range x.Variants {
			w.Variants = append(w.Variants, memberWire{
				Span: spanText(v.Span), Name: v.Name, Comment: v.Comment,
				Attrs: encodeAttrs(v.Attrs), Content: encodeType(v.Content),
			})
		}
		return itemWire{Sum: w}
	case *model.Record:
		w := &recordWire{Span: spanText(x.Span), Name: x.Name, Comment: x.Comment, Attrs: encodeAttrs(x.Attrs)}
		for _, f := range x.Fields {
			w.Fields = append(w.Fields, memberWire{
				Span: spanText(f.Span), Name: f.Name, Comment: f.Comment,
				Attrs: encodeAttrs(f.Attrs), Content: encodeType(f.Content),
			})
		}
		return itemWire{Prod: w}
	case *model.Func:
		return itemWire{Func: &funcWire{
			Span: spanText(x.Span), Name: x.Name, Comment: x.Comment, Attrs: encodeAttrs(x.Attrs),
			Input: encodeType(x.Input), Output: encodeType(x.Output),
		}}
	default:
		panic(fmt.Sprintf("ridlemitter: unhandled item %T", it))
	}
}

func encodeSerialization(s model.Serialization) serializationWire {
	if s.IsNameBased() {
		return serializationWire{Form: formNameBased}
	}
	return serializationWire{Form: formTypeBased, Discriminant: s.Discriminant}
}

func encodeAttrs(attrs model.Attrs) []facetWire {
	var out []facetWire
	for _, f := range attrs {
		out = append(out, facetWire{Kind: f.Kind.String(), Status: f.Status, MIME: f.MIME})
	}
	return out
}

func encodeType(t model.Type) typeWire {
	switch t.Kind {
	case model.TypeSequence:
		return typeWire{Vector: encodeScalar(t.Elem)}
	case model.TypeOptional:
		return typeWire{Option: encodeScalar(t.Elem)}
	case model.TypeScalar:
		return typeWire{Scalar: encodeScalar(t.Elem)}
	case model.TypeNever:
		return typeWire{Never: true}
	default:
		return typeWire{}
	}
}

func encodeScalar(s model.Scalar) *scalarWire {
	switch s.Kind {
	case model.ScalarPrim:
		return &scalarWire{Prim: s.Prim.String()}
	case model.ScalarRef:
		return &scalarWire{Def: s.Name}
	default:
		return &scalarWire{Unit: true}
	}
}

// Decoding.

type decoder struct {
	c diag.Collector
}

func (d *decoder) span(raw string) diag.Span {
	if raw == "" {
		return diag.Span{}
	}
	s, err := diag.ParseSpan(raw)
	if err != nil {
		d.c.Addf(diag.Span{}, diag.ReadError, "%v", err)
	}
	return s
}

func (d *decoder) module(w *moduleWire) *model.Module {
	m := &model.Module{Span: d.span(w.Span), Name: w.Name, Comment: w.Comment}
	for i := range w.Items {
		if it := d.item(&w.Items[i]); it != nil {
			m.Items = append(m.Items, it)
		}
	}
	return m
}

func (d *decoder) item(w *itemWire) model.Item {
	n := 0
	for _, set := range []bool{w.Mod != nil, w.New != nil, w.Enum != nil, w.Sum != nil, w.Prod != nil, w.Func != nil} {
		if set {
			n++
		}
	}
	if n != 1 {
		d.c.Addf(diag.Span{}, diag.ReadError, "item must have exactly one of Mod, New, Enum, Sum, Prod, Func (found %d)", n)
		return nil
	}

	switch {
	case w.Mod != nil:
		return d.module(w.Mod)
	case w.New != nil:
		x := w.New
		return &model.Alias{
			Span: d.span(x.Span), Name: x.Name, Comment: x.Comment,
			Attrs: d.attrs(x.Attrs), Origin: d.typ(x.Origin),
		}
	case w.Enum != nil:
		x := w.Enum
		e := &model.Enum{Span: d.span(x.Span), Name: x.Name, Comment: x.Comment}
		for _, c := range x.Cases {
			e.Cases = append(e.Cases, model.EnumCase{Span: d.span(c.Span), Name: c.Name, Comment: c.Comment})
		}
		return e
	case w.Sum != nil:
		x := w.Sum
		u := &model.Union{
			Span: d.span(x.Span), Name: x.Name, Comment: x.Comment,
			Serialization: d.serialization(x.Serialization),
			Attrs:         d.attrs(x.Attrs),
		}
		for _, v := range x.Variants {
			u.Variants = append(u.Variants, model.Variant{
				Span: d.span(v.Span), Name: v.Name, Comment: v.Comment,
				Attrs: d.attrs(v.Attrs), Content: d.typ(v.Content),
			})
		}
		return u
	case w.Prod != nil:
		x := w.Prod
		r := &model.Record{Span: d.span(x.Span), Name: x.Name, Comment: x.Comment, Attrs: d.attrs(x.Attrs)}
		for _, f := range x.Fields {
			r.Fields = append(r.Fields, model.Field{
				Span: d.span(f.Span), Name: f.Name, Comment: f.Comment,
				Attrs: d.attrs(f.Attrs), Content: d.typ(f.Content),
			})
		}
		return r
	default:
		x := w.Func
		return &model.Func{
			Span: d.span(x.Span), Name: x.Name, Comment: x.Comment, Attrs: d.attrs(x.Attrs),
			Input: d.typ(x.Input), Output: d.typ(x.Output),
		}
	}
}

func (d *decoder) serialization(w serializationWire) model.Serialization {
	switch w.Form {
	case "", formNameBased:
		return model.NameBased()
	case formTypeBased:
		if w.Discriminant == "" {
			d.c.Addf(diag.Span{}, diag.ReadError, "type-based serialization needs a discriminant")
		}
		return model.TypeBased(w.Discriminant)
	default:
		d.c.Addf(diag.Span{}, diag.ReadError, "unknown serialization form %q", w.Form)
		return model.NameBased()
	}
}

func (d *decoder) attrs(ws []facetWire) model.Attrs {
	var out model.Attrs
	for _, w := range ws {
		kind, ok := model.ParseFacetKind(w.Kind)
		if !ok {
			d.c.Addf(diag.Span{}, diag.ReadError, "unknown facet kind %q", w.Kind)
			continue
		}
		out = append(out, model.Facet{Kind: kind, Status: w.Status, MIME: w.MIME})
	}
	return out
}

func (d *decoder) typ(w typeWire) model.Type {
	switch {
	case w.Vector != nil:
		return model.Sequence(d.scalar(w.Vector))
	case w.Option != nil:
		return model.Optional(d.scalar(w.Option))
	case w.Scalar != nil:
		return model.One(d.scalar(w.Scalar))
	case w.Never:
		return model.Never()
	default:
		return model.Type{}
	}
}

func (d *decoder) scalar(w *scalarWire) model.Scalar {
	switch {
	case w.Def != "":
		return model.Ref(w.Def)
	case w.Prim != "":
		k, ok := model.ParsePrimKind(w.Prim)
		if !ok {
			d.c.Addf(diag.Span{}, diag.ReadError, "unknown primitive %q", w.Prim)
		}
		return model.Prim(k)
	default:
		return model.Unit()
	}
}

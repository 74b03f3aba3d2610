// Package oasemitter renders the canonical model as an OpenAPI 3 document.
//
// Every declared type becomes an entry of components.schemas. Unions marked
// #[rest(out)] additionally produce a components.responses entry, and
// records marked #[rest(in)] produce components.parameters and
// components.requestBodies entries for their annotated fields.
package oasemitter

import (
	"context"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/mark3labs/ridl/internal/diag"
	"github.com/mark3labs/ridl/internal/emitter"
	"github.com/mark3labs/ridl/internal/model"
)

// Version is the OpenAPI version written to every document.
const Version = "3.0.1"

const schemaRefPrefix = "#/components/schemas/"

// Options controls document metadata and output.
type Options struct {
	Title    string // info.title; falls back to the root module name, then "API"
	Version  string // info.version; defaults to 0.0.0
	Encoding emitter.Encoding
	Validate bool // run the OpenAPI validator over the built document
}

// Emit builds and serializes the document for m.
func Emit(ctx context.Context, m *model.Module, opts Options) (*emitter.Result, error) {
	if m == nil {
		return nil, fmt.Errorf("oasemitter: nil module")
	}
	doc, err := Build(m, opts)
	if err != nil {
		return nil, err
	}
	if opts.Validate {
		if err := doc.Validate(ctx); err != nil && !canProceedDespiteValidation(err) {
			return nil, diag.Errorf(diag.Span{}, diag.UnrenderableConstruct, "generated document is invalid: %v", err)
		}
	}
	content, err := emitter.Encode(doc, opts.Encoding, true)
	if err != nil {
		return nil, diag.Errorf(diag.Span{}, diag.EncodeError, "encode openapi document: %v", err)
	}
	return &emitter.Result{Target: emitter.TargetOpenAPI3, Content: content, Items: len(doc.Components.Schemas)}, nil
}

// Build converts m into an OpenAPI document. Items of nested modules are
// flattened into one component namespace. All rendering failures are
// reported together.
func Build(m *model.Module, opts Options) (*openapi3.T, error) {
	b := &builder{
		comps: &openapi3.Components{
			Schemas:       openapi3.Schemas{},
			Parameters:    openapi3.ParametersMap{},
			RequestBodies: openapi3.RequestBodies{},
			Responses:     openapi3.Responses{},
		},
		owners: map[string]diag.Span{},
	}
	b.module(m)
	if err := b.c.Err(); err != nil {
		return nil, err
	}
	b.resolveRefs()

	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = m.Name
	}
	if title == "" {
		title = "API"
	}
	version := strings.TrimSpace(opts.Version)
	if version == "" {
		version = "0.0.0"
	}
	return &openapi3.T{
		OpenAPI: Version,
		Info: &openapi3.Info{
			Title:       title,
			Description: strings.TrimSpace(m.Comment),
			Version:     version,
		},
		Paths:      openapi3.Paths{},
		Components: b.comps,
	}, nil
}

type builder struct {
	comps  *openapi3.Components
	owners map[string]diag.Span // schema name -> declaring item
	refs   []*openapi3.SchemaRef
	c      diag.Collector
}

func (b *builder) module(m *model.Module) {
	for _, it := range m.Items {
		switch x := it.(type) {
		case *model.Module:
			b.module(x)
		case *model.Alias:
			s, err := b.typeSchema(x.Origin, x.Span)
			b.addSchema(x.Name, x.Span, s, err)
		case *model.Enum:
			b.addSchema(x.Name, x.Span, enumSchema(x), nil)
		case *model.Union:
			s, err := b.unionSchema(x)
			b.addSchema(x.Name, x.Span, s, err)
			if err == nil && x.Attrs.Has(model.MessageOut) {
				b.response(x)
			}
		case *model.Record:
			s, err := b.recordSchema(x)
			b.addSchema(x.Name, x.Span, s, err)
			if err == nil && x.Attrs.Has(model.MessageIn) {
				b.request(x)
			}
		case *model.Func:
			// Function aliases have no OpenAPI representation.
		default:
			panic(fmt.Sprintf("oasemitter: unhandled item %T", it))
		}
	}
}

func (b *builder) addSchema(name string, span diag.Span, s *openapi3.SchemaRef, err error) {
	if err != nil {
		b.c.Add(err)
		return
	}
	if prev, dup := b.owners[name]; dup {
		b.c.Addf(span, diag.UnrenderableConstruct, "schema `%s` is already declared at %s", name, prev)
		return
	}
	b.owners[name] = span
	b.comps.Schemas[name] = s
}

// resolveRefs points every generated reference at its target so the
// validator can descend into it. References to undeclared names stay
// unresolved.
func (b *builder) resolveRefs() {
	for changed := true; changed; {
		changed = false
		for _, r := range b.refs {
			if r.Value != nil {
				continue
			}
			target, ok := b.comps.Schemas[strings.TrimPrefix(r.Ref, schemaRefPrefix)]
			if ok && target.Value != nil {
				r.Value = target.Value
				changed = true
			}
		}
	}
}

func enumSchema(x *model.Enum) *openapi3.SchemaRef {
	var comments strings.Builder
	comments.WriteString(x.Comment)
	comments.WriteString("\n")
	s := &openapi3.Schema{Type: openapi3.TypeString, Title: x.Name}
	for _, c := range x.Cases {
		comments.WriteString(c.Comment)
		s.Enum = append(s.Enum, c.Name)
	}
	s.Description = strings.TrimSpace(comments.String())
	return openapi3.NewSchemaRef("", s)
}

func (b *builder) unionSchema(x *model.Union) (*openapi3.SchemaRef, error) {
	s := &openapi3.Schema{
		Type:        openapi3.TypeObject,
		Title:       x.Name,
		Description: strings.TrimSpace(x.Comment),
	}
	var c diag.Collector
	for _, v := range x.Variants {
		var (
			member *openapi3.SchemaRef
			err    error
		)
		if x.Serialization.IsNameBased() {
			member, err = b.wrapperSchema(v)
		} else {
			member, err = b.embeddedSchema(v)
		}
		if err != nil {
			c.Add(err)
			continue
		}
		s.OneOf = append(s.OneOf, member)
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	if !x.Serialization.IsNameBased() {
		s.Discriminator = &openapi3.Discriminator{PropertyName: x.Serialization.Discriminant}
	}
	return openapi3.NewSchemaRef("", s), nil
}

// wrapperSchema is the single-property object of a name-based variant.
func (b *builder) wrapperSchema(v model.Variant) (*openapi3.SchemaRef, error) {
	content, err := b.typeSchema(v.Content, v.Span)
	if err != nil {
		return nil, err
	}
	s := &openapi3.Schema{
		Description: v.Comment,
		Properties:  openapi3.Schemas{v.Name: content},
	}
	return openapi3.NewSchemaRef("", s), nil
}

// embeddedSchema is the variant payload itself; the discriminant lives
// inside it, so it must be a single object.
func (b *builder) embeddedSchema(v model.Variant) (*openapi3.SchemaRef, error) {
	switch v.Content.Kind {
	case model.TypeSequence:
		return nil, diag.Errorf(v.Span, diag.UnrenderableConstruct, "sequence not supported in type-based union (variant `%s`)", v.Name)
	case model.TypeOptional:
		return nil, diag.Errorf(v.Span, diag.UnrenderableConstruct, "optional not supported in type-based union (variant `%s`)", v.Name)
	}
	return b.typeSchema(v.Content, v.Span)
}

func (b *builder) recordSchema(x *model.Record) (*openapi3.SchemaRef, error) {
	s := &openapi3.Schema{
		Type:        openapi3.TypeObject,
		Title:       x.Name,
		Description: strings.TrimSpace(x.Comment),
		Properties:  openapi3.Schemas{},
	}
	var c diag.Collector
	for _, f := range x.Fields {
		p, err := b.typeSchema(f.Content, f.Span)
		if err != nil {
			c.Add(err)
			continue
		}
		if !f.Content.IsOptional() {
			s.Required = append(s.Required, f.Name)
		}
		s.Properties[f.Name] = p
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	return openapi3.NewSchemaRef("", s), nil
}

// typeSchema renders a value position. Optionality is decided by the
// parent, so an Optional renders as its element.
func (b *builder) typeSchema(t model.Type, span diag.Span) (*openapi3.SchemaRef, error) {
	switch t.Kind {
	case model.TypeSequence:
		items, err := b.scalarSchema(t.Elem, span)
		if err != nil {
			return nil, err
		}
		return openapi3.NewSchemaRef("", &openapi3.Schema{Type: openapi3.TypeArray, Items: items}), nil
	case model.TypeOptional, model.TypeScalar:
		return b.scalarSchema(t.Elem, span)
	case model.TypeNever:
		return nil, diag.Errorf(span, diag.UnrenderableConstruct, "never-type is not supported")
	default:
		return nil, diag.Errorf(span, diag.UnrenderableConstruct, "unsupported type pattern")
	}
}

func (b *builder) scalarSchema(s model.Scalar, span diag.Span) (*openapi3.SchemaRef, error) {
	switch s.Kind {
	case model.ScalarRef:
		ref := openapi3.NewSchemaRef(schemaRefPrefix+s.Name, nil)
		b.refs = append(b.refs, ref)
		return ref, nil
	case model.ScalarPrim:
		return openapi3.NewSchemaRef("", primSchema(s.Prim)), nil
	default:
		return nil, diag.Errorf(span, diag.UnrenderableConstruct, "unit-type (`()`) is not supported")
	}
}

func primSchema(k model.PrimKind) *openapi3.Schema {
	switch k {
	case model.Bool:
		return &openapi3.Schema{Type: openapi3.TypeBoolean}
	case model.Int32:
		return &openapi3.Schema{Type: openapi3.TypeInteger, Format: "int32"}
	case model.Int64:
		return &openapi3.Schema{Type: openapi3.TypeInteger, Format: "int64"}
	case model.Float32:
		return &openapi3.Schema{Type: openapi3.TypeNumber, Format: "float"}
	case model.Float64:
		return &openapi3.Schema{Type: openapi3.TypeNumber, Format: "double"}
	default:
		return &openapi3.Schema{Type: openapi3.TypeString}
	}
}

// canProceedDespiteValidation returns true for validation errors that do
// not make the document unusable, such as references to undeclared names.
func canProceedDespiteValidation(err error) bool {
	if err == nil {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "unresolved ref")
}

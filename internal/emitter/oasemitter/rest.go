package oasemitter

import (
	"net/http"
	"strings"

	"fortio.org/safecast"
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/mark3labs/ridl/internal/diag"
	"github.com/mark3labs/ridl/internal/model"
)

// response derives the Response of an outgoing message union. Every
// variant contributes its payload under its MIME type; variants that share
// a MIME type collapse into one entry, the last one winning.
func (b *builder) response(x *model.Union) {
	content := openapi3.Content{}
	var c diag.Collector
	for _, v := range x.Variants {
		mime, ok := v.Attrs.MIME()
		if !ok {
			c.Addf(v.Span, diag.UnrenderableConstruct, "missing MIME facet on response variant `%s` (add #[mime(\"...\")])", v.Name)
			continue
		}
		s, err := b.typeSchema(v.Content, v.Span)
		if err != nil {
			c.Add(err)
			continue
		}
		content[mime] = &openapi3.MediaType{Schema: s}
	}
	if err := c.Err(); err != nil {
		b.c.Add(err)
		return
	}
	resp := openapi3.NewResponse().WithDescription(responseDescription(x))
	resp.Content = content
	b.comps.Responses[x.Name] = &openapi3.ResponseRef{Value: resp}
}

// responseDescription prefers the union comment, then the status text of
// the first variant carrying a status.
func responseDescription(x *model.Union) string {
	if d := strings.TrimSpace(x.Comment); d != "" {
		return d
	}
	for _, v := range x.Variants {
		status, ok := v.Attrs.Status()
		if !ok {
			continue
		}
		code, err := safecast.Conv[int](status)
		if err != nil {
			continue
		}
		if text := http.StatusText(code); text != "" {
			return text
		}
	}
	return "response"
}

// request derives the parameters and request body of an incoming message
// record from its #[path], #[query] and #[body] fields.
func (b *builder) request(x *model.Record) {
	var body *model.Field
	for i := range x.Fields {
		f := &x.Fields[i]
		switch {
		case f.Attrs.Has(model.PathParam):
			b.parameter(x, f, openapi3.ParameterInPath)
		case f.Attrs.Has(model.QueryParam):
			b.parameter(x, f, openapi3.ParameterInQuery)
		case f.Attrs.Has(model.BodyParam):
			if body != nil {
				b.c.Addf(f.Span, diag.UnrenderableConstruct, "record `%s` has more than one body field (`%s` and `%s`)", x.Name, body.Name, f.Name)
				continue
			}
			body = f
		}
	}
	if body == nil {
		return
	}
	s, err := b.typeSchema(body.Content, body.Span)
	if err != nil {
		b.c.Add(err)
		return
	}
	rb := openapi3.NewRequestBody().
		WithDescription(strings.TrimSpace(body.Comment)).
		WithRequired(!body.Content.IsOptional()).
		WithContent(openapi3.NewContentWithJSONSchemaRef(s))
	b.comps.RequestBodies[x.Name] = &openapi3.RequestBodyRef{Value: rb}
}

func (b *builder) parameter(x *model.Record, f *model.Field, in string) {
	s, err := b.typeSchema(f.Content, f.Span)
	if err != nil {
		b.c.Add(err)
		return
	}
	p := &openapi3.Parameter{
		Name:        f.Name,
		In:          in,
		Description: strings.TrimSpace(f.Comment),
		Required:    in == openapi3.ParameterInPath || !f.Content.IsOptional(),
		Schema:      s,
	}
	b.comps.Parameters[x.Name+"."+f.Name] = &openapi3.ParameterRef{Value: p}
}

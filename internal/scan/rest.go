package scan

import (
	"github.com/mark3labs/ridl/internal/diag"
	"github.com/mark3labs/ridl/internal/model"
	"github.com/mark3labs/ridl/internal/syntax"
)

// facetRule maps an attribute whose name is Name and whose first
// parameter is the key Key to a facet. An empty Key matches attributes
// without parameters.
type facetRule struct {
	Name  string
	Key   string
	Facet model.FacetKind
}

var facetRules = []facetRule{
	{Name: "rest", Key: "in", Facet: model.MessageIn},
	{Name: "rest", Key: "out", Facet: model.MessageOut},
	{Name: "path", Facet: model.PathParam},
	{Name: "query", Facet: model.QueryParam},
	{Name: "body", Facet: model.BodyParam},
}

// Classify maps one canonical attribute to a REST facet. ok is false for
// attributes outside the facet vocabulary, which callers ignore.
func Classify(a Attr) (f model.Facet, ok bool, err error) {
	key := ""
	first, hasFirst := a.first()
	if hasFirst && first.Kind == ParamKey {
		key = first.Key
	}
	for _, r := range facetRules {
		if r.Name == a.Name && r.Key == key {
			return model.Facet{Kind: r.Facet}, true, nil
		}
	}

	switch a.Name {
	case "status":
		if hasFirst && first.Kind == ParamValue && first.Value.Kind == ValueInt {
			return model.Facet{Kind: model.Status, Status: first.Value.Int}, true, nil
		}
		return model.Facet{}, false, diag.Errorf(a.Span, diag.MalformedAttribute, "badly formed attribute: expected #[status(<integer>)]")
	case "mime":
		if hasFirst && first.Kind == ParamValue && first.Value.Kind == ValueText {
			return model.Facet{Kind: model.MIME, MIME: first.Value.Text}, true, nil
		}
		return model.Facet{}, false, diag.Errorf(a.Span, diag.MalformedAttribute, "badly formed attribute: expected #[mime(\"<type>\")]")
	}
	return model.Facet{}, false, nil
}

// Facets canonicalizes and classifies every non-doc attribute, keeping
// declaration order. Failures of all attributes are reported together.
func Facets(attrs []syntax.Attribute) (model.Attrs, error) {
	out, err := diag.MapOptional(attrs, func(sa syntax.Attribute) (model.Facet, bool, error) {
		if sa.IsDoc() {
			return model.Facet{}, false, nil
		}
		a, err := Canonicalize(sa)
		if err != nil {
			return model.Facet{}, false, err
		}
		return Classify(a)
	})
	return model.Attrs(out), err
}

// Serialization reads the union discriminant strategy from
// `#[serde(tag = "...")]` or `#[form(tag = "...")]`.
func Serialization(attrs []syntax.Attribute) (model.Serialization, error) {
	for _, sa := range attrs {
		if sa.IsDoc() || sa.Meta == nil {
			continue
		}
		a, err := Canonicalize(sa)
		if err != nil {
			continue
		}
		if a.Name != "serde" && a.Name != "form" {
			continue
		}
		v, ok := a.lookup("tag")
		if !ok {
			continue
		}
		if v.Kind != ValueText || v.Text == "" {
			return model.NameBased(), diag.Errorf(a.Span, diag.MalformedAttribute, "union tag must be a non-empty string")
		}
		return model.TypeBased(v.Text), nil
	}
	return model.NameBased(), nil
}

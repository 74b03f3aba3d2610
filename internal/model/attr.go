package model

import "fmt"

// FacetKind enumerates REST facets.
type FacetKind int

const (
	MessageIn FacetKind = iota + 1
	MessageOut
	PathParam
	QueryParam
	BodyParam
	Status
	MIME
)

var facetNames = map[FacetKind]string{
	MessageIn:  "MessageIn",
	MessageOut: "MessageOut",
	PathParam:  "PathParam",
	QueryParam: "QueryParam",
	BodyParam:  "BodyParam",
	Status:     "Status",
	MIME:       "MIME",
}

func (k FacetKind) String() string {
	if s, ok := facetNames[k]; ok {
		return s
	}
	return fmt.Sprintf("FacetKind(%d)", int(k))
}

// ParseFacetKind is the inverse of FacetKind.String.
func ParseFacetKind(s string) (FacetKind, bool) {
	for k, name := range facetNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// Facet is one REST-related annotation meaning.
type Facet struct {
	Kind   FacetKind
	Status int64  // Kind == Status
	MIME   string // Kind == MIME
}

func (f Facet) String() string {
	switch f.Kind {
	case Status:
		return fmt.Sprintf("Status(%d)", f.Status)
	case MIME:
		return fmt.Sprintf("MIME(%q)", f.MIME)
	default:
		return f.Kind.String()
	}
}

// Attrs is the ordered list of facets attached to a declaration.
type Attrs []Facet

// Has reports whether a facet of the given kind is present.
func (a Attrs) Has(kind FacetKind) bool {
	for _, f := range a {
		if f.Kind == kind {
			return true
		}
	}
	return false
}

// Status returns the first Status facet.
func (a Attrs) Status() (int64, bool) {
	for _, f := range a {
		if f.Kind == Status {
			return f.Status, true
		}
	}
	return 0, false
}

// MIME returns the first MIME facet.
func (a Attrs) MIME() (string, bool) {
	for _, f := range a {
		if f.Kind == MIME {
			return f.MIME, true
		}
	}
	return "", false
}

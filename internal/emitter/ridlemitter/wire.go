package ridlemitter

// The ridl1 document. Field names follow the model; union-like values are
// mappings with exactly one populated key.

type document struct {
	File *moduleWire `yaml:"file" json:"file"`
	Rest any         `yaml:"rest" json:"rest"`
}

type moduleWire struct {
	Span    string     `yaml:"span,omitempty" json:"span,omitempty"`
	Name    string     `yaml:"name" json:"name"`
	Comment string     `yaml:"comment,omitempty" json:"comment,omitempty"`
	Items   []itemWire `yaml:"items,omitempty" json:"items,omitempty"`
}

type itemWire struct {
	Mod  *moduleWire `yaml:"Mod,omitempty" json:"Mod,omitempty"`
	New  *aliasWire  `yaml:"New,omitempty" json:"New,omitempty"`
	Enum *enumWire   `yaml:"Enum,omitempty" json:"Enum,omitempty"`
	Sum  *unionWire  `yaml:"Sum,omitempty" json:"Sum,omitempty"`
	Prod *recordWire `yaml:"Prod,omitempty" json:"Prod,omitempty"`
	Func *funcWire   `yaml:"Func,omitempty" json:"Func,omitempty"`
}

type aliasWire struct {
	Span    string      `yaml:"span,omitempty" json:"span,omitempty"`
	Name    string      `yaml:"name" json:"name"`
	Comment string      `yaml:"comment,omitempty" json:"comment,omitempty"`
	Attrs   []facetWire `yaml:"attrs,omitempty" json:"attrs,omitempty"`
	Origin  typeWire    `yaml:"origin" json:"origin"`
}

type enumWire struct {
	Span    string     `yaml:"span,omitempty" json:"span,omitempty"`
	Name    string     `yaml:"name" json:"name"`
	Comment string     `yaml:"comment,omitempty" json:"comment,omitempty"`
	Cases   []caseWire `yaml:"cases,omitempty" json:"cases,omitempty"`
}

type caseWire struct {
	Span    string `yaml:"span,omitempty" json:"span,omitempty"`
	Name    string `yaml:"name" json:"name"`
	Comment string `yaml:"comment,omitempty" json:"comment,omitempty"`
}

type serializationWire struct {
	Form         string `yaml:"form" json:"form"`
	Discriminant string `yaml:"discriminant,omitempty" json:"discriminant,omitempty"`
}

const (
	formNameBased = "NameBased"
	formTypeBased = "TypeBased"
)

type unionWire struct {
	Span          string            `yaml:"span,omitempty" json:"span,omitempty"`
	Name          string            `yaml:"name" json:"name"`
	Comment       string            `yaml:"comment,omitempty" json:"comment,omitempty"`
	Serialization serializationWire `yaml:"serialization" json:"serialization"`
	Attrs         []facetWire       `yaml:"attrs,omitempty" json:"attrs,omitempty"`
	Variants      []memberWire      `yaml:"variants,omitempty" json:"variants,omitempty"`
}

type recordWire struct {
	Span    string       `yaml:"span,omitempty" json:"span,omitempty"`
	Name    string       `yaml:"name" json:"name"`
	Comment string       `yaml:"comment,omitempty" json:"comment,omitempty"`
	Attrs   []facetWire  `yaml:"attrs,omitempty" json:"attrs,omitempty"`
	Fields  []memberWire `yaml:"fields,omitempty" json:"fields,omitempty"`
}

// memberWire is a union variant or a record field.
type memberWire struct {
	Span    string      `yaml:"span,omitempty" json:"span,omitempty"`
	Name    string      `yaml:"name" json:"name"`
	Comment string      `yaml:"comment,omitempty" json:"comment,omitempty"`
	Attrs   []facetWire `yaml:"attrs,omitempty" json:"attrs,omitempty"`
	Content typeWire    `yaml:"content" json:"content"`
}

type funcWire struct {
	Span    string      `yaml:"span,omitempty" json:"span,omitempty"`
	Name    string      `yaml:"name" json:"name"`
	Comment string      `yaml:"comment,omitempty" json:"comment,omitempty"`
	Attrs   []facetWire `yaml:"attrs,omitempty" json:"attrs,omitempty"`
	Input   typeWire    `yaml:"input" json:"input"`
	Output  typeWire    `yaml:"output" json:"output"`
}

// typeWire leaves every key unset for an unrecognized type.
type typeWire struct {
	Vector *scalarWire `yaml:"Vector,omitempty" json:"Vector,omitempty"`
	Option *scalarWire `yaml:"Option,omitempty" json:"Option,omitempty"`
	Scalar *scalarWire `yaml:"Scalar,omitempty" json:"Scalar,omitempty"`
	Never  bool        `yaml:"Never,omitempty" json:"Never,omitempty"`
}

type scalarWire struct {
	Def  string `yaml:"Def,omitempty" json:"Def,omitempty"`
	Prim string `yaml:"Prim,omitempty" json:"Prim,omitempty"`
	Unit bool   `yaml:"Unit,omitempty" json:"Unit,omitempty"`
}

type facetWire struct {
	Kind   string `yaml:"kind" json:"kind"`
	Status int64  `yaml:"status,omitempty" json:"status,omitempty"`
	MIME   string `yaml:"mime,omitempty" json:"mime,omitempty"`
}

package scan

import (
	"strconv"
	"strings"

	"github.com/mark3labs/ridl/internal/diag"
	"github.com/mark3labs/ridl/internal/syntax"
)

// Attr is an annotation reduced to a name and an ordered parameter list.
// It is independent of what any particular annotation means.
//
//	#[a]                 -> {a, []}
//	#[a(b, c)]           -> {a, [Key(b), Key(c)]}
//	#[a("B", 222, false)] -> {a, [Value("B"), Value(222), Value(false)]}
//	#[a(b = "B", c = 1)]  -> {a, [KeyValue(b, "B"), KeyValue(c, 1)]}
//	#[a = "B"]           -> {"", [KeyValue(a, "B")]}
type Attr struct {
	Span   diag.Span
	Name   string
	Params []Param
}

type ParamKind int

const (
	ParamKey ParamKind = iota
	ParamValue
	ParamKeyValue
)

type Param struct {
	Kind  ParamKind
	Key   string
	Value Value
}

type ValueKind int

const (
	ValueBool ValueKind = iota
	ValueInt
	ValueText
)

type Value struct {
	Kind ValueKind
	Bool bool
	Int  int64
	Text string
}

func (v Value) String() string {
	switch v.Kind {
	case ValueBool:
		return strconv.FormatBool(v.Bool)
	case ValueInt:
		return strconv.FormatInt(v.Int, 10)
	default:
		return v.Text
	}
}

// first returns the first parameter, if any.
func (a Attr) first() (Param, bool) {
	if len(a.Params) == 0 {
		return Param{}, false
	}
	return a.Params[0], true
}

// lookup returns the value of the first KeyValue parameter named key.
func (a Attr) lookup(key string) (Value, bool) {
	for _, p := range a.Params {
		if p.Kind == ParamKeyValue && p.Key == key {
			return p.Value, true
		}
	}
	return Value{}, false
}

// Canonicalize reduces a parsed attribute to an Attr. Problems are
// reported as MalformedAttribute.
func Canonicalize(a syntax.Attribute) (Attr, error) {
	if a.Meta == nil {
		return Attr{}, diag.Errorf(a.Span, diag.MalformedAttribute, "unsupported attribute form: %s", a.Malformed)
	}
	m := a.Meta
	switch m.Kind {
	case syntax.MetaPath:
		name, err := nonGenericName(m.Path)
		if err != nil {
			return Attr{}, err
		}
		return Attr{Span: a.Span, Name: name}, nil

	case syntax.MetaList:
		name, err := nonGenericName(m.Path)
		if err != nil {
			return Attr{}, err
		}
		params, err := diag.Map(m.Nested, nestedParam)
		if err != nil {
			return Attr{}, err
		}
		return Attr{Span: a.Span, Name: name, Params: params}, nil

	default:
		key, err := nonGenericName(m.Path)
		if err != nil {
			return Attr{}, err
		}
		v, err := literal(m.Lit)
		if err != nil {
			return Attr{}, err
		}
		return Attr{Span: a.Span, Params: []Param{{Kind: ParamKeyValue, Key: key, Value: v}}}, nil
	}
}

func nestedParam(n syntax.Nested) (Param, error) {
	if n.Lit != nil {
		v, err := literal(*n.Lit)
		if err != nil {
			return Param{}, err
		}
		return Param{Kind: ParamValue, Value: v}, nil
	}
	switch n.Meta.Kind {
	case syntax.MetaPath:
		key, err := nonGenericName(n.Meta.Path)
		if err != nil {
			return Param{}, err
		}
		return Param{Kind: ParamKey, Key: key}, nil
	case syntax.MetaNameValue:
		key, err := nonGenericName(n.Meta.Path)
		if err != nil {
			return Param{}, err
		}
		v, err := literal(n.Meta.Lit)
		if err != nil {
			return Param{}, err
		}
		return Param{Kind: ParamKeyValue, Key: key, Value: v}, nil
	default:
		return Param{}, diag.Errorf(n.Meta.Span, diag.MalformedAttribute, "unsupported attribute form")
	}
}

// nonGenericName returns the last segment of p, which must not carry
// generic arguments.
func nonGenericName(p syntax.Path) (string, error) {
	if len(p.Segments) == 0 {
		return "", diag.Errorf(p.Span, diag.MalformedAttribute, "zero-length path segment is not supported")
	}
	seg := p.Last()
	if seg.HasArgs() {
		return "", diag.Errorf(seg.Span, diag.MalformedAttribute, "generic parameter is not supported")
	}
	return seg.Name, nil
}

func literal(l syntax.Lit) (Value, error) {
	switch l.Kind {
	case syntax.LitBool:
		return Value{Kind: ValueBool, Bool: l.Value == "true"}, nil
	case syntax.LitStr:
		return Value{Kind: ValueText, Text: l.Value}, nil
	case syntax.LitInt:
		n, err := parseInt(l.Value)
		if err != nil {
			return Value{}, diag.Errorf(l.Span, diag.MalformedAttribute, "invalid integer literal %s: %v", l.Value, err)
		}
		return Value{Kind: ValueInt, Int: n}, nil
	default:
		return Value{}, diag.Errorf(l.Span, diag.MalformedAttribute, "unsupported literal form (%s)", l.Kind)
	}
}

var intSuffixes = []string{"i128", "u128", "isize", "usize", "i64", "u64", "i32", "u32", "i16", "u16", "i8", "u8"}

// parseInt accepts decimal, hex, octal and binary spellings with `_`
// separators and an optional type suffix.
func parseInt(s string) (int64, error) {
	for _, suf := range intSuffixes {
		if strings.HasSuffix(s, suf) {
			s = strings.TrimSuffix(s, suf)
			break
		}
	}
	digits := strings.TrimPrefix(s, "-")
	if len(digits) > 1 && digits[0] == '0' && digits[1] >= '0' && digits[1] <= '9' {
		// no implicit octal
		return strconv.ParseInt(strings.ReplaceAll(s, "_", ""), 10, 64)
	}
	return strconv.ParseInt(s, 0, 64)
}

package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/ridl/internal/diag"
	"github.com/mark3labs/ridl/internal/model"
	"github.com/mark3labs/ridl/internal/syntax"
)

func parseAttr(t *testing.T, src string) syntax.Attribute {
	t.Helper()
	f, err := syntax.Parse(src + "\nstruct X;")
	require.NoError(t, err)
	attrs := f.Items[0].ItemAttrs()
	require.Len(t, attrs, 1)
	return attrs[0]
}

func TestCanonicalize(t *testing.T) {
	t.Parallel()
	cases := []struct {
		src  string
		name string
		want []Param
	}{
		{"#[abc]", "abc", nil},
		{"#[abc(d, e)]", "abc", []Param{{Kind: ParamKey, Key: "d"}, {Kind: ParamKey, Key: "e"}}},
		{"#[abc(a = 10, c = \"d\", e = true)]", "abc", []Param{
			{Kind: ParamKeyValue, Key: "a", Value: Value{Kind: ValueInt, Int: 10}},
			{Kind: ParamKeyValue, Key: "c", Value: Value{Kind: ValueText, Text: "d"}},
			{Kind: ParamKeyValue, Key: "e", Value: Value{Kind: ValueBool, Bool: true}},
		}},
		{"#[status(0x1F4)]", "status", []Param{{Kind: ParamValue, Value: Value{Kind: ValueInt, Int: 500}}}},
		{"#[status(200u16)]", "status", []Param{{Kind: ParamValue, Value: Value{Kind: ValueInt, Int: 200}}}},
		{"#[abc = \"v\"]", "", []Param{{Kind: ParamKeyValue, Key: "abc", Value: Value{Kind: ValueText, Text: "v"}}}},
		{"#[ridl::rest(in)]", "rest", []Param{{Kind: ParamKey, Key: "in"}}},
	}
	for _, tc := range cases {
		a, err := Canonicalize(parseAttr(t, tc.src))
		require.NoError(t, err, tc.src)
		assert.Equal(t, tc.name, a.Name, tc.src)
		assert.Equal(t, tc.want, a.Params, tc.src)
	}
}

func TestCanonicalize_Malformed(t *testing.T) {
	t.Parallel()
	for _, src := range []string{
		"#[abc<T>]",
		"#[abc(d(e))]",
		"#[abc(1.5)]",
		"#[abc('c')]",
		"#[abc(99999999999999999999)]",
		"#[abc = include_str!(\"f\")]",
	} {
		_, err := Canonicalize(parseAttr(t, src))
		require.Error(t, err, src)
		logs := diag.From(err, diag.EncodeError)
		assert.Equal(t, diag.MalformedAttribute, logs[0].Kind, src)
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()
	cases := map[string]model.Facet{
		"#[rest(in)]":         {Kind: model.MessageIn},
		"#[rest(out)]":        {Kind: model.MessageOut},
		"#[path]":             {Kind: model.PathParam},
		"#[query]":            {Kind: model.QueryParam},
		"#[body]":             {Kind: model.BodyParam},
		"#[status(404)]":      {Kind: model.Status, Status: 404},
		"#[mime(\"text/csv\")]": {Kind: model.MIME, MIME: "text/csv"},
	}
	for src, want := range cases {
		a, err := Canonicalize(parseAttr(t, src))
		require.NoError(t, err, src)
		got, ok, err := Classify(a)
		require.NoError(t, err, src)
		assert.True(t, ok, src)
		assert.Equal(t, want, got, src)
	}

	for _, src := range []string{"#[derive(Debug)]", "#[rest(sideways)]", "#[path(x)]", "#[serde(rename_all = \"camelCase\")]"} {
		a, err := Canonicalize(parseAttr(t, src))
		require.NoError(t, err, src)
		_, ok, err := Classify(a)
		require.NoError(t, err, src)
		assert.False(t, ok, src)
	}

	for _, src := range []string{"#[status]", "#[status(\"ok\")]", "#[mime(5)]", "#[mime]"} {
		a, err := Canonicalize(parseAttr(t, src))
		require.NoError(t, err, src)
		_, _, err = Classify(a)
		require.Error(t, err, src)
		assert.Equal(t, diag.MalformedAttribute, diag.From(err, diag.EncodeError)[0].Kind)
	}
}

func TestRecognize(t *testing.T) {
	t.Parallel()
	cases := map[string]model.Type{
		"bool":              model.One(model.Prim(model.Bool)),
		"i32":               model.One(model.Prim(model.Int32)),
		"i64":               model.One(model.Prim(model.Int64)),
		"f32":               model.One(model.Prim(model.Float32)),
		"f64":               model.One(model.Prim(model.Float64)),
		"&'static str":      model.One(model.Prim(model.Text)),
		"Address":           model.One(model.Ref("Address")),
		"()":                model.One(model.Unit()),
		"!":                 model.Never(),
		"Vec<Tuna>":         model.Sequence(model.Ref("Tuna")),
		"&[Tuna]":           model.Sequence(model.Ref("Tuna")),
		"[i32; 4]":          model.Sequence(model.Prim(model.Int32)),
		"Option<Address>":   model.Optional(model.Ref("Address")),
		"(Option<&String>)": model.Optional(model.Prim(model.Text)),

		"crate::Address":             model.One(model.Ref("Address")),
		"super::Address":             model.One(model.Ref("Address")),
		"::shop::Address":            model.One(model.Ref("Address")),
		"std::string::String":        model.One(model.Prim(model.Text)),
		"std::vec::Vec<crate::Tuna>": model.Sequence(model.Ref("Tuna")),
		"core::option::Option<i32>":  model.Optional(model.Prim(model.Int32)),
	}
	for src, want := range cases {
		f, err := syntax.Parse("type T = " + src + ";")
		require.NoError(t, err, src)
		got, err := Recognize(f.Items[0].(*syntax.ItemType).Type)
		require.NoError(t, err, src)
		assert.Equal(t, want, got, src)
	}

	for _, src := range []string{"Vec<Vec<i32>>", "Option<Vec<i32>>", "HashMap<String, i32>", "a<T>::Address", "std::boxed::Box<Tuna>", "(i32, i32)", "dyn Send"} {
		f, err := syntax.Parse("type T = " + src + ";")
		require.NoError(t, err, src)
		got, err := Recognize(f.Items[0].(*syntax.ItemType).Type)
		require.Error(t, err, src)
		assert.Equal(t, model.TypeUnrecognized, got.Kind, src)
	}
}

package swiftemitter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/ridl/internal/diag"
	"github.com/mark3labs/ridl/internal/emitter"
	"github.com/mark3labs/ridl/internal/model"
	"github.com/mark3labs/ridl/internal/scan"
	"github.com/mark3labs/ridl/internal/syntax"
)

func render(t *testing.T, src string, opts Options) (string, error) {
	t.Helper()
	f, err := syntax.Parse(src)
	require.NoError(t, err)
	m, err := scan.Scan(context.Background(), f, scan.Options{})
	require.NoError(t, err)
	m.Rename(model.RenameAll(model.RuleCamel))
	res, err := Emit(context.Background(), m, opts)
	if err != nil {
		return "", err
	}
	assert.Equal(t, emitter.TargetSwift5, res.Target)
	return string(res.Content), nil
}

func TestEmit_Declarations(t *testing.T) {
	t.Parallel()
	got, err := render(t, `//! Pet store.

type Tuna = String;

/// Ingredients of magic.
enum Mineral {
    /// Strong.
    Iron,
    Alumina,
}

#[rest(out)]
enum Dish {
    /// Raw.
    #[status(200)]
    #[mime("application/json")]
    Sushi(Tuna),
    Leftovers(Vec<Tuna>),
    Maybe(Option<Tuna>),
}

mod shop {
    struct Pet {
        name: Vec<String>,
        /// Walked today.
        walk: bool,
        living_address: Option<Address>,
        age: i32,
        chip: i64,
        weight: f32,
        height: f64,
    }
}

type Feed = dyn Fn(Pet) -> Dish;
type Wash = dyn Fn(Pet);
`, Options{})
	require.NoError(t, err)

	want := `/// Pet store.
typealias Tuna = String

/// Ingredients of magic.
enum Mineral: String, Equatable, Codable {
    /// Strong.
    case iron = "iron"
    case alumina = "alumina"
}

enum Dish: Equatable, Codable {
    /// Raw.
    case sushi(Tuna)
    case leftovers([Tuna])
    case maybe(Tuna?)
}

struct Pet: Equatable, Codable {
    var name: [String]
    /// Walked today.
    var walk: Bool
    var livingAddress: Address?
    var age: Int32
    var chip: Int64
    var weight: Float
    var height: Double
}

typealias Feed = (Pet) -> (Dish)

typealias Wash = (Pet) -> (Void)
`
	assert.Equal(t, want, got)
}

func TestEmit_Indent(t *testing.T) {
	t.Parallel()
	got, err := render(t, "struct A { b: bool }\n", Options{Indent: "\t"})
	require.NoError(t, err)
	assert.Equal(t, "struct A: Equatable, Codable {\n\tvar b: Bool\n}\n", got)
}

func TestEmit_EmptyBodies(t *testing.T) {
	t.Parallel()
	got, err := render(t, "struct A {}\nenum B {}\nmod empty {}\n", Options{})
	require.NoError(t, err)
	assert.Equal(t, "struct A: Equatable, Codable {\n}\n\nenum B: String, Equatable, Codable {\n}\n", got)
}

func TestEmit_RejectsNever(t *testing.T) {
	t.Parallel()
	_, err := render(t, "type Void = !;\nstruct A { ok: bool, bad: ! }\nenum U { V(!) }\n", Options{})
	require.Error(t, err)
	logs := diag.From(err, diag.EncodeError)
	require.Len(t, logs, 3)
	for _, l := range logs {
		assert.Equal(t, diag.UnrenderableConstruct, l.Kind)
		assert.Equal(t, "never-type is not supported", l.Message)
	}
	assert.Equal(t, 1, logs[0].Span.Start.Line)
	assert.Equal(t, 2, logs[1].Span.Start.Line)
	assert.Equal(t, 3, logs[2].Span.Start.Line)
}

func TestEmit_UnrecognizedType(t *testing.T) {
	t.Parallel()
	m := &model.Module{Items: []model.Item{&model.Alias{Name: "X"}}}
	_, err := Emit(context.Background(), m, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported type pattern")
}

package emitter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseTarget(t *testing.T) {
	t.Parallel()
	cases := map[string]Target{
		"ridl1":       TargetRIDL1,
		"RIDL":        TargetRIDL1,
		"openapi3":    TargetOpenAPI3,
		" oas ":       TargetOpenAPI3,
		"swift":       TargetSwift5,
		"typescript4": TargetTypeScript4,
		"ts":          TargetTypeScript4,
	}
	for in, want := range cases {
		got, err := ParseTarget(in)
		if err != nil {
			t.Fatalf("ParseTarget(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseTarget(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseTarget("kotlin"); err == nil || !strings.Contains(err.Error(), "allowed: ridl1, openapi3, swift5, typescript4") {
		t.Fatalf("expected unknown target error listing targets, got %v", err)
	}
}

func TestExtension(t *testing.T) {
	t.Parallel()
	if got := TargetSwift5.Extension(EncodingJSON); got != ".swift" {
		t.Fatalf("swift extension = %q", got)
	}
	if got := TargetTypeScript4.Extension(EncodingYAML); got != ".ts" {
		t.Fatalf("ts extension = %q", got)
	}
	if got := TargetOpenAPI3.Extension(EncodingJSON); got != ".json" {
		t.Fatalf("openapi json extension = %q", got)
	}
	if got := TargetRIDL1.Extension(EncodingYAML); got != ".yaml" {
		t.Fatalf("ridl1 yaml extension = %q", got)
	}
}

func TestParseEncoding(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]Encoding{"": EncodingYAML, "YML": EncodingYAML, "json": EncodingJSON} {
		got, err := ParseEncoding(in)
		if err != nil || got != want {
			t.Fatalf("ParseEncoding(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseEncoding("toml"); err == nil {
		t.Fatalf("expected error for toml")
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()
	v := struct {
		B string `json:"b" yaml:"b"`
		A []int  `json:"a" yaml:"a"`
	}{B: "#hash", A: []int{1, 2}}

	y, err := Encode(v, EncodingYAML, false)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(y), "b: '#hash'\na:\n  - 1\n  - 2\n"; got != want {
		t.Fatalf("yaml:\n%s\nwant:\n%s", got, want)
	}

	// Via JSON the key order of the marshaled form is kept and flow style
	// is not carried over.
	y, err = Encode(v, EncodingYAML, true)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(y), "b: '#hash'\na:\n  - 1\n  - 2\n"; got != want {
		t.Fatalf("yaml via json:\n%s\nwant:\n%s", got, want)
	}

	j, err := Encode(v, EncodingJSON, false)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(j), "{\n  \"b\": \"#hash\",\n  \"a\": [\n    1,\n    2\n  ]\n}\n"; got != want {
		t.Fatalf("json:\n%s\nwant:\n%s", got, want)
	}
}

func TestJSONToYAML_KeepsAmbiguousStringsQuoted(t *testing.T) {
	t.Parallel()
	y, err := JSONToYAML([]byte(`{"version":"1.0","flag":"true","n":1}`))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(y), "version: \"1.0\"\nflag: \"true\"\nn: 1\n"; got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.ts")

	if err := WriteFile(path, []byte("one"), false); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := WriteFile(path, []byte("two"), false); err == nil || !strings.Contains(err.Error(), "use --force") {
		t.Fatalf("expected refusal without force, got %v", err)
	}
	if err := WriteFile(path, []byte("two"), true); err != nil {
		t.Fatalf("forced write: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "two" {
		t.Fatalf("content = %q", b)
	}
	if err := WriteFile(dir, []byte("x"), true); err == nil || !strings.Contains(err.Error(), "is a directory") {
		t.Fatalf("expected directory error, got %v", err)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Fatalf("temporary files left behind: %v", entries)
	}
}

func TestPlan(t *testing.T) {
	t.Parallel()
	p := Plan(filepath.Join("out", "api.yaml"), []byte("abc"))
	if p.Path != "out/api.yaml" || p.Size != 3 || p.Mode != 0o644 {
		t.Fatalf("unexpected plan %+v", p)
	}
}

func TestTextHelpers(t *testing.T) {
	t.Parallel()
	if got := Commentize("  first\n\nthird \n"); got != "/// first\n///\n/// third" {
		t.Fatalf("Commentize = %q", got)
	}
	if got := Commentize(" \n "); got != "" {
		t.Fatalf("Commentize(blank) = %q", got)
	}
	if got := Indent("a\n\nb", "  "); got != "  a\n\n  b" {
		t.Fatalf("Indent = %q", got)
	}
	if got := Block("doc", "decl"); got != "/// doc\ndecl" {
		t.Fatalf("Block = %q", got)
	}
	if got := Block("", "decl"); got != "decl" {
		t.Fatalf("Block(no comment) = %q", got)
	}
}

package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const petSource = `//! Pet store.

struct Pet {
    name: String,
    living_address: Option<Address>,
    walk: bool,
}

struct Address {
    city: String,
}

struct Hidden {
    secret: String,
}
`

func runCLI(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errb bytes.Buffer
	code = Run(context.Background(), args, strings.NewReader(stdin), &out, &errb)
	return code, out.String(), errb.String()
}

func TestRun_TypeScriptToStdout(t *testing.T) {
	t.Parallel()
	code, out, errOut := runCLI(t, petSource, "generate", "--target", "typescript4", "--skip", "Hidden", "--rename", "camel")
	if code != 0 {
		t.Fatalf("exit code %d, stderr:\n%s", code, errOut)
	}
	want := `/// Pet store.
type Pet = {
    name: string
    livingAddress?: Address
    walk: boolean
}

type Address = {
    city: string
}
`
	if out != want {
		t.Fatalf("stdout:\n%s\nwant:\n%s", out, want)
	}
	if errOut != "" {
		t.Fatalf("expected empty stderr, got %q", errOut)
	}
}

func TestRun_DiagnosticsExitOne(t *testing.T) {
	t.Parallel()
	code, out, errOut := runCLI(t, "struct Big { id: i64 }\n", "--color", "never", "generate", "-t", "ts")
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if out != "" {
		t.Fatalf("expected no artifact, got %q", out)
	}
	if !strings.HasPrefix(errOut, "LOG(1:") || !strings.Contains(errOut, "): 64-bit integer unsupported") {
		t.Fatalf("unexpected diagnostics:\n%s", errOut)
	}
	if strings.Contains(errOut, "\x1b[") {
		t.Fatalf("expected no color codes with --color never, got %q", errOut)
	}
}

func TestRun_AllDiagnosticsReported(t *testing.T) {
	t.Parallel()
	src := "struct A<T> { x: T }\nstruct B { ok: bool }\nstruct C(bool);\n"
	code, _, errOut := runCLI(t, src, "lint")
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	lines := strings.Split(strings.TrimSpace(errOut), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two diagnostics, got:\n%s", errOut)
	}
	if !strings.HasPrefix(lines[0], "LOG(1:") || !strings.HasPrefix(lines[1], "LOG(3:") {
		t.Fatalf("diagnostics out of source order:\n%s", errOut)
	}
}

func TestRun_SyntaxError(t *testing.T) {
	t.Parallel()
	code, _, errOut := runCLI(t, "struct {", "generate", "-t", "ridl1")
	if code != 1 || !strings.HasPrefix(errOut, "LOG(1:") {
		t.Fatalf("expected a read error diagnostic, got %d:\n%s", code, errOut)
	}
}

func TestRun_DuplicateNames(t *testing.T) {
	t.Parallel()
	code, _, errOut := runCLI(t, "struct A {}\nstruct A {}\n", "generate", "-t", "swift5")
	if code != 1 || !strings.Contains(errOut, `duplicate item name "A"`) {
		t.Fatalf("expected duplicate diagnostic, got %d:\n%s", code, errOut)
	}
	if !strings.HasPrefix(errOut, "LOG(2:0-") {
		t.Fatalf("expected the second declaration to be reported, got %s", errOut)
	}
}

func TestRun_UsageError(t *testing.T) {
	t.Parallel()
	code, _, errOut := runCLI(t, "", "--color", "never", "generate")
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.HasPrefix(errOut, "error: generate: --target is required") {
		t.Fatalf("unexpected stderr: %q", errOut)
	}
}

func TestRun_WritesFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	in := filepath.Join(dir, "api.rs")
	out := filepath.Join(dir, "gen", "api.yaml")
	if err := os.WriteFile(in, []byte(petSource), 0o600); err != nil {
		t.Fatalf("write input: %v", err)
	}

	code, stdout, errOut := runCLI(t, "", "generate", "-t", "openapi3", "--in", in, "--out", out, "--title", "Pets", "--validate")
	if code != 0 {
		t.Fatalf("exit code %d, stderr:\n%s", code, errOut)
	}
	if stdout != "" {
		t.Fatalf("expected nothing on stdout, got %q", stdout)
	}
	if !strings.Contains(errOut, "wrote") {
		t.Fatalf("expected an info log line, got %q", errOut)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	doc := string(b)
	for _, want := range []string{"openapi: 3.0.1\n", "title: Pets\n", "  schemas:\n", "    Hidden:\n"} {
		if !strings.Contains(doc, want) {
			t.Fatalf("document lacks %q:\n%s", want, doc)
		}
	}

	code, _, errOut = runCLI(t, "", "--quiet", "generate", "-t", "openapi3", "--in", in, "--out", out)
	if code != 1 || !strings.Contains(errOut, "already exists") {
		t.Fatalf("expected refusal without --force, got %d: %s", code, errOut)
	}
	if !strings.HasPrefix(errOut, "error: output error for "+out+": ") || !strings.Contains(errOut, "\nHint: choose a different --out") {
		t.Fatalf("expected a hinted usage error, got %q", errOut)
	}

	code, _, errOut = runCLI(t, "", "--quiet", "generate", "-t", "openapi3", "--in", in, "--out", out, "--force", "--skip", "Hidden")
	if code != 0 {
		t.Fatalf("forced write failed: %s", errOut)
	}
	if errOut != "" {
		t.Fatalf("expected no logs with --quiet, got %q", errOut)
	}
	b, _ = os.ReadFile(out)
	if strings.Contains(string(b), "Hidden") {
		t.Fatalf("skipped item still rendered:\n%s", b)
	}
}

func TestRun_DryRun(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	out := filepath.Join(dir, "api.swift")

	code, stdout, errOut := runCLI(t, petSource, "generate", "-t", "swift5", "--out", out, "--dry-run")
	if code != 0 {
		t.Fatalf("exit code %d, stderr:\n%s", code, errOut)
	}
	if !strings.HasPrefix(stdout, "Planned write to ") || !strings.Contains(stdout, "api.swift") {
		t.Fatalf("expected dry-run plan output, got: %s", stdout)
	}
	// Dry-run should not create the file
	if _, err := os.Stat(out); err == nil {
		t.Fatalf("expected no writes on dry-run")
	}
}

func TestRun_CanonicalRoundTrip(t *testing.T) {
	t.Parallel()
	code, dump, errOut := runCLI(t, petSource, "generate", "-t", "ridl1")
	if code != 0 {
		t.Fatalf("dump failed: %s", errOut)
	}
	if !strings.HasPrefix(dump, "file:\n") || !strings.HasSuffix(dump, "rest: null\n") {
		t.Fatalf("unexpected canonical document:\n%s", dump)
	}

	code, again, errOut := runCLI(t, dump, "generate", "-t", "ridl1", "--from", "ridl1", "--jobs", "3")
	if code != 0 {
		t.Fatalf("reload failed: %s", errOut)
	}
	if again != dump {
		t.Fatalf("round trip changed the document:\n%s\nwant:\n%s", again, dump)
	}

	code, ts, errOut := runCLI(t, dump, "generate", "-t", "ts", "--from", "ridl1", "--skip", "Hidden,Address")
	if code != 0 {
		t.Fatalf("render from canonical failed: %s", errOut)
	}
	if !strings.Contains(ts, "type Pet = {") || strings.Contains(ts, "Hidden") {
		t.Fatalf("unexpected TypeScript:\n%s", ts)
	}
}

func TestRun_JobsDoNotChangeOutput(t *testing.T) {
	t.Parallel()
	_, seq, _ := runCLI(t, petSource, "generate", "-t", "ridl1", "--encoding", "json")
	_, par, _ := runCLI(t, petSource, "generate", "-t", "ridl1", "--encoding", "json", "--jobs", "8")
	if seq == "" || seq != par {
		t.Fatalf("parallel scan changed output:\n%s\nvs\n%s", seq, par)
	}
}

func TestLint(t *testing.T) {
	t.Parallel()
	code, out, errOut := runCLI(t, petSource, "lint")
	if code != 0 || out != "ok: 3 items\n" {
		t.Fatalf("lint: code %d, stdout %q, stderr %q", code, out, errOut)
	}

	code, out, _ = runCLI(t, petSource, "lint", "--target", "swift")
	if code != 0 || out != "ok: 3 items, renders as swift5\n" {
		t.Fatalf("lint with target: code %d, stdout %q", code, out)
	}

	code, _, errOut = runCLI(t, "type Id = i64;\n", "lint", "--target", "typescript4")
	if code != 1 || !strings.Contains(errOut, "64-bit integer unsupported") {
		t.Fatalf("expected renderer diagnostic from lint, got %d: %s", code, errOut)
	}
}

package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

func TestInit_WritesSampleConfig(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"init", "--out", path})

	if err := root.Execute(); err != nil {
		t.Fatalf("init execute: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, "ridl configuration (YAML)") {
		t.Fatalf("unexpected config contents: %s", s)
	}
	// Every option is commented out, so the file decodes to nothing.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		t.Fatalf("sample is not YAML: %v", err)
	}
	if len(raw) != 0 {
		t.Fatalf("expected only comments, got %v", raw)
	}
}

func TestInit_TOML(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "ridl.toml")

	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"--quiet", "init", "-o", path})

	if err := root.Execute(); err != nil {
		t.Fatalf("init execute: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(data), "ridl configuration (TOML)") {
		t.Fatalf("unexpected config contents: %s", data)
	}
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		t.Fatalf("sample is not TOML: %v", err)
	}
}

func TestInit_SampleKeysAreKnown(t *testing.T) {
	t.Parallel()
	for _, line := range strings.Split(sampleConfigYAML, "\n") {
		if !strings.HasPrefix(line, "# ") || !strings.Contains(line, ": ") {
			continue
		}
		key := strings.TrimPrefix(line[:strings.Index(line, ": ")], "# ")
		if strings.Contains(key, " ") {
			continue
		}
		cfg := defaultGenerateConfig()
		if err := applyConfigValue(&cfg, key, nil); err != nil {
			t.Errorf("sample key %q is rejected: %v", key, err)
		}
	}
}

func TestInit_ExistingWithoutForce(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatalf("prewrite: %v", err)
	}

	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"init", "--out", path})

	err := root.Execute()
	if err == nil {
		t.Fatalf("expected error for existing file without --force")
	}
	if _, ok := err.(usageError); !ok {
		t.Fatalf("expected usage error, got %T: %v", err, err)
	}

	root = NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"init", "--out", path, "--force"})
	if err := root.Execute(); err != nil {
		t.Fatalf("forced init: %v", err)
	}
}

package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// These tests swap generateRunner and so must not run in parallel.

func captureGenerate(t *testing.T, args ...string) *GenerateConfig {
	t.Helper()
	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	var captured *GenerateConfig
	generateRunner = func(ctx context.Context, cfg *GenerateConfig, s streams) error {
		captured = cfg
		return nil
	}
	t.Cleanup(func() { generateRunner = runGenerate })

	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if captured == nil {
		t.Fatalf("expected config to be captured")
	}
	return captured
}

func TestGenerateConfigFromFlags(t *testing.T) {
	captured := captureGenerate(t,
		"--verbose",
		"generate",
		"--target", "ts",
		"--from", "RIDL1",
		"--in", "api.yaml",
		"--out", "./build/api.ts",
		"--skip", "Hidden,Debug",
		"--skip", "Hidden",
		"--rename", "camelCase",
		"--encoding", "JSON",
		"--title", "Shop",
		"--api-version", "2.0",
		"--jobs", "4",
		"--validate",
		"--dry-run",
		"--force",
	)

	if captured.Target != "typescript4" {
		t.Errorf("target mismatch: got %q", captured.Target)
	}
	if captured.From != "ridl1" {
		t.Errorf("from mismatch: got %q", captured.From)
	}
	if captured.Input != "api.yaml" {
		t.Errorf("input mismatch: got %q", captured.Input)
	}
	if captured.Out != "./build/api.ts" {
		t.Errorf("out mismatch: got %q", captured.Out)
	}
	if want := []string{"Hidden", "Debug"}; !equalStringSlices(captured.Skip, want) {
		t.Errorf("skip mismatch: got %v", captured.Skip)
	}
	if captured.Rename != "camel" {
		t.Errorf("rename mismatch: got %q", captured.Rename)
	}
	if captured.Encoding != "json" {
		t.Errorf("encoding mismatch: got %q", captured.Encoding)
	}
	if captured.Title != "Shop" || captured.APIVersion != "2.0" {
		t.Errorf("info mismatch: got %q %q", captured.Title, captured.APIVersion)
	}
	if captured.Jobs != 4 {
		t.Errorf("jobs mismatch: got %d", captured.Jobs)
	}
	if !captured.Validate || !captured.DryRun || !captured.Force || !captured.Verbose {
		t.Errorf("expected validate, dry-run, force and verbose, got %+v", captured)
	}
	if captured.Color != "auto" {
		t.Errorf("color mismatch: got %q", captured.Color)
	}
}

func TestGenerateConfigDefaults(t *testing.T) {
	captured := captureGenerate(t, "generate", "--target", "swift")

	if captured.Target != "swift5" {
		t.Errorf("target mismatch: got %q", captured.Target)
	}
	if captured.From != "ridl" {
		t.Errorf("from: want ridl got %q", captured.From)
	}
	if captured.Encoding != "yaml" {
		t.Errorf("encoding: want yaml got %q", captured.Encoding)
	}
	if captured.Input != "" || captured.Out != "" {
		t.Errorf("expected standard streams, got in=%q out=%q", captured.Input, captured.Out)
	}
	if captured.Rename != "" || captured.Skip != nil {
		t.Errorf("expected no rename or skip, got %q %v", captured.Rename, captured.Skip)
	}
}

func TestGenerateConfigPrecedence(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	configContent := strings.TrimSpace(`target: openapi3
in: config.rs
out: from-config.yaml
skip:
  - CfgHidden
rename: camel
encoding: json
title: Config Title
apiVersion: "1.2"
jobs: 2
dryRun: true
force: false
verbose: true
`) + "\n"

	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	captured := captureGenerate(t,
		"--config", configPath,
		"generate",
		"--in", "flag.rs",
		"--skip", "FlagHidden",
		"--dry-run=false",
		"--force",
	)

	if captured.Input != "flag.rs" {
		t.Errorf("input: want %q got %q", "flag.rs", captured.Input)
	}
	if captured.Target != "openapi3" {
		t.Errorf("target: want openapi3 got %q", captured.Target)
	}
	if captured.Out != "from-config.yaml" {
		t.Errorf("out: want from-config.yaml got %q", captured.Out)
	}
	if want := []string{"FlagHidden"}; !equalStringSlices(captured.Skip, want) {
		t.Errorf("skip: want %v got %v", want, captured.Skip)
	}
	if captured.Encoding != "json" {
		t.Errorf("encoding: want json got %q", captured.Encoding)
	}
	if captured.Title != "Config Title" || captured.APIVersion != "1.2" {
		t.Errorf("info mismatch: got %q %q", captured.Title, captured.APIVersion)
	}
	if captured.Jobs != 2 {
		t.Errorf("jobs: want 2 got %d", captured.Jobs)
	}
	if captured.DryRun {
		t.Errorf("expected dry-run false after flag override")
	}
	if !captured.Force {
		t.Errorf("expected force true after flag override")
	}
	if !captured.Verbose {
		t.Errorf("expected verbose true from config file")
	}
	if captured.ConfigPath != configPath {
		t.Errorf("config path mismatch: got %q", captured.ConfigPath)
	}
}

func TestGenerateConfigTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "ridl.toml")
	configContent := `target = "typescript4"
skip = ["A", "B"]
rename = "camel"
jobs = 3
quiet = true
color = "never"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	captured := captureGenerate(t, "--config", configPath, "generate")

	if captured.Target != "typescript4" {
		t.Errorf("target mismatch: got %q", captured.Target)
	}
	if want := []string{"A", "B"}; !equalStringSlices(captured.Skip, want) {
		t.Errorf("skip mismatch: got %v", captured.Skip)
	}
	if captured.Rename != "camel" || captured.Jobs != 3 {
		t.Errorf("rename/jobs mismatch: got %q %d", captured.Rename, captured.Jobs)
	}
	if !captured.Quiet || captured.Color != "never" {
		t.Errorf("expected quiet and color never, got %v %q", captured.Quiet, captured.Color)
	}
}

func TestGenerateConfigUnknownKey(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "bad.yaml")
	if err := os.WriteFile(configPath, []byte("unknown: value\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	root.SetArgs([]string{
		"--config", configPath,
		"generate",
		"--target", "ridl1",
	})

	err := root.Execute()
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(err.Error(), "unknown field") {
		t.Fatalf("unexpected error message: %v", err)
	}
}

func TestGenerateConfigInvalid(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		args []string
		want string
	}{
		"missing target": {[]string{"generate"}, "--target is required"},
		"unknown target": {[]string{"generate", "-t", "kotlin"}, "unknown target"},
		"unknown from":   {[]string{"generate", "-t", "ts", "--from", "proto"}, "unsupported --from"},
		"bad encoding":   {[]string{"generate", "-t", "ridl1", "--encoding", "toml"}, "toml"},
		"bad rename":     {[]string{"generate", "-t", "ts", "--rename", "snake"}, "unknown rename rule"},
		"negative jobs":  {[]string{"generate", "-t", "ts", "--jobs", "-1"}, "must not be negative"},
		"verbose quiet":  {[]string{"-v", "-q", "generate", "-t", "ts"}, "mutually exclusive"},
		"bad color":      {[]string{"--color", "rainbow", "generate", "-t", "ts"}, "unsupported --color"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			root := NewRootCmd()
			root.SetOut(io.Discard)
			root.SetErr(io.Discard)
			root.SetArgs(tc.args)

			err := root.Execute()
			if !errors.Is(err, ErrUsage) {
				t.Fatalf("expected usage error, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func equalStringSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Package emitter holds what the target renderers share: the target
// registry, output encodings, the output writer and text helpers.
// Each target lives in its own sub-package and exposes
// Emit(ctx, *model.Module, Options) (*emitter.Result, error).
package emitter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Target names one output format.
type Target string

const (
	TargetRIDL1       Target = "ridl1"
	TargetOpenAPI3    Target = "openapi3"
	TargetSwift5      Target = "swift5"
	TargetTypeScript4 Target = "typescript4"
)

var targetAliases = map[string]Target{
	"ridl1":       TargetRIDL1,
	"ridl":        TargetRIDL1,
	"openapi3":    TargetOpenAPI3,
	"openapi":     TargetOpenAPI3,
	"oas":         TargetOpenAPI3,
	"swift5":      TargetSwift5,
	"swift":       TargetSwift5,
	"typescript4": TargetTypeScript4,
	"typescript":  TargetTypeScript4,
	"ts":          TargetTypeScript4,
}

// Targets lists the canonical target names in a stable order.
func Targets() []Target {
	return []Target{TargetRIDL1, TargetOpenAPI3, TargetSwift5, TargetTypeScript4}
}

// ParseTarget resolves a target name or one of its aliases.
func ParseTarget(s string) (Target, error) {
	if t, ok := targetAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t, nil
	}
	names := make([]string, 0, len(Targets()))
	for _, t := range Targets() {
		names = append(names, string(t))
	}
	return "", fmt.Errorf("unknown target %q (allowed: %s)", s, strings.Join(names, ", "))
}

// Extension is the conventional file extension for the target's output.
func (t Target) Extension(enc Encoding) string {
	switch t {
	case TargetSwift5:
		return ".swift"
	case TargetTypeScript4:
		return ".ts"
	default:
		if enc == EncodingJSON {
			return ".json"
		}
		return ".yaml"
	}
}

// Result is a rendered artifact.
type Result struct {
	Target  Target
	Content []byte
	Items   int // top-level declarations rendered
}

// PlannedFile describes a file the CLI intends to write.
type PlannedFile struct {
	Path string
	Size int
	Mode os.FileMode
}

// Plan describes writing content to path without touching the file system.
func Plan(path string, content []byte) PlannedFile {
	return PlannedFile{Path: filepath.ToSlash(path), Size: len(content), Mode: 0o644}
}

// WriteFile writes content atomically through a temporary file and rename.
// An existing file is only replaced when force is set.
func WriteFile(path string, content []byte, force bool) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	if st, err := os.Stat(abs); err == nil {
		if st.IsDir() {
			return fmt.Errorf("output path %q is a directory", abs)
		}
		if !force {
			return fmt.Errorf("output file %q already exists (use --force to overwrite)", abs)
		}
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp := abs + ".tmp-" + time.Now().Format("20060102150405")
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return fmt.Errorf("write temp %s: %w", filepath.Base(abs), err)
	}
	if err := os.Rename(tmp, abs); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", filepath.Base(abs), err)
	}
	return nil
}

// Commentize renders a doc comment as `/// ` lines. Surrounding blank
// space is dropped; an empty comment renders as nothing.
func Commentize(comment string) string {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return ""
	}
	lines := strings.Split(comment, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight("/// "+l, " ")
	}
	return strings.Join(lines, "\n")
}

// Indent prefixes every non-empty line of text with prefix.
func Indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}

// Block joins an optional comment and a declaration line.
func Block(comment, decl string) string {
	if c := Commentize(comment); c != "" {
		return c + "\n" + decl
	}
	return decl
}

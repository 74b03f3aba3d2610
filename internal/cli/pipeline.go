package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mark3labs/ridl/internal/diag"
	"github.com/mark3labs/ridl/internal/emitter"
	"github.com/mark3labs/ridl/internal/emitter/oasemitter"
	"github.com/mark3labs/ridl/internal/emitter/ridlemitter"
	"github.com/mark3labs/ridl/internal/emitter/swiftemitter"
	"github.com/mark3labs/ridl/internal/emitter/tsemitter"
	"github.com/mark3labs/ridl/internal/model"
	"github.com/mark3labs/ridl/internal/scan"
	"github.com/mark3labs/ridl/internal/syntax"
)

// readInput reads the whole input document. An empty path means in.
func readInput(path string, in io.Reader) ([]byte, error) {
	if path == "" {
		b, err := io.ReadAll(in)
		if err != nil {
			return nil, diag.Errorf(diag.Span{}, diag.ReadError, "read standard input: %v", err)
		}
		return b, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, diag.Errorf(diag.Span{}, diag.ReadError, "read %s: %v", path, err)
	}
	return b, nil
}

// compile loads src into the canonical model, applies the skip and rename
// passes and renders the configured target. Without a target only the model
// is built and res is nil.
func compile(ctx context.Context, cfg *GenerateConfig, src []byte) (m *model.Module, res *emitter.Result, err error) {
	log := zerolog.Ctx(ctx)

	m, err = load(ctx, cfg, src)
	if err != nil {
		return nil, nil, err
	}
	log.Debug().Str("from", cfg.From).Int("items", m.Count()).Msg("scanned")

	if len(cfg.Skip) > 0 {
		before := m.Count()
		m.Skip(cfg.Skip)
		log.Debug().Strs("names", cfg.Skip).Int("dropped", before-m.Count()).Msg("skipped")
	}
	if cfg.Rename != "" {
		m.Rename(model.RenameAll(model.Rule(cfg.Rename)))
		log.Debug().Str("rule", cfg.Rename).Msg("renamed")
	}
	if err := m.CheckUniqueNames(); err != nil {
		return nil, nil, err
	}

	if cfg.Target == "" {
		return m, nil, nil
	}
	res, err = render(ctx, cfg, m)
	if err != nil {
		return nil, nil, err
	}
	log.Debug().Str("target", string(res.Target)).Int("items", res.Items).Int("bytes", len(res.Content)).Msg("rendered")
	return m, res, nil
}

func load(ctx context.Context, cfg *GenerateConfig, src []byte) (*model.Module, error) {
	if cfg.From == fromRIDL1 {
		return ridlemitter.Decode(src)
	}
	f, err := syntax.Parse(string(src))
	if err != nil {
		return nil, err
	}
	return scan.Scan(ctx, f, scan.Options{Jobs: cfg.Jobs})
}

func render(ctx context.Context, cfg *GenerateConfig, m *model.Module) (*emitter.Result, error) {
	enc := emitter.Encoding(cfg.Encoding)
	switch emitter.Target(cfg.Target) {
	case emitter.TargetRIDL1:
		return ridlemitter.Emit(ctx, m, ridlemitter.Options{Encoding: enc})
	case emitter.TargetOpenAPI3:
		return oasemitter.Emit(ctx, m, oasemitter.Options{
			Title:    cfg.Title,
			Version:  cfg.APIVersion,
			Encoding: enc,
			Validate: cfg.Validate,
		})
	case emitter.TargetSwift5:
		return swiftemitter.Emit(ctx, m, swiftemitter.Options{})
	case emitter.TargetTypeScript4:
		return tsemitter.Emit(ctx, m, tsemitter.Options{})
	default:
		return nil, usageErrorf("", "unsupported target %q", cfg.Target)
	}
}

// writeResult sends res to the configured output. Without --out the artifact
// goes to out; with --dry-run only the plan is printed.
func writeResult(ctx context.Context, cfg *GenerateConfig, res *emitter.Result, out io.Writer) error {
	if cfg.DryRun {
		dest := "<stdout>"
		if cfg.Out != "" {
			dest = absPath(cfg.Out)
		}
		printPlan(out, emitter.Plan(dest, res.Content))
		return nil
	}
	if cfg.Out == "" {
		_, err := out.Write(res.Content)
		return err
	}
	if err := emitter.WriteFile(cfg.Out, res.Content, cfg.Force); err != nil {
		return wrapOutputError(err, absPath(cfg.Out))
	}
	zerolog.Ctx(ctx).Info().Str("target", string(res.Target)).Str("path", cfg.Out).Int("items", res.Items).Msg("wrote")
	return nil
}

func printPlan(w io.Writer, p emitter.PlannedFile) {
	fmt.Fprintf(w, "Planned write to %s (%d bytes, mode %04o)\n", p.Path, p.Size, p.Mode.Perm())
}

func absPath(path string) string {
	if ap, err := filepath.Abs(path); err == nil {
		return ap
	}
	return path
}

func wrapOutputError(err error, out string) error {
	// Provide clearer guidance for common FS failures.
	msg := err.Error()
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "already exists") || strings.Contains(lower, "directory") ||
		strings.Contains(lower, "permission") || strings.Contains(lower, "read-only") ||
		strings.Contains(lower, "mkdir") || strings.Contains(lower, "rename") {
		return usageError{
			scope: "output error for " + out,
			msg:   msg,
			hint:  "choose a different --out or use --force when appropriate.",
		}
	}
	return err
}

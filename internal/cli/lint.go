package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var lintRunner = runLint

func newLintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Check declarations without writing anything",
		Long: "Scan declarations and report every diagnostic. With --target the selected renderer " +
			"also runs, so target-specific problems are reported too. Nothing is written.",
		Example: strings.TrimSpace(`  ridl lint --in api.rs
  ridl lint --target typescript4 < api.rs`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveGenerateConfig(cmd, false)
			if err != nil {
				return err
			}
			s := commandStreams(cmd)
			logger := newLogger(s.err, cfg.Verbose, cfg.Quiet, useColor(cfg.Color, s.err))
			return lintRunner(logger.WithContext(cmd.Context()), cfg, s)
		},
	}

	addCompileFlags(cmd.Flags())

	return cmd
}

func runLint(ctx context.Context, cfg *GenerateConfig, s streams) error {
	src, err := readInput(cfg.Input, s.in)
	if err != nil {
		return err
	}
	m, _, err := compile(ctx, cfg, src)
	if err != nil {
		return err
	}
	if cfg.Target != "" {
		fmt.Fprintf(s.out, "ok: %d items, renders as %s\n", m.Count(), cfg.Target)
	} else {
		fmt.Fprintf(s.out, "ok: %d items\n", m.Count())
	}
	return nil
}

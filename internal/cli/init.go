package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mark3labs/ridl/internal/emitter"
)

// InitConfig captures the options for the init command.
type InitConfig struct {
	OutputPath string
	Format     string // yaml or toml
	Force      bool
}

var initRunner = runInit

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a sample ridl configuration file",
		Long:  "Scaffold a commented ridl configuration file that documents available options.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := cmd.Flags().GetString("out")
			if err != nil {
				return err
			}
			force, err := cmd.Flags().GetBool("force")
			if err != nil {
				return err
			}
			verbose, err := cmd.Flags().GetBool("verbose")
			if err != nil {
				return err
			}
			quiet, err := cmd.Flags().GetBool("quiet")
			if err != nil {
				return err
			}
			cfg := &InitConfig{
				OutputPath: out,
				Format:     "yaml",
				Force:      force,
			}
			if strings.EqualFold(filepath.Ext(out), ".toml") {
				cfg.Format = "toml"
			}
			logger := newLogger(cmd.ErrOrStderr(), verbose, quiet, false)
			return initRunner(logger.WithContext(cmd.Context()), cfg)
		},
	}

	cmd.Flags().StringP("out", "o", "ridl.yaml", "Where to write the sample config file (.yaml or .toml)")
	cmd.Flags().Bool("force", false, "Overwrite the target file if it already exists")

	return cmd
}

func runInit(ctx context.Context, cfg *InitConfig) error {
	out := strings.TrimSpace(cfg.OutputPath)
	if out == "" {
		out = "ridl.yaml"
	}
	abs, err := filepath.Abs(out)
	if err != nil {
		return fmt.Errorf("init: resolve output path: %w", err)
	}

	content := sampleConfigYAML
	if cfg.Format == "toml" {
		content = sampleConfigTOML
	}
	content = strings.TrimSpace(content) + "\n"

	if err := emitter.WriteFile(abs, []byte(content), cfg.Force); err != nil {
		return usageError{scope: "init", msg: err.Error(), hint: "choose a different --out or use --force."}
	}
	zerolog.Ctx(ctx).Info().Str("path", abs).Msg("wrote sample config")
	return nil
}

// sampleConfigYAML is a commented example config documenting available options.
const sampleConfigYAML = `# ridl configuration (YAML)
# All fields are optional. Command-line flags override config values.

# Target format: ridl1, openapi3, swift5 or typescript4.
# target: openapi3

# Input format: ridl (declarations) or ridl1 (a dumped canonical document).
# from: ridl

# Input file. Standard input when omitted.
# in: ./api.rs

# Output file. Standard output when omitted.
# out: ./api.yaml

# Items to drop by name, at any depth (comma-separated or list).
# skip: [Internal, Debug]

# Rename rule for enum cases, union variants and record fields (camel).
# rename: camel

# Encoding for ridl1 and openapi3 output (yaml|json).
# encoding: yaml

# OpenAPI info.title and info.version.
# title: Pet Store
# apiVersion: 1.0.0

# Top-level items scanned in parallel. Output does not depend on it.
# jobs: 4

# Validate the OpenAPI document before writing it.
# validate: true

# Preview the planned write without touching the file system.
# dryRun: false

# Overwrite an existing output file.
# force: false

# Logging on stderr.
# verbose: false
# quiet: false

# Diagnostic colors (auto|always|never).
# color: auto
`

// sampleConfigTOML mirrors sampleConfigYAML.
const sampleConfigTOML = `# ridl configuration (TOML)
# All fields are optional. Command-line flags override config values.

# target = "openapi3"
# from = "ridl"
# in = "./api.rs"
# out = "./api.yaml"
# skip = ["Internal", "Debug"]
# rename = "camel"
# encoding = "yaml"
# title = "Pet Store"
# apiVersion = "1.0.0"
# jobs = 4
# validate = true
# dryRun = false
# force = false
# verbose = false
# quiet = false
# color = "auto"
`

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/mark3labs/ridl/internal/emitter"
	"github.com/mark3labs/ridl/internal/model"
)

// Input formats accepted by --from.
const (
	fromSource = "ridl"  // declaration source
	fromRIDL1  = "ridl1" // a previously dumped canonical document
)

// GenerateConfig captures all inputs that influence generate and lint after
// merging defaults, config file values, and CLI overrides.
type GenerateConfig struct {
	Target     string
	From       string
	Input      string
	Out        string
	Skip       []string
	Rename     string
	Encoding   string
	Title      string
	APIVersion string
	Jobs       int
	ConfigPath string
	DryRun     bool
	Force      bool
	Validate   bool
	Verbose    bool
	Quiet      bool
	Color      string
}

func defaultGenerateConfig() GenerateConfig {
	return GenerateConfig{From: fromSource, Encoding: string(emitter.EncodingYAML), Jobs: 1, Color: "auto"}
}

// streams are the standard streams of one command invocation.
type streams struct {
	in       io.Reader
	out, err io.Writer
}

func commandStreams(cmd *cobra.Command) streams {
	return streams{in: cmd.InOrStdin(), out: cmd.OutOrStdout(), err: cmd.ErrOrStderr()}
}

var generateRunner = runGenerate

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render declarations as one target format",
		Long: "Read declarations (standard input by default), scan them into the canonical model and " +
			"render the selected target. Options can be provided via flags, config files, or defaults.",
		Example: strings.TrimSpace(`  ridl generate --target openapi3 --in api.rs --out api.yaml
  ridl generate -t typescript4 --rename camel < api.rs
  ridl --config ridl.yaml generate --force --dry-run`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveGenerateConfig(cmd, true)
			if err != nil {
				return err
			}
			s := commandStreams(cmd)
			logger := newLogger(s.err, cfg.Verbose, cfg.Quiet, useColor(cfg.Color, s.err))
			return generateRunner(logger.WithContext(cmd.Context()), cfg, s)
		},
	}

	flags := cmd.Flags()
	addCompileFlags(flags)
	flags.StringP("out", "o", "", "Output file (standard output when omitted)")
	flags.Bool("dry-run", false, "Preview the planned write without touching the file system")
	flags.Bool("force", false, "Overwrite an existing output file")

	return cmd
}

// addCompileFlags registers the flags shared by generate and lint.
func addCompileFlags(flags *pflag.FlagSet) {
	flags.StringP("target", "t", "", "Target format (ridl1|openapi3|swift5|typescript4)")
	flags.String("from", "", "Input format (ridl|ridl1); defaults to ridl")
	flags.StringP("in", "i", "", "Input file (standard input when omitted or -)")
	flags.StringSlice("skip", nil, "Drop items with these names (repeatable)")
	flags.String("rename", "", "Rename rule for cases, variants and fields (camel)")
	flags.String("encoding", "", "Encoding for ridl1 and openapi3 (yaml|json); defaults to yaml")
	flags.String("title", "", "OpenAPI info.title")
	flags.String("api-version", "", "OpenAPI info.version")
	flags.Int("jobs", 0, "Top-level items scanned in parallel; output does not depend on it")
	flags.Bool("validate", false, "Validate the OpenAPI document before writing it")
}

func resolveGenerateConfig(cmd *cobra.Command, requireTarget bool) (*GenerateConfig, error) {
	cfg := defaultGenerateConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	configPath = strings.TrimSpace(configPath)
	if configPath != "" {
		cfg.ConfigPath = configPath
		if err := applyGenerateConfigFromFile(&cfg, configPath); err != nil {
			return nil, err
		}
	}

	if err := applyGenerateFlagOverrides(cmd.Flags(), &cfg); err != nil {
		return nil, err
	}

	cfg.normalize()
	if err := cfg.validate(cmd.Name(), requireTarget); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyGenerateFlagOverrides(flags *pflag.FlagSet, cfg *GenerateConfig) error {
	strs := map[string]*string{
		"target":      &cfg.Target,
		"from":        &cfg.From,
		"in":          &cfg.Input,
		"out":         &cfg.Out,
		"rename":      &cfg.Rename,
		"encoding":    &cfg.Encoding,
		"title":       &cfg.Title,
		"api-version": &cfg.APIVersion,
		"color":       &cfg.Color,
	}
	for name, dst := range strs {
		if !flags.Changed(name) {
			continue
		}
		value, err := flags.GetString(name)
		if err != nil {
			return err
		}
		*dst = strings.TrimSpace(value)
	}

	bools := map[string]*bool{
		"dry-run":  &cfg.DryRun,
		"force":    &cfg.Force,
		"validate": &cfg.Validate,
		"verbose":  &cfg.Verbose,
		"quiet":    &cfg.Quiet,
	}
	for name, dst := range bools {
		if !flags.Changed(name) {
			continue
		}
		value, err := flags.GetBool(name)
		if err != nil {
			return err
		}
		*dst = value
	}

	if flags.Changed("skip") {
		value, err := flags.GetStringSlice("skip")
		if err != nil {
			return err
		}
		cfg.Skip = sanitizeNames(value)
	}
	if flags.Changed("jobs") {
		value, err := flags.GetInt("jobs")
		if err != nil {
			return err
		}
		cfg.Jobs = value
	}

	return nil
}

func (c *GenerateConfig) normalize() {
	c.Target = strings.TrimSpace(c.Target)
	c.From = strings.ToLower(strings.TrimSpace(c.From))
	c.Input = strings.TrimSpace(c.Input)
	c.Out = strings.TrimSpace(c.Out)
	c.Rename = strings.TrimSpace(c.Rename)
	c.Encoding = strings.ToLower(strings.TrimSpace(c.Encoding))
	c.Title = strings.TrimSpace(c.Title)
	c.APIVersion = strings.TrimSpace(c.APIVersion)
	c.Color = strings.ToLower(strings.TrimSpace(c.Color))
	c.Skip = sanitizeNames(c.Skip)
	if c.Input == "-" {
		c.Input = ""
	}
	if c.From == "" {
		c.From = fromSource
	}
	if c.Color == "" {
		c.Color = "auto"
	}
}

// validate checks the merged config and rewrites aliases to canonical names.
func (c *GenerateConfig) validate(command string, requireTarget bool) error {
	switch {
	case c.Target != "":
		t, err := emitter.ParseTarget(c.Target)
		if err != nil {
			return usageErrorf(command, "%v", err)
		}
		c.Target = string(t)
	case requireTarget:
		return usageErrorf(command, "--target is required (set via flag or config file)")
	}

	switch c.From {
	case fromSource, fromRIDL1:
	default:
		return usageErrorf(command, "unsupported --from %q (allowed: %s, %s)", c.From, fromSource, fromRIDL1)
	}

	enc, err := emitter.ParseEncoding(c.Encoding)
	if err != nil {
		return usageErrorf(command, "%v", err)
	}
	c.Encoding = string(enc)

	rule, err := model.ParseRule(c.Rename)
	if err != nil {
		return usageErrorf(command, "%v", err)
	}
	c.Rename = string(rule)

	if c.Jobs < 0 {
		return usageErrorf(command, "--jobs must not be negative (got %d)", c.Jobs)
	}
	if c.Verbose && c.Quiet {
		return usageErrorf(command, "--verbose and --quiet are mutually exclusive")
	}
	switch c.Color {
	case "auto", "always", "never", "on", "off":
	default:
		return usageErrorf(command, "unsupported --color %q (allowed: auto, always, never)", c.Color)
	}

	return nil
}

func sanitizeNames(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(names))
	result := make([]string, 0, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// applyGenerateConfigFromFile merges a config file into cfg. Files ending in
// .toml are read as TOML; everything else as YAML, which also covers JSON.
func applyGenerateConfigFromFile(cfg *GenerateConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return usageErrorf("", "read config file %q: %v", path, err)
	}

	var raw map[string]any
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &raw)
	} else {
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return usageErrorf("", "parse config file %q: %v", path, err)
	}

	for key, value := range raw {
		if err := applyConfigValue(cfg, key, value); err != nil {
			if errors.Is(err, errUnknownField) {
				return usageErrorf("", "config file %q: unknown field %q", path, key)
			}
			return usageErrorf("", "config field %q: %v", key, err)
		}
	}

	return nil
}

var errUnknownField = errors.New("unknown field")

func applyConfigValue(cfg *GenerateConfig, key string, value any) error {
	var err error
	switch normalizeKey(key) {
	case "target":
		cfg.Target, err = valueAsString(value)
	case "from":
		cfg.From, err = valueAsString(value)
	case "in", "input":
		cfg.Input, err = valueAsString(value)
	case "out":
		cfg.Out, err = valueAsString(value)
	case "skip":
		var list []string
		list, err = valueAsStringSlice(value)
		cfg.Skip = sanitizeNames(list)
	case "rename":
		cfg.Rename, err = valueAsString(value)
	case "encoding":
		cfg.Encoding, err = valueAsString(value)
	case "title":
		cfg.Title, err = valueAsString(value)
	case "apiversion":
		cfg.APIVersion, err = valueAsString(value)
	case "jobs":
		cfg.Jobs, err = valueAsInt(value)
	case "color":
		cfg.Color, err = valueAsString(value)
	case "dryrun":
		cfg.DryRun, err = valueAsBool(value)
	case "force":
		cfg.Force, err = valueAsBool(value)
	case "validate":
		cfg.Validate, err = valueAsBool(value)
	case "verbose":
		cfg.Verbose, err = valueAsBool(value)
	case "quiet":
		cfg.Quiet, err = valueAsBool(value)
	default:
		return errUnknownField
	}
	return err
}

func normalizeKey(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	lowered = strings.ReplaceAll(lowered, "-", "")
	lowered = strings.ReplaceAll(lowered, "_", "")
	return lowered
}

func valueAsString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("expected string, got %T", v)
	}
}

func valueAsStringSlice(v any) ([]string, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		if strings.TrimSpace(val) == "" {
			return nil, nil
		}
		return strings.Split(val, ","), nil
	case []any:
		items := make([]string, 0, len(val))
		for idx, elem := range val {
			str, err := valueAsString(elem)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", idx, err)
			}
			items = append(items, str)
		}
		return items, nil
	default:
		return nil, fmt.Errorf("expected string or list, got %T", v)
	}
}

func valueAsInt(v any) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		if val != float64(int(val)) {
			return 0, fmt.Errorf("expected integer, got %v", val)
		}
		return int(val), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, fmt.Errorf("invalid integer value %q", val)
		}
		return n, nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
}

func valueAsBool(v any) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		trimmed := strings.ToLower(strings.TrimSpace(val))
		switch trimmed {
		case "true", "t", "1", "yes", "y":
			return true, nil
		case "false", "f", "0", "no", "n", "":
			return false, nil
		default:
			return false, fmt.Errorf("invalid boolean value %q", val)
		}
	case nil:
		return false, nil
	default:
		return false, fmt.Errorf("expected boolean, got %T", v)
	}
}

// runGenerate is the default generate runner.
func runGenerate(ctx context.Context, cfg *GenerateConfig, s streams) error {
	src, err := readInput(cfg.Input, s.in)
	if err != nil {
		return err
	}
	_, res, err := compile(ctx, cfg, src)
	if err != nil {
		return err
	}
	return writeResult(ctx, cfg, res, s.out)
}

package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the ridl CLI against the process arguments and standard
// streams and returns the exit code.
func Execute() int {
	return Run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// Run executes the CLI with explicit arguments and streams. Diagnostics and
// usage errors are printed to stderr; any of them makes the exit code 1.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		mode, _ := root.PersistentFlags().GetString("color")
		report(stderr, err, reportOptions{Color: useColor(mode, stderr)})
		return 1
	}
	return 0
}

// NewRootCmd constructs the root command so tests can exercise the CLI easily.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ridl",
		Short: "Compile Rust-style type declarations into interface descriptions",
		Long: "ridl reads a restricted subset of Rust type declarations and renders them as a " +
			"canonical ridl1 document, an OpenAPI 3 description, Swift 5 or TypeScript 4 declarations.",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	// Convert Cobra flag errors (like unknown flags) into friendly usage errors
	// that also show the command's help text.
	flagErr := func(c *cobra.Command, err error) error {
		return usageErrorf("", "%v\n\n%s", err, c.UsageString())
	}
	cmd.SetFlagErrorFunc(flagErr)

	cmd.PersistentFlags().StringP("config", "c", "", "Config file path (YAML, JSON or TOML)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging on stderr")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress log output; diagnostics are still printed")
	cmd.PersistentFlags().String("color", "auto", "Colorize diagnostics (auto|always|never)")

	for _, sub := range []*cobra.Command{newGenerateCmd(), newLintCmd(), newInitCmd()} {
		sub.SetFlagErrorFunc(flagErr)
		cmd.AddCommand(sub)
	}

	return cmd
}

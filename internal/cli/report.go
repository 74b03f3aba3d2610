package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/mark3labs/ridl/internal/diag"
)

type reportOptions struct {
	Color bool
}

var kindAttrs = map[diag.Kind][]color.Attribute{
	diag.ReadError:             {color.FgRed, color.Bold},
	diag.EncodeError:           {color.FgRed, color.Bold},
	diag.UnsupportedConstruct:  {color.FgYellow, color.Bold},
	diag.MalformedAttribute:    {color.FgYellow, color.Bold},
	diag.UnrenderableConstruct: {color.FgMagenta, color.Bold},
}

// report prints err to w. Diagnostics print one per line as
// LOG(l:c-l:c): message; anything else prints as a single error line.
func report(w io.Writer, err error, opts reportOptions) {
	var logs diag.Logs
	if !errors.Is(err, ErrUsage) && errors.As(err, &logs) {
		for _, l := range logs {
			fmt.Fprintf(w, "%s: %s\n", paint(opts, kindAttrs[l.Kind], fmt.Sprintf("LOG(%s)", l.Span)), l.Message)
		}
		return
	}
	msg := strings.TrimRight(err.Error(), "\n")
	fmt.Fprintf(w, "%s %s\n", paint(opts, []color.Attribute{color.FgRed, color.Bold}, "error:"), msg)
}

func paint(opts reportOptions, attrs []color.Attribute, s string) string {
	c := color.New(attrs...)
	if opts.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(s)
}

// useColor resolves the --color mode. auto colors only terminals.
func useColor(mode string, w io.Writer) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "always", "on":
		return true
	case "never", "off":
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

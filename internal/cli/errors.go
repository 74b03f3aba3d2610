package cli

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUsage marks errors caused by how the CLI was invoked rather than by the
// input document. Reports print them as a single "error:" line.
var ErrUsage = errors.New("cli usage error")

// usageError is a bad invocation. Scope names the command or source that
// rejected it; hint is printed on its own line after the message.
type usageError struct {
	scope string
	msg   string
	hint  string
}

func usageErrorf(scope, format string, args ...any) error {
	return usageError{scope: scope, msg: fmt.Sprintf(format, args...)}
}

func (e usageError) Error() string {
	var b strings.Builder
	if e.scope != "" {
		b.WriteString(e.scope)
		b.WriteString(": ")
	}
	b.WriteString(e.msg)
	if e.hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.hint)
	}
	return b.String()
}

func (e usageError) Is(target error) bool {
	return target == ErrUsage
}

package cli

import (
	"errors"
	"fmt"
	"testing"
)

func TestUsageError(t *testing.T) {
	t.Parallel()
	cases := map[string]struct {
		err  error
		want string
	}{
		"scoped":   {usageErrorf("lint", "bad value %q", "x"), `lint: bad value "x"`},
		"unscoped": {usageErrorf("", "unsupported target %q", "kotlin"), `unsupported target "kotlin"`},
		"hinted": {
			usageError{scope: "init", msg: "file exists", hint: "use --force."},
			"init: file exists\nHint: use --force.",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if got := tc.err.Error(); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
			if !errors.Is(tc.err, ErrUsage) {
				t.Fatalf("expected %v to match ErrUsage", tc.err)
			}
			if !errors.Is(fmt.Errorf("wrapped: %w", tc.err), ErrUsage) {
				t.Fatalf("expected wrapped %v to match ErrUsage", tc.err)
			}
		})
	}
	if errors.Is(errors.New("plain"), ErrUsage) {
		t.Fatalf("plain errors must not match ErrUsage")
	}
}

// Command ridl compiles Rust-style type declarations into interface
// descriptions. See `ridl --help`.
package main

import (
	"os"

	"github.com/mark3labs/ridl/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

// Command geode-installer-completions writes a shell completion script to
// stdout. Packaging scripts use it to ship completions without running the
// installer binary itself.
package main

import (
	"fmt"
	"os"

	"github.com/gdlinux/geode-installer/internal/cli"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <bash|zsh|fish|powershell>\n", os.Args[0])
		os.Exit(1)
	}
	os.Exit(cli.Execute([]string{"completion", os.Args[1]}, cli.WithLogSetup(func(int) {})))
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/gdlinux/geode-installer/internal/cli"
	"github.com/gdlinux/geode-installer/internal/version"
)

func main() {
	rootCmd := cli.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "GEODE-INSTALLER",
		Section: "1",
		Source:  "geode-installer " + version.Version,
		Manual:  "geode-installer manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}

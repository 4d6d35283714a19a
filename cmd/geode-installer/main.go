package main

import (
	"os"

	"github.com/gdlinux/geode-installer/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:]))
}

package main

import (
	"os"

	"github.com/atinylittleshell/intellicomp/internal/cli"
)

var BUILD_VERSION = "dev"

func main() {
	if err := cli.Execute(BUILD_VERSION); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/sant0-9/todoai/internal/cli"
)

var version = "dev"

func main() {
	cli.Version = version
	if err := cli.RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

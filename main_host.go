//go:build !tinygo

package main

import (
	"os"

	"tapmenu/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/Jarutais/slidecast/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

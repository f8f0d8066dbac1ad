package main

import (
	"os"

	"github.com/chaatgpt/till/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/mdelacru/fichas/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/priyad/mathventure/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

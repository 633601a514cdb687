package main

import (
	"os"

	"github.com/Apurer/pet-registry/cmd/registry/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

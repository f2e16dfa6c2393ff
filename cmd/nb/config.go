package main

import (
	"fmt"
	"io"
	"os"

	"github.com/julien-sobczak/the-notebook/internal/core"
)

func CheckConfig() {
	err := core.CurrentConfig().Check()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// save writes back the current notebook or exits.
func save() {
	if err := core.SaveNotebook(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// readInput reads a file, or the standard input when path is "-".
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

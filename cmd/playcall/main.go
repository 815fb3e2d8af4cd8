package main

import (
	"os"

	"github.com/solatis/playcall/cmd/playcall/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

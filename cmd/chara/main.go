package main

import (
	"os"

	"github.com/corey/chara/cmd/chara/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

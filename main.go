package main

import (
	"os"

	"github.com/stinglish/stinglish/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

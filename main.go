package main

import (
	"os"

	"github.com/abhisek/pmoquiz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

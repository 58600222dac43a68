package main

import (
	"os"

	"github.com/Shreyas0812/dmpc-metrics/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

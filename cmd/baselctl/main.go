package main

import (
	"os"

	"github.com/baselworks/risk-engine/cmd/baselctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

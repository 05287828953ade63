package main

import (
	"os"

	"github.com/audc-labs/audc-deploy/internal/cli"
	"github.com/audc-labs/audc-deploy/internal/config"
)

// Set via -ldflags at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	config.SetBuildFlags(version, commit, date)
	os.Exit(cli.Execute(cli.NewRootCmd()))
}

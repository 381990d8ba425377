package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/mrlokans/tracker/internal/cli"
	"github.com/mrlokans/tracker/internal/config"
	"github.com/mrlokans/tracker/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

var CLI struct {
	Version kong.VersionFlag `help:"Print version and exit."`

	Serve     cli.ServeCmd     `cmd:"" default:"1" help:"Start the HTTP server."`
	Reconcile cli.ReconcileCmd `cmd:"" help:"Rebuild every progress aggregate from its recordings."`
	User      struct {
		Create cli.UserCreateCmd `cmd:"" help:"Create an API user and print its token."`
	} `cmd:"" help:"Manage API users."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("tracker"),
		kong.Description("Reading and course progress tracker"),
		kong.UsageOnError(),
		kong.Vars{"version": fmt.Sprintf("%s (%s)", Version, Commit)},
	)

	cfg := config.NewConfig()
	log := entrypoint.NewLogger(cfg)
	defer func() { _ = log.Sync() }()

	err := kctx.Run(&cli.Context{Config: cfg, Version: Version, Logger: log})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joefazee/neo-admin/internal/cli"
	"github.com/joefazee/neo-admin/internal/cli/commands"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	params := &cli.CmdParams{
		Use:     "neo-admin",
		Short:   "Manage product categories and the admin account",
		Long:    `neo-admin is the command line admin dashboard for the category API: list, search, page, create, edit and delete categories, and change the admin password.`,
		Version: version,
	}
	params.Palette = commands.Palette(params)
	root := cli.NewRoot(params)

	if err := cli.Execute(ctx, root, params); err != nil {
		stop()
		os.Exit(1)
	}
}

package cmd

import (
	"context"

	"github.com/urfave/cli/v3"

	"saveward/pkg/version"
)

// Commands:
// backup [game ...]
//   scans each game's configured save locations, stores a new backup
//   per game, and prints the run report
//
// restore [game ...]
//   copies each game's latest backup back to the original locations
//
// backups [game ...]
//   lists the stored backups per game
//
// find <name>
//   lists configured games matching a name fragment
//
// cloud changes | cloud sync
//   compares or synchronizes the local store with the cloud remote

func Execute(ctx context.Context, args []string) error {
	app := &cli.Command{
		Name:    "saveward",
		Usage:   "back up and restore game save data",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "api",
				Usage: "emit a machine-readable JSON report",
			},
			&cli.StringFlag{
				Name:  "manifest",
				Usage: "path to the games manifest",
			},
		},
		Commands: []*cli.Command{
			backupCommand(),
			restoreCommand(),
			backupsCommand(),
			findCommand(),
			cloudCommand(),
		},
	}

	return app.Run(ctx, args)
}

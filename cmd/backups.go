package cmd

import (
	"context"

	"github.com/urfave/cli/v3"
)

func backupsCommand() *cli.Command {
	return &cli.Command{
		Name:      "backups",
		Usage:     "list stored backups per game",
		ArgsUsage: "[game ...]",
		Action:    backupsAction,
	}
}

func backupsAction(_ context.Context, cmd *cli.Command) error {
	reporter := newReporter(cmd)
	reporter.SuppressOverall()

	cfg, st, err := openStore(cmd)
	if err != nil {
		reporter.PrintFailure()
		return err
	}

	games, unknown := selectGames(cfg, cmd.Args().Slice())
	if len(unknown) > 0 {
		reporter.TripUnknownGames(unknown)
	}

	for _, g := range games {
		backups, err := st.List(g.Name)
		if err != nil {
			reporter.PrintFailure()
			return err
		}
		reporter.AddBackups(g.Name, backups)
	}

	reporter.Print(st.Root)

	if len(unknown) > 0 {
		return ErrUnknownGames
	}
	return nil
}

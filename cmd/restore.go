package cmd

import (
	"context"
	"errors"

	"github.com/urfave/cli/v3"

	"saveward/pkg/scan"
	"saveward/pkg/store"
)

func restoreCommand() *cli.Command {
	return &cli.Command{
		Name:      "restore",
		Usage:     "restore games' latest backups to their original locations",
		ArgsUsage: "[game ...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "preview",
				Usage: "report what would be restored without writing anything",
			},
		},
		Action: restoreAction,
	}
}

func restoreAction(_ context.Context, cmd *cli.Command) error {
	reporter := newReporter(cmd)

	cfg, st, err := openStore(cmd)
	if err != nil {
		reporter.PrintFailure()
		return err
	}

	games, unknown := selectGames(cfg, cmd.Args().Slice())
	if len(unknown) > 0 {
		reporter.TripUnknownGames(unknown)
	}

	preview := cmd.Bool("preview")
	decision := scan.DecisionProcessed
	if preview {
		decision = scan.DecisionPreviewed
	}

	index := scan.NewDuplicateIndex()
	plans := make([]*scan.Result, 0, len(games))
	for _, g := range games {
		res, err := st.PlanRestore(g.Name)
		if err != nil {
			// A game that was never backed up has nothing to restore.
			if errors.Is(err, store.ErrNoBackups) {
				continue
			}
			reporter.PrintFailure()
			return err
		}
		index.AddGame(res, true)
		plans = append(plans, res)
	}

	failed := false
	for _, res := range plans {
		info := scan.NewBackupInfo()
		if !preview {
			info, err = st.Restore(res)
			if err != nil {
				reporter.PrintFailure()
				return err
			}
		}

		if !reporter.AddGame(res.Game, res, info, decision, index) {
			failed = true
		}
	}

	reporter.Print(st.Root)

	switch {
	case failed:
		return ErrGamesFailed
	case len(unknown) > 0:
		return ErrUnknownGames
	}
	return nil
}

package cmd

import (
	"context"
	"strings"

	"github.com/urfave/cli/v3"

	"saveward/pkg/cloud"
	"saveward/pkg/scan"
	"saveward/pkg/store"
	"saveward/pkg/utils/fileutils"
)

func backupCommand() *cli.Command {
	return &cli.Command{
		Name:      "backup",
		Usage:     "back up games' save data into the local store",
		ArgsUsage: "[game ...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "preview",
				Usage: "scan and report without storing anything",
			},
			&cli.StringFlag{
				Name:  "comment",
				Usage: "comment to attach to the new backups",
			},
			&cli.BoolFlag{
				Name:  "lock",
				Usage: "protect the new backups from pruning",
			},
			&cli.IntFlag{
				Name:  "keep",
				Usage: "prune unlocked backups beyond this count (0 keeps everything)",
			},
		},
		Action: backupAction,
	}
}

func backupAction(_ context.Context, cmd *cli.Command) error {
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

	remote := strings.TrimSpace(cfg.Cloud.Path)
	if remote != "" {
		changes, err := cloud.Changes(st.Root, fileutils.ExpandHome(remote))
		switch {
		case err != nil:
			reporter.TripCloudSyncFailed()
		case cloud.Conflicted(changes):
			reporter.TripCloudConflict()
		}
	}

	// Scan everything first so the duplicate index covers the whole run.
	index := scan.NewDuplicateIndex()
	results := make([]*scan.Result, 0, len(games))
	for _, g := range games {
		prev, err := st.LatestHashes(g.Name)
		if err != nil {
			reporter.PrintFailure()
			return err
		}
		res, err := scan.Scan(g, prev)
		if err != nil {
			reporter.PrintFailure()
			return err
		}
		index.AddGame(res, true)
		results = append(results, res)
	}

	failed := false
	for _, res := range results {
		info := scan.NewBackupInfo()
		if !preview && res.Reportable() {
			_, info, err = st.Create(res, store.CreateOptions{
				Comment: cmd.String("comment"),
				Locked:  cmd.Bool("lock"),
			})
			if err != nil {
				reporter.PrintFailure()
				return err
			}
			if keep := cmd.Int("keep"); keep > 0 {
				if _, err := st.Prune(res.Game, keep); err != nil {
					reporter.PrintFailure()
					return err
				}
			}
		}

		if !reporter.AddGame(res.Game, res, info, decision, index) {
			failed = true
		}
	}

	if remote != "" && !preview {
		if err := cloud.Sync(st.Root, fileutils.ExpandHome(remote)); err != nil {
			reporter.TripCloudSyncFailed()
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

package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"saveward/pkg/config"
)

func findCommand() *cli.Command {
	return &cli.Command{
		Name:      "find",
		Usage:     "list configured games matching a name fragment",
		ArgsUsage: "[name]",
		Action:    findAction,
	}
}

func findAction(_ context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) > 1 {
		return fmt.Errorf("find accepts at most one name fragment")
	}
	query := cmd.Args().First()

	reporter := newReporter(cmd)
	reporter.SuppressOverall()

	cfg, err := config.Load(manifestPath(cmd))
	if err != nil {
		reporter.PrintFailure()
		return err
	}

	names := cfg.FindTitles(query)
	if len(names) == 0 {
		reporter.TripUnknownGames([]string{query})
		reporter.Print("")
		return ErrUnknownGames
	}

	reporter.AddFoundTitles(names)
	reporter.Print("")
	return nil
}

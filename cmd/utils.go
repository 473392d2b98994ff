package cmd

import (
	"errors"

	"github.com/urfave/cli/v3"

	"saveward/pkg/config"
	"saveward/pkg/lang"
	"saveward/pkg/report"
	"saveward/pkg/store"
)

var (
	// ErrGamesFailed signals a nonzero exit after the report printed;
	// the failures themselves are in the report, not here.
	ErrGamesFailed = errors.New("some games failed to process")

	ErrUnknownGames = errors.New("unknown games named on the command line")
)

func isAPI(cmd *cli.Command) bool {
	if cmd == nil {
		return false
	}
	if cmd.Bool("api") {
		return true
	}
	root := cmd.Root()
	return root != nil && root.Bool("api")
}

func manifestPath(cmd *cli.Command) string {
	if path := cmd.String("manifest"); path != "" {
		return path
	}
	if root := cmd.Root(); root != nil {
		return root.String("manifest")
	}
	return ""
}

func newReporter(cmd *cli.Command) report.Reporter {
	if isAPI(cmd) {
		return report.NewJSON()
	}
	return report.NewStandard(lang.New())
}

func openStore(cmd *cli.Command) (config.Config, store.Store, error) {
	cfg, err := config.Load(manifestPath(cmd))
	if err != nil {
		return config.Config{}, store.Store{}, err
	}
	root, err := cfg.StorePath()
	if err != nil {
		return config.Config{}, store.Store{}, err
	}
	return cfg, store.Store{Root: root}, nil
}

// selectGames picks the games named on the command line, or every
// configured game when none are named. Names that match no configured
// game are returned separately; they never abort the run.
func selectGames(cfg config.Config, args []string) ([]config.Game, []string) {
	if len(args) == 0 {
		return cfg.Games, nil
	}

	var games []config.Game
	var unknown []string
	for _, name := range args {
		if g, found := cfg.FindGame(name); found {
			games = append(games, g)
		} else {
			unknown = append(unknown, name)
		}
	}
	return games, unknown
}

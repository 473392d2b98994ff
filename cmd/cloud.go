package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"saveward/pkg/cloud"
	"saveward/pkg/config"
	"saveward/pkg/lang"
	"saveward/pkg/report"
	"saveward/pkg/store"
	"saveward/pkg/utils/fileutils"
)

func cloudCommand() *cli.Command {
	return &cli.Command{
		Name:  "cloud",
		Usage: "compare or synchronize the local store with the cloud remote",
		Commands: []*cli.Command{
			{
				Name:   "changes",
				Usage:  "show differences between the store and the cloud remote",
				Action: cloudChangesAction,
			},
			{
				Name:   "sync",
				Usage:  "upload the store to the cloud remote",
				Action: cloudSyncAction,
			},
		},
	}
}

func cloudRemote(cmd *cli.Command) (store.Store, string, error) {
	cfg, st, err := openStore(cmd)
	if err != nil {
		return store.Store{}, "", err
	}
	return st, remotePath(cfg), nil
}

func remotePath(cfg config.Config) string {
	return fileutils.ExpandHome(strings.TrimSpace(cfg.Cloud.Path))
}

func cloudChangesAction(_ context.Context, cmd *cli.Command) error {
	st, remote, err := cloudRemote(cmd)
	if err != nil {
		return err
	}
	if remote == "" {
		return fmt.Errorf("no cloud remote configured")
	}

	changes, err := cloud.Changes(st.Root, remote)
	if err != nil {
		return err
	}

	report.CloudChanges(os.Stdout, os.Stderr, changes, isAPI(cmd), lang.New())
	return nil
}

func cloudSyncAction(_ context.Context, cmd *cli.Command) error {
	st, remote, err := cloudRemote(cmd)
	if err != nil {
		return err
	}
	if remote == "" {
		return fmt.Errorf("no cloud remote configured")
	}

	changes, err := cloud.Changes(st.Root, remote)
	if err != nil {
		return err
	}
	if err := cloud.Sync(st.Root, remote); err != nil {
		return err
	}

	// Report what the sync applied.
	report.CloudChanges(os.Stdout, os.Stderr, changes, isAPI(cmd), lang.New())
	return nil
}

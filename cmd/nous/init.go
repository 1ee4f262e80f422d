package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/ferrant/nous/internal/realm"
)

func initCommand() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Initialize a new nous realm",
		ArgsUsage: "[dir]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			target := cmd.Args().First()
			if target == "" {
				target = "."
			}
			_, err = realm.Init(target, cfg.Realm.Marker)
			return err
		},
	}
}

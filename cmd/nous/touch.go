package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/ferrant/nous/internal/realm"
)

func touchCommand() *cli.Command {
	return &cli.Command{
		Name:      "touch",
		Usage:     "Touch the file of a (new) node",
		ArgsUsage: "<node>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				return fmt.Errorf("node name is required")
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			r, err := openRealm(cfg)
			if err != nil {
				return err
			}
			logger := cliLogger()
			res := newResolver(cfg, logger)
			path, err := nodeFile(cfg, r, res, name)
			if err != nil {
				logger.Warn("node name results in an invalid file, skipping")
				return nil
			}
			if err := r.Touch(path); err != nil {
				return fmt.Errorf("failed to touch file '%s': %w", realm.Rel(path), err)
			}
			return nil
		},
	}
}

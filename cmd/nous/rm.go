package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/ferrant/nous/internal/apperr"
)

func rmCommand() *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Usage:     "Remove a node",
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

			// Strict resolution: removal with an ambiguous name is an error,
			// never a guess.
			path, err := res.ResolveOne(r.Root(), name, true)
			if err != nil {
				if errors.Is(err, apperr.ErrNotFound) {
					logger.Warn("node does not exist, skipping removal", slog.String("node", name))
					return nil
				}
				return err
			}
			return r.Remove(path)
		},
	}
}

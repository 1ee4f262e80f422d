package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/ferrant/nous/internal/apperr"
)

func pathCommand() *cli.Command {
	return &cli.Command{
		Name:      "path",
		Usage:     "Show file path of a node",
		ArgsUsage: "<node>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "absolute",
				Aliases: []string{"a"},
				Usage:   "Print the absolute path",
			},
		},
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
			path, err := res.ResolveOne(r.Root(), name, false)
			if err != nil {
				if errors.Is(err, apperr.ErrNotFound) {
					logger.Warn("node not found", slog.String("node", name))
					return nil
				}
				return err
			}
			printPath(path, cmd.Bool("absolute"))
			return nil
		},
	}
}

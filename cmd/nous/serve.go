package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/ferrant/nous/internal/server"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the realm over a read-only HTTP API with live change events",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			r, err := openRealm(cfg)
			if err != nil {
				return err
			}

			opts := []server.Option{
				server.WithConfig(cfg),
				server.WithRealm(r),
			}

			if err := server.Run(ctx, opts...); err != nil {
				return fmt.Errorf("server run error: %w", err)
			}
			return nil
		},
	}
}

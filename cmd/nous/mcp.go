package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/ferrant/nous/internal/mcpserver"
)

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Expose the realm to MCP clients over stdio",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			r, err := openRealm(cfg)
			if err != nil {
				return err
			}

			svc := newService(cfg, r, cliLogger())
			if err := mcpserver.New(svc).ServeStdio(); err != nil {
				return fmt.Errorf("mcp server error: %w", err)
			}
			return nil
		},
	}
}

package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/ferrant/nous/internal/resolver"
)

func blCommand() *cli.Command {
	return &cli.Command{
		Name:      "bl",
		Usage:     "List nodes which link to this node",
		ArgsUsage: "<node>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "path",
				Aliases: []string{"p"},
				Usage:   "Print the path",
			},
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
			g := newGraph(cfg, r, res, logger)

			sources, err := g.Backlinks(ctx, name)
			if err != nil {
				return err
			}
			showPath := cmd.Bool("path") || cmd.Bool("absolute")
			for _, p := range sources {
				if showPath {
					printPath(p, cmd.Bool("absolute"))
				} else {
					fmt.Println(resolver.Stem(p))
				}
			}
			return nil
		},
	}
}

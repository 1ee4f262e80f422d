package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func flCommand() *cli.Command {
	return &cli.Command{
		Name:      "fl",
		Usage:     "List nodes which this node links to",
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

			links, err := g.ForwardLinks(ctx, name)
			if err != nil {
				return err
			}
			showPath := cmd.Bool("path") || cmd.Bool("absolute")
			for _, l := range links {
				// Unresolved targets are planned nodes with no file yet;
				// they print by name even in path mode.
				if showPath && l.Resolved() {
					printPath(l.Path, cmd.Bool("absolute"))
				} else {
					fmt.Println(l.Target)
				}
			}
			return nil
		},
	}
}

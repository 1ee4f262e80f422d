package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/ferrant/nous/internal/resolver"
)

func lsCommand() *cli.Command {
	return &cli.Command{
		Name:  "ls",
		Usage: "List nodes in realm",
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
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			r, err := openRealm(cfg)
			if err != nil {
				return err
			}
			res := newResolver(cfg, cliLogger())
			paths, err := res.Enumerate(r.Root())
			if err != nil {
				return err
			}
			showPath := cmd.Bool("path") || cmd.Bool("absolute")
			for _, p := range paths {
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

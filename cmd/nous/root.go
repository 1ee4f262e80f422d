package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

func rootCommand() *cli.Command {
	return &cli.Command{
		Name:  "root",
		Usage: "Print root of this nous realm",
		Flags: []cli.Flag{
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
			printPath(r.Root(), cmd.Bool("absolute"))
			return nil
		},
	}
}

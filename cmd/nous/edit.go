package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
)

func fallbackEditor() string {
	if runtime.GOOS == "windows" {
		return "notepad"
	}
	return "vi"
}

// chooseEditor picks the editor command line: flag, config, $VISUAL,
// $EDITOR, then the platform fallback.
func chooseEditor(flag, configured string) string {
	for _, candidate := range []string{flag, configured, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if candidate != "" {
			return candidate
		}
	}
	return fallbackEditor()
}

func editCommand() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Edit a node using the default editor",
		ArgsUsage: "<node>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "editor",
				Aliases: []string{"e"},
				Usage:   "Editor to use",
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
			path, err := nodeFile(cfg, r, res, name)
			if err != nil {
				return err
			}

			editor := chooseEditor(cmd.String("editor"), cfg.Realm.Editor)
			args := strings.Fields(editor)
			if len(args) == 0 {
				args = []string{fallbackEditor()}
			}

			ec := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
			ec.Stdin = os.Stdin
			ec.Stdout = os.Stdout
			ec.Stderr = os.Stderr

			start := time.Now()
			if err := ec.Run(); err != nil {
				return fmt.Errorf("failed to run '%s', consider using the --editor flag: %w", editor, err)
			}
			if time.Since(start) <= 100*time.Millisecond {
				logger.Warn("editor exited under 100ms, this might indicate failure; consider using the --editor flag")
			}
			return nil
		},
	}
}

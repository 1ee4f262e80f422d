// Command nous manages a realm of plain-text nodes linked by [[wikilinks]].
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/ferrant/nous/internal"
	"github.com/ferrant/nous/internal/apperr"
	"github.com/ferrant/nous/internal/graph"
	"github.com/ferrant/nous/internal/noteservice"
	"github.com/ferrant/nous/internal/realm"
	"github.com/ferrant/nous/internal/resolver"
	pkgconfig "github.com/ferrant/nous/pkg/config"
)

func main() {
	cmd := &cli.Command{
		Name:  "nous",
		Usage: "Plain-text networked thought: nodes linked by [[wikilinks]]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "nous.yaml",
				Value:       "nous.yaml",
				Sources:     cli.EnvVars("NOUS_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			initCommand(),
			rootCommand(),
			lsCommand(),
			pathCommand(),
			touchCommand(),
			editCommand(),
			rmCommand(),
			flCommand(),
			blCommand(),
			serveCommand(),
			mcpCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// cliLogger returns a terse stderr logger for interactive commands.
// Warnings surface (ambiguous node names and the like), info does not.
func cliLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// loadConfig reads the optional config file named by the --config flag,
// starting from defaults.
func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// openRealm locates the realm enclosing the working directory.
func openRealm(cfg *internal.Config) (*realm.Realm, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve working directory: %w", err)
	}
	r, err := realm.Find(cwd, cfg.Realm.Marker)
	if err != nil {
		if errors.Is(err, apperr.ErrNotInRealm) {
			return nil, fmt.Errorf("not within a nous realm; you could use 'init' to create one")
		}
		return nil, err
	}
	return r, nil
}

func newResolver(cfg *internal.Config, logger *slog.Logger) *resolver.Resolver {
	return resolver.New(resolver.Config{
		Extensions:   cfg.Realm.Extensions,
		HiddenPrefix: cfg.Realm.HiddenPrefix,
	}, logger)
}

func newGraph(cfg *internal.Config, r *realm.Realm, res *resolver.Resolver, logger *slog.Logger) *graph.Graph {
	return graph.New(r.Root(), res, graph.Config{
		Workers:    cfg.Scan.Workers,
		BufferSize: cfg.Scan.BufferSize,
	}, logger)
}

func newService(cfg *internal.Config, r *realm.Realm, logger *slog.Logger) *noteservice.Service {
	res := newResolver(cfg, logger)
	g := newGraph(cfg, r, res, logger)
	return noteservice.NewService(r, res, g)
}

// nodeFile resolves a node name to its backing file, falling back to the
// default new-node file under the realm root when no file exists yet.
func nodeFile(cfg *internal.Config, r *realm.Realm, res *resolver.Resolver, name string) (string, error) {
	path, err := res.ResolveOne(r.Root(), name, false)
	if err == nil {
		return path, nil
	}
	if errors.Is(err, apperr.ErrNotFound) {
		return r.NodeFile(name, cfg.Realm.DefaultExtension)
	}
	return "", err
}

// printPath prints a path for display, relative to the working directory
// unless absolute is set.
func printPath(path string, absolute bool) {
	if absolute {
		fmt.Println(realm.Abs(path))
	} else {
		fmt.Println(realm.Rel(path))
	}
}

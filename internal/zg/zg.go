// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package zg implements the zg command, which lists, describes and calls
// Google Cloud REST APIs from their discovery documents.
package zg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/googleapis/zygen/internal/catalog"
	"github.com/googleapis/zygen/internal/config"
	"github.com/googleapis/zygen/internal/request"
	"github.com/googleapis/zygen/internal/store"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

var (
	errMissingService = errors.New("missing service, see `zg list` for the supported services")
	errTooManyArgs    = errors.New("too many arguments")
)

// Run executes the zg command with the given arguments.
func Run(ctx context.Context, args []string) error {
	return newCommand(&app{stdout: os.Stdout}).Run(ctx, args)
}

// app holds the state shared by the commands. It is filled in by setup,
// before any command runs.
type app struct {
	stdout     io.Writer
	configPath string
	cfg        *config.Config
	catalog    *catalog.Catalog
	store      *store.Store
	client     *http.Client
	defaults   request.Defaults
	tokens     request.TokenSource
}

func newCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:      "zg",
		Usage:     "explore and call Google Cloud REST APIs",
		UsageText: "zg [global options] [command]",
		Version:   Version(),
		Writer:    a.stdout,
		// `-p filter=a,b` is one parameter.
		DisableSliceFlagSeparator: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "API key for standalone APIs such as gemini",
				Sources: cli.EnvVars("ZG_API_KEY"),
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to the configuration file",
			},
		},
		Before: a.setup,
		Commands: []*cli.Command{
			updateCommand(a),
			listCommand(a),
			describeCommand(a),
			execCommand(a),
			configCommand(a),
			versionCommand(a),
		},
	}
}

// setup loads the configuration, installs the logger and opens the cache.
func (a *app) setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := cmd.String("config")
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return ctx, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return ctx, err
	}
	cfg = config.Merge(cfg, &config.Config{APIKey: cmd.String("api-key")})

	level, err := cfg.Level()
	if err != nil {
		return ctx, err
	}
	if cmd.Bool("debug") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	slog.Debug("loaded configuration", "file", path, "cache_dir", cfg.CacheDir)

	timeout, err := cfg.FetchTimeout()
	if err != nil {
		return ctx, err
	}
	if a.catalog, err = catalog.Read(); err != nil {
		return ctx, err
	}
	a.configPath = path
	a.cfg = cfg
	a.store = store.New(cfg.CacheDir)
	if a.client == nil {
		a.client = &http.Client{Timeout: timeout}
	}
	if a.defaults == nil {
		a.defaults = gcloud{}
	}
	if a.tokens == nil {
		a.tokens = gcloud{}
	}
	return ctx, nil
}

// color reports whether output should be colored: always with the flag,
// otherwise only on a terminal.
func (a *app) color(cmd *cli.Command) bool {
	if cmd.Bool("color") {
		return true
	}
	f, ok := a.stdout.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// checkArgs returns the positional arguments, at most n of them.
func checkArgs(cmd *cli.Command, n int) ([]string, error) {
	args := cmd.Args().Slice()
	if len(args) > n {
		return nil, fmt.Errorf("%w: %q", errTooManyArgs, args[n:])
	}
	return args, nil
}

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

package zg

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/googleapis/zygen/internal/config"
	"github.com/urfave/cli/v3"
)

var errConfigAlreadyExists = errors.New("configuration file already exists")

func configCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:      "config",
		Usage:     "manage the configuration file",
		UsageText: "zg config [command]",
		Commands: []*cli.Command{
			{
				Name:      "init",
				Usage:     "write a configuration file with the default settings",
				UsageText: "zg config init",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return a.initConfig()
				},
			},
			{
				Name:      "path",
				Usage:     "print the path of the configuration file",
				UsageText: "zg config path",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					_, err := fmt.Fprintln(a.stdout, a.configPath)
					return err
				},
			},
		},
	}
}

func (a *app) initConfig() error {
	if _, err := os.Stat(a.configPath); err == nil {
		return fmt.Errorf("%w: %s", errConfigAlreadyExists, a.configPath)
	}
	cfg, err := config.Default()
	if err != nil {
		return err
	}
	if err := config.Write(a.configPath, cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	_, err = fmt.Fprintf(a.stdout, "Created %s\n", a.configPath)
	return err
}

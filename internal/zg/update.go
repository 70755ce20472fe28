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
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"
)

func updateCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "download discovery documents and rebuild the cache",
		UsageText: "zg update [--all]",
		Description: `Download the discovery directory, then the discovery document of every
version of the supported services, and cache their resource trees.

Standalone services, such as gemini, are not listed by the directory and are
downloaded on first use.

Example:
  zg update
  zg update --all`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "all",
				Aliases: []string{"A"},
				Usage:   "include secondary services",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := checkArgs(cmd, 0); err != nil {
				return err
			}
			return a.update(ctx, cmd.Bool("all"))
		},
	}
}

func (a *app) update(ctx context.Context, all bool) error {
	if err := a.store.Init(); err != nil {
		return err
	}
	list, err := a.updateDirectory(ctx)
	if err != nil {
		return err
	}
	for _, service := range a.catalog.Services(all) {
		if service.Standalone {
			continue
		}
		for _, version := range service.Versions {
			if list.Item(service.ID(version)) == nil {
				slog.Warn("not listed in the discovery directory", "api", service.ID(version))
				continue
			}
			model, err := a.download(ctx, service, version, list)
			if err != nil {
				return fmt.Errorf("failed to update %s: %w", service.ID(version), err)
			}
			fmt.Fprintf(a.stdout, "Updated %s (%d resources)\n", model.ID, model.CountResources())
		}
	}
	return nil
}

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

	"github.com/googleapis/zygen/internal/list"
	"github.com/urfave/cli/v3"
)

func listCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "list services, resources or methods",
		UsageText: "zg list [service [resource [method]]]",
		Description: `Without arguments, list the supported services. With a service, list its
resources. With a service and a resource, list the resource's methods.

Resources are matched by the end of their path, so "clusters" and
"locations.clusters" both find "projects.locations.clusters".

Sort fields:
  services:  name, title, category, aliases, versions, default_version
  resources: path, name, depth, methods
  methods:   path, name, verb

Example:
  zg list --aliases
  zg list gke --long --sort depth
  zg list gke clusters`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "all",
				Aliases: []string{"A"},
				Usage:   "include secondary services, or show every method name",
			},
			&cli.BoolFlag{
				Name:    "aliases",
				Aliases: []string{"a"},
				Usage:   "show service aliases",
			},
			&cli.BoolFlag{
				Name:    "category",
				Aliases: []string{"c"},
				Usage:   "show service categories",
			},
			&cli.BoolFlag{
				Name:    "long",
				Aliases: []string{"l"},
				Usage:   "print a table",
			},
			&cli.BoolFlag{
				Name:    "color",
				Aliases: []string{"C"},
				Usage:   "color the output even when it is not a terminal",
			},
			&cli.StringFlag{
				Name:    "sort",
				Aliases: []string{"S"},
				Usage:   "sort by `FIELD`",
			},
			&cli.BoolFlag{
				Name:    "reverse",
				Aliases: []string{"r"},
				Usage:   "reverse the sort order",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args, err := checkArgs(cmd, 3)
			if err != nil {
				return err
			}
			opts := list.Options{
				All:      cmd.Bool("all"),
				Aliases:  cmd.Bool("aliases"),
				Category: cmd.Bool("category"),
				Long:     cmd.Bool("long"),
				Color:    a.color(cmd),
				Sort:     cmd.String("sort"),
				Reverse:  cmd.Bool("reverse"),
			}
			if len(args) == 0 {
				return list.Services(a.stdout, a.catalog.Services(opts.All), opts)
			}
			model, err := a.loadAPI(ctx, args[0])
			if err != nil {
				return err
			}
			if len(args) == 1 {
				return list.Resources(a.stdout, model, opts)
			}
			r, err := findResource(model, args[1])
			if err != nil {
				return err
			}
			method := ""
			if len(args) == 3 {
				method = args[2]
			}
			return list.Methods(a.stdout, r, method, opts)
		},
	}
}

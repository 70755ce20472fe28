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

	"github.com/googleapis/zygen/internal/api"
	"github.com/googleapis/zygen/internal/describe"
	"github.com/urfave/cli/v3"
)

func describeCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:      "desc",
		Aliases:   []string{"describe", "show"},
		Usage:     "describe a service, resource or method",
		UsageText: "zg desc service [resource [method]]",
		Description: `Describe a service, one of its resources, or a method of a resource.

Method descriptions include the request URL, the parameters filled in from
the gcloud configuration, the required parameters and a minimal request body.

Example:
  zg desc gke
  zg desc gke clusters
  zg desc gce instances insert`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args, err := checkArgs(cmd, 3)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return errMissingService
			}
			model, err := a.loadAPI(ctx, args[0])
			if err != nil {
				return err
			}
			if len(args) == 1 {
				return describe.Service(a.stdout, model)
			}
			r, err := findResource(model, args[1])
			if err != nil {
				return err
			}
			if len(args) == 2 {
				return describe.Resource(a.stdout, r)
			}
			m, err := api.FindMethod(r, args[2])
			if err != nil {
				return err
			}
			return describe.Method(a.stdout, model, m)
		},
	}
}

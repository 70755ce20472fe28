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
	"strings"

	"github.com/googleapis/zygen/internal/request"
	"github.com/urfave/cli/v3"
)

var errMissingMethod = errors.New("exec needs a service, a resource and a method")

func execCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:      "exec",
		Aliases:   []string{"ex"},
		Usage:     "call a method",
		UsageText: "zg exec service resource method [-p key=value]... [-H 'Key: Value']... [-d data] [--curl]",
		Description: `Call a method with an access token from the gcloud CLI.

Parameters named in the path template replace their placeholder; the others
are sent in the query string. Project, region and zone placeholders that are
not set are filled from the gcloud configuration.

Example:
  zg exec gke clusters list
  zg exec gce instances get -p instance=my-vm
  zg exec sql instances insert -d @instance.json --curl`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "param",
				Aliases: []string{"p"},
				Usage:   "set a parameter as `key=value`",
			},
			&cli.StringSliceFlag{
				Name:    "header",
				Aliases: []string{"H"},
				Usage:   "add a header as `'Key: Value'`",
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "request body as JSON, or `@FILE`",
			},
			&cli.BoolFlag{
				Name:  "curl",
				Usage: "print the equivalent curl command instead of calling the method",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args, err := checkArgs(cmd, 3)
			if err != nil {
				return err
			}
			if len(args) < 3 {
				return errMissingMethod
			}
			model, m, err := a.findMethod(ctx, args[0], args[1], args[2])
			if err != nil {
				return err
			}
			call := &request.Call{
				BaseURL: model.BaseURL,
				Method:  m,
				Data:    cmd.String("data"),
			}
			for _, s := range cmd.StringSlice("param") {
				p, err := request.ParseParam(s)
				if err != nil {
					return err
				}
				call.Params = append(call.Params, p)
			}
			for _, s := range cmd.StringSlice("header") {
				h, err := request.ParseHeader(s)
				if err != nil {
					return err
				}
				call.Headers = append(call.Headers, h)
			}

			if cmd.Bool("curl") {
				curl, err := call.Curl(ctx, a.defaults)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(a.stdout, curl)
				return err
			}
			return a.exec(ctx, call)
		},
	}
}

func (a *app) exec(ctx context.Context, call *request.Call) error {
	tokens := a.tokens
	for _, h := range call.Headers {
		if strings.EqualFold(h.Key, "Authorization") {
			tokens = nil
		}
	}
	body, callErr := request.Do(ctx, a.client, call, a.defaults, tokens)
	if body != nil {
		pretty, err := request.Pretty(body)
		if err != nil {
			pretty = string(body)
		}
		if _, err := fmt.Fprintln(a.stdout, pretty); err != nil {
			return err
		}
	}
	return callErr
}

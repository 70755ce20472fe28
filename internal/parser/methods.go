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

package parser

import (
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"regexp"
	"slices"
	"strings"

	"github.com/googleapis/zygen/internal/api"
	"github.com/googleapis/zygen/internal/discovery"
	"github.com/googleapis/zygen/internal/pathtemplate"
)

// Query parameters are rarely marked as required; their description starts
// with "Required." instead.
var requiredDescriptionRe = regexp.MustCompile(`(?i)^\s*required\.`)

func makeMethod(name string, input *discovery.Method) (*api.Method, error) {
	if input == nil || input.ID == "" {
		return nil, fmt.Errorf("method %q has no id", name)
	}
	template := input.FlatPath
	if template == "" {
		template = input.Path
	}
	if template == "" {
		return nil, fmt.Errorf("method %s has neither flatPath nor path", input.ID)
	}
	method := &api.Method{
		ID:           input.ID,
		Name:         name,
		HTTPMethod:   strings.ToUpper(input.HTTPMethod),
		PathTemplate: template,
		Description:  input.Description,
		QueryParams:  makeQueryParams(input.Parameters),
	}
	if parsed, err := pathtemplate.Parse(template); err == nil {
		method.PathParams = parsed.Variables()
	} else {
		slog.Debug("cannot parse path template", "method", input.ID, "template", template, "error", err)
	}
	if input.Response != nil {
		method.ResponseRef = input.Response.Ref
	}
	switch method.HTTPMethod {
	case http.MethodGet, http.MethodDelete:
		// No request body.
	default:
		if input.Request != nil {
			method.RequestRef = input.Request.Ref
		}
	}
	return method, nil
}

// makeQueryParams keeps query parameters only. Parameters for nested fields
// (with a `.` in their name) are dropped.
func makeQueryParams(parameters map[string]*discovery.Parameter) []*api.QueryParam {
	var params []*api.QueryParam
	for _, name := range slices.Sorted(maps.Keys(parameters)) {
		p := parameters[name]
		if p == nil || p.Location != "query" || strings.Contains(name, ".") {
			continue
		}
		required := requiredDescriptionRe.MatchString(p.Description)
		if p.Required != nil {
			required = *p.Required
		}
		params = append(params, &api.QueryParam{
			Name:        name,
			Description: p.Description,
			Required:    required,
		})
	}
	return params
}

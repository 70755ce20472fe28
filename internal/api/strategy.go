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

package api

import (
	"log/slog"
	"slices"
	"strings"
)

// Strategy selects one of several candidates matching query. It must return
// one of the candidates.
type Strategy func(query string, candidates []*Resource) *Resource

// strategies is keyed by API id. APIs without an entry fall back to the last
// candidate.
var strategies = map[string]Strategy{
	"container:v1":  selectContainer,
	"dataflow:v1b3": selectDataflow,
	"spanner:v1":    selectSpanner,
}

// selectContainer prefers regional clusters (`locations.clusters`) over
// zonal clusters.
func selectContainer(_ string, candidates []*Resource) *Resource {
	slog.Debug("preferring regional clusters over zonal clusters")
	if r := firstContaining(candidates, "container.projects.locations.clusters"); r != nil {
		return r
	}
	return candidates[0]
}

var dataflowRegionalResources = []string{"templates", "jobs", "debug", "messages", "workItems"}

// selectDataflow prefers the regional endpoints for jobs and templates, and
// `locations.snapshots` for everything else.
func selectDataflow(query string, candidates []*Resource) *Resource {
	token := "locations.snapshots"
	if slices.ContainsFunc(dataflowRegionalResources, func(name string) bool {
		return HasSuffixPath(query, name)
	}) {
		token = "locations"
	}
	slog.Debug("dataflow resource preference", "query", query, "prefer", token)
	if r := firstContaining(candidates, token); r != nil {
		return r
	}
	return candidates[len(candidates)-1]
}

// selectSpanner prefers `instances.operations` among the many spanner
// resources named `operations`.
func selectSpanner(_ string, candidates []*Resource) *Resource {
	if r := firstContaining(candidates, "instances.operations"); r != nil {
		return r
	}
	return candidates[len(candidates)-1]
}

// firstContaining returns the first candidate whose path contains the
// dotted token on segment boundaries.
func firstContaining(candidates []*Resource, token string) *Resource {
	for _, c := range candidates {
		if strings.Contains("."+c.Path+".", "."+token+".") {
			return c
		}
	}
	return nil
}

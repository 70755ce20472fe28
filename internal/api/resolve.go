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
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// Selection is the outcome of resolving a resource path.
type Selection struct {
	Resource *Resource
	// Candidates holds every matching resource, in traversal order.
	Candidates []*Resource
	// Advisory is set when the choice among several candidates was
	// arbitrary.
	Advisory string
}

// HasSuffixPath reports whether the dotted path ends with the dotted suffix
// on a segment boundary: `a.b.clusters` ends with `clusters` and
// `b.clusters`, but not with `lusters`.
func HasSuffixPath(path, suffix string) bool {
	if suffix == "" || !strings.HasSuffix(path, suffix) {
		return false
	}
	start := len(path) - len(suffix)
	return start == 0 || path[start-1] == '.'
}

// Candidates returns every resource whose canonical path ends with suffix,
// in depth-first traversal order.
func (a *API) Candidates(suffix string) []*Resource {
	var found []*Resource
	a.Walk(func(r *Resource, _ int) bool {
		if r.Path != "" && HasSuffixPath(r.Path, suffix) {
			found = append(found, r)
		}
		return true
	})
	return found
}

// Resolve finds the resource identified by a user supplied path suffix,
// such as `clusters` or `locations.clusters`.
//
// When several resources match, the strategy registered for the API id picks
// one. Without a strategy the last candidate is returned and
// Selection.Advisory explains the choice was arbitrary.
func (a *API) Resolve(suffix string) (*Selection, error) {
	candidates := a.Candidates(suffix)
	switch len(candidates) {
	case 0:
		return nil, &ResourceNotFoundError{API: a.ID, Path: suffix}
	case 1:
		return &Selection{Resource: candidates[0], Candidates: candidates}, nil
	}

	paths := make([]string, 0, len(candidates))
	for _, c := range candidates {
		paths = append(paths, c.Path)
	}
	slog.Debug("ambiguous resource path", "api", a.ID, "path", suffix, "candidates", paths)

	strategy, ok := strategies[a.ID]
	if !ok {
		advisory := fmt.Sprintf("found %d resources matching %q, using %q; specify a longer path such as %q to choose another",
			len(candidates), suffix, candidates[len(candidates)-1].Path, trimService(candidates[0].Path))
		slog.Warn("ambiguous resource path, using the last match", "api", a.ID, "path", suffix, "selected", candidates[len(candidates)-1].Path)
		return &Selection{Resource: candidates[len(candidates)-1], Candidates: candidates, Advisory: advisory}, nil
	}
	selected := strategy(suffix, candidates)
	if selected == nil || !slices.Contains(candidates, selected) {
		return nil, fmt.Errorf("%w: %q in %s", ErrSelectionFailed, suffix, a.ID)
	}
	return &Selection{Resource: selected, Candidates: candidates}, nil
}

// FindResource is Resolve, returning only the selected resource.
func (a *API) FindResource(suffix string) (*Resource, error) {
	s, err := a.Resolve(suffix)
	if err != nil {
		return nil, err
	}
	return s.Resource, nil
}

// FindMethod returns the method with the exact given name.
func FindMethod(r *Resource, name string) (*Method, error) {
	if m := r.Method(name); m != nil {
		return m, nil
	}
	resource := r.Path
	if resource == "" {
		resource = r.Name
	}
	return nil, &MethodNotFoundError{Resource: resource, Method: name}
}

// trimService drops the leading service name from a canonical path.
func trimService(path string) string {
	_, rest, ok := strings.Cut(path, ".")
	if !ok {
		return path
	}
	return rest
}

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

// Package hierarchy rebuilds the resource tree of services whose discovery
// documents declare logically nested resources at the top level.
//
// Rebuilding happens in two phases. First every top-level resource gets its
// ancestors inferred from its methods' URL templates, and its methods are
// renamed after the new canonical path. Then every resource with a parent is
// grafted under the node with that path.
package hierarchy

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/googleapis/zygen/internal/api"
	"github.com/googleapis/zygen/internal/pathtemplate"
)

// ErrStructuralInconsistency matches an InconsistencyError.
var ErrStructuralInconsistency = errors.New("structural inconsistency")

// InconsistencyError reports a resource whose parent never appeared in the
// rebuilt tree.
type InconsistencyError struct {
	Resource   string
	Path       string
	ParentPath string
}

// Error implements error.
func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("%v: cannot place resource %q (%s) under %q", ErrStructuralInconsistency, e.Resource, e.Path, e.ParentPath)
}

// Is reports whether target is ErrStructuralInconsistency.
func (e *InconsistencyError) Is(target error) bool {
	return target == ErrStructuralInconsistency
}

// flatServices lists the API ids that declare flat resources.
var flatServices = map[string]bool{
	"bigquery:v2":      true,
	"compute:v1":       true,
	"sqladmin:v1":      true,
	"sqladmin:v1beta4": true,
	"storage:v1":       true,
}

// Applies reports whether the API with the given id needs its hierarchy
// rebuilt.
func Applies(id string) bool {
	return flatServices[id]
}

// Rebuild returns a copy of model with the resource hierarchy inferred from
// URL templates. The input is not modified.
//
// Rebuild is idempotent: rebuilding its own output yields the same tree.
func Rebuild(model *api.API) (*api.API, error) {
	out := model.Clone()
	service, version := out.Name, out.Version
	for _, r := range out.Resources {
		inferPaths(service, version, r, "")
	}

	var roots, pending []*api.Resource
	for _, r := range out.Resources {
		if r.ParentPath == "" {
			roots = append(roots, r)
		} else {
			pending = append(pending, r)
		}
	}
	out.Resources = roots
	slog.Debug("rebuilding hierarchy", "api", out.ID, "roots", len(roots), "pending", len(pending))

	if err := reassemble(out, pending); err != nil {
		return nil, err
	}
	slog.Debug("rebuilt hierarchy", "api", out.ID, "resources", out.CountResources())
	return out, nil
}

// reassemble grafts every pending resource under its parent. A resource
// whose parent is not yet in the tree goes back to the front of the queue,
// so its parent may be placed first. The total number of requeues is
// bounded by the square of the initial queue length.
func reassemble(model *api.API, pending []*api.Resource) error {
	limit := len(pending) * len(pending)
	retries := 0
	for len(pending) > 0 {
		child := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if graft(model.Resources, child) {
			continue
		}
		retries++
		if retries > limit {
			return &InconsistencyError{Resource: child.Name, Path: child.Path, ParentPath: child.ParentPath}
		}
		slog.Debug("parent not found, requeueing", "resource", child.Path, "parent", child.ParentPath)
		pending = append([]*api.Resource{child}, pending...)
	}
	return nil
}

// inferPaths assigns the canonical path and parent path of r and of its
// declared sub-resources.
//
// A non-empty inherited path wins over the ancestors found in URL templates,
// so resources nested in the document keep their nesting.
func inferPaths(service, version string, r *api.Resource, inherited string) {
	parent := inherited
	if parent == "" {
		if chain := ancestors(service, version, r); len(chain) > 0 {
			parent = service + "." + strings.Join(chain, ".")
		}
	}
	path := service + "." + r.Name
	if parent != "" {
		path = parent + "." + r.Name
	}
	for _, m := range r.Methods {
		id := path + "." + m.Name
		if id == m.ID {
			continue
		}
		m.OriginalID = m.ID
		m.ID = id
	}
	for _, child := range r.Resources {
		inferPaths(service, version, child, path)
	}
	if r.Path != path || r.ParentPath != parent {
		slog.Debug("resource paths updated", "resource", r.Name, "path", path, "parent", parent)
	}
	r.Path = path
	r.ParentPath = parent
}

// ancestors returns the names of the ancestors of r, as implied by the URL
// templates of its methods.
//
// The first template whose ancestors do not end with the resource's own name
// is used. An empty result makes r a top-level resource.
func ancestors(service, version string, r *api.Resource) []string {
	seen := map[string]bool{}
	var found []string
	for _, m := range r.Methods {
		template := m.PathTemplate
		if seen[template] || !pathtemplate.IsHierarchyTemplate(service, template) {
			continue
		}
		seen[template] = true
		segments := pathtemplate.Segments(template, version)
		if len(segments) > 0 && segments[len(segments)-1] == r.Name {
			continue
		}
		found = segments
		break
	}
	return pathtemplate.ApplyServiceOverride(service, r.Name, found)
}

// graft inserts child under the resource whose path equals child's parent
// path. It reports false when no such resource exists.
func graft(resources []*api.Resource, child *api.Resource) bool {
	for _, r := range resources {
		if r.Path == child.ParentPath {
			for _, sibling := range r.Resources {
				if sibling.Path == child.Path {
					merge(sibling, child)
					return true
				}
			}
			r.Resources = append(r.Resources, child)
			return true
		}
		if strings.HasPrefix(child.ParentPath, r.Path+".") && graft(r.Resources, child) {
			return true
		}
	}
	return false
}

// merge moves the methods and sub-resources of src into dst, which has the
// same canonical path.
func merge(dst, src *api.Resource) {
	slog.Debug("merging resources", "path", dst.Path)
	for _, m := range src.Methods {
		if existing := dst.Method(m.Name); existing != nil {
			slog.Warn("duplicate method while merging resources", "path", dst.Path, "method", m.Name, "kept", existing.IdentifierID(), "dropped", m.IdentifierID())
			continue
		}
		dst.Methods = append(dst.Methods, m)
	}
	for _, child := range src.Resources {
		if !graft([]*api.Resource{dst}, child) {
			dst.Resources = append(dst.Resources, child)
		}
	}
}

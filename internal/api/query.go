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

// ResourcePath pairs a resource name with its canonical path.
type ResourcePath struct {
	Name string
	Path string
}

// Walk calls fn for every resource, depth-first, in declaration order.
// Top-level resources have depth 0. Returning false from fn skips the
// resource's children.
func (a *API) Walk(fn func(r *Resource, depth int) bool) {
	walk(a.Resources, 0, fn)
}

func walk(resources []*Resource, depth int, fn func(*Resource, int) bool) {
	for _, r := range resources {
		if fn(r, depth) {
			walk(r.Resources, depth+1, fn)
		}
	}
}

// AllResourcePaths returns the name and canonical path of every resource in
// depth-first order. Resources without a path are skipped.
func (a *API) AllResourcePaths() []ResourcePath {
	var paths []ResourcePath
	a.Walk(func(r *Resource, _ int) bool {
		if r.Path != "" {
			paths = append(paths, ResourcePath{Name: r.Name, Path: r.Path})
		}
		return true
	})
	return paths
}

// DuplicatedResources returns, for every resource name used at more than one
// position in the tree, the canonical paths using it.
func (a *API) DuplicatedResources() map[string][]string {
	byName := map[string][]string{}
	for _, p := range a.AllResourcePaths() {
		byName[p.Name] = append(byName[p.Name], p.Path)
	}
	for name, paths := range byName {
		if len(paths) < 2 {
			delete(byName, name)
		}
	}
	return byName
}

// CountResources returns the number of resources in the tree.
func (a *API) CountResources() int {
	n := 0
	a.Walk(func(*Resource, int) bool {
		n++
		return true
	})
	return n
}

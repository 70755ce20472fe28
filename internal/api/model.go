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

// Package api defines the normalized resource tree built from a discovery
// document, and the operations to query and resolve resources in it.
package api

import (
	"slices"
	"strings"
)

// API is the root of a normalized resource tree.
type API struct {
	// ID is `<name>:<version>`, e.g. `container:v1`.
	ID                string             `yaml:"id"`
	Name              string             `yaml:"name"`
	Version           string             `yaml:"version"`
	Title             string             `yaml:"title,omitempty"`
	Revision          string             `yaml:"revision,omitempty"`
	BaseURL           string             `yaml:"base_url"`
	DocumentationLink string             `yaml:"documentation_link,omitempty"`
	Resources         []*Resource        `yaml:"resources,omitempty"`
	Schemas           map[string]*Schema `yaml:"schemas,omitempty"`
}

// Resource is a node in the resource tree.
type Resource struct {
	// Name is the local name, e.g. `clusters`.
	Name string `yaml:"name"`
	// Path is the canonical dotted path, e.g.
	// `container.projects.locations.clusters`. It is not globally unique.
	Path string `yaml:"path,omitempty"`
	// ParentPath is the canonical path of the parent, empty for top-level
	// resources.
	ParentPath string      `yaml:"parent_path,omitempty"`
	Methods    []*Method   `yaml:"methods,omitempty"`
	Resources  []*Resource `yaml:"resources,omitempty"`
}

// Method is a callable operation on a resource.
type Method struct {
	// ID is `<resource path>.<method name>` after normalization.
	ID string `yaml:"id"`
	// OriginalID is the id declared by the discovery document, set only when
	// ID was rewritten while rebuilding the hierarchy.
	OriginalID   string        `yaml:"original_id,omitempty"`
	Name         string        `yaml:"name"`
	HTTPMethod   string        `yaml:"http_method"`
	PathTemplate string        `yaml:"path_template"`
	Description  string        `yaml:"description,omitempty"`
	PathParams   []string      `yaml:"path_params,omitempty"`
	QueryParams  []*QueryParam `yaml:"query_params,omitempty"`
	// RequestRef names the request body schema. Empty for GET and DELETE.
	RequestRef  string `yaml:"request_ref,omitempty"`
	ResponseRef string `yaml:"response_ref,omitempty"`
}

// QueryParam is a query string parameter of a method.
type QueryParam struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Required    bool   `yaml:"required,omitempty"`
}

// Schema is the subset of a discovery schema needed to describe request
// bodies.
type Schema struct {
	ID          string               `yaml:"id"`
	Type        string               `yaml:"type,omitempty"`
	Description string               `yaml:"description,omitempty"`
	Properties  map[string]*Property `yaml:"properties,omitempty"`
}

// Property is a field of a Schema.
type Property struct {
	Type        string `yaml:"type,omitempty"`
	Ref         string `yaml:"ref,omitempty"`
	Description string `yaml:"description,omitempty"`
	ReadOnly    bool   `yaml:"read_only,omitempty"`
	// RequiredFor lists the (original) method ids requiring this property.
	RequiredFor []string `yaml:"required_for,omitempty"`
}

// IdentifierID returns the id to use when linking to documentation, which is
// always the id declared by the discovery document.
func (m *Method) IdentifierID() string {
	if m.OriginalID != "" {
		return m.OriginalID
	}
	return m.ID
}

// Method returns the method with the given name, or nil.
func (r *Resource) Method(name string) *Method {
	for _, m := range r.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Depth returns the number of ancestors of the resource, derived from its
// canonical path.
func (r *Resource) Depth() int {
	if r.Path == "" {
		return 0
	}
	// The first segment is the service name.
	return max(strings.Count(r.Path, ".")-1, 0)
}

// Clone returns a deep copy of the resource.
func (r *Resource) Clone() *Resource {
	if r == nil {
		return nil
	}
	c := *r
	if r.Methods != nil {
		c.Methods = make([]*Method, 0, len(r.Methods))
		for _, m := range r.Methods {
			c.Methods = append(c.Methods, m.Clone())
		}
	}
	c.Resources = cloneResources(r.Resources)
	return &c
}

// Clone returns a deep copy of the method.
func (m *Method) Clone() *Method {
	if m == nil {
		return nil
	}
	c := *m
	c.PathParams = slices.Clone(m.PathParams)
	if m.QueryParams != nil {
		c.QueryParams = make([]*QueryParam, 0, len(m.QueryParams))
		for _, q := range m.QueryParams {
			qc := *q
			c.QueryParams = append(c.QueryParams, &qc)
		}
	}
	return &c
}

// Clone returns a deep copy of the API. Schemas are shared, they are never
// modified after parsing.
func (a *API) Clone() *API {
	if a == nil {
		return nil
	}
	c := *a
	c.Resources = cloneResources(a.Resources)
	return &c
}

func cloneResources(resources []*Resource) []*Resource {
	if resources == nil {
		return nil
	}
	out := make([]*Resource, 0, len(resources))
	for _, r := range resources {
		out = append(out, r.Clone())
	}
	return out
}

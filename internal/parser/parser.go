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

// Package parser converts discovery documents into normalized resource trees.
package parser

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/googleapis/zygen/internal/api"
	"github.com/googleapis/zygen/internal/discovery"
	"github.com/googleapis/zygen/internal/hierarchy"
)

// Parse parses the contents of a discovery document and returns its
// resource tree, rebuilding the hierarchy for services that declare flat
// resources.
func Parse(contents []byte) (*api.API, error) {
	doc, err := discovery.Parse(contents)
	if err != nil {
		return nil, err
	}
	return Build(doc)
}

// Build is Parse for an already decoded document.
func Build(doc *discovery.Document) (*api.API, error) {
	model, err := Normalize(doc)
	if err != nil {
		return nil, err
	}
	if !hierarchy.Applies(model.ID) {
		return model, nil
	}
	rebuilt, err := hierarchy.Rebuild(model)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild hierarchy of %s: %w", model.ID, err)
	}
	return rebuilt, nil
}

// Normalize converts a discovery document into a resource tree, keeping the
// nesting declared by the document.
func Normalize(doc *discovery.Document) (*api.API, error) {
	model := &api.API{
		ID:                doc.ID,
		Name:              doc.Name,
		Version:           doc.Version,
		Title:             doc.Title,
		Revision:          doc.Revision,
		BaseURL:           baseURL(doc),
		DocumentationLink: doc.DocumentationLink,
		Schemas:           makeSchemas(doc.Schemas),
	}
	if model.Name == "" || model.Version == "" {
		name, version, ok := strings.Cut(doc.ID, ":")
		if !ok {
			return nil, fmt.Errorf("malformed API id %q", doc.ID)
		}
		model.Name, model.Version = name, version
	}
	for _, name := range slices.Sorted(maps.Keys(doc.Resources)) {
		resource, err := makeResource(model.Name, name, doc.Resources[name], "")
		if err != nil {
			return nil, err
		}
		model.Resources = append(model.Resources, resource)
	}
	slog.Debug("normalized discovery document", "api", model.ID, "resources", model.CountResources())
	return model, nil
}

func baseURL(doc *discovery.Document) string {
	if doc.BaseURL != "" {
		return doc.BaseURL
	}
	return doc.RootURL + doc.ServicePath
}

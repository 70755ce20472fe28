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

// Package discovery defines the wire format of Google API Discovery
// documents and of the discovery directory list.
package discovery

import (
	"encoding/json"
	"fmt"
)

// Document represents a Google API Discovery Document.
// See: https://developers.google.com/discovery/v1/reference/apis
type Document struct {
	Kind              string                `json:"kind"`
	ID                string                `json:"id"`
	Name              string                `json:"name"`
	Version           string                `json:"version"`
	Revision          string                `json:"revision"`
	Title             string                `json:"title"`
	Description       string                `json:"description"`
	RootURL           string                `json:"rootUrl"`
	ServicePath       string                `json:"servicePath"`
	BaseURL           string                `json:"baseUrl"`
	DocumentationLink string                `json:"documentationLink"`
	Parameters        map[string]*Parameter `json:"parameters"`
	Resources         map[string]*Resource  `json:"resources"`
	Schemas           map[string]*Schema    `json:"schemas"`
}

// Resource represents an API resource and its nested resources.
type Resource struct {
	Methods   map[string]*Method   `json:"methods"`
	Resources map[string]*Resource `json:"resources"`
}

// Method represents an API method.
type Method struct {
	ID          string `json:"id"`
	HTTPMethod  string `json:"httpMethod"`
	Description string `json:"description"`
	Path        string `json:"path"`
	// FlatPath is missing in a few documents (storage:v1).
	FlatPath       string                `json:"flatPath"`
	ParameterOrder []string              `json:"parameterOrder"`
	Parameters     map[string]*Parameter `json:"parameters"`
	Request        *SchemaRef            `json:"request"`
	Response       *SchemaRef            `json:"response"`
	Scopes         []string              `json:"scopes"`
}

// Parameter represents a method parameter.
type Parameter struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	// Location is either "path" or "query".
	Location string `json:"location"`
	// Required is nil when the document does not say.
	Required *bool    `json:"required"`
	Repeated bool     `json:"repeated"`
	Default  string   `json:"default"`
	Enum     []string `json:"enum"`
	Format   string   `json:"format"`
	Pattern  string   `json:"pattern"`
}

// Schema represents a JSON schema in the document.
type Schema struct {
	ID          string             `json:"id"`
	Type        string             `json:"type"`
	Format      string             `json:"format"`
	Description string             `json:"description"`
	Properties  map[string]*Schema `json:"properties"`
	Items       *Schema            `json:"items"`
	Ref         string             `json:"$ref"`
	ReadOnly    bool               `json:"readOnly"`
	Annotations *Annotations       `json:"annotations"`
}

// Annotations contains metadata about schema fields.
type Annotations struct {
	// Required lists the method ids for which the field is required.
	Required []string `json:"required"`
}

// SchemaRef is a reference to a schema.
type SchemaRef struct {
	Ref string `json:"$ref"`
}

// Parse parses a Discovery Document from JSON bytes.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse discovery document: %w", err)
	}
	if doc.ID == "" {
		return nil, fmt.Errorf("discovery document has no id")
	}
	return &doc, nil
}

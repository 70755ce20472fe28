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
	"github.com/googleapis/zygen/internal/api"
	"github.com/googleapis/zygen/internal/discovery"
)

func makeSchemas(input map[string]*discovery.Schema) map[string]*api.Schema {
	if len(input) == 0 {
		return nil
	}
	schemas := make(map[string]*api.Schema, len(input))
	for name, s := range input {
		if s == nil {
			continue
		}
		id := s.ID
		if id == "" {
			id = name
		}
		schema := &api.Schema{
			ID:          id,
			Type:        s.Type,
			Description: s.Description,
		}
		for propName, p := range s.Properties {
			if p == nil {
				continue
			}
			if schema.Properties == nil {
				schema.Properties = map[string]*api.Property{}
			}
			schema.Properties[propName] = makeProperty(p)
		}
		schemas[name] = schema
	}
	return schemas
}

func makeProperty(p *discovery.Schema) *api.Property {
	prop := &api.Property{
		Type:        p.Type,
		Ref:         p.Ref,
		Description: p.Description,
		ReadOnly:    p.ReadOnly,
	}
	if prop.Ref == "" && p.Items != nil {
		prop.Ref = p.Items.Ref
	}
	if p.Annotations != nil {
		prop.RequiredFor = append(prop.RequiredFor, p.Annotations.Required...)
	}
	return prop
}

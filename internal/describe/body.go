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

package describe

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"

	"github.com/googleapis/zygen/internal/api"
)

const unsupportedValue = "<<See API Reference for details>>"

// MinimumData returns a JSON request body holding a placeholder for every
// required field of the request schema of m.
func MinimumData(model *api.API, m *api.Method) (string, error) {
	data := map[string]any{}
	if schema := model.Schemas[m.RequestRef]; schema != nil {
		data = minimumData(model, m, schema, map[string]bool{})
	}
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// minimumData recurses into referenced schemas. A schema already on the
// current path is not expanded again.
func minimumData(model *api.API, m *api.Method, schema *api.Schema, visiting map[string]bool) map[string]any {
	visiting[schema.ID] = true
	defer delete(visiting, schema.ID)

	data := map[string]any{}
	only := len(schema.Properties) == 1
	for name, prop := range schema.Properties {
		if !isRequired(m, name, prop, only) {
			continue
		}
		switch prop.Type {
		case "string":
			data[name] = ""
		case "integer":
			data[name] = 0
		case "boolean":
			data[name] = false
		case "":
			nested := model.Schemas[prop.Ref]
			if nested == nil || visiting[nested.ID] {
				data[name] = unsupportedValue
				continue
			}
			data[name] = minimumData(model, m, nested, visiting)
		default:
			data[name] = unsupportedValue
		}
	}
	return data
}

// isRequired reports whether a request field must be sent. Read-only
// fields never are. A field is required when its description says so, or
// when its annotations name the declared method id. The only field of a
// schema is required unless its description marks it optional.
func isRequired(m *api.Method, name string, prop *api.Property, only bool) bool {
	if prop.ReadOnly {
		return false
	}
	slog.Debug("request property", "name", name, "ref", prop.Ref, "description", prop.Description)
	lower := strings.ToLower(prop.Description)
	optional := strings.HasPrefix(lower, "output only") || strings.HasPrefix(lower, "optional")
	if only && !optional {
		return true
	}
	described := strings.Contains(prop.Description, "Required") || strings.HasPrefix(prop.Description, "Identifier.")
	annotated := slices.Contains(prop.RequiredFor, m.IdentifierID())
	return (described || annotated) && !optional
}

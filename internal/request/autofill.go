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

package request

import (
	"context"
	"log/slog"
	"slices"

	"github.com/googleapis/zygen/internal/api"
)

// Kind identifies a value that can fill path placeholders. Its value is the
// gcloud property holding the default.
type Kind string

const (
	// KindProject fills project placeholders.
	KindProject Kind = "core/project"
	// KindRegion fills region and location placeholders.
	KindRegion Kind = "compute/region"
	// KindZone fills zone placeholders.
	KindZone Kind = "compute/zone"
)

// Kinds lists every Kind in fill order.
var Kinds = []Kind{KindProject, KindRegion, KindZone}

var placeholders = map[Kind][]string{
	KindProject: {"projectsId", "project", "projectId"},
	KindRegion:  {"regionsId", "region", "locationsId", "location"},
	KindZone:    {"zonesId", "zone"},
}

// Placeholders returns the placeholder names filled by kind.
func (k Kind) Placeholders() []string {
	return placeholders[k]
}

// Defaults provides default values for placeholders.
type Defaults interface {
	Default(ctx context.Context, kind Kind) (string, error)
}

// StaticDefaults is a Defaults backed by a map. Missing kinds are errors.
type StaticDefaults map[Kind]string

// Default implements Defaults.
func (d StaticDefaults) Default(_ context.Context, kind Kind) (string, error) {
	if v, ok := d[kind]; ok && v != "" {
		return v, nil
	}
	return "", &noDefaultError{kind: kind}
}

type noDefaultError struct {
	kind Kind
}

// Error implements error.
func (e *noDefaultError) Error() string {
	return "no default for " + string(e.kind)
}

// IsAutofill reports whether the path parameter name is filled from
// defaults.
func IsAutofill(name string) bool {
	for _, kind := range Kinds {
		if slices.Contains(kind.Placeholders(), name) {
			return true
		}
	}
	return false
}

// AutofillParams returns the path parameters of m that are filled from
// defaults.
func AutofillParams(m *api.Method) []string {
	var names []string
	for _, p := range m.PathParams {
		if IsAutofill(p) {
			names = append(names, p)
		}
	}
	return names
}

// autofill sets the unset values of the template variables filled from
// defaults. A kind is only looked up when one of its placeholders is unset.
// Lookup errors leave the values unset.
func autofill(ctx context.Context, variables []string, values map[string]string, defaults Defaults) {
	if defaults == nil {
		return
	}
	for _, kind := range Kinds {
		var unset []string
		for _, name := range kind.Placeholders() {
			if slices.Contains(variables, name) && values[name] == "" {
				unset = append(unset, name)
			}
		}
		if len(unset) == 0 {
			continue
		}
		value, err := defaults.Default(ctx, kind)
		if err != nil {
			slog.Debug("no default value", "kind", kind, "error", err)
			continue
		}
		for _, name := range unset {
			values[name] = value
		}
	}
}

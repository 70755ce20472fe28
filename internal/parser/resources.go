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
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/googleapis/zygen/internal/api"
	"github.com/googleapis/zygen/internal/discovery"
)

// makeResource converts a resource and, recursively, its sub-resources.
//
// The canonical path comes from the id of the first method, which the
// document qualifies with the resource's ancestors. Resources without methods
// extend the parent path instead.
func makeResource(service, name string, input *discovery.Resource, parentPath string) (*api.Resource, error) {
	resource := &api.Resource{
		Name:       name,
		ParentPath: parentPath,
	}
	if input == nil {
		input = &discovery.Resource{}
	}
	for _, methodName := range slices.Sorted(maps.Keys(input.Methods)) {
		method, err := makeMethod(methodName, input.Methods[methodName])
		if err != nil {
			return nil, err
		}
		resource.Methods = append(resource.Methods, method)
	}

	switch {
	case len(resource.Methods) > 0:
		id := resource.Methods[0].ID
		i := strings.LastIndex(id, ".")
		if i <= 0 {
			return nil, fmt.Errorf("method id %q has no resource path", id)
		}
		resource.Path = id[:i]
	case parentPath != "":
		resource.Path = parentPath + "." + name
	default:
		resource.Path = service + "." + name
	}

	for _, childName := range slices.Sorted(maps.Keys(input.Resources)) {
		child, err := makeResource(service, childName, input.Resources[childName], resource.Path)
		if err != nil {
			return nil, err
		}
		resource.Resources = append(resource.Resources, child)
	}
	return resource, nil
}

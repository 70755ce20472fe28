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

package pathtemplate

import (
	"regexp"
	"slices"
	"strings"
)

// versionRe matches path segments that name an API version, like `v1`,
// `v2beta1`, `v1p1beta1` or `v1b3`. A few services (bigquery:v2 among them)
// serve some methods under a URL version that differs from the document
// version.
var versionRe = regexp.MustCompile(`^v\d+(p\d+)?((alpha|beta|b)\d*)?$`)

// excludedSegments lists, per service, literal segments that disqualify a
// template from hierarchy inference.
var excludedSegments = map[string][]string{
	"compute": {"aggregated"},
}

// Segments returns the literal ancestor segments of a URL template.
//
// Placeholders are dropped, then the final segment (the resource or method
// name itself), then any segment naming an API version. For example
// `v1/projects/{projectsId}/locations/{locationsId}/clusters/{clustersId}`
// with version `v1` yields `[projects locations]`.
func Segments(template, version string) []string {
	var segments []string
	for _, s := range strings.Split(template, "/") {
		if strings.HasPrefix(s, "{") || strings.HasSuffix(s, "}") {
			continue
		}
		segments = append(segments, s)
	}
	if len(segments) > 0 {
		segments = segments[:len(segments)-1]
	}
	return slices.DeleteFunc(segments, func(s string) bool {
		return s == version || versionRe.MatchString(s)
	})
}

// IsHierarchyTemplate reports whether a method's URL template can be used to
// infer the ancestry of its resource.
//
// Templates for custom methods (containing `:`) are rejected, as are
// templates with segments excluded for the given service.
func IsHierarchyTemplate(service, template string) bool {
	if strings.Contains(template, ":") {
		return false
	}
	for _, excluded := range excludedSegments[service] {
		if strings.Contains(template, "/"+excluded+"/") {
			return false
		}
	}
	return true
}

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
	"slices"
	"strings"
)

// SegmentOverride corrects the ancestor segments inferred for a resource
// whose URL segments do not match the logical resource names.
type SegmentOverride func(resource string, segments []string) []string

// segmentOverrides is keyed by service name. Services without an entry keep
// the segments derived from their URLs.
var segmentOverrides = map[string]SegmentOverride{
	"compute":  computeAncestors,
	"sqladmin": sqladminAncestors,
	"storage":  storageAncestors,
}

// ApplyServiceOverride returns the ancestors of resource in service, given
// the segments derived from the resource's URL templates.
func ApplyServiceOverride(service, resource string, segments []string) []string {
	override, ok := segmentOverrides[service]
	if !ok {
		return segments
	}
	return override(resource, slices.Clone(segments))
}

// storageAncestors handles the abbreviated `b/{bucket}/o/{object}` URLs,
// which also omit the implicit `projects` ancestor.
func storageAncestors(resource string, segments []string) []string {
	switch resource {
	case "buckets":
		return []string{"projects"}
	case "objects", "folders", "managedFolders":
		return []string{"projects", "buckets"}
	case "projects":
		return segments
	}
	ancestors := []string{"projects"}
	for _, s := range segments {
		switch s {
		case "b":
			ancestors = append(ancestors, "buckets")
		case "o":
			ancestors = append(ancestors, "objects")
		default:
			ancestors = append(ancestors, s)
		}
	}
	return ancestors
}

var computeFixedAncestors = map[string][]string{
	"globalOrganizationOperations":       {},
	"globalAddresses":                    {"projects"},
	"globalForwardingRules":              {"projects"},
	"globalNetworkEndpointGroups":        {"projects"},
	"globalOperations":                   {"projects"},
	"networkFirewallPolicies":            {"projects"},
	"instanceGroupManagerResizeRequests": {"projects", "zones", "instanceGroupManagers"},
	"zoneOperations":                     {"projects", "zones"},
}

// computeAncestors drops the `global` and `locations` pseudo-segments. A
// handful of resources have URLs that give no reliable signal and use a
// fixed chain instead.
func computeAncestors(resource string, segments []string) []string {
	if fixed, ok := computeFixedAncestors[resource]; ok {
		return slices.Clone(fixed)
	}
	if strings.HasPrefix(resource, "region") && resource != "regions" {
		return []string{"projects", "regions"}
	}
	return slices.DeleteFunc(segments, func(s string) bool {
		return s == "global" || s == "locations"
	})
}

// sqladminAncestors drops the `sql` segment that prefixes sqladmin URLs.
func sqladminAncestors(_ string, segments []string) []string {
	return slices.DeleteFunc(segments, func(s string) bool { return s == "sql" })
}

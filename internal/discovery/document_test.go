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

package discovery

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const containerDocument = `{
  "kind": "discovery#restDescription",
  "id": "container:v1",
  "name": "container",
  "version": "v1",
  "revision": "20241022",
  "baseUrl": "https://container.googleapis.com/",
  "resources": {
    "projects": {
      "resources": {
        "locations": {
          "resources": {
            "clusters": {
              "methods": {
                "get": {
                  "id": "container.projects.locations.clusters.get",
                  "httpMethod": "GET",
                  "path": "v1/{+name}",
                  "flatPath": "v1/projects/{projectsId}/locations/{locationsId}/clusters/{clustersId}",
                  "parameters": {
                    "name": {"type": "string", "location": "path", "required": true},
                    "projectId": {"type": "string", "location": "query", "description": "Deprecated."}
                  },
                  "response": {"$ref": "Cluster"}
                }
              }
            }
          }
        }
      }
    }
  },
  "schemas": {
    "Cluster": {
      "id": "Cluster",
      "type": "object",
      "properties": {
        "name": {"type": "string", "annotations": {"required": ["container.projects.locations.clusters.create"]}},
        "selfLink": {"type": "string", "readOnly": true}
      }
    }
  }
}`

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(containerDocument))
	if err != nil {
		t.Fatal(err)
	}
	if doc.ID != "container:v1" || doc.BaseURL != "https://container.googleapis.com/" {
		t.Errorf("unexpected header fields: %+v", doc)
	}
	get := doc.Resources["projects"].Resources["locations"].Resources["clusters"].Methods["get"]
	if get == nil {
		t.Fatal("missing clusters.get")
	}
	if get.FlatPath != "v1/projects/{projectsId}/locations/{locationsId}/clusters/{clustersId}" {
		t.Errorf("FlatPath = %q", get.FlatPath)
	}
	if p := get.Parameters["name"]; p.Required == nil || !*p.Required {
		t.Errorf("expected name to be required: %+v", p)
	}
	if p := get.Parameters["projectId"]; p.Required != nil {
		t.Errorf("expected projectId required to be unset: %+v", p)
	}
	if get.Response.Ref != "Cluster" {
		t.Errorf("Response.Ref = %q", get.Response.Ref)
	}
	want := []string{"container.projects.locations.clusters.create"}
	if diff := cmp.Diff(want, doc.Schemas["Cluster"].Properties["name"].Annotations.Required); diff != "" {
		t.Errorf("mismatch (-want, +got):\n%s", diff)
	}
	if !doc.Schemas["Cluster"].Properties["selfLink"].ReadOnly {
		t.Errorf("expected selfLink to be read only")
	}
}

func TestParseError(t *testing.T) {
	for _, input := range []string{`{`, `[]`, `{"name": "container"}`} {
		if _, err := Parse([]byte(input)); err == nil {
			t.Errorf("Parse(%q) expected an error", input)
		}
	}
}

func TestParseDirectory(t *testing.T) {
	input := `{
  "kind": "discovery#directoryList",
  "discoveryVersion": "v1",
  "items": [
    {"id": "container:v1", "name": "container", "version": "v1", "discoveryRestUrl": "https://container.googleapis.com/$discovery/rest?version=v1", "preferred": true},
    {"id": "container:v1beta1", "name": "container", "version": "v1beta1", "discoveryRestUrl": "https://container.googleapis.com/$discovery/rest?version=v1beta1"}
  ]
}`
	got, err := ParseDirectory([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	want := &DirectoryItem{
		ID:               "container:v1",
		Name:             "container",
		Version:          "v1",
		DiscoveryRestURL: "https://container.googleapis.com/$discovery/rest?version=v1",
		Preferred:        true,
	}
	if diff := cmp.Diff(want, got.Item("container:v1")); diff != "" {
		t.Errorf("mismatch (-want, +got):\n%s", diff)
	}
	if got.Item("compute:v1") != nil {
		t.Errorf("expected no compute:v1 item")
	}
}

func TestCanonicalize(t *testing.T) {
	got, err := Canonicalize([]byte(`{"b": 1, "a": {"d": [3, 1.50], "c": "<x>"}}`))
	if err != nil {
		t.Fatal(err)
	}
	want := `{
  "a": {
    "c": "<x>",
    "d": [
      3,
      1.50
    ]
  },
  "b": 1
}
`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("mismatch (-want, +got):\n%s", diff)
	}
	again, err := Canonicalize(got)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(string(got), string(again)); diff != "" {
		t.Errorf("Canonicalize is not idempotent (-want, +got):\n%s", diff)
	}
}

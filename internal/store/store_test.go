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

package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/googleapis/zygen/internal/api"
)

func TestPaths(t *testing.T) {
	s := New("/cache")
	for _, test := range []struct {
		got, want string
	}{
		{s.APIPath("container", "v1"), filepath.Join("/cache", "api", "container_v1.yaml")},
		{s.DocumentPath("sqladmin", "v1beta4"), filepath.Join("/cache", "discovered", "sqladmin_v1beta4.json")},
		{s.DirectoryPath(), filepath.Join("/cache", "discovered", "_discovered_apis.json")},
	} {
		if test.got != test.want {
			t.Errorf("got %q, want %q", test.got, test.want)
		}
	}
}

func TestInit(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	for _, sub := range []string{"api", "discovered"} {
		info, err := os.Stat(filepath.Join(s.Dir, sub))
		if err != nil {
			t.Fatal(err)
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", sub)
		}
	}
}

func TestSaveAndLoadAPI(t *testing.T) {
	s := New(t.TempDir())
	want := &api.API{
		ID:      "bigquery:v2",
		Name:    "bigquery",
		Version: "v2",
		BaseURL: "https://bigquery.googleapis.com/bigquery/v2/",
		Resources: []*api.Resource{
			{
				Name: "projects",
				Path: "bigquery.projects",
				Resources: []*api.Resource{
					{
						Name:       "datasets",
						Path:       "bigquery.projects.datasets",
						ParentPath: "bigquery.projects",
						Methods: []*api.Method{
							{
								ID:           "bigquery.projects.datasets.list",
								OriginalID:   "bigquery.datasets.list",
								Name:         "list",
								HTTPMethod:   "GET",
								PathTemplate: "projects/{projectId}/datasets",
								PathParams:   []string{"projectId"},
								QueryParams:  []*api.QueryParam{{Name: "all"}, {Name: "filter", Required: true}},
							},
						},
					},
				},
			},
		},
		Schemas: map[string]*api.Schema{
			"Dataset": {ID: "Dataset", Type: "object", Properties: map[string]*api.Property{
				"id": {Type: "string", ReadOnly: true, RequiredFor: []string{"bigquery.datasets.insert"}},
			}},
		},
	}
	if err := s.SaveAPI(want); err != nil {
		t.Fatal(err)
	}
	got, err := s.LoadAPI("bigquery", "v2")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("mismatch (-want, +got):\n%s", diff)
	}

	if err := s.RemoveAPI("bigquery", "v2"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadAPI("bigquery", "v2"); !errors.Is(err, ErrNotCached) {
		t.Errorf("LoadAPI() error = %v, want %v", err, ErrNotCached)
	}
	if err := s.RemoveAPI("bigquery", "v2"); err != nil {
		t.Errorf("removing a missing entry should succeed, got %v", err)
	}
}

func TestNotCached(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.LoadAPI("container", "v1"); !errors.Is(err, ErrNotCached) {
		t.Errorf("LoadAPI() error = %v, want %v", err, ErrNotCached)
	}
	if _, err := s.LoadDocument("container", "v1"); !errors.Is(err, ErrNotCached) {
		t.Errorf("LoadDocument() error = %v, want %v", err, ErrNotCached)
	}
	if _, err := s.LoadDirectory(); !errors.Is(err, ErrNotCached) {
		t.Errorf("LoadDirectory() error = %v, want %v", err, ErrNotCached)
	}
}

func TestSaveDocumentSortsKeys(t *testing.T) {
	s := New(t.TempDir())
	input := `{"version": "v1", "id": "container:v1", "name": "container", "revision": 20241022}`
	if err := s.SaveDocument("container", "v1", []byte(input)); err != nil {
		t.Fatal(err)
	}
	got, err := s.LoadDocument("container", "v1")
	if err != nil {
		t.Fatal(err)
	}
	want := `{
  "id": "container:v1",
  "name": "container",
  "revision": 20241022,
  "version": "v1"
}
`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("mismatch (-want, +got):\n%s", diff)
	}
	entries, err := os.ReadDir(filepath.Join(s.Dir, "discovered"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}

func TestSaveDocumentRejectsInvalidJSON(t *testing.T) {
	s := New(t.TempDir())
	if err := s.SaveDocument("container", "v1", []byte("{")); err == nil {
		t.Errorf("expected an error")
	}
	if _, err := s.LoadDocument("container", "v1"); !errors.Is(err, ErrNotCached) {
		t.Errorf("a failed save should leave nothing behind, got %v", err)
	}
}

func TestDirectory(t *testing.T) {
	s := New(t.TempDir())
	input := `{"kind": "discovery#directoryList", "items": [{"id": "storage:v1", "name": "storage", "version": "v1", "discoveryRestUrl": "https://storage.googleapis.com/$discovery/rest?version=v1"}]}`
	if err := s.SaveDirectory([]byte(input)); err != nil {
		t.Fatal(err)
	}
	got, err := s.LoadDirectory()
	if err != nil {
		t.Fatal(err)
	}
	item := got.Item("storage:v1")
	if item == nil || item.DiscoveryRestURL != "https://storage.googleapis.com/$discovery/rest?version=v1" {
		t.Errorf("unexpected item %+v", item)
	}
}

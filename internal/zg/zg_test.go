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

package zg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/googleapis/zygen/internal/api"
	"github.com/googleapis/zygen/internal/catalog"
	"github.com/googleapis/zygen/internal/config"
	"github.com/googleapis/zygen/internal/request"
	"github.com/googleapis/zygen/internal/store"
)

// testDir points the configuration and the cache at a temporary directory
// and returns that directory.
func testDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("ZG_API_KEY", "")
	return filepath.Join(dir, "zg")
}

func run(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	a.stdout = &buf
	err := newCommand(a).Run(t.Context(), append([]string{"zg"}, args...))
	return buf.String(), err
}

type staticToken string

func (s staticToken) Token(context.Context) (string, error) {
	return string(s), nil
}

func testApp() *app {
	return &app{
		defaults: request.StaticDefaults{
			request.KindProject: "my-project",
			request.KindRegion:  "us-central1",
		},
		tokens: staticToken("token"),
	}
}

func containerAPI(baseURL string) *api.API {
	clusters := "container.projects.locations.clusters"
	return &api.API{
		ID:      "container:v1",
		Name:    "container",
		Version: "v1",
		Title:   "Kubernetes Engine API",
		BaseURL: baseURL,
		Resources: []*api.Resource{
			{
				Name: "projects",
				Path: "container.projects",
				Resources: []*api.Resource{
					{
						Name:       "locations",
						Path:       "container.projects.locations",
						ParentPath: "container.projects",
						Resources: []*api.Resource{
							{
								Name:       "clusters",
								Path:       clusters,
								ParentPath: "container.projects.locations",
								Methods: []*api.Method{
									{
										ID:           clusters + ".get",
										Name:         "get",
										HTTPMethod:   "GET",
										PathTemplate: "v1/projects/{projectsId}/locations/{locationsId}/clusters/{clustersId}",
										PathParams:   []string{"projectsId", "locationsId", "clustersId"},
									},
									{
										ID:           clusters + ".list",
										Name:         "list",
										HTTPMethod:   "GET",
										PathTemplate: "v1/projects/{projectsId}/locations/{locationsId}/clusters",
										PathParams:   []string{"projectsId", "locationsId"},
									},
								},
								Resources: []*api.Resource{
									{
										Name:       "nodePools",
										Path:       clusters + ".nodePools",
										ParentPath: clusters,
										Methods: []*api.Method{
											{
												ID:           clusters + ".nodePools.list",
												Name:         "list",
												HTTPMethod:   "GET",
												PathTemplate: "v1/projects/{projectsId}/locations/{locationsId}/clusters/{clustersId}/nodePools",
												PathParams:   []string{"projectsId", "locationsId", "clustersId"},
											},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}
}

// cache stores model where the default configuration looks for it.
func cache(t *testing.T, dir string, model *api.API) {
	t.Helper()
	if err := store.New(dir).SaveAPI(model); err != nil {
		t.Fatal(err)
	}
}

func TestRun_Version(t *testing.T) {
	testDir(t)
	if err := Run(t.Context(), []string{"zg", "--version"}); err != nil {
		t.Fatal(err)
	}
}

func TestRun_Help(t *testing.T) {
	testDir(t)
	if err := Run(t.Context(), []string{"zg", "--help"}); err != nil {
		t.Fatal(err)
	}
}

func TestRun_CommandsExist(t *testing.T) {
	testDir(t)
	for _, test := range []struct {
		name string
		args []string
	}{
		{"update", []string{"update", "--help"}},
		{"list", []string{"list", "--help"}},
		{"ls", []string{"ls", "--help"}},
		{"desc", []string{"desc", "--help"}},
		{"describe", []string{"describe", "--help"}},
		{"show", []string{"show", "--help"}},
		{"exec", []string{"exec", "--help"}},
		{"ex", []string{"ex", "--help"}},
		{"config init", []string{"config", "init", "--help"}},
		{"version", []string{"version"}},
	} {
		t.Run(test.name, func(t *testing.T) {
			if _, err := run(t, testApp(), test.args...); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestVersion_IncludesOSArch(t *testing.T) {
	want := runtime.GOOS + "/" + runtime.GOARCH
	if got := Version(); !strings.HasSuffix(got, want) {
		t.Errorf("Version() = %q, want suffix %q", got, want)
	}
}

func TestVersionCommand(t *testing.T) {
	testDir(t)
	got, err := run(t, testApp(), "version")
	if err != nil {
		t.Fatal(err)
	}
	if want := "zg version " + Version() + "\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestConfigInit(t *testing.T) {
	dir := testDir(t)
	if _, err := run(t, testApp(), "config", "init"); err != nil {
		t.Fatal(err)
	}
	got, err := config.Load(filepath.Join(dir, "config.toml"))
	if err != nil {
		t.Fatal(err)
	}
	want, err := config.Default()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want, +got):\n%s", diff)
	}

	_, err = run(t, testApp(), "config", "init")
	if !errors.Is(err, errConfigAlreadyExists) {
		t.Errorf("second init error = %v, want %v", err, errConfigAlreadyExists)
	}
}

func TestConfigPath(t *testing.T) {
	dir := testDir(t)
	custom := filepath.Join(t.TempDir(), "custom.toml")
	for _, test := range []struct {
		name string
		args []string
		want string
	}{
		{"default", []string{"config", "path"}, filepath.Join(dir, "config.toml")},
		{"flag", []string{"--config", custom, "config", "path"}, custom},
	} {
		t.Run(test.name, func(t *testing.T) {
			got, err := run(t, testApp(), test.args...)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.want+"\n", got); diff != "" {
				t.Errorf("mismatch (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestMalformedConfig(t *testing.T) {
	dir := testDir(t)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("log-level = [\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, testApp(), "list"); err == nil {
		t.Error("expected an error for a malformed configuration")
	}
}

func TestListServices(t *testing.T) {
	testDir(t)
	got, err := run(t, testApp(), "list", "--aliases")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"container (gke)\n", "bigquery (bq)\n", "storage (gs, gcs)\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "advisorynotifications") {
		t.Errorf("secondary services listed without --all:\n%s", got)
	}

	got, err = run(t, testApp(), "list", "--all")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "advisorynotifications\n") {
		t.Errorf("secondary services missing with --all:\n%s", got)
	}
}

func TestListCached(t *testing.T) {
	dir := testDir(t)
	cache(t, dir, containerAPI("https://container.googleapis.com/"))
	for _, test := range []struct {
		name string
		args []string
		want string
	}{
		{
			name: "resources",
			args: []string{"list", "gke"},
			want: "projects\n  locations\n    clusters\n      nodePools\n",
		},
		{
			name: "methods",
			args: []string{"ls", "container:v1", "clusters"},
			want: "list\nget\n",
		},
		{
			name: "kebab case resource",
			args: []string{"list", "gke", "node-pools"},
			want: "list\n",
		},
		{
			name: "one method",
			args: []string{"list", "gke", "clusters", "get"},
			want: "get\n",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			got, err := run(t, testApp(), test.args...)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("mismatch (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestListErrors(t *testing.T) {
	dir := testDir(t)
	cache(t, dir, containerAPI("https://container.googleapis.com/"))
	for _, test := range []struct {
		name string
		args []string
		want error
	}{
		{"unknown service", []string{"list", "nope"}, catalog.ErrUnknownService},
		{"unknown version", []string{"list", "gke:v9"}, catalog.ErrUnknownVersion},
		{"unknown resource", []string{"list", "gke", "widgets"}, api.ErrResourceNotFound},
		{"unknown method", []string{"list", "gke", "clusters", "explode"}, api.ErrMethodNotFound},
		{"too many arguments", []string{"list", "gke", "clusters", "get", "extra"}, errTooManyArgs},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := run(t, testApp(), test.args...)
			if !errors.Is(err, test.want) {
				t.Errorf("error = %v, want %v", err, test.want)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	dir := testDir(t)
	cache(t, dir, containerAPI("https://container.googleapis.com/"))
	for _, test := range []struct {
		name string
		args []string
		want string
	}{
		{"service", []string{"desc", "gke"}, "service: container\n"},
		{"resource", []string{"describe", "gke", "clusters"}, "resource_path: container.projects.locations.clusters\n"},
		{"method", []string{"show", "gke", "clusters", "get"}, "method_id: container.projects.locations.clusters.get\n"},
	} {
		t.Run(test.name, func(t *testing.T) {
			got, err := run(t, testApp(), test.args...)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(got, test.want) {
				t.Errorf("missing %q in:\n%s", test.want, got)
			}
		})
	}

	if _, err := run(t, testApp(), "desc"); !errors.Is(err, errMissingService) {
		t.Errorf("error = %v, want %v", err, errMissingService)
	}
}

func TestExecCurl(t *testing.T) {
	dir := testDir(t)
	cache(t, dir, containerAPI("https://container.googleapis.com/"))
	got, err := run(t, testApp(), "exec", "--curl", "-p", "clustersId=c1", "-p", "view=BASIC", "gke", "clusters", "get")
	if err != nil {
		t.Fatal(err)
	}
	want := "curl -X GET \\\n" +
		"  -H \"Authorization: Bearer $(gcloud auth print-access-token)\" \\\n" +
		"  -H \"Content-Type: application/json; charset=utf-8\" \\\n" +
		"  \"https://container.googleapis.com/v1/projects/my-project/locations/us-central1/clusters/c1?view=BASIC\"\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want, +got):\n%s", diff)
	}
}

func TestExec(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/v1/projects/my-project/locations/us-central1/clusters" {
			http.Error(w, `{"error": {"code": 404}}`, http.StatusNotFound)
			return
		}
		fmt.Fprint(w, `{"clusters":[]}`)
	}))
	defer server.Close()

	dir := testDir(t)
	cache(t, dir, containerAPI(server.URL+"/"))
	got, err := run(t, testApp(), "ex", "gke", "clusters", "list")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("{\n  \"clusters\": []\n}\n", got); diff != "" {
		t.Errorf("mismatch (-want, +got):\n%s", diff)
	}
	if gotAuth != "Bearer token" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer token")
	}

	got, err = run(t, testApp(), "exec", "-H", "Authorization: Bearer mine", "-p", "clustersId=c1", "gke", "node-pools", "list")
	if err == nil {
		t.Fatal("expected an error for a 404 response")
	}
	if !strings.Contains(got, `"code": 404`) {
		t.Errorf("error body not printed:\n%s", got)
	}
	if gotAuth != "Bearer mine" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer mine")
	}
}

func TestExecMissingArguments(t *testing.T) {
	testDir(t)
	if _, err := run(t, testApp(), "exec", "gke", "clusters"); !errors.Is(err, errMissingMethod) {
		t.Errorf("error = %v, want %v", err, errMissingMethod)
	}
}

const containerDocument = `{
  "kind": "discovery#restDescription",
  "id": "container:v1",
  "name": "container",
  "version": "v1",
  "title": "Kubernetes Engine API",
  "rootUrl": "https://container.googleapis.com/",
  "servicePath": "",
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
                  "flatPath": "v1/projects/{projectsId}/locations/{locationsId}/clusters/{clustersId}"
                }
              }
            }
          }
        }
      }
    }
  }
}`

func discoveryServer(t *testing.T, requests *[]string) *httptest.Server {
	t.Helper()
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*requests = append(*requests, r.URL.Path)
		switch r.URL.Path {
		case "/discovery/v1/apis":
			fmt.Fprintf(w, `{"kind": "discovery#directoryList", "items": [
  {"id": "container:v1", "name": "container", "version": "v1", "discoveryRestUrl": "%s/container/v1/rest"}
]}`, server.URL)
		case "/container/v1/rest":
			fmt.Fprint(w, containerDocument)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestListDownloadsMissingAPI(t *testing.T) {
	dir := testDir(t)
	var requests []string
	server := discoveryServer(t, &requests)
	if err := config.Write(filepath.Join(dir, "config.toml"), &config.Config{DiscoveryURL: server.URL + "/discovery/v1/apis"}); err != nil {
		t.Fatal(err)
	}

	got, err := run(t, testApp(), "list", "gke")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("projects\n  locations\n    clusters\n", got); diff != "" {
		t.Errorf("mismatch (-want, +got):\n%s", diff)
	}
	s := store.New(dir)
	for _, path := range []string{s.DirectoryPath(), s.DocumentPath("container", "v1"), s.APIPath("container", "v1")} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("not cached: %v", err)
		}
	}

	// The second run reads the cache.
	if _, err := run(t, testApp(), "list", "gke"); err != nil {
		t.Fatal(err)
	}
	want := []string{"/discovery/v1/apis", "/container/v1/rest"}
	if diff := cmp.Diff(want, requests); diff != "" {
		t.Errorf("requests mismatch (-want, +got):\n%s", diff)
	}
}

func TestStandaloneNeedsAPIKey(t *testing.T) {
	testDir(t)
	_, err := run(t, testApp(), "list", "gemini")
	if err == nil || !strings.Contains(err.Error(), "API key") {
		t.Errorf("error = %v, want a missing API key error", err)
	}
}

func TestFindResource(t *testing.T) {
	model := containerAPI("")
	for _, test := range []struct {
		query string
		want  string
	}{
		{"clusters", "container.projects.locations.clusters"},
		{"nodePools", "container.projects.locations.clusters.nodePools"},
		{"node-pools", "container.projects.locations.clusters.nodePools"},
		{"node_pools", "container.projects.locations.clusters.nodePools"},
		{"clusters.node-pools", "container.projects.locations.clusters.nodePools"},
	} {
		t.Run(test.query, func(t *testing.T) {
			got, err := findResource(model, test.query)
			if err != nil {
				t.Fatal(err)
			}
			if got.Path != test.want {
				t.Errorf("findResource(%q) = %q, want %q", test.query, got.Path, test.want)
			}
		})
	}

	_, err := findResource(model, "no-such-thing")
	var notFound *api.ResourceNotFoundError
	if !errors.As(err, &notFound) || notFound.Path != "no-such-thing" {
		t.Errorf("error = %v, want a not found error for the original query", err)
	}
}

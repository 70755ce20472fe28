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

// Package describe renders human readable descriptions of services,
// resources and methods.
package describe

import (
	"embed"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/cbroglie/mustache"
	"github.com/googleapis/zygen/internal/api"
	"github.com/googleapis/zygen/internal/request"
)

//go:embed templates/*.mustache
var templates embed.FS

type serviceView struct {
	Name              string
	Version           string
	Revision          string
	BaseURL           string
	Title             string
	DocumentationLink string
	Resources         []string
}

type resourceView struct {
	Name        string
	Path        string
	ParentPath  string
	HasMethods  bool
	Methods     []string
	HasChildren bool
	Children    []string
}

type methodView struct {
	Name              string
	ID                string
	OriginalID        string
	HTTPMethod        string
	RequestURL        string
	Autofill          string
	RequiredParams    string
	HasBody           bool
	MinimumData       string
	Description       string
	DocumentationLink string
}

// Service writes the service header and its top-level resources.
func Service(w io.Writer, model *api.API) error {
	view := &serviceView{
		Name:              model.Name,
		Version:           model.Version,
		Revision:          model.Revision,
		BaseURL:           model.BaseURL,
		Title:             model.Title,
		DocumentationLink: model.DocumentationLink,
	}
	for _, r := range model.Resources {
		view.Resources = append(view.Resources, r.Name)
	}
	return render(w, "service", view)
}

// Resource writes a resource with its methods and direct children.
func Resource(w io.Writer, r *api.Resource) error {
	view := &resourceView{
		Name:       r.Name,
		Path:       orNA(r.Path),
		ParentPath: orNA(r.ParentPath),
	}
	for _, m := range r.Methods {
		view.Methods = append(view.Methods, m.Name)
	}
	for _, child := range r.Resources {
		view.Children = append(view.Children, child.Name)
	}
	view.HasMethods = len(view.Methods) > 0
	view.HasChildren = len(view.Children) > 0
	return render(w, "resource", view)
}

// Method writes what is needed to call m.
func Method(w io.Writer, model *api.API, m *api.Method) error {
	view := &methodView{
		Name:              m.Name,
		ID:                m.ID,
		OriginalID:        m.OriginalID,
		HTTPMethod:        m.HTTPMethod,
		RequestURL:        model.BaseURL + m.PathTemplate,
		Autofill:          strings.Join(request.AutofillParams(m), ", "),
		RequiredParams:    requiredParams(m),
		Description:       PlainText(m.Description),
		DocumentationLink: DocumentationLink(m),
	}
	if m.HTTPMethod != "GET" && m.HTTPMethod != "DELETE" {
		data, err := MinimumData(model, m)
		if err != nil {
			return err
		}
		view.HasBody = true
		view.MinimumData = data
	}
	return render(w, "method", view)
}

// requiredParams returns `-p name=""` for every path parameter that is not
// autofilled and every required query parameter.
func requiredParams(m *api.Method) string {
	var params []string
	for _, p := range m.PathParams {
		if !request.IsAutofill(p) {
			params = append(params, fmt.Sprintf("-p %s=\"\"", p))
		}
	}
	for _, q := range m.QueryParams {
		if q.Required {
			params = append(params, fmt.Sprintf("-p %s=\"\"", q.Name))
		}
	}
	if len(params) == 0 {
		return "None"
	}
	return "\n" + strings.Join(params, " ")
}

// DocumentationLink returns a documentation search URL for m. The declared
// method id is used, since the documentation knows nothing about rebuilt
// paths.
func DocumentationLink(m *api.Method) string {
	parts := strings.Split(m.IdentifierID(), ".")
	if len(parts) < 2 {
		return ""
	}
	service, method := parts[0], parts[len(parts)-1]
	resource := strings.Join(parts[1:len(parts)-1], ".")
	query := fmt.Sprintf("%q %s %s", "Method:", resource, method)
	return fmt.Sprintf("https://cloud.google.com/s/results/%s/docs?q=%s", service, strings.ReplaceAll(url.QueryEscape(query), "+", "%20"))
}

func render(w io.Writer, name string, view any) error {
	contents, err := templates.ReadFile("templates/" + name + ".mustache")
	if err != nil {
		return err
	}
	tmpl, err := mustache.ParseString(string(contents))
	if err != nil {
		return fmt.Errorf("failed to parse %s template: %w", name, err)
	}
	return tmpl.FRender(w, view)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

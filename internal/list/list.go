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

// Package list prints services, resource trees and methods.
package list

import (
	"bytes"
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/googleapis/zygen/internal/api"
	"github.com/googleapis/zygen/internal/catalog"
)

// maxMethodNames is the number of method names shown per resource in the
// long listing, unless Options.All is set.
const maxMethodNames = 5

// Options controls the listings.
type Options struct {
	// All shows secondary services, and every method name in the long
	// resource listing.
	All bool
	// Aliases shows service aliases.
	Aliases bool
	// Category shows service categories and titles.
	Category bool
	// Long prints tables instead of names.
	Long bool
	// Color highlights duplicated resource names and mutating methods.
	Color bool
	// Sort names the field to sort by. The fields depend on the listing.
	Sort string
	// Reverse reverses the sort order.
	Reverse bool
}

// Services prints the services.
func Services(w io.Writer, services []*catalog.Service, opts Options) error {
	services = slices.Clone(services)
	slices.SortStableFunc(services, func(a, b *catalog.Service) int {
		var c int
		switch opts.Sort {
		case "title":
			c = cmp.Compare(a.Title, b.Title)
		case "category":
			c = cmp.Compare(a.Category, b.Category)
		case "aliases":
			c = slices.Compare(a.Aliases, b.Aliases)
		case "versions":
			c = slices.Compare(a.Versions, b.Versions)
		case "default_version":
			c = cmp.Compare(a.DefaultVersion(), b.DefaultVersion())
		default:
			c = cmp.Compare(a.Name, b.Name)
		}
		if opts.Reverse {
			return -c
		}
		return c
	})

	if opts.Long {
		t := newTable(w, opts.Color, "name", "title", "category", "aliases", "versions", "default_version")
		for _, s := range services {
			t.row(s.Name, s.Title, s.Category, strings.Join(s.Aliases, ", "), strings.Join(s.Versions, ", "), s.DefaultVersion())
		}
		return t.flush()
	}
	for _, s := range services {
		line := s.Name
		aliases := opts.Aliases && len(s.Aliases) > 0
		switch {
		case aliases && opts.Category:
			line = fmt.Sprintf("[%s] %s - %s (%s)", s.Category, s.Title, s.Name, strings.Join(s.Aliases, ", "))
		case aliases:
			line = fmt.Sprintf("%s (%s)", s.Name, strings.Join(s.Aliases, ", "))
		case opts.Category:
			line = fmt.Sprintf("[%s] %s - %s", s.Category, s.Title, s.Name)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Resources prints the resource tree of model, or a table of every
// resource with Options.Long.
func Resources(w io.Writer, model *api.API, opts Options) error {
	if !opts.Long {
		var err error
		model.Walk(func(r *api.Resource, depth int) bool {
			if err == nil {
				_, err = fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), r.Name)
			}
			return true
		})
		return err
	}

	type row struct {
		name    string
		depth   int
		path    string
		methods int
		names   string
	}
	var rows []row
	model.Walk(func(r *api.Resource, _ int) bool {
		rows = append(rows, row{
			name:    r.Name,
			depth:   r.Depth(),
			path:    r.Path,
			methods: len(r.Methods),
			names:   methodNames(r, opts.All),
		})
		return true
	})
	if opts.Sort != "" {
		slices.SortStableFunc(rows, func(a, b row) int {
			switch opts.Sort {
			case "name":
				return cmp.Or(cmp.Compare(a.name, b.name), cmp.Compare(a.depth, b.depth), cmp.Compare(a.path, b.path))
			case "depth":
				return cmp.Or(cmp.Compare(a.depth, b.depth), cmp.Compare(a.name, b.name))
			case "methods":
				return cmp.Or(cmp.Compare(a.methods, b.methods), cmp.Compare(a.path, b.path))
			default:
				return cmp.Compare(a.path, b.path)
			}
		})
	}
	if opts.Reverse {
		slices.Reverse(rows)
	}

	duplicated := model.DuplicatedResources()
	t := newTable(w, opts.Color, "name", "depth", "resource_path", "methods", "")
	for _, r := range rows {
		color := ""
		if _, ok := duplicated[r.name]; ok {
			color = yellow
		}
		t.colorRow(color, r.name, strconv.Itoa(r.depth), r.path, strconv.Itoa(r.methods), r.names)
	}
	return t.flush()
}

// methodNames joins the method names of r, shortest first.
func methodNames(r *api.Resource, all bool) string {
	var names []string
	for _, m := range r.Methods {
		names = append(names, m.Name)
	}
	slices.SortFunc(names, func(a, b string) int {
		return cmp.Or(cmp.Compare(len(a), len(b)), cmp.Compare(a, b))
	})
	if !all && len(names) > maxMethodNames {
		return strings.Join(names[:maxMethodNames], ", ") + ", ..."
	}
	return strings.Join(names, ", ")
}

// Methods prints the methods of r. A non-empty name restricts the listing to
// that method.
func Methods(w io.Writer, r *api.Resource, name string, opts Options) error {
	methods := slices.Clone(r.Methods)
	if name != "" {
		m, err := api.FindMethod(r, name)
		if err != nil {
			return err
		}
		methods = []*api.Method{m}
	}
	slices.SortStableFunc(methods, func(a, b *api.Method) int {
		var c int
		switch opts.Sort {
		case "name":
			c = cmp.Compare(a.Name, b.Name)
		case "verb", "http":
			c = cmp.Or(cmp.Compare(a.HTTPMethod, b.HTTPMethod), cmp.Compare(a.PathTemplate, b.PathTemplate))
		default:
			c = cmp.Or(cmp.Compare(a.PathTemplate, b.PathTemplate), cmp.Compare(a.HTTPMethod, b.HTTPMethod))
		}
		if opts.Reverse {
			return -c
		}
		return c
	})

	if !opts.Long {
		for _, m := range methods {
			if _, err := fmt.Fprintln(w, m.Name); err != nil {
				return err
			}
		}
		return nil
	}
	t := newTable(w, opts.Color, "method_name", "http_method", "path")
	for _, m := range methods {
		t.colorRow(verbColors[m.HTTPMethod], m.Name, m.HTTPMethod, m.PathTemplate)
	}
	return t.flush()
}

const (
	bold   = "\x1b[1m"
	red    = "\x1b[31m"
	green  = "\x1b[32m"
	yellow = "\x1b[33m"
	blue   = "\x1b[34m"
	reset  = "\x1b[0m"
)

var verbColors = map[string]string{
	"POST":   green,
	"PUT":    blue,
	"PATCH":  blue,
	"DELETE": red,
}

// table aligns columns with a tabwriter. Colors are applied to whole lines
// after alignment, so escape codes do not count towards column widths.
type table struct {
	w      io.Writer
	buf    bytes.Buffer
	tw     *tabwriter.Writer
	color  bool
	colors []string
}

func newTable(w io.Writer, color bool, titles ...string) *table {
	t := &table{w: w, color: color}
	t.tw = tabwriter.NewWriter(&t.buf, 0, 0, 2, ' ', 0)
	t.colorRow(bold, titles...)
	return t
}

func (t *table) row(cells ...string) {
	t.colorRow("", cells...)
}

func (t *table) colorRow(color string, cells ...string) {
	fmt.Fprintln(t.tw, strings.Join(cells, "\t"))
	t.colors = append(t.colors, color)
}

func (t *table) flush() error {
	if err := t.tw.Flush(); err != nil {
		return err
	}
	lines := strings.Split(strings.TrimSuffix(t.buf.String(), "\n"), "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, " ")
		if t.color && i < len(t.colors) && t.colors[i] != "" {
			line = t.colors[i] + line + reset
		}
		if _, err := fmt.Fprintln(t.w, line); err != nil {
			return err
		}
	}
	return nil
}

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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/googleapis/zygen/internal/api"
	"github.com/googleapis/zygen/internal/catalog"
	"github.com/googleapis/zygen/internal/discovery"
	"github.com/googleapis/zygen/internal/fetch"
	"github.com/googleapis/zygen/internal/parser"
	"github.com/googleapis/zygen/internal/store"
	"github.com/iancoleman/strcase"
)

// loadAPI returns the resource tree of a service query such as `gke` or
// `sqladmin:v1`. Trees missing from the cache are downloaded and rebuilt.
func (a *app) loadAPI(ctx context.Context, query string) (*api.API, error) {
	service, version, err := a.catalog.Lookup(query)
	if err != nil {
		return nil, err
	}
	model, err := a.store.LoadAPI(service.Name, version)
	if err == nil {
		return model, nil
	}
	if !errors.Is(err, store.ErrNotCached) {
		return nil, fmt.Errorf("failed to load %s: %w", service.ID(version), err)
	}
	slog.Info("downloading discovery document", "api", service.ID(version))
	return a.download(ctx, service, version, nil)
}

// download fetches the discovery document of a service version, caches it
// and its rebuilt tree, and returns the tree. A nil list is read from the
// cache, or downloaded when it is not cached either.
func (a *app) download(ctx context.Context, service *catalog.Service, version string, list *discovery.DirectoryList) (*api.API, error) {
	u, err := a.documentURL(ctx, service, version, list)
	if err != nil {
		return nil, err
	}
	contents, doc, err := fetch.Document(ctx, a.client, u)
	if err != nil {
		return nil, err
	}
	if err := a.store.SaveDocument(service.Name, version, contents); err != nil {
		return nil, err
	}
	model, err := parser.Build(doc)
	if err != nil {
		return nil, err
	}
	if err := a.store.SaveAPI(model); err != nil {
		return nil, err
	}
	return model, nil
}

func (a *app) documentURL(ctx context.Context, service *catalog.Service, version string, list *discovery.DirectoryList) (string, error) {
	if service.Standalone {
		return service.StandaloneURL(version, a.cfg.APIKey)
	}
	if list == nil {
		var err error
		list, err = a.store.LoadDirectory()
		if errors.Is(err, store.ErrNotCached) {
			list, err = a.updateDirectory(ctx)
		}
		if err != nil {
			return "", err
		}
	}
	item := list.Item(service.ID(version))
	if item == nil {
		return "", fmt.Errorf("%s is not listed in the discovery directory, try `zg update`", service.ID(version))
	}
	return item.DiscoveryRestURL, nil
}

// updateDirectory downloads and caches the discovery directory list.
func (a *app) updateDirectory(ctx context.Context) (*discovery.DirectoryList, error) {
	contents, list, err := fetch.Directory(ctx, a.client, a.cfg.DiscoveryURL)
	if err != nil {
		return nil, err
	}
	if err := a.store.SaveDirectory(contents); err != nil {
		return nil, err
	}
	slog.Debug("updated discovery directory", "apis", len(list.Items))
	return list, nil
}

// findResource resolves a resource path suffix in model. Kebab or snake
// case queries that match nothing are retried in lowerCamel case, so
// `node-pools` finds `nodePools`.
func findResource(model *api.API, query string) (*api.Resource, error) {
	selection, err := model.Resolve(query)
	if errors.Is(err, api.ErrResourceNotFound) && strings.ContainsAny(query, "-_") {
		camel := camelPath(query)
		slog.Debug("retrying resource path", "path", query, "camel", camel)
		if retried, retryErr := model.Resolve(camel); retryErr == nil {
			selection, err = retried, nil
		}
	}
	if err != nil {
		return nil, err
	}
	return selection.Resource, nil
}

func camelPath(query string) string {
	segments := strings.Split(query, ".")
	for i, s := range segments {
		segments[i] = strcase.ToLowerCamel(s)
	}
	return strings.Join(segments, ".")
}

// findMethod resolves a service, resource and method query.
func (a *app) findMethod(ctx context.Context, service, resource, method string) (*api.API, *api.Method, error) {
	model, err := a.loadAPI(ctx, service)
	if err != nil {
		return nil, nil, err
	}
	r, err := findResource(model, resource)
	if err != nil {
		return nil, nil, err
	}
	m, err := api.FindMethod(r, method)
	if err != nil {
		return nil, nil, err
	}
	return model, m, nil
}

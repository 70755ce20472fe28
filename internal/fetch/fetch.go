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

// Package fetch provides functions for downloading discovery data.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/googleapis/zygen/internal/discovery"
)

// Get downloads the contents of url. A nil client uses
// http.DefaultClient.
func Get(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Accept", "application/json")
	slog.Debug("downloading", "url", redact(request))
	response, err := client.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	if response.StatusCode >= 300 {
		return nil, fmt.Errorf("http error in download %s: %s", redact(request), response.Status)
	}
	return io.ReadAll(response.Body)
}

// Directory downloads the discovery directory list. It returns both the raw
// bytes, for caching, and the parsed list.
func Directory(ctx context.Context, client *http.Client, url string) ([]byte, *discovery.DirectoryList, error) {
	contents, err := Get(ctx, client, url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to download directory list: %w", err)
	}
	list, err := discovery.ParseDirectory(contents)
	if err != nil {
		return nil, nil, err
	}
	return contents, list, nil
}

// Document downloads a discovery document and checks that it parses.
func Document(ctx context.Context, client *http.Client, url string) ([]byte, *discovery.Document, error) {
	contents, err := Get(ctx, client, url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to download discovery document: %w", err)
	}
	doc, err := discovery.Parse(contents)
	if err != nil {
		return nil, nil, err
	}
	return contents, doc, nil
}

// redact hides the API key of standalone discovery URLs.
func redact(request *http.Request) string {
	u := *request.URL
	query := u.Query()
	if query.Has("key") {
		query.Set("key", "REDACTED")
		u.RawQuery = query.Encode()
	}
	return u.String()
}

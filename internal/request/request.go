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

// Package request builds and sends HTTP requests for API methods.
package request

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"slices"
	"strings"

	"github.com/googleapis/zygen/internal/api"
	"github.com/googleapis/zygen/internal/pathtemplate"
)

// Request errors.
var (
	// ErrUnsupportedVerb is returned for methods whose HTTP method cannot be
	// sent.
	ErrUnsupportedVerb = errors.New("unsupported HTTP method")
	// ErrMissingParameter is returned when a path placeholder has no value.
	ErrMissingParameter = errors.New("missing parameter")
)

const contentType = "application/json; charset=utf-8"

// Param is a `-p key=value` argument. Keys matching a path placeholder fill
// it, others go to the query string.
type Param struct {
	Key   string
	Value string
}

// Header is an extra HTTP header.
type Header struct {
	Key   string
	Value string
}

// ParseParam parses `key=value`.
func ParseParam(s string) (Param, error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok {
		return Param{}, fmt.Errorf("no '=' found in %q, params must be key=value", s)
	}
	return Param{Key: key, Value: value}, nil
}

// ParseHeader parses `Key: Value`.
func ParseHeader(s string) (Header, error) {
	key, value, ok := strings.Cut(s, ":")
	if !ok {
		return Header{}, fmt.Errorf("no ':' found in %q, headers must be \"Key: Value\"", s)
	}
	return Header{Key: strings.TrimSpace(key), Value: strings.TrimSpace(value)}, nil
}

// TokenSource returns OAuth2 access tokens.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Call describes one invocation of a method.
type Call struct {
	BaseURL string
	Method  *api.Method
	Params  []Param
	Headers []Header
	// Data is a JSON document, or `@filename` to read one from a file.
	// Empty means `{}`.
	Data string
}

// URL returns the request URL. Placeholders not set by Params are filled
// from defaults when possible.
func (c *Call) URL(ctx context.Context, defaults Defaults) (string, error) {
	template, err := pathtemplate.Parse(c.Method.PathTemplate)
	if err != nil {
		return "", fmt.Errorf("cannot build the URL of %s: %w", c.Method.ID, err)
	}
	variables := template.Variables()
	values := map[string]string{}
	query := url.Values{}
	for _, p := range c.Params {
		if slices.Contains(variables, p.Key) {
			values[p.Key] = p.Value
			continue
		}
		query.Add(p.Key, p.Value)
	}
	autofill(ctx, variables, values, defaults)

	var missing []string
	for _, name := range variables {
		if values[name] == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: %s for %s, set with -p", ErrMissingParameter, strings.Join(missing, ", "), c.Method.ID)
	}
	path, err := template.Expand(values)
	if err != nil {
		return "", err
	}
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	slog.Debug("built URL", "url", u)
	return u, nil
}

// Body returns the compacted request body.
func (c *Call) Body() ([]byte, error) {
	return readBody(c.Data)
}

func readBody(data string) ([]byte, error) {
	if data == "" {
		return []byte("{}"), nil
	}
	raw := []byte(data)
	if filename, ok := strings.CutPrefix(data, "@"); ok {
		slog.Debug("reading data from file", "file", filename)
		contents, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %q: %w", filename, err)
		}
		raw = contents
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, fmt.Errorf("invalid JSON syntax: %w", err)
	}
	return buf.Bytes(), nil
}

func hasBody(verb string) bool {
	return verb == http.MethodPost || verb == http.MethodPut || verb == http.MethodPatch
}

func supported(verb string) bool {
	return hasBody(verb) || verb == http.MethodGet || verb == http.MethodDelete
}

// Curl renders a curl command equivalent to the call.
func (c *Call) Curl(ctx context.Context, defaults Defaults) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "curl -X %s", c.Method.HTTPMethod)
	var custom []string
	for _, h := range c.Headers {
		fmt.Fprintf(&b, " \\\n  -H \"%s: %s\"", h.Key, h.Value)
		custom = append(custom, strings.ToLower(h.Key))
	}
	if !slices.Contains(custom, "authorization") {
		b.WriteString(" \\\n  -H \"Authorization: Bearer $(gcloud auth print-access-token)\"")
	}
	if !slices.Contains(custom, "content-type") {
		fmt.Fprintf(&b, " \\\n  -H \"Content-Type: %s\"", contentType)
	}
	if c.Data != "" {
		body, err := c.Body()
		if err != nil {
			return "", err
		}
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, body, "", "  "); err != nil {
			return "", err
		}
		data := pretty.String()
		if data != "{}" {
			data = "\n" + data
		}
		fmt.Fprintf(&b, " \\\n  -d '%s'", data)
	}
	u, err := c.URL(ctx, defaults)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(&b, " \\\n  \"%s\"", u)
	return b.String(), nil
}

// Do sends the call and returns the response body. A response status of 300
// or above is returned as an error along with the body.
func Do(ctx context.Context, client *http.Client, c *Call, defaults Defaults, tokens TokenSource) ([]byte, error) {
	verb := c.Method.HTTPMethod
	if !supported(verb) {
		return nil, fmt.Errorf("%w: method %q uses %q", ErrUnsupportedVerb, c.Method.Name, verb)
	}
	u, err := c.URL(ctx, defaults)
	if err != nil {
		return nil, err
	}
	var body io.Reader
	if hasBody(verb) {
		data, err := c.Body()
		if err != nil {
			return nil, err
		}
		slog.Debug("request body", "method", verb, "data", string(data))
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, verb, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	if tokens != nil {
		token, err := tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get access token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, h := range c.Headers {
		req.Header.Set(h.Key, h.Value)
	}

	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	contents, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	slog.Debug("response", "status", resp.Status, "bytes", len(contents))
	if resp.StatusCode >= 300 {
		return contents, fmt.Errorf("%s %s: %s", verb, u, resp.Status)
	}
	return contents, nil
}

// Pretty indents a JSON response. An empty response is rendered as `{}`.
func Pretty(body []byte) (string, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return "{}", nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return "", fmt.Errorf("response is not JSON: %w", err)
	}
	return buf.String(), nil
}

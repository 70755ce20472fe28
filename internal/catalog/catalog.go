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

// Package catalog lists the services supported by zg.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed services.yaml
var servicesYAML []byte

// Lookup errors.
var (
	// ErrUnknownService is returned when a name matches no service or alias.
	ErrUnknownService = errors.New("unknown service")
	// ErrUnknownVersion is returned when a service does not have the
	// requested version.
	ErrUnknownVersion = errors.New("unknown version")
)

// Service is a supported service.
type Service struct {
	Name     string   `yaml:"name"`
	Title    string   `yaml:"title"`
	Category string   `yaml:"category"`
	Aliases  []string `yaml:"aliases"`
	// Versions are ordered by preference, the first one is the default.
	Versions []string `yaml:"versions"`

	// Standalone services are not listed by the discovery directory, their
	// documents are fetched with an API key.
	Standalone bool `yaml:"-"`
	// Secondary services are hidden unless all services are requested.
	Secondary bool `yaml:"-"`
}

// Catalog holds every supported service.
type Catalog struct {
	Primary    []*Service `yaml:"primary"`
	Secondary  []*Service `yaml:"secondary"`
	Standalone []*Service `yaml:"standalone"`
}

// Read reads the embedded services.yaml file.
func Read() (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(servicesYAML, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal service catalog: %w", err)
	}
	for _, s := range c.Secondary {
		s.Secondary = true
	}
	for _, s := range c.Standalone {
		s.Standalone = true
	}
	for _, s := range c.Services(true) {
		if len(s.Versions) == 0 {
			return nil, fmt.Errorf("service %q has no versions", s.Name)
		}
	}
	return &c, nil
}

// Services returns the primary and standalone services, and the secondary
// services when all is set.
func (c *Catalog) Services(all bool) []*Service {
	services := slices.Clone(c.Primary)
	if all {
		services = append(services, c.Secondary...)
	}
	return append(services, c.Standalone...)
}

// IDs returns `<name>:<version>` for every version of the services.
func (c *Catalog) IDs(all bool) []string {
	var ids []string
	for _, s := range c.Services(all) {
		for _, v := range s.Versions {
			ids = append(ids, s.ID(v))
		}
	}
	return ids
}

// Lookup resolves `name`, `alias`, `name:version` or `alias:version` into a
// service and a version. Without an explicit version the default version is
// used.
func (c *Catalog) Lookup(query string) (*Service, string, error) {
	name, version, explicit := strings.Cut(query, ":")
	var found *Service
	for _, s := range c.Services(true) {
		if s.Name == name || slices.Contains(s.Aliases, name) {
			found = s
			break
		}
	}
	if found == nil {
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownService, name)
	}
	if !explicit {
		return found, found.DefaultVersion(), nil
	}
	if !slices.Contains(found.Versions, version) {
		return nil, "", fmt.Errorf("%w: %q for service %q, known versions are %v", ErrUnknownVersion, version, found.Name, found.Versions)
	}
	return found, version, nil
}

// DefaultVersion returns the preferred version.
func (s *Service) DefaultVersion() string {
	return s.Versions[0]
}

// ID returns the API id of the service at the given version.
func (s *Service) ID(version string) string {
	return s.Name + ":" + version
}

// StandaloneURL returns the discovery document URL of a standalone service.
func (s *Service) StandaloneURL(version, apiKey string) (string, error) {
	if !s.Standalone {
		return "", fmt.Errorf("service %q is listed by the discovery directory", s.Name)
	}
	if apiKey == "" {
		return "", fmt.Errorf("an API key is required for standalone service %q", s.ID(version))
	}
	query := url.Values{}
	query.Set("version", version)
	query.Set("key", apiKey)
	return fmt.Sprintf("https://%s.googleapis.com/$discovery/rest?%s", s.Name, query.Encode()), nil
}

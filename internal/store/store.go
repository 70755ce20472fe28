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

// Package store caches discovery documents and rebuilt resource trees on
// disk.
//
// The layout of the cache directory is:
//
//	discovered/_discovered_apis.json    the discovery directory list
//	discovered/<service>_<version>.json raw discovery documents
//	api/<service>_<version>.yaml        normalized and rebuilt trees
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/googleapis/zygen/internal/api"
	"github.com/googleapis/zygen/internal/discovery"
	"go.yaml.in/yaml/v4"
)

const (
	apiDir        = "api"
	discoveredDir = "discovered"
	directoryName = "_discovered_apis.json"
)

// ErrNotCached is returned when the requested entry is not in the cache.
var ErrNotCached = errors.New("not cached")

// Store is a cache rooted at Dir.
type Store struct {
	Dir string
}

// New returns a store rooted at dir.
func New(dir string) *Store {
	return &Store{Dir: dir}
}

// Init creates the cache directories.
func (s *Store) Init() error {
	for _, sub := range []string{apiDir, discoveredDir} {
		if err := os.MkdirAll(filepath.Join(s.Dir, sub), 0755); err != nil {
			return fmt.Errorf("failed to create cache directory: %w", err)
		}
	}
	return nil
}

// APIPath returns the path of the rebuilt tree for service and version.
func (s *Store) APIPath(service, version string) string {
	return filepath.Join(s.Dir, apiDir, fileName(service, version, ".yaml"))
}

// DocumentPath returns the path of the raw discovery document for service
// and version.
func (s *Store) DocumentPath(service, version string) string {
	return filepath.Join(s.Dir, discoveredDir, fileName(service, version, ".json"))
}

// DirectoryPath returns the path of the cached directory list.
func (s *Store) DirectoryPath() string {
	return filepath.Join(s.Dir, discoveredDir, directoryName)
}

// SaveDirectory stores the directory list with sorted keys.
func (s *Store) SaveDirectory(contents []byte) error {
	canonical, err := discovery.Canonicalize(contents)
	if err != nil {
		return err
	}
	return writeFile(s.DirectoryPath(), canonical)
}

// LoadDirectory reads the cached directory list.
func (s *Store) LoadDirectory() (*discovery.DirectoryList, error) {
	contents, err := readFile(s.DirectoryPath())
	if err != nil {
		return nil, err
	}
	return discovery.ParseDirectory(contents)
}

// SaveDocument stores a raw discovery document with sorted keys.
func (s *Store) SaveDocument(service, version string, contents []byte) error {
	canonical, err := discovery.Canonicalize(contents)
	if err != nil {
		return err
	}
	return writeFile(s.DocumentPath(service, version), canonical)
}

// LoadDocument returns a cached raw discovery document.
func (s *Store) LoadDocument(service, version string) ([]byte, error) {
	return readFile(s.DocumentPath(service, version))
}

// SaveAPI stores a rebuilt tree.
func (s *Store) SaveAPI(model *api.API) error {
	contents, err := yaml.Marshal(model)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", model.ID, err)
	}
	return writeFile(s.APIPath(model.Name, model.Version), contents)
}

// LoadAPI reads a rebuilt tree.
func (s *Store) LoadAPI(service, version string) (*api.API, error) {
	contents, err := readFile(s.APIPath(service, version))
	if err != nil {
		return nil, err
	}
	var model api.API
	if err := yaml.Unmarshal(contents, &model); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", s.APIPath(service, version), err)
	}
	return &model, nil
}

// RemoveAPI drops the rebuilt tree of service and version, if any.
func (s *Store) RemoveAPI(service, version string) error {
	err := os.Remove(s.APIPath(service, version))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func fileName(service, version, ext string) string {
	return service + "_" + version + ext
}

func readFile(filename string) ([]byte, error) {
	contents, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotCached, filename)
	}
	return contents, err
}

// writeFile writes through a temporary file in the same directory, so
// readers never see a partial file. Concurrent writers race and the last
// rename wins.
func writeFile(filename string, contents []byte) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(filename)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(contents); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return err
	}
	slog.Debug("cached", "file", filename, "bytes", len(contents))
	return nil
}

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
	"bytes"
	"encoding/json"
	"fmt"
)

// DirectoryURL lists every API known to the discovery service.
const DirectoryURL = "https://discovery.googleapis.com/discovery/v1/apis"

// DirectoryList is the response of DirectoryURL.
type DirectoryList struct {
	Kind             string           `json:"kind"`
	DiscoveryVersion string           `json:"discoveryVersion"`
	Items            []*DirectoryItem `json:"items"`
}

// DirectoryItem describes one API version in the DirectoryList.
type DirectoryItem struct {
	Kind              string `json:"kind"`
	// ID is `<name>:<version>`.
	ID                string `json:"id"`
	Name              string `json:"name"`
	Version           string `json:"version"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	DiscoveryRestURL  string `json:"discoveryRestUrl"`
	DocumentationLink string `json:"documentationLink"`
	Preferred         bool   `json:"preferred"`
}

// ParseDirectory parses the discovery directory list.
func ParseDirectory(data []byte) (*DirectoryList, error) {
	var list DirectoryList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse directory list: %w", err)
	}
	return &list, nil
}

// Item returns the item with the given id, or nil.
func (l *DirectoryList) Item(id string) *DirectoryItem {
	for _, item := range l.Items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// Canonicalize re-encodes a JSON document with sorted object keys and two
// space indentation, so cached documents diff cleanly across updates.
func Canonicalize(data []byte) ([]byte, error) {
	var v any
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return buf.Bytes(), nil
}

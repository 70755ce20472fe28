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

package api

import (
	"errors"
	"fmt"
)

// Sentinel errors for resolution.
var (
	// ErrResourceNotFound matches a ResourceNotFoundError.
	ErrResourceNotFound = errors.New("resource not found")
	// ErrMethodNotFound matches a MethodNotFoundError.
	ErrMethodNotFound = errors.New("method not found")
	// ErrSelectionFailed is returned when a disambiguation strategy selects
	// nothing, or something that was not a candidate.
	ErrSelectionFailed = errors.New("resource selection failed")
)

// ResourceNotFoundError reports that no resource path ends with Path.
type ResourceNotFoundError struct {
	API  string
	Path string
}

// Error implements error.
func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("resource %q not found for API %q", e.Path, e.API)
}

// Is reports whether target is ErrResourceNotFound.
func (e *ResourceNotFoundError) Is(target error) bool {
	return target == ErrResourceNotFound
}

// MethodNotFoundError reports that Resource has no method named Method.
type MethodNotFoundError struct {
	Resource string
	Method   string
}

// Error implements error.
func (e *MethodNotFoundError) Error() string {
	return fmt.Sprintf("method %q not found in resource %q", e.Method, e.Resource)
}

// Is reports whether target is ErrMethodNotFound.
func (e *MethodNotFoundError) Is(target error) bool {
	return target == ErrMethodNotFound
}

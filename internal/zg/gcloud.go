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
	"fmt"
	"log/slog"
	"os/exec"
	"path"
	"strings"

	"github.com/googleapis/zygen/internal/request"
)

// gcloud reads placeholder defaults and access tokens from the gcloud CLI.
type gcloud struct{}

// Default returns the value of `gcloud config get <kind>`.
func (gcloud) Default(ctx context.Context, kind request.Kind) (string, error) {
	value, err := runGcloud(ctx, "config", "get", string(kind))
	if err != nil {
		return "", err
	}
	if value == "" {
		return "", fmt.Errorf("no %q found in gcloud config, consider: gcloud config set %s %s",
			kind, kind, strings.ToUpper(path.Base(string(kind))))
	}
	slog.Debug("gcloud config", "key", kind, "value", value)
	return value, nil
}

// Token returns a fresh access token.
func (gcloud) Token(ctx context.Context) (string, error) {
	return runGcloud(ctx, "auth", "print-access-token")
}

func runGcloud(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "gcloud", args...)
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("gcloud %s: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(output)), nil
}

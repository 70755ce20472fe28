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

package describe

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPlainText(t *testing.T) {
	for _, test := range []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "  ",
			want:  "",
		},
		{
			name:  "link",
			input: "Required. The name of the [cluster](https://cloud.google.com/kubernetes-engine) to get.",
			want:  "Required. The name of the cluster to get.",
		},
		{
			name:  "emphasis and paragraphs",
			input: "First *paragraph*.\n\nSecond **paragraph**.",
			want:  "First paragraph.\n\nSecond paragraph.",
		},
		{
			name:  "soft line breaks",
			input: "line one\nline two",
			want:  "line one line two",
		},
		{
			name:  "list",
			input: "Values:\n\n* `RUNNING`\n* `STOPPED`",
			want:  "Values:\n\n- RUNNING\n- STOPPED",
		},
		{
			name:  "autolink",
			input: "See <https://example.com/docs>.",
			want:  "See https://example.com/docs.",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			got := PlainText(test.input)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("mismatch (-want, +got):\n%s", diff)
			}
		})
	}
}

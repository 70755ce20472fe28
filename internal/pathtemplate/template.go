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

// Package pathtemplate parses the URL templates found in discovery documents
// and derives resource ancestry from their literal segments.
package pathtemplate

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const (
	beginExpression = '{'
	endExpression   = '}'
	reservedPrefix  = '+'
	slash           = '/'
	verbSeparator   = ':'
)

// Parse and Expand errors.
var (
	identifierRe = regexp.MustCompile("[A-Za-z][A-Za-z0-9_]*")

	// ErrMissingVariable is returned by Expand when a template variable has
	// no value.
	ErrMissingVariable = errors.New("missing value for template variable")
)

// Template is a parsed URL template such as
// `v1/projects/{projectsId}/locations/{locationsId}/clusters:list`.
type Template struct {
	Segments []Segment
	// Verb is the custom method suffix following the last `:`, if any.
	Verb string
}

// Segment is either a literal path segment or a variable.
type Segment struct {
	Literal  string
	Variable string
	// Reserved marks `{+name}` expressions, whose values may contain `/`.
	Reserved bool
}

// New returns an empty template, used with the With* builders.
func New() *Template {
	return &Template{}
}

// WithLiteral appends a literal segment.
func (t *Template) WithLiteral(literal string) *Template {
	t.Segments = append(t.Segments, Segment{Literal: literal})
	return t
}

// WithVariable appends a `{name}` segment.
func (t *Template) WithVariable(name string) *Template {
	t.Segments = append(t.Segments, Segment{Variable: name})
	return t
}

// WithReserved appends a `{+name}` segment.
func (t *Template) WithReserved(name string) *Template {
	t.Segments = append(t.Segments, Segment{Variable: name, Reserved: true})
	return t
}

// WithVerb sets the custom method suffix.
func (t *Template) WithVerb(verb string) *Template {
	t.Verb = verb
	return t
}

// Parse parses a [RFC 6570] URI template as used by discovery documents.
//
// Only simple (`{var}`) and reserved (`{+var}`) expressions are supported,
// each occupying a full path segment. A trailing `:verb` is captured
// separately.
//
// [RFC 6570]: https://www.rfc-editor.org/rfc/rfc6570.html
func Parse(uriTemplate string) (*Template, error) {
	template := New()
	var pos int
	for {
		var err error
		var segment *Segment
		var width int

		if pos == len(uriTemplate) {
			return nil, fmt.Errorf("expected a segment, found eof: %s", uriTemplate)
		}
		if uriTemplate[pos] == beginExpression {
			segment, width, err = parseExpression(uriTemplate[pos:])
		} else {
			segment, width, err = parseLiteral(uriTemplate[pos:])
		}
		if err != nil {
			return nil, err
		}
		template.Segments = append(template.Segments, *segment)
		pos += width
		if pos == len(uriTemplate) || uriTemplate[pos] != slash {
			break
		}
		pos++ // Skip slash
	}
	if pos < len(uriTemplate) && uriTemplate[pos] == verbSeparator {
		verb := uriTemplate[pos+1:]
		if verb == "" || strings.ContainsAny(verb, "/{}:") {
			return nil, fmt.Errorf("invalid verb %q in URI template %q", verb, uriTemplate)
		}
		template.Verb = verb
		pos = len(uriTemplate)
	}
	if pos != len(uriTemplate) {
		return nil, fmt.Errorf("trailing data (%q) cannot be parsed as a URI template", uriTemplate[pos:])
	}
	return template, nil
}

func parseExpression(input string) (*Segment, int, error) {
	if input == "" || input[0] != beginExpression {
		return nil, 0, fmt.Errorf("missing `{` character in expression %q", input)
	}
	tail := input[1:]
	reserved := false
	if tail != "" && tail[0] == reservedPrefix {
		reserved = true
		tail = tail[1:]
	}
	if strings.IndexAny(tail, "+#") == 0 {
		return nil, 0, fmt.Errorf("fragment expressions unsupported input=%q", input)
	}
	if strings.IndexAny(tail, "./?&") == 0 {
		return nil, 0, fmt.Errorf("level 3 expressions unsupported input=%q", input)
	}
	if strings.IndexAny(tail, "=,!@|") == 0 {
		return nil, 0, fmt.Errorf("reserved character on expression %q", input)
	}
	match := identifierRe.FindStringIndex(tail)
	if match == nil || match[0] != 0 {
		return nil, 0, fmt.Errorf("no identifier found on expression %q", input)
	}
	id := tail[0:match[1]]
	tail = tail[match[1]:]
	if tail == "" || tail[0] != endExpression {
		return nil, 0, fmt.Errorf("missing `}` character at the end of the expression %q", input)
	}
	width := match[1] + 2
	if reserved {
		width++
	}
	return &Segment{Variable: id, Reserved: reserved}, width, nil
}

// parseLiteral extracts a literal value from `input`.
//
// Literals stop at a `/` or at the `:` introducing a verb. Discovery
// documents contain well-formed templates, so the grammar is simplified.
func parseLiteral(input string) (*Segment, int, error) {
	index := strings.IndexAny(input, " \"'<>\\^`{|}/:")
	var literal string
	var tail string
	if index == -1 {
		literal = input
		index = len(input)
	} else {
		literal = input[:index]
		tail = input[index:]
	}
	if literal == "" {
		return nil, 0, fmt.Errorf("invalid empty literal with input=%q", input)
	}
	if tail != "" && tail[0] != slash && tail[0] != verbSeparator {
		return nil, index, fmt.Errorf("found unexpected character %q in literal %q, stopped at position %v", tail[0], input, index)
	}
	return &Segment{Literal: literal}, index, nil
}

// Variables returns the names of the template variables, in order.
func (t *Template) Variables() []string {
	var names []string
	for _, s := range t.Segments {
		if s.Variable != "" {
			names = append(names, s.Variable)
		}
	}
	return names
}

// String formats the template back into its URI template form.
func (t *Template) String() string {
	parts := make([]string, 0, len(t.Segments))
	for _, s := range t.Segments {
		switch {
		case s.Variable == "":
			parts = append(parts, s.Literal)
		case s.Reserved:
			parts = append(parts, "{+"+s.Variable+"}")
		default:
			parts = append(parts, "{"+s.Variable+"}")
		}
	}
	out := strings.Join(parts, "/")
	if t.Verb != "" {
		out += ":" + t.Verb
	}
	return out
}

// Expand substitutes every variable with its value from values.
//
// Simple variables are path-escaped; reserved variables are inserted
// verbatim so they may span several segments.
func (t *Template) Expand(values map[string]string) (string, error) {
	parts := make([]string, 0, len(t.Segments))
	for _, s := range t.Segments {
		if s.Variable == "" {
			parts = append(parts, s.Literal)
			continue
		}
		value, ok := values[s.Variable]
		if !ok || value == "" {
			return "", fmt.Errorf("%w %q", ErrMissingVariable, s.Variable)
		}
		if s.Reserved {
			parts = append(parts, value)
		} else {
			parts = append(parts, url.PathEscape(value))
		}
	}
	out := strings.Join(parts, "/")
	if t.Verb != "" {
		out += ":" + t.Verb
	}
	return out, nil
}

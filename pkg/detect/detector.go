// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package detect

import (
	"context"
	"regexp"

	"github.com/walteh/redactor/pkg/entity"
	"github.com/walteh/redactor/pkg/fault"
	"github.com/walteh/redactor/pkg/span"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Detector finds the candidate spans of one category in a document.
// Detect looks at doc.Text, the output of the previous stage, and must not
// modify the document.
type Detector interface {
	Category() span.Category
	Detect(ctx context.Context, doc *Document) ([]span.Match, error)
}

// 🧩 PatternDetector runs regular expressions over the current text and
// optionally adds entities with an allowed label
type PatternDetector struct {
	category span.Category
	patterns []*regexp.Regexp
	labels   []string
}

var _ Detector = (*PatternDetector)(nil)

// 🏭 NewPatternDetector compiles patterns for category. Entities whose label
// is in labels are reported as well. A malformed pattern is reported as
// fault.ErrPatternCompile.
func NewPatternDetector(category span.Category, patterns []string, labels ...string) (*PatternDetector, error) {
	compiled, err := compileAll(category, patterns)
	if err != nil {
		return nil, err
	}
	return &PatternDetector{
		category: category,
		patterns: compiled,
		labels:   labels,
	}, nil
}

func (d *PatternDetector) Category() span.Category {
	return d.category
}

// Patterns returns the source of every compiled pattern.
func (d *PatternDetector) Patterns() []string {
	out := make([]string, len(d.patterns))
	for i, re := range d.patterns {
		out[i] = re.String()
	}
	return out
}

// Labels returns the entity labels this detector accepts.
func (d *PatternDetector) Labels() []string {
	return d.labels
}

// 🔍 Detect returns pattern matches in pattern order, then accepted entities.
func (d *PatternDetector) Detect(ctx context.Context, doc *Document) ([]span.Match, error) {
	offsets := span.NewOffsets(doc.Text)
	matches := findAll(doc.Text, offsets, d.patterns, d.category)

	if len(d.labels) == 0 {
		return matches, nil
	}

	ents, err := doc.Entities(ctx)
	if err != nil {
		return nil, err
	}

	n := offsets.Rune(len(doc.Text))
	for _, e := range entity.Filter(ents, d.labels...) {
		s := span.Span{Start: e.Start, End: e.End}
		if !s.Valid(n) {
			continue
		}
		matches = append(matches, span.Match{Span: s, Text: e.Text, Category: d.category})
	}
	return matches, nil
}

// findAll collects every non-overlapping match of every pattern, in pattern
// order, as rune spans.
func findAll(text string, offsets span.Offsets, patterns []*regexp.Regexp, category span.Category) []span.Match {
	var out []span.Match
	for _, re := range patterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			if loc[0] == loc[1] {
				continue
			}
			out = append(out, span.Match{
				Span:     offsets.Span(loc[0], loc[1]),
				Text:     text[loc[0]:loc[1]],
				Category: category,
			})
		}
	}
	return out
}

func compileAll(category span.Category, patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for i, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fault.Mark(errors.Errorf("compiling %s pattern %d: %w", category, i, err), fault.ErrPatternCompile)
		}
		out = append(out, re)
	}
	return out, nil
}

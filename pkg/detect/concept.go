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
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/redactor/pkg/fault"
	"github.com/walteh/redactor/pkg/span"
	"github.com/walteh/redactor/pkg/synonym"
	"gitlab.com/tozd/go/errors"
)

// 💡 ConceptDetector redacts the user's concepts and their synonyms.
//
// Concepts match case-insensitively as whole words. Every form returned by
// the expander is matched as given (case-sensitive), also as a whole word,
// so a synonym "cat" never hits inside "category".
type ConceptDetector struct {
	expander synonym.Expander
}

var _ Detector = (*ConceptDetector)(nil)

// 🏭 NewConceptDetector creates a detector; a nil expander disables
// synonym expansion.
func NewConceptDetector(expander synonym.Expander) *ConceptDetector {
	if expander == nil {
		expander = synonym.Nop
	}
	return &ConceptDetector{expander: expander}
}

func (d *ConceptDetector) Category() span.Category {
	return span.CategoryConcept
}

// 🔍 Detect returns concept matches followed by synonym matches. With no
// concepts it returns nothing and never calls the expander.
func (d *ConceptDetector) Detect(ctx context.Context, doc *Document) ([]span.Match, error) {
	concepts := cleanConcepts(doc.Concepts)
	if len(concepts) == 0 {
		return nil, nil
	}

	offsets := span.NewOffsets(doc.Text)

	matches, err := matchWords(doc.Text, offsets, concepts, true)
	if err != nil {
		return nil, err
	}

	forms, err := d.expand(ctx, concepts)
	if err != nil {
		return nil, err
	}
	if len(forms) > 0 {
		formMatches, err := matchWords(doc.Text, offsets, forms, false)
		if err != nil {
			return nil, err
		}
		matches = append(matches, formMatches...)
	}

	zerolog.Ctx(ctx).Debug().
		Str("file", doc.Name).
		Strs("concepts", concepts).
		Strs("synonyms", forms).
		Int("matches", len(matches)).
		Msg("matched concepts")

	return matches, nil
}

// expand collects the related forms of every concept, skipping forms that
// are themselves concepts.
func (d *ConceptDetector) expand(ctx context.Context, concepts []string) ([]string, error) {
	isConcept := make(map[string]bool, len(concepts))
	for _, c := range concepts {
		isConcept[strings.ToLower(c)] = true
	}

	seen := map[string]bool{}
	var forms []string
	for _, c := range concepts {
		related, err := d.expander.Expand(ctx, c)
		if err != nil {
			return nil, fault.Mark(errors.Errorf("expanding %q: %w", c, err), fault.ErrExpansion)
		}
		for _, f := range related {
			if f == "" || seen[f] || isConcept[strings.ToLower(f)] {
				continue
			}
			seen[f] = true
			forms = append(forms, f)
		}
	}
	return forms, nil
}

// cleanConcepts trims and drops blank and duplicate (case-insensitive)
// concepts, keeping first-seen order.
func cleanConcepts(concepts []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(concepts))
	for _, c := range concepts {
		c = strings.TrimSpace(c)
		key := strings.ToLower(c)
		if c == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

// matchWords finds whole-word occurrences of literals. Where several
// literals start at the same place the longest wins, so "big deal" beats
// "big".
func matchWords(text string, offsets span.Offsets, literals []string, foldCase bool) ([]span.Match, error) {
	matchers := make([]*span.WordMatcher, 0, len(literals))
	for _, l := range literals {
		m, err := span.NewWordMatcher(l, foldCase)
		if err != nil {
			return nil, errors.Errorf("compiling concept pattern: %w", err)
		}
		matchers = append(matchers, m)
	}

	var out []span.Match
	for _, loc := range span.FindLongestWords(text, matchers) {
		out = append(out, span.Match{
			Span:     offsets.Span(loc[0], loc[1]),
			Text:     text[loc[0]:loc[1]],
			Category: span.CategoryConcept,
		})
	}
	return out, nil
}

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

// Package gazetteer provides an entity.Annotator that tags every whole-word
// occurrence of a fixed phrase list. It is useful when no NER sidecar is
// available and the sensitive names are known ahead of time.
//
// A gazetteer file maps labels to phrases:
//
//	PERSON:
//	  - John Doe
//	GPE:
//	  - Anytown
package gazetteer

import (
	"context"
	"sort"
	"strings"

	"github.com/walteh/redactor/pkg/config"
	"github.com/walteh/redactor/pkg/entity"
	"github.com/walteh/redactor/pkg/span"
	"gitlab.com/tozd/go/errors"
)

type phrase struct {
	label string
	words *span.WordMatcher
}

// 📚 Gazetteer matches known phrases case-sensitively on word boundaries
type Gazetteer struct {
	phrases []phrase
}

var _ entity.Annotator = (*Gazetteer)(nil)

// 🏭 New builds a gazetteer from label → phrases.
func New(entries map[string][]string) (*Gazetteer, error) {
	labels := make([]string, 0, len(entries))
	for label := range entries {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	g := &Gazetteer{}
	for _, label := range labels {
		for _, text := range entries[label] {
			text = strings.TrimSpace(text)
			if text == "" {
				continue
			}
			words, err := span.NewWordMatcher(text, false)
			if err != nil {
				return nil, errors.Errorf("compiling phrase %q: %w", text, err)
			}
			g.phrases = append(g.phrases, phrase{label: label, words: words})
		}
	}
	return g, nil
}

// 📂 Load reads a YAML (.yaml, .yml) or JSON (.json) gazetteer file.
func Load(path string) (*Gazetteer, error) {
	entries := map[string][]string{}
	if err := config.DecodeFile(path, &entries); err != nil {
		return nil, errors.Errorf("loading gazetteer: %w", err)
	}
	return New(entries)
}

// Len returns the number of phrases.
func (g *Gazetteer) Len() int {
	return len(g.phrases)
}

// 🔍 Annotate returns every occurrence of every phrase, ordered by offset.
func (g *Gazetteer) Annotate(ctx context.Context, text string) ([]entity.Entity, error) {
	if len(g.phrases) == 0 {
		return nil, nil
	}

	offsets := span.NewOffsets(text)
	var out []entity.Entity
	for _, p := range g.phrases {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("annotating: %w", err)
		}
		for _, loc := range p.words.FindAll(text) {
			s := offsets.Span(loc[0], loc[1])
			out = append(out, entity.Entity{
				Label: p.label,
				Start: s.Start,
				End:   s.End,
				Text:  text[loc[0]:loc[1]],
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out, nil
}

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

// Package entity defines the named-entity annotation capability consumed by
// the detectors. Implementations live in sub-packages: ner talks to an HTTP
// sidecar, gazetteer matches fixed phrase lists.
package entity

import (
	"context"
	"sort"
)

// Labels produced by spaCy-compatible models that the detectors consult.
const (
	LabelPerson   = "PERSON"
	LabelOrg      = "ORG"
	LabelDate     = "DATE"
	LabelTime     = "TIME"
	LabelGPE      = "GPE"
	LabelLocation = "LOC"
	LabelFacility = "FAC"
)

// 🏷️ Entity is a labeled range of the annotated text. Start and End are
// rune offsets.
type Entity struct {
	Label string `json:"label" yaml:"label"`
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end" yaml:"end"`
	Text  string `json:"text" yaml:"text"`
}

// 🔌 Annotator finds named entities in text
type Annotator interface {
	Annotate(ctx context.Context, text string) ([]Entity, error)
}

// AnnotatorFunc adapts a function to the Annotator interface.
type AnnotatorFunc func(ctx context.Context, text string) ([]Entity, error)

// Annotate calls f.
func (f AnnotatorFunc) Annotate(ctx context.Context, text string) ([]Entity, error) {
	return f(ctx, text)
}

// Nop never finds anything.
var Nop Annotator = AnnotatorFunc(func(context.Context, string) ([]Entity, error) {
	return nil, nil
})

// Filter returns the entities whose label is in labels, preserving order.
func Filter(entities []Entity, labels ...string) []Entity {
	out := make([]Entity, 0, len(entities))
	for _, e := range entities {
		for _, l := range labels {
			if e.Label == l {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// Multi combines annotators. Results are concatenated and ordered by start
// offset; the first error wins. Nil annotators are skipped.
func Multi(annotators ...Annotator) Annotator {
	var list []Annotator
	for _, a := range annotators {
		if a != nil {
			list = append(list, a)
		}
	}
	switch len(list) {
	case 0:
		return Nop
	case 1:
		return list[0]
	}

	return AnnotatorFunc(func(ctx context.Context, text string) ([]Entity, error) {
		var out []Entity
		for _, a := range list {
			ents, err := a.Annotate(ctx, text)
			if err != nil {
				return nil, err
			}
			out = append(out, ents...)
		}
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Start < out[j].Start
		})
		return out, nil
	})
}

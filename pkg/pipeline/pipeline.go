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

package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/walteh/redactor/pkg/detect"
	"github.com/walteh/redactor/pkg/entity"
	"github.com/walteh/redactor/pkg/span"
	"github.com/walteh/redactor/pkg/stats"
	"github.com/walteh/redactor/pkg/synonym"
	"gitlab.com/tozd/go/errors"
)

// 🚥 State is how far a document got through the pipeline
type State int

const (
	StateRaw State = iota
	StateNamesDone
	StateDatesDone
	StatePhonesDone
	StateAddressesDone
	StateConceptsDone
)

var stateNames = [...]string{
	StateRaw:           "RAW",
	StateNamesDone:     "NAMES_DONE",
	StateDatesDone:     "DATES_DONE",
	StatePhonesDone:    "PHONES_DONE",
	StateAddressesDone: "ADDRESSES_DONE",
	StateConceptsDone:  "CONCEPTS_DONE",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Terminal reports whether every stage has run.
func (s State) Terminal() bool {
	return s == StateConceptsDone
}

// 🧩 Stages names the detector of every stage. The field order is the
// order they run in.
type Stages struct {
	Names     detect.Detector
	Dates     detect.Detector
	Phones    detect.Detector
	Addresses detect.Detector
	Concepts  detect.Detector
}

// ❌ StageError is returned when a detector fails on a document
type StageError struct {
	File string
	// Stage is the category whose detector failed.
	Stage span.Category
	// Reached is the last state the document completed.
	Reached State
	Err     error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("redacting %s: %s stage: %v", e.File, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

type stage struct {
	detector detect.Detector
	next     State
}

// 🏭 Pipeline applies the detectors of Stages in order
type Pipeline struct {
	stages []stage
}

// New checks that every stage has a detector.
func New(s Stages) (*Pipeline, error) {
	ordered := []struct {
		name     string
		detector detect.Detector
		next     State
	}{
		{"names", s.Names, StateNamesDone},
		{"dates", s.Dates, StateDatesDone},
		{"phones", s.Phones, StatePhonesDone},
		{"addresses", s.Addresses, StateAddressesDone},
		{"concepts", s.Concepts, StateConceptsDone},
	}

	p := &Pipeline{stages: make([]stage, 0, len(ordered))}
	for _, o := range ordered {
		if o.detector == nil {
			return nil, errors.Errorf("pipeline: missing %s detector", o.name)
		}
		p.stages = append(p.stages, stage{detector: o.detector, next: o.next})
	}
	return p, nil
}

// Default builds the standard detectors. Pattern compile failures are
// returned as-is (marked fault.ErrPatternCompile).
func Default(expander synonym.Expander) (*Pipeline, error) {
	names, err := detect.NewNameDetector()
	if err != nil {
		return nil, err
	}
	dates, err := detect.NewDateDetector()
	if err != nil {
		return nil, err
	}
	phones, err := detect.NewPhoneDetector()
	if err != nil {
		return nil, err
	}
	addresses, err := detect.NewAddressDetector()
	if err != nil {
		return nil, err
	}

	return New(Stages{
		Names:     names,
		Dates:     dates,
		Phones:    phones,
		Addresses: addresses,
		Concepts:  detect.NewConceptDetector(expander),
	})
}

// 🔄 Run moves doc from RAW to CONCEPTS_DONE, returning the state it
// reached. On error the returned state is the last completed one and the
// error is a *StageError.
func (p *Pipeline) Run(ctx context.Context, doc *detect.Document) (State, error) {
	logger := zerolog.Ctx(ctx).With().Str("file", doc.Name).Logger()

	state := StateRaw
	for _, s := range p.stages {
		category := s.detector.Category()

		matches, err := s.detector.Detect(ctx, doc)
		if err != nil {
			logger.Debug().Err(err).Str("stage", string(category)).Stringer("reached", state).Msg("stage failed")
			return state, &StageError{File: doc.Name, Stage: category, Reached: state, Err: err}
		}

		spans := make([]span.Span, 0, len(matches))
		for _, m := range matches {
			doc.Stats.Record(m.Category, m.Text)
			doc.Stats.RecordFileEvent(doc.Name, m.Text, m.Start, m.End, m.Category)
			spans = append(spans, m.Span)
		}

		doc.Text = span.Redact(doc.Text, spans)
		doc.Spans = append(doc.Spans, span.Merge(spans)...)
		state = s.next

		logger.Debug().
			Str("stage", string(category)).
			Int("matches", len(matches)).
			Stringer("state", state).
			Msg("stage complete")
	}

	return state, nil
}

// Redact registers name with st and runs a fresh document through the
// pipeline. The document is returned even when a stage fails so callers can
// inspect how far it got.
func (p *Pipeline) Redact(ctx context.Context, name, text string, concepts []string, st *stats.RunStats, annotator entity.Annotator) (*detect.Document, error) {
	doc := detect.NewDocument(name, text, concepts, st, annotator)
	doc.Stats.BeginFile(name, doc.Chars())

	if _, err := p.Run(ctx, doc); err != nil {
		return doc, err
	}
	return doc, nil
}

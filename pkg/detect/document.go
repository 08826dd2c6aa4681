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
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/walteh/redactor/pkg/entity"
	"github.com/walteh/redactor/pkg/fault"
	"github.com/walteh/redactor/pkg/span"
	"github.com/walteh/redactor/pkg/stats"
	"gitlab.com/tozd/go/errors"
)

// 📄 Document is the working state of one file while it moves through the
// detectors. Text starts equal to Original and is overwritten stage by stage.
type Document struct {
	Name     string
	Original string
	Text     string
	Spans    []span.Span
	Concepts []string
	Stats    *stats.RunStats

	annotator entity.Annotator
	entities  []entity.Entity
	annotated bool
}

// 🏭 NewDocument prepares a document for redaction. A nil annotator finds
// no entities.
func NewDocument(name, text string, concepts []string, st *stats.RunStats, annotator entity.Annotator) *Document {
	if annotator == nil {
		annotator = entity.Nop
	}
	if st == nil {
		st = stats.New()
	}
	return &Document{
		Name:      name,
		Original:  text,
		Text:      text,
		Concepts:  concepts,
		Stats:     st,
		annotator: annotator,
	}
}

// Chars returns the rune count of the document.
func (d *Document) Chars() int {
	return utf8.RuneCountInString(d.Original)
}

// 🔍 Entities annotates the original text on first use and caches the
// result for the remaining stages. Failures are marked fault.ErrAnnotation.
func (d *Document) Entities(ctx context.Context) ([]entity.Entity, error) {
	if d.annotated {
		return d.entities, nil
	}

	ents, err := d.annotator.Annotate(ctx, d.Original)
	if err != nil {
		return nil, fault.Mark(errors.Errorf("annotating %s: %w", d.Name, err), fault.ErrAnnotation)
	}

	zerolog.Ctx(ctx).Debug().
		Str("file", d.Name).
		Int("entities", len(ents)).
		Msg("annotated document")

	d.entities = ents
	d.annotated = true
	return ents, nil
}

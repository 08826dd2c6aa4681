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

package span

import (
	"sort"
	"strings"
)

// Block is the rune written over every redacted character.
const Block = '█'

// 🏷️ Category labels the kind of information a span covers
type Category string

const (
	CategoryName    Category = "NAME"
	CategoryDate    Category = "DATE"
	CategoryPhone   Category = "PHONE"
	CategoryAddress Category = "ADDRESS"
	CategoryConcept Category = "CONCEPT"
)

// Categories returns every category in pipeline order.
func Categories() []Category {
	return []Category{CategoryName, CategoryDate, CategoryPhone, CategoryAddress, CategoryConcept}
}

// 📏 Span is a half-open [Start, End) interval of rune offsets
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of runes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Valid reports whether the span is non-empty and fits in a text of n runes.
func (s Span) Valid(n int) bool {
	return s.Start >= 0 && s.Start < s.End && s.End <= n
}

// 🎯 Match is a candidate span together with the literal it covers
type Match struct {
	Span
	Text     string   `json:"text"`
	Category Category `json:"category"`
}

// Merge sorts spans by start and joins every pair that overlaps or touches.
// The input slice is not modified.
func Merge(spans []Span) []Span {
	if len(spans) == 0 {
		return nil
	}

	sorted := make([]Span, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	merged := make([]Span, 0, len(sorted))
	current := sorted[0]
	for _, s := range sorted[1:] {
		if s.Start <= current.End {
			if s.End > current.End {
				current.End = s.End
			}
			continue
		}
		merged = append(merged, current)
		current = s
	}
	return append(merged, current)
}

// ✂️ Redact merges spans and overwrites every covered rune with Block.
// The result always has the same rune count as text. Spans that are empty
// or fall outside the text are ignored.
func Redact(text string, spans []Span) string {
	if len(spans) == 0 {
		return text
	}

	runes := []rune(text)
	valid := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.Valid(len(runes)) {
			valid = append(valid, s)
		}
	}
	if len(valid) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + 2*len(runes))
	last := 0
	for _, s := range Merge(valid) {
		b.WriteString(string(runes[last:s.Start]))
		for i := s.Start; i < s.End; i++ {
			b.WriteRune(Block)
		}
		last = s.End
	}
	b.WriteString(string(runes[last:]))
	return b.String()
}

// Offsets translates byte offsets in a string into rune offsets.
type Offsets []int

// NewOffsets indexes text so byte offsets returned by regexp can be
// turned into rune offsets. Only offsets on rune boundaries are meaningful.
func NewOffsets(text string) Offsets {
	idx := make(Offsets, len(text)+1)
	r := 0
	for i := range text {
		idx[i] = r
		r++
	}
	idx[len(text)] = r
	return idx
}

// Rune returns the rune offset of byte offset b.
func (o Offsets) Rune(b int) int {
	return o[b]
}

// Span converts a byte range into a rune span.
func (o Offsets) Span(start, end int) Span {
	return Span{Start: o[start], End: o[end]}
}

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

package stats

import (
	"sort"

	"github.com/walteh/redactor/pkg/span"
)

// 📌 Event is one redaction applied to a file, in detector order
type Event struct {
	Text     string        `json:"text"`
	Start    int           `json:"start"`
	End      int           `json:"end"`
	Category span.Category `json:"category"`
}

// 📄 FileRecord collects the redaction events of one document
type FileRecord struct {
	Name   string  `json:"name"`
	Chars  int     `json:"chars"`
	Events []Event `json:"events"`
}

// Redactions returns the number of recorded events.
func (f *FileRecord) Redactions() int {
	return len(f.Events)
}

// CountByCategory returns how many events each category produced.
func (f *FileRecord) CountByCategory() map[span.Category]int {
	out := make(map[span.Category]int)
	for _, e := range f.Events {
		out[e.Category]++
	}
	return out
}

// 🗂️ CategorySet holds the unique literals redacted per category
type CategorySet struct {
	sets map[span.Category]map[string]struct{}
}

// NewCategorySet creates an empty set.
func NewCategorySet() *CategorySet {
	return &CategorySet{sets: make(map[span.Category]map[string]struct{})}
}

// Add inserts text under category. Adding an existing value is a no-op.
func (c *CategorySet) Add(category span.Category, text string) {
	set, ok := c.sets[category]
	if !ok {
		set = make(map[string]struct{})
		c.sets[category] = set
	}
	set[text] = struct{}{}
}

// Contains reports whether text was recorded under category.
func (c *CategorySet) Contains(category span.Category, text string) bool {
	_, ok := c.sets[category][text]
	return ok
}

// Count returns the number of unique values under category.
func (c *CategorySet) Count(category span.Category) int {
	return len(c.sets[category])
}

// Values returns the unique values under category, sorted.
func (c *CategorySet) Values(category span.Category) []string {
	set := c.sets[category]
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// 📊 RunStats aggregates every redaction of a run.
//
// A RunStats is not safe for concurrent mutation. Parallel runs give each
// worker its own instance and fold them together with Merge.
type RunStats struct {
	Categories *CategorySet

	files map[string]*FileRecord
	order []string
}

// 🏭 New creates empty run statistics
func New() *RunStats {
	return &RunStats{
		Categories: NewCategorySet(),
		files:      make(map[string]*FileRecord),
	}
}

// BeginFile registers a document and its total character count. Calling it
// again for a known file only updates the count.
func (s *RunStats) BeginFile(name string, chars int) *FileRecord {
	rec := s.file(name)
	rec.Chars = chars
	return rec
}

// Record adds text to the unique set of category.
func (s *RunStats) Record(category span.Category, text string) {
	s.Categories.Add(category, text)
}

// RecordFileEvent appends a redaction event to the named file.
func (s *RunStats) RecordFileEvent(name, text string, start, end int, category span.Category) {
	rec := s.file(name)
	rec.Events = append(rec.Events, Event{
		Text:     text,
		Start:    start,
		End:      end,
		Category: category,
	})
}

// File returns the record for name.
func (s *RunStats) File(name string) (*FileRecord, bool) {
	rec, ok := s.files[name]
	return rec, ok
}

// Files returns all file records in the order they were first seen.
func (s *RunStats) Files() []*FileRecord {
	out := make([]*FileRecord, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.files[name])
	}
	return out
}

// Unique returns the sorted unique values of category.
func (s *RunStats) Unique(category span.Category) []string {
	return s.Categories.Values(category)
}

// TotalRedactions sums the events of every file.
func (s *RunStats) TotalRedactions() int {
	total := 0
	for _, rec := range s.files {
		total += rec.Redactions()
	}
	return total
}

// 🔀 Merge folds other into s. Unique values are unioned; file events are
// appended to any existing record of the same name.
func (s *RunStats) Merge(other *RunStats) {
	if other == nil {
		return
	}
	for category, set := range other.Categories.sets {
		for v := range set {
			s.Categories.Add(category, v)
		}
	}
	for _, name := range other.order {
		src := other.files[name]
		dst := s.file(name)
		if src.Chars != 0 {
			dst.Chars = src.Chars
		}
		dst.Events = append(dst.Events, src.Events...)
	}
}

func (s *RunStats) file(name string) *FileRecord {
	rec, ok := s.files[name]
	if !ok {
		rec = &FileRecord{Name: name}
		s.files[name] = rec
		s.order = append(s.order, name)
	}
	return rec
}

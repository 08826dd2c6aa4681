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
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/walteh/redactor/pkg/span"
	"gitlab.com/tozd/go/errors"
)

// ❌ Failure describes a document that could not be redacted
type Failure struct {
	File   string `json:"file"`
	Stage  string `json:"stage,omitempty"`
	Reason string `json:"reason"`
}

// 📋 Report is what gets written at the end of a run
type Report struct {
	Stats    *RunStats
	Failures []Failure
	Policy   string
}

// 🖨️ Formatter writes a report
type Formatter interface {
	Format(w io.Writer, r *Report) error
}

// NewFormatter returns the formatter registered under name ("text" or "json").
func NewFormatter(name string, color bool) (Formatter, error) {
	switch strings.ToLower(name) {
	case "", "text":
		return &TextFormatter{Color: color}, nil
	case "json":
		return &JSONFormatter{Indent: "  "}, nil
	default:
		return nil, errors.Errorf("unknown stats format %q", name)
	}
}

// TextFormatter renders the report as pterm tables.
type TextFormatter struct {
	Color bool
}

func (f *TextFormatter) Format(w io.Writer, r *Report) error {
	var b strings.Builder

	b.WriteString("Redaction Statistics:\n\n")
	summary := pterm.TableData{{"Category", "Unique", "Values"}}
	for _, c := range span.Categories() {
		values := r.Stats.Unique(c)
		quoted := make([]string, len(values))
		for i, v := range values {
			quoted[i] = strconv.Quote(v)
		}
		summary = append(summary, []string{string(c), strconv.Itoa(len(values)), strings.Join(quoted, ", ")})
	}
	if err := f.table(&b, summary); err != nil {
		return err
	}

	for _, rec := range r.Stats.Files() {
		fmt.Fprintf(&b, "\nFile: %s\n  characters: %d\n  redactions: %d\n", rec.Name, rec.Chars, rec.Redactions())
		if len(rec.Events) == 0 {
			continue
		}
		events := pterm.TableData{{"#", "Category", "Start", "End", "Text"}}
		for i, e := range rec.Events {
			events = append(events, []string{
				strconv.Itoa(i + 1),
				string(e.Category),
				strconv.Itoa(e.Start),
				strconv.Itoa(e.End),
				strconv.Quote(e.Text),
			})
		}
		if err := f.table(&b, events); err != nil {
			return err
		}
	}

	if len(r.Failures) > 0 {
		fmt.Fprintf(&b, "\nFailures (policy: %s):\n", r.Policy)
		failures := pterm.TableData{{"File", "Stage", "Reason"}}
		for _, fl := range r.Failures {
			failures = append(failures, []string{fl.File, fl.Stage, fl.Reason})
		}
		if err := f.table(&b, failures); err != nil {
			return err
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Errorf("writing report: %w", err)
	}
	return nil
}

func (f *TextFormatter) table(b *strings.Builder, data pterm.TableData) error {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Errorf("rendering table: %w", err)
	}
	if !f.Color {
		out = pterm.RemoveColorFromString(out)
	}
	b.WriteString(out)
	b.WriteString("\n")
	return nil
}

// JSONFormatter renders the report as a single JSON document.
type JSONFormatter struct {
	Indent string
}

type jsonReport struct {
	Categories map[span.Category][]string `json:"categories"`
	Files      []jsonFile                 `json:"files"`
	Failures   []Failure                  `json:"failures,omitempty"`
	Policy     string                     `json:"policy,omitempty"`
}

type jsonFile struct {
	*FileRecord
	Redactions int `json:"redactions"`
}

func (f *JSONFormatter) Format(w io.Writer, r *Report) error {
	out := jsonReport{
		Categories: make(map[span.Category][]string),
		Files:      []jsonFile{},
		Failures:   r.Failures,
		Policy:     r.Policy,
	}
	for _, c := range span.Categories() {
		out.Categories[c] = r.Stats.Unique(c)
	}
	for _, rec := range r.Stats.Files() {
		out.Files = append(out.Files, jsonFile{FileRecord: rec, Redactions: rec.Redactions()})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", f.Indent)
	if err := enc.Encode(out); err != nil {
		return errors.Errorf("encoding report: %w", err)
	}
	return nil
}

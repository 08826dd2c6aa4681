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

package operation

import (
	"context"
	"fmt"

	"github.com/walteh/redactor/pkg/entity"
	"github.com/walteh/redactor/pkg/fault"
	"github.com/walteh/redactor/pkg/log"
	"github.com/walteh/redactor/pkg/pipeline"
	"github.com/walteh/redactor/pkg/stats"
	"github.com/walteh/redactor/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// ❌ FileError is a failure confined to one input
type FileError struct {
	File string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Stage returns the pipeline stage that failed, if any.
func (e *FileError) Stage() string {
	var stageErr *pipeline.StageError
	if errors.As(e.Err, &stageErr) {
		return string(stageErr.Stage)
	}
	return ""
}

// 🔧 Options contains everything a run needs
type Options struct {
	// Pipeline redacts single documents
	Pipeline *pipeline.Pipeline
	// Annotator finds entities; nil finds none
	Annotator entity.Annotator
	// Outputs writes and tracks redacted files
	Outputs status.Tracker
	// Logger prints per-file lines; nil disables them
	Logger *log.Logger
	// Concepts are the user-supplied concepts
	Concepts []string
	// Suffix is appended to output file names
	Suffix string
	// Policy decides whether a failed file stops the run
	Policy fault.Policy
	// Jobs bounds parallelism; values below 2 run sequentially
	Jobs int
}

// 📋 Result is what a run produced
type Result struct {
	Stats    *stats.RunStats
	Failures []stats.Failure
	Files    []log.FileResult
}

// Report builds the stats report of the run.
func (r *Result) Report(policy fault.Policy) *stats.Report {
	return &stats.Report{
		Stats:    r.Stats,
		Failures: r.Failures,
		Policy:   string(policy),
	}
}

// Failed reports whether any file failed.
func (r *Result) Failed() bool {
	return len(r.Failures) > 0
}

// 🏭 New checks opts and fills defaults.
func New(opts Options) (*OperationRunner, error) {
	if opts.Pipeline == nil {
		return nil, errors.New("pipeline is required")
	}
	if opts.Outputs == nil {
		return nil, errors.New("output manager is required")
	}
	if opts.Annotator == nil {
		opts.Annotator = entity.Nop
	}
	if opts.Suffix == "" {
		opts.Suffix = "redacted"
	}
	if opts.Policy == "" {
		opts.Policy = fault.PolicySkip
	}
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}
	return &OperationRunner{opts: opts}, nil
}

// outcome is the result of one file.
type outcome struct {
	file     log.FileResult
	fragment *stats.RunStats
	err      error
}

// 📄 processFile reads, redacts and writes one input into its own stats
// fragment.
func (r *OperationRunner) processFile(ctx context.Context, path string) outcome {
	text, err := ReadInput(path)
	if err != nil {
		return r.failed(path, err, nil)
	}

	fragment := stats.New()
	doc, err := r.opts.Pipeline.Redact(ctx, path, text, r.opts.Concepts, fragment, r.opts.Annotator)
	if err != nil {
		return r.failed(path, err, fragment)
	}

	name := OutputName(path, r.opts.Suffix)
	info, err := r.opts.Outputs.WriteOutput(ctx, path, name, []byte(doc.Text))
	if err != nil {
		return r.failed(path, err, fragment)
	}

	rec, _ := fragment.File(path)
	return outcome{
		file: log.FileResult{
			Path:       path,
			Output:     info.Path,
			Status:     log.StatusRedacted,
			Chars:      rec.Chars,
			Redactions: rec.Redactions(),
		},
		fragment: fragment,
	}
}

// failed keeps whatever the completed stages recorded in fragment; a
// failing stage does not undo the ones before it.
func (r *OperationRunner) failed(path string, err error, fragment *stats.RunStats) outcome {
	o := outcome{
		file: log.FileResult{
			Path:   path,
			Status: log.StatusFailed,
			Reason: err.Error(),
		},
		fragment: fragment,
		err:      &FileError{File: path, Err: err},
	}
	if fragment != nil {
		if rec, ok := fragment.File(path); ok {
			o.file.Chars = rec.Chars
			o.file.Redactions = rec.Redactions()
		}
	}
	return o
}

func skipped(path string) outcome {
	return outcome{
		file: log.FileResult{
			Path:   path,
			Status: log.StatusSkipped,
			Reason: "run stopped",
		},
	}
}

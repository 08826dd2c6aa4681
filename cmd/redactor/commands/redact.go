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

package commands

import (
	"context"

	"github.com/walteh/redactor/cmd/redactor/opts"
	"github.com/walteh/redactor/pkg/log"
	"github.com/walteh/redactor/pkg/operation"
	"github.com/walteh/redactor/pkg/pipeline"
	"github.com/walteh/redactor/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🔏 Redact runs a full redaction with o and writes the stats report. A run
// that only had skipped failures returns nil.
func Redact(ctx context.Context, o *opts.RootOpts, reports *operation.ReportWriter) error {
	cfg := o.Config
	logger := log.FromContext(ctx)

	inputs, err := operation.ExpandInputs(ctx, cfg.Input)
	if err != nil {
		return err
	}

	annotator, err := o.Annotator(ctx)
	if err != nil {
		return err
	}
	expander, err := o.Expander(ctx)
	if err != nil {
		return err
	}

	p, err := pipeline.Default(expander)
	if err != nil {
		return errors.Errorf("building pipeline: %w", err)
	}

	outputs := status.New(cfg.Output)
	runner, err := operation.New(operation.Options{
		Pipeline:  p,
		Annotator: annotator,
		Outputs:   outputs,
		Logger:    logger,
		Concepts:  cfg.Concepts,
		Suffix:    cfg.Suffix,
		Policy:    cfg.Policy(),
		Jobs:      cfg.Jobs,
	})
	if err != nil {
		return errors.Errorf("creating runner: %w", err)
	}

	logger.Header("redacting documents")
	if len(inputs) == 0 {
		logger.Warningf("no files match %s", cfg.Input)
	}

	logger.StartRun(ctx, log.RunOperation{
		Input:    cfg.Input,
		Output:   cfg.Output,
		Policy:   string(cfg.Policy()),
		Files:    len(inputs),
		Concepts: len(cfg.Concepts),
	})
	res, runErr := runner.Run(ctx, inputs)
	logger.EndRun(ctx)

	if res == nil {
		return runErr
	}

	if err := reports.Write(ctx, cfg.Stats, cfg.StatsFormat, res.Report(cfg.Policy())); err != nil {
		if runErr != nil {
			logger.Errorf("writing stats report: %v", err)
			return runErr
		}
		return err
	}

	logger.LogNewline()
	counts, err := outputCounts(ctx, outputs)
	if err != nil {
		return err
	}
	processed, total := outputs.Progress()
	switch {
	case runErr != nil:
		logger.Errorf("run stopped after %d of %d files", processed, total)
	case res.Failed():
		logger.Warningf("redacted %d of %d files, %d failed", total-len(res.Failures), total, len(res.Failures))
	default:
		logger.Successf("redacted %d files into %s (%d new, %d updated, %d unchanged)", total, outputs.BaseDir(),
			counts[status.StatusNew], counts[status.StatusModified], counts[status.StatusUnchanged])
	}

	return runErr
}

// outputCounts tallies the tracked outputs by status.
func outputCounts(ctx context.Context, outputs *status.Manager) (map[status.FileStatus]int, error) {
	files, err := outputs.ListFiles(ctx)
	if err != nil {
		return nil, errors.Errorf("listing outputs: %w", err)
	}
	counts := make(map[status.FileStatus]int)
	for _, f := range files {
		counts[f.Status]++
	}
	return counts, nil
}

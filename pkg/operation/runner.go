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

	"github.com/rs/zerolog"
	"github.com/walteh/redactor/pkg/stats"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🏃 OperationRunner redacts a list of inputs
type OperationRunner struct {
	opts Options
}

// 🏃 Run redacts every input. The returned Result is non-nil whenever the
// run got as far as processing files, including when err is non-nil
// (a fatal error, an aborting failure or cancellation), so callers can
// still report what happened.
func (r *OperationRunner) Run(ctx context.Context, inputs []string) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	if err := checkCollisions(inputs, r.opts.Suffix); err != nil {
		return nil, err
	}
	if err := r.opts.Outputs.CreateDir(ctx, ""); err != nil {
		return nil, err
	}

	logger.Info().
		Int("files", len(inputs)).
		Int("jobs", r.opts.Jobs).
		Str("policy", string(r.opts.Policy)).
		Msg("redacting inputs")

	r.opts.Outputs.StartOperation(ctx, len(inputs))

	var outcomes []outcome
	var err error
	if r.opts.Jobs > 1 && len(inputs) > 1 {
		outcomes, err = r.runAsync(ctx, inputs)
	} else {
		outcomes, err = r.runSync(ctx, inputs)
	}

	r.opts.Outputs.FinishOperation(ctx)

	return collect(outcomes), err
}

// 🔄 runSync processes inputs one after another
func (r *OperationRunner) runSync(ctx context.Context, inputs []string) ([]outcome, error) {
	outcomes := make([]outcome, 0, len(inputs))
	for i, path := range inputs {
		if err := ctx.Err(); err != nil {
			outcomes = appendSkipped(outcomes, inputs[i:])
			return outcomes, errors.Errorf("run cancelled: %w", err)
		}

		o := r.processFile(ctx, path)
		r.track(ctx, o)
		r.log(ctx, o)
		outcomes = append(outcomes, o)

		if o.err != nil && r.opts.Policy.StopsRun(o.err) {
			outcomes = appendSkipped(outcomes, inputs[i+1:])
			return outcomes, o.err
		}
	}
	return outcomes, nil
}

// ⚡ runAsync processes inputs with at most Jobs files in flight. Files
// already started finish normally when the run stops; files not yet
// started are reported as skipped.
func (r *OperationRunner) runAsync(ctx context.Context, inputs []string) ([]outcome, error) {
	outcomes := make([]outcome, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Jobs)

	for i, path := range inputs {
		g.Go(func() error {
			if gctx.Err() != nil {
				outcomes[i] = skipped(path)
				return nil
			}

			o := r.processFile(ctx, path)
			r.track(ctx, o)
			outcomes[i] = o

			if o.err != nil && r.opts.Policy.StopsRun(o.err) {
				return o.err
			}
			return nil
		})
	}

	err := g.Wait()
	if err == nil && ctx.Err() != nil {
		err = errors.Errorf("run cancelled: %w", ctx.Err())
	}

	for _, o := range outcomes {
		r.log(ctx, o)
	}
	return outcomes, err
}

func (r *OperationRunner) track(ctx context.Context, o outcome) {
	if o.err != nil {
		r.opts.Outputs.MarkFailed(ctx, o.file.Path, o.err)
	}
	r.opts.Outputs.Advance(ctx)
}

func (r *OperationRunner) log(ctx context.Context, o outcome) {
	if r.opts.Logger != nil {
		r.opts.Logger.LogFileResult(ctx, o.file)
	}
}

func appendSkipped(outcomes []outcome, paths []string) []outcome {
	for _, p := range paths {
		outcomes = append(outcomes, skipped(p))
	}
	return outcomes
}

// collect folds outcomes, in input order, into a Result. A failed file
// contributes what its completed stages recorded and is listed under
// Failures.
func collect(outcomes []outcome) *Result {
	res := &Result{Stats: stats.New()}
	for _, o := range outcomes {
		res.Files = append(res.Files, o.file)
		if o.fragment != nil {
			res.Stats.Merge(o.fragment)
		}
		if o.err != nil {
			failure := stats.Failure{File: o.file.Path, Reason: o.file.Reason}
			var fileErr *FileError
			if errors.As(o.err, &fileErr) {
				failure.Stage = fileErr.Stage()
			}
			res.Failures = append(res.Failures, failure)
		}
	}
	return res
}

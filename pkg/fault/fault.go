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

// Package fault holds the error taxonomy of a redaction run and the policy
// that decides which failures end the run.
package fault

import (
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrInputRead marks a document that could not be read or decoded.
	ErrInputRead = errors.Base("input read error")
	// ErrAnnotation marks a failure of the entity-annotation capability.
	ErrAnnotation = errors.Base("annotation failure")
	// ErrExpansion marks a failure of the synonym-expansion capability.
	ErrExpansion = errors.Base("synonym expansion failure")
	// ErrPatternCompile marks a malformed detector pattern.
	ErrPatternCompile = errors.Base("pattern compile error")
	// ErrOutputWrite marks an unwritable destination.
	ErrOutputWrite = errors.Base("output write error")
)

// kindError tags err with one of the sentinels above while keeping err in
// the chain.
type kindError struct {
	kind error
	err  error
}

func (e *kindError) Error() string {
	return e.kind.Error() + ": " + e.err.Error()
}

func (e *kindError) Unwrap() []error {
	return []error{e.kind, e.err}
}

// Mark tags err with kind. A nil err stays nil; an err already tagged with
// kind is returned unchanged.
func Mark(err, kind error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, kind) {
		return err
	}
	return &kindError{kind: kind, err: err}
}

// Kind returns the sentinel err is tagged with, or nil.
func Kind(err error) error {
	for _, k := range []error{ErrOutputWrite, ErrPatternCompile, ErrAnnotation, ErrExpansion, ErrInputRead} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// 🚦 Policy decides what happens to the run when a single document fails
type Policy string

const (
	// PolicySkip reports the failed document and continues with the next.
	PolicySkip Policy = "skip"
	// PolicyAbort stops the run at the first failed document.
	PolicyAbort Policy = "abort"
)

// ParsePolicy validates a policy name. Empty means PolicySkip.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicySkip:
		return PolicySkip, nil
	case PolicyAbort:
		return PolicyAbort, nil
	default:
		return "", errors.Errorf("unknown error policy %q (want %q or %q)", s, PolicySkip, PolicyAbort)
	}
}

// IsFatal reports whether err must stop the run regardless of policy.
// Output and pattern errors describe the environment or the build, not the
// document, so they are always fatal.
func IsFatal(err error) bool {
	return errors.Is(err, ErrOutputWrite) || errors.Is(err, ErrPatternCompile)
}

// StopsRun reports whether err ends the run under p.
func (p Policy) StopsRun(err error) bool {
	if err == nil {
		return false
	}
	return IsFatal(err) || p == PolicyAbort
}

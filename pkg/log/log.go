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

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	countWidth  = 15 // Width for redaction count
	statusWidth = 10 // Width for status text
)

// 🚦 FileStatus is the outcome of one document
type FileStatus string

const (
	StatusRedacted FileStatus = "redacted"
	StatusFailed   FileStatus = "failed"
	StatusSkipped  FileStatus = "skipped"
)

// 🎯 FileResult represents one processed document for logging
type FileResult struct {
	Path       string     // Input path
	Output     string     // Written path, empty unless redacted
	Status     FileStatus // Outcome
	Chars      int        // Character count of the input
	Redactions int        // Number of redaction events
	Reason     string     // Failure or skip reason
}

// 📦 RunOperation describes a redaction run for logging
type RunOperation struct {
	Input    string // Input glob
	Output   string // Output directory
	Policy   string // Error policy
	Files    int    // Number of matched inputs
	Concepts int    // Number of user concepts
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	current *RunOperation
	results []FileResult
}

// 🏭 New creates a new logger writing lines to console and events to zlog
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatFileResult formats a file result for display
func (l *Logger) formatFileResult(r FileResult) string {
	var symbol rune
	var symbolColor color.Attribute
	switch r.Status {
	case StatusRedacted:
		symbol = '✓'
		symbolColor = color.FgGreen
	case StatusFailed:
		symbol = '✗'
		symbolColor = color.FgRed
	default:
		symbol = '-'
		symbolColor = color.FgYellow
	}

	count := fmt.Sprintf("%d redactions", r.Redactions)
	if r.Status != StatusRedacted {
		count = ""
	}

	line := fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, r.Path),
		color.New(color.FgCyan).Sprint(fmt.Sprintf("%-*s", countWidth, count)),
		fmt.Sprintf("%-*s", statusWidth, r.Status))

	if r.Reason != "" {
		line += " " + color.New(color.Faint).Sprint(r.Reason)
	}
	return line
}

// 📝 LogFileResult logs the outcome of one document
func (l *Logger) LogFileResult(ctx context.Context, r FileResult) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.results = append(l.results, r)

	fmt.Fprintln(l.console, l.formatFileResult(r))

	ev := l.zlog.Info()
	if r.Status == StatusFailed {
		ev = l.zlog.Warn()
	}
	ev.Str("file", r.Path).
		Str("output", r.Output).
		Str("status", string(r.Status)).
		Int("chars", r.Chars).
		Int("redactions", r.Redactions).
		Str("reason", r.Reason).
		Msg("file processed")
}

// 📝 StartRun prints the run header
func (l *Logger) StartRun(ctx context.Context, op RunOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.current = &op
	l.results = nil

	fmt.Fprintf(l.console, "[redacting into %s]\n",
		color.New(color.FgCyan).Sprint(op.Output))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Input),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint("on_error="+op.Policy))

	l.zlog.Info().
		Str("input", op.Input).
		Str("output", op.Output).
		Str("policy", op.Policy).
		Int("files", op.Files).
		Int("concepts", op.Concepts).
		Msg("starting redaction run")
}

// 📝 EndRun logs the run summary and returns the results seen since StartRun
func (l *Logger) EndRun(ctx context.Context) []FileResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.current == nil {
		return nil
	}

	counts := map[FileStatus]int{}
	for _, r := range l.results {
		counts[r.Status]++
	}

	l.zlog.Info().
		Str("input", l.current.Input).
		Int("redacted", counts[StatusRedacted]).
		Int("failed", counts[StatusFailed]).
		Int("skipped", counts[StatusSkipped]).
		Msg("redaction run complete")

	results := l.results
	l.current = nil
	l.results = nil
	return results
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("redactor")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}

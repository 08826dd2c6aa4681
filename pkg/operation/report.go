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
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/redactor/pkg/fault"
	"github.com/walteh/redactor/pkg/stats"
	"gitlab.com/tozd/go/errors"
)

// Report destinations that name a stream instead of a file.
const (
	ReportStdout = "stdout"
	ReportStderr = "stderr"
)

// 📊 ReportWriter sends the stats report to a stream or a file
type ReportWriter struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewReportWriter writes streams to the process stdout and stderr.
func NewReportWriter() *ReportWriter {
	return &ReportWriter{Stdout: os.Stdout, Stderr: os.Stderr}
}

// 🖨️ Write renders report in format and sends it to dest ("stdout",
// "stderr" or a file path). An empty dest writes nothing. File failures are
// marked fault.ErrOutputWrite.
func (w *ReportWriter) Write(ctx context.Context, dest, format string, report *stats.Report) error {
	if dest == "" {
		return nil
	}

	var out io.Writer
	useColor := false
	switch dest {
	case ReportStdout:
		out, useColor = w.Stdout, !color.NoColor
	case ReportStderr:
		out, useColor = w.Stderr, !color.NoColor
	}

	formatter, err := stats.NewFormatter(format, useColor)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, report); err != nil {
		return errors.Errorf("formatting report: %w", err)
	}

	if out != nil {
		if _, err := out.Write(buf.Bytes()); err != nil {
			return fault.Mark(errors.Errorf("writing report to %s: %w", dest, err), fault.ErrOutputWrite)
		}
		return nil
	}

	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fault.Mark(errors.Errorf("creating report directory: %w", err), fault.ErrOutputWrite)
		}
	}
	if err := os.WriteFile(dest, buf.Bytes(), 0o644); err != nil {
		return fault.Mark(errors.Errorf("writing report to %s: %w", dest, err), fault.ErrOutputWrite)
	}

	zerolog.Ctx(ctx).Debug().Str("path", dest).Str("format", format).Msg("wrote stats report")
	return nil
}

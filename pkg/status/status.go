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

package status

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"github.com/walteh/redactor/pkg/fault"
	"gitlab.com/tozd/go/errors"
)

// 📊 FileStatus represents what happened to an output file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusNew                  // Output didn't exist
	StatusModified             // Output existed with different content
	StatusUnchanged            // Output existed with identical content
	StatusFailed               // Input could not be redacted
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusModified:
		return "modified"
	case StatusUnchanged:
		return "unchanged"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 FileInfo contains metadata about an output file
type FileInfo struct {
	Source   string     // Input path the output was produced from
	Path     string     // Path relative to the output directory
	Status   FileStatus // Current status
	Size     int64      // Written size in bytes
	Checksum string     // SHA-256 of the written content
	Error    error      // Why the input failed, if it did
}

// 📈 Tracker writes redacted outputs and reports run progress
type Tracker interface {
	CreateDir(ctx context.Context, path string) error
	WriteOutput(ctx context.Context, source, path string, content []byte) (FileInfo, error)
	MarkFailed(ctx context.Context, source string, cause error)

	StartOperation(ctx context.Context, total int)
	Advance(ctx context.Context)
	FinishOperation(ctx context.Context)
}

// 🔧 Manager implements Tracker over an output directory
type Manager struct {
	baseDir   string        // Output directory
	formatter FileFormatter // Formatter for status messages

	mu    sync.RWMutex
	files map[string]FileInfo
	order []string

	total     int
	processed int
}

var _ Tracker = (*Manager)(nil)

// 🏭 New creates a new status manager rooted at the output directory
func New(baseDir string) *Manager {
	return &Manager{
		baseDir:   filepath.Clean(baseDir),
		formatter: NewDefaultFileFormatter(),
		files:     make(map[string]FileInfo),
	}
}

// BaseDir returns the output directory.
func (m *Manager) BaseDir() string {
	return m.baseDir
}

// 🔒 getAbsPath returns the absolute path for a given relative path
func (m *Manager) getAbsPath(path string) string {
	return filepath.Join(m.baseDir, path)
}

// 🔍 calculateChecksum generates a SHA-256 hash of the content
func calculateChecksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// ✍️ WriteOutput writes the redacted content of source to path, tracks the
// result and returns it. Failures are marked fault.ErrOutputWrite.
func (m *Manager) WriteOutput(ctx context.Context, source, path string, content []byte) (FileInfo, error) {
	info := FileInfo{
		Source:   source,
		Path:     path,
		Size:     int64(len(content)),
		Checksum: calculateChecksum(content),
		Status:   StatusNew,
	}

	exists, err := m.FileExists(ctx, path)
	if err != nil {
		return info, fault.Mark(err, fault.ErrOutputWrite)
	}
	if exists {
		existing, err := m.ReadFile(ctx, path)
		if err != nil {
			return info, fault.Mark(err, fault.ErrOutputWrite)
		}
		info.Status = StatusModified
		if calculateChecksum(existing) == info.Checksum {
			info.Status = StatusUnchanged
		}
	}

	if info.Status != StatusUnchanged {
		if err := m.WriteFile(ctx, path, content); err != nil {
			return info, err
		}
	}

	m.TrackFile(ctx, path, info)
	return info, nil
}

// ❌ MarkFailed tracks an input that produced no output
func (m *Manager) MarkFailed(ctx context.Context, source string, cause error) {
	m.TrackFile(ctx, source, FileInfo{Source: source, Path: source, Status: StatusFailed, Error: cause})
}

func (m *Manager) WriteFile(ctx context.Context, path string, content []byte) error {
	absPath := m.getAbsPath(path)

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return fault.Mark(errors.Errorf("creating parent directories: %w", err), fault.ErrOutputWrite)
	}

	return m.WriteFileAtomic(ctx, path, content)
}

func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte) error {
	absPath := m.getAbsPath(path)
	tempPath := absPath + ".tmp"

	if err := os.WriteFile(tempPath, content, 0o644); err != nil {
		return fault.Mark(errors.Errorf("writing temp file: %w", err), fault.ErrOutputWrite)
	}

	// rename is atomic within a directory
	if err := os.Rename(tempPath, absPath); err != nil {
		os.Remove(tempPath)
		return fault.Mark(errors.Errorf("renaming temp file: %w", err), fault.ErrOutputWrite)
	}

	return nil
}

func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(m.getAbsPath(path))
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

func (m *Manager) FileExists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(m.getAbsPath(path))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Errorf("checking file existence: %w", err)
}

// CreateDir creates path under the output directory. An empty path creates
// the output directory itself.
func (m *Manager) CreateDir(ctx context.Context, path string) error {
	if err := os.MkdirAll(m.getAbsPath(path), 0o755); err != nil {
		return fault.Mark(errors.Errorf("creating directory: %w", err), fault.ErrOutputWrite)
	}
	return nil
}

func (m *Manager) TrackFile(ctx context.Context, path string, info FileInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.files[path]; !ok {
		m.order = append(m.order, path)
	}
	m.files[path] = info

	msg := m.formatter.FormatFileOperation(path, info.Status)
	if info.Error != nil {
		msg = m.formatter.FormatError(info.Error)
	}
	zerolog.Ctx(ctx).Debug().Str("path", path).Str("status", info.Status.String()).Msg(msg)
}

// ListFiles returns tracked files in the order they were first tracked.
func (m *Manager) ListFiles(ctx context.Context) ([]FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make([]FileInfo, 0, len(m.order))
	for _, path := range m.order {
		files = append(files, m.files[path])
	}
	return files, nil
}

func (m *Manager) StartOperation(ctx context.Context, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.total = total
	m.processed = 0
	msg := m.formatter.FormatProgress(0, total)
	zerolog.Ctx(ctx).Info().Int("total", total).Msg(msg)
}

// Advance bumps progress by one processed file.
func (m *Manager) Advance(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.processed++
	msg := m.formatter.FormatProgress(m.processed, m.total)
	zerolog.Ctx(ctx).Debug().
		Int("processed", m.processed).
		Int("total", m.total).
		Msg(msg)
}

// Progress returns processed and total counts.
func (m *Manager) Progress() (int, int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.processed, m.total
}

func (m *Manager) FinishOperation(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	msg := m.formatter.FormatProgress(m.processed, m.total)
	zerolog.Ctx(ctx).Info().
		Int("processed", m.processed).
		Int("total", m.total).
		Msg(msg)
}

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
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/redactor/pkg/fault"
	"gitlab.com/tozd/go/errors"
)

// 📂 ExpandInputs resolves pattern to a sorted list of regular files.
// Patterns support doublestar's ** syntax.
func ExpandInputs(ctx context.Context, pattern string) ([]string, error) {
	if !doublestar.ValidatePathPattern(pattern) {
		return nil, errors.Errorf("invalid input pattern %q", pattern)
	}

	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Errorf("expanding input pattern %q: %w", pattern, err)
	}
	sort.Strings(matches)

	zerolog.Ctx(ctx).Debug().Str("pattern", pattern).Int("matches", len(matches)).Msg("expanded inputs")
	return matches, nil
}

// 📖 ReadInput reads path as UTF-8 text. Unreadable files and invalid
// encodings are marked fault.ErrInputRead.
func ReadInput(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fault.Mark(errors.Errorf("reading %s: %w", path, err), fault.ErrInputRead)
	}
	if !utf8.Valid(data) {
		return "", fault.Mark(errors.Errorf("decoding %s: not valid UTF-8", path), fault.ErrInputRead)
	}
	return string(data), nil
}

// OutputName returns the file name a redacted copy of path is written to.
func OutputName(path, suffix string) string {
	return filepath.Base(path) + "." + suffix
}

// checkCollisions rejects inputs that would overwrite each other's output.
func checkCollisions(inputs []string, suffix string) error {
	seen := make(map[string]string, len(inputs))
	for _, in := range inputs {
		name := OutputName(in, suffix)
		if prev, ok := seen[name]; ok {
			return errors.Errorf("inputs %s and %s both write %s", prev, in, name)
		}
		seen[name] = in
	}
	return nil
}

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

// Package thesaurus implements synonym.Expander over a word list file.
//
//	happy:
//	  - glad
//	  - joyful
//
// Keys are looked up case-insensitively; forms are returned verbatim.
package thesaurus

import (
	"context"
	"sort"
	"strings"

	"github.com/walteh/redactor/pkg/config"
	"github.com/walteh/redactor/pkg/synonym"
	"gitlab.com/tozd/go/errors"
)

// 📖 Thesaurus is an in-memory word → forms table
type Thesaurus struct {
	entries map[string][]string
}

var _ synonym.Expander = (*Thesaurus)(nil)

// 🏭 New builds a thesaurus. Duplicate and blank forms are dropped. Head
// words that differ only in case share one entry; their forms are merged in
// sorted head-word order.
func New(entries map[string][]string) *Thesaurus {
	words := make([]string, 0, len(entries))
	for word := range entries {
		words = append(words, word)
	}
	sort.Strings(words)

	t := &Thesaurus{entries: make(map[string][]string, len(entries))}
	for _, word := range words {
		forms := entries[word]
		key := normalize(word)
		if key == "" {
			continue
		}
		seen := map[string]bool{}
		for _, f := range t.entries[key] {
			seen[f] = true
		}
		for _, f := range forms {
			f = strings.TrimSpace(f)
			if f == "" || seen[f] {
				continue
			}
			seen[f] = true
			t.entries[key] = append(t.entries[key], f)
		}
	}
	return t
}

// 📂 Load reads a YAML (.yaml, .yml) or JSON (.json) thesaurus file.
func Load(path string) (*Thesaurus, error) {
	entries := map[string][]string{}
	if err := config.DecodeFile(path, &entries); err != nil {
		return nil, errors.Errorf("loading thesaurus: %w", err)
	}
	return New(entries), nil
}

// Expand returns the forms listed for word, or nil.
func (t *Thesaurus) Expand(ctx context.Context, word string) ([]string, error) {
	forms := t.entries[normalize(word)]
	if len(forms) == 0 {
		return nil, nil
	}
	out := make([]string, len(forms))
	copy(out, forms)
	return out, nil
}

// Len returns the number of head words.
func (t *Thesaurus) Len() int {
	return len(t.entries)
}

func normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

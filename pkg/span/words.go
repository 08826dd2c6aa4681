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

package span

import (
	"regexp"
	"sort"
	"unicode"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
)

// 🔤 WordMatcher finds whole-word occurrences of a literal. A side of the
// literal that starts or ends with a word rune (any Unicode letter, digit,
// mark or '_') must not touch another word rune in the text, so "caf"
// does not match inside "café". Sides ending in a symbol are unbounded,
// so "c++" still matches in "c++11".
type WordMatcher struct {
	literal string
	re      *regexp.Regexp
	left    bool
	right   bool
}

// NewWordMatcher compiles literal. With foldCase the match is
// case-insensitive.
func NewWordMatcher(literal string, foldCase bool) (*WordMatcher, error) {
	if literal == "" {
		return nil, errors.New("empty literal")
	}
	src := regexp.QuoteMeta(literal)
	if foldCase {
		src = `(?i)` + src
	}
	re, err := regexp.Compile(src)
	if err != nil {
		return nil, errors.Errorf("compiling %q: %w", literal, err)
	}
	first, _ := utf8.DecodeRuneInString(literal)
	last, _ := utf8.DecodeLastRuneInString(literal)
	return &WordMatcher{
		literal: literal,
		re:      re,
		left:    IsWordRune(first),
		right:   IsWordRune(last),
	}, nil
}

// Literal returns the literal the matcher was built from.
func (m *WordMatcher) Literal() string {
	return m.literal
}

// FindAll returns the byte ranges of every whole-word occurrence, in
// order. A rejected candidate only advances the search by one rune, so a
// valid occurrence overlapping it is still found.
func (m *WordMatcher) FindAll(text string) [][2]int {
	var out [][2]int
	pos := 0
	for pos < len(text) {
		loc := m.re.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if m.bounded(text, start, end) {
			out = append(out, [2]int{start, end})
			pos = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		pos = start + size
	}
	return out
}

func (m *WordMatcher) bounded(text string, start, end int) bool {
	if m.left && start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(text[:start]); IsWordRune(r) {
			return false
		}
	}
	if m.right && end < len(text) {
		if r, _ := utf8.DecodeRuneInString(text[end:]); IsWordRune(r) {
			return false
		}
	}
	return true
}

// IsWordRune reports whether r can be part of a word.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// FindLongestWords runs every matcher over text and keeps the leftmost
// occurrences, preferring the longest one where several start together,
// and dropping occurrences that overlap one already kept.
func FindLongestWords(text string, matchers []*WordMatcher) [][2]int {
	var all [][2]int
	for _, m := range matchers {
		all = append(all, m.FindAll(text)...)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i][0] != all[j][0] {
			return all[i][0] < all[j][0]
		}
		return all[i][1] > all[j][1]
	})

	out := all[:0]
	last := -1
	for _, loc := range all {
		if loc[0] < last {
			continue
		}
		out = append(out, loc)
		last = loc[1]
	}
	return out
}

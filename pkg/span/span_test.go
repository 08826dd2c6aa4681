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
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blocks(n int) string {
	return strings.Repeat(string(Block), n)
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name  string
		spans []Span
		want  []Span
	}{
		{
			name: "empty",
			want: nil,
		},
		{
			name:  "single",
			spans: []Span{{2, 5}},
			want:  []Span{{2, 5}},
		},
		{
			name:  "unsorted_disjoint",
			spans: []Span{{10, 12}, {0, 3}, {5, 7}},
			want:  []Span{{0, 3}, {5, 7}, {10, 12}},
		},
		{
			name:  "overlapping",
			spans: []Span{{0, 5}, {3, 8}},
			want:  []Span{{0, 8}},
		},
		{
			name:  "touching_spans_join",
			spans: []Span{{0, 4}, {4, 6}},
			want:  []Span{{0, 6}},
		},
		{
			name:  "contained",
			spans: []Span{{0, 10}, {2, 3}, {4, 9}},
			want:  []Span{{0, 10}},
		},
		{
			name:  "duplicates",
			spans: []Span{{3, 6}, {3, 6}, {3, 6}},
			want:  []Span{{3, 6}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.spans)
			assert.Equal(t, tt.want, got, "merged spans should match")
			assert.Equal(t, got, Merge(got), "merging merged spans should be a no-op")
		})
	}
}

func TestMergeDoesNotModifyInput(t *testing.T) {
	in := []Span{{5, 7}, {0, 2}}
	Merge(in)
	assert.Equal(t, []Span{{5, 7}, {0, 2}}, in)
}

func TestRedact(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		spans []Span
		want  string
	}{
		{
			name: "no_spans",
			text: "nothing to hide",
			want: "nothing to hide",
		},
		{
			name:  "single_span",
			text:  "call Bob now",
			spans: []Span{{5, 8}},
			want:  "call " + blocks(3) + " now",
		},
		{
			name:  "overlapping_spans_form_one_run",
			text:  "Mr. John Doe left",
			spans: []Span{{0, 12}, {4, 12}},
			want:  blocks(12) + " left",
		},
		{
			name:  "whole_text",
			text:  "secret",
			spans: []Span{{0, 6}},
			want:  blocks(6),
		},
		{
			name:  "multibyte_text_keeps_rune_count",
			text:  "café Zoë here",
			spans: []Span{{5, 8}},
			want:  "café " + blocks(3) + " here",
		},
		{
			name:  "invalid_spans_ignored",
			text:  "abc",
			spans: []Span{{-1, 2}, {2, 2}, {1, 9}},
			want:  "abc",
		},
		{
			name:  "already_redacted_input",
			text:  blocks(3) + " and Ann",
			spans: []Span{{0, 3}, {8, 11}},
			want:  blocks(3) + " and " + blocks(3),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Redact(tt.text, tt.spans)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, utf8.RuneCountInString(tt.text), utf8.RuneCountInString(got), "rune count must be preserved")
		})
	}
}

func TestRedactProperties(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog, twice."
	sets := [][]Span{
		{{0, 3}},
		{{4, 9}, {4, 9}, {16, 19}},
		{{40, 44}, {0, 50}},
		{{10, 20}, {15, 25}, {25, 30}, {2, 4}},
	}

	for _, spans := range sets {
		once := Redact(text, spans)
		assert.Equal(t, once, Redact(once, nil), "redacting with no spans is identity")
		assert.Equal(t, once, Redact(once, spans), "redacting twice is idempotent")
		assert.Equal(t, utf8.RuneCountInString(text), utf8.RuneCountInString(once))

		covered := map[int]bool{}
		for _, s := range spans {
			for i := s.Start; i < s.End; i++ {
				covered[i] = true
			}
		}
		merged := Merge(spans)
		seen := map[int]bool{}
		for i, s := range merged {
			if i > 0 {
				require.Greater(t, s.Start, merged[i-1].End, "merged spans must be disjoint and non-touching")
			}
			for j := s.Start; j < s.End; j++ {
				seen[j] = true
			}
		}
		assert.Equal(t, covered, seen, "merged spans cover exactly the input characters")

		for i, r := range []rune(once) {
			if covered[i] {
				assert.Equal(t, Block, r, "rune %d should be redacted", i)
			}
		}
	}
}

func TestOffsets(t *testing.T) {
	text := "añb█c"
	o := NewOffsets(text)
	assert.Equal(t, 0, o.Rune(0))
	assert.Equal(t, 1, o.Rune(1))
	assert.Equal(t, 2, o.Rune(3))
	assert.Equal(t, 3, o.Rune(4))
	assert.Equal(t, 4, o.Rune(7))
	assert.Equal(t, 5, o.Rune(len(text)))
	assert.Equal(t, Span{Start: 2, End: 4}, o.Span(3, 7))
}

func TestSpanValid(t *testing.T) {
	assert.True(t, Span{0, 1}.Valid(1))
	assert.False(t, Span{0, 0}.Valid(1))
	assert.False(t, Span{1, 0}.Valid(1))
	assert.False(t, Span{0, 2}.Valid(1))
	assert.Equal(t, 3, Span{2, 5}.Len())
}

func matchedWords(text string, locs [][2]int) []string {
	var out []string
	for _, loc := range locs {
		out = append(out, text[loc[0]:loc[1]])
	}
	return out
}

func TestWordMatcher(t *testing.T) {
	tests := []struct {
		name     string
		literal  string
		foldCase bool
		text     string
		want     []string
	}{
		{name: "plain_word", literal: "cat", text: "cat category bobcat cat.", want: []string{"cat", "cat"}},
		{name: "symbol_suffix", literal: "c++", text: "I like c++ and c++11", want: []string{"c++", "c++"}},
		{name: "regex_metacharacters", literal: "a.b", text: "a.b axb", want: []string{"a.b"}},
		{name: "multi_word", literal: "big deal", text: "no big deal, big dealer", want: []string{"big deal"}},
		{name: "prefix_of_accented_word", literal: "caf", text: "Le café est fermé.", want: nil},
		{name: "accented_word_with_suffix", literal: "café", text: "Deux cafés, merci.", want: nil},
		{name: "accented_word_alone", literal: "café", text: "Un café, merci.", want: []string{"café"}},
		{name: "accented_fold_case", literal: "café", foldCase: true, text: "CAFÉ OUVERT", want: []string{"CAFÉ"}},
		{name: "prefix_before_accent", literal: "resum", text: "Send your resumé today.", want: nil},
		{name: "accented_ending", literal: "resumé", text: "Send your resumé today.", want: []string{"resumé"}},
		{name: "combining_mark", literal: "cafe", text: "cafe\u0301 noir", want: nil},
		{name: "digits_join_words", literal: "42", text: "x42 42", want: []string{"42"}},
		{name: "overlap_after_rejection", literal: "a a", text: "xa a a", want: []string{"a a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewWordMatcher(tt.literal, tt.foldCase)
			require.NoError(t, err)
			assert.Equal(t, tt.literal, m.Literal())
			assert.Equal(t, tt.want, matchedWords(tt.text, m.FindAll(tt.text)))
		})
	}

	_, err := NewWordMatcher("", false)
	assert.Error(t, err)
}

func TestFindLongestWords(t *testing.T) {
	var matchers []*WordMatcher
	for _, l := range []string{"big", "big deal"} {
		m, err := NewWordMatcher(l, true)
		require.NoError(t, err)
		matchers = append(matchers, m)
	}

	text := "a Big Deal, a big dealer and big."
	assert.Equal(t, []string{"Big Deal", "big", "big"}, matchedWords(text, FindLongestWords(text, matchers)))
	assert.Empty(t, FindLongestWords("nothing here", matchers))
}

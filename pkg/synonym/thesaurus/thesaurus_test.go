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

package thesaurus

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	th := New(map[string][]string{
		"Quick": {"fast", "rapid", "fast", ""},
		"  ":    {"ignored"},
		"lazy":  {"idle"},
	})
	assert.Equal(t, 2, th.Len())

	tests := []struct {
		word string
		want []string
	}{
		{word: "quick", want: []string{"fast", "rapid"}},
		{word: "QUICK ", want: []string{"fast", "rapid"}},
		{word: "lazy", want: []string{"idle"}},
		{word: "unknown", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got, err := th.Expand(context.Background(), tt.word)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewMergesCaseVariantsInOrder(t *testing.T) {
	for range 20 {
		th := New(map[string][]string{
			"happy": {"glad", "cheerful"},
			"Happy": {"joyful", "glad"},
			"HAPPY": {"elated"},
		})
		got, err := th.Expand(context.Background(), "happy")
		require.NoError(t, err)
		assert.Equal(t, []string{"elated", "joyful", "glad", "cheerful"}, got)
	}
}

func TestExpandReturnsCopy(t *testing.T) {
	th := New(map[string][]string{"a": {"b"}})
	got, err := th.Expand(context.Background(), "a")
	require.NoError(t, err)
	got[0] = "mutated"

	again, err := th.Expand(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, again)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		content     string
		wantLen     int
		wantErr     bool
		errContains string
	}{
		{
			name:    "yaml",
			file:    "syn.yaml",
			content: "secret:\n  - classified\n  - confidential\n",
			wantLen: 1,
		},
		{
			name:    "json",
			file:    "syn.json",
			content: `{"secret": ["classified"], "money": ["cash"]}`,
			wantLen: 2,
		},
		{
			name:        "bad_json",
			file:        "syn.json",
			content:     `{"secret": `,
			wantErr:     true,
			errContains: "parsing JSON",
		},
		{
			name:        "unknown_extension",
			file:        "syn.ini",
			wantErr:     true,
			errContains: "unsupported file extension",
		},
		{
			name:        "hcl_is_config_only",
			file:        "syn.hcl",
			content:     `secret = ["classified"]`,
			wantErr:     true,
			errContains: "unsupported file extension",
		},
		{
			name:    "empty_yaml",
			file:    "syn.yml",
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			th, err := Load(path)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLen, th.Len())
		})
	}
}

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

package ner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/redactor/pkg/entity"
)

func TestClientAnnotate(t *testing.T) {
	tests := []struct {
		name        string
		handler     http.HandlerFunc
		want        []entity.Entity
		wantErr     bool
		errContains string
	}{
		{
			name: "returns_entities",
			handler: func(w http.ResponseWriter, r *http.Request) {
				var req classifyRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					http.Error(w, err.Error(), http.StatusBadRequest)
					return
				}
				if req.Text != "John lives in Paris" {
					http.Error(w, "unexpected text", http.StatusBadRequest)
					return
				}
				_ = json.NewEncoder(w).Encode(map[string]any{
					"spans": []map[string]any{
						{"start": 0, "end": 4, "label": "PERSON", "text": "John"},
						{"start": 14, "end": 19, "label": "GPE", "text": "Paris"},
					},
				})
			},
			want: []entity.Entity{
				{Label: "PERSON", Start: 0, End: 4, Text: "John"},
				{Label: "GPE", Start: 14, End: 19, Text: "Paris"},
			},
		},
		{
			name: "empty_spans",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"spans": []}`))
			},
			want: []entity.Entity{},
		},
		{
			name: "server_error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "model not loaded", http.StatusServiceUnavailable)
			},
			wantErr:     true,
			errContains: "ner sidecar returned 503: model not loaded",
		},
		{
			name: "bad_json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"spans": [`))
			},
			wantErr:     true,
			errContains: "decoding response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			logger := zerolog.New(zerolog.NewTestWriter(t))
			ctx := logger.WithContext(context.Background())

			c := New(srv.URL + "/")
			got, err := c.Annotate(ctx, "John lives in Paris")
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, WithTimeout(time.Second))
	_, err := c.Annotate(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "calling ner sidecar")
}

func TestClientOptions(t *testing.T) {
	hc := &http.Client{}
	c := New("http://example.invalid", WithHTTPClient(hc), WithTimeout(3*time.Second))
	assert.Same(t, hc, c.http)
	assert.Equal(t, 3*time.Second, c.http.Timeout)
	assert.Equal(t, "http://example.invalid/classify", c.url)
}

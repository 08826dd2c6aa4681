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

// Package ner provides an entity.Annotator backed by an HTTP NER sidecar
// (for example a small spaCy service). The sidecar receives {"text": ...}
// on POST /classify and answers {"spans": [{"start", "end", "label",
// "text"}]} with character offsets.
package ner

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/redactor/pkg/entity"
	"gitlab.com/tozd/go/errors"
)

// DefaultTimeout bounds a single classify round trip.
const DefaultTimeout = 10 * time.Second

// 🛰️ Client calls the sidecar's /classify endpoint
type Client struct {
	url  string
	http *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// 🏭 New creates a client for the sidecar at baseURL (e.g. "http://localhost:8001")
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		url:  strings.TrimRight(baseURL, "/") + "/classify",
		http: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ entity.Annotator = (*Client)(nil)

type classifyRequest struct {
	Text string `json:"text"`
}

type classifyResponse struct {
	Spans []entity.Entity `json:"spans"`
}

// 🔍 Annotate sends text to the sidecar and returns its entities.
// Any transport, status or decoding problem is returned as an error; the
// caller decides whether the document survives it.
func (c *Client) Annotate(ctx context.Context, text string) ([]entity.Entity, error) {
	logger := zerolog.Ctx(ctx)

	body, err := json.Marshal(classifyRequest{Text: text})
	if err != nil {
		return nil, errors.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Errorf("calling ner sidecar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.Errorf("ner sidecar returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var result classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.Errorf("decoding response: %w", err)
	}

	logger.Debug().
		Str("url", c.url).
		Int("entities", len(result.Spans)).
		Dur("took", time.Since(start)).
		Msg("ner sidecar annotated text")

	return result.Spans, nil
}

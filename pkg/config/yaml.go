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

package config

import (
	"bytes"
	"context"
	"io"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	p := &YAMLParser{}
	Register(p)
	RegisterDecoder(p)
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *YAMLParser) CanParse(filename string) bool {
	return hasExt(filename, ".yaml", ".yml")
}

// 📝 Parse parses the config from YAML bytes. An empty document is an
// empty config.
func (p *YAMLParser) Parse(ctx context.Context, data []byte, filename string) (*Config, error) {
	var cfg Config
	if err := p.Decode(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Decode decodes YAML into v, rejecting unknown fields. An empty document
// leaves v untouched.
func (p *YAMLParser) Decode(data []byte, v any) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return errors.Errorf("parsing YAML: %w", err)
	}
	return nil
}

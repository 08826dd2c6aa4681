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
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse decodes the config from bytes
	Parse(ctx context.Context, data []byte, filename string) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

// 🔌 Decoder decodes a data file of its format into any value. The JSON and
// YAML parsers are also decoders, so side files such as gazetteers and
// thesauri share the config's strict decoding.
type Decoder interface {
	// 📝 Decode decodes data into v
	Decode(data []byte, v any) error

	// 🔍 CanParse checks if this decoder can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is the list of available parsers
	parsers []Parser
	// 🗺️ decoders is the list of available data-file decoders
	decoders []Decoder
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📝 RegisterDecoder registers a data-file decoder
func RegisterDecoder(d Decoder) {
	decoders = append(decoders, d)
}

// 🎯 GetDecoder returns a decoder that can handle the given file
func GetDecoder(filename string) Decoder {
	for _, d := range decoders {
		if d.CanParse(filename) {
			return d
		}
	}
	return nil
}

func hasExt(filename string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// LoadConfig loads a configuration file from the given path.
// The format is determined by the file extension:
// - .json for JSON
// - .yaml or .yml for YAML
// - .hcl for HCL
//
// Defaults are applied; Validate is left to the caller so that flags can
// still fill required fields.
func LoadConfig(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("unsupported file extension %q", filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	cfg, err := p.Parse(ctx, data, path)
	if err != nil {
		return nil, errors.Errorf("parsing config %s: %w", path, err)
	}

	cfg.location = path
	cfg.ApplyDefaults()

	return cfg, nil
}

// 📂 DecodeFile reads the data file at path into v with the decoder its
// extension selects (.json, .yaml or .yml).
func DecodeFile(path string, v any) error {
	d := GetDecoder(path)
	if d == nil {
		return errors.Errorf("unsupported file extension %q", filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Errorf("reading %s: %w", path, err)
	}

	if err := d.Decode(data, v); err != nil {
		return errors.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

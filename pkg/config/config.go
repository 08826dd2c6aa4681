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
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/redactor/pkg/fault"
	"gitlab.com/tozd/go/errors"
)

// Defaults applied by ApplyDefaults.
const (
	DefaultInput         = "*.txt"
	DefaultSuffix        = "redacted"
	DefaultStatsFormat   = "text"
	DefaultJobs          = 1
	DefaultEntityTimeout = 10 * time.Second
	DefaultOnErrorPolicy = fault.PolicySkip
	statsFormatText      = "text"
	statsFormatJSON      = "json"
	maxJobs              = 256
)

// 🧠 EntityArgs configures the entity-annotation capability
type EntityArgs struct {
	// Endpoint is the base URL of an NER sidecar. Empty disables it.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" hcl:"endpoint,optional"`
	// Timeout is a Go duration string such as "10s".
	Timeout string `json:"timeout,omitempty" yaml:"timeout,omitempty" hcl:"timeout,optional"`
	// Gazetteer is a YAML or JSON file of label -> phrases.
	Gazetteer string `json:"gazetteer,omitempty" yaml:"gazetteer,omitempty" hcl:"gazetteer,optional"`

	timeout time.Duration
}

// RequestTimeout returns the parsed Timeout. Only meaningful after Validate.
func (e *EntityArgs) RequestTimeout() time.Duration {
	if e == nil || e.timeout == 0 {
		return DefaultEntityTimeout
	}
	return e.timeout
}

// 📖 SynonymArgs configures the synonym-expansion capability
type SynonymArgs struct {
	// Thesaurus is a YAML or JSON file of word -> related forms.
	Thesaurus string `json:"thesaurus,omitempty" yaml:"thesaurus,omitempty" hcl:"thesaurus,optional"`
}

// 📚 Config represents the complete configuration of a run
type Config struct {
	Input       string       `json:"input,omitempty" yaml:"input,omitempty" hcl:"input,optional"`
	Output      string       `json:"output,omitempty" yaml:"output,omitempty" hcl:"output,optional"`
	Concepts    []string     `json:"concepts,omitempty" yaml:"concepts,omitempty" hcl:"concepts,optional"`
	Stats       string       `json:"stats,omitempty" yaml:"stats,omitempty" hcl:"stats,optional"`
	StatsFormat string       `json:"stats_format,omitempty" yaml:"stats_format,omitempty" hcl:"stats_format,optional"`
	Suffix      string       `json:"suffix,omitempty" yaml:"suffix,omitempty" hcl:"suffix,optional"`
	OnError     string       `json:"on_error,omitempty" yaml:"on_error,omitempty" hcl:"on_error,optional"`
	Jobs        int          `json:"jobs,omitempty" yaml:"jobs,omitempty" hcl:"jobs,optional"`
	Entities    *EntityArgs  `json:"entities,omitempty" yaml:"entities,omitempty" hcl:"entities,block"`
	Synonyms    *SynonymArgs `json:"synonyms,omitempty" yaml:"synonyms,omitempty" hcl:"synonyms,block"`

	location string
}

// Location returns the file the config was loaded from, if any.
func (cfg *Config) Location() string {
	return cfg.location
}

// ApplyDefaults fills every unset field with its default.
func (cfg *Config) ApplyDefaults() {
	if cfg.Input == "" {
		cfg.Input = DefaultInput
	}
	if cfg.Suffix == "" {
		cfg.Suffix = DefaultSuffix
	}
	if cfg.StatsFormat == "" {
		cfg.StatsFormat = DefaultStatsFormat
	}
	if cfg.OnError == "" {
		cfg.OnError = string(DefaultOnErrorPolicy)
	}
	if cfg.Jobs == 0 {
		cfg.Jobs = DefaultJobs
	}
	if cfg.Entities == nil {
		cfg.Entities = &EntityArgs{}
	}
	if cfg.Entities.Timeout == "" {
		cfg.Entities.Timeout = DefaultEntityTimeout.String()
	}
	if cfg.Synonyms == nil {
		cfg.Synonyms = &SynonymArgs{}
	}
}

// Policy returns the parsed error policy.
func (cfg *Config) Policy() fault.Policy {
	p, err := fault.ParsePolicy(cfg.OnError)
	if err != nil {
		return DefaultOnErrorPolicy
	}
	return p
}

// 🔍 Validate applies defaults, normalizes paths and rejects bad values.
// It is called once the CLI has layered its flags over the file values.
func Validate(ctx context.Context, cfg *Config) error {
	cfg.ApplyDefaults()

	if strings.TrimSpace(cfg.Output) == "" {
		return errors.New("output directory is required")
	}
	cfg.Output = filepath.Clean(cfg.Output)

	if _, err := fault.ParsePolicy(cfg.OnError); err != nil {
		return errors.Errorf("on_error: %w", err)
	}

	switch strings.ToLower(cfg.StatsFormat) {
	case statsFormatText, statsFormatJSON:
		cfg.StatsFormat = strings.ToLower(cfg.StatsFormat)
	default:
		return errors.Errorf("stats_format: unknown format %q (want text or json)", cfg.StatsFormat)
	}

	if cfg.Jobs < 1 || cfg.Jobs > maxJobs {
		return errors.Errorf("jobs: must be between 1 and %d, got %d", maxJobs, cfg.Jobs)
	}

	if strings.ContainsAny(cfg.Suffix, `/\`) {
		return errors.Errorf("suffix: must not contain a path separator, got %q", cfg.Suffix)
	}
	cfg.Suffix = strings.TrimPrefix(cfg.Suffix, ".")

	timeout, err := time.ParseDuration(cfg.Entities.Timeout)
	if err != nil {
		return errors.Errorf("entities.timeout: %w", err)
	}
	if timeout <= 0 {
		return errors.Errorf("entities.timeout: must be positive, got %s", timeout)
	}
	cfg.Entities.timeout = timeout

	zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Msg("validated configuration")
	return nil
}

// 📝 String returns a one-line summary of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s -> %s (suffix=%s, concepts=%d, on_error=%s, jobs=%d)",
		cfg.Input, cfg.Output, cfg.Suffix, len(cfg.Concepts), cfg.OnError, cfg.Jobs)
}

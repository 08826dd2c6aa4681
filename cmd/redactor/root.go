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

package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/redactor/cmd/redactor/commands"
	"github.com/walteh/redactor/cmd/redactor/opts"
	"github.com/walteh/redactor/pkg/config"
	"github.com/walteh/redactor/pkg/log"
	"github.com/walteh/redactor/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// rootFlags holds the raw flag values of one command instance
type rootFlags struct {
	configFile  string
	input       string
	output      string
	concepts    []string
	stats       string
	statsFormat string
	suffix      string
	onError     string
	jobs        int
	nerURL      string
	nerTimeout  time.Duration
	gazetteer   string
	thesaurus   string
	debug       bool
}

// newRootCommand builds the redactor command. Console lines go to the
// command's stdout, structured events and reports to its stderr.
func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "redactor",
		Short: "Redact names, dates, phones, addresses and concepts from text files",
		Long: `Redactor rewrites every matched text file with sensitive spans replaced
by blocks. It will:
1. Mask names (titles, emails, person entities)
2. Mask dates
3. Mask phone numbers
4. Mask addresses (address and location entities)
5. Mask each --concept and its synonyms
and write <name>.<suffix> files into the output directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), cmd.ErrOrStderr(), flags.debug)

			cfg, err := flags.resolve(ctx, cmd)
			if err != nil {
				return err
			}

			logger := log.New(cmd.OutOrStdout(), *zerolog.Ctx(ctx))
			ctx = log.NewContext(ctx, logger)

			reports := &operation.ReportWriter{Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}
			return commands.Redact(ctx, &opts.RootOpts{Config: cfg}, reports)
		},
	}

	addRootFlags(cmd, flags)
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// addRootFlags registers the run flags on cmd
func addRootFlags(cmd *cobra.Command, f *rootFlags) {
	fs := cmd.Flags()
	fs.StringVarP(&f.configFile, "config", "c", "", "config file path (.json, .yaml, .yml or .hcl)")
	fs.StringVarP(&f.input, "input", "i", config.DefaultInput, "glob of input files (supports **)")
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.StringArrayVar(&f.concepts, "concept", nil, "concept to redact, repeatable")
	fs.StringVar(&f.stats, "stats", "", "stats destination: stdout, stderr or a file path")
	fs.StringVar(&f.statsFormat, "stats-format", config.DefaultStatsFormat, "stats format: text or json")
	fs.StringVar(&f.suffix, "suffix", config.DefaultSuffix, "extension appended to output names")
	fs.StringVar(&f.onError, "on-error", string(config.DefaultOnErrorPolicy), "per-file failure policy: skip or abort")
	fs.IntVarP(&f.jobs, "jobs", "j", config.DefaultJobs, "number of files redacted concurrently")
	fs.StringVar(&f.nerURL, "ner-url", "", "base URL of the entity recognition sidecar")
	fs.DurationVar(&f.nerTimeout, "ner-timeout", config.DefaultEntityTimeout, "per-document entity request timeout")
	fs.StringVar(&f.gazetteer, "gazetteer", "", "file of known person, location and address phrases")
	fs.StringVar(&f.thesaurus, "thesaurus", "", "file of synonyms used for concept expansion")
	fs.BoolVarP(&f.debug, "debug", "d", false, "enable debug logging")
}

// resolve loads the config file if one is given, layers explicitly set
// flags over it and validates the result.
func (f *rootFlags) resolve(ctx context.Context, cmd *cobra.Command) (*config.Config, error) {
	cfg := &config.Config{}
	if f.configFile != "" {
		loaded, err := config.LoadConfig(ctx, f.configFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	cfg.ApplyDefaults()

	changed := cmd.Flags().Changed
	if changed("input") {
		cfg.Input = f.input
	}
	if changed("output") {
		cfg.Output = f.output
	}
	if changed("stats") {
		cfg.Stats = f.stats
	}
	if changed("stats-format") {
		cfg.StatsFormat = f.statsFormat
	}
	if changed("suffix") {
		cfg.Suffix = f.suffix
	}
	if changed("on-error") {
		cfg.OnError = f.onError
	}
	if changed("jobs") {
		cfg.Jobs = f.jobs
	}
	if changed("ner-url") {
		cfg.Entities.Endpoint = f.nerURL
	}
	if changed("ner-timeout") {
		cfg.Entities.Timeout = f.nerTimeout.String()
	}
	if changed("gazetteer") {
		cfg.Entities.Gazetteer = f.gazetteer
	}
	if changed("thesaurus") {
		cfg.Synonyms.Thesaurus = f.thesaurus
	}
	cfg.Concepts = append(cfg.Concepts, f.concepts...)

	if err := config.Validate(ctx, cfg); err != nil {
		return nil, errors.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// setupLogging attaches a console zerolog logger writing to w. Warnings
// and errors only, unless debug is set.
func setupLogging(ctx context.Context, w io.Writer, debug bool) context.Context {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: w != os.Stderr}).
		Level(level).
		With().Timestamp().
		Logger()
	return logger.WithContext(ctx)
}

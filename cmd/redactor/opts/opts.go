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

package opts

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/redactor/pkg/config"
	"github.com/walteh/redactor/pkg/entity"
	"github.com/walteh/redactor/pkg/entity/gazetteer"
	"github.com/walteh/redactor/pkg/entity/ner"
	"github.com/walteh/redactor/pkg/synonym"
	"github.com/walteh/redactor/pkg/synonym/thesaurus"
	"gitlab.com/tozd/go/errors"
)

// 🎯 RootOpts holds what every command needs
type RootOpts struct {
	// Config is the validated run configuration
	Config *config.Config
}

// 🧠 Annotator builds the entity capability from the config: the NER
// sidecar when an endpoint is set, the gazetteer when a file is set, both
// when both are set, and entity.Nop otherwise.
func (o *RootOpts) Annotator(ctx context.Context) (entity.Annotator, error) {
	logger := zerolog.Ctx(ctx)
	args := o.Config.Entities
	if args == nil {
		return entity.Nop, nil
	}

	var annotators []entity.Annotator
	if args.Endpoint != "" {
		annotators = append(annotators, ner.New(args.Endpoint, ner.WithTimeout(args.RequestTimeout())))
		logger.Debug().Str("endpoint", args.Endpoint).Dur("timeout", args.RequestTimeout()).Msg("using ner sidecar")
	}
	if args.Gazetteer != "" {
		g, err := gazetteer.Load(args.Gazetteer)
		if err != nil {
			return nil, errors.Errorf("loading gazetteer: %w", err)
		}
		annotators = append(annotators, g)
		logger.Debug().Str("path", args.Gazetteer).Int("phrases", g.Len()).Msg("using gazetteer")
	}

	return entity.Multi(annotators...), nil
}

// 📖 Expander builds the synonym capability: the thesaurus file when one is
// configured, synonym.Nop otherwise.
func (o *RootOpts) Expander(ctx context.Context) (synonym.Expander, error) {
	args := o.Config.Synonyms
	if args == nil || args.Thesaurus == "" {
		return synonym.Nop, nil
	}

	t, err := thesaurus.Load(args.Thesaurus)
	if err != nil {
		return nil, errors.Errorf("loading thesaurus: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Str("path", args.Thesaurus).Int("words", t.Len()).Msg("using thesaurus")
	return t, nil
}

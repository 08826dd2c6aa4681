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

// Package synonym defines the synonym-expansion capability used by the
// concept detector. The returned forms are opaque: callers match them
// exactly as given.
package synonym

import (
	"context"
)

// 🔌 Expander maps a word to related surface forms
type Expander interface {
	Expand(ctx context.Context, word string) ([]string, error)
}

// ExpanderFunc adapts a function to the Expander interface.
type ExpanderFunc func(ctx context.Context, word string) ([]string, error)

// Expand calls f.
func (f ExpanderFunc) Expand(ctx context.Context, word string) ([]string, error) {
	return f(ctx, word)
}

// Nop expands nothing.
var Nop Expander = ExpanderFunc(func(context.Context, string) ([]string, error) {
	return nil, nil
})

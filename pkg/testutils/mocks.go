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

// Package testutils holds shared test doubles for the capability
// interfaces and a logger-carrying context.
package testutils

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/walteh/redactor/pkg/entity"
	"github.com/walteh/redactor/pkg/synonym"
)

// Context returns a background context carrying a test logger.
func Context(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t)).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	return logger.WithContext(context.Background())
}

// 🎭 MockAnnotator is a testify mock of entity.Annotator
type MockAnnotator struct {
	mock.Mock
}

var _ entity.Annotator = (*MockAnnotator)(nil)

// NewMockAnnotator creates a mock that asserts its expectations on cleanup.
func NewMockAnnotator(t *testing.T) *MockAnnotator {
	m := &MockAnnotator{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAnnotator) Annotate(ctx context.Context, text string) ([]entity.Entity, error) {
	args := m.Called(ctx, text)
	ents, _ := args.Get(0).([]entity.Entity)
	return ents, args.Error(1)
}

// 🎭 MockExpander is a testify mock of synonym.Expander
type MockExpander struct {
	mock.Mock
}

var _ synonym.Expander = (*MockExpander)(nil)

// NewMockExpander creates a mock that asserts its expectations on cleanup.
func NewMockExpander(t *testing.T) *MockExpander {
	m := &MockExpander{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockExpander) Expand(ctx context.Context, word string) ([]string, error) {
	args := m.Called(ctx, word)
	forms, _ := args.Get(0).([]string)
	return forms, args.Error(1)
}

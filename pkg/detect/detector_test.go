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

package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/redactor/pkg/entity"
	"github.com/walteh/redactor/pkg/fault"
	"github.com/walteh/redactor/pkg/span"
	"github.com/walteh/redactor/pkg/testutils"
	"gitlab.com/tozd/go/errors"
)

func texts(matches []span.Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Text
	}
	return out
}

func mustDetector(t *testing.T, fn func() (*PatternDetector, error)) *PatternDetector {
	t.Helper()
	d, err := fn()
	require.NoError(t, err)
	return d
}

func TestNameDetector(t *testing.T) {
	ctx := testutils.Context(t)
	d := mustDetector(t, NewNameDetector)
	assert.Equal(t, span.CategoryName, d.Category())
	assert.Equal(t, NameLabels, d.Labels())

	doc := NewDocument("names.txt", "Mr. John Doe went to the store. Contact him at john.doe@example.com.", nil, nil, nil)
	matches, err := d.Detect(ctx, doc)
	require.NoError(t, err)

	assert.Equal(t, []string{"Mr. John Doe", "John Doe", "john.doe@example.com"}, texts(matches))
	assert.Equal(t, span.Span{Start: 0, End: 12}, matches[0].Span)
	assert.Equal(t, span.Span{Start: 4, End: 12}, matches[1].Span)
	assert.Equal(t, span.Span{Start: 47, End: 67}, matches[2].Span)
	for _, m := range matches {
		assert.Equal(t, span.CategoryName, m.Category)
	}
	assert.Equal(t, doc.Original, doc.Text, "detect does not modify the document")
}

func TestNameDetectorCapitalizedRuns(t *testing.T) {
	ctx := testutils.Context(t)
	d := mustDetector(t, NewNameDetector)

	doc := NewDocument("runs.txt", "Hello, my name is John Doe and I met with Alice Wonderland yesterday.", nil, nil, nil)
	matches, err := d.Detect(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"John Doe", "Alice Wonderland"}, texts(matches))
}

func TestNameDetectorEntities(t *testing.T) {
	ctx := testutils.Context(t)
	annotator := testutils.NewMockAnnotator(t)
	text := "acme corp hired jane."
	annotator.On("Annotate", mock.Anything, text).Return([]entity.Entity{
		{Label: entity.LabelOrg, Start: 0, End: 9, Text: "acme corp"},
		{Label: entity.LabelGPE, Start: 16, End: 20, Text: "jane"},
		{Label: entity.LabelPerson, Start: 16, End: 20, Text: "jane"},
		{Label: entity.LabelPerson, Start: 18, End: 99, Text: "out of range"},
	}, nil).Once()

	d := mustDetector(t, NewNameDetector)
	doc := NewDocument("ents.txt", text, nil, nil, annotator)
	matches, err := d.Detect(ctx, doc)
	require.NoError(t, err)

	assert.Equal(t, []string{"acme corp", "jane"}, texts(matches), "only allowed labels with valid ranges")
	assert.Equal(t, span.Span{Start: 16, End: 20}, matches[1].Span)
}

func TestEntitiesAreCachedPerDocument(t *testing.T) {
	ctx := testutils.Context(t)
	annotator := testutils.NewMockAnnotator(t)
	text := "Paris on Monday"
	annotator.On("Annotate", mock.Anything, text).Return([]entity.Entity{
		{Label: entity.LabelGPE, Start: 0, End: 5, Text: "Paris"},
		{Label: entity.LabelDate, Start: 9, End: 15, Text: "Monday"},
	}, nil).Once()

	doc := NewDocument("cache.txt", text, nil, nil, annotator)
	dates := mustDetector(t, NewDateDetector)
	addresses := mustDetector(t, NewAddressDetector)

	got, err := dates.Detect(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Monday"}, texts(got))

	doc.Text = "█████ on Monday"
	got, err = addresses.Detect(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Paris"}, texts(got), "entities come from the original text")
}

func TestAnnotationFailure(t *testing.T) {
	ctx := testutils.Context(t)
	annotator := testutils.NewMockAnnotator(t)
	annotator.On("Annotate", mock.Anything, mock.Anything).Return(nil, errors.New("sidecar down"))

	d := mustDetector(t, NewNameDetector)
	_, err := d.Detect(ctx, NewDocument("fail.txt", "John Doe", nil, nil, annotator))
	require.Error(t, err)
	assert.ErrorIs(t, err, fault.ErrAnnotation)
	assert.Contains(t, err.Error(), "sidecar down")
}

func TestDateDetector(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "month_day_year", text: "The meeting is scheduled for Jan 15, 2024.", want: "Jan 15, 2024"},
		{name: "full_month_ordinal", text: "Born on March 3rd 1999 at home", want: "March 3rd 1999"},
		{name: "lowercase_month", text: "due september 30, 2021", want: "september 30, 2021"},
		{name: "day_month_year_numeric", text: "Invoice dated 25/12/2023.", want: "25/12/2023"},
		{name: "two_digit_year", text: "Shipped 1-2-23 ok", want: "1-2-23"},
		{name: "year_month_day", text: "Logged 2023-12-25 by ops", want: "2023-12-25"},
		{name: "weekday_day_month_year", text: "Sent Mon, 15 Jan 2024 at noon", want: "Mon, 15 Jan 2024"},
		{name: "weekday_month_day_year", text: "On Monday, January 15th, 2024 we met", want: "Monday, January 15th, 2024"},
		{name: "bare_year", text: "Founded in 1987.", want: "1987"},
	}

	d := mustDetector(t, NewDateDetector)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, err := d.Detect(testutils.Context(t), NewDocument(tt.name, tt.text, nil, nil, nil))
			require.NoError(t, err)
			assert.Contains(t, texts(matches), tt.want)
		})
	}
}

func TestDateDetectorSkipsOtherYears(t *testing.T) {
	d := mustDetector(t, NewDateDetector)
	matches, err := d.Detect(testutils.Context(t), NewDocument("years.txt", "Room 1850 and code 2150 and 12345", nil, nil, nil))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestPhoneDetector(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "parenthesized_area_code", text: "You can reach me at (123) 456-7890 today", want: "(123) 456-7890"},
		{name: "international_hyphens", text: "or +1-234-567-8901.", want: "+1-234-567-8901"},
		{name: "dotted", text: "call 555.123.4567 now", want: "555.123.4567"},
		{name: "spaces", text: "call 555 123 4567 now", want: "555 123 4567"},
		{name: "local_seven_digits", text: "dial 555-1234 please", want: "555-1234"},
		{name: "international_long", text: "London +44 2071234567", want: "+44 2071234567"},
	}

	d := mustDetector(t, NewPhoneDetector)
	assert.Empty(t, d.Labels(), "phones have no entity fallback")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, err := d.Detect(testutils.Context(t), NewDocument(tt.name, tt.text, nil, nil, nil))
			require.NoError(t, err)
			assert.Contains(t, texts(matches), tt.want)
		})
	}
}

func TestPhoneDetectorNeverAnnotates(t *testing.T) {
	annotator := testutils.NewMockAnnotator(t)
	d := mustDetector(t, NewPhoneDetector)
	_, err := d.Detect(testutils.Context(t), NewDocument("p.txt", "555-1234", nil, nil, annotator))
	require.NoError(t, err)
	annotator.AssertNotCalled(t, "Annotate", mock.Anything, mock.Anything)
}

func TestAddressDetector(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "street", text: "Ship to 42 Baker Street today", want: []string{"42 Baker Street"}},
		{name: "abbreviated_suffix", text: "at 1600 Pennsylvania Ave now", want: []string{"1600 Pennsylvania Ave"}},
		{name: "state_zip", text: "Springfield, IL 62704-1234", want: []string{"IL 62704-1234", "Springfield, IL"}},
		{name: "city_state", text: "moved to San Francisco, CA last year", want: []string{"San Francisco, CA"}},
	}

	d := mustDetector(t, NewAddressDetector)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, err := d.Detect(testutils.Context(t), NewDocument(tt.name, tt.text, nil, nil, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, texts(matches))
		})
	}
}

func TestMultibyteOffsets(t *testing.T) {
	d := mustDetector(t, NewNameDetector)
	doc := NewDocument("utf8.txt", "██ café — John Doe", nil, nil, nil)
	matches, err := d.Detect(testutils.Context(t), doc)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "John Doe", matches[0].Text)
	assert.Equal(t, span.Span{Start: 10, End: 18}, matches[0].Span, "offsets are in runes")
}

func TestPatternCompileError(t *testing.T) {
	_, err := NewPatternDetector(span.CategoryName, []string{`[a-z]+`, `([a-z`})
	require.Error(t, err)
	assert.ErrorIs(t, err, fault.ErrPatternCompile)
	assert.Contains(t, err.Error(), "NAME pattern 1")
}

func TestBuiltinPatternsCompile(t *testing.T) {
	for _, fn := range []func() (*PatternDetector, error){NewNameDetector, NewDateDetector, NewPhoneDetector, NewAddressDetector} {
		d, err := fn()
		require.NoError(t, err)
		assert.NotEmpty(t, d.Patterns())
	}
}

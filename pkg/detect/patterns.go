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
	"github.com/walteh/redactor/pkg/entity"
	"github.com/walteh/redactor/pkg/span"
)

// Street suffixes accepted by the street address pattern.
const streetSuffixes = `Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Lane|Ln|Drive|Dr`

const (
	monthNames = `Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|` +
		`Jul(?:y)?|Aug(?:ust)?|Sep(?:t(?:ember)?)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?`
	monthAbbrevs = `Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec`
	weekdayNames = `(?:Mon|Fri|Sun)(?:day)?|Tue(?:s(?:day)?)?|Wed(?:nesday)?|Thu(?:rs(?:day)?)?|Sat(?:urday)?`
	ordinal      = `(?:st|nd|rd|th)?`
)

// NamePatterns find honorific names, capitalized word runs and emails.
// Capitalized runs produce false positives on purpose.
var NamePatterns = []string{
	`(?i)(?:mr\.|mrs\.|ms\.|dr\.|prof\.)\s+[a-z]+(?:\s+[a-z]+)?`,
	`[A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,2}`,
	`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`,
}

// DatePatterns are matched case-insensitively.
var DatePatterns = []string{
	`(?i)\b\d{1,2}[-/]\d{1,2}[-/]\d{2,4}\b`,
	`(?i)\b(?:` + monthNames + `)\s+\d{1,2}` + ordinal + `,?\s+\d{4}\b`,
	`(?i)\b(?:` + weekdayNames + `),?\s?\d{1,2}\s(?:` + monthAbbrevs + `)\s\d{4}\b`,
	`(?i)\b(?:` + weekdayNames + `),?\s+(?:` + monthNames + `)\s+\d{1,2}` + ordinal + `,?\s+\d{4}\b`,
	`(?i)\b\d{4}[-/]\d{1,2}[-/]\d{1,2}\b`,
	`(?i)\b(?:19|20)\d{2}\b`,
}

// PhonePatterns cover international, domestic and local numbers.
var PhonePatterns = []string{
	`(?:\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`,
	`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`,
	`\b\d{3}[-.\s]?\d{4}\b`,
	`\+\d{1,3}\s?\d{10,}`,
}

// AddressPatterns cover street lines, state + ZIP and "City, ST".
var AddressPatterns = []string{
	`\d+\s+[A-Za-z0-9\s,]+(?:` + streetSuffixes + `)\b`,
	`\b[A-Z]{2}\s+\d{5}(?:-\d{4})?\b`,
	`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*,\s*[A-Z]{2}\b`,
}

// Entity labels each category accepts.
var (
	NameLabels    = []string{entity.LabelPerson, entity.LabelOrg}
	DateLabels    = []string{entity.LabelDate, entity.LabelTime}
	AddressLabels = []string{entity.LabelGPE, entity.LabelLocation, entity.LabelFacility}
)

// NewNameDetector detects people, organizations and email addresses.
func NewNameDetector() (*PatternDetector, error) {
	return NewPatternDetector(span.CategoryName, NamePatterns, NameLabels...)
}

// NewDateDetector detects numeric and written dates and bare years.
func NewDateDetector() (*PatternDetector, error) {
	return NewPatternDetector(span.CategoryDate, DatePatterns, DateLabels...)
}

// NewPhoneDetector detects phone numbers. The entity model has no phone
// label, so no entities are consulted.
func NewPhoneDetector() (*PatternDetector, error) {
	return NewPatternDetector(span.CategoryPhone, PhonePatterns)
}

// NewAddressDetector detects street addresses, ZIP codes and places.
func NewAddressDetector() (*PatternDetector, error) {
	return NewPatternDetector(span.CategoryAddress, AddressPatterns, AddressLabels...)
}

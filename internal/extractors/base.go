// Package extractors implements the field-level text→value parsers of spec
// §4.3: single-purpose extractors for year, price, mileage, model+trim,
// colors, and source, aggregated by a static registry and a unified
// combiner, the Go counterpart of
// original_source/x987-app/x987/extractors/*.py.
package extractors

import (
	"regexp"

	"github.com/rkaplan/x987scout/internal/models"
)

// Matcher processes a single regex match into a typed value, or returns
// (zero, false) to keep searching later patterns. ctx carries extractor
// inputs that aren't part of the matched text itself (e.g. a URL for the
// source extractor).
type Matcher[T any] func(m []string, raw string, ctx map[string]string) (T, bool)

// FieldExtractor is a compiled set of case-insensitive patterns tried in
// order against a text, the Go shape of BaseExtractor.extract: the first
// pattern whose processed match succeeds wins.
type FieldExtractor[T any] struct {
	field    string
	patterns []string
	compiled []*regexp.Regexp
	process  Matcher[T]
}

func newFieldExtractor[T any](field string, patterns []string, process Matcher[T]) *FieldExtractor[T] {
	fe := &FieldExtractor[T]{field: field, patterns: patterns, process: process}
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			continue
		}
		fe.compiled = append(fe.compiled, re)
	}
	return fe
}

// FieldName returns the field this extractor handles.
func (fe *FieldExtractor[T]) FieldName() string { return fe.field }

// Extract runs the compiled patterns over text in order, returning the
// first successfully processed match as an ExtractionResult.
func (fe *FieldExtractor[T]) Extract(text string, ctx map[string]string) *models.ExtractionResult[T] {
	if text == "" {
		return nil
	}
	for i, re := range fe.compiled {
		loc := re.FindStringSubmatch(text)
		if loc == nil {
			continue
		}
		value, ok := fe.process(loc, loc[0], ctx)
		if !ok {
			continue
		}
		return &models.ExtractionResult[T]{
			Value:         value,
			Confidence:    1.0,
			SourcePattern: fe.patterns[i],
			RawMatch:      loc[0],
		}
	}
	return nil
}

// Package mock provides hand-written mocks for paperparse interfaces.
package mock

import (
	"context"

	"github.com/kmitrowski/paperparse"
)

var _ paperparse.StructuredExtractor = (*StructuredExtractor)(nil)

// StructuredExtractor is a mock implementation of paperparse.StructuredExtractor.
type StructuredExtractor struct {
	ProcessFulltextFn func(ctx context.Context, filename string, data []byte) (string, error)
}

func (e *StructuredExtractor) ProcessFulltext(ctx context.Context, filename string, data []byte) (string, error) {
	return e.ProcessFulltextFn(ctx, filename, data)
}

var _ paperparse.MarkupExtractor = (*MarkupExtractor)(nil)

// MarkupExtractor is a mock implementation of paperparse.MarkupExtractor.
type MarkupExtractor struct {
	ExtractFn func(markup string) (paperparse.Fields, error)
}

func (e *MarkupExtractor) Extract(markup string) (paperparse.Fields, error) {
	return e.ExtractFn(markup)
}

var _ paperparse.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of paperparse.TextExtractor.
type TextExtractor struct {
	ExtractFn func(data []byte) (paperparse.Fields, error)
}

func (e *TextExtractor) Extract(data []byte) (paperparse.Fields, error) {
	return e.ExtractFn(data)
}

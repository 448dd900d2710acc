// Package slog provides logging decorators for paperparse services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/kmitrowski/paperparse"
)

// Ensure LoggingStructuredExtractor implements paperparse.StructuredExtractor.
var _ paperparse.StructuredExtractor = (*LoggingStructuredExtractor)(nil)

// LoggingStructuredExtractor wraps a StructuredExtractor with debug logging.
type LoggingStructuredExtractor struct {
	next   paperparse.StructuredExtractor
	logger *slog.Logger
}

// NewLoggingStructuredExtractor creates a new LoggingStructuredExtractor.
func NewLoggingStructuredExtractor(next paperparse.StructuredExtractor, logger *slog.Logger) *LoggingStructuredExtractor {
	return &LoggingStructuredExtractor{next: next, logger: logger}
}

// ProcessFulltext logs the document being processed and delegates to the
// wrapped extractor.
func (e *LoggingStructuredExtractor) ProcessFulltext(ctx context.Context, filename string, data []byte) (markup string, err error) {
	defer func(begin time.Time) {
		e.logger.Info("structured extraction",
			"file", filename,
			"bytes", len(data),
			"markup_bytes", len(markup),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ProcessFulltext(ctx, filename, data)
}

// Ensure LoggingTextExtractor implements paperparse.TextExtractor.
var _ paperparse.TextExtractor = (*LoggingTextExtractor)(nil)

// LoggingTextExtractor wraps a TextExtractor with debug logging.
type LoggingTextExtractor struct {
	next   paperparse.TextExtractor
	logger *slog.Logger
}

// NewLoggingTextExtractor creates a new LoggingTextExtractor.
func NewLoggingTextExtractor(next paperparse.TextExtractor, logger *slog.Logger) *LoggingTextExtractor {
	return &LoggingTextExtractor{next: next, logger: logger}
}

// Extract logs the extraction outcome and delegates to the wrapped extractor.
func (e *LoggingTextExtractor) Extract(data []byte) (fields paperparse.Fields, err error) {
	defer func(begin time.Time) {
		e.logger.Info("text extraction",
			"bytes", len(data),
			"text_bytes", len(fields.Body),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(data)
}

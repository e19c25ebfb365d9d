// Package slog provides log/slog decorators for resumekit services.
package slog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/resumekit"
)

// Ensure LoggingExtractor implements resumekit.Extractor.
var _ resumekit.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging. Document content is
// never logged; a content hash identifies repeated uploads.
type LoggingExtractor struct {
	next   resumekit.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next resumekit.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(ctx context.Context, doc *resumekit.UploadedDocument) (text string, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract",
			"name", doc.Name,
			"format", doc.Format().String(),
			"bytes", len(doc.Data),
			"hash", fmt.Sprintf("%016x", xxhash.Sum64(doc.Data)),
			"chars", len(text),
			"duration", time.Since(begin),
			"code", resumekit.ErrorCode(err),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(ctx, doc)
}

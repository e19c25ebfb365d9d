package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/resumekit"
)

// Ensure LoggingComposer implements resumekit.Composer.
var _ resumekit.Composer = (*LoggingComposer)(nil)

// LoggingComposer wraps a Composer with logging.
type LoggingComposer struct {
	next   resumekit.Composer
	logger *slog.Logger
}

// NewLoggingComposer creates a new LoggingComposer.
func NewLoggingComposer(next resumekit.Composer, logger *slog.Logger) *LoggingComposer {
	return &LoggingComposer{next: next, logger: logger}
}

// Compose delegates to the wrapped composer and logs the operation.
func (c *LoggingComposer) Compose(ctx context.Context, content string) (doc *resumekit.PDFDocument, err error) {
	defer func(begin time.Time) {
		attrs := []any{"chars", len(content)}
		if doc != nil {
			attrs = append(attrs, "id", doc.ID, "pages", doc.PageCount, "bytes", len(doc.Data), "filename", doc.Filename)
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		c.logger.Info("compose", attrs...)
	}(time.Now())
	return c.next.Compose(ctx, content)
}

// Ensure LoggingRenderer implements resumekit.Renderer.
var _ resumekit.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer with debug logging.
type LoggingRenderer struct {
	next   resumekit.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next resumekit.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// RenderPDF delegates to the wrapped renderer and logs the operation.
func (r *LoggingRenderer) RenderPDF(ctx context.Context, html string, size resumekit.PageSize) (data []byte, err error) {
	defer func(begin time.Time) {
		r.logger.Debug("render pdf",
			"html_bytes", len(html),
			"width", size.Width,
			"height", size.Height,
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.RenderPDF(ctx, html, size)
}

// Close delegates to the wrapped renderer.
func (r *LoggingRenderer) Close() error {
	return r.next.Close()
}

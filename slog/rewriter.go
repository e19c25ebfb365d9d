package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/resumekit"
)

// Ensure LoggingRewriter implements resumekit.Rewriter.
var _ resumekit.Rewriter = (*LoggingRewriter)(nil)

// LoggingRewriter wraps a Rewriter with logging.
type LoggingRewriter struct {
	next   resumekit.Rewriter
	logger *slog.Logger
}

// NewLoggingRewriter creates a new LoggingRewriter.
func NewLoggingRewriter(next resumekit.Rewriter, logger *slog.Logger) *LoggingRewriter {
	return &LoggingRewriter{next: next, logger: logger}
}

// Rewrite delegates to the wrapped rewriter and logs the operation.
func (r *LoggingRewriter) Rewrite(ctx context.Context, content, instructions string) (out string, err error) {
	defer func(begin time.Time) {
		r.logger.Info("rewrite",
			"chars_in", len(content),
			"chars_out", len(out),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Rewrite(ctx, content, instructions)
}

package slog

import (
	"log/slog"

	"github.com/fwojciec/resumekit"
)

// Ensure LoggingSanitizer implements resumekit.Sanitizer.
var _ resumekit.Sanitizer = (*LoggingSanitizer)(nil)

// LoggingSanitizer reports every node the wrapped sanitizer blocked.
type LoggingSanitizer struct {
	next   resumekit.Sanitizer
	logger *slog.Logger
}

// NewLoggingSanitizer creates a new LoggingSanitizer.
func NewLoggingSanitizer(next resumekit.Sanitizer, logger *slog.Logger) *LoggingSanitizer {
	return &LoggingSanitizer{next: next, logger: logger}
}

// Sanitize delegates and logs one warning per blocked node.
func (s *LoggingSanitizer) Sanitize(src string) *resumekit.SanitizedDocument {
	doc := s.next.Sanitize(src)
	for _, b := range doc.Blocked {
		s.logger.Warn(resumekit.UnsafeContentBlocked,
			"kind", string(b.Kind),
			"tag", b.Tag,
			"url", b.URL,
			"reason", b.Reason,
		)
	}
	return doc
}

package goldmark

import (
	"strings"

	"github.com/fwojciec/resumekit"
)

// Ensure Sanitizer implements resumekit.Sanitizer at compile time.
var _ resumekit.Sanitizer = (*Sanitizer)(nil)

// Sanitizer parses markdown and filters the tree for display.
type Sanitizer struct {
	parser resumekit.MarkupParser
}

// NewSanitizer creates a Sanitizer backed by a new Parser.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{parser: NewParser()}
}

// Sanitize returns the display-safe tree for src. Empty input yields an
// empty tree.
func (s *Sanitizer) Sanitize(src string) *resumekit.SanitizedDocument {
	if strings.TrimSpace(src) == "" {
		return resumekit.Sanitize(nil)
	}
	root, err := s.parser.Parse(src)
	if err != nil {
		return resumekit.Sanitize(nil)
	}
	return resumekit.Sanitize(root)
}

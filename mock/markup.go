package mock

import "github.com/fwojciec/resumekit"

var _ resumekit.MarkupParser = (*MarkupParser)(nil)

// MarkupParser is a mock implementation of resumekit.MarkupParser.
type MarkupParser struct {
	ParseFn func(src string) (*resumekit.Node, error)
}

func (p *MarkupParser) Parse(src string) (*resumekit.Node, error) {
	return p.ParseFn(src)
}

var _ resumekit.Sanitizer = (*Sanitizer)(nil)

// Sanitizer is a mock implementation of resumekit.Sanitizer.
type Sanitizer struct {
	SanitizeFn func(src string) *resumekit.SanitizedDocument
}

func (s *Sanitizer) Sanitize(src string) *resumekit.SanitizedDocument {
	return s.SanitizeFn(src)
}

var _ resumekit.MarkupRenderer = (*MarkupRenderer)(nil)

// MarkupRenderer is a mock implementation of resumekit.MarkupRenderer.
type MarkupRenderer struct {
	RenderFn func(doc *resumekit.SanitizedDocument) (string, error)
}

func (r *MarkupRenderer) Render(doc *resumekit.SanitizedDocument) (string, error) {
	return r.RenderFn(doc)
}

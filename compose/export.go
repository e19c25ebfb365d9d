package compose

import (
	"github.com/fwojciec/resumekit"
)

// MarkdownExporter produces the downloadable markdown of resume content
// with unsafe links, images and markup removed.
type MarkdownExporter struct {
	sanitizer resumekit.Sanitizer
	renderer  resumekit.MarkupRenderer
	converter resumekit.Converter
}

// NewMarkdownExporter creates a MarkdownExporter.
func NewMarkdownExporter(sanitizer resumekit.Sanitizer, renderer resumekit.MarkupRenderer, converter resumekit.Converter) *MarkdownExporter {
	return &MarkdownExporter{sanitizer: sanitizer, renderer: renderer, converter: converter}
}

// Export returns the sanitized markdown of src. Empty or fully blocked
// input exports as an empty string.
func (e *MarkdownExporter) Export(src string) (string, error) {
	doc := e.sanitizer.Sanitize(src)
	if doc.Empty() {
		return "", nil
	}
	html, err := e.renderer.Render(doc)
	if err != nil {
		return "", err
	}
	if html == "" {
		return "", nil
	}
	return e.converter.Convert(html)
}

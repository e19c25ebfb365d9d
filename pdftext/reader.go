// Package pdftext reads the plain text of PDF pages with
// github.com/ledongthuc/pdf.
package pdftext

import (
	"bytes"

	"github.com/fwojciec/resumekit"
	"github.com/ledongthuc/pdf"
)

// Ensure Reader implements resumekit.PageTextReader at compile time.
var _ resumekit.PageTextReader = (*Reader)(nil)

// Reader extracts per-page text.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// PageTexts returns one string per page, in page order. Pages without
// extractable text yield an empty string.
func (r *Reader) PageTexts(data []byte) (texts []string, err error) {
	// The parser panics on some malformed inputs.
	defer func() {
		if p := recover(); p != nil {
			texts, err = nil, resumekit.Errorf(resumekit.EMALFORMED, "The PDF could not be read.")
		}
	}()

	pr, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, resumekit.Errorf(resumekit.EMALFORMED, "The PDF could not be read.")
	}

	n := pr.NumPage()
	fonts := make(map[string]*pdf.Font)
	texts = make([]string, 0, n)
	for i := 1; i <= n; i++ {
		p := pr.Page(i)
		if p.V.IsNull() {
			texts = append(texts, "")
			continue
		}
		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; ok {
				continue
			}
			f := p.Font(name)
			fonts[name] = &f
		}
		text, err := p.GetPlainText(fonts)
		if err != nil {
			texts = append(texts, "")
			continue
		}
		texts = append(texts, text)
	}
	return texts, nil
}

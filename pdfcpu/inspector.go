// Package pdfcpu validates composed PDFs and counts their pages with
// github.com/pdfcpu/pdfcpu.
package pdfcpu

import (
	"bytes"
	"fmt"

	"github.com/fwojciec/resumekit"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Ensure Inspector implements resumekit.PDFInspector at compile time.
var _ resumekit.PDFInspector = (*Inspector)(nil)

// Inspector checks PDFs produced by a renderer.
type Inspector struct {
	conf *model.Configuration
}

// NewInspector creates an Inspector using relaxed validation, which
// accepts the minor deviations browsers emit.
func NewInspector() *Inspector {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Inspector{conf: conf}
}

// PageCount validates data and returns its number of pages.
func (i *Inspector) PageCount(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, resumekit.Errorf(resumekit.EMALFORMED, "The PDF is empty.")
	}
	if err := api.Validate(bytes.NewReader(data), i.conf); err != nil {
		return 0, resumekit.Errorf(resumekit.EMALFORMED, "The PDF is not valid: %s", err)
	}
	n, err := api.PageCount(bytes.NewReader(data), i.conf)
	if err != nil {
		return 0, fmt.Errorf("count pages: %w", err)
	}
	return n, nil
}

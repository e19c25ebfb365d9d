// Package extract routes uploaded documents to format-specific extractors.
package extract

import (
	"context"

	"github.com/fwojciec/resumekit"
	"golang.org/x/sync/errgroup"
)

// LegacyWordMessage is returned for .doc uploads.
const LegacyWordMessage = "Legacy .doc files are not supported. Please convert the file to .docx or PDF first."

// Ensure Router implements resumekit.Extractor at compile time.
var _ resumekit.Extractor = (*Router)(nil)

// Router classifies an upload once and hands it to the extractor
// registered for its format. Adding a format means adding a
// resumekit.Format variant and a field here.
type Router struct {
	PlainText   resumekit.Extractor
	WordPackage resumekit.Extractor
	PDF         resumekit.Extractor
}

// Extract classifies doc and dispatches it.
func (r *Router) Extract(ctx context.Context, doc *resumekit.UploadedDocument) (string, error) {
	if err := doc.Validate(); err != nil {
		return "", err
	}

	format := doc.Format()
	var next resumekit.Extractor
	switch format {
	case resumekit.FormatPlainText:
		next = r.PlainText
	case resumekit.FormatWordPackage:
		next = r.WordPackage
	case resumekit.FormatPDF:
		next = r.PDF
	case resumekit.FormatLegacyWord:
		return "", resumekit.Errorf(resumekit.EUNSUPPORTED, LegacyWordMessage)
	default:
		return "", resumekit.Errorf(resumekit.EUNSUPPORTED,
			"Unsupported file type %q (%s). Please upload a .txt, .docx or .pdf file.", doc.MediaType, doc.Name)
	}

	if next == nil {
		return "", resumekit.Errorf(resumekit.EUNSUPPORTED, "%s extraction is not available", format)
	}
	return next.Extract(ctx, doc)
}

// Result is the outcome of extracting one document in a batch.
type Result struct {
	Name string
	Text string
	Err  error
}

// ExtractAll extracts docs concurrently, at most concurrency at a time.
// Results are returned in input order; one failure does not cancel the
// others.
func ExtractAll(ctx context.Context, ext resumekit.Extractor, docs []*resumekit.UploadedDocument, concurrency int) []Result {
	if concurrency <= 0 {
		concurrency = 4
	}

	results := make([]Result, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, doc := range docs {
		g.Go(func() error {
			text, err := ext.Extract(gctx, doc)
			results[i] = Result{Name: doc.Name, Text: text, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

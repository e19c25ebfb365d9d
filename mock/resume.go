package mock

import (
	"context"

	"github.com/fwojciec/resumekit"
)

var _ resumekit.ResumeParser = (*ResumeParser)(nil)

// ResumeParser is a mock implementation of resumekit.ResumeParser.
type ResumeParser struct {
	ParseResumeFn func(content string) (*resumekit.Resume, error)
}

func (p *ResumeParser) ParseResume(content string) (*resumekit.Resume, error) {
	return p.ParseResumeFn(content)
}

var _ resumekit.LayoutEngine = (*LayoutEngine)(nil)

// LayoutEngine is a mock implementation of resumekit.LayoutEngine.
type LayoutEngine struct {
	LayoutFn func(r *resumekit.Resume) (string, error)
}

func (e *LayoutEngine) Layout(r *resumekit.Resume) (string, error) {
	return e.LayoutFn(r)
}

var _ resumekit.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of resumekit.Renderer.
type Renderer struct {
	RenderPDFFn func(ctx context.Context, html string, size resumekit.PageSize) ([]byte, error)
	CloseFn     func() error
}

func (r *Renderer) RenderPDF(ctx context.Context, html string, size resumekit.PageSize) ([]byte, error) {
	return r.RenderPDFFn(ctx, html, size)
}

func (r *Renderer) Close() error {
	return r.CloseFn()
}

var _ resumekit.PDFInspector = (*PDFInspector)(nil)

// PDFInspector is a mock implementation of resumekit.PDFInspector.
type PDFInspector struct {
	PageCountFn func(data []byte) (int, error)
}

func (i *PDFInspector) PageCount(data []byte) (int, error) {
	return i.PageCountFn(data)
}

var _ resumekit.PageTextReader = (*PageTextReader)(nil)

// PageTextReader is a mock implementation of resumekit.PageTextReader.
type PageTextReader struct {
	PageTextsFn func(data []byte) ([]string, error)
}

func (r *PageTextReader) PageTexts(data []byte) ([]string, error) {
	return r.PageTextsFn(data)
}

var _ resumekit.Composer = (*Composer)(nil)

// Composer is a mock implementation of resumekit.Composer.
type Composer struct {
	ComposeFn func(ctx context.Context, content string) (*resumekit.PDFDocument, error)
}

func (c *Composer) Compose(ctx context.Context, content string) (*resumekit.PDFDocument, error) {
	return c.ComposeFn(ctx, content)
}

var _ resumekit.Rewriter = (*Rewriter)(nil)

// Rewriter is a mock implementation of resumekit.Rewriter.
type Rewriter struct {
	RewriteFn func(ctx context.Context, content, instructions string) (string, error)
}

func (r *Rewriter) Rewrite(ctx context.Context, content, instructions string) (string, error) {
	return r.RewriteFn(ctx, content, instructions)
}

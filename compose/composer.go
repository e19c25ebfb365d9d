// Package compose turns resume content into PDF documents by chaining a
// parser, a layout engine, a renderer and an inspector.
package compose

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/resumekit"
	"github.com/google/uuid"
)

// Ensure Composer implements resumekit.Composer at compile time.
var _ resumekit.Composer = (*Composer)(nil)

// Composer produces a new PDFDocument for every call; documents are
// never updated in place.
type Composer struct {
	parser    resumekit.ResumeParser
	layout    resumekit.LayoutEngine
	renderer  resumekit.Renderer
	inspector resumekit.PDFInspector
	size      resumekit.PageSize
	now       func() time.Time
	newID     func() string
}

// Option configures a Composer.
type Option func(*Composer)

// WithPageSize sets the paper size passed to the renderer.
// Defaults to resumekit.A4.
func WithPageSize(s resumekit.PageSize) Option {
	return func(c *Composer) {
		c.size = s
	}
}

// WithClock overrides the clock used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(c *Composer) {
		c.now = now
	}
}

// WithIDs overrides the document ID generator.
func WithIDs(newID func() string) Option {
	return func(c *Composer) {
		c.newID = newID
	}
}

// NewComposer creates a Composer.
func NewComposer(
	parser resumekit.ResumeParser,
	layout resumekit.LayoutEngine,
	renderer resumekit.Renderer,
	inspector resumekit.PDFInspector,
	opts ...Option,
) *Composer {
	c := &Composer{
		parser:    parser,
		layout:    layout,
		renderer:  renderer,
		inspector: inspector,
		size:      resumekit.A4,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose parses content, lays it out, prints it and checks the result.
func (c *Composer) Compose(ctx context.Context, content string) (*resumekit.PDFDocument, error) {
	r, err := c.parser.ParseResume(content)
	if err != nil {
		return nil, err
	}
	return c.ComposeResume(ctx, r)
}

// ComposeResume composes an already parsed resume.
func (c *Composer) ComposeResume(ctx context.Context, r *resumekit.Resume) (*resumekit.PDFDocument, error) {
	html, err := c.layout.Layout(r)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	data, err := c.renderer.RenderPDF(ctx, html, c.size)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	pages, err := c.inspector.PageCount(data)
	if err != nil {
		return nil, fmt.Errorf("inspect: %w", err)
	}

	return &resumekit.PDFDocument{
		ID:        c.newID(),
		Data:      data,
		PageCount: pages,
		Filename:  resumekit.PDFFilename(r.FullName),
		CreatedAt: c.now(),
	}, nil
}

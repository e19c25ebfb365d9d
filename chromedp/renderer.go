// Package chromedp prints HTML documents to PDF with a headless Chrome
// driven by github.com/chromedp/chromedp. It is the alternative to the rod
// renderer for hosts where chromedp's allocator is preferred.
package chromedp

import (
	"context"
	"fmt"
	"sync"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/fwojciec/resumekit"
)

// Ensure Renderer implements resumekit.Renderer at compile time.
var _ resumekit.Renderer = (*Renderer)(nil)

// Renderer keeps one browser alive and prints each document in a new tab.
type Renderer struct {
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	closeOnce     sync.Once
}

// Option configures the browser allocator.
type Option func(*[]chromedp.ExecAllocatorOption)

// WithExecPath uses the Chrome binary at path.
func WithExecPath(path string) Option {
	return func(opts *[]chromedp.ExecAllocatorOption) {
		if path != "" {
			*opts = append(*opts, chromedp.ExecPath(path))
		}
	}
}

// NewRenderer starts a headless browser.
// Close must be called when the Renderer is no longer needed.
func NewRenderer(opts ...Option) (*Renderer, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	for _, opt := range opts {
		opt(&allocOpts)
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("starting browser: %w", err)
	}

	return &Renderer{
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}, nil
}

// RenderPDF loads html into a new tab and prints it on pages of the given
// size with zero printer margins.
func (r *Renderer) RenderPDF(ctx context.Context, html string, size resumekit.PageSize) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tabCtx, cancel := chromedp.NewContext(r.browserCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var buf []byte
	err := chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(size.WidthInches()).
				WithPaperHeight(size.HeightInches()).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("print to pdf: %w", err)
	}
	return buf, nil
}

// Close shuts the browser down. Close is safe to call multiple times.
func (r *Renderer) Close() error {
	r.closeOnce.Do(func() {
		r.browserCancel()
		r.allocCancel()
	})
	return nil
}

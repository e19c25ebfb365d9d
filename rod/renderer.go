package rod

import (
	"context"
	"fmt"
	"io"

	"github.com/fwojciec/resumekit"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

// Ensure Renderer implements resumekit.Renderer at compile time.
var _ resumekit.Renderer = (*Renderer)(nil)

// Renderer prints HTML documents to PDF. It is safe for concurrent use;
// each call prints in its own browser tab.
type Renderer struct {
	manager *BrowserManager
}

// NewRenderer launches a browser and returns a Renderer using it.
func NewRenderer(opts ...ManagerOption) (*Renderer, error) {
	manager, err := NewBrowserManager(opts...)
	if err != nil {
		return nil, err
	}
	return &Renderer{manager: manager}, nil
}

// RenderPDF loads html into a blank tab and prints it on pages of the given
// size with zero printer margins; page margins come from the document's
// @page rule.
func (r *Renderer) RenderPDF(ctx context.Context, html string, size resumekit.PageSize) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser := r.manager.Browser()
	if browser == nil {
		return nil, fmt.Errorf("renderer closed")
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("open tab: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait for document: %w", err)
	}

	stream, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground:   true,
		PreferCSSPageSize: true,
		PaperWidth:        gson.Num(size.WidthInches()),
		PaperHeight:       gson.Num(size.HeightInches()),
		MarginTop:         gson.Num(0),
		MarginBottom:      gson.Num(0),
		MarginLeft:        gson.Num(0),
		MarginRight:       gson.Num(0),
	})
	if err != nil {
		return nil, fmt.Errorf("print to pdf: %w", err)
	}

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	r.manager.DocumentDone()
	return data, nil
}

// Close releases browser resources.
func (r *Renderer) Close() error {
	return r.manager.Close()
}

package compose

import (
	"context"
	"errors"
	"sync"

	"github.com/fwojciec/resumekit"
)

// ErrSuperseded is returned by Previewer.Generate when a newer generation
// started before this one finished. Its output was discarded.
var ErrSuperseded = errors.New("preview superseded by a newer generation")

// Previewer keeps the latest composed preview. Starting a generation
// cancels the one in flight, and only the newest generation may publish
// its document.
type Previewer struct {
	composer resumekit.Composer

	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	current *resumekit.PDFDocument
}

// NewPreviewer creates a Previewer backed by composer.
func NewPreviewer(composer resumekit.Composer) *Previewer {
	return &Previewer{composer: composer}
}

// Generate composes content and publishes the result as the current
// preview, unless a newer generation has started meanwhile.
func (p *Previewer) Generate(ctx context.Context, content string) (*resumekit.PDFDocument, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.gen++
	gen := p.gen
	p.cancel = cancel
	p.mu.Unlock()

	doc, err := p.composer.Compose(ctx, content)

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		return nil, ErrSuperseded
	}
	p.cancel = nil
	if err != nil {
		return nil, err
	}
	p.current = doc
	return doc, nil
}

// Current returns the latest published document, or nil.
func (p *Previewer) Current() *resumekit.PDFDocument {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Package rod prints HTML documents to PDF with a headless Chrome driven by
// github.com/go-rod/rod.
package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxDocuments is the default number of rendered documents before
// the browser is recycled.
const DefaultMaxDocuments = 50

// BrowserManager owns the headless browser used for printing. Chrome's
// memory baseline grows with every page it prints, so the browser is
// replaced after maxDocuments documents.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	browser       *rod.Browser
	launcher      *launcher.Launcher
	bin           string
	documentCount int64
	maxDocuments  int64
	mu            sync.Mutex
	closed        atomic.Bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxDocuments sets how many documents are printed before the browser
// is recycled. Defaults to DefaultMaxDocuments.
func WithMaxDocuments(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxDocuments = n
	}
}

// WithBrowserBin uses the Chrome binary at path instead of letting the
// launcher find or download one.
func WithBrowserBin(path string) ManagerOption {
	return func(bm *BrowserManager) {
		bm.bin = path
	}
}

// NewBrowserManager launches a headless browser.
// Close must be called when the BrowserManager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{
		maxDocuments: DefaultMaxDocuments,
	}
	for _, opt := range opts {
		opt(bm)
	}

	if err := bm.launchBrowser(); err != nil {
		return nil, err
	}

	return bm, nil
}

// Browser returns the current browser, recycling it first when the
// document limit has been reached. It returns nil after Close.
func (bm *BrowserManager) Browser() *rod.Browser {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed.Load() {
		return nil
	}
	if atomic.LoadInt64(&bm.documentCount) >= bm.maxDocuments {
		bm.recycleBrowser()
	}

	return bm.browser
}

// DocumentDone records one printed document.
func (bm *BrowserManager) DocumentDone() {
	atomic.AddInt64(&bm.documentCount, 1)
}

// Close releases browser resources. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	if !bm.closed.CompareAndSwap(false, true) {
		return nil
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()

	return bm.closeBrowser()
}

func (bm *BrowserManager) launchBrowser() error {
	lnchr := launcher.New().
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("font-render-hinting", "none").
		Leakless(true).
		Headless(true)
	if bm.bin != "" {
		lnchr = lnchr.Bin(bm.bin)
	}

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	bm.browser = browser
	bm.launcher = lnchr
	return nil
}

// closeBrowser must be called with mu held.
func (bm *BrowserManager) closeBrowser() error {
	var err error
	if bm.browser != nil {
		err = bm.browser.Close()
		bm.browser = nil
	}
	if bm.launcher != nil {
		bm.launcher.Kill()
		bm.launcher = nil
	}
	return err
}

// recycleBrowser replaces the browser, keeping the old one if the new
// launch fails. Must be called with mu held.
func (bm *BrowserManager) recycleBrowser() {
	oldBrowser, oldLauncher := bm.browser, bm.launcher
	bm.browser, bm.launcher = nil, nil

	if err := bm.launchBrowser(); err != nil {
		bm.browser, bm.launcher = oldBrowser, oldLauncher
		return
	}

	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	atomic.StoreInt64(&bm.documentCount, 0)
}

package resumekit

import (
	"context"
	"strings"
	"time"
)

// Resume is the structured form of resume content, ready for layout.
type Resume struct {
	FullName string
	Contact  []string
	Sections []*Section
}

// Section is a titled resume section.
type Section struct {
	Title      string
	Paragraphs []string
	Bullets    []string
}

// BulletStyle configures bullet list layout. It is fixed when a layout
// engine is constructed, never passed per call.
type BulletStyle struct {
	Symbol      string
	SymbolColor string
	TextColor   string
	FontSize    float64 // points
	LineHeight  float64 // multiple of FontSize
	Indent      float64 // points reserved for the symbol
}

// DefaultBulletStyle returns the bullet style used by default.
func DefaultBulletStyle() BulletStyle {
	return BulletStyle{
		Symbol:      "•",
		SymbolColor: "#2563eb",
		TextColor:   "#1f2937",
		FontSize:    10,
		LineHeight:  1.4,
		Indent:      12,
	}
}

// PageSize is a page size in PDF user-space units (points).
type PageSize struct {
	Width  float64
	Height float64
}

// A4 is an A4 page at 72 dpi.
var A4 = PageSize{Width: 595, Height: 842}

// WidthInches returns the page width in inches.
func (s PageSize) WidthInches() float64 { return s.Width / 72 }

// HeightInches returns the page height in inches.
func (s PageSize) HeightInches() float64 { return s.Height / 72 }

// PDFDocument is a composed PDF. It is never mutated after creation;
// new content means a new document.
type PDFDocument struct {
	ID        string
	Data      []byte
	PageCount int
	Filename  string
	CreatedAt time.Time
}

// DefaultPDFName is the download name used when no full name is known.
const DefaultPDFName = "resume"

// MarkdownFilename is the default download name of the markdown export.
const MarkdownFilename = "optimized-resume.md"

// PDFFilename returns the download name for a resume PDF.
func PDFFilename(fullName string) string {
	name := strings.TrimSpace(fullName)
	name = strings.NewReplacer("/", "-", "\\", "-").Replace(name)
	if name == "" {
		name = DefaultPDFName
	}
	return name + ".pdf"
}

// ResumeParser parses resume content into a Resume.
type ResumeParser interface {
	ParseResume(content string) (*Resume, error)
}

// LayoutEngine lays a resume out as a print HTML document.
type LayoutEngine interface {
	Layout(r *Resume) (string, error)
}

// Renderer prints an HTML document to PDF.
type Renderer interface {
	RenderPDF(ctx context.Context, html string, size PageSize) ([]byte, error)

	// Close releases browser resources.
	Close() error
}

// PDFInspector validates a PDF and counts its pages.
type PDFInspector interface {
	PageCount(data []byte) (int, error)
}

// PageTextReader returns the plain text of each page of a PDF.
type PageTextReader interface {
	PageTexts(data []byte) ([]string, error)
}

// Composer composes resume content into a PDF document.
type Composer interface {
	Compose(ctx context.Context, content string) (*PDFDocument, error)
}

package compose

import (
	"strings"
	"unicode"

	"github.com/fwojciec/resumekit"
)

// bulletProbeLen is the number of leading non-space runes of a bullet
// searched for next to its symbol.
const bulletProbeLen = 24

// SplitBullet is a bullet whose symbol and text start were not found
// together on any one page.
type SplitBullet struct {
	Section string
	Text    string
}

// VerifyBullets checks printed page texts for bullets whose symbol was
// separated from the beginning of its text by a page break. It returns
// the offending bullets; an empty result means every bullet is intact.
func VerifyBullets(r *resumekit.Resume, symbol string, pages []string) []SplitBullet {
	squeezed := make([]string, len(pages))
	for i, p := range pages {
		squeezed[i] = squeeze(p)
	}

	var split []SplitBullet
	for _, s := range r.Sections {
		for _, b := range s.Bullets {
			probe := squeeze(symbol) + truncate(squeeze(b), bulletProbeLen)
			if !anyContains(squeezed, probe) {
				split = append(split, SplitBullet{Section: s.Title, Text: b})
			}
		}
	}
	return split
}

// Verifier reads a composed document back and verifies its bullets.
type Verifier struct {
	parser resumekit.ResumeParser
	reader resumekit.PageTextReader
	symbol string
}

// NewVerifier creates a Verifier for documents laid out with symbol.
func NewVerifier(parser resumekit.ResumeParser, reader resumekit.PageTextReader, symbol string) *Verifier {
	return &Verifier{parser: parser, reader: reader, symbol: symbol}
}

// Verify returns the bullets of content that doc splits across pages.
func (v *Verifier) Verify(content string, doc *resumekit.PDFDocument) ([]SplitBullet, error) {
	r, err := v.parser.ParseResume(content)
	if err != nil {
		return nil, err
	}
	pages, err := v.reader.PageTexts(doc.Data)
	if err != nil {
		return nil, err
	}
	return VerifyBullets(r, v.symbol, pages), nil
}

func squeeze(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}

func anyContains(pages []string, probe string) bool {
	for _, p := range pages {
		if strings.Contains(p, probe) {
			return true
		}
	}
	return false
}

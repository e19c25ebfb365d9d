package pdftest

import (
	"fmt"
	"strings"

	"github.com/fwojciec/resumekit"
)

// LongResume returns a resume whose bullets each wrap over several lines,
// enough of them to print on more than one A4 page. Every bullet starts
// with a unique tag so page text searches cannot match the wrong one.
func LongResume(sections, bullets int) *resumekit.Resume {
	r := &resumekit.Resume{
		FullName: "Jane Doe",
		Contact:  []string{"jane@example.com", "https://jane.dev"},
	}
	filler := strings.Repeat("delivered measurable improvements to reliability and latency across distributed services ", 3)
	for s := range sections {
		sec := &resumekit.Section{Title: fmt.Sprintf("Role %d", s+1)}
		for b := range bullets {
			sec.Bullets = append(sec.Bullets, fmt.Sprintf("Item%02d%02d %s", s, b, strings.TrimSpace(filler)))
		}
		r.Sections = append(r.Sections, sec)
	}
	return r
}

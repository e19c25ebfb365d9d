package goldmark

import (
	"strings"

	"github.com/fwojciec/resumekit"
)

// Ensure ResumeParser implements resumekit.ResumeParser at compile time.
var _ resumekit.ResumeParser = (*ResumeParser)(nil)

// ResumeParser reads resume markdown: the first level-1 heading is the
// full name, paragraphs before the first level-2 heading are contact
// lines, each level-2 heading opens a section and list items become
// bullets.
//
// Content without a level-1 heading, such as text extracted from an
// upload, takes the first line of its first paragraph as the name.
type ResumeParser struct {
	parser resumekit.MarkupParser
}

// NewResumeParser creates a ResumeParser backed by a new Parser.
func NewResumeParser() *ResumeParser {
	return &ResumeParser{parser: NewParser()}
}

// ParseResume parses content into a Resume.
func (p *ResumeParser) ParseResume(content string) (*resumekit.Resume, error) {
	if strings.TrimSpace(content) == "" {
		return nil, resumekit.Errorf(resumekit.EINVALID, "Resume content is empty.")
	}
	root, err := p.parser.Parse(content)
	if err != nil {
		return nil, err
	}

	r := &resumekit.Resume{}
	var current *resumekit.Section
	named := hasTitle(root)

	section := func() *resumekit.Section {
		if current == nil {
			current = &resumekit.Section{}
			r.Sections = append(r.Sections, current)
		}
		return current
	}

	for _, n := range root.Children {
		switch n.Kind {
		case resumekit.NodeHeading:
			title := strings.TrimSpace(n.TextContent())
			switch {
			case n.Level == 1 && r.FullName == "":
				r.FullName = title
			case n.Level <= 2:
				current = &resumekit.Section{Title: title}
				r.Sections = append(r.Sections, current)
			default:
				s := section()
				s.Paragraphs = append(s.Paragraphs, title)
			}

		case resumekit.NodeList:
			s := section()
			s.Bullets = append(s.Bullets, bullets(n)...)

		case resumekit.NodeThematicBreak:

		default:
			if current == nil {
				lines := contactLines(n.TextContent())
				if !named && r.FullName == "" && len(lines) > 0 {
					r.FullName, lines = lines[0], lines[1:]
				}
				r.Contact = append(r.Contact, lines...)
				continue
			}
			if para := flatten(n.TextContent()); para != "" {
				current.Paragraphs = append(current.Paragraphs, para)
			}
		}
	}
	return r, nil
}

func hasTitle(root *resumekit.Node) bool {
	for _, n := range root.Children {
		if n.Kind == resumekit.NodeHeading && n.Level == 1 {
			return true
		}
	}
	return false
}

// bullets flattens a list, nested lists included, into bullet texts.
func bullets(list *resumekit.Node) []string {
	var out []string
	for _, item := range list.Children {
		var parts []string
		var nested []string
		for _, c := range item.Children {
			if c.Kind == resumekit.NodeList {
				nested = append(nested, bullets(c)...)
				continue
			}
			parts = append(parts, c.TextContent())
		}
		if text := flatten(strings.Join(parts, " ")); text != "" {
			out = append(out, text)
		}
		out = append(out, nested...)
	}
	return out
}

func contactLines(s string) []string {
	var out []string
	for _, line := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == '\n' }) {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

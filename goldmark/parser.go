// Package goldmark parses the restricted markdown dialect used for resume
// content with github.com/yuin/goldmark and maps it onto resumekit.Node
// trees.
package goldmark

import (
	"bytes"
	"strings"

	"github.com/fwojciec/resumekit"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Ensure Parser implements resumekit.MarkupParser at compile time.
var _ resumekit.MarkupParser = (*Parser)(nil)

// Parser converts CommonMark source into a resumekit.Node tree.
// Raw HTML, inline or block, becomes literal text.
type Parser struct {
	md goldmark.Markdown
}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{md: goldmark.New()}
}

// Parse parses src. It never fails on malformed markdown; CommonMark
// assigns every input a meaning.
func (p *Parser) Parse(src string) (*resumekit.Node, error) {
	source := []byte(src)
	doc := p.md.Parser().Parse(text.NewReader(source))
	w := &walker{source: source}
	root := &resumekit.Node{Kind: resumekit.NodeDocument}
	root.Children = w.children(doc)
	return root, nil
}

type walker struct {
	source []byte
}

func (w *walker) children(n ast.Node) []*resumekit.Node {
	var out []*resumekit.Node
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		out = append(out, w.convert(c)...)
	}
	return out
}

func (w *walker) convert(n ast.Node) []*resumekit.Node {
	switch n := n.(type) {
	case *ast.Heading:
		return one(&resumekit.Node{Kind: resumekit.NodeHeading, Level: n.Level, Children: w.children(n)})
	case *ast.Paragraph, *ast.TextBlock:
		return one(&resumekit.Node{Kind: resumekit.NodeParagraph, Children: w.children(n)})
	case *ast.List:
		return one(&resumekit.Node{Kind: resumekit.NodeList, Ordered: n.IsOrdered(), Children: w.children(n)})
	case *ast.ListItem:
		return one(&resumekit.Node{Kind: resumekit.NodeListItem, Children: w.children(n)})
	case *ast.Blockquote:
		return one(&resumekit.Node{Kind: resumekit.NodeBlockquote, Children: w.children(n)})
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return one(&resumekit.Node{Kind: resumekit.NodeCodeBlock, Text: w.lines(n.Lines())})
	case *ast.ThematicBreak:
		return one(&resumekit.Node{Kind: resumekit.NodeThematicBreak})
	case *ast.HTMLBlock:
		s := w.lines(n.Lines())
		if n.HasClosure() {
			s += string(n.ClosureLine.Value(w.source))
		}
		return one(&resumekit.Node{
			Kind:     resumekit.NodeParagraph,
			Children: []*resumekit.Node{textNode(strings.TrimRight(s, "\n"))},
		})
	case *ast.Emphasis:
		kind := resumekit.NodeEmphasis
		if n.Level >= 2 {
			kind = resumekit.NodeStrong
		}
		return one(&resumekit.Node{Kind: kind, Children: w.children(n)})
	case *ast.CodeSpan:
		var buf bytes.Buffer
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				buf.Write(t.Segment.Value(w.source))
			}
		}
		return one(&resumekit.Node{Kind: resumekit.NodeCode, Text: buf.String()})
	case *ast.Link:
		return one(&resumekit.Node{
			Kind:     resumekit.NodeLink,
			URL:      unescape(n.Destination),
			Title:    unescape(n.Title),
			Children: w.children(n),
		})
	case *ast.AutoLink:
		return one(&resumekit.Node{
			Kind:     resumekit.NodeLink,
			URL:      string(n.URL(w.source)),
			Children: []*resumekit.Node{textNode(string(n.Label(w.source)))},
		})
	case *ast.Image:
		alt := &resumekit.Node{Kind: resumekit.NodeParagraph, Children: w.children(n)}
		return one(&resumekit.Node{
			Kind:  resumekit.NodeImage,
			URL:   unescape(n.Destination),
			Title: unescape(n.Title),
			Alt:   alt.TextContent(),
		})
	case *ast.RawHTML:
		var buf bytes.Buffer
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			buf.Write(seg.Value(w.source))
		}
		return one(textNode(buf.String()))
	case *ast.Text:
		out := []*resumekit.Node{textNode(unescape(n.Segment.Value(w.source)))}
		if n.HardLineBreak() {
			out = append(out, &resumekit.Node{Kind: resumekit.NodeLineBreak})
		} else if n.SoftLineBreak() {
			out = append(out, textNode("\n"))
		}
		return out
	case *ast.String:
		return one(textNode(string(n.Value)))
	}

	// Extension nodes are not part of the dialect; keep their text.
	return w.children(n)
}

func (w *walker) lines(lines *text.Segments) string {
	var buf bytes.Buffer
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(w.source))
	}
	return buf.String()
}

// unescape resolves backslash escapes and character references the way
// CommonMark does for text, link destinations and titles.
func unescape(b []byte) string {
	b = util.UnescapePunctuations(b)
	b = util.ResolveNumericReferences(b)
	b = util.ResolveEntityNames(b)
	return string(b)
}

func textNode(s string) *resumekit.Node {
	return &resumekit.Node{Kind: resumekit.NodeText, Text: s}
}

func one(n *resumekit.Node) []*resumekit.Node {
	return []*resumekit.Node{n}
}

// Package html renders sanitized markup trees as HTML fragments using
// golang.org/x/net/html.
package html

import (
	"bytes"

	"github.com/fwojciec/resumekit"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Renderer implements resumekit.MarkupRenderer at compile time.
var _ resumekit.MarkupRenderer = (*Renderer)(nil)

// Renderer renders a resumekit.SanitizedDocument as an HTML fragment.
// Only sanitized trees are accepted: links and images whose SafeURL flag
// is unset are written as plain text or omitted.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render returns the HTML fragment for doc. An empty document renders as
// an empty string.
func (r *Renderer) Render(doc *resumekit.SanitizedDocument) (string, error) {
	if doc.Empty() {
		return "", nil
	}
	var buf bytes.Buffer
	for _, n := range doc.Root.Children {
		for _, h := range build(n) {
			if err := xhtml.Render(&buf, h); err != nil {
				return "", err
			}
		}
	}
	return buf.String(), nil
}

var blockTags = map[resumekit.NodeKind]atom.Atom{
	resumekit.NodeParagraph:     atom.P,
	resumekit.NodeListItem:      atom.Li,
	resumekit.NodeBlockquote:    atom.Blockquote,
	resumekit.NodeThematicBreak: atom.Hr,
	resumekit.NodeEmphasis:      atom.Em,
	resumekit.NodeStrong:        atom.Strong,
	resumekit.NodeLineBreak:     atom.Br,
}

var headingTags = []atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

func build(n *resumekit.Node) []*xhtml.Node {
	switch n.Kind {
	case resumekit.NodeText:
		return []*xhtml.Node{{Type: xhtml.TextNode, Data: n.Text}}

	case resumekit.NodeHeading:
		level := min(max(n.Level, 1), 6)
		return []*xhtml.Node{element(headingTags[level-1], nil, n.Children)}

	case resumekit.NodeList:
		tag := atom.Ul
		if n.Ordered {
			tag = atom.Ol
		}
		return []*xhtml.Node{element(tag, nil, n.Children)}

	case resumekit.NodeCode:
		return []*xhtml.Node{element(atom.Code, nil, []*resumekit.Node{textOf(n.Text)})}

	case resumekit.NodeCodeBlock:
		code := element(atom.Code, nil, []*resumekit.Node{textOf(n.Text)})
		pre := element(atom.Pre, nil, nil)
		pre.AppendChild(code)
		return []*xhtml.Node{pre}

	case resumekit.NodeLink:
		if !n.SafeURL {
			return buildAll(n.Children)
		}
		attrs := []xhtml.Attribute{
			{Key: "href", Val: n.URL},
			{Key: "target", Val: n.Target},
			{Key: "rel", Val: n.Rel},
		}
		if n.Title != "" {
			attrs = append(attrs, xhtml.Attribute{Key: "title", Val: n.Title})
		}
		return []*xhtml.Node{element(atom.A, attrs, n.Children)}

	case resumekit.NodeImage:
		if !n.SafeURL {
			return nil
		}
		attrs := []xhtml.Attribute{
			{Key: "src", Val: n.URL},
			{Key: "alt", Val: n.Alt},
		}
		if n.Title != "" {
			attrs = append(attrs, xhtml.Attribute{Key: "title", Val: n.Title})
		}
		return []*xhtml.Node{element(atom.Img, attrs, nil)}

	case resumekit.NodeDocument:
		return buildAll(n.Children)
	}

	if tag, ok := blockTags[n.Kind]; ok {
		return []*xhtml.Node{element(tag, nil, n.Children)}
	}
	return nil
}

func buildAll(nodes []*resumekit.Node) []*xhtml.Node {
	var out []*xhtml.Node
	for _, n := range nodes {
		out = append(out, build(n)...)
	}
	return out
}

func element(tag atom.Atom, attrs []xhtml.Attribute, children []*resumekit.Node) *xhtml.Node {
	el := &xhtml.Node{
		Type:     xhtml.ElementNode,
		DataAtom: tag,
		Data:     tag.String(),
		Attr:     attrs,
	}
	for _, c := range buildAll(children) {
		el.AppendChild(c)
	}
	return el
}

func textOf(s string) *resumekit.Node {
	return &resumekit.Node{Kind: resumekit.NodeText, Text: s}
}


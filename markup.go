package resumekit

// NodeKind identifies the type of a markup tree node.
type NodeKind string

// NodeKind constants for the restricted markdown dialect.
// NodeElement represents an arbitrary named element; it is never produced
// by the markdown parser and never survives sanitization.
const (
	NodeDocument      NodeKind = "document"
	NodeHeading       NodeKind = "heading"
	NodeParagraph     NodeKind = "paragraph"
	NodeList          NodeKind = "list"
	NodeListItem      NodeKind = "list_item"
	NodeBlockquote    NodeKind = "blockquote"
	NodeCodeBlock     NodeKind = "code_block"
	NodeThematicBreak NodeKind = "thematic_break"
	NodeEmphasis      NodeKind = "emphasis"
	NodeStrong        NodeKind = "strong"
	NodeCode          NodeKind = "code"
	NodeLink          NodeKind = "link"
	NodeImage         NodeKind = "image"
	NodeText          NodeKind = "text"
	NodeLineBreak     NodeKind = "line_break"
	NodeElement       NodeKind = "element"
)

// Node is a node of a markup tree.
type Node struct {
	Kind NodeKind

	Tag     string // NodeElement
	Level   int    // NodeHeading, 1-6
	Ordered bool   // NodeList
	Text    string // NodeText, NodeCode, NodeCodeBlock

	// Link and image attributes. SafeURL is only ever set by Sanitize.
	URL     string
	Title   string
	Alt     string
	SafeURL bool
	Target  string
	Rel     string

	Children []*Node
}

// TextContent returns the concatenated text of the node and its descendants.
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	if n.Kind == NodeText || n.Kind == NodeCode || n.Kind == NodeCodeBlock {
		return n.Text
	}
	var s string
	for _, c := range n.Children {
		s += c.TextContent()
	}
	return s
}

// UnsafeContentBlocked is the action reported for every node the sanitizer
// omits. It is a silent safety action, never an error.
const UnsafeContentBlocked = "unsafe content blocked"

// BlockedContent describes a node removed by the sanitizer.
type BlockedContent struct {
	Kind   NodeKind
	Tag    string
	URL    string
	Reason string
}

// SanitizedDocument is a display-safe markup tree. It is rebuilt on every
// render and never persisted.
type SanitizedDocument struct {
	Root    *Node
	Blocked []BlockedContent
}

// Empty reports whether there is nothing to show.
func (d *SanitizedDocument) Empty() bool {
	return d == nil || d.Root == nil || len(d.Root.Children) == 0
}

// MarkupParser parses the restricted markdown dialect into a generic tree.
// Literal markup in the source is kept as text, never re-interpreted.
type MarkupParser interface {
	Parse(src string) (*Node, error)
}

// Sanitizer converts the restricted markdown dialect into a safe tree.
// Sanitization never fails: unsafe content is omitted and reported in
// SanitizedDocument.Blocked.
type Sanitizer interface {
	Sanitize(src string) *SanitizedDocument
}

// MarkupRenderer renders a sanitized tree as HTML.
type MarkupRenderer interface {
	Render(doc *SanitizedDocument) (string, error)
}

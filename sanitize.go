package resumekit

import (
	"net/url"
	"strings"
	"unicode"
)

// TrustedBaseURL is the base relative link and image URLs are resolved
// against before their scheme is checked. It is a placeholder origin: a
// relative URL always resolves to https and is therefore allowed.
const TrustedBaseURL = "https://resumekit.invalid/"

// Link attributes forced on every safe link.
const (
	LinkTarget = "_blank"
	LinkRel    = "noopener noreferrer"
)

// Reasons reported in BlockedContent.
const (
	ReasonExecutableElement = "executable element"
	ReasonUnknownElement    = "unrecognized element"
	ReasonUnsafeLink        = "unsafe link URL"
	ReasonUnsafeImage       = "unsafe image URL"
)

var trustedBase, _ = url.Parse(TrustedBaseURL)

var allowedSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
}

var executableElements = map[string]bool{
	"script": true,
	"style":  true,
	"iframe": true,
	"object": true,
	"embed":  true,
}

// IsSafeURL reports whether raw may be used as a link target or image
// source. A URL is safe iff, resolved against TrustedBaseURL, its scheme is
// http, https or mailto. Unparsable URLs are never safe.
func IsSafeURL(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(strings.ToLower(trimmed), "javascript:") {
		return false
	}

	// Browsers drop tabs, newlines and control characters inside URLs, so
	// "java\tscript:" must be judged as "javascript:".
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, trimmed)

	ref, err := url.Parse(cleaned)
	if err != nil {
		return false
	}
	resolved := trustedBase.ResolveReference(ref)
	return allowedSchemes[strings.ToLower(resolved.Scheme)]
}

// Sanitize runs the filtering pass over a parsed tree and returns a new,
// display-safe tree. The input tree is not modified.
//
// The pass is allow-list based: element nodes are dropped, links with an
// unsafe URL are unwrapped to their children, images with an unsafe source
// are dropped together with their alt text, and safe links open in a new
// browsing context without referrer or opener.
func Sanitize(root *Node) *SanitizedDocument {
	doc := &SanitizedDocument{Root: &Node{Kind: NodeDocument}}
	if root == nil {
		return doc
	}
	doc.Root.Children = doc.filterAll(root.Children)
	return doc
}

func (d *SanitizedDocument) filterAll(nodes []*Node) []*Node {
	var out []*Node
	for _, n := range nodes {
		if n == nil {
			continue
		}
		out = append(out, d.filter(n)...)
	}
	return out
}

func (d *SanitizedDocument) filter(n *Node) []*Node {
	switch n.Kind {
	case NodeElement:
		reason := ReasonUnknownElement
		if executableElements[strings.ToLower(n.Tag)] {
			reason = ReasonExecutableElement
		}
		d.block(n, reason)
		return nil

	case NodeLink:
		children := d.filterAll(n.Children)
		if !IsSafeURL(n.URL) {
			d.block(n, ReasonUnsafeLink)
			return children
		}
		return []*Node{{
			Kind:     NodeLink,
			URL:      strings.TrimSpace(n.URL),
			Title:    n.Title,
			SafeURL:  true,
			Target:   LinkTarget,
			Rel:      LinkRel,
			Children: children,
		}}

	case NodeImage:
		if !IsSafeURL(n.URL) {
			d.block(n, ReasonUnsafeImage)
			return nil
		}
		return []*Node{{
			Kind:    NodeImage,
			URL:     strings.TrimSpace(n.URL),
			Title:   n.Title,
			Alt:     n.Alt,
			SafeURL: true,
		}}

	case NodeDocument, NodeHeading, NodeParagraph, NodeList, NodeListItem,
		NodeBlockquote, NodeCodeBlock, NodeThematicBreak, NodeEmphasis,
		NodeStrong, NodeCode, NodeText, NodeLineBreak:
		return []*Node{{
			Kind:     n.Kind,
			Level:    n.Level,
			Ordered:  n.Ordered,
			Text:     n.Text,
			Children: d.filterAll(n.Children),
		}}
	}

	d.block(n, ReasonUnknownElement)
	return nil
}

func (d *SanitizedDocument) block(n *Node, reason string) {
	d.Blocked = append(d.Blocked, BlockedContent{
		Kind:   n.Kind,
		Tag:    n.Tag,
		URL:    n.URL,
		Reason: reason,
	})
}

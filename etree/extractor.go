// Package etree extracts text from Office Open XML word-processing
// packages (.docx) using github.com/beevik/etree.
package etree

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/resumekit"
)

// DocumentPart is the package entry holding the document body.
const DocumentPart = "word/document.xml"

// MaxDocumentPartSize bounds the decompressed size of DocumentPart.
const MaxDocumentPartSize = 64 << 20

// skipped lists elements whose subtrees carry images, embedded objects or
// duplicated fallback content rather than body text.
var skipped = map[string]bool{
	"drawing":          true,
	"pict":             true,
	"object":           true,
	"AlternateContent": true,
	"instrText":        true,
}

// Ensure Extractor implements resumekit.Extractor at compile time.
var _ resumekit.Extractor = (*Extractor)(nil)

// Extractor extracts plain text from .docx packages.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract unpacks the package body and returns its text runs. Paragraphs
// end with a newline; tabs and breaks are kept; formatting, images and
// embedded objects are discarded.
func (e *Extractor) Extract(ctx context.Context, doc *resumekit.UploadedDocument) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	zr, err := zip.NewReader(bytes.NewReader(doc.Data), int64(len(doc.Data)))
	if err != nil {
		return "", resumekit.Errorf(resumekit.EMALFORMED, "%q is not a valid .docx package", doc.Name)
	}

	part, err := openPart(zr, DocumentPart)
	if err != nil {
		return "", resumekit.Errorf(resumekit.EMALFORMED, "%q is not a recognized .docx package: %s", doc.Name, err)
	}

	xdoc := etree.NewDocument()
	if _, err := xdoc.ReadFrom(part); err != nil {
		return "", resumekit.Errorf(resumekit.EMALFORMED, "%q has an unreadable document body", doc.Name)
	}

	root := xdoc.Root()
	if root == nil {
		return "", resumekit.Errorf(resumekit.EMALFORMED, "%q has an empty document body", doc.Name)
	}
	body := root.SelectElement("body")
	if body == nil {
		return "", resumekit.Errorf(resumekit.EMALFORMED, "%q has no document body", doc.Name)
	}

	var sb strings.Builder
	writeText(&sb, body)
	return strings.TrimRight(sb.String(), "\n"), nil
}

// openPart returns a size-limited reader over the named package entry.
func openPart(zr *zip.Reader, name string) (io.Reader, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		if f.UncompressedSize64 > MaxDocumentPartSize {
			return nil, errors.New("document body too large")
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()

		b, err := io.ReadAll(io.LimitReader(rc, MaxDocumentPartSize))
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(b), nil
	}
	return nil, fmt.Errorf("missing %s", name)
}

func writeText(sb *strings.Builder, el *etree.Element) {
	for _, child := range el.ChildElements() {
		if skipped[child.Tag] {
			continue
		}
		switch child.Tag {
		case "t":
			sb.WriteString(child.Text())
		case "tab":
			sb.WriteByte('\t')
		case "br", "cr":
			sb.WriteByte('\n')
		case "p":
			writeText(sb, child)
			sb.WriteByte('\n')
		default:
			writeText(sb, child)
		}
	}
}

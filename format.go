package resumekit

import (
	"mime"
	"path/filepath"
	"strings"
)

// Media types of accepted and recognized uploads.
const (
	MediaTypePlainText   = "text/plain"
	MediaTypeWordPackage = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MediaTypeLegacyWord  = "application/msword"
	MediaTypePDF         = "application/pdf"
	MediaTypeMarkdown    = "text/markdown"
)

// MaxUploadSize is the largest document accepted for extraction.
const MaxUploadSize = 10 << 20

// Format identifies the extraction strategy for an upload.
type Format int

// Format constants. FormatLegacyWord is recognized but never extracted.
const (
	FormatUnsupported Format = iota
	FormatPlainText
	FormatWordPackage
	FormatLegacyWord
	FormatPDF
)

// String returns a short name for the format.
func (f Format) String() string {
	switch f {
	case FormatPlainText:
		return "text"
	case FormatWordPackage:
		return "docx"
	case FormatLegacyWord:
		return "doc"
	case FormatPDF:
		return "pdf"
	default:
		return "unsupported"
	}
}

// UploadedDocument is a user-supplied file. It must not be modified once
// received.
type UploadedDocument struct {
	Name      string
	MediaType string
	Data      []byte
}

// Validate returns an error if the upload cannot be extracted at all.
func (d *UploadedDocument) Validate() error {
	if d.Name == "" && d.MediaType == "" {
		return Errorf(EINVALID, "file name or media type required")
	}
	if len(d.Data) > MaxUploadSize {
		return Errorf(EINVALID, "file %q exceeds the %d MB upload limit", d.Name, MaxUploadSize>>20)
	}
	return nil
}

// Format classifies the upload.
func (d *UploadedDocument) Format() Format {
	return ClassifyFormat(d.MediaType, d.Name)
}

// ClassifyFormat selects an extraction strategy from a declared media type
// and file name. A recognized media type wins; otherwise the file name
// suffix is matched case-insensitively.
func ClassifyFormat(mediaType, name string) Format {
	if f, ok := formatByMediaType(mediaType); ok {
		return f
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt":
		return FormatPlainText
	case ".docx":
		return FormatWordPackage
	case ".doc":
		return FormatLegacyWord
	case ".pdf":
		return FormatPDF
	}
	return FormatUnsupported
}

func formatByMediaType(mediaType string) (Format, bool) {
	mt := strings.ToLower(strings.TrimSpace(mediaType))
	if parsed, _, err := mime.ParseMediaType(mt); err == nil {
		mt = parsed
	}
	switch mt {
	case MediaTypePlainText:
		return FormatPlainText, true
	case MediaTypeWordPackage:
		return FormatWordPackage, true
	case MediaTypeLegacyWord:
		return FormatLegacyWord, true
	case MediaTypePDF:
		return FormatPDF, true
	}
	return FormatUnsupported, false
}

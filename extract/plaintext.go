package extract

import (
	"context"
	"unicode/utf16"

	"github.com/fwojciec/resumekit"
)

// Ensure PlainText implements resumekit.Extractor at compile time.
var _ resumekit.Extractor = (*PlainText)(nil)

// PlainText returns the decoded content of text files.
type PlainText struct{}

// NewPlainText creates a new PlainText extractor.
func NewPlainText() *PlainText {
	return &PlainText{}
}

// Extract returns the file's content verbatim. A UTF-8 byte order mark is
// dropped and UTF-16 content with a byte order mark is decoded; everything
// else is returned byte for byte.
func (p *PlainText) Extract(ctx context.Context, doc *resumekit.UploadedDocument) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return decodeText(doc.Data), nil
}

func decodeText(b []byte) string {
	switch {
	case len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF:
		return string(b[3:])
	case len(b) >= 2 && b[0] == 0xFF && b[1] == 0xFE:
		return decodeUTF16(b[2:], true)
	case len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF:
		return decodeUTF16(b[2:], false)
	}
	return string(b)
}

func decodeUTF16(b []byte, littleEndian bool) string {
	u16 := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		if littleEndian {
			u16 = append(u16, uint16(b[i])|uint16(b[i+1])<<8)
		} else {
			u16 = append(u16, uint16(b[i+1])|uint16(b[i])<<8)
		}
	}
	return string(utf16.Decode(u16))
}

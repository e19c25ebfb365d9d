package etree_test

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/resumekit"
	"github.com/fwojciec/resumekit/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wordNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006"`

func docx(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func body(inner string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document ` + wordNS + `><w:body>` + inner + `</w:body></w:document>`
}

func upload(data []byte) *resumekit.UploadedDocument {
	return &resumekit.UploadedDocument{
		Name:      "cv.docx",
		MediaType: resumekit.MediaTypeWordPackage,
		Data:      data,
	}
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	ext := etree.NewExtractor()

	t.Run("concatenates runs with a newline per paragraph", func(t *testing.T) {
		t.Parallel()

		data := docx(t, map[string]string{
			etree.DocumentPart: body(
				`<w:p><w:r><w:t>Jane </w:t></w:r><w:r><w:rPr><w:b/></w:rPr><w:t>Doe</w:t></w:r></w:p>` +
					`<w:p><w:r><w:t>Software Engineer</w:t></w:r></w:p>`),
		})

		text, err := ext.Extract(context.Background(), upload(data))

		require.NoError(t, err)
		assert.Equal(t, "Jane Doe\nSoftware Engineer", text)
	})

	t.Run("keeps tabs and line breaks", func(t *testing.T) {
		t.Parallel()

		data := docx(t, map[string]string{
			etree.DocumentPart: body(`<w:p><w:r><w:t>2020</w:t><w:tab/><w:t>Acme</w:t><w:br/><w:t>Lead</w:t></w:r></w:p>`),
		})

		text, err := ext.Extract(context.Background(), upload(data))

		require.NoError(t, err)
		assert.Equal(t, "2020\tAcme\nLead", text)
	})

	t.Run("reads paragraphs inside tables", func(t *testing.T) {
		t.Parallel()

		data := docx(t, map[string]string{
			etree.DocumentPart: body(`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>Go</w:t></w:r></w:p></w:tc>` +
				`<w:tc><w:p><w:r><w:t>SQL</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`),
		})

		text, err := ext.Extract(context.Background(), upload(data))

		require.NoError(t, err)
		assert.Equal(t, "Go\nSQL", text)
	})

	t.Run("discards drawings and fallback content", func(t *testing.T) {
		t.Parallel()

		data := docx(t, map[string]string{
			etree.DocumentPart: body(`<w:p><w:r><w:t>Visible</w:t></w:r>` +
				`<w:r><w:drawing><w:t>hidden caption</w:t></w:drawing></w:r>` +
				`<mc:AlternateContent><w:t>duplicate</w:t></mc:AlternateContent></w:p>`),
		})

		text, err := ext.Extract(context.Background(), upload(data))

		require.NoError(t, err)
		assert.Equal(t, "Visible", text)
	})

	t.Run("returns empty text for an empty body", func(t *testing.T) {
		t.Parallel()

		data := docx(t, map[string]string{etree.DocumentPart: body("")})

		text, err := ext.Extract(context.Background(), upload(data))

		require.NoError(t, err)
		assert.Empty(t, text)
	})

	t.Run("rejects data that is not a zip archive", func(t *testing.T) {
		t.Parallel()

		_, err := ext.Extract(context.Background(), upload([]byte("plain text pretending")))

		require.Error(t, err)
		assert.Equal(t, resumekit.EMALFORMED, resumekit.ErrorCode(err))
	})

	t.Run("rejects a package without a document body", func(t *testing.T) {
		t.Parallel()

		data := docx(t, map[string]string{"word/styles.xml": "<styles/>"})

		_, err := ext.Extract(context.Background(), upload(data))

		require.Error(t, err)
		assert.Equal(t, resumekit.EMALFORMED, resumekit.ErrorCode(err))
		assert.Contains(t, resumekit.ErrorMessage(err), etree.DocumentPart)
	})

	t.Run("rejects unparsable document xml", func(t *testing.T) {
		t.Parallel()

		data := docx(t, map[string]string{etree.DocumentPart: "<w:document><w:body></w:document>"})

		_, err := ext.Extract(context.Background(), upload(data))

		require.Error(t, err)
		assert.Equal(t, resumekit.EMALFORMED, resumekit.ErrorCode(err))
	})

	t.Run("rejects xml without a body element", func(t *testing.T) {
		t.Parallel()

		data := docx(t, map[string]string{etree.DocumentPart: `<w:document ` + wordNS + `/>`})

		_, err := ext.Extract(context.Background(), upload(data))

		require.Error(t, err)
		assert.Equal(t, resumekit.EMALFORMED, resumekit.ErrorCode(err))
	})

	t.Run("honors cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := ext.Extract(ctx, upload(nil))

		require.ErrorIs(t, err, context.Canceled)
	})
}

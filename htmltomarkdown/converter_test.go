package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/resumekit"
	"github.com/fwojciec/resumekit/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts section headings", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<h1>Jane Doe</h1><h2>Experience</h2>`)

		require.NoError(t, err)
		assert.Contains(t, md, "# Jane Doe")
		assert.Contains(t, md, "## Experience")
	})

	t.Run("converts bullets with dash markers", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<ul><li>Led the team</li><li>Shipped v2</li></ul>`)

		require.NoError(t, err)
		assert.Contains(t, md, "- Led the team")
		assert.Contains(t, md, "- Shipped v2")
	})

	t.Run("converts ordered lists", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<ol><li>First</li><li>Second</li></ol>`)

		require.NoError(t, err)
		assert.Contains(t, md, "1. First")
		assert.Contains(t, md, "2. Second")
	})

	t.Run("keeps hardened links", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p>See <a href="https://jane.dev" target="_blank" rel="noopener noreferrer">portfolio</a>.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "[portfolio](https://jane.dev)")
	})

	t.Run("converts bold and italic", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p><strong>Go</strong> and <em>SQL</em></p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "**Go**")
		assert.Contains(t, md, "*SQL*")
	})

	t.Run("converts inline code", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p>Maintained <code>kubectl</code> plugins</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "`kubectl`")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("  ")

		require.Error(t, err)
		assert.Equal(t, resumekit.EINVALID, resumekit.ErrorCode(err))
	})
}

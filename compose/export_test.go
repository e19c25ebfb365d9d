package compose_test

import (
	"testing"

	"github.com/fwojciec/resumekit/compose"
	"github.com/fwojciec/resumekit/goldmark"
	"github.com/fwojciec/resumekit/html"
	"github.com/fwojciec/resumekit/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownExporter_Export(t *testing.T) {
	t.Parallel()

	e := compose.NewMarkdownExporter(goldmark.NewSanitizer(), html.NewRenderer(), htmltomarkdown.NewConverter())

	t.Run("keeps structure and safe links", func(t *testing.T) {
		t.Parallel()

		md, err := e.Export("# Jane Doe\n\n## Skills\n\n- **Go**\n\n[site](https://jane.dev)")

		require.NoError(t, err)
		assert.Contains(t, md, "# Jane Doe")
		assert.Contains(t, md, "- **Go**")
		assert.Contains(t, md, "[site](https://jane.dev)")
	})

	t.Run("drops unsafe links and images", func(t *testing.T) {
		t.Parallel()

		md, err := e.Export("[click](javascript:alert(1)) ![x](data:image/png;base64,AA)")

		require.NoError(t, err)
		assert.Contains(t, md, "click")
		assert.NotContains(t, md, "javascript")
		assert.NotContains(t, md, "data:")
	})

	t.Run("drops entity encoded javascript links", func(t *testing.T) {
		t.Parallel()

		md, err := e.Export("[click](java&#x73;cript:alert(1)) [again](javascript&#58;alert(2))")

		require.NoError(t, err)
		assert.Contains(t, md, "click")
		assert.NotContains(t, md, "cript")
		assert.NotContains(t, md, "](")
	})

	t.Run("keeps query strings intact", func(t *testing.T) {
		t.Parallel()

		md, err := e.Export("[q](https://a.example/?a=1&amp;b=2)")

		require.NoError(t, err)
		assert.Contains(t, md, "https://a.example/?a=1&b=2")
		assert.NotContains(t, md, "%3B")
	})

	t.Run("exports empty input as empty", func(t *testing.T) {
		t.Parallel()

		md, err := e.Export("")

		require.NoError(t, err)
		assert.Empty(t, md)
	})
}

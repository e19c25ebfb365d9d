package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/resumekit"
	"github.com/fwojciec/resumekit/mock"
	rkslog "github.com/fwojciec/resumekit/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs format size and hash but not content", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Extractor{
			ExtractFn: func(context.Context, *resumekit.UploadedDocument) (string, error) {
				return "Jane Doe", nil
			},
		}

		ext := rkslog.NewLoggingExtractor(inner, newLogger(&buf))
		text, err := ext.Extract(context.Background(), &resumekit.UploadedDocument{Name: "cv.txt", Data: []byte("secret content")})

		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", text)
		out := buf.String()
		assert.Contains(t, out, "msg=extract")
		assert.Contains(t, out, "name=cv.txt")
		assert.Contains(t, out, "format=text")
		assert.Contains(t, out, "bytes=14")
		assert.Contains(t, out, "hash=")
		assert.Contains(t, out, "duration=")
		assert.NotContains(t, out, "secret content")
		assert.NotContains(t, out, "Jane Doe")
	})

	t.Run("logs the failure kind", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Extractor{
			ExtractFn: func(context.Context, *resumekit.UploadedDocument) (string, error) {
				return "", resumekit.Errorf(resumekit.ETIMEOUT, "timed out")
			},
		}

		ext := rkslog.NewLoggingExtractor(inner, newLogger(&buf))
		_, err := ext.Extract(context.Background(), &resumekit.UploadedDocument{Name: "cv.pdf"})

		require.Error(t, err)
		assert.Contains(t, buf.String(), "code=timeout")
	})
}

func TestLoggingSanitizer_Sanitize(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &mock.Sanitizer{
		SanitizeFn: func(string) *resumekit.SanitizedDocument {
			return &resumekit.SanitizedDocument{
				Root: &resumekit.Node{Kind: resumekit.NodeDocument},
				Blocked: []resumekit.BlockedContent{
					{Kind: resumekit.NodeLink, URL: "javascript:alert(1)", Reason: resumekit.ReasonUnsafeLink},
					{Kind: resumekit.NodeElement, Tag: "script", Reason: resumekit.ReasonExecutableElement},
				},
			}
		},
	}

	doc := rkslog.NewLoggingSanitizer(inner, newLogger(&buf)).Sanitize("x")

	require.Len(t, doc.Blocked, 2)
	out := buf.String()
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("unsafe content blocked")))
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "tag=script")
	assert.Contains(t, out, `reason="unsafe link URL"`)
}

func TestLoggingComposer_Compose(t *testing.T) {
	t.Parallel()

	t.Run("logs document attributes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Composer{
			ComposeFn: func(context.Context, string) (*resumekit.PDFDocument, error) {
				return &resumekit.PDFDocument{ID: "doc-1", PageCount: 2, Data: []byte("pdf"), Filename: "resume.pdf"}, nil
			},
		}

		_, err := rkslog.NewLoggingComposer(inner, newLogger(&buf)).Compose(context.Background(), "# Jane")

		require.NoError(t, err)
		out := buf.String()
		assert.Contains(t, out, "msg=compose")
		assert.Contains(t, out, "id=doc-1")
		assert.Contains(t, out, "pages=2")
	})

	t.Run("logs errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Composer{
			ComposeFn: func(context.Context, string) (*resumekit.PDFDocument, error) {
				return nil, errors.New("browser gone")
			},
		}

		_, err := rkslog.NewLoggingComposer(inner, newLogger(&buf)).Compose(context.Background(), "# Jane")

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="browser gone"`)
	})
}

func TestLoggingRenderer_RenderPDF(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	closed := false
	inner := &mock.Renderer{
		RenderPDFFn: func(context.Context, string, resumekit.PageSize) ([]byte, error) {
			return []byte("%PDF"), nil
		},
		CloseFn: func() error { closed = true; return nil },
	}

	r := rkslog.NewLoggingRenderer(inner, newLogger(&buf))
	_, err := r.RenderPDF(context.Background(), "<p>x</p>", resumekit.A4)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	assert.Contains(t, buf.String(), "width=595")
	assert.True(t, closed)
}

func TestLoggingKeyValueStore(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	store := rkslog.NewLoggingKeyValueStore(mock.NewMemoryStore(), newLogger(&buf))
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "hidden-value"))
	v, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hidden-value", v)
	require.NoError(t, store.Clear(ctx, "k"))

	out := buf.String()
	assert.Contains(t, out, "kv set")
	assert.Contains(t, out, "kv get")
	assert.Contains(t, out, "found=true")
	assert.Contains(t, out, "kv clear")
	assert.NotContains(t, out, "hidden-value")
}

func TestLoggingRewriter_Rewrite(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &mock.Rewriter{
		RewriteFn: func(_ context.Context, content, _ string) (string, error) {
			return content + "!", nil
		},
	}

	out, err := rkslog.NewLoggingRewriter(inner, newLogger(&buf)).Rewrite(context.Background(), "abc", "")

	require.NoError(t, err)
	assert.Equal(t, "abc!", out)
	assert.Contains(t, buf.String(), "chars_in=3")
	assert.Contains(t, buf.String(), "chars_out=4")
}

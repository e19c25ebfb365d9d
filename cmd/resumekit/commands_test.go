package main_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/resumekit"
	main "github.com/fwojciec/resumekit/cmd/resumekit"
	"github.com/fwojciec/resumekit/compose"
	"github.com/fwojciec/resumekit/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type verifier struct {
	splits []compose.SplitBullet
}

func (v *verifier) Verify(string, *resumekit.PDFDocument) ([]compose.SplitBullet, error) {
	return v.splits, nil
}

type server struct {
	listening chan struct{}
	stopped   chan struct{}
}

func (s *server) Listen(string) error {
	close(s.listening)
	<-s.stopped
	return nil
}

func (s *server) Shutdown() error {
	close(s.stopped)
	return nil
}

func newDeps(stdin string) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdin:  strings.NewReader(stdin),
		Stdout: stdout,
		Stderr: stderr,
	}, stdout, stderr
}

func composer() *mock.Composer {
	return &mock.Composer{
		ComposeFn: func(context.Context, string) (*resumekit.PDFDocument, error) {
			return &resumekit.PDFDocument{ID: "doc-1", Data: []byte("%PDF"), PageCount: 2, Filename: "Jane Doe.pdf"}, nil
		},
	}
}

func TestExtractCmd_Run(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.doc")
	require.NoError(t, os.WriteFile(a, []byte("alpha"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("beta"), 0o644))

	deps, stdout, stderr := newDeps("")
	deps.Extractor = &mock.Extractor{
		ExtractFn: func(_ context.Context, doc *resumekit.UploadedDocument) (string, error) {
			if doc.Format() == resumekit.FormatLegacyWord {
				return "", resumekit.Errorf(resumekit.EUNSUPPORTED, "Legacy .doc files are not supported.")
			}
			return strings.ToUpper(string(doc.Data)), nil
		},
	}

	err := (&main.ExtractCmd{Files: []string{a, b}, Concurrency: 2}).Run(deps)

	require.Error(t, err)
	assert.Equal(t, resumekit.EUNSUPPORTED, resumekit.ErrorCode(err))
	assert.Equal(t, "==> a.txt <==\nALPHA\n", stdout.String())
	assert.Contains(t, stderr.String(), "error: b.doc: Legacy .doc files are not supported.")
}

func TestComposeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes pdf and verifies", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		deps, stdout, _ := newDeps("# Jane Doe")
		deps.Composer = composer()
		deps.Verifier = &verifier{}

		err := (&main.ComposeCmd{File: "-", Output: dir, Verify: true}).Run(deps)

		require.NoError(t, err)
		data, err := os.ReadFile(filepath.Join(dir, "Jane Doe.pdf"))
		require.NoError(t, err)
		assert.Equal(t, "%PDF", string(data))
		assert.Contains(t, stdout.String(), "(2 page(s))")
		assert.Contains(t, stdout.String(), "All bullets kept whole.")
	})

	t.Run("reports split bullets", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps("# Jane Doe")
		deps.Composer = composer()
		deps.Verifier = &verifier{splits: []compose.SplitBullet{{Section: "Experience", Text: "Led migration"}}}

		err := (&main.ComposeCmd{File: "-", Output: t.TempDir(), Verify: true}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 bullet(s) split across pages")
		assert.Contains(t, stderr.String(), "split: [Experience] Led migration")
	})

	t.Run("prints user message on failure", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps("")
		deps.Composer = &mock.Composer{
			ComposeFn: func(context.Context, string) (*resumekit.PDFDocument, error) {
				return nil, resumekit.Errorf(resumekit.EINVALID, "Resume content is empty.")
			},
		}

		err := (&main.ComposeCmd{File: "-", Output: t.TempDir()}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, "error: Resume content is empty.\n", stderr.String())
	})
}

func TestExportCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("raw content under default name", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		deps, _, _ := newDeps("# Jane <b>x</b>")

		err := (&main.ExportCmd{File: "-", Output: dir}).Run(deps)

		require.NoError(t, err)
		data, err := os.ReadFile(filepath.Join(dir, resumekit.MarkdownFilename))
		require.NoError(t, err)
		assert.Equal(t, "# Jane <b>x</b>", string(data))
	})

	t.Run("sanitized through exporter", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		deps, stdout, _ := newDeps("# Jane")
		deps.Exporter = exporterFunc(func(src string) (string, error) { return "# Clean", nil })

		err := (&main.ExportCmd{File: "-", Output: dir, Name: "cv", Sanitized: true}).Run(deps)

		require.NoError(t, err)
		data, err := os.ReadFile(filepath.Join(dir, "cv.md"))
		require.NoError(t, err)
		assert.Equal(t, "# Clean", string(data))
		assert.Contains(t, stdout.String(), "cv.md")
	})
}

type exporterFunc func(string) (string, error)

func (f exporterFunc) Export(src string) (string, error) { return f(src) }

func TestRewriteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints rewritten content", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps("# Jane")
		deps.Rewriter = &mock.Rewriter{
			RewriteFn: func(_ context.Context, content, instructions string) (string, error) {
				assert.Equal(t, "target SRE roles", instructions)
				return content + "\n\n## Summary\n- SRE", nil
			},
		}

		err := (&main.RewriteCmd{File: "-", Instructions: "target SRE roles"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "# Jane\n\n## Summary\n- SRE\n", stdout.String())
	})

	t.Run("reports errors", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps("# Jane")
		deps.Rewriter = &mock.Rewriter{
			RewriteFn: func(context.Context, string, string) (string, error) {
				return "", errors.New("quota")
			},
		}

		err := (&main.RewriteCmd{File: "-"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, "error: Internal error.\n", stderr.String())
	})
}

func TestServeCmd_Run_StopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	deps, stdout, _ := newDeps("")
	deps.Ctx = ctx
	deps.Logger = discardLogger()
	srv := &server{listening: make(chan struct{}), stopped: make(chan struct{})}
	deps.Server = srv

	done := make(chan error, 1)
	go func() { done <- (&main.ServeCmd{Addr: ":0"}).Run(deps) }()

	<-srv.listening
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
	assert.Contains(t, stdout.String(), "listening on :0")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

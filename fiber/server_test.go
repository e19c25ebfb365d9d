package fiber_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/resumekit"
	"github.com/fwojciec/resumekit/compose"
	rkfiber "github.com/fwojciec/resumekit/fiber"
	"github.com/fwojciec/resumekit/goldmark"
	"github.com/fwojciec/resumekit/guard"
	"github.com/fwojciec/resumekit/html"
	"github.com/fwojciec/resumekit/jsonschema"
	"github.com/fwojciec/resumekit/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *rkfiber.Server {
	t.Helper()

	codec, err := jsonschema.NewCodec()
	require.NoError(t, err)

	s := rkfiber.NewServer()
	s.Sanitizer = goldmark.NewSanitizer()
	s.Markup = html.NewRenderer()
	s.Guard = guard.NewGuard(mock.NewMemoryStore(), codec)
	s.Previewer = compose.NewPreviewer(&mock.Composer{
		ComposeFn: func(_ context.Context, content string) (*resumekit.PDFDocument, error) {
			if strings.TrimSpace(content) == "" {
				return nil, resumekit.Errorf(resumekit.EINVALID, "Resume content is empty.")
			}
			return &resumekit.PDFDocument{ID: "doc-1", Data: []byte("%PDF-1.4"), PageCount: 1, Filename: "Jane Doe.pdf"}, nil
		},
	})
	s.Extractor = &mock.Extractor{
		ExtractFn: func(_ context.Context, doc *resumekit.UploadedDocument) (string, error) {
			if doc.Format() == resumekit.FormatLegacyWord {
				return "", resumekit.Errorf(resumekit.EUNSUPPORTED, "Legacy .doc files are not supported.")
			}
			return string(doc.Data), nil
		},
	}
	return s
}

func do(t *testing.T, s *rkfiber.Server, req *http.Request) (*http.Response, []byte) {
	t.Helper()

	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func postJSON(path string, v any) *http.Request {
	b, _ := json.Marshal(v)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func upload(t *testing.T, name, mediaType string, data []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+name+`"`)
	h.Set("Content-Type", mediaType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/extract", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestServer_Extract(t *testing.T) {
	t.Parallel()

	t.Run("returns extracted text", func(t *testing.T) {
		t.Parallel()

		resp, body := do(t, newServer(t), upload(t, "cv.txt", "text/plain", []byte("Jane Doe")))

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var got map[string]string
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, "Jane Doe", got["text"])
		assert.Equal(t, "cv.txt", got["name"])
	})

	t.Run("maps unsupported format to 415", func(t *testing.T) {
		t.Parallel()

		resp, body := do(t, newServer(t), upload(t, "cv.doc", "application/msword", []byte("x")))

		assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
		assert.Contains(t, string(body), "unsupported_format")
	})

	t.Run("missing file is a bad request", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/api/extract", nil)
		resp, _ := do(t, newServer(t), req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestServer_Sanitize(t *testing.T) {
	t.Parallel()

	resp, body := do(t, newServer(t), postJSON("/api/sanitize", map[string]string{
		"content": "# Jane\n\n[site](https://jane.dev) [bad](javascript:alert(1))",
	}))

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got struct {
		HTML    string `json:"html"`
		Empty   bool   `json:"empty"`
		Blocked []struct {
			Kind   string `json:"kind"`
			Reason string `json:"reason"`
		} `json:"blocked"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.False(t, got.Empty)
	require.Len(t, got.Blocked, 1)
	assert.Equal(t, "link", got.Blocked[0].Kind)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(got.HTML))
	require.NoError(t, err)
	assert.Equal(t, "Jane", doc.Find("h1").Text())
	assert.Equal(t, 1, doc.Find("a").Length())
	href, _ := doc.Find("a").Attr("href")
	assert.Equal(t, "https://jane.dev", href)
}

func TestServer_ComposeAndPreview(t *testing.T) {
	t.Parallel()

	s := newServer(t)

	resp, _ := do(t, s, httptest.NewRequest(http.MethodGet, "/preview", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body := do(t, s, postJSON("/api/compose", map[string]string{"content": "# Jane Doe"}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var composed map[string]any
	require.NoError(t, json.Unmarshal(body, &composed))
	assert.Equal(t, "doc-1", composed["id"])
	assert.Equal(t, "/api/documents/doc-1.pdf", composed["url"])

	resp, body = do(t, s, httptest.NewRequest(http.MethodGet, "/api/documents/doc-1.pdf", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, `inline; filename="Jane Doe.pdf"`, resp.Header.Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.4", string(body))

	resp, _ = do(t, s, httptest.NewRequest(http.MethodGet, "/api/documents/doc-1.pdf?download=true", nil))
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Disposition"), "attachment;"))

	resp, _ = do(t, s, httptest.NewRequest(http.MethodGet, "/api/documents/other.pdf", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = do(t, s, httptest.NewRequest(http.MethodGet, "/preview?zoom=180", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	require.NoError(t, err)
	src, _ := page.Find("iframe").Attr("src")
	assert.Equal(t, "/api/documents/doc-1.pdf#toolbar=0&navpanes=0&zoom=175", src)
	assert.Equal(t, "175%", page.Find(".zoom").Text())
	in, _ := page.Find(`a[aria-label="Zoom in"]`).Attr("href")
	assert.Equal(t, "/preview?zoom=200", in)
	out, _ := page.Find(`a[aria-label="Zoom out"]`).Attr("href")
	assert.Equal(t, "/preview?zoom=150", out)
}

func TestServer_ComposeEmpty(t *testing.T) {
	t.Parallel()

	resp, body := do(t, newServer(t), postJSON("/api/compose", map[string]string{"content": " "}))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "Resume content is empty.")
}

func TestServer_Login(t *testing.T) {
	t.Parallel()

	s := newServer(t)

	for i := 0; i < resumekit.MaxAttempts; i++ {
		resp, _ := do(t, s, httptest.NewRequest(http.MethodPost, "/api/login/check", nil))
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
		resp, _ = do(t, s, httptest.NewRequest(http.MethodPost, "/api/login/failure", nil))
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, body := do(t, s, httptest.NewRequest(http.MethodGet, "/api/login/status", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var st struct {
		Locked                  bool       `json:"locked"`
		RemainingAttempts       int        `json:"remainingAttempts"`
		RemainingLockoutMinutes int        `json:"remainingLockoutMinutes"`
		LockedUntil             *time.Time `json:"lockedUntil"`
	}
	require.NoError(t, json.Unmarshal(body, &st))
	assert.True(t, st.Locked)
	assert.Equal(t, 0, st.RemainingAttempts)
	assert.Equal(t, 15, st.RemainingLockoutMinutes)
	assert.NotNil(t, st.LockedUntil)

	resp, body = do(t, s, httptest.NewRequest(http.MethodPost, "/api/login/check", nil))
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Contains(t, string(body), "Try again in 15 minutes.")

	resp, _ = do(t, s, httptest.NewRequest(http.MethodPost, "/api/login/success", nil))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, s, httptest.NewRequest(http.MethodPost, "/api/login/check", nil))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestStatusCode(t *testing.T) {
	t.Parallel()

	tests := map[string]int{
		resumekit.EINVALID:     http.StatusBadRequest,
		resumekit.EAUTH:        http.StatusUnauthorized,
		resumekit.ETIMEOUT:     http.StatusGatewayTimeout,
		resumekit.ERATELIMITED: http.StatusTooManyRequests,
		resumekit.EINTERNAL:    http.StatusInternalServerError,
		"unknown":              http.StatusInternalServerError,
	}
	for code, want := range tests {
		assert.Equal(t, want, rkfiber.StatusCode(code), code)
	}
}

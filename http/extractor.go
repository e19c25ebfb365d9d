// Package http provides the remote PDF text extraction client. PDFs are
// posted as multipart uploads to an extraction endpoint authenticated with
// the signed-in user's bearer token.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/fwojciec/resumekit"
	"golang.org/x/time/rate"
)

// DefaultExtractTimeout bounds a single extraction call.
const DefaultExtractTimeout = 60 * time.Second

// MaxResponseSize bounds the extraction response body.
const MaxResponseSize = 32 << 20

// FileField is the multipart field carrying the document.
const FileField = "file"

// UnreachableMessage is reported when the server cannot be reached.
const UnreachableMessage = "Unable to reach the extraction server. Please check your connection and try again."

// Ensure Extractor implements resumekit.Extractor at compile time.
var _ resumekit.Extractor = (*Extractor)(nil)

// Extractor sends PDFs to a remote extraction service.
type Extractor struct {
	endpoint    string
	apiKey      string
	credentials resumekit.CredentialSource
	client      *http.Client
	timeout     time.Duration
	limiter     *rate.Limiter
	now         func() time.Time
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithTimeout sets the per-call timeout.
// Defaults to DefaultExtractTimeout (60s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(e *Extractor) {
		e.timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(e *Extractor) {
		e.client = c
	}
}

// WithAPIKey sets the value of the apikey header.
func WithAPIKey(key string) Option {
	return func(e *Extractor) {
		e.apiKey = key
	}
}

// WithRateLimit paces outgoing calls to r per second with the given burst.
func WithRateLimit(r float64, burst int) Option {
	return func(e *Extractor) {
		e.limiter = rate.NewLimiter(rate.Limit(r), burst)
	}
}

// WithClock overrides the clock used to check credential expiry.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) {
		e.now = now
	}
}

// NewExtractor creates an Extractor posting to endpoint.
func NewExtractor(endpoint string, credentials resumekit.CredentialSource, opts ...Option) *Extractor {
	e := &Extractor{
		endpoint:    endpoint,
		credentials: credentials,
		timeout:     DefaultExtractTimeout,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.client == nil {
		e.client = &http.Client{}
	}
	return e
}

type extractResponse struct {
	Text  *string `json:"text"`
	Error string  `json:"error"`
}

// Extract uploads doc and returns the text reported by the service.
func (e *Extractor) Extract(ctx context.Context, doc *resumekit.UploadedDocument) (string, error) {
	token, err := e.token(ctx)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return "", timeoutError()
		}
	}

	body, contentType, err := encodeUpload(doc)
	if err != nil {
		return "", fmt.Errorf("encode upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, body)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	if e.apiKey != "" {
		req.Header.Set("apikey", e.apiKey)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", timeoutError()
		}
		return "", resumekit.Errorf(resumekit.EUNREACHABLE, UnreachableMessage)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		if ctx.Err() != nil {
			return "", timeoutError()
		}
		return "", resumekit.Errorf(resumekit.EUNREACHABLE, UnreachableMessage)
	}

	var out extractResponse
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil && out.Error != "" {
			return "", resumekit.Errorf(resumekit.ESERVER, "%s", out.Error)
		}
		return "", resumekit.Errorf(resumekit.ESERVER, "PDF extraction failed with status %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return "", resumekit.Errorf(resumekit.ESERVER, "PDF extraction returned an unreadable response")
	}
	if out.Text == nil || strings.TrimSpace(*out.Text) == "" {
		return "", resumekit.Errorf(resumekit.EEMPTY, "No text could be extracted from %q.", doc.Name)
	}
	return *out.Text, nil
}

func (e *Extractor) token(ctx context.Context) (string, error) {
	if e.credentials == nil {
		return "", resumekit.Errorf(resumekit.EAUTH, "Sign in to extract text from PDF files.")
	}
	cred, err := e.credentials.Credential(ctx)
	if err != nil {
		var appErr *resumekit.Error
		if errors.As(err, &appErr) {
			return "", err
		}
		return "", fmt.Errorf("load credential: %w", err)
	}
	if !cred.Valid(e.now()) {
		return "", resumekit.Errorf(resumekit.EAUTH, "Sign in to extract text from PDF files.")
	}
	return cred.AccessToken, nil
}

func timeoutError() error {
	return resumekit.Errorf(resumekit.ETIMEOUT, "PDF extraction timed out. Please try again.")
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func encodeUpload(doc *resumekit.UploadedDocument) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	mediaType := doc.MediaType
	if mediaType == "" {
		mediaType = resumekit.MediaTypePDF
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, FileField, quoteEscaper.Replace(doc.Name)))
	h.Set("Content-Type", mediaType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(doc.Data); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

// Ensure StaticCredential implements resumekit.CredentialSource at compile time.
var _ resumekit.CredentialSource = StaticCredential{}

// StaticCredential is a CredentialSource returning a fixed credential,
// typically loaded from configuration. An empty token means signed out.
type StaticCredential struct {
	Token     string
	ExpiresAt time.Time
}

// Credential returns the configured credential or nil when Token is empty.
func (s StaticCredential) Credential(context.Context) (*resumekit.Credential, error) {
	if s.Token == "" {
		return nil, nil
	}
	return &resumekit.Credential{AccessToken: s.Token, ExpiresAt: s.ExpiresAt}, nil
}

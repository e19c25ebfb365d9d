package resumekit

import (
	"context"
	"time"
)

// Extractor extracts plain text from an uploaded document.
type Extractor interface {
	// Extract returns the document's text. Failures are *Error values
	// whose code names the failure kind (EUNSUPPORTED, EMALFORMED, EAUTH,
	// ETIMEOUT, ESERVER, EEMPTY, EUNREACHABLE). Results are never cached
	// and failed calls are never retried.
	Extract(ctx context.Context, doc *UploadedDocument) (string, error)
}

// Credential is the bearer credential of the signed-in user.
type Credential struct {
	AccessToken string
	ExpiresAt   time.Time
}

// Valid reports whether the credential can be presented at now.
// A zero ExpiresAt never expires.
func (c *Credential) Valid(now time.Time) bool {
	if c == nil || c.AccessToken == "" {
		return false
	}
	return c.ExpiresAt.IsZero() || now.Before(c.ExpiresAt)
}

// CredentialSource provides the current user's credential.
type CredentialSource interface {
	// Credential returns nil when no one is signed in.
	Credential(ctx context.Context) (*Credential, error)
}

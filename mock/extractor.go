package mock

import (
	"context"

	"github.com/fwojciec/resumekit"
)

var _ resumekit.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of resumekit.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, doc *resumekit.UploadedDocument) (string, error)
}

func (e *Extractor) Extract(ctx context.Context, doc *resumekit.UploadedDocument) (string, error) {
	return e.ExtractFn(ctx, doc)
}

var _ resumekit.CredentialSource = (*CredentialSource)(nil)

// CredentialSource is a mock implementation of resumekit.CredentialSource.
type CredentialSource struct {
	CredentialFn func(ctx context.Context) (*resumekit.Credential, error)
}

func (s *CredentialSource) Credential(ctx context.Context) (*resumekit.Credential, error) {
	return s.CredentialFn(ctx)
}

package resumekit

import "context"

// Rewriter rewrites resume content, e.g. to target a job description.
type Rewriter interface {
	// Rewrite returns the rewritten content in the same markdown dialect
	// as the input. An empty instructions string asks for a general polish.
	Rewrite(ctx context.Context, content, instructions string) (string, error)
}

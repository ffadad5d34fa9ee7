package sentence

import "context"

// TextRewriter rewrites a document body before sentence splitting. It models
// optional preprocessing such as coreference resolution; implementations may
// call out to external services.
type TextRewriter interface {
	Rewrite(ctx context.Context, body string) (string, error)
}

// IdentityRewriter returns the body unchanged. It is the default rewriter.
type IdentityRewriter struct{}

// Rewrite returns body as-is.
func (IdentityRewriter) Rewrite(_ context.Context, body string) (string, error) {
	return body, nil
}

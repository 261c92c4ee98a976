package port

import "context"

// TextCleaner abstracts the optional second-pass markdown cleanup.
// Enabled reports whether the backing service is configured; when it
// returns false, Clean is never called.
type TextCleaner interface {
	Clean(ctx context.Context, markdown string) (string, error)
	Enabled() bool
}

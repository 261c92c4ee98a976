package cleanup

import "context"

// NoopCleaner is used when no cleanup API key is configured. It never
// runs; Enabled gates all calls, and Clean echoes its input as a safety
// net.
type NoopCleaner struct{}

// NewNoopCleaner creates a disabled cleaner.
func NewNoopCleaner() *NoopCleaner {
	return &NoopCleaner{}
}

func (n *NoopCleaner) Enabled() bool { return false }

func (n *NoopCleaner) Clean(ctx context.Context, markdown string) (string, error) {
	return markdown, nil
}

// Package noop provides a disabled ArchiveStore for deployments without
// an archive bucket.
package noop

import (
	"context"

	"mdocr/internal/port"
)

type store struct{}

// NewStore creates a disabled archive store.
func NewStore() port.ArchiveStore {
	return &store{}
}

func (s *store) Enabled() bool { return false }

func (s *store) Archive(ctx context.Context, input port.ArchiveInput) (string, error) {
	return "", nil
}

package port

import "context"

// ArchiveInput captures one conversion result to be archived.
type ArchiveInput struct {
	Key         string
	Body        []byte
	ContentType string
}

// ArchiveStore abstracts optional object-storage archival of generated
// markdown. Archive returns a presigned retrieval URL. Archival is best
// effort; callers must not fail a conversion on an archive error.
type ArchiveStore interface {
	Archive(ctx context.Context, input ArchiveInput) (string, error)
	Enabled() bool
}

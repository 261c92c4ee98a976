package port

import "context"

// DocumentStore abstracts the hosted file store that OCR reads from.
// Upload returns an opaque remote file id; SignedURL exchanges that id
// for a time-limited retrieval URL.
type DocumentStore interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
	SignedURL(ctx context.Context, fileID string) (string, error)
}

package service

import (
	"sync"

	"github.com/google/uuid"
)

// Download is one registered markdown file available for download.
type Download struct {
	Path string
	Name string
}

// DownloadRegistry maps opaque ids to persisted temp files so raw
// filesystem paths never cross the HTTP boundary. Entries live for the
// process lifetime, same as the temp files themselves.
type DownloadRegistry struct {
	mu    sync.Mutex
	files map[uuid.UUID]Download
}

// NewDownloadRegistry creates an empty registry.
func NewDownloadRegistry() *DownloadRegistry {
	return &DownloadRegistry{files: make(map[uuid.UUID]Download)}
}

// Add registers a file and returns its download id.
func (r *DownloadRegistry) Add(path, name string) uuid.UUID {
	id := uuid.New()
	r.mu.Lock()
	r.files[id] = Download{Path: path, Name: name}
	r.mu.Unlock()
	return id
}

// Get looks up a registered file by id.
func (r *DownloadRegistry) Get(id uuid.UUID) (Download, bool) {
	r.mu.Lock()
	d, ok := r.files[id]
	r.mu.Unlock()
	return d, ok
}

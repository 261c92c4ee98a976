package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdocr/internal/service"
)

func TestDownloadRegistry_AddAndGet(t *testing.T) {
	r := service.NewDownloadRegistry()

	id := r.Add("/tmp/mdocr-1.md", "report.md")
	d, ok := r.Get(id)

	require.True(t, ok)
	assert.Equal(t, "/tmp/mdocr-1.md", d.Path)
	assert.Equal(t, "report.md", d.Name)
}

func TestDownloadRegistry_UnknownID(t *testing.T) {
	r := service.NewDownloadRegistry()

	_, ok := r.Get(uuid.New())

	assert.False(t, ok)
}

func TestDownloadRegistry_UniqueIDs(t *testing.T) {
	r := service.NewDownloadRegistry()

	a := r.Add("/tmp/a.md", "a.md")
	b := r.Add("/tmp/b.md", "b.md")

	assert.NotEqual(t, a, b)
}

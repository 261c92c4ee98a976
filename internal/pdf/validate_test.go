package pdf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdocr/internal/domain"
	"mdocr/internal/pdf"
)

func TestPageCount_RejectsGarbage(t *testing.T) {
	_, err := pdf.PageCount([]byte("this is not a pdf"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidPDF)
}

func TestPageCount_RejectsEmpty(t *testing.T) {
	_, err := pdf.PageCount(nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidPDF)
}

func TestPageCount_RejectsTruncatedHeader(t *testing.T) {
	// A PDF header alone is not a parseable document.
	_, err := pdf.PageCount([]byte("%PDF-1.7\n"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidPDF)
}

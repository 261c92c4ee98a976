// Package pdf provides local PDF sanity checks so corrupt uploads are
// rejected before any OCR quota is spent.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"mdocr/internal/domain"
)

// PageCount parses the PDF and returns its page count. The count is
// advisory; the OCR response remains the source of truth for page
// markers. Returns domain.ErrInvalidPDF for anything pdfcpu rejects.
func PageCount(data []byte) (int, error) {
	count, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrInvalidPDF, err)
	}
	if count < 1 {
		return 0, fmt.Errorf("%w: document has no pages", domain.ErrInvalidPDF)
	}
	return count, nil
}

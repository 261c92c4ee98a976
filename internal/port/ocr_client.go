package port

import (
	"context"

	"mdocr/internal/domain"
)

// OCRInput carries the parameters for one OCR invocation.
type OCRInput struct {
	// DocumentURL is a signed retrieval URL for the uploaded document.
	DocumentURL string
	// IncludeImageAnnotations asks the service to attach a structured
	// description to each detected image region.
	IncludeImageAnnotations bool
}

// OCRClient abstracts the hosted OCR service. Process returns pages in
// document order; any service error fails the whole call atomically.
type OCRClient interface {
	Process(ctx context.Context, input OCRInput) ([]domain.Page, error)
}

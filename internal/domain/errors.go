package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrInvalidPDF          = errors.New("file is not a valid PDF")
	ErrDownloadNotFound    = errors.New("download not found")
	ErrMissingFile         = errors.New("no file provided")
)

// UploadError indicates the document could not be read or submitted to
// the document store (pipeline phase 1).
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string { return fmt.Sprintf("uploading document: %v", e.Err) }
func (e *UploadError) Unwrap() error { return e.Err }

// OCRError indicates the OCR service call failed (pipeline phase 2).
// The whole request fails; there are no partial results.
type OCRError struct {
	Err error
}

func (e *OCRError) Error() string { return fmt.Sprintf("running OCR: %v", e.Err) }
func (e *OCRError) Unwrap() error { return e.Err }

// CleanupError indicates the optional markdown cleanup call failed.
// Callers treat it as degraded, never fatal.
type CleanupError struct {
	Err error
}

func (e *CleanupError) Error() string { return fmt.Sprintf("cleaning markdown: %v", e.Err) }
func (e *CleanupError) Unwrap() error { return e.Err }

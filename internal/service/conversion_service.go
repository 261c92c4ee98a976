package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"mdocr/internal/assemble"
	"mdocr/internal/domain"
	"mdocr/internal/port"
)

// ConversionInput is the DTO for one PDF-to-markdown conversion.
type ConversionInput struct {
	FileName                 string
	Data                     []byte
	IncludeImageDescriptions bool
	Cleanup                  bool
	Progress                 port.ProgressFunc
}

// ConversionService defines the PDF-to-markdown pipeline contract.
type ConversionService interface {
	Convert(ctx context.Context, input ConversionInput) (*domain.ConversionResult, error)
	ConvertFile(ctx context.Context, path string, input ConversionInput) (*domain.ConversionResult, error)
	CleanupEnabled() bool
	ArchiveEnabled() bool
}

type conversionService struct {
	store   port.DocumentStore
	ocr     port.OCRClient
	cleaner port.TextCleaner
	archive port.ArchiveStore
}

// NewConversionService creates a ConversionService implementation.
func NewConversionService(
	store port.DocumentStore,
	ocr port.OCRClient,
	cleaner port.TextCleaner,
	archive port.ArchiveStore,
) ConversionService {
	return &conversionService{
		store:   store,
		ocr:     ocr,
		cleaner: cleaner,
		archive: archive,
	}
}

func (s *conversionService) CleanupEnabled() bool { return s.cleaner.Enabled() }
func (s *conversionService) ArchiveEnabled() bool { return s.archive.Enabled() }

// ConvertFile reads a local PDF and runs Convert on its content. The
// filename is derived from the path's final component.
func (s *conversionService) ConvertFile(ctx context.Context, path string, input ConversionInput) (*domain.ConversionResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.UploadError{Err: fmt.Errorf("reading %s: %w", path, err)}
	}
	input.FileName = filepath.Base(path)
	input.Data = data
	return s.Convert(ctx, input)
}

// Convert runs the pipeline strictly in sequence: upload, OCR, assemble,
// optional cleanup, persist. Failures in the first three phases abort
// the request with a typed phase error; cleanup and archive failures
// degrade to the best available output.
func (s *conversionService) Convert(ctx context.Context, input ConversionInput) (*domain.ConversionResult, error) {
	progress := input.Progress
	if progress == nil {
		progress = func(int, string) {}
	}

	progress(0, "Uploading PDF")
	fileID, err := s.store.Upload(ctx, input.FileName, input.Data)
	if err != nil {
		return nil, &domain.UploadError{Err: err}
	}
	signedURL, err := s.store.SignedURL(ctx, fileID)
	if err != nil {
		return nil, &domain.UploadError{Err: err}
	}

	progress(30, "Processing OCR")
	pages, err := s.ocr.Process(ctx, port.OCRInput{
		DocumentURL:             signedURL,
		IncludeImageAnnotations: input.IncludeImageDescriptions,
	})
	if err != nil {
		return nil, &domain.OCRError{Err: err}
	}

	progress(70, "Generating markdown")
	markdown := assemble.Document(pages, input.IncludeImageDescriptions)

	if input.Cleanup && s.cleaner.Enabled() {
		progress(90, "Cleaning up markdown")
		cleaned, err := s.cleaner.Clean(ctx, markdown)
		if err != nil {
			// Cleanup never fails the request; keep the assembled text.
			log.Printf("conversionService.Convert: %v", &domain.CleanupError{Err: err})
		} else {
			markdown = cleaned
		}
	}

	path, err := persistMarkdown(markdown)
	if err != nil {
		return nil, fmt.Errorf("persisting markdown: %w", err)
	}

	result := &domain.ConversionResult{
		Markdown: markdown,
		FilePath: path,
		Pages:    len(pages),
		Status:   fmt.Sprintf("✓ Successfully processed %d page(s)", len(pages)),
	}

	if s.archive.Enabled() {
		key := fmt.Sprintf("conversions/%s/%s.md", uuid.New(), baseName(input.FileName))
		archiveURL, err := s.archive.Archive(ctx, port.ArchiveInput{
			Key:         key,
			Body:        []byte(markdown),
			ContentType: "text/markdown; charset=utf-8",
		})
		if err != nil {
			log.Printf("conversionService.Convert: archiving markdown failed: %v", err)
		} else {
			result.ArchiveURL = archiveURL
		}
	}

	progress(100, "Complete")
	return result, nil
}

// persistMarkdown writes the markdown to a uniquely named temp file
// suffixed .md. The file is left for the OS temp-dir policy to reap.
func persistMarkdown(markdown string) (string, error) {
	f, err := os.CreateTemp("", "mdocr-*.md")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := f.WriteString(markdown); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing temp file: %w", err)
	}
	return f.Name(), nil
}

// baseName strips the extension from an uploaded filename for use in
// archive keys.
func baseName(name string) string {
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	if ext != "" {
		base = base[:len(base)-len(ext)]
	}
	if base == "" || base == "." {
		base = "document"
	}
	return base
}

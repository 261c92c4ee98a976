package handler

import (
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mdocr/internal/config"
	"mdocr/internal/domain"
	"mdocr/internal/markdown"
	"mdocr/internal/service"
)

// PageCounter validates PDF bytes and returns the local page count.
// Injected so tests can run without well-formed PDF fixtures.
type PageCounter func(data []byte) (int, error)

// ConvertHandler handles PDF-to-markdown conversion endpoints.
type ConvertHandler struct {
	conversionService service.ConversionService
	registry          *service.DownloadRegistry
	countPages        PageCounter
	uploadCfg         *config.UploadConfig
}

// NewConvertHandler creates a new ConvertHandler.
func NewConvertHandler(
	conversionService service.ConversionService,
	registry *service.DownloadRegistry,
	countPages PageCounter,
	uploadCfg *config.UploadConfig,
) *ConvertHandler {
	return &ConvertHandler{
		conversionService: conversionService,
		registry:          registry,
		countPages:        countPages,
		uploadCfg:         uploadCfg,
	}
}

// ConvertResponse is the payload for a successful conversion.
type ConvertResponse struct {
	Markdown   string `json:"markdown"`
	HTML       string `json:"html"`
	Pages      int    `json:"pages"`
	Status     string `json:"status"`
	DownloadID string `json:"download_id"`
	ArchiveURL string `json:"archive_url,omitempty"`
}

// Convert handles POST /api/v1/convert. It accepts a multipart PDF
// upload plus two boolean form fields (image_descriptions, cleanup,
// both defaulting to true) and runs the conversion pipeline.
func (h *ConvertHandler) Convert(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		HandleError(c, domain.ErrMissingFile)
		return
	}
	defer func() { _ = file.Close() }()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		HandleError(c, domain.ErrUnsupportedFileType)
		return
	}
	maxBytes := h.uploadCfg.MaxFileSizeMB * 1024 * 1024
	if header.Size > maxBytes {
		HandleError(c, domain.ErrFileTooLarge)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		HandleError(c, &domain.UploadError{Err: err})
		return
	}
	if int64(len(data)) > maxBytes {
		HandleError(c, domain.ErrFileTooLarge)
		return
	}

	localPages, err := h.countPages(data)
	if err != nil {
		HandleError(c, err)
		return
	}

	requestID, _ := c.Get("request_id")
	progress := func(percent int, stage string) {
		log.Printf("[%v] convert %s: %d%% %s", requestID, header.Filename, percent, stage)
	}

	result, err := h.conversionService.Convert(c.Request.Context(), service.ConversionInput{
		FileName:                 header.Filename,
		Data:                     data,
		IncludeImageDescriptions: formBool(c, "image_descriptions", true),
		Cleanup:                  formBool(c, "cleanup", true),
		Progress:                 progress,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	if result.Pages != localPages {
		log.Printf("[%v] convert %s: OCR returned %d page(s), local count was %d", requestID, header.Filename, result.Pages, localPages)
	}

	html, err := markdown.Render(result.Markdown)
	if err != nil {
		// Preview is best effort; the raw markdown is still returned.
		log.Printf("[%v] convert %s: preview render failed: %v", requestID, header.Filename, err)
		html = ""
	}

	downloadName := strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename)) + ".md"
	downloadID := h.registry.Add(result.FilePath, downloadName)

	RespondOK(c, ConvertResponse{
		Markdown:   result.Markdown,
		HTML:       html,
		Pages:      result.Pages,
		Status:     result.Status,
		DownloadID: downloadID.String(),
		ArchiveURL: result.ArchiveURL,
	})
}

// Download handles GET /api/v1/convert/:id/download. It streams the
// persisted markdown file registered under the given id.
func (h *ConvertHandler) Download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid download id")
		return
	}

	d, ok := h.registry.Get(id)
	if !ok {
		HandleError(c, domain.ErrDownloadNotFound)
		return
	}

	c.FileAttachment(d.Path, d.Name)
}

// Features handles GET /api/v1/features so the UI can disable controls
// for unconfigured integrations.
func (h *ConvertHandler) Features(c *gin.Context) {
	RespondOK(c, gin.H{
		"cleanup_enabled": h.conversionService.CleanupEnabled(),
		"archive_enabled": h.conversionService.ArchiveEnabled(),
	})
}

// formBool reads a boolean form field, defaulting when absent or
// unparseable.
func formBool(c *gin.Context, field string, def bool) bool {
	val := c.PostForm(field)
	if val == "" {
		return def
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return def
	}
	return parsed
}

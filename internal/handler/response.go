package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"mdocr/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error
// codes. Phase errors from the conversion pipeline map to 502 since the
// failure happened in an upstream service.
func MapDomainError(err error) (status int, code string) {
	var uploadErr *domain.UploadError
	var ocrErr *domain.OCRError

	switch {
	case errors.Is(err, domain.ErrMissingFile):
		return http.StatusBadRequest, "MISSING_FILE"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"
	case errors.Is(err, domain.ErrInvalidPDF):
		return http.StatusBadRequest, "INVALID_PDF"
	case errors.Is(err, domain.ErrDownloadNotFound):
		return http.StatusNotFound, "DOWNLOAD_NOT_FOUND"
	case errors.As(err, &uploadErr):
		return http.StatusBadGateway, "UPLOAD_FAILED"
	case errors.As(err, &ocrErr):
		return http.StatusBadGateway, "OCR_FAILED"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// HandleError maps a domain error and sends the appropriate error
// response. The message carries the failure glyph the UI surfaces in
// its status field.
func HandleError(c *gin.Context, err error) {
	status, code := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%v] request failed: %v", requestID, err)
	}
	RespondError(c, status, code, "✗ Error processing PDF: "+err.Error())
}

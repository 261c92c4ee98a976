// Package mistral implements the Mistral API client used for document
// upload, signed URL retrieval, and OCR processing.
package mistral

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"mdocr/internal/config"
	"mdocr/internal/domain"
	"mdocr/internal/port"
)

const defaultBaseURL = "https://api.mistral.ai"

// Client talks to the Mistral files and OCR endpoints. It implements
// both port.DocumentStore and port.OCRClient.
type Client struct {
	apiKey   string
	ocrModel string
	baseURL  string
	client   *http.Client
}

// NewClient creates a Mistral API client from config.
func NewClient(cfg *config.MistralConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.OCRModel
	if model == "" {
		model = "mistral-ocr-latest"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 300 * time.Second
	}
	return &Client{
		apiKey:   cfg.APIKey,
		ocrModel: model,
		baseURL:  baseURL,
		client:   &http.Client{Timeout: timeout},
	}
}

// Upload submits (filename, data) to the files endpoint under the "ocr"
// purpose tag and returns the remote file id.
func (c *Client) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if err := mw.WriteField("purpose", "ocr"); err != nil {
		return "", fmt.Errorf("writing purpose field: %w", err)
	}
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("creating form file: %w", err)
	}
	if _, err := fw.Write(data); err != nil {
		return "", fmt.Errorf("writing file content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("closing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/files", &body)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	respBody, err := c.do(req)
	if err != nil {
		return "", err
	}

	var uploaded struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(respBody, &uploaded); err != nil {
		return "", fmt.Errorf("unmarshaling upload response: %w", err)
	}
	if uploaded.ID == "" {
		return "", fmt.Errorf("upload response missing file id")
	}
	return uploaded.ID, nil
}

// SignedURL exchanges a remote file id for a time-limited retrieval URL.
func (c *Client) SignedURL(ctx context.Context, fileID string) (string, error) {
	url := fmt.Sprintf("%s/v1/files/%s/url", c.baseURL, fileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	respBody, err := c.do(req)
	if err != nil {
		return "", err
	}

	var signed struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(respBody, &signed); err != nil {
		return "", fmt.Errorf("unmarshaling signed URL response: %w", err)
	}
	if signed.URL == "" {
		return "", fmt.Errorf("signed URL response missing url")
	}
	return signed.URL, nil
}

// Process runs OCR against a signed document URL and returns the pages
// in document order. When image annotations are requested, the request
// carries a response-format schema with a single required description
// field, matching what the OCR endpoint expects for bbox annotations.
func (c *Client) Process(ctx context.Context, input port.OCRInput) ([]domain.Page, error) {
	reqBody := map[string]interface{}{
		"model": c.ocrModel,
		"document": map[string]interface{}{
			"type":         "document_url",
			"document_url": input.DocumentURL,
		},
	}
	if input.IncludeImageAnnotations {
		reqBody["bbox_annotation_format"] = imageAnnotationFormat()
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/ocr", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	respBody, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var resp ocrResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling OCR response: %w", err)
	}

	pages := make([]domain.Page, 0, len(resp.Pages))
	for _, p := range resp.Pages {
		page := domain.Page{
			Index:    p.Index,
			Markdown: p.Markdown,
		}
		for _, img := range p.Images {
			page.Images = append(page.Images, domain.Image{
				ID:         img.ID,
				Annotation: img.ImageAnnotation,
			})
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling mistral API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mistral API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 500))
	}
	return respBody, nil
}

// imageAnnotationFormat is the response-format schema asking the OCR
// service to annotate each detected image with a description field.
func imageAnnotationFormat() map[string]interface{} {
	return map[string]interface{}{
		"type": "json_schema",
		"json_schema": map[string]interface{}{
			"name":   "image_description",
			"strict": true,
			"schema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"description": map[string]interface{}{
						"type":        "string",
						"description": "A detailed description of the image content",
					},
				},
				"required":             []string{"description"},
				"additionalProperties": false,
			},
		},
	}
}

// ocrResponse models the Mistral OCR endpoint response.
type ocrResponse struct {
	Pages []struct {
		Index    int    `json:"index"`
		Markdown string `json:"markdown"`
		Images   []struct {
			ID              string `json:"id"`
			ImageAnnotation string `json:"image_annotation"`
		} `json:"images"`
	} `json:"pages"`
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

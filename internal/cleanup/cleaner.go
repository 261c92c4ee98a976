// Package cleanup implements the optional second-pass markdown cleanup
// against a hosted chat-completions endpoint.
package cleanup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"mdocr/internal/config"
	"mdocr/internal/port"
)

// instructionPrompt is the fixed instruction sent ahead of the markdown
// body. The model receives the assembled document verbatim after it.
const instructionPrompt = `You are given a markdown document produced by OCR from a paginated PDF. Rewrite it as follows:
- Remove all "<!-- Page N -->" markers.
- Merge paragraphs that were split across page boundaries back into single paragraphs.
- Convert dotted table-of-contents and list-of-tables sections into proper markdown tables.
- Normalize spacing inside markdown tables.
- Preserve all headings, lists, and content verbatim; do not summarize, reorder, or drop anything.
- Return only the markdown document itself, not wrapped in a code fence.`

// Cleaner sends assembled markdown to a chat-completions endpoint with a
// fixed cleanup instruction. It implements port.TextCleaner.
type Cleaner struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewCleaner creates a chat-completions backed cleaner from config.
func NewCleaner(cfg *config.CleanupConfig) *Cleaner {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.mistral.ai"
	}
	model := cfg.Model
	if model == "" {
		model = "mistral-small-latest"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Cleaner{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: baseURL + "/v1/chat/completions",
		client:   &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether an API key is configured.
func (c *Cleaner) Enabled() bool {
	return c.apiKey != ""
}

// Clean sends the markdown with the fixed instruction prompt and returns
// the model output. Callers fall back to the input on any error.
func (c *Cleaner) Clean(ctx context.Context, markdown string) (string, error) {
	reqBody := map[string]interface{}{
		"model": c.model,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": instructionPrompt + "\n\n" + markdown,
			},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling cleanup API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cleanup API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty response from cleanup API: no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

var _ port.TextCleaner = (*Cleaner)(nil)

package mistral_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdocr/internal/config"
	"mdocr/internal/mistral"
	"mdocr/internal/port"
)

func newTestClient(serverURL string) *mistral.Client {
	return mistral.NewClient(&config.MistralConfig{
		APIKey:      "test-key",
		OCRModel:    "mistral-ocr-latest",
		BaseURL:     serverURL,
		TimeoutSecs: 30,
	})
}

func TestUpload_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/files", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "ocr", r.FormValue("purpose"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		assert.Equal(t, "doc.pdf", header.Filename)
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-1.4 body"), content)

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "file-abc"})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	id, err := c.Upload(context.Background(), "doc.pdf", []byte("%PDF-1.4 body"))

	require.NoError(t, err)
	assert.Equal(t, "file-abc", id)
}

func TestUpload_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"bad key"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Upload(context.Background(), "doc.pdf", []byte("x"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestUpload_MissingID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Upload(context.Background(), "doc.pdf", []byte("x"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing file id")
}

func TestSignedURL_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/files/file-abc/url", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(map[string]string{"url": "https://signed.example/abc"})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	url, err := c.SignedURL(context.Background(), "file-abc")

	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/abc", url)
}

func ocrSuccessResponse() map[string]interface{} {
	return map[string]interface{}{
		"pages": []map[string]interface{}{
			{
				"index":    0,
				"markdown": "# Page one",
				"images": []map[string]interface{}{
					{"id": "img-0.jpeg", "image_annotation": `{"description":"A chart."}`},
				},
			},
			{
				"index":    1,
				"markdown": "Page two",
			},
		},
	}
}

func TestProcess_WithAnnotations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/ocr", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Equal(t, "mistral-ocr-latest", reqBody["model"])

		doc := reqBody["document"].(map[string]interface{})
		assert.Equal(t, "document_url", doc["type"])
		assert.Equal(t, "https://signed.example/abc", doc["document_url"])

		format := reqBody["bbox_annotation_format"].(map[string]interface{})
		assert.Equal(t, "json_schema", format["type"])
		schema := format["json_schema"].(map[string]interface{})["schema"].(map[string]interface{})
		assert.Equal(t, []interface{}{"description"}, schema["required"])

		_ = json.NewEncoder(w).Encode(ocrSuccessResponse())
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	pages, err := c.Process(context.Background(), port.OCRInput{
		DocumentURL:             "https://signed.example/abc",
		IncludeImageAnnotations: true,
	})

	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "# Page one", pages[0].Markdown)
	require.Len(t, pages[0].Images, 1)
	assert.Equal(t, "img-0.jpeg", pages[0].Images[0].ID)
	assert.Equal(t, `{"description":"A chart."}`, pages[0].Images[0].Annotation)
	assert.Empty(t, pages[1].Images)
}

func TestProcess_WithoutAnnotations_NoFormatField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqBody map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		_, present := reqBody["bbox_annotation_format"]
		assert.False(t, present)

		_ = json.NewEncoder(w).Encode(ocrSuccessResponse())
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Process(context.Background(), port.OCRInput{DocumentURL: "https://signed.example/abc"})

	require.NoError(t, err)
}

func TestProcess_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"could not parse document"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Process(context.Background(), port.OCRInput{DocumentURL: "https://signed.example/abc"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 422")
}

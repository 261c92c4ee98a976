package domain

// Page is one page of an OCR response, in document order.
type Page struct {
	Index    int     `json:"index"`
	Markdown string  `json:"markdown"`
	Images   []Image `json:"images,omitempty"`
}

// Image is an image region detected on a page. Annotation holds the raw
// JSON-encoded annotation string returned by the OCR service; it is parsed
// lazily during assembly so a malformed annotation only affects itself.
type Image struct {
	ID         string `json:"id"`
	Annotation string `json:"annotation,omitempty"`
}

// ImageAnnotation is the decoded form of Image.Annotation.
type ImageAnnotation struct {
	Description string `json:"description"`
}

// ConversionResult is what one successful conversion produces. FilePath
// points at the persisted markdown temp file; it is set if and only if
// the conversion succeeded.
type ConversionResult struct {
	Markdown   string
	FilePath   string
	Pages      int
	Status     string
	ArchiveURL string
}

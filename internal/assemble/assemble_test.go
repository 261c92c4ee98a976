package assemble_test

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdocr/internal/assemble"
	"mdocr/internal/domain"
)

func annotation(desc string) string {
	return fmt.Sprintf(`{"description":%q}`, desc)
}

func TestDocument_PageMarkers_InOrder(t *testing.T) {
	pages := []domain.Page{
		{Index: 0, Markdown: "first"},
		{Index: 1, Markdown: "second"},
		{Index: 2, Markdown: "third"},
	}

	doc := assemble.Document(pages, false)

	markers := regexp.MustCompile(`<!-- Page (\d+) -->`).FindAllStringSubmatch(doc, -1)
	require.Len(t, markers, 3)
	for i, m := range markers {
		assert.Equal(t, fmt.Sprintf("%d", i+1), m[1])
	}
}

func TestDocument_TwoPages_NoImages(t *testing.T) {
	pages := []domain.Page{
		{Markdown: "# Title\n\nSome text."},
		{Markdown: "More text."},
	}

	doc := assemble.Document(pages, false)

	want := "<!-- Page 1 -->\n\n# Title\n\nSome text.\n\n<!-- Page 2 -->\n\nMore text.\n\n"
	assert.Equal(t, want, doc)
}

func TestDocument_EmptyInput(t *testing.T) {
	assert.Equal(t, "", assemble.Document(nil, true))
}

func TestDocument_ReplacesFirstPlaceholder(t *testing.T) {
	pages := []domain.Page{
		{
			Markdown: "Intro ![img-0.jpeg](img-0.jpeg) outro",
			Images:   []domain.Image{{ID: "img-0.jpeg", Annotation: annotation("A red triangle.")}},
		},
	}

	doc := assemble.Document(pages, true)

	assert.Equal(t, "<!-- Page 1 -->\n\nIntro A red triangle. outro\n\n", doc)
	assert.NotContains(t, doc, "![")
}

func TestDocument_PositionalSubstitution(t *testing.T) {
	pages := []domain.Page{
		{
			Markdown: "![a](a.png) middle ![b](b.png) end ![c](c.png)",
			Images: []domain.Image{
				{Annotation: annotation("first description")},
				{Annotation: annotation("second description")},
			},
		},
	}

	doc := assemble.Document(pages, true)

	assert.Contains(t, doc, "first description middle second description end ![c](c.png)")
}

func TestDocument_MinOfPlaceholdersAndAnnotations(t *testing.T) {
	tests := []struct {
		name         string
		placeholders int
		annotations  int
		wantReplaced int
	}{
		{"more placeholders", 3, 1, 1},
		{"more annotations", 1, 3, 1},
		{"equal", 2, 2, 2},
		{"no annotations", 2, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var md strings.Builder
			for i := 0; i < tt.placeholders; i++ {
				fmt.Fprintf(&md, "![img%d](u%d.png) ", i, i)
			}
			var images []domain.Image
			for i := 0; i < tt.annotations; i++ {
				images = append(images, domain.Image{Annotation: annotation(fmt.Sprintf("desc %d", i))})
			}

			doc := assemble.Document([]domain.Page{{Markdown: md.String(), Images: images}}, true)

			remaining := strings.Count(doc, "![img")
			assert.Equal(t, tt.placeholders-tt.wantReplaced, remaining)
			for i := 0; i < tt.wantReplaced; i++ {
				assert.Contains(t, doc, fmt.Sprintf("desc %d", i))
			}
		})
	}
}

func TestDocument_MalformedAnnotation_SkippedNotFatal(t *testing.T) {
	pages := []domain.Page{
		{
			Markdown: "![a](a.png) and ![b](b.png)",
			Images: []domain.Image{
				{Annotation: "not valid json {"},
				{Annotation: annotation("good description")},
			},
		},
		{Markdown: "second page untouched"},
	}

	doc := assemble.Document(pages, true)

	// The malformed annotation is dropped; the valid one still replaces
	// the first remaining placeholder.
	assert.Contains(t, doc, "good description and ![b](b.png)")
	assert.Contains(t, doc, "<!-- Page 2 -->\n\nsecond page untouched")
}

func TestDocument_EmptyDescription_LeavesPlaceholder(t *testing.T) {
	pages := []domain.Page{
		{
			Markdown: "![a](a.png)",
			Images:   []domain.Image{{Annotation: annotation("")}},
		},
	}

	doc := assemble.Document(pages, true)

	assert.Contains(t, doc, "![a](a.png)")
}

func TestDocument_DescriptionsDisabled_IgnoresAnnotations(t *testing.T) {
	pages := []domain.Page{
		{
			Markdown: "![a](a.png)",
			Images:   []domain.Image{{Annotation: annotation("should not appear")}},
		},
	}

	doc := assemble.Document(pages, false)

	assert.Contains(t, doc, "![a](a.png)")
	assert.NotContains(t, doc, "should not appear")
}

func TestDocument_AnnotationWithoutPlaceholder_NoOp(t *testing.T) {
	pages := []domain.Page{
		{
			Markdown: "plain text, no images",
			Images:   []domain.Image{{Annotation: annotation("orphan description")}},
		},
	}

	doc := assemble.Document(pages, true)

	assert.Equal(t, "<!-- Page 1 -->\n\nplain text, no images\n\n", doc)
}

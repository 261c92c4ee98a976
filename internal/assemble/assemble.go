// Package assemble stitches per-page OCR markdown into one document and
// substitutes image placeholders with their annotation descriptions.
package assemble

import (
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"

	"mdocr/internal/domain"
)

// imagePattern matches one markdown image placeholder, non-greedy.
var imagePattern = regexp.MustCompile(`!\[.*?\]\(.*?\)`)

// Document concatenates pages in order, each preceded by a
// "<!-- Page N -->" marker (1-based, by position in the slice) and
// followed by a blank-line separator. When includeDescriptions is set,
// image placeholders are replaced with annotation descriptions.
func Document(pages []domain.Page, includeDescriptions bool) string {
	var b strings.Builder
	for i, page := range pages {
		fmt.Fprintf(&b, "<!-- Page %d -->\n\n", i+1)
		md := page.Markdown
		if includeDescriptions && len(page.Images) > 0 {
			md = substituteDescriptions(md, page.Images, i+1)
		}
		b.WriteString(md)
		b.WriteString("\n\n")
	}
	return b.String()
}

// substituteDescriptions replaces placeholders strictly positionally:
// annotation i replaces the i-th remaining placeholder, one each.
// Excess annotations go unused; excess placeholders stay untouched.
// A malformed annotation is skipped on its own, never failing the page.
func substituteDescriptions(md string, images []domain.Image, pageNum int) string {
	for imgIdx, img := range images {
		if img.Annotation == "" {
			continue
		}
		var ann domain.ImageAnnotation
		if err := json.Unmarshal([]byte(img.Annotation), &ann); err != nil {
			log.Printf("assemble: skipping malformed annotation (page %d, image %d): %v", pageNum, imgIdx, err)
			continue
		}
		if ann.Description == "" {
			continue
		}
		loc := imagePattern.FindStringIndex(md)
		if loc == nil {
			continue
		}
		md = md[:loc[0]] + ann.Description + md[loc[1]:]
	}
	return md
}

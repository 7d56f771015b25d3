package docparse

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractPDF pulls plain text out of a PDF, one chunk per page. Empty
// input yields an empty slice. A document that cannot be parsed yields a
// single chunk carrying the error message so the page still has something
// to render instead of a blank screen.
func ExtractPDF(r io.ReaderAt, size int64) []string {
	if size == 0 {
		return []string{}
	}

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return []string{fmt.Sprintf("Unable to extract text from this PDF: %v", err)}
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text != "" {
			pages = append(pages, text)
		}
	}

	if pages == nil {
		return []string{}
	}
	return pages
}

// FromText wraps pasted raw text in the same chunk shape as ExtractPDF.
// Blank lines separating paragraphs stay inside one chunk; only a
// completely empty paste yields an empty slice.
func FromText(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{}
	}
	return []string{text}
}

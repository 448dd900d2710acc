// Package pdf provides the heuristic fallback extractor. It pulls flat text
// straight out of the PDF page content via ledongthuc/pdf, with a page-based
// title heuristic and no semantic sectioning.
package pdf

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/kmitrowski/paperparse"
)

// pageSeparator joins the text of consecutive pages.
const pageSeparator = "\n"

// Ensure Extractor implements paperparse.TextExtractor at compile time.
var _ paperparse.TextExtractor = (*Extractor)(nil)

// Extractor extracts flat text from PDF bytes.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract concatenates the plain text of every page in order. The title is
// the first non-empty line of the first page's text; the abstract is always
// empty. Unreadable individual pages are skipped; a document that cannot be
// opened at all is EINVALID.
func (e *Extractor) Extract(data []byte) (fields paperparse.Fields, err error) {
	// The underlying parser panics on some malformed documents; a corrupt
	// file must surface as an error, not take down the batch worker.
	defer func() {
		if r := recover(); r != nil {
			fields = paperparse.Fields{}
			err = paperparse.Errorf(paperparse.EINVALID, "cannot parse pdf: %v", r)
		}
	}()

	if len(data) == 0 {
		return paperparse.Fields{}, paperparse.Errorf(paperparse.EINVALID, "empty pdf payload")
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return paperparse.Fields{}, paperparse.Errorf(paperparse.EINVALID, "cannot open pdf: %v", err)
	}

	if r.NumPage() == 0 {
		return paperparse.Fields{}, paperparse.Errorf(paperparse.EINVALID, "pdf has no pages")
	}

	var pages []string
	var firstPageText string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)

		if i == 1 {
			firstPageText = text
		}
		if text == "" {
			continue
		}
		pages = append(pages, text)
	}

	return paperparse.Fields{
		Title: firstLine(firstPageText),
		Body:  strings.Join(pages, pageSeparator),
	}, nil
}

// firstLine returns the first non-empty line of s, trimmed.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if l := strings.TrimSpace(line); l != "" {
			return l
		}
	}
	return ""
}

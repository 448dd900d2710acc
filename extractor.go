package paperparse

import "context"

// Fields holds the text extracted from one document by either extraction
// path. Absent fields are empty strings, never errors.
type Fields struct {
	Title    string
	Abstract string
	Body     string
}

// HasContent reports whether the fields carry usable text. Only the abstract
// and body count; a title alone is not content.
func (f Fields) HasContent() bool {
	return f.Abstract != "" || f.Body != ""
}

// StructuredExtractor submits a PDF to the structured-extraction service and
// returns the markup document it produces.
type StructuredExtractor interface {
	// ProcessFulltext sends the PDF payload and returns the raw markup
	// response. A single failed attempt is terminal: implementations never
	// retry. Errors carry ETIMEOUT, EUNAVAILABLE or EEMPTY codes so the
	// caller can classify the failure.
	ProcessFulltext(ctx context.Context, filename string, data []byte) (string, error)
}

// MarkupExtractor pulls title, abstract and body out of a markup document.
type MarkupExtractor interface {
	// Extract walks the markup tree. Missing substructures degrade to empty
	// strings; only a totally unparseable document is an error (EINVALID).
	Extract(markup string) (Fields, error)
}

// TextExtractor extracts flat text directly from PDF bytes. It is the
// fallback path: no semantic sectioning, so the abstract is always empty.
type TextExtractor interface {
	// Extract returns the concatenated page text and a first-line title
	// heuristic. Unopenable documents are an error (EINVALID).
	Extract(data []byte) (Fields, error)
}

// Package hybrid orchestrates the two extraction paths for PDF articles.
// Parser runs the per-document fallback state machine; Runner drives a batch
// of files through it concurrently and aggregates statistics.
package hybrid

import (
	"context"

	"github.com/kmitrowski/paperparse"
)

// Parser decides, per document, which extraction path produces the article.
//
// The structured path (service + markup walk) always runs first and wins
// whenever it yields any usable text, even if the heuristic would have
// yielded more. Fields are never merged across paths, so the method stamp
// is unambiguous provenance.
type Parser struct {
	Structured paperparse.StructuredExtractor
	Markup     paperparse.MarkupExtractor
	Text       paperparse.TextExtractor
}

// Parse extracts one document and returns its article. It never fails at
// the document level: every failure mode folds into a FAILED article with
// empty text fields and zero lengths.
func (p *Parser) Parse(ctx context.Context, filename string, data []byte) *paperparse.Article {
	if fields, err := p.structured(ctx, filename, data); err == nil && fields.HasContent() {
		return structuredArticle(filename, fields)
	}

	// Fallback: flat text straight from the PDF. A title alone does not
	// count as heuristic success; the body has to be non-empty.
	if fields, err := p.Text.Extract(data); err == nil && fields.Body != "" {
		return heuristicArticle(filename, fields)
	}

	return failedArticle(filename)
}

// structured runs the service call and the markup field walk in sequence.
func (p *Parser) structured(ctx context.Context, filename string, data []byte) (paperparse.Fields, error) {
	markup, err := p.Structured.ProcessFulltext(ctx, filename, data)
	if err != nil {
		return paperparse.Fields{}, err
	}
	return p.Markup.Extract(markup)
}

// The article constructors below are the only way a method stamp gets onto
// an article, keeping illegal combinations (a STRUCTURED article with no
// content, a FAILED article with text) out of the program entirely.

func structuredArticle(filename string, fields paperparse.Fields) *paperparse.Article {
	a := &paperparse.Article{
		Filename: filename,
		Title:    fields.Title,
		Abstract: fields.Abstract,
		FullText: fields.Body,
		Method:   paperparse.MethodStructured,
	}
	a.RecomputeLengths()
	return a
}

func heuristicArticle(filename string, fields paperparse.Fields) *paperparse.Article {
	a := &paperparse.Article{
		Filename: filename,
		Title:    fields.Title,
		// The heuristic path cannot section text; its abstract stays empty
		// rather than borrowing from the structured attempt.
		Abstract: "",
		FullText: fields.Body,
		Method:   paperparse.MethodHeuristic,
	}
	a.RecomputeLengths()
	return a
}

func failedArticle(filename string) *paperparse.Article {
	a := &paperparse.Article{
		Filename: filename,
		Method:   paperparse.MethodFailed,
	}
	a.RecomputeLengths()
	return a
}

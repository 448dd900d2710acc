// Package tei extracts article fields from TEI-style markup documents
// produced by the structured extraction service.
//
// Lookups match on local element names only, so namespaced (default or
// prefixed) and bare variants of the same schema are all accepted. Every
// missing substructure degrades to an empty string; only a totally
// unparseable document is an error.
package tei

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/kmitrowski/paperparse"
)

// paragraphSeparator joins body paragraphs in document order.
const paragraphSeparator = "\n"

// Ensure Extractor implements paperparse.MarkupExtractor at compile time.
var _ paperparse.MarkupExtractor = (*Extractor)(nil)

// Extractor pulls title, abstract and body text out of a markup tree.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses the markup and returns the article fields.
func (e *Extractor) Extract(markup string) (paperparse.Fields, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(markup); err != nil {
		return paperparse.Fields{}, paperparse.Errorf(paperparse.EINVALID, "malformed markup document: %v", err)
	}

	root := doc.Root()
	if root == nil {
		return paperparse.Fields{}, paperparse.Errorf(paperparse.EINVALID, "markup document has no root element")
	}

	return paperparse.Fields{
		Title:    extractTitle(root),
		Abstract: extractAbstract(root),
		Body:     extractBody(root),
	}, nil
}

// extractTitle returns the text of the first title inside the document's
// first titleStmt. Reference lists carry their own title elements, so the
// lookup is anchored on titleStmt rather than taking any title in the tree.
func extractTitle(root *etree.Element) string {
	stmt := firstDescendant(root, "titleStmt")
	if stmt == nil {
		return ""
	}
	title := firstDescendant(stmt, "title")
	if title == nil {
		return ""
	}
	return textContent(title)
}

// extractAbstract returns all text under the first abstract element.
func extractAbstract(root *etree.Element) string {
	abstract := firstDescendant(root, "abstract")
	if abstract == nil {
		return ""
	}
	return textContent(abstract)
}

// extractBody concatenates the text of every paragraph under the first body
// element, in document order. A body without paragraph markup degrades to
// its flat text content.
func extractBody(root *etree.Element) string {
	body := firstDescendant(root, "body")
	if body == nil {
		return ""
	}

	var paragraphs []string
	for _, p := range descendants(body, "p") {
		if text := textContent(p); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}
	if len(paragraphs) == 0 {
		return textContent(body)
	}
	return strings.Join(paragraphs, paragraphSeparator)
}

// firstDescendant returns the first descendant of el with the given local
// tag name, in document order, or nil.
func firstDescendant(el *etree.Element, tag string) *etree.Element {
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			return child
		}
		if found := firstDescendant(child, tag); found != nil {
			return found
		}
	}
	return nil
}

// descendants returns all descendants of el with the given local tag name,
// in document order.
func descendants(el *etree.Element, tag string) []*etree.Element {
	var found []*etree.Element
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			found = append(found, child)
		}
		found = append(found, descendants(child, tag)...)
	}
	return found
}

// textContent collects every non-blank text node under el in document order,
// trims each, and joins them with single spaces.
func textContent(el *etree.Element) string {
	var parts []string
	collectText(el, &parts)
	return strings.Join(parts, " ")
}

func collectText(el *etree.Element, parts *[]string) {
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			if s := strings.TrimSpace(t.Data); s != "" {
				*parts = append(*parts, s)
			}
		case *etree.Element:
			collectText(t, parts)
		}
	}
}

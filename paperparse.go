// Package paperparse extracts structured text (title, abstract, body) from
// batches of PDF research articles. Each document first goes through a remote
// structured-extraction service that returns a TEI-style markup tree; when
// that path fails or yields no usable text, a direct PDF text extractor takes
// over. Every record is stamped with the method that produced it so the
// provenance of the text is never ambiguous.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or function (e.g. grobid/, tei/, pdf/,
// sqlite/, hybrid/).
package paperparse

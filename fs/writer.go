// Package fs writes extraction results to JSON files on disk.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/kmitrowski/paperparse"
)

// Output file names for the batch-level documents.
const (
	BatchFileName = "all_articles.json"
	StatsFileName = "parsing_statistics.json"
)

// maxNameLength caps the sanitized title portion of per-article file names,
// in runes, to stay clear of filesystem name limits.
const maxNameLength = 150

// Ensure Writer implements paperparse.ArticleWriter at compile time.
var _ paperparse.ArticleWriter = (*Writer)(nil)

// Writer writes articles and batch statistics as JSON files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteArticle writes one per-article file named from the sanitized title
// and the extraction method. Lengths are recomputed from the final strings
// immediately before serialization so they can never be stale on disk.
func (w *Writer) WriteArticle(ctx context.Context, article *paperparse.Article) error {
	article.RecomputeLengths()
	if err := article.Validate(); err != nil {
		return err
	}

	name := ArticleFileName(article)
	return w.writeJSON(name, article)
}

// WriteBatch writes the ordered collection of all articles.
func (w *Writer) WriteBatch(ctx context.Context, articles []*paperparse.Article) error {
	for _, article := range articles {
		article.RecomputeLengths()
		if err := article.Validate(); err != nil {
			return err
		}
	}
	// An empty batch still produces a file, with an empty array rather
	// than null.
	if articles == nil {
		articles = []*paperparse.Article{}
	}
	return w.writeJSON(BatchFileName, articles)
}

// WriteStats writes the batch statistics file.
func (w *Writer) WriteStats(ctx context.Context, stats *paperparse.BatchStats) error {
	return w.writeJSON(StatsFileName, stats)
}

func (w *Writer) writeJSON(name string, v any) error {
	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	return os.WriteFile(filepath.Join(w.baseDir, name), data, 0644)
}

// ArticleFileName derives the deterministic per-article file name:
// the sanitized title suffixed with the extraction method. An article
// without a title falls back to its source filename stem.
func ArticleFileName(article *paperparse.Article) string {
	name := SanitizeTitle(article.Title)
	if name == "" {
		name = SanitizeTitle(stem(article.Filename))
	}
	if name == "" {
		name = "article"
	}
	return name + "_" + string(article.Method) + ".json"
}

// SanitizeTitle makes a title safe for use as a file name: path separators
// and other path-unsafe characters become underscores, whitespace runs
// collapse to single spaces, and the result is length-capped.
func SanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' ||
			r == '"' || r == '<' || r == '>' || r == '|' || r < 0x20:
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}

	cleaned := strings.Join(strings.Fields(b.String()), " ")
	cleaned = strings.Trim(cleaned, ". ")

	runes := []rune(cleaned)
	if len(runes) > maxNameLength {
		cleaned = string(runes[:maxNameLength])
	}
	return cleaned
}

// stem returns the file name without its extension.
func stem(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

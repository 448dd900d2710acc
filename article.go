package paperparse

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"
)

// Method identifies which extraction path produced an article's content.
type Method string

// Extraction methods.
const (
	MethodStructured Method = "STRUCTURED"
	MethodHeuristic  Method = "HEURISTIC"
	MethodFailed     Method = "FAILED"
)

// Valid reports whether m is a known extraction method.
func (m Method) Valid() bool {
	switch m {
	case MethodStructured, MethodHeuristic, MethodFailed:
		return true
	}
	return false
}

// Article represents the extraction result for a single PDF document.
//
// AbstractLength and TextLength are derived values, always recomputed from
// the final Abstract and FullText strings before the article is persisted.
// Lengths are rune counts, not byte counts.
//
// The JSON representation is the flat key set written to the per-article and
// batch output files; archive-only fields are excluded from it.
type Article struct {
	ID          string    `json:"-"`
	BatchID     string    `json:"-"`
	ContentHash string    `json:"-"`
	ParsedAt    time.Time `json:"-"`

	Filename       string `json:"filename"`
	Title          string `json:"title"`
	Abstract       string `json:"abstract"`
	FullText       string `json:"full_text"`
	AbstractLength int    `json:"abstract_length"`
	TextLength     int    `json:"text_length"`
	Method         Method `json:"method"`
}

// RecomputeLengths refreshes the derived length fields from the current
// Abstract and FullText values.
func (a *Article) RecomputeLengths() {
	a.AbstractLength = utf8.RuneCountInString(a.Abstract)
	a.TextLength = utf8.RuneCountInString(a.FullText)
}

// Validate returns an error if the article contains invalid fields.
func (a *Article) Validate() error {
	if a.Filename == "" {
		return Errorf(EINVALID, "article filename required")
	}
	if !a.Method.Valid() {
		return Errorf(EINVALID, "article method %q is not a valid extraction method", a.Method)
	}
	if a.Method == MethodFailed && (a.Abstract != "" || a.FullText != "") {
		return Errorf(EINVALID, "failed article must have empty text fields")
	}
	if a.AbstractLength != utf8.RuneCountInString(a.Abstract) {
		return Errorf(EINVALID, "article abstract_length is stale")
	}
	if a.TextLength != utf8.RuneCountInString(a.FullText) {
		return Errorf(EINVALID, "article text_length is stale")
	}
	return nil
}

// BatchStats aggregates the outcome of one batch run. It is accumulated at a
// single collection point and written once after the batch completes.
type BatchStats struct {
	TotalFiles        int    `json:"total_files"`
	Successful        int    `json:"successful"`
	StructuredSuccess int    `json:"structured_success"`
	HeuristicSuccess  int    `json:"heuristic_success"`
	Failed            int    `json:"failed"`
	Duplicates        int    `json:"duplicates,omitempty"`
	SuccessRate       string `json:"success_rate"`
}

// Record counts one article outcome. Duplicate skips are recorded separately
// via RecordDuplicate and do not contribute to TotalFiles.
func (s *BatchStats) Record(m Method) {
	s.TotalFiles++
	switch m {
	case MethodStructured:
		s.Successful++
		s.StructuredSuccess++
	case MethodHeuristic:
		s.Successful++
		s.HeuristicSuccess++
	default:
		s.Failed++
	}
}

// RecordDuplicate counts one skipped duplicate document.
func (s *BatchStats) RecordDuplicate() {
	s.Duplicates++
}

// Finalize computes the success rate from the accumulated counts.
func (s *BatchStats) Finalize() {
	if s.TotalFiles == 0 {
		s.SuccessRate = "0.0%"
		return
	}
	s.SuccessRate = fmt.Sprintf("%.1f%%", float64(s.Successful)/float64(s.TotalFiles)*100)
}

// Batch represents one archived batch run.
type Batch struct {
	ID         string     `json:"id"`
	InputDir   string     `json:"inputDir"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt"`
	Stats      BatchStats `json:"stats"`
}

// Validate returns an error if the batch contains invalid fields.
func (b *Batch) Validate() error {
	if b.InputDir == "" {
		return Errorf(EINVALID, "batch input directory required")
	}
	return nil
}

// ArticleService represents a service for managing archived articles.
type ArticleService interface {
	// CreateArticle stores a new article, assigning its ID, content hash
	// and parse timestamp.
	CreateArticle(ctx context.Context, article *Article) error

	// FindArticleByID retrieves an article by ID.
	// Returns ENOTFOUND if the article does not exist.
	FindArticleByID(ctx context.Context, id string) (*Article, error)

	// FindArticles retrieves articles matching the filter.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*Article, error)

	// DeleteArticlesByBatch removes all articles for a batch run.
	DeleteArticlesByBatch(ctx context.Context, batchID string) error
}

// ArticleFilter represents a filter for FindArticles.
type ArticleFilter struct {
	ID       *string `json:"id"`
	BatchID  *string `json:"batchId"`
	Filename *string `json:"filename"`
	Method   *Method `json:"method"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// BatchService represents a service for managing archived batch runs.
type BatchService interface {
	// CreateBatch records the start of a batch run.
	CreateBatch(ctx context.Context, batch *Batch) error

	// FinishBatch stamps the batch with its final statistics.
	// Returns ENOTFOUND if the batch does not exist.
	FinishBatch(ctx context.Context, id string, stats BatchStats) error

	// FindBatches retrieves batch runs, most recent first.
	FindBatches(ctx context.Context, filter BatchFilter) ([]*Batch, error)
}

// BatchFilter represents a filter for FindBatches.
type BatchFilter struct {
	ID *string `json:"id"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ArticleWriter writes extraction results to their output files.
type ArticleWriter interface {
	// WriteArticle writes one per-article output file.
	WriteArticle(ctx context.Context, article *Article) error

	// WriteBatch writes the ordered collection of all articles.
	WriteBatch(ctx context.Context, articles []*Article) error

	// WriteStats writes the batch statistics file.
	WriteStats(ctx context.Context, stats *BatchStats) error
}

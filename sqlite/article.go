package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/kmitrowski/paperparse"
)

// Compile-time interface verification.
var _ paperparse.ArticleService = (*ArticleService)(nil)

// ArticleService implements paperparse.ArticleService using SQLite.
type ArticleService struct {
	db *DB
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db}
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(content string) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64String(content))
	return hex.EncodeToString(b[:])
}

// CreateArticle stores a new article, assigning its ID, content hash and
// parse timestamp. Derived lengths are refreshed before validation so a
// stale in-memory value never reaches the archive.
func (s *ArticleService) CreateArticle(ctx context.Context, article *paperparse.Article) error {
	article.RecomputeLengths()
	if err := article.Validate(); err != nil {
		return err
	}
	if article.BatchID == "" {
		return paperparse.Errorf(paperparse.EINVALID, "article batch ID required")
	}

	article.ID = uuid.New().String()
	article.ParsedAt = time.Now().UTC()
	article.ContentHash = hashContent(article.FullText)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO articles (id, batch_id, filename, title, abstract, full_text, method, content_hash, parsed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, article.ID, article.BatchID, article.Filename, article.Title, article.Abstract,
		article.FullText, string(article.Method), article.ContentHash,
		article.ParsedAt.Format(time.RFC3339))

	return err
}

// FindArticleByID retrieves an article by ID.
func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*paperparse.Article, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, batch_id, filename, title, abstract, full_text, method, content_hash, parsed_at
		FROM articles
		WHERE id = ?
	`, id)

	article, err := scanArticle(row.Scan)
	if err == sql.ErrNoRows {
		return nil, paperparse.Errorf(paperparse.ENOTFOUND, "article not found")
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// FindArticles retrieves articles matching the filter, most recent first.
func (s *ArticleService) FindArticles(ctx context.Context, filter paperparse.ArticleFilter) ([]*paperparse.Article, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, batch_id, filename, title, abstract, full_text, method, content_hash, parsed_at FROM articles WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.BatchID != nil {
		query.WriteString(" AND batch_id = ?")
		args = append(args, *filter.BatchID)
	}
	if filter.Filename != nil {
		query.WriteString(" AND filename = ?")
		args = append(args, *filter.Filename)
	}
	if filter.Method != nil {
		query.WriteString(" AND method = ?")
		args = append(args, string(*filter.Method))
	}

	query.WriteString(" ORDER BY parsed_at DESC, filename ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*paperparse.Article
	for rows.Next() {
		article, err := scanArticle(rows.Scan)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}

	return articles, rows.Err()
}

// DeleteArticlesByBatch removes all articles for a batch run.
func (s *ArticleService) DeleteArticlesByBatch(ctx context.Context, batchID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE batch_id = ?", batchID)
	return err
}

// scanArticle reads one article row. Lengths are derived columns, so they
// are recomputed from the stored strings rather than persisted.
func scanArticle(scan func(dest ...any) error) (*paperparse.Article, error) {
	var article paperparse.Article
	var method, parsedAt string

	if err := scan(&article.ID, &article.BatchID, &article.Filename, &article.Title,
		&article.Abstract, &article.FullText, &method, &article.ContentHash, &parsedAt); err != nil {
		return nil, err
	}

	article.Method = paperparse.Method(method)
	article.RecomputeLengths()

	var err error
	article.ParsedAt, err = parseRFC3339(parsedAt, "parsed_at")
	if err != nil {
		return nil, err
	}

	return &article, nil
}

package mock

import (
	"context"

	"github.com/kmitrowski/paperparse"
)

var _ paperparse.ArticleService = (*ArticleService)(nil)

// ArticleService is a mock implementation of paperparse.ArticleService.
type ArticleService struct {
	CreateArticleFn         func(ctx context.Context, article *paperparse.Article) error
	FindArticleByIDFn       func(ctx context.Context, id string) (*paperparse.Article, error)
	FindArticlesFn          func(ctx context.Context, filter paperparse.ArticleFilter) ([]*paperparse.Article, error)
	DeleteArticlesByBatchFn func(ctx context.Context, batchID string) error
}

func (s *ArticleService) CreateArticle(ctx context.Context, article *paperparse.Article) error {
	return s.CreateArticleFn(ctx, article)
}

func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*paperparse.Article, error) {
	return s.FindArticleByIDFn(ctx, id)
}

func (s *ArticleService) FindArticles(ctx context.Context, filter paperparse.ArticleFilter) ([]*paperparse.Article, error) {
	return s.FindArticlesFn(ctx, filter)
}

func (s *ArticleService) DeleteArticlesByBatch(ctx context.Context, batchID string) error {
	return s.DeleteArticlesByBatchFn(ctx, batchID)
}

var _ paperparse.BatchService = (*BatchService)(nil)

// BatchService is a mock implementation of paperparse.BatchService.
type BatchService struct {
	CreateBatchFn func(ctx context.Context, batch *paperparse.Batch) error
	FinishBatchFn func(ctx context.Context, id string, stats paperparse.BatchStats) error
	FindBatchesFn func(ctx context.Context, filter paperparse.BatchFilter) ([]*paperparse.Batch, error)
}

func (s *BatchService) CreateBatch(ctx context.Context, batch *paperparse.Batch) error {
	return s.CreateBatchFn(ctx, batch)
}

func (s *BatchService) FinishBatch(ctx context.Context, id string, stats paperparse.BatchStats) error {
	return s.FinishBatchFn(ctx, id, stats)
}

func (s *BatchService) FindBatches(ctx context.Context, filter paperparse.BatchFilter) ([]*paperparse.Batch, error) {
	return s.FindBatchesFn(ctx, filter)
}

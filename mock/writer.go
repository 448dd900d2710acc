package mock

import (
	"context"

	"github.com/kmitrowski/paperparse"
)

var _ paperparse.ArticleWriter = (*ArticleWriter)(nil)

// ArticleWriter is a mock implementation of paperparse.ArticleWriter.
// Nil function fields are treated as successful no-ops so tests only wire
// the hooks they care about.
type ArticleWriter struct {
	WriteArticleFn func(ctx context.Context, article *paperparse.Article) error
	WriteBatchFn   func(ctx context.Context, articles []*paperparse.Article) error
	WriteStatsFn   func(ctx context.Context, stats *paperparse.BatchStats) error
}

func (w *ArticleWriter) WriteArticle(ctx context.Context, article *paperparse.Article) error {
	if w.WriteArticleFn == nil {
		return nil
	}
	return w.WriteArticleFn(ctx, article)
}

func (w *ArticleWriter) WriteBatch(ctx context.Context, articles []*paperparse.Article) error {
	if w.WriteBatchFn == nil {
		return nil
	}
	return w.WriteBatchFn(ctx, articles)
}

func (w *ArticleWriter) WriteStats(ctx context.Context, stats *paperparse.BatchStats) error {
	if w.WriteStatsFn == nil {
		return nil
	}
	return w.WriteStatsFn(ctx, stats)
}

package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmitrowski/paperparse"
	"github.com/kmitrowski/paperparse/sqlite"
)

func TestArticleService_CreateArticle(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		db := MustOpenDB(t)
		batch := mustCreateBatch(t, db, "/papers")
		s := sqlite.NewArticleService(db)

		article := &paperparse.Article{
			BatchID:  batch.ID,
			Filename: "paper.pdf",
			Title:    "Deep Learning Survey",
			Abstract: "We survey.",
			FullText: "Full body text.",
			Method:   paperparse.MethodStructured,
		}
		require.NoError(t, s.CreateArticle(context.Background(), article))

		assert.NotEmpty(t, article.ID)
		assert.NotEmpty(t, article.ContentHash)
		assert.False(t, article.ParsedAt.IsZero())

		got, err := s.FindArticleByID(context.Background(), article.ID)
		require.NoError(t, err)
		assert.Equal(t, article.Filename, got.Filename)
		assert.Equal(t, article.Title, got.Title)
		assert.Equal(t, article.Abstract, got.Abstract)
		assert.Equal(t, article.FullText, got.FullText)
		assert.Equal(t, article.Method, got.Method)
		assert.Equal(t, article.ContentHash, got.ContentHash)
		assert.Equal(t, len("We survey."), got.AbstractLength)
		assert.Equal(t, len("Full body text."), got.TextLength)
	})

	t.Run("SameContentSameHash", func(t *testing.T) {
		db := MustOpenDB(t)
		batch := mustCreateBatch(t, db, "/papers")
		s := sqlite.NewArticleService(db)

		a := &paperparse.Article{BatchID: batch.ID, Filename: "a.pdf", FullText: "same", Method: paperparse.MethodHeuristic}
		b := &paperparse.Article{BatchID: batch.ID, Filename: "b.pdf", FullText: "same", Method: paperparse.MethodHeuristic}
		require.NoError(t, s.CreateArticle(context.Background(), a))
		require.NoError(t, s.CreateArticle(context.Background(), b))

		assert.NotEqual(t, a.ID, b.ID)
		assert.Equal(t, a.ContentHash, b.ContentHash)
	})

	t.Run("BatchIDRequired", func(t *testing.T) {
		db := MustOpenDB(t)
		s := sqlite.NewArticleService(db)

		article := &paperparse.Article{Filename: "paper.pdf", Method: paperparse.MethodFailed}
		err := s.CreateArticle(context.Background(), article)
		assert.Equal(t, paperparse.EINVALID, paperparse.ErrorCode(err))
	})

	t.Run("InvalidArticle", func(t *testing.T) {
		db := MustOpenDB(t)
		batch := mustCreateBatch(t, db, "/papers")
		s := sqlite.NewArticleService(db)

		article := &paperparse.Article{BatchID: batch.ID, Method: paperparse.MethodFailed}
		err := s.CreateArticle(context.Background(), article)
		assert.Equal(t, paperparse.EINVALID, paperparse.ErrorCode(err))
	})
}

func TestArticleService_FindArticleByID(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		db := MustOpenDB(t)
		s := sqlite.NewArticleService(db)

		_, err := s.FindArticleByID(context.Background(), "no-such-id")
		assert.Equal(t, paperparse.ENOTFOUND, paperparse.ErrorCode(err))
	})
}

func TestArticleService_FindArticles(t *testing.T) {
	seed := func(t *testing.T) (*sqlite.ArticleService, *paperparse.Batch, *paperparse.Batch) {
		t.Helper()

		db := MustOpenDB(t)
		first := mustCreateBatch(t, db, "/papers/first")
		second := mustCreateBatch(t, db, "/papers/second")
		s := sqlite.NewArticleService(db)

		for _, article := range []*paperparse.Article{
			{BatchID: first.ID, Filename: "a.pdf", FullText: "a", Method: paperparse.MethodStructured},
			{BatchID: first.ID, Filename: "b.pdf", Method: paperparse.MethodFailed},
			{BatchID: second.ID, Filename: "c.pdf", FullText: "c", Method: paperparse.MethodHeuristic},
		} {
			require.NoError(t, s.CreateArticle(context.Background(), article))
		}
		return s, first, second
	}

	t.Run("ByBatchID", func(t *testing.T) {
		s, first, _ := seed(t)

		articles, err := s.FindArticles(context.Background(), paperparse.ArticleFilter{BatchID: &first.ID})
		require.NoError(t, err)
		require.Len(t, articles, 2)
		for _, article := range articles {
			assert.Equal(t, first.ID, article.BatchID)
		}
	})

	t.Run("ByMethod", func(t *testing.T) {
		s, _, _ := seed(t)

		method := paperparse.MethodFailed
		articles, err := s.FindArticles(context.Background(), paperparse.ArticleFilter{Method: &method})
		require.NoError(t, err)
		require.Len(t, articles, 1)
		assert.Equal(t, "b.pdf", articles[0].Filename)
	})

	t.Run("ByFilename", func(t *testing.T) {
		s, _, second := seed(t)

		filename := "c.pdf"
		articles, err := s.FindArticles(context.Background(), paperparse.ArticleFilter{Filename: &filename})
		require.NoError(t, err)
		require.Len(t, articles, 1)
		assert.Equal(t, second.ID, articles[0].BatchID)
	})

	t.Run("Pagination", func(t *testing.T) {
		s, _, _ := seed(t)

		articles, err := s.FindArticles(context.Background(), paperparse.ArticleFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, articles, 2)

		articles, err = s.FindArticles(context.Background(), paperparse.ArticleFilter{Limit: 2, Offset: 2})
		require.NoError(t, err)
		assert.Len(t, articles, 1)
	})

	t.Run("Empty", func(t *testing.T) {
		db := MustOpenDB(t)
		s := sqlite.NewArticleService(db)

		articles, err := s.FindArticles(context.Background(), paperparse.ArticleFilter{})
		require.NoError(t, err)
		assert.Empty(t, articles)
	})
}

func TestArticleService_DeleteArticlesByBatch(t *testing.T) {
	db := MustOpenDB(t)
	keep := mustCreateBatch(t, db, "/papers/keep")
	drop := mustCreateBatch(t, db, "/papers/drop")
	s := sqlite.NewArticleService(db)

	for _, article := range []*paperparse.Article{
		{BatchID: keep.ID, Filename: "keep.pdf", FullText: "x", Method: paperparse.MethodStructured},
		{BatchID: drop.ID, Filename: "drop.pdf", FullText: "y", Method: paperparse.MethodHeuristic},
	} {
		require.NoError(t, s.CreateArticle(context.Background(), article))
	}

	require.NoError(t, s.DeleteArticlesByBatch(context.Background(), drop.ID))

	articles, err := s.FindArticles(context.Background(), paperparse.ArticleFilter{})
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "keep.pdf", articles[0].Filename)
}

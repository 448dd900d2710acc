package paperparse_test

import (
	"encoding/json"
	"testing"

	"github.com/kmitrowski/paperparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticle_RecomputeLengths(t *testing.T) {
	t.Parallel()

	a := &paperparse.Article{
		Filename: "paper.pdf",
		Abstract: "Study of X.",
		FullText: "body text",
		Method:   paperparse.MethodStructured,
	}
	a.RecomputeLengths()

	assert.Equal(t, 11, a.AbstractLength)
	assert.Equal(t, 9, a.TextLength)
}

func TestArticle_RecomputeLengths_CountsRunes(t *testing.T) {
	t.Parallel()

	a := &paperparse.Article{
		Filename: "paper.pdf",
		Abstract: "étude des réseaux",
		Method:   paperparse.MethodStructured,
	}
	a.RecomputeLengths()

	assert.Equal(t, 17, a.AbstractLength)
}

func TestArticle_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid article passes", func(t *testing.T) {
		t.Parallel()

		a := &paperparse.Article{
			Filename: "paper.pdf",
			Abstract: "abstract",
			FullText: "text",
			Method:   paperparse.MethodStructured,
		}
		a.RecomputeLengths()

		require.NoError(t, a.Validate())
	})

	t.Run("rejects missing filename", func(t *testing.T) {
		t.Parallel()

		a := &paperparse.Article{Method: paperparse.MethodFailed}

		err := a.Validate()
		require.Error(t, err)
		assert.Equal(t, paperparse.EINVALID, paperparse.ErrorCode(err))
	})

	t.Run("rejects unknown method", func(t *testing.T) {
		t.Parallel()

		a := &paperparse.Article{Filename: "paper.pdf", Method: "GROBID"}

		err := a.Validate()
		require.Error(t, err)
		assert.Equal(t, paperparse.EINVALID, paperparse.ErrorCode(err))
	})

	t.Run("rejects failed article with text", func(t *testing.T) {
		t.Parallel()

		a := &paperparse.Article{
			Filename: "paper.pdf",
			FullText: "leftover",
			Method:   paperparse.MethodFailed,
		}
		a.RecomputeLengths()

		err := a.Validate()
		require.Error(t, err)
	})

	t.Run("rejects stale lengths", func(t *testing.T) {
		t.Parallel()

		a := &paperparse.Article{
			Filename:   "paper.pdf",
			FullText:   "text",
			TextLength: 99,
			Method:     paperparse.MethodHeuristic,
		}

		err := a.Validate()
		require.Error(t, err)
		assert.Equal(t, paperparse.EINVALID, paperparse.ErrorCode(err))
	})
}

func TestArticle_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	a := &paperparse.Article{
		ID:       "internal-id",
		BatchID:  "batch-id",
		Filename: "survey.pdf",
		Title:    "Deep Learning Survey",
		Abstract: "Study of X.",
		FullText: "Full body.",
		Method:   paperparse.MethodStructured,
	}
	a.RecomputeLengths()

	data, err := json.Marshal(a)
	require.NoError(t, err)

	// Archive-only fields stay out of the flat output schema.
	assert.NotContains(t, string(data), "internal-id")
	assert.NotContains(t, string(data), "batch-id")

	var got paperparse.Article
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, a.Title, got.Title)
	assert.Equal(t, got.AbstractLength, len([]rune(got.Abstract)))
	assert.Equal(t, got.TextLength, len([]rune(got.FullText)))
}

func TestBatchStats_Record(t *testing.T) {
	t.Parallel()

	var s paperparse.BatchStats
	s.Record(paperparse.MethodStructured)
	s.Record(paperparse.MethodStructured)
	s.Record(paperparse.MethodHeuristic)
	s.Record(paperparse.MethodFailed)
	s.RecordDuplicate()
	s.Finalize()

	assert.Equal(t, 4, s.TotalFiles)
	assert.Equal(t, 3, s.Successful)
	assert.Equal(t, 2, s.StructuredSuccess)
	assert.Equal(t, 1, s.HeuristicSuccess)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 1, s.Duplicates)
	assert.Equal(t, "75.0%", s.SuccessRate)

	// Accounting invariants.
	assert.Equal(t, s.Successful, s.StructuredSuccess+s.HeuristicSuccess)
	assert.Equal(t, s.TotalFiles, s.Successful+s.Failed)
}

func TestBatchStats_Finalize_EmptyBatch(t *testing.T) {
	t.Parallel()

	var s paperparse.BatchStats
	s.Finalize()

	assert.Equal(t, "0.0%", s.SuccessRate)
}

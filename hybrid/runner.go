package hybrid

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/kmitrowski/paperparse"
	"github.com/kmitrowski/paperparse/bloom"
)

// DefaultConcurrency bounds the worker pool when none is configured.
const DefaultConcurrency = 10

// Filter sizing for duplicate detection.
const (
	dedupExpectedDocs      = 10000
	dedupFalsePositiveRate = 0.01
)

// Runner drives a directory of PDF files through the hybrid parser with a
// bounded worker pool and aggregates batch statistics.
//
// Writer is required. Articles and Batches are optional archive hooks and
// are expected to be set together. Limiter, if set, throttles document
// dispatch towards the structured service.
type Runner struct {
	Parser      *Parser
	Writer      paperparse.ArticleWriter
	Articles    paperparse.ArticleService
	Batches     paperparse.BatchService
	Limiter     *Limiter
	Concurrency int
	Recursive   bool

	// SkipDuplicates skips documents whose raw bytes hash to an already
	// seen value. Skips are counted separately and excluded from
	// TotalFiles so the stats invariants keep holding.
	SkipDuplicates bool
}

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	File      string
	Method    paperparse.Method
	Stats     *paperparse.BatchStats
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// fileResult holds the outcome of processing a single file.
type fileResult struct {
	position  int
	path      string
	article   *paperparse.Article
	duplicate bool
}

// Run processes every PDF under dir and returns the batch statistics.
//
// No single document can fail the batch: unreadable and unextractable files
// become FAILED articles. Only an unreadable input directory, a canceled
// context, or an output-write failure aborts the run.
func (r *Runner) Run(ctx context.Context, dir string, progress ProgressFunc) (*paperparse.BatchStats, error) {
	files, err := listPDFs(dir, r.Recursive)
	if err != nil {
		return nil, err
	}

	batch := &paperparse.Batch{InputDir: dir, StartedAt: time.Now().UTC()}
	if r.Batches != nil {
		if err := r.Batches.CreateBatch(ctx, batch); err != nil {
			return nil, fmt.Errorf("recording batch start: %w", err)
		}
	}

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var dedup *bloom.Filter
	if r.SkipDuplicates {
		dedup = bloom.NewFilter(dedupExpectedDocs, dedupFalsePositiveRate)
	}

	total := len(files)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	resultCh := make(chan fileResult, total)

	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, path := range files {
			i, path := i, path
			g.Go(func() error {
				resultCh <- r.processFile(gctx, i, path, dedup)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Single collection point: statistics accumulate here, so workers
	// share no mutable state.
	results := make([]fileResult, total)
	for result := range resultCh {
		completed.Add(1)
		results[result.position] = result

		if progress != nil {
			eventType := ProgressCompleted
			var method paperparse.Method
			if result.duplicate {
				eventType = ProgressSkipped
			} else {
				method = result.article.Method
			}
			progress(ProgressEvent{
				Type:      eventType,
				Completed: int(completed.Load()),
				Total:     total,
				File:      result.path,
				Method:    method,
			})
		}
	}

	// A canceled batch writes no output; partial results would be
	// indistinguishable from a finished run.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stats := &paperparse.BatchStats{}
	var articles []*paperparse.Article

	for _, result := range results {
		if result.duplicate {
			stats.RecordDuplicate()
			continue
		}
		stats.Record(result.article.Method)
		articles = append(articles, result.article)

		if err := r.Writer.WriteArticle(ctx, result.article); err != nil {
			return nil, fmt.Errorf("writing article for %s: %w", result.path, err)
		}
		if r.Articles != nil {
			result.article.BatchID = batch.ID
			if err := r.Articles.CreateArticle(ctx, result.article); err != nil {
				return nil, fmt.Errorf("archiving article for %s: %w", result.path, err)
			}
		}
	}

	stats.Finalize()

	if err := r.Writer.WriteBatch(ctx, articles); err != nil {
		return nil, fmt.Errorf("writing batch file: %w", err)
	}
	if err := r.Writer.WriteStats(ctx, stats); err != nil {
		return nil, fmt.Errorf("writing statistics file: %w", err)
	}
	if r.Batches != nil {
		if err := r.Batches.FinishBatch(ctx, batch.ID, *stats); err != nil {
			return nil, fmt.Errorf("recording batch finish: %w", err)
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
			Stats:     stats,
		})
	}

	return stats, nil
}

// processFile reads and parses a single file. Read failures fold into a
// FAILED article the same way extraction failures do.
func (r *Runner) processFile(ctx context.Context, position int, path string, dedup *bloom.Filter) fileResult {
	result := fileResult{position: position, path: path}
	filename := filepath.Base(path)

	data, err := os.ReadFile(path)
	if err != nil {
		result.article = failedArticle(filename)
		return result
	}

	if dedup != nil {
		hash := fmt.Sprintf("%016x", xxhash.Sum64(data))
		if dedup.TestAndAdd(hash) {
			result.duplicate = true
			return result
		}
	}

	if r.Limiter != nil {
		if err := r.Limiter.Wait(ctx); err != nil {
			result.article = failedArticle(filename)
			return result
		}
	}

	result.article = r.Parser.Parse(ctx, filename, data)
	return result
}

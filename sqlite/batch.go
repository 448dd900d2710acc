package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kmitrowski/paperparse"
)

// Compile-time interface verification.
var _ paperparse.BatchService = (*BatchService)(nil)

// BatchService implements paperparse.BatchService using SQLite.
type BatchService struct {
	db *DB
}

// NewBatchService creates a new BatchService.
func NewBatchService(db *DB) *BatchService {
	return &BatchService{db: db}
}

// CreateBatch stores a new batch run, assigning its ID and start time.
func (s *BatchService) CreateBatch(ctx context.Context, batch *paperparse.Batch) error {
	if batch.InputDir == "" {
		return paperparse.Errorf(paperparse.EINVALID, "batch input directory required")
	}

	batch.ID = uuid.New().String()
	batch.StartedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO batches (id, input_dir, started_at)
		VALUES (?, ?, ?)
	`, batch.ID, batch.InputDir, batch.StartedAt.Format(time.RFC3339))

	return err
}

// FinishBatch records the final statistics of a completed batch run.
func (s *BatchService) FinishBatch(ctx context.Context, id string, stats paperparse.BatchStats) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE batches
		SET finished_at = ?,
		    total_files = ?,
		    successful = ?,
		    structured_success = ?,
		    heuristic_success = ?,
		    failed = ?,
		    duplicates = ?,
		    success_rate = ?
		WHERE id = ?
	`, time.Now().UTC().Format(time.RFC3339), stats.TotalFiles, stats.Successful,
		stats.StructuredSuccess, stats.HeuristicSuccess, stats.Failed,
		stats.Duplicates, stats.SuccessRate, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return paperparse.Errorf(paperparse.ENOTFOUND, "batch not found")
	}
	return nil
}

// FindBatches retrieves batch runs matching the filter, most recent first.
func (s *BatchService) FindBatches(ctx context.Context, filter paperparse.BatchFilter) ([]*paperparse.Batch, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`
		SELECT id, input_dir, started_at, finished_at,
		       total_files, successful, structured_success, heuristic_success,
		       failed, duplicates, success_rate
		FROM batches WHERE 1=1
	`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}

	query.WriteString(" ORDER BY started_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []*paperparse.Batch
	for rows.Next() {
		batch, err := scanBatch(rows.Scan)
		if err != nil {
			return nil, err
		}
		batches = append(batches, batch)
	}

	return batches, rows.Err()
}

func scanBatch(scan func(dest ...any) error) (*paperparse.Batch, error) {
	var batch paperparse.Batch
	var startedAt string
	var finishedAt sql.NullString

	if err := scan(&batch.ID, &batch.InputDir, &startedAt, &finishedAt,
		&batch.Stats.TotalFiles, &batch.Stats.Successful, &batch.Stats.StructuredSuccess,
		&batch.Stats.HeuristicSuccess, &batch.Stats.Failed, &batch.Stats.Duplicates,
		&batch.Stats.SuccessRate); err != nil {
		return nil, err
	}

	var err error
	batch.StartedAt, err = parseRFC3339(startedAt, "started_at")
	if err != nil {
		return nil, err
	}

	if finishedAt.Valid {
		t, err := parseRFC3339(finishedAt.String, "finished_at")
		if err != nil {
			return nil, err
		}
		batch.FinishedAt = &t
	}

	return &batch, nil
}

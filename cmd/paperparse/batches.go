package main

import (
	"fmt"

	"github.com/kmitrowski/paperparse"
)

// Run executes the batches command.
func (c *BatchesCmd) Run(deps *Dependencies) error {
	if deps.Batches == nil {
		fmt.Fprintf(deps.Stderr, "error: no archive database configured. Set PAPERPARSE_DB or pass --db.\n")
		return paperparse.Errorf(paperparse.EINVALID, "no archive database configured")
	}

	batches, err := deps.Batches.FindBatches(deps.Ctx, paperparse.BatchFilter{Limit: c.Limit, Offset: c.Offset})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", paperparse.ErrorMessage(err))
		return err
	}

	if len(batches) == 0 {
		fmt.Fprintln(deps.Stdout, "No batch runs found. Use 'paperparse run' to start one.")
		return nil
	}

	for _, b := range batches {
		status := "running"
		if b.FinishedAt != nil {
			status = fmt.Sprintf("%d files, %s success", b.Stats.TotalFiles, b.Stats.SuccessRate)
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n",
			b.ID, b.StartedAt.Format("2006-01-02 15:04"), b.InputDir, status)
	}

	return nil
}

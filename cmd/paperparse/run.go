package main

import (
	"fmt"

	"github.com/kmitrowski/paperparse"
	"github.com/kmitrowski/paperparse/hybrid"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	if deps.Runner == nil {
		return paperparse.Errorf(paperparse.EINTERNAL, "runner not configured")
	}

	progress := func(event hybrid.ProgressEvent) {
		switch event.Type {
		case hybrid.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Found %d PDF files\n", event.Total)
		case hybrid.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s (%s)\n",
				event.Completed, event.Total, event.File, event.Method)
		case hybrid.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s (duplicate, skipped)\n",
				event.Completed, event.Total, event.File)
		case hybrid.ProgressFinished:
			// Summary printed below from the returned stats
		}
	}

	stats, err := deps.Runner.Run(deps.Ctx, c.Dir, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", paperparse.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Processed %d files: %d structured, %d heuristic, %d failed (%s success)\n",
		stats.TotalFiles, stats.StructuredSuccess, stats.HeuristicSuccess, stats.Failed, stats.SuccessRate)
	if stats.Duplicates > 0 {
		fmt.Fprintf(deps.Stdout, "Skipped %d duplicate files\n", stats.Duplicates)
	}

	return nil
}

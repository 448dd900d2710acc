package main

import (
	"context"
	"io"

	"github.com/kmitrowski/paperparse"
	"github.com/kmitrowski/paperparse/hybrid"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Articles paperparse.ArticleService
	Batches  paperparse.BatchService
	Runner   *hybrid.Runner
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB string `help:"Archive database path (defaults to PAPERPARSE_DB)"`

	Run     RunCmd     `cmd:"" help:"Extract articles from a directory of PDF files"`
	List    ListCmd    `cmd:"" help:"List archived articles"`
	Batches BatchesCmd `cmd:"" help:"List archived batch runs"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Dir            string  `arg:"" help:"Directory containing PDF files"`
	Out            string  `short:"o" default:"parsed_articles" help:"Output directory for JSON results"`
	GrobidURL      string  `name:"grobid-url" help:"GROBID base URL (defaults to PAPERPARSE_GROBID_URL)"`
	Timeout        int     `default:"60" help:"Per-document service timeout in seconds"`
	Concurrency    int     `short:"c" default:"10" help:"Concurrent file limit"`
	Rate           float64 `help:"Max service requests per second (0 disables throttling)"`
	Recursive      bool    `short:"r" help:"Descend into subdirectories"`
	SkipDuplicates bool    `help:"Skip files whose content was already seen in this run"`
	Verbose        bool    `short:"v" help:"Log every extraction"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Batch  string `help:"Only articles from this batch ID"`
	Method string `help:"Only articles extracted by this method (STRUCTURED, HEURISTIC, FAILED)"`
	Limit  int    `default:"50" help:"Max articles to show"`
	Offset int    `help:"Articles to skip"`
}

// BatchesCmd is the "batches" subcommand.
type BatchesCmd struct {
	Limit  int `default:"20" help:"Max batch runs to show"`
	Offset int `help:"Batch runs to skip"`
}

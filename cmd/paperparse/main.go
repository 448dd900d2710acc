package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/kmitrowski/paperparse"
	"github.com/kmitrowski/paperparse/fs"
	"github.com/kmitrowski/paperparse/grobid"
	"github.com/kmitrowski/paperparse/hybrid"
	"github.com/kmitrowski/paperparse/pdf"
	ppslog "github.com/kmitrowski/paperparse/slog"
	"github.com/kmitrowski/paperparse/sqlite"
	"github.com/kmitrowski/paperparse/tei"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Archive database path. Empty disables the archive for "run"; "list"
	// and "batches" require it. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ArticleService paperparse.ArticleService
	BatchService   paperparse.BatchService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: os.Getenv("PAPERPARSE_DB"),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("paperparse"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'paperparse --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Flags may precede the command, so resolve it from the parse result.
	command, _, _ := strings.Cut(kongCtx.Command(), " ")

	// Open the archive when a path is configured. "run" works without it,
	// "list" and "batches" report their own error when it is missing.
	dbPath := m.DBPath
	if cli.DB != "" {
		dbPath = cli.DB
	}
	if dbPath != "" {
		m.DB = sqlite.NewDB(dbPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set PAPERPARSE_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
		}
		defer m.Close()

		m.ArticleService = sqlite.NewArticleService(m.DB)
		m.BatchService = sqlite.NewBatchService(m.DB)
		deps.Articles = m.ArticleService
		deps.Batches = m.BatchService
	}

	if command == "run" {
		grobidURL := cli.Run.GrobidURL
		if grobidURL == "" {
			grobidURL = defaultGrobidURL()
		}

		client := grobid.NewClient(grobidURL,
			grobid.WithTimeout(time.Duration(cli.Run.Timeout)*time.Second))

		// A dead service would fail every document, so check before
		// touching any files.
		if err := client.Ping(ctx); err != nil {
			fmt.Fprintln(stderr, "Hint: Set PAPERPARSE_GROBID_URL or --grobid-url to point at a running GROBID instance")
			return fmt.Errorf("structured extraction service unreachable at %q: %w", grobidURL, err)
		}

		logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		if cli.Run.Verbose {
			logger = slog.New(slog.NewTextHandler(stderr, nil))
		}

		deps.Runner = &hybrid.Runner{
			Parser: &hybrid.Parser{
				Structured: ppslog.NewLoggingStructuredExtractor(client, logger),
				Markup:     tei.NewExtractor(),
				Text:       ppslog.NewLoggingTextExtractor(pdf.NewExtractor(), logger),
			},
			Writer:         fs.NewWriter(cli.Run.Out),
			Articles:       deps.Articles,
			Batches:        deps.Batches,
			Concurrency:    cli.Run.Concurrency,
			Recursive:      cli.Run.Recursive,
			SkipDuplicates: cli.Run.SkipDuplicates,
		}
		if cli.Run.Rate > 0 {
			deps.Runner.Limiter = hybrid.NewLimiter(cli.Run.Rate)
		}
	}

	return kongCtx.Run(deps)
}

func defaultGrobidURL() string {
	if url := os.Getenv("PAPERPARSE_GROBID_URL"); url != "" {
		return url
	}
	return "http://localhost:8070"
}

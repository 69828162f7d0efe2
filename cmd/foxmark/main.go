package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/foxmark"
	"github.com/fwojciec/foxmark/bluemonday"
	"github.com/fwojciec/foxmark/crawl"
	foxhttp "github.com/fwojciec/foxmark/http"
	"github.com/fwojciec/foxmark/query"
	"github.com/fwojciec/foxmark/registry"
	foxslog "github.com/fwojciec/foxmark/slog"
	"github.com/fwojciec/foxmark/sqlite"
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
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	MarkService foxmark.MarkService
	Index       *sqlite.Index
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
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
		kong.Name("foxmark"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'foxmark --help' to see available commands")
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

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set FOXMARK_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.MarkService = sqlite.NewMarkService(m.DB)
	m.Index = sqlite.NewIndex(m.DB)
	deps.DB = m.DB
	deps.Marks = m.MarkService
	deps.History = sqlite.NewHistoryService(m.DB)
	deps.Tags = sqlite.NewTagService(m.DB)
	deps.Index = m.Index
	deps.Registry = registry.NewRegistry(m.MarkService)

	sanitizer := bluemonday.NewSanitizer()
	deps.Sanitizer = sanitizer
	deps.Normalizer = bluemonday.NewNormalizer(sanitizer)

	deps.Engine = &query.Engine{
		Index:  m.Index,
		Marks:  m.MarkService,
		Logger: deps.Logger,
	}

	// Wire command-specific dependencies based on command
	if cmd == "download" {
		deps.Downloader = &crawl.Downloader{
			Marks:       m.MarkService,
			Fetcher:     foxslog.NewLoggingFetcher(foxhttp.NewFetcher(), deps.Logger),
			Normalizer:  deps.Normalizer,
			Observer:    foxslog.NewObserver(deps.Logger),
			RateLimiter: crawl.NewDomainLimiter(cli.Download.RPS),
			Concurrency: cli.Download.Concurrency,
		}
	}

	if cmd == "serve" {
		deps.Fetcher = foxhttp.NewFetcher()
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("FOXMARK_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "foxmark.db"
	}
	dir := filepath.Join(home, ".foxmark")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "foxmark.db")
}

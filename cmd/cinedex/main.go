package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/cinedex"
	"github.com/fwojciec/cinedex/crawl"
	"github.com/fwojciec/cinedex/goquery"
	cinedexhttp "github.com/fwojciec/cinedex/http"
	cslog "github.com/fwojciec/cinedex/slog"
	"github.com/fwojciec/cinedex/sqlite"
	"github.com/fwojciec/cinedex/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
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
	MovieService    cinedex.MovieService
	TaxonomyService cinedex.TaxonomyService
	SearchService   cinedex.SearchService
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
		kong.Name("cinedex"),
		kong.Description("Crawl a movie listing site into a local searchable catalog."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'cinedex --help' to see available commands")
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

	if err := ensureDir(m.DBPath); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set CINEDEX_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.MovieService = cslog.NewLoggingMovieService(sqlite.NewMovieService(m.DB), deps.Logger)
	m.TaxonomyService = sqlite.NewTaxonomyService(m.DB)
	m.SearchService = cslog.NewLoggingSearchService(sqlite.NewSearchService(m.DB), deps.Logger)
	deps.DB = m.DB
	deps.Movies = m.MovieService
	deps.Taxonomies = m.TaxonomyService
	deps.Search = m.SearchService

	if strings.HasPrefix(kongCtx.Command(), "crawl") {
		crawler, profile, err := m.newCrawler(&cli.Crawl, deps.Logger)
		if err != nil {
			return err
		}
		defer crawler.Fetcher.Close()
		deps.Crawler = crawler
		deps.Profile = profile
	}

	return kongCtx.Run(deps)
}

// newCrawler wires the crawl pipeline for the crawl command.
func (m *Main) newCrawler(c *CrawlCmd, logger *slog.Logger) (*crawl.Crawler, *cinedex.SiteProfile, error) {
	profile := cinedex.DefaultSiteProfile()
	if c.Profile != "" {
		p, err := yaml.LoadSiteProfile(c.Profile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load profile: %w", err)
		}
		profile = p
	}

	fetcher := cslog.NewLoggingFetcher(
		cinedexhttp.NewFetcher(cinedexhttp.WithTimeout(c.Timeout)),
		logger,
	)

	crawler := &crawl.Crawler{
		Fetcher:     fetcher,
		Listings:    goquery.NewListingExtractor(profile),
		Details:     goquery.NewDetailExtractor(profile),
		Catalog:     crawl.NewCatalog(m.MovieService, m.TaxonomyService, m.SearchService, logger),
		Logger:      logger,
		PageParam:   profile.PageParam,
		Concurrency: c.Concurrency,
		MaxPages:    c.MaxPages,
	}
	if c.Rate > 0 {
		crawler.RateLimiter = crawl.NewDomainLimiter(c.Rate)
	}
	if c.Retries > 0 {
		crawler.RetryDelays = crawl.BackoffDelays(c.Retries, retryBaseDelay)
	}
	return crawler, profile, nil
}

// retryBaseDelay is the wait before the first retry; later waits double.
const retryBaseDelay = time.Second

func defaultDBPath() string {
	if path := os.Getenv("CINEDEX_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "cinedex.db"
	}
	return filepath.Join(home, ".cinedex", "cinedex.db")
}

func ensureDir(dbPath string) error {
	if dbPath == ":memory:" {
		return nil
	}
	return os.MkdirAll(filepath.Dir(dbPath), 0o755)
}

package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/cinedex"
	"github.com/fwojciec/cinedex/crawl"
	"github.com/fwojciec/cinedex/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	DB         *sqlite.DB
	Movies     cinedex.MovieService
	Taxonomies cinedex.TaxonomyService
	Search     cinedex.SearchService
	Crawler    *crawl.Crawler
	Profile    *cinedex.SiteProfile
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log debug output to stderr"`

	Crawl  CrawlCmd  `cmd:"" help:"Crawl listing pages into the catalog"`
	Search SearchCmd `cmd:"" help:"Search the catalog"`
	Show   ShowCmd   `cmd:"" help:"Show a movie with its cast and crew"`
	Movies MoviesCmd `cmd:"" help:"List catalog movies"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URLs        []string      `arg:"" optional:"" name:"urls" help:"Listing URLs to crawl (default: the profile's start URL)"`
	Profile     string        `help:"YAML site profile overriding the default selectors" type:"path"`
	MaxPages    int           `help:"Stop each listing after this many pages (0 = no limit)"`
	Retries     int           `help:"Retry failed fetches this many times with backoff"`
	Rate        float64       `help:"Requests per second per host (0 = unlimited)"`
	Concurrency int           `short:"c" default:"1" help:"Listings crawled in parallel"`
	Timeout     time.Duration `default:"10s" help:"HTTP request timeout"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string `arg:"" help:"Search query, e.g. 'brave* OR (war AND drama)'"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Movie ID"`
}

// MoviesCmd is the "movies" subcommand.
type MoviesCmd struct {
	Name   string `help:"Only the movie with this exact name"`
	Limit  int    `default:"50" help:"Maximum movies listed"`
	Offset int    `help:"Movies skipped before listing"`
}

// Package crawl provides listing crawl orchestration. It walks the pages
// of paginated listings, enriches each entry from its detail page and
// upserts the result into the catalog.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/fwojciec/cinedex"
	"github.com/fwojciec/cinedex/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultPageParam is the query parameter carrying the page number when
// the crawler has none configured.
const DefaultPageParam = "page"

// Repeated-page guard sizing.
const (
	seenPagesExpected = 10000
	seenPagesFPRate   = 1e-7
)

// Crawler walks paginated listings. Pages of one listing and the entries
// on a page are processed strictly in order; independent listings may run
// in parallel up to Concurrency.
type Crawler struct {
	Fetcher  cinedex.Fetcher
	Listings cinedex.ListingExtractor
	Details  cinedex.DetailExtractor
	Catalog  *Catalog
	Logger   *slog.Logger

	// PageParam is the query parameter set to the 1-based page number.
	PageParam string

	// RateLimiter, if set, is waited on before every request.
	RateLimiter cinedex.DomainLimiter

	// Concurrency bounds the listings crawled at once. Defaults to 1.
	Concurrency int

	// MaxPages caps the pages crawled per listing. Zero means no cap.
	MaxPages int

	// RetryDelays are the waits before each fetch retry. Nil disables retries.
	RetryDelays []time.Duration
}

// Result holds the outcome of a crawl.
type Result struct {
	Pages   int // listing pages processed
	Entries int // entries seen on listing pages
	Skipped int // entries without a name
	Saved   int // movies created or updated
	Failed  int // movies that could not be persisted
}

func (r *Result) add(other Result) {
	r.Pages += other.Pages
	r.Entries += other.Entries
	r.Skipped += other.Skipped
	r.Saved += other.Saved
	r.Failed += other.Failed
}

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type   ProgressType
	Source string
	Page   int
	URL    string
	Name   string
	Error  error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressPage ProgressType = iota
	ProgressSaved
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress. Calls are
// serialized even when listings are crawled in parallel.
type ProgressFunc func(event ProgressEvent)

// Crawl crawls every listing source, starting each at page 1, and returns
// the combined result. Fetch and extraction failures end the affected
// listing without failing the crawl; only context cancellation is returned
// as an error, together with the partial result.
func (c *Crawler) Crawl(ctx context.Context, sources []string, progress ProgressFunc) (*Result, error) {
	if len(sources) == 0 {
		return nil, cinedex.Errorf(cinedex.EINVALID, "at least one listing source required")
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	var mu sync.Mutex
	var total Result
	report := func(event ProgressEvent) {
		if progress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		progress(event)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, source := range sources {
		g.Go(func() error {
			res, err := c.crawlSource(gctx, source, report)
			mu.Lock()
			total.add(res)
			mu.Unlock()
			return err
		})
	}

	err := g.Wait()
	report(ProgressEvent{Type: ProgressFinished})
	return &total, err
}

// crawlSource walks one listing until it runs out of pages.
func (c *Crawler) crawlSource(ctx context.Context, source string, report ProgressFunc) (Result, error) {
	var res Result
	seen := bloom.NewFilter(seenPagesExpected, seenPagesFPRate)
	logger := c.logger().With("source", source)

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if c.MaxPages > 0 && page > c.MaxPages {
			logger.Info("page limit reached", "max_pages", c.MaxPages)
			return res, nil
		}

		pageURL, err := cinedex.BuildURL(source, cinedex.QueryParam{Key: c.pageParam(), Value: strconv.Itoa(page)})
		if err != nil {
			logger.Warn("malformed listing URL", "page", page, "err", err)
			return res, nil
		}

		html, ok := c.fetchPage(ctx, pageURL)
		if !ok {
			return res, ctx.Err()
		}

		listing, err := c.Listings.ExtractListing(html)
		if err != nil {
			logger.Warn("listing extraction failed", "url", pageURL, "err", err)
			return res, nil
		}

		if seen.TestAndAdd(pageFingerprint(html)) {
			logger.Warn("listing page repeats an earlier page", "url", pageURL, "page", page)
			return res, nil
		}

		res.Pages++
		res.Entries += listing.Entries
		res.Skipped += listing.Entries - len(listing.Records)
		report(ProgressEvent{Type: ProgressPage, Source: source, Page: page, URL: pageURL})

		for _, rec := range listing.Records {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			rec = c.fetchDetails(ctx, rec)
			if _, err := c.Catalog.Upsert(ctx, rec); err != nil {
				res.Failed++
				report(ProgressEvent{Type: ProgressFailed, Source: source, Page: page, URL: rec.DetailURL, Name: rec.Name, Error: err})
				continue
			}
			res.Saved++
			report(ProgressEvent{Type: ProgressSaved, Source: source, Page: page, URL: rec.DetailURL, Name: rec.Name})
		}

		if !listing.HasNext {
			return res, nil
		}
	}
}

// fetchPage fetches url, retrying as configured. Failures are logged and
// reported as no document.
func (c *Crawler) fetchPage(ctx context.Context, rawURL string) (string, bool) {
	if c.RateLimiter != nil {
		if u, err := url.Parse(rawURL); err == nil {
			if err := c.RateLimiter.Wait(ctx, u.Host); err != nil {
				return "", false
			}
		}
	}

	html, err := FetchWithRetry(ctx, rawURL, c.Fetcher.Fetch, c.logger(), c.RetryDelays)
	if err != nil {
		c.logger().Warn("fetch failed", "url", rawURL, "err", err)
		return "", false
	}
	return html, true
}

// fetchDetails merges the entry's detail page into rec. Without a detail
// URL, or when the page cannot be fetched or parsed, rec is returned with
// its listing attributes only.
func (c *Crawler) fetchDetails(ctx context.Context, rec *cinedex.MovieRecord) *cinedex.MovieRecord {
	if rec.DetailURL == "" || c.Details == nil {
		return rec
	}

	html, ok := c.fetchPage(ctx, rec.DetailURL)
	if !ok {
		return rec
	}

	details, err := c.Details.ExtractDetails(html)
	if err != nil {
		c.logger().Warn("detail extraction failed", "url", rec.DetailURL, "name", rec.Name, "err", err)
		return rec
	}
	rec.ApplyDetails(details)
	return rec
}

func (c *Crawler) pageParam() string {
	if c.PageParam == "" {
		return DefaultPageParam
	}
	return c.PageParam
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

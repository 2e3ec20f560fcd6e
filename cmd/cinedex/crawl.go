package main

import (
	"fmt"

	"github.com/fwojciec/cinedex"
	"github.com/fwojciec/cinedex/crawl"
)

// urlDisplayWidth bounds the URLs printed in progress lines.
const urlDisplayWidth = 60

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	sources := c.URLs
	if len(sources) == 0 && deps.Profile != nil {
		sources = []string{deps.Profile.StartURL}
	}
	for _, s := range sources {
		if _, err := cinedex.ParseURL(s); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", cinedex.ErrorMessage(err))
			return err
		}
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressPage:
			fmt.Fprintf(deps.Stdout, "  page %d  %s\n", event.Page, crawl.TruncateURL(event.URL, urlDisplayWidth))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %q: %s\n", event.Name, cinedex.ErrorMessage(event.Error))
		case crawl.ProgressSaved, crawl.ProgressFinished:
			// Summary printed after crawl completes
		}
	}

	result, err := deps.Crawler.Crawl(deps.Ctx, sources, progress)
	if result != nil {
		fmt.Fprintf(deps.Stdout, "Crawled %s\n", result)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error crawling: %v\n", err)
		return err
	}
	return nil
}

// Package goquery provides CSS-selector based extraction of movie listing
// and detail pages.
package goquery

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/cinedex"
)

// Compile-time interface verification.
var _ cinedex.ListingExtractor = (*ListingExtractor)(nil)

// ListingExtractor extracts movie overviews from listing pages using the
// selectors of a site profile.
type ListingExtractor struct {
	baseURL   string
	selectors cinedex.ListingSelectors
}

// NewListingExtractor creates a ListingExtractor for the given profile.
func NewListingExtractor(profile *cinedex.SiteProfile) *ListingExtractor {
	return &ListingExtractor{
		baseURL:   profile.BaseURL,
		selectors: profile.Listing,
	}
}

// ExtractListing parses a listing page. Entries without a name link are
// counted but yield no record.
func (e *ListingExtractor) ExtractListing(html string) (*cinedex.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, cinedex.Errorf(cinedex.EINVALID, "failed to parse HTML: %v", err)
	}

	listing := &cinedex.Listing{}
	doc.Find(e.selectors.Entry).Each(func(_ int, entry *goquery.Selection) {
		listing.Entries++
		if rec := e.extractOverview(entry); rec != nil {
			listing.Records = append(listing.Records, rec)
		}
	})

	if e.selectors.NextPage != "" {
		listing.HasNext = doc.Find(e.selectors.NextPage).Length() > 0
	}

	return listing, nil
}

// extractOverview extracts a single listing entry, returning nil when the
// entry has no name link.
func (e *ListingExtractor) extractOverview(entry *goquery.Selection) *cinedex.MovieRecord {
	link := entry.Find(e.selectors.NameLink).First()
	if link.Length() == 0 {
		return nil
	}
	name := strings.TrimSpace(link.Text())
	if name == "" {
		return nil
	}

	rec := &cinedex.MovieRecord{Name: name}
	if href, ok := link.Attr("href"); ok && strings.TrimSpace(href) != "" {
		rec.DetailURL = cinedex.ResolveURL(e.baseURL, strings.TrimSpace(href))
	}
	if text, ok := firstText(entry, e.selectors.Rank); ok {
		rec.Rank = parseRank(text)
	}
	if text, ok := firstText(entry, e.selectors.ContentRating); ok && text != "" {
		rec.ContentRating = &text
	}
	if text, ok := firstText(entry, e.selectors.Runtime); ok {
		rec.Runtime = parseRuntime(text)
	}
	if text, ok := firstText(entry, e.selectors.Genres); ok {
		rec.Genres = splitList(text)
	}
	if rec.Genres == nil {
		rec.Genres = []string{}
	}
	return rec
}

var (
	runtimePattern    = regexp.MustCompile(`(\d+)\s*min`)
	trailingNonDigits = regexp.MustCompile(`\D+$`)
)

// parseRank parses index text such as "98." or "1,000.". Negative
// ranks are treated as absent.
func parseRank(text string) *int {
	text = trailingNonDigits.ReplaceAllString(strings.TrimSpace(text), "")
	text = strings.ReplaceAll(text, ",", "")
	n, err := strconv.Atoi(text)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// parseRuntime parses runtime text such as "123 min".
func parseRuntime(text string) *int {
	m := runtimePattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

// splitList splits a comma-delimited blob into trimmed, non-empty tokens.
func splitList(text string) []string {
	tokens := []string{}
	for _, part := range strings.Split(text, ",") {
		if part = strings.TrimSpace(part); part != "" {
			tokens = append(tokens, part)
		}
	}
	return tokens
}

// firstText returns the trimmed text of the first match of selector within s.
func firstText(s *goquery.Selection, selector string) (string, bool) {
	if selector == "" {
		return "", false
	}
	match := s.Find(selector).First()
	if match.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(match.Text()), true
}

// allText returns the trimmed, non-empty texts of every match of selector.
func allText(s *goquery.Selection, selector string) []string {
	texts := []string{}
	if selector == "" {
		return texts
	}
	s.Find(selector).Each(func(_ int, match *goquery.Selection) {
		if text := strings.TrimSpace(match.Text()); text != "" {
			texts = append(texts, text)
		}
	})
	return texts
}

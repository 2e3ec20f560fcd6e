package goquery

import (
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/cinedex"
)

// Compile-time interface verification.
var _ cinedex.DetailExtractor = (*DetailExtractor)(nil)

// DetailExtractor extracts extended movie attributes from detail pages.
type DetailExtractor struct {
	selectors cinedex.DetailSelectors
}

// NewDetailExtractor creates a DetailExtractor for the given profile.
func NewDetailExtractor(profile *cinedex.SiteProfile) *DetailExtractor {
	return &DetailExtractor{selectors: profile.Detail}
}

// ExtractDetails parses a detail page. Each attribute is optional; name
// lists are empty when nothing matches.
func (e *DetailExtractor) ExtractDetails(html string) (*cinedex.MovieDetails, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, cinedex.Errorf(cinedex.EINVALID, "failed to parse HTML: %v", err)
	}
	page := doc.Selection

	details := &cinedex.MovieDetails{
		Directors: allText(page, e.selectors.Directors),
		Creators:  allText(page, e.selectors.Creators),
		Cast:      allText(page, e.selectors.Cast),
		Keywords:  allText(page, e.selectors.Keywords),
	}

	if text, ok := firstText(page, e.selectors.Synopsis); ok && text != "" {
		details.Synopsis = &text
	}
	if e.selectors.ReleaseDate != "" {
		if value, ok := releaseValue(page.Find(e.selectors.ReleaseDate).First()); ok {
			if d, err := time.Parse(cinedex.DateLayout, value); err == nil {
				details.ReleaseDate = &d
			}
		}
	}
	if text, ok := firstText(page, e.selectors.Score); ok {
		if score, err := strconv.ParseFloat(text, 64); err == nil {
			details.Score = &score
		}
	}

	return details, nil
}

// releaseValue reads a structured date from the content attribute of a
// meta element, falling back to the element text. Only the leading
// yyyy-mm-dd part is kept.
func releaseValue(s *goquery.Selection) (string, bool) {
	if s.Length() == 0 {
		return "", false
	}
	value, ok := s.Attr("content")
	if !ok {
		value = s.Text()
	}
	value = strings.TrimSpace(value)
	if len(value) > len(cinedex.DateLayout) {
		value = value[:len(cinedex.DateLayout)]
	}
	return value, value != ""
}

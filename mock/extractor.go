package mock

import "github.com/fwojciec/cinedex"

var _ cinedex.ListingExtractor = (*ListingExtractor)(nil)

// ListingExtractor is a mock implementation of cinedex.ListingExtractor.
type ListingExtractor struct {
	ExtractListingFn func(html string) (*cinedex.Listing, error)
}

func (e *ListingExtractor) ExtractListing(html string) (*cinedex.Listing, error) {
	return e.ExtractListingFn(html)
}

var _ cinedex.DetailExtractor = (*DetailExtractor)(nil)

// DetailExtractor is a mock implementation of cinedex.DetailExtractor.
type DetailExtractor struct {
	ExtractDetailsFn func(html string) (*cinedex.MovieDetails, error)
}

func (e *DetailExtractor) ExtractDetails(html string) (*cinedex.MovieDetails, error) {
	return e.ExtractDetailsFn(html)
}

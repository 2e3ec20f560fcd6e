package cinedex

// Listing is the result of extracting one listing page.
type Listing struct {
	// Entries is the number of entries found on the page, including those
	// skipped for lacking a name.
	Entries int

	// Records holds the usable entries in document order.
	Records []*MovieRecord

	// HasNext reports whether the page carries a next-page marker.
	HasNext bool
}

// ListingExtractor extracts movie overviews from listing pages.
type ListingExtractor interface {
	// ExtractListing parses a listing page. Entries without a name link
	// are skipped, not reported as errors.
	ExtractListing(html string) (*Listing, error)
}

// DetailExtractor extracts extended attributes from movie detail pages.
type DetailExtractor interface {
	// ExtractDetails parses a detail page. Missing fields are left absent.
	ExtractDetails(html string) (*MovieDetails, error)
}

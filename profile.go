package cinedex

// SiteProfile describes where and how to scrape a listing site.
type SiteProfile struct {
	// BaseURL qualifies relative detail links.
	BaseURL string `yaml:"base_url"`

	// StartURL is the first listing page crawled when none is given.
	StartURL string `yaml:"start_url"`

	// PageParam is the query parameter carrying the 1-based page number.
	PageParam string `yaml:"page_param"`

	Listing ListingSelectors `yaml:"listing"`
	Detail  DetailSelectors  `yaml:"detail"`
}

// ListingSelectors holds the CSS selectors of a listing page. Entry-level
// selectors are evaluated inside each entry.
type ListingSelectors struct {
	Entry         string `yaml:"entry"`
	NameLink      string `yaml:"name_link"`
	Rank          string `yaml:"rank"`
	ContentRating string `yaml:"content_rating"`
	Runtime       string `yaml:"runtime"`
	Genres        string `yaml:"genres"`
	NextPage      string `yaml:"next_page"`
}

// DetailSelectors holds the CSS selectors of a detail page.
type DetailSelectors struct {
	Synopsis    string `yaml:"synopsis"`
	ReleaseDate string `yaml:"release_date"`
	Score       string `yaml:"score"`
	Directors   string `yaml:"directors"`
	Creators    string `yaml:"creators"`
	Cast        string `yaml:"cast"`
	Keywords    string `yaml:"keywords"`
}

// DefaultSiteProfile returns the profile of the IMDb advanced title search
// listing and its title pages.
func DefaultSiteProfile() *SiteProfile {
	return &SiteProfile{
		BaseURL:   "https://www.imdb.com",
		StartURL:  "https://www.imdb.com/search/title?groups=top_1000",
		PageParam: "page",
		Listing: ListingSelectors{
			Entry:         "#main .lister .lister-list .lister-item",
			NameLink:      ".lister-item-header a",
			Rank:          ".lister-item-header .lister-item-index",
			ContentRating: ".certificate",
			Runtime:       ".runtime",
			Genres:        ".genre",
			NextPage:      "#main .lister .nav .lister-page-next.next-page",
		},
		Detail: DetailSelectors{
			Synopsis:    "#main_top .summary_text",
			ReleaseDate: "#main_top meta[itemprop='datePublished']",
			Score:       "#main_top .ratingValue [itemprop='ratingValue']",
			Directors:   "#main_top .credit_summary_item [itemprop='director'] [itemprop='name']",
			Creators:    "#main_top .credit_summary_item [itemprop='creator'] [itemprop='name']",
			Cast:        "#main_bottom .cast_list [itemprop='actor'] [itemprop='name']",
			Keywords:    "#main_bottom .article a [itemprop='keywords']",
		},
	}
}

// Validate returns an error if the profile cannot drive a crawl.
func (p *SiteProfile) Validate() error {
	if _, err := ParseURL(p.BaseURL); err != nil {
		return Errorf(EINVALID, "profile base URL: %s", ErrorMessage(err))
	}
	if p.PageParam == "" {
		return Errorf(EINVALID, "profile page parameter required")
	}
	if p.Listing.Entry == "" || p.Listing.NameLink == "" {
		return Errorf(EINVALID, "profile entry and name link selectors required")
	}
	return nil
}

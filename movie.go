package cinedex

import (
	"context"
	"time"
)

// DateLayout is the layout of release dates on detail pages and in storage.
const DateLayout = "2006-01-02"

// Movie represents a catalog item. Name is its natural key.
type Movie struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Synopsis      string     `json:"synopsis"`
	ReleaseDate   *time.Time `json:"releaseDate"`
	Runtime       int        `json:"runtime"`
	ContentRating string     `json:"contentRating"`
	SourceURL     string     `json:"sourceUrl"`
	SourceRank    int        `json:"sourceRank"`
	SourceScore   float64    `json:"sourceScore"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`

	Cast      []*Taxonomy `json:"cast"`
	Creators  []*Taxonomy `json:"creators"`
	Directors []*Taxonomy `json:"directors"`
	Genres    []*Taxonomy `json:"genres"`
	Keywords  []*Taxonomy `json:"keywords"`
}

// Validate returns an error if the movie contains invalid fields.
func (m *Movie) Validate() error {
	if m.Name == "" {
		return Errorf(EINVALID, "movie name required")
	}
	if m.Runtime < 0 {
		return Errorf(EINVALID, "movie runtime must not be negative")
	}
	if m.SourceRank < 0 {
		return Errorf(EINVALID, "movie source rank must not be negative")
	}
	for _, k := range Kinds {
		for _, t := range m.Taxonomies(k) {
			if t.ID == "" {
				return Errorf(EINVALID, "movie %s reference %q has no ID", k, t.Name)
			}
		}
	}
	return nil
}

// Taxonomies returns the movie's associations of the given kind.
func (m *Movie) Taxonomies(kind Kind) []*Taxonomy {
	switch kind {
	case KindCast:
		return m.Cast
	case KindCreator:
		return m.Creators
	case KindDirector:
		return m.Directors
	case KindGenre:
		return m.Genres
	case KindKeyword:
		return m.Keywords
	}
	return nil
}

// SetTaxonomies replaces the movie's associations of the given kind.
func (m *Movie) SetTaxonomies(kind Kind, ts []*Taxonomy) {
	switch kind {
	case KindCast:
		m.Cast = ts
	case KindCreator:
		m.Creators = ts
	case KindDirector:
		m.Directors = ts
	case KindGenre:
		m.Genres = ts
	case KindKeyword:
		m.Keywords = ts
	}
}

// Clone returns a copy of m whose association slices can be replaced
// without affecting m.
func (m *Movie) Clone() *Movie {
	other := *m
	if m.ReleaseDate != nil {
		d := *m.ReleaseDate
		other.ReleaseDate = &d
	}
	for _, k := range Kinds {
		other.SetTaxonomies(k, append([]*Taxonomy(nil), m.Taxonomies(k)...))
	}
	return &other
}

// Apply overwrites the movie's scalar attributes with those present in rec.
// Absent attributes leave the current values untouched.
func (m *Movie) Apply(rec *MovieRecord) {
	if rec.Synopsis != nil {
		m.Synopsis = *rec.Synopsis
	}
	if rec.ReleaseDate != nil {
		d := *rec.ReleaseDate
		m.ReleaseDate = &d
	}
	if rec.Runtime != nil {
		m.Runtime = *rec.Runtime
	}
	if rec.ContentRating != nil {
		m.ContentRating = *rec.ContentRating
	}
	if rec.DetailURL != "" {
		m.SourceURL = rec.DetailURL
	}
	if rec.Rank != nil {
		m.SourceRank = *rec.Rank
	}
	if rec.Score != nil {
		m.SourceScore = *rec.Score
	}
}

// MovieRecord is a movie as extracted from the source site. Every field
// except Name is optional; nil pointers and empty strings mean absent.
type MovieRecord struct {
	Name          string     `json:"name"`
	DetailURL     string     `json:"detailUrl,omitempty"`
	Rank          *int       `json:"rank,omitempty"`
	ContentRating *string    `json:"contentRating,omitempty"`
	Runtime       *int       `json:"runtime,omitempty"`
	Synopsis      *string    `json:"synopsis,omitempty"`
	ReleaseDate   *time.Time `json:"releaseDate,omitempty"`
	Score         *float64   `json:"score,omitempty"`

	Genres    []string `json:"genres,omitempty"`
	Directors []string `json:"directors,omitempty"`
	Creators  []string `json:"creators,omitempty"`
	Cast      []string `json:"cast,omitempty"`
	Keywords  []string `json:"keywords,omitempty"`
}

// Names returns the referenced display names of the given kind.
func (r *MovieRecord) Names(kind Kind) []string {
	switch kind {
	case KindCast:
		return r.Cast
	case KindCreator:
		return r.Creators
	case KindDirector:
		return r.Directors
	case KindGenre:
		return r.Genres
	case KindKeyword:
		return r.Keywords
	}
	return nil
}

// ApplyDetails merges attributes extracted from a detail page into the record.
// Absent detail fields leave the record untouched.
func (r *MovieRecord) ApplyDetails(d *MovieDetails) {
	if d.Synopsis != nil {
		r.Synopsis = d.Synopsis
	}
	if d.ReleaseDate != nil {
		r.ReleaseDate = d.ReleaseDate
	}
	if d.Score != nil {
		r.Score = d.Score
	}
	r.Directors = d.Directors
	r.Creators = d.Creators
	r.Cast = d.Cast
	r.Keywords = d.Keywords
}

// MovieDetails holds the extended attributes found on a detail page.
type MovieDetails struct {
	Synopsis    *string
	ReleaseDate *time.Time
	Score       *float64
	Directors   []string
	Creators    []string
	Cast        []string
	Keywords    []string
}

// MovieService represents a service for managing movies.
type MovieService interface {
	// CreateMovie creates a new movie together with its taxonomy associations.
	// Returns ECONFLICT if a movie with the same name exists.
	CreateMovie(ctx context.Context, movie *Movie) error

	// UpdateMovie overwrites all attributes of an existing movie and
	// replaces its entire association set with the movie's current one.
	// Returns ENOTFOUND if the movie does not exist.
	UpdateMovie(ctx context.Context, movie *Movie) error

	// FindMovieByID retrieves a movie by ID, including its associations.
	// Returns ENOTFOUND if the movie does not exist.
	FindMovieByID(ctx context.Context, id string) (*Movie, error)

	// FindMovies retrieves movies matching the filter.
	// Associations are not loaded.
	FindMovies(ctx context.Context, filter MovieFilter) ([]*Movie, error)
}

// MovieFilter represents a filter for FindMovies.
type MovieFilter struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

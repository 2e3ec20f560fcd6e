package cinedex

import (
	"context"
	"strings"
	"time"
)

// searchFieldSeparator separates the fields of a search document.
const searchFieldSeparator = "; "

// SearchDocument is the denormalized full-text representation of a movie.
// It is never derived by storage and must be rewritten after every change
// to the movie or its associations.
type SearchDocument struct {
	MovieID     string    `json:"movieId"`
	Content     string    `json:"content"`
	ContentHash string    `json:"contentHash"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewSearchDocument builds the search document of a movie. Fields appear in
// a fixed order: name, synopsis, cast, creators, directors, genres and
// keywords, with names inside a field joined by ", ".
func NewSearchDocument(m *Movie) *SearchDocument {
	fields := []string{m.Name, m.Synopsis}
	for _, k := range Kinds {
		ts := m.Taxonomies(k)
		names := make([]string, len(ts))
		for i, t := range ts {
			names[i] = t.Name
		}
		fields = append(fields, strings.Join(names, ", "))
	}
	return &SearchDocument{
		MovieID: m.ID,
		Content: strings.Join(fields, searchFieldSeparator),
	}
}

// SearchService represents a service for the full-text search index.
type SearchService interface {
	// UpsertSearchDocument creates the movie's search document, or
	// overwrites it in place if one exists.
	UpsertSearchDocument(ctx context.Context, doc *SearchDocument) error

	// FindSearchDocument retrieves the search document of a movie.
	// Returns ENOTFOUND if none has been written.
	FindSearchDocument(ctx context.Context, movieID string) (*SearchDocument, error)

	// SearchMovies returns the movies whose search documents match query.
	// See ParseSearchQuery for the grammar. Associations are not loaded.
	SearchMovies(ctx context.Context, query string) ([]*Movie, error)
}

package mock

import (
	"context"

	"github.com/fwojciec/cinedex"
)

var _ cinedex.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of cinedex.SearchService.
type SearchService struct {
	UpsertSearchDocumentFn func(ctx context.Context, doc *cinedex.SearchDocument) error
	FindSearchDocumentFn   func(ctx context.Context, movieID string) (*cinedex.SearchDocument, error)
	SearchMoviesFn         func(ctx context.Context, query string) ([]*cinedex.Movie, error)
}

func (s *SearchService) UpsertSearchDocument(ctx context.Context, doc *cinedex.SearchDocument) error {
	return s.UpsertSearchDocumentFn(ctx, doc)
}

func (s *SearchService) FindSearchDocument(ctx context.Context, movieID string) (*cinedex.SearchDocument, error) {
	return s.FindSearchDocumentFn(ctx, movieID)
}

func (s *SearchService) SearchMovies(ctx context.Context, query string) ([]*cinedex.Movie, error) {
	return s.SearchMoviesFn(ctx, query)
}

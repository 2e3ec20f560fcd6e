package mock

import (
	"context"

	"github.com/fwojciec/cinedex"
)

var _ cinedex.MovieService = (*MovieService)(nil)

// MovieService is a mock implementation of cinedex.MovieService.
type MovieService struct {
	CreateMovieFn   func(ctx context.Context, movie *cinedex.Movie) error
	UpdateMovieFn   func(ctx context.Context, movie *cinedex.Movie) error
	FindMovieByIDFn func(ctx context.Context, id string) (*cinedex.Movie, error)
	FindMoviesFn    func(ctx context.Context, filter cinedex.MovieFilter) ([]*cinedex.Movie, error)
}

func (s *MovieService) CreateMovie(ctx context.Context, movie *cinedex.Movie) error {
	return s.CreateMovieFn(ctx, movie)
}

func (s *MovieService) UpdateMovie(ctx context.Context, movie *cinedex.Movie) error {
	return s.UpdateMovieFn(ctx, movie)
}

func (s *MovieService) FindMovieByID(ctx context.Context, id string) (*cinedex.Movie, error) {
	return s.FindMovieByIDFn(ctx, id)
}

func (s *MovieService) FindMovies(ctx context.Context, filter cinedex.MovieFilter) ([]*cinedex.Movie, error) {
	return s.FindMoviesFn(ctx, filter)
}

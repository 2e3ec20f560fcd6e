package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cinedex"
)

// Ensure LoggingMovieService implements cinedex.MovieService.
var _ cinedex.MovieService = (*LoggingMovieService)(nil)

// LoggingMovieService wraps a MovieService with debug logging of writes.
type LoggingMovieService struct {
	next   cinedex.MovieService
	logger *slog.Logger
}

// NewLoggingMovieService creates a new LoggingMovieService.
func NewLoggingMovieService(next cinedex.MovieService, logger *slog.Logger) *LoggingMovieService {
	return &LoggingMovieService{next: next, logger: logger}
}

func (s *LoggingMovieService) CreateMovie(ctx context.Context, movie *cinedex.Movie) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("movie create",
			"name", movie.Name,
			"id", movie.ID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateMovie(ctx, movie)
}

func (s *LoggingMovieService) UpdateMovie(ctx context.Context, movie *cinedex.Movie) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("movie update",
			"name", movie.Name,
			"id", movie.ID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.UpdateMovie(ctx, movie)
}

func (s *LoggingMovieService) FindMovieByID(ctx context.Context, id string) (*cinedex.Movie, error) {
	return s.next.FindMovieByID(ctx, id)
}

func (s *LoggingMovieService) FindMovies(ctx context.Context, filter cinedex.MovieFilter) ([]*cinedex.Movie, error) {
	return s.next.FindMovies(ctx, filter)
}

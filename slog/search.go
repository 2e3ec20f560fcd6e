package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cinedex"
)

// Ensure LoggingSearchService implements cinedex.SearchService.
var _ cinedex.SearchService = (*LoggingSearchService)(nil)

// LoggingSearchService wraps a SearchService with logging.
type LoggingSearchService struct {
	next   cinedex.SearchService
	logger *slog.Logger
}

// NewLoggingSearchService creates a new LoggingSearchService.
func NewLoggingSearchService(next cinedex.SearchService, logger *slog.Logger) *LoggingSearchService {
	return &LoggingSearchService{next: next, logger: logger}
}

// UpsertSearchDocument delegates to the wrapped service and logs the write.
func (s *LoggingSearchService) UpsertSearchDocument(ctx context.Context, doc *cinedex.SearchDocument) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("search document upsert",
			"movie_id", doc.MovieID,
			"hash", doc.ContentHash,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.UpsertSearchDocument(ctx, doc)
}

// FindSearchDocument delegates to the wrapped service.
func (s *LoggingSearchService) FindSearchDocument(ctx context.Context, movieID string) (*cinedex.SearchDocument, error) {
	return s.next.FindSearchDocument(ctx, movieID)
}

// SearchMovies delegates to the wrapped service and logs the query.
func (s *LoggingSearchService) SearchMovies(ctx context.Context, query string) (movies []*cinedex.Movie, err error) {
	defer func(begin time.Time) {
		s.logger.Info("search",
			"query", query,
			"count", len(movies),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SearchMovies(ctx, query)
}

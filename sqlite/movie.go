package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/cinedex"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ cinedex.MovieService = (*MovieService)(nil)

// MovieService implements cinedex.MovieService using SQLite.
type MovieService struct {
	db *DB
}

// NewMovieService creates a new MovieService.
func NewMovieService(db *DB) *MovieService {
	return &MovieService{db: db}
}

// CreateMovie creates a new movie and its associations in one transaction.
func (s *MovieService) CreateMovie(ctx context.Context, movie *cinedex.Movie) error {
	if err := movie.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	id := uuid.New().String()
	now := time.Now().UTC()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO movies (id, name, synopsis, release_date, runtime, content_rating,
			source_url, source_rank, source_score, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, movie.Name, movie.Synopsis, formatReleaseDate(movie.ReleaseDate), movie.Runtime, movie.ContentRating,
		movie.SourceURL, movie.SourceRank, movie.SourceScore, now.Format(time.RFC3339), now.Format(time.RFC3339))
	if isUniqueViolation(err) {
		return cinedex.Errorf(cinedex.ECONFLICT, "movie %q already exists", movie.Name)
	}
	if err != nil {
		return err
	}

	if err := replaceAssociations(ctx, tx, id, movie); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	movie.ID = id
	movie.CreatedAt = now
	movie.UpdatedAt = now
	return nil
}

// UpdateMovie overwrites an existing movie and replaces all of its
// associations in one transaction.
func (s *MovieService) UpdateMovie(ctx context.Context, movie *cinedex.Movie) error {
	if movie.ID == "" {
		return cinedex.Errorf(cinedex.EINVALID, "movie ID required")
	}
	if err := movie.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	result, err := tx.ExecContext(ctx, `
		UPDATE movies
		SET name = ?, synopsis = ?, release_date = ?, runtime = ?, content_rating = ?,
			source_url = ?, source_rank = ?, source_score = ?, updated_at = ?
		WHERE id = ?
	`, movie.Name, movie.Synopsis, formatReleaseDate(movie.ReleaseDate), movie.Runtime, movie.ContentRating,
		movie.SourceURL, movie.SourceRank, movie.SourceScore, now.Format(time.RFC3339), movie.ID)
	if isUniqueViolation(err) {
		return cinedex.Errorf(cinedex.ECONFLICT, "movie %q already exists", movie.Name)
	}
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return cinedex.Errorf(cinedex.ENOTFOUND, "movie not found")
	}

	if err := replaceAssociations(ctx, tx, movie.ID, movie); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	movie.UpdatedAt = now
	return nil
}

// replaceAssociations deletes every association of the movie and inserts
// the movie's current set, preserving order within each kind.
func replaceAssociations(ctx context.Context, tx *sql.Tx, movieID string, movie *cinedex.Movie) error {
	for _, kind := range cinedex.Kinds {
		table, join, err := taxonomyTables(kind)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM "+join+" WHERE movie_id = ?", movieID); err != nil {
			return err
		}

		for i, t := range movie.Taxonomies(kind) {
			_, err := tx.ExecContext(ctx,
				"INSERT OR IGNORE INTO "+join+" (movie_id, taxonomy_id, position) VALUES (?, ?, ?)",
				movieID, t.ID, i)
			if isForeignKeyViolation(err) {
				return cinedex.Errorf(cinedex.EINVALID, "movie references unknown %s %q", table, t.Name)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// FindMovieByID retrieves a movie by ID together with its associations.
func (s *MovieService) FindMovieByID(ctx context.Context, id string) (*cinedex.Movie, error) {
	movie, err := scanMovie(s.db.QueryRowContext(ctx,
		"SELECT "+movieColumns+" FROM movies WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, cinedex.Errorf(cinedex.ENOTFOUND, "movie not found")
	}
	if err != nil {
		return nil, err
	}

	for _, kind := range cinedex.Kinds {
		ts, err := s.findAssociations(ctx, kind, id)
		if err != nil {
			return nil, err
		}
		movie.SetTaxonomies(kind, ts)
	}

	return movie, nil
}

func (s *MovieService) findAssociations(ctx context.Context, kind cinedex.Kind, movieID string) ([]*cinedex.Taxonomy, error) {
	table, join, err := taxonomyTables(kind)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT t.id, t.name, t.tag, t.created_at
		FROM %s t
		JOIN %s j ON j.taxonomy_id = t.id
		WHERE j.movie_id = ?
		ORDER BY j.position ASC
	`, table, join), movieID)
	if err != nil {
		return nil, err
	}

	return scanTaxonomies(rows, kind)
}

// FindMovies retrieves movies matching the filter, ordered by name.
func (s *MovieService) FindMovies(ctx context.Context, filter cinedex.MovieFilter) ([]*cinedex.Movie, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + movieColumns + " FROM movies WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY name ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}

	return scanMovies(rows)
}

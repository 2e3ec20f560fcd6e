package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/cinedex"
)

// parseRFC3339 parses an RFC3339 formatted timestamp string.
// Returns an error if parsing fails with a descriptive message including the field name.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses to a query builder if values are > 0.
// SQLite requires a LIMIT before OFFSET, so an offset alone uses LIMIT -1.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	} else if offset > 0 {
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}

// hashContent computes the xxHash of content as a hex string.
func hashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// movieColumns lists the columns scanned by scanMovie.
const movieColumns = `id, name, synopsis, release_date, runtime, content_rating,
	source_url, source_rank, source_score, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

// scanMovie scans a row selected with movieColumns.
func scanMovie(row scanner) (*cinedex.Movie, error) {
	var m cinedex.Movie
	var releaseDate sql.NullString
	var createdAt, updatedAt string

	if err := row.Scan(&m.ID, &m.Name, &m.Synopsis, &releaseDate, &m.Runtime, &m.ContentRating,
		&m.SourceURL, &m.SourceRank, &m.SourceScore, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	if releaseDate.Valid {
		d, err := time.Parse(cinedex.DateLayout, releaseDate.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse release_date: %w", err)
		}
		m.ReleaseDate = &d
	}

	var err error
	if m.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if m.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &m, nil
}

// scanMovies collects every row selected with movieColumns.
func scanMovies(rows *sql.Rows) ([]*cinedex.Movie, error) {
	defer rows.Close()

	var movies []*cinedex.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

func formatReleaseDate(d *time.Time) any {
	if d == nil {
		return nil
	}
	return d.Format(cinedex.DateLayout)
}

package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/cinedex"
)

// Compile-time interface verification.
var _ cinedex.SearchService = (*SearchService)(nil)

// SearchService implements cinedex.SearchService on two FTS5 tables:
// movies_search tokenizes words for token and prefix queries, and
// movies_search_trigram indexes trigrams of the folded content for
// substring queries, so those ignore case and accents like token queries.
type SearchService struct {
	db *DB
}

// NewSearchService creates a new SearchService.
func NewSearchService(db *DB) *SearchService {
	return &SearchService{db: db}
}

// UpsertSearchDocument replaces the movie's rows in both search tables.
// ContentHash and UpdatedAt are set on doc.
func (s *SearchService) UpsertSearchDocument(ctx context.Context, doc *cinedex.SearchDocument) error {
	if doc.MovieID == "" {
		return cinedex.Errorf(cinedex.EINVALID, "search document movie ID required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	hash := hashContent(doc.Content)
	now := time.Now().UTC()

	for _, stmt := range []string{
		"DELETE FROM movies_search WHERE movie_id = ?",
		"DELETE FROM movies_search_trigram WHERE movie_id = ?",
	} {
		if _, err := tx.ExecContext(ctx, stmt, doc.MovieID); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO movies_search (movie_id, content_hash, updated_at, content)
		VALUES (?, ?, ?, ?)
	`, doc.MovieID, hash, now.Format(time.RFC3339), doc.Content); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO movies_search_trigram (movie_id, content) VALUES (?, ?)",
		doc.MovieID, cinedex.Fold(doc.Content)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	doc.ContentHash = hash
	doc.UpdatedAt = now
	return nil
}

// FindSearchDocument retrieves the search document of a movie.
func (s *SearchService) FindSearchDocument(ctx context.Context, movieID string) (*cinedex.SearchDocument, error) {
	var doc cinedex.SearchDocument
	var updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT movie_id, content, content_hash, updated_at
		FROM movies_search
		WHERE movie_id = ?
	`, movieID).Scan(&doc.MovieID, &doc.Content, &doc.ContentHash, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, cinedex.Errorf(cinedex.ENOTFOUND, "search document not found")
	}
	if err != nil {
		return nil, err
	}

	if doc.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &doc, nil
}

// SearchMovies returns the movies matching query, ordered by name.
func (s *SearchService) SearchMovies(ctx context.Context, query string) ([]*cinedex.Movie, error) {
	expr, err := cinedex.ParseSearchQuery(query)
	if err != nil {
		return nil, err
	}

	var args []any
	where := compileSearch(expr, &args)

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+movieColumns+" FROM movies WHERE "+where+" ORDER BY name ASC", args...)
	if err != nil {
		return nil, err
	}

	return scanMovies(rows)
}

// compileSearch turns a query expression into a WHERE condition on movies.
// Every term becomes a subquery against one of the search tables.
func compileSearch(expr cinedex.SearchExpr, args *[]any) string {
	switch e := expr.(type) {
	case *cinedex.SearchTerm:
		switch e.Mode {
		case cinedex.MatchSubstring:
			*args = append(*args, "%"+escapeLike(cinedex.Fold(e.Text))+"%")
			return `id IN (SELECT movie_id FROM movies_search_trigram WHERE content LIKE ? ESCAPE '\')`
		case cinedex.MatchPrefix:
			*args = append(*args, quotePhrase(e.Text)+"*")
		default:
			*args = append(*args, quotePhrase(e.Text))
		}
		return "id IN (SELECT movie_id FROM movies_search WHERE movies_search MATCH ?)"
	case *cinedex.SearchAnd:
		return compileOperands(e.Operands, " AND ", args)
	case *cinedex.SearchOr:
		return compileOperands(e.Operands, " OR ", args)
	}
	return "0"
}

func compileOperands(operands []cinedex.SearchExpr, op string, args *[]any) string {
	parts := make([]string, len(operands))
	for i, operand := range operands {
		parts[i] = compileSearch(operand, args)
	}
	return "(" + strings.Join(parts, op) + ")"
}

// quotePhrase quotes text as an FTS5 string so that query syntax
// characters inside a term are matched literally.
func quotePhrase(text string) string {
	return `"` + strings.ReplaceAll(text, `"`, `""`) + `"`
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(text string) string {
	return likeEscaper.Replace(text)
}

package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/cinedex"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ cinedex.TaxonomyService = (*TaxonomyService)(nil)

// TaxonomyService implements cinedex.TaxonomyService using SQLite.
type TaxonomyService struct {
	db *DB
}

// NewTaxonomyService creates a new TaxonomyService.
func NewTaxonomyService(db *DB) *TaxonomyService {
	return &TaxonomyService{db: db}
}

// CreateTaxonomy creates a new taxonomy entity in its kind's table.
func (s *TaxonomyService) CreateTaxonomy(ctx context.Context, t *cinedex.Taxonomy) error {
	if err := t.Validate(); err != nil {
		return err
	}
	table, _, err := taxonomyTables(t.Kind)
	if err != nil {
		return err
	}

	id := uuid.New().String()
	now := time.Now().UTC()

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO "+table+" (id, name, tag, created_at) VALUES (?, ?, ?, ?)",
		id, t.Name, t.Tag, now.Format(time.RFC3339))
	if isUniqueViolation(err) {
		return cinedex.Errorf(cinedex.ECONFLICT, "%s tag %q already exists", t.Kind, t.Tag)
	}
	if err != nil {
		return err
	}

	t.ID = id
	t.CreatedAt = now
	return nil
}

// FindTaxonomyByID retrieves a taxonomy entity by kind and ID.
func (s *TaxonomyService) FindTaxonomyByID(ctx context.Context, kind cinedex.Kind, id string) (*cinedex.Taxonomy, error) {
	table, _, err := taxonomyTables(kind)
	if err != nil {
		return nil, err
	}

	t := cinedex.Taxonomy{Kind: kind}
	var createdAt string

	err = s.db.QueryRowContext(ctx,
		"SELECT id, name, tag, created_at FROM "+table+" WHERE id = ?", id,
	).Scan(&t.ID, &t.Name, &t.Tag, &createdAt)
	if err == sql.ErrNoRows {
		return nil, cinedex.Errorf(cinedex.ENOTFOUND, "%s entry not found", kind)
	}
	if err != nil {
		return nil, err
	}

	if t.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &t, nil
}

// FindTaxonomies retrieves taxonomy entities of one kind, ordered by tag.
func (s *TaxonomyService) FindTaxonomies(ctx context.Context, filter cinedex.TaxonomyFilter) ([]*cinedex.Taxonomy, error) {
	table, _, err := taxonomyTables(filter.Kind)
	if err != nil {
		return nil, err
	}

	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, name, tag, created_at FROM " + table + " WHERE 1=1")

	if filter.Tag != nil {
		query.WriteString(" AND tag = ?")
		args = append(args, *filter.Tag)
	}

	query.WriteString(" ORDER BY tag ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}

	return scanTaxonomies(rows, filter.Kind)
}

func scanTaxonomies(rows *sql.Rows, kind cinedex.Kind) ([]*cinedex.Taxonomy, error) {
	defer rows.Close()

	ts := []*cinedex.Taxonomy{}
	for rows.Next() {
		t := &cinedex.Taxonomy{Kind: kind}
		var createdAt string

		if err := rows.Scan(&t.ID, &t.Name, &t.Tag, &createdAt); err != nil {
			return nil, err
		}

		var err error
		if t.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		ts = append(ts, t)
	}
	return ts, rows.Err()
}

package mock

import (
	"context"

	"github.com/fwojciec/cinedex"
)

var _ cinedex.TaxonomyService = (*TaxonomyService)(nil)

// TaxonomyService is a mock implementation of cinedex.TaxonomyService.
type TaxonomyService struct {
	CreateTaxonomyFn   func(ctx context.Context, t *cinedex.Taxonomy) error
	FindTaxonomyByIDFn func(ctx context.Context, kind cinedex.Kind, id string) (*cinedex.Taxonomy, error)
	FindTaxonomiesFn   func(ctx context.Context, filter cinedex.TaxonomyFilter) ([]*cinedex.Taxonomy, error)
}

func (s *TaxonomyService) CreateTaxonomy(ctx context.Context, t *cinedex.Taxonomy) error {
	return s.CreateTaxonomyFn(ctx, t)
}

func (s *TaxonomyService) FindTaxonomyByID(ctx context.Context, kind cinedex.Kind, id string) (*cinedex.Taxonomy, error) {
	return s.FindTaxonomyByIDFn(ctx, kind, id)
}

func (s *TaxonomyService) FindTaxonomies(ctx context.Context, filter cinedex.TaxonomyFilter) ([]*cinedex.Taxonomy, error) {
	return s.FindTaxonomiesFn(ctx, filter)
}

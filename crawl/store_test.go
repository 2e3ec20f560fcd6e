package crawl_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/fwojciec/cinedex"
	"github.com/fwojciec/cinedex/mock"
)

// memStore backs the mock services with maps and records writes.
type memStore struct {
	mu         sync.Mutex
	nextID     int
	taxonomies map[cinedex.Kind]map[string]*cinedex.Taxonomy
	movies     map[string]*cinedex.Movie
	docs       map[string]*cinedex.SearchDocument

	creates, updates, taxonomyCreates, docWrites int
}

func newMemStore() *memStore {
	return &memStore{
		taxonomies: make(map[cinedex.Kind]map[string]*cinedex.Taxonomy),
		movies:     make(map[string]*cinedex.Movie),
		docs:       make(map[string]*cinedex.SearchDocument),
	}
}

func (s *memStore) id(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s%d", prefix, s.nextID)
}

// addTaxonomy seeds an existing entity.
func (s *memStore) addTaxonomy(kind cinedex.Kind, name string) *cinedex.Taxonomy {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &cinedex.Taxonomy{ID: s.id("t"), Kind: kind, Name: name, Tag: cinedex.Tag(name)}
	if s.taxonomies[kind] == nil {
		s.taxonomies[kind] = make(map[string]*cinedex.Taxonomy)
	}
	s.taxonomies[kind][t.Tag] = t
	return t
}

// addMovie seeds an existing movie.
func (s *memStore) addMovie(m *cinedex.Movie) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = s.id("m")
	s.movies[m.Name] = m
}

func (s *memStore) movie(name string) *cinedex.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.movies[name]
}

func (s *memStore) doc(movieID string) *cinedex.SearchDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs[movieID]
}

func (s *memStore) movieService() *mock.MovieService {
	return &mock.MovieService{
		CreateMovieFn: func(_ context.Context, m *cinedex.Movie) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			if err := m.Validate(); err != nil {
				return err
			}
			if _, ok := s.movies[m.Name]; ok {
				return cinedex.Errorf(cinedex.ECONFLICT, "movie %q already exists", m.Name)
			}
			m.ID = s.id("m")
			s.creates++
			s.movies[m.Name] = m.Clone()
			return nil
		},
		UpdateMovieFn: func(_ context.Context, m *cinedex.Movie) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.movies[m.Name]; !ok {
				return cinedex.Errorf(cinedex.ENOTFOUND, "movie not found")
			}
			s.updates++
			s.movies[m.Name] = m.Clone()
			return nil
		},
		FindMoviesFn: func(_ context.Context, _ cinedex.MovieFilter) ([]*cinedex.Movie, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			var movies []*cinedex.Movie
			for _, m := range s.movies {
				// Associations are not loaded.
				movies = append(movies, &cinedex.Movie{
					ID: m.ID, Name: m.Name, Synopsis: m.Synopsis, Runtime: m.Runtime,
					ContentRating: m.ContentRating, SourceURL: m.SourceURL, SourceRank: m.SourceRank,
				})
			}
			return movies, nil
		},
	}
}

func (s *memStore) taxonomyService() *mock.TaxonomyService {
	return &mock.TaxonomyService{
		CreateTaxonomyFn: func(_ context.Context, t *cinedex.Taxonomy) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.taxonomies[t.Kind] == nil {
				s.taxonomies[t.Kind] = make(map[string]*cinedex.Taxonomy)
			}
			if _, ok := s.taxonomies[t.Kind][t.Tag]; ok {
				return cinedex.Errorf(cinedex.ECONFLICT, "tag %q already exists", t.Tag)
			}
			t.ID = s.id("t")
			s.taxonomyCreates++
			s.taxonomies[t.Kind][t.Tag] = t
			return nil
		},
		FindTaxonomiesFn: func(_ context.Context, filter cinedex.TaxonomyFilter) ([]*cinedex.Taxonomy, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			var ts []*cinedex.Taxonomy
			for tag, t := range s.taxonomies[filter.Kind] {
				if filter.Tag == nil || *filter.Tag == tag {
					ts = append(ts, t)
				}
			}
			return ts, nil
		},
	}
}

func (s *memStore) searchService() *mock.SearchService {
	return &mock.SearchService{
		UpsertSearchDocumentFn: func(_ context.Context, doc *cinedex.SearchDocument) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.docWrites++
			s.docs[doc.MovieID] = doc
			return nil
		},
	}
}

func (s *memStore) catalog() *crawlCatalog {
	return &crawlCatalog{movies: s.movieService(), taxonomies: s.taxonomyService(), search: s.searchService()}
}

// crawlCatalog bundles the mock services so tests can swap single functions.
type crawlCatalog struct {
	movies     *mock.MovieService
	taxonomies *mock.TaxonomyService
	search     *mock.SearchService
}

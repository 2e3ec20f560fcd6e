package crawl

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/fwojciec/cinedex"
)

// Catalog resolves taxonomy references and upserts movies against caches
// that live for one crawl run. The caches are loaded from storage on first
// use. Each taxonomy kind and the movie cache are guarded by their own
// mutex, so check-then-create never races within a run.
type Catalog struct {
	movies     cinedex.MovieService
	taxonomies cinedex.TaxonomyService
	search     cinedex.SearchService
	logger     *slog.Logger

	kinds  [cinedex.KindCount]taxonomyCache
	movieC movieCache
}

type taxonomyCache struct {
	mu    sync.Mutex
	byTag map[string]*cinedex.Taxonomy
}

type movieCache struct {
	mu     sync.Mutex
	byName map[string]*cinedex.Movie
}

// NewCatalog creates a Catalog with empty caches. A nil logger discards output.
func NewCatalog(movies cinedex.MovieService, taxonomies cinedex.TaxonomyService, search cinedex.SearchService, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Catalog{
		movies:     movies,
		taxonomies: taxonomies,
		search:     search,
		logger:     logger,
	}
}

// Resolve maps display names to taxonomy entities of one kind, creating
// the entities whose tag has not been seen. Names are trimmed; names with
// an empty tag are dropped and names sharing a tag resolve once, keeping
// the first occurrence's position. An unsupported kind is logged and
// resolves to nothing.
func (c *Catalog) Resolve(ctx context.Context, kind cinedex.Kind, names []string) ([]*cinedex.Taxonomy, error) {
	if !kind.Valid() {
		c.logger.Warn("unsupported taxonomy kind", "kind", int(kind), "names", names)
		return []*cinedex.Taxonomy{}, nil
	}

	cache := &c.kinds[kind]
	cache.mu.Lock()
	defer cache.mu.Unlock()

	if cache.byTag == nil {
		if err := c.loadTaxonomies(ctx, kind, cache); err != nil {
			return nil, err
		}
	}

	resolved := make([]*cinedex.Taxonomy, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		tag := cinedex.Tag(name)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true

		t, ok := cache.byTag[tag]
		if !ok {
			var err error
			if t, err = c.createTaxonomy(ctx, kind, name, tag); err != nil {
				return nil, err
			}
			cache.byTag[tag] = t
		}
		resolved = append(resolved, t)
	}
	return resolved, nil
}

func (c *Catalog) loadTaxonomies(ctx context.Context, kind cinedex.Kind, cache *taxonomyCache) error {
	ts, err := c.taxonomies.FindTaxonomies(ctx, cinedex.TaxonomyFilter{Kind: kind})
	if err != nil {
		return err
	}
	cache.byTag = make(map[string]*cinedex.Taxonomy, len(ts))
	for _, t := range ts {
		cache.byTag[t.Tag] = t
	}
	return nil
}

// createTaxonomy creates an entity, falling back to the stored one when
// another writer took the tag since the cache was loaded.
func (c *Catalog) createTaxonomy(ctx context.Context, kind cinedex.Kind, name, tag string) (*cinedex.Taxonomy, error) {
	t := &cinedex.Taxonomy{Kind: kind, Name: name, Tag: tag}
	err := c.taxonomies.CreateTaxonomy(ctx, t)
	if err == nil {
		return t, nil
	}
	if cinedex.ErrorCode(err) != cinedex.ECONFLICT {
		return nil, err
	}

	found, ferr := c.taxonomies.FindTaxonomies(ctx, cinedex.TaxonomyFilter{Kind: kind, Tag: &tag, Limit: 1})
	if ferr != nil {
		return nil, ferr
	}
	if len(found) == 0 {
		return nil, err
	}
	return found[0], nil
}

// Upsert creates the movie named by rec or, if one exists, overwrites it.
// Attributes absent from rec keep their stored values, but every taxonomy
// association set is replaced by the one resolved from rec. On success the
// movie's search document is rewritten; a failure there is logged and does
// not fail the upsert. Persistence failures are logged with the record's
// attributes and returned.
func (c *Catalog) Upsert(ctx context.Context, rec *cinedex.MovieRecord) (*cinedex.Movie, error) {
	name := strings.TrimSpace(rec.Name)
	if name == "" {
		return nil, cinedex.Errorf(cinedex.EINVALID, "movie name required")
	}

	c.movieC.mu.Lock()
	defer c.movieC.mu.Unlock()

	if c.movieC.byName == nil {
		if err := c.loadMovies(ctx); err != nil {
			c.logUpsertFailure(name, rec, err)
			return nil, err
		}
	}

	existing := c.movieC.byName[name]
	var movie *cinedex.Movie
	if existing != nil {
		movie = existing.Clone()
	} else {
		movie = &cinedex.Movie{Name: name}
	}
	movie.Apply(rec)

	for _, kind := range cinedex.Kinds {
		ts, err := c.Resolve(ctx, kind, rec.Names(kind))
		if err != nil {
			c.logUpsertFailure(name, rec, err)
			return nil, err
		}
		movie.SetTaxonomies(kind, ts)
	}

	var err error
	if existing != nil {
		err = c.movies.UpdateMovie(ctx, movie)
	} else {
		err = c.movies.CreateMovie(ctx, movie)
	}
	if err != nil {
		c.logUpsertFailure(name, rec, err)
		return nil, err
	}

	c.refreshSearch(ctx, movie)
	c.movieC.byName[name] = movie
	return movie, nil
}

func (c *Catalog) loadMovies(ctx context.Context) error {
	movies, err := c.movies.FindMovies(ctx, cinedex.MovieFilter{})
	if err != nil {
		return err
	}
	c.movieC.byName = make(map[string]*cinedex.Movie, len(movies))
	for _, m := range movies {
		c.movieC.byName[m.Name] = m
	}
	return nil
}

// refreshSearch rewrites the movie's search document. The movie itself is
// already committed, so failures leave the document stale.
func (c *Catalog) refreshSearch(ctx context.Context, movie *cinedex.Movie) {
	doc := cinedex.NewSearchDocument(movie)
	if err := c.search.UpsertSearchDocument(ctx, doc); err != nil {
		c.logger.Warn("search document write failed",
			"name", movie.Name,
			"movie_id", movie.ID,
			"err", err,
		)
	}
}

func (c *Catalog) logUpsertFailure(name string, rec *cinedex.MovieRecord, err error) {
	c.logger.Warn("movie upsert failed",
		"name", name,
		recordAttrs(rec),
		"code", cinedex.ErrorCode(err),
		"err", err,
	)
}

// recordAttrs groups the attributes present in rec for logging.
func recordAttrs(rec *cinedex.MovieRecord) slog.Attr {
	var attrs []any
	if rec.DetailURL != "" {
		attrs = append(attrs, "detail_url", rec.DetailURL)
	}
	if rec.Rank != nil {
		attrs = append(attrs, "rank", *rec.Rank)
	}
	if rec.ContentRating != nil {
		attrs = append(attrs, "content_rating", *rec.ContentRating)
	}
	if rec.Runtime != nil {
		attrs = append(attrs, "runtime", *rec.Runtime)
	}
	if rec.ReleaseDate != nil {
		attrs = append(attrs, "release_date", rec.ReleaseDate.Format(cinedex.DateLayout))
	}
	if rec.Score != nil {
		attrs = append(attrs, "score", *rec.Score)
	}
	for _, kind := range cinedex.Kinds {
		if names := rec.Names(kind); len(names) > 0 {
			attrs = append(attrs, kind.String(), strings.Join(names, ", "))
		}
	}
	return slog.Group("attrs", attrs...)
}

package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/cinedex"
	"github.com/fwojciec/cinedex/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovieService_CreateMovie(t *testing.T) {
	t.Parallel()

	t.Run("creates movie with generated ID and timestamps", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewMovieService(setupTestDB(t))

		movie := &cinedex.Movie{Name: "Test Movie 1"}
		err := svc.CreateMovie(context.Background(), movie)

		require.NoError(t, err)
		assert.NotEmpty(t, movie.ID)
		assert.False(t, movie.CreatedAt.IsZero())
		assert.False(t, movie.UpdatedAt.IsZero())
	})

	t.Run("persists attributes and associations in order", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		taxonomies := sqlite.NewTaxonomyService(db)
		svc := sqlite.NewMovieService(db)
		ctx := context.Background()

		horror := createTaxonomy(t, taxonomies, cinedex.KindGenre, "Horror")
		action := createTaxonomy(t, taxonomies, cinedex.KindGenre, "Action")
		drew := createTaxonomy(t, taxonomies, cinedex.KindDirector, "James Drew")
		released := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)

		movie := &cinedex.Movie{
			Name:          "Test Movie 1",
			Synopsis:      "Summary of movie 1.",
			ReleaseDate:   &released,
			Runtime:       123,
			ContentRating: "PG-13",
			SourceURL:     "https://www.imdb.com/movie/1",
			SourceRank:    98,
			SourceScore:   7.25,
			Genres:        []*cinedex.Taxonomy{horror, action},
			Directors:     []*cinedex.Taxonomy{drew},
		}
		require.NoError(t, svc.CreateMovie(ctx, movie))

		found, err := svc.FindMovieByID(ctx, movie.ID)
		require.NoError(t, err)

		assert.Equal(t, "Summary of movie 1.", found.Synopsis)
		require.NotNil(t, found.ReleaseDate)
		assert.True(t, released.Equal(*found.ReleaseDate))
		assert.Equal(t, 123, found.Runtime)
		assert.Equal(t, "PG-13", found.ContentRating)
		assert.Equal(t, "https://www.imdb.com/movie/1", found.SourceURL)
		assert.Equal(t, 98, found.SourceRank)
		assert.InDelta(t, 7.25, found.SourceScore, 0.001)
		require.Len(t, found.Genres, 2)
		assert.Equal(t, "Horror", found.Genres[0].Name)
		assert.Equal(t, "Action", found.Genres[1].Name)
		require.Len(t, found.Directors, 1)
		assert.Equal(t, cinedex.KindDirector, found.Directors[0].Kind)
		assert.Empty(t, found.Cast)
		assert.Empty(t, found.Creators)
		assert.Empty(t, found.Keywords)
	})

	t.Run("returns conflict for a duplicate name", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewMovieService(setupTestDB(t))
		ctx := context.Background()
		require.NoError(t, svc.CreateMovie(ctx, &cinedex.Movie{Name: "Test Movie 1"}))

		movie := &cinedex.Movie{Name: "Test Movie 1"}
		err := svc.CreateMovie(ctx, movie)

		require.Error(t, err)
		assert.Equal(t, cinedex.ECONFLICT, cinedex.ErrorCode(err))
		assert.Empty(t, movie.ID)
	})

	t.Run("returns invalid for a reference to an unknown taxonomy", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewMovieService(setupTestDB(t))
		ctx := context.Background()

		movie := &cinedex.Movie{
			Name:   "Test Movie 1",
			Genres: []*cinedex.Taxonomy{{ID: "missing", Kind: cinedex.KindGenre, Name: "Ghost"}},
		}
		err := svc.CreateMovie(ctx, movie)

		require.Error(t, err)
		assert.Equal(t, cinedex.EINVALID, cinedex.ErrorCode(err))

		movies, err := svc.FindMovies(ctx, cinedex.MovieFilter{})
		require.NoError(t, err)
		assert.Empty(t, movies, "failed create must roll back")
	})

	t.Run("returns error for invalid movie", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewMovieService(setupTestDB(t))

		err := svc.CreateMovie(context.Background(), &cinedex.Movie{})

		require.Error(t, err)
		assert.Equal(t, cinedex.EINVALID, cinedex.ErrorCode(err))
	})
}

func TestMovieService_UpdateMovie(t *testing.T) {
	t.Parallel()

	t.Run("overwrites attributes and replaces associations", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		taxonomies := sqlite.NewTaxonomyService(db)
		svc := sqlite.NewMovieService(db)
		ctx := context.Background()

		action := createTaxonomy(t, taxonomies, cinedex.KindGenre, "Action")
		horror := createTaxonomy(t, taxonomies, cinedex.KindGenre, "Horror")
		bravery := createTaxonomy(t, taxonomies, cinedex.KindKeyword, "Bravery")

		movie := &cinedex.Movie{
			Name:     "Test Movie 1",
			Runtime:  100,
			Genres:   []*cinedex.Taxonomy{action, horror},
			Keywords: []*cinedex.Taxonomy{bravery},
		}
		require.NoError(t, svc.CreateMovie(ctx, movie))
		createdAt := movie.CreatedAt

		movie.Runtime = 123
		movie.Genres = []*cinedex.Taxonomy{horror}
		movie.Keywords = nil
		require.NoError(t, svc.UpdateMovie(ctx, movie))

		found, err := svc.FindMovieByID(ctx, movie.ID)
		require.NoError(t, err)
		assert.Equal(t, 123, found.Runtime)
		require.Len(t, found.Genres, 1)
		assert.Equal(t, horror.ID, found.Genres[0].ID)
		assert.Empty(t, found.Keywords)
		assert.True(t, createdAt.Equal(found.CreatedAt))
	})

	t.Run("clears the release date", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewMovieService(setupTestDB(t))
		ctx := context.Background()

		released := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
		movie := &cinedex.Movie{Name: "Test Movie 1", ReleaseDate: &released}
		require.NoError(t, svc.CreateMovie(ctx, movie))

		movie.ReleaseDate = nil
		require.NoError(t, svc.UpdateMovie(ctx, movie))

		found, err := svc.FindMovieByID(ctx, movie.ID)
		require.NoError(t, err)
		assert.Nil(t, found.ReleaseDate)
	})

	t.Run("returns not found for unknown movie", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewMovieService(setupTestDB(t))

		err := svc.UpdateMovie(context.Background(), &cinedex.Movie{ID: "missing", Name: "Test Movie 1"})

		require.Error(t, err)
		assert.Equal(t, cinedex.ENOTFOUND, cinedex.ErrorCode(err))
	})

	t.Run("returns invalid without an ID", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewMovieService(setupTestDB(t))

		err := svc.UpdateMovie(context.Background(), &cinedex.Movie{Name: "Test Movie 1"})

		require.Error(t, err)
		assert.Equal(t, cinedex.EINVALID, cinedex.ErrorCode(err))
	})

	t.Run("returns conflict when renaming onto an existing name", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewMovieService(setupTestDB(t))
		ctx := context.Background()

		require.NoError(t, svc.CreateMovie(ctx, &cinedex.Movie{Name: "Test Movie 1"}))
		other := &cinedex.Movie{Name: "Test Movie 2"}
		require.NoError(t, svc.CreateMovie(ctx, other))

		other.Name = "Test Movie 1"
		err := svc.UpdateMovie(ctx, other)

		require.Error(t, err)
		assert.Equal(t, cinedex.ECONFLICT, cinedex.ErrorCode(err))
	})
}

func TestMovieService_FindMovieByID(t *testing.T) {
	t.Parallel()

	t.Run("returns not found for unknown ID", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewMovieService(setupTestDB(t))

		_, err := svc.FindMovieByID(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, cinedex.ENOTFOUND, cinedex.ErrorCode(err))
	})
}

func TestMovieService_FindMovies(t *testing.T) {
	t.Parallel()

	t.Run("returns movies ordered by name", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewMovieService(setupTestDB(t))
		ctx := context.Background()
		for _, name := range []string{"Zodiac", "Alien", "Memento"} {
			require.NoError(t, svc.CreateMovie(ctx, &cinedex.Movie{Name: name}))
		}

		movies, err := svc.FindMovies(ctx, cinedex.MovieFilter{})

		require.NoError(t, err)
		require.Len(t, movies, 3)
		assert.Equal(t, "Alien", movies[0].Name)
		assert.Equal(t, "Memento", movies[1].Name)
		assert.Equal(t, "Zodiac", movies[2].Name)
	})

	t.Run("filters by name", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewMovieService(setupTestDB(t))
		ctx := context.Background()
		require.NoError(t, svc.CreateMovie(ctx, &cinedex.Movie{Name: "Alien"}))
		require.NoError(t, svc.CreateMovie(ctx, &cinedex.Movie{Name: "Memento"}))

		name := "Memento"
		movies, err := svc.FindMovies(ctx, cinedex.MovieFilter{Name: &name})

		require.NoError(t, err)
		require.Len(t, movies, 1)
		assert.Equal(t, "Memento", movies[0].Name)
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewMovieService(setupTestDB(t))
		ctx := context.Background()
		for _, name := range []string{"Alien", "Memento", "Zodiac"} {
			require.NoError(t, svc.CreateMovie(ctx, &cinedex.Movie{Name: name}))
		}

		movies, err := svc.FindMovies(ctx, cinedex.MovieFilter{Offset: 1, Limit: 1})

		require.NoError(t, err)
		require.Len(t, movies, 1)
		assert.Equal(t, "Memento", movies[0].Name)
	})

	t.Run("does not load associations", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewMovieService(db)
		ctx := context.Background()
		action := createTaxonomy(t, sqlite.NewTaxonomyService(db), cinedex.KindGenre, "Action")
		require.NoError(t, svc.CreateMovie(ctx, &cinedex.Movie{Name: "Alien", Genres: []*cinedex.Taxonomy{action}}))

		movies, err := svc.FindMovies(ctx, cinedex.MovieFilter{})

		require.NoError(t, err)
		require.Len(t, movies, 1)
		assert.Nil(t, movies[0].Genres)
	})
}

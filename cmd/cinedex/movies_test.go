package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/cinedex"
	main "github.com/fwojciec/cinedex/cmd/cinedex"
	"github.com/fwojciec/cinedex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoviesCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("passes the filter through", func(t *testing.T) {
		t.Parallel()

		var got cinedex.MovieFilter
		movies := &mock.MovieService{
			FindMoviesFn: func(_ context.Context, filter cinedex.MovieFilter) ([]*cinedex.Movie, error) {
				got = filter
				return []*cinedex.Movie{{ID: "m-1", Name: "Test Movie 1"}}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Movies: movies}

		err := (&main.MoviesCmd{Name: "Test Movie 1", Limit: 10, Offset: 20}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, got.Name)
		assert.Equal(t, "Test Movie 1", *got.Name)
		assert.Equal(t, 10, got.Limit)
		assert.Equal(t, 20, got.Offset)
		assert.Equal(t, "m-1  ----  Test Movie 1\n", stdout.String())
	})

	t.Run("leaves the name filter unset by default", func(t *testing.T) {
		t.Parallel()

		movies := &mock.MovieService{
			FindMoviesFn: func(_ context.Context, filter cinedex.MovieFilter) ([]*cinedex.Movie, error) {
				assert.Nil(t, filter.Name)
				return []*cinedex.Movie{}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Movies: movies}

		err := (&main.MoviesCmd{Limit: 50}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No movies found")
	})

	t.Run("returns storage errors", func(t *testing.T) {
		t.Parallel()

		movies := &mock.MovieService{
			FindMoviesFn: func(_ context.Context, _ cinedex.MovieFilter) ([]*cinedex.Movie, error) {
				return nil, errors.New("disk I/O error")
			},
		}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Movies: movies}

		err := (&main.MoviesCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}

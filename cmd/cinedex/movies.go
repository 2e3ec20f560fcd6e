package main

import (
	"fmt"

	"github.com/fwojciec/cinedex"
)

// Run executes the movies command.
func (c *MoviesCmd) Run(deps *Dependencies) error {
	filter := cinedex.MovieFilter{Offset: c.Offset, Limit: c.Limit}
	if c.Name != "" {
		filter.Name = &c.Name
	}

	movies, err := deps.Movies.FindMovies(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cinedex.ErrorMessage(err))
		return err
	}

	if len(movies) == 0 {
		fmt.Fprintln(deps.Stdout, "No movies found. Use 'cinedex crawl' to populate the catalog.")
		return nil
	}

	printMovies(deps, movies)
	return nil
}

package main

import (
	"fmt"

	"github.com/fwojciec/cinedex"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	movies, err := deps.Search.SearchMovies(deps.Ctx, c.Query)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cinedex.ErrorMessage(err))
		return err
	}

	if len(movies) == 0 {
		fmt.Fprintf(deps.Stdout, "No movies match %q.\n", c.Query)
		return nil
	}

	printMovies(deps, movies)
	return nil
}

func printMovies(deps *Dependencies, movies []*cinedex.Movie) {
	for _, m := range movies {
		year := "----"
		if m.ReleaseDate != nil {
			year = m.ReleaseDate.Format("2006")
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", m.ID, year, m.Name)
	}
}

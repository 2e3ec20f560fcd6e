package main

import (
	"fmt"

	"github.com/fwojciec/cinedex"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	movie, err := deps.Movies.FindMovieByID(deps.Ctx, c.ID)
	if err != nil {
		if cinedex.ErrorCode(err) == cinedex.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: movie %q not found. Use 'cinedex movies' or 'cinedex search' to find IDs.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", cinedex.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, cinedex.FormatMovie(movie))
	return nil
}

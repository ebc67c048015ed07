package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/pricecheck"
)

// Run executes the match command.
func (c *MatchCmd) Run(deps *Dependencies) error {
	query := strings.Join(c.Query, " ")
	if strings.TrimSpace(query) == "" {
		fmt.Fprintln(deps.Stderr, "error: query required")
		return pricecheck.Errorf(pricecheck.EINVALID, "query required")
	}

	match, ok := pricecheck.NewMatcher().Match(query, deps.Catalog)
	if !ok {
		err := pricecheck.NoMatchError(query)
		fmt.Fprintf(deps.Stderr, "error: %s\n", pricecheck.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s\t%.2f\n", match.Entry.Canonical, match.Score)
	return nil
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fwojciec/pricecheck"
	"github.com/fwojciec/pricecheck/compare"
)

// Run executes the compare command.
func (c *CompareCmd) Run(deps *Dependencies) error {
	comparer := deps.Live
	switch {
	case c.Offline || comparer == nil:
		comparer = deps.Offline
	case c.Fallback:
		comparer = &compare.Fallback{Primary: deps.Live, Secondary: deps.Offline}
	}

	result, err := comparer.Compare(deps.Ctx, strings.Join(c.Query, " "))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pricecheck.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return printResult(deps.Stdout, result)
}

// printResult writes one line per source: store, price, name and link.
func printResult(w io.Writer, result *pricecheck.CompareResult) error {
	if result.Canonical != "" {
		fmt.Fprintf(w, "Matched %q\n", result.Canonical)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, r := range result.Results {
		if r.Listing == nil {
			fmt.Fprintf(tw, "%s\t-\tnot found\t\n", r.Source.DisplayName())
			continue
		}
		price := "-"
		if r.Listing.HasPrice() {
			price = fmt.Sprint(*r.Listing.Price)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Source.DisplayName(), price, r.Listing.Name, r.Listing.URL)
	}
	return tw.Flush()
}

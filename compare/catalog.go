package compare

import (
	"context"
	"strings"

	"github.com/fwojciec/pricecheck"
)

var _ pricecheck.Comparer = (*CatalogComparer)(nil)

// CatalogComparer answers queries from the curated catalog using the
// listings attached to the best matching entry.
type CatalogComparer struct {
	Catalog *pricecheck.Catalog

	// Matcher scores entries. Nil uses pricecheck.NewMatcher.
	Matcher *pricecheck.Matcher

	// Sources lists the sources reported in results. Empty means
	// pricecheck.Sources.
	Sources []pricecheck.Source
}

// Compare returns the listings of the catalog entry matching query.
func (c *CatalogComparer) Compare(ctx context.Context, query string) (*pricecheck.CompareResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, pricecheck.Errorf(pricecheck.EINVALID, "query required")
	}

	matcher := c.Matcher
	if matcher == nil {
		matcher = pricecheck.NewMatcher()
	}
	match, ok := matcher.Match(query, c.Catalog)
	if !ok {
		return nil, pricecheck.NoMatchError(query)
	}

	sources := c.Sources
	if len(sources) == 0 {
		sources = pricecheck.Sources()
	}

	results := make([]pricecheck.SourceResult, 0, len(sources))
	for _, src := range sources {
		r := pricecheck.SourceResult{Source: src}
		if l, ok := match.Entry.Listing(src); ok {
			r.Listing = l
		} else {
			r.Err = pricecheck.Errorf(pricecheck.EUNAVAILABLE, "%s: no catalog listing for %q", src, match.Entry.Canonical)
		}
		results = append(results, r)
	}

	result, err := pricecheck.NewCompareResult(query, results)
	if err != nil {
		return nil, err
	}
	result.Canonical = match.Entry.Canonical
	return result, nil
}

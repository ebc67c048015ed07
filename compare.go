package pricecheck

import (
	"context"
	"encoding/json"
)

// Comparer looks up a product query across sources.
type Comparer interface {
	// Compare returns the best listing of every configured source for query.
	// Returns EINVALID for an empty query and ENOTFOUND when no source
	// produced a listing.
	Compare(ctx context.Context, query string) (*CompareResult, error)
}

// SourceResult is the outcome of one source for one query: either a
// listing or an absence with its reason.
type SourceResult struct {
	Source  Source
	Listing *Listing

	// Err explains why Listing is nil. It is kept for logging and is never
	// serialized.
	Err error
}

// Found reports whether the source produced a listing.
func (r SourceResult) Found() bool {
	return r.Listing != nil
}

// CompareResult holds one result per configured source. At least one of
// them carries a listing.
type CompareResult struct {
	Query string

	// Canonical is the canonical name of the catalog entry the result was
	// built from. It is empty for live results.
	Canonical string

	Results []SourceResult
}

// NewCompareResult assembles a result for query. It returns ENOTFOUND when
// no source produced a listing.
func NewCompareResult(query string, results []SourceResult) (*CompareResult, error) {
	for _, r := range results {
		if r.Found() {
			return &CompareResult{Query: query, Results: results}, nil
		}
	}
	return nil, NoMatchError(query)
}

// NoMatchError returns the ENOTFOUND error reported when no listing exists
// for query.
func NoMatchError(query string) *Error {
	return Errorf(ENOTFOUND, "no listing found for %q; try a more specific keyword", query)
}

// Listing returns the listing of src, or nil when src is absent or unknown.
func (r *CompareResult) Listing(src Source) *Listing {
	for _, res := range r.Results {
		if res.Source == src {
			return res.Listing
		}
	}
	return nil
}

// Found returns the number of sources that produced a listing.
func (r *CompareResult) Found() int {
	n := 0
	for _, res := range r.Results {
		if res.Found() {
			n++
		}
	}
	return n
}

// MarshalJSON encodes the result as an object with the query and one key
// per source holding the listing or null.
func (r *CompareResult) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Results)+2)
	out["query"] = r.Query
	if r.Canonical != "" {
		out["canonical"] = r.Canonical
	}
	for _, res := range r.Results {
		if res.Listing == nil {
			out[string(res.Source)] = nil
			continue
		}
		out[string(res.Source)] = res.Listing
	}
	return json.Marshal(out)
}

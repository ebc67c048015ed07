// Package compare looks up product queries across stores.
// It fans a query out to every configured source, falls back to the curated
// catalog, and throttles requests per host.
package compare

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/pricecheck"
	"golang.org/x/sync/errgroup"
)

// DefaultSourceTimeout bounds retrieval and extraction for a single source.
const DefaultSourceTimeout = 10 * time.Second

var _ pricecheck.Comparer = (*Comparer)(nil)

// Comparer retrieves and extracts the best listing of every source
// concurrently. A failing source becomes an absence in the result and never
// affects the others. Requests are not retried.
type Comparer struct {
	Fetcher    pricecheck.Fetcher
	Extractors pricecheck.ExtractorRegistry
	Sources    []pricecheck.SourceConfig

	// Limiter throttles requests per host. Nil disables throttling.
	Limiter pricecheck.HostLimiter

	// Timeout bounds each source. Zero means DefaultSourceTimeout.
	Timeout time.Duration
}

// Compare looks up query on every configured source and waits for all of
// them to settle.
func (c *Comparer) Compare(ctx context.Context, query string) (*pricecheck.CompareResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, pricecheck.Errorf(pricecheck.EINVALID, "query required")
	}
	if len(c.Sources) == 0 {
		return nil, pricecheck.Errorf(pricecheck.EINVALID, "no sources configured")
	}

	results := make([]pricecheck.SourceResult, len(c.Sources))

	// Each goroutine writes only its own slot and never returns an error,
	// so one source cannot cancel the others.
	var g errgroup.Group
	for i, src := range c.Sources {
		g.Go(func() error {
			results[i] = c.retrieve(ctx, src, query)
			return nil
		})
	}
	_ = g.Wait()

	return pricecheck.NewCompareResult(query, results)
}

// retrieve fetches and extracts one source. Every failure, including a panic
// in the fetcher or extractor, is reported as an EUNAVAILABLE absence.
func (c *Comparer) retrieve(ctx context.Context, src pricecheck.SourceConfig, query string) (result pricecheck.SourceResult) {
	result.Source = src.Source
	defer func() {
		if r := recover(); r != nil {
			result = pricecheck.SourceResult{
				Source: src.Source,
				Err:    pricecheck.Errorf(pricecheck.EUNAVAILABLE, "%s: panic: %v", src.Source, r),
			}
		}
	}()

	extractor := c.Extractors.Get(src.Source)
	if extractor == nil {
		result.Err = pricecheck.Errorf(pricecheck.EUNAVAILABLE, "%s: no extractor registered", src.Source)
		return result
	}

	searchURL, err := src.SearchURL(query)
	if err != nil {
		result.Err = pricecheck.Errorf(pricecheck.EUNAVAILABLE, "%s: %s", src.Source, pricecheck.ErrorMessage(err))
		return result
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultSourceTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx, hostOf(searchURL)); err != nil {
			result.Err = pricecheck.Errorf(pricecheck.EUNAVAILABLE, "%s: rate limit wait: %v", src.Source, err)
			return result
		}
	}

	html, err := c.Fetcher.Fetch(ctx, searchURL)
	if err != nil {
		result.Err = pricecheck.Errorf(pricecheck.EUNAVAILABLE, "%s: fetch: %v", src.Source, err)
		return result
	}

	listing, err := extractor.Extract(html, searchURL)
	if err != nil {
		result.Err = pricecheck.Errorf(pricecheck.EUNAVAILABLE, "%s: extract: %v", src.Source, err)
		return result
	}
	if listing == nil {
		result.Err = pricecheck.Errorf(pricecheck.EUNAVAILABLE, "%s: no listing on results page", src.Source)
		return result
	}

	result.Listing = listing
	return result
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pricecheck"
)

var _ pricecheck.Extractor = (*Extractor)(nil)

// Extractor applies a store's heuristic chain to a search results page.
type Extractor struct {
	source pricecheck.Source
	chain  Chain
}

// NewExtractor creates an Extractor for src from the given chain.
func NewExtractor(src pricecheck.Source, chain Chain) *Extractor {
	return &Extractor{source: src, chain: chain}
}

// Source returns the store this extractor understands.
func (e *Extractor) Source() pricecheck.Source {
	return e.source
}

// Extract parses html and returns the first listing produced by the chain,
// or nil when no heuristic finds one.
func (e *Extractor) Extract(html string, baseURL string) (*pricecheck.Listing, error) {
	base, err := url.Parse(baseURL)
	if err != nil || !base.IsAbs() {
		return nil, pricecheck.Errorf(pricecheck.EINVALID, "invalid base URL: %q", baseURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, pricecheck.Errorf(pricecheck.EINVALID, "failed to parse HTML: %v", err)
	}

	listing, ok := e.chain.Apply(doc, base)
	if !ok {
		return nil, nil
	}
	return listing, nil
}

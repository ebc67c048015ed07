package goquery

import (
	"regexp"

	"github.com/fwojciec/pricecheck"
)

var rupeePattern = regexp.MustCompile(`₹\s?([\d,]+)`)

// amazonFields reads a listing from an Amazon search result card.
// Prices are rendered twice: a screen-reader copy in .a-offscreen and the
// visible whole part in .a-price-whole.
var amazonFields = Fields{
	Names: []NameShape{
		{Selector: "h2 span"},
		{Selector: "h2"},
		{Selector: "h2", Attr: "aria-label"},
	},
	MinNameLen: 1,
	Links: []string{
		"h2 a[href]",
		"a[href]:has(h2)",
		"a.a-link-normal[href]",
	},
	LinkShape: PathContains("/dp/", "/gp/"),
	Prices: []PriceShape{
		{Selector: ".a-price .a-offscreen"},
		{Selector: ".a-price-whole"},
		{Pattern: rupeePattern},
	},
	RequirePrice: true,
}

// NewAmazonExtractor creates an Extractor for amazon.in search results.
//
// Result cards carry data-component-type="s-search-result". Older and
// experimental layouts only mark cards with a non-empty data-asin, which is
// tried next.
func NewAmazonExtractor() *Extractor {
	return NewExtractor(pricecheck.SourceAmazon, Chain{
		ContainerHeuristic(pricecheck.SourceAmazon, `div[data-component-type="s-search-result"]`, amazonFields),
		ContainerHeuristic(pricecheck.SourceAmazon, `div[data-asin]:not([data-asin=""])`, amazonFields),
	})
}

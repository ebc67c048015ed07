package goquery

import (
	"github.com/fwojciec/pricecheck"
)

// flipkartFields reads a listing from a Flipkart product link. Class names
// on Flipkart are generated and change often, so the link shape and the
// rupee sign carry most of the weight. Anchor texts shorter than eight
// characters are ratings or badges, not titles.
var flipkartFields = Fields{
	Names: []NameShape{
		{Attr: "title"},
		{Selector: "[title]", Attr: "title"},
		{Selector: "img[alt]", Attr: "alt"},
		{},
	},
	MinNameLen: 8,
	Links:      []string{"a[href]"},
	LinkShape:  PathContains("/p/", "/itm"),
	Prices: []PriceShape{
		{Selector: "._30jeq3"},
		{Pattern: rupeePattern},
	},
	RequirePrice: true,
}

// NewFlipkartExtractor creates an Extractor for flipkart.com search results.
//
// Product cards carry a data-id attribute. When none yields a listing, every
// product link on the page is tried with the price searched in the text that
// follows it.
func NewFlipkartExtractor() *Extractor {
	return NewExtractor(pricecheck.SourceFlipkart, Chain{
		ContainerHeuristic(pricecheck.SourceFlipkart, "div[data-id]", flipkartFields),
		AnchorHeuristic(pricecheck.SourceFlipkart, flipkartFields, DefaultAncestorDepth),
	})
}

// Package goquery extracts product listings from store search results pages
// using CSS selectors.
//
// Each store is described by a Chain of heuristics tried most specific first.
// A heuristic walks candidate elements in document order and returns the
// first one that yields a name, an item link and, where the store requires
// it, a price.
package goquery

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pricecheck"
)

// DefaultPriceWindow is the number of characters of text following a title
// or link that is searched for a price.
const DefaultPriceWindow = 1800

// DefaultAncestorDepth bounds how far up the tree the price search walks
// from an anchor that is not inside a known result container.
const DefaultAncestorDepth = 4

// Heuristic tries to build a listing from a parsed results page.
// It reports false when it finds no structurally valid candidate.
type Heuristic func(doc *goquery.Document, base *url.URL) (*pricecheck.Listing, bool)

// Chain is an ordered list of heuristics.
type Chain []Heuristic

// Apply runs the heuristics in order and returns the first listing found.
func (c Chain) Apply(doc *goquery.Document, base *url.URL) (*pricecheck.Listing, bool) {
	for _, h := range c {
		if l, ok := h(doc, base); ok {
			return l, true
		}
	}
	return nil, false
}

// NameShape locates a product name. An empty Selector refers to the item
// link itself. An empty Attr reads the element text.
type NameShape struct {
	Selector string
	Attr     string
}

// PriceShape locates a price. With a Selector, the text of each matching
// element is tried in order; without one, Pattern is searched in the text of
// the surrounding region. When Pattern has a capture group, the first group
// holds the price.
type PriceShape struct {
	Selector string
	Pattern  *regexp.Regexp
}

// Fields describes how to read the parts of a listing.
type Fields struct {
	Names      []NameShape
	MinNameLen int

	// Links are selectors for item anchors, tried in order.
	Links []string

	// LinkShape reports whether a resolved URL path points at an item page.
	LinkShape func(path string) bool

	Prices       []PriceShape
	RequirePrice bool
}

// ContainerHeuristic returns a heuristic that reads fields from each element
// matching container, in document order.
func ContainerHeuristic(src pricecheck.Source, container string, f Fields) Heuristic {
	return func(doc *goquery.Document, base *url.URL) (*pricecheck.Listing, bool) {
		var found *pricecheck.Listing
		doc.Find(container).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			link, href, ok := firstLink(sel, base, f)
			if !ok {
				return true
			}
			name, ok := firstName(sel, link, f)
			if !ok {
				return true
			}
			price, hasPrice := findPrice(sel, f.Prices, DefaultPriceWindow)
			if l, ok := newListing(src, name, href, price, hasPrice, f.RequirePrice); ok {
				found = l
				return false
			}
			return true
		})
		return found, found != nil
	}
}

// AnchorHeuristic returns a heuristic that scans every anchor of the page in
// document order. The name is read relative to the anchor and the price is
// searched in the text that follows it, walking up at most depth ancestors.
func AnchorHeuristic(src pricecheck.Source, f Fields, depth int) Heuristic {
	return func(doc *goquery.Document, base *url.URL) (*pricecheck.Listing, bool) {
		var found *pricecheck.Listing
		doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
			href, ok := itemURL(a, base, f.LinkShape)
			if !ok {
				return true
			}
			name, ok := firstName(a, a, f)
			if !ok {
				return true
			}
			price, hasPrice := priceNear(a, f.Prices, depth, DefaultPriceWindow)
			if l, ok := newListing(src, name, href, price, hasPrice, f.RequirePrice); ok {
				found = l
				return false
			}
			return true
		})
		return found, found != nil
	}
}

// PathContains returns a LinkShape accepting paths containing any of parts.
func PathContains(parts ...string) func(path string) bool {
	return func(path string) bool {
		for _, p := range parts {
			if strings.Contains(path, p) {
				return true
			}
		}
		return false
	}
}

func newListing(src pricecheck.Source, name, href string, price int, hasPrice, requirePrice bool) (*pricecheck.Listing, bool) {
	if requirePrice && !hasPrice {
		return nil, false
	}
	l := &pricecheck.Listing{Source: src, Name: name, URL: href}
	if hasPrice {
		l.Price = pricecheck.PriceOf(price)
	}
	if err := l.Validate(); err != nil {
		return nil, false
	}
	return l, true
}

// firstLink returns the first anchor within sel that points at an item page.
func firstLink(sel *goquery.Selection, base *url.URL, f Fields) (*goquery.Selection, string, bool) {
	for _, selector := range f.Links {
		var link *goquery.Selection
		var href string
		sel.Find(selector).EachWithBreak(func(_ int, a *goquery.Selection) bool {
			if u, ok := itemURL(a, base, f.LinkShape); ok {
				link, href = a, u
				return false
			}
			return true
		})
		if link != nil {
			return link, href, true
		}
	}
	return nil, "", false
}

// itemURL resolves the href of a against base and checks its shape.
func itemURL(a *goquery.Selection, base *url.URL, shape func(string) bool) (string, bool) {
	href, exists := a.Attr("href")
	if !exists || strings.TrimSpace(href) == "" || isNonHTTPLink(href) {
		return "", false
	}
	u, ok := resolveURL(base, href)
	if !ok {
		return "", false
	}
	if shape != nil && !shape(u.Path) {
		return "", false
	}
	return u.String(), true
}

// firstName returns the first name of at least f.MinNameLen characters.
// Selection text and attributes come back decoded, so they are only
// whitespace-collapsed.
func firstName(scope, link *goquery.Selection, f Fields) (string, bool) {
	for _, shape := range f.Names {
		var candidates *goquery.Selection
		if shape.Selector == "" {
			candidates = link
		} else {
			candidates = scope.Find(shape.Selector)
		}
		var name string
		candidates.EachWithBreak(func(_ int, s *goquery.Selection) bool {
			raw := s.Text()
			if shape.Attr != "" {
				raw, _ = s.Attr(shape.Attr)
			}
			text := pricecheck.CollapseSpace(raw)
			if text != "" && utf8.RuneCountInString(text) >= f.MinNameLen {
				name = text
				return false
			}
			return true
		})
		if name != "" {
			return name, true
		}
	}
	return "", false
}

// priceNear searches for a price in the content that follows sel: sel itself
// and its following siblings, widened by the following siblings of each
// ancestor, up to depth ancestors. Content before sel is never searched.
func priceNear(sel *goquery.Selection, shapes []PriceShape, depth, window int) (int, bool) {
	region := sel.AddSelection(sel.NextAll())
	cur := sel
	for i := 0; ; i++ {
		if price, ok := findPrice(region, shapes, window); ok {
			return price, true
		}
		cur = cur.Parent()
		if i >= depth || cur.Length() == 0 {
			return 0, false
		}
		region = region.AddSelection(cur.NextAll())
	}
}

// findPrice tries each shape in order against region.
func findPrice(region *goquery.Selection, shapes []PriceShape, window int) (int, bool) {
	for _, shape := range shapes {
		if shape.Selector == "" {
			if price, ok := matchPrice(truncate(region.Text(), window), shape.Pattern); ok {
				return price, true
			}
			continue
		}
		var price int
		var found bool
		region.Filter(shape.Selector).AddSelection(region.Find(shape.Selector)).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			price, found = matchPrice(s.Text(), shape.Pattern)
			return !found
		})
		if found {
			return price, true
		}
	}
	return 0, false
}

func matchPrice(text string, pattern *regexp.Regexp) (int, bool) {
	if pattern == nil {
		return pricecheck.ParsePrice(text)
	}
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	raw := m[0]
	if len(m) > 1 {
		raw = m[1]
	}
	return pricecheck.ParsePrice(raw)
}

func truncate(text string, n int) string {
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	return string([]rune(text)[:n])
}

// resolveURL resolves href against base and strips the fragment.
// Only http and https results are accepted.
func resolveURL(base *url.URL, href string) (*url.URL, bool) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return nil, false
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return nil, false
	}
	return resolved, true
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}

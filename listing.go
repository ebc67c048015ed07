package pricecheck

import (
	"net/url"
	"strings"
)

// Source identifies a listings provider.
type Source string

const (
	SourceAmazon   Source = "amazon"
	SourceFlipkart Source = "flipkart"
)

// Sources returns all known sources in their canonical order.
func Sources() []Source {
	return []Source{SourceAmazon, SourceFlipkart}
}

// ParseSource converts an identifier such as "amazon" into a Source.
// Matching is case-insensitive. Unknown identifiers return EINVALID.
func ParseSource(s string) (Source, error) {
	id := Source(strings.ToLower(strings.TrimSpace(s)))
	for _, src := range Sources() {
		if src == id {
			return src, nil
		}
	}
	return "", Errorf(EINVALID, "unknown source %q", s)
}

// DisplayName returns the human-readable store name.
func (s Source) DisplayName() string {
	switch s {
	case SourceAmazon:
		return "Amazon"
	case SourceFlipkart:
		return "Flipkart"
	default:
		return string(s)
	}
}

// Listing is the normalized result obtained from one source for one query.
type Listing struct {
	Source Source `json:"source"`

	// Name is the cleaned product title. It never contains markup or
	// HTML entities.
	Name string `json:"name"`

	// Price is the price in whole currency units. Nil means unknown.
	Price *int `json:"price"`

	// URL is an absolute link to the listing or the search results.
	URL string `json:"url"`
}

// Validate returns an error if the listing lacks a name or an absolute URL.
func (l *Listing) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return Errorf(EINVALID, "listing name required")
	}
	if l.URL == "" {
		return Errorf(EINVALID, "listing URL required")
	}
	u, err := url.Parse(l.URL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return Errorf(EINVALID, "listing URL must be absolute: %q", l.URL)
	}
	if l.Price != nil && *l.Price < 0 {
		return Errorf(EINVALID, "listing price must not be negative")
	}
	return nil
}

// HasPrice reports whether the listing carries a known price.
func (l *Listing) HasPrice() bool {
	return l.Price != nil
}

// SourceConfig describes where the search results page of a source lives.
type SourceConfig struct {
	Source Source

	// Origin is the scheme and host of the store, e.g. https://www.amazon.in.
	Origin string

	// SearchPath is the path of the search results page, e.g. /s.
	SearchPath string

	// QueryParam is the query string parameter carrying the search terms.
	QueryParam string
}

// Validate returns an error if the configuration cannot produce search URLs.
func (c SourceConfig) Validate() error {
	if _, err := ParseSource(string(c.Source)); err != nil {
		return err
	}
	u, err := url.Parse(c.Origin)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Errorf(EINVALID, "%s: origin must be an absolute URL: %q", c.Source, c.Origin)
	}
	if c.QueryParam == "" {
		return Errorf(EINVALID, "%s: query parameter required", c.Source)
	}
	return nil
}

// SearchURL returns the absolute URL of the search results page for query.
func (c SourceConfig) SearchURL(query string) (string, error) {
	u, err := url.Parse(c.Origin)
	if err != nil {
		return "", Errorf(EINVALID, "%s: invalid origin %q", c.Source, c.Origin)
	}
	u.Path = c.SearchPath
	u.RawQuery = url.Values{c.QueryParam: {query}}.Encode()
	return u.String(), nil
}

// DefaultSources returns the retrieval endpoints of the Indian storefronts.
func DefaultSources() []SourceConfig {
	return []SourceConfig{
		{Source: SourceAmazon, Origin: "https://www.amazon.in", SearchPath: "/s", QueryParam: "k"},
		{Source: SourceFlipkart, Origin: "https://www.flipkart.com", SearchPath: "/search", QueryParam: "q"},
	}
}

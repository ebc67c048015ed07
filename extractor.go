package pricecheck

// Extractor pulls the single best listing out of a source's search results page.
type Extractor interface {
	// Extract returns the first structurally valid listing found in html.
	// Relative links are resolved against baseURL, the address the page was
	// fetched from. A nil listing with a nil error means the page holds no
	// usable listing; an error means the page could not be parsed at all.
	Extract(html string, baseURL string) (*Listing, error)

	// Source returns the source whose markup the extractor understands.
	Source() Source
}

// ExtractorRegistry maps sources to their extractors.
type ExtractorRegistry interface {
	// Get returns the extractor for src, or nil if none is registered.
	Get(src Source) Extractor

	// Register adds an extractor, replacing any previous one for its source.
	Register(e Extractor)

	// List returns the sources with a registered extractor.
	List() []Source
}

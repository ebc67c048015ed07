package goquery

import (
	"slices"

	"github.com/fwojciec/pricecheck"
)

var _ pricecheck.ExtractorRegistry = (*Registry)(nil)

// Registry maps stores to their extractors.
type Registry struct {
	extractors map[pricecheck.Source]pricecheck.Extractor
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[pricecheck.Source]pricecheck.Extractor),
	}
}

// NewDefaultRegistry creates a Registry with the Amazon and Flipkart extractors.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewAmazonExtractor())
	r.Register(NewFlipkartExtractor())
	return r
}

// Get returns the extractor for src.
// Returns nil if no extractor is registered for the source.
func (r *Registry) Get(src pricecheck.Source) pricecheck.Extractor {
	return r.extractors[src]
}

// Register adds an extractor under its own source.
// If an extractor is already registered for the source, it is replaced.
func (r *Registry) Register(e pricecheck.Extractor) {
	r.extractors[e.Source()] = e
}

// List returns all registered sources, sorted.
func (r *Registry) List() []pricecheck.Source {
	sources := make([]pricecheck.Source, 0, len(r.extractors))
	for src := range r.extractors {
		sources = append(sources, src)
	}
	slices.Sort(sources)
	return sources
}

package mock

import "github.com/fwojciec/pricecheck"

var _ pricecheck.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of pricecheck.Extractor.
type Extractor struct {
	ExtractFn func(html string, baseURL string) (*pricecheck.Listing, error)
	SourceFn  func() pricecheck.Source
}

func (e *Extractor) Extract(html string, baseURL string) (*pricecheck.Listing, error) {
	return e.ExtractFn(html, baseURL)
}

func (e *Extractor) Source() pricecheck.Source {
	return e.SourceFn()
}

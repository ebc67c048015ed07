package pricecheck

import "context"

// Fetcher retrieves the raw HTML of a search results page.
type Fetcher interface {
	// Fetch retrieves the document at url. Non-success responses are
	// errors. The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// HostLimiter throttles requests per host.
type HostLimiter interface {
	// Wait blocks until a request to host is allowed or ctx is done.
	Wait(ctx context.Context, host string) error
}

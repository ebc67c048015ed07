package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/pricecheck"
)

var _ pricecheck.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor and logs whether a listing was found.
type LoggingExtractor struct {
	next   pricecheck.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next pricecheck.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor.
func (e *LoggingExtractor) Extract(html string, baseURL string) (listing *pricecheck.Listing, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"source", e.next.Source(),
			"url", baseURL,
			"found", listing != nil,
			"duration", time.Since(begin),
		}
		if listing != nil {
			attrs = append(attrs, "name", listing.Name)
			if listing.Price != nil {
				attrs = append(attrs, "price", *listing.Price)
			}
		}
		if err != nil {
			attrs = append(attrs, "err", err)
		}
		e.logger.Debug("extract", attrs...)
	}(time.Now())
	return e.next.Extract(html, baseURL)
}

// Source delegates to the wrapped extractor.
func (e *LoggingExtractor) Source() pricecheck.Source {
	return e.next.Source()
}

// WrapRegistry wraps every extractor of registry with a LoggingExtractor.
func WrapRegistry(registry pricecheck.ExtractorRegistry, logger *slog.Logger) {
	for _, src := range registry.List() {
		registry.Register(NewLoggingExtractor(registry.Get(src), logger))
	}
}

package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pricecheck"
)

var _ pricecheck.Comparer = (*LoggingComparer)(nil)

// LoggingComparer wraps a Comparer and logs each query with the sources
// that failed to answer it.
type LoggingComparer struct {
	next   pricecheck.Comparer
	logger *slog.Logger
	name   string
}

// NewLoggingComparer creates a new LoggingComparer. The name distinguishes
// comparers in the log, e.g. "live" or "catalog".
func NewLoggingComparer(next pricecheck.Comparer, name string, logger *slog.Logger) *LoggingComparer {
	return &LoggingComparer{next: next, logger: logger, name: name}
}

// Compare delegates to the wrapped comparer.
func (c *LoggingComparer) Compare(ctx context.Context, query string) (result *pricecheck.CompareResult, err error) {
	defer func(begin time.Time) {
		found := 0
		if result != nil {
			found = result.Found()
			for _, r := range result.Results {
				if r.Err != nil {
					c.logger.Warn("source unavailable",
						"comparer", c.name,
						"query", query,
						"source", r.Source,
						"err", r.Err,
					)
				}
			}
		}
		c.logger.Info("compare",
			"comparer", c.name,
			"query", query,
			"found", found,
			"code", pricecheck.ErrorCode(err),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return c.next.Compare(ctx, query)
}

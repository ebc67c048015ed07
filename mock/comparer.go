package mock

import (
	"context"

	"github.com/fwojciec/pricecheck"
)

var _ pricecheck.Comparer = (*Comparer)(nil)

// Comparer is a mock implementation of pricecheck.Comparer.
type Comparer struct {
	CompareFn func(ctx context.Context, query string) (*pricecheck.CompareResult, error)
}

func (c *Comparer) Compare(ctx context.Context, query string) (*pricecheck.CompareResult, error) {
	return c.CompareFn(ctx, query)
}

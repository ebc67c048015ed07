package compare

import (
	"context"

	"github.com/fwojciec/pricecheck"
)

var _ pricecheck.Comparer = (*Fallback)(nil)

// Fallback answers from Primary and consults Secondary when Primary fails
// for any reason other than an invalid query.
type Fallback struct {
	Primary   pricecheck.Comparer
	Secondary pricecheck.Comparer
}

// Compare returns the first successful result.
func (f *Fallback) Compare(ctx context.Context, query string) (*pricecheck.CompareResult, error) {
	result, err := f.Primary.Compare(ctx, query)
	if err == nil {
		return result, nil
	}
	if pricecheck.ErrorCode(err) == pricecheck.EINVALID {
		return nil, err
	}
	return f.Secondary.Compare(ctx, query)
}

package compare_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/pricecheck"
	"github.com/fwojciec/pricecheck/compare"
	"github.com/fwojciec/pricecheck/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T) *pricecheck.Catalog {
	t.Helper()
	catalog, err := pricecheck.NewCatalog([]*pricecheck.CatalogEntry{
		{
			Canonical: "boat airdopes 141",
			Synonyms:  []string{"airdopes", "boat earbuds", "boat airdopes"},
			Listings: map[pricecheck.Source]pricecheck.Listing{
				pricecheck.SourceAmazon: {
					Source: pricecheck.SourceAmazon,
					Name:   "boAt Airdopes 141 TWS Earbuds",
					Price:  pricecheck.PriceOf(1199),
					URL:    "https://www.amazon.in/s?k=boat+airdopes+141",
				},
				pricecheck.SourceFlipkart: {
					Source: pricecheck.SourceFlipkart,
					Name:   "boAt Airdopes 141 Bluetooth Headset",
					Price:  pricecheck.PriceOf(1099),
					URL:    "https://www.flipkart.com/search?q=boat+airdopes+141",
				},
			},
		},
		{
			Canonical: "philips air fryer hd9200",
			Synonyms:  []string{"air fryer", "philips fryer", "hd9200"},
			Listings: map[pricecheck.Source]pricecheck.Listing{
				pricecheck.SourceFlipkart: {
					Source: pricecheck.SourceFlipkart,
					Name:   "PHILIPS HD9200/90 Air Fryer",
					Price:  pricecheck.PriceOf(5699),
					URL:    "https://www.flipkart.com/search?q=philips+air+fryer+hd9200",
				},
			},
		},
	})
	require.NoError(t, err)
	return catalog
}

func TestCatalogComparer_Compare(t *testing.T) {
	t.Parallel()

	t.Run("returns listings of matching entry", func(t *testing.T) {
		t.Parallel()

		c := &compare.CatalogComparer{Catalog: newCatalog(t)}

		result, err := c.Compare(context.Background(), "boat earbuds")

		require.NoError(t, err)
		assert.Equal(t, "boat earbuds", result.Query)
		assert.Equal(t, "boat airdopes 141", result.Canonical)
		assert.Equal(t, 1199, *result.Listing(pricecheck.SourceAmazon).Price)
		assert.Equal(t, 1099, *result.Listing(pricecheck.SourceFlipkart).Price)
	})

	t.Run("marks sources without catalog listing as absent", func(t *testing.T) {
		t.Parallel()

		c := &compare.CatalogComparer{Catalog: newCatalog(t)}

		result, err := c.Compare(context.Background(), "air fryer")

		require.NoError(t, err)
		assert.Nil(t, result.Listing(pricecheck.SourceAmazon))
		assert.NotNil(t, result.Listing(pricecheck.SourceFlipkart))
		assert.Equal(t, 1, result.Found())
	})

	t.Run("restricts results to configured sources", func(t *testing.T) {
		t.Parallel()

		c := &compare.CatalogComparer{
			Catalog: newCatalog(t),
			Sources: []pricecheck.Source{pricecheck.SourceFlipkart},
		}

		result, err := c.Compare(context.Background(), "airdopes")

		require.NoError(t, err)
		require.Len(t, result.Results, 1)
		assert.Equal(t, pricecheck.SourceFlipkart, result.Results[0].Source)
	})

	t.Run("returns not found below threshold", func(t *testing.T) {
		t.Parallel()

		c := &compare.CatalogComparer{Catalog: newCatalog(t)}

		_, err := c.Compare(context.Background(), "buy me a phone")

		require.Error(t, err)
		assert.Equal(t, pricecheck.ENOTFOUND, pricecheck.ErrorCode(err))
	})

	t.Run("uses custom matcher", func(t *testing.T) {
		t.Parallel()

		c := &compare.CatalogComparer{
			Catalog: newCatalog(t),
			Matcher: &pricecheck.Matcher{CoverageWeight: 0.7, PrecisionWeight: 0.3, Threshold: 0.99},
		}

		_, err := c.Compare(context.Background(), "airdopes")

		assert.Equal(t, pricecheck.ENOTFOUND, pricecheck.ErrorCode(err))
	})

	t.Run("rejects empty query", func(t *testing.T) {
		t.Parallel()

		c := &compare.CatalogComparer{Catalog: newCatalog(t)}

		_, err := c.Compare(context.Background(), "")

		assert.Equal(t, pricecheck.EINVALID, pricecheck.ErrorCode(err))
	})
}

func TestFallback_Compare(t *testing.T) {
	t.Parallel()

	live := func(result *pricecheck.CompareResult, err error) *mock.Comparer {
		return &mock.Comparer{
			CompareFn: func(ctx context.Context, query string) (*pricecheck.CompareResult, error) {
				return result, err
			},
		}
	}

	t.Run("returns primary result", func(t *testing.T) {
		t.Parallel()

		want := &pricecheck.CompareResult{Query: "airdopes"}
		secondaryCalled := false
		f := &compare.Fallback{
			Primary: live(want, nil),
			Secondary: &mock.Comparer{
				CompareFn: func(ctx context.Context, query string) (*pricecheck.CompareResult, error) {
					secondaryCalled = true
					return nil, nil
				},
			},
		}

		got, err := f.Compare(context.Background(), "airdopes")

		require.NoError(t, err)
		assert.Same(t, want, got)
		assert.False(t, secondaryCalled)
	})

	t.Run("falls back to catalog when no source answers", func(t *testing.T) {
		t.Parallel()

		f := &compare.Fallback{
			Primary:   live(nil, pricecheck.NoMatchError("airdopes")),
			Secondary: &compare.CatalogComparer{Catalog: newCatalog(t)},
		}

		result, err := f.Compare(context.Background(), "airdopes")

		require.NoError(t, err)
		assert.Equal(t, "boat airdopes 141", result.Canonical)
	})

	t.Run("falls back on unexpected errors", func(t *testing.T) {
		t.Parallel()

		f := &compare.Fallback{
			Primary:   live(nil, errors.New("dns failure")),
			Secondary: &compare.CatalogComparer{Catalog: newCatalog(t)},
		}

		result, err := f.Compare(context.Background(), "air fryer")

		require.NoError(t, err)
		assert.Equal(t, "philips air fryer hd9200", result.Canonical)
	})

	t.Run("returns secondary error when both fail", func(t *testing.T) {
		t.Parallel()

		f := &compare.Fallback{
			Primary:   live(nil, errors.New("dns failure")),
			Secondary: &compare.CatalogComparer{Catalog: newCatalog(t)},
		}

		_, err := f.Compare(context.Background(), "buy me a phone")

		assert.Equal(t, pricecheck.ENOTFOUND, pricecheck.ErrorCode(err))
	})

	t.Run("does not fall back on invalid query", func(t *testing.T) {
		t.Parallel()

		f := &compare.Fallback{
			Primary: live(nil, pricecheck.Errorf(pricecheck.EINVALID, "query required")),
			Secondary: &mock.Comparer{
				CompareFn: func(ctx context.Context, query string) (*pricecheck.CompareResult, error) {
					t.Fatal("secondary must not be called")
					return nil, nil
				},
			},
		}

		_, err := f.Compare(context.Background(), "")

		assert.Equal(t, pricecheck.EINVALID, pricecheck.ErrorCode(err))
	})
}

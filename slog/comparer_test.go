package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/pricecheck"
	"github.com/fwojciec/pricecheck/mock"
	pcslog "github.com/fwojciec/pricecheck/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingComparer_Compare(t *testing.T) {
	t.Parallel()

	t.Run("logs query with found count and unavailable sources", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Comparer{
			CompareFn: func(ctx context.Context, query string) (*pricecheck.CompareResult, error) {
				return &pricecheck.CompareResult{
					Query: query,
					Results: []pricecheck.SourceResult{
						{Source: pricecheck.SourceAmazon, Err: pricecheck.Errorf(pricecheck.EUNAVAILABLE, "amazon: fetch: HTTP 503")},
						{Source: pricecheck.SourceFlipkart, Listing: &pricecheck.Listing{Name: "boAt Airdopes 141"}},
					},
				}, nil
			},
		}

		comparer := pcslog.NewLoggingComparer(inner, "live", logger)
		result, err := comparer.Compare(context.Background(), "airdopes")

		require.NoError(t, err)
		assert.Equal(t, 1, result.Found())
		output := buf.String()
		assert.Contains(t, output, "msg=compare")
		assert.Contains(t, output, "comparer=live")
		assert.Contains(t, output, "query=airdopes")
		assert.Contains(t, output, "found=1")
		assert.Contains(t, output, "msg=\"source unavailable\"")
		assert.Contains(t, output, "source=amazon")
		assert.Contains(t, output, "HTTP 503")
	})

	t.Run("logs error code on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Comparer{
			CompareFn: func(ctx context.Context, query string) (*pricecheck.CompareResult, error) {
				return nil, errors.New("boom")
			},
		}

		comparer := pcslog.NewLoggingComparer(inner, "catalog", logger)
		_, err := comparer.Compare(context.Background(), "airdopes")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "found=0")
		assert.Contains(t, output, "code=internal")
	})
}

package pricecheck_test

import (
	"testing"

	"github.com/fwojciec/pricecheck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSource(t *testing.T) {
	t.Parallel()

	t.Run("accepts known sources case-insensitively", func(t *testing.T) {
		t.Parallel()

		src, err := pricecheck.ParseSource(" Flipkart ")

		require.NoError(t, err)
		assert.Equal(t, pricecheck.SourceFlipkart, src)
	})

	t.Run("rejects unknown source", func(t *testing.T) {
		t.Parallel()

		_, err := pricecheck.ParseSource("ebay")

		assert.Equal(t, pricecheck.EINVALID, pricecheck.ErrorCode(err))
	})
}

func TestListing_Validate(t *testing.T) {
	t.Parallel()

	valid := func() pricecheck.Listing {
		return pricecheck.Listing{
			Source: pricecheck.SourceAmazon,
			Name:   "boAt Airdopes 141 TWS Earbuds",
			Price:  pricecheck.PriceOf(1199),
			URL:    "https://www.amazon.in/dp/B09N3ZNHTY",
		}
	}

	t.Run("accepts listing without price", func(t *testing.T) {
		t.Parallel()

		l := valid()
		l.Price = nil

		assert.NoError(t, l.Validate())
		assert.False(t, l.HasPrice())
	})

	tests := []struct {
		name   string
		mutate func(l *pricecheck.Listing)
	}{
		{"blank name", func(l *pricecheck.Listing) { l.Name = " " }},
		{"missing url", func(l *pricecheck.Listing) { l.URL = "" }},
		{"relative url", func(l *pricecheck.Listing) { l.URL = "/dp/B09N3ZNHTY" }},
		{"negative price", func(l *pricecheck.Listing) { l.Price = pricecheck.PriceOf(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l := valid()
			tt.mutate(&l)

			err := l.Validate()

			require.Error(t, err)
			assert.Equal(t, pricecheck.EINVALID, pricecheck.ErrorCode(err))
		})
	}
}

func TestSourceConfig_SearchURL(t *testing.T) {
	t.Parallel()

	t.Run("builds default search urls", func(t *testing.T) {
		t.Parallel()

		sources := pricecheck.DefaultSources()
		require.Len(t, sources, 2)

		amazon, err := sources[0].SearchURL("iphone 15")
		require.NoError(t, err)
		assert.Equal(t, "https://www.amazon.in/s?k=iphone+15", amazon)

		flipkart, err := sources[1].SearchURL("iphone 15")
		require.NoError(t, err)
		assert.Equal(t, "https://www.flipkart.com/search?q=iphone+15", flipkart)
	})

	t.Run("escapes query", func(t *testing.T) {
		t.Parallel()

		cfg := pricecheck.SourceConfig{Source: pricecheck.SourceAmazon, Origin: "http://127.0.0.1:8080", SearchPath: "/s", QueryParam: "k"}

		got, err := cfg.SearchURL("a&b=c")

		require.NoError(t, err)
		assert.Equal(t, "http://127.0.0.1:8080/s?k=a%26b%3Dc", got)
	})
}

func TestSourceConfig_Validate(t *testing.T) {
	t.Parallel()

	for _, cfg := range pricecheck.DefaultSources() {
		assert.NoError(t, cfg.Validate())
	}

	tests := []struct {
		name string
		cfg  pricecheck.SourceConfig
	}{
		{"unknown source", pricecheck.SourceConfig{Source: "ebay", Origin: "https://www.ebay.in", QueryParam: "q"}},
		{"relative origin", pricecheck.SourceConfig{Source: pricecheck.SourceAmazon, Origin: "www.amazon.in", QueryParam: "k"}},
		{"missing query param", pricecheck.SourceConfig{Source: pricecheck.SourceAmazon, Origin: "https://www.amazon.in"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, pricecheck.EINVALID, pricecheck.ErrorCode(tt.cfg.Validate()))
		})
	}
}

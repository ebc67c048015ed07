package goquery_test

import (
	"testing"

	"github.com/fwojciec/pricecheck"
	"github.com/fwojciec/pricecheck/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const amazonSearchURL = "https://www.amazon.in/s?k=iphone+15"

func TestAmazonExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("returns first result with name link and price", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="s-main-slot">
			<div data-component-type="s-search-result" data-asin="B0SPONSOR">
				<h2><a class="a-link-normal" href="/sspa/click?ie=UTF8&amp;spc=abc"><span>Sponsored Case for iPhone 15</span></a></h2>
			</div>
			<div data-component-type="s-search-result" data-asin="B0CHX1W1XY">
				<h2 class="a-size-mini"><a class="a-link-normal s-link-style" href="/Apple-iPhone-15-128-GB/dp/B0CHX1W1XY/ref=sr_1_1?keywords=iphone+15#reviews"><span class="a-size-medium">Apple iPhone 15 (128 GB) - Black</span></a></h2>
				<span class="a-price"><span class="a-offscreen">₹71,999</span><span aria-hidden="true"><span class="a-price-whole">71,999</span></span></span>
			</div>
			<div data-component-type="s-search-result" data-asin="B0CHX3QBCH">
				<h2><a href="/Apple-iPhone-15-256-GB/dp/B0CHX3QBCH"><span>Apple iPhone 15 (256 GB) - Blue</span></a></h2>
				<span class="a-price"><span class="a-offscreen">₹79,900</span></span>
			</div>
		</div></body></html>`

		listing, err := goquery.NewAmazonExtractor().Extract(html, amazonSearchURL)

		require.NoError(t, err)
		require.NotNil(t, listing)
		assert.Equal(t, pricecheck.SourceAmazon, listing.Source)
		assert.Equal(t, "Apple iPhone 15 (128 GB) - Black", listing.Name)
		require.NotNil(t, listing.Price)
		assert.Equal(t, 71999, *listing.Price)
		assert.Equal(t, "https://www.amazon.in/Apple-iPhone-15-128-GB/dp/B0CHX1W1XY/ref=sr_1_1?keywords=iphone+15", listing.URL)
	})

	t.Run("skips priced sponsored redirect", func(t *testing.T) {
		t.Parallel()

		html := `<div class="s-main-slot">
			<div data-component-type="s-search-result" data-asin="B0SPONSOR">
				<h2><a class="a-link-normal" href="/sspa/click?ie=UTF8&amp;spc=abc&amp;url=%2Fdp%2FB0SPONSOR"><span>Sponsored Case for iPhone 15</span></a></h2>
				<span class="a-price"><span class="a-offscreen">₹499</span></span>
			</div>
			<div data-component-type="s-search-result" data-asin="B0CHX1W1XY">
				<h2><a href="/Apple-iPhone-15-128-GB/dp/B0CHX1W1XY"><span>Apple iPhone 15 (128 GB) - Black</span></a></h2>
				<span class="a-price"><span class="a-offscreen">₹71,999</span></span>
			</div>
		</div>`

		listing, err := goquery.NewAmazonExtractor().Extract(html, amazonSearchURL)

		require.NoError(t, err)
		require.NotNil(t, listing)
		assert.Equal(t, "Apple iPhone 15 (128 GB) - Black", listing.Name)
		assert.Equal(t, 71999, *listing.Price)
		assert.Equal(t, "https://www.amazon.in/Apple-iPhone-15-128-GB/dp/B0CHX1W1XY", listing.URL)
	})

	t.Run("keeps encoded angle brackets in name", func(t *testing.T) {
		t.Parallel()

		html := `<div data-component-type="s-search-result">
			<h2><a href="/USB-Cable/dp/B0USBC0001"><span>USB Cable &lt;Type-C&gt; 1m</span></a></h2>
			<span class="a-price"><span class="a-offscreen">₹299</span></span>
		</div>`

		listing, err := goquery.NewAmazonExtractor().Extract(html, amazonSearchURL)

		require.NoError(t, err)
		require.NotNil(t, listing)
		assert.Equal(t, "USB Cable <Type-C> 1m", listing.Name)
		assert.Equal(t, 299, *listing.Price)
	})

	t.Run("reads whole price when screen reader price is missing", func(t *testing.T) {
		t.Parallel()

		html := `<div data-component-type="s-search-result">
			<h2><a href="/boAt-Airdopes-141/dp/B09N3ZNHTY"><span>boAt Airdopes 141 &amp; Charging Case</span></a></h2>
			<span class="a-price"><span class="a-price-whole">1,199.</span></span>
		</div>`

		listing, err := goquery.NewAmazonExtractor().Extract(html, amazonSearchURL)

		require.NoError(t, err)
		require.NotNil(t, listing)
		assert.Equal(t, "boAt Airdopes 141 & Charging Case", listing.Name)
		assert.Equal(t, 1199, *listing.Price)
	})

	t.Run("supports title wrapped in link", func(t *testing.T) {
		t.Parallel()

		html := `<div data-component-type="s-search-result">
			<a class="a-link-normal" href="/Sony-WH-1000XM5/dp/B09XS7JWHH"><h2 aria-label="Sony WH-1000XM5"><span>Sony WH-1000XM5 Wireless Noise Cancelling Headphones</span></h2></a>
			<span class="a-price"><span class="a-offscreen">₹28,990</span></span>
		</div>`

		listing, err := goquery.NewAmazonExtractor().Extract(html, amazonSearchURL)

		require.NoError(t, err)
		require.NotNil(t, listing)
		assert.Equal(t, "Sony WH-1000XM5 Wireless Noise Cancelling Headphones", listing.Name)
		assert.Equal(t, "https://www.amazon.in/Sony-WH-1000XM5/dp/B09XS7JWHH", listing.URL)
	})

	t.Run("falls back to data-asin cards", func(t *testing.T) {
		t.Parallel()

		html := `<div data-asin=""></div>
			<div data-asin="B0D3J9XRPX">
				<h2><a href="https://www.amazon.in/Philips-HD9200-90/dp/B0D3J9XRPX"><span>PHILIPS Air Fryer HD9200/90</span></a></h2>
				<span>Deal price ₹5,999 with offers</span>
			</div>`

		listing, err := goquery.NewAmazonExtractor().Extract(html, amazonSearchURL)

		require.NoError(t, err)
		require.NotNil(t, listing)
		assert.Equal(t, "PHILIPS Air Fryer HD9200/90", listing.Name)
		assert.Equal(t, 5999, *listing.Price)
		assert.Equal(t, "https://www.amazon.in/Philips-HD9200-90/dp/B0D3J9XRPX", listing.URL)
	})

	t.Run("skips links that are not item pages", func(t *testing.T) {
		t.Parallel()

		html := `<div data-component-type="s-search-result">
			<h2><a href="/s?k=iphone+15+case"><span>See more results</span></a></h2>
			<span class="a-price"><span class="a-offscreen">₹499</span></span>
		</div>`

		listing, err := goquery.NewAmazonExtractor().Extract(html, amazonSearchURL)

		require.NoError(t, err)
		assert.Nil(t, listing)
	})

	t.Run("returns no listing for page without results", func(t *testing.T) {
		t.Parallel()

		listing, err := goquery.NewAmazonExtractor().Extract(`<html><body><p>No results for your query.</p></body></html>`, amazonSearchURL)

		require.NoError(t, err)
		assert.Nil(t, listing)
	})

	t.Run("returns no listing for empty document", func(t *testing.T) {
		t.Parallel()

		listing, err := goquery.NewAmazonExtractor().Extract("", amazonSearchURL)

		require.NoError(t, err)
		assert.Nil(t, listing)
	})

	t.Run("rejects relative base URL", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewAmazonExtractor().Extract("<html></html>", "/s?k=iphone")

		require.Error(t, err)
		assert.Equal(t, pricecheck.EINVALID, pricecheck.ErrorCode(err))
	})
}

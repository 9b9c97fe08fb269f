package scrapers

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"furniture-search-api/internal/models"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	base, err := url.Parse("https://www.wayfair.com")
	require.NoError(t, err)
	return NewExtractor(base, zap.NewNop())
}

func TestExtractBasicPage(t *testing.T) {
	e := newTestExtractor(t)

	markup := `
	<html><body>
	  <div class="product-card">
	    <h3>Modern L-Shaped Sectional Sofa</h3>
	    <span class="price">$899.99</span>
	    <a href="/furniture/pdp/modern-sectional">view</a>
	    <img src="/images/sofa-1.jpg">
	  </div>
	  <div class="product-card">
	    <h3>Comfortable 3-Seater Sofa</h3>
	    <span class="price">$599.99</span>
	    <a href="https://www.wayfair.com/furniture/pdp/three-seater">view</a>
	    <img src="https://images.wayfair.com/sofa-2.jpg">
	  </div>
	</body></html>`

	items := e.Extract(markup, 10)
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "Modern L-Shaped Sectional Sofa", first.Name)
	require.NotNil(t, first.Price)
	assert.InDelta(t, 899.99, *first.Price, 0.001)
	assert.Equal(t, "https://www.wayfair.com/furniture/pdp/modern-sectional", first.URL)
	assert.Equal(t, "https://www.wayfair.com/images/sofa-1.jpg", first.ImageURL)
	assert.Equal(t, first.Name, first.Description)
	assert.Equal(t, models.DefaultAvailability, first.Availability)

	// absolute references pass through untouched
	assert.Equal(t, "https://www.wayfair.com/furniture/pdp/three-seater", items[1].URL)
	assert.Equal(t, "https://images.wayfair.com/sofa-2.jpg", items[1].ImageURL)
}

func TestExtractFirstStrategyWins(t *testing.T) {
	e := newTestExtractor(t)

	// both a [class*="product"] div and an <article> are present; the
	// product-class strategy runs first, so the article is never visited
	markup := `
	<html><body>
	  <div class="product-tile">
	    <h2>Queen Platform Bed Frame</h2>
	    <div class="price">$299.99</div>
	  </div>
	  <article>
	    <h2>Article Only Dresser That Must Not Appear</h2>
	    <div class="price">$999.99</div>
	  </article>
	</body></html>`

	items := e.Extract(markup, 10)
	require.Len(t, items, 1)
	assert.Equal(t, "Queen Platform Bed Frame", items[0].Name)
}

func TestExtractDiscardsBlocksWithoutNameOrPrice(t *testing.T) {
	e := newTestExtractor(t)

	markup := `
	<html><body>
	  <div class="product-card"><h3>No Price Floor Lamp</h3></div>
	  <div class="product-card"><span class="price">$49.99</span><p>ad</p></div>
	  <div class="product-card">
	    <h3>Valid Accent Chair</h3>
	    <span class="price">$149.99</span>
	  </div>
	</body></html>`

	items := e.Extract(markup, 10)
	require.Len(t, items, 1)
	assert.Equal(t, "Valid Accent Chair", items[0].Name)
}

func TestExtractNameFromTextNodes(t *testing.T) {
	e := newTestExtractor(t)

	// no heading, no title/name class: the text-node scan picks the
	// first string between 10 and 100 chars that is not purely numeric
	markup := `
	<html><body>
	  <div class="product-card">
	    <span>12345678901</span>
	    <span>Rustic Farmhouse Console Table</span>
	    <span class="price">$219.99</span>
	  </div>
	</body></html>`

	items := e.Extract(markup, 10)
	require.Len(t, items, 1)
	assert.Equal(t, "Rustic Farmhouse Console Table", items[0].Name)
}

func TestExtractRespectsLimit(t *testing.T) {
	e := newTestExtractor(t)

	markup := "<html><body>"
	for i := 0; i < 8; i++ {
		markup += fmt.Sprintf(`<div class="product-card"><h3>Bookcase Number %d Tall</h3><span class="price">$%d.99</span></div>`, i, 100+i)
	}
	markup += "</body></html>"

	items := e.Extract(markup, 3)
	assert.Len(t, items, 3)
}

func TestExtractEmptyWhenNoStrategyMatches(t *testing.T) {
	e := newTestExtractor(t)

	items := e.Extract(`<html><body><p>Prices from $10 and $20</p></body></html>`, 10)
	assert.Empty(t, items)

	items = e.Extract(`<html><body><p>nothing for sale</p></body></html>`, 10)
	assert.Empty(t, items)
}

func TestExtractToleratesMalformedMarkup(t *testing.T) {
	e := newTestExtractor(t)

	markup := `<div class="product-card"><h3>Unclosed Tag Nightstand</h3><span class="price">$89.99`
	items := e.Extract(markup, 10)
	require.Len(t, items, 1)
	assert.Equal(t, "Unclosed Tag Nightstand", items[0].Name)
}

func TestItemIDDeterministic(t *testing.T) {
	a := itemID("Modern Sofa", 899.99)
	b := itemID("Modern Sofa", 899.99)
	c := itemID("Modern Sofa", 899.98)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Regexp(t, `^WF_\d{4}$`, a)
}

func TestBlockStrategiesIndividually(t *testing.T) {
	e := newTestExtractor(t)

	tests := []struct {
		strategy string
		markup   string
	}{
		{"data-testid", `<div data-testid="product-tile"><h3>Data Testid Ottoman</h3><b class="price">$59.99</b></div>`},
		{"product-class", `<div class="product-row"><h3>Product Class Ottoman</h3><b class="price">$59.99</b></div>`},
		{"item-class", `<div class="list-item"><h3>Item Class Ottoman</h3><b class="price">$59.99</b></div>`},
		{"card-class", `<div class="result-card"><h3>Card Class Ottoman</h3><b class="price">$59.99</b></div>`},
		{"article", `<article><h3>Article Ottoman</h3><b class="price">$59.99</b></article>`},
	}

	for _, tt := range tests {
		t.Run(tt.strategy, func(t *testing.T) {
			items := e.Extract("<html><body>"+tt.markup+"</body></html>", 10)
			require.Len(t, items, 1)
			require.NotNil(t, items[0].Price)
			assert.InDelta(t, 59.99, *items[0].Price, 0.001)
		})
	}
}

func TestSearchURL(t *testing.T) {
	w := &WayfairScraper{}
	assert.Equal(t, "https://www.wayfair.com/search?query=queen+bed+frame", w.searchURL("queen bed frame"))
}

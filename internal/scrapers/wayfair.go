package scrapers

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"furniture-search-api/internal/models"
)

const wayfairBaseURL = "https://www.wayfair.com"

// WayfairScraper fetches a Wayfair search-results page and runs the
// extractor over it. One attempt per search, bounded by the collector's
// request timeout; failures are reported to the caller, which owns the
// fallback decision.
type WayfairScraper struct {
	collector *colly.Collector
	extractor *Extractor
	logger    *zap.Logger
}

func NewWayfairScraper(timeout time.Duration, logger *zap.Logger) *WayfairScraper {
	c := colly.NewCollector(
		colly.AllowedDomains("wayfair.com", "www.wayfair.com"),
	)
	c.SetRequestTimeout(timeout)

	c.Limit(&colly.LimitRule{
		DomainGlob:  "*wayfair.*",
		Parallelism: 1,
		Delay:       2 * time.Second,
	})

	base, err := url.Parse(wayfairBaseURL)
	if err != nil {
		panic(fmt.Sprintf("invalid base url %q: %v", wayfairBaseURL, err))
	}

	return &WayfairScraper{
		collector: c,
		extractor: NewExtractor(base, logger),
		logger:    logger,
	}
}

// Search fetches the results page for the query and extracts up to
// limit items from it. A transport error, HTTP error status or timeout
// is returned as an error; a page that yields no items returns an empty
// slice and no error.
func (w *WayfairScraper) Search(query string, limit int) ([]models.Item, error) {
	searchURL := w.searchURL(query)
	w.logger.Info("fetching wayfair search page", zap.String("url", searchURL))

	c := w.collector.Clone()
	c.OnRequest(setDesktopHeaders)

	var body []byte
	c.OnResponse(func(r *colly.Response) {
		w.logger.Debug("wayfair response",
			zap.Int("status", r.StatusCode),
			zap.Int("bytes", len(r.Body)))
		body = r.Body
	})
	c.OnError(func(r *colly.Response, err error) {
		w.logger.Warn("wayfair fetch error",
			zap.Int("status", r.StatusCode),
			zap.Error(err))
	})

	if err := c.Visit(searchURL); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", searchURL, err)
	}

	if len(body) == 0 {
		return nil, fmt.Errorf("fetch %s: empty response body", searchURL)
	}

	items := w.extractor.Extract(string(body), limit)
	w.logger.Info("wayfair extraction finished", zap.Int("items", len(items)))
	return items, nil
}

func (w *WayfairScraper) searchURL(query string) string {
	return fmt.Sprintf("%s/search?query=%s", wayfairBaseURL, strings.ReplaceAll(query, " ", "+"))
}

// setDesktopHeaders applies the fixed desktop-browser header set used
// for every live fetch.
func setDesktopHeaders(r *colly.Request) {
	r.Headers.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	r.Headers.Set("Accept-Language", "en-US,en;q=0.5")
	r.Headers.Set("Accept-Encoding", "gzip, deflate, br")
	r.Headers.Set("Connection", "keep-alive")
	r.Headers.Set("Upgrade-Insecure-Requests", "1")
}

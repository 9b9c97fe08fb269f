package scrapers

import (
	"fmt"
	"hash/fnv"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"furniture-search-api/internal/models"
	"furniture-search-api/pkg/utils"
)

// blockStrategy is one heuristic rule for locating markup fragments
// that represent a single product listing. Strategies run in order and
// the first one that yields at least one block wins; the rest are
// never tried.
type blockStrategy struct {
	name     string
	selector string
}

var blockStrategies = []blockStrategy{
	{"data-testid", `[data-testid*="product"]`},
	{"product-class", `[class*="product"]`},
	{"item-class", `[class*="item"]`},
	{"card-class", `[class*="card"]`},
	{"article", "article"},
	{"product-card", ".product-card"},
	{"search-result", ".search-result-item"},
}

var nameSelectors = []string{
	"h1", "h2", "h3", "h4", "h5", "h6",
	`[class*="title"]`, `[class*="name"]`, `a[href*="/pdp/"]`,
	".product-title", ".item-title",
}

var priceSelectors = []string{
	`[class*="price"]`, `[class*="cost"]`, ".price", ".cost",
}

var (
	priceRunRe   = regexp.MustCompile(`\$\d+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Extractor pulls normalized items out of the raw markup of a
// search-results page.
type Extractor struct {
	base   *url.URL
	logger *zap.Logger
}

func NewExtractor(base *url.URL, logger *zap.Logger) *Extractor {
	return &Extractor{base: base, logger: logger}
}

// Extract locates candidate product blocks via the ordered strategy
// list and extracts up to limit valid items from them. Blocks that
// yield no name or no price are skipped; a page where no strategy
// locates any block is an empty (failed) extraction. Malformed markup
// never aborts the page.
func (e *Extractor) Extract(markup string, limit int) []models.Item {
	items := make([]models.Item, 0)
	if limit < 1 {
		return items
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		e.logger.Warn("markup parse failed", zap.Error(err))
		return items
	}

	blocks := e.locateBlocks(doc)
	if blocks == nil {
		// No strategy matched. Scan for currency-prefixed runs only to
		// record whether the page carries prices at all.
		priceRuns := len(priceRunRe.FindAllString(doc.Text(), -1))
		e.logger.Warn("no product blocks located",
			zap.Int("price_runs_on_page", priceRuns))
		return items
	}

	blocks.EachWithBreak(func(_ int, block *goquery.Selection) bool {
		item, ok := e.extractItem(block)
		if ok {
			items = append(items, item)
		}
		return len(items) < limit
	})

	return items
}

func (e *Extractor) locateBlocks(doc *goquery.Document) *goquery.Selection {
	for _, strategy := range blockStrategies {
		blocks := doc.Find(strategy.selector)
		if blocks.Length() > 0 {
			e.logger.Debug("block strategy matched",
				zap.String("strategy", strategy.name),
				zap.Int("blocks", blocks.Length()))
			return blocks
		}
	}
	return nil
}

func (e *Extractor) extractItem(block *goquery.Selection) (item models.Item, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("block extraction panic recovered", zap.Any("panic", r))
			ok = false
		}
	}()

	name := extractName(block)
	if name == "" {
		return models.Item{}, false
	}

	price := extractPrice(block)
	if price == nil {
		return models.Item{}, false
	}

	return models.Item{
		ID:           itemID(name, *price),
		Name:         name,
		Price:        price,
		Availability: models.DefaultAvailability,
		URL:          e.resolveRef(block.Find("a").First().AttrOr("href", "")),
		ImageURL:     e.resolveRef(block.Find("img").First().AttrOr("src", "")),
		Description:  name,
	}, true
}

// extractName walks the ordered name selectors, falling back to a scan
// of the block's text nodes for the first plausible product title.
func extractName(block *goquery.Selection) string {
	for _, sel := range nameSelectors {
		name := strings.TrimSpace(block.Find(sel).First().Text())
		if name != "" && len(name) > 3 {
			return collapseWhitespace(name)
		}
	}

	var name string
	walkTextNodes(block, func(text string) bool {
		t := strings.TrimSpace(text)
		if len(t) > 10 && len(t) < 100 && !isNumeric(t) {
			name = collapseWhitespace(t)
			return false
		}
		return true
	})

	return name
}

func extractPrice(block *goquery.Selection) *float64 {
	for _, sel := range priceSelectors {
		if price := utils.ParsePrice(strings.TrimSpace(block.Find(sel).First().Text())); price != nil {
			return price
		}
	}

	// last resort: scan the block's whole text
	return utils.ParsePrice(block.Text())
}

// itemID derives a stable id from name and price so repeated extraction
// of the same listing yields the same id within a run. Collisions are
// possible and tolerated; ids only feed display and compare.
func itemID(name string, price float64) string {
	h := fnv.New32a()
	h.Write([]byte(name))
	h.Write([]byte(strconv.FormatFloat(price, 'f', 2, 64)))
	return fmt.Sprintf("WF_%04d", h.Sum32()%10000)
}

func (e *Extractor) resolveRef(ref string) string {
	if ref == "" {
		return ""
	}

	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return ""
	}

	return e.base.ResolveReference(u).String()
}

// walkTextNodes visits every text node under the selection in document
// order until fn returns false.
func walkTextNodes(sel *goquery.Selection, fn func(text string) bool) {
	var walk func(n *html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.TextNode {
			if !fn(n.Data) {
				return false
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if !walk(c) {
				return false
			}
		}
		return true
	}

	for _, n := range sel.Nodes {
		if !walk(n) {
			return
		}
	}
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func collapseWhitespace(s string) string {
	return whitespaceRe.ReplaceAllString(s, " ")
}

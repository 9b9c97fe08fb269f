package cache

import (
	"fmt"
	"strings"

	"furniture-search-api/internal/models"
)

// Store is a TTL'd search-result cache. Writes are atomic per key and
// the last writer wins; concurrent misses for the same key are allowed
// to both fetch (no single-flight deduplication).
type Store interface {
	Get(key string) (*models.SearchResult, bool)
	Set(key string, result *models.SearchResult)
	Flush() error
	Stats() map[string]interface{}
}

// Key builds the canonical cache key for a query. Text is normalized so
// that trivially different spellings of the same request share an entry.
func Key(q models.SearchQuery) string {
	key := fmt.Sprintf("search:%s:l%d", strings.ToLower(strings.TrimSpace(q.Text)), q.Limit)

	if q.Category != "" {
		key += ":cat" + strings.ToLower(q.Category)
	}
	if q.MaxPrice > 0 {
		key += fmt.Sprintf(":maxp%.2f", q.MaxPrice)
	}
	if q.MinRating > 0 {
		key += fmt.Sprintf(":minr%.1f", q.MinRating)
	}
	if q.Sort != nil {
		key += fmt.Sprintf(":sort%s:%s", q.Sort.Field, q.Sort.Order)
	}

	return key
}

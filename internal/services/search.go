package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"furniture-search-api/internal/catalog"
	"furniture-search-api/internal/models"
	"furniture-search-api/pkg/cache"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// LiveSource is the live retrieval collaborator: it fetches a
// search-results page and extracts up to limit items from it. An error
// or an empty slice both count as extraction failure.
type LiveSource interface {
	Search(query string, limit int) ([]models.Item, error)
}

// SearchService is the retrieval orchestrator. It checks the cache,
// attempts live retrieval, falls back to the static catalog when the
// live path fails, tags provenance, applies filters and sorting, and
// caches the assembled result. Past validation it never returns an
// error: every internal failure degrades to the fallback path.
type SearchService struct {
	live    LiveSource
	catalog *catalog.Catalog
	cache   cache.Store
	logger  *zap.Logger
	now     func() time.Time

	mu   sync.RWMutex
	seen map[string]models.Item
}

func NewSearchService(live LiveSource, cat *catalog.Catalog, store cache.Store, logger *zap.Logger) *SearchService {
	return &SearchService{
		live:    live,
		catalog: cat,
		cache:   store,
		logger:  logger,
		now:     time.Now,
		seen:    make(map[string]models.Item),
	}
}

// Search is the primary entry point.
func (s *SearchService) Search(query models.SearchQuery) (*models.SearchResult, error) {
	if err := s.validateQuery(&query); err != nil {
		return nil, err
	}

	key := cache.Key(query)
	if cached, ok := s.cache.Get(key); ok {
		s.logger.Debug("cache hit", zap.String("key", key))
		return cached, nil
	}
	s.logger.Debug("cache miss", zap.String("key", key))

	items := s.retrieve(query)
	s.remember(items)

	filtered := FilterItems(items, query.Category, query.MaxPrice, query.MinRating)
	filtered = applySort(filtered, query.Sort)

	result := &models.SearchResult{
		Query: query.Text,
		FiltersApplied: models.Filters{
			Category:  query.Category,
			MaxPrice:  query.MaxPrice,
			MinRating: query.MinRating,
		},
		Items:            filtered,
		TotalCount:       len(filtered),
		RetrievedAt:      s.now(),
		ProvenanceCounts: countProvenance(filtered),
	}

	s.cache.Set(key, result)
	return result, nil
}

// ListCategories returns the ordered category keys of the static catalog.
func (s *SearchService) ListCategories() []string {
	return s.catalog.Categories()
}

// GetProductDetails returns a single item by id, resolved against
// previously retrieved items and the static catalog.
func (s *SearchService) GetProductDetails(id string) (models.Item, error) {
	it, ok := s.lookupItem(id)
	if !ok {
		return models.Item{}, fmt.Errorf("%w: product %s", models.ErrNotFound, id)
	}
	return it, nil
}

// retrieve runs the live attempt and branches to the fallback catalog
// on failure. This is the only place fallback is triggered.
func (s *SearchService) retrieve(query models.SearchQuery) []models.Item {
	items, err := s.live.Search(query.Text, query.Limit)

	switch {
	case err != nil:
		s.logger.Warn("live retrieval failed, using fallback catalog",
			zap.String("query", query.Text), zap.Error(err))
	case len(items) == 0:
		s.logger.Warn("live extraction yielded no items, using fallback catalog",
			zap.String("query", query.Text))
	default:
		for i := range items {
			items[i].Provenance = models.ProvenanceLive
		}
		s.logger.Info("live retrieval succeeded",
			zap.String("query", query.Text), zap.Int("items", len(items)))
		return items
	}

	return s.catalog.Lookup(query.Text, query.Limit)
}

func (s *SearchService) validateQuery(query *models.SearchQuery) error {
	if strings.TrimSpace(query.Text) == "" {
		return fmt.Errorf("%w: search query cannot be empty", models.ErrInvalidQuery)
	}

	if query.Limit == 0 {
		query.Limit = defaultLimit
	}
	if query.Limit < 1 {
		return fmt.Errorf("%w: limit must be at least 1", models.ErrInvalidQuery)
	}
	if query.Limit > maxLimit {
		query.Limit = maxLimit
	}

	if query.MaxPrice < 0 {
		return fmt.Errorf("%w: maximum price cannot be negative", models.ErrInvalidQuery)
	}
	if query.MinRating < 0 || query.MinRating > 5 {
		return fmt.Errorf("%w: minimum rating must be between 0 and 5", models.ErrInvalidQuery)
	}

	if query.Sort != nil {
		if query.Sort.Order == "" {
			query.Sort.Order = "asc"
		}
		if !contains(validSortFields, query.Sort.Field) {
			return fmt.Errorf("%w: invalid sort field %q (valid: %s)",
				models.ErrInvalidQuery, query.Sort.Field, strings.Join(validSortFields, ", "))
		}
		if !contains(validSortOrders, query.Sort.Order) {
			return fmt.Errorf("%w: invalid sort order %q (valid: %s)",
				models.ErrInvalidQuery, query.Sort.Order, strings.Join(validSortOrders, ", "))
		}
	}

	return nil
}

// remember indexes returned items by id for later compare-by-id calls.
// Id collisions within one page are last-write-wins.
func (s *SearchService) remember(items []models.Item) {
	s.mu.Lock()
	for _, it := range items {
		s.seen[it.ID] = it
	}
	s.mu.Unlock()
}

func (s *SearchService) lookupItem(id string) (models.Item, bool) {
	s.mu.RLock()
	it, ok := s.seen[id]
	s.mu.RUnlock()
	if ok {
		return it, true
	}
	return s.catalog.Find(id)
}

func countProvenance(items []models.Item) models.ProvenanceCounts {
	var counts models.ProvenanceCounts
	for _, it := range items {
		switch it.Provenance {
		case models.ProvenanceLive:
			counts.Live++
		case models.ProvenanceFallback:
			counts.Fallback++
		}
	}
	return counts
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

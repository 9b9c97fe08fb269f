package services

import (
	"sort"
	"strings"

	"furniture-search-api/internal/models"
)

var (
	validSortFields = []string{"relevance", "price", "rating", "name"}
	validSortOrders = []string{"asc", "desc"}
)

// FilterItems applies the category/price/rating filters. The category
// filter is a case-insensitive substring match against the item name
// (intentionally loose, not an exact category-field match); price and
// rating bounds are inclusive. Items with a nil price or rating are
// excluded when the corresponding filter is active. Zero-valued filters
// are inactive.
func FilterItems(items []models.Item, category string, maxPrice, minRating float64) []models.Item {
	filtered := make([]models.Item, 0, len(items))
	categoryLower := strings.ToLower(category)

	for _, it := range items {
		if category != "" && !strings.Contains(strings.ToLower(it.Name), categoryLower) {
			continue
		}
		if maxPrice > 0 && (it.Price == nil || *it.Price > maxPrice) {
			continue
		}
		if minRating > 0 && (it.Rating == nil || *it.Rating < minRating) {
			continue
		}
		filtered = append(filtered, it)
	}

	return filtered
}

// RankByRelevance orders items by descending rating * reviewCount.
// Missing rating or review count scores 0. The sort is stable: ties
// keep their relative input order.
func RankByRelevance(items []models.Item) []models.Item {
	ranked := make([]models.Item, len(items))
	copy(ranked, items)

	sort.SliceStable(ranked, func(i, j int) bool {
		return relevance(ranked[i]) > relevance(ranked[j])
	})

	return ranked
}

func relevance(it models.Item) float64 {
	if it.Rating == nil || it.ReviewCount == nil {
		return 0
	}
	return *it.Rating * float64(*it.ReviewCount)
}

// applySort orders items by the requested sort option. Relevance is
// always descending; price, rating and name honor the asc/desc order.
// A nil sort keeps source order.
func applySort(items []models.Item, sortParams *models.Sort) []models.Item {
	if sortParams == nil {
		return items
	}

	if sortParams.Field == "relevance" {
		return RankByRelevance(items)
	}

	sort.SliceStable(items, func(i, j int) bool {
		switch sortParams.Field {
		case "price":
			if sortParams.Order == "desc" {
				return deref(items[i].Price) > deref(items[j].Price)
			}
			return deref(items[i].Price) < deref(items[j].Price)

		case "rating":
			if sortParams.Order == "desc" {
				return deref(items[i].Rating) > deref(items[j].Rating)
			}
			return deref(items[i].Rating) < deref(items[j].Rating)

		case "name":
			if sortParams.Order == "desc" {
				return items[i].Name > items[j].Name
			}
			return items[i].Name < items[j].Name

		default:
			return false
		}
	})

	return items
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

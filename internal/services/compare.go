package services

import (
	"fmt"

	"furniture-search-api/internal/models"
)

// CompareItems resolves the given ids against previously retrieved
// items and the static catalog, then builds a comparison summary.
func (s *SearchService) CompareItems(ids []string) (*models.ComparisonSummary, error) {
	if len(ids) < 2 {
		return nil, fmt.Errorf("%w: got %d ids", models.ErrInsufficientInput, len(ids))
	}

	resolved := make([]models.Item, 0, len(ids))
	for _, id := range ids {
		if it, ok := s.lookupItem(id); ok {
			resolved = append(resolved, it)
		}
	}

	if len(resolved) < 2 {
		return nil, fmt.Errorf("%w: only %d of %d ids resolve to known items",
			models.ErrNotFound, len(resolved), len(ids))
	}

	return Compare(resolved)
}

// Compare computes price and rating ranges over the items, the best
// value (lowest price/rating ratio) and the highest rated item. Ties
// keep the first occurrence. Items with a zero or missing rating make
// best value undefined; callers must filter those out first.
func Compare(items []models.Item) (*models.ComparisonSummary, error) {
	if len(items) < 2 {
		return nil, fmt.Errorf("%w: got %d items", models.ErrInsufficientInput, len(items))
	}

	for _, it := range items {
		if it.Rating == nil || *it.Rating == 0 {
			return nil, fmt.Errorf("%w: item %s", models.ErrDivisionUndefined, it.ID)
		}
	}

	prices := make([]float64, len(items))
	ratings := make([]float64, len(items))
	for i, it := range items {
		prices[i] = deref(it.Price)
		ratings[i] = *it.Rating
	}

	bestValue := items[0]
	highestRated := items[0]
	for _, it := range items[1:] {
		if deref(it.Price)/(*it.Rating) < deref(bestValue.Price)/(*bestValue.Rating) {
			bestValue = it
		}
		if *it.Rating > *highestRated.Rating {
			highestRated = it
		}
	}

	return &models.ComparisonSummary{
		Items:        items,
		PriceRange:   makeRange(prices),
		RatingRange:  makeRange(ratings),
		BestValue:    bestValue.ID,
		HighestRated: highestRated.ID,
	}, nil
}

func makeRange(values []float64) models.Range {
	lowest, highest, sum := values[0], values[0], 0.0

	for _, v := range values {
		if v < lowest {
			lowest = v
		}
		if v > highest {
			highest = v
		}
		sum += v
	}

	return models.Range{
		Lowest:  lowest,
		Highest: highest,
		Average: sum / float64(len(values)),
	}
}

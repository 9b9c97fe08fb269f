package models

import (
	"math"
	"time"
)

// Provenance tags where an item came from: live extraction or the
// static fallback catalog. Never both.
type Provenance string

const (
	ProvenanceLive     Provenance = "live"
	ProvenanceFallback Provenance = "fallback"
)

const DefaultAvailability = "In Stock"

// Item is the normalized product record. Items are never mutated after
// construction; pointer fields are nil when the source had no usable value.
type Item struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Price           *float64   `json:"price"`
	OriginalPrice   *float64   `json:"original_price,omitempty"`
	DiscountPercent *int       `json:"discount_percentage,omitempty"`
	Rating          *float64   `json:"rating,omitempty"`
	ReviewCount     *int       `json:"review_count,omitempty"`
	Availability    string     `json:"availability"`
	URL             string     `json:"url"`
	ImageURL        string     `json:"image_url"`
	Description     string     `json:"description"`
	Provenance      Provenance `json:"provenance"`
}

// Discount returns the discount percentage implied by the two prices,
// rounded to the nearest integer.
func Discount(price, originalPrice float64) int {
	if originalPrice <= 0 {
		return 0
	}
	return int(math.Round((originalPrice - price) / originalPrice * 100))
}

type Sort struct {
	Field string `json:"field"` // relevance, price, rating, name
	Order string `json:"order"` // asc, desc
}

// SearchQuery is the input to a search. Zero-valued filters are inactive.
type SearchQuery struct {
	Text      string  `json:"query"`
	Category  string  `json:"category,omitempty"`
	MaxPrice  float64 `json:"max_price,omitempty"`
	MinRating float64 `json:"min_rating,omitempty"`
	Limit     int     `json:"limit,omitempty"`
	Sort      *Sort   `json:"sort,omitempty"`
}

// Filters echoes the filter portion of a query back in the result.
type Filters struct {
	Category  string  `json:"category,omitempty"`
	MaxPrice  float64 `json:"max_price,omitempty"`
	MinRating float64 `json:"min_rating,omitempty"`
}

type ProvenanceCounts struct {
	Live     int `json:"live"`
	Fallback int `json:"fallback"`
}

type SearchResult struct {
	Query            string           `json:"query"`
	FiltersApplied   Filters          `json:"filters_applied"`
	Items            []Item           `json:"products"`
	TotalCount       int              `json:"total_count"`
	RetrievedAt      time.Time        `json:"retrieved_at"`
	ProvenanceCounts ProvenanceCounts `json:"provenance_counts"`
}

type Range struct {
	Lowest  float64 `json:"lowest"`
	Highest float64 `json:"highest"`
	Average float64 `json:"average"`
}

// ComparisonSummary is the multi-item comparison over resolved items.
// BestValue is the id of the item minimizing price/rating, HighestRated
// the id of the item maximizing rating; ties keep the first occurrence.
type ComparisonSummary struct {
	Items        []Item `json:"products"`
	PriceRange   Range  `json:"price_range"`
	RatingRange  Range  `json:"rating_range"`
	BestValue    string `json:"best_value"`
	HighestRated string `json:"highest_rated"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	priceRe  = regexp.MustCompile(`[\$£€]?(\d+(?:,\d{3})*(?:\.\d{2})?)`)
	ratingRe = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// ParsePrice extracts the first price-like run from free-form text: an
// optional currency symbol ($, £, €), digits with optional thousands
// separators and an optional two-digit fraction. Returns nil when the
// text contains no such run.
func ParsePrice(text string) *float64 {
	if text == "" {
		return nil
	}

	match := priceRe.FindStringSubmatch(text)
	if match == nil {
		return nil
	}

	cleaned := strings.ReplaceAll(match[1], ",", "")
	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}

	return &price
}

// ParseRating extracts the first decimal number from free-form text
// (e.g. "4.5 out of 5 stars" -> 4.5). No range clamping is applied here;
// the 0-5 expectation is an item-level concern.
func ParseRating(text string) *float64 {
	if text == "" {
		return nil
	}

	match := ratingRe.FindString(text)
	if match == "" {
		return nil
	}

	rating, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return nil
	}

	return &rating
}

package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"furniture-search-api/internal/models"
)

func TestCompareBestValueAndHighestRated(t *testing.T) {
	itemA := liveItem("WF_A", "Premium Sofa", 899.99, 4.6, 100)
	itemB := liveItem("WF_B", "Value Sofa", 299.99, 4.4, 100)

	summary, err := Compare([]models.Item{itemA, itemB})
	require.NoError(t, err)

	// 299.99/4.4 < 899.99/4.6: B is the better value, A is rated higher
	assert.Equal(t, "WF_B", summary.BestValue)
	assert.Equal(t, "WF_A", summary.HighestRated)

	assert.InDelta(t, 299.99, summary.PriceRange.Lowest, 0.001)
	assert.InDelta(t, 899.99, summary.PriceRange.Highest, 0.001)
	assert.InDelta(t, 599.99, summary.PriceRange.Average, 0.001)

	assert.InDelta(t, 4.4, summary.RatingRange.Lowest, 0.001)
	assert.InDelta(t, 4.6, summary.RatingRange.Highest, 0.001)
	assert.InDelta(t, 4.5, summary.RatingRange.Average, 0.001)
}

func TestCompareTiesKeepFirstOccurrence(t *testing.T) {
	first := liveItem("WF_FIRST", "Sofa One", 400, 4.0, 10)
	second := liveItem("WF_SECOND", "Sofa Two", 400, 4.0, 10)

	summary, err := Compare([]models.Item{first, second})
	require.NoError(t, err)

	assert.Equal(t, "WF_FIRST", summary.BestValue)
	assert.Equal(t, "WF_FIRST", summary.HighestRated)
}

func TestCompareInsufficientInput(t *testing.T) {
	_, err := Compare([]models.Item{liveItem("WF_A", "Lonely Sofa", 100, 4.0, 10)})
	assert.ErrorIs(t, err, models.ErrInsufficientInput)
}

func TestCompareZeroRatingUndefined(t *testing.T) {
	rated := liveItem("WF_A", "Rated Sofa", 100, 4.0, 10)
	unrated := liveItem("WF_B", "Unrated Sofa", 100, 0, 10)

	_, err := Compare([]models.Item{rated, unrated})
	assert.ErrorIs(t, err, models.ErrDivisionUndefined)

	unrated.Rating = nil
	_, err = Compare([]models.Item{rated, unrated})
	assert.ErrorIs(t, err, models.ErrDivisionUndefined)
}

func TestCompareItemsResolvesCatalogIDs(t *testing.T) {
	svc := newService(&stubSource{})

	summary, err := svc.CompareItems([]string{"WF_SOFA_001", "WF_SOFA_002"})
	require.NoError(t, err)

	// 599.99/4.4 ≈ 136.4 beats 899.99/4.6 ≈ 195.7
	assert.Equal(t, "WF_SOFA_002", summary.BestValue)
	assert.Equal(t, "WF_SOFA_001", summary.HighestRated)
	assert.Len(t, summary.Items, 2)
}

func TestCompareItemsResolvesRetrievedItems(t *testing.T) {
	src := &stubSource{items: []models.Item{
		liveItem("WF_1111", "Scraped Sofa Alpha", 500, 4.0, 50),
		liveItem("WF_2222", "Scraped Sofa Beta", 300, 4.5, 80),
	}}
	svc := newService(src)

	// ids unknown until a search has run
	_, err := svc.CompareItems([]string{"WF_1111", "WF_2222"})
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = svc.Search(models.SearchQuery{Text: "sofa"})
	require.NoError(t, err)

	summary, err := svc.CompareItems([]string{"WF_1111", "WF_2222"})
	require.NoError(t, err)
	assert.Equal(t, "WF_2222", summary.BestValue)
}

func TestCompareItemsErrors(t *testing.T) {
	svc := newService(&stubSource{err: errors.New("blocked")})

	_, err := svc.CompareItems([]string{"WF_SOFA_001"})
	assert.ErrorIs(t, err, models.ErrInsufficientInput)

	_, err = svc.CompareItems([]string{})
	assert.ErrorIs(t, err, models.ErrInsufficientInput)

	_, err = svc.CompareItems([]string{"WF_SOFA_001", "WF_MISSING_1", "WF_MISSING_2"})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

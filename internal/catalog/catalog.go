package catalog

import (
	"strings"

	"furniture-search-api/internal/models"
)

// Catalog is the immutable category -> item-list table used as the
// deterministic fallback when live extraction is unavailable or empty.
type Catalog struct {
	order    []string
	terms    map[string][]string
	products map[string][]models.Item
}

const defaultCategory = "sofa"

// New builds the curated catalog. Every item is fully populated and
// tagged with fallback provenance.
func New() *Catalog {
	return &Catalog{
		order: []string{"sofa", "bed", "dining"},
		terms: map[string][]string{
			"sofa":   {"sofa", "couch", "sectional"},
			"bed":    {"bed", "bedroom", "mattress"},
			"dining": {"dining", "table", "chair"},
		},
		products: map[string][]models.Item{
			"sofa": {
				item("WF_SOFA_001", "Modern L-Shaped Sectional Sofa", 899.99, 1299.99, 4.6, 1247,
					"https://www.wayfair.com/furniture/pdp/modern-l-shaped-sectional-sofa",
					"https://images.wayfair.com/sofa-1.jpg",
					"Contemporary L-shaped sectional with premium fabric upholstery"),
				item("WF_SOFA_002", "Comfortable 3-Seater Sofa", 599.99, 799.99, 4.4, 892,
					"https://www.wayfair.com/furniture/pdp/comfortable-3-seater-sofa",
					"https://images.wayfair.com/sofa-2.jpg",
					"Plush 3-seater sofa perfect for living rooms"),
				item("WF_SOFA_003", "Mid-Century Modern Loveseat", 449.99, 549.99, 4.3, 356,
					"https://www.wayfair.com/furniture/pdp/mid-century-modern-loveseat",
					"https://images.wayfair.com/sofa-3.jpg",
					"Compact two-seat loveseat with tufted back and tapered wood legs"),
				item("WF_SOFA_004", "Convertible Sleeper Sofa", 729.99, 999.99, 4.2, 618,
					"https://www.wayfair.com/furniture/pdp/convertible-sleeper-sofa",
					"https://images.wayfair.com/sofa-4.jpg",
					"Click-clack sleeper sofa that folds flat into a full-size bed"),
			},
			"bed": {
				item("WF_BED_001", "Queen Platform Bed Frame", 299.99, 399.99, 4.4, 892,
					"https://www.wayfair.com/furniture/pdp/queen-platform-bed-frame",
					"https://images.wayfair.com/bed-1.jpg",
					"Sleek platform bed frame with upholstered headboard"),
				item("WF_BED_002", "King Upholstered Storage Bed", 649.99, 899.99, 4.7, 531,
					"https://www.wayfair.com/furniture/pdp/king-upholstered-storage-bed",
					"https://images.wayfair.com/bed-2.jpg",
					"King bed with lift-up storage base and linen headboard"),
				item("WF_BED_003", "Twin Metal Bed Frame", 129.99, 159.99, 4.1, 1088,
					"https://www.wayfair.com/furniture/pdp/twin-metal-bed-frame",
					"https://images.wayfair.com/bed-3.jpg",
					"Powder-coated steel twin frame with under-bed clearance"),
			},
			"dining": {
				item("WF_DINING_001", "Dining Table Set for 6", 599.99, 799.99, 4.5, 423,
					"https://www.wayfair.com/furniture/pdp/dining-table-set-for-6",
					"https://images.wayfair.com/dining-1.jpg",
					"Complete dining set includes table and 6 chairs"),
				item("WF_DINING_002", "Round Pedestal Dining Table", 389.99, 519.99, 4.3, 267,
					"https://www.wayfair.com/furniture/pdp/round-pedestal-dining-table",
					"https://images.wayfair.com/dining-2.jpg",
					"42-inch round table on a solid wood pedestal base"),
				item("WF_DINING_003", "Upholstered Dining Chairs Set of 2", 189.99, 239.99, 4.6, 754,
					"https://www.wayfair.com/furniture/pdp/upholstered-dining-chairs-set-of-2",
					"https://images.wayfair.com/dining-3.jpg",
					"Pair of fabric side chairs with solid rubberwood frames"),
			},
		},
	}
}

// Resolve maps a free-text query to a category key by substring match
// against each category's term list, in category order. Queries that
// match no term resolve to the default category.
func (c *Catalog) Resolve(query string) string {
	q := strings.ToLower(query)

	for _, category := range c.order {
		for _, term := range c.terms[category] {
			if strings.Contains(q, term) {
				return category
			}
		}
	}

	return defaultCategory
}

// Lookup returns the first limit items of the category resolved from
// the query.
func (c *Catalog) Lookup(query string, limit int) []models.Item {
	products := c.products[c.Resolve(query)]

	if limit > len(products) {
		limit = len(products)
	}

	out := make([]models.Item, limit)
	copy(out, products[:limit])
	return out
}

// Find returns the catalog item with the given id.
func (c *Catalog) Find(id string) (models.Item, bool) {
	for _, category := range c.order {
		for _, p := range c.products[category] {
			if p.ID == id {
				return p, true
			}
		}
	}
	return models.Item{}, false
}

// Categories returns the ordered category keys.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

func item(id, name string, price, originalPrice, rating float64, reviews int, url, imageURL, description string) models.Item {
	discount := models.Discount(price, originalPrice)

	return models.Item{
		ID:              id,
		Name:            name,
		Price:           &price,
		OriginalPrice:   &originalPrice,
		DiscountPercent: &discount,
		Rating:          &rating,
		ReviewCount:     &reviews,
		Availability:    models.DefaultAvailability,
		URL:             url,
		ImageURL:        imageURL,
		Description:     description,
		Provenance:      models.ProvenanceFallback,
	}
}

package catalog

import "github.com/dtroode/shopfront/internal/model"

// Facets lists the filter options a user can pick from.
type Facets struct {
	Categories    []string
	Brands        []string
	PriceOptions  []model.Range
	RatingOptions []model.Range
}

// FacetsOf collects distinct categories and brands in first-appearance order.
// Products without a brand contribute no brand option.
func FacetsOf(products []model.Product) Facets {
	f := Facets{
		Categories:    []string{},
		Brands:        []string{},
		PriceOptions:  model.PriceOptions,
		RatingOptions: model.RatingOptions,
	}

	seenCategory := make(map[string]struct{})
	seenBrand := make(map[string]struct{})
	for _, p := range products {
		if _, ok := seenCategory[p.Category]; !ok && p.Category != "" {
			seenCategory[p.Category] = struct{}{}
			f.Categories = append(f.Categories, p.Category)
		}
		if _, ok := seenBrand[p.Brand]; !ok && p.Brand != "" {
			seenBrand[p.Brand] = struct{}{}
			f.Brands = append(f.Brands, p.Brand)
		}
	}

	return f
}

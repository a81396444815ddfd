package catalog

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dtroode/shopfront/internal/model"
)

// Query is the user-controlled input of the pipeline.
type Query struct {
	Search  string
	Filters model.FilterSet
	Sort    model.SortKey
}

// Pipeline derives the ordered result list from a catalog snapshot.
// It holds no mutable state and is safe for concurrent use.
type Pipeline struct {
	tag language.Tag
}

// NewPipeline creates a Pipeline that orders names by the rules of tag.
func NewPipeline(tag language.Tag) *Pipeline {
	return &Pipeline{tag: tag}
}

var defaultPipeline = NewPipeline(language.English)

// Apply runs the default English pipeline.
func Apply(products []model.Product, q Query) []model.Product {
	return defaultPipeline.Apply(products, q)
}

// Apply searches, filters and sorts products. The input is not modified.
func (p *Pipeline) Apply(products []model.Product, q Query) []model.Product {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(q.Search))

	result := make([]model.Product, 0, len(products))
	for _, product := range products {
		if needle != "" && !matchesSearch(fold, product, needle) {
			continue
		}
		if !matchesFilters(product, q.Filters) {
			continue
		}
		result = append(result, product)
	}

	if cmp := p.comparator(q.Sort); cmp != nil {
		slices.SortStableFunc(result, cmp)
	}

	return result
}

func matchesSearch(fold cases.Caser, p model.Product, needle string) bool {
	return strings.Contains(fold.String(p.Title), needle) ||
		strings.Contains(fold.String(p.Description), needle)
}

func matchesFilters(p model.Product, f model.FilterSet) bool {
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, p.Category) {
		return false
	}
	if len(f.Brands) > 0 && !slices.Contains(f.Brands, p.Brand) {
		return false
	}
	if len(f.PriceRanges) > 0 && !anyContains(f.PriceRanges, p.Price) {
		return false
	}
	if len(f.RatingRanges) > 0 && !anyContains(f.RatingRanges, p.Rating) {
		return false
	}
	return true
}

func anyContains(ranges []model.Range, v float64) bool {
	return slices.ContainsFunc(ranges, func(r model.Range) bool {
		return r.Contains(v)
	})
}

// comparator returns nil for unknown keys, leaving the filtered order as is.
// A collator is not safe for concurrent use, so each call builds its own.
func (p *Pipeline) comparator(key model.SortKey) func(a, b model.Product) int {
	switch key {
	case model.SortNameAsc:
		c := collate.New(p.tag)
		return func(a, b model.Product) int {
			return c.CompareString(a.Title, b.Title)
		}
	case model.SortNameDesc:
		c := collate.New(p.tag)
		return func(a, b model.Product) int {
			return c.CompareString(b.Title, a.Title)
		}
	case model.SortPriceAsc:
		return func(a, b model.Product) int {
			return compareFloat(a.Price, b.Price)
		}
	case model.SortPriceDesc:
		return func(a, b model.Product) int {
			return compareFloat(b.Price, a.Price)
		}
	default:
		return nil
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

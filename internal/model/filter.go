package model

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Range is a closed numeric interval. Max may be +Inf for an open upper bound.
type Range struct {
	Min float64
	Max float64
}

// Between returns the closed range [min, max].
func Between(min, max float64) Range {
	return Range{Min: min, Max: max}
}

// AtLeast returns the range [min, +Inf).
func AtLeast(min float64) Range {
	return Range{Min: min, Max: math.Inf(1)}
}

// Unbounded reports whether the range has no upper bound.
func (r Range) Unbounded() bool {
	return math.IsInf(r.Max, 1)
}

// Contains reports whether v lies within the range, bounds included.
func (r Range) Contains(v float64) bool {
	if v < r.Min {
		return false
	}
	return r.Unbounded() || v <= r.Max
}

func (r Range) String() string {
	if r.Unbounded() {
		return fmt.Sprintf("%g+", r.Min)
	}
	return fmt.Sprintf("%g-%g", r.Min, r.Max)
}

// ParseRange parses the String form of a Range: "51-100" or "201+".
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if lo, ok := strings.CutSuffix(s, "+"); ok {
		lower, err := strconv.ParseFloat(lo, 64)
		if err != nil {
			return Range{}, fmt.Errorf("failed to parse range %q: %w", s, err)
		}
		return AtLeast(lower), nil
	}

	lo, hi, ok := strings.Cut(s, "-")
	if !ok {
		return Range{}, fmt.Errorf("failed to parse range %q: want MIN-MAX or MIN+", s)
	}
	lower, err := strconv.ParseFloat(lo, 64)
	if err != nil {
		return Range{}, fmt.Errorf("failed to parse range %q: %w", s, err)
	}
	upper, err := strconv.ParseFloat(hi, 64)
	if err != nil {
		return Range{}, fmt.Errorf("failed to parse range %q: %w", s, err)
	}
	if upper < lower {
		return Range{}, fmt.Errorf("failed to parse range %q: max below min", s)
	}
	return Between(lower, upper), nil
}

// FilterSet holds the selected values of every catalog facet.
// An empty facet imposes no constraint.
type FilterSet struct {
	Categories   []string
	Brands       []string
	PriceRanges  []Range
	RatingRanges []Range
}

// IsEmpty reports whether no facet has a selection.
func (f FilterSet) IsEmpty() bool {
	return len(f.Categories) == 0 && len(f.Brands) == 0 &&
		len(f.PriceRanges) == 0 && len(f.RatingRanges) == 0
}

// Equal reports whether both sets select the same values in the same order.
func (f FilterSet) Equal(other FilterSet) bool {
	return slices.Equal(f.Categories, other.Categories) &&
		slices.Equal(f.Brands, other.Brands) &&
		slices.Equal(f.PriceRanges, other.PriceRanges) &&
		slices.Equal(f.RatingRanges, other.RatingRanges)
}

// Merge returns f with every non-nil facet of u replacing the current one.
func (f FilterSet) Merge(u FilterUpdate) FilterSet {
	if u.Categories != nil {
		f.Categories = *u.Categories
	}
	if u.Brands != nil {
		f.Brands = *u.Brands
	}
	if u.PriceRanges != nil {
		f.PriceRanges = *u.PriceRanges
	}
	if u.RatingRanges != nil {
		f.RatingRanges = *u.RatingRanges
	}
	return f
}

// FilterUpdate is a partial FilterSet; nil facets are left untouched.
type FilterUpdate struct {
	Categories   *[]string
	Brands       *[]string
	PriceRanges  *[]Range
	RatingRanges *[]Range
}

// PriceOptions are the price ranges offered to the user.
var PriceOptions = []Range{
	Between(0, 50),
	Between(51, 100),
	Between(101, 200),
	AtLeast(201),
}

// RatingOptions are the minimum-rating ranges offered to the user.
var RatingOptions = []Range{
	AtLeast(1),
	AtLeast(2),
	AtLeast(3),
	AtLeast(4),
	AtLeast(5),
}

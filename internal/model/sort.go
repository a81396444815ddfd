package model

import "fmt"

// SortKey selects the ordering of catalog results.
type SortKey string

const (
	SortNameAsc   SortKey = "nameAsc"
	SortNameDesc  SortKey = "nameDesc"
	SortPriceAsc  SortKey = "priceAsc"
	SortPriceDesc SortKey = "priceDesc"
)

// DefaultSortKey is used until the user picks another ordering.
const DefaultSortKey = SortNameAsc

// ParseSortKey validates s as a SortKey.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case SortNameAsc, SortNameDesc, SortPriceAsc, SortPriceDesc:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSortKey, s)
	}
}

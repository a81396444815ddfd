package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRange_Contains(t *testing.T) {
	tests := []struct {
		name string
		r    Range
		v    float64
		want bool
	}{
		{name: "lower bound inclusive", r: Between(0, 50), v: 0, want: true},
		{name: "upper bound inclusive", r: Between(0, 50), v: 50, want: true},
		{name: "above upper bound", r: Between(0, 50), v: 50.01, want: false},
		{name: "below lower bound", r: Between(51, 100), v: 50.5, want: false},
		{name: "unbounded passes large values", r: AtLeast(201), v: 1e9, want: true},
		{name: "unbounded still checks min", r: AtLeast(4), v: 3.99, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.Contains(tt.v))
		})
	}
}

func TestRange_String(t *testing.T) {
	assert.Equal(t, "0-50", Between(0, 50).String())
	assert.Equal(t, "201+", AtLeast(201).String())
}

func TestFilterSet_Merge(t *testing.T) {
	base := FilterSet{
		Categories:  []string{"beauty"},
		Brands:      []string{"Essence"},
		PriceRanges: []Range{Between(0, 50)},
	}

	brands := []string{}
	ratings := []Range{AtLeast(4)}
	merged := base.Merge(FilterUpdate{Brands: &brands, RatingRanges: &ratings})

	assert.Equal(t, []string{"beauty"}, merged.Categories)
	assert.Empty(t, merged.Brands)
	assert.Equal(t, []Range{Between(0, 50)}, merged.PriceRanges)
	assert.Equal(t, []Range{AtLeast(4)}, merged.RatingRanges)
	assert.Equal(t, []string{"Essence"}, base.Brands)
}

func TestFilterSet_EqualAndEmpty(t *testing.T) {
	assert.True(t, FilterSet{}.IsEmpty())
	assert.False(t, FilterSet{Brands: []string{"Apple"}}.IsEmpty())

	a := FilterSet{PriceRanges: []Range{AtLeast(201)}}
	b := FilterSet{PriceRanges: []Range{AtLeast(201)}}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(FilterSet{}))
}

func TestParseSortKey(t *testing.T) {
	for _, s := range []string{"nameAsc", "nameDesc", "priceAsc", "priceDesc"} {
		k, err := ParseSortKey(s)
		require.NoError(t, err)
		assert.Equal(t, SortKey(s), k)
	}

	_, err := ParseSortKey("ratingAsc")
	require.ErrorIs(t, err, ErrInvalidSortKey)
}

func TestProduct_Derived(t *testing.T) {
	p := Product{Price: 9.99, DiscountPercentage: 7.17, Stock: 0}
	assert.Equal(t, 9.27, p.DiscountedPrice())
	assert.False(t, p.InStock())

	p.Stock = 5
	assert.True(t, p.InStock())
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		in      string
		want    Range
		wantErr bool
	}{
		{in: "0-50", want: Between(0, 50)},
		{in: " 51-100 ", want: Between(51, 100)},
		{in: "201+", want: AtLeast(201)},
		{in: "4.5+", want: AtLeast(4.5)},
		{in: "50-0", wantErr: true},
		{in: "cheap", wantErr: true},
		{in: "a-5", wantErr: true},
		{in: "+", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRange(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, strings.TrimSpace(tt.in), got.String())
		})
	}
}

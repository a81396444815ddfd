package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/dtroode/shopfront/internal/catalog"
	"github.com/dtroode/shopfront/internal/mocks"
	"github.com/dtroode/shopfront/internal/model"
	"github.com/dtroode/shopfront/internal/testutil"
)

func newTestCatalog(t *testing.T, products []model.Product) (*Catalog, *mocks.ProductSource) {
	t.Helper()

	source := mocks.NewProductSource(t)
	source.On("Products").Return(products).Maybe()
	source.On("Loading").Return(false).Maybe()

	return NewCatalog(source, catalog.NewPipeline(language.English), 20, testutil.MakeNoopLogger()), source
}

func TestCatalog_InitialView(t *testing.T) {
	c, _ := newTestCatalog(t, testutil.NewProducts(45))

	v := c.View()
	assert.Equal(t, ViewModeGrid, v.Mode)
	assert.Len(t, v.Products, 20)
	assert.Equal(t, 45, v.Total)
	assert.Equal(t, 1, v.PageCount)
	assert.True(t, v.HasMore)
	assert.True(t, v.ShowFilters)
	assert.Nil(t, v.Selected)
	assert.Equal(t, model.SortNameAsc, v.Query.Sort)
	assert.Equal(t, "Product 001", v.Products[0].Title)
}

func TestCatalog_ScrollRevealsPages(t *testing.T) {
	c, _ := newTestCatalog(t, testutil.NewProducts(45))

	assert.True(t, c.Scroll(150))
	assert.Len(t, c.View().Products, 40)

	assert.False(t, c.Scroll(120))
	assert.False(t, c.Scroll(1000))
	assert.True(t, c.Scroll(0))

	v := c.View()
	assert.Len(t, v.Products, 45)
	assert.False(t, v.HasMore)
	assert.Equal(t, 3, v.PageCount)
}

func TestCatalog_QueryChangesResetWindow(t *testing.T) {
	products := testutil.NewProducts(45)
	products[3].Category = "lamps"

	tests := []struct {
		name   string
		change func(c *Catalog)
		reset  bool
	}{
		{name: "search", change: func(c *Catalog) { c.SetSearch("product") }, reset: true},
		{name: "same search", change: func(c *Catalog) { c.SetSearch("") }, reset: false},
		{name: "sort", change: func(c *Catalog) { c.SetSort(model.SortPriceDesc) }, reset: true},
		{name: "same sort", change: func(c *Catalog) { c.SetSort(model.SortNameAsc) }, reset: false},
		{
			name:   "filters",
			change: func(c *Catalog) { c.SetFilters(model.FilterSet{Categories: []string{"misc"}}) },
			reset:  true,
		},
		{name: "same filters", change: func(c *Catalog) { c.SetFilters(model.FilterSet{}) }, reset: false},
		{
			name: "filter update",
			change: func(c *Catalog) {
				prices := []model.Range{model.Between(0, 50)}
				c.UpdateFilters(model.FilterUpdate{PriceRanges: &prices})
			},
			reset: true,
		},
		{name: "empty filter update", change: func(c *Catalog) { c.UpdateFilters(model.FilterUpdate{}) }, reset: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCatalog(t, products)
			require.True(t, c.Scroll(0))
			require.Equal(t, 2, c.View().PageCount)

			tt.change(c)

			if tt.reset {
				assert.Equal(t, 1, c.View().PageCount)
			} else {
				assert.Equal(t, 2, c.View().PageCount)
			}
		})
	}
}

func TestCatalog_QueryAppliedToView(t *testing.T) {
	products := []model.Product{
		{ID: 1, Title: "Apple", Price: 10, Category: "fruit"},
		{ID: 2, Title: "Banana", Price: 5, Category: "fruit"},
		{ID: 3, Title: "Carrot", Price: 75, Category: "vegetables"},
	}
	c, _ := newTestCatalog(t, products)

	c.SetSort(model.SortPriceAsc)
	assert.Equal(t, []string{"Banana", "Apple", "Carrot"}, titlesOf(c.View().Products))

	c.SetFilters(model.FilterSet{PriceRanges: []model.Range{model.Between(0, 50)}})
	assert.Equal(t, []string{"Banana", "Apple"}, titlesOf(c.View().Products))

	categories := []string{"vegetables"}
	c.UpdateFilters(model.FilterUpdate{Categories: &categories})
	v := c.View()
	assert.Empty(t, v.Products)
	assert.Equal(t, 0, v.Total)
	assert.Equal(t, []string{"vegetables"}, v.Query.Filters.Categories)
	assert.Len(t, v.Query.Filters.PriceRanges, 1)

	c.SetFilters(model.FilterSet{})
	c.SetSearch("an")
	c.SetSort(model.SortNameAsc)
	assert.Equal(t, []string{"Banana"}, titlesOf(c.View().Products))
}

func TestCatalog_SelectAndClear(t *testing.T) {
	c, _ := newTestCatalog(t, testutil.NewProducts(45))
	require.True(t, c.Scroll(0))

	p, err := c.Select(30)
	require.NoError(t, err)
	assert.Equal(t, 30, p.ID)

	v := c.View()
	assert.Equal(t, ViewModeDetail, v.Mode)
	assert.Empty(t, v.Products)
	assert.False(t, v.ShowFilters)
	require.NotNil(t, v.Selected)
	assert.Equal(t, 30, v.Selected.ID)

	// scrolling has no effect on the detail view
	assert.False(t, c.Scroll(0))

	c.ClearSelection()
	v = c.View()
	assert.Equal(t, ViewModeGrid, v.Mode)
	assert.Equal(t, 2, v.PageCount)
	assert.Len(t, v.Products, 40)
}

func TestCatalog_SelectUnknownProduct(t *testing.T) {
	c, _ := newTestCatalog(t, testutil.NewProducts(3))

	_, err := c.Select(99)
	require.ErrorIs(t, err, model.ErrProductNotFound)
	assert.Equal(t, ViewModeGrid, c.View().Mode)
}

func TestCatalog_SelectionSurvivesQueryChanges(t *testing.T) {
	c, _ := newTestCatalog(t, testutil.NewProducts(5))

	_, err := c.Select(2)
	require.NoError(t, err)

	c.SetSearch("nothing matches")
	v := c.View()
	assert.Equal(t, ViewModeDetail, v.Mode)
	assert.Equal(t, 2, v.Selected.ID)
	assert.Equal(t, 0, v.Total)
}

func TestCatalog_Load(t *testing.T) {
	c, source := newTestCatalog(t, nil)
	source.On("EnsureLoaded", mock.Anything).Return([]model.Product{}, nil).Once()

	require.NoError(t, c.Load(context.Background()))
}

func TestCatalog_ReloadResetsWindow(t *testing.T) {
	c, source := newTestCatalog(t, testutil.NewProducts(45))
	fetchErr := errors.New("offline")
	source.On("Load", mock.Anything).Return(nil, errors.Join(model.ErrFetch, fetchErr)).Once()

	require.True(t, c.Scroll(0))
	err := c.Reload(context.Background())
	require.ErrorIs(t, err, model.ErrFetch)
	assert.Equal(t, 1, c.View().PageCount)
}

func TestCatalog_LoadingFlag(t *testing.T) {
	source := mocks.NewProductSource(t)
	source.On("Products").Return([]model.Product{})
	source.On("Loading").Return(true)

	c := NewCatalog(source, catalog.NewPipeline(language.English), 20, testutil.MakeNoopLogger())
	v := c.View()
	assert.True(t, v.Loading)
	assert.Empty(t, v.Products)
	assert.False(t, v.HasMore)
}

func TestCatalog_Facets(t *testing.T) {
	products := []model.Product{
		{ID: 1, Category: "beauty", Brand: "Essence"},
		{ID: 2, Category: "furniture"},
	}
	c, _ := newTestCatalog(t, products)

	f := c.Facets()
	assert.Equal(t, []string{"beauty", "furniture"}, f.Categories)
	assert.Equal(t, []string{"Essence"}, f.Brands)
	assert.Equal(t, model.PriceOptions, f.PriceOptions)
}

func titlesOf(products []model.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Title)
	}
	return out
}

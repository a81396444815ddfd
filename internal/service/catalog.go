package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/dtroode/shopfront/internal/catalog"
	"github.com/dtroode/shopfront/internal/logger"
	"github.com/dtroode/shopfront/internal/model"
)

// ViewMode tells whether the grid or a single product is shown.
type ViewMode string

const (
	ViewModeGrid   ViewMode = "grid"
	ViewModeDetail ViewMode = "detail"
)

// View is what the products page shows at a point in time.
type View struct {
	Mode        ViewMode
	Products    []model.Product
	Total       int
	PageCount   int
	HasMore     bool
	Loading     bool
	ShowFilters bool
	Selected    *model.Product
	Query       catalog.Query
}

// Catalog holds the products page state: query inputs, the pagination
// window and the selected product.
type Catalog struct {
	mu        sync.Mutex
	source    model.ProductSource
	pipeline  *catalog.Pipeline
	query     catalog.Query
	window    *catalog.Window
	selection catalog.Selection
	logger    *logger.Logger
}

func NewCatalog(source model.ProductSource, pipeline *catalog.Pipeline, pageSize int, logger *logger.Logger) *Catalog {
	return &Catalog{
		source:   source,
		pipeline: pipeline,
		query:    catalog.Query{Sort: model.DefaultSortKey},
		window:   catalog.NewWindow(pageSize),
		logger:   logger,
	}
}

// Load fetches the catalog unless it was already fetched.
func (c *Catalog) Load(ctx context.Context) error {
	_, err := c.source.EnsureLoaded(ctx)
	return err
}

// Reload fetches the catalog again and returns to the first page.
func (c *Catalog) Reload(ctx context.Context) error {
	_, err := c.source.Load(ctx)

	c.mu.Lock()
	c.window.Reset()
	c.mu.Unlock()

	return err
}

func (c *Catalog) SetSearch(search string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.query.Search == search {
		return
	}
	c.query.Search = search
	c.window.Reset()
}

func (c *Catalog) SetFilters(filters model.FilterSet) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setFilters(filters)
}

// UpdateFilters replaces only the facets present in u.
func (c *Catalog) UpdateFilters(u model.FilterUpdate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setFilters(c.query.Filters.Merge(u))
}

func (c *Catalog) setFilters(filters model.FilterSet) {
	if c.query.Filters.Equal(filters) {
		return
	}
	c.query.Filters = filters
	c.window.Reset()
}

func (c *Catalog) SetSort(key model.SortKey) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.query.Sort == key {
		return
	}
	c.query.Sort = key
	c.window.Reset()
}

// Scroll reports a scroll position as the distance to the bottom of the
// grid and returns whether another page was revealed.
func (c *Catalog) Scroll(distanceToBottom float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.selection.Active() {
		return false
	}

	total := len(c.pipeline.Apply(c.source.Products(), c.query))
	advanced := c.window.Advance(total, distanceToBottom)
	if advanced {
		c.logger.Debug("Catalog service: next page revealed",
			"page_count", c.window.PageCount(),
			"total", total)
	}

	return advanced
}

// Select switches to the detail view of the product with the given id.
func (c *Catalog) Select(id int) (model.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.source.Products() {
		if p.ID == id {
			c.selection.Select(p)
			return p, nil
		}
	}

	return model.Product{}, fmt.Errorf("%w: %d", model.ErrProductNotFound, id)
}

// ClearSelection returns to the grid view.
func (c *Catalog) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.selection.Clear()
}

func (c *Catalog) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := c.pipeline.Apply(c.source.Products(), c.query)

	v := View{
		Total:     len(result),
		PageCount: c.window.PageCount(),
		HasMore:   c.window.HasMore(len(result)),
		Loading:   c.source.Loading(),
		Query:     c.query,
	}

	if p, ok := c.selection.Selected(); ok {
		v.Mode = ViewModeDetail
		v.Products = []model.Product{}
		v.Selected = &p
		return v
	}

	v.Mode = ViewModeGrid
	v.Products = c.window.Visible(result)
	v.ShowFilters = true

	return v
}

// Facets returns the filter options for the loaded catalog.
func (c *Catalog) Facets() catalog.Facets {
	return catalog.FacetsOf(c.source.Products())
}

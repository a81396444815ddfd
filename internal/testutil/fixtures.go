package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dtroode/shopfront/internal/model"
)

// NewProduct returns a product with the given title and price and plausible
// values for every other field.
func NewProduct(id int, title string, price float64) model.Product {
	return model.Product{
		ID:                 id,
		Title:              title,
		Description:        fmt.Sprintf("Description of %s", title),
		Price:              price,
		DiscountPercentage: 10,
		Rating:             4.5,
		Stock:              10,
		Brand:              "Generic",
		Category:           "misc",
		Thumbnail:          fmt.Sprintf("https://cdn.example.com/%d/thumbnail.png", id),
		Images:             []string{fmt.Sprintf("https://cdn.example.com/%d/1.png", id)},
	}
}

// NewProducts returns n products titled "Product 001".."Product n" priced 1..n.
func NewProducts(n int) []model.Product {
	products := make([]model.Product, 0, n)
	for i := 1; i <= n; i++ {
		products = append(products, NewProduct(i, fmt.Sprintf("Product %03d", i), float64(i)))
	}
	return products
}

// NewCatalogServer serves products the way the catalog API does and counts
// the requests it receives.
func NewCatalogServer(t *testing.T, products []model.Product) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/products" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(map[string]any{
			"products": products,
			"total":    len(products),
			"skip":     0,
			"limit":    r.URL.Query().Get("limit"),
		})
		require.NoError(t, err)
	}))
	t.Cleanup(srv.Close)

	return srv, &hits
}

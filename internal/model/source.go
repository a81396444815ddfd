package model

import "context"

// ProductSource provides the product catalog snapshot.
type ProductSource interface {
	Load(ctx context.Context) ([]Product, error)
	EnsureLoaded(ctx context.Context) ([]Product, error)
	Products() []Product
	Loading() bool
}

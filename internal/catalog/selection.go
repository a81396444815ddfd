package catalog

import "github.com/dtroode/shopfront/internal/model"

// Selection holds the product shown in detail view, if any.
// The zero value has nothing selected.
type Selection struct {
	product *model.Product
}

func (s *Selection) Select(p model.Product) {
	s.product = &p
}

func (s *Selection) Clear() {
	s.product = nil
}

func (s *Selection) Selected() (model.Product, bool) {
	if s.product == nil {
		return model.Product{}, false
	}
	return *s.product, true
}

func (s *Selection) Active() bool {
	return s.product != nil
}

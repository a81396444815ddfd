package handler

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/shopfront/internal/catalog"
	"github.com/dtroode/shopfront/internal/model"
	"github.com/dtroode/shopfront/internal/service"
)

var errInvalidArgument = errors.New("invalid argument")

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errInvalidArgument, fmt.Sprintf(format, args...))
}

func stringField(req *structpb.Struct, name string) (string, bool, error) {
	v, ok := req.GetFields()[name]
	if !ok {
		return "", false, nil
	}
	s, isString := v.GetKind().(*structpb.Value_StringValue)
	if !isString {
		return "", false, invalidArgument("%s must be a string", name)
	}
	return s.StringValue, true, nil
}

func requiredString(req *structpb.Struct, name string) (string, error) {
	s, ok, err := stringField(req, name)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", invalidArgument("%s is required", name)
	}
	return s, nil
}

func numberField(req *structpb.Struct, name string) (float64, bool, error) {
	v, ok := req.GetFields()[name]
	if !ok {
		return 0, false, nil
	}
	n, isNumber := v.GetKind().(*structpb.Value_NumberValue)
	if !isNumber {
		return 0, false, invalidArgument("%s must be a number", name)
	}
	return n.NumberValue, true, nil
}

// maxExactInt is the largest magnitude a float64 holds without losing integers.
const maxExactInt = 1 << 53

func intField(req *structpb.Struct, name string) (int, bool, error) {
	n, ok, err := numberField(req, name)
	if err != nil || !ok {
		return 0, ok, err
	}
	if n != math.Trunc(n) || math.Abs(n) > maxExactInt {
		return 0, false, invalidArgument("%s must be an integer", name)
	}
	return int(n), true, nil
}

func stringList(req *structpb.Struct, name string) (*[]string, error) {
	v, ok := req.GetFields()[name]
	if !ok {
		return nil, nil
	}
	list, isList := v.GetKind().(*structpb.Value_ListValue)
	if !isList {
		return nil, invalidArgument("%s must be a list", name)
	}

	out := make([]string, 0, len(list.ListValue.GetValues()))
	for _, item := range list.ListValue.GetValues() {
		s, isString := item.GetKind().(*structpb.Value_StringValue)
		if !isString {
			return nil, invalidArgument("%s must contain strings", name)
		}
		out = append(out, s.StringValue)
	}
	return &out, nil
}

func rangeList(req *structpb.Struct, name string) (*[]model.Range, error) {
	v, ok := req.GetFields()[name]
	if !ok {
		return nil, nil
	}
	list, isList := v.GetKind().(*structpb.Value_ListValue)
	if !isList {
		return nil, invalidArgument("%s must be a list", name)
	}

	out := make([]model.Range, 0, len(list.ListValue.GetValues()))
	for _, item := range list.ListValue.GetValues() {
		obj, isStruct := item.GetKind().(*structpb.Value_StructValue)
		if !isStruct {
			return nil, invalidArgument("%s must contain objects", name)
		}
		lo, hasMin, err := numberField(obj.StructValue, "min")
		if err != nil {
			return nil, err
		}
		if !hasMin {
			return nil, invalidArgument("%s entries need a min", name)
		}
		hi, hasMax, err := numberField(obj.StructValue, "max")
		if err != nil {
			return nil, err
		}
		if hasMax {
			out = append(out, model.Between(lo, hi))
		} else {
			out = append(out, model.AtLeast(lo))
		}
	}
	return &out, nil
}

func filterUpdateFromStruct(req *structpb.Struct) (model.FilterUpdate, error) {
	var (
		u   model.FilterUpdate
		err error
	)
	if u.Categories, err = stringList(req, "categories"); err != nil {
		return u, err
	}
	if u.Brands, err = stringList(req, "brands"); err != nil {
		return u, err
	}
	if u.PriceRanges, err = rangeList(req, "priceRanges"); err != nil {
		return u, err
	}
	if u.RatingRanges, err = rangeList(req, "ratingRanges"); err != nil {
		return u, err
	}
	return u, nil
}

func toStruct(m map[string]any) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("failed to build response: %w", err)
	}
	return s, nil
}

func stringValues(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

func rangeValue(r model.Range) map[string]any {
	m := map[string]any{"min": r.Min, "label": r.String()}
	if !r.Unbounded() {
		m["max"] = r.Max
	}
	return m
}

func rangeValues(ranges []model.Range) []any {
	out := make([]any, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, rangeValue(r))
	}
	return out
}

func userValue(u model.User) map[string]any {
	return map[string]any{
		"id":       u.ID.String(),
		"fullName": u.FullName,
		"email":    u.Email,
	}
}

func productValue(p model.Product) map[string]any {
	return map[string]any{
		"id":                 p.ID,
		"title":              p.Title,
		"description":        p.Description,
		"price":              p.Price,
		"discountPercentage": p.DiscountPercentage,
		"discountedPrice":    p.DiscountedPrice(),
		"rating":             p.Rating,
		"stock":              p.Stock,
		"inStock":            p.InStock(),
		"brand":              p.Brand,
		"category":           p.Category,
		"thumbnail":          p.Thumbnail,
		"images":             stringValues(p.Images),
	}
}

func queryValue(q catalog.Query) map[string]any {
	return map[string]any{
		"search": q.Search,
		"sort":   string(q.Sort),
		"filters": map[string]any{
			"categories":   stringValues(q.Filters.Categories),
			"brands":       stringValues(q.Filters.Brands),
			"priceRanges":  rangeValues(q.Filters.PriceRanges),
			"ratingRanges": rangeValues(q.Filters.RatingRanges),
		},
	}
}

func viewValue(v service.View) map[string]any {
	products := make([]any, 0, len(v.Products))
	for _, p := range v.Products {
		products = append(products, productValue(p))
	}

	m := map[string]any{
		"mode":        string(v.Mode),
		"products":    products,
		"total":       v.Total,
		"pageCount":   v.PageCount,
		"hasMore":     v.HasMore,
		"loading":     v.Loading,
		"showFilters": v.ShowFilters,
		"query":       queryValue(v.Query),
	}
	if v.Selected != nil {
		m["selected"] = productValue(*v.Selected)
	}
	return m
}

func facetsValue(f catalog.Facets) map[string]any {
	return map[string]any{
		"categories":    stringValues(f.Categories),
		"brands":        stringValues(f.Brands),
		"priceOptions":  rangeValues(f.PriceOptions),
		"ratingOptions": rangeValues(f.RatingOptions),
	}
}

package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dtroode/shopfront/internal/catalog"
	"github.com/dtroode/shopfront/internal/model"
	"github.com/dtroode/shopfront/internal/service"
)

type productsOptions struct {
	search     string
	categories []string
	brands     []string
	prices     []string
	ratings    []string
	sort       string
	pages      int
	selectID   int
	facets     bool
}

func (c *cli) productsCmd() *cobra.Command {
	var opts productsOptions

	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse the product catalog",
		Long: `Fetches the catalog and prints the first page of results.

Facets combine with AND; values of one facet combine with OR.
Price and rating ranges are written MIN-MAX or MIN+, for example
--price 0-50 --price 201+ --rating 4+.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.products(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.search, "search", "", "text to find in title or description")
	f.StringSliceVar(&opts.categories, "category", nil, "category to include (repeatable)")
	f.StringSliceVar(&opts.brands, "brand", nil, "brand to include (repeatable)")
	f.StringSliceVar(&opts.prices, "price", nil, "price range to include (repeatable)")
	f.StringSliceVar(&opts.ratings, "rating", nil, "rating range to include (repeatable)")
	f.StringVar(&opts.sort, "sort", string(model.DefaultSortKey), "nameAsc, nameDesc, priceAsc or priceDesc")
	f.IntVar(&opts.pages, "pages", 1, "number of pages to show")
	f.IntVar(&opts.selectID, "select", 0, "show the product with this id")
	f.BoolVar(&opts.facets, "facets", false, "list the available filter values")

	return cmd
}

func (c *cli) products(cmd *cobra.Command, opts productsOptions) error {
	if err := c.app.checkRoute(model.RouteProducts); err != nil {
		return err
	}

	sortKey, err := model.ParseSortKey(opts.sort)
	if err != nil {
		return err
	}
	prices, err := parseRanges(opts.prices)
	if err != nil {
		return err
	}
	ratings, err := parseRanges(opts.ratings)
	if err != nil {
		return err
	}

	view := c.app.catalog
	if err := view.Load(cmd.Context()); err != nil {
		return err
	}

	if opts.facets {
		printFacets(c.out, view.Facets())
		return nil
	}

	view.SetSearch(opts.search)
	view.SetSort(sortKey)
	view.SetFilters(model.FilterSet{
		Categories:   opts.categories,
		Brands:       opts.brands,
		PriceRanges:  prices,
		RatingRanges: ratings,
	})

	// each page is revealed by leaving and re-entering the bottom threshold
	for i := 1; i < opts.pages; i++ {
		view.Scroll(catalog.ScrollThreshold + 1)
		if !view.Scroll(0) {
			break
		}
	}

	if opts.selectID != 0 {
		if _, err := view.Select(opts.selectID); err != nil {
			return err
		}
	}

	printView(c.out, view.View())
	return nil
}

func parseRanges(values []string) ([]model.Range, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make([]model.Range, 0, len(values))
	for _, v := range values {
		r, err := model.ParseRange(v)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func printView(w io.Writer, v service.View) {
	if v.Mode == service.ViewModeDetail && v.Selected != nil {
		printProduct(w, *v.Selected)
		return
	}

	if v.Total == 0 {
		fmt.Fprintln(w, "No products found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPRICE\tDISCOUNTED\tRATING\tSTOCK\tBRAND\tCATEGORY")
	for _, p := range v.Products {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%.2f\t%.2f\t%s\t%s\t%s\n",
			p.ID, p.Title, p.Price, p.DiscountedPrice(), p.Rating, stockLabel(p), dash(p.Brand), p.Category)
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "Showing %d of %d", len(v.Products), v.Total)
	if v.HasMore {
		fmt.Fprintf(w, " (use --pages %d for more)", v.PageCount+1)
	}
	fmt.Fprintln(w)
}

func printProduct(w io.Writer, p model.Product) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", p.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", p.Title)
	fmt.Fprintf(tw, "Description:\t%s\n", p.Description)
	fmt.Fprintf(tw, "Price:\t%.2f\n", p.Price)
	fmt.Fprintf(tw, "Discount:\t%.2f%% (now %.2f)\n", p.DiscountPercentage, p.DiscountedPrice())
	fmt.Fprintf(tw, "Rating:\t%.2f\n", p.Rating)
	fmt.Fprintf(tw, "Stock:\t%d (%s)\n", p.Stock, stockLabel(p))
	fmt.Fprintf(tw, "Brand:\t%s\n", dash(p.Brand))
	fmt.Fprintf(tw, "Category:\t%s\n", p.Category)
	fmt.Fprintf(tw, "Images:\t%s\n", strings.Join(p.Images, ", "))
	_ = tw.Flush()
}

func printFacets(w io.Writer, f catalog.Facets) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Categories:\t%s\n", strings.Join(f.Categories, ", "))
	fmt.Fprintf(tw, "Brands:\t%s\n", strings.Join(f.Brands, ", "))
	fmt.Fprintf(tw, "Prices:\t%s\n", joinRanges(f.PriceOptions))
	fmt.Fprintf(tw, "Ratings:\t%s\n", joinRanges(f.RatingOptions))
	_ = tw.Flush()
}

func joinRanges(ranges []model.Range) string {
	labels := make([]string, 0, len(ranges))
	for _, r := range ranges {
		labels = append(labels, r.String())
	}
	return strings.Join(labels, ", ")
}

func stockLabel(p model.Product) string {
	if p.InStock() {
		return "in stock"
	}
	return "out of stock"
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

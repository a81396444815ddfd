package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/dtroode/shopfront/internal/logger"
	"github.com/dtroode/shopfront/internal/model"
)

// DefaultLimit is the number of products requested from the catalog API.
const DefaultLimit = 100

// SourceOptions configures a Source.
type SourceOptions struct {
	// BaseURL is the catalog origin, e.g. https://dummyjson.com.
	BaseURL string
	// Limit is passed as the limit query parameter. Zero means DefaultLimit.
	Limit int
	// AllowInsecureFallback retries over plain http after a transport failure.
	AllowInsecureFallback bool
	// Client performs the requests. Nil means http.DefaultClient.
	Client *http.Client
}

// Source fetches the product catalog once and serves the snapshot.
//
// Products returns either the empty pre-fetch list or a complete snapshot;
// concurrent loads share one request.
type Source struct {
	client      *http.Client
	primaryURL  string
	fallbackURL string
	logger      *logger.Logger

	group    singleflight.Group
	products atomic.Pointer[[]model.Product]
	loading  atomic.Bool
	loaded   atomic.Bool
}

// NewSource creates a Source for the given options.
func NewSource(opts SourceOptions, logger *logger.Logger) (*Source, error) {
	primary, err := productsURL(opts.BaseURL, opts.Limit)
	if err != nil {
		return nil, err
	}

	s := &Source{
		client:     opts.Client,
		primaryURL: primary.String(),
		logger:     logger,
	}
	if s.client == nil {
		s.client = http.DefaultClient
	}

	if opts.AllowInsecureFallback && primary.Scheme == "https" {
		fallback := *primary
		fallback.Scheme = "http"
		s.fallbackURL = fallback.String()
	}

	empty := []model.Product{}
	s.products.Store(&empty)

	return s, nil
}

func productsURL(base string, limit int) (*url.URL, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("failed to parse catalog url: unsupported scheme %q", u.Scheme)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	u = u.JoinPath("products")
	u.RawQuery = url.Values{"limit": []string{strconv.Itoa(limit)}}.Encode()

	return u, nil
}

// Products returns the current snapshot. Callers must not modify it.
func (s *Source) Products() []model.Product {
	return *s.products.Load()
}

// Loading reports whether a fetch is in progress.
func (s *Source) Loading() bool {
	return s.loading.Load()
}

// Loaded reports whether a fetch has completed, successfully or not.
func (s *Source) Loaded() bool {
	return s.loaded.Load()
}

// EnsureLoaded fetches the catalog unless a fetch has already completed.
func (s *Source) EnsureLoaded(ctx context.Context) ([]model.Product, error) {
	if s.loaded.Load() {
		return s.Products(), nil
	}
	return s.Load(ctx)
}

// Load fetches the catalog, replacing the snapshot. On failure the snapshot
// is emptied and the returned error wraps model.ErrFetch. A fetch cut short
// by the caller's context leaves the snapshot and loaded state as they were.
func (s *Source) Load(ctx context.Context) ([]model.Product, error) {
	products, err := s.sharedLoad(ctx)
	if errors.Is(err, errAbandoned) && ctx.Err() == nil {
		// Another caller led the shared fetch and went away.
		products, err = s.sharedLoad(ctx)
	}
	return products, err
}

var errAbandoned = errors.New("fetch abandoned by caller")

func (s *Source) sharedLoad(ctx context.Context) ([]model.Product, error) {
	v, err, _ := s.group.Do("load", func() (any, error) {
		return s.load(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.Product), nil
}

func (s *Source) load(ctx context.Context) ([]model.Product, error) {
	s.loading.Store(true)
	defer s.loading.Store(false)

	s.logger.Debug("Catalog source: fetching products", "url", s.primaryURL)

	products, err := s.fetchWithFallback(ctx)
	if err != nil && ctx.Err() != nil {
		s.logger.Warn("Catalog source: fetch abandoned",
			"url", s.primaryURL,
			"error", err.Error())
		return nil, fmt.Errorf("%w: %w", errAbandoned, err)
	}

	defer s.loaded.Store(true)

	if err != nil {
		empty := []model.Product{}
		s.products.Store(&empty)
		s.logger.Error("Catalog source: failed to load products",
			"url", s.primaryURL,
			"error", err.Error())
		return nil, err
	}

	s.products.Store(&products)
	s.logger.Info("Catalog source: products loaded", "count", len(products))

	return products, nil
}

func (s *Source) fetchWithFallback(ctx context.Context) ([]model.Product, error) {
	products, err := s.fetch(ctx, s.primaryURL)
	if err == nil {
		return products, nil
	}

	var terr *transportError
	if !errors.As(err, &terr) || s.fallbackURL == "" {
		return nil, fmt.Errorf("%w: %w", model.ErrFetch, err)
	}

	s.logger.Warn("Catalog source: primary endpoint failed, retrying over http",
		"url", s.fallbackURL,
		"error", err.Error())

	products, fallbackErr := s.fetch(ctx, s.fallbackURL)
	if fallbackErr != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrFetch, errors.Join(err, fallbackErr))
	}

	return products, nil
}

type transportError struct {
	url string
	err error
}

func (e *transportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.url, e.err)
}

func (e *transportError) Unwrap() error {
	return e.err
}

type productsResponse struct {
	Products []model.Product `json:"products"`
}

func (s *Source) fetch(ctx context.Context, rawURL string) ([]model.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &transportError{url: rawURL, err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &transportError{url: rawURL, err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	var body productsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", rawURL, err)
	}
	if body.Products == nil {
		body.Products = []model.Product{}
	}

	return body.Products, nil
}

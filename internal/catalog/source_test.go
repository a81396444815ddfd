package catalog

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dtroode/shopfront/internal/model"
	"github.com/dtroode/shopfront/internal/testutil"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(req *http.Request, status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}
}

const twoProducts = `{"products":[{"id":1,"title":"Essence Mascara","price":9.99,"brand":"Essence","category":"beauty"},{"id":2,"title":"Eyeshadow Palette","price":19.99,"category":"beauty"}],"total":2,"skip":0,"limit":100}`

func TestNewSource_URL(t *testing.T) {
	var requested []string
	client := &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		requested = append(requested, req.URL.String())
		return jsonResponse(req, http.StatusOK, `{"products":[]}`), nil
	})}

	s, err := NewSource(SourceOptions{BaseURL: "https://dummyjson.com", Client: client}, testutil.MakeNoopLogger())
	require.NoError(t, err)

	_, err = s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"https://dummyjson.com/products?limit=100"}, requested)
}

func TestNewSource_InvalidURL(t *testing.T) {
	_, err := NewSource(SourceOptions{BaseURL: "ftp://example.com"}, testutil.MakeNoopLogger())
	require.Error(t, err)

	_, err = NewSource(SourceOptions{BaseURL: "://"}, testutil.MakeNoopLogger())
	require.Error(t, err)
}

func TestSource_Load(t *testing.T) {
	products := testutil.NewProducts(3)
	srv, hits := testutil.NewCatalogServer(t, products)

	s, err := NewSource(SourceOptions{BaseURL: srv.URL, Limit: 3, Client: srv.Client()}, testutil.MakeNoopLogger())
	require.NoError(t, err)

	assert.Empty(t, s.Products())
	assert.False(t, s.Loaded())
	assert.False(t, s.Loading())

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, products, got)
	assert.Equal(t, products, s.Products())
	assert.True(t, s.Loaded())
	assert.False(t, s.Loading())

	got, err = s.EnsureLoaded(context.Background())
	require.NoError(t, err)
	assert.Equal(t, products, got)
	assert.Equal(t, int32(1), hits.Load())

	_, err = s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestSource_LoadSharesConcurrentRequests(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	var mu sync.Mutex
	calls := 0

	client := &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		once.Do(func() { close(started) })
		<-release
		return jsonResponse(req, http.StatusOK, twoProducts), nil
	})}

	s, err := NewSource(SourceOptions{BaseURL: "https://catalog.test", Client: client}, testutil.MakeNoopLogger())
	require.NoError(t, err)

	const callers = 8
	var wg sync.WaitGroup
	results := make([][]model.Product, callers)
	errs := make([]error, callers)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], errs[0] = s.Load(context.Background())
	}()
	<-started
	assert.True(t, s.Loading())

	for i := 1; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = s.Load(context.Background())
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Len(t, results[i], 2)
	}
	assert.Equal(t, 1, calls)
	assert.False(t, s.Loading())
}

func TestSource_Fallback(t *testing.T) {
	tests := []struct {
		name          string
		allowInsecure bool
		primary       func(*http.Request) (*http.Response, error)
		fallback      func(*http.Request) (*http.Response, error)
		wantErr       bool
		wantRequests  []string
	}{
		{
			name: "primary succeeds",
			primary: func(req *http.Request) (*http.Response, error) {
				return jsonResponse(req, http.StatusOK, twoProducts), nil
			},
			wantRequests: []string{"https"},
		},
		{
			name:          "network error falls back to http",
			allowInsecure: true,
			primary: func(*http.Request) (*http.Response, error) {
				return nil, errors.New("tls handshake failure")
			},
			fallback: func(req *http.Request) (*http.Response, error) {
				return jsonResponse(req, http.StatusOK, twoProducts), nil
			},
			wantRequests: []string{"https", "http"},
		},
		{
			name:          "bad status falls back to http",
			allowInsecure: true,
			primary: func(req *http.Request) (*http.Response, error) {
				return jsonResponse(req, http.StatusBadGateway, ""), nil
			},
			fallback: func(req *http.Request) (*http.Response, error) {
				return jsonResponse(req, http.StatusOK, twoProducts), nil
			},
			wantRequests: []string{"https", "http"},
		},
		{
			name: "fallback disabled",
			primary: func(*http.Request) (*http.Response, error) {
				return nil, errors.New("connection refused")
			},
			wantErr:      true,
			wantRequests: []string{"https"},
		},
		{
			name:          "both attempts fail",
			allowInsecure: true,
			primary: func(*http.Request) (*http.Response, error) {
				return nil, errors.New("connection refused")
			},
			fallback: func(req *http.Request) (*http.Response, error) {
				return jsonResponse(req, http.StatusInternalServerError, ""), nil
			},
			wantErr:      true,
			wantRequests: []string{"https", "http"},
		},
		{
			name:          "malformed body does not fall back",
			allowInsecure: true,
			primary: func(req *http.Request) (*http.Response, error) {
				return jsonResponse(req, http.StatusOK, `{"products":`), nil
			},
			wantErr:      true,
			wantRequests: []string{"https"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer goleak.VerifyNone(t)

			var schemes []string
			client := &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
				schemes = append(schemes, req.URL.Scheme)
				assert.Equal(t, "catalog.test", req.URL.Host)
				assert.Equal(t, "/products", req.URL.Path)
				if req.URL.Scheme == "https" {
					return tt.primary(req)
				}
				require.NotNil(t, tt.fallback, "unexpected fallback request")
				return tt.fallback(req)
			})}

			s, err := NewSource(SourceOptions{
				BaseURL:               "https://catalog.test",
				AllowInsecureFallback: tt.allowInsecure,
				Client:                client,
			}, testutil.MakeNoopLogger())
			require.NoError(t, err)

			got, err := s.Load(context.Background())
			assert.Equal(t, tt.wantRequests, schemes)
			assert.True(t, s.Loaded())
			if tt.wantErr {
				require.ErrorIs(t, err, model.ErrFetch)
				assert.Empty(t, s.Products())
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, 2)
			assert.Equal(t, "Essence Mascara", s.Products()[0].Title)
		})
	}
}

func TestSource_FailureEmptiesSnapshot(t *testing.T) {
	fail := false
	client := &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if fail {
			return nil, errors.New("offline")
		}
		return jsonResponse(req, http.StatusOK, twoProducts), nil
	})}

	s, err := NewSource(SourceOptions{BaseURL: "https://catalog.test", Client: client}, testutil.MakeNoopLogger())
	require.NoError(t, err)

	_, err = s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, s.Products(), 2)

	fail = true
	_, err = s.Load(context.Background())
	require.ErrorIs(t, err, model.ErrFetch)
	assert.Empty(t, s.Products())
	assert.NotNil(t, s.Products())
}

func TestSource_EnsureLoadedAfterFailureDoesNotRetry(t *testing.T) {
	calls := 0
	client := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		calls++
		return nil, errors.New("offline")
	})}

	s, err := NewSource(SourceOptions{BaseURL: "https://catalog.test", Client: client}, testutil.MakeNoopLogger())
	require.NoError(t, err)

	_, err = s.EnsureLoaded(context.Background())
	require.ErrorIs(t, err, model.ErrFetch)

	got, err := s.EnsureLoaded(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 1, calls)
}

func TestSource_ContextCanceled(t *testing.T) {
	defer goleak.VerifyNone(t)

	client := &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		<-req.Context().Done()
		return nil, req.Context().Err()
	})}

	s, err := NewSource(SourceOptions{BaseURL: "https://catalog.test", Client: client}, testutil.MakeNoopLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Load(ctx)
	require.ErrorIs(t, err, model.ErrFetch)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSource_CanceledLoadDoesNotMarkLoaded(t *testing.T) {
	products := testutil.NewProducts(3)
	srv, _ := testutil.NewCatalogServer(t, products)

	s, err := NewSource(SourceOptions{BaseURL: srv.URL, Limit: 3, Client: srv.Client()}, testutil.MakeNoopLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.EnsureLoaded(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, s.Loaded())
	assert.False(t, s.Loading())

	got, err := s.EnsureLoaded(context.Background())
	require.NoError(t, err)
	assert.Equal(t, products, got)
	assert.True(t, s.Loaded())
}

func TestSource_CanceledReloadKeepsSnapshot(t *testing.T) {
	products := testutil.NewProducts(3)
	srv, _ := testutil.NewCatalogServer(t, products)

	s, err := NewSource(SourceOptions{BaseURL: srv.URL, Limit: 3, Client: srv.Client()}, testutil.MakeNoopLogger())
	require.NoError(t, err)

	_, err = s.Load(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Load(ctx)
	require.Error(t, err)
	assert.Equal(t, products, s.Products())
	assert.True(t, s.Loaded())
}

func TestSource_WaiterRetriesWhenLeaderCancels(t *testing.T) {
	started := make(chan struct{})
	var mu sync.Mutex
	calls := 0

	client := &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		mu.Lock()
		calls++
		first := calls == 1
		mu.Unlock()
		if first {
			close(started)
			<-req.Context().Done()
			return nil, req.Context().Err()
		}
		return jsonResponse(req, http.StatusOK, twoProducts), nil
	})}

	s, err := NewSource(SourceOptions{BaseURL: "https://catalog.test", Client: client}, testutil.MakeNoopLogger())
	require.NoError(t, err)

	leaderCtx, cancel := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := s.Load(leaderCtx)
		leaderErr <- err
	}()
	<-started

	waiterDone := make(chan struct{})
	var got []model.Product
	var waiterErr error
	go func() {
		defer close(waiterDone)
		got, waiterErr = s.Load(context.Background())
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()

	require.ErrorIs(t, <-leaderErr, context.Canceled)
	<-waiterDone
	require.NoError(t, waiterErr)
	assert.Len(t, got, 2)
	assert.True(t, s.Loaded())
	assert.Equal(t, 2, calls)
}

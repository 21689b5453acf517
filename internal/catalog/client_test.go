package catalog_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikolayk812/carrito/internal/catalog"
)

const productsBody = `{
	"products": [
		{"id": 1, "title": "Essence Mascara Lash Princess", "price": 9.99, "thumbnail": "https://cdn.example.com/1.webp"},
		{"id": 2, "title": "Eyeshadow Palette with Mirror", "price": 19.99, "thumbnail": "https://cdn.example.com/2.webp"}
	]
}`

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, baseURL string) *catalog.Client {
	t.Helper()
	c, err := catalog.NewClient(baseURL, 12, time.Second)
	require.NoError(t, err)
	return c
}

func TestProducts(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/products", r.URL.Path)
			assert.Equal(t, "12", r.URL.Query().Get("limit"))
			w.Write([]byte(productsBody))
		})

		products, err := newClient(t, srv.URL).Products(t.Context())
		require.NoError(t, err)

		require.Len(t, products, 2)
		assert.Equal(t, int64(1), products[0].ID)
		assert.Equal(t, "Essence Mascara Lash Princess", products[0].Title)
		assert.Equal(t, "$9.99", products[0].Price.Display())
		assert.Equal(t, "https://cdn.example.com/1.webp", products[0].ThumbnailURL)
	})

	t.Run("empty catalog is not an error", func(t *testing.T) {
		srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"products": []}`))
		})

		products, err := newClient(t, srv.URL).Products(t.Context())
		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("non-2xx status", func(t *testing.T) {
		srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := newClient(t, srv.URL).Products(t.Context())
		require.ErrorIs(t, err, catalog.ErrUnavailable)
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("<html>not json</html>"))
		})

		_, err := newClient(t, srv.URL).Products(t.Context())
		require.ErrorIs(t, err, catalog.ErrUnavailable)
	})

	t.Run("negative price in body", func(t *testing.T) {
		srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"products": [{"id": 1, "title": "x", "price": -1}]}`))
		})

		_, err := newClient(t, srv.URL).Products(t.Context())
		require.ErrorIs(t, err, catalog.ErrUnavailable)
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		// Reserved TEST-NET-1 address, nothing listens there.
		c, err := catalog.NewClient("http://192.0.2.1:9", 12, 100*time.Millisecond)
		require.NoError(t, err)

		_, err = c.Products(t.Context())
		require.ErrorIs(t, err, catalog.ErrUnavailable)
	})
}

func TestNewClientValidation(t *testing.T) {
	_, err := catalog.NewClient("", 12, time.Second)
	require.ErrorContains(t, err, "baseURL is empty")

	_, err = catalog.NewClient("https://dummyjson.com", 0, time.Second)
	require.ErrorContains(t, err, "not positive")
}

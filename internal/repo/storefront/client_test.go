package storefront

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Emansafdar26/buysmart-client/internal/config"
	"github.com/Emansafdar26/buysmart-client/internal/gateway"
	"github.com/Emansafdar26/buysmart-client/internal/models"
	"github.com/Emansafdar26/buysmart-client/internal/session"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) Client {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Write([]byte(`{"detail":{"code":1,"data":[
			{"id":1,"name":"AC","price":900,"category_id":2},
			{"id":2,"name":"TV","price":500,"category_id":2,"old_price":650}
		]}}`))
	})
	mux.HandleFunc("/products/search", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"name":"tv"}`, string(body))
		w.Write([]byte(`{"detail":{"code":1,"data":[{"id":2,"name":"TV","price":500,"category_id":2}]}}`))
	})
	mux.HandleFunc("/productsbycategory/2", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if r.URL.Query().Get("subcategory_id") != "7" {
			w.Write([]byte(`{"detail":{"code":0,"error":"unexpected query"}}`))
			return
		}
		w.Write([]byte(`{"detail":{"code":1,"data":[]}}`))
	})
	mux.HandleFunc("/products/5/isfavorite", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		// this route answers with the legacy `resp` envelope
		w.Write([]byte(`{"resp":{"code":1,"data":{"is_favorite":true}}}`))
	})
	mux.HandleFunc("/products/togglefavorite", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req map[string]int64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(5), req["product_id"])
		w.Write([]byte(`{"detail":{"code":1,"data":{"status":"added","is_favorite":true}}}`))
	})
	mux.HandleFunc("/products/favorites/set-price-alert", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"product_id":5,"price_alert":"45000"}`, string(body))
		w.Write([]byte(`{"detail":{"code":1,"message":"alert set"}}`))
	})
	mux.HandleFunc("/products/999", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Write([]byte(`{"detail":{"code":0,"error":"product not found"}}`))
	})
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Write([]byte(`{"detail":{"code":1,"access_token":"tok-1"}}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	conf := &config.Config{}
	conf.Backend.BaseURL = srv.URL
	conf.Backend.Timeout = 2 * time.Second
	gw, err := gateway.NewClient(conf, session.New(session.NewMemoryStore()))
	require.NoError(t, err)
	return NewClient(gw)
}

func TestListAndSearchProducts(t *testing.T) {
	t.Parallel()
	client := newTestClient(t)

	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "AC", products[0].Name)
	require.NotNil(t, products[1].OldPrice)
	assert.Equal(t, "650", products[1].OldPrice.String())

	found, err := client.SearchProducts(context.Background(), "tv")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, int64(2), found[0].ID)
}

func TestListCategoryProductsBuildsQuery(t *testing.T) {
	t.Parallel()
	client := newTestClient(t)

	sub := int64(7)
	_, err := client.ListCategoryProducts(context.Background(), 2, &sub)
	require.NoError(t, err)
}

func TestFavoriteRoutes(t *testing.T) {
	t.Parallel()
	client := newTestClient(t)

	fav, err := client.IsFavorite(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, fav)

	result, err := client.ToggleFavorite(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, models.ToggleAdded, result.Status)
	assert.True(t, result.IsFavorite)

	err = client.SetPriceAlert(context.Background(), 5, decimal.NewFromInt(45000))
	require.NoError(t, err)
}

func TestApplicationErrorSurfacesMessage(t *testing.T) {
	t.Parallel()
	client := newTestClient(t)

	_, err := client.GetProduct(context.Background(), 999)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "product not found", appErr.Message)
}

func TestLoginReturnsAccessToken(t *testing.T) {
	t.Parallel()
	client := newTestClient(t)

	token, err := client.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
}

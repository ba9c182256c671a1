package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Emansafdar26/buysmart-client/internal/config"
	"github.com/Emansafdar26/buysmart-client/internal/models"
	"github.com/Emansafdar26/buysmart-client/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (Client, *session.Session) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sess := session.New(session.NewMemoryStore())
	conf := &config.Config{}
	conf.Backend.BaseURL = srv.URL
	conf.Backend.Timeout = 2 * time.Second

	client, err := NewClient(conf, sess)
	require.NoError(t, err)
	return client, sess
}

func TestGetDetailEnvelope(t *testing.T) {
	t.Parallel()
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		w.Write([]byte(`{"detail":{"code":1,"data":[{"id":1,"name":"AC","price":900,"category_id":2}]}}`))
	}))

	res, err := client.Get(context.Background(), "/products")
	require.NoError(t, err)
	assert.Equal(t, CodeSuccess, res.Code)

	var products []models.Product
	require.NoError(t, res.Decode(&products))
	require.Len(t, products, 1)
	assert.Equal(t, "AC", products[0].Name)
	assert.Equal(t, "900", products[0].Price.String())
}

func TestRespEnvelopeNormalizesLikeDetail(t *testing.T) {
	t.Parallel()
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"resp":{"code":1,"data":{"is_favorite":true}}}`))
	}))

	res, err := client.Get(context.Background(), "/products/5/isfavorite")
	require.NoError(t, err)

	var out struct {
		IsFavorite bool `json:"is_favorite"`
	}
	require.NoError(t, res.Decode(&out))
	assert.True(t, out.IsFavorite)
}

func TestApplicationFailureCarriesServerError(t *testing.T) {
	t.Parallel()
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"detail":{"code":0,"error":"product not found"}}`))
	}))

	res, err := client.Get(context.Background(), "/products/999")
	require.NoError(t, err)
	assert.Equal(t, CodeFailure, res.Code)

	err = res.Decode(nil)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "product not found", appErr.Message)
}

func TestTransportFailures(t *testing.T) {
	t.Parallel()

	t.Run("http error status", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		_, err := client.Get(context.Background(), "/products")
		assert.ErrorContains(t, err, "502")
	})

	t.Run("non-json body", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>oops</html>"))
		}))
		_, err := client.Get(context.Background(), "/products")
		assert.Error(t, err)
	})

	t.Run("missing envelope", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"something":"else"}`))
		}))
		_, err := client.Get(context.Background(), "/products")
		assert.ErrorContains(t, err, "no detail or resp envelope")
	})
}

func TestBearerTokenAttachedWhenPresent(t *testing.T) {
	t.Parallel()
	var gotAuth string
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"detail":{"code":1}}`))
	}))

	_, err := client.Get(context.Background(), "/products")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)

	require.NoError(t, sess.SetToken("tok-abc"))
	_, err = client.Get(context.Background(), "/products")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-abc", gotAuth)
}

func TestLoginEnvelopeAccessToken(t *testing.T) {
	t.Parallel()
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"detail":{"code":1,"access_token":"tok-xyz"}}`))
	}))

	res, err := client.Post(context.Background(), "/auth/login", map[string]string{"email": "a@b.c"})
	require.NoError(t, err)
	assert.Equal(t, "tok-xyz", res.AccessToken)
}

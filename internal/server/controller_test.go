package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/Emansafdar26/buysmart-client/internal/catalog"
	"github.com/Emansafdar26/buysmart-client/internal/favorites"
	"github.com/Emansafdar26/buysmart-client/internal/models"
	"github.com/Emansafdar26/buysmart-client/internal/repo/storefront"
	"github.com/Emansafdar26/buysmart-client/internal/server/middleware"
	"github.com/Emansafdar26/buysmart-client/internal/session"
	"github.com/Emansafdar26/buysmart-client/internal/usecase"
)

type fakeStorefront struct {
	storefront.Client
}

func (f *fakeStorefront) ListProducts(context.Context) ([]models.Product, error) {
	products := make([]models.Product, 0, 60)
	for i := 1; i <= 60; i++ {
		products = append(products, models.Product{
			ID:    int64(i),
			Name:  "Item",
			Price: decimal.NewFromInt(int64(i)),
		})
	}
	return products, nil
}

func (f *fakeStorefront) ToggleFavorite(_ context.Context, productID int64) (*models.ToggleResult, error) {
	return &models.ToggleResult{Status: models.ToggleAdded, IsFavorite: true}, nil
}

func (f *fakeStorefront) IsFavorite(context.Context, int64) (bool, error) {
	return false, nil
}

func newTestServer(t *testing.T) (*echo.Echo, *session.Session) {
	t.Helper()

	api := &fakeStorefront{}
	sess := session.New(session.NewMemoryStore())
	engine := catalog.NewEngine(language.English, models.DefaultPageSize)
	rec := favorites.NewReconciler(api, sess)

	handler := NewController(
		usecase.NewHomeUsecase(api),
		usecase.NewBrowseUsecase(api, engine),
		usecase.NewDetailUsecase(api, engine, rec),
		usecase.NewProfileUsecase(api, sess),
		usecase.NewAuthUsecase(api, sess, rec),
		rec,
	)

	e := echo.New()
	e.Validator = middleware.NewValidator()
	e.HTTPErrorHandler = middleware.ErrorHandler(nopLogger{})

	api2 := e.Group("/api/v1")
	api2.GET("/products", handler.ListProducts)
	api2.GET("/products/:id", handler.GetProduct)
	api2.POST("/favorites/toggle", handler.ToggleFavorite)
	api2.POST("/favorites/price-alert", handler.SetPriceAlert)
	api2.POST("/auth/login", handler.Login)
	e.GET("/health", handler.Health)
	return e, sess
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
func (nopLogger) Debugw(string, ...interface{}) {}
func (nopLogger) Infow(string, ...interface{})  {}
func (nopLogger) Warnw(string, ...interface{})  {}
func (nopLogger) Errorw(string, ...interface{}) {}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestListProductsEndpoint(t *testing.T) {
	t.Parallel()
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/api/v1/products?sort=priceDesc", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Products   []models.Product `json:"products"`
			TotalPages int              `json:"total_pages"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Len(t, body.Data.Products, 48)
	assert.Equal(t, 2, body.Data.TotalPages)
	assert.Equal(t, int64(60), body.Data.Products[0].ID)
}

func TestListProductsRejectsBadSort(t *testing.T) {
	t.Parallel()
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/api/v1/products?sort=cheapest", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestToggleRequiresLogin(t *testing.T) {
	t.Parallel()
	e, sess := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/favorites/toggle", `{"product_id":5,"return_path":"/products/5"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthenticated")
	assert.Contains(t, rec.Body.String(), `"return_path":"/products/5"`)

	// the attempt was stashed for replay after login
	action, ok := sess.PendingAction()
	require.True(t, ok)
	assert.Equal(t, int64(5), action.ProductID)
	assert.Equal(t, "/products/5", action.ReturnPath)
}

func TestToggleWhenLoggedIn(t *testing.T) {
	t.Parallel()
	e, sess := newTestServer(t)
	require.NoError(t, sess.SetToken("tok"))

	rec := doJSON(e, http.MethodPost, "/api/v1/favorites/toggle", `{"product_id":5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"is_favorite":true`)
}

func TestPriceAlertValidationAtTheEdge(t *testing.T) {
	t.Parallel()
	e, sess := newTestServer(t)
	require.NoError(t, sess.SetToken("tok"))

	rec := doJSON(e, http.MethodPost, "/api/v1/favorites/price-alert", `{"product_id":5,"price_alert":"0"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_price_alert")

	rec = doJSON(e, http.MethodPost, "/api/v1/favorites/price-alert", `{"product_id":5,"price_alert":"abc"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginValidation(t *testing.T) {
	t.Parallel()
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/auth/login", `{"password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProductRejectsBadID(t *testing.T) {
	t.Parallel()
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/api/v1/products/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	t.Parallel()
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

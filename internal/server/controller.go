package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Emansafdar26/buysmart-client/internal/favorites"
	"github.com/Emansafdar26/buysmart-client/internal/models"
	"github.com/Emansafdar26/buysmart-client/internal/server/middleware"
	"github.com/Emansafdar26/buysmart-client/internal/usecase"
	"github.com/Emansafdar26/buysmart-client/pkg/util"
)

type Controller interface {
	Home(c echo.Context) error
	ListProducts(c echo.Context) error
	GetProduct(c echo.Context) error

	ListFavorites(c echo.Context) error
	ToggleFavorite(c echo.Context) error
	RemoveFavorite(c echo.Context) error
	SetPriceAlert(c echo.Context) error
	UpdatePriceAlert(c echo.Context) error
	RemovePriceAlert(c echo.Context) error
	ListPriceAlerts(c echo.Context) error

	GetPreferences(c echo.Context) error
	SavePreferences(c echo.Context) error
	RemovePreference(c echo.Context) error

	Login(c echo.Context) error
	Logout(c echo.Context) error
	Me(c echo.Context) error

	Health(c echo.Context) error
}

type controller struct {
	home       usecase.HomeUsecase
	browse     usecase.BrowseUsecase
	detail     usecase.DetailUsecase
	profile    usecase.ProfileUsecase
	auth       usecase.AuthUsecase
	reconciler *favorites.Reconciler
}

func NewController(
	home usecase.HomeUsecase,
	browse usecase.BrowseUsecase,
	detail usecase.DetailUsecase,
	profile usecase.ProfileUsecase,
	auth usecase.AuthUsecase,
	reconciler *favorites.Reconciler,
) Controller {
	return &controller{
		home:       home,
		browse:     browse,
		detail:     detail,
		profile:    profile,
		auth:       auth,
		reconciler: reconciler,
	}
}

func ok(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, middleware.Response{
		Success: true,
		Data:    data,
	})
}

// mapError translates domain failures into the wire error envelope.
func mapError(err error) *middleware.ResponseError {
	switch {
	case errors.Is(err, models.ErrNotAuthenticated):
		return &middleware.ResponseError{
			Status:       http.StatusUnauthorized,
			Err:          err,
			ErrorCode:    "unauthenticated",
			ErrorMessage: "login required",
		}
	case errors.Is(err, models.ErrToggleInFlight):
		return &middleware.ResponseError{
			Status:       http.StatusConflict,
			Err:          err,
			ErrorCode:    "toggle_in_flight",
			ErrorMessage: "favorite update already in progress",
		}
	case errors.Is(err, models.ErrInvalidPriceAlert):
		return &middleware.ResponseError{
			Status:       http.StatusBadRequest,
			Err:          err,
			ErrorCode:    "invalid_price_alert",
			ErrorMessage: "price alert must be a positive number",
		}
	case errors.Is(err, models.ErrNotFound):
		return &middleware.ResponseError{
			Status:       http.StatusNotFound,
			Err:          err,
			ErrorCode:    "not_found",
			ErrorMessage: "resource not found",
		}
	}

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return &middleware.ResponseError{
			Status:       http.StatusBadRequest,
			Err:          err,
			ErrorCode:    "backend_rejected",
			ErrorMessage: appErr.Message,
		}
	}

	return &middleware.ResponseError{
		Status:       http.StatusInternalServerError,
		Err:          err,
		ErrorCode:    "internal",
		ErrorMessage: "something went wrong",
	}
}

func (h *controller) Home(c echo.Context) error {
	view, err := h.home.Load(c.Request().Context())
	if err != nil {
		return mapError(err)
	}
	return ok(c, view)
}

type listProductsRequest struct {
	Scope         string `query:"scope" validate:"omitempty,oneof=all category preferences search"`
	CategoryID    *int64 `query:"category_id"`
	SubcategoryID *int64 `query:"subcategory_id"`
	Search        string `query:"search"`
	Refine        string `query:"refine"`
	Sort          string `query:"sort" validate:"sort_order"`
	MinPrice      string `query:"min_price" validate:"omitempty,numeric"`
	MaxPrice      string `query:"max_price" validate:"omitempty,numeric"`
	Page          int    `query:"page" validate:"omitempty,min=1"`
}

func (h *controller) ListProducts(c echo.Context) error {
	var req listProductsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	scope := usecase.BrowseScope(req.Scope)
	var err error
	if scope == usecase.ScopeSearch {
		err = h.browse.Search(ctx, req.Search)
	} else {
		if scope == "" {
			scope = usecase.ScopeAll
		}
		err = h.browse.Load(ctx, scope, req.CategoryID, req.SubcategoryID)
	}
	if err != nil {
		if errors.Is(err, models.ErrStaleResponse) {
			// a newer request already replaced this view
			return ok(c, h.browse.View())
		}
		return mapError(err)
	}

	criteria := models.FilterCriteria{
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
		SearchText:    req.Refine,
		Sort:          models.ParseSortOrder(req.Sort),
	}
	if req.MinPrice != "" {
		if v, perr := decimal.NewFromString(req.MinPrice); perr == nil {
			criteria.MinPrice = util.Ptr(v)
		}
	}
	if req.MaxPrice != "" {
		if v, perr := decimal.NewFromString(req.MaxPrice); perr == nil {
			criteria.MaxPrice = util.Ptr(v)
		}
	}
	h.browse.SetCriteria(criteria)
	if req.Page > 1 {
		h.browse.SetPage(req.Page)
	}

	return ok(c, h.browse.View())
}

func (h *controller) GetProduct(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	view, err := h.detail.Load(c.Request().Context(), id)
	if err != nil {
		return mapError(err)
	}

	if order := models.ParseSortOrder(c.QueryParam("sort")); order != models.SortNone {
		view.Listings = h.detail.SortedListings(view, order)
	}
	return ok(c, view)
}

func (h *controller) ListFavorites(c echo.Context) error {
	list, err := h.profile.Favorites(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return mapError(err)
	}
	return ok(c, list)
}

type productRequest struct {
	ProductID int64 `json:"product_id" validate:"required,min=1"`
}

type toggleFavoriteRequest struct {
	ProductID  int64  `json:"product_id" validate:"required,min=1"`
	ReturnPath string `json:"return_path"`
}

func (h *controller) ToggleFavorite(c echo.Context) error {
	var req toggleFavoriteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	returnPath := req.ReturnPath
	if returnPath == "" {
		returnPath = c.Request().Referer()
	}

	result, err := h.reconciler.Toggle(c.Request().Context(), req.ProductID, returnPath)
	if err != nil {
		resp := mapError(err)
		if errors.Is(err, models.ErrNotAuthenticated) {
			// tell the caller which action was stashed for replay
			resp.ErrorData = map[string]any{
				"pending_action": models.ActionToggleFavorite,
				"product_id":     req.ProductID,
				"return_path":    returnPath,
			}
		}
		return resp
	}
	return ok(c, result)
}

func (h *controller) RemoveFavorite(c echo.Context) error {
	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.reconciler.RemoveFavorite(c.Request().Context(), req.ProductID); err != nil {
		return mapError(err)
	}
	return ok(c, nil)
}

type priceAlertRequest struct {
	ProductID  int64  `json:"product_id" validate:"required,min=1"`
	PriceAlert string `json:"price_alert" validate:"required"`
}

func (h *controller) SetPriceAlert(c echo.Context) error {
	return h.upsertPriceAlert(c, h.reconciler.SetPriceAlert)
}

func (h *controller) UpdatePriceAlert(c echo.Context) error {
	return h.upsertPriceAlert(c, h.reconciler.UpdatePriceAlert)
}

func (h *controller) upsertPriceAlert(c echo.Context, save func(ctx context.Context, productID int64, target decimal.Decimal) error) error {
	var req priceAlertRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	target, err := favorites.ParseAlertPrice(req.PriceAlert)
	if err != nil {
		return mapError(err)
	}
	if err := save(c.Request().Context(), req.ProductID, target); err != nil {
		return mapError(err)
	}
	return ok(c, nil)
}

func (h *controller) RemovePriceAlert(c echo.Context) error {
	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.reconciler.RemovePriceAlert(c.Request().Context(), req.ProductID); err != nil {
		return mapError(err)
	}
	return ok(c, nil)
}

func (h *controller) ListPriceAlerts(c echo.Context) error {
	alerts, err := h.profile.PriceAlerts(c.Request().Context())
	if err != nil {
		return mapError(err)
	}
	return ok(c, alerts)
}

func (h *controller) GetPreferences(c echo.Context) error {
	prefs, err := h.profile.Preferences(c.Request().Context())
	if err != nil {
		return mapError(err)
	}
	return ok(c, prefs)
}

type savePreferencesRequest struct {
	Preferences []models.Preference `json:"preferences" validate:"required,dive"`
}

func (h *controller) SavePreferences(c echo.Context) error {
	var req savePreferencesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.profile.SavePreferences(c.Request().Context(), req.Preferences); err != nil {
		return mapError(err)
	}
	return ok(c, nil)
}

type removePreferenceRequest struct {
	PreferenceID int64 `json:"preference_id" validate:"required,min=1"`
}

func (h *controller) RemovePreference(c echo.Context) error {
	var req removePreferenceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.profile.RemovePreference(c.Request().Context(), req.PreferenceID); err != nil {
		return mapError(err)
	}
	return ok(c, nil)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *controller) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return mapError(err)
	}
	return ok(c, user)
}

func (h *controller) Logout(c echo.Context) error {
	if err := h.auth.Logout(c.Request().Context()); err != nil {
		return mapError(err)
	}
	return ok(c, nil)
}

func (h *controller) Me(c echo.Context) error {
	user, found := h.auth.CurrentUser()
	if !found {
		return mapError(models.ErrNotAuthenticated)
	}
	return ok(c, user)
}

func (h *controller) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "buysmart-client",
	})
}

func parseID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

package storefront

import (
	"context"
	"fmt"

	"github.com/Emansafdar26/buysmart-client/internal/gateway"
	"github.com/Emansafdar26/buysmart-client/internal/models"
	"github.com/shopspring/decimal"
)

// Client is the typed surface of the backend REST API, one method per
// route the storefront consumes.
type Client interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	SearchProducts(ctx context.Context, name string) ([]models.Product, error)
	ListCategoryProducts(ctx context.Context, categoryID int64, subcategoryID *int64) ([]models.Product, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	PriceHistory(ctx context.Context, id int64) ([]models.PricePoint, error)
	RelatedListings(ctx context.Context, id int64) ([]models.PlatformListing, error)

	IsFavorite(ctx context.Context, productID int64) (bool, error)
	ToggleFavorite(ctx context.Context, productID int64) (*models.ToggleResult, error)
	RemoveFavorite(ctx context.Context, productID int64) error
	ListFavorites(ctx context.Context, search string) ([]models.FavoriteProduct, error)
	SetPriceAlert(ctx context.Context, productID int64, price decimal.Decimal) error
	UpdatePriceAlert(ctx context.Context, productID int64, price decimal.Decimal) error
	RemovePriceAlert(ctx context.Context, productID int64) error
	ListPriceAlerts(ctx context.Context) ([]models.PriceAlertEntry, error)

	TrendingDeals(ctx context.Context) ([]models.Product, error)
	RecentUpdates(ctx context.Context) ([]models.Product, error)
	ProductsByPreferences(ctx context.Context) ([]models.Product, error)
	GetPreferences(ctx context.Context) ([]models.Preference, error)
	UpdatePreferences(ctx context.Context, prefs []models.Preference) error
	RemovePreference(ctx context.Context, preferenceID int64) error

	Login(ctx context.Context, email, password string) (string, error)
	Profile(ctx context.Context) (*models.User, error)
}

type client struct {
	gw gateway.Client
}

func NewClient(gw gateway.Client) Client {
	return &client{gw: gw}
}

func (c *client) getInto(ctx context.Context, path string, out any) error {
	res, err := c.gw.Get(ctx, path)
	if err != nil {
		return err
	}
	return res.Decode(out)
}

func (c *client) postInto(ctx context.Context, path string, body, out any) error {
	res, err := c.gw.Post(ctx, path, body)
	if err != nil {
		return err
	}
	return res.Decode(out)
}

func (c *client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.getInto(ctx, "/products", &products); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (c *client) SearchProducts(ctx context.Context, name string) ([]models.Product, error) {
	var products []models.Product
	body := map[string]string{"name": name}
	if err := c.postInto(ctx, "/products/search", body, &products); err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return products, nil
}

func (c *client) ListCategoryProducts(ctx context.Context, categoryID int64, subcategoryID *int64) ([]models.Product, error) {
	path := fmt.Sprintf("/productsbycategory/%d", categoryID)
	if subcategoryID != nil {
		path = fmt.Sprintf("%s?subcategory_id=%d", path, *subcategoryID)
	}

	var products []models.Product
	if err := c.getInto(ctx, path, &products); err != nil {
		return nil, fmt.Errorf("list category products: %w", err)
	}
	return products, nil
}

func (c *client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.getInto(ctx, "/categories", &categories); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (c *client) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := c.getInto(ctx, fmt.Sprintf("/products/%d", id), &product); err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return &product, nil
}

func (c *client) PriceHistory(ctx context.Context, id int64) ([]models.PricePoint, error) {
	var history []models.PricePoint
	if err := c.getInto(ctx, fmt.Sprintf("/products/%d/price-history", id), &history); err != nil {
		return nil, fmt.Errorf("price history %d: %w", id, err)
	}
	return history, nil
}

func (c *client) RelatedListings(ctx context.Context, id int64) ([]models.PlatformListing, error) {
	var listings []models.PlatformListing
	if err := c.getInto(ctx, fmt.Sprintf("/products/%d/related", id), &listings); err != nil {
		return nil, fmt.Errorf("related listings %d: %w", id, err)
	}
	return listings, nil
}

func (c *client) IsFavorite(ctx context.Context, productID int64) (bool, error) {
	var out struct {
		IsFavorite bool `json:"is_favorite"`
	}
	if err := c.getInto(ctx, fmt.Sprintf("/products/%d/isfavorite", productID), &out); err != nil {
		return false, fmt.Errorf("check favorite %d: %w", productID, err)
	}
	return out.IsFavorite, nil
}

func (c *client) ToggleFavorite(ctx context.Context, productID int64) (*models.ToggleResult, error) {
	var result models.ToggleResult
	body := map[string]int64{"product_id": productID}
	if err := c.postInto(ctx, "/products/togglefavorite", body, &result); err != nil {
		return nil, fmt.Errorf("toggle favorite %d: %w", productID, err)
	}
	return &result, nil
}

func (c *client) RemoveFavorite(ctx context.Context, productID int64) error {
	body := map[string]int64{"product_id": productID}
	if err := c.postInto(ctx, "/products/removefavorite", body, nil); err != nil {
		return fmt.Errorf("remove favorite %d: %w", productID, err)
	}
	return nil
}

func (c *client) ListFavorites(ctx context.Context, search string) ([]models.FavoriteProduct, error) {
	body := map[string]string{}
	if search != "" {
		body["searchQuery"] = search
	}

	var favorites []models.FavoriteProduct
	if err := c.postInto(ctx, "/products/favorites/all", body, &favorites); err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return favorites, nil
}

func (c *client) SetPriceAlert(ctx context.Context, productID int64, price decimal.Decimal) error {
	body := map[string]any{"product_id": productID, "price_alert": price}
	if err := c.postInto(ctx, "/products/favorites/set-price-alert", body, nil); err != nil {
		return fmt.Errorf("set price alert %d: %w", productID, err)
	}
	return nil
}

func (c *client) UpdatePriceAlert(ctx context.Context, productID int64, price decimal.Decimal) error {
	body := map[string]any{"product_id": productID, "price_alert": price}
	if err := c.postInto(ctx, "/products/favorites/update-price-alert", body, nil); err != nil {
		return fmt.Errorf("update price alert %d: %w", productID, err)
	}
	return nil
}

func (c *client) RemovePriceAlert(ctx context.Context, productID int64) error {
	body := map[string]int64{"product_id": productID}
	if err := c.postInto(ctx, "/products/favorites/remove-price-alert", body, nil); err != nil {
		return fmt.Errorf("remove price alert %d: %w", productID, err)
	}
	return nil
}

func (c *client) ListPriceAlerts(ctx context.Context) ([]models.PriceAlertEntry, error) {
	var alerts []models.PriceAlertEntry
	if err := c.getInto(ctx, "/products/favorites/price-alerts", &alerts); err != nil {
		return nil, fmt.Errorf("list price alerts: %w", err)
	}
	return alerts, nil
}

func (c *client) TrendingDeals(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.getInto(ctx, "/trending-deals", &products); err != nil {
		return nil, fmt.Errorf("trending deals: %w", err)
	}
	return products, nil
}

func (c *client) RecentUpdates(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.getInto(ctx, "/recent-updates", &products); err != nil {
		return nil, fmt.Errorf("recent updates: %w", err)
	}
	return products, nil
}

func (c *client) ProductsByPreferences(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.getInto(ctx, "/products-by-preferences", &products); err != nil {
		return nil, fmt.Errorf("products by preferences: %w", err)
	}
	return products, nil
}

func (c *client) GetPreferences(ctx context.Context) ([]models.Preference, error) {
	var prefs []models.Preference
	if err := c.getInto(ctx, "/getPreferences", &prefs); err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	return prefs, nil
}

func (c *client) UpdatePreferences(ctx context.Context, prefs []models.Preference) error {
	body := map[string]any{"preferences": prefs}
	if err := c.postInto(ctx, "/updatePreferences", body, nil); err != nil {
		return fmt.Errorf("update preferences: %w", err)
	}
	return nil
}

func (c *client) RemovePreference(ctx context.Context, preferenceID int64) error {
	body := map[string]int64{"preference_id": preferenceID}
	if err := c.postInto(ctx, "/removePreference", body, nil); err != nil {
		return fmt.Errorf("remove preference %d: %w", preferenceID, err)
	}
	return nil
}

func (c *client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	res, err := c.gw.Post(ctx, "/auth/login", body)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if err := res.Decode(nil); err != nil {
		return "", err
	}
	if res.AccessToken == "" {
		return "", fmt.Errorf("login: response carries no access token")
	}
	return res.AccessToken, nil
}

func (c *client) Profile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.getInto(ctx, "/auth/profile", &user); err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	return &user, nil
}

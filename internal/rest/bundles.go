package rest

import (
	"context"
	"net/http"
	"time"

	"cartBoost/business/bundles"
	"cartBoost/domain"
	"cartBoost/pkg/logger"
	"cartBoost/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

type BundleService interface {
	GenerateBundles(ctx context.Context, p bundles.ResolveParams) ([]domain.GeneratedBundle, error)
}

type BundleCache interface {
	Get(ctx context.Context, shop, productID string) ([]domain.GeneratedBundle, error)
	Set(ctx context.Context, shop, productID string, bundles []domain.GeneratedBundle) error
}

type SettingsReader interface {
	GetSettings(ctx context.Context, shop string) (*domain.ShopSettings, error)
}

type BundleHandler struct {
	bundleService   BundleService
	settingsService SettingsReader
	cache           BundleCache
	validate        *validator.Validate
	timeout         time.Duration
}

func NewBundleHandler(bundleService BundleService, settingsService SettingsReader, cache BundleCache) *BundleHandler {
	return &BundleHandler{
		bundleService:   bundleService,
		settingsService: settingsService,
		cache:           cache,
		validate:        validator.New(),
		timeout:         15 * time.Second,
	}
}

type GenerateQuery struct {
	Shop      string  `query:"shop" validate:"required"`
	ProductID string  `query:"product_id" validate:"required"`
	Limit     int     `query:"limit" validate:"gte=0"`
	Discount  float64 `query:"discount" validate:"gte=0,lte=100"`
	Title     string  `query:"title"`
	Exclude   string  `query:"exclude"`
}

// Generate is the admin-facing entry point to the bundle pipeline. An
// empty result is a 200 with an empty list, never an error.
func (h *BundleHandler) Generate(c echo.Context) error {
	var q GenerateQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if cached := h.cached(ctx, q.Shop, q.ProductID); cached != nil {
		return c.JSON(http.StatusOK, fres.Response.StatusOK(cached))
	}

	generated, err := h.bundleService.GenerateBundles(ctx, bundles.ResolveParams{
		Shop:             q.Shop,
		AnchorProductID:  q.ProductID,
		Limit:            q.Limit,
		DiscountPercent:  q.Discount,
		BundleTitle:      q.Title,
		ExcludeProductID: q.Exclude,
	})
	if err != nil {
		logger.Error("bundle generation failed", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	h.store(ctx, q.Shop, q.ProductID, generated)

	return c.JSON(http.StatusOK, fres.Response.StatusOK(generated))
}

type StorefrontQuery struct {
	Shop      string `query:"shop" validate:"required"`
	ProductID string `query:"product_id" validate:"required"`
}

// StorefrontBundles serves the cart-drawer widget. Limit, discount, and
// title come from the shop's stored settings rather than the query.
func (h *BundleHandler) StorefrontBundles(c echo.Context) error {
	var q StorefrontQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	discount := 10.0
	title := ""
	if settings, err := h.settingsService.GetSettings(ctx, q.Shop); err == nil {
		if !settings.DrawerEnabled {
			return c.JSON(http.StatusOK, fres.Response.StatusOK([]domain.GeneratedBundle{}))
		}
		discount = settings.DefaultDiscount
		title = settings.BundleTitle
	}

	if cached := h.cached(ctx, q.Shop, q.ProductID); cached != nil {
		return c.JSON(http.StatusOK, fres.Response.StatusOK(cached))
	}

	generated, err := h.bundleService.GenerateBundles(ctx, bundles.ResolveParams{
		Shop:            q.Shop,
		AnchorProductID: q.ProductID,
		DiscountPercent: discount,
		BundleTitle:     title,
	})
	if err != nil {
		logger.Error("storefront bundle generation failed", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	h.store(ctx, q.Shop, q.ProductID, generated)

	return c.JSON(http.StatusOK, fres.Response.StatusOK(generated))
}

// cached is fail-open: a cache error just means a recompute.
func (h *BundleHandler) cached(ctx context.Context, shop, productID string) []domain.GeneratedBundle {
	if h.cache == nil {
		return nil
	}

	cached, err := h.cache.Get(ctx, shop, productID)
	if err != nil {
		logger.Warn("bundle cache read failed", "shop", shop, "error", err)
		return nil
	}
	if len(cached) > 0 {
		metrics.BundleCacheHits.Inc()
		return cached
	}

	return nil
}

func (h *BundleHandler) store(ctx context.Context, shop, productID string, generated []domain.GeneratedBundle) {
	if h.cache == nil || len(generated) == 0 {
		return
	}

	if err := h.cache.Set(ctx, shop, productID, generated); err != nil {
		logger.Warn("bundle cache write failed", "shop", shop, "error", err)
	}
}

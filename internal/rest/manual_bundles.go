package rest

import (
	"context"
	"net/http"
	"time"

	"cartBoost/domain"
	"cartBoost/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ManualBundleService interface {
	GetBundlesByShop(ctx context.Context, shop string) ([]domain.ManualBundle, error)
	GetBundleByID(ctx context.Context, id string) (*domain.ManualBundle, error)
	CreateBundle(ctx context.Context, bundle *domain.ManualBundle, productIDs []string) (*domain.ManualBundle, error)
	UpdateBundle(ctx context.Context, bundle *domain.ManualBundle, productIDs []string) (*domain.ManualBundle, error)
	DeleteBundle(ctx context.Context, id string) error
}

type ManualBundleHandler struct {
	bundleService ManualBundleService
	validate      *validator.Validate
	timeout       time.Duration
}

func NewManualBundleHandler(bundleService ManualBundleService) *ManualBundleHandler {
	return &ManualBundleHandler{
		bundleService: bundleService,
		validate:      validator.New(),
		timeout:       10 * time.Second,
	}
}

type CreateManualBundleRequest struct {
	Shop            string   `json:"shop" validate:"required"`
	Name            string   `json:"name" validate:"required"`
	DiscountPercent *float64 `json:"discount_percent" validate:"omitempty,gte=0,lte=100"`
	ProductIDs      []string `json:"product_ids" validate:"required,min=2"`
	IsActive        bool     `json:"is_active"`
}

type UpdateManualBundleRequest struct {
	Name            string   `json:"name" validate:"required"`
	DiscountPercent *float64 `json:"discount_percent" validate:"omitempty,gte=0,lte=100"`
	ProductIDs      []string `json:"product_ids" validate:"required,min=2"`
	IsActive        bool     `json:"is_active"`
}

func (h *ManualBundleHandler) GetBundles(c echo.Context) error {
	shop := c.QueryParam("shop")
	if shop == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "shop is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	bundles, err := h.bundleService.GetBundlesByShop(ctx, shop)
	if err != nil {
		logger.Error("failed to list manual bundles", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(bundles))
}

func (h *ManualBundleHandler) GetBundleByID(c echo.Context) error {
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	bundle, err := h.bundleService.GetBundleByID(ctx, id)
	if err != nil {
		if err.Error() == "manual bundle not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(bundle))
}

func (h *ManualBundleHandler) CreateBundle(c echo.Context) error {
	var req CreateManualBundleRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&req); err != nil {
		logger.Error("failed to validate manual bundle request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	bundle := &domain.ManualBundle{
		Shop:            req.Shop,
		Name:            req.Name,
		DiscountPercent: req.DiscountPercent,
		IsActive:        req.IsActive,
	}

	created, err := h.bundleService.CreateBundle(ctx, bundle, req.ProductIDs)
	if err != nil {
		logger.Error("failed to create manual bundle", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(created))
}

func (h *ManualBundleHandler) UpdateBundle(c echo.Context) error {
	id := c.Param("id")

	var req UpdateManualBundleRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&req); err != nil {
		logger.Error("failed to validate manual bundle request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	bundle := &domain.ManualBundle{
		ID:              id,
		Name:            req.Name,
		DiscountPercent: req.DiscountPercent,
		IsActive:        req.IsActive,
	}

	updated, err := h.bundleService.UpdateBundle(ctx, bundle, req.ProductIDs)
	if err != nil {
		if err.Error() == "manual bundle not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(updated))
}

func (h *ManualBundleHandler) DeleteBundle(c echo.Context) error {
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.bundleService.DeleteBundle(ctx, id); err != nil {
		if err.Error() == "manual bundle not found" || err.Error() == "invalid bundle id" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Manual bundle deleted successfully"))
}

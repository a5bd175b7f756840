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

type SettingsService interface {
	GetSettings(ctx context.Context, shop string) (*domain.ShopSettings, error)
	UpsertSettings(ctx context.Context, settings *domain.ShopSettings, accessToken string) (*domain.ShopSettings, error)
}

type SettingsHandler struct {
	settingsService SettingsService
	validate        *validator.Validate
	timeout         time.Duration
}

func NewSettingsHandler(settingsService SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		validate:        validator.New(),
		timeout:         10 * time.Second,
	}
}

type UpsertSettingsRequest struct {
	Shop            string  `json:"shop" validate:"required"`
	DrawerEnabled   bool    `json:"drawer_enabled"`
	DefaultDiscount float64 `json:"default_discount" validate:"gte=0,lte=100"`
	BundleTitle     string  `json:"bundle_title"`
	AccessToken     string  `json:"access_token"` // write-only, never echoed back
}

type SettingsResponse struct {
	Shop            string  `json:"shop"`
	DrawerEnabled   bool    `json:"drawer_enabled"`
	DefaultDiscount float64 `json:"default_discount"`
	BundleTitle     string  `json:"bundle_title"`
	HasAccessToken  bool    `json:"has_access_token"`
}

func toSettingsResponse(s *domain.ShopSettings) SettingsResponse {
	return SettingsResponse{
		Shop:            s.Shop,
		DrawerEnabled:   s.DrawerEnabled,
		DefaultDiscount: s.DefaultDiscount,
		BundleTitle:     s.BundleTitle,
		HasAccessToken:  s.AccessToken != "",
	}
}

func (h *SettingsHandler) GetSettings(c echo.Context) error {
	shop := c.QueryParam("shop")
	if shop == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "shop is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	settings, err := h.settingsService.GetSettings(ctx, shop)
	if err != nil {
		if err.Error() == "settings not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(toSettingsResponse(settings)))
}

func (h *SettingsHandler) UpsertSettings(c echo.Context) error {
	var req UpsertSettingsRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&req); err != nil {
		logger.Error("failed to validate settings request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	settings := &domain.ShopSettings{
		Shop:            req.Shop,
		DrawerEnabled:   req.DrawerEnabled,
		DefaultDiscount: req.DefaultDiscount,
		BundleTitle:     req.BundleTitle,
	}

	saved, err := h.settingsService.UpsertSettings(ctx, settings, req.AccessToken)
	if err != nil {
		logger.Error("failed to save settings", err)
		if err.Error() == "shop is required" || err.Error() == "default discount must be between 0 and 100" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(toSettingsResponse(saved)))
}

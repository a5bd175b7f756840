package router

import (
	"cartBoost/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupBundleRoutes(api *echo.Group, handler *rest.BundleHandler) {
	bundles := api.Group("/bundles")

	bundles.GET("/generate", handler.Generate)

	storefront := api.Group("/storefront")
	storefront.GET("/bundles", handler.StorefrontBundles)
}

func SetupManualBundleRoutes(api *echo.Group, handler *rest.ManualBundleHandler) {
	bundles := api.Group("/manual-bundles")

	bundles.GET("", handler.GetBundles)
	bundles.GET("/:id", handler.GetBundleByID)
	bundles.POST("", handler.CreateBundle)
	bundles.PUT("/:id", handler.UpdateBundle)
	bundles.DELETE("/:id", handler.DeleteBundle)
}

func SetupSettingsRoutes(api *echo.Group, handler *rest.SettingsHandler) {
	settings := api.Group("/settings")

	settings.GET("", handler.GetSettings)
	settings.PUT("", handler.UpsertSettings)
}

package middleware

import (
	"errors"
	"net/http"

	"cartBoost/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the echo HTTPErrorHandler: it logs whatever escaped the
// handlers and answers with a uniform JSON error body.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal server error"

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("unhandled http error", "path", c.Request().URL.Path, "code", code, "error", err)
	}

	_ = c.JSON(code, map[string]interface{}{
		"message": message,
	})
}

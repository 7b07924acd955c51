package echomw

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reoring/fluentcheck"
	"github.com/reoring/fluentcheck/middleware"
)

// ValidateJSON parses request JSON via checker c, stores the result in the
// request context on success, or returns 400 with Issues when the body is
// rejected. A zero opt means middleware.DefaultOptions.
func ValidateJSON[T, U any](c *fluentcheck.Checker[T, U], opt middleware.Options) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ec echo.Context) error {
			v, iss := middleware.Decode(c, ec.Request().Body, opt)
			if iss != nil {
				return ec.JSON(http.StatusBadRequest, middleware.ErrorPayload(iss))
			}
			ctx := middleware.ContextWithValue(ec.Request().Context(), v)
			ec.SetRequest(ec.Request().WithContext(ctx))
			return next(ec)
		}
	}
}

// GetValue fetches the parsed body from echo.Context.
func GetValue[U any](ec echo.Context) (U, bool) {
	return middleware.ValueFromContext[U](ec.Request().Context())
}

package ginmw

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reoring/fluentcheck"
	"github.com/reoring/fluentcheck/middleware"
)

// ValidateJSON parses the incoming JSON using checker c with opt (or
// middleware.DefaultOptions when zero value), stores the result in the request
// context, and on rejection returns 400 with Issues payload.
func ValidateJSON[T, U any](c *fluentcheck.Checker[T, U], opt middleware.Options) gin.HandlerFunc {
	return func(gc *gin.Context) {
		v, iss := middleware.Decode(c, gc.Request.Body, opt)
		if iss != nil {
			gc.JSON(http.StatusBadRequest, middleware.ErrorPayload(iss))
			gc.Abort()
			return
		}
		gc.Request = gc.Request.WithContext(middleware.ContextWithValue(gc.Request.Context(), v))
		gc.Next()
	}
}

// GetValue fetches the parsed body from gin.Context.
func GetValue[U any](gc *gin.Context) (U, bool) {
	return middleware.ValueFromContext[U](gc.Request.Context())
}

package echomw_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	f "github.com/reoring/fluentcheck/fluent"
	"github.com/reoring/fluentcheck/middleware"
	echomw "github.com/reoring/fluentcheck/middleware/echo"
)

func TestValidateJSON_Echo(t *testing.T) {
	c := f.Object().Field("name", f.String()).MustCompile()

	e := echo.New()
	e.POST("/", func(ec echo.Context) error {
		v, ok := echomw.GetValue[any](ec)
		if !ok {
			return ec.String(http.StatusInternalServerError, "missing")
		}
		return ec.String(http.StatusOK, v.(map[string]any)["name"].(string))
	}, echomw.ValidateJSON(c, middleware.DefaultOptions()))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}`)))
	if rec.Code != http.StatusOK || rec.Body.String() != "a" {
		t.Fatalf("unexpected response: %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":1}`)))
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), `"/name"`) {
		t.Fatalf("expected 400 with issue at /name: %d %q", rec.Code, rec.Body.String())
	}
}

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type fakeCtrl struct{}

func (fakeCtrl) OnCropAdded(c echo.Context) error { return c.String(http.StatusOK, "watering") }
func (fakeCtrl) Live(c echo.Context) error        { return c.String(http.StatusOK, "live") }
func (fakeCtrl) Health(c echo.Context) error      { return c.String(http.StatusOK, "health") }

func TestRoutes(t *testing.T) {
	e := New(echo.New(), fakeCtrl{}, fakeCtrl{})

	tests := []struct {
		method, path string
		code         int
		body         string
	}{
		{http.MethodGet, "/", http.StatusOK, "live"},
		{http.MethodGet, "/health", http.StatusOK, "health"},
		{http.MethodPost, "/onCropAdded", http.StatusOK, "watering"},
		{http.MethodGet, "/onCropAdded", http.StatusMethodNotAllowed, ""},
		{http.MethodPost, "/fields", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, tt.code, rec.Code, "%s %s", tt.method, tt.path)
		if tt.body != "" {
			assert.Equal(t, tt.body, rec.Body.String())
		}
	}
}

package router

import (
	"github.com/labstack/echo/v4"
)

func New(
	e *echo.Echo,
	wateringCtrl interface{ OnCropAdded(echo.Context) error },
	healthCtrl interface {
		Live(echo.Context) error
		Health(echo.Context) error
	},
) *echo.Echo {
	e.GET("/", healthCtrl.Live)
	e.GET("/health", healthCtrl.Health)

	e.POST("/onCropAdded", wateringCtrl.OnCropAdded)
	return e
}

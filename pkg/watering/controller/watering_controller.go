package controller

import "github.com/labstack/echo/v4"

type WateringController interface {
	OnCropAdded(c echo.Context) error
}

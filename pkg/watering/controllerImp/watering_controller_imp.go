package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/watering/controller"
	"github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/watering/service"
	"github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/watering/types"
)

// Error bodies are part of the mobile app contract; keep the wording.
const (
	msgMissingFields    = "Missing plantedTimestamp or cropId"
	msgInvalidInterval  = "Invalid interval"
	msgCropNotFound     = "Crop not found"
	msgUserCropNotFound = "User crop not found"
)

type wateringCtrl struct {
	s   service.WateringService
	log zerolog.Logger
}

func New(s service.WateringService, log zerolog.Logger) controller.WateringController {
	return &wateringCtrl{s: s, log: log}
}

func (h *wateringCtrl) OnCropAdded(c echo.Context) error {
	var req types.CropAddedRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgMissingFields})
	}

	next, err := h.s.OnCropAdded(c.Request().Context(), req.CropID, req.Data)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, types.CropAddedResponse{Success: true, NextWateringTimestamp: types.Timestamp{Time: next}})
	case errors.Is(err, service.ErrMissingFields):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgMissingFields})
	case errors.Is(err, service.ErrInvalidInterval):
		h.log.Warn().Err(err).Str("user_crop", req.CropID).Msg("crop interval does not parse")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgInvalidInterval})
	case errors.Is(err, service.ErrCropNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": msgCropNotFound})
	case errors.Is(err, service.ErrUserCropNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": msgUserCropNotFound})
	default:
		h.log.Error().Err(err).Str("user_crop", req.CropID).Msg("onCropAdded failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
}

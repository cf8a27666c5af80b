package service

import (
	"context"
	"errors"
	"time"

	"github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/watering/types"
)

var (
	ErrMissingFields    = errors.New("missing plantedTimestamp or cropId")
	ErrCropNotFound     = errors.New("crop not found")
	ErrInvalidInterval  = errors.New("invalid watering interval")
	ErrUserCropNotFound = errors.New("user crop not found")
)

type WateringService interface {
	// OnCropAdded computes and stores the first nextWateringTimestamp of the
	// user crop identified by userCropID.
	OnCropAdded(ctx context.Context, userCropID string, in types.CropAddedData) (time.Time, error)
}

package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/KavinduWickramasekara98/UrbanRoots-backend/entities"
	cropRepo "github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/crop/repository"
	"github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/interval"
	ucRepo "github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/usercrop/repository"
	"github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/watering/service"
	"github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/watering/types"
)

type wateringSvc struct {
	crops     cropRepo.CropRepository
	userCrops ucRepo.UserCropRepository
	log       zerolog.Logger
}

func NewWateringService(crops cropRepo.CropRepository, userCrops ucRepo.UserCropRepository, log zerolog.Logger) service.WateringService {
	return &wateringSvc{crops: crops, userCrops: userCrops, log: log}
}

func (s *wateringSvc) OnCropAdded(ctx context.Context, userCropID string, in types.CropAddedData) (time.Time, error) {
	if in.PlantedTimestamp == nil || strings.TrimSpace(in.CropID) == "" {
		return time.Time{}, service.ErrMissingFields
	}

	crop, err := s.crops.FindByID(ctx, in.CropID)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return time.Time{}, fmt.Errorf("%w: %s", service.ErrCropNotFound, in.CropID)
		}
		return time.Time{}, fmt.Errorf("load crop %s: %w", in.CropID, err)
	}

	every, ok := interval.Parse(crop.WateringInterval)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: crop %s has %q", service.ErrInvalidInterval, crop.ID, crop.WateringInterval)
	}

	next := in.PlantedTimestamp.Add(every).UTC()
	if err := s.userCrops.SetNextWatering(ctx, userCropID, next); err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return time.Time{}, fmt.Errorf("%w: %s", service.ErrUserCropNotFound, userCropID)
		}
		return time.Time{}, fmt.Errorf("update user crop %s: %w", userCropID, err)
	}

	s.log.Info().
		Str("user_crop", userCropID).
		Str("crop", crop.ID).
		Str("user", in.UserID).
		Time("next_watering", next).
		Msg("first watering scheduled")
	return next, nil
}

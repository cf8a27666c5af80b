package repository

import (
	"context"
	"time"

	"github.com/KavinduWickramasekara98/UrbanRoots-backend/entities"
)

type UserCropRepository interface {
	FindByID(ctx context.Context, id string) (*entities.UserCrop, error)
	// SetNextWatering is a partial update; it returns entities.ErrNotFound
	// instead of creating the record.
	SetNextWatering(ctx context.Context, id string, next time.Time) error
	// ListDue returns records with nextWateringTimestamp <= now and id > afterID,
	// ordered by id. limit <= 0 means no limit.
	ListDue(ctx context.Context, now time.Time, afterID string, limit int) ([]entities.UserCrop, error)
}

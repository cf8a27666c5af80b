package repositoryImp

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/KavinduWickramasekara98/UrbanRoots-backend/entities"
	"github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/usercrop/repository"
)

type userCropRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.UserCropRepository { return &userCropRepo{db} }

func (r *userCropRepo) FindByID(ctx context.Context, id string) (*entities.UserCrop, error) {
	var uc entities.UserCrop
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&uc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrNotFound
		}
		return nil, err
	}
	return &uc, nil
}

func (r *userCropRepo) SetNextWatering(ctx context.Context, id string, next time.Time) error {
	res := r.db.WithContext(ctx).Model(&entities.UserCrop{}).
		Where("id = ?", id).
		Update("next_watering_timestamp", next.UTC())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return entities.ErrNotFound
	}
	return nil
}

// Timestamps are stored as UTC text, so the <= comparison is only sound for UTC arguments.
func (r *userCropRepo) ListDue(ctx context.Context, now time.Time, afterID string, limit int) ([]entities.UserCrop, error) {
	q := r.db.WithContext(ctx).
		Where("next_watering_timestamp IS NOT NULL AND next_watering_timestamp <= ?", now.UTC())
	if afterID != "" {
		q = q.Where("id > ?", afterID)
	}
	q = q.Order("id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []entities.UserCrop
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

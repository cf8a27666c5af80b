package repositoryImp

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/KavinduWickramasekara98/UrbanRoots-backend/entities"
	"github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/farmer/repository"
)

type farmerRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.FarmerRepository { return &farmerRepo{db} }

func (r *farmerRepo) FindByID(ctx context.Context, userID string) (*entities.Farmer, error) {
	var f entities.Farmer
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&f).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

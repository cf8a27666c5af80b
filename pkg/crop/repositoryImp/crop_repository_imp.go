package repositoryImp

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/KavinduWickramasekara98/UrbanRoots-backend/entities"
	"github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/crop/repository"
)

type cropRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.CropRepository { return &cropRepo{db} }

func (r *cropRepo) FindByID(ctx context.Context, id string) (*entities.CropDefinition, error) {
	var c entities.CropDefinition
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *cropRepo) Upsert(ctx context.Context, defs []entities.CropDefinition) error {
	if len(defs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"watering_interval", "updated_at"}),
	}).Create(&defs).Error
}

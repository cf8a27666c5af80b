package repository

import (
	"context"

	"github.com/KavinduWickramasekara98/UrbanRoots-backend/entities"
)

type CropRepository interface {
	FindByID(ctx context.Context, id string) (*entities.CropDefinition, error)
	// Upsert is used by the catalog importer only.
	Upsert(ctx context.Context, defs []entities.CropDefinition) error
}

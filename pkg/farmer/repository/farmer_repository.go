package repository

import (
	"context"

	"github.com/KavinduWickramasekara98/UrbanRoots-backend/entities"
)

type FarmerRepository interface {
	FindByID(ctx context.Context, userID string) (*entities.Farmer, error)
}

// Package store opens the configured backend and hands out its repositories.
package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/KavinduWickramasekara98/UrbanRoots-backend/config"
	"github.com/KavinduWickramasekara98/UrbanRoots-backend/database"
	cropRepo "github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/crop/repository"
	cropRepoImp "github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/crop/repositoryImp"
	farmerRepo "github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/farmer/repository"
	farmerRepoImp "github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/farmer/repositoryImp"
	healthCtrlImp "github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/health/controllerImp"
	ucRepo "github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/usercrop/repository"
	ucRepoImp "github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/usercrop/repositoryImp"
)

type Store struct {
	Driver    string
	Crops     cropRepo.CropRepository
	UserCrops ucRepo.UserCropRepository
	Farmers   farmerRepo.FarmerRepository
	Check     healthCtrlImp.Check

	close func(context.Context) error
}

func Open(ctx context.Context, cfg config.AppConfig) (*Store, error) {
	switch cfg.StoreDriver {
	case "sqlite":
		db, err := database.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.DBPath, err)
		}
		return FromGorm(db), nil
	case "mongo":
		client, db, err := database.OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("open mongo: %w", err)
		}
		return FromMongo(client, db), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func FromGorm(db *gorm.DB) *Store {
	return &Store{
		Driver:    "sqlite",
		Crops:     cropRepoImp.New(db),
		UserCrops: ucRepoImp.New(db),
		Farmers:   farmerRepoImp.New(db),
		Check:     healthCtrlImp.GormCheck(db),
		close: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

func FromMongo(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{
		Driver:    "mongo",
		Crops:     cropRepoImp.NewMongo(db),
		UserCrops: ucRepoImp.NewMongo(db),
		Farmers:   farmerRepoImp.NewMongo(db),
		Check:     healthCtrlImp.MongoCheck(client),
		close:     client.Disconnect,
	}
}

func (s *Store) Close(ctx context.Context) error { return s.close(ctx) }

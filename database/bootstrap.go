// database/bootstrap.go
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite" // CGO-free driver
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/KavinduWickramasekara98/UrbanRoots-backend/entities"
)

// Collection names shared by both backends.
const (
	CropsCollection     = "crops"
	UserCropsCollection = "user_crops"
	FarmersCollection   = "farmers"
)

// OpenSQLite opens (or creates) the sqlite file at path and migrates the schema.
// ":memory:" is pinned to a single connection so every query sees the same database.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if path == ":memory:" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(
		&entities.CropDefinition{},
		&entities.UserCrop{},
		&entities.Farmer{},
	); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return db, nil
}

// OpenMongo connects, pings and makes sure the due-query index exists.
func OpenMongo(ctx context.Context, uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerSelectionTimeout(5*time.Second))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(dbName)
	if err := EnsureMongoIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	return client, db, nil
}

func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(UserCropsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "nextWateringTimestamp", Value: 1}, {Key: "_id", Value: 1}},
		Options: options.Index().SetName("due_sweep"),
	})
	if err != nil {
		return fmt.Errorf("create index due_sweep: %w", err)
	}
	return nil
}

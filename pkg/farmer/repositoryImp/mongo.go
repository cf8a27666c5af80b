package repositoryImp

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/KavinduWickramasekara98/UrbanRoots-backend/database"
	"github.com/KavinduWickramasekara98/UrbanRoots-backend/entities"
	"github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/farmer/repository"
)

type mongoRepo struct{ col *mongo.Collection }

func NewMongo(db *mongo.Database) repository.FarmerRepository {
	return &mongoRepo{col: db.Collection(database.FarmersCollection)}
}

func (r *mongoRepo) FindByID(ctx context.Context, userID string) (*entities.Farmer, error) {
	var f entities.Farmer
	if err := r.col.FindOne(ctx, bson.M{"_id": userID}).Decode(&f); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entities.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

package repositoryImp

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/KavinduWickramasekara98/UrbanRoots-backend/database"
	"github.com/KavinduWickramasekara98/UrbanRoots-backend/entities"
	"github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/crop/repository"
)

type mongoRepo struct{ col *mongo.Collection }

func NewMongo(db *mongo.Database) repository.CropRepository {
	return &mongoRepo{col: db.Collection(database.CropsCollection)}
}

func (r *mongoRepo) FindByID(ctx context.Context, id string) (*entities.CropDefinition, error) {
	var c entities.CropDefinition
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entities.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *mongoRepo) Upsert(ctx context.Context, defs []entities.CropDefinition) error {
	if len(defs) == 0 {
		return nil
	}
	now := time.Now().UTC()
	models := make([]mongo.WriteModel, 0, len(defs))
	for _, d := range defs {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": d.ID}).
			SetUpdate(bson.M{
				"$set":         bson.M{"wateringInterval": d.WateringInterval, "updatedAt": now},
				"$setOnInsert": bson.M{"createdAt": now},
			}).
			SetUpsert(true))
	}
	_, err := r.col.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	return err
}

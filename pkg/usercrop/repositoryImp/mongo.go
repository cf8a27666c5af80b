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
	"github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/usercrop/repository"
)

type mongoRepo struct{ col *mongo.Collection }

func NewMongo(db *mongo.Database) repository.UserCropRepository {
	return &mongoRepo{col: db.Collection(database.UserCropsCollection)}
}

func (r *mongoRepo) FindByID(ctx context.Context, id string) (*entities.UserCrop, error) {
	var uc entities.UserCrop
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&uc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entities.ErrNotFound
		}
		return nil, err
	}
	return &uc, nil
}

func (r *mongoRepo) SetNextWatering(ctx context.Context, id string, next time.Time) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"nextWateringTimestamp": next.UTC(), "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return entities.ErrNotFound
	}
	return nil
}

func (r *mongoRepo) ListDue(ctx context.Context, now time.Time, afterID string, limit int) ([]entities.UserCrop, error) {
	filter := bson.M{"nextWateringTimestamp": bson.M{"$lte": now.UTC()}}
	if afterID != "" {
		filter["_id"] = bson.M{"$gt": afterID}
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []entities.UserCrop
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

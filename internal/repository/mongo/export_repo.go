package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nclx/gymnotetaker/internal/domain"
	"nclx/gymnotetaker/internal/repository"
)

// mongoExportRepository implements repository.ExportRepository
type mongoExportRepository struct {
	collection *mongo.Collection
}

func NewMongoExportRepository(db *mongo.Database, collectionName string) repository.ExportRepository {
	return &mongoExportRepository{
		collection: db.Collection(collectionName),
	}
}

// Create inserts metadata of an uploaded history file.
func (r *mongoExportRepository) Create(ctx context.Context, export *domain.Export) (string, error) {
	if export.AccountID == "" || export.ObjectKey == "" {
		return "", errors.New("export requires accountId and objectKey")
	}

	export.ID = newID(export.ID)
	export.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, export); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", repository.ErrDuplicate
		}
		return "", err
	}
	return export.ID, nil
}

func (r *mongoExportRepository) GetByAccountID(ctx context.Context, accountID string) ([]domain.Export, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"accountId": accountID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	exports := []domain.Export{}
	if err = cursor.All(ctx, &exports); err != nil {
		return nil, err
	}
	return exports, nil
}

// EnsureExportIndexes creates the indexes of the exports collection.
func EnsureExportIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "accountId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			// object keys are unique within the bucket
			Keys:    bson.D{{Key: "objectKey", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

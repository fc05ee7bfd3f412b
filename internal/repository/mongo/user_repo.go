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

// mongoUserRepository implements repository.UserRepository for profile documents.
type mongoUserRepository struct {
	collection *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database, collectionName string) repository.UserRepository {
	return &mongoUserRepository{
		collection: db.Collection(collectionName),
	}
}

// Create inserts a profile. A second profile for the same account is a duplicate.
func (r *mongoUserRepository) Create(ctx context.Context, user *domain.User) (string, error) {
	if user.AccountID == "" || user.Email == "" {
		return "", errors.New("profile account id and email are required")
	}

	user.ID = newID(user.ID)
	user.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", repository.ErrDuplicate
		}
		return "", err
	}
	return user.ID, nil
}

func (r *mongoUserRepository) GetByAccountID(ctx context.Context, accountID string) (*domain.User, error) {
	var user domain.User
	err := r.collection.FindOne(ctx, bson.M{"accountId": accountID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// EnsureUserIndexes creates necessary indexes for the profile collection.
func EnsureUserIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "accountId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

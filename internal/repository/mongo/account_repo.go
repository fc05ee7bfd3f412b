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

// mongoAccountRepository implements repository.AccountRepository
type mongoAccountRepository struct {
	collection *mongo.Collection
}

func NewMongoAccountRepository(db *mongo.Database, collectionName string) repository.AccountRepository {
	return &mongoAccountRepository{
		collection: db.Collection(collectionName),
	}
}

func (r *mongoAccountRepository) Create(ctx context.Context, account *domain.Account) (string, error) {
	if account.Email == "" || account.PasswordHash == "" {
		return "", errors.New("account email and password hash are required")
	}

	account.ID = newID(account.ID)
	account.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, account); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", repository.ErrDuplicate
		}
		return "", err
	}
	return account.ID, nil
}

func (r *mongoAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoAccountRepository) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	var account domain.Account
	if err := r.collection.FindOne(ctx, filter).Decode(&account); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// EnsureAccountIndexes makes email unique. Call this once during startup.
func EnsureAccountIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

package mongo

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nclx/gymnotetaker/internal/domain"
	"nclx/gymnotetaker/internal/repository"
)

// BSON datetimes keep milliseconds only, so creation stamps are handed out
// strictly increasing per process at that precision. seq orders writes from
// different processes landing on the same millisecond.
var (
	stampMu   sync.Mutex
	lastStamp time.Time
	lastSeq   int64
)

func nextCreationStamp() (time.Time, int64) {
	stampMu.Lock()
	defer stampMu.Unlock()

	now := time.Now().UTC()
	stamp := now.Truncate(time.Millisecond)
	if !stamp.After(lastStamp) {
		stamp = lastStamp.Add(time.Millisecond)
	}
	lastStamp = stamp

	seq := now.UnixNano()
	if seq <= lastSeq {
		seq = lastSeq + 1
	}
	lastSeq = seq
	return stamp, seq
}

// mongoSetRepository implements repository.SetRepository
type mongoSetRepository struct {
	collection *mongo.Collection
}

func NewMongoSetRepository(db *mongo.Database, collectionName string) repository.SetRepository {
	return &mongoSetRepository{
		collection: db.Collection(collectionName),
	}
}

func (r *mongoSetRepository) Create(ctx context.Context, set *domain.Set) (string, error) {
	if set.ExerciseID == "" {
		return "", errors.New("set requires an exercise ID")
	}
	if err := domain.ValidateWeek(set.Week); err != nil {
		return "", err
	}

	set.ID = newID(set.ID)
	set.CreatedAt, set.Seq = nextCreationStamp()

	if _, err := r.collection.InsertOne(ctx, set); err != nil {
		return "", err
	}
	return set.ID, nil
}

// GetByExerciseAndWeek returns the sets logged for an exercise in one week, oldest first.
func (r *mongoSetRepository) GetByExerciseAndWeek(ctx context.Context, exerciseID string, week int) ([]domain.Set, error) {
	return r.find(ctx, bson.M{"exercises": exerciseID, "week": week})
}

// GetByExerciseIDs returns every set of the given exercises, oldest first.
func (r *mongoSetRepository) GetByExerciseIDs(ctx context.Context, exerciseIDs []string) ([]domain.Set, error) {
	if len(exerciseIDs) == 0 {
		return []domain.Set{}, nil
	}
	return r.find(ctx, bson.M{"exercises": bson.M{"$in": exerciseIDs}})
}

func (r *mongoSetRepository) find(ctx context.Context, filter bson.M) ([]domain.Set, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "seq", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	sets := []domain.Set{}
	if err = cursor.All(ctx, &sets); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return sets, nil
}

// EnsureSetIndexes backs the exercise+week lookup used by the previous-week view.
func EnsureSetIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "exercises", Value: 1}, {Key: "week", Value: 1}, {Key: "createdAt", Value: 1}, {Key: "seq", Value: 1}},
		Options: options.Index(),
	})
	return err
}

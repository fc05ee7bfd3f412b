package mongo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"nclx/gymnotetaker/internal/config"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// ConnectDB establishes a connection to MongoDB using the provided URI.
func ConnectDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// The connection can succeed while the server is unresponsive, so ping it.
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = DisconnectDB(client)
		return nil, err
	}

	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes of every collection the repositories use.
func EnsureIndexes(ctx context.Context, db *mongo.Database, names config.CollectionsConfig) error {
	if err := EnsureAccountIndexes(ctx, db.Collection(names.Account)); err != nil {
		return err
	}
	if err := EnsureUserIndexes(ctx, db.Collection(names.User)); err != nil {
		return err
	}
	if err := EnsureWorkoutIndexes(ctx, db.Collection(names.Workout)); err != nil {
		return err
	}
	if err := EnsureExerciseIndexes(ctx, db.Collection(names.Exercise)); err != nil {
		return err
	}
	if err := EnsureSetIndexes(ctx, db.Collection(names.WorkoutSet)); err != nil {
		return err
	}
	return EnsureExportIndexes(ctx, db.Collection(names.Export))
}

func newID(current string) string {
	if current != "" {
		return current
	}
	return uuid.NewString()
}

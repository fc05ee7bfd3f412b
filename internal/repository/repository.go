package repository

import (
	"context"

	"nclx/gymnotetaker/internal/domain"
)

var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// AccountRepository stores login identities. Email is unique.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (string, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByID(ctx context.Context, id string) (*domain.Account, error)
}

// UserRepository stores profile documents, at most one per account.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (string, error)
	GetByAccountID(ctx context.Context, accountID string) (*domain.User, error)
}

type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Workout, error)
	GetByUserID(ctx context.Context, userID string) ([]domain.Workout, error)
}

// ExerciseRepository returns exercises of a workout ordered by position.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Exercise, error)
	GetByWorkoutID(ctx context.Context, workoutID string) ([]domain.Exercise, error)
}

// SetRepository is append-only. Reads are ordered by creation time ascending.
type SetRepository interface {
	Create(ctx context.Context, set *domain.Set) (string, error)
	GetByExerciseAndWeek(ctx context.Context, exerciseID string, week int) ([]domain.Set, error)
	GetByExerciseIDs(ctx context.Context, exerciseIDs []string) ([]domain.Set, error)
}

// ExportRepository keeps metadata of exported history files, newest first on read.
type ExportRepository interface {
	Create(ctx context.Context, export *domain.Export) (string, error)
	GetByAccountID(ctx context.Context, accountID string) ([]domain.Export, error)
}

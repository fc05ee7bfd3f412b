package tracker

import (
	"context"

	"nclx/gymnotetaker/internal/domain"
)

//go:generate mockgen -source=$GOFILE -destination=tracker_mocks_test.go -package=tracker_test

// Backend is the part of the backend client a workout session needs.
type Backend interface {
	FetchWorkout(ctx context.Context, workoutID string) (*domain.WorkoutDetails, error)
	CreateExerciseSet(ctx context.Context, weight float64, reps int, week, exerciseID string) (*domain.Set, error)
	FetchPreviousWeekData(ctx context.Context, exerciseID string, week int) ([]domain.Set, error)
}

package service

import (
	"context"
	"errors"
	"strings"

	"nclx/gymnotetaker/internal/domain"
	"nclx/gymnotetaker/internal/repository"
)

var (
	ErrWorkoutNotFound  = errors.New("workout not found")
	ErrNoExercises      = errors.New("no exercises found for this workout")
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrAccessDenied     = errors.New("access denied")
	ErrValidationFailed = errors.New("validation failed")
)

type WorkoutService interface {
	CreateWorkout(ctx context.Context, ownerID, name string) (*domain.Workout, error)
	AddExercise(ctx context.Context, requesterID, workoutID, name string) (*domain.Exercise, error)
	ListUserWorkouts(ctx context.Context, requesterID, userID string) ([]domain.Workout, error)
	FetchWorkout(ctx context.Context, requesterID, workoutID string) (*domain.WorkoutDetails, error)
}

type workoutService struct {
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.ExerciseRepository
}

func NewWorkoutService(workoutRepo repository.WorkoutRepository, exerciseRepo repository.ExerciseRepository) WorkoutService {
	return &workoutService{
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
	}
}

func (s *workoutService) CreateWorkout(ctx context.Context, ownerID, name string) (*domain.Workout, error) {
	name = strings.TrimSpace(name)
	if name == "" || ownerID == "" {
		return nil, ErrValidationFailed
	}

	workout := &domain.Workout{Name: name, UserID: ownerID}
	if _, err := s.workoutRepo.Create(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

// AddExercise appends an exercise after the ones the workout already has.
func (s *workoutService) AddExercise(ctx context.Context, requesterID, workoutID, name string) (*domain.Exercise, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrValidationFailed
	}

	if _, err := s.ownedWorkout(ctx, requesterID, workoutID); err != nil {
		return nil, err
	}

	existing, err := s.exerciseRepo.GetByWorkoutID(ctx, workoutID)
	if err != nil {
		return nil, err
	}

	exercise := &domain.Exercise{
		Name:      name,
		WorkoutID: workoutID,
		Position:  len(existing),
	}
	if _, err := s.exerciseRepo.Create(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *workoutService) ListUserWorkouts(ctx context.Context, requesterID, userID string) ([]domain.Workout, error) {
	if requesterID != userID {
		return nil, ErrAccessDenied
	}
	return s.workoutRepo.GetByUserID(ctx, userID)
}

func (s *workoutService) FetchWorkout(ctx context.Context, requesterID, workoutID string) (*domain.WorkoutDetails, error) {
	workout, err := s.ownedWorkout(ctx, requesterID, workoutID)
	if err != nil {
		return nil, err
	}

	exercises, err := s.exerciseRepo.GetByWorkoutID(ctx, workoutID)
	if err != nil {
		return nil, err
	}
	if len(exercises) == 0 {
		return nil, ErrNoExercises
	}

	return &domain.WorkoutDetails{Workout: *workout, Exercises: exercises}, nil
}

func (s *workoutService) ownedWorkout(ctx context.Context, requesterID, workoutID string) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if workout.UserID != requesterID {
		return nil, ErrAccessDenied
	}
	return workout, nil
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"

	"nclx/gymnotetaker/internal/domain"
	"nclx/gymnotetaker/internal/repository"
)

const (
	setCacheSize   = 16 * 1024 * 1024
	setCacheExpire = 5 * 60 // seconds
)

type SetService interface {
	CreateExerciseSet(ctx context.Context, requesterID, exerciseID string, weight float64, reps, week int) (*domain.Set, error)
	FetchWeek(ctx context.Context, requesterID, exerciseID string, week int) ([]domain.Set, error)
}

// setService caches week lookups per exercise. Creating a set evicts the
// entry for its exercise and week and bumps its generation; a lookup only
// fills the cache if the generation it read under is still current.
type setService struct {
	setRepo      repository.SetRepository
	exerciseRepo repository.ExerciseRepository
	workoutRepo  repository.WorkoutRepository
	cache        *freecache.Cache

	genMu       sync.Mutex
	generations map[string]uint64
}

func NewSetService(setRepo repository.SetRepository, exerciseRepo repository.ExerciseRepository, workoutRepo repository.WorkoutRepository) SetService {
	return &setService{
		setRepo:      setRepo,
		exerciseRepo: exerciseRepo,
		workoutRepo:  workoutRepo,
		cache:        freecache.NewCache(setCacheSize),
		generations:  make(map[string]uint64),
	}
}

func weekCacheKey(exerciseID string, week int) []byte {
	return []byte(fmt.Sprintf("sets::%s::%d", exerciseID, week))
}

func (s *setService) CreateExerciseSet(ctx context.Context, requesterID, exerciseID string, weight float64, reps, week int) (*domain.Set, error) {
	if err := domain.ValidateWeek(week); err != nil {
		return nil, err
	}
	if err := s.checkOwner(ctx, requesterID, exerciseID); err != nil {
		return nil, err
	}

	set := &domain.Set{
		Weight:     weight,
		Reps:       reps,
		Week:       week,
		ExerciseID: exerciseID,
	}
	if _, err := s.setRepo.Create(ctx, set); err != nil {
		return nil, err
	}

	s.invalidate(weekCacheKey(exerciseID, week))
	return set, nil
}

func (s *setService) invalidate(key []byte) {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	s.generations[string(key)]++
	s.cache.Del(key)
}

func (s *setService) generation(key []byte) uint64 {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	return s.generations[string(key)]
}

// fill stores data unless the key was invalidated after gen was read.
func (s *setService) fill(key []byte, gen uint64, data []byte) {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	if s.generations[string(key)] != gen {
		return
	}
	if err := s.cache.Set(key, data, setCacheExpire); err != nil {
		log.Warnf("failed to cache sets for %s: %s", key, err)
	}
}

// FetchWeek returns the sets of one week, oldest first, and an empty slice when none exist.
func (s *setService) FetchWeek(ctx context.Context, requesterID, exerciseID string, week int) ([]domain.Set, error) {
	if err := domain.ValidateWeek(week); err != nil {
		return nil, err
	}
	if err := s.checkOwner(ctx, requesterID, exerciseID); err != nil {
		return nil, err
	}

	key := weekCacheKey(exerciseID, week)
	if cached, err := s.cache.Get(key); err == nil {
		var sets []domain.Set
		if err := json.Unmarshal(cached, &sets); err == nil {
			return sets, nil
		}
		log.Errorf("failed to unmarshal cached sets for %s: %s", key, err)
	}

	gen := s.generation(key)
	sets, err := s.setRepo.GetByExerciseAndWeek(ctx, exerciseID, week)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(sets); err == nil {
		s.fill(key, gen, data)
	}
	return sets, nil
}

func (s *setService) checkOwner(ctx context.Context, requesterID, exerciseID string) error {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}

	workout, err := s.workoutRepo.GetByID(ctx, exercise.WorkoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}
	if workout.UserID != requesterID {
		return ErrAccessDenied
	}
	return nil
}

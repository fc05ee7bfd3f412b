package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"nclx/gymnotetaker/internal/domain"
	"nclx/gymnotetaker/internal/repository"
	"nclx/gymnotetaker/internal/storage"
)

var ErrExportUnavailable = errors.New("history export is not configured")

// History is the JSON document written by an export.
type History struct {
	AccountID  string           `json:"accountId"`
	ExportedAt time.Time        `json:"exportedAt"`
	Workouts   []WorkoutHistory `json:"workouts"`
}

type WorkoutHistory struct {
	domain.Workout
	Exercises []ExerciseHistory `json:"exercises"`
}

type ExerciseHistory struct {
	domain.Exercise
	Sets []domain.Set `json:"sets"`
}

type ExportService interface {
	BuildHistory(ctx context.Context, accountID string) (*History, error)
	// Export uploads the account's history and returns a presigned download URL.
	Export(ctx context.Context, accountID string) (string, error)
	ListExports(ctx context.Context, accountID string) ([]domain.Export, error)
}

type exportService struct {
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.ExerciseRepository
	setRepo      repository.SetRepository
	exportRepo   repository.ExportRepository
	files        storage.FileStorage
	urlExpiry    time.Duration
}

// NewExportService accepts a nil FileStorage; Export then fails with ErrExportUnavailable.
func NewExportService(
	workoutRepo repository.WorkoutRepository,
	exerciseRepo repository.ExerciseRepository,
	setRepo repository.SetRepository,
	exportRepo repository.ExportRepository,
	files storage.FileStorage,
) ExportService {
	return &exportService{
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
		setRepo:      setRepo,
		exportRepo:   exportRepo,
		files:        files,
		urlExpiry:    storage.DefaultPresignedURLExpiry,
	}
}

func (s *exportService) BuildHistory(ctx context.Context, accountID string) (*History, error) {
	workouts, err := s.workoutRepo.GetByUserID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}

	history := &History{
		AccountID:  accountID,
		ExportedAt: time.Now().UTC(),
		Workouts:   make([]WorkoutHistory, 0, len(workouts)),
	}

	for _, w := range workouts {
		exercises, err := s.exerciseRepo.GetByWorkoutID(ctx, w.ID)
		if err != nil {
			return nil, fmt.Errorf("list exercises of %s: %w", w.ID, err)
		}

		ids := make([]string, 0, len(exercises))
		for _, e := range exercises {
			ids = append(ids, e.ID)
		}
		sets, err := s.setRepo.GetByExerciseIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("list sets of %s: %w", w.ID, err)
		}

		byExercise := make(map[string][]domain.Set, len(exercises))
		for _, set := range sets {
			byExercise[set.ExerciseID] = append(byExercise[set.ExerciseID], set)
		}

		wh := WorkoutHistory{Workout: w, Exercises: make([]ExerciseHistory, 0, len(exercises))}
		for _, e := range exercises {
			exerciseSets := byExercise[e.ID]
			if exerciseSets == nil {
				exerciseSets = []domain.Set{}
			}
			wh.Exercises = append(wh.Exercises, ExerciseHistory{Exercise: e, Sets: exerciseSets})
		}
		history.Workouts = append(history.Workouts, wh)
	}

	return history, nil
}

func (s *exportService) Export(ctx context.Context, accountID string) (string, error) {
	if s.files == nil {
		return "", ErrExportUnavailable
	}

	history, err := s.BuildHistory(ctx, accountID)
	if err != nil {
		return "", err
	}
	body, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal history: %w", err)
	}

	objectKey := fmt.Sprintf("exports/%s/%s-%s.json", accountID, history.ExportedAt.Format("20060102T150405Z"), uuid.NewString()[:8])
	if err := s.files.PutObject(ctx, objectKey, "application/json", body); err != nil {
		return "", fmt.Errorf("upload export: %w", err)
	}

	url, err := s.files.GeneratePresignedDownloadURL(ctx, objectKey, s.urlExpiry)
	if err != nil {
		// nobody can reach the object without a URL
		if delErr := s.files.DeleteObject(ctx, objectKey); delErr != nil {
			log.Warnf("export: cleanup of %s failed: %s", objectKey, delErr)
		}
		return "", fmt.Errorf("presign export: %w", err)
	}

	record := &domain.Export{
		AccountID:    accountID,
		ObjectKey:    objectKey,
		ContentType:  "application/json",
		Size:         int64(len(body)),
		WorkoutCount: len(history.Workouts),
	}
	if _, err := s.exportRepo.Create(ctx, record); err != nil {
		// the file is already downloadable; only the listing misses it
		log.Warnf("export: record of %s not saved: %s", objectKey, err)
	}

	log.Infof("export: %d workouts for account %s written to %s", len(history.Workouts), accountID, objectKey)
	return url, nil
}

func (s *exportService) ListExports(ctx context.Context, accountID string) ([]domain.Export, error) {
	exports, err := s.exportRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	return exports, nil
}

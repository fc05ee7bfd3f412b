// Package memory keeps every collection in process memory. It backs the
// "memory" database driver and the handler tests.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"nclx/gymnotetaker/internal/domain"
	"nclx/gymnotetaker/internal/repository"
)

var (
	_ repository.AccountRepository  = (*AccountRepository)(nil)
	_ repository.UserRepository     = (*UserRepository)(nil)
	_ repository.WorkoutRepository  = (*WorkoutRepository)(nil)
	_ repository.ExerciseRepository = (*ExerciseRepository)(nil)
	_ repository.SetRepository      = (*SetRepository)(nil)
	_ repository.ExportRepository   = (*ExportRepository)(nil)
)

// now is monotonic per process so that creation order survives equal wall clocks.
var (
	clockMu sync.Mutex
	lastNow time.Time
)

func now() time.Time {
	clockMu.Lock()
	defer clockMu.Unlock()
	t := time.Now().UTC()
	if !t.After(lastNow) {
		t = lastNow.Add(time.Microsecond)
	}
	lastNow = t
	return t
}

func newID(current string) string {
	if current != "" {
		return current
	}
	return uuid.NewString()
}

type AccountRepository struct {
	mutex    sync.RWMutex
	accounts map[string]domain.Account
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: make(map[string]domain.Account)}
}

func (r *AccountRepository) Create(_ context.Context, account *domain.Account) (string, error) {
	if account.Email == "" || account.PasswordHash == "" {
		return "", errors.New("account email and password hash are required")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, existing := range r.accounts {
		if existing.Email == account.Email {
			return "", repository.ErrDuplicate
		}
	}

	account.ID = newID(account.ID)
	account.CreatedAt = now()
	r.accounts[account.ID] = *account
	return account.ID, nil
}

func (r *AccountRepository) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, account := range r.accounts {
		if account.Email == email {
			return &account, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *AccountRepository) GetByID(_ context.Context, id string) (*domain.Account, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &account, nil
}

type UserRepository struct {
	mutex     sync.RWMutex
	byAccount map[string]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byAccount: make(map[string]domain.User)}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (string, error) {
	if user.AccountID == "" || user.Email == "" {
		return "", errors.New("profile account id and email are required")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.byAccount[user.AccountID]; ok {
		return "", repository.ErrDuplicate
	}
	user.ID = newID(user.ID)
	user.CreatedAt = now()
	r.byAccount[user.AccountID] = *user
	return user.ID, nil
}

func (r *UserRepository) GetByAccountID(_ context.Context, accountID string) (*domain.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	user, ok := r.byAccount[accountID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

type WorkoutRepository struct {
	mutex    sync.RWMutex
	workouts map[string]domain.Workout
}

func NewWorkoutRepository() *WorkoutRepository {
	return &WorkoutRepository{workouts: make(map[string]domain.Workout)}
}

func (r *WorkoutRepository) Create(_ context.Context, workout *domain.Workout) (string, error) {
	if workout.UserID == "" || workout.Name == "" {
		return "", errors.New("workout requires an owner and a name")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	workout.ID = newID(workout.ID)
	workout.CreatedAt = now()
	r.workouts[workout.ID] = *workout
	return workout.ID, nil
}

func (r *WorkoutRepository) GetByID(_ context.Context, id string) (*domain.Workout, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	workout, ok := r.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &workout, nil
}

// GetByUserID makes no ordering promise, like the mongo driver.
func (r *WorkoutRepository) GetByUserID(_ context.Context, userID string) ([]domain.Workout, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	workouts := []domain.Workout{}
	for _, w := range r.workouts {
		if w.UserID == userID {
			workouts = append(workouts, w)
		}
	}
	return workouts, nil
}

type ExerciseRepository struct {
	mutex     sync.RWMutex
	exercises map[string]domain.Exercise
}

func NewExerciseRepository() *ExerciseRepository {
	return &ExerciseRepository{exercises: make(map[string]domain.Exercise)}
}

func (r *ExerciseRepository) Create(_ context.Context, exercise *domain.Exercise) (string, error) {
	if exercise.Name == "" || exercise.WorkoutID == "" {
		return "", errors.New("exercise name and workout ID are required")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	exercise.ID = newID(exercise.ID)
	exercise.CreatedAt = now()
	r.exercises[exercise.ID] = *exercise
	return exercise.ID, nil
}

func (r *ExerciseRepository) GetByID(_ context.Context, id string) (*domain.Exercise, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	exercise, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &exercise, nil
}

func (r *ExerciseRepository) GetByWorkoutID(_ context.Context, workoutID string) ([]domain.Exercise, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	exercises := []domain.Exercise{}
	for _, e := range r.exercises {
		if e.WorkoutID == workoutID {
			exercises = append(exercises, e)
		}
	}
	sort.Slice(exercises, func(i, j int) bool {
		if exercises[i].Position != exercises[j].Position {
			return exercises[i].Position < exercises[j].Position
		}
		return exercises[i].CreatedAt.Before(exercises[j].CreatedAt)
	})
	return exercises, nil
}

// SetRepository keeps sets in insertion order, which is creation order.
type SetRepository struct {
	mutex sync.RWMutex
	sets  []domain.Set
}

func NewSetRepository() *SetRepository {
	return &SetRepository{}
}

func (r *SetRepository) Create(_ context.Context, set *domain.Set) (string, error) {
	if set.ExerciseID == "" {
		return "", errors.New("set requires an exercise ID")
	}
	if err := domain.ValidateWeek(set.Week); err != nil {
		return "", err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	set.ID = newID(set.ID)
	set.CreatedAt = now()
	r.sets = append(r.sets, *set)
	return set.ID, nil
}

func (r *SetRepository) GetByExerciseAndWeek(_ context.Context, exerciseID string, week int) ([]domain.Set, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	sets := []domain.Set{}
	for _, s := range r.sets {
		if s.ExerciseID == exerciseID && s.Week == week {
			sets = append(sets, s)
		}
	}
	return sets, nil
}

func (r *SetRepository) GetByExerciseIDs(_ context.Context, exerciseIDs []string) ([]domain.Set, error) {
	wanted := make(map[string]struct{}, len(exerciseIDs))
	for _, id := range exerciseIDs {
		wanted[id] = struct{}{}
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	sets := []domain.Set{}
	for _, s := range r.sets {
		if _, ok := wanted[s.ExerciseID]; ok {
			sets = append(sets, s)
		}
	}
	return sets, nil
}

// Count reports the number of stored sets.
func (r *SetRepository) Count() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.sets)
}

type ExportRepository struct {
	mutex   sync.RWMutex
	exports []domain.Export
}

func NewExportRepository() *ExportRepository {
	return &ExportRepository{}
}

func (r *ExportRepository) Create(_ context.Context, export *domain.Export) (string, error) {
	if export.AccountID == "" || export.ObjectKey == "" {
		return "", errors.New("export requires accountId and objectKey")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, existing := range r.exports {
		if existing.ObjectKey == export.ObjectKey {
			return "", repository.ErrDuplicate
		}
	}

	export.ID = newID(export.ID)
	export.CreatedAt = now()
	r.exports = append(r.exports, *export)
	return export.ID, nil
}

// GetByAccountID returns the account's exports, newest first.
func (r *ExportRepository) GetByAccountID(_ context.Context, accountID string) ([]domain.Export, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	exports := []domain.Export{}
	for i := len(r.exports) - 1; i >= 0; i-- {
		if r.exports[i].AccountID == accountID {
			exports = append(exports, r.exports[i])
		}
	}
	return exports, nil
}

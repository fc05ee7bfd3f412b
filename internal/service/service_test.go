package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"nclx/gymnotetaker/internal/domain"
	"nclx/gymnotetaker/internal/repository"
	"nclx/gymnotetaker/internal/repository/memory"
	"nclx/gymnotetaker/internal/session"
)

type fixture struct {
	accounts AccountService
	profiles ProfileService
	workouts WorkoutService
	sets     SetService
	setRepo  *memory.SetRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	workoutRepo := memory.NewWorkoutRepository()
	exerciseRepo := memory.NewExerciseRepository()
	setRepo := memory.NewSetRepository()

	accounts := NewAccountService(memory.NewAccountRepository(), session.NewMemoryStore("secret", time.Hour))
	accounts.(*accountService).bcryptCost = bcrypt.MinCost

	return &fixture{
		accounts: accounts,
		profiles: NewProfileService(memory.NewUserRepository()),
		workouts: NewWorkoutService(workoutRepo, exerciseRepo),
		sets:     NewSetService(setRepo, exerciseRepo, workoutRepo),
		setRepo:  setRepo,
	}
}

func TestAccountService_RegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	email := gofakeit.Email()

	_, err := f.accounts.Register(ctx, "not-an-email", "pw", "bob")
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
	_, err = f.accounts.Register(ctx, email, "", "bob")
	assert.ErrorIs(t, err, ErrMissingCredentials)

	account, err := f.accounts.Register(ctx, email, "hunter22", "bob")
	require.NoError(t, err)
	assert.NotEmpty(t, account.ID)
	assert.Empty(t, account.PasswordHash)

	_, err = f.accounts.Register(ctx, email, "other", "bob2")
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, _, err = f.accounts.Login(ctx, email, "wrong")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	_, _, err = f.accounts.Login(ctx, "nobody@x.io", "hunter22")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	token, loggedIn, err := f.accounts.Login(ctx, email, "hunter22")
	require.NoError(t, err)
	assert.Equal(t, account.ID, loggedIn.ID)

	accountID, err := f.accounts.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, accountID)

	current, err := f.accounts.Current(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, "bob", current.Username)

	require.NoError(t, f.accounts.Logout(ctx, token))
	_, err = f.accounts.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrSessionInvalid)
	assert.ErrorIs(t, f.accounts.Logout(ctx, token), ErrSessionInvalid)
}

func TestProfileService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.profiles.CreateProfile(ctx, "acc-1", "a@b.co", "alice")
	require.NoError(t, err)
	assert.Equal(t, "acc-1", user.ID)
	assert.Equal(t, "acc-1", user.AccountID)

	_, err = f.profiles.CreateProfile(ctx, "acc-1", "a@b.co", "alice")
	assert.ErrorIs(t, err, ErrProfileExists)

	_, err = f.profiles.GetByAccountID(ctx, "acc-2")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestWorkoutService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.workouts.CreateWorkout(ctx, "u1", "   ")
	assert.ErrorIs(t, err, ErrValidationFailed)

	workout, err := f.workouts.CreateWorkout(ctx, "u1", "Push Day")
	require.NoError(t, err)

	_, err = f.workouts.FetchWorkout(ctx, "u1", workout.ID)
	assert.ErrorIs(t, err, ErrNoExercises)

	for _, name := range []string{"Bench", "OHP"} {
		_, err := f.workouts.AddExercise(ctx, "u1", workout.ID, name)
		require.NoError(t, err)
	}
	_, err = f.workouts.AddExercise(ctx, "u2", workout.ID, "Dips")
	assert.ErrorIs(t, err, ErrAccessDenied)

	details, err := f.workouts.FetchWorkout(ctx, "u1", workout.ID)
	require.NoError(t, err)
	assert.Equal(t, "Push Day", details.Name)
	require.Len(t, details.Exercises, 2)
	assert.Equal(t, "Bench", details.Exercises[0].Name)
	assert.Equal(t, 1, details.Exercises[1].Position)

	_, err = f.workouts.FetchWorkout(ctx, "u1", "missing")
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
	_, err = f.workouts.FetchWorkout(ctx, "u2", workout.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	list, err := f.workouts.ListUserWorkouts(ctx, "u1", "u1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
	_, err = f.workouts.ListUserWorkouts(ctx, "u2", "u1")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestSetService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	workout, err := f.workouts.CreateWorkout(ctx, "u1", "Leg Day")
	require.NoError(t, err)
	squat, err := f.workouts.AddExercise(ctx, "u1", workout.ID, "Squat")
	require.NoError(t, err)

	_, err = f.sets.CreateExerciseSet(ctx, "u1", squat.ID, 100, 5, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidWeek)
	_, err = f.sets.CreateExerciseSet(ctx, "u1", "missing", 100, 5, 1)
	assert.ErrorIs(t, err, ErrExerciseNotFound)
	_, err = f.sets.CreateExerciseSet(ctx, "u2", squat.ID, 100, 5, 1)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, 0, f.setRepo.Count())

	_, err = f.sets.CreateExerciseSet(ctx, "u1", squat.ID, 100, 5, 1)
	require.NoError(t, err)

	week1, err := f.sets.FetchWeek(ctx, "u1", squat.ID, 1)
	require.NoError(t, err)
	require.Len(t, week1, 1)

	// served from cache until a create for the same week evicts it
	_, err = f.sets.CreateExerciseSet(ctx, "u1", squat.ID, 105, 3, 1)
	require.NoError(t, err)
	week1, err = f.sets.FetchWeek(ctx, "u1", squat.ID, 1)
	require.NoError(t, err)
	require.Len(t, week1, 2)
	assert.Equal(t, 100.0, week1[0].Weight)
	assert.Equal(t, 105.0, week1[1].Weight)

	empty, err := f.sets.FetchWeek(ctx, "u1", squat.ID, 2)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = f.sets.FetchWeek(ctx, "u1", squat.ID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidWeek)
}

// interleavingSetRepo runs afterRead once, between reading a week and
// handing the snapshot back.
type interleavingSetRepo struct {
	repository.SetRepository
	afterRead func()
}

func (r *interleavingSetRepo) GetByExerciseAndWeek(ctx context.Context, exerciseID string, week int) ([]domain.Set, error) {
	sets, err := r.SetRepository.GetByExerciseAndWeek(ctx, exerciseID, week)
	if r.afterRead != nil {
		hook := r.afterRead
		r.afterRead = nil
		hook()
	}
	return sets, err
}

func TestSetService_CreateDuringLookupIsNotHiddenByCache(t *testing.T) {
	ctx := context.Background()
	workoutRepo := memory.NewWorkoutRepository()
	exerciseRepo := memory.NewExerciseRepository()
	setRepo := &interleavingSetRepo{SetRepository: memory.NewSetRepository()}
	workouts := NewWorkoutService(workoutRepo, exerciseRepo)
	sets := NewSetService(setRepo, exerciseRepo, workoutRepo)

	workout, err := workouts.CreateWorkout(ctx, "u1", "Push Day")
	require.NoError(t, err)
	bench, err := workouts.AddExercise(ctx, "u1", workout.ID, "Bench")
	require.NoError(t, err)
	_, err = sets.CreateExerciseSet(ctx, "u1", bench.ID, 80, 8, 1)
	require.NoError(t, err)

	setRepo.afterRead = func() {
		_, err := sets.CreateExerciseSet(ctx, "u1", bench.ID, 82.5, 6, 1)
		require.NoError(t, err)
	}
	snapshot, err := sets.FetchWeek(ctx, "u1", bench.ID, 1)
	require.NoError(t, err)
	assert.Len(t, snapshot, 1)

	week1, err := sets.FetchWeek(ctx, "u1", bench.ID, 1)
	require.NoError(t, err)
	require.Len(t, week1, 2)
	assert.Equal(t, 82.5, week1[1].Weight)
}

type fakeFiles struct {
	objects    map[string][]byte
	deleted    []string
	presignErr error
}

func (f *fakeFiles) PutObject(_ context.Context, key, _ string, body []byte) error {
	f.objects[key] = body
	return nil
}

func (f *fakeFiles) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return "https://files.test/" + key, nil
}

func (f *fakeFiles) DeleteObject(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func TestExportService(t *testing.T) {
	ctx := context.Background()
	workoutRepo := memory.NewWorkoutRepository()
	exerciseRepo := memory.NewExerciseRepository()
	setRepo := memory.NewSetRepository()
	exportRepo := memory.NewExportRepository()
	workouts := NewWorkoutService(workoutRepo, exerciseRepo)
	sets := NewSetService(setRepo, exerciseRepo, workoutRepo)

	workout, err := workouts.CreateWorkout(ctx, "u1", "Pull Day")
	require.NoError(t, err)
	rows, err := workouts.AddExercise(ctx, "u1", workout.ID, "Rows")
	require.NoError(t, err)
	_, err = workouts.AddExercise(ctx, "u1", workout.ID, "Curls")
	require.NoError(t, err)
	_, err = sets.CreateExerciseSet(ctx, "u1", rows.ID, 60, 10, 1)
	require.NoError(t, err)

	unavailable := NewExportService(workoutRepo, exerciseRepo, setRepo, exportRepo, nil)
	_, err = unavailable.Export(ctx, "u1")
	assert.ErrorIs(t, err, ErrExportUnavailable)

	files := &fakeFiles{objects: map[string][]byte{}}
	export := NewExportService(workoutRepo, exerciseRepo, setRepo, exportRepo, files)

	url, err := export.Export(ctx, "u1")
	require.NoError(t, err)
	assert.Contains(t, url, "https://files.test/exports/u1/")
	require.Len(t, files.objects, 1)

	for _, body := range files.objects {
		var history History
		require.NoError(t, json.Unmarshal(body, &history))
		assert.Equal(t, "u1", history.AccountID)
		require.Len(t, history.Workouts, 1)
		require.Len(t, history.Workouts[0].Exercises, 2)
		assert.Len(t, history.Workouts[0].Exercises[0].Sets, 1)
		assert.Empty(t, history.Workouts[0].Exercises[1].Sets)
	}

	records, err := export.ListExports(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].WorkoutCount)
	assert.Equal(t, int64(len(files.objects[records[0].ObjectKey])), records[0].Size)

	files.presignErr = errors.New("signing failed")
	_, err = export.Export(ctx, "u1")
	assert.Error(t, err)
	assert.Len(t, files.deleted, 1)

	records, err = export.ListExports(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

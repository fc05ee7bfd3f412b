// Package tracker keeps the state of one workout session: the week being
// logged, the weight/reps rows typed per exercise and the sets logged the
// week before.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"nclx/gymnotetaker/internal/appstate"
	"nclx/gymnotetaker/internal/domain"
)

const DefaultMaxRows = 4

var (
	ErrNotReady        = errors.New("session is not loaded")
	ErrInvalidInput    = errors.New("weight and reps must be numbers")
	ErrUnknownExercise = errors.New("exercise is not part of this workout")
	ErrRowOutOfRange   = errors.New("row does not exist")
)

// Status is the load state of a Tracker.
type Status int

const (
	StatusLoading Status = iota
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "loading"
	}
}

type Field int

const (
	FieldWeight Field = iota
	FieldReps
)

// Row is one set as typed, before it is saved.
type Row struct {
	Weight string
	Reps   string
	Week   int
}

func (r Row) complete() bool {
	return strings.TrimSpace(r.Weight) != "" && strings.TrimSpace(r.Reps) != ""
}

type SaveResult struct {
	Saved   int
	Skipped int
}

type RefreshOutcome int

const (
	RefreshedAll RefreshOutcome = iota
	RefreshedPartial
	RefreshedNone
)

func (o RefreshOutcome) String() string {
	switch o {
	case RefreshedAll:
		return "all"
	case RefreshedPartial:
		return "partial"
	default:
		return "none"
	}
}

// RefreshResult describes the previous-week refresh done by Advance.
// Err combines every failed fetch.
type RefreshResult struct {
	Outcome   RefreshOutcome
	Refreshed int
	Failed    []string
	Err       error
}

type Option func(*Tracker)

func WithMaxRows(n int) Option {
	return func(t *Tracker) {
		if n > 0 {
			t.maxRows = n
		}
	}
}

// Tracker holds the input rows and last week's sets of one workout session.
type Tracker struct {
	backend   Backend
	state     *appstate.State
	workoutID string
	maxRows   int

	mu       sync.Mutex
	status   Status
	workout  *domain.WorkoutDetails
	week     int
	rows     map[string][]Row
	previous map[string][]domain.Set
}

// New returns a Tracker in StatusLoading; call Load before anything else.
func New(backend Backend, state *appstate.State, workoutID string, opts ...Option) *Tracker {
	t := &Tracker{
		backend:   backend,
		state:     state,
		workoutID: workoutID,
		maxRows:   DefaultMaxRows,
		status:    StatusLoading,
		week:      1,
		rows:      make(map[string][]Row),
		previous:  make(map[string][]domain.Set),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Load fetches the workout and seeds one empty row per exercise for the
// current week. Past week 1 it also loads the previous week's sets.
func (t *Tracker) Load(ctx context.Context) error {
	week := t.state.WeekFor(t.workoutID)

	t.mu.Lock()
	t.status = StatusLoading
	t.week = week
	t.mu.Unlock()

	details, err := t.backend.FetchWorkout(ctx, t.workoutID)
	if err != nil {
		t.mu.Lock()
		t.status = StatusFailed
		t.mu.Unlock()
		log.Errorf("tracker: load workout %s: %s", t.workoutID, err)
		return err
	}

	rows := make(map[string][]Row, len(details.Exercises))
	previous := make(map[string][]domain.Set, len(details.Exercises))
	for _, exercise := range details.Exercises {
		rows[exercise.ID] = []Row{{Week: week}}
		if week <= 1 {
			continue
		}
		sets, err := t.backend.FetchPreviousWeekData(ctx, exercise.ID, week-1)
		if err != nil {
			log.Warnf("tracker: previous week for %s: %s", exercise.ID, err)
			continue
		}
		previous[exercise.ID] = sets
	}

	t.mu.Lock()
	t.workout = details
	t.rows = rows
	t.previous = previous
	t.status = StatusReady
	t.mu.Unlock()
	t.state.SetWeek(t.workoutID, week)
	return nil
}

func (t *Tracker) SetInput(exerciseID string, row int, field Field, value string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	rows, ok := t.rows[exerciseID]
	if !ok {
		return ErrUnknownExercise
	}
	if row < 0 || row >= len(rows) {
		return ErrRowOutOfRange
	}
	switch field {
	case FieldWeight:
		rows[row].Weight = value
	case FieldReps:
		rows[row].Reps = value
	}
	return nil
}

// AddRow appends an empty row unless the exercise already has the maximum.
func (t *Tracker) AddRow(exerciseID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	rows, ok := t.rows[exerciseID]
	if !ok || len(rows) >= t.maxRows {
		return false
	}
	t.rows[exerciseID] = append(rows, Row{Week: t.week})
	return true
}

// Save stores every complete row, exercise by exercise, stopping at the
// first failure. Rows missing weight or reps are skipped. The rest timer
// is triggered only when everything was saved.
func (t *Tracker) Save(ctx context.Context) (SaveResult, error) {
	t.mu.Lock()
	if t.status != StatusReady {
		t.mu.Unlock()
		return SaveResult{}, ErrNotReady
	}
	exercises := t.workout.Exercises
	pending := make(map[string][]Row, len(t.rows))
	for id, rows := range t.rows {
		pending[id] = append([]Row(nil), rows...)
	}
	t.mu.Unlock()

	var result SaveResult
	for _, exercise := range exercises {
		for _, row := range pending[exercise.ID] {
			if !row.complete() {
				result.Skipped++
				continue
			}
			weight, err := strconv.ParseFloat(strings.TrimSpace(row.Weight), 64)
			if err != nil {
				return result, fmt.Errorf("%s weight %q: %w", exercise.Name, row.Weight, ErrInvalidInput)
			}
			reps, err := strconv.Atoi(strings.TrimSpace(row.Reps))
			if err != nil {
				return result, fmt.Errorf("%s reps %q: %w", exercise.Name, row.Reps, ErrInvalidInput)
			}
			if _, err := t.backend.CreateExerciseSet(ctx, weight, reps, strconv.Itoa(row.Week), exercise.ID); err != nil {
				return result, fmt.Errorf("save %s: %w", exercise.Name, err)
			}
			result.Saved++
		}
	}

	t.state.TriggerTimer()
	return result, nil
}

// Advance starts the next week: every exercise goes back to one empty row
// and the week just finished becomes the previous week, fetched for all
// exercises concurrently. Slots whose fetch failed are left empty.
func (t *Tracker) Advance(ctx context.Context) RefreshResult {
	t.mu.Lock()
	if t.status != StatusReady {
		t.mu.Unlock()
		return RefreshResult{Outcome: RefreshedNone, Err: ErrNotReady}
	}
	finished := t.week
	t.week++
	week := t.week
	exercises := t.workout.Exercises
	for _, exercise := range exercises {
		t.rows[exercise.ID] = []Row{{Week: week}}
	}
	t.mu.Unlock()
	t.state.SetWeek(t.workoutID, week)

	var (
		wg     sync.WaitGroup
		errMu  sync.Mutex
		errs   error
		failed []string
	)
	for _, exercise := range exercises {
		wg.Add(1)
		go func(exerciseID string) {
			defer wg.Done()
			sets, err := t.backend.FetchPreviousWeekData(ctx, exerciseID, finished)

			t.mu.Lock()
			if err != nil {
				delete(t.previous, exerciseID)
			} else {
				t.previous[exerciseID] = sets
			}
			t.mu.Unlock()

			if err != nil {
				errMu.Lock()
				errs = multierr.Append(errs, fmt.Errorf("exercise %s: %w", exerciseID, err))
				failed = append(failed, exerciseID)
				errMu.Unlock()
			}
		}(exercise.ID)
	}
	wg.Wait()

	res := RefreshResult{
		Refreshed: len(exercises) - len(failed),
		Failed:    failed,
		Err:       errs,
	}
	switch {
	case len(failed) == 0:
		res.Outcome = RefreshedAll
	case len(failed) == len(exercises):
		res.Outcome = RefreshedNone
	default:
		res.Outcome = RefreshedPartial
	}
	if errs != nil {
		log.Warnf("tracker: previous week refresh %s: %s", res.Outcome, errs)
	}
	return res
}

func (t *Tracker) Week() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.week
}

func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

func (t *Tracker) WorkoutName() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.workout == nil {
		return ""
	}
	return t.workout.Name
}

// Exercises returns the workout's exercises in order.
func (t *Tracker) Exercises() []domain.Exercise {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.workout == nil {
		return nil
	}
	return append([]domain.Exercise(nil), t.workout.Exercises...)
}

func (t *Tracker) Rows(exerciseID string) []Row {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Row(nil), t.rows[exerciseID]...)
}

// Previous returns last week's sets for the exercise, oldest first.
func (t *Tracker) Previous(exerciseID string) []domain.Set {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]domain.Set(nil), t.previous[exerciseID]...)
}

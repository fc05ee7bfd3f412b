package backend

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAuthentication    = errors.New("invalid email or password")
	ErrEmailTaken        = errors.New("email already registered")
	ErrWorkoutNotFound   = errors.New("workout not found")
	ErrNoExercises       = errors.New("workout has no exercises")
	ErrExportUnavailable = errors.New("history export is not available")
	ErrNotSignedIn       = errors.New("not signed in")
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: %s %s returned %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

func statusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// PartialWorkoutError is returned by CreateWorkout when the workout was
// stored but not every exercise could be attached. Nothing is rolled back.
type PartialWorkoutError struct {
	WorkoutID string
	Created   []string
	Failed    string
	Err       error
}

func (e *PartialWorkoutError) Error() string {
	return fmt.Sprintf("workout %s created with exercises [%s], failed at %q: %s",
		e.WorkoutID, strings.Join(e.Created, ", "), e.Failed, e.Err)
}

func (e *PartialWorkoutError) Unwrap() error {
	return e.Err
}

// Package backend is the client side of the hosted backend. Screens and the
// session tracker only talk to the server through Client.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"nclx/gymnotetaker/internal/config"
	"nclx/gymnotetaker/internal/domain"
)

const (
	headerPlatform = "X-Platform"
	headerProject  = "X-Project"
)

// Session is what a successful sign-in hands back.
type Session struct {
	Token     string
	AccountID string
	Email     string
	Username  string
}

// Client talks to the hosted backend and holds the current session token.
type Client struct {
	baseURL    string
	platform   string
	projectID  string
	httpClient *http.Client

	mu    sync.Mutex
	token string
}

// New builds a signed-out Client. A zero timeout means 30 seconds.
func New(cfg config.BackendConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.Endpoint, "/"),
		platform:   cfg.Platform,
		projectID:  cfg.ProjectID,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *Client) HasSession() bool {
	return c.Token() != ""
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

type accountDTO struct {
	AccountID string `json:"accountId"`
	Email     string `json:"email"`
	Username  string `json:"username"`
}

type loginDTO struct {
	Token   string     `json:"token"`
	Account accountDTO `json:"account"`
}

type errorDTO struct {
	Error string `json:"error"`
}

// do sends body as JSON and decodes a 2xx answer into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("backend: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerPlatform, c.platform)
	req.Header.Set(headerProject, c.projectID)
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("backend: read body: %w", err)
	}
	log.Debugf("backend: %s %s -> %d", method, path, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Method: method, Path: path, StatusCode: resp.StatusCode}
		var e errorDTO
		if json.Unmarshal(respBody, &e) == nil && e.Error != "" {
			apiErr.Message = e.Error
		} else {
			apiErr.Message = strings.TrimSpace(string(respBody))
		}
		return apiErr
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("backend: decode %s: %w", path, err)
	}
	return nil
}

// CreateAccount registers, signs in and creates the profile linking the
// new account to email and username.
func (c *Client) CreateAccount(ctx context.Context, email, password, username string) (*domain.User, error) {
	if err := domain.ValidateEmail(email); err != nil {
		return nil, err
	}

	var account accountDTO
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", nil, map[string]string{
		"email":    email,
		"password": password,
		"username": username,
	}, &account)
	if err != nil {
		if statusOf(err) == http.StatusConflict {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if _, err := c.SignIn(ctx, email, password); err != nil {
		return nil, fmt.Errorf("sign in after registration: %w", err)
	}

	var user domain.User
	err = c.do(ctx, http.MethodPost, "/api/v1/users", nil, map[string]string{
		"email":    email,
		"username": username,
	}, &user)
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return &user, nil
}

// SignIn drops any session this client still holds, ignoring failures,
// then opens a new one.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	if err := domain.ValidateEmail(email); err != nil {
		return nil, err
	}

	if c.HasSession() {
		if err := c.do(ctx, http.MethodDelete, "/api/v1/auth/session", nil, nil, nil); err != nil {
			log.Debugf("backend: dropping previous session: %s", err)
		}
		c.setToken("")
	}

	var login loginDTO
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", nil, map[string]string{
		"email":    email,
		"password": password,
	}, &login)
	if err != nil {
		switch statusOf(err) {
		case http.StatusUnauthorized, http.StatusBadRequest:
			return nil, ErrAuthentication
		}
		return nil, err
	}

	c.setToken(login.Token)
	return &Session{
		Token:     login.Token,
		AccountID: login.Account.AccountID,
		Email:     login.Account.Email,
		Username:  login.Account.Username,
	}, nil
}

// SignOut never fails. The local token is kept if the backend call fails.
func (c *Client) SignOut(ctx context.Context) {
	if !c.HasSession() {
		return
	}
	if err := c.do(ctx, http.MethodDelete, "/api/v1/auth/session", nil, nil, nil); err != nil {
		log.Errorf("sign out: %s", err)
		return
	}
	c.setToken("")
}

// GetCurrentUser returns nil without error when nobody is signed in.
func (c *Client) GetCurrentUser(ctx context.Context) (*domain.User, error) {
	if !c.HasSession() {
		return nil, nil
	}
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/api/v1/me", nil, nil, &user); err != nil {
		if statusOf(err) == http.StatusUnauthorized {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// CreateWorkout stores the workout, then each exercise in order.
// A failure part way through returns the workout and a *PartialWorkoutError.
func (c *Client) CreateWorkout(ctx context.Context, userID, name string, exerciseNames []string) (*domain.Workout, error) {
	var workout domain.Workout
	err := c.do(ctx, http.MethodPost, "/api/v1/workouts", nil, map[string]string{
		"name":  name,
		"users": userID,
	}, &workout)
	if err != nil {
		return nil, fmt.Errorf("create workout: %w", err)
	}

	path := "/api/v1/workouts/" + url.PathEscape(workout.ID) + "/exercises"
	created := make([]string, 0, len(exerciseNames))
	for _, exerciseName := range exerciseNames {
		err := c.do(ctx, http.MethodPost, path, nil, map[string]string{"name": exerciseName}, nil)
		if err != nil {
			return &workout, &PartialWorkoutError{
				WorkoutID: workout.ID,
				Created:   created,
				Failed:    exerciseName,
				Err:       err,
			}
		}
		created = append(created, exerciseName)
	}
	return &workout, nil
}

func (c *Client) ListUserWorkouts(ctx context.Context, userID string) ([]domain.Workout, error) {
	var workouts []domain.Workout
	path := "/api/v1/users/" + url.PathEscape(userID) + "/workouts"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &workouts); err != nil {
		return nil, err
	}
	if workouts == nil {
		workouts = []domain.Workout{}
	}
	return workouts, nil
}

func (c *Client) FetchWorkout(ctx context.Context, workoutID string) (*domain.WorkoutDetails, error) {
	var details domain.WorkoutDetails
	path := "/api/v1/workouts/" + url.PathEscape(workoutID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &details); err != nil {
		switch statusOf(err) {
		case http.StatusNotFound:
			return nil, ErrWorkoutNotFound
		case http.StatusUnprocessableEntity:
			return nil, ErrNoExercises
		}
		return nil, err
	}
	if len(details.Exercises) == 0 {
		return nil, ErrNoExercises
	}
	return &details, nil
}

// CreateExerciseSet takes the week as typed; it must parse to a positive
// integer or nothing is sent.
func (c *Client) CreateExerciseSet(ctx context.Context, weight float64, reps int, week, exerciseID string) (*domain.Set, error) {
	weekNum, err := domain.ParseWeek(week)
	if err != nil {
		return nil, err
	}

	var set domain.Set
	path := "/api/v1/exercises/" + url.PathEscape(exerciseID) + "/sets"
	err = c.do(ctx, http.MethodPost, path, nil, map[string]any{
		"weight": weight,
		"reps":   reps,
		"week":   weekNum,
	}, &set)
	if err != nil {
		return nil, err
	}
	return &set, nil
}

// FetchPreviousWeekData lists the sets logged for exerciseID in week,
// oldest first.
func (c *Client) FetchPreviousWeekData(ctx context.Context, exerciseID string, week int) ([]domain.Set, error) {
	if err := domain.ValidateWeek(week); err != nil {
		return nil, err
	}

	var sets []domain.Set
	path := "/api/v1/exercises/" + url.PathEscape(exerciseID) + "/sets"
	params := url.Values{}
	params.Set("week", strconv.Itoa(week))
	if err := c.do(ctx, http.MethodGet, path, params, nil, &sets); err != nil {
		return nil, err
	}
	if sets == nil {
		sets = []domain.Set{}
	}
	return sets, nil
}

// ExportHistory returns a short-lived download URL for the signed-in
// user's full history.
func (c *Client) ExportHistory(ctx context.Context) (string, error) {
	if !c.HasSession() {
		return "", ErrNotSignedIn
	}
	var resp struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/export", nil, nil, &resp); err != nil {
		if statusOf(err) == http.StatusServiceUnavailable {
			return "", ErrExportUnavailable
		}
		return "", err
	}
	return resp.URL, nil
}

// Package appstate holds the process-wide state shared by the screens:
// who is signed in, how long the app has been open, the rest timer
// trigger and the week last viewed per workout.
package appstate

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"nclx/gymnotetaker/internal/domain"
)

const DefaultTick = time.Second

// UserSource reports who is signed in, nil when nobody is.
type UserSource interface {
	GetCurrentUser(ctx context.Context) (*domain.User, error)
}

type State struct {
	tick time.Duration

	mu       sync.RWMutex
	loggedIn bool
	user     *domain.User
	weeks    map[string]int

	elapsed atomic.Int64
	trigger atomic.Bool
}

type Option func(*State)

// WithTick changes how often Run advances the elapsed counter.
func WithTick(d time.Duration) Option {
	return func(s *State) {
		if d > 0 {
			s.tick = d
		}
	}
}

func New(opts ...Option) *State {
	s := &State{
		tick:  DefaultTick,
		weeks: make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init asks the backend once whether a session is active. The backend
// client keeps its token in memory only, so at process start this always
// resolves to logged out without a network call.
func (s *State) Init(ctx context.Context, users UserSource) error {
	user, err := users.GetCurrentUser(ctx)
	if err != nil {
		s.SetLoggedOut()
		return err
	}
	if user == nil {
		s.SetLoggedOut()
		return nil
	}
	s.SetLoggedIn(user)
	return nil
}

func (s *State) SetLoggedIn(user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loggedIn = true
	s.user = user
}

func (s *State) SetLoggedOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loggedIn = false
	s.user = nil
}

func (s *State) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedIn
}

// User returns a copy of the signed-in user, nil when logged out.
func (s *State) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Run counts elapsed ticks until ctx is done.
func (s *State) Run(ctx context.Context) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.elapsed.Add(1)
		case <-ctx.Done():
			log.Debugf("appstate: elapsed counter stopped at %d", s.elapsed.Load())
			return
		}
	}
}

// Elapsed is the number of seconds since Run started.
func (s *State) Elapsed() int64 {
	return s.elapsed.Load()
}

func (s *State) TriggerTimer() {
	s.trigger.Store(true)
}

// ConsumeTrigger reports whether the timer was triggered and clears it.
func (s *State) ConsumeTrigger() bool {
	return s.trigger.Swap(false)
}

// WeekFor returns the last week viewed for workoutID, 1 if never set.
func (s *State) WeekFor(workoutID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if week, ok := s.weeks[workoutID]; ok {
		return week
	}
	return 1
}

func (s *State) SetWeek(workoutID string, week int) {
	if week < 1 {
		week = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weeks[workoutID] = week
}

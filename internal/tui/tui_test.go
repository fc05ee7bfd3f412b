package tui

import (
	"context"
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nclx/gymnotetaker/internal/appstate"
	"nclx/gymnotetaker/internal/backend"
	"nclx/gymnotetaker/internal/domain"
	"nclx/gymnotetaker/internal/timer"
	"nclx/gymnotetaker/internal/tracker"
)

type savedSet struct {
	weight     float64
	reps       int
	week       string
	exerciseID string
}

type fakeClient struct {
	mu sync.Mutex

	user      *domain.User
	signInErr error
	signedIn  bool
	signOutOK bool

	workouts  []domain.Workout
	created   []string
	createErr error
	details   *domain.WorkoutDetails
	fetchErr  error
	saved     []savedSet
	previous  map[int][]domain.Set
	exportURL string
	exportErr error
}

var _ Client = (*fakeClient)(nil)

func (f *fakeClient) CreateAccount(_ context.Context, email, _, username string) (*domain.User, error) {
	if err := domain.ValidateEmail(email); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signedIn = true
	f.user = &domain.User{AccountID: "acc-new", Email: email, Username: username}
	return f.user, nil
}

func (f *fakeClient) SignIn(_ context.Context, email, _ string) (*backend.Session, error) {
	if err := domain.ValidateEmail(email); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	f.signedIn = true
	return &backend.Session{Token: "t", AccountID: f.user.AccountID}, nil
}

func (f *fakeClient) SignOut(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.signOutOK {
		f.signedIn = false
	}
}

func (f *fakeClient) GetCurrentUser(context.Context) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.signedIn {
		return nil, nil
	}
	return f.user, nil
}

func (f *fakeClient) HasSession() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.signedIn
}

func (f *fakeClient) CreateWorkout(_ context.Context, userID, name string, exerciseNames []string) (*domain.Workout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append([]string{name}, exerciseNames...)
	if f.createErr != nil {
		return nil, f.createErr
	}
	w := domain.Workout{ID: "w-" + name, Name: name, UserID: userID}
	f.workouts = append(f.workouts, w)
	return &w, nil
}

func (f *fakeClient) ListUserWorkouts(context.Context, string) ([]domain.Workout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Workout{}, f.workouts...), nil
}

func (f *fakeClient) FetchWorkout(context.Context, string) (*domain.WorkoutDetails, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.details, nil
}

func (f *fakeClient) CreateExerciseSet(_ context.Context, weight float64, reps int, week, exerciseID string) (*domain.Set, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, savedSet{weight: weight, reps: reps, week: week, exerciseID: exerciseID})
	return &domain.Set{Weight: weight, Reps: reps, ExerciseID: exerciseID}, nil
}

func (f *fakeClient) FetchPreviousWeekData(_ context.Context, _ string, week int) ([]domain.Set, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.previous[week], nil
}

func (f *fakeClient) ExportHistory(context.Context) (string, error) {
	return f.exportURL, f.exportErr
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(s screen, text string) screen {
	for _, r := range text {
		s, _ = s.Update(keyRunes(string(r)))
	}
	return s
}

// run executes a command that is expected to finish at once.
func run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	return cmd()
}

func loggedInState() *appstate.State {
	state := appstate.New()
	state.SetLoggedIn(&domain.User{AccountID: "acc-1", Email: "a@gym.io", Username: "lifter"})
	return state
}

func TestNewApp_StartScreen(t *testing.T) {
	client := &fakeClient{}

	app := NewApp(client, appstate.New(), Options{})
	assert.Equal(t, screenSignIn, app.currentID)

	app = NewApp(client, loggedInState(), Options{})
	assert.Equal(t, screenHome, app.currentID)
}

func TestApp_NavigationRequiresLogin(t *testing.T) {
	app := NewApp(&fakeClient{}, appstate.New(), Options{})

	_, _ = app.Update(navigateMsg{to: screenHome})
	assert.Equal(t, screenSignIn, app.currentID)

	_, _ = app.Update(navigateMsg{to: screenSignUp})
	assert.Equal(t, screenSignUp, app.currentID)
}

func TestApp_TickRunsCountdown(t *testing.T) {
	state := loggedInState()
	app := NewApp(&fakeClient{}, state, Options{})
	app.countdown.Set(0, 2)
	app.countdown.Start()

	_, _ = app.Update(tickMsg{})
	assert.Equal(t, int64(1), app.countdown.Remaining())
	_, _ = app.Update(tickMsg{})
	assert.Equal(t, int64(0), app.countdown.Remaining())
	assert.NotEmpty(t, app.notice)
	assert.Contains(t, app.View(), "GymNoteTaker")
}

func TestSignIn_EmptyFields(t *testing.T) {
	form := newAuthForm(&fakeClient{}, appstate.New(), false)

	var s screen = form
	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, "Please fill in all fields", form.status)
	assert.Contains(t, s.View(), "Please fill in all fields")
}

func TestSignIn_Success(t *testing.T) {
	client := &fakeClient{user: &domain.User{AccountID: "acc-1", Email: "a@gym.io", Username: "lifter"}}
	state := appstate.New()
	form := newAuthForm(client, state, false)

	var s screen = typeText(form, "a@gym.io")
	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyTab})
	s = typeText(s, "hunter22")
	s, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, form.busy)

	done := run(t, cmd)
	_, cmd = s.Update(done)
	assert.Equal(t, navigateMsg{to: screenHome}, run(t, cmd))
	assert.True(t, state.IsLoggedIn())
	assert.Equal(t, "lifter", state.User().Username)
}

func TestSignIn_Errors(t *testing.T) {
	cases := []struct {
		name  string
		email string
		err   error
		want  string
	}{
		{"bad email", "not-an-email", nil, "Invalid email address"},
		{"bad password", "a@gym.io", backend.ErrAuthentication, "Invalid email or password"},
		{"other", "a@gym.io", errors.New("connection refused"), "Something went wrong, please try again"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := &fakeClient{user: &domain.User{AccountID: "acc-1"}, signInErr: tc.err}
			state := appstate.New()
			form := newAuthForm(client, state, false)
			form.inputs[0].SetValue(tc.email)
			form.inputs[1].SetValue("pw")
			form.focus = 1

			_, cmd := form.Update(tea.KeyMsg{Type: tea.KeyEnter})
			_, cmd = form.Update(run(t, cmd))
			assert.Nil(t, cmd)
			assert.Equal(t, tc.want, form.status)
			assert.False(t, state.IsLoggedIn())
		})
	}
}

func TestSignUp_CreatesAccount(t *testing.T) {
	client := &fakeClient{}
	state := appstate.New()
	form := newAuthForm(client, state, true)
	require.Len(t, form.inputs, 3)
	form.inputs[0].SetValue("lifter")
	form.inputs[1].SetValue("new@gym.io")
	form.inputs[2].SetValue("hunter22")
	form.focus = 2

	_, cmd := form.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, cmd = form.Update(run(t, cmd))
	assert.Equal(t, navigateMsg{to: screenHome}, run(t, cmd))
	assert.Equal(t, "new@gym.io", state.User().Email)

	_, cmd = newAuthForm(client, appstate.New(), true).Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, navigateMsg{to: screenSignIn}, run(t, cmd))
}

func TestHome_CreateSplitWizard(t *testing.T) {
	client := &fakeClient{}
	home := newHomeScreen(client, loggedInState())

	var s screen = home
	s, _ = s.Update(run(t, home.Init()))
	assert.Contains(t, s.View(), "No splits yet")

	s, _ = s.Update(keyRunes("n"))
	require.Equal(t, wizardName, home.step)

	// step one refuses an empty name
	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "Please enter a split name", home.status)

	s = typeText(s, "Legs")
	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, wizardExercises, home.step)

	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "Please enter an exercise name", home.status)

	for _, name := range []string{"Squat", "Lunge"} {
		s = typeText(s, name)
		s, _ = s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	}
	assert.Equal(t, []string{"Squat", "Lunge"}, home.exercises)

	s, cmd := s.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	s, cmd = s.Update(run(t, cmd))
	assert.Equal(t, []string{"Legs", "Squat", "Lunge"}, client.created)
	assert.Equal(t, wizardClosed, home.step)

	s, _ = s.Update(run(t, cmd))
	require.Len(t, home.workouts, 1)
	assert.Contains(t, s.View(), "Legs")

	_, cmd = s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	nav := run(t, cmd).(navigateMsg)
	assert.Equal(t, screenSplit, nav.to)
	assert.Equal(t, "Legs", nav.workout.Name)
}

func TestHome_CreateSplitFailure(t *testing.T) {
	client := &fakeClient{createErr: errors.New("down")}
	home := newHomeScreen(client, loggedInState())
	home.step = wizardExercises
	home.nameInput.SetValue("Push")

	_, cmd := home.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	_, cmd = home.Update(run(t, cmd))
	assert.Nil(t, cmd)
	assert.Equal(t, "No split created, please try again", home.status)
	assert.Equal(t, wizardExercises, home.step, "the wizard stays open")
}

func splitClient() *fakeClient {
	return &fakeClient{
		details: &domain.WorkoutDetails{
			Workout: domain.Workout{ID: "w-1", Name: "Legs"},
			Exercises: []domain.Exercise{
				{ID: "squat", Name: "Squat"},
				{ID: "lunge", Name: "Lunge"},
			},
		},
		previous: map[int][]domain.Set{
			1: {{Weight: 100, Reps: 5}, {Weight: 102.5, Reps: 4}},
		},
	}
}

func TestSplit_LogSetsAndAdvance(t *testing.T) {
	client := splitClient()
	state := loggedInState()
	sc := newSplitScreen(client, state, domain.Workout{ID: "w-1", Name: "Legs"}, 4)

	var s screen = sc
	s, _ = s.Update(run(t, sc.Init()))
	require.NoError(t, sc.loadErr)
	assert.Contains(t, s.View(), "Week 1")

	s = typeText(s, "100")
	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyTab})
	s = typeText(s, "5")
	assert.Equal(t, tracker.Row{Weight: "100", Reps: "5", Week: 1}, sc.tracker.Rows("squat")[0])

	// letters never reach the inputs
	s = typeText(s, "x")
	assert.Equal(t, "5", sc.tracker.Rows("squat")[0].Reps)

	s, cmd := s.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	s, _ = s.Update(run(t, cmd))
	assert.Equal(t, []savedSet{{weight: 100, reps: 5, week: "1", exerciseID: "squat"}}, client.saved)
	assert.Contains(t, sc.status, "saved successfully")
	assert.True(t, state.ConsumeTrigger())

	s, cmd = s.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	s, _ = s.Update(run(t, cmd))
	assert.Equal(t, 2, sc.tracker.Week())
	assert.Equal(t, 2, state.WeekFor("w-1"))
	assert.Contains(t, s.View(), "Previous week(1): 100 102.5 | 5 4")
}

func TestSplit_AddRowCap(t *testing.T) {
	sc := newSplitScreen(splitClient(), loggedInState(), domain.Workout{ID: "w-1"}, 2)
	_, _ = sc.Update(run(t, sc.Init()))

	_, _ = sc.Update(keyRunes("a"))
	assert.Len(t, sc.tracker.Rows("squat"), 2)
	_, _ = sc.Update(keyRunes("a"))
	assert.Len(t, sc.tracker.Rows("squat"), 2)
	assert.Equal(t, "At most 2 sets per exercise", sc.status)
}

func TestSplit_NoExercises(t *testing.T) {
	client := splitClient()
	client.fetchErr = backend.ErrNoExercises
	sc := newSplitScreen(client, loggedInState(), domain.Workout{ID: "w-1", Name: "Empty"}, 4)

	_, _ = sc.Update(run(t, sc.Init()))
	assert.Contains(t, sc.View(), "No exercises found for this workout.")

	_, cmd := sc.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd)
}

func TestTimer_TriggerStartsCountdown(t *testing.T) {
	state := loggedInState()
	countdown := timer.NewCountdown()
	countdown.Preset(timer.PresetGeneral)

	state.TriggerTimer()
	ts := newTimerScreen(state, countdown)
	ts.Init()
	assert.True(t, countdown.Running())
	assert.Equal(t, int64(120), countdown.Remaining())
	assert.False(t, state.ConsumeTrigger())
}

func TestTimer_Keys(t *testing.T) {
	countdown := timer.NewCountdown()
	ts := newTimerScreen(loggedInState(), countdown)

	_, _ = ts.Update(keyRunes("3"))
	assert.Equal(t, int64(300), countdown.Remaining())

	_, _ = ts.Update(keyRunes("s"))
	assert.True(t, countdown.Running())
	_, _ = ts.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.False(t, countdown.Running())

	_, _ = ts.Update(keyRunes("e"))
	require.True(t, ts.editing)
	ts.inputs[0].SetValue("1")
	ts.inputs[1].SetValue("30")
	_, _ = ts.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, ts.editing)
	m, sec := countdown.Duration()
	assert.Equal(t, 1, m)
	assert.Equal(t, 30, sec)

	_, _ = ts.Update(keyRunes("r"))
	assert.Equal(t, int64(0), countdown.Remaining())
	assert.Contains(t, ts.View(), "00:00:00")
}

func TestTimer_InvalidDuration(t *testing.T) {
	ts := newTimerScreen(loggedInState(), timer.NewCountdown())
	_, _ = ts.Update(keyRunes("e"))
	ts.inputs[0].SetValue("abc")

	_, _ = ts.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, ts.editing)
	assert.Equal(t, "Minutes and seconds must be whole numbers", ts.status)
}

func TestProfile_SignOut(t *testing.T) {
	client := &fakeClient{signedIn: true}
	state := loggedInState()
	ps := newProfileScreen(client, state)
	assert.Contains(t, ps.View(), "lifter")

	_, cmd := ps.Update(keyRunes("o"))
	_, cmd = ps.Update(run(t, cmd))
	assert.Nil(t, cmd)
	assert.True(t, state.IsLoggedIn(), "a failed sign out keeps the session")
	assert.Equal(t, "Sign out failed, please try again", ps.status)

	client.signOutOK = true
	_, cmd = ps.Update(keyRunes("o"))
	_, cmd = ps.Update(run(t, cmd))
	assert.Equal(t, navigateMsg{to: screenSignIn}, run(t, cmd))
	assert.False(t, state.IsLoggedIn())
}

func TestProfile_Export(t *testing.T) {
	client := &fakeClient{signedIn: true, exportErr: backend.ErrExportUnavailable}
	ps := newProfileScreen(client, loggedInState())

	_, cmd := ps.Update(keyRunes("x"))
	_, _ = ps.Update(run(t, cmd))
	assert.Equal(t, "Export is not available on this server", ps.status)

	client.exportErr = nil
	client.exportURL = "https://s3.example.com/exports/acc-1.json"
	_, cmd = ps.Update(keyRunes("x"))
	_, _ = ps.Update(run(t, cmd))
	assert.Contains(t, ps.View(), client.exportURL)
}

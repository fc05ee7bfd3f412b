// Package tui is the terminal front end: sign-in, sign-up, the split list
// with its creation wizard, the workout session, the rest timer and the
// profile.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"nclx/gymnotetaker/internal/appstate"
	"nclx/gymnotetaker/internal/backend"
	"nclx/gymnotetaker/internal/domain"
	"nclx/gymnotetaker/internal/timer"
	"nclx/gymnotetaker/internal/tracker"
)

// Client is everything the screens ask of the backend.
type Client interface {
	tracker.Backend
	CreateAccount(ctx context.Context, email, password, username string) (*domain.User, error)
	SignIn(ctx context.Context, email, password string) (*backend.Session, error)
	SignOut(ctx context.Context)
	GetCurrentUser(ctx context.Context) (*domain.User, error)
	HasSession() bool
	CreateWorkout(ctx context.Context, userID, name string, exerciseNames []string) (*domain.Workout, error)
	ListUserWorkouts(ctx context.Context, userID string) ([]domain.Workout, error)
	ExportHistory(ctx context.Context) (string, error)
}

type Options struct {
	MaxSets int
}

type screenID int

const (
	screenSignIn screenID = iota
	screenSignUp
	screenHome
	screenSplit
	screenTimer
	screenProfile
)

type screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (screen, tea.Cmd)
	View() string
	bindings() []key.Binding
}

type navigateMsg struct {
	to      screenID
	workout domain.Workout
}

func navigate(to screenID) tea.Cmd {
	return func() tea.Msg { return navigateMsg{to: to} }
}

func openWorkout(w domain.Workout) tea.Cmd {
	return func() tea.Msg { return navigateMsg{to: screenSplit, workout: w} }
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// App routes messages to the active screen and owns what outlives a
// screen: the rest countdown and the one second tick.
type App struct {
	client    Client
	state     *appstate.State
	opts      Options
	countdown *timer.Countdown

	current   screen
	currentID screenID
	help      help.Model
	notice    string

	width  int
	height int
}

func NewApp(client Client, state *appstate.State, opts Options) *App {
	if opts.MaxSets <= 0 {
		opts.MaxSets = tracker.DefaultMaxRows
	}
	a := &App{
		client:    client,
		state:     state,
		opts:      opts,
		countdown: timer.NewCountdown(),
		help:      help.New(),
	}
	start := screenSignIn
	if state.IsLoggedIn() {
		start = screenHome
	}
	a.show(navigateMsg{to: start})
	return a
}

func (a *App) show(nav navigateMsg) {
	to := nav.to
	if !a.state.IsLoggedIn() && to != screenSignUp {
		to = screenSignIn
	}
	switch to {
	case screenSignUp:
		a.current = newAuthForm(a.client, a.state, true)
	case screenHome:
		a.current = newHomeScreen(a.client, a.state)
	case screenSplit:
		a.current = newSplitScreen(a.client, a.state, nav.workout, a.opts.MaxSets)
	case screenTimer:
		a.current = newTimerScreen(a.state, a.countdown)
	case screenProfile:
		a.current = newProfileScreen(a.client, a.state)
	default:
		to = screenSignIn
		a.current = newAuthForm(a.client, a.state, false)
	}
	a.currentID = to
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.current.Init(), tick())
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
	case tickMsg:
		if a.countdown.Tick() {
			a.notice = "Rest is over, next set!"
		}
		var cmd tea.Cmd
		a.current, cmd = a.current.Update(msg)
		return a, tea.Batch(cmd, tick())
	case navigateMsg:
		a.notice = ""
		a.show(msg)
		return a, a.current.Init()
	}

	var cmd tea.Cmd
	a.current, cmd = a.current.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	parts := []string{a.header(), a.current.View()}
	if a.notice != "" {
		parts = append(parts, clockStyle.Render(a.notice))
	}
	parts = append(parts, a.help.ShortHelpView(a.current.bindings()))
	return appStyle.Render(strings.Join(parts, "\n\n"))
}

func (a *App) header() string {
	title := titleStyle.Render("GymNoteTaker")
	if !a.state.IsLoggedIn() {
		return title
	}
	elapsed := subtleStyle.Render("Time Elapsed: ") + clockStyle.Render(timer.FormatClock(a.state.Elapsed()))
	if a.countdown.Running() {
		elapsed += subtleStyle.Render("  Rest: ") + clockStyle.Render(timer.FormatClock(a.countdown.Remaining()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, elapsed)
}

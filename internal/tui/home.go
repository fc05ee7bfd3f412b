package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"nclx/gymnotetaker/internal/appstate"
	"nclx/gymnotetaker/internal/backend"
	"nclx/gymnotetaker/internal/domain"
)

type wizardStep int

const (
	wizardClosed wizardStep = iota
	wizardName
	wizardExercises
)

type workoutsLoadedMsg struct {
	workouts []domain.Workout
	err      error
}

type splitCreatedMsg struct {
	workout *domain.Workout
	err     error
}

type homeScreen struct {
	client Client
	state  *appstate.State

	workouts []domain.Workout
	cursor   int
	loading  bool

	step          wizardStep
	nameInput     textinput.Model
	exerciseInput textinput.Model
	exercises     []string
	busy          bool

	status    string
	statusErr bool
}

func newHomeScreen(client Client, state *appstate.State) *homeScreen {
	nameInput := textinput.New()
	nameInput.Prompt = "Split name: "
	nameInput.Placeholder = "Push day"
	nameInput.CharLimit = 64

	exerciseInput := textinput.New()
	exerciseInput.Prompt = "Exercise: "
	exerciseInput.Placeholder = "Bench press"
	exerciseInput.CharLimit = 64

	return &homeScreen{
		client:        client,
		state:         state,
		nameInput:     nameInput,
		exerciseInput: exerciseInput,
	}
}

func (h *homeScreen) Init() tea.Cmd {
	return h.loadWorkouts()
}

func (h *homeScreen) loadWorkouts() tea.Cmd {
	user := h.state.User()
	if user == nil {
		return nil
	}
	h.loading = true
	client := h.client
	return func() tea.Msg {
		workouts, err := client.ListUserWorkouts(context.Background(), user.AccountID)
		return workoutsLoadedMsg{workouts: workouts, err: err}
	}
}

func (h *homeScreen) setStatus(msg string, isErr bool) {
	h.status = msg
	h.statusErr = isErr
}

func (h *homeScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case workoutsLoadedMsg:
		h.loading = false
		if msg.err != nil {
			log.Errorf("home: loading splits: %s", msg.err)
			h.setStatus("Could not load your splits", true)
			return h, nil
		}
		h.workouts = msg.workouts
		if h.cursor >= len(h.workouts) {
			h.cursor = max(len(h.workouts)-1, 0)
		}
		return h, nil

	case splitCreatedMsg:
		h.busy = false
		if msg.err != nil {
			var partial *backend.PartialWorkoutError
			if errors.As(msg.err, &partial) {
				log.Errorf("home: split %s only partly created: %s", partial.WorkoutID, msg.err)
			} else {
				log.Errorf("home: creating split: %s", msg.err)
			}
			h.setStatus("No split created, please try again", true)
			if msg.workout == nil {
				return h, nil
			}
		} else {
			h.setStatus(fmt.Sprintf("Split %q created", msg.workout.Name), false)
		}
		h.closeWizard()
		return h, h.loadWorkouts()

	case tea.KeyMsg:
		if h.busy {
			return h, nil
		}
		switch h.step {
		case wizardName:
			return h.updateNameStep(msg)
		case wizardExercises:
			return h.updateExerciseStep(msg)
		}
		return h.updateList(msg)
	}
	return h, nil
}

func (h *homeScreen) updateList(msg tea.KeyMsg) (screen, tea.Cmd) {
	switch {
	case key.Matches(msg, keyQuit):
		return h, tea.Quit
	case key.Matches(msg, keyUp):
		if h.cursor > 0 {
			h.cursor--
		}
	case key.Matches(msg, keyDown):
		if h.cursor < len(h.workouts)-1 {
			h.cursor++
		}
	case key.Matches(msg, keyEnter):
		if len(h.workouts) > 0 {
			return h, openWorkout(h.workouts[h.cursor])
		}
	case key.Matches(msg, keyNewSplit):
		return h, h.openWizard()
	case key.Matches(msg, keyReload):
		return h, h.loadWorkouts()
	case key.Matches(msg, keyTimer):
		return h, navigate(screenTimer)
	case key.Matches(msg, keyProfile):
		return h, navigate(screenProfile)
	}
	return h, nil
}

func (h *homeScreen) openWizard() tea.Cmd {
	h.step = wizardName
	h.nameInput.SetValue("")
	h.exerciseInput.SetValue("")
	h.exercises = nil
	h.status = ""
	h.exerciseInput.Blur()
	return h.nameInput.Focus()
}

func (h *homeScreen) closeWizard() {
	h.step = wizardClosed
	h.nameInput.Blur()
	h.exerciseInput.Blur()
	h.nameInput.SetValue("")
	h.exerciseInput.SetValue("")
	h.exercises = nil
}

func (h *homeScreen) updateNameStep(msg tea.KeyMsg) (screen, tea.Cmd) {
	switch {
	case key.Matches(msg, keyBack):
		h.closeWizard()
		return h, nil
	case key.Matches(msg, keyEnter):
		if strings.TrimSpace(h.nameInput.Value()) == "" {
			h.setStatus("Please enter a split name", true)
			return h, nil
		}
		h.status = ""
		h.step = wizardExercises
		h.nameInput.Blur()
		return h, h.exerciseInput.Focus()
	}
	var cmd tea.Cmd
	h.nameInput, cmd = h.nameInput.Update(msg)
	return h, cmd
}

func (h *homeScreen) updateExerciseStep(msg tea.KeyMsg) (screen, tea.Cmd) {
	switch {
	case key.Matches(msg, keyBack):
		h.step = wizardName
		h.exerciseInput.Blur()
		return h, h.nameInput.Focus()
	case key.Matches(msg, keyEnter):
		name := strings.TrimSpace(h.exerciseInput.Value())
		if name == "" {
			h.setStatus("Please enter an exercise name", true)
			return h, nil
		}
		h.status = ""
		h.exercises = append(h.exercises, name)
		h.exerciseInput.SetValue("")
		return h, nil
	case key.Matches(msg, keyDone):
		return h, h.createSplit()
	}
	var cmd tea.Cmd
	h.exerciseInput, cmd = h.exerciseInput.Update(msg)
	return h, cmd
}

func (h *homeScreen) createSplit() tea.Cmd {
	user := h.state.User()
	if user == nil {
		h.setStatus("No split created, please try again", true)
		return nil
	}
	h.busy = true
	client := h.client
	name := strings.TrimSpace(h.nameInput.Value())
	exercises := append([]string(nil), h.exercises...)
	return func() tea.Msg {
		workout, err := client.CreateWorkout(context.Background(), user.AccountID, name, exercises)
		return splitCreatedMsg{workout: workout, err: err}
	}
}

func (h *homeScreen) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Workout records:"))
	b.WriteString("\n\n")

	switch {
	case h.loading && len(h.workouts) == 0:
		b.WriteString(subtleStyle.Render("Loading..."))
	case len(h.workouts) == 0:
		b.WriteString(subtleStyle.Render("No splits yet. Press n to add one."))
	default:
		for i, w := range h.workouts {
			line := "  " + w.Name
			if i == h.cursor && h.step == wizardClosed {
				line = selectedStyle.Render("> " + w.Name)
			}
			b.WriteString(line + "\n")
		}
	}

	if h.step != wizardClosed {
		b.WriteString("\n\n")
		b.WriteString(h.wizardView())
	}
	if h.busy {
		b.WriteString("\n\n" + subtleStyle.Render("Creating split..."))
	}
	if h.status != "" {
		b.WriteString("\n\n" + statusLine(h.status, h.statusErr))
	}
	return b.String()
}

func (h *homeScreen) wizardView() string {
	if h.step == wizardName {
		return strings.Join([]string{
			accentStyle.Render("New split (1/2)"),
			h.nameInput.View(),
		}, "\n")
	}
	lines := []string{
		accentStyle.Render(fmt.Sprintf("New split (2/2): %s", strings.TrimSpace(h.nameInput.Value()))),
	}
	for i, name := range h.exercises {
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, name))
	}
	lines = append(lines, h.exerciseInput.View())
	return strings.Join(lines, "\n")
}

func (h *homeScreen) bindings() []key.Binding {
	switch h.step {
	case wizardName:
		return []key.Binding{keyEnter, keyBack}
	case wizardExercises:
		return []key.Binding{keyEnter, keyDone, keyBack}
	}
	return []key.Binding{keyUp, keyDown, keyEnter, keyNewSplit, keyReload, keyTimer, keyProfile, keyQuit}
}

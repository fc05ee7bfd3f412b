package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"nclx/gymnotetaker/internal/appstate"
	"nclx/gymnotetaker/internal/backend"
	"nclx/gymnotetaker/internal/domain"
	"nclx/gymnotetaker/internal/tracker"
)

type trackerLoadedMsg struct{ err error }

type setsSavedMsg struct {
	result tracker.SaveResult
	err    error
}

type sessionAdvancedMsg struct{ result tracker.RefreshResult }

type cellPos struct {
	exerciseID string
	row        int
}

// splitScreen logs sets for one workout.
type splitScreen struct {
	workout domain.Workout
	tracker *tracker.Tracker
	maxSets int

	loaded  bool
	loadErr error
	busy    bool

	cursor int
	field  tracker.Field

	status    string
	statusErr bool
}

func newSplitScreen(client Client, state *appstate.State, workout domain.Workout, maxSets int) *splitScreen {
	return &splitScreen{
		workout: workout,
		tracker: tracker.New(client, state, workout.ID, tracker.WithMaxRows(maxSets)),
		maxSets: maxSets,
	}
}

func (s *splitScreen) Init() tea.Cmd {
	tr := s.tracker
	return func() tea.Msg {
		return trackerLoadedMsg{err: tr.Load(context.Background())}
	}
}

// cells lists every editable row, exercise by exercise.
func (s *splitScreen) cells() []cellPos {
	var cells []cellPos
	for _, exercise := range s.tracker.Exercises() {
		for i := range s.tracker.Rows(exercise.ID) {
			cells = append(cells, cellPos{exerciseID: exercise.ID, row: i})
		}
	}
	return cells
}

func (s *splitScreen) current() (cellPos, bool) {
	cells := s.cells()
	if len(cells) == 0 {
		return cellPos{}, false
	}
	if s.cursor >= len(cells) {
		s.cursor = len(cells) - 1
	}
	return cells[s.cursor], true
}

func (s *splitScreen) setStatus(msg string, isErr bool) {
	s.status = msg
	s.statusErr = isErr
}

func (s *splitScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case trackerLoadedMsg:
		s.loaded = true
		s.loadErr = msg.err
		return s, nil

	case setsSavedMsg:
		s.busy = false
		if msg.err != nil {
			log.Errorf("split %s: saving sets: %s", s.workout.ID, msg.err)
			if errors.Is(msg.err, tracker.ErrInvalidInput) {
				s.setStatus("Weight and reps must be numbers", true)
			} else {
				s.setStatus("Failed to save workout sets", true)
			}
			return s, nil
		}
		s.setStatus(fmt.Sprintf("Workout sets saved successfully (%d logged)", msg.result.Saved), false)
		return s, nil

	case sessionAdvancedMsg:
		s.busy = false
		s.cursor = 0
		s.field = tracker.FieldWeight
		week := s.tracker.Week()
		switch msg.result.Outcome {
		case tracker.RefreshedAll:
			s.setStatus(fmt.Sprintf("Week %d started", week), false)
		case tracker.RefreshedPartial:
			s.setStatus(fmt.Sprintf("Week %d started, last week is missing for some exercises", week), true)
		default:
			s.setStatus(fmt.Sprintf("Week %d started, last week could not be loaded", week), true)
		}
		return s, nil

	case tea.KeyMsg:
		if key.Matches(msg, keyBack) {
			return s, navigate(screenHome)
		}
		if !s.loaded || s.loadErr != nil || s.busy {
			return s, nil
		}
		return s.updateKeys(msg)
	}
	return s, nil
}

func (s *splitScreen) updateKeys(msg tea.KeyMsg) (screen, tea.Cmd) {
	switch {
	case key.Matches(msg, keySave):
		s.busy = true
		tr := s.tracker
		return s, func() tea.Msg {
			res, err := tr.Save(context.Background())
			return setsSavedMsg{result: res, err: err}
		}
	case key.Matches(msg, keySession):
		s.busy = true
		tr := s.tracker
		return s, func() tea.Msg {
			return sessionAdvancedMsg{result: tr.Advance(context.Background())}
		}
	case key.Matches(msg, keyUp):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(msg, keyDown):
		if s.cursor < len(s.cells())-1 {
			s.cursor++
		}
	case key.Matches(msg, keyLeft):
		s.field = tracker.FieldWeight
	case key.Matches(msg, keyRight):
		s.field = tracker.FieldReps
	case key.Matches(msg, keyNext):
		if s.field == tracker.FieldWeight {
			s.field = tracker.FieldReps
		} else {
			s.field = tracker.FieldWeight
			if s.cursor < len(s.cells())-1 {
				s.cursor++
			}
		}
	case key.Matches(msg, keyAddSet):
		if pos, ok := s.current(); ok {
			if !s.tracker.AddRow(pos.exerciseID) {
				s.setStatus(fmt.Sprintf("At most %d sets per exercise", s.maxSets), true)
			}
		}
	case key.Matches(msg, keyErase):
		s.edit(func(v string) string {
			if v == "" {
				return v
			}
			return v[:len(v)-1]
		})
	case msg.Type == tea.KeyRunes:
		typed := string(msg.Runes)
		if strings.Trim(typed, "0123456789.") == "" {
			s.edit(func(v string) string { return v + typed })
		}
	}
	return s, nil
}

func (s *splitScreen) edit(fn func(string) string) {
	pos, ok := s.current()
	if !ok {
		return
	}
	rows := s.tracker.Rows(pos.exerciseID)
	if pos.row >= len(rows) {
		return
	}
	value := rows[pos.row].Weight
	if s.field == tracker.FieldReps {
		value = rows[pos.row].Reps
	}
	if err := s.tracker.SetInput(pos.exerciseID, pos.row, s.field, fn(value)); err != nil {
		log.Warnf("split %s: %s", s.workout.ID, err)
	}
}

func (s *splitScreen) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(s.workout.Name))
	b.WriteString("\n")

	if !s.loaded {
		b.WriteString("\n" + subtleStyle.Render("Loading..."))
		return b.String()
	}
	if s.loadErr != nil {
		if errors.Is(s.loadErr, backend.ErrNoExercises) {
			b.WriteString("\n" + subtleStyle.Render("No exercises found for this workout."))
		} else {
			b.WriteString("\n" + errorStyle.Render("Failed to load workout"))
		}
		return b.String()
	}

	week := s.tracker.Week()
	b.WriteString(accentStyle.Render(fmt.Sprintf("Week %d", week)))
	b.WriteString("\n\n")

	focused, _ := s.current()
	for _, exercise := range s.tracker.Exercises() {
		lines := []string{titleStyle.Render(exercise.Name)}
		for i, row := range s.tracker.Rows(exercise.ID) {
			here := exercise.ID == focused.exerciseID && i == focused.row
			weight := renderCell(row.Weight, "weight", here && s.field == tracker.FieldWeight)
			reps := renderCell(row.Reps, "reps", here && s.field == tracker.FieldReps)
			lines = append(lines, fmt.Sprintf("Set %d  %s kg  %s reps", i+1, weight, reps))
		}
		if prev := s.tracker.Previous(exercise.ID); len(prev) > 0 {
			lines = append(lines, previousStyle.Render(previousWeekLine(week-1, prev)))
		}
		b.WriteString(exerciseStyle.Render(strings.Join(lines, "\n")))
		b.WriteString("\n")
	}

	if s.busy {
		b.WriteString(subtleStyle.Render("Saving...") + "\n")
	}
	if s.status != "" {
		b.WriteString(statusLine(s.status, s.statusErr))
	}
	return b.String()
}

func renderCell(value, placeholder string, focused bool) string {
	text := value
	if text == "" {
		text = subtleStyle.Render(placeholder)
	}
	if focused {
		return focusedCellStyle.Render(text)
	}
	return cellStyle.Render(text)
}

// previousWeekLine renders last week's weights, then its reps.
func previousWeekLine(week int, sets []domain.Set) string {
	weights := make([]string, 0, len(sets))
	reps := make([]string, 0, len(sets))
	for _, set := range sets {
		weights = append(weights, strconv.FormatFloat(set.Weight, 'f', -1, 64))
		reps = append(reps, strconv.Itoa(set.Reps))
	}
	return fmt.Sprintf("Previous week(%d): %s | %s", week, strings.Join(weights, " "), strings.Join(reps, " "))
}

func (s *splitScreen) bindings() []key.Binding {
	return []key.Binding{keyUp, keyDown, keyNext, keyAddSet, keyErase, keySave, keySession, keyBack}
}

package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"nclx/gymnotetaker/internal/appstate"
	"nclx/gymnotetaker/internal/timer"
)

type timerScreen struct {
	state     *appstate.State
	countdown *timer.Countdown

	editing bool
	inputs  []textinput.Model
	focus   int
	status  string
}

func newTimerScreen(state *appstate.State, countdown *timer.Countdown) *timerScreen {
	minutes := textinput.New()
	minutes.Prompt = "Min: "
	minutes.CharLimit = 3
	minutes.Width = 4
	seconds := textinput.New()
	seconds.Prompt = "Sec: "
	seconds.CharLimit = 2
	seconds.Width = 4
	return &timerScreen{
		state:     state,
		countdown: countdown,
		inputs:    []textinput.Model{minutes, seconds},
	}
}

// Init starts the countdown if a save asked for it.
func (t *timerScreen) Init() tea.Cmd {
	t.consumeTrigger()
	return nil
}

func (t *timerScreen) consumeTrigger() {
	if t.state.ConsumeTrigger() {
		t.countdown.Start()
	}
}

func (t *timerScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		t.consumeTrigger()
		return t, nil
	case tea.KeyMsg:
		if t.editing {
			return t.updateEditing(msg)
		}
		switch {
		case key.Matches(msg, keyBack):
			return t, navigate(screenHome)
		case key.Matches(msg, keyStart):
			t.countdown.Start()
		case key.Matches(msg, keyPause):
			if t.countdown.Running() {
				t.countdown.Pause()
			} else {
				t.countdown.Resume()
			}
		case key.Matches(msg, keyReset):
			t.countdown.Reset()
		case key.Matches(msg, keyPresets):
			n, _ := strconv.Atoi(msg.String())
			t.countdown.Preset(timer.Presets[n-1])
			t.status = ""
		case key.Matches(msg, keyEdit):
			t.editing = true
			minutes, seconds := t.countdown.Duration()
			t.inputs[0].SetValue(strconv.Itoa(minutes))
			t.inputs[1].SetValue(strconv.Itoa(seconds))
			t.focus = 0
			return t, t.inputs[0].Focus()
		}
	}
	return t, nil
}

func (t *timerScreen) updateEditing(msg tea.KeyMsg) (screen, tea.Cmd) {
	switch {
	case key.Matches(msg, keyBack):
		t.stopEditing()
		return t, nil
	case key.Matches(msg, keyNext), key.Matches(msg, keyPrev):
		t.inputs[t.focus].Blur()
		t.focus = 1 - t.focus
		return t, t.inputs[t.focus].Focus()
	case key.Matches(msg, keyEnter):
		minutes, errM := parseClockField(t.inputs[0].Value())
		seconds, errS := parseClockField(t.inputs[1].Value())
		if errM != nil || errS != nil {
			t.status = "Minutes and seconds must be whole numbers"
			return t, nil
		}
		t.countdown.Set(minutes, seconds)
		t.status = ""
		t.stopEditing()
		return t, nil
	}
	var cmd tea.Cmd
	t.inputs[t.focus], cmd = t.inputs[t.focus].Update(msg)
	return t, cmd
}

func (t *timerScreen) stopEditing() {
	t.editing = false
	for i := range t.inputs {
		t.inputs[i].Blur()
	}
}

// parseClockField treats an empty field as zero.
func parseClockField(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid number %q", raw)
	}
	return n, nil
}

func (t *timerScreen) View() string {
	minutes, seconds := t.countdown.Duration()
	lines := []string{
		titleStyle.Render("Workout Interset Resting Time:"),
		subtleStyle.Render("Set a resting time that you are going to be using for most of the time"),
		"",
		fmt.Sprintf("Rest time: %dm %02ds", minutes, seconds),
		clockStyle.Render(timer.FormatClock(t.countdown.Remaining())),
	}
	state := "stopped"
	if t.countdown.Running() {
		state = "running"
	}
	lines = append(lines, subtleStyle.Render(state), "")

	if t.editing {
		lines = append(lines, t.inputs[0].View(), t.inputs[1].View())
	} else {
		lines = append(lines, "Or choose a resting preset:")
		for i, p := range timer.Presets {
			lines = append(lines, fmt.Sprintf("  %d. %s", i+1, p))
		}
	}
	if t.status != "" {
		lines = append(lines, "", statusLine(t.status, true))
	}
	return strings.Join(lines, "\n")
}

func (t *timerScreen) bindings() []key.Binding {
	if t.editing {
		return []key.Binding{keyNext, keyEnter, keyBack}
	}
	return []key.Binding{keyStart, keyPause, keyReset, keyPresets, keyEdit, keyBack}
}

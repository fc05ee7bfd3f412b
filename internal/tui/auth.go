package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"nclx/gymnotetaker/internal/appstate"
	"nclx/gymnotetaker/internal/backend"
	"nclx/gymnotetaker/internal/domain"
)

type fieldKind int

const (
	fieldUsername fieldKind = iota
	fieldEmail
	fieldPassword
)

type authDoneMsg struct {
	user *domain.User
	err  error
}

// authForm is both the sign-in and the sign-up screen.
type authForm struct {
	client Client
	state  *appstate.State
	signUp bool

	kinds  []fieldKind
	inputs []textinput.Model
	focus  int

	status string
	busy   bool
}

func newAuthForm(client Client, state *appstate.State, signUp bool) *authForm {
	f := &authForm{client: client, state: state, signUp: signUp}
	if signUp {
		f.kinds = []fieldKind{fieldUsername, fieldEmail, fieldPassword}
	} else {
		f.kinds = []fieldKind{fieldEmail, fieldPassword}
	}
	for _, kind := range f.kinds {
		f.inputs = append(f.inputs, newFormInput(kind))
	}
	f.inputs[0].Focus()
	return f
}

func newFormInput(kind fieldKind) textinput.Model {
	input := textinput.New()
	input.CharLimit = 128
	input.Width = 40
	switch kind {
	case fieldUsername:
		input.Prompt = "Username: "
	case fieldEmail:
		input.Prompt = "Email:    "
		input.Placeholder = "you@example.com"
	case fieldPassword:
		input.Prompt = "Password: "
		input.EchoMode = textinput.EchoPassword
		input.EchoCharacter = '•'
	}
	return input
}

func (f *authForm) value(kind fieldKind) string {
	for i, k := range f.kinds {
		if k == kind {
			return f.inputs[i].Value()
		}
	}
	return ""
}

func (f *authForm) Init() tea.Cmd {
	return textinput.Blink
}

func (f *authForm) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		f.busy = false
		if msg.err != nil {
			log.Warnf("auth: %s", msg.err)
			f.status = authErrorText(msg.err)
			return f, nil
		}
		if msg.user == nil {
			f.status = "Signed in, but your profile could not be loaded"
			return f, nil
		}
		f.state.SetLoggedIn(msg.user)
		return f, navigate(screenHome)

	case tea.KeyMsg:
		if f.busy {
			return f, nil
		}
		switch {
		case !f.signUp && key.Matches(msg, keySignUp):
			return f, navigate(screenSignUp)
		case f.signUp && key.Matches(msg, keyBack):
			return f, navigate(screenSignIn)
		case key.Matches(msg, keyNext), msg.Type == tea.KeyDown:
			return f, f.moveFocus(1)
		case key.Matches(msg, keyPrev), msg.Type == tea.KeyUp:
			return f, f.moveFocus(-1)
		case key.Matches(msg, keyEnter):
			if f.focus < len(f.inputs)-1 {
				return f, f.moveFocus(1)
			}
			return f, f.submit()
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f *authForm) moveFocus(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	return f.inputs[f.focus].Focus()
}

func (f *authForm) submit() tea.Cmd {
	email := strings.TrimSpace(f.value(fieldEmail))
	password := f.value(fieldPassword)
	username := strings.TrimSpace(f.value(fieldUsername))
	if email == "" || password == "" || (f.signUp && username == "") {
		f.status = "Please fill in all fields"
		return nil
	}

	f.busy = true
	f.status = ""
	client := f.client
	if f.signUp {
		return func() tea.Msg {
			user, err := client.CreateAccount(context.Background(), email, password, username)
			return authDoneMsg{user: user, err: err}
		}
	}
	return func() tea.Msg {
		ctx := context.Background()
		if _, err := client.SignIn(ctx, email, password); err != nil {
			return authDoneMsg{err: err}
		}
		user, err := client.GetCurrentUser(ctx)
		return authDoneMsg{user: user, err: err}
	}
}

func authErrorText(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidEmail):
		return "Invalid email address"
	case errors.Is(err, backend.ErrAuthentication):
		return "Invalid email or password"
	case errors.Is(err, backend.ErrEmailTaken):
		return "An account with this email already exists"
	default:
		return "Something went wrong, please try again"
	}
}

func (f *authForm) View() string {
	title := "Sign in"
	if f.signUp {
		title = "Create an account"
	}
	lines := []string{titleStyle.Render(title), ""}
	for _, input := range f.inputs {
		lines = append(lines, input.View())
	}
	if f.busy {
		lines = append(lines, "", subtleStyle.Render("Please wait..."))
	}
	if f.status != "" {
		lines = append(lines, "", statusLine(f.status, true))
	}
	return strings.Join(lines, "\n")
}

func (f *authForm) bindings() []key.Binding {
	if f.signUp {
		return []key.Binding{keyNext, keyEnter, keyBack}
	}
	return []key.Binding{keyNext, keyEnter, keySignUp}
}

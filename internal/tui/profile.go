package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"nclx/gymnotetaker/internal/appstate"
	"nclx/gymnotetaker/internal/backend"
)

type signedOutMsg struct{ stillSignedIn bool }

type exportedMsg struct {
	url string
	err error
}

type profileScreen struct {
	client Client
	state  *appstate.State

	busy      bool
	exportURL string
	status    string
	statusErr bool
}

func newProfileScreen(client Client, state *appstate.State) *profileScreen {
	return &profileScreen{client: client, state: state}
}

func (p *profileScreen) Init() tea.Cmd {
	return nil
}

func (p *profileScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case signedOutMsg:
		p.busy = false
		// The client keeps its token when the backend refused the sign out.
		if msg.stillSignedIn {
			p.status, p.statusErr = "Sign out failed, please try again", true
			return p, nil
		}
		p.state.SetLoggedOut()
		return p, navigate(screenSignIn)

	case exportedMsg:
		p.busy = false
		if msg.err != nil {
			log.Errorf("profile: export: %s", msg.err)
			if errors.Is(msg.err, backend.ErrExportUnavailable) {
				p.status, p.statusErr = "Export is not available on this server", true
			} else {
				p.status, p.statusErr = "Export failed, please try again", true
			}
			return p, nil
		}
		p.exportURL = msg.url
		p.status, p.statusErr = "History exported, link valid for a limited time", false
		return p, nil

	case tea.KeyMsg:
		if p.busy {
			return p, nil
		}
		client := p.client
		switch {
		case key.Matches(msg, keyBack):
			return p, navigate(screenHome)
		case key.Matches(msg, keySignOut):
			p.busy = true
			return p, func() tea.Msg {
				client.SignOut(context.Background())
				return signedOutMsg{stillSignedIn: client.HasSession()}
			}
		case key.Matches(msg, keyExport):
			p.busy = true
			return p, func() tea.Msg {
				url, err := client.ExportHistory(context.Background())
				return exportedMsg{url: url, err: err}
			}
		}
	}
	return p, nil
}

func (p *profileScreen) View() string {
	lines := []string{titleStyle.Render("Profile"), ""}
	if user := p.state.User(); user != nil {
		lines = append(lines,
			subtleStyle.Render("Username: ")+user.Username,
			subtleStyle.Render("Email:    ")+user.Email,
			subtleStyle.Render("Account:  ")+user.AccountID,
		)
	}
	if p.exportURL != "" {
		lines = append(lines, "", accentStyle.Render(p.exportURL))
	}
	if p.busy {
		lines = append(lines, "", subtleStyle.Render("Please wait..."))
	}
	if p.status != "" {
		lines = append(lines, "", statusLine(p.status, p.statusErr))
	}
	return strings.Join(lines, "\n")
}

func (p *profileScreen) bindings() []key.Binding {
	return []key.Binding{keySignOut, keyExport, keyBack}
}

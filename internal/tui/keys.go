package tui

import "github.com/charmbracelet/bubbles/key"

var (
	keyUp     = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up"))
	keyDown   = key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down"))
	keyNext   = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field"))
	keyPrev   = key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field"))
	keyEnter  = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm"))
	keyBack   = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))
	keyQuit   = key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))
	keySignUp = key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "create account"))

	keyNewSplit = key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new split"))
	keyReload   = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload"))
	keyTimer    = key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "timer"))
	keyProfile  = key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "profile"))
	keyDone     = key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "create split"))

	keyLeft    = key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "weight"))
	keyRight   = key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "reps"))
	keyAddSet  = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add set"))
	keySave    = key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "log sets"))
	keySession = key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new session"))
	keyErase   = key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "erase"))

	keyStart   = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start"))
	keyPause   = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause/resume"))
	keyReset   = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset"))
	keyEdit    = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "set time"))
	keyPresets = key.NewBinding(key.WithKeys("1", "2", "3"), key.WithHelp("1-3", "preset"))

	keySignOut = key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "sign out"))
	keyExport  = key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export history"))
)

package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sant0-9/companion/internal/config"
	"github.com/sant0-9/companion/internal/mode"
	"github.com/sant0-9/companion/internal/render"
	"github.com/sant0-9/companion/internal/session"
	"github.com/sant0-9/companion/internal/sticker"
)

type state struct {
	config     *config.Config
	configPath string
	registry   *mode.Registry
	stickers   *sticker.Picker
	md         *render.Markdown

	// Active mode
	activeID   string
	activeName string
	greeting   string

	// Chat
	chat         []chatLine
	suggestions  []string
	busy         bool
	scrollOffset int

	// Lists
	modeSelected    int
	stickerSelected int

	// Settings
	settingsSelected int
	settingsDirty    bool

	// Status line and blocking error
	notice string
	err    error

	input textinput.Model
}

type chatLine struct {
	role     session.Role
	content  string
	rendered string
}

// roleSystem marks local notices in the chat, such as command results.
const roleSystem session.Role = "system"

func newState() *state {
	input := textinput.New()
	input.Placeholder = "Type a message, or /help for commands..."
	input.CharLimit = 1000
	input.Width = 60

	return &state{input: input}
}

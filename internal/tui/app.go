package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sant0-9/companion/internal/config"
	"github.com/sant0-9/companion/internal/logger"
	"github.com/sant0-9/companion/internal/mode"
	"github.com/sant0-9/companion/internal/modes"
	"github.com/sant0-9/companion/internal/render"
	"github.com/sant0-9/companion/internal/session"
	"github.com/sant0-9/companion/internal/sticker"
)

type view int

const (
	viewWelcome view = iota
	viewChat
	viewModes
	viewStickers
	viewSettings
	viewHelp
	viewError
)

type Options struct {
	Config   *config.Config
	Registry *mode.Registry
	Stickers *sticker.Picker
	// ConfigPath is where settings are saved. Empty means config.ConfigPath.
	ConfigPath string
	// MarkdownStyle is a glamour style name. Empty picks one from the
	// terminal background.
	MarkdownStyle string
}

type App struct {
	width    int
	height   int
	view     view
	back     view
	state    *state
	quitting bool
}

func NewApp(opts Options) (*App, error) {
	s := newState()
	s.config = opts.Config
	if s.config == nil {
		s.config = config.DefaultConfig()
	}
	s.configPath = opts.ConfigPath
	s.registry = opts.Registry
	s.stickers = opts.Stickers

	md, err := render.NewMarkdown(72, opts.MarkdownStyle)
	if err != nil {
		return nil, err
	}
	s.md = md

	return &App{view: viewWelcome, state: s}, nil
}

func (a *App) Init() tea.Cmd {
	a.state.input.Focus()
	return tea.Batch(
		tea.WindowSize(),
		textinput.Blink,
		a.activate(modes.DefaultMode(a.state.config)),
	)
}

type activatedMsg struct {
	id       string
	name     string
	greeting string
	history  []session.Turn
	err      error
}

type responseMsg struct {
	resp *mode.Response
	err  error
}

type noticeMsg struct {
	text string
	err  error
}

type uploadDoneMsg struct {
	sticker sticker.Sticker
	err     error
}

type stickerSentMsg struct {
	sticker sticker.Sticker
	err     error
}

type stickerRemovedMsg struct {
	sticker sticker.Sticker
	err     error
}

type settingsSavedMsg struct{ err error }

func (a *App) activate(id string) tea.Cmd {
	reg := a.state.registry
	return func() tea.Msg {
		m, err := reg.Activate(context.Background(), id)
		if err != nil {
			return activatedMsg{id: id, err: err}
		}
		msg := activatedMsg{id: id, name: m.Info().Name}
		if g, ok := m.(mode.Greeter); ok {
			msg.greeting = g.Greeting()
		}
		if hk, ok := m.(mode.HistoryKeeper); ok {
			msg.history = hk.History()
		}
		return msg
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd, handled := a.handleKey(msg); handled {
			return a, cmd
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.state.input.Width = max(20, min(70, a.width-8))
		if err := a.state.md.SetWidth(max(20, min(72, a.width-8))); err == nil {
			a.rerender()
		}
		return a, nil

	case activatedMsg:
		if msg.err != nil {
			a.state.notice = msg.err.Error()
			return a, nil
		}
		a.state.activeID = msg.id
		a.state.activeName = msg.name
		a.state.greeting = msg.greeting
		a.state.suggestions = nil
		a.state.scrollOffset = 0
		a.state.chat = nil
		for _, t := range msg.history {
			a.appendLine(t.Role, t.Content)
		}
		a.state.notice = ""
		if len(a.state.chat) == 0 {
			a.view = viewWelcome
		} else {
			a.view = viewChat
		}
		return a, nil

	case responseMsg:
		a.state.busy = false
		if msg.err != nil {
			a.showError(msg.err)
			return a, nil
		}
		a.appendLine(session.RoleAssistant, msg.resp.Text)
		a.state.suggestions = msg.resp.Suggestions
		a.state.scrollOffset = 0
		return a, nil

	case noticeMsg:
		a.state.busy = false
		if msg.err != nil {
			a.showError(msg.err)
			return a, nil
		}
		a.appendLine(roleSystem, msg.text)
		return a, nil

	case uploadDoneMsg:
		a.state.busy = false
		if msg.err != nil {
			a.showError(msg.err)
			return a, nil
		}
		a.state.input.Reset()
		a.appendLine(roleSystem, fmt.Sprintf("Added sticker %q to Custom Stickers.", msg.sticker.Name))
		return a, nil

	case stickerSentMsg:
		if msg.err != nil {
			a.showError(msg.err)
			return a, nil
		}
		a.appendLine(session.RoleUser, "["+msg.sticker.Name+" sticker]")
		a.view = viewChat
		return a, nil

	case stickerRemovedMsg:
		if msg.err != nil {
			a.showError(msg.err)
			return a, nil
		}
		a.state.notice = fmt.Sprintf("Removed sticker %q.", msg.sticker.Name)
		if n := len(a.stickerRows()); a.state.stickerSelected >= n {
			a.state.stickerSelected = max(0, n-1)
		}
		return a, nil

	case settingsSavedMsg:
		if msg.err != nil {
			a.showError(msg.err)
			return a, nil
		}
		a.state.settingsDirty = false
		a.state.notice = "Settings saved. Store changes apply on next start."
		return a, nil
	}

	var cmd tea.Cmd
	if a.view == viewWelcome || a.view == viewChat {
		a.state.input, cmd = a.state.input.Update(msg)
	}
	return a, cmd
}

// handleKey reports whether the key was consumed.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if key.Matches(msg, keys.Quit) {
		a.quitting = true
		return tea.Quit, true
	}

	switch a.view {
	case viewError:
		if key.Matches(msg, keys.Back) || key.Matches(msg, keys.Enter) {
			a.state.err = nil
			a.view = a.back
		}
		return nil, true
	case viewHelp:
		if key.Matches(msg, keys.Back) {
			a.view = a.chatView()
		}
		return nil, true
	case viewModes:
		return a.handleModesKey(msg), true
	case viewStickers:
		return a.handleStickersKey(msg), true
	case viewSettings:
		return a.handleSettingsKey(msg), true
	}

	switch {
	case key.Matches(msg, keys.Back):
		a.quitting = true
		return tea.Quit, true
	case key.Matches(msg, keys.Enter):
		return a.submit(), true
	case key.Matches(msg, keys.PageUp), key.Matches(msg, keys.Up):
		a.state.scrollOffset += 3
		return nil, true
	case key.Matches(msg, keys.PageDown), key.Matches(msg, keys.Down):
		a.state.scrollOffset = max(0, a.state.scrollOffset-3)
		return nil, true
	}
	return nil, false
}

func (a *App) chatView() view {
	if len(a.state.chat) == 0 {
		return viewWelcome
	}
	return viewChat
}

func (a *App) showError(err error) {
	logger.With("tui").Debug("showing error", "err", err)
	a.state.err = err
	if a.view != viewError {
		a.back = a.view
	}
	a.view = viewError
}

func (a *App) appendLine(role session.Role, content string) {
	line := chatLine{role: role, content: content}
	if role == session.RoleAssistant {
		line.rendered = a.state.md.Render(content)
	}
	a.state.chat = append(a.state.chat, line)
	if a.view == viewWelcome {
		a.view = viewChat
	}
}

func (a *App) rerender() {
	for i, l := range a.state.chat {
		if l.role == session.RoleAssistant {
			a.state.chat[i].rendered = a.state.md.Render(l.content)
		}
	}
}

func (a *App) submit() tea.Cmd {
	if a.state.busy {
		return nil
	}
	input := strings.TrimSpace(a.state.input.Value())
	if input == "" {
		return nil
	}
	a.state.notice = ""

	if c, ok := parseCommand(input); ok {
		return a.runCommand(c)
	}

	a.state.input.Reset()
	return a.send(input)
}

func (a *App) send(text string) tea.Cmd {
	if a.state.activeID == "" {
		a.state.notice = "No active mode. Pick one with /modes."
		return nil
	}
	a.appendLine(session.RoleUser, text)
	a.state.busy = true
	reg, id := a.state.registry, a.state.activeID
	return func() tea.Msg {
		resp, err := reg.Process(context.Background(), id, text, nil)
		return responseMsg{resp: resp, err: err}
	}
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewChat:
		return a.renderChat()
	case viewModes:
		return a.renderModes()
	case viewStickers:
		return a.renderStickers()
	case viewSettings:
		return a.renderSettings()
	case viewHelp:
		return a.renderHelp()
	case viewError:
		return a.renderError()
	default:
		return a.renderWelcome()
	}
}

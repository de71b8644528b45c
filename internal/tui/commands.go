package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sant0-9/companion/internal/mode"
	"github.com/sant0-9/companion/internal/modes/coach"
	"github.com/sant0-9/companion/internal/sticker"
)

type command struct {
	name string
	args []string
	// rest is everything after the command name, spacing preserved.
	rest string
}

// parseCommand splits a slash command. Input that does not start with "/"
// is an ordinary message.
func parseCommand(input string) (command, bool) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") || len(input) == 1 {
		return command{}, false
	}
	name, rest, _ := strings.Cut(input[1:], " ")
	return command{
		name: strings.ToLower(name),
		args: strings.Fields(rest),
		rest: strings.TrimSpace(rest),
	}, true
}

type commandHelp struct {
	usage string
	desc  string
}

var commandList = []commandHelp{
	{"/help", "Show this help"},
	{"/modes", "Pick an assistant mode"},
	{"/mode <id>", "Switch directly to a mode"},
	{"/clear", "Clear this mode's conversation history"},
	{"/tool <id> [topic]", "Run one of the active mode's tools"},
	{"/stickers", "Browse and send stickers"},
	{"/upload <name> <path>", "Add a PNG or GIF sticker (max 1 MB)"},
	{"/unsticker <name>", "Remove one of your uploaded stickers"},
	{"/goal <title>", "Add a coaching goal"},
	{"/action <title>", "Add a coaching action item"},
	{"/progress <goal-id> <pct>", "Update a goal's progress"},
	{"/settings", "Edit settings"},
	{"/quit", "Exit"},
}

var errUsage = errors.New("usage")

func usage(format string) error {
	return fmt.Errorf("%w: %s", errUsage, format)
}

func (a *App) runCommand(c command) tea.Cmd {
	reset := true
	defer func() {
		if reset {
			a.state.input.Reset()
		}
	}()

	switch c.name {
	case "help", "h", "?":
		a.view = viewHelp
		return nil

	case "quit", "exit", "q":
		a.quitting = true
		return tea.Quit

	case "modes":
		a.state.modeSelected = 0
		for i, info := range a.state.registry.List() {
			if info.ID == a.state.activeID {
				a.state.modeSelected = i
			}
		}
		a.view = viewModes
		return nil

	case "mode":
		if len(c.args) != 1 {
			a.state.notice = usage("/mode <id>").Error()
			return nil
		}
		return a.activate(c.args[0])

	case "clear":
		return a.clearHistory()

	case "stickers":
		if a.state.stickers == nil {
			a.state.notice = "Stickers are not available."
			return nil
		}
		a.state.stickerSelected = 0
		a.view = viewStickers
		return nil

	case "settings":
		a.state.settingsSelected = 0
		a.view = viewSettings
		return nil

	case "upload":
		if len(c.args) < 2 {
			a.state.notice = usage("/upload <name> <path>").Error()
			return nil
		}
		// Uploads keep the input until they succeed so a failed path can be fixed.
		reset = false
		return a.upload(strings.Join(c.args[:len(c.args)-1], " "), c.args[len(c.args)-1])

	case "unsticker":
		if c.rest == "" {
			a.state.notice = usage("/unsticker <name>").Error()
			return nil
		}
		if a.state.stickers == nil {
			a.state.notice = "Stickers are not available."
			return nil
		}
		s, ok := a.customSticker(c.rest)
		if !ok {
			a.state.notice = fmt.Sprintf("No custom sticker named %q.", c.rest)
			return nil
		}
		return a.removeSticker(s)

	case "tool":
		if len(c.args) == 0 {
			a.state.notice = usage("/tool <id> [topic]").Error()
			return nil
		}
		return a.runTool(c.args[0], strings.Join(c.args[1:], " "))

	case "goal":
		if c.rest == "" {
			a.state.notice = usage("/goal <title>").Error()
			return nil
		}
		return a.withCoach(func(ctx context.Context, co *coach.Coach) (string, error) {
			g, err := co.AddGoal(ctx, coach.GoalInput{Title: c.rest})
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Goal %q added (id %s).", g.Title, g.ID), nil
		})

	case "action":
		if c.rest == "" {
			a.state.notice = usage("/action <title>").Error()
			return nil
		}
		return a.withCoach(func(ctx context.Context, co *coach.Coach) (string, error) {
			item, err := co.AddActionItem(ctx, coach.ActionInput{Title: c.rest})
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Action item %q added (id %s).", item.Title, item.ID), nil
		})

	case "progress":
		if len(c.args) != 2 {
			a.state.notice = usage("/progress <goal-id> <pct>").Error()
			return nil
		}
		pct, err := strconv.Atoi(strings.TrimSuffix(c.args[1], "%"))
		if err != nil {
			a.state.notice = usage("/progress <goal-id> <pct>").Error()
			return nil
		}
		id := c.args[0]
		return a.withCoach(func(ctx context.Context, co *coach.Coach) (string, error) {
			if err := co.UpdateGoalProgress(ctx, id, pct); err != nil {
				return "", err
			}
			return fmt.Sprintf("Goal %s is now %d%% complete.", id, pct), nil
		})
	}

	a.state.notice = fmt.Sprintf("Unknown command /%s. Type /help for the list.", c.name)
	return nil
}

func (a *App) clearHistory() tea.Cmd {
	m, ok := a.state.registry.Get(a.state.activeID)
	if !ok {
		return nil
	}
	hk, ok := m.(mode.HistoryKeeper)
	if !ok {
		a.state.notice = "This mode keeps no history."
		return nil
	}
	a.state.chat = nil
	a.state.suggestions = nil
	a.state.scrollOffset = 0
	a.view = viewWelcome
	return func() tea.Msg {
		if err := hk.ClearHistory(context.Background()); err != nil {
			return noticeMsg{err: err}
		}
		return nil
	}
}

func (a *App) upload(name, path string) tea.Cmd {
	picker := a.state.stickers
	if picker == nil {
		a.state.notice = "Stickers are not available."
		return nil
	}
	a.state.busy = true
	return func() tea.Msg {
		src, err := sticker.FileSource(path)
		if err != nil {
			return uploadDoneMsg{err: err}
		}
		s, err := picker.Upload(context.Background(), name, src)
		return uploadDoneMsg{sticker: s, err: err}
	}
}

func (a *App) runTool(tool, topic string) tea.Cmd {
	if a.state.activeID == "" {
		return nil
	}
	label := tool
	if m, ok := a.state.registry.Get(a.state.activeID); ok {
		if t, ok := m.(mode.Tooler); ok {
			for _, info := range t.Tools() {
				if info.ID == tool {
					label = info.Name
				}
			}
		}
	}
	a.appendLine(roleSystem, "Running "+label+"...")
	a.state.busy = true
	reg, id := a.state.registry, a.state.activeID
	return func() tea.Msg {
		resp, err := reg.RunTool(context.Background(), id, tool, topic)
		return responseMsg{resp: resp, err: err}
	}
}

func (a *App) withCoach(fn func(context.Context, *coach.Coach) (string, error)) tea.Cmd {
	reg := a.state.registry
	a.state.busy = true
	return func() tea.Msg {
		ctx := context.Background()
		m, err := reg.Ready(ctx, coach.ID)
		if err != nil {
			return noticeMsg{err: err}
		}
		co, ok := m.(*coach.Coach)
		if !ok {
			return noticeMsg{err: fmt.Errorf("%w: %s", mode.ErrUnknownMode, coach.ID)}
		}
		text, err := fn(ctx, co)
		return noticeMsg{text: text, err: err}
	}
}

package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/companion/internal/config"
	"github.com/sant0-9/companion/internal/modes"
)

var historyLimits = []int{20, 50, 100, 200}

type setting struct {
	label string
	value func(*config.Config) string
	next  func(*config.Config)
}

var settings = []setting{
	{
		label: "Store backend",
		value: func(c *config.Config) string {
			if b := config.GetBackend(c.Store.Backend); b != nil {
				return b.Name + " (" + b.ID + ")"
			}
			return c.Store.Backend
		},
		next: func(c *config.Config) {
			ids := make([]string, len(config.Backends))
			for i, b := range config.Backends {
				ids[i] = b.ID
			}
			c.Store.Backend = cycle(ids, c.Store.Backend)
			c.Store.Path = ""
		},
	},
	{
		label: "Default mode",
		value: func(c *config.Config) string { return modes.DefaultMode(c) },
		next: func(c *config.Config) {
			c.DefaultMode = cycle(modes.IDs, modes.DefaultMode(c))
		},
	},
	{
		label: "History limit",
		value: func(c *config.Config) string { return fmt.Sprintf("%d turns", c.HistoryLimit) },
		next: func(c *config.Config) {
			c.HistoryLimit = cycle(historyLimits, c.HistoryLimit)
		},
	},
}

// cycle returns the element after cur, wrapping around. An unknown cur
// yields the first element.
func cycle[T comparable](list []T, cur T) T {
	i := slices.Index(list, cur)
	return list[(i+1)%len(list)]
}

func (a *App) handleSettingsKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Back):
		a.view = a.chatView()
	case key.Matches(msg, keys.Up):
		if a.state.settingsSelected > 0 {
			a.state.settingsSelected--
		}
	case key.Matches(msg, keys.Down):
		if a.state.settingsSelected < len(settings)-1 {
			a.state.settingsSelected++
		}
	case key.Matches(msg, keys.Enter):
		settings[a.state.settingsSelected].next(a.state.config)
		a.state.settingsDirty = true
	case key.Matches(msg, keys.Save):
		return a.saveSettings()
	}
	return nil
}

func (a *App) saveSettings() tea.Cmd {
	cfg := *a.state.config
	path := a.state.configPath
	return func() tea.Msg {
		if path != "" {
			return settingsSavedMsg{err: cfg.SaveTo(path)}
		}
		return settingsSavedMsg{err: cfg.Save()}
	}
}

func (a *App) renderSettings() string {
	var b strings.Builder

	title := styleTitle.Render("Settings")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	lines := make([]string, 0, len(settings))
	for i, s := range settings {
		lines = append(lines, listLine(fmt.Sprintf("%-14s %s", s.label+":", s.value(a.state.config)), i == a.state.settingsSelected))
	}

	box := styleBox.
		Width(min(60, max(20, a.width-4))).
		Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box))
	b.WriteString("\n\n")

	if a.state.notice != "" {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleSystem.Render(a.state.notice)))
		b.WriteString("\n\n")
	}

	status := "[Up/Down] Select  [Enter] Change  [s] Save  [Esc] Back"
	if a.state.settingsDirty {
		status = "(unsaved)  " + status
	}
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleStatusBar.Render(status)))

	return a.centerVertically(b.String())
}

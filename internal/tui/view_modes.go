package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (a *App) handleModesKey(msg tea.KeyMsg) tea.Cmd {
	infos := a.state.registry.List()
	switch {
	case key.Matches(msg, keys.Back):
		a.view = a.chatView()
	case key.Matches(msg, keys.Up):
		if a.state.modeSelected > 0 {
			a.state.modeSelected--
		}
	case key.Matches(msg, keys.Down):
		if a.state.modeSelected < len(infos)-1 {
			a.state.modeSelected++
		}
	case key.Matches(msg, keys.Enter):
		if a.state.modeSelected < len(infos) {
			return a.activate(infos[a.state.modeSelected].ID)
		}
	}
	return nil
}

func (a *App) renderModes() string {
	var b strings.Builder

	title := styleTitle.Render("Modes")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	width := min(70, max(20, a.width-4))
	var lines []string
	for i, info := range a.state.registry.List() {
		name := info.Name
		if info.ID == a.state.activeID {
			name += " (active)"
		}
		lines = append(lines, listLine(name, i == a.state.modeSelected))
		lines = append(lines, styleSubtitle.Render("    "+truncate(info.Description, width-8)))
	}

	box := styleBox.Width(width).Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box))
	b.WriteString("\n\n")

	status := styleStatusBar.Render("[Up/Down] Select  [Enter] Switch  [Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}

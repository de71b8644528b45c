package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderHelp() string {
	var b strings.Builder

	title := styleTitle.Render("Help")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	commands := make([]string, 0, len(commandList))
	for _, c := range commandList {
		commands = append(commands, fmt.Sprintf("  %-27s %s", c.usage, c.desc))
	}
	commands = append(commands, "", "  Anything else is sent to the active mode")

	commandsBox := styleBox.
		Width(min(72, max(20, a.width-4))).
		Render(strings.Join(commands, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, commandsBox))
	b.WriteString("\n\n")

	shortcuts := []string{
		"  Esc            Go back / Quit",
		"  Enter          Submit or select",
		"  Up/Down        Scroll chat or move selection",
		"  PgUp/PgDn      Scroll chat",
		"  Ctrl+C         Quit",
	}

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleSubtitle.Render("Keyboard Shortcuts")))
	b.WriteString("\n\n")

	shortcutsBox := styleBox.
		Width(min(72, max(20, a.width-4))).
		Render(strings.Join(shortcuts, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, shortcutsBox))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleStatusBar.Render("[Esc] Back")))

	return a.centerVertically(b.String())
}

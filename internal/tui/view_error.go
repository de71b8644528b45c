package tui

import (
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/companion/internal/kv"
	"github.com/sant0-9/companion/internal/mode"
	"github.com/sant0-9/companion/internal/modes/coach"
	"github.com/sant0-9/companion/internal/sticker"
)

// errorHints suggests a next step for errors the user can act on.
func errorHints(err error) []string {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return []string{"Check the file path is correct", "Paths are relative to where companion was started"}
	case errors.Is(err, sticker.ErrTooLarge):
		return []string{"Stickers must be 1 MB or smaller"}
	case errors.Is(err, sticker.ErrUnsupportedType):
		return []string{"Only PNG and GIF images can be used as stickers"}
	case errors.Is(err, sticker.ErrEmptyName):
		return []string{"Give the sticker a name: /upload <name> <path>"}
	case errors.Is(err, coach.ErrNotFound):
		return []string{"Goal and action ids are shown when they are created"}
	case errors.Is(err, coach.ErrInvalidProgress):
		return []string{"Progress is a percentage from 0 to 100"}
	case errors.Is(err, kv.ErrQuotaExceeded):
		return []string{"Storage is full", "Try /clear to drop this mode's history"}
	case errors.Is(err, mode.ErrUnknownMode):
		return []string{"Use /modes to see the available modes"}
	case errors.Is(err, mode.ErrUnknownTool):
		return []string{"Use /help to see how to run tools"}
	}
	return nil
}

func (a *App) renderError() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true).
		Render("Something went wrong")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	errMsg := "Unknown error"
	if a.state.err != nil {
		errMsg = a.state.err.Error()
	}

	boxWidth := min(60, max(20, a.width-4))
	errBox := styleBox.
		Width(boxWidth).
		BorderForeground(colorError).
		Render(errMsg)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, errBox))
	b.WriteString("\n\n")

	if hints := errorHints(a.state.err); len(hints) > 0 {
		suggBox := styleBox.
			Width(boxWidth).
			Render("Suggestions:\n" + strings.Join(hints, "\n"))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, suggBox))
		b.WriteString("\n\n")
	}

	status := styleStatusBar.Render("[Enter/Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}

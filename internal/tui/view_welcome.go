package tui

import "github.com/charmbracelet/lipgloss"

const logo = `
  ___ ___  _ __ ___  _ __   __ _ _ __ (_) ___  _ __
 / __/ _ \| '_ ' _ \| '_ \ / _' | '_ \| |/ _ \| '_ \
| (_| (_) | | | | | | |_) | (_| | | | | | (_) | | | |
 \___\___/|_| |_| |_| .__/ \__,_|_| |_|_|\___/|_| |_|
                    |_|
`

func (a *App) renderWelcome() string {
	logoRendered := styleLogo.Render(logo)

	name := a.state.activeName
	if name == "" {
		name = "Loading..."
	}
	subtitle := styleTitle.Render(name)

	greeting := ""
	if a.state.greeting != "" {
		greeting = styleSubtitle.
			Width(min(70, max(20, a.width-8))).
			Align(lipgloss.Center).
			Render("\n" + a.state.greeting)
	}

	inputBox := styleBox.
		Width(min(70, max(20, a.width-4))).
		Render(a.state.input.View())

	parts := []string{logoRendered, subtitle, greeting, "", inputBox}
	if a.state.notice != "" {
		parts = append(parts, styleSystem.Render(a.state.notice))
	}
	content := lipgloss.JoinVertical(lipgloss.Center, parts...)

	mainArea := lipgloss.Place(
		a.width,
		max(1, a.height-2),
		lipgloss.Center,
		lipgloss.Center,
		content,
	)

	statusBar := styleStatusBar.Render("[Esc] Quit  /help Commands  /modes Switch mode")
	statusLine := lipgloss.PlaceHorizontal(a.width, lipgloss.Center, statusBar)

	return lipgloss.JoinVertical(lipgloss.Left, mainArea, statusLine)
}

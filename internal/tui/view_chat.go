package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/companion/internal/session"
)

func (a *App) renderChat() string {
	boxWidth := min(70, max(20, a.width-4))
	leftPad := max(2, (a.width-boxWidth)/2)
	indent := strings.Repeat(" ", leftPad)

	headerHeight := 3
	footerHeight := 5
	if len(a.state.suggestions) > 0 {
		footerHeight++
	}
	availableHeight := max(5, a.height-headerHeight-footerHeight)

	var header strings.Builder
	title := styleTitle.Render(a.state.activeName)
	header.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	header.WriteString("\n")
	sub := styleSubtitle.Render(a.state.activeID)
	header.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, sub))
	header.WriteString("\n\n")

	messageLines := a.chatLines(boxWidth, indent)
	if a.state.busy {
		messageLines = append(messageLines, indent+styleSystem.Render("  Thinking..."))
	}

	// scrollOffset counts lines up from the bottom.
	totalLines := len(messageLines)
	maxScroll := max(0, totalLines-availableHeight)
	a.state.scrollOffset = min(max(0, a.state.scrollOffset), maxScroll)

	endIdx := totalLines - a.state.scrollOffset
	startIdx := max(0, endIdx-availableHeight)
	visible := messageLines[startIdx:endIdx]

	var footer strings.Builder
	if len(a.state.suggestions) > 0 {
		line := styleSubtitle.Render(truncate("Try: "+strings.Join(a.state.suggestions, " | "), boxWidth))
		footer.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, line))
		footer.WriteString("\n")
	}
	inputBox := styleBox.
		Width(boxWidth).
		Render(a.state.input.View())
	footer.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, inputBox))
	footer.WriteString("\n")

	var statusParts []string
	if a.state.notice != "" {
		statusParts = append(statusParts, a.state.notice)
	}
	if a.state.scrollOffset > 0 {
		statusParts = append(statusParts, fmt.Sprintf("[scroll: %d]", a.state.scrollOffset))
	}
	statusParts = append(statusParts, "[PgUp/PgDn] Scroll  /help Commands  [Esc] Quit")
	status := styleStatusBar.Render(strings.Join(statusParts, "  "))
	footer.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	var area strings.Builder
	area.WriteString(strings.Join(visible, "\n"))
	if pad := availableHeight - len(visible); pad > 0 {
		area.WriteString(strings.Repeat("\n", pad))
	}

	return header.String() + area.String() + "\n" + footer.String()
}

func (a *App) chatLines(width int, indent string) []string {
	var lines []string
	for _, msg := range a.state.chat {
		switch msg.role {
		case session.RoleUser:
			for j, line := range strings.Split(wrapText(msg.content, width-4), "\n") {
				prefix := "> "
				if j > 0 {
					prefix = "  "
				}
				lines = append(lines, indent+styleUser.Render(prefix+line))
			}
		case session.RoleAssistant:
			text := msg.rendered
			if text == "" {
				text = wrapText(msg.content, width-4)
			}
			for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
				lines = append(lines, indent+line)
			}
		default:
			for _, line := range strings.Split(wrapText(msg.content, width-4), "\n") {
				lines = append(lines, indent+styleSystem.Render("  "+line))
			}
		}
		lines = append(lines, "")
	}
	return lines
}

// wrapText wraps text to fit within maxWidth, preserving words and
// existing line breaks.
func wrapText(text string, maxWidth int) string {
	if maxWidth <= 0 {
		maxWidth = 60
	}
	paragraphs := strings.Split(text, "\n")
	for i, p := range paragraphs {
		paragraphs[i] = wrapLine(p, maxWidth)
	}
	return strings.Join(paragraphs, "\n")
}

func wrapLine(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var result strings.Builder
	lineLen := 0
	for i, word := range strings.Fields(text) {
		if i > 0 {
			if lineLen+1+len(word) > maxWidth {
				result.WriteString("\n")
				lineLen = 0
			} else {
				result.WriteString(" ")
				lineLen++
			}
		}
		result.WriteString(word)
		lineLen += len(word)
	}
	return result.String()
}

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/companion/internal/sticker"
)

type stickerRow struct {
	group   string
	sticker sticker.Sticker
}

// stickerRows lists recent stickers first, then every pack in order.
func (a *App) stickerRows() []stickerRow {
	var rows []stickerRow
	for _, s := range a.state.stickers.Recent() {
		rows = append(rows, stickerRow{group: "Recent", sticker: s})
	}
	for _, p := range a.state.stickers.Packs() {
		for _, s := range p.Stickers {
			rows = append(rows, stickerRow{group: p.Name, sticker: s})
		}
	}
	return rows
}

func (a *App) handleStickersKey(msg tea.KeyMsg) tea.Cmd {
	rows := a.stickerRows()
	switch {
	case key.Matches(msg, keys.Back):
		a.view = a.chatView()
	case key.Matches(msg, keys.Up):
		if a.state.stickerSelected > 0 {
			a.state.stickerSelected--
		}
	case key.Matches(msg, keys.Down):
		if a.state.stickerSelected < len(rows)-1 {
			a.state.stickerSelected++
		}
	case key.Matches(msg, keys.Remove):
		if a.state.stickerSelected < len(rows) {
			return a.removeSticker(rows[a.state.stickerSelected].sticker)
		}
	case key.Matches(msg, keys.Enter):
		if a.state.stickerSelected < len(rows) {
			picker, id := a.state.stickers, rows[a.state.stickerSelected].sticker.ID
			return func() tea.Msg {
				s, err := picker.Send(context.Background(), id)
				return stickerSentMsg{sticker: s, err: err}
			}
		}
	}
	return nil
}

// customSticker looks up an uploaded sticker by name, ignoring case.
func (a *App) customSticker(name string) (sticker.Sticker, bool) {
	for _, p := range a.state.stickers.Packs() {
		if p.ID != sticker.CustomPackID {
			continue
		}
		for _, s := range p.Stickers {
			if strings.EqualFold(s.Name, name) {
				return s, true
			}
		}
	}
	return sticker.Sticker{}, false
}

func (a *App) removeSticker(s sticker.Sticker) tea.Cmd {
	if !strings.HasPrefix(s.ID, sticker.CustomPackID+"-") {
		a.state.notice = "Only custom stickers can be removed."
		return nil
	}
	picker := a.state.stickers
	return func() tea.Msg {
		return stickerRemovedMsg{sticker: s, err: picker.Remove(context.Background(), s.ID)}
	}
}

func (a *App) renderStickers() string {
	var b strings.Builder

	title := styleTitle.Render("Stickers")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	rows := a.stickerRows()
	visible := max(5, a.height-10)
	start := max(0, min(a.state.stickerSelected-visible/2, len(rows)-visible))
	end := min(len(rows), start+visible)

	var lines []string
	group := ""
	if start > 0 {
		group = rows[start-1].group
	}
	for i := start; i < end; i++ {
		r := rows[i]
		if r.group != group {
			group = r.group
			lines = append(lines, styleSubtitle.Render(group))
		}
		lines = append(lines, listLine(r.sticker.Name, i == a.state.stickerSelected))
	}
	if len(rows) == 0 {
		lines = append(lines, styleSubtitle.Render("No stickers"))
	}

	box := styleBox.Width(min(50, max(20, a.width-4))).Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box))
	b.WriteString("\n\n")

	status := styleStatusBar.Render("[Up/Down] Select  [Enter] Send  [x] Remove  [Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))
	if a.state.notice != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleSubtitle.Render(a.state.notice)))
	}

	return a.centerVertically(b.String())
}

package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/sant0-9/companion/internal/logger"
)

// Markdown renders replies for the terminal with glamour.
type Markdown struct {
	mu       sync.Mutex
	style    string
	width    int
	renderer *glamour.TermRenderer
}

// NewMarkdown creates a renderer wrapping at width. An empty style picks
// one from the terminal background.
func NewMarkdown(width int, style string) (*Markdown, error) {
	m := &Markdown{style: style}
	if err := m.SetWidth(width); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Markdown) SetWidth(width int) error {
	if width <= 0 {
		width = 80
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.renderer != nil && width == m.width {
		return nil
	}

	styleOpt := glamour.WithAutoStyle()
	if m.style != "" {
		styleOpt = glamour.WithStandardStyle(m.style)
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	m.renderer = r
	m.width = width
	return nil
}

// Render returns the styled text, or md unchanged if glamour fails.
func (m *Markdown) Render(md string) string {
	if strings.TrimSpace(md) == "" {
		return md
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out, err := m.renderer.Render(md)
	if err != nil {
		logger.With("render").Debug("markdown render failed", "err", err)
		return md
	}
	return strings.TrimRight(out, "\n") + "\n"
}

func (m *Markdown) Width() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.width
}

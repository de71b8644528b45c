// Package mode defines what an assistant mode is and keeps the set of
// modes the app can switch between.
package mode

import (
	"context"
	"time"

	"github.com/sant0-9/companion/internal/session"
)

// Mode is the interface every assistant mode implements
type Mode interface {
	// Info describes the mode for listings
	Info() Info

	// Initialize prepares the mode and loads its saved state
	Initialize(ctx context.Context, opts Options) error

	// ProcessInput answers one user message
	ProcessInput(ctx context.Context, text string, c Context) (*Response, error)

	// Cleanup releases anything Initialize acquired
	Cleanup(ctx context.Context) error
}

type Info struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Version     string `json:"version"`
}

// Options configure a mode at initialization.
type Options map[string]string

// Context carries caller-supplied facts for one turn, such as current
// weather conditions.
type Context map[string]string

type Response struct {
	Text        string            `json:"text"`
	Category    string            `json:"category,omitempty"`
	Suggestions []string          `json:"suggestions,omitempty"`
	Source      string            `json:"source"`
	Meta        map[string]string `json:"meta,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
}

// Greeter is implemented by modes with an opening message.
type Greeter interface {
	Greeting() string
}

// HistoryKeeper is implemented by modes that keep a conversation.
type HistoryKeeper interface {
	History() []session.Turn
	ClearHistory(ctx context.Context) error
}

// Tool is a canned prompt a user can trigger directly.
type Tool struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Tooler is implemented by modes that offer tools.
type Tooler interface {
	Tools() []Tool
	// ToolPrompt returns the prompt behind tool id, with topic appended when
	// one is given.
	ToolPrompt(id, topic string) (string, bool)
}

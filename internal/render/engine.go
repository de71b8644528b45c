// Package render turns a category and its slots into reply text.
package render

import (
	"github.com/sant0-9/companion/internal/intent"
	"github.com/sant0-9/companion/internal/session"
	"github.com/sant0-9/companion/internal/slot"
)

// Func renders one category. It must not mutate state.
type Func func(slots slot.Values, st *session.State) string

// Engine maps categories to templates.
type Engine struct {
	templates map[string]Func
	fallback  Func
}

// NewEngine returns an engine that uses fallback for unknown categories
// and for intent.General.
func NewEngine(fallback Func) *Engine {
	return &Engine{
		templates: make(map[string]Func),
		fallback:  fallback,
	}
}

func (e *Engine) Register(category string, fn Func) *Engine {
	e.templates[category] = fn
	return e
}

func (e *Engine) Has(category string) bool {
	_, ok := e.templates[category]
	return ok
}

func (e *Engine) Render(category string, slots slot.Values, st *session.State) string {
	if slots == nil {
		slots = slot.Values{}
	}
	if st == nil {
		st = session.NewState()
	}
	if fn, ok := e.templates[category]; ok && fn != nil {
		return fn(slots, st)
	}
	if fn, ok := e.templates[intent.General]; ok && fn != nil {
		return fn(slots, st)
	}
	if e.fallback != nil {
		return e.fallback(slots, st)
	}
	return ""
}

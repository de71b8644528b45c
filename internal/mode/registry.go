package mode

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sant0-9/companion/internal/logger"
)

var (
	ErrUnknownMode   = errors.New("unknown mode")
	ErrDuplicateMode = errors.New("mode already registered")
	ErrUnknownTool   = errors.New("unknown tool")
)

type entry struct {
	mode        Mode
	opts        Options
	initialized bool
	// turn serialises ProcessInput calls for this mode.
	turn sync.Mutex
}

// Registry owns the registered modes and which one is active.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	order   []string
	active  string
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

func (r *Registry) Register(m Mode, opts Options) error {
	id := m.Info().ID

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateMode, id)
	}
	if opts == nil {
		opts = Options{}
	}
	r.entries[id] = &entry{mode: m, opts: opts}
	r.order = append(r.order, id)
	return nil
}

func (r *Registry) Get(id string) (Mode, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	return e.mode, true
}

// List returns mode infos in registration order.
func (r *Registry) List() []Info {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Info, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id].mode.Info())
	}
	return out
}

func (r *Registry) Count() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

// Active returns the active mode, if any.
func (r *Registry) Active() (Mode, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == "" {
		return nil, false
	}
	return r.entries[r.active].mode, true
}

// Activate switches the active mode, cleaning up the previous one.
func (r *Registry) Activate(ctx context.Context, id string) (Mode, error) {
	r.mu.Lock()
	next, ok := r.entries[id]
	if !ok {
		r.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, id)
	}
	prev := r.entries[r.active]
	r.active = id
	r.mu.Unlock()

	if prev != nil && prev != next {
		r.cleanup(ctx, prev)
	}
	if err := r.ensureInit(ctx, next); err != nil {
		return nil, err
	}
	logger.With("mode").Debug("activated", "mode", id)
	return next.mode, nil
}

func (r *Registry) ensureInit(ctx context.Context, e *entry) error {
	e.turn.Lock()
	defer e.turn.Unlock()
	if e.initialized {
		return nil
	}
	if err := e.mode.Initialize(ctx, e.opts); err != nil {
		return fmt.Errorf("initialize %s: %w", e.mode.Info().ID, err)
	}
	e.initialized = true
	return nil
}

func (r *Registry) cleanup(ctx context.Context, e *entry) {
	e.turn.Lock()
	defer e.turn.Unlock()
	if !e.initialized {
		return
	}
	if err := e.mode.Cleanup(ctx); err != nil {
		logger.With("mode").Warn("cleanup failed", "mode", e.mode.Info().ID, "err", err)
	}
	e.initialized = false
}

// Process runs one turn against mode id, initializing it on first use.
// Turns for the same mode never overlap.
func (r *Registry) Process(ctx context.Context, id, text string, c Context) (*Response, error) {
	r.mu.Lock()
	e, ok := r.entries[id]
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, id)
	}

	if err := r.ensureInit(ctx, e); err != nil {
		return nil, err
	}

	e.turn.Lock()
	defer e.turn.Unlock()
	if c == nil {
		c = Context{}
	}
	return e.mode.ProcessInput(ctx, text, c)
}

// RunTool sends the prompt behind tool through mode id as an ordinary turn.
// topic may be empty.
func (r *Registry) RunTool(ctx context.Context, id, tool, topic string) (*Response, error) {
	m, ok := r.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, id)
	}
	t, ok := m.(Tooler)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no tools", ErrUnknownTool, id)
	}
	prompt, ok := t.ToolPrompt(tool, topic)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, tool)
	}
	return r.Process(ctx, id, prompt, nil)
}

// Ready returns mode id initialized, for callers that use a mode's own
// operations outside of a turn.
func (r *Registry) Ready(ctx context.Context, id string) (Mode, error) {
	r.mu.Lock()
	e, ok := r.entries[id]
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, id)
	}
	if err := r.ensureInit(ctx, e); err != nil {
		return nil, err
	}
	return e.mode, nil
}

// Close cleans up every initialized mode.
func (r *Registry) Close(ctx context.Context) error {
	r.mu.Lock()
	entries := make([]*entry, 0, len(r.order))
	for _, id := range r.order {
		entries = append(entries, r.entries[id])
	}
	r.active = ""
	r.mu.Unlock()

	var errs []error
	for _, e := range entries {
		e.turn.Lock()
		if e.initialized {
			if err := e.mode.Cleanup(ctx); err != nil {
				errs = append(errs, fmt.Errorf("cleanup %s: %w", e.mode.Info().ID, err))
			}
			e.initialized = false
		}
		e.turn.Unlock()
	}
	return errors.Join(errs...)
}

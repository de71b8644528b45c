package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sant0-9/companion/internal/intent"
	"github.com/sant0-9/companion/internal/render"
	"github.com/sant0-9/companion/internal/session"
	"github.com/sant0-9/companion/internal/slot"
)

// Stage represents a pipeline stage
type Stage int

const (
	StageClassify Stage = iota
	StageExtract
	StageRender
	StagePersist
	StageDone
)

const totalStages = 4

func (s Stage) String() string {
	switch s {
	case StageClassify:
		return "Classifying"
	case StageExtract:
		return "Extracting"
	case StageRender:
		return "Rendering"
	case StagePersist:
		return "Saving"
	case StageDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// Progress represents pipeline progress
type Progress struct {
	Stage       Stage
	StageIndex  int
	TotalStages int
	Message     string
}

// Config is everything a mode supplies to turn text into a reply.
type Config struct {
	Name       string
	Rules      []intent.Rule
	Extractors map[string][]slot.Extractor
	// Common extractors run for every category after the category's own.
	Common []slot.Extractor
	Engine *render.Engine

	// EmptyReply answers blank input. Its placeholders are filled by
	// EmptyFunc when set.
	EmptyReply string
	EmptyFunc  func(st *session.State) string

	Apply       func(ctx context.Context, category string, slots slot.Values, st *session.State)
	Suggest     func(category string, slots slot.Values, st *session.State) []string
	Postprocess func(text, category string, slots slot.Values, st *session.State) string
}

// Result contains pipeline output
type Result struct {
	Category    string
	Slots       slot.Values
	Text        string
	Suggestions []string
	Empty       bool
}

// Pipeline runs turns for one mode. Calls are serialised.
type Pipeline struct {
	mu         sync.Mutex
	cfg        Config
	classifier *intent.Classifier
	store      *session.Store
	state      *session.State
	onProgress func(Progress)
}

func New(cfg Config, store *session.Store) *Pipeline {
	if cfg.Engine == nil {
		cfg.Engine = render.NewEngine(nil)
	}
	return &Pipeline{
		cfg:        cfg,
		classifier: intent.New(cfg.Rules...),
		store:      store,
		state:      session.NewState(),
	}
}

// SetProgressCallback sets the progress callback
func (p *Pipeline) SetProgressCallback(fn func(Progress)) {
	p.mu.Lock()
	p.onProgress = fn
	p.mu.Unlock()
}

func (p *Pipeline) progress(pr Progress) {
	if p.onProgress != nil {
		pr.TotalStages = totalStages
		p.onProgress(pr)
	}
}

func (p *Pipeline) Name() string { return p.cfg.Name }

// Load replaces the in-memory state with what the store holds.
func (p *Pipeline) Load(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = p.store.Load(ctx)
}

// State returns the live state. Callers must not mutate it; use Update.
func (p *Pipeline) State() *session.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// History returns a copy of the conversation so far.
func (p *Pipeline) History() []session.Turn {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]session.Turn(nil), p.state.History...)
}

func (p *Pipeline) Clear(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.store.Clear(ctx, p.state)
}

func (p *Pipeline) SavePreferences(ctx context.Context, partial map[string]any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.store.SavePreferences(ctx, p.state, partial)
}

// Update runs fn against the state under the pipeline lock and saves the
// result. fn's error aborts the save.
func (p *Pipeline) Update(ctx context.Context, fn func(st *session.State) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := fn(p.state); err != nil {
		return err
	}
	p.store.Save(ctx, p.state)
	return nil
}

// View runs fn against the state under the pipeline lock without saving.
func (p *Pipeline) View(fn func(st *session.State)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(p.state)
}

// Process runs the pipeline
func (p *Pipeline) Process(ctx context.Context, text string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if strings.TrimSpace(text) == "" {
		reply := p.cfg.EmptyReply
		if p.cfg.EmptyFunc != nil {
			reply = p.cfg.EmptyFunc(p.state)
		}
		return &Result{Empty: true, Text: reply, Slots: slot.Values{}}, nil
	}

	p.state.Append(session.NewTurn(session.RoleUser, text), p.store.MaxHistory())

	// Stage 1: Classification
	p.progress(Progress{
		Stage:      StageClassify,
		StageIndex: 0,
		Message:    "Reading your message...",
	})
	category := p.classifier.Classify(text)

	// Stage 2: Slot extraction
	p.progress(Progress{
		Stage:      StageExtract,
		StageIndex: 1,
		Message:    fmt.Sprintf("Looking for details (%s)...", category),
	})
	extractors := append(append([]slot.Extractor(nil), p.cfg.Extractors[category]...), p.cfg.Common...)
	slots := slot.Run(text, extractors)

	if p.cfg.Apply != nil {
		p.cfg.Apply(ctx, category, slots, p.state)
	}

	// Stage 3: Render
	p.progress(Progress{
		Stage:      StageRender,
		StageIndex: 2,
		Message:    "Writing a reply...",
	})
	reply := p.cfg.Engine.Render(category, slots, p.state)
	if p.cfg.Postprocess != nil {
		reply = p.cfg.Postprocess(reply, category, slots, p.state)
	}

	var suggestions []string
	if p.cfg.Suggest != nil {
		suggestions = p.cfg.Suggest(category, slots, p.state)
	}

	// Stage 4: Persist
	p.progress(Progress{
		Stage:      StagePersist,
		StageIndex: 3,
		Message:    "Saving conversation...",
	})
	turn := session.NewTurn(session.RoleAssistant, reply)
	turn.Category = category
	if len(slots) > 0 {
		turn.Meta = slots.Clone()
	}
	p.state.Append(turn, p.store.MaxHistory())
	p.state.Incr("responses")
	p.store.Save(ctx, p.state)

	p.progress(Progress{
		Stage:      StageDone,
		StageIndex: totalStages,
		Message:    "Done",
	})

	return &Result{
		Category:    category,
		Slots:       slots,
		Text:        reply,
		Suggestions: suggestions,
	}, nil
}

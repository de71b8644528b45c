package mode

import (
	"context"
	"time"

	"github.com/sant0-9/companion/internal/kv"
	"github.com/sant0-9/companion/internal/logger"
	"github.com/sant0-9/companion/internal/pipeline"
	"github.com/sant0-9/companion/internal/session"
)

// Namespace is the storage namespace for a mode id.
func Namespace(id string) string {
	return "mode-" + id
}

// Base carries the parts every pipeline-driven mode shares. Modes embed it
// and supply their own ProcessInput.
type Base struct {
	info     Info
	pipeline *pipeline.Pipeline
}

func NewBase(info Info, store kv.Store, historyLimit int, cfg pipeline.Config) *Base {
	if cfg.Name == "" {
		cfg.Name = info.Name
	}
	p := pipeline.New(cfg, session.NewStore(store, Namespace(info.ID), historyLimit))
	log := logger.With(info.ID)
	p.SetProgressCallback(func(pr pipeline.Progress) {
		log.Debug(pr.Message, "pipeline", p.Name(), "stage", pr.Stage, "step", pr.StageIndex+1, "of", pr.TotalStages)
	})
	return &Base{
		info:     info,
		pipeline: p,
	}
}

func (b *Base) Info() Info { return b.info }

// Initialize loads saved state. Embedding modes apply their options after.
func (b *Base) Initialize(ctx context.Context, _ Options) error {
	b.pipeline.Load(ctx)
	return nil
}

func (b *Base) Cleanup(context.Context) error { return nil }

func (b *Base) Pipeline() *pipeline.Pipeline { return b.pipeline }

func (b *Base) History() []session.Turn {
	return b.pipeline.History()
}

func (b *Base) ClearHistory(ctx context.Context) error {
	b.pipeline.Clear(ctx)
	return nil
}

// Respond runs text through the pipeline and wraps the result.
func (b *Base) Respond(ctx context.Context, text string) (*Response, *pipeline.Result, error) {
	res, err := b.pipeline.Process(ctx, text)
	if err != nil {
		return nil, nil, err
	}
	resp := &Response{
		Text:        res.Text,
		Category:    res.Category,
		Suggestions: res.Suggestions,
		Source:      b.info.Name,
		Timestamp:   time.Now(),
	}
	if len(res.Slots) > 0 {
		resp.Meta = res.Slots.Clone()
	}
	return resp, res, nil
}

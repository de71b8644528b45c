// Package research is the academic research assistant mode. It covers
// research questions, literature searches and reviews, methodology,
// paper structure and citation styles, and offers canned tool prompts.
package research

import (
	"context"

	"github.com/sant0-9/companion/internal/kv"
	"github.com/sant0-9/companion/internal/mode"
	"github.com/sant0-9/companion/internal/pipeline"
	"github.com/sant0-9/companion/internal/prompts"
)

const ID = "academic-research-assistant"

var tools = []mode.Tool{
	{ID: "research-question", Name: "Research Question Generator", Description: "Turn a broad topic into focused, researchable questions"},
	{ID: "thesis-statement", Name: "Thesis Statement Helper", Description: "Draft and sharpen a thesis statement"},
	{ID: "literature-search", Name: "Literature Search Planner", Description: "Plan keywords, databases and a search strategy"},
	{ID: "paraphraser", Name: "Academic Paraphraser", Description: "Restate a passage in your own words with proper attribution"},
}

type Research struct {
	*mode.Base
	catalog *Catalog
}

func New(store kv.Store, historyLimit int) *Research {
	r := &Research{catalog: defaultCatalog()}
	r.Base = mode.NewBase(mode.Info{
		ID:          ID,
		Name:        "Academic Research Assistant",
		Description: "Help with research questions, literature reviews, methodology, structure and citations",
		Category:    "education",
		Version:     "1.0.0",
	}, store, historyLimit, pipeline.Config{
		Rules:      rules(),
		Common:     extractors(),
		Engine:     r.engine(),
		EmptyReply: "What are you working on? Tell me your topic or ask about a research question, methodology, structure or citations.",
		Suggest:    r.suggest,
	})
	return r
}

func (r *Research) ProcessInput(ctx context.Context, text string, _ mode.Context) (*mode.Response, error) {
	resp, _, err := r.Respond(ctx, text)
	return resp, err
}

func (r *Research) Greeting() string {
	return "Hello! I'm your academic research assistant. I can help you shape a research question, " +
		"plan a literature search, choose a methodology, structure your paper and get citations right. " +
		"What are you working on?"
}

func (r *Research) Tools() []mode.Tool {
	out := make([]mode.Tool, len(tools))
	copy(out, tools)
	return out
}

// ToolPrompt returns the canned prompt behind a tool.
func (r *Research) ToolPrompt(id, topic string) (string, bool) {
	for _, t := range tools {
		if t.ID != id {
			continue
		}
		p, err := prompts.BuildToolPrompt(id, topic)
		return p, err == nil
	}
	return "", false
}

// Starters are sample opening questions.
func (r *Research) Starters() []string {
	out := make([]string, len(r.catalog.Starters))
	copy(out, r.catalog.Starters)
	return out
}

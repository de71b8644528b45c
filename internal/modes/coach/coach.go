// Package coach is the life coaching mode. It walks a client through goal
// setting, habits, obstacles and accountability, and tracks goals and
// action items across sessions.
package coach

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sant0-9/companion/internal/kv"
	"github.com/sant0-9/companion/internal/logger"
	"github.com/sant0-9/companion/internal/mode"
	"github.com/sant0-9/companion/internal/pipeline"
	"github.com/sant0-9/companion/internal/session"
	"github.com/sant0-9/companion/internal/slot"
)

const ID = "life-coach"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")
	ErrEmptyTitle      = errors.New("title is required")
	ErrUnknownStyle    = errors.New("unknown coaching style")
)

const (
	prefStyle   = "coachingStyle"
	prefAreas   = "focusAreas"
	prefGoals   = "userGoals"
	prefActions = "actionItems"
	prefStage   = "stage"
)

// Styles lists the accepted coaching styles.
var Styles = []string{"directive", "supportive", "challenging", "balanced"}

const (
	GoalActive    = "active"
	GoalCompleted = "completed"
)

type Goal struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Area        string     `json:"area,omitempty"`
	Type        string     `json:"type"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Created     time.Time  `json:"created"`
	Progress    int        `json:"progress"`
	Milestones  []string   `json:"milestones"`
	Status      string     `json:"status"`
}

type GoalInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Area        string     `json:"area"`
	Type        string     `json:"type"`
	Deadline    *time.Time `json:"deadline"`
	Progress    int        `json:"progress"`
	Milestones  []string   `json:"milestones"`
}

type ActionItem struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	GoalID      string     `json:"goalId,omitempty"`
	Area        string     `json:"area,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Created     time.Time  `json:"created"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedDate,omitempty"`
}

type ActionInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	GoalID      string     `json:"goalId"`
	Area        string     `json:"area"`
	Deadline    *time.Time `json:"deadline"`
}

type Coach struct {
	*mode.Base
	catalog *Catalog
	style   string
}

func New(store kv.Store, historyLimit int) *Coach {
	c := &Coach{catalog: defaultCatalog(), style: "balanced"}
	c.Base = mode.NewBase(mode.Info{
		ID:          ID,
		Name:        "Life Coach",
		Description: "Your partner for personal growth, goal achievement, and positive change",
		Category:    "personal",
		Version:     "1.0.0",
	}, store, historyLimit, pipeline.Config{
		Rules:       c.rules(),
		Common:      c.extractors(),
		Engine:      c.engine(),
		EmptyReply:  "I'm here to support your personal growth. What would you like to work on today?",
		Apply:       c.apply,
		Suggest:     c.suggest,
		Postprocess: c.postprocess,
	})
	return c
}

// Initialize loads saved state. The coachingStyle option sets the default
// style and focusAreas seeds a comma separated list of areas.
func (c *Coach) Initialize(ctx context.Context, opts mode.Options) error {
	if err := c.Base.Initialize(ctx, opts); err != nil {
		return err
	}
	if s := strings.ToLower(opts[prefStyle]); s != "" {
		if slices.Contains(Styles, s) {
			c.style = s
		} else {
			logger.With("coach").Warn("ignoring unknown coaching style", "style", s)
		}
	}
	if raw := opts[prefAreas]; raw != "" {
		return c.Pipeline().Update(ctx, func(st *session.State) error {
			if _, set := st.Preferences[prefAreas]; set {
				return nil
			}
			var areas []string
			for _, a := range strings.Split(raw, ",") {
				if _, ok := c.catalog.Area(strings.TrimSpace(a)); ok {
					areas = append(areas, strings.TrimSpace(a))
				}
			}
			st.Merge(map[string]any{prefAreas: areas})
			return nil
		})
	}
	return nil
}

func (c *Coach) ProcessInput(ctx context.Context, text string, _ mode.Context) (*mode.Response, error) {
	resp, res, err := c.Respond(ctx, text)
	if err != nil {
		return nil, err
	}
	if !res.Empty {
		if resp.Meta == nil {
			resp.Meta = map[string]string{}
		}
		resp.Meta["stage"] = c.Stage().String()
	}
	return resp, nil
}

// Greeting rotates through the greeting phrases with the response count.
func (c *Coach) Greeting() string {
	if len(c.catalog.Greetings) == 0 {
		return ""
	}
	var n int
	c.Pipeline().View(func(st *session.State) {
		n = st.Counters["responses"]
	})
	return c.catalog.Greetings[n%len(c.catalog.Greetings)]
}

func (c *Coach) apply(_ context.Context, category string, s slot.Values, st *session.State) {
	goalDone := slices.ContainsFunc(c.goals(st), func(g Goal) bool { return g.Progress >= 100 })
	next := Next(c.stage(st), category, goalDone)
	partial := map[string]any{prefStage: next.String()}

	if area, ok := s.Get("area"); ok {
		areas := c.focusAreas(st)
		if !slices.Contains(areas, area) {
			partial[prefAreas] = append(areas, area)
		}
	}
	st.Merge(partial)
}

func (c *Coach) stage(st *session.State) Stage {
	s, _ := ParseStage(st.String(prefStage, StageExploration.String()))
	return s
}

func (c *Coach) focusAreas(st *session.State) []string {
	var areas []string
	if _, err := st.Preference(prefAreas, &areas); err != nil {
		logger.With("coach").Warn("unreadable focus areas", "err", err)
	}
	return areas
}

func (c *Coach) goals(st *session.State) []Goal {
	var goals []Goal
	if _, err := st.Preference(prefGoals, &goals); err != nil {
		logger.With("coach").Warn("unreadable goals", "err", err)
	}
	return goals
}

func (c *Coach) actionItems(st *session.State) []ActionItem {
	var items []ActionItem
	if _, err := st.Preference(prefActions, &items); err != nil {
		logger.With("coach").Warn("unreadable action items", "err", err)
	}
	return items
}

func (c *Coach) Stage() Stage {
	var s Stage
	c.Pipeline().View(func(st *session.State) { s = c.stage(st) })
	return s
}

func (c *Coach) Goals() []Goal {
	var goals []Goal
	c.Pipeline().View(func(st *session.State) { goals = c.goals(st) })
	return goals
}

func (c *Coach) ActionItems() []ActionItem {
	var items []ActionItem
	c.Pipeline().View(func(st *session.State) { items = c.actionItems(st) })
	return items
}

func (c *Coach) FocusAreas() []string {
	var areas []string
	c.Pipeline().View(func(st *session.State) { areas = c.focusAreas(st) })
	return areas
}

func (c *Coach) Style() string {
	var s string
	c.Pipeline().View(func(st *session.State) { s = st.String(prefStyle, c.style) })
	return s
}

func (c *Coach) SetCoachingStyle(ctx context.Context, style string) error {
	style = strings.ToLower(strings.TrimSpace(style))
	if !slices.Contains(Styles, style) {
		return fmt.Errorf("%w: %q", ErrUnknownStyle, style)
	}
	c.Pipeline().SavePreferences(ctx, map[string]any{prefStyle: style})
	return nil
}

// AddGoal records a new active goal. Adding a goal while exploring or
// setting goals moves the client on to action planning.
func (c *Coach) AddGoal(ctx context.Context, in GoalInput) (Goal, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Goal{}, ErrEmptyTitle
	}
	if in.Progress < 0 || in.Progress > 100 {
		return Goal{}, ErrInvalidProgress
	}
	g := Goal{
		ID:          uuid.NewString(),
		Title:       title,
		Description: in.Description,
		Area:        in.Area,
		Type:        in.Type,
		Deadline:    in.Deadline,
		Created:     time.Now(),
		Progress:    in.Progress,
		Milestones:  in.Milestones,
		Status:      GoalActive,
	}
	if g.Type == "" {
		g.Type = "outcome"
	}
	if g.Milestones == nil {
		g.Milestones = []string{}
	}

	err := c.Pipeline().Update(ctx, func(st *session.State) error {
		partial := map[string]any{prefGoals: append(c.goals(st), g)}
		if s := c.stage(st); s == StageExploration || s == StageGoalSetting {
			partial[prefStage] = StageActionPlanning.String()
		}
		st.Merge(partial)
		return nil
	})
	return g, err
}

// AddActionItem records a new open action. The first action while planning
// moves the client on to execution.
func (c *Coach) AddActionItem(ctx context.Context, in ActionInput) (ActionItem, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return ActionItem{}, ErrEmptyTitle
	}
	item := ActionItem{
		ID:          uuid.NewString(),
		Title:       title,
		Description: in.Description,
		GoalID:      in.GoalID,
		Area:        in.Area,
		Deadline:    in.Deadline,
		Created:     time.Now(),
	}

	err := c.Pipeline().Update(ctx, func(st *session.State) error {
		partial := map[string]any{prefActions: append(c.actionItems(st), item)}
		if c.stage(st) == StageActionPlanning {
			partial[prefStage] = StageExecution.String()
		}
		st.Merge(partial)
		return nil
	})
	return item, err
}

// UpdateGoalProgress sets a goal's progress. At 100 the goal is completed
// and a client in execution moves to reflection.
func (c *Coach) UpdateGoalProgress(ctx context.Context, id string, pct int) error {
	if pct < 0 || pct > 100 {
		return fmt.Errorf("%w: %d", ErrInvalidProgress, pct)
	}
	return c.Pipeline().Update(ctx, func(st *session.State) error {
		goals := c.goals(st)
		i := slices.IndexFunc(goals, func(g Goal) bool { return g.ID == id })
		if i < 0 {
			return fmt.Errorf("goal %s: %w", id, ErrNotFound)
		}
		goals[i].Progress = pct
		partial := map[string]any{prefGoals: goals}
		if pct == 100 {
			goals[i].Status = GoalCompleted
			if c.stage(st) == StageExecution {
				partial[prefStage] = StageReflection.String()
			}
		}
		st.Merge(partial)
		return nil
	})
}

func (c *Coach) CompleteActionItem(ctx context.Context, id string) error {
	return c.Pipeline().Update(ctx, func(st *session.State) error {
		items := c.actionItems(st)
		i := slices.IndexFunc(items, func(it ActionItem) bool { return it.ID == id })
		if i < 0 {
			return fmt.Errorf("action item %s: %w", id, ErrNotFound)
		}
		now := time.Now()
		items[i].Completed = true
		items[i].CompletedAt = &now
		st.Merge(map[string]any{prefActions: items})
		return nil
	})
}

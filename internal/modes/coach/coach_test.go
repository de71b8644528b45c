package coach

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/companion/internal/intent"
	"github.com/sant0-9/companion/internal/kv"
	"github.com/sant0-9/companion/internal/mode"
	"github.com/sant0-9/companion/internal/slot"
)

func newCoach(t *testing.T, store kv.Store, opts mode.Options) *Coach {
	t.Helper()
	c := New(store, 50)
	require.NoError(t, c.Initialize(context.Background(), opts))
	return c
}

func TestCatalog(t *testing.T) {
	c := defaultCatalog()
	assert.Len(t, c.Areas, 7)
	assert.Equal(t, []string{"career", "health", "relationships", "personal_growth", "productivity", "finances", "creativity"}, c.AreaIDs())
	assert.Len(t, c.Frameworks["smart"].Elements, 5)
	assert.Len(t, c.Frameworks["grow"].Elements, 4)
	for _, s := range []Stage{StageExploration, StageGoalSetting, StageActionPlanning, StageExecution, StageReflection} {
		assert.Contains(t, c.Techniques, s.technique(), s.String())
	}

	_, err := LoadCatalog([]byte("areas: []"))
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	c := New(kv.NewMemory(), 50)
	cl := intent.New(c.rules()...)
	tests := []struct {
		input string
		want  string
	}{
		{"Help me set a SMART goal", GoalSetting},
		{"I want to build a daily exercise habit", HabitFormation},
		{"How do I overcome this obstacle?", ObstacleNavigation},
		{"I need some motivation", Motivation},
		{"How can I manage my time better?", TimeManagement},
		{"I'm dealing with burnout", WorkLifeBalance},
		{"Help me find my purpose", ValuesClarification},
		{"How do I stay on track?", Accountability},
		{"Let's talk about my career", Development("career")},
		{"Tell me about personal growth", Development("personal_growth")},
		{"Hello there", intent.General},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, cl.Classify(tt.input))
		})
	}
}

func TestExtractors(t *testing.T) {
	c := New(kv.NewMemory(), 50)
	ex := c.extractors()
	tests := []struct {
		input     string
		area      string
		framework string
	}{
		{"I want to work on my sleep schedule", "health", ""},
		{"I'm struggling with my budget", "finances", ""},
		{"Let's talk about my career", "career", ""},
		{"Help me set a GROW goal", "", "grow"},
		{"SMART goals for my relationships", "relationships", "smart"},
		{"I want to grow as a person", "", "grow"},
		{"hello", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := slot.Run(tt.input, ex)
			assert.Equal(t, tt.area, s.Or("area", ""))
			assert.Equal(t, tt.framework, s.Or("framework", ""))
		})
	}
}

func TestParseStage(t *testing.T) {
	for _, name := range []string{"exploration", "goal-setting", "action-planning", "execution", "reflection"} {
		s, ok := ParseStage(name)
		require.True(t, ok, name)
		assert.Equal(t, name, s.String())
	}
	s, ok := ParseStage("nowhere")
	assert.False(t, ok)
	assert.Equal(t, StageExploration, s)
	assert.Equal(t, "unknown", Stage(42).String())
}

func TestNext(t *testing.T) {
	tests := []struct {
		name     string
		current  Stage
		category string
		goalDone bool
		want     Stage
	}{
		{"goal request always moves to goal-setting", StageExecution, GoalSetting, false, StageGoalSetting},
		{"habit from exploration", StageExploration, HabitFormation, false, StageActionPlanning},
		{"time from goal-setting", StageGoalSetting, TimeManagement, false, StageActionPlanning},
		{"development from exploration", StageExploration, Development("health"), false, StageActionPlanning},
		{"balance during execution stays", StageExecution, WorkLifeBalance, true, StageExecution},
		{"obstacle from action-planning", StageActionPlanning, ObstacleNavigation, false, StageExecution},
		{"accountability from exploration stays", StageExploration, Accountability, false, StageExploration},
		{"general in execution with a finished goal", StageExecution, intent.General, true, StageReflection},
		{"general in execution without a finished goal", StageExecution, intent.General, false, StageExecution},
		{"motivation in execution with a finished goal", StageExecution, Motivation, true, StageReflection},
		{"general while exploring", StageExploration, intent.General, true, StageExploration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Next(tt.current, tt.category, tt.goalDone))
		})
	}
}

func TestStageAdvancesWithTurns(t *testing.T) {
	ctx := context.Background()
	c := newCoach(t, kv.NewMemory(), nil)
	assert.Equal(t, StageExploration, c.Stage())

	steps := []struct {
		input string
		want  Stage
	}{
		{"Help me set a SMART goal", StageGoalSetting},
		{"I want to build a daily exercise habit", StageActionPlanning},
		{"How do I overcome this obstacle?", StageExecution},
	}
	for _, step := range steps {
		resp, err := c.ProcessInput(ctx, step.input, nil)
		require.NoError(t, err)
		assert.Equal(t, step.want, c.Stage(), step.input)
		assert.Equal(t, step.want.String(), resp.Meta["stage"])
	}

	g, err := c.AddGoal(ctx, GoalInput{Title: "Run a 10k"})
	require.NoError(t, err)
	assert.Equal(t, StageExecution, c.Stage())
	require.NoError(t, c.UpdateGoalProgress(ctx, g.ID, 100))
	assert.Equal(t, StageReflection, c.Stage())
}

func TestRepliesCarryDisclaimer(t *testing.T) {
	ctx := context.Background()
	c := newCoach(t, kv.NewMemory(), nil)
	disclaimer := c.catalog.Disclaimer

	inputs := []string{
		"Help me set a SMART goal",
		"Help me set a GROW goal",
		"I want to build a daily exercise habit",
		"How do I overcome my perfectionism problem?",
		"I need some motivation",
		"How can I manage my time better?",
		"I'm dealing with burnout",
		"Help me find my purpose",
		"How do I stay on track?",
		"Let's talk about my finances",
		"Hello there",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			resp, err := c.ProcessInput(ctx, in, nil)
			require.NoError(t, err)
			assert.True(t, strings.HasSuffix(resp.Text, "*"+disclaimer+"*"))
			assert.True(t, strings.HasPrefix(resp.Text, "# "))
			assert.Len(t, resp.Suggestions, 3)
		})
	}

	resp, err := c.ProcessInput(ctx, "   ", nil)
	require.NoError(t, err)
	assert.NotContains(t, resp.Text, disclaimer)
}

func TestTemplates(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		input string
		want  []string
	}{
		{"Help me set a SMART goal", []string{"SMART Framework", "Time-bound"}},
		{"Help me set a GROW goal for my career", []string{"GROW Framework for Career Development", "Way Forward", "Common Goals in Career Development"}},
		{"How do I overcome my perfectionism problem?", []string{"Overcoming Perfectionism", "Mindset Shift"}},
		{"I want to start habit stacking", []string{"Habit Formation: Habit Stacking"}},
		{"Let's talk about my finances", []string{"Financial Wellbeing Development", "Creating a budget system"}},
		{"Hello there", []string{"Coaching Approach: Powerful Questions"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c := newCoach(t, kv.NewMemory(), nil)
			resp, err := c.ProcessInput(ctx, tt.input, nil)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, resp.Text, w)
			}
		})
	}
}

func TestGeneralTechniqueFollowsStage(t *testing.T) {
	ctx := context.Background()
	c := newCoach(t, kv.NewMemory(), nil)
	_, err := c.AddGoal(ctx, GoalInput{Title: "Write a novel"})
	require.NoError(t, err)
	require.Equal(t, StageActionPlanning, c.Stage())

	resp, err := c.ProcessInput(ctx, "Hello there", nil)
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "Strengths-Based Approach")
}

func TestGoalsAndActions(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	c := newCoach(t, store, nil)

	_, err := c.AddGoal(ctx, GoalInput{Title: "  "})
	assert.ErrorIs(t, err, ErrEmptyTitle)
	_, err = c.AddActionItem(ctx, ActionInput{})
	assert.ErrorIs(t, err, ErrEmptyTitle)

	g, err := c.AddGoal(ctx, GoalInput{Title: "Sleep eight hours", Area: "health"})
	require.NoError(t, err)
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, GoalActive, g.Status)
	assert.Equal(t, "outcome", g.Type)
	assert.Equal(t, StageActionPlanning, c.Stage())

	item, err := c.AddActionItem(ctx, ActionInput{Title: "No screens after 10pm", GoalID: g.ID})
	require.NoError(t, err)
	assert.False(t, item.Completed)
	assert.Equal(t, StageExecution, c.Stage())

	assert.ErrorIs(t, c.UpdateGoalProgress(ctx, g.ID, 101), ErrInvalidProgress)
	assert.ErrorIs(t, c.UpdateGoalProgress(ctx, g.ID, -1), ErrInvalidProgress)
	assert.ErrorIs(t, c.UpdateGoalProgress(ctx, "missing", 10), ErrNotFound)
	assert.ErrorIs(t, c.CompleteActionItem(ctx, "missing"), ErrNotFound)

	require.NoError(t, c.UpdateGoalProgress(ctx, g.ID, 40))
	assert.Equal(t, StageExecution, c.Stage())
	assert.Equal(t, 40, c.Goals()[0].Progress)

	require.NoError(t, c.CompleteActionItem(ctx, item.ID))
	items := c.ActionItems()
	require.Len(t, items, 1)
	assert.True(t, items[0].Completed)
	assert.NotNil(t, items[0].CompletedAt)

	require.NoError(t, c.UpdateGoalProgress(ctx, g.ID, 100))
	assert.Equal(t, GoalCompleted, c.Goals()[0].Status)
	assert.Equal(t, StageReflection, c.Stage())

	reloaded := newCoach(t, store, nil)
	require.Len(t, reloaded.Goals(), 1)
	assert.Equal(t, "Sleep eight hours", reloaded.Goals()[0].Title)
	assert.Equal(t, StageReflection, reloaded.Stage())
	assert.Len(t, reloaded.ActionItems(), 1)
}

func TestAccountabilityListsOpenActions(t *testing.T) {
	ctx := context.Background()
	c := newCoach(t, kv.NewMemory(), nil)
	_, err := c.AddActionItem(ctx, ActionInput{Title: "Call a mentor"})
	require.NoError(t, err)

	resp, err := c.ProcessInput(ctx, "How do I stay on track?", nil)
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "Your Open Action Items")
	assert.Contains(t, resp.Text, "Call a mentor")
}

func TestFocusAreas(t *testing.T) {
	ctx := context.Background()
	c := newCoach(t, kv.NewMemory(), mode.Options{"focusAreas": "career, nowhere"})
	assert.Equal(t, []string{"career"}, c.FocusAreas())

	_, err := c.ProcessInput(ctx, "I want to work on my sleep schedule", nil)
	require.NoError(t, err)
	_, err = c.ProcessInput(ctx, "More about my sleep schedule please, I want to work on my sleep schedule", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"career", "health"}, c.FocusAreas())
}

func TestCoachingStyle(t *testing.T) {
	ctx := context.Background()
	c := newCoach(t, kv.NewMemory(), mode.Options{"coachingStyle": "Supportive"})
	assert.Equal(t, "supportive", c.Style())

	assert.ErrorIs(t, c.SetCoachingStyle(ctx, "harsh"), ErrUnknownStyle)
	require.NoError(t, c.SetCoachingStyle(ctx, "Challenging"))
	assert.Equal(t, "challenging", c.Style())
}

func TestSuggestionsAreDeterministic(t *testing.T) {
	ctx := context.Background()
	a := newCoach(t, kv.NewMemory(), nil)
	b := newCoach(t, kv.NewMemory(), nil)
	for _, in := range []string{"Let's talk about my career", "Hello there"} {
		ra, err := a.ProcessInput(ctx, in, nil)
		require.NoError(t, err)
		rb, err := b.ProcessInput(ctx, in, nil)
		require.NoError(t, err)
		assert.Equal(t, ra.Suggestions, rb.Suggestions)
	}

	c := newCoach(t, kv.NewMemory(), nil)
	resp, err := c.ProcessInput(ctx, "Let's talk about my career", nil)
	require.NoError(t, err)
	assert.Equal(t, "How can I improve my career development?", resp.Suggestions[0])
	assert.True(t, strings.HasPrefix(resp.Suggestions[1], "Help me with "))
}

func TestGreetingRotates(t *testing.T) {
	ctx := context.Background()
	c := newCoach(t, kv.NewMemory(), nil)
	first := c.Greeting()
	assert.Equal(t, c.catalog.Greetings[0], first)
	_, err := c.ProcessInput(ctx, "Hello there", nil)
	require.NoError(t, err)
	assert.Equal(t, c.catalog.Greetings[1], c.Greeting())
}

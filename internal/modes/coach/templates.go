package coach

import (
	"fmt"
	"strings"

	"github.com/sant0-9/companion/internal/render"
	"github.com/sant0-9/companion/internal/session"
	"github.com/sant0-9/companion/internal/slot"
)

func (c *Coach) engine() *render.Engine {
	e := render.NewEngine(c.general).
		Register(GoalSetting, c.goalSetting).
		Register(HabitFormation, c.habitFormation).
		Register(ObstacleNavigation, c.obstacle).
		Register(Motivation, c.motivation).
		Register(TimeManagement, c.timeManagement).
		Register(WorkLifeBalance, c.balance).
		Register(ValuesClarification, c.values).
		Register(Accountability, c.accountability)
	for _, a := range c.catalog.Areas {
		e.Register(Development(a.ID), c.development)
	}
	return e
}

// area returns the life area from the slots, if it is one we know.
func (c *Coach) area(s slot.Values) (Area, bool) {
	id, ok := s.Get("area")
	if !ok {
		return Area{}, false
	}
	return c.catalog.Area(id)
}

func forArea(a Area, ok bool, prep string) string {
	if !ok {
		return ""
	}
	return " " + prep + " " + a.Name
}

func (c *Coach) goalSetting(s slot.Values, _ *session.State) string {
	key := s.Or("framework", "smart")
	fw := c.catalog.Frameworks[key]
	a, hasArea := c.area(s)
	var b strings.Builder

	b.WriteString(render.Heading(1, fmt.Sprintf("Goal Setting: %s Framework%s", strings.ToUpper(key), forArea(a, hasArea, "for"))))
	fmt.Fprintf(&b, "Let's shape your goal with the %s. %s.\n\n", fw.Name, fw.Description)

	b.WriteString(render.Heading(2, "Key Elements"))
	for _, el := range fw.Elements {
		b.WriteString(render.Heading(3, el.Name))
		b.WriteString(el.Description + ".\n\n")
		b.WriteString(render.Bullets(el.Questions...))
		b.WriteString("\n")
	}

	b.WriteString(render.Heading(2, "Getting Started"))
	first := "What area of your life are you most motivated to improve right now?"
	if hasArea {
		first = fmt.Sprintf("What specific aspect of %s do you want to improve?", a.Name)
	}
	b.WriteString(render.Numbered(
		"**Clarify what you want**: "+first,
		"**Consider your why**: What would achieving this make possible for you?",
		`**Be specific**: instead of "get in shape", try "exercise 30 minutes, 3 times per week".`,
		"**Set milestones**: What smaller wins mark the way?",
		"**Anticipate obstacles**: What might get in your way, and how will you respond?",
	))
	b.WriteString("\n")

	if hasArea {
		b.WriteString(render.Heading(2, "Common Goals in "+a.Name))
		b.WriteString(render.Bullets(a.Goals...))
		b.WriteString("\n")
	}
	b.WriteString("Share your first goal idea and we'll refine it together.")
	return b.String()
}

func (c *Coach) habitFormation(s slot.Values, st *session.State) string {
	strategy := pick(c.catalog.Habits, lastUserText(st))
	a, hasArea := c.area(s)
	var b strings.Builder

	b.WriteString(render.Heading(1, fmt.Sprintf("Habit Formation: %s%s", strategy.Name, forArea(a, hasArea, "for"))))
	b.WriteString("Habits run on a loop of cue, craving, response and reward. Good strategies make the cue obvious and the response easy.\n\n")

	b.WriteString(render.Heading(2, "The "+strategy.Name))
	b.WriteString(strategy.Description + ".\n\n")
	b.WriteString(render.Bullets(strategy.Principles...))
	b.WriteString("\n")

	b.WriteString(render.Heading(2, "Practical Application"))
	b.WriteString(render.Numbered(
		"**Choose your habit**: one behavior that supports your goals",
		"**Make it specific**: what, when, where and for how long",
		"**Start tiny**: a version so small it feels almost too easy",
		"**Anchor it**: attach it to something you already do every day",
		"**Celebrate**: mark the win right after you do it",
	))
	b.WriteString("\n")

	if hasArea {
		b.WriteString(render.Heading(2, "Habit Ideas for "+a.Name))
		b.WriteString(render.Bullets(a.Habits...))
		b.WriteString("\n")
	}
	b.WriteString(`If you miss a day, never miss twice. Small consistent actions add up.`)
	return b.String()
}

func (c *Coach) obstacle(s slot.Values, st *session.State) string {
	ob := pick(c.catalog.Obstacles, lastUserText(st))
	a, hasArea := c.area(s)
	var b strings.Builder

	b.WriteString(render.Heading(1, fmt.Sprintf("Overcoming %s%s", ob.Name, forArea(a, hasArea, "in"))))
	b.WriteString(ob.Description + ".\n\n")

	b.WriteString(render.Heading(2, "Effective Strategies"))
	b.WriteString(render.Numbered(ob.Strategies...))
	b.WriteString("\n")

	b.WriteString(render.Heading(2, "Questions to Ask Yourself"))
	b.WriteString(render.Bullets(
		"What specifically triggers this for you?",
		"When and where does it usually show up?",
		"When have you overcome something similar, even briefly?",
		"Who could keep you accountable?",
	))
	b.WriteString("\n")

	b.WriteString(render.Heading(2, "Mindset Shift"))
	b.WriteString(ob.Mindset + "\n\n")
	b.WriteString("Pick one strategy to try this week and tell me how it goes.")
	return b.String()
}

func (c *Coach) motivation(s slot.Values, st *session.State) string {
	ap := pick(c.catalog.Motivation, lastUserText(st))
	a, hasArea := c.area(s)
	subject := "your goal"
	if hasArea {
		subject = strings.ToLower(a.Name)
	}
	var b strings.Builder

	b.WriteString(render.Heading(1, fmt.Sprintf("Finding Motivation: %s%s", ap.Name, forArea(a, hasArea, "for"))))
	b.WriteString("Motivation rises with how much a goal matters to you and how confident you are that you can reach it. ")
	fmt.Fprintf(&b, "This approach focuses on %s.\n\n", ap.Focus)

	b.WriteString(render.Heading(2, "Strategies"))
	b.WriteString(render.Bullets(ap.Strategies...))
	b.WriteString("\n")

	b.WriteString(render.Heading(2, "Reconnect with Your Why"))
	fmt.Fprintf(&b, "Write down why %s matters to you personally, then keep it where you will see it daily.\n\n", subject)
	b.WriteString("Motivation follows action more often than it precedes it. What is one small step you can take today?")
	return b.String()
}

func (c *Coach) timeManagement(s slot.Values, _ *session.State) string {
	a, hasArea := c.area(s)
	var b strings.Builder

	b.WriteString(render.Heading(1, "Effective Time Management"+forArea(a, hasArea, "for")))
	b.WriteString(render.Heading(2, "Core Principles"))
	b.WriteString(render.Numbered(
		"**Clarity**: knowing what deserves your time",
		"**Prioritization**: separating urgent from important",
		"**Focus**: managing attention as much as time",
		"**Energy**: matching tasks to your natural rhythms",
		"**Boundaries**: protecting time from unnecessary demands",
	))
	b.WriteString("\n")

	b.WriteString(render.Heading(2, "Key Strategies"))
	b.WriteString(render.Table([]string{"Technique", "How"}, [][]string{
		{"Weekly planning", "30 minutes each week to plan the week ahead"},
		{"Daily top three", "Pick 1-3 most important tasks each morning"},
		{"Time blocking", "Reserve calendar blocks for kinds of work"},
		{"Pomodoro", "25 focused minutes, then a short break"},
		{"Batching", "Group similar tasks to avoid context switching"},
	}))
	b.WriteString("\n")

	if hasArea {
		b.WriteString(render.Heading(2, "In "+a.Name))
		b.WriteString(a.Time + "\n\n")
	}
	b.WriteString("Which part of your day slips away most often?")
	return b.String()
}

func (c *Coach) balance(_ slot.Values, _ *session.State) string {
	var b strings.Builder
	b.WriteString(render.Heading(1, "Creating Work-Life Balance"))
	b.WriteString("Balance is not equal hours. It is time spent in line with what you value.\n\n")

	b.WriteString(render.Heading(2, "What Balance Looks Like"))
	b.WriteString(render.Bullets(
		"**Alignment** with your values and priorities",
		"**Boundaries** that protect important parts of life",
		"**Presence** in whatever you are doing",
		"**Sustainability** over the long term",
	))
	b.WriteString("\n")

	b.WriteString(render.Heading(2, "Strategies"))
	b.WriteString(render.Numbered(
		"Define a clear end to your working day and a ritual that marks it",
		"Schedule rest and relationships the way you schedule meetings",
		"Notice early signs of burnout: poor sleep, irritability, dread",
		"Say no to one commitment that drains more than it gives",
	))
	b.WriteString("\nWhere does work most often spill into the rest of your life?")
	return b.String()
}

func (c *Coach) values(s slot.Values, _ *session.State) string {
	a, hasArea := c.area(s)
	tech := c.catalog.Techniques["values_clarification"]
	var b strings.Builder

	b.WriteString(render.Heading(1, "Values Clarification"+forArea(a, hasArea, "for")))
	b.WriteString("Your values are a compass for decisions, a source of motivation and a filter for commitments.\n\n")

	b.WriteString(render.Heading(2, "Reflection Questions"))
	b.WriteString(render.Bullets(tech.Examples...))
	b.WriteString("\n")

	b.WriteString(render.Heading(2, "Exercise"))
	b.WriteString(render.Numbered(
		"List twenty values that resonate with you",
		"Group similar ones together",
		"Narrow them to your top five",
		"Rate how well your current week reflects each one",
	))
	b.WriteString("\nWhich value feels least present in your life right now?")
	return b.String()
}

func (c *Coach) accountability(s slot.Values, st *session.State) string {
	a, hasArea := c.area(s)
	tech := c.catalog.Techniques["accountability"]
	var b strings.Builder

	b.WriteString(render.Heading(1, "Building Accountability"+forArea(a, hasArea, "for")))
	b.WriteString(tech.Description + ".\n\n")

	if pending := pendingActions(c.actionItems(st)); len(pending) > 0 {
		b.WriteString(render.Heading(2, "Your Open Action Items"))
		b.WriteString(render.Bullets(pending...))
		b.WriteString("\n")
	}

	b.WriteString(render.Heading(2, "Accountability Questions"))
	b.WriteString(render.Bullets(tech.Examples...))
	b.WriteString("\n")

	if hasArea {
		b.WriteString(render.Heading(2, "In "+a.Name))
		b.WriteString(a.Accountability + "\n\n")
	}
	b.WriteString("What will you commit to before we next talk?")
	return b.String()
}

func (c *Coach) development(s slot.Values, st *session.State) string {
	a, ok := c.area(s)
	if !ok {
		return c.general(s, st)
	}
	var b strings.Builder
	b.WriteString(render.Heading(1, a.Name+" Development"))
	b.WriteString(a.Description + ".\n\n")

	b.WriteString(render.Heading(2, "Common Goals"))
	b.WriteString(render.Bullets(a.Goals...))
	b.WriteString("\n")

	b.WriteString(render.Heading(2, "Habits That Help"))
	b.WriteString(render.Bullets(a.Habits...))
	b.WriteString("\n")

	b.WriteString(render.Heading(2, "Making Time"))
	b.WriteString(a.Time + "\n\n")
	fmt.Fprintf(&b, "On a scale of 1 to 10, how satisfied are you with your %s today?", a.Label())
	return b.String()
}

func (c *Coach) general(s slot.Values, st *session.State) string {
	stage := c.stage(st)
	tech := c.catalog.Techniques[stage.technique()]
	a, hasArea := c.area(s)
	var b strings.Builder

	b.WriteString(render.Heading(1, "Coaching Approach: "+tech.Name+forArea(a, hasArea, "for")))
	b.WriteString(tech.Description + ".\n\n")

	b.WriteString(render.Heading(2, "Reflective Prompts"))
	b.WriteString(render.Bullets(tech.Examples...))
	b.WriteString("\n")

	b.WriteString(render.Heading(2, "Moving Forward"))
	b.WriteString(render.Bullets(
		"What new insight is emerging?",
		"What specific next step would create movement?",
		"What support would help you follow through?",
	))
	fmt.Fprintf(&b, "\nWe're in the %s stage. Take your time with these questions.", stage)
	return b.String()
}

func (c *Coach) postprocess(text, _ string, _ slot.Values, _ *session.State) string {
	if c.catalog.Disclaimer == "" {
		return text
	}
	return text + "\n\n*" + c.catalog.Disclaimer + "*"
}

func (c *Coach) suggest(category string, s slot.Values, st *session.State) []string {
	var out []string
	switch category {
	case GoalSetting:
		out = []string{"Help me set a SMART goal", "How can I track progress on my goals?", "What's the difference between outcome and process goals?"}
	case HabitFormation:
		out = []string{"How can I build a consistent exercise habit?", "What's the best way to break a bad habit?", "Help me create a morning routine"}
	case ObstacleNavigation:
		out = []string{"I'm struggling with procrastination", "How can I overcome my fear of failure?", "Help me deal with perfectionism"}
	case Motivation:
		out = []string{"How do I stay motivated when progress is slow?", "What drives intrinsic motivation?", "I need help motivating myself to exercise"}
	case TimeManagement:
		out = []string{"How can I be more productive working from home?", "Help me prioritize my tasks better", "Techniques for managing digital distractions"}
	case WorkLifeBalance:
		out = []string{"How can I create better boundaries between work and personal life?", "I'm feeling burned out at work", "Tips for managing stress and preventing overwhelm"}
	case ValuesClarification:
		out = []string{"How do I identify my core values?", "Help me find my purpose", "How can I make decisions more aligned with my values?"}
	case Accountability:
		out = []string{"How can I hold myself accountable for my goals?", "What are effective accountability structures?", "Help me follow through on my commitments"}
	}

	n := st.Counters["responses"]
	if a, ok := c.area(s); ok {
		out = append(out, fmt.Sprintf("How can I improve my %s?", strings.ToLower(a.Name)))
		if len(a.Goals) > 0 {
			out = append(out, "Help me with "+strings.ToLower(a.Goals[n%len(a.Goals)]))
		}
	}

	general := c.catalog.GeneralSuggestions
	for i := 0; len(out) < 3 && i < len(general); i++ {
		out = append(out, general[(n+i)%len(general)])
	}
	return out[:min(3, len(out))]
}

func lastUserText(st *session.State) string {
	if t, ok := st.Last(session.RoleUser); ok {
		return t.Content
	}
	return ""
}

func pendingActions(items []ActionItem) []string {
	var out []string
	for _, it := range items {
		if !it.Completed {
			out = append(out, it.Title)
		}
	}
	return out
}

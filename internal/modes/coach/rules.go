package coach

import (
	"strings"

	"github.com/sant0-9/companion/internal/intent"
	"github.com/sant0-9/companion/internal/slot"
)

const (
	GoalSetting         = "goal_setting"
	HabitFormation      = "habit_formation"
	ObstacleNavigation  = "obstacle_navigation"
	Motivation          = "motivation"
	TimeManagement      = "time_management"
	WorkLifeBalance     = "work_life_balance"
	ValuesClarification = "values_clarification"
	Accountability      = "accountability"

	developmentSuffix = "_development"
)

// Development is the category for work on one life area.
func Development(area string) string {
	return area + developmentSuffix
}

func isDevelopment(category string) bool {
	return strings.HasSuffix(category, developmentSuffix)
}

func (c *Coach) rules() []intent.Rule {
	p := intent.Pattern
	both := func(a, b string) func(string) bool {
		return intent.All(intent.Matches(p(a)), intent.Matches(p(b)))
	}
	out := []intent.Rule{
		{Category: GoalSetting, Test: both(
			`\b(?:goal|goals|achieve|objective|target|aim|aspiration)\b`,
			`\b(?:set|create|develop|establish|define|clarify|identify)\b`,
		)},
		{Category: HabitFormation, Test: both(
			`\b(?:habit|habits|routine|discipline|consistency|daily|regular)\b`,
			`\b(?:form|build|develop|create|establish|maintain|start|begin)\b`,
		)},
		{Category: ObstacleNavigation, Test: both(
			`\b(?:obstacle|challenge|problem|barrier|roadblock|difficulty|struggle|stuck|block|issue)\b`,
			`\b(?:overcome|navigate|address|handle|deal\s+with|manage|solve|work\s+through|get\s+past)\b`,
		)},
		{Category: Motivation, Test: intent.Matches(
			p(`\b(?:motivat|inspir)\w*`),
			p(`\b(?:drive|energy|enthusiasm|passion|push|encourage)\b`),
		)},
		{Category: TimeManagement, Test: both(
			`\b(?:time|schedule|productivity|efficient|organize|procrastination|planning|priority|priorities)\b`,
			`\b(?:manage|improve|increase|boost|enhance|better|help\s+with)\b`,
		)},
		{Category: WorkLifeBalance, Test: intent.Matches(
			p(`\b(?:work-life\s+balance|life\s+balance|work\s+life|burnout|burned\s+out|stress|overwhelm|work\s+too\s+much)\b`),
		)},
		{Category: ValuesClarification, Test: both(
			`\b(?:values|purpose|meaning|passion|mission|direction|clarity)\b`,
			`\b(?:find|discover|clarify|identify|understand|explore|define)\b`,
		)},
		{Category: Accountability, Test: intent.Matches(
			p(`\baccountab\w*`),
			p(`\b(?:follow\s+through|stay\s+on\s+track|keep\s+up|consistency|stick\s+to|maintain|track)\b`),
		)},
	}
	for _, a := range c.catalog.Areas {
		out = append(out, intent.Rule{
			Category: Development(a.ID),
			Test:     intent.Contains(a.Label(), strings.ToLower(a.Name)),
		})
	}
	return out
}

var (
	smartWord = intent.Pattern(`\bsmart\b`)
	growWord  = intent.Pattern(`\bgrow\b`)
)

var focusCaptures = []slot.Capture{
	slot.C(`\b(?:improve|develop|work\s+on|enhance|focus\s+on|help\s+with)\s+(?:my\s+|the\s+)?(.+?)\s*(?:\?|$|\b(?:and|so|because|but)\b)`, 1),
	slot.C(`\b(?:struggling\s+with|having\s+trouble\s+with|having\s+difficulty\s+with)\s+(?:my\s+|the\s+)?(.+?)\s*(?:\?|$|\b(?:and|so|because|but)\b)`, 1),
	slot.C(`\b(?:goal\s+for|goals\s+for|want\s+to\s+improve)\s+(?:my\s+|the\s+)?(.+?)\s*(?:\?|$|\b(?:and|so|because|but)\b)`, 1),
}

// areaMention finds a life area named directly in text.
func (c *Coach) areaMention(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, a := range c.catalog.Areas {
		if strings.Contains(lower, a.Label()) || strings.Contains(lower, strings.ToLower(a.Name)) {
			return a.ID, true
		}
	}
	return "", false
}

// areaFor maps a captured phrase such as "sleep schedule" to a life area.
func (c *Coach) areaFor(raw string) (string, bool) {
	phrase := strings.ToLower(strings.TrimSpace(raw))
	if phrase == "" {
		return "", false
	}
	for _, a := range c.catalog.Areas {
		name := strings.ToLower(a.Name)
		if strings.Contains(phrase, a.Label()) || strings.Contains(phrase, name) ||
			strings.Contains(a.Label(), phrase) || strings.Contains(name, phrase) {
			return a.ID, true
		}
	}
	order := c.catalog.AreaIDs()
	table := make(map[string][]string, len(c.catalog.Areas))
	for _, a := range c.catalog.Areas {
		table[a.ID] = a.Keywords
	}
	return slot.LookupKeyword(phrase, order, table)
}

func (c *Coach) extractors() []slot.Extractor {
	area := slot.Any("area",
		slot.Extractor{Name: "area", Extract: c.areaMention},
		slot.FirstMatch("area", c.areaFor, focusCaptures...),
	)
	framework := slot.Extractor{Name: "framework", Extract: func(text string) (string, bool) {
		switch {
		case smartWord.MatchString(text):
			return "smart", true
		case growWord.MatchString(text):
			return "grow", true
		}
		return "", false
	}}
	return []slot.Extractor{area, framework}
}

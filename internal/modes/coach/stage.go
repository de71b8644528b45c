package coach

import "strings"

// Stage is where the client is in the coaching arc.
type Stage int

const (
	StageExploration Stage = iota
	StageGoalSetting
	StageActionPlanning
	StageExecution
	StageReflection
)

var stageNames = [...]string{"exploration", "goal-setting", "action-planning", "execution", "reflection"}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return stageNames[s]
}

// ParseStage reads a stage name. Unknown names fall back to exploration.
func ParseStage(name string) (Stage, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range stageNames {
		if n == name {
			return Stage(i), true
		}
	}
	return StageExploration, false
}

// Next returns the stage after a request of the given category.
// goalDone reports whether any goal has reached 100%.
func Next(current Stage, category string, goalDone bool) Stage {
	switch {
	case category == GoalSetting:
		return StageGoalSetting
	case category == HabitFormation, category == TimeManagement,
		category == WorkLifeBalance, isDevelopment(category):
		if current == StageExploration || current == StageGoalSetting {
			return StageActionPlanning
		}
	case category == ObstacleNavigation, category == Accountability:
		if current == StageActionPlanning || current == StageExecution {
			return StageExecution
		}
	case current == StageExecution && goalDone:
		return StageReflection
	}
	return current
}

// technique is the general coaching technique used at each stage.
func (s Stage) technique() string {
	switch s {
	case StageGoalSetting:
		return "values_clarification"
	case StageActionPlanning:
		return "strengths_focus"
	case StageExecution:
		return "accountability"
	case StageReflection:
		return "reframing"
	default:
		return "powerful_questions"
	}
}

// Package session holds per-mode conversation state and persists it to a
// kv.Store under namespaced keys.
package session

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MaxHistory is the default history cap.
const MaxHistory = 50

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry in a conversation.
type Turn struct {
	ID        string            `json:"id"`
	Role      Role              `json:"role"`
	Content   string            `json:"content"`
	Timestamp time.Time         `json:"timestamp"`
	Category  string            `json:"category,omitempty"`
	Meta      map[string]string `json:"meta,omitempty"`
}

// NewTurn stamps a turn with a fresh id and the current time.
func NewTurn(role Role, content string) Turn {
	return Turn{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

type State struct {
	History     []Turn         `json:"history"`
	Preferences map[string]any `json:"preferences"`
	Counters    map[string]int `json:"counters"`
}

func NewState() *State {
	return &State{
		History:     []Turn{},
		Preferences: map[string]any{},
		Counters:    map[string]int{},
	}
}

// Append adds turn and drops the oldest entries until at most max remain.
// max <= 0 means MaxHistory.
func (s *State) Append(turn Turn, max int) {
	if max <= 0 {
		max = MaxHistory
	}
	s.History = append(s.History, turn)
	if over := len(s.History) - max; over > 0 {
		s.History = append([]Turn(nil), s.History[over:]...)
	}
}

// Preference decodes the stored preference key into dst. It reports false
// when the key is unset.
func (s *State) Preference(key string, dst any) (bool, error) {
	v, ok := s.Preferences[key]
	if !ok {
		return false, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return true, err
	}
	return true, json.Unmarshal(data, dst)
}

// String returns a string preference, or def when unset or not a string.
func (s *State) String(key, def string) string {
	if v, ok := s.Preferences[key].(string); ok && v != "" {
		return v
	}
	return def
}

// Merge shallow-merges partial into the preferences.
func (s *State) Merge(partial map[string]any) {
	if s.Preferences == nil {
		s.Preferences = map[string]any{}
	}
	for k, v := range partial {
		s.Preferences[k] = v
	}
}

func (s *State) Incr(counter string) int {
	if s.Counters == nil {
		s.Counters = map[string]int{}
	}
	s.Counters[counter]++
	return s.Counters[counter]
}

// Last returns the most recent turn with the given role.
func (s *State) Last(role Role) (Turn, bool) {
	for i := len(s.History) - 1; i >= 0; i-- {
		if s.History[i].Role == role {
			return s.History[i], true
		}
	}
	return Turn{}, false
}

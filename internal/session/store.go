package session

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sant0-9/companion/internal/kv"
	"github.com/sant0-9/companion/internal/logger"
)

// Store loads and saves one namespace's State. Persistence is best-effort:
// read failures reset to empty and write failures are logged.
type Store struct {
	kv        kv.Store
	namespace string
	max       int
}

func NewStore(store kv.Store, namespace string, max int) *Store {
	if max <= 0 {
		max = MaxHistory
	}
	return &Store{kv: store, namespace: namespace, max: max}
}

func (s *Store) Namespace() string { return s.namespace }

func (s *Store) MaxHistory() int { return s.max }

func (s *Store) key(part string) string {
	return s.namespace + "-" + part
}

// Keys returns the storage keys for preferences, history and counters.
func (s *Store) Keys() []string {
	return []string{s.key("preferences"), s.key("history"), s.key("counters")}
}

func (s *Store) Load(ctx context.Context) *State {
	st := NewState()

	s.read(ctx, s.key("preferences"), &st.Preferences)
	s.read(ctx, s.key("history"), &st.History)
	s.read(ctx, s.key("counters"), &st.Counters)

	if st.Preferences == nil {
		st.Preferences = map[string]any{}
	}
	if st.History == nil {
		st.History = []Turn{}
	}
	if st.Counters == nil {
		st.Counters = map[string]int{}
	}
	if over := len(st.History) - s.max; over > 0 {
		st.History = st.History[over:]
	}
	return st
}

func (s *Store) read(ctx context.Context, key string, dst any) {
	data, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			logger.With("session").Warn("load failed, starting empty", "key", key, "err", err)
		}
		return
	}
	if err := json.Unmarshal(data, dst); err != nil {
		logger.With("session").Warn("corrupt value, starting empty", "key", key, "err", err)
		// Partial decodes leave dst half-filled; reset it.
		switch v := dst.(type) {
		case *map[string]any:
			*v = map[string]any{}
		case *[]Turn:
			*v = []Turn{}
		case *map[string]int:
			*v = map[string]int{}
		}
	}
}

func (s *Store) write(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.With("session").Error("encode failed", "key", key, "err", err)
		return
	}
	if err := s.kv.Set(ctx, key, data); err != nil {
		logger.With("session").Error("save failed", "key", key, "err", err)
	}
}

func (s *Store) Save(ctx context.Context, st *State) {
	s.write(ctx, s.key("preferences"), st.Preferences)
	s.write(ctx, s.key("history"), st.History)
	s.write(ctx, s.key("counters"), st.Counters)
}

func (s *Store) SavePreferences(ctx context.Context, st *State, partial map[string]any) {
	st.Merge(partial)
	s.write(ctx, s.key("preferences"), st.Preferences)
}

// Clear empties the history. Preferences and counters are kept.
func (s *Store) Clear(ctx context.Context, st *State) {
	st.History = []Turn{}
	if err := s.kv.Delete(ctx, s.key("history")); err != nil {
		logger.With("session").Error("clear failed", "key", s.key("history"), "err", err)
	}
}

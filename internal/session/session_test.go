package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/sant0-9/companion/internal/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendEvictsOldest(t *testing.T) {
	st := NewState()
	for i := 0; i < 55; i++ {
		st.Append(NewTurn(RoleUser, fmt.Sprintf("msg %d", i)), 50)
	}

	require.Len(t, st.History, 50)
	assert.Equal(t, "msg 5", st.History[0].Content)
	assert.Equal(t, "msg 54", st.History[49].Content)
}

func TestAppendDefaultMax(t *testing.T) {
	st := NewState()
	for i := 0; i < MaxHistory+3; i++ {
		st.Append(NewTurn(RoleAssistant, "x"), 0)
	}
	assert.Len(t, st.History, MaxHistory)
}

func TestNewTurn(t *testing.T) {
	a := NewTurn(RoleUser, "hola")
	b := NewTurn(RoleUser, "hola")
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.Timestamp.IsZero())
}

func TestPreference(t *testing.T) {
	st := NewState()
	st.Merge(map[string]any{
		"targetLanguage": "french",
		"vocabulary":     []any{map[string]any{"word": "chat", "translation": "cat"}},
	})

	var lang string
	ok, err := st.Preference("targetLanguage", &lang)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "french", lang)

	var vocab []struct {
		Word        string `json:"word"`
		Translation string `json:"translation"`
	}
	ok, err = st.Preference("vocabulary", &vocab)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "chat", vocab[0].Word)

	ok, err = st.Preference("missing", &lang)
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, "french", st.String("targetLanguage", "spanish"))
	assert.Equal(t, "beginner", st.String("level", "beginner"))
}

func TestIncr(t *testing.T) {
	st := &State{}
	assert.Equal(t, 1, st.Incr("responses"))
	assert.Equal(t, 2, st.Incr("responses"))
}

func TestLast(t *testing.T) {
	st := NewState()
	_, ok := st.Last(RoleUser)
	assert.False(t, ok)

	st.Append(NewTurn(RoleUser, "q1"), 0)
	st.Append(NewTurn(RoleAssistant, "a1"), 0)
	st.Append(NewTurn(RoleUser, "q2"), 0)

	turn, ok := st.Last(RoleAssistant)
	require.True(t, ok)
	assert.Equal(t, "a1", turn.Content)
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	store := NewStore(mem, "mode-life-coach", 50)

	st := store.Load(ctx)
	assert.Empty(t, st.History)

	st.Append(NewTurn(RoleUser, "help me set a goal"), store.MaxHistory())
	st.Incr("responses")
	store.SavePreferences(ctx, st, map[string]any{"coachingStyle": "direct"})
	store.Save(ctx, st)

	again := NewStore(mem, "mode-life-coach", 50).Load(ctx)
	require.Len(t, again.History, 1)
	assert.Equal(t, "help me set a goal", again.History[0].Content)
	assert.Equal(t, "direct", again.Preferences["coachingStyle"])
	assert.Equal(t, 1, again.Counters["responses"])

	other := NewStore(mem, "mode-language-tutor", 50).Load(ctx)
	assert.Empty(t, other.History, "namespaces do not share history")
}

func TestSavePreferencesMerges(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	store := NewStore(mem, "ns", 50)
	st := store.Load(ctx)

	store.SavePreferences(ctx, st, map[string]any{"a": 1, "language": "Spanish"})
	store.SavePreferences(ctx, st, map[string]any{"b": 2})
	assert.Equal(t, map[string]any{"a": 1, "b": 2, "language": "Spanish"}, st.Preferences)

	store.SavePreferences(ctx, st, map[string]any{"language": "French"})

	got := NewStore(mem, "ns", 50).Load(ctx)
	assert.Equal(t, map[string]any{"a": float64(1), "b": float64(2), "language": "French"}, got.Preferences)
}

func TestLoadCorruptResetsOnlyThatPart(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(ctx, "ns-history", []byte("{not json")))
	require.NoError(t, mem.Set(ctx, "ns-preferences", []byte(`{"units":"imperial"}`)))
	require.NoError(t, mem.Set(ctx, "ns-counters", []byte(`[1,2]`)))

	st := NewStore(mem, "ns", 50).Load(ctx)
	assert.NotNil(t, st.History)
	assert.Empty(t, st.History)
	assert.NotNil(t, st.Counters)
	assert.Empty(t, st.Counters)
	assert.Equal(t, "imperial", st.Preferences["units"])
}

func TestLoadNullValues(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	for _, k := range []string{"ns-history", "ns-preferences", "ns-counters"} {
		require.NoError(t, mem.Set(ctx, k, []byte("null")))
	}

	st := NewStore(mem, "ns", 50).Load(ctx)
	assert.NotNil(t, st.History)
	assert.NotNil(t, st.Preferences)
	assert.NotNil(t, st.Counters)
}

func TestLoadTrimsLongHistory(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	big := NewStore(mem, "ns", 100)
	st := NewState()
	for i := 0; i < 80; i++ {
		st.Append(NewTurn(RoleUser, fmt.Sprint(i)), 100)
	}
	big.Save(ctx, st)

	got := NewStore(mem, "ns", 50).Load(ctx)
	require.Len(t, got.History, 50)
	assert.Equal(t, "30", got.History[0].Content)
}

func TestSaveFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	files, err := kv.NewFile(t.TempDir(), 8)
	require.NoError(t, err)
	store := NewStore(files, "ns", 50)

	st := store.Load(ctx)
	st.Append(NewTurn(RoleUser, "a message far larger than eight bytes"), 50)
	store.Save(ctx, st)

	assert.Len(t, st.History, 1)
	reloaded := store.Load(ctx)
	assert.Empty(t, reloaded.History)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	store := NewStore(mem, "ns", 50)

	st := store.Load(ctx)
	st.Append(NewTurn(RoleUser, "hi"), 50)
	store.SavePreferences(ctx, st, map[string]any{"level": "advanced"})
	store.Save(ctx, st)

	store.Clear(ctx, st)
	assert.Empty(t, st.History)

	_, err := mem.Get(ctx, "ns-history")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	got := store.Load(ctx)
	assert.Empty(t, got.History)
	assert.Equal(t, "advanced", got.Preferences["level"])
}

func TestKeys(t *testing.T) {
	store := NewStore(kv.NewMemory(), "mode-weather-forecaster", 0)
	assert.Equal(t, []string{
		"mode-weather-forecaster-preferences",
		"mode-weather-forecaster-history",
		"mode-weather-forecaster-counters",
	}, store.Keys())
	assert.Equal(t, MaxHistory, store.MaxHistory())
}

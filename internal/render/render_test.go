package render

import (
	"testing"

	"github.com/sant0-9/companion/internal/intent"
	"github.com/sant0-9/companion/internal/session"
	"github.com/sant0-9/companion/internal/slot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineRender(t *testing.T) {
	e := NewEngine(func(slot.Values, *session.State) string { return "fallback" }).
		Register("vocabulary", func(s slot.Values, _ *session.State) string {
			return "words in " + s.Or("language", "spanish")
		})

	tests := []struct {
		name     string
		category string
		slots    slot.Values
		want     string
	}{
		{"registered", "vocabulary", slot.Values{"language": "french"}, "words in french"},
		{"default slot", "vocabulary", nil, "words in spanish"},
		{"unknown category", "astrology", nil, "fallback"},
		{"general", intent.General, nil, "fallback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Render(tt.category, tt.slots, nil))
		})
	}

	assert.True(t, e.Has("vocabulary"))
	assert.False(t, e.Has("astrology"))
}

func TestEngineRegisteredGeneralWins(t *testing.T) {
	e := NewEngine(func(slot.Values, *session.State) string { return "fallback" }).
		Register(intent.General, func(slot.Values, *session.State) string { return "general" })
	assert.Equal(t, "general", e.Render("unknown", nil, nil))
}

func TestEngineIsPure(t *testing.T) {
	e := NewEngine(nil).Register("x", func(s slot.Values, st *session.State) string {
		return s.Or("a", "") + st.String("p", "")
	})
	st := session.NewState()
	st.Merge(map[string]any{"p": "!"})
	slots := slot.Values{"a": "b"}

	first := e.Render("x", slots, st)
	assert.Equal(t, first, e.Render("x", slots, st))
	assert.Equal(t, "b!", first)
	assert.Empty(t, NewEngine(nil).Render("x", nil, nil))
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "## Title\n\n", Heading(2, "Title"))
	assert.Equal(t, "###### Deep\n\n", Heading(9, "Deep"))
	assert.Equal(t, "- a\n- b\n", Bullets("a", "b"))
	assert.Equal(t, "1. a\n2. b\n", Numbered("a", "b"))
	assert.Equal(t, "Personal Growth", Title("personal growth"))

	table := Table([]string{"From", "To"}, [][]string{{"20°C", "68°F"}, {"a|b"}})
	assert.Equal(t, "| From | To |\n| --- | --- |\n| 20°C | 68°F |\n| a\\|b |  |\n", table)
	assert.Empty(t, Table(nil, nil))
}

func TestMarkdown(t *testing.T) {
	md, err := NewMarkdown(60, "notty")
	require.NoError(t, err)
	assert.Equal(t, 60, md.Width())

	out := md.Render("# Goals\n\n- run a marathon\n")
	assert.Contains(t, out, "Goals")
	assert.Contains(t, out, "run a marathon")

	assert.Equal(t, "  ", md.Render("  "))

	require.NoError(t, md.SetWidth(0))
	assert.Equal(t, 80, md.Width())
}

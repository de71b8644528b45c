package slot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var languages = []string{"Spanish", "French", "Japanese"}

func TestQuoted(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{name: "single quotes", text: "Translate 'I would like to order food' to Japanese", want: "I would like to order food", wantOK: true},
		{name: "double quotes", text: `say "buenos dias" please`, want: "buenos dias", wantOK: true},
		{name: "first span wins", text: `"one" and 'two'`, want: "one", wantOK: true},
		{name: "no quotes", text: "translate hello", wantOK: false},
		{name: "empty quotes", text: `""`, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Quoted(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFirstMatchWithWhitelist(t *testing.T) {
	e := FirstMatch("language", Whitelist(languages...),
		C(`\b(?:learn|study)\s+([a-z]+)\b`, 1),
		C(`\b([a-z]+)\s+(?:words|phrases)\b`, 1),
	)

	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{name: "first capture", text: "I want to learn spanish", want: "Spanish", wantOK: true},
		{name: "invalid first capture falls through", text: "learn some french phrases", want: "French", wantOK: true},
		{name: "not whitelisted", text: "learn klingon", wantOK: false},
		{name: "no capture", text: "hello", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := e.Extract(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuotedFirstPrefersQuotes(t *testing.T) {
	pattern := FirstMatch("text", nil, C(`translate\s+(.+?)\s+to\s+\w+`, 1))
	e := QuotedFirst("text", pattern)

	got, ok := e.Extract(`translate hello world to French`)
	assert.True(t, ok)
	assert.Equal(t, "hello world", got)

	got, ok = e.Extract(`translate the phrase "good night" to French`)
	assert.True(t, ok)
	assert.Equal(t, "good night", got)

	_, ok = QuotedFirst("text", Extractor{}).Extract("no quotes here")
	assert.False(t, ok)
}

func TestMention(t *testing.T) {
	e := Mention("language", languages...)

	got, ok := e.Extract("Teach me some basic Spanish phrases")
	assert.True(t, ok)
	assert.Equal(t, "Spanish", got)

	got, ok = e.Extract("japanese or french?")
	assert.True(t, ok)
	assert.Equal(t, "French", got, "values are checked in list order")

	_, ok = e.Extract("Frenchman")
	assert.False(t, ok, "mentions are word bounded")
}

func TestKeywords(t *testing.T) {
	order := []string{"career", "health"}
	table := map[string][]string{
		"career": {"job", "promotion"},
		"health": {"fitness", "sleep", "mental health"},
	}
	e := Keywords("area", order, table)

	got, ok := e.Extract("I need better SLEEP")
	assert.True(t, ok)
	assert.Equal(t, "health", got)

	got, ok = e.Extract("my job and my fitness")
	assert.True(t, ok)
	assert.Equal(t, "career", got)

	_, ok = e.Extract("jobless")
	assert.False(t, ok)
}

func TestRunKeepsFirstHitPerName(t *testing.T) {
	extractors := []Extractor{
		Mention("language", "Spanish"),
		Mention("language", "French"),
		FirstMatch("level", Whitelist("beginner"), C(`\b(beginner)\b`, 1)),
		{Name: "broken"},
	}

	got := Run("Spanish and French for a beginner", extractors)
	assert.Equal(t, Values{"language": "Spanish", "level": "beginner"}, got)

	assert.Empty(t, Run("nothing", extractors))
}

func TestValues(t *testing.T) {
	v := Values{"language": "Spanish", "empty": ""}

	assert.Equal(t, "Spanish", v.Or("language", "English"))
	assert.Equal(t, "English", v.Or("missing", "English"))
	assert.Equal(t, "English", v.Or("empty", "English"))
	assert.True(t, v.Has("empty"))
	assert.False(t, v.Has("missing"))

	c := v.Clone()
	c["language"] = "French"
	assert.Equal(t, "Spanish", v["language"])
}

func TestAny(t *testing.T) {
	e := Any("place",
		FirstMatch("place", nil, C(`\bin\s+([A-Z][a-z]+)`, 1)),
		Mention("place", "home"),
	)

	got, ok := e.Extract("rain at home")
	assert.True(t, ok)
	assert.Equal(t, "home", got)

	_, ok = e.Extract("nothing")
	assert.False(t, ok)
}

package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRules() []Rule {
	return []Rule{
		{Category: "vocabulary", Test: Matches(Pattern(`\b(?:vocabulary|words|phrases)\b`))},
		{Category: "translation", Test: Matches(Pattern(`\btranslate\b`))},
		{Category: "goal", Test: All(
			Matches(Pattern(`\bgoals?\b`)),
			Matches(Pattern(`\b(?:set|define)\b`)),
		)},
		{Category: "weather", Test: Contains("forecast", "rain")},
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "single match", text: "Teach me some words", want: "vocabulary"},
		{name: "case insensitive", text: "TRANSLATE this", want: "translation"},
		{name: "first match wins", text: "translate these phrases", want: "vocabulary"},
		{name: "all requires every test", text: "I have goals", want: General},
		{name: "all satisfied", text: "help me set goals", want: "goal"},
		{name: "contains", text: "Will it RAIN tomorrow?", want: "weather"},
		{name: "no match", text: "hello there", want: General},
		{name: "empty", text: "", want: General},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text, testRules()))
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	c := New(testRules()...)
	inputs := []string{"translate these phrases", "set a goal", "nothing", "forecast please"}
	for _, in := range inputs {
		first := c.Classify(in)
		for i := 0; i < 50; i++ {
			require.Equal(t, first, c.Classify(in), "input %q", in)
		}
	}
}

func TestFirstMatchPrecedence(t *testing.T) {
	always := func(string) bool { return true }
	rules := []Rule{{Category: "r1", Test: always}, {Category: "r2", Test: always}}
	assert.Equal(t, "r1", Classify("anything", rules))

	rules[0], rules[1] = rules[1], rules[0]
	assert.Equal(t, "r2", Classify("anything", rules))
}

func TestClassifyNeverEmpty(t *testing.T) {
	inputs := []string{"", " ", "???", "zzz", "\n\t"}
	for _, in := range inputs {
		assert.NotEmpty(t, Classify(in, nil))
		assert.NotEmpty(t, Classify(in, testRules()))
	}
}

func TestNilTestIsSkipped(t *testing.T) {
	rules := []Rule{{Category: "broken"}, {Category: "ok", Test: Contains("x")}}
	assert.Equal(t, "ok", Classify("x", rules))
}

func TestClassifierCopiesRules(t *testing.T) {
	rules := testRules()
	c := New(rules...)
	rules[0] = Rule{Category: "mutated", Test: func(string) bool { return true }}

	assert.Equal(t, "translation", c.Classify("translate it"))
	assert.Equal(t, "vocabulary", c.Categories()[0])
}

func TestCategories(t *testing.T) {
	c := New(testRules()...)
	assert.Equal(t, []string{"vocabulary", "translation", "goal", "weather", General}, c.Categories())

	var nilClassifier *Classifier
	assert.Equal(t, General, nilClassifier.Classify("anything"))
	assert.Equal(t, []string{General}, nilClassifier.Categories())
}

func TestAllWithoutTestsIsFalse(t *testing.T) {
	assert.False(t, All()("anything"))
}

package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input  string
		wantOK bool
		want   command
	}{
		{"hello there", false, command{}},
		{"/", false, command{}},
		{"  what about /help", false, command{}},
		{"/help", true, command{name: "help", rest: ""}},
		{"/Mode weather-forecaster", true, command{name: "mode", args: []string{"weather-forecaster"}, rest: "weather-forecaster"}},
		{"/goal   Run a  10k ", true, command{name: "goal", args: []string{"Run", "a", "10k"}, rest: "Run a  10k"}},
		{"/upload happy cat ./cat.png", true, command{name: "upload", args: []string{"happy", "cat", "./cat.png"}, rest: "happy cat ./cat.png"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseCommand(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.want.name, got.name)
			assert.Equal(t, tt.want.rest, got.rest)
			if len(tt.want.args) == 0 {
				assert.Empty(t, got.args)
			} else {
				assert.Equal(t, tt.want.args, got.args)
			}
		})
	}
}

func TestCycle(t *testing.T) {
	assert.Equal(t, 100, cycle(historyLimits, 50))
	assert.Equal(t, 20, cycle(historyLimits, 200))
	assert.Equal(t, 20, cycle(historyLimits, 37), "unknown values restart the cycle")
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, "short", wrapText("short", 20))
	assert.Equal(t, "one two\nthree", wrapText("one two three", 8))
	assert.Equal(t, "a\nb", wrapText("a\nb", 8))
}

package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTool(t *testing.T) {
	for _, id := range []string{"research-question", "thesis-statement", "literature-search", "paraphraser"} {
		t.Run(id, func(t *testing.T) {
			p, ok := Tool(id)
			require.True(t, ok)
			assert.True(t, strings.HasPrefix(p, "I'd like to use the "))
			assert.Equal(t, strings.TrimSpace(p), p)
		})
	}

	_, ok := Tool("nope")
	assert.False(t, ok)
}

func TestBuildToolPrompt(t *testing.T) {
	p, err := BuildToolPrompt("paraphraser", "")
	require.NoError(t, err)
	assert.NotContains(t, p, "My topic")

	p, err = BuildToolPrompt("paraphraser", "  soil erosion ")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(p, "\n\n---\n\nMy topic: soil erosion"))

	_, err = BuildToolPrompt("nope", "x")
	assert.Error(t, err)
}

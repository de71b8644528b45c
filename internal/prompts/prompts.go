// Package prompts holds the canned prompts behind mode tools.
package prompts

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed research-question.md
var ResearchQuestion string

//go:embed thesis-statement.md
var ThesisStatement string

//go:embed literature-search.md
var LiteratureSearch string

//go:embed paraphraser.md
var Paraphraser string

var byName = map[string]string{
	"research-question": ResearchQuestion,
	"thesis-statement":  ThesisStatement,
	"literature-search": LiteratureSearch,
	"paraphraser":       Paraphraser,
}

// Tool returns the trimmed prompt for a tool id
func Tool(id string) (string, bool) {
	p, ok := byName[id]
	if !ok {
		return "", false
	}
	return strings.TrimSpace(p), true
}

// BuildToolPrompt returns the tool prompt, with the user's topic appended
// when one is given
func BuildToolPrompt(id, topic string) (string, error) {
	base, ok := Tool(id)
	if !ok {
		return "", fmt.Errorf("unknown tool %q", id)
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return base, nil
	}
	return fmt.Sprintf("%s\n\n---\n\nMy topic: %s", base, topic), nil
}

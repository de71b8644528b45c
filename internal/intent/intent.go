// Package intent routes free text to a category with an ordered list of
// pattern rules. The first rule that matches wins.
package intent

// General is the category returned when no rule matches.
const General = "general"

// Rule pairs a category with a pure predicate over the input text.
type Rule struct {
	Category string
	Test     func(text string) bool
}

// Classify evaluates rules in order and returns the category of the first
// rule whose Test reports true, or General.
func Classify(text string, rules []Rule) string {
	for _, r := range rules {
		if r.Test != nil && r.Test(text) {
			return r.Category
		}
	}
	return General
}

// Classifier holds an immutable rule list built once per mode.
type Classifier struct {
	rules []Rule
}

// New creates a classifier over a copy of rules.
func New(rules ...Rule) *Classifier {
	c := &Classifier{rules: make([]Rule, len(rules))}
	copy(c.rules, rules)
	return c
}

// Classify returns the category for text.
func (c *Classifier) Classify(text string) string {
	if c == nil {
		return General
	}
	return Classify(text, c.rules)
}

// Categories lists rule categories in evaluation order, followed by General.
// Duplicates keep their first position.
func (c *Classifier) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	if c != nil {
		for _, r := range c.rules {
			if seen[r.Category] {
				continue
			}
			seen[r.Category] = true
			out = append(out, r.Category)
		}
	}
	if !seen[General] {
		out = append(out, General)
	}
	return out
}

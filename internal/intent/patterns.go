package intent

import (
	"regexp"
	"strings"
)

// Pattern compiles a case-insensitive expression. It panics on a bad
// expression, so call it when building rule tables.
func Pattern(expr string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + expr)
}

// Matches reports true when any of the patterns matches.
func Matches(patterns ...*regexp.Regexp) func(string) bool {
	return func(text string) bool {
		for _, p := range patterns {
			if p.MatchString(text) {
				return true
			}
		}
		return false
	}
}

// All reports true when every test reports true.
func All(tests ...func(string) bool) func(string) bool {
	return func(text string) bool {
		if len(tests) == 0 {
			return false
		}
		for _, t := range tests {
			if !t(text) {
				return false
			}
		}
		return true
	}
}

// Contains reports true when text contains any of the words, ignoring case.
func Contains(words ...string) func(string) bool {
	lowered := make([]string, len(words))
	for i, w := range words {
		lowered[i] = strings.ToLower(w)
	}
	return func(text string) bool {
		t := strings.ToLower(text)
		for _, w := range lowered {
			if w != "" && strings.Contains(t, w) {
				return true
			}
		}
		return false
	}
}

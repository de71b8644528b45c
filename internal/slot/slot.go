// Package slot pulls named values out of free text. Each extractor is
// independent and reports absence instead of failing.
package slot

import (
	"regexp"
	"strings"
)

// Extractor pulls one named value out of text.
type Extractor struct {
	Name    string
	Extract func(text string) (string, bool)
}

// Values holds the slots found in one input. Absent slots have no key.
type Values map[string]string

// Get returns the slot value and whether it was present.
func (v Values) Get(name string) (string, bool) {
	s, ok := v[name]
	return s, ok
}

// Has reports whether the slot was extracted.
func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

// Or returns the slot value, or fallback when absent.
func (v Values) Or(name, fallback string) string {
	if s, ok := v[name]; ok && s != "" {
		return s
	}
	return fallback
}

// Clone returns a copy that is safe to keep after the turn.
func (v Values) Clone() map[string]string {
	out := make(map[string]string, len(v))
	for k, s := range v {
		out[k] = s
	}
	return out
}

// Run applies every extractor to text. Later extractors with the same name
// do not overwrite an earlier hit.
func Run(text string, extractors []Extractor) Values {
	out := make(Values)
	for _, e := range extractors {
		if e.Extract == nil || out.Has(e.Name) {
			continue
		}
		if s, ok := e.Extract(text); ok {
			out[e.Name] = s
		}
	}
	return out
}

// Capture names the group of Re that carries the slot value.
type Capture struct {
	Re    *regexp.Regexp
	Group int
}

// C is shorthand for a case-insensitive Capture.
func C(expr string, group int) Capture {
	return Capture{Re: regexp.MustCompile(`(?i)` + expr), Group: group}
}

// Validator accepts a raw capture and returns its canonical form.
type Validator func(raw string) (string, bool)

// FirstMatch tries captures in order. A capture whose value fails validate
// does not stop the search. A nil validate accepts any trimmed non-empty value.
func FirstMatch(name string, validate Validator, captures ...Capture) Extractor {
	return Extractor{
		Name: name,
		Extract: func(text string) (string, bool) {
			for _, c := range captures {
				m := c.Re.FindStringSubmatch(text)
				if m == nil || c.Group >= len(m) {
					continue
				}
				raw := strings.TrimSpace(m[c.Group])
				if raw == "" {
					continue
				}
				if validate == nil {
					return raw, true
				}
				if s, ok := validate(raw); ok {
					return s, true
				}
			}
			return "", false
		},
	}
}

var quotePattern = regexp.MustCompile(`"([^"]+)"|'([^']+)'`)

// Quoted returns the first double- or single-quoted span in text.
func Quoted(text string) (string, bool) {
	m := quotePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	if m[1] != "" {
		return m[1], true
	}
	return m[2], m[2] != ""
}

// QuotedFirst gives an explicit quoted span priority over fallback.
func QuotedFirst(name string, fallback Extractor) Extractor {
	return Extractor{
		Name: name,
		Extract: func(text string) (string, bool) {
			if s, ok := Quoted(text); ok {
				return s, true
			}
			if fallback.Extract == nil {
				return "", false
			}
			return fallback.Extract(text)
		},
	}
}

// Whitelist accepts values that equal one of allowed, ignoring case, and
// returns the allowed spelling.
func Whitelist(allowed ...string) Validator {
	index := make(map[string]string, len(allowed))
	for _, a := range allowed {
		index[strings.ToLower(a)] = a
	}
	return func(raw string) (string, bool) {
		s, ok := index[strings.ToLower(strings.TrimSpace(raw))]
		return s, ok
	}
}

// Mention finds the first of values mentioned as a whole word in text.
// Values are checked in the given order.
func Mention(name string, values ...string) Extractor {
	patterns := make([]*regexp.Regexp, len(values))
	for i, v := range values {
		patterns[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(v) + `\b`)
	}
	return Extractor{
		Name: name,
		Extract: func(text string) (string, bool) {
			for i, p := range patterns {
				if p.MatchString(text) {
					return values[i], true
				}
			}
			return "", false
		},
	}
}

// Keywords maps any keyword hit to its table key. Keys are checked in order.
func Keywords(name string, order []string, table map[string][]string) Extractor {
	return Extractor{
		Name: name,
		Extract: func(text string) (string, bool) {
			return LookupKeyword(text, order, table)
		},
	}
}

// LookupKeyword returns the first key in order whose keyword list has a
// word-bounded hit in text.
func LookupKeyword(text string, order []string, table map[string][]string) (string, bool) {
	lower := strings.ToLower(text)
	for _, key := range order {
		for _, kw := range table[key] {
			if containsWord(lower, strings.ToLower(kw)) {
				return key, true
			}
		}
	}
	return "", false
}

// Any chains extractors for the same slot, returning the first hit.
func Any(name string, extractors ...Extractor) Extractor {
	return Extractor{
		Name: name,
		Extract: func(text string) (string, bool) {
			for _, e := range extractors {
				if e.Extract == nil {
					continue
				}
				if s, ok := e.Extract(text); ok {
					return s, true
				}
			}
			return "", false
		},
	}
}

func containsWord(text, word string) bool {
	if word == "" {
		return false
	}
	for start := 0; ; {
		i := strings.Index(text[start:], word)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(word)
		if boundary(text, i-1) && boundary(text, end) {
			return true
		}
		start = i + 1
	}
}

func boundary(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return true
	}
	c := s[i]
	return !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_')
}

package tutor

import (
	"regexp"
	"strings"

	"github.com/sant0-9/companion/internal/intent"
	"github.com/sant0-9/companion/internal/slot"
)

const (
	Vocabulary    = "vocabulary"
	Grammar       = "grammar"
	Conversation  = "conversation"
	Translation   = "translation"
	Pronunciation = "pronunciation"
	Correction    = "correction"
	Resources     = "resources"
	Comparison    = "comparison"
	Cultural      = "cultural"
)

func rules() []intent.Rule {
	p := intent.Pattern
	return []intent.Rule{
		{Category: Vocabulary, Test: intent.Matches(
			p(`\b(?:vocabulary|words|phrases|terms|expressions|idioms)\b`),
			p(`\b(?:teach\s+me|learn|memorize)\s+(?:some|a few|basic|common|useful)?\s*(?:words|vocabulary|phrases|expressions)\b`),
		)},
		{Category: Grammar, Test: intent.Matches(
			p(`\b(?:grammar|conjugate|conjugation|tense|verb|noun|adjective|adverb|syntax|structure)\b`),
			p(`\bhow\s+(?:do|does|to)\s+(?:use|form|make|create|conjugate)\b`),
		)},
		{Category: Conversation, Test: intent.Matches(
			p(`\b(?:conversation|practice|speaking|dialogue|talk|chat)\b`),
			p(`\bhow\s+(?:do|would|could|can|to)\s+(?:say|ask|respond|answer|reply)\b`),
		)},
		{Category: Translation, Test: intent.Matches(
			p(`\b(?:translate|translation|say\s+in|mean\s+in|written\s+in|expressed\s+in)\b`),
			p(`\bhow\s+(?:do|would|to)\s+(?:you)?\s*say\b`),
			p(`\bwhat\s+(?:is|does)\s+[^?]+\s+(?:in|mean\s+in)\s+(?:spanish|french|german|italian|portuguese|chinese|japanese|korean)\b`),
		)},
		{Category: Pronunciation, Test: intent.Matches(
			p(`\b(?:pronounce|pronunciation|accent|sound|phonetics|say)\b`),
			p(`\b(?:how\s+to\s+pronounce|how\s+is\s+it\s+pronounced|how\s+do\s+you\s+say)\b`),
		)},
		{Category: Correction, Test: intent.Matches(
			p(`\b(?:correct|check|fix|improve|evaluate|assess|feedback)\b`),
			p(`\b(?:is\s+this\s+(?:correct|right|ok)|did\s+i\s+(?:say|write)\s+that\s+(?:correctly|right))\b`),
		)},
		{Category: Resources, Test: intent.Matches(
			p(`\b(?:resources|materials|apps|websites|books|courses|programs|tools|software)\b`),
			p(`\b(?:recommend|suggestion|advice|tips|best\s+way)\b`),
		)},
		{Category: Comparison, Test: intent.Matches(
			p(`\b(?:difference|different|compare|comparison|versus|vs)\b`),
		)},
		{Category: Cultural, Test: intent.Matches(
			p(`\b(?:culture|cultural|customs|traditions|etiquette|society|history|people)\b`),
		)},
	}
}

var levelTable = map[string][]string{
	"beginner":     {"beginner", "basic", "novice", "elementary", "starting", "new", "a1", "a2"},
	"intermediate": {"intermediate", "middle", "moderate", "mid", "medium", "b1", "b2"},
	"advanced":     {"advanced", "fluent", "proficient", "expert", "high", "c1", "c2"},
}

var levelOrder = []string{"beginner", "intermediate", "advanced"}

var nonASCII = regexp.MustCompile(`[^\x00-\x7F]`)

// isEnglish is a rough check: anything outside ASCII is treated as the
// target language.
func isEnglish(text string) bool {
	return !nonASCII.MatchString(text)
}

func unquote(raw string) (string, bool) {
	s := strings.TrimSpace(strings.Trim(strings.TrimSpace(raw), `"'`))
	return s, s != ""
}

func (t *Tutor) extractors() (common []slot.Extractor, byCategory map[string][]slot.Extractor) {
	langs := t.catalog.LanguageNames()
	known := slot.Whitelist(langs...)

	language := slot.Any("language",
		slot.Mention("language", langs...),
		slot.FirstMatch("language", known,
			slot.C(`\b(?:learn|study|practice)\s+(?:some|basic|beginner)?\s*([a-zA-Z]+)\b`, 1),
			slot.C(`\b(?:in|to)\s+([a-zA-Z]+)\s+(?:please|language|translation)\b`, 1),
			slot.C(`\b(?:speak|talk|converse)\s+(?:in|some)?\s*([a-zA-Z]+)\b`, 1),
			slot.C(`\b([a-zA-Z]+)\s+(?:words|phrases|vocabulary|grammar|lessons|class)\b`, 1),
		),
	)

	topicOrder, topicTable := t.catalog.topicTable()
	topic := slot.Keywords("topic", topicOrder, topicTable)

	common = []slot.Extractor{
		language,
		slot.Keywords("level", levelOrder, levelTable),
	}

	text := slot.QuotedFirst("text", slot.FirstMatch("text", unquote,
		slot.C(`how\s+(?:do|would|to)\s+(?:you|I)\s+say\s+(?:the\s+(?:phrase|word|sentence))?\s*['"]?([^?"']+)['"]?\s*(?:in|into|to)\s+(?:the\s+)?(?:language|\w+)`, 1),
		slot.C(`(?:translate|translation)\s+(?:of|for)?\s*['"]?([^?"']+)['"]?\s*(?:in|into|to)\s+(?:the\s+)?(?:language|\w+)`, 1),
		slot.C(`what\s+(?:is|does|do)\s+['"]?([^?"']+)['"]?\s*(?:mean|translate\s+to)\s+(?:in|into|to)\s+(?:the\s+)?(?:language|\w+)`, 1),
		slot.C(`what\s+is\s+(?:the\s+)?(?:language|\w+)\s+(?:word|phrase|expression|translation)\s+(?:for|of)\s+['"]?([^?"']+)['"]?`, 1),
	))

	pronounce := slot.QuotedFirst("pronounce", slot.FirstMatch("pronounce", unquote,
		slot.C(`how\s+(?:do|to)\s+(?:you|I)\s+pronounce\s+(?:the\s+(?:phrase|word|sentence))?\s*['"]?([^?"']+)['"]?`, 1),
		slot.C(`(?:pronunciation|pronounce|say)\s+(?:of|for)?\s*['"]?([^?"']+)['"]?`, 1),
		slot.C(`help\s+(?:me|with)\s+(?:the\s+)?(?:pronunciation|pronouncing|saying)\s+(?:of|for)?\s*['"]?([^?"']+)['"]?`, 1),
	))

	correct := slot.QuotedFirst("correct", slot.Any("correct",
		slot.FirstMatch("correct", unquote,
			slot.C(`:\s*([^?]*)$`, 1),
			slot.C(`(?:correct|check|fix|improve|analyze)\s+(?:this|the\s+)?(?:sentence|phrase|paragraph|grammar|text)?\s*[:?]?\s*([^?]*)$`, 1),
			slot.C(`is\s+this\s+(?:correct|right|ok|good)(?:\s+in\s+(?:the\s+)?\w+)?\s*[:?]?\s*([^?]*)$`, 1),
			slot.C(`how\s+(?:do|would|to)\s+(?:you|I)\s+(?:say|write)\s+this\s+(?:correctly|properly|right)(?:\s+in\s+(?:the\s+)?\w+)?\s*[:?]?\s*([^?]*)$`, 1),
			slot.C(`\s-\s*([^?]*)$`, 1),
		),
		slot.Extractor{Name: "correct", Extract: func(text string) (string, bool) {
			if !isEnglish(text) || len(text) < 100 {
				return strings.TrimSpace(text), true
			}
			return "", false
		}},
	))

	compare := slot.Extractor{Name: "compare", Extract: func(text string) (string, bool) {
		return t.comparePair(text)
	}}

	byCategory = map[string][]slot.Extractor{
		Vocabulary:    {topic},
		Conversation:  {topic},
		Translation:   {text},
		Pronunciation: {pronounce},
		Correction:    {correct},
		Comparison:    {compare},
		Cultural:      {slot.Mention("aspect", t.catalog.Aspects...)},
	}
	return common, byCategory
}

var comparePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:difference|compare|comparison|versus|vs)(?:\s+between)?\s+([a-zA-Z]+)\s+(?:and|vs|versus|to|with)\s+([a-zA-Z]+)`),
	regexp.MustCompile(`(?i)how\s+does\s+([a-zA-Z]+)\s+(?:compare|differ|stack\s+up)(?:\s+to|\s+with|\s+against)?\s+([a-zA-Z]+)`),
	regexp.MustCompile(`(?i)\bis\s+([a-zA-Z]+)\s+(?:more|less|easier|harder|different)(?:\s+than|\s+from)?\s+([a-zA-Z]+)`),
}

// comparePair finds two languages to compare, joined with a comma.
func (t *Tutor) comparePair(text string) (string, bool) {
	for _, re := range comparePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		a, okA := t.catalog.Language(m[1])
		b, okB := t.catalog.Language(m[2])
		if okA && okB {
			return a.Name + "," + b.Name, true
		}
	}

	var found []string
	for _, name := range t.catalog.LanguageNames() {
		if _, ok := slot.Mention("", name).Extract(text); ok {
			found = append(found, name)
			if len(found) == 2 {
				return strings.Join(found, ","), true
			}
		}
	}
	return "", false
}

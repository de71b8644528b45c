package research

import (
	"regexp"
	"strings"

	"github.com/sant0-9/companion/internal/intent"
	"github.com/sant0-9/companion/internal/slot"
)

const (
	ResearchQuestion = "research_question"
	Thesis           = "thesis"
	LiteratureSearch = "literature_search"
	Paraphrase       = "paraphrase"
	Citation         = "citation"
	LiteratureReview = "literature_review"
	MethodologyHelp  = "methodology"
	PaperStructure   = "paper_structure"
)

func rules() []intent.Rule {
	p := intent.Pattern
	return []intent.Rule{
		{Category: ResearchQuestion, Test: intent.Matches(
			p(`\bresearch\s+questions?\b`),
			p(`\bhypothes[ie]s\b`),
		)},
		{Category: Thesis, Test: intent.Matches(
			p(`\bthesis(?:\s+statements?)?\b`),
			p(`\bmain\s+argument\b`),
		)},
		{Category: LiteratureSearch, Test: intent.Matches(
			p(`\b(?:keywords?|search\s+terms?|databases?|boolean|literature\s+search)\b`),
			p(`\bfind\s+(?:sources|papers|articles|studies|literature)\b`),
		)},
		{Category: Paraphrase, Test: intent.Matches(
			p(`\b(?:paraphras\w*|rephras\w*|reword\w*|plagiari\w*)\b`),
		)},
		{Category: Citation, Test: intent.Matches(
			p(`\b(?:cite|citing|citations?|references?|referencing|bibliography|footnotes?)\b`),
			p(`\b(?:apa|mla|chicago|harvard|ieee)\b`),
		)},
		{Category: LiteratureReview, Test: intent.Matches(
			p(`\b(?:literature|systematic|narrative|scoping|integrative|rapid)\s+reviews?\b`),
			p(`\bmeta-?analys[ie]s\b`),
		)},
		{Category: MethodologyHelp, Test: intent.Matches(
			p(`\b(?:methodolog\w*|methods?|qualitative|quantitative|research\s+design|sampling|statistical|limitations)\b`),
		)},
		{Category: PaperStructure, Test: intent.Matches(
			p(`\b(?:structur\w*|outline|organi[sz]\w*|sections?|abstract|introduction|discussion|conclusion)\b`),
		)},
	}
}

var styleNames = []string{"APA", "MLA", "Chicago", "Harvard", "IEEE"}

var methodologyWords = map[string][]string{
	"mixed":        {"mixed methods", "mixed-methods", "mixed method"},
	"quantitative": {"quantitative"},
	"qualitative":  {"qualitative"},
	"action":       {"action research"},
}

var methodologyOrder = []string{"mixed", "quantitative", "qualitative", "action"}

var reviewWords = map[string][]string{
	"meta-analysis": {"meta-analysis", "meta-analyses", "meta analysis"},
	"systematic":    {"systematic"},
	"narrative":     {"narrative review", "narrative literature review", "narrative"},
	"scoping":       {"scoping"},
	"integrative":   {"integrative"},
	"critical":      {"critical review"},
	"rapid":         {"rapid review"},
}

var reviewOrder = []string{"meta-analysis", "systematic", "narrative", "scoping", "integrative", "critical", "rapid"}

var paperWords = map[string][]string{
	"case_study":  {"case study"},
	"review":      {"review paper", "review article"},
	"theoretical": {"theoretical", "conceptual paper"},
	"empirical":   {"empirical"},
}

var paperOrder = []string{"case_study", "review", "theoretical", "empirical"}

var topicCaptures = []slot.Capture{
	slot.C(`\b(?:on|about|regarding|concerning|into)\s+(.+?)\s*(?:[?.!]|$)`, 1),
}

// topic accepts a short phrase and drops a leading article.
func topic(raw string) (string, bool) {
	t := strings.TrimSpace(raw)
	for _, art := range []string{"the ", "a ", "an "} {
		if len(t) > len(art) && strings.EqualFold(t[:len(art)], art) {
			t = t[len(art):]
			break
		}
	}
	if t == "" || len(strings.Fields(t)) > 12 {
		return "", false
	}
	return t, true
}

func extractors() []slot.Extractor {
	style := slot.Mention("style", styleNames...)
	return []slot.Extractor{
		{Name: "style", Extract: func(text string) (string, bool) {
			s, ok := style.Extract(text)
			return strings.ToLower(s), ok
		}},
		slot.Keywords("methodology", methodologyOrder, methodologyWords),
		slot.Keywords("review", reviewOrder, reviewWords),
		slot.Keywords("paper", paperOrder, paperWords),
		slot.FirstMatch("topic", topic, topicCaptures...),
	}
}

var limitationsWord = regexp.MustCompile(`(?i)\blimitations?\b`)

// mentionsWord reports whether phrase appears in text as whole words.
func mentionsWord(text, phrase string) bool {
	_, ok := slot.LookupKeyword(text, []string{phrase}, map[string][]string{phrase: {phrase}})
	return ok
}

// mentioned returns every key in order with a keyword in text.
func mentioned(text string, order []string, table map[string][]string) []string {
	var out []string
	for _, key := range order {
		if _, ok := slot.LookupKeyword(text, []string{key}, table); ok {
			out = append(out, key)
		}
	}
	return out
}

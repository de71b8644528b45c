package tutor

import (
	"fmt"
	"strings"

	"github.com/sant0-9/companion/internal/render"
	"github.com/sant0-9/companion/internal/session"
	"github.com/sant0-9/companion/internal/slot"
)

func (t *Tutor) engine() *render.Engine {
	return render.NewEngine(t.general).
		Register(Vocabulary, t.vocabulary).
		Register(Grammar, t.grammar).
		Register(Conversation, t.conversation).
		Register(Translation, t.translation).
		Register(Pronunciation, t.pronunciation).
		Register(Correction, t.correction).
		Register(Resources, t.resources).
		Register(Comparison, t.comparison).
		Register(Cultural, t.cultural)
}

func (t *Tutor) vocabulary(s slot.Values, st *session.State) string {
	p := t.profile(st)
	var b strings.Builder

	if topic, ok := s.Get("topic"); ok {
		b.WriteString(render.Heading(1, fmt.Sprintf("%s Vocabulary: %s", p.Target, topic)))
		fmt.Fprintf(&b, "Words and phrases about %s, pitched at a %s level.\n\n", strings.ToLower(topic), p.Level)
	} else {
		b.WriteString(render.Heading(1, fmt.Sprintf("Essential %s Vocabulary and Phrases", p.Target)))
		fmt.Fprintf(&b, "A starter set for a %s learner.\n\n", p.Level)
	}

	if phrases := t.catalog.Phrases[p.Target]; len(phrases) > 0 {
		b.WriteString(render.Heading(2, "Common Everyday Phrases in "+p.Target))
		rows := make([][]string, len(phrases))
		for i, ph := range phrases {
			rows[i] = []string{ph.English, ph.Native}
		}
		b.WriteString(render.Table([]string{"English", p.Target}, rows))
		b.WriteString("\n")
	} else {
		b.WriteString(render.Heading(2, "Where to Start"))
		names := make([]string, 0, 6)
		for i, topic := range t.catalog.Topics {
			if i == 6 {
				break
			}
			names = append(names, "**"+topic.Name+"**")
		}
		b.WriteString(render.Numbered(names...))
		b.WriteString("\n")
	}

	b.WriteString(render.Heading(2, "How to Practice"))
	b.WriteString(render.Bullets(t.catalog.Methods["vocabulary"]...))
	b.WriteString("\nWould you like vocabulary for a specific topic such as travel, food or work?")
	return b.String()
}

func (t *Tutor) grammar(s slot.Values, st *session.State) string {
	p := t.profile(st)
	var b strings.Builder

	b.WriteString(render.Heading(1, fmt.Sprintf("%s Grammar for %s Learners", p.Target, render.Title(p.Level))))
	if lang, ok := t.catalog.Language(p.Target); ok && len(lang.Features) > 0 {
		fmt.Fprintf(&b, "%s is a %s language. Its defining features are %s.\n\n",
			lang.Name, lang.Family, strings.ToLower(strings.Join(lang.Features, ", ")))
	}

	b.WriteString(render.Heading(2, "Concepts at Your Level"))
	b.WriteString(render.Numbered(t.catalog.GrammarFor(p.Target, p.Level)...))
	b.WriteString("\n")

	b.WriteString(render.Heading(2, "Practice Methods"))
	b.WriteString(render.Bullets(t.catalog.Methods["grammar"]...))
	b.WriteString("\nPick a concept and I'll walk you through it with examples.")
	return b.String()
}

func (t *Tutor) conversation(s slot.Values, st *session.State) string {
	p := t.profile(st)
	topic := s.Or("topic", "Greetings and Introductions")
	var b strings.Builder

	b.WriteString(render.Heading(1, fmt.Sprintf("%s Conversation Practice", p.Target)))
	fmt.Fprintf(&b, "Let's practice a conversation about **%s**. I'll start, and you reply in %s.\n\n", strings.ToLower(topic), p.Target)

	if hello, ok := t.catalog.Translate(p.Target, "Hello"); ok {
		howAreYou, _ := t.catalog.Translate(p.Target, "How are you?")
		fmt.Fprintf(&b, "> **Tutor:** %s %s\n\n", hello, howAreYou)
	} else {
		fmt.Fprintf(&b, "> **Tutor:** (greeting in %s) How are you today?\n\n", p.Target)
	}

	b.WriteString(render.Heading(2, "Tips"))
	b.WriteString(render.Bullets(t.catalog.Methods["speaking"]...))
	b.WriteString("\nReply when you're ready. Mistakes are part of the practice.")
	return b.String()
}

func (t *Tutor) translation(s slot.Values, st *session.State) string {
	p := t.profile(st)
	text, ok := s.Get("text")
	if !ok {
		var b strings.Builder
		b.WriteString(render.Heading(1, p.Target+" Translation"))
		b.WriteString("Tell me what you'd like translated. For example:\n\n")
		b.WriteString(render.Bullets(
			fmt.Sprintf(`"How do you say 'hello' in %s?"`, p.Target),
			fmt.Sprintf(`"Translate 'I would like to order food' to %s"`, p.Target),
			fmt.Sprintf(`"What does 'thank you' mean in %s?"`, p.Target),
		))
		return b.String()
	}

	var b strings.Builder
	if !isEnglish(text) {
		b.WriteString(render.Heading(1, fmt.Sprintf("Translation: %s to %s", p.Target, p.Native)))
		fmt.Fprintf(&b, "**%s**: \"%s\"\n\n", p.Target, text)
		if english, found := t.reverse(p.Target, text); found {
			fmt.Fprintf(&b, "**%s**: \"%s\"\n\n", p.Native, english)
		} else {
			fmt.Fprintf(&b, "I don't have \"%s\" in my phrase list yet. Break it into words and I'll go through them one by one.\n\n", text)
		}
		return b.String()
	}

	b.WriteString(render.Heading(1, "Translation: English to "+p.Target))
	fmt.Fprintf(&b, "**English**: \"%s\"\n\n", text)
	if native, found := t.catalog.Translate(p.Target, text); found {
		fmt.Fprintf(&b, "**%s**: \"%s\"\n\n", p.Target, native)
		b.WriteString(render.Heading(2, "Usage Notes"))
		b.WriteString(render.Bullets(
			"Works in everyday situations",
			"Pair it with a greeting for a politer tone",
		))
	} else {
		fmt.Fprintf(&b, "\"%s\" isn't in my %s phrase list. Try a shorter phrase, or ask for vocabulary on the topic.\n", text, p.Target)
	}
	return b.String()
}

func (t *Tutor) reverse(lang, native string) (string, bool) {
	for _, ph := range t.catalog.Phrases[lang] {
		if strings.EqualFold(ph.Native, native) || strings.HasPrefix(ph.Native, native+" ") {
			return ph.English, true
		}
	}
	return "", false
}

func (t *Tutor) pronunciation(s slot.Values, st *session.State) string {
	p := t.profile(st)
	var b strings.Builder

	word, ok := s.Get("pronounce")
	if !ok {
		b.WriteString(render.Heading(1, p.Target+" Pronunciation Guide"))
		b.WriteString("Which word or phrase should we work on? Try:\n\n")
		b.WriteString(render.Bullets(
			fmt.Sprintf(`"How do you pronounce 'hello' in %s?"`, p.Target),
			fmt.Sprintf(`"Help me pronounce this %s phrase: ..."`, p.Target),
		))
		return b.String()
	}

	b.WriteString(render.Heading(1, "Pronunciation Guide: "+word))
	if native, found := t.catalog.Translate(p.Target, word); found {
		fmt.Fprintf(&b, "In %s this is **%s**.\n\n", p.Target, native)
	}
	b.WriteString(render.Heading(2, "Breaking It Down"))
	b.WriteString(render.Numbered(
		"Split the phrase into syllables and say each slowly",
		"Find the stressed syllable and exaggerate it",
		"Listen to a native speaker and shadow them",
		"Record yourself and compare",
	))
	if lang, ok := t.catalog.Language(p.Target); ok && len(lang.Features) > 0 {
		fmt.Fprintf(&b, "\nWatch out for: %s.\n", strings.ToLower(strings.Join(lang.Features, ", ")))
	}
	return b.String()
}

func (t *Tutor) correction(s slot.Values, st *session.State) string {
	p := t.profile(st)
	var b strings.Builder

	text, ok := s.Get("correct")
	if !ok {
		b.WriteString(render.Heading(1, p.Target+" Writing Feedback"))
		b.WriteString("Paste the sentence you'd like checked, for example:\n\n")
		b.WriteString(render.Bullets(`"Is this correct: ..."`, `"Check my sentence: ..."`))
		return b.String()
	}

	b.WriteString(render.Heading(1, p.Target+" Writing Feedback"))
	fmt.Fprintf(&b, "**Your text**: \"%s\"\n\n", text)
	b.WriteString(render.Heading(2, "Checklist"))
	b.WriteString(render.Bullets(
		"Verb forms agree with their subjects",
		"Nouns, articles and adjectives agree in gender and number",
		"Word order follows "+p.Target+" conventions",
		"Accents and special characters are in place",
	))
	if focus := t.catalog.GrammarFor(p.Target, p.Level); len(focus) >= 2 {
		fmt.Fprintf(&b, "\nFocus areas for %s learners: %s.\n", p.Level, strings.Join(focus[:2], ", "))
	}
	return b.String()
}

func (t *Tutor) resources(s slot.Values, st *session.State) string {
	p := t.profile(st)
	var b strings.Builder

	b.WriteString(render.Heading(1, p.Target+" Learning Resources"))
	rows := make([][]string, len(t.catalog.Resources))
	for i, g := range t.catalog.Resources {
		rows[i] = []string{g.Name, strings.Join(g.Items, ", ")}
	}
	b.WriteString(render.Table([]string{"Kind", "Options"}, rows))
	b.WriteString("\n")
	b.WriteString(render.Heading(2, "Study Plan for "+render.Title(p.Level)+"s"))
	b.WriteString(render.Bullets(
		"Fifteen minutes of vocabulary review every day",
		"One grammar concept a week",
		"A conversation exchange at least once a week",
	))
	return b.String()
}

func (t *Tutor) comparison(s slot.Values, st *session.State) string {
	p := t.profile(st)
	pair, ok := s.Get("compare")
	if !ok {
		pair = p.Target + ",English"
	}
	names := strings.SplitN(pair, ",", 2)

	var b strings.Builder
	b.WriteString(render.Heading(1, fmt.Sprintf("%s vs. %s", names[0], names[1])))

	a, ok := t.catalog.Language(names[0])
	if !ok {
		a = Language{Name: names[0]}
	}
	c, ok := t.catalog.Language(names[1])
	if !ok {
		c = Language{Name: names[1]}
	}
	if names[1] == "English" {
		c = Language{Name: "English", Family: "Germanic", Script: "Latin", Speakers: "1.5 billion"}
	}
	row := func(field, x, y string) []string {
		if x == "" {
			x = "-"
		}
		if y == "" {
			y = "-"
		}
		return []string{field, x, y}
	}
	b.WriteString(render.Table([]string{"", a.Name, c.Name}, [][]string{
		row("Family", a.Family, c.Family),
		row("Script", a.Script, c.Script),
		row("Speakers", a.Speakers, c.Speakers),
		row("Difficulty", a.Difficulty, c.Difficulty),
	}))
	if a.Family != "" && a.Family == c.Family {
		fmt.Fprintf(&b, "\nBoth are %s languages, so much of what you learn in one carries over.\n", a.Family)
	}
	return b.String()
}

func (t *Tutor) cultural(s slot.Values, st *session.State) string {
	p := t.profile(st)
	var b strings.Builder

	if aspect, ok := s.Get("aspect"); ok {
		b.WriteString(render.Heading(1, fmt.Sprintf("%s Culture: %s", p.Target, render.Title(aspect))))
		fmt.Fprintf(&b, "How %s shapes everyday %s.\n\n", aspect, p.Target)
	} else {
		b.WriteString(render.Heading(1, p.Target+" Cultural Insights"))
	}
	if lang, ok := t.catalog.Language(p.Target); ok && len(lang.Regions) > 0 {
		fmt.Fprintf(&b, "%s is spoken in %s.\n\n", lang.Name, strings.Join(lang.Regions, ", "))
	}
	b.WriteString(render.Heading(2, "Cultural Nuances in Communication"))
	b.WriteString(render.Bullets(
		"Formality levels and when to use them",
		"Non-verbal communication",
		"Topics to avoid with strangers",
		"Humour and its context",
	))
	return b.String()
}

func (t *Tutor) general(s slot.Values, st *session.State) string {
	p := t.profile(st)
	var b strings.Builder

	b.WriteString(render.Heading(1, "Learning "+p.Target))
	if lang, ok := t.catalog.Language(p.Target); ok && lang.Speakers != "" {
		fmt.Fprintf(&b, "%s (%s family, %s script) has about %s speakers. Difficulty for English speakers: %s.\n\n",
			lang.Name, lang.Family, lang.Script, lang.Speakers, lang.Difficulty)
	}
	fmt.Fprintf(&b, "You're at the **%s** level with a focus on **%s**. I can help with:\n\n", p.Level, p.Goal)
	b.WriteString(render.Bullets(
		"Vocabulary and phrases",
		"Grammar explanations",
		"Conversation practice",
		"Translation and pronunciation",
		"Feedback on your writing",
	))
	return b.String()
}

func (t *Tutor) suggest(category string, _ slot.Values, st *session.State) []string {
	lang := t.profile(st).Target
	var out []string
	switch category {
	case Vocabulary:
		out = []string{"Common " + lang + " phrases for traveling", lang + " vocabulary for food and dining", "Essential " + lang + " verbs for beginners"}
	case Grammar:
		out = []string{"Explain " + lang + " present tense conjugation", "How do articles work in " + lang + "?", lang + " sentence structure rules"}
	case Conversation:
		out = []string{"Let's practice a " + lang + " conversation about hobbies", "How do I introduce myself in " + lang + "?", "Common " + lang + " expressions for shopping"}
	case Translation:
		out = []string{`How do you say "I would like to order food" in ` + lang + "?", `Translate "Where is the bathroom?" to ` + lang, `What does "thank you" mean in ` + lang + "?"}
	case Pronunciation:
		out = []string{`How do you pronounce "hello" in ` + lang + "?", lang + " pronunciation tips for beginners", "What are the hardest sounds in " + lang + "?"}
	case Correction:
		out = []string{"Can you correct my " + lang + " sentence?", "Check my " + lang + " grammar in this paragraph", "How can I improve my " + lang + " writing?"}
	case Resources:
		out = []string{"Best apps for learning " + lang, lang + " learning resources for beginners", "How to practice " + lang + " every day"}
	case Comparison:
		out = []string{"How does " + lang + " compare to English?", "Is " + lang + " harder than Spanish?", "What makes " + lang + " unique?"}
	case Cultural:
		out = []string{lang + " cultural customs I should know", "How do people greet each other in " + lang + "-speaking countries?", lang + " idioms and their meanings"}
	}

	// Pad from the general list, rotating with the response count.
	general := t.catalog.GeneralSuggestions
	for i := 0; len(out) < 3 && i < len(general); i++ {
		s := strings.ReplaceAll(general[(st.Counters["responses"]+i)%len(general)], "{lang}", lang)
		out = append(out, s)
	}
	return out[:min(3, len(out))]
}

package research

import (
	"fmt"
	"strings"

	"github.com/sant0-9/companion/internal/render"
	"github.com/sant0-9/companion/internal/session"
	"github.com/sant0-9/companion/internal/slot"
)

func (r *Research) engine() *render.Engine {
	return render.NewEngine(r.general).
		Register(ResearchQuestion, r.researchQuestion).
		Register(Thesis, r.thesis).
		Register(LiteratureSearch, r.literatureSearch).
		Register(Paraphrase, r.paraphrase).
		Register(Citation, r.citation).
		Register(LiteratureReview, r.literatureReview).
		Register(MethodologyHelp, r.methodology).
		Register(PaperStructure, r.paperStructure)
}

func lastUserText(st *session.State) string {
	if t, ok := st.Last(session.RoleUser); ok {
		return t.Content
	}
	return ""
}

func toolHint(name, id string) string {
	return fmt.Sprintf("\n\nFor a deeper walkthrough, run the **%s** tool (`%s`).", name, id)
}

func (r *Research) researchQuestion(s slot.Values, _ *session.State) string {
	topic := s.Or("topic", "your topic")
	var b strings.Builder

	b.WriteString(render.Heading(1, "Developing a Research Question"))
	if s.Has("topic") {
		fmt.Fprintf(&b, "Let's turn **%s** into something you can actually study.\n\n", topic)
	}

	b.WriteString(render.Heading(2, "Question Types"))
	b.WriteString(render.Table([]string{"Type", "Template"}, [][]string{
		{"Descriptive", fmt.Sprintf("What are the characteristics of %s in [population]?", topic)},
		{"Comparative", fmt.Sprintf("How does %s differ between [group A] and [group B]?", topic)},
		{"Relationship", fmt.Sprintf("What is the relationship between %s and [variable]?", topic)},
		{"Causal", fmt.Sprintf("To what extent does [factor] affect %s?", topic)},
	}))
	b.WriteString("\n")

	b.WriteString(render.Heading(2, "Narrowing It Down"))
	b.WriteString(render.Numbered(
		"Pick one population, setting or time period",
		"Name the variables or concepts you will examine",
		"Check that data or sources exist to answer it",
		"Make sure the answer is not a simple yes or no",
	))
	b.WriteString("\n")

	b.WriteString(render.Heading(2, "Checking Quality (FINER)"))
	b.WriteString(render.Bullets(
		"**Feasible**: answerable with your time, skills and resources",
		"**Interesting**: matters to you and your field",
		"**Novel**: adds something to what is already known",
		"**Ethical**: can be studied without undue harm",
		"**Relevant**: informs theory, practice or policy",
	))
	b.WriteString(toolHint("Research Question Generator", "research-question"))
	return b.String()
}

func (r *Research) thesis(s slot.Values, _ *session.State) string {
	topic := s.Or("topic", "[topic]")
	var b strings.Builder

	b.WriteString(render.Heading(1, "Crafting a Thesis Statement"))
	b.WriteString("A strong thesis is specific, arguable and points to the evidence you will use.\n\n")

	b.WriteString(render.Heading(2, "Templates"))
	b.WriteString(render.Bullets(
		fmt.Sprintf("**Argumentative**: Although [counterpoint], %s [claim] because [reason 1] and [reason 2].", topic),
		fmt.Sprintf("**Analytical**: An analysis of %s reveals [insight], which shows [significance].", topic),
		fmt.Sprintf("**Expository**: %s involves [element 1], [element 2] and [element 3].", render.Title(topic)),
	))
	b.WriteString("\n")

	b.WriteString(render.Heading(2, "Weak vs. Strong"))
	b.WriteString(render.Table([]string{"Weak", "Strong"}, [][]string{
		{"Social media is bad for teenagers.", "Daily use of image-based social media is linked to lower self-esteem in teenage girls, mainly through appearance comparison."},
		{"This paper is about renewable energy.", "Community-owned solar projects gain faster local approval than commercial ones because residents share the returns."},
	}))
	b.WriteString("\n")

	b.WriteString(render.Heading(2, "Common Problems"))
	b.WriteString(render.Bullets(
		"Stating a fact nobody would dispute",
		"Covering more than the paper can support",
		"Announcing the topic instead of taking a position",
	))
	b.WriteString(toolHint("Thesis Statement Helper", "thesis-statement"))
	return b.String()
}

var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "from": true, "into": true,
	"that": true, "this": true, "their": true, "of": true, "in": true, "on": true,
	"a": true, "an": true, "to": true, "my": true, "its": true,
}

// concepts splits a topic into its significant words.
func concepts(topic string) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(topic)) {
		w = strings.Trim(w, ",.;:")
		if w != "" && !stopWords[w] {
			out = append(out, w)
		}
	}
	return out
}

// booleanQuery builds a starter search string for topic.
func booleanQuery(topic string) string {
	words := concepts(topic)
	if len(words) == 0 {
		return ""
	}
	blocks := make([]string, len(words))
	for i, w := range words {
		blocks[i] = w
		if len(w) > 6 {
			blocks[i] = fmt.Sprintf("(%s OR %s*)", w, w[:len(w)-2])
		}
	}
	return fmt.Sprintf(`"%s" OR (%s)`, strings.ToLower(topic), strings.Join(blocks, " AND "))
}

func (r *Research) literatureSearch(s slot.Values, _ *session.State) string {
	var b strings.Builder
	b.WriteString(render.Heading(1, "Planning a Literature Search"))

	if t, ok := s.Get("topic"); ok {
		b.WriteString(render.Heading(2, "Starting Keywords for "+t))
		b.WriteString(render.Bullets(concepts(t)...))
		if q := booleanQuery(t); q != "" {
			b.WriteString("\nTry this as a first query and refine from the results:\n\n")
			b.WriteString("```\n" + q + "\n```\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(render.Heading(2, "Steps"))
	b.WriteString(render.Numbered(
		"Split your question into two or three core concepts",
		"List synonyms, related terms and spelling variants for each",
		"Combine synonyms with OR and concepts with AND",
		"Use quotes for phrases and * for word endings",
		"Set inclusion and exclusion criteria before screening",
		"Record every database, query and date you search",
	))
	b.WriteString("\n")

	b.WriteString(render.Heading(2, "Databases by Discipline"))
	b.WriteString(render.Table([]string{"Discipline", "Databases"}, [][]string{
		{"Health and medicine", "PubMed, CINAHL, Embase, Cochrane Library"},
		{"Psychology", "PsycINFO, PsycArticles"},
		{"Education", "ERIC, Education Source"},
		{"Social sciences", "Scopus, Web of Science, JSTOR"},
		{"Engineering and computing", "IEEE Xplore, ACM Digital Library"},
		{"Multidisciplinary", "Google Scholar, Scopus, Web of Science"},
	}))
	b.WriteString(toolHint("Literature Search Planner", "literature-search"))
	return b.String()
}

func (r *Research) paraphrase(_ slot.Values, _ *session.State) string {
	var b strings.Builder
	b.WriteString(render.Heading(1, "Paraphrasing in Academic Writing"))
	b.WriteString(render.Table([]string{"Technique", "What it does", "Cite it?"}, [][]string{
		{"Quoting", "Reproduces the exact words in quotation marks", "Yes, with page number"},
		{"Paraphrasing", "Restates one idea in your own words and structure", "Yes"},
		{"Summarizing", "Condenses the main points of a longer passage", "Yes"},
	}))
	b.WriteString("\n")

	b.WriteString(render.Heading(2, "Steps"))
	b.WriteString(render.Numbered(
		"Read the passage until you can explain it without looking",
		"Put the source away and write the idea from memory",
		"Change the structure, not just individual words",
		"Compare with the original for accidental copying",
		"Add the citation",
	))
	b.WriteString("\n")

	b.WriteString(render.Heading(2, "Common Mistakes"))
	b.WriteString(render.Bullets(
		"Swapping synonyms while keeping the original sentence shape",
		"Changing the meaning or strength of the original claim",
		"Leaving out the citation because the words are your own",
	))
	b.WriteString(toolHint("Academic Paraphraser", "paraphraser"))
	return b.String()
}

func caseLabel(c string) string {
	c = strings.ReplaceAll(c, ".", ": ")
	return render.Title(strings.ReplaceAll(c, "_", " "))
}

func (r *Research) citation(s slot.Values, _ *session.State) string {
	var b strings.Builder
	style, ok := r.catalog.Citation(s.Or("style", ""))
	if !ok {
		b.WriteString(render.Heading(1, "Citation Styles"))
		var rows [][]string
		for _, c := range r.catalog.Citations {
			rows = append(rows, []string{c.Name, c.Version, c.Use})
		}
		b.WriteString(render.Table([]string{"Style", "Edition", "Common use"}, rows))
		b.WriteString("\nAsk about a specific style, such as \"How do I cite a book in MLA?\", for examples.")
		return b.String()
	}

	b.WriteString(render.Heading(1, "Citing in "+style.Name))
	fmt.Fprintf(&b, "**Edition:** %s\n\n**Common use:** %s\n\n", style.Version, style.Use)
	if style.Notes != "" {
		b.WriteString(style.Notes + "\n\n")
	}

	b.WriteString(render.Heading(2, "In-Text Citations"))
	for _, ex := range style.InText {
		b.WriteString(render.Bullets(fmt.Sprintf("**%s**: %s", caseLabel(ex.Case), ex.Example)))
	}
	b.WriteString("\n")

	b.WriteString(render.Heading(2, "Reference List"))
	for _, ref := range style.References {
		b.WriteString(render.Heading(3, ref.Type))
		fmt.Fprintf(&b, "Format: %s\n\nExample: %s\n\n", ref.Format, ref.Example)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *Research) literatureReview(s slot.Values, st *session.State) string {
	var b strings.Builder
	ids := mentioned(lastUserText(st), reviewOrder, reviewWords)

	switch {
	case len(ids) >= 2:
		b.WriteString(render.Heading(1, "Comparing Review Types"))
		var rows [][]string
		for _, id := range ids {
			if rv, ok := r.catalog.Review(id); ok {
				rows = append(rows, []string{rv.Name, rv.Purpose, rv.Method})
			}
		}
		b.WriteString(render.Table([]string{"Type", "Purpose", "Method"}, rows))
	case len(ids) == 1:
		rv, _ := r.catalog.Review(ids[0])
		b.WriteString(render.Heading(1, rv.Name))
		b.WriteString(rv.Description + ".\n\n")
		fmt.Fprintf(&b, "**Purpose:** %s\n\n**Method:** %s\n\n", rv.Purpose, rv.Method)
		b.WriteString(render.Heading(2, "Strengths"))
		b.WriteString(render.Bullets(rv.Strengths...))
		b.WriteString("\n")
		b.WriteString(render.Heading(2, "Limitations"))
		b.WriteString(render.Bullets(rv.Limitations...))
		b.WriteString("\n")
		b.WriteString(render.Heading(2, "Example Topics"))
		b.WriteString(render.Bullets(rv.Topics...))
	default:
		b.WriteString(render.Heading(1, "Literature Reviews"))
		var rows [][]string
		for _, rv := range r.catalog.Reviews {
			rows = append(rows, []string{rv.Name, rv.Purpose})
		}
		b.WriteString(render.Table([]string{"Type", "Purpose"}, rows))
	}

	if t, ok := s.Get("topic"); ok {
		b.WriteString("\n")
		b.WriteString(render.Heading(2, "Structuring a Review on "+t))
		b.WriteString(render.Numbered(
			"**Introduction**: scope, why "+t+" matters and how you searched",
			"**Thematic sections**: group studies by theme, method or chronology",
			"**Critical synthesis**: where studies agree, conflict or fall short",
			"**Gaps**: what remains unanswered about "+t,
			"**Conclusion**: what the field knows and where it should go next",
		))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *Research) methodology(s slot.Values, st *session.State) string {
	var b strings.Builder
	text := lastUserText(st)
	ids := mentioned(text, methodologyOrder, methodologyWords)

	switch {
	case len(ids) >= 2:
		b.WriteString(render.Heading(1, "Comparing Research Approaches"))
		var rows [][]string
		for _, id := range ids {
			if m, ok := r.catalog.Methodology(id); ok {
				var designs []string
				for _, d := range m.Types {
					designs = append(designs, d.Name)
				}
				rows = append(rows, []string{m.Name, m.Description, strings.Join(designs, ", ")})
			}
		}
		b.WriteString(render.Table([]string{"Approach", "Focus", "Common designs"}, rows))
	case len(ids) == 1:
		m, _ := r.catalog.Methodology(ids[0])
		b.WriteString(render.Heading(1, m.Name))
		b.WriteString(m.Description + ".\n\n")
		for _, d := range m.Types {
			b.WriteString(render.Heading(2, d.Name))
			b.WriteString(d.Description + ".\n\n")
			b.WriteString("**Strengths:** " + strings.Join(d.Strengths, "; ") + "\n\n")
			b.WriteString("**Limitations:** " + strings.Join(d.Limitations, "; ") + "\n\n")
		}
	default:
		b.WriteString(render.Heading(1, "Research Methodologies"))
		for _, m := range r.catalog.Methodologies {
			b.WriteString(render.Bullets(fmt.Sprintf("**%s**: %s", m.Name, m.Description)))
		}
	}

	if limitationsWord.MatchString(text) {
		b.WriteString("\n")
		title := "Addressing Limitations"
		if t, ok := s.Get("topic"); ok {
			title += " in a Study on " + t
		}
		b.WriteString(render.Heading(2, title))
		b.WriteString(render.Bullets(
			"**Sample**: size, selection and how far results generalize",
			"**Measurement**: self-report bias and instrument validity",
			"**Design**: what the design cannot show, such as causation",
			"**Context**: time, place and setting that bound the findings",
		))
		b.WriteString("\nName each limitation, explain its likely effect and say how you reduced it.")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *Research) paperStructure(s slot.Values, st *session.State) string {
	structure, ok := r.catalog.Structure(s.Or("paper", "empirical"))
	if !ok {
		structure = r.catalog.Structures[0]
	}
	var b strings.Builder

	text := lastUserText(st)
	for _, sec := range structure.Sections {
		for _, part := range strings.Split(sec.Name, "/") {
			if mentionsWord(text, part) {
				b.WriteString(render.Heading(1, "Writing the "+sec.Name+" Section"))
				b.WriteString(sec.Description + ".\n\n")
				b.WriteString(render.Bullets(sec.Guidelines...))
				return strings.TrimRight(b.String(), "\n")
			}
		}
	}

	b.WriteString(render.Heading(1, "Structure of a "+structure.Name))
	b.WriteString(structure.Description + ".\n\n")
	for i, sec := range structure.Sections {
		b.WriteString(render.Heading(2, fmt.Sprintf("%d. %s", i+1, sec.Name)))
		b.WriteString(sec.Description + ".\n\n")
		b.WriteString(render.Bullets(sec.Guidelines...))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *Research) general(_ slot.Values, _ *session.State) string {
	var b strings.Builder
	b.WriteString(render.Heading(1, "Academic Research Assistant"))
	b.WriteString("I can help at every stage, from the first question to the final reference list.\n\n")
	b.WriteString(render.Heading(2, "Ask Me About"))
	b.WriteString(render.Bullets(
		"Research questions and thesis statements",
		"Literature searches and reviews",
		"Methodology and study limitations",
		"Paper structure, section by section",
		"Citations in APA, MLA, Chicago, Harvard or IEEE",
	))
	b.WriteString("\n")
	b.WriteString(render.Heading(2, "Tools"))
	for _, t := range r.Tools() {
		b.WriteString(render.Bullets(fmt.Sprintf("**%s** (`%s`): %s", t.Name, t.ID, t.Description)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *Research) suggest(_ string, _ slot.Values, st *session.State) []string {
	n := len(r.catalog.Starters)
	if n == 0 {
		return nil
	}
	start := st.Counters["responses"]
	out := make([]string, 0, 3)
	for i := 0; i < 3 && i < n; i++ {
		out = append(out, r.catalog.Starters[(start+i)%n])
	}
	return out
}

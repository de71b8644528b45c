package research

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/companion/internal/intent"
	"github.com/sant0-9/companion/internal/kv"
	"github.com/sant0-9/companion/internal/mode"
	"github.com/sant0-9/companion/internal/slot"
)

func newResearch(t *testing.T) *Research {
	t.Helper()
	r := New(kv.NewMemory(), 50)
	require.NoError(t, r.Initialize(context.Background(), nil))
	return r
}

func ask(t *testing.T, r *Research, text string) *mode.Response {
	t.Helper()
	resp, err := r.ProcessInput(context.Background(), text, nil)
	require.NoError(t, err)
	return resp
}

func TestCatalog(t *testing.T) {
	c := defaultCatalog()
	assert.Len(t, c.Starters, 10)

	for _, id := range []string{"quantitative", "qualitative", "mixed", "action"} {
		_, ok := c.Methodology(id)
		assert.True(t, ok, id)
	}
	for _, id := range []string{"apa", "mla", "chicago", "harvard", "ieee"} {
		s, ok := c.Citation(id)
		require.True(t, ok, id)
		assert.NotEmpty(t, s.References, id)
	}
	s, ok := c.Structure("empirical")
	require.True(t, ok)
	assert.Equal(t, "Title", s.Sections[0].Name)

	_, ok = c.Review("rapid")
	assert.True(t, ok)

	_, err := LoadCatalog([]byte("starters: [hi]"))
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	cl := intent.New(rules()...)
	tests := []struct {
		input string
		want  string
	}{
		{"Help me develop a research question on climate change adaptation.", ResearchQuestion},
		{"I need to structure my literature review on machine learning ethics.", LiteratureReview},
		{"How should I format citations in APA style?", Citation},
		{"Can you explain the difference between qualitative and quantitative methods?", MethodologyHelp},
		{"What are some potential limitations for my study on online learning?", MethodologyHelp},
		{"Help me brainstorm keywords for my research on sustainable agriculture.", LiteratureSearch},
		{"What's the difference between a systematic and narrative literature review?", LiteratureReview},
		{"I need help organizing the discussion section of my paper.", PaperStructure},
		{"Can you explain the concept of statistical significance in simple terms?", MethodologyHelp},
		{"What are the key components of a strong academic abstract?", PaperStructure},
		{"Is my thesis statement too broad?", Thesis},
		{"How do I paraphrase without plagiarizing?", Paraphrase},
		{"Hello there", intent.General},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, cl.Classify(tt.input))
		})
	}
}

func TestToolPromptsClassify(t *testing.T) {
	r := New(kv.NewMemory(), 50)
	cl := intent.New(rules()...)
	want := map[string]string{
		"research-question": ResearchQuestion,
		"thesis-statement":  Thesis,
		"literature-search": LiteratureSearch,
		"paraphraser":       Paraphrase,
	}
	for id, category := range want {
		t.Run(id, func(t *testing.T) {
			p, ok := r.ToolPrompt(id, "")
			require.True(t, ok)
			assert.Equal(t, category, cl.Classify(p))
		})
	}
}

func TestExtractors(t *testing.T) {
	tests := []struct {
		input string
		want  slot.Values
	}{
		{"Help me develop a research question on climate change adaptation.", slot.Values{"topic": "climate change adaptation"}},
		{"How should I format citations in APA style?", slot.Values{"style": "apa"}},
		{"Compare qualitative and mixed methods research", slot.Values{"methodology": "mixed"}},
		{"What is a systematic review?", slot.Values{"review": "systematic"}},
		{"An outline for a case study about the smallpox vaccine", slot.Values{"paper": "case_study", "topic": "smallpox vaccine"}},
		{"Hello", slot.Values{}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, slot.Run(tt.input, extractors()))
		})
	}
}

func TestBooleanQuery(t *testing.T) {
	assert.Equal(t,
		`"sustainable agriculture" OR ((sustainable OR sustainab*) AND (agriculture OR agricultu*))`,
		booleanQuery("sustainable agriculture"))
	assert.Equal(t, `"the soil" OR (soil)`, booleanQuery("the soil"))
	assert.Empty(t, booleanQuery("the of"))
}

func TestReplies(t *testing.T) {
	tests := []struct {
		input    string
		category string
		contains []string
	}{
		{
			"Help me develop a research question on climate change adaptation.", ResearchQuestion,
			[]string{"# Developing a Research Question", "How does climate change adaptation differ", "**Feasible**", "`research-question`"},
		},
		{
			"How should I format citations in APA style?", Citation,
			[]string{"# Citing in APA (American Psychological Association)", "## In-Text Citations", "### Journal Article"},
		},
		{
			"How do I cite a book?", Citation,
			[]string{"# Citation Styles", "Harvard (author-date)", "IEEE"},
		},
		{
			"What's the difference between a systematic and narrative literature review?", LiteratureReview,
			[]string{"# Comparing Review Types", "| Systematic Review |", "| Narrative Review |"},
		},
		{
			"I need to structure my literature review on machine learning ethics.", LiteratureReview,
			[]string{"# Literature Reviews", "## Structuring a Review on machine learning ethics"},
		},
		{
			"Can you explain the difference between qualitative and quantitative methods?", MethodologyHelp,
			[]string{"# Comparing Research Approaches", "| Quantitative Research |", "| Qualitative Research |"},
		},
		{
			"What are some potential limitations for my study on online learning?", MethodologyHelp,
			[]string{"# Research Methodologies", "## Addressing Limitations in a Study on online learning"},
		},
		{
			"Help me brainstorm keywords for my research on sustainable agriculture.", LiteratureSearch,
			[]string{"## Starting Keywords for sustainable agriculture", "(sustainable OR sustainab*)", "PubMed"},
		},
		{
			"I need help organizing the discussion section of my paper.", PaperStructure,
			[]string{"# Writing the Discussion Section"},
		},
		{
			"What is the typical structure of a case study paper?", PaperStructure,
			[]string{"# Structure of a Case Study", "## 6. Case Description"},
		},
		{
			"Hello there", intent.General,
			[]string{"# Academic Research Assistant", "**Academic Paraphraser** (`paraphraser`)"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			resp := ask(t, newResearch(t), tt.input)
			assert.Equal(t, tt.category, resp.Category)
			for _, want := range tt.contains {
				assert.Contains(t, resp.Text, want)
			}
		})
	}
}

func TestSuggestionsRotateStarters(t *testing.T) {
	r := newResearch(t)
	starters := r.Starters()

	first := ask(t, r, "Hello")
	assert.Equal(t, starters[0:3], first.Suggestions)

	second := ask(t, r, "Hello again")
	assert.Equal(t, starters[1:4], second.Suggestions)
}

func TestTools(t *testing.T) {
	r := newResearch(t)
	tools := r.Tools()
	require.Len(t, tools, 4)
	for _, tool := range tools {
		p, ok := r.ToolPrompt(tool.ID, "")
		require.True(t, ok, tool.ID)
		assert.True(t, strings.HasPrefix(p, "I'd like to use the "+tool.Name), tool.ID)
	}

	_, ok := r.ToolPrompt("summarizer", "")
	assert.False(t, ok)
}

func TestRunToolThroughRegistry(t *testing.T) {
	ctx := context.Background()
	reg := mode.NewRegistry()
	r := New(kv.NewMemory(), 50)
	require.NoError(t, reg.Register(r, nil))

	resp, err := reg.RunTool(ctx, ID, "paraphraser", "")
	require.NoError(t, err)
	assert.Equal(t, Paraphrase, resp.Category)
	assert.Contains(t, resp.Text, "# Paraphrasing in Academic Writing")

	require.Len(t, r.History(), 2)
	assert.True(t, strings.HasPrefix(r.History()[0].Content, "I'd like to use the Academic Paraphraser"))

	_, err = reg.RunTool(ctx, ID, "paraphraser", "soil erosion")
	require.NoError(t, err)
	require.Len(t, r.History(), 4)
	assert.True(t, strings.HasSuffix(r.History()[2].Content, "My topic: soil erosion"))

	_, err = reg.RunTool(ctx, ID, "nope", "")
	assert.ErrorIs(t, err, mode.ErrUnknownTool)
}

package tutor

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

type Language struct {
	Name       string   `yaml:"name"`
	Family     string   `yaml:"family"`
	Script     string   `yaml:"script"`
	Speakers   string   `yaml:"speakers"`
	Regions    []string `yaml:"regions"`
	Difficulty string   `yaml:"difficulty"`
	Features   []string `yaml:"features"`
}

type Phrase struct {
	English string `yaml:"english"`
	Native  string `yaml:"native"`
}

type Topic struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

type ResourceGroup struct {
	Name  string   `yaml:"name"`
	Items []string `yaml:"items"`
}

// Catalog is the static teaching material bundled with the tutor.
type Catalog struct {
	Languages          []Language                     `yaml:"languages"`
	Phrases            map[string][]Phrase            `yaml:"phrases"`
	Grammar            map[string]map[string][]string `yaml:"grammar"`
	Topics             []Topic                        `yaml:"topics"`
	Methods            map[string][]string            `yaml:"methods"`
	Greetings          []string                       `yaml:"greetings"`
	Resources          []ResourceGroup                `yaml:"resources"`
	Aspects            []string                       `yaml:"aspects"`
	GeneralSuggestions []string                       `yaml:"general_suggestions"`
}

func LoadCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse tutor catalog: %w", err)
	}
	if len(c.Languages) == 0 {
		return nil, fmt.Errorf("tutor catalog has no languages")
	}
	return &c, nil
}

func defaultCatalog() *Catalog {
	c, err := LoadCatalog(catalogYAML)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) LanguageNames() []string {
	names := make([]string, len(c.Languages))
	for i, l := range c.Languages {
		names[i] = l.Name
	}
	return names
}

// Language looks a language up by name, ignoring case.
func (c *Catalog) Language(name string) (Language, bool) {
	for _, l := range c.Languages {
		if strings.EqualFold(l.Name, name) {
			return l, true
		}
	}
	return Language{}, false
}

// Translate returns the known phrase for english in lang.
func (c *Catalog) Translate(lang, english string) (string, bool) {
	want := strings.TrimRight(strings.ToLower(strings.TrimSpace(english)), "?!.")
	for _, p := range c.Phrases[lang] {
		if strings.TrimRight(strings.ToLower(p.English), "?!.") == want {
			return p.Native, true
		}
	}
	return "", false
}

// GrammarFor returns the concepts for lang at level, falling back to the
// generic list.
func (c *Catalog) GrammarFor(lang, level string) []string {
	if byLevel, ok := c.Grammar[lang]; ok {
		if concepts := byLevel[level]; len(concepts) > 0 {
			return concepts
		}
	}
	return c.Grammar["default"][level]
}

func (c *Catalog) topicTable() ([]string, map[string][]string) {
	order := make([]string, len(c.Topics))
	table := make(map[string][]string, len(c.Topics))
	for i, t := range c.Topics {
		order[i] = t.Name
		table[t.Name] = append([]string{t.Name}, t.Keywords...)
	}
	return order, table
}

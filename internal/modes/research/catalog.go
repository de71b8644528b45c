package research

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

type Design struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Examples    []string `yaml:"examples"`
	Strengths   []string `yaml:"strengths"`
	Limitations []string `yaml:"limitations"`
}

// Methodology is a research approach and the designs that belong to it.
type Methodology struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Types       []Design `yaml:"types"`
}

type Section struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Guidelines  []string `yaml:"guidelines"`
}

// Structure is the section layout of one kind of paper.
type Structure struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Sections    []Section `yaml:"sections"`
}

type CitationExample struct {
	Case    string `yaml:"case"`
	Example string `yaml:"example"`
}

type Reference struct {
	Type    string `yaml:"type"`
	Format  string `yaml:"format"`
	Example string `yaml:"example"`
}

type CitationStyle struct {
	ID         string            `yaml:"id"`
	Name       string            `yaml:"name"`
	Version    string            `yaml:"version"`
	Use        string            `yaml:"use"`
	Notes      string            `yaml:"notes"`
	InText     []CitationExample `yaml:"in_text"`
	References []Reference       `yaml:"references"`
}

type ReviewType struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Purpose     string   `yaml:"purpose"`
	Method      string   `yaml:"method"`
	Strengths   []string `yaml:"strengths"`
	Limitations []string `yaml:"limitations"`
	Topics      []string `yaml:"topics"`
}

type Catalog struct {
	Starters      []string        `yaml:"starters"`
	Methodologies []Methodology   `yaml:"methodologies"`
	Structures    []Structure     `yaml:"structures"`
	Citations     []CitationStyle `yaml:"citations"`
	Reviews       []ReviewType    `yaml:"reviews"`
}

func LoadCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse research catalog: %w", err)
	}
	switch {
	case len(c.Methodologies) == 0:
		return nil, fmt.Errorf("research catalog has no methodologies")
	case len(c.Structures) == 0:
		return nil, fmt.Errorf("research catalog has no paper structures")
	case len(c.Citations) == 0:
		return nil, fmt.Errorf("research catalog has no citation styles")
	case len(c.Reviews) == 0:
		return nil, fmt.Errorf("research catalog has no review types")
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

func (c *Catalog) Methodology(id string) (Methodology, bool) {
	for _, m := range c.Methodologies {
		if m.ID == id {
			return m, true
		}
	}
	return Methodology{}, false
}

func (c *Catalog) Structure(id string) (Structure, bool) {
	for _, s := range c.Structures {
		if s.ID == id {
			return s, true
		}
	}
	return Structure{}, false
}

func (c *Catalog) Citation(id string) (CitationStyle, bool) {
	for _, s := range c.Citations {
		if s.ID == id {
			return s, true
		}
	}
	return CitationStyle{}, false
}

func (c *Catalog) Review(id string) (ReviewType, bool) {
	for _, r := range c.Reviews {
		if r.ID == id {
			return r, true
		}
	}
	return ReviewType{}, false
}

package weather

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Term is one glossary entry.
type Term struct {
	Term    string `yaml:"term"`
	Meaning string `yaml:"meaning"`
}

type Safety struct {
	Hazard string `yaml:"hazard"`
	Advice string `yaml:"advice"`
}

type Catalog struct {
	Greetings []string `yaml:"greetings"`
	Terms     []Term   `yaml:"terms"`
	Phenomena []string `yaml:"phenomena"`
	Safety    []Safety `yaml:"safety"`
	Climate   struct {
		Patterns []string `yaml:"patterns"`
		Trends   []string `yaml:"trends"`
	} `yaml:"climate"`
	Travel struct {
		Packing    []string `yaml:"packing"`
		Activities []string `yaml:"activities"`
	} `yaml:"travel"`
	Suggestions []string `yaml:"suggestions"`
}

func LoadCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse weather catalog: %w", err)
	}
	if len(c.Terms) == 0 {
		return nil, fmt.Errorf("weather catalog has no glossary terms")
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

// TermNames lists glossary terms in catalog order.
func (c *Catalog) TermNames() []string {
	names := make([]string, len(c.Terms))
	for i, t := range c.Terms {
		names[i] = t.Term
	}
	return names
}

func (c *Catalog) Term(name string) (Term, bool) {
	for _, t := range c.Terms {
		if strings.EqualFold(t.Term, name) {
			return t, true
		}
	}
	return Term{}, false
}

func (c *Catalog) SafetyFor(hazard string) (Safety, bool) {
	for _, s := range c.Safety {
		if strings.EqualFold(s.Hazard, hazard) {
			return s, true
		}
	}
	return Safety{}, false
}

package coach

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

type Element struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Questions   []string `yaml:"questions"`
}

type Framework struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Elements    []Element `yaml:"elements"`
}

type Technique struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Examples    []string `yaml:"examples"`
}

// Area is one life area a client can work on.
type Area struct {
	ID             string   `yaml:"id"`
	Name           string   `yaml:"name"`
	Description    string   `yaml:"description"`
	Keywords       []string `yaml:"keywords"`
	Goals          []string `yaml:"goals"`
	Habits         []string `yaml:"habits"`
	Time           string   `yaml:"time"`
	Accountability string   `yaml:"accountability"`
}

// Label is the area id with underscores as spaces, e.g. "personal growth".
func (a Area) Label() string {
	return strings.ReplaceAll(a.ID, "_", " ")
}

type Strategy struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Focus       string   `yaml:"focus"`
	Mindset     string   `yaml:"mindset"`
	Principles  []string `yaml:"principles"`
	Strategies  []string `yaml:"strategies"`
}

// Label is the strategy id with underscores as spaces.
func (s Strategy) Label() string {
	return strings.ReplaceAll(s.ID, "_", " ")
}

type Catalog struct {
	Disclaimer         string               `yaml:"disclaimer"`
	Greetings          []string             `yaml:"greetings"`
	Frameworks         map[string]Framework `yaml:"frameworks"`
	Techniques         map[string]Technique `yaml:"techniques"`
	Areas              []Area               `yaml:"areas"`
	Habits             []Strategy           `yaml:"habits"`
	Obstacles          []Strategy           `yaml:"obstacles"`
	Motivation         []Strategy           `yaml:"motivation"`
	GeneralSuggestions []string             `yaml:"general_suggestions"`
}

func LoadCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse coach catalog: %w", err)
	}
	if len(c.Areas) == 0 {
		return nil, fmt.Errorf("coach catalog has no life areas")
	}
	for _, key := range []string{"smart", "grow"} {
		if _, ok := c.Frameworks[key]; !ok {
			return nil, fmt.Errorf("coach catalog is missing the %s framework", key)
		}
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

func (c *Catalog) Area(id string) (Area, bool) {
	for _, a := range c.Areas {
		if a.ID == id {
			return a, true
		}
	}
	return Area{}, false
}

func (c *Catalog) AreaIDs() []string {
	ids := make([]string, len(c.Areas))
	for i, a := range c.Areas {
		ids[i] = a.ID
	}
	return ids
}

// pick returns the first strategy whose label or name appears in text,
// or the first strategy in the list.
func pick(list []Strategy, text string) Strategy {
	if len(list) == 0 {
		return Strategy{}
	}
	lower := strings.ToLower(text)
	for _, s := range list {
		if strings.Contains(lower, s.Label()) || strings.Contains(lower, strings.ToLower(s.Name)) {
			return s
		}
	}
	return list[0]
}

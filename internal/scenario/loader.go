package scenario

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/imodel/internal/modes"
)

// EnvPath names the environment variable that points at a catalog file.
const EnvPath = "IMODEL_SCENARIOS"

//go:embed catalog.yaml
var embeddedCatalog []byte

// document is the on-disk YAML shape.
type document struct {
	Modes     []string        `yaml:"modes"`
	Scenarios []scenarioEntry `yaml:"scenarios"`
}

type scenarioEntry struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Vignette    string   `yaml:"vignette"`
	Missing     []string `yaml:"missing"`
	Present     []string `yaml:"present"`
	Explanation string   `yaml:"explanation"`
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	c, err := Parse(embeddedCatalog)
	if err != nil {
		return nil, fmt.Errorf("embedded catalog: %w", err)
	}
	return c, nil
}

// LoadFile reads and validates a catalog from path.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Load resolves the catalog source in priority order:
// 1. path (usually the --scenarios flag)
// 2. IMODEL_SCENARIOS environment variable
// 3. the embedded catalog
func Load(path string) (*Catalog, error) {
	if path != "" {
		return LoadFile(path)
	}
	if p := os.Getenv(EnvPath); p != "" {
		return LoadFile(p)
	}
	return Default()
}

// Parse decodes YAML catalog data. A document without a modes list uses
// the reference universe.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	universe := modes.Default()
	if len(doc.Modes) > 0 {
		universe = make(modes.Universe, len(doc.Modes))
		for i, m := range doc.Modes {
			universe[i] = modes.Name(m)
		}
	}

	scenarios := make([]Scenario, len(doc.Scenarios))
	for i, e := range doc.Scenarios {
		scenarios[i] = Scenario{
			ID:           e.ID,
			Title:        e.Title,
			Vignette:     e.Vignette,
			Explanation:  e.Explanation,
			CorrectModes: toSet(e.Missing),
			PresentModes: toSet(e.Present),
		}
	}
	return NewCatalog(universe, scenarios)
}

func toSet(names []string) modes.Set {
	var s modes.Set
	for _, n := range names {
		s = s.Add(modes.Name(n))
	}
	return s
}

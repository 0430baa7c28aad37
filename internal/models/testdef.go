// testdef.go
package models

import (
	"fmt"
	"io/ioutil"

	"gopkg.in/yaml.v3"

	"github.com/Mateusjonees/fundacaodombosco-85-sub003/internal/norms"
)

// ScoringModel selects which calculation and classification branch a
// test uses.
type ScoringModel string

const (
	ModelPercentile     ScoringModel = "PERCENTILE"
	ModelZScore         ScoringModel = "ZSCORE"
	ModelNormativeTable ScoringModel = "NORMATIVE_TABLE"
)

// AgeRange is the inclusive age interval, in whole years, for which a
// test is normed.
type AgeRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Derived describes a subscore computed from two raw inputs before any
// normative lookup, e.g. diferencaBA = sequenciasB - sequenciasA.
type Derived struct {
	Minuend    string `yaml:"minuend"`
	Subtrahend string `yaml:"subtrahend"`
}

// Subscore is one named measurement a test produces.
type Subscore struct {
	Name      string   `yaml:"name"`
	Label     string   `yaml:"label"`
	Direction string   `yaml:"direction,omitempty"`
	Derived   *Derived `yaml:"derived,omitempty"`
}

// TestDefinition describes one instrument of the battery: its identity,
// eligibility range, scoring model, ordered subscores and normative
// tables. Definitions are static reference data loaded at startup.
type TestDefinition struct {
	Code        string                 `yaml:"code"`
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description,omitempty"`
	AgeRange    AgeRange               `yaml:"age_range"`
	Model       ScoringModel           `yaml:"scoring_model"`
	Subscores   []Subscore             `yaml:"subscores"`
	Norms       map[string]*norms.Table `yaml:"norms,omitempty"`
}

// SubscoreByName returns the subscore definition, if present.
func (d *TestDefinition) SubscoreByName(name string) (Subscore, bool) {
	for _, s := range d.Subscores {
		if s.Name == name {
			return s, true
		}
	}
	return Subscore{}, false
}

// Catalog holds every loaded TestDefinition, keyed by code.
type Catalog struct {
	Tests []TestDefinition `yaml:"tests"`

	byCode map[string]*TestDefinition
}

// Get returns the definition for a test code.
func (c *Catalog) Get(code string) (*TestDefinition, bool) {
	def, ok := c.byCode[code]
	return def, ok
}

// LoadCatalog reads and parses the tests.yaml catalog, then validates
// every normative table before the catalog is allowed into service.
// Table defects (overlapping strata, non-monotone scores, uncovered
// ages) are authoring errors and fail the load.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read test catalog: %w", err)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal test catalog YAML: %w", err)
	}

	if err := catalog.Init(); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// Init indexes the catalog and validates it. Exposed separately so
// tests can build catalogs from literals.
func (c *Catalog) Init() error {
	c.byCode = make(map[string]*TestDefinition, len(c.Tests))
	for i := range c.Tests {
		def := &c.Tests[i]
		if def.Code == "" {
			return fmt.Errorf("test %d has no code", i)
		}
		if _, dup := c.byCode[def.Code]; dup {
			return fmt.Errorf("duplicate test code %s", def.Code)
		}
		if err := validateDefinition(def); err != nil {
			return fmt.Errorf("test %s: %w", def.Code, err)
		}
		c.byCode[def.Code] = def
	}
	return nil
}

func validateDefinition(def *TestDefinition) error {
	switch def.Model {
	case ModelPercentile, ModelZScore, ModelNormativeTable:
	default:
		return fmt.Errorf("unknown scoring model %q", def.Model)
	}
	if def.AgeRange.Min > def.AgeRange.Max {
		return fmt.Errorf("inverted age range %d-%d", def.AgeRange.Min, def.AgeRange.Max)
	}
	if len(def.Subscores) == 0 {
		return fmt.Errorf("no subscores defined")
	}

	for _, s := range def.Subscores {
		if s.Derived != nil {
			if _, ok := def.SubscoreByName(s.Derived.Minuend); !ok {
				return fmt.Errorf("subscore %s derives from unknown subscore %s", s.Name, s.Derived.Minuend)
			}
			if _, ok := def.SubscoreByName(s.Derived.Subtrahend); !ok {
				return fmt.Errorf("subscore %s derives from unknown subscore %s", s.Name, s.Derived.Subtrahend)
			}
		}
		if def.Model == ModelZScore && def.Norms[s.Name] != nil {
			return fmt.Errorf("subscore %s: Z-score tests carry no normative tables", s.Name)
		}
	}

	for name, table := range def.Norms {
		sub, ok := def.SubscoreByName(name)
		if !ok {
			return fmt.Errorf("normative table for unknown subscore %s", name)
		}
		dir, err := norms.ParseDirection(sub.Direction)
		if err != nil {
			return fmt.Errorf("subscore %s: %w", name, err)
		}
		if err := table.Validate(def.AgeRange.Min, def.AgeRange.Max, dir); err != nil {
			return fmt.Errorf("subscore %s: %w", name, err)
		}
	}

	if def.Model == ModelNormativeTable {
		for _, s := range def.Subscores {
			if def.Norms[s.Name] == nil {
				return fmt.Errorf("subscore %s: table-normed test is missing its normative table", s.Name)
			}
		}
	}
	return nil
}

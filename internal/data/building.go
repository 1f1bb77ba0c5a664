package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Extent is a closed size interval in world units.
type Extent struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// At returns the point a fraction t of the way through the extent.
func (e Extent) At(t float64) float64 { return e.Min + (e.Max-e.Min)*t }

// BuildingArchetype is one pool entry. Every building carries both
// silhouettes so the renderer can swap level of detail by distance.
type BuildingArchetype struct {
	Name       string `yaml:"name"`
	Detailed   string `yaml:"detailed"`
	Simplified string `yaml:"simplified"`
	Width      Extent `yaml:"width"`
	Depth      Extent `yaml:"depth"`
	Height     Extent `yaml:"height"`
}

type backgroundPools struct {
	Near []BuildingArchetype `yaml:"near"`
	Mid  []BuildingArchetype `yaml:"mid"`
	Far  []BuildingArchetype `yaml:"far"`
}

type buildingListFile struct {
	Ordinary    []BuildingArchetype `yaml:"ordinary"`
	Skyscrapers []BuildingArchetype `yaml:"skyscrapers"`
	Background  backgroundPools     `yaml:"background"`
}

// BuildingTable holds the street-front, skyscraper and skyline pools.
type BuildingTable struct {
	Ordinary    []BuildingArchetype
	Skyscrapers []BuildingArchetype
	Background  [3][]BuildingArchetype // indexed by component.Layer
}

// Count returns the number of archetypes across all pools.
func (t *BuildingTable) Count() int {
	n := len(t.Ordinary) + len(t.Skyscrapers)
	for _, pool := range t.Background {
		n += len(pool)
	}
	return n
}

func (t *BuildingTable) validate() error {
	if len(t.Ordinary) == 0 {
		return fmt.Errorf("ordinary pool is empty")
	}
	if len(t.Skyscrapers) == 0 {
		return fmt.Errorf("skyscraper pool is empty")
	}
	for i, pool := range t.Background {
		if len(pool) == 0 {
			return fmt.Errorf("background layer %d pool is empty", i)
		}
	}
	return nil
}

// LoadBuildingTable loads the building pools from a YAML file.
func LoadBuildingTable(path string) (*BuildingTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read buildings: %w", err)
	}
	var f buildingListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse buildings: %w", err)
	}
	t := &BuildingTable{
		Ordinary:    f.Ordinary,
		Skyscrapers: f.Skyscrapers,
		Background:  [3][]BuildingArchetype{f.Background.Near, f.Background.Mid, f.Background.Far},
	}
	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("buildings %s: %w", path, err)
	}
	return t, nil
}

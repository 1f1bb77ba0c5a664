package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SceneryItem is one weighted entry of the grass-band roll.
type SceneryItem struct {
	Kind       string   `yaml:"kind"` // tree, bush, bench, trash_bin, flower_bed
	Weight     float64  `yaml:"weight"`
	Archetypes []string `yaml:"archetypes"`
}

type sceneryListFile struct {
	Items     []SceneryItem `yaml:"items"`
	GapTrees  []string      `yaml:"gap_trees"`
	TallTrees []string      `yaml:"tall_trees"`
	Lamps     []string      `yaml:"lamps"`
	Clouds    []string      `yaml:"clouds"`
	Cranes    []string      `yaml:"cranes"`
}

// SceneryTable holds the grass-band weights and the small decoration pools.
type SceneryTable struct {
	Items     []SceneryItem
	GapTrees  []string
	TallTrees []string
	Lamps     []string
	Clouds    []string
	Cranes    []string

	totalWeight float64
}

var sceneryKinds = map[string]bool{
	"tree": true, "bush": true, "bench": true, "trash_bin": true, "flower_bed": true,
}

func newSceneryTable(f sceneryListFile) (*SceneryTable, error) {
	t := &SceneryTable{
		Items:     f.Items,
		GapTrees:  f.GapTrees,
		TallTrees: f.TallTrees,
		Lamps:     f.Lamps,
		Clouds:    f.Clouds,
		Cranes:    f.Cranes,
	}
	for _, it := range t.Items {
		if !sceneryKinds[it.Kind] {
			return nil, fmt.Errorf("unknown scenery kind %q", it.Kind)
		}
		if it.Weight < 0 {
			return nil, fmt.Errorf("scenery %q has negative weight", it.Kind)
		}
		if len(it.Archetypes) == 0 {
			return nil, fmt.Errorf("scenery %q has no archetypes", it.Kind)
		}
		t.totalWeight += it.Weight
	}
	if t.totalWeight <= 0 {
		return nil, fmt.Errorf("scenery weights sum to zero")
	}
	for name, pool := range map[string][]string{
		"gap_trees": t.GapTrees, "tall_trees": t.TallTrees, "lamps": t.Lamps,
		"clouds": t.Clouds, "cranes": t.Cranes,
	} {
		if len(pool) == 0 {
			return nil, fmt.Errorf("scenery pool %s is empty", name)
		}
	}
	return t, nil
}

// Pick returns the weighted item selected by roll, a uniform value in [0,1).
func (t *SceneryTable) Pick(roll float64) *SceneryItem {
	target := roll * t.totalWeight
	for i := range t.Items {
		target -= t.Items[i].Weight
		if target < 0 {
			return &t.Items[i]
		}
	}
	return &t.Items[len(t.Items)-1]
}

// Count returns the number of weighted items.
func (t *SceneryTable) Count() int { return len(t.Items) }

// LoadSceneryTable loads scenery weights and pools from a YAML file.
func LoadSceneryTable(path string) (*SceneryTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenery: %w", err)
	}
	var f sceneryListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse scenery: %w", err)
	}
	t, err := newSceneryTable(f)
	if err != nil {
		return nil, fmt.Errorf("scenery %s: %w", path, err)
	}
	return t, nil
}

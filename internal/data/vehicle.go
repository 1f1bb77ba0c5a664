package data

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// VehicleModel is one traffic representation.
type VehicleModel struct {
	Model  string  `yaml:"model"`
	Length float64 `yaml:"length"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type vehicleListFile struct {
	Vehicles []VehicleModel `yaml:"vehicles"`
}

// VehicleCatalog is the pool traffic is drawn from. Procedural is true when
// the enhanced catalogue was unavailable and the built-in pool is in use.
type VehicleCatalog struct {
	Models     []VehicleModel
	Procedural bool
}

func (c *VehicleCatalog) Count() int { return len(c.Models) }

// Pick returns the model selected by roll, a uniform value in [0,1).
func (c *VehicleCatalog) Pick(roll float64) VehicleModel {
	i := int(roll * float64(len(c.Models)))
	if i >= len(c.Models) {
		i = len(c.Models) - 1
	}
	return c.Models[i]
}

// ProceduralVehicles returns the built-in vehicle pool.
func ProceduralVehicles() *VehicleCatalog {
	return &VehicleCatalog{
		Models: []VehicleModel{
			{Model: "proc_hatchback", Length: 3.9, Width: 1.7, Height: 1.5},
			{Model: "proc_sedan", Length: 4.6, Width: 1.8, Height: 1.45},
			{Model: "proc_van", Length: 5.2, Width: 2.0, Height: 2.1},
			{Model: "proc_taxi", Length: 4.7, Width: 1.8, Height: 1.5},
			{Model: "proc_bus", Length: 11.5, Width: 2.5, Height: 3.1},
		},
		Procedural: true,
	}
}

// LoadVehicleCatalog loads the optional enhanced vehicle catalogue. Any
// failure degrades to the procedural pool; the error is logged, never
// returned.
func LoadVehicleCatalog(path string, log *zap.Logger) *VehicleCatalog {
	if log == nil {
		log = zap.NewNop()
	}
	cat, err := loadVehicleFile(path)
	if err != nil {
		log.Warn("enhanced vehicles unavailable, using procedural pool",
			zap.String("path", path), zap.Error(err))
		return ProceduralVehicles()
	}
	log.Debug("enhanced vehicles loaded", zap.Int("models", cat.Count()))
	return cat
}

func loadVehicleFile(path string) (*VehicleCatalog, error) {
	if path == "" {
		return nil, fmt.Errorf("no vehicle catalogue configured")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vehicles: %w", err)
	}
	var f vehicleListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse vehicles: %w", err)
	}
	if len(f.Vehicles) == 0 {
		return nil, fmt.Errorf("vehicle catalogue %s is empty", path)
	}
	for _, v := range f.Vehicles {
		if v.Model == "" || v.Length <= 0 {
			return nil, fmt.Errorf("vehicle entry %+v is incomplete", v)
		}
	}
	return &VehicleCatalog{Models: f.Vehicles}, nil
}

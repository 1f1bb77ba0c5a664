package worldgen

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/curbrush/world/internal/config"
	"github.com/curbrush/world/internal/data"
)

// LoadTables reads the content pools named by cfg. An empty path selects
// the built-in pool. The vehicle catalogue never fails; it falls back to
// the procedural pool.
func LoadTables(cfg config.DataConfig, log *zap.Logger) (Tables, error) {
	t := DefaultTables()
	if cfg.BuildingsPath != "" {
		b, err := data.LoadBuildingTable(cfg.BuildingsPath)
		if err != nil {
			return Tables{}, fmt.Errorf("buildings: %w", err)
		}
		t.Buildings = b
	}
	if cfg.SceneryPath != "" {
		s, err := data.LoadSceneryTable(cfg.SceneryPath)
		if err != nil {
			return Tables{}, fmt.Errorf("scenery: %w", err)
		}
		t.Scenery = s
	}
	if cfg.VehiclesPath != "" {
		t.Vehicles = data.LoadVehicleCatalog(cfg.VehiclesPath, log)
	}
	return t, nil
}

package data

func arch(name string, w, d, h Extent) BuildingArchetype {
	return BuildingArchetype{
		Name:       name,
		Detailed:   name + "_hi",
		Simplified: name + "_lo",
		Width:      w,
		Depth:      d,
		Height:     h,
	}
}

// DefaultBuildings is the built-in building table, identical to the shipped
// data/yaml/buildings.yaml.
func DefaultBuildings() *BuildingTable {
	return &BuildingTable{
		Ordinary: []BuildingArchetype{
			arch("brownstone", Extent{6, 8}, Extent{8, 12}, Extent{9, 14}),
			arch("corner_shop", Extent{5, 7}, Extent{6, 9}, Extent{4, 7}),
			arch("apartment_block", Extent{8, 11}, Extent{9, 14}, Extent{14, 22}),
			arch("office_low", Extent{9, 12}, Extent{10, 14}, Extent{12, 18}),
			arch("townhouse", Extent{4, 6}, Extent{7, 10}, Extent{7, 10}),
			arch("parking_garage", Extent{10, 13}, Extent{12, 15}, Extent{8, 11}),
		},
		Skyscrapers: []BuildingArchetype{
			arch("glass_tower", Extent{10, 13}, Extent{10, 13}, Extent{60, 90}),
			arch("stepped_tower", Extent{11, 14}, Extent{11, 14}, Extent{70, 110}),
			arch("spire_tower", Extent{9, 11}, Extent{9, 11}, Extent{90, 130}),
		},
		Background: [3][]BuildingArchetype{
			{
				arch("sil_block_near", Extent{10, 16}, Extent{10, 16}, Extent{18, 35}),
				arch("sil_tower_near", Extent{8, 12}, Extent{8, 12}, Extent{35, 60}),
			},
			{
				arch("sil_block_mid", Extent{14, 22}, Extent{14, 22}, Extent{25, 50}),
				arch("sil_tower_mid", Extent{10, 16}, Extent{10, 16}, Extent{50, 90}),
			},
			{
				arch("sil_mass_far", Extent{20, 35}, Extent{20, 35}, Extent{40, 80}),
				arch("sil_spire_far", Extent{12, 18}, Extent{12, 18}, Extent{80, 140}),
			},
		},
	}
}

// DefaultScenery is the built-in scenery table, identical to the shipped
// data/yaml/scenery.yaml.
func DefaultScenery() *SceneryTable {
	t, err := newSceneryTable(sceneryListFile{
		Items: []SceneryItem{
			{Kind: "tree", Weight: 0.3, Archetypes: []string{"oak", "maple", "linden"}},
			{Kind: "bush", Weight: 0.25, Archetypes: []string{"boxwood", "hedge_round"}},
			{Kind: "bench", Weight: 0.15, Archetypes: []string{"bench_wood", "bench_metal"}},
			{Kind: "trash_bin", Weight: 0.15, Archetypes: []string{"bin_green", "bin_steel"}},
			{Kind: "flower_bed", Weight: 0.15, Archetypes: []string{"bed_tulip", "bed_rose"}},
		},
		GapTrees:  []string{"oak", "plane_tree"},
		TallTrees: []string{"poplar_tall", "cedar_tall"},
		Lamps:     []string{"lamp_classic", "lamp_modern"},
		Clouds:    []string{"cloud_puff", "cloud_long", "cloud_wisp"},
		Cranes:    []string{"tower_crane_yellow", "tower_crane_red"},
	})
	if err != nil {
		panic("data: built-in scenery table invalid: " + err.Error())
	}
	return t
}

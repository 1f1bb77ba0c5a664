package component

// Kind is the variant tag every placed entity carries. External systems
// dispatch on it to decide which facet stores to consult.
type Kind uint8

const (
	KindNone Kind = iota
	KindGround
	KindGrass
	KindCrossing
	KindBuilding
	KindSkyscraper
	KindTree
	KindTallTree
	KindBush
	KindBench
	KindTrashBin
	KindFlowerBed
	KindLampPost
	KindCloud
	KindBackground
	KindFogWall
	KindCrane
	KindHazard
	KindPedestrian
	KindVehicle
	KindPigeon
	KindAirplane
	kindCount
)

var kindNames = [kindCount]string{
	KindNone:       "none",
	KindGround:     "ground",
	KindGrass:      "grass",
	KindCrossing:   "crossing",
	KindBuilding:   "building",
	KindSkyscraper: "skyscraper",
	KindTree:       "tree",
	KindTallTree:   "tall_tree",
	KindBush:       "bush",
	KindBench:      "bench",
	KindTrashBin:   "trash_bin",
	KindFlowerBed:  "flower_bed",
	KindLampPost:   "lamp_post",
	KindCloud:      "cloud",
	KindBackground: "background",
	KindFogWall:    "fog_wall",
	KindCrane:      "crane",
	KindHazard:     "hazard",
	KindPedestrian: "pedestrian",
	KindVehicle:    "vehicle",
	KindPigeon:     "pigeon",
	KindAirplane:   "airplane",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "unknown"
}

// Kinds lists every real variant, in tag order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindGround; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

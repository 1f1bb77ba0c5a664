package component

import "github.com/curbrush/world/internal/core/ecs"

// Tag is attached to every entity the generator places.
// Pure data, zero behaviour; systems own all mutation.
type Tag struct {
	Kind      Kind
	Archetype string // pool entry the entity was drawn from, empty for strips
	Chunk     int    // generating chunk index
	Collides  bool   // consumed by the external collision system
}

// Transform is the placement of an entity. Width is along X, Depth along Z.
type Transform struct {
	X, Y, Z float64
	Yaw     float64 // radians, 0 faces +Z
	Width   float64
	Height  float64
	Depth   float64
}

// LOD pairs a detailed and a simplified silhouette. UseSimplified is kept
// current by the LOD system; the renderer only reads it.
type LOD struct {
	Detailed      string
	Simplified    string
	SwapDistance  float64
	UseSimplified bool
}

// Model returns the silhouette to draw.
func (l *LOD) Model() string {
	if l.UseSimplified {
		return l.Simplified
	}
	return l.Detailed
}

// Layer is a background skyline depth band.
type Layer uint8

const (
	LayerNear Layer = iota
	LayerMid
	LayerFar
	LayerCount
)

func (l Layer) String() string {
	switch l {
	case LayerNear:
		return "near"
	case LayerMid:
		return "mid"
	case LayerFar:
		return "far"
	}
	return "unknown"
}

// Background marks decorative skyline silhouettes. Fog grows with depth.
type Background struct {
	Layer Layer
	Fog   float64 // 0 = clear, 1 = fully faded into the fog colour
}

// HazardKind enumerates the static hazards of the hazard lane.
type HazardKind uint8

const (
	HazardManhole HazardKind = iota
	HazardPuddle
	HazardPothole
	HazardCurb
)

func (h HazardKind) String() string {
	switch h {
	case HazardManhole:
		return "manhole"
	case HazardPuddle:
		return "puddle"
	case HazardPothole:
		return "pothole"
	case HazardCurb:
		return "curb"
	}
	return "unknown"
}

// Hazard is read by the collision system. Puddles are never lethal and only
// apply a control penalty.
type Hazard struct {
	Kind           HazardKind
	Lethal         bool
	ControlPenalty float64
	Radius         float64
}

// PedRole separates crossing crowds from sidewalk ambience.
type PedRole uint8

const (
	RoleCrossing PedRole = iota
	RoleSidewalk
)

// PedState is the seed state of the pedestrian finite-state machine. The
// per-frame transitions live in the external movement system.
type PedState uint8

const (
	PedCrossing PedState = iota
	PedApproachBehind
	PedApproachAhead
	PedIdle
	PedWalking
	PedChatting
)

func (s PedState) String() string {
	switch s {
	case PedCrossing:
		return "crossing"
	case PedApproachBehind:
		return "approach_behind"
	case PedApproachAhead:
		return "approach_ahead"
	case PedIdle:
		return "idle"
	case PedWalking:
		return "walking"
	case PedChatting:
		return "chatting"
	}
	return "unknown"
}

type Pedestrian struct {
	Role      PedRole
	State     PedState
	Side      int // -1 left sidewalk, +1 right sidewalk
	Speed     float64
	Phase     float64 // animation/walk phase in [0,1)
	CrossingZ float64 // crossing centre, RoleCrossing only

	Partner       ecs.EntityID // chat partner, PedChatting only
	ChatRemaining float64      // seconds
}

// Lane is the traffic lane a vehicle occupies.
type Lane uint8

const (
	LaneSameDirection Lane = iota
	LaneOncoming
)

func (l Lane) String() string {
	if l == LaneOncoming {
		return "oncoming"
	}
	return "same_direction"
}

// Vehicle entities are owned by the culling system, not by a chunk.
type Vehicle struct {
	Lane       Lane
	Direction  float64 // +1 travels with the player, -1 towards
	Speed      float64
	Model      string
	Procedural bool // built-in fallback representation
}

type PigeonState uint8

const (
	PigeonPecking PigeonState = iota
	PigeonFleeing
)

// Pigeon members of one flock share FlockID so they flee together.
type Pigeon struct {
	FlockID uint32
	State   PigeonState
	Phase   float64
}

// Airplane is the singleton sky decoration.
type Airplane struct {
	VX, VY, VZ float64 // velocity, units per second
	Lifetime   float64 // seconds
	Age        float64
}

// Expired reports whether the airplane has outlived its flight.
func (a *Airplane) Expired() bool { return a.Age >= a.Lifetime }

// Crane is a decorative tower crane behind the building line.
type Crane struct {
	JibYaw float64
	Height float64
}

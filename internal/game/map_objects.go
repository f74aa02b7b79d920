package game

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

type PropKind int

const (
	PropRamp PropKind = iota
	PropRail
	PropHydrant
)

func (k PropKind) String() string {
	switch k {
	case PropRamp:
		return "ramp"
	case PropRail:
		return "rail"
	case PropHydrant:
		return "hydrant"
	default:
		return "unknown"
	}
}

// Contact radii per prop kind. Rails are horizontal segments of
// 2*RailHalfLength; their radius is the reach around the segment.
const (
	RampRadius     = 1.5
	RailHalfLength = 3.0
	RailRadius     = 0.5
	HydrantRadius  = 0.4
)

// Prop is a placed object on the map. Props never move.
type Prop struct {
	Kind PropKind
	Pos  mgl64.Vec2
}

func (p Prop) Radius() float64 {
	switch p.Kind {
	case PropRamp:
		return RampRadius
	case PropRail:
		return RailRadius
	default:
		return HydrantRadius
	}
}

// GenerateProps places ramps, then rails, then hydrants. The same rng state
// yields the same map. Nothing lands within SpawnClearRadius of spawn.
func GenerateProps(rng *rand.Rand, spawn mgl64.Vec2) []Prop {
	var props []Prop
	placed := []mgl64.Vec2{spawn}

	place := func(kind PropKind, n int) {
		for i := 0; i < n; i++ {
			pos := generatePosition(rng, propArea(kind), placed, spawn)
			props = append(props, Prop{Kind: kind, Pos: pos})
			placed = append(placed, pos)
		}
	}
	place(PropRamp, RampCount)
	place(PropRail, RailCount)
	place(PropHydrant, HydrantCount)

	return props
}

// propArea keeps a prop, including a rail's length, inside the world.
func propArea(kind PropKind) area {
	mx := PropEdgeMargin
	if kind == PropRail {
		mx += RailHalfLength
	}
	return area{
		min: mgl64.Vec2{mx, PropEdgeMargin},
		max: mgl64.Vec2{WorldWidth - mx, WorldHeight - PropEdgeMargin},
	}
}

// Hydrants returns the hydrant positions, the dog's sniff targets.
func Hydrants(props []Prop) []mgl64.Vec2 {
	var out []mgl64.Vec2
	for _, p := range props {
		if p.Kind == PropHydrant {
			out = append(out, p.Pos)
		}
	}
	return out
}

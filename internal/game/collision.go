package game

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/ugaemi/skatedog/internal/physics"
)

// distanceToSegment returns the distance from p to the segment ab.
func distanceToSegment(p, a, b mgl64.Vec2) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return physics.Distance(p, a)
	}
	t := mgl64.Clamp(p.Sub(a).Dot(ab)/l2, 0, 1)
	return physics.Distance(p, a.Add(ab.Mul(t)))
}

// railEnds returns the endpoints of a rail prop.
func railEnds(rail Prop) (mgl64.Vec2, mgl64.Vec2) {
	half := mgl64.Vec2{RailHalfLength, 0}
	return rail.Pos.Sub(half), rail.Pos.Add(half)
}

// Touching reports whether a circle at pos with the given radius overlaps prop.
func Touching(pos mgl64.Vec2, radius float64, prop Prop) bool {
	reach := radius + prop.Radius()
	if prop.Kind == PropRail {
		a, b := railEnds(prop)
		return distanceToSegment(pos, a, b) <= reach
	}
	return physics.Distance(pos, prop.Pos) <= reach
}

// FindTouching returns the index of the first prop of kind that the circle
// overlaps, or -1.
func FindTouching(pos mgl64.Vec2, radius float64, props []Prop, kind PropKind) int {
	for i, p := range props {
		if p.Kind == kind && Touching(pos, radius, p) {
			return i
		}
	}
	return -1
}

// PushOutOfHydrants moves a body out of any hydrant it overlaps and removes
// the velocity component into the hydrant.
func PushOutOfHydrants(b *physics.Body, radius float64, props []Prop) {
	for _, p := range props {
		if p.Kind != PropHydrant {
			continue
		}
		delta := b.Position.Sub(p.Pos)
		d := delta.Len()
		minDist := radius + HydrantRadius
		if d >= minDist || d < 1e-9 {
			continue
		}
		n := delta.Mul(1 / d)
		b.Position = p.Pos.Add(n.Mul(minDist))
		if into := b.Velocity.Dot(n); into < 0 {
			b.Velocity = b.Velocity.Sub(n.Mul(into))
		}
	}
}

// Package physics integrates the point-mass bodies that the leash and the
// movement controllers push around.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Body is a 2D point mass with an orientation. Forces accumulate between
// integrations and are cleared by Integrate.
type Body struct {
	ID       string
	Position mgl64.Vec2
	Velocity mgl64.Vec2
	Rotation float64 // radians
	Mass     float64

	// LinearDrag is the fraction of velocity lost per second.
	LinearDrag float64
	MaxSpeed   float64 // 0 disables the cap

	force mgl64.Vec2
}

// NewBody creates a body at pos. A non-positive mass is treated as 1.
func NewBody(pos mgl64.Vec2, mass float64) *Body {
	if mass <= 0 {
		mass = 1
	}
	return &Body{
		ID:       uuid.New().String(),
		Position: pos,
		Mass:     mass,
	}
}

// AddForce accumulates f for the next Integrate call.
func (b *Body) AddForce(f mgl64.Vec2) {
	if !finite(f) {
		return
	}
	b.force = b.force.Add(f)
}

// Force returns the force accumulated since the last integration.
func (b *Body) Force() mgl64.Vec2 {
	return b.force
}

// Anchor returns the world position of a point fixed to the body at local offset.
func (b *Body) Anchor(local mgl64.Vec2) mgl64.Vec2 {
	if local.Len() == 0 {
		return b.Position
	}
	return b.Position.Add(mgl64.Rotate2D(b.Rotation).Mul2x1(local))
}

// Integrate advances the body by dt using semi-implicit Euler and clears the
// accumulated force.
func (b *Body) Integrate(dt float64) {
	if dt <= 0 {
		b.force = mgl64.Vec2{}
		return
	}

	b.Velocity = b.Velocity.Add(b.force.Mul(dt / b.Mass))

	if b.LinearDrag > 0 {
		keep := 1 - b.LinearDrag*dt
		if keep < 0 {
			keep = 0
		}
		b.Velocity = b.Velocity.Mul(keep)
	}

	if b.MaxSpeed > 0 {
		if speed := b.Velocity.Len(); speed > b.MaxSpeed {
			b.Velocity = b.Velocity.Mul(b.MaxSpeed / speed)
		}
	}

	b.Position = b.Position.Add(b.Velocity.Mul(dt))
	b.force = mgl64.Vec2{}
}

// Stop zeroes velocity and any pending force.
func (b *Body) Stop() {
	b.Velocity = mgl64.Vec2{}
	b.force = mgl64.Vec2{}
}

func finite(v mgl64.Vec2) bool {
	return !math.IsNaN(v[0]) && !math.IsNaN(v[1]) && !math.IsInf(v[0], 0) && !math.IsInf(v[1], 0)
}

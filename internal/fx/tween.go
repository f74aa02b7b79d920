// Package fx holds the cosmetic side of the game: board hop and spin, dog
// decals and the score HUD. Nothing here feeds back into the simulation.
package fx

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is a sprite offset relative to its owner.
type Transform struct {
	Offset   mgl64.Vec2
	Rotation float64
	Scale    float64
}

// Identity is the untouched transform.
func Identity() Transform {
	return Transform{Scale: 1}
}

// Curve maps progress t in [0,1] to a transform derived from base.
type Curve func(base Transform, t float64) Transform

// Tween plays a Curve over a fixed duration, driven by elapsed time.
// Starting a new tween while one runs first restores the running tween's
// base, so effects never stack on a half-finished pose.
type Tween struct {
	base     Transform
	curve    Curve
	elapsed  float64
	duration float64
	active   bool
}

// Start begins a tween from cur and returns the pose for t=0.
func (tw *Tween) Start(cur Transform, duration float64, curve Curve) Transform {
	if tw.active {
		cur = tw.base
	}
	tw.base = cur
	tw.curve = curve
	tw.elapsed = 0
	tw.duration = duration
	tw.active = duration > 0 && curve != nil
	if !tw.active {
		return cur
	}
	return curve(cur, 0)
}

// Advance moves the tween forward by dt and returns the current pose. When
// the tween completes the base is returned and the tween goes idle.
func (tw *Tween) Advance(cur Transform, dt float64) Transform {
	if !tw.active {
		return cur
	}
	tw.elapsed += dt
	t := tw.elapsed / tw.duration
	if t >= 1 {
		tw.active = false
		return tw.base
	}
	return tw.curve(tw.base, t)
}

// Cancel stops the tween and returns the base it started from.
func (tw *Tween) Cancel(cur Transform) Transform {
	if !tw.active {
		return cur
	}
	tw.active = false
	return tw.base
}

func (tw *Tween) Active() bool { return tw.active }

// Progress returns t in [0,1] for the running tween, or 0 when idle.
func (tw *Tween) Progress() float64 {
	if !tw.active {
		return 0
	}
	return math.Min(1, tw.elapsed/tw.duration)
}

// Hop lifts the sprite in a half-sine arc and squashes it slightly.
func Hop(height float64) Curve {
	return func(base Transform, t float64) Transform {
		s := math.Sin(math.Pi * t)
		out := base
		out.Offset = base.Offset.Add(mgl64.Vec2{0, -height * s})
		out.Scale = base.Scale * (1 + 0.15*s)
		return out
	}
}

// Spin rotates the sprite through the given number of full turns.
func Spin(turns int) Curve {
	return func(base Transform, t float64) Transform {
		out := base
		out.Rotation = base.Rotation + 2*math.Pi*float64(turns)*t
		return out
	}
}

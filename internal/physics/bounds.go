package physics

import "github.com/go-gl/mathgl/mgl64"

// Bounds is an axis-aligned rectangle in world units.
type Bounds struct {
	Min, Max mgl64.Vec2
}

// Clamp keeps the body inside the bounds, inset by radius, and kills the
// velocity component pushing it out.
func (bd Bounds) Clamp(b *Body, radius float64) {
	for axis := 0; axis < 2; axis++ {
		lo := bd.Min[axis] + radius
		hi := bd.Max[axis] - radius
		if b.Position[axis] < lo {
			b.Position[axis] = lo
			if b.Velocity[axis] < 0 {
				b.Velocity[axis] = 0
			}
		} else if b.Position[axis] > hi {
			b.Position[axis] = hi
			if b.Velocity[axis] > 0 {
				b.Velocity[axis] = 0
			}
		}
	}
}

// Distance calculates the Euclidean distance between two points.
func Distance(a, b mgl64.Vec2) float64 {
	return a.Sub(b).Len()
}

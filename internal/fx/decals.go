package fx

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/ugaemi/skatedog/internal/dog"
)

// Decal is a mark on the ground. Life is how long it lasts; zero never fades.
type Decal struct {
	Kind dog.DecalKind
	Pos  mgl64.Vec2
	Age  float64
	Life float64
}

// Fade returns 1 for a fresh decal down to 0 at the end of its life.
func (dc Decal) Fade() float64 {
	if dc.Life <= 0 {
		return 1
	}
	return mgl64.Clamp(1-dc.Age/dc.Life, 0, 1)
}

// Decals keeps a bounded list of fading marks. It implements dog.DecalSink.
type Decals struct {
	items    []Decal
	max      int
	lifetime float64
}

func NewDecals(limit int, lifetime float64) *Decals {
	return &Decals{max: limit, lifetime: lifetime}
}

func (d *Decals) DropDecal(kind dog.DecalKind, pos mgl64.Vec2) {
	if d.max <= 0 {
		return
	}
	if len(d.items) >= d.max {
		d.items = d.items[1:]
	}
	d.items = append(d.items, Decal{Kind: kind, Pos: pos, Life: d.lifetime})
}

// Update ages every decal and drops the expired ones.
func (d *Decals) Update(dt float64) {
	kept := d.items[:0]
	for _, it := range d.items {
		it.Age += dt
		if it.Age < d.lifetime {
			kept = append(kept, it)
		}
	}
	d.items = kept
}

// All returns the live decals, oldest first. The slice must not be modified.
func (d *Decals) All() []Decal { return d.items }

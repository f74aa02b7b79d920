package trick

import (
	"errors"
	"fmt"
)

var ErrInvalidCatalog = errors.New("invalid trick catalog")

// Flip is a timed trick. It scores Points once it has been in the air for
// Duration seconds and the landing is clean.
type Flip struct {
	Name     string
	Duration float64 // seconds
	Spins    int
	Points   int
}

// Grab is a hold trick scored by how long it is held.
type Grab struct {
	Name            string
	PointsPerSecond float64
}

// Catalog lists the tricks available per direction. Index 0..3 are the
// cardinal directions (see Direction); an optional index 4 is the variant
// used when no direction is held.
type Catalog struct {
	Flips []Flip
	Grabs []Grab
}

// DefaultCatalog returns the stock trick list.
func DefaultCatalog() Catalog {
	return Catalog{
		Flips: []Flip{
			DirUp:    {Name: "Kickflip", Duration: 0.35, Spins: 1, Points: 100},
			DirRight: {Name: "Heelflip", Duration: 0.40, Spins: 1, Points: 120},
			DirDown:  {Name: "Pop Shove-it", Duration: 0.30, Spins: 1, Points: 80},
			DirLeft:  {Name: "Varial Kickflip", Duration: 0.50, Spins: 2, Points: 150},
			DirNone:  {Name: "Impossible", Duration: 0.45, Spins: 1, Points: 90},
		},
		Grabs: []Grab{
			DirUp:    {Name: "Indy", PointsPerSecond: 60},
			DirRight: {Name: "Melon", PointsPerSecond: 50},
			DirDown:  {Name: "Tail Grab", PointsPerSecond: 40},
			DirLeft:  {Name: "Nose Grab", PointsPerSecond: 45},
			DirNone:  {Name: "Stalefish", PointsPerSecond: 35},
		},
	}
}

// Validate checks that every cardinal direction has a trick and that
// durations and rates are usable.
func (c Catalog) Validate() error {
	if len(c.Flips) < 4 || len(c.Flips) > 5 {
		return fmt.Errorf("%w: need 4 or 5 flips, got %d", ErrInvalidCatalog, len(c.Flips))
	}
	if len(c.Grabs) < 4 || len(c.Grabs) > 5 {
		return fmt.Errorf("%w: need 4 or 5 grabs, got %d", ErrInvalidCatalog, len(c.Grabs))
	}
	for i, f := range c.Flips {
		if f.Duration <= 0 || f.Points < 0 {
			return fmt.Errorf("%w: flip %d (%s) has duration %v points %d", ErrInvalidCatalog, i, f.Name, f.Duration, f.Points)
		}
	}
	for i, g := range c.Grabs {
		if g.PointsPerSecond < 0 {
			return fmt.Errorf("%w: grab %d (%s) has negative rate", ErrInvalidCatalog, i, g.Name)
		}
	}
	return nil
}

// flipIndex maps a direction to a flip slot, falling back to slot 0 when
// there is no no-direction variant or the policy disables it.
func (c Catalog) flipIndex(d Direction, useVariant bool) int {
	return slotFor(d, len(c.Flips), useVariant)
}

func (c Catalog) grabIndex(d Direction, useVariant bool) int {
	return slotFor(d, len(c.Grabs), useVariant)
}

func slotFor(d Direction, n int, useVariant bool) int {
	if d == DirNone {
		if useVariant && n > int(DirNone) {
			return int(DirNone)
		}
		return int(DirUp)
	}
	if int(d) < 0 || int(d) >= n {
		return int(DirUp)
	}
	return int(d)
}

package trick

// Direction selects a trick from the catalog.
type Direction int

const (
	DirUp Direction = iota
	DirRight
	DirDown
	DirLeft
	DirNone
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return "none"
	}
}

// Keys is the held state of the four direction keys.
type Keys struct {
	Up, Right, Down, Left bool
}

func (k Keys) pressed(d Direction) bool {
	switch d {
	case DirUp:
		return k.Up
	case DirRight:
		return k.Right
	case DirDown:
		return k.Down
	case DirLeft:
		return k.Left
	}
	return false
}

// Any reports whether any direction key is held.
func (k Keys) Any() bool {
	return k.Up || k.Right || k.Down || k.Left
}

// ResolveDirection collapses the held keys into one direction. Adjacent
// pairs resolve clockwise (up+right is right, left+up is up). A held key wins
// when the next key clockwise is not held; among several winners the lowest
// index is taken. Nothing held gives DirNone.
func ResolveDirection(k Keys) Direction {
	if !k.Any() {
		return DirNone
	}
	for d := DirUp; d <= DirLeft; d++ {
		next := (d + 1) % 4
		if k.pressed(d) && !k.pressed(next) {
			return d
		}
	}
	// All four held.
	return DirUp
}

// Input is the trick-relevant part of one tick's input, captured once and
// passed to Machine.Update.
type Input struct {
	Keys

	FlipPressed  bool // flip key went down this tick
	GrabPressed  bool // grab key went down this tick
	GrabReleased bool // grab key went up this tick
}

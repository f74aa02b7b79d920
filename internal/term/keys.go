package term

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ugaemi/skatedog/internal/game"
	"github.com/ugaemi/skatedog/internal/trick"
)

// holdWindow is how long a direction counts as held after its last key
// event. Terminals report no key-up, so auto-repeat keeps a key alive.
const holdWindow = 180 * time.Millisecond

// Controller turns terminal key events into game input.
type Controller struct {
	lastSeen [4]time.Time // indexed by trick.Direction
}

// Action is what a key event asks for.
type Action int

const (
	ActionNone Action = iota
	ActionInput
	ActionQuit
)

// HandleKey maps one key event. grabbing reports whether a grab is held,
// which decides if K grabs or releases.
func (c *Controller) HandleKey(key tcell.Key, r rune, now time.Time, grabbing bool) (game.Input, Action) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.Input{}, ActionQuit
	case tcell.KeyUp:
		c.press(trick.DirUp, now)
	case tcell.KeyRight:
		c.press(trick.DirRight, now)
	case tcell.KeyDown:
		c.press(trick.DirDown, now)
	case tcell.KeyLeft:
		c.press(trick.DirLeft, now)
	case tcell.KeyRune:
		return c.handleRune(r, now, grabbing)
	default:
		return game.Input{}, ActionNone
	}
	return game.Input{Keys: c.Held(now)}, ActionInput
}

func (c *Controller) handleRune(r rune, now time.Time, grabbing bool) (game.Input, Action) {
	in := game.Input{}
	switch r {
	case 'q', 'Q':
		return in, ActionQuit
	case 'w', 'W':
		c.press(trick.DirUp, now)
	case 'd', 'D':
		c.press(trick.DirRight, now)
	case 's', 'S':
		c.press(trick.DirDown, now)
	case 'a', 'A':
		c.press(trick.DirLeft, now)
	case ' ':
		in.Ollie = true
	case 'j', 'J':
		in.Flip = true
	case 'k', 'K':
		if grabbing {
			in.GrabRelease = true
		} else {
			in.Grab = true
		}
	case 'b', 'B':
		in.ToggleBoard = true
	default:
		return in, ActionNone
	}
	in.Keys = c.Held(now)
	return in, ActionInput
}

func (c *Controller) press(d trick.Direction, now time.Time) {
	c.lastSeen[d] = now
}

// Held returns the directions seen within the hold window.
func (c *Controller) Held(now time.Time) trick.Keys {
	held := func(d trick.Direction) bool {
		t := c.lastSeen[d]
		return !t.IsZero() && now.Sub(t) <= holdWindow
	}
	return trick.Keys{
		Up:    held(trick.DirUp),
		Right: held(trick.DirRight),
		Down:  held(trick.DirDown),
		Left:  held(trick.DirLeft),
	}
}

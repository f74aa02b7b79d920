package session

import (
	"log/slog"

	"github.com/ugaemi/skatedog/internal/game"
	"github.com/ugaemi/skatedog/internal/trick"
)

const (
	legTicks       = 240 // ticks per steering leg
	ollieEvery     = 90
	grabEveryNth   = 3
	releaseAirLeft = 0.15 // seconds of air left when a held grab lets go
)

// legs steer a lap around the spawn.
var legs = []trick.Keys{{Right: true}, {Down: true}, {Left: true}, {Up: true}}

// trickDirs cycles the flip and grab directions, ending on the no-direction
// variant.
var trickDirs = []trick.Keys{{Up: true}, {Right: true}, {Down: true}, {Left: true}, {}}

// Autopilot is a scripted input source for headless runs. It reacts to each
// frame with the input for the next tick, so a given seed always plays the
// same way.
type Autopilot struct {
	session *Session

	airs        int
	wasAirborne bool
	tricked     bool
	holding     bool
}

// NewAutopilot subscribes to s and feeds it input. The returned func detaches.
func NewAutopilot(s *Session) (*Autopilot, func()) {
	a := &Autopilot{session: s}
	return a, s.Subscribe(a.onFrame)
}

func (a *Autopilot) onFrame(f game.Frame) {
	a.session.SubmitInput(a.next(f))
}

func (a *Autopilot) next(f game.Frame) game.Input {
	airborne := f.Air == trick.Airborne
	if airborne && !a.wasAirborne {
		a.airs++
		a.tricked = false
	}
	if !airborne {
		a.holding = false
	}
	a.wasAirborne = airborne

	if !airborne {
		in := game.Input{Keys: legs[int(f.Tick/legTicks)%len(legs)]}
		if f.PlayerMode != game.ModeOnBoard {
			in.ToggleBoard = true
		} else if f.Tick%ollieEvery == 0 {
			in.Ollie = true
		}
		return in
	}

	in := game.Input{Keys: trickDirs[(a.airs-1)%len(trickDirs)]}
	switch {
	case a.holding:
		if f.AirRemaining <= releaseAirLeft {
			in.GrabRelease = true
			a.holding = false
		}
	case a.tricked:
	case a.airs%grabEveryNth == 0:
		in.Grab = true
		a.holding = true
		a.tricked = true
	default:
		in.Flip = true
		a.tricked = true
	}
	return in
}

// Airs is the number of air sessions started so far.
func (a *Autopilot) Airs() int { return a.airs }

// LogSummary reports the run's outcome.
func LogSummary(logger *slog.Logger, f game.Frame) {
	logger.Info("run finished",
		"ticks", f.Tick,
		"score", f.Score,
		"lands", f.Lands,
		"bails", f.Bails,
		"walked_m", f.Walked,
		"dog_mood", f.DogMood,
	)
}

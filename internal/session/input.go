package session

import "github.com/ugaemi/skatedog/internal/game"

// latch accumulates input between ticks. Edges are sticky until taken so a
// press that arrives between two ticks is never lost.
type latch struct {
	pending game.Input
}

func (l *latch) merge(in game.Input) {
	l.pending.Keys = in.Keys
	l.pending.Ollie = l.pending.Ollie || in.Ollie
	l.pending.ToggleBoard = l.pending.ToggleBoard || in.ToggleBoard
	l.pending.Flip = l.pending.Flip || in.Flip
	l.pending.Grab = l.pending.Grab || in.Grab
	l.pending.GrabRelease = l.pending.GrabRelease || in.GrabRelease
}

// take returns the pending input and clears its edges. Held keys persist.
func (l *latch) take() game.Input {
	in := l.pending
	l.pending = game.Input{Keys: in.Keys}
	return in
}

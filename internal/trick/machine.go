// Package trick tracks airtime and the flip/grab tricks performed during it.
//
// A Machine is either grounded or airborne. TriggerAirtime starts a countdown;
// while it runs, at most one flip and at most one grab may be active. A flip
// that runs its full duration is banked and pays out on a clean landing. A
// grab pays out when released, in proportion to how long it was held. The air
// session ends on countdown expiry (NotifyLanded), on a controller verdict
// (OnAirEnd) or on a forced bail (OnBail). All three share one resolution.
//
// The machine is not safe for concurrent use; it is driven from a single
// game loop.
package trick

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
)

var (
	ErrNotAirborne         = errors.New("not airborne")
	ErrTrickActive         = errors.New("trick already active")
	ErrInsufficientAirtime = errors.New("not enough airtime left")
	ErrNoGrab              = errors.New("no grab active")
)

// timeEpsilon absorbs float drift from summing fixed steps.
const timeEpsilon = 1e-9

// Policy toggles the rule variations.
type Policy struct {
	OnlyTrickWhileAirborne bool
	AllowFlipDuringGrab    bool
	AllowGrabDuringFlip    bool

	// A flip needs max(MinAirtimeToTrick, Duration*CompletionFraction)
	// seconds of airtime left to start.
	MinAirtimeToTrick  float64
	CompletionFraction float64

	BailOnUnfinishedFlip  bool
	BailOnHeldGrab        bool
	UseNoDirectionVariant bool
}

// DefaultPolicy returns the rules the game ships with.
func DefaultPolicy() Policy {
	return Policy{
		OnlyTrickWhileAirborne: true,
		MinAirtimeToTrick:      0.2,
		CompletionFraction:     0.85,
		BailOnUnfinishedFlip:   true,
		UseNoDirectionVariant:  true,
	}
}

type AirState int

const (
	Grounded AirState = iota
	Airborne
)

func (s AirState) String() string {
	switch s {
	case Grounded:
		return "grounded"
	case Airborne:
		return "airborne"
	default:
		return "unknown"
	}
}

// FlipState is the in-progress flip, if any.
type FlipState struct {
	Active   bool
	Index    int
	Elapsed  float64
	Duration float64
}

// Finished reports whether the flip has run its full duration.
func (f FlipState) Finished() bool {
	return f.Elapsed+timeEpsilon >= f.Duration
}

// GrabState is the held grab, if any.
type GrabState struct {
	Active bool
	Index  int
	Held   float64
}

// Machine is the airtime and trick state machine.
type Machine struct {
	catalog Catalog
	policy  Policy
	visual  VisualSink
	score   ScoreSink
	log     *slog.Logger

	air          AirState
	airRemaining float64
	flip         FlipState
	grab         GrabState
	banked       []int // finished flips waiting for the landing
	total        int
	grinding     bool

	airFinished observers[AirResult]
	bailed      observers[string]
}

// NewMachine creates a grounded machine. Nil sinks are replaced with no-ops
// and a nil logger with slog.Default().
func NewMachine(catalog Catalog, policy Policy, visual VisualSink, score ScoreSink, logger *slog.Logger) (*Machine, error) {
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	if policy.CompletionFraction < 0 || policy.MinAirtimeToTrick < 0 {
		return nil, fmt.Errorf("invalid trick policy: negative airtime requirement")
	}
	if visual == nil {
		visual = nopVisual{}
	}
	if score == nil {
		score = nopScore{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Machine{
		catalog: catalog,
		policy:  policy,
		visual:  visual,
		score:   score,
		log:     logger,
	}, nil
}

// OnAirFinished registers fn to be called when an air session resolves.
// The returned func unsubscribes.
func (m *Machine) OnAirFinished(fn func(AirResult)) func() {
	return m.airFinished.subscribe(fn)
}

// OnBailed registers fn to be called with the reason of every bail.
func (m *Machine) OnBailed(fn func(reason string)) func() {
	return m.bailed.subscribe(fn)
}

func (m *Machine) State() AirState { return m.air }
func (m *Machine) Airborne() bool { return m.air == Airborne }
func (m *Machine) AirRemaining() float64 { return m.airRemaining }
func (m *Machine) Flip() FlipState { return m.flip }
func (m *Machine) Grab() GrabState { return m.grab }
func (m *Machine) Score() int { return m.total }
func (m *Machine) Grinding() bool { return m.grinding }
func (m *Machine) Catalog() Catalog { return m.catalog }

// TriggerAirtime starts an air session of the given length. When already
// airborne the countdown is raised to duration if that is longer. Either way
// any active flip or grab is dropped without scoring.
func (m *Machine) TriggerAirtime(duration float64) {
	if duration <= 0 || math.IsNaN(duration) {
		return
	}

	if m.air == Grounded {
		m.air = Airborne
		m.airRemaining = duration
		m.banked = m.banked[:0]
		m.visual.PlayOllie()
		m.log.Debug("airtime started", "duration", duration)
	} else {
		m.airRemaining = max(m.airRemaining, duration)
		m.log.Debug("airtime refreshed", "remaining", m.airRemaining)
	}

	m.clearTricks()
}

// ExtendAirtime adds extra seconds to a running air session.
func (m *Machine) ExtendAirtime(extra float64) {
	if m.air != Airborne || extra <= 0 || math.IsNaN(extra) {
		return
	}
	m.airRemaining += extra
}

// StartFlip begins the flip for dir if the rules allow it.
func (m *Machine) StartFlip(dir Direction) error {
	if err := m.canStart(m.flip.Active, m.grab.Active && !m.policy.AllowFlipDuringGrab); err != nil {
		return err
	}

	idx := m.catalog.flipIndex(dir, m.policy.UseNoDirectionVariant)
	f := m.catalog.Flips[idx]

	required := max(m.policy.MinAirtimeToTrick, f.Duration*m.policy.CompletionFraction)
	if m.airRemaining < required {
		m.log.Debug("flip rejected", "trick", f.Name, "remaining", m.airRemaining, "required", required)
		return fmt.Errorf("%w: %s needs %.2fs, %.2fs left", ErrInsufficientAirtime, f.Name, required, m.airRemaining)
	}

	m.flip = FlipState{Active: true, Index: idx, Duration: f.Duration}
	m.visual.PlayFlip(f.Duration, f.Spins, idx)
	m.log.Debug("flip started", "trick", f.Name, "direction", dir.String())
	return nil
}

// StartGrab begins the grab for dir if the rules allow it.
func (m *Machine) StartGrab(dir Direction) error {
	if err := m.canStart(m.grab.Active, m.flip.Active && !m.policy.AllowGrabDuringFlip); err != nil {
		return err
	}

	idx := m.catalog.grabIndex(dir, m.policy.UseNoDirectionVariant)
	m.grab = GrabState{Active: true, Index: idx}
	m.visual.BeginGrab(idx)
	m.log.Debug("grab started", "trick", m.catalog.Grabs[idx].Name, "direction", dir.String())
	return nil
}

func (m *Machine) canStart(sameActive, otherBlocks bool) error {
	if m.policy.OnlyTrickWhileAirborne && m.air != Airborne {
		m.log.Debug("trick rejected", "reason", ErrNotAirborne)
		return ErrNotAirborne
	}
	if sameActive || otherBlocks {
		m.log.Debug("trick rejected", "reason", ErrTrickActive)
		return ErrTrickActive
	}
	return nil
}

// ReleaseGrab ends the active grab. In the air it scores
// round(PointsPerSecond * held) and returns the points awarded.
func (m *Machine) ReleaseGrab() (int, error) {
	if !m.grab.Active {
		return 0, ErrNoGrab
	}

	g := m.grab
	m.grab = GrabState{}
	m.visual.EndGrab(g.Index)

	if m.air != Airborne {
		return 0, nil
	}
	pts := m.grabPoints(g)
	m.award(pts, m.catalog.Grabs[g.Index].Name)
	return pts, nil
}

func (m *Machine) grabPoints(g GrabState) int {
	return int(math.Round(m.catalog.Grabs[g.Index].PointsPerSecond * g.Held))
}

// Update applies one tick of trick input. Rejected attempts are logged and
// otherwise ignored. A release is handled before a press so that letting go
// and grabbing again within one tick starts the new grab.
func (m *Machine) Update(in Input) {
	dir := ResolveDirection(in.Keys)

	if in.GrabReleased {
		_, _ = m.ReleaseGrab()
	}
	if in.FlipPressed {
		_ = m.StartFlip(dir)
	}
	if in.GrabPressed {
		_ = m.StartGrab(dir)
	}
}

// FixedStep advances the trick timers and the air countdown by dt. The
// countdown running out lands the player.
func (m *Machine) FixedStep(dt float64) {
	if m.air != Airborne || dt <= 0 {
		return
	}

	if m.flip.Active {
		m.flip.Elapsed += dt
		if m.flip.Finished() {
			m.banked = append(m.banked, m.flip.Index)
			m.log.Debug("flip completed", "trick", m.catalog.Flips[m.flip.Index].Name)
			m.flip = FlipState{}
		}
	}
	if m.grab.Active {
		m.grab.Held += dt
	}

	m.airRemaining -= dt
	if m.airRemaining <= timeEpsilon {
		m.airRemaining = 0
		m.NotifyLanded()
	}
}

// NotifyLanded ends the air session as a landing, subject to the bail rules.
func (m *Machine) NotifyLanded() {
	if m.air != Airborne {
		return
	}
	m.resolve(true, "landed")
}

// OnAirEnd ends the air session with a controller-supplied outcome.
func (m *Machine) OnAirEnd(landed bool) {
	if m.air != Airborne {
		return
	}
	reason := "landed"
	if !landed {
		reason = "missed landing"
	}
	m.resolve(landed, reason)
}

// OnBail forces a bail. On the ground it only clears leftovers and still
// publishes the bail.
func (m *Machine) OnBail(reason string) {
	if m.air == Airborne {
		m.resolve(false, reason)
		return
	}
	m.clearTricks()
	m.banked = m.banked[:0]
	m.visual.Reset()
	m.log.Info("bail", "reason", reason, "airborne", false)
	m.bailed.emit(reason)
}

// StartGrind and StopGrind only track the flag; grinds do not interact with
// the air session.
func (m *Machine) StartGrind() {
	if !m.grinding {
		m.grinding = true
		m.log.Debug("grind started")
	}
}

func (m *Machine) StopGrind() {
	if m.grinding {
		m.grinding = false
		m.log.Debug("grind stopped")
	}
}

// resolve is the single landing resolution for every path. A bail scores
// nothing. A landing bails on an unfinished flip or a held grab when the
// policy says so; otherwise an unfinished flip is simply worth nothing and a
// held grab is scored as if released at touchdown.
func (m *Machine) resolve(landed bool, reason string) {
	bail := !landed

	flip := m.flip
	unfinished := flip.Active && !flip.Finished()
	if landed {
		switch {
		case unfinished && m.policy.BailOnUnfinishedFlip:
			bail = true
			reason = "unfinished " + m.catalog.Flips[flip.Index].Name
		case m.grab.Active && m.policy.BailOnHeldGrab:
			bail = true
			reason = "still holding " + m.catalog.Grabs[m.grab.Index].Name
		}
	}

	result := AirResult{Landed: !bail, Reason: reason}
	if !bail {
		if flip.Active && !unfinished {
			m.banked = append(m.banked, flip.Index)
		}
		for _, idx := range m.banked {
			f := m.catalog.Flips[idx]
			m.award(f.Points, f.Name)
			result.Points += f.Points
			result.Tricks = append(result.Tricks, f.Name)
		}
		if m.grab.Active {
			g := m.grab
			pts := m.grabPoints(g)
			m.visual.EndGrab(g.Index)
			m.award(pts, m.catalog.Grabs[g.Index].Name)
			result.Points += pts
			result.Tricks = append(result.Tricks, m.catalog.Grabs[g.Index].Name)
		}
	}

	m.clearTricks()
	m.banked = m.banked[:0]
	m.air = Grounded
	m.airRemaining = 0
	m.visual.Reset()

	if bail {
		m.log.Info("bail", "reason", reason, "airborne", true)
		m.bailed.emit(reason)
	} else {
		m.log.Info("landed", "points", result.Points, "tricks", len(result.Tricks))
	}
	m.airFinished.emit(result)
}

func (m *Machine) clearTricks() {
	m.flip = FlipState{}
	m.grab = GrabState{}
}

func (m *Machine) award(points int, label string) {
	if points <= 0 {
		return
	}
	m.total += points
	m.score.AddPoints(points, label)
	m.log.Info("scored", "trick", label, "points", points, "total", m.total)
}

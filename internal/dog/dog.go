// Package dog implements the walked dog: a mood that drifts with how it is
// treated, and a small behavior loop that the mood biases.
package dog

import (
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ugaemi/skatedog/internal/physics"
)

type Behavior int

const (
	Follow Behavior = iota
	Wander
	Sniff
	Pee
	Poop
	Resist
)

func (b Behavior) String() string {
	switch b {
	case Follow:
		return "follow"
	case Wander:
		return "wander"
	case Sniff:
		return "sniff"
	case Pee:
		return "pee"
	case Poop:
		return "poop"
	case Resist:
		return "resist"
	default:
		return "unknown"
	}
}

type DecalKind int

const (
	DecalPee DecalKind = iota
	DecalPoop
)

func (k DecalKind) String() string {
	if k == DecalPoop {
		return "poop"
	}
	return "pee"
}

// DecalSink receives the marks the dog leaves behind.
type DecalSink interface {
	DropDecal(kind DecalKind, pos mgl64.Vec2)
}

// Config tunes mood and behavior.
type Config struct {
	Baseline  float64 // mood drifts toward this
	DriftRate float64 // fraction of the gap closed per second

	YankTension        float64 // leash tension that counts as a yank
	YankPenaltyPerSec  float64
	CalmBonusPerSec    float64
	CalmMaxPlayerSpeed float64
	SniffBonus         float64
	ReliefBonus        float64

	SeekForce      float64
	WanderForce    float64
	ResistForce    float64
	FollowDistance float64
	SniffRange     float64

	PeeChance  float64
	PoopChance float64
}

func DefaultConfig() Config {
	return Config{
		Baseline:           0.6,
		DriftRate:          0.05,
		YankTension:        18,
		YankPenaltyPerSec:  0.35,
		CalmBonusPerSec:    0.04,
		CalmMaxPlayerSpeed: 2.5,
		SniffBonus:         0.08,
		ReliefBonus:        0.05,
		SeekForce:          9,
		WanderForce:        5,
		ResistForce:        14,
		FollowDistance:     2.5,
		SniffRange:         6,
		PeeChance:          0.12,
		PoopChance:         0.05,
	}
}

// Surroundings is what the dog perceives each tick.
type Surroundings struct {
	PlayerPos     mgl64.Vec2
	PlayerSpeed   float64
	PlayerOnBoard bool
	Tension       float64
	Hydrants      []mgl64.Vec2
}

// Dog owns its body; the leash and the world integrate it.
type Dog struct {
	Body *physics.Body

	cfg      Config
	mood     float64
	behavior Behavior
	timer    float64
	target   mgl64.Vec2
	heading  mgl64.Vec2
	rng      *rand.Rand
	decals   DecalSink
	log      *slog.Logger
}

// New creates a dog with the given body. seed fixes its choices.
func New(body *physics.Body, cfg Config, seed uint64, decals DecalSink, logger *slog.Logger) *Dog {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dog{
		Body:    body,
		cfg:     cfg,
		mood:    cfg.Baseline,
		heading: mgl64.Vec2{1, 0},
		rng:     rand.New(rand.NewPCG(seed, seed^0x5eed)),
		decals:  decals,
		log:     logger,
	}
	d.enter(Follow)
	return d
}

// Mood01 reports the mood in [0,1]; 1 is cooperative.
func (d *Dog) Mood01() float64 { return d.mood }

func (d *Dog) Behavior() Behavior { return d.behavior }

// FixedStep updates mood, picks behaviors and accumulates steering forces.
func (d *Dog) FixedStep(dt float64, env Surroundings) {
	if dt <= 0 {
		return
	}

	d.updateMood(dt, env)

	d.timer -= dt
	if d.timer <= 0 {
		d.finish()
		d.enter(d.choose(env))
	}

	d.steer(env)

	if v := d.Body.Velocity; v.Len() > 0.05 {
		d.Body.Rotation = math.Atan2(v[1], v[0])
	}
}

func (d *Dog) updateMood(dt float64, env Surroundings) {
	d.mood += (d.cfg.Baseline - d.mood) * d.cfg.DriftRate * dt

	if env.Tension >= d.cfg.YankTension {
		d.mood -= d.cfg.YankPenaltyPerSec * dt
	} else if env.Tension == 0 && !env.PlayerOnBoard && env.PlayerSpeed <= d.cfg.CalmMaxPlayerSpeed {
		d.mood += d.cfg.CalmBonusPerSec * dt
	}

	d.mood = mgl64.Clamp(d.mood, 0, 1)
}

func (d *Dog) choose(env Surroundings) Behavior {
	toPlayer := physics.Distance(d.Body.Position, env.PlayerPos)

	if d.rng.Float64() < 0.35*(1-d.mood) {
		return Resist
	}
	if h, ok := d.nearestHydrant(env.Hydrants); ok && d.rng.Float64() < 0.5 {
		d.target = h
		return Sniff
	}

	r := d.rng.Float64()
	switch {
	case r < d.cfg.PoopChance:
		return Poop
	case r < d.cfg.PoopChance+d.cfg.PeeChance:
		return Pee
	}

	if toPlayer > d.cfg.FollowDistance {
		return Follow
	}
	return Wander
}

func (d *Dog) enter(b Behavior) {
	prev := d.behavior
	d.behavior = b

	switch b {
	case Follow:
		d.timer = 1.5
	case Wander:
		d.timer = 2
		angle := (d.rng.Float64() - 0.5) * math.Pi
		d.heading = mgl64.Rotate2D(angle).Mul2x1(d.heading).Normalize()
	case Sniff:
		d.timer = 2.5
	case Pee, Poop:
		d.timer = 1.5
		if b == Poop {
			d.timer = 2
		}
		d.Body.Stop()
		kind := DecalPee
		if b == Poop {
			kind = DecalPoop
		}
		if d.decals != nil {
			d.decals.DropDecal(kind, d.Body.Position)
		}
	case Resist:
		d.timer = 1.2 + (1 - d.mood)
	}

	if prev != b {
		d.log.Debug("dog behavior", "from", prev.String(), "to", b.String(), "mood", d.mood)
	}
}

// finish applies the mood reward of the behavior that just ended.
func (d *Dog) finish() {
	switch d.behavior {
	case Sniff:
		d.mood = min(1, d.mood+d.cfg.SniffBonus)
	case Pee, Poop:
		d.mood = min(1, d.mood+d.cfg.ReliefBonus)
	}
}

func (d *Dog) steer(env Surroundings) {
	switch d.behavior {
	case Follow:
		d.seek(env.PlayerPos, d.cfg.SeekForce)
	case Wander:
		d.Body.AddForce(d.heading.Mul(d.cfg.WanderForce))
	case Sniff:
		if physics.Distance(d.Body.Position, d.target) > 0.5 {
			d.seek(d.target, d.cfg.SeekForce)
		}
	case Resist:
		away := d.Body.Position.Sub(env.PlayerPos)
		if l := away.Len(); l > 1e-4 {
			d.Body.AddForce(away.Mul(d.cfg.ResistForce * (1.3 - d.mood) / l))
		}
	}
}

func (d *Dog) seek(target mgl64.Vec2, force float64) {
	to := target.Sub(d.Body.Position)
	if l := to.Len(); l > 1e-4 {
		d.Body.AddForce(to.Mul(force / l))
	}
}

func (d *Dog) nearestHydrant(hydrants []mgl64.Vec2) (mgl64.Vec2, bool) {
	best := math.Inf(1)
	var found mgl64.Vec2
	for _, h := range hydrants {
		if dist := physics.Distance(d.Body.Position, h); dist < best && dist <= d.cfg.SniffRange {
			best = dist
			found = h
		}
	}
	return found, !math.IsInf(best, 1)
}

// Package leash implements the spring-damper constraint between the player
// and the dog.
//
// The leash only ever pulls. Below SlackLength it is limp, between
// SlackLength and MaxLength it behaves as a damped spring capped at
// MaxTension, and past MaxLength an extra symmetric correction drags both
// ends back together. How the tension is split between the two ends depends
// on the dog's mood and on whether the player is riding the board.
package leash

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ugaemi/skatedog/internal/physics"
)

// Epsilon is the distance below which the leash direction is undefined.
const Epsilon = 1e-4

var ErrInvalidConfig = errors.New("invalid leash config")

// Config holds the leash tuning.
type Config struct {
	SlackLength float64
	MaxLength   float64
	SpringK     float64
	DamperC     float64
	MaxTension  float64

	// MinTension is the anti-jitter floor. Smaller tensions are dropped.
	MinTension float64

	// Fraction of the tension the dog receives at mood 1 and mood 0.
	DogShareGood float64
	DogShareBad  float64

	// Multipliers on the player's share.
	OverpowerOnBoard float64
	OverpowerOnFoot  float64
}

// DefaultConfig returns the tuning the game ships with.
func DefaultConfig() Config {
	return Config{
		SlackLength:      2.0,
		MaxLength:        4.5,
		SpringK:          6.0,
		DamperC:          1.5,
		MaxTension:       40.0,
		MinTension:       0.05,
		DogShareGood:     0.7,
		DogShareBad:      0.25,
		OverpowerOnBoard: 1.4,
		OverpowerOnFoot:  0.8,
	}
}

// Validate checks the ordering and sign invariants of the tuning.
func (c Config) Validate() error {
	switch {
	case c.SlackLength < 0:
		return fmt.Errorf("%w: slack length %v is negative", ErrInvalidConfig, c.SlackLength)
	case c.SlackLength >= c.MaxLength:
		return fmt.Errorf("%w: slack length %v must be below max length %v", ErrInvalidConfig, c.SlackLength, c.MaxLength)
	case c.SpringK < 0 || c.DamperC < 0 || c.MaxTension < 0 || c.MinTension < 0:
		return fmt.Errorf("%w: gains must be non-negative", ErrInvalidConfig)
	case c.DogShareGood < 0 || c.DogShareGood > 1 || c.DogShareBad < 0 || c.DogShareBad > 1:
		return fmt.Errorf("%w: dog shares must be within [0,1]", ErrInvalidConfig)
	case c.OverpowerOnBoard < 0 || c.OverpowerOnFoot < 0:
		return fmt.Errorf("%w: overpower multipliers must be non-negative", ErrInvalidConfig)
	}
	return nil
}

// MoodSource reports the dog's mood in [0,1].
type MoodSource interface {
	Mood01() float64
}

// BoardState reports whether the player is riding the board.
type BoardState interface {
	IsOnBoard() bool
}

// MoodFunc adapts a plain function to MoodSource.
type MoodFunc func() float64

func (f MoodFunc) Mood01() float64 { return f() }

// BoardFunc adapts a plain function to BoardState.
type BoardFunc func() bool

func (f BoardFunc) IsOnBoard() bool { return f() }

// Endpoint is one end of the leash: a body and the local offset the leash is
// clipped to.
type Endpoint struct {
	Body   *physics.Body
	Offset mgl64.Vec2
}

func (e Endpoint) anchor() mgl64.Vec2 {
	return e.Body.Anchor(e.Offset)
}

// Result describes one evaluation of the leash.
type Result struct {
	Distance  float64
	Tension   float64
	Direction mgl64.Vec2 // unit vector from player anchor to dog anchor

	PlayerForce mgl64.Vec2
	DogForce    mgl64.Vec2

	// Correction is the magnitude of the overstretch term applied to each end.
	Correction    float64
	Taut          bool
	Overstretched bool
}

// Constraint ties a player endpoint to a dog endpoint.
type Constraint struct {
	cfg    Config
	player Endpoint
	dog    Endpoint
	mood   MoodSource
	board  BoardState
}

// New creates a constraint. mood and board may be nil, in which case the dog
// is neutral (0.5) and the player is on foot.
func New(cfg Config, player, dog Endpoint, mood MoodSource, board BoardState) (*Constraint, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if player.Body == nil || dog.Body == nil {
		return nil, fmt.Errorf("%w: both endpoints need a body", ErrInvalidConfig)
	}
	if mood == nil {
		mood = MoodFunc(func() float64 { return 0.5 })
	}
	if board == nil {
		board = BoardFunc(func() bool { return false })
	}
	return &Constraint{cfg: cfg, player: player, dog: dog, mood: mood, board: board}, nil
}

// Evaluate computes the leash forces for the current body state without
// applying them.
func (c *Constraint) Evaluate() Result {
	pa := c.player.anchor()
	da := c.dog.anchor()
	delta := da.Sub(pa)
	d := delta.Len()

	res := Result{Distance: d}
	if d < Epsilon || d <= c.cfg.SlackLength {
		return res
	}

	dir := delta.Mul(1 / d)
	res.Direction = dir

	relAlong := c.dog.Body.Velocity.Sub(c.player.Body.Velocity).Dot(dir)
	if relAlong <= 0 && d < c.cfg.MaxLength {
		// Ends are closing inside the limit; let them.
		return res
	}

	tension := c.Tension(d, relAlong)
	if tension >= c.cfg.MinTension && tension > 0 {
		res.Tension = tension
		res.Taut = true

		dogShare := DogShare(c.cfg, c.mood.Mood01())
		force := dir.Mul(tension)
		res.DogForce = force.Mul(-dogShare)
		res.PlayerForce = force.Mul((1 - dogShare) * c.overpower())
	}

	if d > c.cfg.MaxLength {
		res.Overstretched = true
		res.Correction = (d - c.cfg.MaxLength) * c.cfg.SpringK * 0.5
		corr := dir.Mul(res.Correction)
		res.PlayerForce = res.PlayerForce.Add(corr)
		res.DogForce = res.DogForce.Sub(corr)
	}

	return res
}

// Step evaluates the leash and accumulates the resulting forces on both
// bodies. A non-positive dt is a no-op.
func (c *Constraint) Step(dt float64) Result {
	if dt <= 0 {
		return Result{}
	}
	res := c.Evaluate()
	if res.PlayerForce.Len() > 0 {
		c.player.Body.AddForce(res.PlayerForce)
	}
	if res.DogForce.Len() > 0 {
		c.dog.Body.AddForce(res.DogForce)
	}
	return res
}

// Tension returns the clamped spring-damper tension for a leash of length d
// whose ends separate at relAlong.
func (c *Constraint) Tension(d, relAlong float64) float64 {
	extension := min(d, c.cfg.MaxLength) - c.cfg.SlackLength
	if extension < 0 {
		extension = 0
	}
	spring := extension * c.cfg.SpringK
	damper := 0.0
	if relAlong > 0 {
		damper = relAlong * c.cfg.DamperC
	}
	return mgl64.Clamp(spring+damper, 0, c.cfg.MaxTension)
}

// Tautness01 maps a leash length to 0 at slack and 1 at full length. The
// line renderer uses it to pick a color.
func (c *Constraint) Tautness01(d float64) float64 {
	span := c.cfg.MaxLength - c.cfg.SlackLength
	if span < Epsilon {
		return 0
	}
	return mgl64.Clamp((d-c.cfg.SlackLength)/span, 0, 1)
}

func (c *Constraint) overpower() float64 {
	if c.board.IsOnBoard() {
		return c.cfg.OverpowerOnBoard
	}
	return c.cfg.OverpowerOnFoot
}

// DogShare returns the fraction of tension the dog receives at the given mood.
func DogShare(cfg Config, mood float64) float64 {
	mood = mgl64.Clamp(mood, 0, 1)
	return mgl64.Clamp(cfg.DogShareBad+(cfg.DogShareGood-cfg.DogShareBad)*mood, 0, 1)
}

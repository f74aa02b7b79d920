package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ugaemi/skatedog/internal/physics"
)

type Mode int

const (
	ModeOnFoot Mode = iota
	ModeOnBoard
)

func (m Mode) String() string {
	switch m {
	case ModeOnFoot:
		return "foot"
	case ModeOnBoard:
		return "board"
	default:
		return "unknown"
	}
}

type Player struct {
	Body *physics.Body
	Mode Mode
}

func NewPlayer(pos mgl64.Vec2) *Player {
	p := &Player{Body: physics.NewBody(pos, PlayerMass)}
	p.SetMode(ModeOnFoot)
	return p
}

// IsOnBoard lets the player serve as the leash's board state.
func (p *Player) IsOnBoard() bool {
	return p.Mode == ModeOnBoard
}

// SetMode switches between riding and walking and retunes the body.
func (p *Player) SetMode(m Mode) {
	p.Mode = m
	switch m {
	case ModeOnBoard:
		p.Body.MaxSpeed = BoardMaxSpeed
		p.Body.LinearDrag = BoardDrag
	default:
		p.Body.MaxSpeed = FootMaxSpeed
		p.Body.LinearDrag = FootDrag
	}
}

func (p *Player) ToggleBoard() {
	if p.Mode == ModeOnBoard {
		p.SetMode(ModeOnFoot)
	} else {
		p.SetMode(ModeOnBoard)
	}
}

// Drive accumulates the steering force for a movement direction. dir need
// not be normalized; a zero vector coasts.
func (p *Player) Drive(dir mgl64.Vec2) {
	l := dir.Len()
	if l < 1e-9 {
		return
	}
	accel := FootAccel
	if p.Mode == ModeOnBoard {
		accel = BoardPush
	}
	p.Body.AddForce(dir.Mul(accel * p.Body.Mass / l))
	p.Body.Rotation = math.Atan2(dir[1], dir[0])
}

// Stumble drops the player off the board and bleeds most of the speed.
func (p *Player) Stumble() {
	p.SetMode(ModeOnFoot)
	p.Body.Velocity = p.Body.Velocity.Mul(BailSlowdown)
}

func (p *Player) Speed() float64 {
	return p.Body.Velocity.Len()
}

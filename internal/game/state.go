package game

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/ugaemi/skatedog/internal/dog"
	"github.com/ugaemi/skatedog/internal/fx"
	"github.com/ugaemi/skatedog/internal/trick"
)

// BodyView is the drawable part of a body.
type BodyView struct {
	Pos      mgl64.Vec2
	Rotation float64
	Speed    float64
}

type LeashView struct {
	Distance  float64
	Tension   float64
	Tautness  float64 // 0 slack .. 1 at max length
	PlayerEnd mgl64.Vec2
	DogEnd    mgl64.Vec2
}

// Frame is a read-only snapshot of the world after a tick. It shares no
// mutable state with the world.
type Frame struct {
	Tick uint64

	Player     BodyView
	PlayerMode Mode
	Dog        BodyView
	DogMood    float64
	DogState   dog.Behavior
	Leash      LeashView

	Air          trick.AirState
	AirRemaining float64
	FlipName     string // empty when no flip is active
	GrabName     string // empty when no grab is held
	Grinding     bool
	Board        fx.Transform

	Props  []Prop
	Decals []fx.Decal

	Score          int
	DisplayedScore int
	Banner         string
	Lands          int
	Bails          int
	Walked         float64 // meters travelled by the player
}

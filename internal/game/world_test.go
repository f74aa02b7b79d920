package game

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/skatedog/internal/config"
	"github.com/ugaemi/skatedog/internal/trick"
)

const testDT = 1.0 / 60

// newLooseWorld builds a world whose leash never goes taut, so the dog
// cannot disturb the player.
func newLooseWorld(t *testing.T) *World {
	t.Helper()
	opts := DefaultOptions()
	opts.Leash.SlackLength = 500
	opts.Leash.MaxLength = 600
	w, err := NewWorld(opts)
	require.NoError(t, err)
	return w
}

func firstProp(t *testing.T, w *World, kind PropKind) Prop {
	t.Helper()
	for _, p := range w.Props {
		if p.Kind == kind {
			return p
		}
	}
	t.Fatalf("no %s on the map", kind)
	return Prop{}
}

func tick(w *World, in Input) {
	w.Update(in, testDT)
	w.FixedStep(testDT)
}

func TestNewWorld_Initial(t *testing.T) {
	w, err := NewWorld(DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, SpawnPoint(), w.Player.Body.Position)
	assert.Equal(t, DogSpawn(SpawnPoint()), w.Dog.Body.Position)
	assert.Equal(t, ModeOnFoot, w.Player.Mode)
	assert.False(t, w.Tricks.Airborne())
	assert.Len(t, w.Props, RampCount+RailCount+HydrantCount)
	assert.Equal(t, uint64(0), w.Tick())
}

func TestNewWorld_InvalidLeash(t *testing.T) {
	opts := DefaultOptions()
	opts.Leash.MaxLength = opts.Leash.SlackLength
	_, err := NewWorld(opts)
	assert.Error(t, err)
}

func TestUpdate_OllieNeedsBoard(t *testing.T) {
	w := newLooseWorld(t)

	tick(w, Input{Ollie: true})
	assert.False(t, w.Tricks.Airborne(), "no ollie on foot")

	tick(w, Input{ToggleBoard: true})
	require.Equal(t, ModeOnBoard, w.Player.Mode)

	w.Update(Input{Ollie: true}, testDT)
	assert.True(t, w.Tricks.Airborne())
	assert.InDelta(t, OllieAirtime, w.Tricks.AirRemaining(), 1e-9)

	// Mode is locked while airborne.
	w.Update(Input{ToggleBoard: true}, testDT)
	assert.Equal(t, ModeOnBoard, w.Player.Mode)
}

func TestUpdate_SteerOnlyOnGround(t *testing.T) {
	w := newLooseWorld(t)

	tick(w, Input{Keys: trick.Keys{Right: true}})
	assert.Greater(t, w.Player.Body.Velocity[0], 0.0)
	assert.Greater(t, w.Walked(), 0.0)

	w.Player.Body.Stop()
	w.Player.SetMode(ModeOnBoard)
	w.Tricks.TriggerAirtime(1)
	tick(w, Input{Keys: trick.Keys{Down: true}})
	assert.Equal(t, mgl64.Vec2{}, w.Player.Body.Velocity)
}

func TestWorld_OllieKickflipLands(t *testing.T) {
	w := newLooseWorld(t)
	w.Player.SetMode(ModeOnBoard)

	tick(w, Input{Ollie: true, Flip: true, Keys: trick.Keys{Up: true}})
	require.True(t, w.Tricks.Flip().Active)
	assert.Equal(t, "Kickflip", w.Snapshot().FlipName)

	for i := 0; i < 60 && w.Tricks.Airborne(); i++ {
		tick(w, Input{})
	}

	require.False(t, w.Tricks.Airborne())
	f := w.Snapshot()
	assert.Equal(t, 100, f.Score)
	assert.Equal(t, 1, f.Lands)
	assert.Equal(t, 0, f.Bails)
	assert.Equal(t, "Kickflip +100", f.Banner)
	assert.Equal(t, ModeOnBoard, f.PlayerMode)
}

func TestWorld_LeashYankBails(t *testing.T) {
	w, err := NewWorld(DefaultOptions())
	require.NoError(t, err)

	w.Player.SetMode(ModeOnBoard)
	w.Update(Input{Ollie: true}, testDT)
	require.True(t, w.Tricks.Airborne())

	w.Player.Body.Velocity = mgl64.Vec2{2, 0}
	w.Dog.Body.Position = w.Player.Body.Position.Add(mgl64.Vec2{6, 0})
	w.Dog.Body.Velocity = mgl64.Vec2{20, 0}
	w.FixedStep(testDT)

	assert.False(t, w.Tricks.Airborne())
	assert.Equal(t, ModeOnFoot, w.Player.Mode, "bail drops the player off the board")
	assert.Equal(t, 1, w.HUD.Bails())
	assert.Equal(t, "BAIL: leash yank", w.HUD.Banner())
	assert.Equal(t, 0, w.HUD.Score())
}

func TestWorld_RampLaunchAndExtend(t *testing.T) {
	w := newLooseWorld(t)
	ramp := firstProp(t, w, PropRamp)

	// On foot a ramp is just ground.
	w.Player.Body.Position = ramp.Pos
	w.FixedStep(testDT)
	assert.False(t, w.Tricks.Airborne())

	w.Player.Body.Position = SpawnPoint()
	w.FixedStep(testDT)

	w.Player.SetMode(ModeOnBoard)
	w.Player.Body.Position = ramp.Pos
	w.FixedStep(testDT)
	require.True(t, w.Tricks.Airborne())
	assert.InDelta(t, RampAirtime-testDT, w.Tricks.AirRemaining(), 1e-9)

	// Staying on the ramp does not relaunch.
	w.FixedStep(testDT)
	assert.InDelta(t, RampAirtime-2*testDT, w.Tricks.AirRemaining(), 1e-9)

	// Leaving and touching again while airborne extends.
	w.Player.Body.Position = SpawnPoint()
	w.FixedStep(testDT)
	w.Player.Body.Position = ramp.Pos
	w.FixedStep(testDT)
	assert.InDelta(t, RampAirtime+RampExtend-4*testDT, w.Tricks.AirRemaining(), 1e-9)
}

func TestWorld_RailGrind(t *testing.T) {
	w := newLooseWorld(t)
	rail := firstProp(t, w, PropRail)

	w.Player.SetMode(ModeOnBoard)
	w.Player.Body.Position = rail.Pos
	w.FixedStep(testDT)
	assert.True(t, w.Tricks.Grinding())
	assert.True(t, w.Snapshot().Grinding)

	w.Player.SetMode(ModeOnFoot)
	w.FixedStep(testDT)
	assert.False(t, w.Tricks.Grinding())
}

func TestSnapshot_DoesNotShareState(t *testing.T) {
	w := newLooseWorld(t)
	f := w.Snapshot()

	orig := w.Props[0].Pos
	f.Props[0].Pos = mgl64.Vec2{-1, -1}
	assert.Equal(t, orig, w.Props[0].Pos)
}

func TestWorld_Deterministic(t *testing.T) {
	run := func() Frame {
		w, err := NewWorld(DefaultOptions())
		require.NoError(t, err)
		for i := 0; i < 600; i++ {
			in := Input{Keys: trick.Keys{Right: i%200 < 100, Down: i%200 >= 100}}
			if i == 10 {
				in.ToggleBoard = true
			}
			if i%90 == 45 {
				in.Ollie = true
				in.Flip = true
			}
			tick(w, in)
		}
		return w.Snapshot()
	}

	assert.Equal(t, run(), run())
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := &config.Config{
		Seed:             7,
		HeadlessDuration: time.Second,
		Leash: config.LeashConfig{
			SlackLength: 1, MaxLength: 3, SpringK: 2, DamperC: 0.5, MaxTension: 10,
		},
		Trick: config.TrickConfig{BailOnHeldGrab: true},
	}

	opts := OptionsFromConfig(cfg)
	assert.Equal(t, uint64(7), opts.Seed)
	assert.Equal(t, 1.0, opts.Leash.SlackLength)
	assert.Equal(t, 3.0, opts.Leash.MaxLength)
	assert.Equal(t, 10.0, opts.Leash.MaxTension)
	assert.True(t, opts.Policy.BailOnHeldGrab)
	assert.False(t, opts.Policy.BailOnUnfinishedFlip)
	assert.Equal(t, DefaultOptions().Leash.MinTension, opts.Leash.MinTension, "untouched fields keep defaults")
}

func TestPlayer_ModeTuning(t *testing.T) {
	p := NewPlayer(mgl64.Vec2{})
	assert.Equal(t, FootMaxSpeed, p.Body.MaxSpeed)
	assert.False(t, p.IsOnBoard())

	p.ToggleBoard()
	assert.True(t, p.IsOnBoard())
	assert.Equal(t, BoardMaxSpeed, p.Body.MaxSpeed)
	assert.Equal(t, "board", p.Mode.String())

	p.Body.Velocity = mgl64.Vec2{10, 0}
	p.Stumble()
	assert.Equal(t, ModeOnFoot, p.Mode)
	assert.InDelta(t, 10*BailSlowdown, p.Speed(), 1e-9)
}

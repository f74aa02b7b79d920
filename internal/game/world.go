package game

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ugaemi/skatedog/internal/config"
	"github.com/ugaemi/skatedog/internal/dog"
	"github.com/ugaemi/skatedog/internal/fx"
	"github.com/ugaemi/skatedog/internal/leash"
	"github.com/ugaemi/skatedog/internal/physics"
	"github.com/ugaemi/skatedog/internal/trick"
)

// Input is one tick of player input. Keys is held state; the rest are edges
// that fired this tick.
type Input struct {
	Keys trick.Keys

	Ollie       bool
	ToggleBoard bool
	Flip        bool
	Grab        bool
	GrabRelease bool
}

// Steer turns the held arrows into a movement direction in screen space
// (y grows downward). Opposite keys cancel.
func (in Input) Steer() mgl64.Vec2 {
	var v mgl64.Vec2
	if in.Keys.Up {
		v[1]--
	}
	if in.Keys.Down {
		v[1]++
	}
	if in.Keys.Left {
		v[0]--
	}
	if in.Keys.Right {
		v[0]++
	}
	return v
}

type Options struct {
	Seed    uint64
	Leash   leash.Config
	Dog     dog.Config
	Catalog trick.Catalog
	Policy  trick.Policy
	Logger  *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		Seed:    1,
		Leash:   leash.DefaultConfig(),
		Dog:     dog.DefaultConfig(),
		Catalog: trick.DefaultCatalog(),
		Policy:  trick.DefaultPolicy(),
	}
}

// OptionsFromConfig applies the environment overrides on top of the defaults.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	opts.Seed = cfg.Seed

	opts.Leash.SlackLength = cfg.Leash.SlackLength
	opts.Leash.MaxLength = cfg.Leash.MaxLength
	opts.Leash.SpringK = cfg.Leash.SpringK
	opts.Leash.DamperC = cfg.Leash.DamperC
	opts.Leash.MaxTension = cfg.Leash.MaxTension

	opts.Policy.BailOnUnfinishedFlip = cfg.Trick.BailOnUnfinishedFlip
	opts.Policy.BailOnHeldGrab = cfg.Trick.BailOnHeldGrab
	opts.Policy.UseNoDirectionVariant = cfg.Trick.UseNoDirectionVariant
	return opts
}

// World owns every simulated object of one skate session.
type World struct {
	Player *Player
	Dog    *dog.Dog
	Leash  *leash.Constraint
	Tricks *trick.Machine
	Board  *fx.Board
	Decals *fx.Decals
	HUD    *fx.HUD
	Props  []Prop
	Bounds physics.Bounds

	tick      uint64
	onRamp    int
	lastLeash leash.Result
	walked    float64
	log       *slog.Logger
}

func NewWorld(opts Options) (*World, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	spawn := SpawnPoint()
	player := NewPlayer(spawn)

	dogBody := physics.NewBody(DogSpawn(spawn), DogMass)
	dogBody.MaxSpeed = DogMaxSpeed
	dogBody.LinearDrag = DogDrag

	decals := fx.NewDecals(MaxDecals, DecalLifetime)
	pup := dog.New(dogBody, opts.Dog, opts.Seed, decals, logger.With("component", "dog"))

	line, err := leash.New(opts.Leash,
		leash.Endpoint{Body: player.Body, Offset: mgl64.Vec2{LeashHandX, 0}},
		leash.Endpoint{Body: dogBody},
		pup, player)
	if err != nil {
		return nil, fmt.Errorf("create leash: %w", err)
	}

	board := fx.NewBoard()
	hud := fx.NewHUD()
	tricks, err := trick.NewMachine(opts.Catalog, opts.Policy, board, hud, logger.With("component", "trick"))
	if err != nil {
		return nil, fmt.Errorf("create trick machine: %w", err)
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x70b5))

	w := &World{
		Player: player,
		Dog:    pup,
		Leash:  line,
		Tricks: tricks,
		Board:  board,
		Decals: decals,
		HUD:    hud,
		Props:  GenerateProps(rng, spawn),
		Bounds: WorldBounds(),
		onRamp: -1,
		log:    logger,
	}

	tricks.OnBailed(func(reason string) {
		hud.Bailed(reason)
		player.Stumble()
	})
	tricks.OnAirFinished(func(r trick.AirResult) {
		if r.Landed {
			hud.Landed()
		}
	})

	return w, nil
}

// Update applies the tick's input and advances the purely visual state. It
// runs once per frame before FixedStep.
func (w *World) Update(in Input, dt float64) {
	grounded := !w.Tricks.Airborne()

	if in.ToggleBoard && grounded {
		w.Player.ToggleBoard()
		w.log.Debug("board toggled", "mode", w.Player.Mode)
	}
	if in.Ollie && grounded && w.Player.IsOnBoard() {
		w.Tricks.TriggerAirtime(OllieAirtime)
	}

	w.Tricks.Update(trick.Input{
		Keys:         in.Keys,
		FlipPressed:  in.Flip,
		GrabPressed:  in.Grab,
		GrabReleased: in.GrabRelease,
	})

	// No steering in the air; momentum carries the player.
	if !w.Tricks.Airborne() {
		w.Player.Drive(in.Steer())
	}

	if dt > 0 {
		w.Board.Update(dt)
		w.HUD.Update(dt)
		w.Decals.Update(dt)
	}
}

// FixedStep advances the simulation by dt.
func (w *World) FixedStep(dt float64) {
	if dt <= 0 {
		return
	}

	res := w.Leash.Step(dt)
	w.lastLeash = res
	w.checkYank(res.Tension)

	w.Dog.FixedStep(dt, dog.Surroundings{
		PlayerPos:     w.Player.Body.Position,
		PlayerSpeed:   w.Player.Speed(),
		PlayerOnBoard: w.Player.IsOnBoard(),
		Tension:       res.Tension,
		Hydrants:      Hydrants(w.Props),
	})

	prev := w.Player.Body.Position
	w.Player.Body.Integrate(dt)
	w.Dog.Body.Integrate(dt)

	w.Bounds.Clamp(w.Player.Body, PlayerRadius)
	w.Bounds.Clamp(w.Dog.Body, DogRadius)
	PushOutOfHydrants(w.Player.Body, PlayerRadius, w.Props)
	PushOutOfHydrants(w.Dog.Body, DogRadius, w.Props)
	w.walked += physics.Distance(prev, w.Player.Body.Position)

	w.checkRamps()
	w.checkRails()
	w.Tricks.FixedStep(dt)

	w.tick++
}

func (w *World) Tick() uint64 { return w.tick }

// Walked is the total distance the player has covered.
func (w *World) Walked() float64 { return w.walked }

// Snapshot copies the current state into a Frame.
func (w *World) Snapshot() Frame {
	p := w.Player.Body
	d := w.Dog.Body
	res := w.lastLeash

	f := Frame{
		Tick:       w.tick,
		Player:     BodyView{Pos: p.Position, Rotation: p.Rotation, Speed: w.Player.Speed()},
		PlayerMode: w.Player.Mode,
		Dog:        BodyView{Pos: d.Position, Rotation: d.Rotation, Speed: d.Velocity.Len()},
		DogMood:    w.Dog.Mood01(),
		DogState:   w.Dog.Behavior(),
		Leash: LeashView{
			Distance:  res.Distance,
			Tension:   res.Tension,
			Tautness:  w.Leash.Tautness01(res.Distance),
			PlayerEnd: p.Anchor(mgl64.Vec2{LeashHandX, 0}),
			DogEnd:    d.Position,
		},
		Air:            w.Tricks.State(),
		AirRemaining:   w.Tricks.AirRemaining(),
		Grinding:       w.Tricks.Grinding(),
		Board:          w.Board.Pose(),
		Props:          append([]Prop(nil), w.Props...),
		Decals:         append([]fx.Decal(nil), w.Decals.All()...),
		Score:          w.HUD.Score(),
		DisplayedScore: w.HUD.DisplayedScore(),
		Banner:         w.HUD.Banner(),
		Lands:          w.HUD.Lands(),
		Bails:          w.HUD.Bails(),
		Walked:         w.walked,
	}

	cat := w.Tricks.Catalog()
	if fl := w.Tricks.Flip(); fl.Active {
		f.FlipName = cat.Flips[fl.Index].Name
	}
	if g := w.Tricks.Grab(); g.Active {
		f.GrabName = cat.Grabs[g.Index].Name
	}
	return f
}

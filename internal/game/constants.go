package game

// World dimensions (meters)
const (
	WorldWidth  = 120.0
	WorldHeight = 80.0
)

// Bodies
const (
	PlayerMass   = 1.0
	PlayerRadius = 0.4
	DogMass      = 0.6
	DogRadius    = 0.3
	DogSpawnGap  = 1.5 // meters to the right of the player
)

// Movement
const (
	FootAccel     = 14.0 // force per unit mass
	FootMaxSpeed  = 3.2  // m/s
	FootDrag      = 4.0
	BoardPush     = 18.0
	BoardMaxSpeed = 8.5
	BoardDrag     = 0.6
	BailSlowdown  = 0.3 // velocity kept after a bail
	LeashHandX    = 0.3 // leash clip offset in the player's frame
	DogMaxSpeed   = 5.0
	DogDrag       = 2.5
)

// Airtime
const (
	OllieAirtime    = 0.7 // seconds
	RampAirtime     = 1.3
	RampExtend      = 0.4
	YankBailTension = 30.0
)

// Props (must not overlap the spawn)
const (
	RampCount        = 6
	RailCount        = 4
	HydrantCount     = 10
	PropMinDistance  = 8.0
	SpawnClearRadius = 10.0
	PropEdgeMargin   = 3.0
)

// Decals
const (
	MaxDecals     = 32
	DecalLifetime = 45.0 // seconds
)

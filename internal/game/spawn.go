package game

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ugaemi/skatedog/internal/physics"
)

// SpawnPoint is where the player starts: the middle of the map.
func SpawnPoint() mgl64.Vec2 {
	return mgl64.Vec2{WorldWidth / 2, WorldHeight / 2}
}

// DogSpawn puts the dog beside the player, inside the leash's slack.
func DogSpawn(player mgl64.Vec2) mgl64.Vec2 {
	return player.Add(mgl64.Vec2{DogSpawnGap, 0})
}

// WorldBounds is the playable rectangle.
func WorldBounds() physics.Bounds {
	return physics.Bounds{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{WorldWidth, WorldHeight}}
}

type area struct {
	min, max mgl64.Vec2
}

func (a area) random(rng *rand.Rand) mgl64.Vec2 {
	return mgl64.Vec2{
		a.min[0] + rng.Float64()*(a.max[0]-a.min[0]),
		a.min[1] + rng.Float64()*(a.max[1]-a.min[1]),
	}
}

// generatePosition finds a position in a that keeps PropMinDistance from
// everything placed and SpawnClearRadius from spawn. After maxAttempts it
// gives up on spacing but still honors the spawn clearance.
func generatePosition(rng *rand.Rand, a area, existing []mgl64.Vec2, spawn mgl64.Vec2) mgl64.Vec2 {
	const maxAttempts = 100

	for i := 0; i < maxAttempts; i++ {
		pos := a.random(rng)
		if physics.Distance(pos, spawn) < SpawnClearRadius {
			continue
		}
		if isFarEnough(pos, existing) {
			return pos
		}
	}

	// Fallback: spacing not guaranteed
	for {
		pos := a.random(rng)
		if physics.Distance(pos, spawn) >= SpawnClearRadius {
			return pos
		}
	}
}

// isFarEnough checks if pos is at least PropMinDistance from all existing positions.
func isFarEnough(pos mgl64.Vec2, existing []mgl64.Vec2) bool {
	for _, p := range existing {
		if physics.Distance(pos, p) < PropMinDistance {
			return false
		}
	}
	return true
}

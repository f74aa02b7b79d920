package game

import (
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/skatedog/internal/physics"
)

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestGenerateProps_Counts(t *testing.T) {
	props := GenerateProps(testRNG(1), SpawnPoint())
	require.Len(t, props, RampCount+RailCount+HydrantCount)

	counts := map[PropKind]int{}
	for _, p := range props {
		counts[p.Kind]++
	}
	assert.Equal(t, RampCount, counts[PropRamp])
	assert.Equal(t, RailCount, counts[PropRail])
	assert.Equal(t, HydrantCount, counts[PropHydrant])
	assert.Len(t, Hydrants(props), HydrantCount)
}

func TestGenerateProps_ClearOfSpawn(t *testing.T) {
	spawn := SpawnPoint()

	// Run multiple seeds to catch randomness issues
	for seed := uint64(0); seed < 20; seed++ {
		for _, p := range GenerateProps(testRNG(seed), spawn) {
			dist := physics.Distance(p.Pos, spawn)
			assert.GreaterOrEqual(t, dist, SpawnClearRadius, "%s too close to spawn (%.1f)", p.Kind, dist)
		}
	}
}

func TestGenerateProps_WithinMapBounds(t *testing.T) {
	bounds := WorldBounds()
	inside := func(p mgl64.Vec2) bool {
		return p[0] >= bounds.Min[0] && p[0] <= bounds.Max[0] &&
			p[1] >= bounds.Min[1] && p[1] <= bounds.Max[1]
	}

	for seed := uint64(0); seed < 20; seed++ {
		for _, p := range GenerateProps(testRNG(seed), SpawnPoint()) {
			assert.True(t, inside(p.Pos), "%s at %v", p.Kind, p.Pos)
			if p.Kind == PropRail {
				a, b := railEnds(p)
				assert.True(t, inside(a) && inside(b), "rail ends %v %v", a, b)
			}
		}
	}
}

func TestGenerateProps_Deterministic(t *testing.T) {
	a := GenerateProps(testRNG(42), SpawnPoint())
	b := GenerateProps(testRNG(42), SpawnPoint())
	assert.Equal(t, a, b)

	c := GenerateProps(testRNG(43), SpawnPoint())
	assert.NotEqual(t, a, c)
}

func TestSpawn(t *testing.T) {
	spawn := SpawnPoint()
	assert.Equal(t, mgl64.Vec2{WorldWidth / 2, WorldHeight / 2}, spawn)
	assert.InDelta(t, DogSpawnGap, physics.Distance(spawn, DogSpawn(spawn)), 1e-9)
}

func TestIsFarEnough(t *testing.T) {
	existing := []mgl64.Vec2{{50, 50}}

	// Too close
	assert.False(t, isFarEnough(mgl64.Vec2{52, 50}, existing))

	// Far enough
	assert.True(t, isFarEnough(mgl64.Vec2{70, 70}, existing))

	// Empty list - always far enough
	assert.True(t, isFarEnough(mgl64.Vec2{1, 1}, nil))
}

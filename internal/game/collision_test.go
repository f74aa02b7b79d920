package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"github.com/ugaemi/skatedog/internal/physics"
)

func TestDistanceToSegment(t *testing.T) {
	a := mgl64.Vec2{0, 0}
	b := mgl64.Vec2{10, 0}

	tests := []struct {
		name string
		p    mgl64.Vec2
		want float64
	}{
		{"on segment", mgl64.Vec2{5, 0}, 0},
		{"above middle", mgl64.Vec2{5, 3}, 3},
		{"past end", mgl64.Vec2{13, 4}, 5},
		{"before start", mgl64.Vec2{-3, 0}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, distanceToSegment(tt.p, a, b), 1e-9)
		})
	}

	assert.InDelta(t, 5.0, distanceToSegment(mgl64.Vec2{3, 4}, a, a), 1e-9, "degenerate segment")
}

func TestTouching(t *testing.T) {
	ramp := Prop{Kind: PropRamp, Pos: mgl64.Vec2{10, 10}}
	rail := Prop{Kind: PropRail, Pos: mgl64.Vec2{10, 10}}
	hydrant := Prop{Kind: PropHydrant, Pos: mgl64.Vec2{10, 10}}

	tests := []struct {
		name string
		pos  mgl64.Vec2
		prop Prop
		want bool
	}{
		{"ramp center", mgl64.Vec2{10, 10}, ramp, true},
		{"ramp edge", mgl64.Vec2{10 + RampRadius + PlayerRadius - 0.01, 10}, ramp, true},
		{"ramp miss", mgl64.Vec2{10 + RampRadius + PlayerRadius + 0.1, 10}, ramp, false},
		{"rail end", mgl64.Vec2{10 + RailHalfLength, 10}, rail, true},
		{"rail side", mgl64.Vec2{12, 10 + RailRadius + PlayerRadius - 0.01}, rail, true},
		{"rail beyond end", mgl64.Vec2{10 + RailHalfLength + 1, 10}, rail, false},
		{"hydrant miss", mgl64.Vec2{11, 10}, hydrant, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Touching(tt.pos, PlayerRadius, tt.prop))
		})
	}
}

func TestFindTouching(t *testing.T) {
	props := []Prop{
		{Kind: PropHydrant, Pos: mgl64.Vec2{0, 0}},
		{Kind: PropRamp, Pos: mgl64.Vec2{0, 0}},
		{Kind: PropRamp, Pos: mgl64.Vec2{20, 0}},
	}

	assert.Equal(t, 1, FindTouching(mgl64.Vec2{0, 0}, PlayerRadius, props, PropRamp))
	assert.Equal(t, 2, FindTouching(mgl64.Vec2{20, 1}, PlayerRadius, props, PropRamp))
	assert.Equal(t, -1, FindTouching(mgl64.Vec2{10, 0}, PlayerRadius, props, PropRamp))
	assert.Equal(t, -1, FindTouching(mgl64.Vec2{20, 0}, PlayerRadius, props, PropRail))
}

func TestPushOutOfHydrants(t *testing.T) {
	props := []Prop{{Kind: PropHydrant, Pos: mgl64.Vec2{10, 10}}}

	b := physics.NewBody(mgl64.Vec2{10.5, 10}, 1)
	b.Velocity = mgl64.Vec2{-2, 1}
	PushOutOfHydrants(b, PlayerRadius, props)

	assert.InDelta(t, 10+PlayerRadius+HydrantRadius, b.Position[0], 1e-9)
	assert.InDelta(t, 0.0, b.Velocity[0], 1e-9, "velocity into the hydrant removed")
	assert.InDelta(t, 1.0, b.Velocity[1], 1e-9, "tangential velocity kept")

	// Moving away is left alone.
	far := physics.NewBody(mgl64.Vec2{20, 20}, 1)
	far.Velocity = mgl64.Vec2{1, 1}
	PushOutOfHydrants(far, PlayerRadius, props)
	assert.Equal(t, mgl64.Vec2{20, 20}, far.Position)
	assert.Equal(t, mgl64.Vec2{1, 1}, far.Velocity)
}

package session

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/skatedog/internal/game"
	"github.com/ugaemi/skatedog/internal/trick"
)

func setupTestSession(t *testing.T) *Session {
	t.Helper()
	w, err := game.NewWorld(game.DefaultOptions())
	require.NoError(t, err)
	return New(w, time.Second/60, nil)
}

func TestNew_Defaults(t *testing.T) {
	s := setupTestSession(t)

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, StateIdle, s.State())
	assert.Equal(t, time.Second/60, s.Interval())
	assert.Equal(t, uint64(0), s.Latest().Tick)
}

func TestStep_PublishesFrame(t *testing.T) {
	s := setupTestSession(t)

	var got []game.Frame
	unsub := s.Subscribe(func(f game.Frame) { got = append(got, f) })

	s.Step(s.Interval().Seconds())
	s.Step(s.Interval().Seconds())
	require.Len(t, got, 2)
	assert.Equal(t, uint64(2), got[1].Tick)
	assert.Equal(t, got[1], s.Latest())

	unsub()
	s.Step(s.Interval().Seconds())
	assert.Len(t, got, 2, "no frames after unsubscribe")
}

func TestSubmitInput_EdgesConsumedOnce(t *testing.T) {
	s := setupTestSession(t)

	s.SubmitInput(game.Input{ToggleBoard: true, Keys: trick.Keys{Right: true}})
	// A second submit before the tick must not lose the edge.
	s.SubmitInput(game.Input{Keys: trick.Keys{Right: true}})

	f := s.Step(s.Interval().Seconds())
	assert.Equal(t, game.ModeOnBoard, f.PlayerMode)

	// The edge is gone, the held key stays.
	f = s.Step(s.Interval().Seconds())
	assert.Equal(t, game.ModeOnBoard, f.PlayerMode)
	assert.Greater(t, f.Player.Speed, 0.0)
}

func TestLatch(t *testing.T) {
	var l latch
	l.merge(game.Input{Flip: true, Keys: trick.Keys{Up: true}})
	l.merge(game.Input{Keys: trick.Keys{Left: true}})

	in := l.take()
	assert.True(t, in.Flip)
	assert.Equal(t, trick.Keys{Left: true}, in.Keys, "latest held keys win")

	in = l.take()
	assert.False(t, in.Flip)
	assert.Equal(t, trick.Keys{Left: true}, in.Keys)
}

func TestRun_Deterministic(t *testing.T) {
	run := func() game.Frame {
		s := setupTestSession(t)
		_, detach := NewAutopilot(s)
		defer detach()
		f, err := s.Run(context.Background(), 900)
		require.NoError(t, err)
		return f
	}

	a := run()
	b := run()
	assert.Equal(t, uint64(900), a.Tick)
	assert.Equal(t, a, b)
}

func TestRun_StopsOnContext(t *testing.T) {
	s := setupTestSession(t)

	ctx, cancel := context.WithCancel(context.Background())
	var n atomic.Int32
	s.Subscribe(func(game.Frame) {
		if n.Add(1) == 5 {
			cancel()
		}
	})

	f, err := s.Run(ctx, 100)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint64(5), f.Tick)
}

func TestStart_TicksInRealTime(t *testing.T) {
	s := setupTestSession(t)

	ticks := make(chan uint64, 256)
	s.Subscribe(func(f game.Frame) {
		select {
		case ticks <- f.Tick:
		default:
		}
	})

	s.Start()
	assert.Equal(t, StateRunning, s.State())

	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatal("no tick within a second")
	}

	s.Stop()
	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("loop did not exit")
	}
	assert.Equal(t, StateStopped, s.State())
}

func TestStop_DoubleStopSafe(t *testing.T) {
	s := setupTestSession(t)
	s.Start()

	time.Sleep(s.Interval() + 10*time.Millisecond)

	// Should not panic on double stop
	s.Stop()
	s.Stop()
	<-s.Done()

	assert.Equal(t, StateStopped, s.State())

	// A stopped session does not restart.
	s.Start()
	assert.Equal(t, StateStopped, s.State())
}

func TestStop_FromSubscriber(t *testing.T) {
	s := setupTestSession(t)
	s.Subscribe(func(f game.Frame) {
		if f.Tick == 3 {
			s.Stop()
		}
	})

	s.Start()
	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not exit")
	}
	assert.Equal(t, uint64(3), s.Latest().Tick)
}

func TestStop_Idle(t *testing.T) {
	s := setupTestSession(t)
	s.Stop()

	select {
	case <-s.Done():
	default:
		t.Fatal("done should be closed for a session that never ran")
	}

	f, err := s.Run(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), f.Tick, "stopped session does not step")
}

func TestAutopilot_PlaysTricks(t *testing.T) {
	s := setupTestSession(t)
	pilot, detach := NewAutopilot(s)
	defer detach()

	f, err := s.Run(context.Background(), 60*20)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, pilot.Airs(), 5)
	assert.Greater(t, f.Lands+f.Bails, 0)
	assert.Greater(t, f.Walked, 0.0)
}

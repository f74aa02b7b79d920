// Package session drives a game.World from a fixed-rate loop and fans the
// resulting frames out to subscribers.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ugaemi/skatedog/internal/game"
)

type State int

const (
	StateIdle State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Session owns one world. All world access goes through the session lock.
type Session struct {
	ID string

	world    *game.World
	interval time.Duration
	input    latch
	subs     []subscriber
	nextSub  int
	last     game.Frame

	state  State
	stopCh chan struct{}
	done   chan struct{}

	mu  sync.Mutex
	log *slog.Logger
}

type subscriber struct {
	id int
	fn func(game.Frame)
}

// New creates an idle session stepping the world every interval.
func New(world *game.World, interval time.Duration, logger *slog.Logger) *Session {
	if interval <= 0 {
		interval = time.Second / 60
	}
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	return &Session{
		ID:       id,
		world:    world,
		interval: interval,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
		last:     world.Snapshot(),
		log:      logger.With("session", id),
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Interval is the fixed time step.
func (s *Session) Interval() time.Duration { return s.interval }

// Latest returns the most recent frame.
func (s *Session) Latest() game.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Subscribe registers fn to receive every frame after it is produced. fn runs
// on the ticking goroutine outside the session lock and may call back into
// the session. The returned func unsubscribes.
func (s *Session) Subscribe(fn func(game.Frame)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		kept := make([]subscriber, 0, len(s.subs))
		for _, sub := range s.subs {
			if sub.id != id {
				kept = append(kept, sub)
			}
		}
		s.subs = kept
	}
}

// SubmitInput merges in into the pending input. Held keys take the latest
// value; edges stay set until the next tick consumes them.
func (s *Session) SubmitInput(in game.Input) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input.merge(in)
}

// Step runs one tick: Update with the pending input, then FixedStep, then
// publishes the snapshot.
func (s *Session) Step(dt float64) game.Frame {
	s.mu.Lock()
	in := s.input.take()
	s.world.Update(in, dt)
	s.world.FixedStep(dt)
	frame := s.world.Snapshot()
	s.last = frame
	subs := s.subs
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(frame)
	}
	return frame
}

// Run steps the session ticks times at the fixed interval without waiting on
// the wall clock. It stops early when ctx is done or the session is stopped.
func (s *Session) Run(ctx context.Context, ticks int) (game.Frame, error) {
	dt := s.interval.Seconds()
	frame := s.Latest()
	for i := 0; i < ticks; i++ {
		select {
		case <-ctx.Done():
			return frame, ctx.Err()
		case <-s.stopCh:
			return frame, nil
		default:
		}
		frame = s.Step(dt)
	}
	return frame, nil
}

// Start begins ticking in real time on a new goroutine. Starting a session
// that is not idle does nothing.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return
	}
	s.state = StateRunning
	s.log.Info("session started", "interval", s.interval)
	go s.loop()
}

// Stop ends the loop. It is safe to call more than once and from a
// subscriber.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasRunning := s.state == StateRunning
	if s.state == StateStopped {
		return
	}
	s.state = StateStopped

	// Signal the loop to stop
	select {
	case <-s.stopCh:
		// Already closed
	default:
		close(s.stopCh)
	}
	if !wasRunning {
		close(s.done)
	}

	s.log.Info("session stopped", "tick", s.last.Tick, "score", s.last.Score)
}

// Done is closed once the loop has exited.
func (s *Session) Done() <-chan struct{} { return s.done }

func (s *Session) loop() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	dt := s.interval.Seconds()
	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			// A subscriber may have stopped us during the last step.
			select {
			case <-s.stopCh:
				return
			default:
			}
			s.Step(dt)
		}
	}
}

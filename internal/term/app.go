// Package term is the terminal frontend: it reads keys, feeds them to a
// session and draws every frame the session publishes.
package term

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ugaemi/skatedog/internal/game"
	"github.com/ugaemi/skatedog/internal/session"
)

type App struct {
	screen   tcell.Screen
	session  *session.Session
	ctrl     Controller
	renderer *Renderer
	log      *slog.Logger
}

// NewApp initializes the screen. Close must be called to restore the
// terminal.
func NewApp(screen tcell.Screen, s *session.Session, logger *slog.Logger) (*App, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.HideCursor()
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		screen:   screen,
		session:  s,
		renderer: NewRenderer(screen),
		log:      logger,
	}, nil
}

func (a *App) Close() {
	a.screen.Fini()
}

// Run starts the session and blocks until the player quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	unsub := a.session.Subscribe(func(f game.Frame) {
		// Dropped when the queue is full; the next frame supersedes it.
		_ = a.screen.PostEvent(tcell.NewEventInterrupt(f))
	})
	defer unsub()

	a.session.Start()
	defer a.session.Stop()

	done := make(chan struct{})
	defer close(done)
	events := pollEvents(a.screen, done, 100)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if quit := a.handle(ev); quit {
				a.log.Info("quit requested")
				return nil
			}
		}
	}
}

type eventSource interface {
	PollEvent() tcell.Event
}

// pollEvents forwards src's events until src is finalized or done closes.
// The returned channel is closed when forwarding stops.
func pollEvents(src eventSource, done <-chan struct{}, buf int) <-chan tcell.Event {
	events := make(chan tcell.Event, buf)
	go func() {
		defer close(events)
		for {
			ev := src.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	return events
}

func (a *App) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		grabbing := a.session.Latest().GrabName != ""
		in, action := a.ctrl.HandleKey(ev.Key(), ev.Rune(), time.Now(), grabbing)
		switch action {
		case ActionQuit:
			return true
		case ActionInput:
			a.session.SubmitInput(in)
		}
	case *tcell.EventInterrupt:
		f, ok := ev.Data().(game.Frame)
		if !ok {
			return false
		}
		// Let held directions lapse when the key repeat stops.
		a.session.SubmitInput(game.Input{Keys: a.ctrl.Held(time.Now())})
		a.renderer.Draw(f)
		a.screen.Show()
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return false
}

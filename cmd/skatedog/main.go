package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/ugaemi/skatedog/internal/config"
	"github.com/ugaemi/skatedog/internal/game"
	"github.com/ugaemi/skatedog/internal/session"
	"github.com/ugaemi/skatedog/internal/term"
)

func main() {
	cfg := config.Load()

	closeLog, err := setupLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "log setup failed:", err)
		os.Exit(1)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("skatedog failed", "error", err)
		closeLog()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	opts := game.OptionsFromConfig(cfg)
	opts.Logger = slog.Default()

	world, err := game.NewWorld(opts)
	if err != nil {
		return err
	}
	s := session.New(world, cfg.TickInterval(), slog.Default())
	slog.Info("session created", "id", s.ID, "seed", cfg.Seed, "headless", cfg.Headless)

	if cfg.Headless {
		return runHeadless(ctx, cfg, s)
	}
	return runTerminal(ctx, s)
}

func runHeadless(ctx context.Context, cfg *config.Config, s *session.Session) error {
	_, detach := session.NewAutopilot(s)
	defer detach()

	ticks := int(cfg.HeadlessDuration / s.Interval())
	frame, err := s.Run(ctx, ticks)
	session.LogSummary(slog.Default(), frame)
	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func runTerminal(ctx context.Context, s *session.Session) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	app, err := term.NewApp(screen, s, slog.Default())
	if err != nil {
		return err
	}
	defer app.Close()

	err = app.Run(ctx)
	session.LogSummary(slog.Default(), s.Latest())
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// setupLogger installs the default logger. The terminal owns stdout while
// playing, so outside headless mode logs go to cfg.LogFile.
func setupLogger(cfg *config.Config) (func(), error) {
	var h slog.Handler
	opts := &slog.HandlerOptions{}

	switch cfg.LogLevel {
	case "debug":
		opts.Level = slog.LevelDebug
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelInfo
	}

	var out io.Writer = os.Stdout
	closer := func() {}
	if !cfg.Headless {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closer = func() { _ = f.Close() }
	}

	switch cfg.LogFormat {
	case "json":
		h = slog.NewJSONHandler(out, opts)
	default:
		h = slog.NewTextHandler(out, opts)
	}

	slog.SetDefault(slog.New(h))
	return closer, nil
}

// Command npcview runs a simulation and draws agent gizmos in a window.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/udisondev/npcai/internal/ai"
	"github.com/udisondev/npcai/internal/config"
	"github.com/udisondev/npcai/internal/runner"
)

const (
	screenWidth  = 800
	screenHeight = 800
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := config.PathFromEnv()
	cfg, err := config.LoadSimulation(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))
	ai.EnableDebugLogging(logLevel == slog.LevelDebug)

	r, err := runner.New(cfg, cfgPath)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("npcview")

	return r.RunWith(ctx, func(ctx context.Context) error {
		err := ebiten.RunGame(newViewer(ctx, r))
		if err != nil && !errors.Is(err, ebiten.Termination) {
			return fmt.Errorf("running viewer: %w", err)
		}
		return nil
	})
}

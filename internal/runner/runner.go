// Package runner assembles and runs a simulation from config.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/npcai/internal/ai"
	"github.com/udisondev/npcai/internal/config"
	"github.com/udisondev/npcai/internal/db"
	"github.com/udisondev/npcai/internal/spawn"
	"github.com/udisondev/npcai/internal/world"
)

// statusInterval is the period of the status log line.
const statusInterval = 5 * time.Second

// Runner owns one simulation: world, tick manager, spawned agents and target.
type Runner struct {
	cfg     config.Simulation
	cfgPath string

	World   *world.World
	Ticks   *ai.TickManager
	Spawner *spawn.Manager
	Target  *spawn.Target
}

// New validates cfg and spawns everything. cfgPath is watched for profile
// changes while running ("" disables the watcher).
func New(cfg config.Simulation, cfgPath string) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	w := world.NewWorld()
	ticks := ai.NewTickManager(cfg.TickInterval)
	spawner := spawn.NewManager(w, ticks, spawn.NewSurface(cfg.Surface), cfg.Seed)

	target, err := spawner.SpawnAll(cfg)
	if err != nil {
		return nil, fmt.Errorf("spawning: %w", err)
	}

	return &Runner{
		cfg:     cfg,
		cfgPath: cfgPath,
		World:   w,
		Ticks:   ticks,
		Spawner: spawner,
		Target:  target,
	}, nil
}

// Run ticks the simulation until ctx is canceled or the configured duration
// elapses. With persistence enabled, the target health is restored from and
// journaled to PostgreSQL.
func (r *Runner) Run(ctx context.Context) error {
	if r.cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Duration)
		defer cancel()
	}

	g, gctx := errgroup.WithContext(ctx)

	if r.cfg.Database.Enabled {
		database, err := r.openDatabase(ctx)
		if err != nil {
			return err
		}
		defer database.Close()

		journal, err := r.attachJournal(ctx, database.Health())
		if err != nil {
			return err
		}
		g.Go(func() error {
			return journal.Run(gctx)
		})
	}

	if r.cfgPath != "" {
		watcher, err := config.NewWatcher(r.cfgPath, r.reload)
		if err != nil {
			slog.Warn("config hot reload disabled", "err", err)
		} else {
			g.Go(func() error {
				return watcher.Run(gctx)
			})
		}
	}

	g.Go(func() error {
		err := r.Ticks.Start(gctx)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		r.reportStatus(gctx)
		return nil
	})

	slog.Info("simulation running",
		"agents", r.Spawner.Count(),
		"tick", r.cfg.TickInterval,
		"duration", r.cfg.Duration)

	if err := g.Wait(); err != nil {
		return err
	}
	r.logStatus()
	return nil
}

// RunWith runs the simulation next to a foreground loop such as a window.
// fg gets a context that ends with the simulation, and the simulation is
// canceled when fg returns. The simulation error takes precedence.
func (r *Runner) RunWith(ctx context.Context, fg func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return r.Run(gctx)
	})

	fgErr := fg(gctx)
	cancel()

	if err := g.Wait(); err != nil {
		return err
	}
	return fgErr
}

func (r *Runner) openDatabase(ctx context.Context) (*db.DB, error) {
	dsn := r.cfg.Database.DSN()

	database, err := db.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	slog.Info("database connected")

	if err := db.RunMigrations(ctx, dsn); err != nil {
		database.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations applied")
	return database, nil
}

// attachJournal restores the last persisted health of the target and
// subscribes a journal to it.
func (r *Runner) attachJournal(ctx context.Context, repo *db.HealthRepository) (*db.HealthJournal, error) {
	name := r.Target.Entity.Name()
	health := r.Target.Health

	snap, ok, err := repo.LoadSnapshot(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("restoring target health: %w", err)
	}
	if ok {
		health.Restore(snap.Current)
		slog.Info("target health restored",
			"target", name,
			"current", health.Current(),
			"dead", health.IsDead())
	}

	journal := db.NewHealthJournal(repo, 0)
	journal.Track(health.OwnerID(), name, health.Current(), health.Max())
	health.Subscribe(journal)
	return journal, nil
}

func (r *Runner) reload(cfg config.Simulation) {
	if err := r.Spawner.ApplyProfiles(cfg); err != nil {
		slog.Warn("config reload not applied", "err", err)
	}
}

func (r *Runner) reportStatus(ctx context.Context) {
	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.logStatus()
		}
	}
}

func (r *Runner) logStatus() {
	attrs := []any{
		"ticks", r.Ticks.Ticks(),
		"targetHP", r.Target.Health.Current(),
		"targetDead", r.Target.Health.IsDead(),
	}
	for _, a := range r.Spawner.Agents() {
		attrs = append(attrs, a.Name(), a.Gizmos().State)
	}
	slog.Info("status", attrs...)
}

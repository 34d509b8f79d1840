package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultTickInterval is the simulation step used when none is configured (20 Hz).
const DefaultTickInterval = 50 * time.Millisecond

// ErrControllerNotFound is returned by GetController for unknown object IDs.
var ErrControllerNotFound = errors.New("controller not found")

// TickHook runs once per tick before the controllers (target movement, physics).
type TickHook func(dt float64)

// TickManager drives all registered controllers from one goroutine.
// dt of each tick is measured from the ticker timestamps.
type TickManager struct {
	controllers     sync.Map // map[uint32]Controller keyed by objectID
	controllerCount atomic.Int32
	ticks           atomic.Uint64

	hooksMu sync.RWMutex
	hooks   []TickHook

	tasks chan func()

	// loopMu guards running and stops. While the loop runs, controllers
	// removed by Unregister are stopped on the tick goroutine.
	loopMu  sync.Mutex
	running bool
	stops   []Controller

	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewTickManager creates a tick manager. interval <= 0 means DefaultTickInterval.
func NewTickManager(interval time.Duration) *TickManager {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &TickManager{
		interval: interval,
		tasks:    make(chan func(), taskQueueSize),
		stopCh:   make(chan struct{}),
	}
}

// taskQueueSize bounds the tasks posted between two ticks.
const taskQueueSize = 64

// ErrTaskQueueFull is returned by Post when the tick goroutine is falling behind.
var ErrTaskQueueFull = errors.New("tick task queue full")

// Post schedules fn to run on the tick goroutine at the start of the next tick.
// Used to mutate controllers from other goroutines (config reload).
func (m *TickManager) Post(fn func()) error {
	select {
	case m.tasks <- fn:
		return nil
	default:
		return ErrTaskQueueFull
	}
}

// Interval returns the tick period.
func (m *TickManager) Interval() time.Duration {
	return m.interval
}

// AddHook registers fn to run at the start of every tick.
func (m *TickManager) AddHook(fn TickHook) {
	m.hooksMu.Lock()
	m.hooks = append(m.hooks, fn)
	m.hooksMu.Unlock()
}

// Register stores controller under objectID and starts it.
// Registering an already used objectID is ignored.
func (m *TickManager) Register(objectID uint32, controller Controller) {
	if _, loaded := m.controllers.LoadOrStore(objectID, controller); loaded {
		slog.Warn("controller already registered", "objectID", objectID)
		return
	}
	m.controllerCount.Add(1)
	controller.Start()

	slog.Debug("controller registered",
		"objectID", objectID,
		"state", controller.CurrentState())
}

// Unregister removes the controller of objectID and stops it. While the
// loop runs, Stop is deferred to the start of the next tick so it never
// overlaps Tick. The pending stop does not use the task queue and cannot be
// dropped.
func (m *TickManager) Unregister(objectID uint32) {
	value, ok := m.controllers.LoadAndDelete(objectID)
	if !ok {
		return
	}
	m.controllerCount.Add(-1)
	c := value.(Controller)

	m.loopMu.Lock()
	if m.running {
		m.stops = append(m.stops, c)
		m.loopMu.Unlock()
		slog.Debug("controller unregistered, stop deferred", "objectID", objectID)
		return
	}
	// Held during Stop so a concurrent Start waits for it.
	c.Stop()
	m.loopMu.Unlock()

	slog.Debug("controller unregistered", "objectID", objectID)
}

func (m *TickManager) setRunning(running bool) {
	m.loopMu.Lock()
	m.running = running
	m.loopMu.Unlock()
}

// runStops stops the controllers unregistered since the last tick.
func (m *TickManager) runStops() {
	m.loopMu.Lock()
	stops := m.stops
	m.stops = nil
	m.loopMu.Unlock()

	for _, c := range stops {
		c.Stop()
	}
}

// Start runs the tick loop until ctx is canceled or Stop is called.
func (m *TickManager) Start(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.setRunning(true)
	defer func() {
		m.setRunning(false)
		m.runStops()
	}()

	slog.Info("tick manager started", "interval", m.interval)

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			slog.Info("tick manager stopping", "ticks", m.ticks.Load())
			return ctx.Err()

		case <-m.stopCh:
			slog.Info("tick manager stopped", "ticks", m.ticks.Load())
			return nil

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			m.TickAll(dt)
		}
	}
}

// Stop ends the tick loop. Safe to call more than once.
func (m *TickManager) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

// TickAll runs pending stops, posted tasks and hooks, then ticks every controller by dt seconds.
func (m *TickManager) TickAll(dt float64) {
	m.runStops()
	m.runTasks()

	m.hooksMu.RLock()
	for _, fn := range m.hooks {
		fn(dt)
	}
	m.hooksMu.RUnlock()

	count := 0
	m.controllers.Range(func(_, value any) bool {
		value.(Controller).Tick(dt)
		count++
		return true
	})
	m.ticks.Add(1)

	if count > 0 && IsDebugEnabled() {
		slog.Debug("tick completed", "controllers", count, "dt", dt)
	}
}

func (m *TickManager) runTasks() {
	for {
		select {
		case fn := <-m.tasks:
			fn()
		default:
			return
		}
	}
}

// Ticks returns the number of completed ticks.
func (m *TickManager) Ticks() uint64 {
	return m.ticks.Load()
}

// Count returns the number of registered controllers.
func (m *TickManager) Count() int {
	return int(m.controllerCount.Load())
}

// GetController returns the controller of objectID.
func (m *TickManager) GetController(objectID uint32) (Controller, error) {
	value, ok := m.controllers.Load(objectID)
	if !ok {
		return nil, fmt.Errorf("objectID %d: %w", objectID, ErrControllerNotFound)
	}
	return value.(Controller), nil
}

// Each calls fn for every registered controller until fn returns false.
func (m *TickManager) Each(fn func(objectID uint32, c Controller) bool) {
	m.controllers.Range(func(key, value any) bool {
		return fn(key.(uint32), value.(Controller))
	})
}

package model

import (
	"log/slog"
	"sync"
)

// HealthListener receives health updates (UI text, persistence journal).
type HealthListener interface {
	// HealthChanged is called after every applied change with the new values.
	HealthChanged(ownerID uint32, current, max int32)
	// Died is called exactly once, when health first reaches zero.
	Died(ownerID uint32)
}

// Health is a clamped hit point counter with a death latch.
// Invariant: 0 <= current <= max. Once dead, further damage is a no-op.
type Health struct {
	ownerID uint32

	mu        sync.RWMutex
	current   int32
	max       int32
	dead      bool
	listeners []HealthListener

	deathOnce sync.Once
}

// NewHealth creates a full Health for the given owner.
// max below 1 is raised to 1.
func NewHealth(ownerID uint32, max int32) *Health {
	if max < 1 {
		max = 1
	}
	return &Health{
		ownerID: ownerID,
		current: max,
		max:     max,
	}
}

// OwnerID returns the object ID of the entity that owns this counter.
func (h *Health) OwnerID() uint32 {
	return h.ownerID
}

// Current returns current health.
func (h *Health) Current() int32 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Max returns maximum health.
func (h *Health) Max() int32 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.max
}

// IsDead reports whether the death latch is set.
func (h *Health) IsDead() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dead
}

// Subscribe registers a listener and immediately pushes the current value to it.
func (h *Health) Subscribe(l HealthListener) {
	if l == nil {
		return
	}
	h.mu.Lock()
	h.listeners = append(h.listeners, l)
	current, max := h.current, h.max
	h.mu.Unlock()

	l.HealthChanged(h.ownerID, current, max)
}

// TakeDamage subtracts amount, clamped at zero, and fires death on the
// call where health first reaches zero. Non-positive amounts and damage
// to a dead owner are ignored.
func (h *Health) TakeDamage(amount int32) {
	if amount <= 0 {
		return
	}

	h.mu.Lock()
	if h.dead {
		h.mu.Unlock()
		return
	}
	h.current -= amount
	if h.current < 0 {
		h.current = 0
	}
	current, max := h.current, h.max
	died := current <= 0
	if died {
		h.dead = true
	}
	listeners := append([]HealthListener(nil), h.listeners...)
	h.mu.Unlock()

	slog.Warn("target took damage",
		"ownerID", h.ownerID,
		"amount", amount,
		"current", current)

	for _, l := range listeners {
		l.HealthChanged(h.ownerID, current, max)
	}

	if died {
		h.die(listeners)
	}
}

// Restore sets current health from a persisted snapshot without notifying
// listeners. A zero value latches death silently.
func (h *Health) Restore(current int32) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current < 0 {
		current = 0
	}
	if current > h.max {
		current = h.max
	}
	h.current = current
	if current == 0 {
		h.dead = true
		h.deathOnce.Do(func() {})
	}
}

// die runs at most once per Health.
func (h *Health) die(listeners []HealthListener) {
	h.deathOnce.Do(func() {
		slog.Error("target died", "ownerID", h.ownerID)
		for _, l := range listeners {
			l.Died(h.ownerID)
		}
	})
}

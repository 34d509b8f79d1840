package ai

import (
	"errors"
	"fmt"
)

// ErrTargetHasNoHealth is reported when a hit lands on a target without a health component.
var ErrTargetHasNoHealth = errors.New("target has no health component")

// HitWindow is the damage window of a melee swing.
//
// The animation system opens and closes the window at authored timestamps;
// while open, the brain polls it once per tick. Each target is damaged at most
// once per window: the already-hit set is cleared only by Open.
type HitWindow struct {
	open   bool
	hit    map[uint32]struct{}
	damage int32
}

// NewHitWindow creates a closed window that deals damage per hit.
func NewHitWindow(damage int32) *HitWindow {
	return &HitWindow{
		hit:    make(map[uint32]struct{}, 1),
		damage: damage,
	}
}

// Open starts a new window and forgets previous hits.
func (w *HitWindow) Open() {
	clear(w.hit)
	w.open = true
}

// Close ends the window. Safe to call when already closed.
func (w *HitWindow) Close() {
	w.open = false
}

// IsOpen reports whether the window is open.
func (w *HitWindow) IsOpen() bool {
	return w.open
}

// Damage returns the damage dealt per hit.
func (w *HitWindow) Damage() int32 {
	return w.damage
}

// SetDamage updates the damage dealt per hit.
func (w *HitWindow) SetDamage(damage int32) {
	w.damage = damage
}

// AlreadyHit reports whether objectID was hit in the current window.
func (w *HitWindow) AlreadyHit(objectID uint32) bool {
	_, ok := w.hit[objectID]
	return ok
}

// Poll applies damage to target if the window is open, the target was not hit
// yet in this window and distance is within attackRange.
// Returns true when TakeDamage was called. A target without health is recorded
// as hit (so the error is reported once per window) and ErrTargetHasNoHealth is returned.
func (w *HitWindow) Poll(target Target, distance, attackRange float64) (bool, error) {
	if !w.open || target == nil {
		return false, nil
	}

	id := target.ObjectID()
	if w.AlreadyHit(id) {
		return false, nil
	}
	if distance >= attackRange {
		return false, nil
	}

	w.hit[id] = struct{}{}

	dmg := target.Damageable()
	if dmg == nil {
		return false, fmt.Errorf("applying %d damage to object %d: %w", w.damage, id, ErrTargetHasNoHealth)
	}
	dmg.TakeDamage(w.damage)
	return true, nil
}

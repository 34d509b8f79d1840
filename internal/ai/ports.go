package ai

import "github.com/udisondev/npcai/internal/model"

// Locomotion is the navigation/movement provider of an agent.
// It owns position and velocity; the brain only issues commands and reads state.
type Locomotion interface {
	Position() model.Vec3

	// Yaw is the agent facing around the vertical axis, radians,
	// measured from +X toward +Z.
	Yaw() float64
	SetYaw(yaw float64)

	SetSpeed(speed float64)
	SetMovementBlocked(blocked bool)
	MovementBlocked() bool

	// SetDestination requests a path to p. Returns false if no path could be requested.
	SetDestination(p model.Vec3) bool
	ResetPath()
	PathPending() bool
	RemainingDistance() float64
	StoppingTolerance() float64

	Velocity() model.Vec3
	SetVelocity(v model.Vec3)

	OnNavigableSurface() bool
	// SamplePointNear returns the closest navigable point within radius of center.
	SamplePointNear(center model.Vec3, radius float64) (model.Vec3, bool)
}

// Animator is the animation system as seen from the brain.
type Animator interface {
	// SetFloat pushes a damped scalar parameter.
	SetFloat(name string, value, dampTime, dt float64)
	// FireTrigger pushes a one-shot trigger.
	FireTrigger(name string)
}

// EventBinder lets the animation system register named zero-argument callbacks
// that it invokes at animation-authored timestamps.
type EventBinder interface {
	On(event string, fn func())
}

// Damageable is the health interface of a target.
type Damageable interface {
	TakeDamage(amount int32)
}

// Target is the tracked entity. The brain holds it by reference and never owns it.
type Target interface {
	ObjectID() uint32
	Position() model.Vec3
	// Damageable returns nil when the entity has no health component.
	Damageable() Damageable
}

// TargetLookup resolves the tracked target once, at start.
type TargetLookup interface {
	FindByTag(tag string) (Target, bool)
}

// Random is a uniform float source (see model.Random).
type Random = model.Random

package sim

import (
	"math"
	"sync"

	"github.com/udisondev/npcai/internal/ai"
	"github.com/udisondev/npcai/internal/model"
)

// DefaultStoppingTolerance is the arrival distance of a NavAgent.
const DefaultStoppingTolerance = 0.5

// arriveEpsilon is the distance at which the agent snaps to its destination.
const arriveEpsilon = 1e-3

// NavAgent is a kinematic ground agent moving in straight lines over a
// NavSurface. Paths take one Advance to compute (PathPending in between).
//
// The simulation goroutine drives it; Position and Yaw are safe to read from viewers.
type NavAgent struct {
	surface *NavSurface

	mu       sync.RWMutex
	pos      model.Vec3
	yaw      float64
	velocity model.Vec3

	speed     float64
	blocked   bool
	tolerance float64

	dest        model.Vec3
	hasPath     bool
	pathPending bool
}

// NewNavAgent places an agent at pos on surface.
func NewNavAgent(surface *NavSurface, pos model.Vec3) *NavAgent {
	return &NavAgent{
		surface:   surface,
		pos:       pos,
		tolerance: DefaultStoppingTolerance,
	}
}

func (a *NavAgent) Position() model.Vec3 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.pos
}

func (a *NavAgent) Yaw() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.yaw
}

func (a *NavAgent) SetYaw(yaw float64) {
	a.mu.Lock()
	a.yaw = yaw
	a.mu.Unlock()
}

func (a *NavAgent) Velocity() model.Vec3 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.velocity
}

func (a *NavAgent) SetVelocity(v model.Vec3) {
	a.mu.Lock()
	a.velocity = v
	a.mu.Unlock()
}

func (a *NavAgent) SetSpeed(speed float64)          { a.speed = speed }
func (a *NavAgent) Speed() float64                  { return a.speed }
func (a *NavAgent) SetMovementBlocked(blocked bool) { a.blocked = blocked }
func (a *NavAgent) MovementBlocked() bool           { return a.blocked }
func (a *NavAgent) PathPending() bool               { return a.pathPending }
func (a *NavAgent) StoppingTolerance() float64      { return a.tolerance }

// SetStoppingTolerance overrides DefaultStoppingTolerance.
func (a *NavAgent) SetStoppingTolerance(t float64) { a.tolerance = t }

// SetDestination starts a path to p. Unwalkable destinations are refused.
// Retargeting a live path keeps the agent moving: only a fresh path is pending.
func (a *NavAgent) SetDestination(p model.Vec3) bool {
	if !a.surface.Walkable(p) {
		return false
	}
	a.dest = p.WithY(a.surface.GroundY())
	if !a.hasPath {
		a.pathPending = true
	}
	a.hasPath = true
	return true
}

// Destination returns the current destination and whether a path is set.
func (a *NavAgent) Destination() (model.Vec3, bool) {
	return a.dest, a.hasPath
}

// ResetPath drops the current path.
func (a *NavAgent) ResetPath() {
	a.hasPath = false
	a.pathPending = false
	a.SetVelocity(model.Vec3{})
}

// RemainingDistance is the ground distance to the destination, 0 without a path.
func (a *NavAgent) RemainingDistance() float64 {
	if !a.hasPath {
		return 0
	}
	return a.Position().Flat().Distance(a.dest.Flat())
}

func (a *NavAgent) OnNavigableSurface() bool {
	return a.surface.OnSurface(a.Position())
}

func (a *NavAgent) SamplePointNear(center model.Vec3, radius float64) (model.Vec3, bool) {
	return a.surface.SamplePointNear(center, radius)
}

// Advance moves the agent toward its destination for dt seconds.
// Blocked by an obstacle, the agent slides along one axis or stops.
func (a *NavAgent) Advance(dt float64) {
	if a.pathPending {
		a.pathPending = false
		return
	}
	if a.blocked || !a.hasPath || a.speed <= 0 || dt <= 0 {
		a.SetVelocity(model.Vec3{})
		return
	}

	pos := a.Position()
	to := a.dest.Sub(pos).Flat()
	dist := to.Length()
	if dist <= arriveEpsilon {
		a.SetVelocity(model.Vec3{})
		return
	}

	dir := to.Scale(1 / dist)
	step := math.Min(a.speed*dt, dist)
	move := dir.Scale(step)

	next, ok := a.tryMove(pos, move)
	if !ok {
		a.SetVelocity(model.Vec3{})
		return
	}

	moved := next.Sub(pos)
	a.mu.Lock()
	a.pos = next
	a.velocity = moved.Scale(1 / dt)
	a.yaw = math.Atan2(moved.Z, moved.X)
	a.mu.Unlock()
}

func (a *NavAgent) tryMove(pos, move model.Vec3) (model.Vec3, bool) {
	candidates := [...]model.Vec3{
		move,
		{X: move.X},
		{Z: move.Z},
	}
	for _, m := range candidates {
		if m.IsZero() {
			continue
		}
		if next := pos.Add(m); a.surface.Walkable(next) {
			return next, true
		}
	}
	return pos, false
}

var _ ai.Locomotion = (*NavAgent)(nil)

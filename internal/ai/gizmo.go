package ai

import "github.com/udisondev/npcai/internal/model"

// Gizmos is a debug snapshot of an agent for overlays: perception ranges,
// the patrol area and the current state.
type Gizmos struct {
	ObjectID uint32
	Name     string
	State    model.BehaviorState

	Position    model.Vec3
	Yaw         float64
	Destination model.Vec3
	Waiting     bool
	WindowOpen  bool

	SightRange       float64
	StopChasingRange float64
	AttackRange      float64 // 0 for agents that cannot attack

	Patrol model.PatrolArea
}

// Gizmos returns the current debug snapshot. dest is reported by the caller
// since Locomotion does not expose it.
func (b *Brain) Gizmos(dest model.Vec3) Gizmos {
	g := Gizmos{
		ObjectID:         b.objectID,
		Name:             b.name,
		State:            b.state,
		Destination:      dest,
		Waiting:          b.waiting,
		WindowOpen:       b.hitWindow.IsOpen(),
		SightRange:       b.profile.SightRange,
		StopChasingRange: b.profile.StopChasingRange,
		Patrol:           b.patrol,
	}
	if b.attackCapable {
		g.AttackRange = b.profile.AttackRange
	}
	if b.loco != nil {
		g.Position = b.loco.Position()
		g.Yaw = b.loco.Yaw()
	}
	return g
}

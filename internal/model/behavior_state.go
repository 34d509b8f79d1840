package model

// BehaviorState represents the active behavior of an enemy agent.
type BehaviorState int32

const (
	// StatePatrolling - agent walks between sampled points of its patrol area
	StatePatrolling BehaviorState = iota
	// StateChasing - agent runs toward the target
	StateChasing
	// StateSearching - agent lost the target and stands still before deciding
	StateSearching
	// StateAttacking - agent is in melee range and swings (attack-capable agents only)
	StateAttacking
)

// String returns human-readable state name
func (s BehaviorState) String() string {
	switch s {
	case StatePatrolling:
		return "PATROLLING"
	case StateChasing:
		return "CHASING"
	case StateSearching:
		return "SEARCHING"
	case StateAttacking:
		return "ATTACKING"
	default:
		return "UNKNOWN"
	}
}

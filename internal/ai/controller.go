package ai

import "github.com/udisondev/npcai/internal/model"

// Controller is a behavior driver registered in the TickManager.
type Controller interface {
	// Start resolves dependencies and puts the agent into its spawn state.
	Start()

	// Stop halts the agent.
	Stop()

	// SetState requests a behavior state transition.
	SetState(state model.BehaviorState)

	// CurrentState returns the active behavior state.
	CurrentState() model.BehaviorState

	// Tick advances the controller by dt seconds of simulation time.
	Tick(dt float64)
}

var _ Controller = (*Brain)(nil)

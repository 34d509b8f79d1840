package ai

import "github.com/udisondev/npcai/internal/model"

// Distance is the target sensor: straight-line 3D distance from agent to target.
// Used for sight, chase and attack range checks.
func Distance(agent, target model.Vec3) float64 {
	return agent.Distance(target)
}

package spawn

import (
	"sync/atomic"

	"github.com/udisondev/npcai/internal/ai"
	"github.com/udisondev/npcai/internal/config"
	"github.com/udisondev/npcai/internal/model"
	"github.com/udisondev/npcai/internal/sim"
	"github.com/udisondev/npcai/internal/world"
)

// EnemyTag is the world tag of spawned agents.
const EnemyTag = "Enemy"

// Agent is one spawned enemy: its body, locomotion, animator and brain.
// It is the controller registered in the tick manager; one tick runs the brain,
// then the animator (clip events), then locomotion.
type Agent struct {
	cfg      config.AgentConfig
	entity   *world.Entity
	brain    *ai.Brain
	nav      *sim.NavAgent
	animator *sim.Animator

	gizmos atomic.Pointer[ai.Gizmos]
}

func (a *Agent) Start() {
	a.brain.Start()
	a.publish()
}

func (a *Agent) Stop() {
	a.brain.Stop()
	a.publish()
}

func (a *Agent) SetState(state model.BehaviorState) { a.brain.SetState(state) }
func (a *Agent) CurrentState() model.BehaviorState  { return a.brain.CurrentState() }

// Tick advances the agent by dt seconds.
func (a *Agent) Tick(dt float64) {
	a.brain.Tick(dt)
	a.animator.Advance(dt)
	a.nav.Advance(dt)
	a.entity.SetPosition(a.nav.Position())
	a.publish()
}

func (a *Agent) publish() {
	dest, _ := a.nav.Destination()
	g := a.brain.Gizmos(dest)
	a.gizmos.Store(&g)
}

// Gizmos returns the snapshot taken at the end of the last tick.
// Safe to call from any goroutine.
func (a *Agent) Gizmos() ai.Gizmos {
	if g := a.gizmos.Load(); g != nil {
		return *g
	}
	return ai.Gizmos{}
}

func (a *Agent) Name() string               { return a.cfg.Name }
func (a *Agent) ObjectID() uint32           { return a.entity.ObjectID() }
func (a *Agent) Entity() *world.Entity      { return a.entity }
func (a *Agent) Brain() *ai.Brain           { return a.brain }
func (a *Agent) Nav() *sim.NavAgent         { return a.nav }
func (a *Agent) Animator() *sim.Animator    { return a.animator }
func (a *Agent) Config() config.AgentConfig { return a.cfg }

var _ ai.Controller = (*Agent)(nil)

// Target is the spawned player stand-in.
type Target struct {
	Entity *world.Entity
	Health *model.Health
	Walker *sim.Walker
}

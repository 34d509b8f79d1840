package spawn

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/paulmach/orb"

	"github.com/udisondev/npcai/internal/ai"
	"github.com/udisondev/npcai/internal/config"
	"github.com/udisondev/npcai/internal/model"
	"github.com/udisondev/npcai/internal/sim"
	"github.com/udisondev/npcai/internal/world"
)

// Manager builds agents and the target from config and wires them into the
// world and the tick manager.
type Manager struct {
	world   *world.World
	ticks   *ai.TickManager
	ids     *world.ObjectIDGenerator
	surface *sim.NavSurface
	seed    uint64

	agents     sync.Map // map[string]*Agent keyed by name
	agentCount atomic.Int32
}

// NewManager creates a spawn manager over surface.
// Every agent gets its own random source derived from seed and its object ID.
func NewManager(w *world.World, ticks *ai.TickManager, surface *sim.NavSurface, seed uint64) *Manager {
	return &Manager{
		world:   w,
		ticks:   ticks,
		ids:     world.NewObjectIDGenerator(),
		surface: surface,
		seed:    seed,
	}
}

// NewSurface converts the surface section of the config. Open obstacle rings are closed.
func NewSurface(cfg config.SurfaceConfig) *sim.NavSurface {
	bound := orb.Bound{
		Min: orb.Point{cfg.Min[0], cfg.Min[1]},
		Max: orb.Point{cfg.Max[0], cfg.Max[1]},
	}

	rings := make([]orb.Ring, 0, len(cfg.Obstacles))
	for _, pts := range cfg.Obstacles {
		ring := make(orb.Ring, 0, len(pts)+1)
		for _, p := range pts {
			ring = append(ring, orb.Point{p[0], p[1]})
		}
		if len(ring) > 0 && !ring.Closed() {
			ring = append(ring, ring[0])
		}
		rings = append(rings, ring)
	}
	return sim.NewNavSurface(bound, cfg.GroundY, rings...)
}

// SpawnAll spawns the target, then every agent. The target goes first so that
// brains resolve it when they start.
func (m *Manager) SpawnAll(cfg config.Simulation) (*Target, error) {
	target, err := m.SpawnTarget(cfg.Target)
	if err != nil {
		return nil, err
	}
	for _, a := range cfg.Agents {
		if _, err := m.SpawnAgent(a, cfg.Target.Tag); err != nil {
			return nil, err
		}
	}
	return target, nil
}

// SpawnTarget places the target with a health component and a waypoint walker
// driven by a tick hook.
func (m *Manager) SpawnTarget(cfg config.TargetConfig) (*Target, error) {
	id := m.ids.NextPlayerID()

	entity := world.NewEntity(id, cfg.Name, cfg.Tag, cfg.Spawn)
	health := model.NewHealth(id, cfg.MaxHealth)
	entity.AttachHealth(health)

	if err := m.world.AddEntity(entity); err != nil {
		return nil, fmt.Errorf("spawning target %s: %w", cfg.Name, err)
	}

	walker := sim.NewWalker(entity, cfg.Speed, cfg.Waypoints)
	m.ticks.AddHook(walker.Advance)

	slog.Info("target spawned",
		"objectID", id,
		"name", cfg.Name,
		"tag", cfg.Tag,
		"maxHealth", cfg.MaxHealth)

	return &Target{Entity: entity, Health: health, Walker: walker}, nil
}

// SpawnAgent builds and registers one enemy tracking targetTag.
func (m *Manager) SpawnAgent(cfg config.AgentConfig, targetTag string) (*Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("spawning agent: %w", err)
	}
	if _, exists := m.agents.Load(cfg.Name); exists {
		return nil, fmt.Errorf("spawning agent %s: %w", cfg.Name, world.ErrDuplicateObject)
	}

	id := m.ids.NextAgentID()

	nav := sim.NewNavAgent(m.surface, cfg.Spawn)
	if !nav.OnNavigableSurface() {
		slog.Warn("agent spawned off the navigable surface, it stays idle until placed on it",
			"agent", cfg.Name,
			"spawn", cfg.Spawn)
	}

	animator := sim.NewAnimator()
	animator.AddClip(ai.TriggerAttack, attackClip(cfg.AttackClip))

	brain := ai.NewBrain(ai.BrainConfig{
		Name:          cfg.Name,
		ObjectID:      id,
		AttackCapable: cfg.AttackCapable,
		TargetTag:     targetTag,
		Profile:       cfg.Profile,
		PatrolArea:    patrolArea(cfg),
	}, nav, animator, sim.NewRand(m.seed^uint64(id)), m.world)
	ai.BindAnimationEvents(animator, brain)

	entity := world.NewEntity(id, cfg.Name, EnemyTag, cfg.Spawn)
	if err := m.world.AddEntity(entity); err != nil {
		return nil, fmt.Errorf("spawning agent %s: %w", cfg.Name, err)
	}

	agent := &Agent{
		cfg:      cfg,
		entity:   entity,
		brain:    brain,
		nav:      nav,
		animator: animator,
	}
	m.agents.Store(cfg.Name, agent)
	m.agentCount.Add(1)
	m.ticks.Register(id, agent)

	slog.Info("agent spawned",
		"objectID", id,
		"name", cfg.Name,
		"attackCapable", cfg.AttackCapable,
		"patrol", cfg.Patrol.Shape)

	return agent, nil
}

// Despawn removes the agent called name. Safe while the tick loop runs:
// the brain is stopped on the tick goroutine.
func (m *Manager) Despawn(name string) {
	value, ok := m.agents.LoadAndDelete(name)
	if !ok {
		return
	}
	m.agentCount.Add(-1)

	agent := value.(*Agent)
	m.ticks.Unregister(agent.ObjectID())
	m.world.RemoveEntity(agent.ObjectID())

	slog.Info("agent despawned", "objectID", agent.ObjectID(), "name", name)
}

// Agent returns the agent called name.
func (m *Manager) Agent(name string) (*Agent, bool) {
	value, ok := m.agents.Load(name)
	if !ok {
		return nil, false
	}
	return value.(*Agent), true
}

// Agents returns all agents ordered by object ID.
func (m *Manager) Agents() []*Agent {
	out := make([]*Agent, 0, m.Count())
	m.agents.Range(func(_, value any) bool {
		out = append(out, value.(*Agent))
		return true
	})
	slices.SortFunc(out, func(a, b *Agent) int { return cmp.Compare(a.ObjectID(), b.ObjectID()) })
	return out
}

// Count returns the number of live agents.
func (m *Manager) Count() int {
	return int(m.agentCount.Load())
}

// Surface returns the navigable surface agents walk on.
func (m *Manager) Surface() *sim.NavSurface {
	return m.surface
}

// ApplyProfiles re-applies behavior profiles from cfg to live agents, on the
// tick goroutine. Agents are matched by name; added or removed entries need a restart.
func (m *Manager) ApplyProfiles(cfg config.Simulation) error {
	ai.EnableDebugLogging(cfg.SlogLevel() == slog.LevelDebug)

	updates := make(map[*Agent]model.BehaviorProfile, len(cfg.Agents))
	for _, a := range cfg.Agents {
		agent, ok := m.Agent(a.Name)
		if !ok {
			slog.Warn("new agent in config ignored until restart", "agent", a.Name)
			continue
		}
		updates[agent] = a.Profile
	}

	err := m.ticks.Post(func() {
		for agent, p := range updates {
			if err := agent.brain.ApplyProfile(p); err != nil {
				slog.Error("applying profile", "agent", agent.Name(), "err", err)
			}
		}
	})
	if err != nil {
		return fmt.Errorf("scheduling profile update: %w", err)
	}
	return nil
}

func patrolArea(cfg config.AgentConfig) model.PatrolArea {
	center := cfg.Spawn
	if cfg.Patrol.Center != nil {
		center = *cfg.Patrol.Center
	}
	if cfg.Patrol.Shape == config.ShapeSphere {
		return model.NewSpherePatrolArea(center, cfg.Patrol.Radius)
	}
	return model.NewRectPatrolArea(center, cfg.Patrol.Size[0], cfg.Patrol.Size[1])
}

func attackClip(cfg config.ClipConfig) sim.Clip {
	return sim.Clip{
		Name:   "attack",
		Length: cfg.Length,
		Events: []sim.ClipEvent{
			{Time: cfg.DamageStart, Name: ai.EventStartDamageWindow},
			{Time: cfg.DamageEnd, Name: ai.EventEndDamageWindow},
		},
	}
}

package ai

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/udisondev/npcai/internal/model"
)

var (
	// ErrTargetNotFound is reported when the tracked target cannot be resolved at start.
	ErrTargetNotFound = errors.New("target not found")
	// ErrNoLocomotion is reported when a brain is started without a locomotion binding.
	ErrNoLocomotion = errors.New("locomotion not bound")
)

// DefaultTargetTag is the tag of the controllable player entity.
const DefaultTargetTag = "Player"

// searchBranchChance is the probability of returning to the regular patrol
// (instead of inspecting the surroundings) when a search wait expires.
const searchBranchChance = 0.5

// BrainConfig describes one agent.
type BrainConfig struct {
	Name     string
	ObjectID uint32

	// AttackCapable enables the Attacking state and the hit window.
	AttackCapable bool
	// TargetTag is looked up once at Start (DefaultTargetTag if empty).
	TargetTag string

	Profile    model.BehaviorProfile
	PatrolArea model.PatrolArea
}

// Brain is the behavior state machine of one enemy agent.
// State machine: PATROLLING ↔ CHASING ↔ SEARCHING, plus ATTACKING for attack-capable agents.
//
// Not safe for concurrent use: Tick and the animation hooks must be called
// from the same simulation goroutine.
type Brain struct {
	name          string
	objectID      uint32
	attackCapable bool
	targetTag     string
	profile       model.BehaviorProfile
	patrol        model.PatrolArea

	loco   Locomotion
	anim   *AnimationOutput
	rng    Random
	lookup TargetLookup

	// resolved once in Start; nil keeps the brain inert
	target  Target
	running bool

	state       model.BehaviorState
	waiting     bool
	waitTimer   float64
	attackTimer float64

	hitWindow *HitWindow
	facing    *Facing
}

// NewBrain creates a brain. animator may be nil; rng defaults to math/rand/v2.
func NewBrain(cfg BrainConfig, loco Locomotion, animator Animator, rng Random, lookup TargetLookup) *Brain {
	if rng == nil {
		rng = globalRandom{}
	}
	tag := cfg.TargetTag
	if tag == "" {
		tag = DefaultTargetTag
	}
	return &Brain{
		name:          cfg.Name,
		objectID:      cfg.ObjectID,
		attackCapable: cfg.AttackCapable,
		targetTag:     tag,
		profile:       cfg.Profile,
		patrol:        cfg.PatrolArea,
		loco:          loco,
		anim:          NewAnimationOutput(animator),
		rng:           rng,
		lookup:        lookup,
		state:         model.StatePatrolling,
		hitWindow:     NewHitWindow(cfg.Profile.AttackDamage),
		facing:        NewFacing(cfg.Profile.FacingRate),
	}
}

// Start resolves the target and puts the agent into its spawn pose:
// patrolling, standing still for one patrol wait.
// Configuration errors are logged; the brain then stays inert.
func (b *Brain) Start() {
	if err := b.ResolveTarget(); err != nil {
		slog.Error("brain configuration error",
			"agent", b.name,
			"objectID", b.objectID,
			"err", err)
	}
	if b.loco == nil {
		slog.Error("brain configuration error",
			"agent", b.name,
			"objectID", b.objectID,
			"err", ErrNoLocomotion)
	} else {
		b.loco.SetSpeed(b.profile.WalkSpeed)
		b.loco.SetMovementBlocked(true)
	}

	b.state = model.StatePatrolling
	b.waiting = true
	b.waitTimer = b.profile.PatrolWait
	b.attackTimer = 0
	b.hitWindow.Close()
	b.running = true

	if IsDebugEnabled() {
		slog.Debug("brain started",
			"agent", b.name,
			"objectID", b.objectID,
			"attackCapable", b.attackCapable,
			"targetFound", b.target != nil)
	}
}

// Stop halts the agent and closes any open damage window.
func (b *Brain) Stop() {
	b.running = false
	b.hitWindow.Close()
	if b.loco != nil {
		b.loco.ResetPath()
		b.loco.SetMovementBlocked(true)
	}

	if IsDebugEnabled() {
		slog.Debug("brain stopped", "agent", b.name, "objectID", b.objectID)
	}
}

// ResolveTarget looks the target up by tag. Called once by Start.
func (b *Brain) ResolveTarget() error {
	if b.lookup == nil {
		return fmt.Errorf("resolving target %q: no lookup: %w", b.targetTag, ErrTargetNotFound)
	}
	t, ok := b.lookup.FindByTag(b.targetTag)
	if !ok || t == nil {
		return fmt.Errorf("resolving target %q: %w", b.targetTag, ErrTargetNotFound)
	}
	b.target = t
	return nil
}

// Tick advances the agent by dt seconds.
// No-op without a target, without locomotion, or while off the navigable surface.
func (b *Brain) Tick(dt float64) {
	if !b.running || b.target == nil || b.loco == nil || !b.loco.OnNavigableSurface() {
		return
	}

	if b.attackCapable && b.attackTimer > 0 {
		b.attackTimer -= dt
	}

	if b.hitWindow.IsOpen() {
		b.pollHitWindow()
	}

	switch b.state {
	case model.StatePatrolling:
		b.handlePatrolling(dt)
	case model.StateChasing:
		b.handleChasing()
	case model.StateSearching:
		b.handleSearching(dt)
	case model.StateAttacking:
		b.handleAttacking(dt)
	}

	b.anim.PushSpeed(b.loco, dt)
}

// SetState is the transition function: it switches state and runs the entry
// actions of the new state. Requesting the active state is a no-op.
// Leaving ATTACKING always closes the damage window.
func (b *Brain) SetState(next model.BehaviorState) {
	if b.state == next {
		return
	}
	if next == model.StateAttacking && !b.attackCapable {
		if IsDebugEnabled() {
			slog.Debug("attack state ignored for non-attacking agent", "agent", b.name)
		}
		return
	}

	prev := b.state
	b.leave(prev)
	b.state = next

	if IsDebugEnabled() {
		slog.Debug("brain state changed",
			"agent", b.name,
			"objectID", b.objectID,
			"from", prev,
			"to", next)
	}

	b.enter(next)
}

// forceStateWithoutEntry switches state WITHOUT running entry actions.
//
// Only the SEARCHING "look around here" branch uses it: it has just set a
// nearby destination and PATROLLING's entry would replace it with a patrol point.
func (b *Brain) forceStateWithoutEntry(next model.BehaviorState) {
	if b.state == next {
		return
	}
	prev := b.state
	b.leave(prev)
	b.state = next

	if IsDebugEnabled() {
		slog.Debug("brain state forced without entry",
			"agent", b.name,
			"objectID", b.objectID,
			"from", prev,
			"to", next)
	}
}

func (b *Brain) leave(prev model.BehaviorState) {
	if prev == model.StateAttacking && b.hitWindow.IsOpen() {
		b.hitWindow.Close()
		if IsDebugEnabled() {
			slog.Debug("damage window force-closed on attack exit", "agent", b.name)
		}
	}
}

func (b *Brain) enter(state model.BehaviorState) {
	if b.loco == nil {
		return
	}

	switch state {
	case model.StatePatrolling:
		b.loco.SetSpeed(b.profile.WalkSpeed)
		b.loco.SetMovementBlocked(false)
		b.waiting = false
		b.waitTimer = 0
		b.searchNewPatrolPoint()

	case model.StateChasing:
		b.loco.SetSpeed(b.profile.ChaseSpeed)
		b.loco.SetMovementBlocked(false)
		b.waiting = false
		b.waitTimer = 0

	case model.StateSearching:
		b.loco.SetSpeed(b.profile.WalkSpeed)
		b.loco.SetMovementBlocked(true)
		b.waiting = true
		b.waitTimer = b.profile.SearchWait

	case model.StateAttacking:
		b.loco.SetSpeed(0)
		b.loco.SetMovementBlocked(true)
		b.loco.ResetPath()
		b.waiting = false
		b.waitTimer = 0
		b.attackTimer = 0
	}
}

// checkEngage runs the shared transition predicates: attack range wins over
// sight range. Returns true if a transition happened.
func (b *Brain) checkEngage(d float64) bool {
	if b.inAttackRange(d) {
		b.SetState(model.StateAttacking)
		return true
	}
	if d < b.profile.SightRange {
		b.SetState(model.StateChasing)
		return true
	}
	return false
}

func (b *Brain) inAttackRange(d float64) bool {
	return b.attackCapable && d < b.profile.AttackRange
}

func (b *Brain) targetDistance() float64 {
	return Distance(b.loco.Position(), b.target.Position())
}

func (b *Brain) handlePatrolling(dt float64) {
	if b.checkEngage(b.targetDistance()) {
		return
	}

	if b.waiting {
		if !b.loco.MovementBlocked() {
			b.loco.SetMovementBlocked(true)
		}
		b.waitTimer -= dt
		if b.waitTimer <= 0 {
			b.waiting = false
			b.loco.SetMovementBlocked(false)
			b.searchNewPatrolPoint()
		}
		return
	}

	if b.loco.MovementBlocked() {
		b.loco.SetMovementBlocked(false)
	}
	if !b.loco.PathPending() && b.loco.RemainingDistance() < b.loco.StoppingTolerance() {
		b.waiting = true
		b.waitTimer = b.profile.PatrolWait
		b.loco.SetMovementBlocked(true)

		if IsDebugEnabled() {
			slog.Debug("patrol point reached, waiting",
				"agent", b.name,
				"wait", b.profile.PatrolWait)
		}
	}
}

func (b *Brain) handleChasing() {
	d := b.targetDistance()
	if b.inAttackRange(d) {
		b.SetState(model.StateAttacking)
		return
	}
	if d > b.profile.StopChasingRange {
		b.SetState(model.StateSearching)
		return
	}

	if b.loco.MovementBlocked() {
		b.loco.SetMovementBlocked(false)
	}
	b.loco.SetDestination(b.target.Position())
}

func (b *Brain) handleSearching(dt float64) {
	if b.checkEngage(b.targetDistance()) {
		return
	}
	if !b.waiting {
		return
	}

	b.waitTimer -= dt
	if b.waitTimer > 0 {
		return
	}

	b.waiting = false
	b.loco.SetMovementBlocked(false)

	if b.targetDistance() < b.profile.SightRange {
		b.SetState(model.StateChasing)
		return
	}

	if b.rng.Range(0, 1) < searchBranchChance {
		if IsDebugEnabled() {
			slog.Debug("search resolved: back to patrol", "agent", b.name)
		}
		b.SetState(model.StatePatrolling)
		return
	}

	if IsDebugEnabled() {
		slog.Debug("search resolved: inspecting surroundings", "agent", b.name)
	}
	b.searchNearbyPoint()
	b.forceStateWithoutEntry(model.StatePatrolling)
}

func (b *Brain) handleAttacking(dt float64) {
	if !b.loco.MovementBlocked() {
		b.loco.SetMovementBlocked(true)
		b.loco.ResetPath()
	}
	b.loco.SetVelocity(model.Vec3{})
	b.facing.FaceTarget(b.loco, b.target.Position(), dt)

	if b.attackTimer > 0 {
		return
	}

	if b.targetDistance() < b.profile.AttackRange {
		// a new swing never inherits the previous swing's window
		if b.hitWindow.IsOpen() {
			b.hitWindow.Close()
			if IsDebugEnabled() {
				slog.Debug("stale damage window closed before next swing", "agent", b.name)
			}
		}
		b.anim.Attack()
		b.attackTimer = b.profile.AttackCooldown

		if IsDebugEnabled() {
			slog.Debug("attack started",
				"agent", b.name,
				"targetID", b.target.ObjectID(),
				"cooldown", b.profile.AttackCooldown)
		}
		return
	}

	b.SetState(model.StateSearching)
}

func (b *Brain) pollHitWindow() {
	hit, err := b.hitWindow.Poll(b.target, b.targetDistance(), b.profile.AttackRange)
	if err != nil {
		slog.Error("brain configuration error",
			"agent", b.name,
			"objectID", b.objectID,
			"err", err)
		return
	}
	if hit {
		slog.Info("attack landed",
			"agent", b.name,
			"targetID", b.target.ObjectID(),
			"damage", b.hitWindow.Damage())
	}
}

// searchNewPatrolPoint sends the agent to a random navigable point of its patrol
// area. On sampling failure the agent waits one patrol period and retries.
func (b *Brain) searchNewPatrolPoint() {
	raw := b.patrol.RandomPoint(b.rng)
	if p, ok := b.loco.SamplePointNear(raw, b.patrol.SampleRadius()); ok && b.loco.SetDestination(p) {
		if IsDebugEnabled() {
			slog.Debug("new patrol point",
				"agent", b.name,
				"x", p.X,
				"y", p.Y,
				"z", p.Z)
		}
		return
	}

	b.waiting = true
	b.waitTimer = b.profile.PatrolWait
	b.loco.SetMovementBlocked(true)

	slog.Warn("patrol point sampling failed, waiting",
		"agent", b.name,
		"objectID", b.objectID,
		"wait", b.profile.PatrolWait)
}

// searchNearbyPoint sends the agent to a random navigable point around its
// current position. Falls back to the regular patrol on failure.
func (b *Brain) searchNearbyPoint() {
	radius := b.profile.SearchNearbyRadius
	raw := b.loco.Position().Add(model.RandomInUnitSphere(b.rng).Scale(radius))
	if p, ok := b.loco.SamplePointNear(raw, radius); ok && b.loco.SetDestination(p) {
		if IsDebugEnabled() {
			slog.Debug("nearby search point",
				"agent", b.name,
				"x", p.X,
				"y", p.Y,
				"z", p.Z)
		}
		return
	}

	slog.Warn("nearby point sampling failed, returning to patrol",
		"agent", b.name,
		"objectID", b.objectID)
	b.SetState(model.StatePatrolling)
}

// StartDamageWindow is invoked by the animation system when a swing becomes dangerous.
func (b *Brain) StartDamageWindow() {
	if !b.attackCapable {
		return
	}
	b.hitWindow.Open()
	if IsDebugEnabled() {
		slog.Debug("damage window opened", "agent", b.name)
	}
}

// EndDamageWindow is invoked by the animation system when a swing stops being dangerous.
func (b *Brain) EndDamageWindow() {
	b.hitWindow.Close()
	if IsDebugEnabled() {
		slog.Debug("damage window closed", "agent", b.name)
	}
}

// ApplyProfile replaces the tuning of a live agent. The patrol area is not affected.
// The current state's speed is re-applied.
func (b *Brain) ApplyProfile(p model.BehaviorProfile) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("applying profile to %s: %w", b.name, err)
	}
	b.profile = p
	b.hitWindow.SetDamage(p.AttackDamage)
	b.facing.SetRate(p.FacingRate)

	if b.loco != nil && b.running {
		switch b.state {
		case model.StatePatrolling, model.StateSearching:
			b.loco.SetSpeed(p.WalkSpeed)
		case model.StateChasing:
			b.loco.SetSpeed(p.ChaseSpeed)
		}
	}

	slog.Info("behavior profile applied", "agent", b.name, "objectID", b.objectID)
	return nil
}

// Name returns the agent name.
func (b *Brain) Name() string { return b.name }

// ObjectID returns the agent object ID.
func (b *Brain) ObjectID() uint32 { return b.objectID }

// CurrentState returns the active behavior state.
func (b *Brain) CurrentState() model.BehaviorState { return b.state }

// AttackCapable reports whether the attack extension is enabled.
func (b *Brain) AttackCapable() bool { return b.attackCapable }

// Waiting reports whether the agent is in a wait sub-state.
func (b *Brain) Waiting() bool { return b.waiting }

// WaitTimer returns seconds left before the next decision.
func (b *Brain) WaitTimer() float64 { return b.waitTimer }

// AttackTimer returns seconds left of the attack cooldown.
func (b *Brain) AttackTimer() float64 { return b.attackTimer }

// HitWindowOpen reports whether the damage window is open.
func (b *Brain) HitWindowOpen() bool { return b.hitWindow.IsOpen() }

// Profile returns the current tuning.
func (b *Brain) Profile() model.BehaviorProfile { return b.profile }

// Target returns the resolved target (nil if unresolved).
func (b *Brain) Target() Target { return b.target }

// globalRandom draws from the math/rand/v2 global source.
type globalRandom struct{}

func (globalRandom) Range(min, max float64) float64 {
	return min + rand.Float64()*(max-min)
}

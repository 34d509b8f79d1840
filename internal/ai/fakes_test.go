package ai

import "github.com/udisondev/npcai/internal/model"

// fakeLocomotion is a scriptable Locomotion. SetDestination succeeds and sets
// remaining to the straight-line distance unless refuseDest is set.
type fakeLocomotion struct {
	pos      model.Vec3
	yaw      float64
	speed    float64
	blocked  bool
	velocity model.Vec3

	dest        model.Vec3
	hasDest     bool
	destCalls   int
	refuseDest  bool
	pathPending bool
	remaining   float64
	tolerance   float64
	resetCalls  int

	offSurface bool
	sampleFail bool
	samples    []model.Vec3
}

func newFakeLocomotion() *fakeLocomotion {
	return &fakeLocomotion{tolerance: 0.5}
}

func (l *fakeLocomotion) Position() model.Vec3            { return l.pos }
func (l *fakeLocomotion) Yaw() float64                    { return l.yaw }
func (l *fakeLocomotion) SetYaw(yaw float64)              { l.yaw = yaw }
func (l *fakeLocomotion) SetSpeed(speed float64)          { l.speed = speed }
func (l *fakeLocomotion) SetMovementBlocked(blocked bool) { l.blocked = blocked }
func (l *fakeLocomotion) MovementBlocked() bool           { return l.blocked }
func (l *fakeLocomotion) PathPending() bool               { return l.pathPending }
func (l *fakeLocomotion) RemainingDistance() float64      { return l.remaining }
func (l *fakeLocomotion) StoppingTolerance() float64      { return l.tolerance }
func (l *fakeLocomotion) Velocity() model.Vec3            { return l.velocity }
func (l *fakeLocomotion) SetVelocity(v model.Vec3)        { l.velocity = v }
func (l *fakeLocomotion) OnNavigableSurface() bool        { return !l.offSurface }

func (l *fakeLocomotion) SetDestination(p model.Vec3) bool {
	l.destCalls++
	if l.refuseDest {
		return false
	}
	l.dest = p
	l.hasDest = true
	l.remaining = l.pos.Distance(p)
	return true
}

func (l *fakeLocomotion) ResetPath() {
	l.resetCalls++
	l.hasDest = false
	l.remaining = 0
}

func (l *fakeLocomotion) SamplePointNear(center model.Vec3, radius float64) (model.Vec3, bool) {
	l.samples = append(l.samples, center)
	if l.sampleFail {
		return model.Vec3{}, false
	}
	return center, true
}

type fakeDamageable struct {
	calls []int32
}

func (d *fakeDamageable) TakeDamage(amount int32) {
	d.calls = append(d.calls, amount)
}

type fakeTarget struct {
	id       uint32
	pos      model.Vec3
	damage   *fakeDamageable
	noHealth bool
}

func newFakeTarget(id uint32, x, y, z float64) *fakeTarget {
	return &fakeTarget{
		id:     id,
		pos:    model.NewVec3(x, y, z),
		damage: &fakeDamageable{},
	}
}

func (t *fakeTarget) ObjectID() uint32     { return t.id }
func (t *fakeTarget) Position() model.Vec3 { return t.pos }

func (t *fakeTarget) Damageable() Damageable {
	if t.noHealth {
		return nil
	}
	return t.damage
}

type fakeLookup map[string]Target

func (l fakeLookup) FindByTag(tag string) (Target, bool) {
	t, ok := l[tag]
	return t, ok
}

type fakeAnimator struct {
	floats   map[string]float64
	triggers []string
}

func newFakeAnimator() *fakeAnimator {
	return &fakeAnimator{floats: make(map[string]float64)}
}

func (a *fakeAnimator) SetFloat(name string, value, dampTime, dt float64) {
	a.floats[name] = value
}

func (a *fakeAnimator) FireTrigger(name string) {
	a.triggers = append(a.triggers, name)
}

type fakeBinder map[string]func()

func (b fakeBinder) On(event string, fn func()) { b[event] = fn }

// seqRandom returns min + v*(max-min) for v cycling over vals.
type seqRandom struct {
	vals []float64
	i    int
}

func (r *seqRandom) Range(min, max float64) float64 {
	v := 0.5
	if len(r.vals) > 0 {
		v = r.vals[r.i%len(r.vals)]
		r.i++
	}
	return min + v*(max-min)
}

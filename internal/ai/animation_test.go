package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/npcai/internal/model"
)

type hookCounter struct {
	starts, ends int
}

func (h *hookCounter) StartDamageWindow() { h.starts++ }
func (h *hookCounter) EndDamageWindow()   { h.ends++ }

func TestCurrentSpeed(t *testing.T) {
	loco := newFakeLocomotion()
	loco.velocity = model.NewVec3(3, 0, 4)

	assert.Equal(t, 5.0, CurrentSpeed(loco))

	loco.blocked = true
	assert.Equal(t, 0.0, CurrentSpeed(loco), "blocked agents report zero speed")
}

func TestAnimationOutputPushSpeedAndAttack(t *testing.T) {
	anim := newFakeAnimator()
	out := NewAnimationOutput(anim)
	loco := newFakeLocomotion()
	loco.velocity = model.NewVec3(0, 0, 2)

	out.PushSpeed(loco, 0.016)
	assert.Equal(t, 2.0, anim.floats[ParamSpeed])

	out.Attack()
	assert.Equal(t, []string{TriggerAttack}, anim.triggers)
}

func TestAnimationOutputNilAnimator(t *testing.T) {
	out := NewAnimationOutput(nil)
	assert.NotPanics(t, func() {
		out.PushSpeed(newFakeLocomotion(), 0.1)
		out.Attack()
	})
}

func TestBindAnimationEvents(t *testing.T) {
	binder := fakeBinder{}
	hooks := &hookCounter{}

	BindAnimationEvents(binder, hooks)
	require.Contains(t, binder, EventStartDamageWindow)
	require.Contains(t, binder, EventEndDamageWindow)
	require.Contains(t, binder, EventFootstep)

	binder[EventStartDamageWindow]()
	binder[EventEndDamageWindow]()
	binder[EventFootstep]()
	assert.Equal(t, 1, hooks.starts)
	assert.Equal(t, 1, hooks.ends)
}
